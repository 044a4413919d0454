// Package currency holds the single CFA/MAD conversion path. Dashboard
// totals and transfer-amount derivation both go through Convert; a second
// rounding implementation is exactly the bug this package exists to prevent.
package currency

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tawsil-ops/ops-atlas/pkg/models/domain"
)

// Convert converts amount into the target currency under rate (1 MAD = rate
// CFA). Same-currency conversion is the identity and applies no rounding.
// Cross-currency results are rounded half-up to 2 decimal places exactly
// once, at the end.
func Convert(amount domain.MonetaryAmount, to domain.CurrencyCode, rate domain.ExchangeRate) (domain.MonetaryAmount, error) {
	if !rate.IsValid() {
		return domain.MonetaryAmount{}, domain.ErrInvalidRate
	}

	if amount.Currency == to {
		return amount, nil
	}

	var value decimal.Decimal
	switch {
	case amount.Currency == domain.CurrencyCFA && to == domain.CurrencyMAD:
		value = amount.Value.Div(rate.Value)
	case amount.Currency == domain.CurrencyMAD && to == domain.CurrencyCFA:
		value = amount.Value.Mul(rate.Value)
	default:
		return domain.MonetaryAmount{}, fmt.Errorf("unsupported conversion: %s to %s", amount.Currency, to)
	}

	return domain.NewAmount(value.Round(2), to), nil
}
