package domain

import "github.com/shopspring/decimal"

// CurrencyCode identifies one of the currencies the business operates in.
type CurrencyCode string

const (
	CurrencyCFA CurrencyCode = "CFA"
	CurrencyMAD CurrencyCode = "MAD"
)

// MonetaryAmount is a numeric value tagged with its currency. Amounts in
// different currencies are never combined without an explicit conversion.
type MonetaryAmount struct {
	Value    decimal.Decimal
	Currency CurrencyCode
}

func NewAmount(value decimal.Decimal, currency CurrencyCode) MonetaryAmount {
	return MonetaryAmount{Value: value, Currency: currency}
}

func ZeroAmount(currency CurrencyCode) MonetaryAmount {
	return MonetaryAmount{Value: decimal.Zero, Currency: currency}
}

// ExchangeRate expresses how many CFA one MAD buys (1 MAD = Value CFA).
// It is fetched once per aggregation pass and threaded through calls as a
// value, never read from ambient state.
type ExchangeRate struct {
	Value decimal.Decimal
}

func NewExchangeRate(value decimal.Decimal) ExchangeRate {
	return ExchangeRate{Value: value}
}

func (r ExchangeRate) IsValid() bool {
	return r.Value.IsPositive()
}
