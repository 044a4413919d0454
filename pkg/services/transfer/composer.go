// Package transfer composes inter-account transfer instructions. The
// destination amount is always derived through the currency normalizer; the
// external ledger owns atomicity and its verdict is surfaced verbatim.
package transfer

import (
	"context"

	"github.com/google/uuid"
	"github.com/tawsil-ops/ops-atlas/pkg/models/domain"
	"github.com/tawsil-ops/ops-atlas/pkg/services/currency"
	"github.com/tawsil-ops/ops-atlas/pkg/services/sources"
)

// Draft is an in-progress transfer form. The rate may be a manual override
// local to the form; it never touches the dashboard's cached rate.
type Draft struct {
	SourceAccount       string
	DestinationAccount  string
	SourceAmount        domain.MonetaryAmount
	DestinationCurrency domain.CurrencyCode
	Rate                domain.ExchangeRate
	Description         string
}

type Composer struct {
	ledger sources.LedgerSink
}

func NewComposer(ledger sources.LedgerSink) *Composer {
	return &Composer{ledger: ledger}
}

// Compose derives the destination amount for the draft's source amount and
// rate. Called on every change to either; same-currency transfers round the
// source to 2 decimal places.
func Compose(source domain.MonetaryAmount, to domain.CurrencyCode, rate domain.ExchangeRate) (domain.MonetaryAmount, error) {
	converted, err := currency.Convert(source, to, rate)
	if err != nil {
		return domain.MonetaryAmount{}, err
	}
	// Convert leaves same-currency amounts untouched; transfer amounts are
	// always presented and submitted at 2 decimal places.
	converted.Value = converted.Value.Round(2)
	return converted, nil
}

// Validate checks the submission constraints. A draft with field errors is
// never handed to the ledger.
func Validate(d Draft) domain.FieldErrors {
	errs := domain.FieldErrors{}

	if d.SourceAccount == "" {
		errs["sourceAccount"] = "source account is required"
	}
	if d.DestinationAccount == "" {
		errs["destinationAccount"] = "destination account is required"
	}
	if d.SourceAccount != "" && d.SourceAccount == d.DestinationAccount {
		errs["destinationAccount"] = "destination account must differ from source account"
	}
	if !d.SourceAmount.Value.IsPositive() {
		errs["sourceAmount"] = "amount must be positive"
	}
	if !d.Rate.IsValid() {
		errs["rate"] = "rate must be positive"
	}

	if len(errs) == 0 {
		destination, err := Compose(d.SourceAmount, d.DestinationCurrency, d.Rate)
		if err != nil {
			errs["rate"] = err.Error()
		} else if !destination.Value.IsPositive() {
			errs["sourceAmount"] = "destination amount must be positive"
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Build validates the draft and produces a fully-formed instruction. The
// destination amount is derived here, so the conversion invariant holds by
// construction.
func (c *Composer) Build(d Draft) (*domain.TransferInstruction, error) {
	if errs := Validate(d); errs != nil {
		return nil, errs
	}

	destination, err := Compose(d.SourceAmount, d.DestinationCurrency, d.Rate)
	if err != nil {
		return nil, err
	}

	return &domain.TransferInstruction{
		ID:                 uuid.New(),
		SourceAccount:      d.SourceAccount,
		DestinationAccount: d.DestinationAccount,
		SourceAmount:       d.SourceAmount,
		DestinationAmount:  destination,
		Rate:               d.Rate,
		Description:        d.Description,
	}, nil
}

// Submit hands the instruction to the ledger. No retry, no compensation; a
// rejection comes back as *domain.LedgerRejectedError.
func (c *Composer) Submit(ctx context.Context, instr domain.TransferInstruction) error {
	return c.ledger.SubmitTransfer(ctx, instr)
}
