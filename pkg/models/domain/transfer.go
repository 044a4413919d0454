package domain

import "github.com/google/uuid"

// TransferInstruction is a fully-formed inter-account transfer handed to the
// external ledger. DestinationAmount is always derived from SourceAmount
// through the currency normalizer under Rate; the two accounts differ.
type TransferInstruction struct {
	ID                 uuid.UUID
	SourceAccount      string
	DestinationAccount string
	SourceAmount       MonetaryAmount
	DestinationAmount  MonetaryAmount
	Rate               ExchangeRate
	Description        string
}
