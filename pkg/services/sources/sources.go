// Package sources defines the boundary contracts for the external systems
// the aggregation engine reads from and the ledger it writes to. Each
// adapter may fail independently; the engine owns the failure policy.
package sources

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tawsil-ops/ops-atlas/pkg/models/domain"
)

// BusinessAggregate is the Business unit's pre-aggregated figures for one
// range. All monetary figures are CFA.
type BusinessAggregate struct {
	TotalRevenue      decimal.Decimal
	TotalMargin       decimal.Decimal
	AverageMarginRate decimal.Decimal
	TotalPaid         decimal.Decimal
	TotalUnpaid       decimal.Decimal
	TotalOrders       int
	TopClients        []domain.RankedEntry
	TopProducts       []domain.RankedEntry
}

// Parcel is one Express shipment record. Prices are MAD; aggregates are
// derived caller-side from the raw list.
type Parcel struct {
	PriceMAD        decimal.Decimal
	WeightKg        float64
	TotalPaid       decimal.Decimal
	Status          string
	TripDestination string
}

const (
	ParcelStatusInTransit = "in_transit"
	ParcelStatusDelivered = "delivered"
)

// TreasurySummary is the treasury ledger's balance snapshot, per currency.
type TreasurySummary struct {
	TotalBalanceCFA decimal.Decimal
	TotalBalanceMAD decimal.Decimal
	TotalGlobalCFA  decimal.Decimal
	TotalGlobalMAD  decimal.Decimal
}

type BusinessSource interface {
	GetAggregate(ctx context.Context, r domain.DateRange) (*BusinessAggregate, error)
}

type ExpressSource interface {
	ListParcels(ctx context.Context, r domain.DateRange) ([]Parcel, error)
}

type TreasurySource interface {
	GetSummary(ctx context.Context) (*TreasurySummary, error)
	// GetSummaryAt returns the historical snapshot as of the given instant.
	GetSummaryAt(ctx context.Context, asOf time.Time) (*TreasurySummary, error)
}

// RateProvider supplies the MAD→CFA rate for one aggregation pass. It never
// fails: when the settings source is unreachable it falls back to a
// configured default.
type RateProvider interface {
	CurrentRate(ctx context.Context) domain.ExchangeRate
}

// LedgerSink accepts fully-formed transfer instructions. A rejection comes
// back as *domain.LedgerRejectedError with the ledger's message verbatim.
type LedgerSink interface {
	SubmitTransfer(ctx context.Context, instr domain.TransferInstruction) error
}
