package domain

import "github.com/shopspring/decimal"

// SourceResult is a source adapter's outcome for one range. A failed fetch
// contributes zero to aggregates but stays distinguishable for diagnostics.
type SourceResult struct {
	Value  decimal.Decimal
	Failed bool
}

// RankedEntry is one row of a top-N breakdown (top clients by revenue, top
// products by quantity, top destinations by parcel count).
type RankedEntry struct {
	Name   string
	Metric decimal.Decimal
}

// AggregateSummary is the merged KPI snapshot for a single date range.
// Treasury balances are reported per currency and never summed across
// currencies without explicit conversion.
type AggregateSummary struct {
	Range DateRange
	Rate  ExchangeRate

	BusinessRevenue MonetaryAmount // CFA
	ExpressRevenue  MonetaryAmount // MAD
	TotalRevenue    MonetaryAmount // CFA, business + converted express

	TotalMargin       MonetaryAmount
	AverageMarginRate decimal.Decimal
	TotalPaid         MonetaryAmount
	TotalUnpaid       MonetaryAmount

	TotalOrders  int
	TotalParcels int
	InTransit    int
	Delivered    int

	TreasuryBalanceCFA MonetaryAmount
	TreasuryBalanceMAD MonetaryAmount
	TreasuryGlobalCFA  MonetaryAmount
	TreasuryGlobalMAD  MonetaryAmount

	TopClients      []RankedEntry
	TopProducts     []RankedEntry
	TopDestinations []RankedEntry

	// PartialSources names the adapters whose fetch failed and was
	// substituted with zero for this pass.
	PartialSources []string
}

// Partial reports whether any contributing source failed.
func (s *AggregateSummary) Partial() bool {
	return len(s.PartialSources) > 0
}

// TimeSeries is a set of named series aligned over one bucket sequence.
// Every series has exactly one value per bucket, in bucket order.
type TimeSeries struct {
	Buckets []Bucket
	Series  map[string][]decimal.Decimal

	// PartialBuckets lists indexes of buckets whose value was substituted
	// with zero because a source fetch failed or history was unavailable.
	PartialBuckets []int
}

// Role is a caller role used to select which metrics a summary exposes.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleBusiness Role = "business"
	RoleExpress  Role = "express"
)

// MetricKey names one selectable metric group of an AggregateSummary.
type MetricKey string

const (
	MetricRevenue  MetricKey = "revenue"
	MetricMargin   MetricKey = "margin"
	MetricOrders   MetricKey = "orders"
	MetricParcels  MetricKey = "parcels"
	MetricTreasury MetricKey = "treasury"
	MetricTopLists MetricKey = "top_lists"
)
