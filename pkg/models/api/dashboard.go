package api

import "time"

// RankedEntry is one row of a top-5 breakdown.
type RankedEntry struct {
	Name   string  `json:"name"`
	Metric float64 `json:"metric"`
}

// Summary is the KPI payload for one resolved period. Metric groups outside
// the caller's role set are omitted. RequestID lets the SPA discard a
// response that arrives after a newer request was issued.
type Summary struct {
	RequestID string    `json:"requestId"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`

	ExchangeRate float64 `json:"exchangeRate"`

	BusinessRevenue *float64 `json:"businessRevenue,omitempty"`
	ExpressRevenue  *float64 `json:"expressRevenue,omitempty"`
	TotalRevenue    *float64 `json:"totalRevenue,omitempty"`
	TotalPaid       *float64 `json:"totalPaid,omitempty"`
	TotalUnpaid     *float64 `json:"totalUnpaid,omitempty"`

	TotalMargin       *float64 `json:"totalMargin,omitempty"`
	AverageMarginRate *float64 `json:"averageMarginRate,omitempty"`

	TotalOrders  *int `json:"totalOrders,omitempty"`
	TotalParcels *int `json:"totalParcels,omitempty"`
	InTransit    *int `json:"inTransit,omitempty"`
	Delivered    *int `json:"delivered,omitempty"`

	TreasuryBalanceCFA *float64 `json:"treasuryBalanceCFA,omitempty"`
	TreasuryBalanceMAD *float64 `json:"treasuryBalanceMAD,omitempty"`
	TreasuryGlobalCFA  *float64 `json:"treasuryGlobalCFA,omitempty"`
	TreasuryGlobalMAD  *float64 `json:"treasuryGlobalMAD,omitempty"`

	TopClients      []RankedEntry `json:"topClients,omitempty"`
	TopProducts     []RankedEntry `json:"topProducts,omitempty"`
	TopDestinations []RankedEntry `json:"topDestinations,omitempty"`

	Partial        bool     `json:"partial"`
	PartialSources []string `json:"partialSources,omitempty"`
}

// TimeSeries is a chart-ready payload: one label per bucket and one value
// per bucket per series, in bucket order.
type TimeSeries struct {
	RequestID string               `json:"requestId"`
	Labels    []string             `json:"labels"`
	Series    map[string][]float64 `json:"series"`

	// PartialBuckets indexes buckets whose value was substituted with zero
	// because no data was available.
	PartialBuckets []int `json:"partialBuckets,omitempty"`
}
