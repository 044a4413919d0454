package adapters

import (
	"github.com/shopspring/decimal"
	"github.com/tawsil-ops/ops-atlas/pkg/models/api"
	"github.com/tawsil-ops/ops-atlas/pkg/models/domain"
)

// MapSummaryToAPI flattens a role-filtered summary into the JSON payload.
// Only metric groups in allowed are included; decimals become float64 here
// and nowhere else.
func MapSummaryToAPI(s *domain.AggregateSummary, allowed map[domain.MetricKey]bool, requestID string) *api.Summary {
	out := &api.Summary{
		RequestID:      requestID,
		Start:          s.Range.Start,
		End:            s.Range.End,
		ExchangeRate:   s.Rate.Value.InexactFloat64(),
		Partial:        s.Partial(),
		PartialSources: s.PartialSources,
	}

	if allowed[domain.MetricRevenue] {
		out.BusinessRevenue = amountPtr(s.BusinessRevenue)
		out.ExpressRevenue = amountPtr(s.ExpressRevenue)
		out.TotalRevenue = amountPtr(s.TotalRevenue)
		out.TotalPaid = amountPtr(s.TotalPaid)
		out.TotalUnpaid = amountPtr(s.TotalUnpaid)
	}
	if allowed[domain.MetricMargin] {
		out.TotalMargin = amountPtr(s.TotalMargin)
		out.AverageMarginRate = decimalPtr(s.AverageMarginRate)
	}
	if allowed[domain.MetricOrders] {
		out.TotalOrders = intPtr(s.TotalOrders)
	}
	if allowed[domain.MetricParcels] {
		out.TotalParcels = intPtr(s.TotalParcels)
		out.InTransit = intPtr(s.InTransit)
		out.Delivered = intPtr(s.Delivered)
	}
	if allowed[domain.MetricTreasury] {
		out.TreasuryBalanceCFA = amountPtr(s.TreasuryBalanceCFA)
		out.TreasuryBalanceMAD = amountPtr(s.TreasuryBalanceMAD)
		out.TreasuryGlobalCFA = amountPtr(s.TreasuryGlobalCFA)
		out.TreasuryGlobalMAD = amountPtr(s.TreasuryGlobalMAD)
	}
	if allowed[domain.MetricTopLists] {
		out.TopClients = mapRankedToAPI(s.TopClients)
		out.TopProducts = mapRankedToAPI(s.TopProducts)
		out.TopDestinations = mapRankedToAPI(s.TopDestinations)
	}
	return out
}

// MapTimeSeriesToAPI converts a time series into the chart payload.
func MapTimeSeriesToAPI(ts *domain.TimeSeries, requestID string) *api.TimeSeries {
	labels := make([]string, len(ts.Buckets))
	for i, b := range ts.Buckets {
		labels[i] = b.Label
	}

	series := make(map[string][]float64, len(ts.Series))
	for name, values := range ts.Series {
		converted := make([]float64, len(values))
		for i, v := range values {
			converted[i] = v.InexactFloat64()
		}
		series[name] = converted
	}

	return &api.TimeSeries{
		RequestID:      requestID,
		Labels:         labels,
		Series:         series,
		PartialBuckets: ts.PartialBuckets,
	}
}

func mapRankedToAPI(entries []domain.RankedEntry) []api.RankedEntry {
	if entries == nil {
		return nil
	}
	out := make([]api.RankedEntry, len(entries))
	for i, e := range entries {
		out[i] = api.RankedEntry{Name: e.Name, Metric: e.Metric.InexactFloat64()}
	}
	return out
}

func amountPtr(a domain.MonetaryAmount) *float64 {
	v := a.Value.InexactFloat64()
	return &v
}

func decimalPtr(d decimal.Decimal) *float64 {
	v := d.InexactFloat64()
	return &v
}

func intPtr(i int) *int {
	return &i
}
