package analytics

import (
	"github.com/shopspring/decimal"
	"github.com/tawsil-ops/ops-atlas/pkg/models/domain"
)

// capabilities is the declarative role → metric table. Aggregation always
// computes everything; role gating is a single selection filter applied to
// the finished summary, never a second computation path.
var capabilities = map[domain.Role][]domain.MetricKey{
	domain.RoleAdmin: {
		domain.MetricRevenue, domain.MetricMargin, domain.MetricOrders,
		domain.MetricParcels, domain.MetricTreasury, domain.MetricTopLists,
	},
	domain.RoleBusiness: {
		domain.MetricRevenue, domain.MetricOrders, domain.MetricParcels,
		domain.MetricTopLists,
	},
	domain.RoleExpress: {
		domain.MetricRevenue, domain.MetricOrders, domain.MetricParcels,
		domain.MetricTopLists,
	},
}

// AllowedMetrics returns the union of metric keys enabled for the role set.
func AllowedMetrics(roles []domain.Role) map[domain.MetricKey]bool {
	allowed := make(map[domain.MetricKey]bool)
	for _, role := range roles {
		for _, key := range capabilities[role] {
			allowed[key] = true
		}
	}
	return allowed
}

// FilterSummary returns a copy of s with metrics outside the role set
// cleared. Counts stay, monetary figures become zero amounts, top lists and
// treasury figures disappear for non-administrative roles.
func FilterSummary(s *domain.AggregateSummary, roles []domain.Role) *domain.AggregateSummary {
	allowed := AllowedMetrics(roles)
	out := *s

	if !allowed[domain.MetricRevenue] {
		out.BusinessRevenue = domain.ZeroAmount(out.BusinessRevenue.Currency)
		out.ExpressRevenue = domain.ZeroAmount(out.ExpressRevenue.Currency)
		out.TotalRevenue = domain.ZeroAmount(out.TotalRevenue.Currency)
		out.TotalPaid = domain.ZeroAmount(out.TotalPaid.Currency)
		out.TotalUnpaid = domain.ZeroAmount(out.TotalUnpaid.Currency)
	}
	if !allowed[domain.MetricMargin] {
		out.TotalMargin = domain.ZeroAmount(out.TotalMargin.Currency)
		out.AverageMarginRate = decimal.Zero
	}
	if !allowed[domain.MetricOrders] {
		out.TotalOrders = 0
	}
	if !allowed[domain.MetricParcels] {
		out.TotalParcels = 0
		out.InTransit = 0
		out.Delivered = 0
	}
	if !allowed[domain.MetricTreasury] {
		out.TreasuryBalanceCFA = domain.ZeroAmount(domain.CurrencyCFA)
		out.TreasuryBalanceMAD = domain.ZeroAmount(domain.CurrencyMAD)
		out.TreasuryGlobalCFA = domain.ZeroAmount(domain.CurrencyCFA)
		out.TreasuryGlobalMAD = domain.ZeroAmount(domain.CurrencyMAD)
	}
	if !allowed[domain.MetricTopLists] {
		out.TopClients = nil
		out.TopProducts = nil
		out.TopDestinations = nil
	}
	return &out
}
