package analytics

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/tawsil-ops/ops-atlas/pkg/models/domain"
)

func fullSummary() *domain.AggregateSummary {
	return &domain.AggregateSummary{
		BusinessRevenue:    domain.NewAmount(dec("500000"), domain.CurrencyCFA),
		ExpressRevenue:     domain.NewAmount(dec("1000"), domain.CurrencyMAD),
		TotalRevenue:       domain.NewAmount(dec("563000"), domain.CurrencyCFA),
		TotalMargin:        domain.NewAmount(dec("120000"), domain.CurrencyCFA),
		AverageMarginRate:  dec("0.24"),
		TotalOrders:        42,
		TotalParcels:       7,
		TreasuryBalanceCFA: domain.NewAmount(dec("1500000"), domain.CurrencyCFA),
		TreasuryBalanceMAD: domain.NewAmount(dec("42000"), domain.CurrencyMAD),
		TopClients:         []domain.RankedEntry{{Name: "Alpha SARL", Metric: dec("90000")}},
	}
}

func TestAllowedMetrics_Union(t *testing.T) {
	allowed := AllowedMetrics([]domain.Role{domain.RoleBusiness, domain.RoleAdmin})

	assert.True(t, allowed[domain.MetricTreasury])
	assert.True(t, allowed[domain.MetricRevenue])
}

func TestAllowedMetrics_NoRoles(t *testing.T) {
	assert.Empty(t, AllowedMetrics(nil))
}

func TestFilterSummary_AdminSeesEverything(t *testing.T) {
	s := fullSummary()

	filtered := FilterSummary(s, []domain.Role{domain.RoleAdmin})

	assert.Equal(t, s, filtered)
}

func TestFilterSummary_NonAdminLosesTreasuryAndMargin(t *testing.T) {
	filtered := FilterSummary(fullSummary(), []domain.Role{domain.RoleBusiness})

	assert.True(t, filtered.TreasuryBalanceCFA.Value.IsZero())
	assert.True(t, filtered.TreasuryBalanceMAD.Value.IsZero())
	assert.True(t, filtered.TotalMargin.Value.IsZero())
	assert.True(t, filtered.AverageMarginRate.Equal(decimal.Zero))

	// Counts and revenue stay for every role.
	assert.Equal(t, 42, filtered.TotalOrders)
	assert.Equal(t, 7, filtered.TotalParcels)
	assert.False(t, filtered.TotalRevenue.Value.IsZero())
	assert.NotEmpty(t, filtered.TopClients)
}

func TestFilterSummary_DoesNotMutateInput(t *testing.T) {
	s := fullSummary()

	_ = FilterSummary(s, []domain.Role{domain.RoleExpress})

	assert.False(t, s.TotalMargin.Value.IsZero())
	assert.False(t, s.TreasuryBalanceCFA.Value.IsZero())
}
