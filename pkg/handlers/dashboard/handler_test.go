package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/tawsil-ops/ops-atlas/pkg/handlers/request"
	"github.com/tawsil-ops/ops-atlas/pkg/models/api"
	"github.com/tawsil-ops/ops-atlas/pkg/models/domain"
)

type mockAggregator struct {
	mock.Mock
}

func (m *mockAggregator) SummarizePeriod(ctx context.Context, p domain.Period) (*domain.AggregateSummary, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AggregateSummary), args.Error(1)
}

func (m *mockAggregator) RevenueEvolution(ctx context.Context, months int) (*domain.TimeSeries, error) {
	args := m.Called(ctx, months)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TimeSeries), args.Error(1)
}

func summaryFixture() *domain.AggregateSummary {
	start := time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 8, 15, 14, 30, 0, 0, time.UTC)
	return &domain.AggregateSummary{
		Range:              domain.DateRange{Start: start, End: end},
		Rate:               domain.NewExchangeRate(decimal.NewFromInt(63)),
		BusinessRevenue:    domain.NewAmount(decimal.NewFromInt(500000), domain.CurrencyCFA),
		ExpressRevenue:     domain.NewAmount(decimal.NewFromInt(1000), domain.CurrencyMAD),
		TotalRevenue:       domain.NewAmount(decimal.NewFromInt(563000), domain.CurrencyCFA),
		TotalMargin:        domain.NewAmount(decimal.NewFromInt(120000), domain.CurrencyCFA),
		AverageMarginRate:  decimal.NewFromFloat(0.24),
		TotalOrders:        42,
		TotalParcels:       17,
		InTransit:          5,
		Delivered:          12,
		TreasuryBalanceCFA: domain.NewAmount(decimal.NewFromInt(900000), domain.CurrencyCFA),
		TreasuryBalanceMAD: domain.NewAmount(decimal.NewFromInt(14000), domain.CurrencyMAD),
		TopDestinations: []domain.RankedEntry{
			{Name: "Casablanca", Metric: decimal.NewFromInt(9)},
		},
	}
}

func TestGetSummary(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		roles          string
		setupMock      func(*mockAggregator)
		expectedStatus int
		check          func(*testing.T, api.Summary)
	}{
		{
			name:  "admin sees every metric group",
			url:   "/api/v1/dashboard/summary?period=week",
			roles: "admin",
			setupMock: func(m *mockAggregator) {
				m.On("SummarizePeriod", mock.Anything, domain.PeriodWeek).Return(summaryFixture(), nil)
			},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, got api.Summary) {
				assert.Equal(t, "tok-1", got.RequestID, "caller's token must be echoed")
				assert.Equal(t, 63.0, got.ExchangeRate)
				assert.Equal(t, 563000.0, *got.TotalRevenue)
				assert.Equal(t, 42, *got.TotalOrders)
				assert.Equal(t, 900000.0, *got.TreasuryBalanceCFA)
				assert.Equal(t, []api.RankedEntry{{Name: "Casablanca", Metric: 9}}, got.TopDestinations)
				assert.False(t, got.Partial)
			},
		},
		{
			name:  "missing period defaults to month",
			url:   "/api/v1/dashboard/summary",
			roles: "admin",
			setupMock: func(m *mockAggregator) {
				m.On("SummarizePeriod", mock.Anything, domain.PeriodMonth).Return(summaryFixture(), nil)
			},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, got api.Summary) {
				assert.Equal(t, 563000.0, *got.TotalRevenue)
			},
		},
		{
			name:  "express role does not see treasury or margin",
			url:   "/api/v1/dashboard/summary",
			roles: "express",
			setupMock: func(m *mockAggregator) {
				m.On("SummarizePeriod", mock.Anything, domain.PeriodMonth).Return(summaryFixture(), nil)
			},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, got api.Summary) {
				assert.Nil(t, got.TreasuryBalanceCFA)
				assert.Nil(t, got.TotalMargin)
				assert.NotNil(t, got.TotalRevenue)
				assert.Equal(t, 17, *got.TotalParcels)
			},
		},
		{
			name:           "unknown period is rejected",
			url:            "/api/v1/dashboard/summary?period=fortnight",
			roles:          "admin",
			setupMock:      func(m *mockAggregator) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:  "invalid exchange rate maps to bad gateway",
			url:   "/api/v1/dashboard/summary",
			roles: "admin",
			setupMock: func(m *mockAggregator) {
				m.On("SummarizePeriod", mock.Anything, domain.PeriodMonth).
					Return(nil, fmt.Errorf("resolving rate: %w", domain.ErrInvalidRate))
			},
			expectedStatus: http.StatusBadGateway,
		},
		{
			name:  "engine failure maps to internal error",
			url:   "/api/v1/dashboard/summary",
			roles: "admin",
			setupMock: func(m *mockAggregator) {
				m.On("SummarizePeriod", mock.Anything, domain.PeriodMonth).
					Return(nil, fmt.Errorf("boom"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := new(mockAggregator)
			tt.setupMock(engine)
			handler := NewHandler(engine)

			req := httptest.NewRequest("GET", tt.url, nil)
			req.Header.Set(request.RolesHeader, tt.roles)
			req.Header.Set(request.TokenHeader, "tok-1")
			rec := httptest.NewRecorder()

			handler.GetSummary(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.check != nil {
				var got api.Summary
				assert.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
				tt.check(t, got)
			}
			engine.AssertExpectations(t)
		})
	}
}

func TestGetRevenueEvolution(t *testing.T) {
	series := &domain.TimeSeries{
		Buckets: []domain.Bucket{{Label: "Jul"}, {Label: "Aug"}},
		Series: map[string][]decimal.Decimal{
			"total": {decimal.NewFromInt(100), decimal.NewFromInt(200)},
		},
		PartialBuckets: []int{1},
	}

	tests := []struct {
		name           string
		url            string
		setupMock      func(*mockAggregator)
		expectedStatus int
		check          func(*testing.T, api.TimeSeries)
	}{
		{
			name: "defaults to twelve months",
			url:  "/api/v1/dashboard/revenue-evolution",
			setupMock: func(m *mockAggregator) {
				m.On("RevenueEvolution", mock.Anything, 12).Return(series, nil)
			},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, got api.TimeSeries) {
				assert.Equal(t, []string{"Jul", "Aug"}, got.Labels)
				assert.Equal(t, []float64{100, 200}, got.Series["total"])
				assert.Equal(t, []int{1}, got.PartialBuckets)
			},
		},
		{
			name: "honours the months parameter",
			url:  "/api/v1/dashboard/revenue-evolution?months=6",
			setupMock: func(m *mockAggregator) {
				m.On("RevenueEvolution", mock.Anything, 6).Return(series, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "rejects non-positive months",
			url:            "/api/v1/dashboard/revenue-evolution?months=0",
			setupMock:      func(m *mockAggregator) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "rejects non-numeric months",
			url:            "/api/v1/dashboard/revenue-evolution?months=many",
			setupMock:      func(m *mockAggregator) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "engine failure maps to internal error",
			url:  "/api/v1/dashboard/revenue-evolution",
			setupMock: func(m *mockAggregator) {
				m.On("RevenueEvolution", mock.Anything, 12).Return(nil, fmt.Errorf("boom"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := new(mockAggregator)
			tt.setupMock(engine)
			handler := NewHandler(engine)

			req := httptest.NewRequest("GET", tt.url, nil)
			rec := httptest.NewRecorder()

			handler.GetRevenueEvolution(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.check != nil && tt.expectedStatus == http.StatusOK {
				var got api.TimeSeries
				assert.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
				tt.check(t, got)
			}
			engine.AssertExpectations(t)
		})
	}
}
