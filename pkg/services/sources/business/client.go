package business

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tawsil-ops/ops-atlas/pkg/models/domain"
	"github.com/tawsil-ops/ops-atlas/pkg/services/sources"
)

// Client fetches pre-aggregated order figures from the Business unit's API.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: baseURL, http: httpClient}
}

type rankedEntryPayload struct {
	Name   string          `json:"name"`
	Metric decimal.Decimal `json:"metric"`
}

type aggregatePayload struct {
	TotalRevenue      decimal.Decimal      `json:"totalRevenue"`
	TotalMargin       decimal.Decimal      `json:"totalMargin"`
	AverageMarginRate decimal.Decimal      `json:"averageMarginRate"`
	TotalPaid         decimal.Decimal      `json:"totalPaid"`
	TotalUnpaid       decimal.Decimal      `json:"totalUnpaid"`
	TotalOrders       int                  `json:"totalOrders"`
	TopClients        []rankedEntryPayload `json:"topClients"`
	TopProducts       []rankedEntryPayload `json:"topProducts"`
}

func (c *Client) GetAggregate(ctx context.Context, r domain.DateRange) (*sources.BusinessAggregate, error) {
	q := url.Values{}
	q.Set("start", r.Start.Format(time.RFC3339))
	q.Set("end", r.End.Format(time.RFC3339))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/orders/aggregate?%s", c.baseURL, q.Encode()), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("business aggregate request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("business aggregate returned status %d", resp.StatusCode)
	}

	var payload aggregatePayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode business aggregate: %w", err)
	}

	return &sources.BusinessAggregate{
		TotalRevenue:      payload.TotalRevenue,
		TotalMargin:       payload.TotalMargin,
		AverageMarginRate: payload.AverageMarginRate,
		TotalPaid:         payload.TotalPaid,
		TotalUnpaid:       payload.TotalUnpaid,
		TotalOrders:       payload.TotalOrders,
		TopClients:        mapRanked(payload.TopClients),
		TopProducts:       mapRanked(payload.TopProducts),
	}, nil
}

func mapRanked(entries []rankedEntryPayload) []domain.RankedEntry {
	ranked := make([]domain.RankedEntry, 0, len(entries))
	for _, e := range entries {
		ranked = append(ranked, domain.RankedEntry{Name: e.Name, Metric: e.Metric})
	}
	return ranked
}
