package treasury

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tawsil-ops/ops-atlas/pkg/services/sources"
)

// Client fetches treasury balance snapshots from the ledger backend.
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

type summaryPayload struct {
	TotalBalanceCFA decimal.Decimal `json:"totalBalanceCFA"`
	TotalBalanceMAD decimal.Decimal `json:"totalBalanceMAD"`
	TotalGlobalCFA  decimal.Decimal `json:"totalGlobalCFA"`
	TotalGlobalMAD  decimal.Decimal `json:"totalGlobalMAD"`
}

func (c *Client) GetSummary(ctx context.Context) (*sources.TreasurySummary, error) {
	return c.fetch(ctx, fmt.Sprintf("%s/summary", c.baseURL))
}

func (c *Client) GetSummaryAt(ctx context.Context, asOf time.Time) (*sources.TreasurySummary, error) {
	q := url.Values{}
	q.Set("asOf", asOf.Format(time.RFC3339))
	return c.fetch(ctx, fmt.Sprintf("%s/summary?%s", c.baseURL, q.Encode()))
}

func (c *Client) fetch(ctx context.Context, target string) (*sources.TreasurySummary, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("treasury summary request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("treasury summary returned status %d", resp.StatusCode)
	}

	var payload summaryPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode treasury summary: %w", err)
	}

	return &sources.TreasurySummary{
		TotalBalanceCFA: payload.TotalBalanceCFA,
		TotalBalanceMAD: payload.TotalBalanceMAD,
		TotalGlobalCFA:  payload.TotalGlobalCFA,
		TotalGlobalMAD:  payload.TotalGlobalMAD,
	}, nil
}
