package express

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

// Client lists raw parcel records from the Express unit's API. Aggregates
// (counts, sums, top destinations) are derived by the engine, not here.
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

type parcelPayload struct {
	PriceMAD        decimal.Decimal `json:"priceMAD"`
	WeightKg        float64         `json:"weightKg"`
	TotalPaid       decimal.Decimal `json:"totalPaid"`
	Status          string          `json:"status"`
	TripDestination string          `json:"tripDestination"`
}

func (c *Client) ListParcels(ctx context.Context, r domain.DateRange) ([]sources.Parcel, error) {
	q := url.Values{}
	q.Set("start", r.Start.Format(time.RFC3339))
	q.Set("end", r.End.Format(time.RFC3339))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/parcels?%s", c.baseURL, q.Encode()), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("parcel list request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("parcel list returned status %d", resp.StatusCode)
	}

	var payload []parcelPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode parcel list: %w", err)
	}

	parcels := make([]sources.Parcel, 0, len(payload))
	for _, p := range payload {
		parcels = append(parcels, sources.Parcel{
			PriceMAD:        p.PriceMAD,
			WeightKg:        p.WeightKg,
			TotalPaid:       p.TotalPaid,
			Status:          p.Status,
			TripDestination: p.TripDestination,
		})
	}
	return parcels, nil
}
