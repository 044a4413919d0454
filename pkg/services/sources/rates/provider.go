package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/tawsil-ops/ops-atlas/pkg/models/domain"
)

const cacheKey = "mad_cfa"

// DefaultRate is used when the settings source is unreachable, so a rate
// outage never blocks the dashboard or transfers.
var DefaultRate = decimal.NewFromInt(63)

// Provider fetches the MAD→CFA rate from the system-settings endpoint,
// caching it so one aggregation pass reads a single consistent value.
type Provider struct {
	baseURL  string
	http     *http.Client
	cache    *cache.Cache
	fallback decimal.Decimal
}

func NewProvider(baseURL string, httpClient *http.Client, ttl time.Duration, fallback decimal.Decimal) *Provider {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if !fallback.IsPositive() {
		fallback = DefaultRate
	}
	return &Provider{
		baseURL:  baseURL,
		http:     httpClient,
		cache:    cache.New(ttl, 2*ttl),
		fallback: fallback,
	}
}

type ratePayload struct {
	Rate decimal.Decimal `json:"rate"`
}

// CurrentRate returns the cached rate, fetching on miss. It never fails:
// an unreachable or invalid settings source yields the fallback.
func (p *Provider) CurrentRate(ctx context.Context) domain.ExchangeRate {
	if cached, found := p.cache.Get(cacheKey); found {
		return domain.NewExchangeRate(cached.(decimal.Decimal))
	}

	value, err := p.fetch(ctx)
	if err != nil {
		zerolog.Ctx(ctx).Warn().
			Err(err).
			Str("fallback", p.fallback.String()).
			Msg("exchange rate fetch failed, using fallback")
		return domain.NewExchangeRate(p.fallback)
	}

	p.cache.Set(cacheKey, value, cache.DefaultExpiration)
	return domain.NewExchangeRate(value)
}

func (p *Provider) fetch(ctx context.Context) (decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/settings/exchange-rate", p.baseURL), nil)
	if err != nil {
		return decimal.Zero, err
	}

	resp, err := p.http.Do(req)
	if err != nil {
		return decimal.Zero, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("settings source returned status %d", resp.StatusCode)
	}

	var payload ratePayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return decimal.Zero, fmt.Errorf("failed to decode exchange rate: %w", err)
	}

	if !payload.Rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("settings source returned non-positive rate %s", payload.Rate)
	}
	return payload.Rate, nil
}
