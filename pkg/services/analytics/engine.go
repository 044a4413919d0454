// Package analytics merges the Business, Express and Treasury sources into
// unified KPIs and bucketed time series. Source fetches fan out
// concurrently and are joined by bucket index; a failed fetch contributes
// zero and flags the result as partial instead of failing the pass.
package analytics

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/tawsil-ops/ops-atlas/pkg/adapters"
	"github.com/tawsil-ops/ops-atlas/pkg/models/domain"
	storemodels "github.com/tawsil-ops/ops-atlas/pkg/models/store"
	"github.com/tawsil-ops/ops-atlas/pkg/services/currency"
	"github.com/tawsil-ops/ops-atlas/pkg/services/period"
	"github.com/tawsil-ops/ops-atlas/pkg/services/sources"
)

const defaultMaxConcurrentFetches = 8

// Series names exposed in time series payloads.
const (
	SeriesBusiness    = "business"
	SeriesExpress     = "express"
	SeriesTotal       = "total"
	SeriesTreasuryCFA = "treasury_cfa"
	SeriesTreasuryMAD = "treasury_mad"
)

// SnapshotWriter persists one treasury observation per summarize pass.
type SnapshotWriter interface {
	Add(ctx context.Context, snapshot storemodels.TreasurySnapshot) error
}

type Engine struct {
	business  sources.BusinessSource
	express   sources.ExpressSource
	treasury  sources.TreasurySource
	rates     sources.RateProvider
	snapshots SnapshotWriter
	now       func() time.Time
	maxFetch  int
}

type Config struct {
	Business sources.BusinessSource
	Express  sources.ExpressSource
	Treasury sources.TreasurySource
	Rates    sources.RateProvider

	// Snapshots is optional; when wired, every summarize pass records the
	// treasury balances for later historical lookups.
	Snapshots SnapshotWriter

	// MaxConcurrentFetches bounds the bucket fan-out for rate-sensitive
	// sources. Zero means the default.
	MaxConcurrentFetches int

	// Now overrides the clock, for tests.
	Now func() time.Time
}

func NewEngine(cfg Config) *Engine {
	maxFetch := cfg.MaxConcurrentFetches
	if maxFetch <= 0 {
		maxFetch = defaultMaxConcurrentFetches
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Engine{
		business:  cfg.Business,
		express:   cfg.Express,
		treasury:  cfg.Treasury,
		rates:     cfg.Rates,
		snapshots: cfg.Snapshots,
		now:       now,
		maxFetch:  maxFetch,
	}
}

// SummarizePeriod resolves the named period against the current clock and
// summarizes it.
func (e *Engine) SummarizePeriod(ctx context.Context, p domain.Period) (*domain.AggregateSummary, error) {
	r, err := period.Resolve(p, e.now())
	if err != nil {
		return nil, err
	}
	return e.Summarize(ctx, r)
}

// Summarize issues all source fetches for the range concurrently, waits for
// all of them, and combines the figures. The exchange rate is read once and
// threaded through the whole pass.
func (e *Engine) Summarize(ctx context.Context, r domain.DateRange) (*domain.AggregateSummary, error) {
	rate := e.rates.CurrentRate(ctx)
	if !rate.IsValid() {
		return nil, domain.ErrInvalidRate
	}

	var (
		bizAgg   *sources.BusinessAggregate
		parcels  []sources.Parcel
		treasury *sources.TreasurySummary
		bizErr   error
		expErr   error
		treasErr error
	)

	// Goroutines report failures via the captured error variables, not the
	// group: one source going down must not cancel the others.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		bizAgg, bizErr = e.business.GetAggregate(gctx, r)
		return nil
	})
	g.Go(func() error {
		parcels, expErr = e.express.ListParcels(gctx, r)
		return nil
	})
	g.Go(func() error {
		treasury, treasErr = e.treasury.GetSummary(gctx)
		return nil
	})
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	summary := &domain.AggregateSummary{Range: r, Rate: rate}

	if bizErr != nil {
		e.logSourceFailure(ctx, "business", r, bizErr)
		summary.PartialSources = append(summary.PartialSources, "business")
		bizAgg = &sources.BusinessAggregate{}
	}
	if expErr != nil {
		e.logSourceFailure(ctx, "express", r, expErr)
		summary.PartialSources = append(summary.PartialSources, "express")
		parcels = nil
	}
	if treasErr != nil {
		e.logSourceFailure(ctx, "treasury", r, treasErr)
		summary.PartialSources = append(summary.PartialSources, "treasury")
		treasury = &sources.TreasurySummary{}
	}

	summary.BusinessRevenue = domain.NewAmount(bizAgg.TotalRevenue, domain.CurrencyCFA)
	summary.TotalMargin = domain.NewAmount(bizAgg.TotalMargin, domain.CurrencyCFA)
	summary.AverageMarginRate = bizAgg.AverageMarginRate
	summary.TotalPaid = domain.NewAmount(bizAgg.TotalPaid, domain.CurrencyCFA)
	summary.TotalUnpaid = domain.NewAmount(bizAgg.TotalUnpaid, domain.CurrencyCFA)
	summary.TotalOrders = bizAgg.TotalOrders
	summary.TopClients = rank(bizAgg.TopClients, topListSize)
	summary.TopProducts = rank(bizAgg.TopProducts, topListSize)

	express := aggregateParcels(parcels)
	summary.ExpressRevenue = domain.NewAmount(express.revenue, domain.CurrencyMAD)
	summary.TotalParcels = express.count
	summary.InTransit = express.inTransit
	summary.Delivered = express.delivered
	summary.TopDestinations = rank(express.destinations, topListSize)

	expressCFA, err := currency.Convert(summary.ExpressRevenue, domain.CurrencyCFA, rate)
	if err != nil {
		return nil, err
	}
	summary.TotalRevenue = domain.NewAmount(
		summary.BusinessRevenue.Value.Add(expressCFA.Value), domain.CurrencyCFA)

	// Balances stay per currency; cross-currency sums only ever happen
	// through an explicit conversion by the caller.
	summary.TreasuryBalanceCFA = domain.NewAmount(treasury.TotalBalanceCFA, domain.CurrencyCFA)
	summary.TreasuryBalanceMAD = domain.NewAmount(treasury.TotalBalanceMAD, domain.CurrencyMAD)
	summary.TreasuryGlobalCFA = domain.NewAmount(treasury.TotalGlobalCFA, domain.CurrencyCFA)
	summary.TreasuryGlobalMAD = domain.NewAmount(treasury.TotalGlobalMAD, domain.CurrencyMAD)

	if e.snapshots != nil && treasErr == nil {
		snap := adapters.MapTreasurySummaryToStoreSnapshot(treasury, e.now())
		if err := e.snapshots.Add(ctx, snap); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("failed to persist treasury snapshot")
		}
	}

	return summary, nil
}

// RevenueEvolution builds the month-bucketed revenue series for the window
// ending now. Bucket fetches run concurrently, bounded, and results land by
// bucket index so the series order never depends on completion order.
func (e *Engine) RevenueEvolution(ctx context.Context, months int) (*domain.TimeSeries, error) {
	buckets, err := period.Bucketize(months, domain.UnitMonth, e.now(), period.MonthLabel)
	if err != nil {
		return nil, err
	}

	rate := e.rates.CurrentRate(ctx)
	if !rate.IsValid() {
		return nil, domain.ErrInvalidRate
	}

	businessVals := make([]decimal.Decimal, len(buckets))
	expressVals := make([]decimal.Decimal, len(buckets))
	partial := make([]bool, len(buckets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.maxFetch)
	for i, b := range buckets {
		g.Go(func() error {
			agg, err := e.business.GetAggregate(gctx, b.Range)
			if err != nil {
				e.logSourceFailure(gctx, "business", b.Range, err)
				partial[i] = true
			} else {
				businessVals[i] = agg.TotalRevenue
			}

			parcels, err := e.express.ListParcels(gctx, b.Range)
			if err != nil {
				e.logSourceFailure(gctx, "express", b.Range, err)
				partial[i] = true
			} else {
				expressVals[i] = aggregateParcels(parcels).revenue
			}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	totals := make([]decimal.Decimal, len(buckets))
	for i := range buckets {
		converted, err := currency.Convert(
			domain.NewAmount(expressVals[i], domain.CurrencyMAD), domain.CurrencyCFA, rate)
		if err != nil {
			return nil, err
		}
		totals[i] = businessVals[i].Add(converted.Value)
	}

	return &domain.TimeSeries{
		Buckets: buckets,
		Series: map[string][]decimal.Decimal{
			SeriesBusiness: businessVals,
			SeriesExpress:  expressVals,
			SeriesTotal:    totals,
		},
		PartialBuckets: partialIndexes(partial),
	}, nil
}

// TreasuryEvolution builds the day-bucketed balance series. Buckets with no
// history available keep a zero value and are listed in PartialBuckets so
// callers can render them as "no data" rather than a real zero balance.
func (e *Engine) TreasuryEvolution(ctx context.Context, days int) (*domain.TimeSeries, error) {
	buckets, err := period.Bucketize(days, domain.UnitDay, e.now(), period.DayLabel)
	if err != nil {
		return nil, err
	}

	cfaVals := make([]decimal.Decimal, len(buckets))
	madVals := make([]decimal.Decimal, len(buckets))
	partial := make([]bool, len(buckets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.maxFetch)
	for i, b := range buckets {
		g.Go(func() error {
			summary, err := e.treasury.GetSummaryAt(gctx, b.Range.End)
			if err != nil {
				e.logSourceFailure(gctx, "treasury", b.Range, err)
				partial[i] = true
				return nil
			}
			cfaVals[i] = summary.TotalBalanceCFA
			madVals[i] = summary.TotalBalanceMAD
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &domain.TimeSeries{
		Buckets: buckets,
		Series: map[string][]decimal.Decimal{
			SeriesTreasuryCFA: cfaVals,
			SeriesTreasuryMAD: madVals,
		},
		PartialBuckets: partialIndexes(partial),
	}, nil
}

func (e *Engine) logSourceFailure(ctx context.Context, source string, r domain.DateRange, err error) {
	srcErr := &domain.SourceUnavailableError{Source: source, Range: r, Err: err}
	zerolog.Ctx(ctx).Warn().
		Err(srcErr).
		Str("source", source).
		Time("start", r.Start).
		Time("end", r.End).
		Msg("source fetch failed, substituting zero")
}

type expressAggregate struct {
	revenue      decimal.Decimal
	count        int
	inTransit    int
	delivered    int
	destinations []domain.RankedEntry
}

// aggregateParcels derives the Express figures from the raw parcel list.
func aggregateParcels(parcels []sources.Parcel) expressAggregate {
	agg := expressAggregate{count: len(parcels)}
	byDestination := make(map[string]int)

	for _, p := range parcels {
		agg.revenue = agg.revenue.Add(p.PriceMAD)
		switch p.Status {
		case sources.ParcelStatusInTransit:
			agg.inTransit++
		case sources.ParcelStatusDelivered:
			agg.delivered++
		}
		if p.TripDestination != "" {
			byDestination[p.TripDestination]++
		}
	}

	for dest, count := range byDestination {
		agg.destinations = append(agg.destinations, domain.RankedEntry{
			Name:   dest,
			Metric: decimal.NewFromInt(int64(count)),
		})
	}
	return agg
}

func partialIndexes(flags []bool) []int {
	var indexes []int
	for i, flagged := range flags {
		if flagged {
			indexes = append(indexes, i)
		}
	}
	return indexes
}
