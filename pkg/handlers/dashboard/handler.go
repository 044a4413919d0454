package dashboard

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/tawsil-ops/ops-atlas/pkg/adapters"
	"github.com/tawsil-ops/ops-atlas/pkg/handlers/request"
	"github.com/tawsil-ops/ops-atlas/pkg/models/domain"
	"github.com/tawsil-ops/ops-atlas/pkg/services/analytics"
)

const (
	defaultPeriod          = domain.PeriodMonth
	defaultEvolutionMonths = 12
)

// Aggregator is the slice of the analytics engine the dashboard needs.
type Aggregator interface {
	SummarizePeriod(ctx context.Context, p domain.Period) (*domain.AggregateSummary, error)
	RevenueEvolution(ctx context.Context, months int) (*domain.TimeSeries, error)
}

type Handler struct {
	engine Aggregator
}

func NewHandler(engine Aggregator) *Handler {
	return &Handler{engine: engine}
}

// GetSummary resolves the requested period and returns the role-filtered KPI
// snapshot.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	p := defaultPeriod
	if raw := r.URL.Query().Get("period"); raw != "" {
		parsed, err := domain.ParsePeriod(raw)
		if err != nil {
			request.WriteError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		p = parsed
	}

	roles := request.ParseRoles(r)
	summary, err := h.engine.SummarizePeriod(ctx, p)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRate) {
			request.WriteError(w, r, http.StatusBadGateway, err.Error())
			return
		}
		logger.Error().Err(err).Str("period", string(p)).Msg("failed to summarize period")
		request.WriteError(w, r, http.StatusInternalServerError, "failed to compute summary")
		return
	}

	filtered := analytics.FilterSummary(summary, roles)
	payload := adapters.MapSummaryToAPI(filtered, analytics.AllowedMetrics(roles), request.Token(r))
	request.WriteJSON(w, r, http.StatusOK, payload)
}

// GetRevenueEvolution returns the month-bucketed revenue series.
func (h *Handler) GetRevenueEvolution(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	months := defaultEvolutionMonths
	if raw := r.URL.Query().Get("months"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			request.WriteError(w, r, http.StatusBadRequest, "months must be a positive integer")
			return
		}
		months = parsed
	}

	series, err := h.engine.RevenueEvolution(ctx, months)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRate) {
			request.WriteError(w, r, http.StatusBadGateway, err.Error())
			return
		}
		logger.Error().Err(err).Int("months", months).Msg("failed to build revenue evolution")
		request.WriteError(w, r, http.StatusInternalServerError, "failed to compute evolution")
		return
	}

	request.WriteJSON(w, r, http.StatusOK, adapters.MapTimeSeriesToAPI(series, request.Token(r)))
}
