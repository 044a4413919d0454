package treasury

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/tawsil-ops/ops-atlas/pkg/adapters"
	"github.com/tawsil-ops/ops-atlas/pkg/handlers/request"
	"github.com/tawsil-ops/ops-atlas/pkg/models/api"
	"github.com/tawsil-ops/ops-atlas/pkg/models/domain"
	"github.com/tawsil-ops/ops-atlas/pkg/services/analytics"
	"github.com/tawsil-ops/ops-atlas/pkg/services/transfer"
)

const defaultEvolutionDays = 30

// Evolver is the slice of the analytics engine the treasury screens need.
type Evolver interface {
	TreasuryEvolution(ctx context.Context, days int) (*domain.TimeSeries, error)
}

type Handler struct {
	engine   Evolver
	composer *transfer.Composer
}

func NewHandler(engine Evolver, composer *transfer.Composer) *Handler {
	return &Handler{engine: engine, composer: composer}
}

// GetEvolution returns the day-bucketed balance series. Treasury data is
// gated to administrative roles.
func (h *Handler) GetEvolution(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	roles := request.ParseRoles(r)
	if !analytics.AllowedMetrics(roles)[domain.MetricTreasury] {
		request.WriteError(w, r, http.StatusForbidden, "treasury data requires an administrative role")
		return
	}

	days := defaultEvolutionDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			request.WriteError(w, r, http.StatusBadRequest, "days must be a positive integer")
			return
		}
		days = parsed
	}

	series, err := h.engine.TreasuryEvolution(ctx, days)
	if err != nil {
		logger.Error().Err(err).Int("days", days).Msg("failed to build treasury evolution")
		request.WriteError(w, r, http.StatusInternalServerError, "failed to compute evolution")
		return
	}

	request.WriteJSON(w, r, http.StatusOK, adapters.MapTimeSeriesToAPI(series, request.Token(r)))
}

// PreviewTransfer recomputes the destination amount for the draft. The SPA
// calls this on every change to the amount or rate fields.
func (h *Handler) PreviewTransfer(w http.ResponseWriter, r *http.Request) {
	var payload api.TransferDraft
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		request.WriteError(w, r, http.StatusBadRequest, "invalid transfer draft")
		return
	}

	draft := adapters.MapAPIDraftToTransferDraft(payload)
	destination, err := transfer.Compose(draft.SourceAmount, draft.DestinationCurrency, draft.Rate)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRate) {
			request.WriteError(w, r, http.StatusUnprocessableEntity, err.Error())
			return
		}
		request.WriteError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	request.WriteJSON(w, r, http.StatusOK, api.TransferPreview{
		DestinationAmount:   destination.Value.InexactFloat64(),
		DestinationCurrency: string(destination.Currency),
	})
}

// SubmitTransfer validates the draft, builds the instruction and hands it to
// the ledger. Validation failures never reach the ledger; ledger rejections
// surface verbatim.
func (h *Handler) SubmitTransfer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var payload api.TransferDraft
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		request.WriteError(w, r, http.StatusBadRequest, "invalid transfer draft")
		return
	}

	draft := adapters.MapAPIDraftToTransferDraft(payload)
	instr, err := h.composer.Build(draft)
	if err != nil {
		var fieldErrs domain.FieldErrors
		if errors.As(err, &fieldErrs) {
			request.WriteJSON(w, r, http.StatusUnprocessableEntity, api.TransferResult{
				Success:     false,
				FieldErrors: fieldErrs,
			})
			return
		}
		request.WriteError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.composer.Submit(ctx, *instr); err != nil {
		var rejected *domain.LedgerRejectedError
		if errors.As(err, &rejected) {
			request.WriteJSON(w, r, http.StatusConflict, api.TransferResult{
				ID:      instr.ID.String(),
				Success: false,
				Message: rejected.Message,
			})
			return
		}
		logger.Error().Err(err).Str("transfer_id", instr.ID.String()).Msg("transfer submission failed")
		request.WriteError(w, r, http.StatusBadGateway, "transfer submission failed")
		return
	}

	request.WriteJSON(w, r, http.StatusOK, api.TransferResult{
		ID:      instr.ID.String(),
		Success: true,
	})
}
