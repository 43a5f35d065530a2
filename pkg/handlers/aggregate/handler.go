package aggregate

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/de-tools/impact-atlas/pkg/adapters"
	"github.com/de-tools/impact-atlas/pkg/models/api"
	"github.com/de-tools/impact-atlas/pkg/server/middleware"
	"github.com/de-tools/impact-atlas/pkg/services/analytics"
	"github.com/de-tools/impact-atlas/pkg/services/ingest"
	"github.com/rs/zerolog"
)

type Handler struct {
	aggregator *analytics.Aggregator
	ingest     *ingest.Service
}

func NewHandler(aggregator *analytics.Aggregator, ingestSvc *ingest.Service) *Handler {
	return &Handler{aggregator: aggregator, ingest: ingestSvc}
}

func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	query := analytics.SummaryQuery{
		IndicatorID:    int64Query(r, "indicator"),
		OrganizationID: int64Query(r, "organization"),
		ProjectID:      int64Query(r, "project"),
		DateFrom:       r.URL.Query().Get("date_from"),
		DateTo:         r.URL.Query().Get("date_to"),
	}

	caller := middleware.CallerFromContext(ctx)
	rows, err := h.aggregator.Summary(ctx, caller, query)
	if err != nil {
		logger.Error().Err(err).Msg("failed to compute aggregate summary")
		writeError(w, http.StatusInternalServerError, "failed to compute summary")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(adapters.MapIndicatorSummariesDomainToApi(rows)); err != nil {
		logger.Error().Err(err).Msg("failed to encode summary")
	}
}

func (h *Handler) BulkCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var req api.BulkAggregates
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	batch := ingest.Batch{
		ProjectID:      req.Project,
		OrganizationID: req.Organization,
		PeriodStart:    req.PeriodStart,
		PeriodEnd:      req.PeriodEnd,
	}
	for _, item := range req.Data {
		batch.Items = append(batch.Items, ingest.Item{
			IndicatorID: item.Indicator,
			Value:       item.Value,
			Notes:       item.Notes,
		})
	}

	caller := middleware.CallerFromContext(ctx)
	created, err := h.ingest.BulkCreate(ctx, caller, batch)
	if err != nil {
		if errors.Is(err, ingest.ErrValidation) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		logger.Error().Err(err).Msg("failed to ingest aggregate batch")
		writeError(w, http.StatusInternalServerError, "failed to create aggregates")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(api.BulkAggregatesResult{Created: created}); err != nil {
		logger.Error().Err(err).Msg("failed to encode bulk result")
	}
}

func int64Query(r *http.Request, name string) int64 {
	value, err := strconv.ParseInt(r.URL.Query().Get(name), 10, 64)
	if err != nil {
		return 0
	}
	return value
}

func writeError(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(api.Error{Detail: detail})
}
