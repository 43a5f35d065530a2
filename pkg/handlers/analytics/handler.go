package analytics

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/de-tools/impact-atlas/pkg/adapters"
	"github.com/de-tools/impact-atlas/pkg/models/api"
	"github.com/de-tools/impact-atlas/pkg/server/middleware"
	"github.com/de-tools/impact-atlas/pkg/services/analytics"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type Handler struct {
	aggregator *analytics.Aggregator
}

func NewHandler(aggregator *analytics.Aggregator) *Handler {
	return &Handler{aggregator: aggregator}
}

func (h *Handler) IndicatorTrends(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	indicatorID, err := strconv.ParseInt(chi.URLParam(r, "indicator"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid indicator id")
		return
	}

	query := analytics.TrendQuery{
		IndicatorID:    indicatorID,
		Months:         intQuery(r, "months", analytics.DefaultWindowMonths),
		OrganizationID: int64Query(r, "organization"),
		ProjectID:      int64Query(r, "project"),
		DateFrom:       r.URL.Query().Get("date_from"),
		DateTo:         r.URL.Query().Get("date_to"),
	}

	caller := middleware.CallerFromContext(ctx)
	series, err := h.aggregator.IndicatorTrends(ctx, caller, query)
	if err != nil {
		if errors.Is(err, analytics.ErrInvalidDate) || errors.Is(err, analytics.ErrInvalidRange) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		logger.Error().Err(err).Int64("indicator", indicatorID).Msg("failed to compute indicator trends")
		writeError(w, http.StatusInternalServerError, "failed to compute trends")
		return
	}

	writeJSON(w, logger, adapters.MapTrendSeriesDomainToApi(series))
}

func (h *Handler) BulkTrends(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	query := analytics.BulkTrendQuery{
		IndicatorIDs:   analytics.ParseIndicatorIDs(r.URL.Query().Get("indicator_ids")),
		Months:         intQuery(r, "months", analytics.DefaultWindowMonths),
		OrganizationID: int64Query(r, "organization"),
		ProjectID:      int64Query(r, "project"),
		DateFrom:       r.URL.Query().Get("date_from"),
		DateTo:         r.URL.Query().Get("date_to"),
	}

	caller := middleware.CallerFromContext(ctx)
	series, err := h.aggregator.BulkTrends(ctx, caller, query)
	if err != nil {
		if errors.Is(err, analytics.ErrInvalidDate) || errors.Is(err, analytics.ErrInvalidRange) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		logger.Error().Err(err).Msg("failed to compute bulk trends")
		writeError(w, http.StatusInternalServerError, "failed to compute trends")
		return
	}

	writeJSON(w, logger, api.BulkTrendResponse{
		Series: adapters.MapIndicatorSeriesDomainToApi(series),
	})
}

func intQuery(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func int64Query(r *http.Request, name string) int64 {
	value, err := strconv.ParseInt(r.URL.Query().Get(name), 10, 64)
	if err != nil {
		return 0
	}
	return value
}

func writeJSON(w http.ResponseWriter, logger *zerolog.Logger, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(api.Error{Detail: detail})
}
