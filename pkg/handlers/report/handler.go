package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/de-tools/impact-atlas/pkg/adapters"
	"github.com/de-tools/impact-atlas/pkg/models/api"
	"github.com/de-tools/impact-atlas/pkg/models/domain"
	"github.com/de-tools/impact-atlas/pkg/server/middleware"
	"github.com/de-tools/impact-atlas/pkg/services/report"
	reportstore "github.com/de-tools/impact-atlas/pkg/store/duckdb/report"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type Handler struct {
	engine    *report.Engine
	scheduler *report.Scheduler
}

func NewHandler(engine *report.Engine, scheduler *report.Scheduler) *Handler {
	return &Handler{engine: engine, scheduler: scheduler}
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	reportID, err := strconv.ParseInt(chi.URLParam(r, "report"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid report id")
		return
	}

	caller := middleware.CallerFromContext(ctx)
	generated, err := h.engine.Generate(ctx, caller, reportID)
	if err != nil {
		if errors.Is(err, reportstore.ErrNotFound) {
			writeError(w, http.StatusNotFound, "report not found")
			return
		}
		logger.Error().Err(err).Int64("report", reportID).Msg("failed to generate report")
		writeError(w, http.StatusInternalServerError, "failed to generate report")
		return
	}

	writeJSON(w, logger, adapters.MapReportDomainToApi(generated))
}

func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	reportID, err := strconv.ParseInt(chi.URLParam(r, "report"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid report id")
		return
	}

	download, err := h.engine.Download(ctx, reportID, r.URL.Query().Get("format"))
	if err != nil {
		if errors.Is(err, reportstore.ErrNotFound) {
			writeError(w, http.StatusNotFound, "report not found")
			return
		}
		logger.Error().Err(err).Int64("report", reportID).Msg("failed to render report download")
		writeError(w, http.StatusInternalServerError, "failed to render report")
		return
	}

	w.Header().Set("Content-Type", download.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", download.Filename))
	if _, err := w.Write(download.Content); err != nil {
		logger.Error().Err(err).Msg("failed to write download body")
	}
}

func (h *Handler) CreateScheduled(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var req api.CreateScheduledReport
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	def := domain.ScheduledReport{
		ReportName: req.ReportName,
		ReportType: req.ReportType,
		Frequency:  req.Frequency,
		Recipients: req.Recipients,
	}
	if req.NextRun != nil {
		def.NextRun = *req.NextRun
	}

	caller := middleware.CallerFromContext(ctx)
	created, err := h.scheduler.Create(ctx, caller, def)
	if err != nil {
		if errors.Is(err, report.ErrInvalidFrequency) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		logger.Error().Err(err).Msg("failed to create scheduled report")
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(adapters.MapScheduledReportDomainToApi(created)); err != nil {
		logger.Error().Err(err).Msg("failed to encode scheduled report")
	}
}

func (h *Handler) ListScheduled(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	caller := middleware.CallerFromContext(ctx)
	defs, err := h.scheduler.List(ctx, caller)
	if err != nil {
		logger.Error().Err(err).Msg("failed to list scheduled reports")
		writeError(w, http.StatusInternalServerError, "failed to list scheduled reports")
		return
	}

	response := make([]api.ScheduledReport, 0, len(defs))
	for i := range defs {
		response = append(response, adapters.MapScheduledReportDomainToApi(&defs[i]))
	}
	writeJSON(w, logger, response)
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
