package org

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/de-tools/impact-atlas/pkg/adapters"
	"github.com/de-tools/impact-atlas/pkg/models/api"
	"github.com/de-tools/impact-atlas/pkg/models/domain"
	"github.com/de-tools/impact-atlas/pkg/server/middleware"
	"github.com/de-tools/impact-atlas/pkg/services/org"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type Handler struct {
	explorer *org.Explorer
}

func NewHandler(explorer *org.Explorer) *Handler {
	return &Handler{explorer: explorer}
}

// List returns the organizations visible to the caller: everything for
// admins, the caller's organization plus descendants and ancestors
// otherwise.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	caller := middleware.CallerFromContext(ctx)
	orgs, err := h.explorer.VisibleOrganizations(ctx, caller)
	if err != nil {
		logger.Error().Err(err).Msg("failed to list organizations")
		writeError(w, http.StatusInternalServerError, "failed to list organizations")
		return
	}

	writeOrganizations(w, logger, orgs)
}

func (h *Handler) Descendants(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	orgID, err := strconv.ParseInt(chi.URLParam(r, "organization"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid organization id")
		return
	}

	orgs, err := h.explorer.Descendants(ctx, orgID)
	if err != nil {
		if errors.Is(err, org.ErrNotFound) {
			writeError(w, http.StatusNotFound, "organization not found")
			return
		}
		logger.Error().Err(err).Int64("organization", orgID).Msg("failed to list descendants")
		writeError(w, http.StatusInternalServerError, "failed to list descendants")
		return
	}

	writeOrganizations(w, logger, orgs)
}

func writeOrganizations(w http.ResponseWriter, logger *zerolog.Logger, orgs []domain.Organization) {
	response := make([]api.Organization, 0, len(orgs))
	for _, o := range orgs {
		response = append(response, adapters.MapOrganizationDomainToApi(o))
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error().Err(err).Msg("failed to encode organizations")
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(api.Error{Detail: detail})
}
