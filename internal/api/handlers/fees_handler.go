package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Cheertaboi/clinic-fees-service/internal/logger"
	"github.com/Cheertaboi/clinic-fees-service/internal/models"
	"github.com/Cheertaboi/clinic-fees-service/internal/pricing"
	"github.com/Cheertaboi/clinic-fees-service/internal/render"
	"github.com/Cheertaboi/clinic-fees-service/internal/service"
)

// statusClientClosedRequest is returned when a newer selection superseded the request.
const statusClientClosedRequest = 499

type FeesHandler struct {
	service *service.PricingService
}

func NewFeesHandler(svc *service.PricingService) *FeesHandler {
	return &FeesHandler{service: svc}
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := http.StatusInternalServerError
	msg := "internal_error"

	switch {
	case errors.Is(err, pricing.ErrUnknownPolicy):
		code, msg = http.StatusBadRequest, "unknown_policy"
	case errors.Is(err, service.ErrLocationNotFound):
		code, msg = http.StatusNotFound, "no_data_for_location"
	case errors.Is(err, context.Canceled):
		code, msg = statusClientClosedRequest, "superseded"
	case errors.Is(err, context.DeadlineExceeded):
		code, msg = http.StatusGatewayTimeout, "price_source_timeout"
	case errors.Is(err, service.ErrNoData):
		code, msg = http.StatusBadGateway, "price_source_unavailable"
	}

	if code >= http.StatusInternalServerError {
		logger.LogError("%s %s: %v", r.Method, r.URL.Path, err)
	} else {
		logger.LogWarn("%s %s: %v", r.Method, r.URL.Path, err)
	}
	writeJSON(w, code, map[string]string{"error": msg})
}

// viewerID identifies whose earlier selection a new request supersedes.
func viewerID(r *http.Request) string {
	if v := r.Header.Get("X-Viewer-ID"); v != "" {
		return v
	}
	return r.URL.Query().Get("viewer")
}

func (h *FeesHandler) buildTables(r *http.Request) (*models.LocationTables, error) {
	locationID := chi.URLParam(r, "locationID")
	policy := r.URL.Query().Get("policy")
	return h.service.BuildLocationTables(r.Context(), viewerID(r), locationID, policy)
}

// --- Handlers ---

// ListLocations handles GET /locations
func (h *FeesHandler) ListLocations(w http.ResponseWriter, r *http.Request) {
	opts, err := h.service.ListLocations(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, opts)
}

// GetTables handles GET /locations/{locationID}/tables
func (h *FeesHandler) GetTables(w http.ResponseWriter, r *http.Request) {
	tables, err := h.buildTables(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tables)
}

// GetTablesHTML handles GET /locations/{locationID}/tables.html
func (h *FeesHandler) GetTablesHTML(w http.ResponseWriter, r *http.Request) {
	tables, err := h.buildTables(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := render.Tables(&buf, tables); err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
