// Viewstats - Netflix Viewing History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/viewstats

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/viewstats/internal/logging"
	"github.com/tomtom215/viewstats/internal/models"
)

// Health reports version, uptime, store health and whether data is loaded.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	resp := models.HealthResponse{
		Status:    "healthy",
		Version:   h.version,
		Uptime:    time.Since(h.startTime).Seconds(),
		Checks:    map[string]string{"store": "ok", "import": "idle"},
		Timestamp: time.Now().UTC(),
	}

	if err := h.store.Ping(r.Context()); err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("Store health check failed")
		resp.Status = "degraded"
		resp.Checks["store"] = "unavailable"
	} else if hasData, err := h.store.Has(r.Context()); err == nil {
		resp.HasData = hasData
	}
	if h.importer.Running() {
		resp.Checks["import"] = "running"
	}

	respondData(w, http.StatusOK, resp, start)
}

// HealthLive is the liveness probe. It only proves the process serves HTTP.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondData(w, http.StatusOK, map[string]string{"status": "alive"}, time.Now())
}

// HealthReady is the readiness probe. It fails while the store is unavailable.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		respondError(w, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "store is not ready", nil)
		return
	}
	respondData(w, http.StatusOK, map[string]string{"status": "ready"}, time.Now())
}
