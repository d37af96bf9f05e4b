// Copyright (c) 2025-2026 Adam Taylor
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/AdamEDGECreative/WP-Menu-Query/internal/version"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	db        *sql.DB
	startTime time.Time
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(db *sql.DB) *HealthHandler {
	return &HealthHandler{db: db, startTime: time.Now()}
}

// healthStatus is the health check payload.
type healthStatus struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
	Version string `json:"version"`
}

// Health answers liveness checks, verifying database connectivity.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := healthStatus{
		Status:  "ok",
		Uptime:  time.Since(h.startTime).Round(time.Second).String(),
		Version: version.Get().Version,
	}

	if err := h.db.PingContext(r.Context()); err != nil {
		status.Status = "degraded"
		WriteJSON(w, http.StatusServiceUnavailable, status)
		return
	}

	WriteJSON(w, http.StatusOK, status)
}
