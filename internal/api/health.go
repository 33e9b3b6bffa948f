// Package api provides the HTTP handlers and router of the kinship server.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Pinger reports whether the slot backend is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ClientCounter reports the number of live feed subscribers.
type ClientCounter interface {
	ClientCount() int
}

// HealthHandler serves health check endpoints.
type HealthHandler struct {
	backend   Pinger
	hub       ClientCounter
	log       *logrus.Logger
	version   string
	storage   string
	startTime time.Time
}

// NewHealthHandler creates a HealthHandler. backend and hub may be nil.
func NewHealthHandler(backend Pinger, hub ClientCounter, log *logrus.Logger, version, storage string) *HealthHandler {
	return &HealthHandler{
		backend:   backend,
		hub:       hub,
		log:       log,
		version:   version,
		storage:   storage,
		startTime: time.Now(),
	}
}

// readinessResponse is the JSON payload returned by the readiness endpoint.
type readinessResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// healthResponse is the JSON payload returned by the health/liveness endpoint.
type healthResponse struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	Storage       string  `json:"storage"`
	LiveClients   int     `json:"live_clients"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// Liveness handles GET /api/v1/health. It never touches the backend.
func (h *HealthHandler) Liveness(c *gin.Context) {
	resp := healthResponse{
		Status:        "ok",
		Version:       h.version,
		Storage:       h.storage,
		UptimeSeconds: time.Since(h.startTime).Seconds(),
	}

	if h.hub != nil {
		resp.LiveClients = h.hub.ClientCount()
	}

	c.JSON(http.StatusOK, resp)
}

// Readiness handles GET /api/v1/ready. It pings the slot backend.
func (h *HealthHandler) Readiness(c *gin.Context) {
	checks := map[string]string{"storage": "ok"}
	status := "ready"
	statusCode := http.StatusOK

	if h.backend == nil {
		checks["storage"] = "not_configured"
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		if err := h.backend.Ping(ctx); err != nil {
			h.log.WithError(err).Error("readiness: storage ping failed")
			checks["storage"] = "error"
			status = "not_ready"
			statusCode = http.StatusServiceUnavailable
		}
	}

	c.JSON(statusCode, readinessResponse{Status: status, Checks: checks})
}
