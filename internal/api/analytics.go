package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AnalyticsHandler serves the aggregate read models.
type AnalyticsHandler struct {
	svc AnalyticsService
	log *logrus.Logger
}

// NewAnalyticsHandler creates an AnalyticsHandler.
func NewAnalyticsHandler(svc AnalyticsService, log *logrus.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc, log: log}
}

// Analytics handles GET /api/v1/analytics.
func (h *AnalyticsHandler) Analytics(c *gin.Context) {
	a, err := h.svc.Analytics(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.log, err, "computing analytics")

		return
	}

	c.JSON(http.StatusOK, a)
}

// Dashboard handles GET /api/v1/dashboard.
func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	d, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.log, err, "computing dashboard")

		return
	}

	c.JSON(http.StatusOK, d)
}
