package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// GraphHandler serves the network graph read model.
type GraphHandler struct {
	svc GraphService
	log *logrus.Logger
}

// NewGraphHandler creates a GraphHandler.
func NewGraphHandler(svc GraphService, log *logrus.Logger) *GraphHandler {
	return &GraphHandler{svc: svc, log: log}
}

// Graph handles GET /api/v1/graph.
func (h *GraphHandler) Graph(c *gin.Context) {
	g, err := h.svc.Graph(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.log, err, "building graph")

		return
	}

	c.JSON(http.StatusOK, g)
}

// Neighbors handles GET /api/v1/graph/neighbors/:id.
func (h *GraphHandler) Neighbors(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	n, err := h.svc.Neighbors(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, h.log, err, "getting neighbors")

		return
	}

	c.JSON(http.StatusOK, n)
}
