package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/kinshiphq/kinship/internal/models"
)

// RelationshipHandler serves relationship endpoints.
type RelationshipHandler struct {
	svc RelationshipService
	log *logrus.Logger
}

// NewRelationshipHandler creates a RelationshipHandler.
func NewRelationshipHandler(svc RelationshipService, log *logrus.Logger) *RelationshipHandler {
	return &RelationshipHandler{svc: svc, log: log}
}

// List handles GET /api/v1/relationships.
func (h *RelationshipHandler) List(c *gin.Context) {
	rels, err := h.svc.ListRelationships(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.log, err, "listing relationships")

		return
	}

	c.JSON(http.StatusOK, gin.H{"relationships": rels, "count": len(rels)})
}

// Between handles GET /api/v1/relationships/between/:a/:b. Order of a and b
// does not matter.
func (h *RelationshipHandler) Between(c *gin.Context) {
	a, ok := pathID(c, "a")
	if !ok {
		return
	}

	b, ok := pathID(c, "b")
	if !ok {
		return
	}

	rels, err := h.svc.RelationshipsBetween(c.Request.Context(), a, b)
	if err != nil {
		respondServiceError(c, h.log, err, "listing relationships between contacts")

		return
	}

	c.JSON(http.StatusOK, gin.H{"relationships": rels, "count": len(rels)})
}

// Upsert handles POST /api/v1/relationships. An existing relationship on the
// same pair is overwritten (200); otherwise one is created (201).
func (h *RelationshipHandler) Upsert(c *gin.Context) {
	var req models.UpsertRelationshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

		return
	}

	rel, created, err := h.svc.UpsertRelationship(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, h.log, err, "upserting relationship")

		return
	}

	h.log.WithFields(logrus.Fields{
		"action":          "relationship.upsert",
		"relationship_id": rel.ID,
		"created":         created,
	}).Info("audit")

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}

	c.JSON(status, rel)
}

// Update handles PATCH /api/v1/relationships/:id.
func (h *RelationshipHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.UpdateRelationshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

		return
	}

	rel, err := h.svc.UpdateRelationship(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, h.log, err, "updating relationship")

		return
	}

	h.log.WithFields(logrus.Fields{"action": "relationship.update", "relationship_id": id}).Info("audit")

	c.JSON(http.StatusOK, rel)
}

// Delete handles DELETE /api/v1/relationships/:id.
func (h *RelationshipHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteRelationship(c.Request.Context(), id); err != nil {
		respondServiceError(c, h.log, err, "deleting relationship")

		return
	}

	h.log.WithFields(logrus.Fields{"action": "relationship.delete", "relationship_id": id}).Info("audit")

	c.Status(http.StatusNoContent)
}
