package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/kinshiphq/kinship/internal/models"
)

// ContactHandler serves contact CRUD and interaction endpoints.
type ContactHandler struct {
	svc  ContactService
	rels RelationshipService
	log  *logrus.Logger
}

// NewContactHandler creates a ContactHandler. rels backs the per-contact
// relationship listing.
func NewContactHandler(svc ContactService, rels RelationshipService, log *logrus.Logger) *ContactHandler {
	return &ContactHandler{svc: svc, rels: rels, log: log}
}

// List handles GET /api/v1/contacts?q=&category=&status=.
func (h *ContactHandler) List(c *gin.Context) {
	filter := models.ContactFilter{
		Search:   c.Query("q"),
		Category: models.Category(c.Query("category")),
		Status:   models.RelationshipStatus(c.Query("status")),
	}

	if filter.Category != "" && !filter.Category.Valid() {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, models.ErrInvalidValue("category", filter.Category).Error())

		return
	}

	if filter.Status != "" && !filter.Status.Valid() {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, models.ErrInvalidValue("status", filter.Status).Error())

		return
	}

	contacts, err := h.svc.ListContacts(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, h.log, err, "listing contacts")

		return
	}

	c.JSON(http.StatusOK, gin.H{"contacts": contacts, "count": len(contacts)})
}

// Get handles GET /api/v1/contacts/:id.
func (h *ContactHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	contact, err := h.svc.GetContact(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, h.log, err, "getting contact")

		return
	}

	c.JSON(http.StatusOK, contact)
}

// Create handles POST /api/v1/contacts.
func (h *ContactHandler) Create(c *gin.Context) {
	var req models.CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

		return
	}

	contact, err := h.svc.CreateContact(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, h.log, err, "creating contact")

		return
	}

	h.log.WithFields(logrus.Fields{"action": "contact.create", "contact_id": contact.ID}).Info("audit")

	c.JSON(http.StatusCreated, contact)
}

// Update handles PATCH /api/v1/contacts/:id. Only the fields present in the
// body are changed.
func (h *ContactHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

		return
	}

	contact, err := h.svc.UpdateContact(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, h.log, err, "updating contact")

		return
	}

	h.log.WithFields(logrus.Fields{"action": "contact.update", "contact_id": id}).Info("audit")

	c.JSON(http.StatusOK, contact)
}

// Delete handles DELETE /api/v1/contacts/:id. Relationships touching the
// contact are removed with it.
func (h *ContactHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteContact(c.Request.Context(), id); err != nil {
		respondServiceError(c, h.log, err, "deleting contact")

		return
	}

	h.log.WithFields(logrus.Fields{"action": "contact.delete", "contact_id": id}).Info("audit")

	c.Status(http.StatusNoContent)
}

// AddInteraction handles POST /api/v1/contacts/:id/interactions.
func (h *ContactHandler) AddInteraction(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.CreateInteractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

		return
	}

	in, err := h.svc.AddInteraction(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, h.log, err, "adding interaction")

		return
	}

	h.log.WithFields(logrus.Fields{
		"action":         "interaction.create",
		"contact_id":     id,
		"interaction_id": in.ID,
	}).Info("audit")

	c.JSON(http.StatusCreated, in)
}

// Relationships handles GET /api/v1/contacts/:id/relationships.
func (h *ContactHandler) Relationships(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	rels, err := h.rels.RelationshipsForContact(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, h.log, err, "listing contact relationships")

		return
	}

	c.JSON(http.StatusOK, gin.H{"relationships": rels, "count": len(rels)})
}
