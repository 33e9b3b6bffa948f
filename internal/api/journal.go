package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/kinshiphq/kinship/internal/models"
)

// JournalHandler serves journal endpoints.
type JournalHandler struct {
	svc JournalService
	log *logrus.Logger
}

// NewJournalHandler creates a JournalHandler.
func NewJournalHandler(svc JournalService, log *logrus.Logger) *JournalHandler {
	return &JournalHandler{svc: svc, log: log}
}

// List handles GET /api/v1/journal?contact_id=&emotion=&tag=. Entries are
// returned newest first.
func (h *JournalHandler) List(c *gin.Context) {
	filter := models.JournalFilter{
		ContactID: c.Query("contact_id"),
		Emotion:   models.JournalEmotion(c.Query("emotion")),
		Tag:       c.Query("tag"),
	}

	if filter.Emotion != "" && !filter.Emotion.Valid() {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, models.ErrInvalidValue("emotion", filter.Emotion).Error())

		return
	}

	entries, err := h.svc.ListEntries(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, h.log, err, "listing journal entries")

		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries, "count": len(entries)})
}

// Create handles POST /api/v1/journal. Tags may be sent as an array or as a
// comma-separated string.
func (h *JournalHandler) Create(c *gin.Context) {
	var req models.CreateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

		return
	}

	entry, err := h.svc.CreateEntry(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, h.log, err, "creating journal entry")

		return
	}

	h.log.WithFields(logrus.Fields{"action": "journal.create", "entry_id": entry.ID}).Info("audit")

	c.JSON(http.StatusCreated, entry)
}
