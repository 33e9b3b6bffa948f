package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/kinshiphq/kinship/internal/models"
)

// ExportImportHandler serves backup and restore endpoints.
type ExportImportHandler struct {
	svc ExportImportService
	log *logrus.Logger
}

// NewExportImportHandler creates an ExportImportHandler.
func NewExportImportHandler(svc ExportImportService, log *logrus.Logger) *ExportImportHandler {
	return &ExportImportHandler{svc: svc, log: log}
}

// Export handles GET /api/v1/export.
// Returns every collection as a JSON file attachment.
func (h *ExportImportHandler) Export(c *gin.Context) {
	data, err := h.svc.Export(c.Request.Context())
	if err != nil {
		h.log.WithError(err).Error("exporting data")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "export failed")

		return
	}

	filename := fmt.Sprintf("kinship-export-%s.json", data.ExportedAt.UTC().Format("20060102T150405Z"))

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	h.log.WithFields(logrus.Fields{
		"action":        "export",
		"contacts":      data.Stats.ContactCount,
		"relationships": data.Stats.RelationshipCount,
		"journal":       data.Stats.JournalCount,
	}).Info("audit")

	c.JSON(http.StatusOK, data)
}

// importOptions reads mode and dry_run from the query string.
func importOptions(c *gin.Context) (models.ImportOptions, error) {
	opts := models.ImportOptions{
		Mode:   models.ImportMode(c.DefaultQuery("mode", string(models.ImportMerge))),
		DryRun: c.Query("dry_run") == "true",
	}

	if !opts.Mode.Valid() {
		return opts, models.ErrInvalidValue("mode", opts.Mode)
	}

	return opts, nil
}

// Import handles POST /api/v1/import?mode=replace|merge&dry_run=.
// Accepts an ExportFormat body. Payloads that fail validation are rejected
// with 422 and the list of problems; nothing is written.
func (h *ExportImportHandler) Import(c *gin.Context) {
	opts, err := importOptions(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	var data models.ExportFormat
	if err := c.ShouldBindJSON(&data); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	started := time.Now()

	result, err := h.svc.Import(c.Request.Context(), &data, opts)
	if err != nil {
		h.log.WithError(err).Error("importing data")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "import failed")

		return
	}

	if len(result.Errors) > 0 {
		c.JSON(http.StatusUnprocessableEntity, result)

		return
	}

	h.log.WithFields(logrus.Fields{
		"action":                "import",
		"mode":                  opts.Mode,
		"dry_run":               opts.DryRun,
		"contacts_created":      result.ContactsCreated,
		"relationships_created": result.RelationshipsCreated,
		"relationships_skipped": result.RelationshipsSkipped,
		"duration":              time.Since(started).String(),
	}).Info("audit")

	c.JSON(http.StatusOK, result)
}

// Validate handles POST /api/v1/import/validate?mode=.
// Checks the payload for consistency errors without writing anything.
func (h *ExportImportHandler) Validate(c *gin.Context) {
	opts, err := importOptions(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	var data models.ExportFormat
	if err := c.ShouldBindJSON(&data); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	errs, err := h.svc.ValidateImport(c.Request.Context(), &data, opts.Mode)
	if err != nil {
		h.log.WithError(err).Error("validating import payload")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "validation failed")

		return
	}

	if errs == nil {
		errs = []string{}
	}

	c.JSON(http.StatusOK, gin.H{"errors": errs, "valid": len(errs) == 0})
}
