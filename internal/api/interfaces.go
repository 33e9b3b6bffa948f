package api

import "github.com/kinshiphq/kinship/internal/domain"

// Service interfaces consumed by the handlers.
type (
	ContactService      = domain.ContactService
	RelationshipService = domain.RelationshipService
	JournalService      = domain.JournalService
	GraphService        = domain.GraphService
	AnalyticsService    = domain.AnalyticsService
	ExportImportService = domain.ExportImportService
)
