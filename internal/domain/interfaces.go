// Package domain defines the canonical service interfaces shared across API
// layers (REST handlers, client). Consumers should depend on these interfaces
// rather than re-declaring equivalent ones.
package domain

import (
	"context"

	"github.com/kinshiphq/kinship/internal/models"
)

// ContactService defines all contact operations.
type ContactService interface {
	ListContacts(ctx context.Context, filter models.ContactFilter) ([]models.Contact, error)
	GetContact(ctx context.Context, id string) (*models.Contact, error)
	CreateContact(ctx context.Context, req models.CreateContactRequest) (*models.Contact, error)
	UpdateContact(ctx context.Context, id string, req models.UpdateContactRequest) (*models.Contact, error)
	DeleteContact(ctx context.Context, id string) error
	AddInteraction(ctx context.Context, contactID string, req models.CreateInteractionRequest) (*models.Interaction, error)
}

// RelationshipService defines all relationship operations.
type RelationshipService interface {
	ListRelationships(ctx context.Context) ([]models.Relationship, error)
	RelationshipsBetween(ctx context.Context, a, b string) ([]models.Relationship, error)
	RelationshipsForContact(ctx context.Context, contactID string) ([]models.Relationship, error)
	UpsertRelationship(ctx context.Context, req models.UpsertRelationshipRequest) (*models.Relationship, bool, error)
	UpdateRelationship(ctx context.Context, id string, req models.UpdateRelationshipRequest) (*models.Relationship, error)
	DeleteRelationship(ctx context.Context, id string) error
}

// JournalService defines journal operations.
type JournalService interface {
	ListEntries(ctx context.Context, filter models.JournalFilter) ([]models.JournalEntry, error)
	CreateEntry(ctx context.Context, req models.CreateJournalRequest) (*models.JournalEntry, error)
}

// GraphService defines the network graph read model.
type GraphService interface {
	Graph(ctx context.Context) (*models.Graph, error)
	Neighbors(ctx context.Context, contactID string) (*models.Neighborhood, error)
}

// AnalyticsService defines the aggregate read models.
type AnalyticsService interface {
	Analytics(ctx context.Context) (*models.Analytics, error)
	Dashboard(ctx context.Context) (*models.Dashboard, error)
}

// ExportImportService defines data export and import operations.
type ExportImportService interface {
	Export(ctx context.Context) (*models.ExportFormat, error)
	ValidateImport(ctx context.Context, data *models.ExportFormat, mode models.ImportMode) ([]string, error)
	Import(ctx context.Context, data *models.ExportFormat, opts models.ImportOptions) (*models.ImportResult, error)
}
