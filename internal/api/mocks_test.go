package api_test

import (
	"context"

	"github.com/kinshiphq/kinship/internal/models"
)

// mockContactService implements api.ContactService for testing.
type mockContactService struct {
	listFn        func(ctx context.Context, filter models.ContactFilter) ([]models.Contact, error)
	getFn         func(ctx context.Context, id string) (*models.Contact, error)
	createFn      func(ctx context.Context, req models.CreateContactRequest) (*models.Contact, error)
	updateFn      func(ctx context.Context, id string, req models.UpdateContactRequest) (*models.Contact, error)
	deleteFn      func(ctx context.Context, id string) error
	interactionFn func(ctx context.Context, id string, req models.CreateInteractionRequest) (*models.Interaction, error)
}

func (m *mockContactService) ListContacts(ctx context.Context, filter models.ContactFilter) ([]models.Contact, error) {
	return m.listFn(ctx, filter)
}

func (m *mockContactService) GetContact(ctx context.Context, id string) (*models.Contact, error) {
	return m.getFn(ctx, id)
}

func (m *mockContactService) CreateContact(ctx context.Context, req models.CreateContactRequest) (*models.Contact, error) {
	return m.createFn(ctx, req)
}

func (m *mockContactService) UpdateContact(ctx context.Context, id string, req models.UpdateContactRequest) (*models.Contact, error) {
	return m.updateFn(ctx, id, req)
}

func (m *mockContactService) DeleteContact(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

func (m *mockContactService) AddInteraction(
	ctx context.Context, id string, req models.CreateInteractionRequest,
) (*models.Interaction, error) {
	return m.interactionFn(ctx, id, req)
}

// mockRelationshipService implements api.RelationshipService for testing.
type mockRelationshipService struct {
	listFn       func(ctx context.Context) ([]models.Relationship, error)
	betweenFn    func(ctx context.Context, a, b string) ([]models.Relationship, error)
	forContactFn func(ctx context.Context, id string) ([]models.Relationship, error)
	upsertFn     func(ctx context.Context, req models.UpsertRelationshipRequest) (*models.Relationship, bool, error)
	updateFn     func(ctx context.Context, id string, req models.UpdateRelationshipRequest) (*models.Relationship, error)
	deleteFn     func(ctx context.Context, id string) error
}

func (m *mockRelationshipService) ListRelationships(ctx context.Context) ([]models.Relationship, error) {
	return m.listFn(ctx)
}

func (m *mockRelationshipService) RelationshipsBetween(ctx context.Context, a, b string) ([]models.Relationship, error) {
	return m.betweenFn(ctx, a, b)
}

func (m *mockRelationshipService) RelationshipsForContact(ctx context.Context, id string) ([]models.Relationship, error) {
	return m.forContactFn(ctx, id)
}

func (m *mockRelationshipService) UpsertRelationship(
	ctx context.Context, req models.UpsertRelationshipRequest,
) (*models.Relationship, bool, error) {
	return m.upsertFn(ctx, req)
}

func (m *mockRelationshipService) UpdateRelationship(
	ctx context.Context, id string, req models.UpdateRelationshipRequest,
) (*models.Relationship, error) {
	return m.updateFn(ctx, id, req)
}

func (m *mockRelationshipService) DeleteRelationship(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

// mockJournalService implements api.JournalService for testing.
type mockJournalService struct {
	listFn   func(ctx context.Context, filter models.JournalFilter) ([]models.JournalEntry, error)
	createFn func(ctx context.Context, req models.CreateJournalRequest) (*models.JournalEntry, error)
}

func (m *mockJournalService) ListEntries(ctx context.Context, filter models.JournalFilter) ([]models.JournalEntry, error) {
	return m.listFn(ctx, filter)
}

func (m *mockJournalService) CreateEntry(ctx context.Context, req models.CreateJournalRequest) (*models.JournalEntry, error) {
	return m.createFn(ctx, req)
}

// mockExportImportService implements api.ExportImportService for testing.
type mockExportImportService struct {
	exportFn   func(ctx context.Context) (*models.ExportFormat, error)
	validateFn func(ctx context.Context, data *models.ExportFormat, mode models.ImportMode) ([]string, error)
	importFn   func(ctx context.Context, data *models.ExportFormat, opts models.ImportOptions) (*models.ImportResult, error)
}

func (m *mockExportImportService) Export(ctx context.Context) (*models.ExportFormat, error) {
	return m.exportFn(ctx)
}

func (m *mockExportImportService) ValidateImport(
	ctx context.Context, data *models.ExportFormat, mode models.ImportMode,
) ([]string, error) {
	return m.validateFn(ctx, data, mode)
}

func (m *mockExportImportService) Import(
	ctx context.Context, data *models.ExportFormat, opts models.ImportOptions,
) (*models.ImportResult, error) {
	return m.importFn(ctx, data, opts)
}

// mockPinger implements api.Pinger for testing.
type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(context.Context) error { return m.err }
