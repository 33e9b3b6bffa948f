package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kinshiphq/kinship/internal/domain"
	"github.com/kinshiphq/kinship/internal/models"
)

// exportImportStore is the minimal store interface consumed by ExportImportService.
// Defined at the consumer so the store package depends on no service types.
type exportImportStore interface {
	Snapshot() models.Snapshot
	Restore(ctx context.Context, in models.Snapshot, mode models.ImportMode, dryRun bool) (models.ImportResult, error)
}

// Compile-time check: *ExportImportService must satisfy domain.ExportImportService.
var _ domain.ExportImportService = (*ExportImportService)(nil)

// ExportImportService implements domain.ExportImportService.
type ExportImportService struct {
	store  exportImportStore
	events EventEnqueuer
	log    *logrus.Logger
	now    func() time.Time
}

// NewExportImportService creates an ExportImportService.
func NewExportImportService(store exportImportStore, events EventEnqueuer, log *logrus.Logger) *ExportImportService {
	return &ExportImportService{store: store, events: events, log: log, now: time.Now}
}

// Export serialises all three collections into a portable format.
func (s *ExportImportService) Export(_ context.Context) (*models.ExportFormat, error) {
	snap := s.store.Snapshot()

	interactions := 0
	for i := range snap.Contacts {
		interactions += len(snap.Contacts[i].Interactions)
	}

	return &models.ExportFormat{
		SchemaVersion: models.ExportSchemaVersion,
		ExportedAt:    s.now().UTC(),
		Stats: models.ExportStats{
			ContactCount:      len(snap.Contacts),
			RelationshipCount: len(snap.Relationships),
			JournalCount:      len(snap.JournalEntries),
			InteractionCount:  interactions,
		},
		Snapshot: snap,
	}, nil
}

// ValidateImport checks an export payload for consistency errors without
// touching the store. An empty slice means the payload is valid. In merge
// mode, relationship endpoints may also refer to contacts already stored.
func (s *ExportImportService) ValidateImport(
	_ context.Context, data *models.ExportFormat, mode models.ImportMode,
) ([]string, error) {
	var errs []string

	if data.SchemaVersion > models.ExportSchemaVersion {
		errs = append(errs, fmt.Sprintf(
			"export schema version %d is newer than this instance (%d); upgrade before importing",
			data.SchemaVersion, models.ExportSchemaVersion,
		))
	}

	if !mode.Valid() {
		errs = append(errs, fmt.Sprintf("unknown import mode %q", mode))
	}

	contactIDs := make(map[string]struct{}, len(data.Contacts))
	errs = append(errs, validateContacts(data.Contacts, contactIDs)...)

	if mode == models.ImportMerge {
		for _, c := range s.store.Snapshot().Contacts {
			contactIDs[c.ID] = struct{}{}
		}
	}

	errs = append(errs, validateRelationships(data.Relationships, contactIDs)...)
	errs = append(errs, validateJournal(data.JournalEntries)...)

	return errs, nil
}

// Import loads a previously exported payload. Validation errors are reported
// in the result and nothing is written.
func (s *ExportImportService) Import(
	ctx context.Context, data *models.ExportFormat, opts models.ImportOptions,
) (*models.ImportResult, error) {
	if opts.Mode == "" {
		opts.Mode = models.ImportMerge
	}

	errs, err := s.ValidateImport(ctx, data, opts.Mode)
	if err != nil {
		return nil, fmt.Errorf("validating import: %w", err)
	}

	if len(errs) > 0 {
		return &models.ImportResult{Errors: errs}, nil
	}

	res, err := s.store.Restore(ctx, data.Snapshot, opts.Mode, opts.DryRun)
	if err != nil {
		return nil, fmt.Errorf("restoring snapshot: %w", err)
	}

	if !opts.DryRun {
		s.log.WithFields(logrus.Fields{
			"mode":          opts.Mode,
			"contacts":      res.ContactsCreated + res.ContactsUpdated,
			"relationships": res.RelationshipsCreated + res.RelationshipsUpdated,
			"journal":       res.JournalCreated + res.JournalUpdated,
		}).Info("import completed")

		publish(s.events, EventImportCompleted, "", res)
	}

	return &res, nil
}

// The validators below fill defaults in place, so a payload that passes is
// restored with the same attribute values a new record would get.

func validateContacts(contacts []models.Contact, ids map[string]struct{}) []string {
	var errs []string

	for i := range contacts {
		c := &contacts[i]
		if c.ID == "" {
			errs = append(errs, fmt.Sprintf("contacts[%d]: id is empty", i))
			continue
		}

		if _, dup := ids[c.ID]; dup {
			errs = append(errs, fmt.Sprintf("contacts[%d]: duplicate id %s", i, c.ID))
		}
		ids[c.ID] = struct{}{}

		if c.Name == "" {
			errs = append(errs, fmt.Sprintf("contacts[%d] (%s): name is empty", i, c.ID))
			continue
		}

		if err := c.ValidateImported(); err != nil {
			errs = append(errs, fmt.Sprintf("contacts[%d] (%s): %v", i, c.ID, err))
		}
	}

	return errs
}

func validateRelationships(rels []models.Relationship, contactIDs map[string]struct{}) []string {
	var errs []string

	ids := make(map[string]struct{}, len(rels))
	pairs := make(map[string]string, len(rels))

	for i := range rels {
		r := &rels[i]
		if r.ID == "" {
			errs = append(errs, fmt.Sprintf("relationships[%d]: id is empty", i))
			continue
		}

		if _, dup := ids[r.ID]; dup {
			errs = append(errs, fmt.Sprintf("relationships[%d]: duplicate id %s", i, r.ID))
		}
		ids[r.ID] = struct{}{}

		if err := r.ValidateImported(); err != nil {
			errs = append(errs, fmt.Sprintf("relationships[%d] (%s): %v", i, r.ID, err))
		}

		if r.SourceID == r.TargetID {
			errs = append(errs, fmt.Sprintf("relationships[%d] (%s): source and target are the same", i, r.ID))
			continue
		}

		for _, end := range []string{r.SourceID, r.TargetID} {
			if _, ok := contactIDs[end]; !ok {
				errs = append(errs, fmt.Sprintf("relationships[%d] (%s): unknown contact %q", i, r.ID, end))
			}
		}

		key := models.PairKey(r.SourceID, r.TargetID)
		if other, dup := pairs[key]; dup {
			errs = append(errs, fmt.Sprintf("relationships[%d] (%s): pair already used by %s", i, r.ID, other))
		}
		pairs[key] = r.ID
	}

	return errs
}

func validateJournal(entries []models.JournalEntry) []string {
	var errs []string

	ids := make(map[string]struct{}, len(entries))

	for i := range entries {
		e := &entries[i]
		if e.ID == "" {
			errs = append(errs, fmt.Sprintf("journal[%d]: id is empty", i))
			continue
		}

		if _, dup := ids[e.ID]; dup {
			errs = append(errs, fmt.Sprintf("journal[%d]: duplicate id %s", i, e.ID))
		}
		ids[e.ID] = struct{}{}

		if e.Title == "" {
			errs = append(errs, fmt.Sprintf("journal[%d] (%s): title is empty", i, e.ID))
			continue
		}

		if err := e.ValidateImported(); err != nil {
			errs = append(errs, fmt.Sprintf("journal[%d] (%s): %v", i, e.ID, err))
		}
	}

	return errs
}
