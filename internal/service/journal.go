package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/kinshiphq/kinship/internal/domain"
	"github.com/kinshiphq/kinship/internal/models"
)

// JournalStore is the store surface JournalService depends on.
type JournalStore interface {
	HasContact(id string) bool
	FilterJournal(filter models.JournalFilter) []models.JournalEntry
	AddJournalEntry(ctx context.Context, f models.JournalFields) (models.JournalEntry, error)
}

// Compile-time check: *JournalService must satisfy domain.JournalService.
var _ domain.JournalService = (*JournalService)(nil)

// JournalService wraps JournalStore with contact checks and change events.
type JournalService struct {
	store  JournalStore
	events EventEnqueuer
	log    *logrus.Logger
}

// NewJournalService creates a JournalService.
func NewJournalService(store JournalStore, events EventEnqueuer, log *logrus.Logger) *JournalService {
	return &JournalService{store: store, events: events, log: log}
}

// ListEntries returns the entries matching filter, newest first.
func (s *JournalService) ListEntries(_ context.Context, filter models.JournalFilter) ([]models.JournalEntry, error) {
	return s.store.FilterJournal(filter), nil
}

// CreateEntry writes a journal entry. A contact reference must point at an
// existing contact at write time; it is not maintained afterwards.
func (s *JournalService) CreateEntry(ctx context.Context, req models.CreateJournalRequest) (*models.JournalEntry, error) {
	if req.ContactID != "" && !s.store.HasContact(req.ContactID) {
		return nil, models.ErrContactNotFound
	}

	e, err := s.store.AddJournalEntry(ctx, req.JournalFields)
	if err != nil {
		return nil, fmt.Errorf("adding journal entry: %w", err)
	}

	publish(s.events, EventJournalCreated, e.ID, e)

	return &e, nil
}
