// Package service provides business logic between API handlers and the store.
package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/kinshiphq/kinship/internal/domain"
	"github.com/kinshiphq/kinship/internal/models"
)

// ContactStore is the store surface ContactService depends on.
type ContactStore interface {
	FilterContacts(filter models.ContactFilter) []models.Contact
	Contact(id string) (models.Contact, bool)
	AddContact(ctx context.Context, f models.ContactFields) (models.Contact, error)
	UpdateContact(ctx context.Context, id string, p models.ContactPatch) (models.Contact, bool, error)
	DeleteContact(ctx context.Context, id string) (int, bool, error)
	AddInteraction(ctx context.Context, contactID string, f models.InteractionFields) (models.Interaction, bool, error)
}

// Compile-time check: *ContactService must satisfy domain.ContactService.
var _ domain.ContactService = (*ContactService)(nil)

// ContactService wraps ContactStore with not-found mapping and change events.
type ContactService struct {
	store  ContactStore
	events EventEnqueuer
	log    *logrus.Logger
}

// NewContactService creates a ContactService.
func NewContactService(store ContactStore, events EventEnqueuer, log *logrus.Logger) *ContactService {
	return &ContactService{store: store, events: events, log: log}
}

// ListContacts returns the contacts matching filter (pass-through).
func (s *ContactService) ListContacts(_ context.Context, filter models.ContactFilter) ([]models.Contact, error) {
	return s.store.FilterContacts(filter), nil
}

// GetContact returns a single contact by id.
func (s *ContactService) GetContact(_ context.Context, id string) (*models.Contact, error) {
	c, ok := s.store.Contact(id)
	if !ok {
		return nil, models.ErrContactNotFound
	}

	return &c, nil
}

// CreateContact adds a contact. req must already be validated.
func (s *ContactService) CreateContact(ctx context.Context, req models.CreateContactRequest) (*models.Contact, error) {
	c, err := s.store.AddContact(ctx, req.ContactFields)
	if err != nil {
		return nil, fmt.Errorf("adding contact: %w", err)
	}

	publish(s.events, EventContactCreated, c.ID, c)

	return &c, nil
}

// UpdateContact applies a partial update.
func (s *ContactService) UpdateContact(ctx context.Context, id string, req models.UpdateContactRequest) (*models.Contact, error) {
	c, changed, err := s.store.UpdateContact(ctx, id, req.ContactPatch)
	if err != nil {
		return nil, fmt.Errorf("updating contact %s: %w", id, err)
	}

	if !changed {
		return nil, models.ErrContactNotFound
	}

	publish(s.events, EventContactUpdated, c.ID, c)

	return &c, nil
}

// DeleteContact removes a contact and every relationship touching it.
func (s *ContactService) DeleteContact(ctx context.Context, id string) error {
	cascaded, changed, err := s.store.DeleteContact(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting contact %s: %w", id, err)
	}

	if !changed {
		return models.ErrContactNotFound
	}

	if cascaded > 0 {
		s.log.WithFields(logrus.Fields{"contact_id": id, "relationships": cascaded}).Debug("cascaded relationship delete")
	}

	publish(s.events, EventContactDeleted, id, map[string]any{"id": id, "relationshipsRemoved": cascaded})

	return nil
}

// AddInteraction logs an interaction with a contact.
func (s *ContactService) AddInteraction(
	ctx context.Context, contactID string, req models.CreateInteractionRequest,
) (*models.Interaction, error) {
	in, changed, err := s.store.AddInteraction(ctx, contactID, req.InteractionFields)
	if err != nil {
		return nil, fmt.Errorf("adding interaction to %s: %w", contactID, err)
	}

	if !changed {
		return nil, models.ErrContactNotFound
	}

	publish(s.events, EventInteractionCreated, in.ID, map[string]any{"contactId": contactID, "interaction": in})

	return &in, nil
}
