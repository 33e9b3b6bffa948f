package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/kinshiphq/kinship/internal/domain"
	"github.com/kinshiphq/kinship/internal/models"
)

// RelationshipStore is the store surface RelationshipService depends on.
type RelationshipStore interface {
	HasContact(id string) bool
	Relationships() []models.Relationship
	RelationshipsBetween(a, b string) []models.Relationship
	RelationshipsForContact(id string) []models.Relationship
	AddRelationship(ctx context.Context, sourceID, targetID string, typ models.RelationshipType, notes string) (models.Relationship, bool, error)
	UpdateRelationship(ctx context.Context, id string, p models.RelationshipPatch) (models.Relationship, bool, error)
	DeleteRelationship(ctx context.Context, id string) (bool, error)
}

// Compile-time check: *RelationshipService must satisfy domain.RelationshipService.
var _ domain.RelationshipService = (*RelationshipService)(nil)

// RelationshipService enforces that both endpoints exist before an upsert.
type RelationshipService struct {
	store  RelationshipStore
	events EventEnqueuer
	log    *logrus.Logger
}

// NewRelationshipService creates a RelationshipService.
func NewRelationshipService(store RelationshipStore, events EventEnqueuer, log *logrus.Logger) *RelationshipService {
	return &RelationshipService{store: store, events: events, log: log}
}

// ListRelationships returns every relationship (pass-through).
func (s *RelationshipService) ListRelationships(_ context.Context) ([]models.Relationship, error) {
	return s.store.Relationships(), nil
}

// RelationshipsBetween returns the relationships on the unordered pair {a, b}.
func (s *RelationshipService) RelationshipsBetween(_ context.Context, a, b string) ([]models.Relationship, error) {
	return s.store.RelationshipsBetween(a, b), nil
}

// RelationshipsForContact returns the relationships touching an existing contact.
func (s *RelationshipService) RelationshipsForContact(_ context.Context, contactID string) ([]models.Relationship, error) {
	if !s.store.HasContact(contactID) {
		return nil, models.ErrContactNotFound
	}

	return s.store.RelationshipsForContact(contactID), nil
}

// UpsertRelationship creates or overwrites the relationship between two
// existing contacts. created reports whether a new record was made.
func (s *RelationshipService) UpsertRelationship(
	ctx context.Context, req models.UpsertRelationshipRequest,
) (*models.Relationship, bool, error) {
	if req.SourceID == req.TargetID {
		return nil, false, models.ErrSelfRelation
	}

	for _, id := range []string{req.SourceID, req.TargetID} {
		if !s.store.HasContact(id) {
			return nil, false, fmt.Errorf("endpoint %s: %w", id, models.ErrContactNotFound)
		}
	}

	r, created, err := s.store.AddRelationship(ctx, req.SourceID, req.TargetID, req.Type, req.Notes)
	if err != nil {
		return nil, false, fmt.Errorf("upserting relationship: %w", err)
	}

	publish(s.events, EventRelationshipUpserted, r.ID, map[string]any{"relationship": r, "created": created})

	return &r, created, nil
}

// UpdateRelationship patches type or notes and refreshes lastUpdated.
func (s *RelationshipService) UpdateRelationship(
	ctx context.Context, id string, req models.UpdateRelationshipRequest,
) (*models.Relationship, error) {
	r, changed, err := s.store.UpdateRelationship(ctx, id, req.RelationshipPatch)
	if err != nil {
		return nil, fmt.Errorf("updating relationship %s: %w", id, err)
	}

	if !changed {
		return nil, models.ErrRelationshipNotFound
	}

	publish(s.events, EventRelationshipUpdated, r.ID, r)

	return &r, nil
}

// DeleteRelationship removes a relationship.
func (s *RelationshipService) DeleteRelationship(ctx context.Context, id string) error {
	changed, err := s.store.DeleteRelationship(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting relationship %s: %w", id, err)
	}

	if !changed {
		return models.ErrRelationshipNotFound
	}

	publish(s.events, EventRelationshipDeleted, id, map[string]any{"id": id})

	return nil
}
