package store

import (
	"context"
	"slices"

	"github.com/kinshiphq/kinship/internal/models"
)

// AddRelationship creates or overwrites the relationship on the unordered
// pair {sourceID, targetID}. An existing record keeps its id, createdAt and
// orientation; only its type, notes and lastUpdated change. created reports
// whether a new record was appended. An empty type means neutral.
//
// Endpoint existence is not checked here.
func (s *Store) AddRelationship(
	ctx context.Context,
	sourceID, targetID string,
	typ models.RelationshipType,
	notes string,
) (r models.Relationship, created bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { record("add_relationship", true, err) }()

	if typ == "" {
		typ = models.RelationNeutral
	}

	now := s.now()
	key := models.PairKey(sourceID, targetID)

	i := slices.IndexFunc(s.relationships, func(r models.Relationship) bool {
		return models.PairKey(r.SourceID, r.TargetID) == key
	})

	if i >= 0 {
		existing := &s.relationships[i]
		existing.Type = typ
		existing.Notes = notes
		existing.LastUpdated = now

		return *existing, false, s.persistRelationships(ctx)
	}

	r = models.Relationship{
		ID:          s.nextID(now),
		SourceID:    sourceID,
		TargetID:    targetID,
		Type:        typ,
		Notes:       notes,
		CreatedAt:   now,
		LastUpdated: now,
	}

	s.relationships = append(s.relationships, r)
	s.observeSizes()

	return r, true, s.persistRelationships(ctx)
}

// UpdateRelationship merges p into the relationship with the given id and
// refreshes its lastUpdated, even when p sets nothing.
func (s *Store) UpdateRelationship(ctx context.Context, id string, p models.RelationshipPatch) (r models.Relationship, changed bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { record("update_relationship", changed, err) }()

	i := s.relationshipIndex(id)
	if i < 0 {
		return models.Relationship{}, false, nil
	}

	p.Apply(&s.relationships[i])
	s.relationships[i].LastUpdated = s.now()

	return s.relationships[i], true, s.persistRelationships(ctx)
}

// DeleteRelationship removes the relationship with the given id.
func (s *Store) DeleteRelationship(ctx context.Context, id string) (changed bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { record("delete_relationship", changed, err) }()

	i := s.relationshipIndex(id)
	if i < 0 {
		return false, nil
	}

	s.relationships = slices.Delete(s.relationships, i, i+1)
	s.observeSizes()

	return true, s.persistRelationships(ctx)
}

// Relationships returns every relationship in collection order.
func (s *Store) Relationships() []models.Relationship {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.relationships)
}

// Relationship returns the relationship with the given id.
func (s *Store) Relationship(id string) (models.Relationship, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.relationshipIndex(id)
	if i < 0 {
		return models.Relationship{}, false
	}

	return s.relationships[i], true
}

// RelationshipsBetween returns every relationship on the unordered pair {a, b}.
func (s *Store) RelationshipsBetween(a, b string) []models.Relationship {
	return s.filterRelationships(func(r *models.Relationship) bool {
		return (r.SourceID == a && r.TargetID == b) || (r.SourceID == b && r.TargetID == a)
	})
}

// RelationshipsForContact returns every relationship that has id as an endpoint.
func (s *Store) RelationshipsForContact(id string) []models.Relationship {
	return s.filterRelationships(func(r *models.Relationship) bool { return r.Touches(id) })
}

func (s *Store) filterRelationships(keep func(*models.Relationship) bool) []models.Relationship {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Relationship{}
	for i := range s.relationships {
		if keep(&s.relationships[i]) {
			out = append(out, s.relationships[i])
		}
	}

	return out
}

func (s *Store) relationshipIndex(id string) int {
	return slices.IndexFunc(s.relationships, func(r models.Relationship) bool { return r.ID == id })
}
