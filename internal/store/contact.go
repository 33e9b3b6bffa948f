package store

import (
	"context"
	"errors"
	"slices"

	"github.com/kinshiphq/kinship/internal/models"
)

// AddContact appends a new contact built from f and returns it. createdAt and
// lastContact are both set to now; names need not be unique.
func (s *Store) AddContact(ctx context.Context, f models.ContactFields) (c models.Contact, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { record("add_contact", true, err) }()

	now := s.now()
	c = models.Contact{
		ID:            s.nextID(now),
		ContactFields: f,
		CreatedAt:     now,
		LastContact:   now,
		Interactions:  []models.Interaction{},
	}

	s.contacts = append(s.contacts, c)
	s.observeSizes()

	return c.Clone(), s.persistContacts(ctx)
}

// UpdateContact merges p into the contact with the given id. It reports
// false, without writing anything, when no such contact exists.
func (s *Store) UpdateContact(ctx context.Context, id string, p models.ContactPatch) (c models.Contact, changed bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { record("update_contact", changed, err) }()

	i := s.contactIndex(id)
	if i < 0 {
		return models.Contact{}, false, nil
	}

	p.Apply(&s.contacts[i])

	return s.contacts[i].Clone(), true, s.persistContacts(ctx)
}

// DeleteContact removes the contact with the given id together with every
// relationship that has it as an endpoint. It returns the number of
// relationships removed by the cascade.
func (s *Store) DeleteContact(ctx context.Context, id string) (cascaded int, changed bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { record("delete_contact", changed, err) }()

	i := s.contactIndex(id)
	if i < 0 {
		return 0, false, nil
	}

	s.contacts = slices.Delete(s.contacts, i, i+1)

	before := len(s.relationships)
	s.relationships = slices.DeleteFunc(s.relationships, func(r models.Relationship) bool {
		return r.Touches(id)
	})
	cascaded = before - len(s.relationships)

	s.observeSizes()

	err = s.persistContacts(ctx)
	if cascaded > 0 {
		err = errors.Join(err, s.persistRelationships(ctx))
	}

	return cascaded, true, err
}

// AddInteraction appends an interaction to the contact's history and moves
// the contact's lastContact to the interaction's date.
func (s *Store) AddInteraction(ctx context.Context, contactID string, f models.InteractionFields) (in models.Interaction, changed bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { record("add_interaction", changed, err) }()

	i := s.contactIndex(contactID)
	if i < 0 {
		return models.Interaction{}, false, nil
	}

	now := s.now()
	in = models.Interaction{
		ID:                s.nextID(now),
		InteractionFields: f,
		Date:              now,
	}

	c := &s.contacts[i]
	c.Interactions = append(c.Interactions, in)
	c.LastContact = in.Date

	return in, true, s.persistContacts(ctx)
}

// Contacts returns every contact in insertion order.
func (s *Store) Contacts() []models.Contact {
	return s.FilterContacts(models.ContactFilter{})
}

// FilterContacts returns the contacts matching f in insertion order.
func (s *Store) FilterContacts(f models.ContactFilter) []models.Contact {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Contact, 0, len(s.contacts))
	for i := range s.contacts {
		if f.Matches(&s.contacts[i]) {
			out = append(out, s.contacts[i].Clone())
		}
	}

	return out
}

// Contact returns the contact with the given id.
func (s *Store) Contact(id string) (models.Contact, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.contactIndex(id)
	if i < 0 {
		return models.Contact{}, false
	}

	return s.contacts[i].Clone(), true
}

// HasContact reports whether a contact with the given id exists.
func (s *Store) HasContact(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.contactIndex(id) >= 0
}

func (s *Store) contactIndex(id string) int {
	return slices.IndexFunc(s.contacts, func(c models.Contact) bool { return c.ID == id })
}
