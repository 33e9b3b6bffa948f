package service

import (
	"context"
	"sync"

	"github.com/kinshiphq/kinship/internal/models"
)

// mockEnqueuer records enqueued events.
type mockEnqueuer struct {
	mu     sync.Mutex
	events []*Event
}

func (m *mockEnqueuer) Enqueue(ev *Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, ev)
}

func (m *mockEnqueuer) types() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, len(m.events))
	for i, ev := range m.events {
		out[i] = ev.Type
	}

	return out
}

// mockPublisher records published events.
type mockPublisher struct {
	mu    sync.Mutex
	types []string
}

func (m *mockPublisher) Publish(eventType string, _ any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.types = append(m.types, eventType)
}

func (m *mockPublisher) published() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.types...)
}

// mockContactStore returns configured responses.
type mockContactStore struct {
	filterContacts func(models.ContactFilter) []models.Contact
	contact        func(id string) (models.Contact, bool)
	addContact     func(ctx context.Context, f models.ContactFields) (models.Contact, error)
	updateContact  func(ctx context.Context, id string, p models.ContactPatch) (models.Contact, bool, error)
	deleteContact  func(ctx context.Context, id string) (int, bool, error)
	addInteraction func(ctx context.Context, id string, f models.InteractionFields) (models.Interaction, bool, error)
}

func (m *mockContactStore) FilterContacts(f models.ContactFilter) []models.Contact {
	return m.filterContacts(f)
}

func (m *mockContactStore) Contact(id string) (models.Contact, bool) { return m.contact(id) }

func (m *mockContactStore) AddContact(ctx context.Context, f models.ContactFields) (models.Contact, error) {
	return m.addContact(ctx, f)
}

func (m *mockContactStore) UpdateContact(ctx context.Context, id string, p models.ContactPatch) (models.Contact, bool, error) {
	return m.updateContact(ctx, id, p)
}

func (m *mockContactStore) DeleteContact(ctx context.Context, id string) (int, bool, error) {
	return m.deleteContact(ctx, id)
}

func (m *mockContactStore) AddInteraction(ctx context.Context, id string, f models.InteractionFields) (models.Interaction, bool, error) {
	return m.addInteraction(ctx, id, f)
}
