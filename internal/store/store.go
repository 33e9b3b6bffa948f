// Package store holds the in-memory relationship store.
//
// The Store is the single owner of contacts, relationships and journal
// entries. Every command runs under one mutex and rewrites the affected
// collection's slot before returning, so a completed command is durable
// before the next one starts. Queries take a read lock and return copies.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kinshiphq/kinship/internal/metrics"
	"github.com/kinshiphq/kinship/internal/models"
	"github.com/kinshiphq/kinship/internal/slots"
)

// SlotStore is the durable key-value store collections are mirrored to.
type SlotStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
}

// Store is the relationship store. Construct it with New and call Load once.
type Store struct {
	mu    sync.RWMutex
	slots SlotStore
	log   *logrus.Logger
	clock func() time.Time

	lastID        int64
	contacts      []models.Contact
	relationships []models.Relationship
	journal       []models.JournalEntry
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for ids and timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.clock = now }
}

// New creates an empty Store backed by slots.
func New(slotStore SlotStore, log *logrus.Logger, opts ...Option) *Store {
	s := &Store{
		slots:         slotStore,
		log:           log,
		clock:         time.Now,
		contacts:      []models.Contact{},
		relationships: []models.Relationship{},
		journal:       []models.JournalEntry{},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Load populates the store from its three slots. An absent slot yields an
// empty collection. A slot that cannot be read or decoded also yields an empty
// collection; its raw bytes are copied to a quarantine slot and the failure is
// logged. Load never fails.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.contacts = loadSlot[models.Contact](ctx, s, slots.KeyContacts)
	s.relationships = loadSlot[models.Relationship](ctx, s, slots.KeyRelationships)
	s.journal = loadSlot[models.JournalEntry](ctx, s, slots.KeyJournal)

	s.normalize()
	s.seedIDs()
	s.observeSizes()

	s.log.WithFields(logrus.Fields{
		"contacts":      len(s.contacts),
		"relationships": len(s.relationships),
		"journal":       len(s.journal),
	}).Info("relationship store loaded")
}

func loadSlot[T any](ctx context.Context, s *Store, key string) []T {
	raw, ok, err := s.slots.Get(ctx, key)

	var corrupt *slots.CorruptError

	switch {
	case errors.As(err, &corrupt):
		s.quarantine(ctx, key, corrupt.Raw, err)
		return []T{}
	case err != nil:
		metrics.SlotLoadFailures.WithLabelValues(key, "read").Inc()
		s.log.WithError(err).WithField("slot", key).Warn("slot unreadable, starting empty")
		return []T{}
	case !ok:
		return []T{}
	}

	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		s.quarantine(ctx, key, raw, err)
		return []T{}
	}

	if out == nil {
		out = []T{}
	}

	return out
}

// quarantine copies an undecodable blob aside so it is never silently lost.
func (s *Store) quarantine(ctx context.Context, key string, raw []byte, cause error) {
	metrics.SlotLoadFailures.WithLabelValues(key, "corrupt").Inc()

	qkey := fmt.Sprintf("%s.corrupt-%d", key, s.clock().Unix())
	fields := logrus.Fields{"slot": key, "quarantine": qkey, "bytes": len(raw)}

	if err := s.slots.Put(ctx, qkey, raw); err != nil {
		s.log.WithError(err).WithFields(fields).Error("failed to quarantine corrupt slot")
	}

	s.log.WithError(cause).WithFields(fields).Warn("corrupt slot quarantined, starting empty")
}

// normalize restores the shape guarantees JSON cannot carry.
func (s *Store) normalize() {
	for i := range s.contacts {
		if s.contacts[i].Interactions == nil {
			s.contacts[i].Interactions = []models.Interaction{}
		}
	}

	for i := range s.journal {
		s.journal[i].Tags = models.NormalizeTags(s.journal[i].Tags)
	}
}

// seedIDs makes sure freshly issued ids sort after every stored one.
func (s *Store) seedIDs() {
	s.lastID = 0

	bump := func(id string) {
		if n, err := strconv.ParseInt(id, 10, 64); err == nil && n > s.lastID {
			s.lastID = n
		}
	}

	for i := range s.contacts {
		bump(s.contacts[i].ID)
		for j := range s.contacts[i].Interactions {
			bump(s.contacts[i].Interactions[j].ID)
		}
	}

	for i := range s.relationships {
		bump(s.relationships[i].ID)
	}

	for i := range s.journal {
		bump(s.journal[i].ID)
	}
}

func (s *Store) now() time.Time {
	return s.clock().UTC()
}

// nextID returns a numeric id derived from the wall clock in milliseconds,
// bumped past the last issued id when the clock has not advanced.
func (s *Store) nextID(at time.Time) string {
	id := at.UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}

	s.lastID = id

	return strconv.FormatInt(id, 10)
}

// persist writes one collection to its slot.
func (s *Store) persist(ctx context.Context, key string, v any) error {
	start := time.Now()

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}

	if err := s.slots.Put(ctx, key, data); err != nil {
		s.log.WithError(err).WithField("slot", key).Error("slot write failed")
		return fmt.Errorf("persisting %s: %w", key, err)
	}

	metrics.PersistDuration.WithLabelValues(key).Observe(time.Since(start).Seconds())

	return nil
}

func (s *Store) persistContacts(ctx context.Context) error {
	return s.persist(ctx, slots.KeyContacts, s.contacts)
}

func (s *Store) persistRelationships(ctx context.Context) error {
	return s.persist(ctx, slots.KeyRelationships, s.relationships)
}

func (s *Store) persistJournal(ctx context.Context) error {
	return s.persist(ctx, slots.KeyJournal, s.journal)
}

func (s *Store) observeSizes() {
	metrics.CollectionSize.WithLabelValues("contacts").Set(float64(len(s.contacts)))
	metrics.CollectionSize.WithLabelValues("relationships").Set(float64(len(s.relationships)))
	metrics.CollectionSize.WithLabelValues("journal").Set(float64(len(s.journal)))
}

// record counts a finished command.
func record(command string, changed bool, err error) {
	outcome := "ok"

	switch {
	case err != nil:
		outcome = "error"
	case !changed:
		outcome = "noop"
	}

	metrics.StoreCommands.WithLabelValues(command, outcome).Inc()
}
