package store

import (
	"context"
	"slices"

	"github.com/kinshiphq/kinship/internal/models"
)

// AddJournalEntry inserts a new entry at the front of the journal. Tags are
// normalised; the contact reference is stored as given.
func (s *Store) AddJournalEntry(ctx context.Context, f models.JournalFields) (e models.JournalEntry, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { record("add_journal_entry", true, err) }()

	now := s.now()
	f.Tags = models.NormalizeTags(f.Tags)

	e = models.JournalEntry{
		ID:            s.nextID(now),
		JournalFields: f,
		Date:          now,
	}

	s.journal = slices.Insert(s.journal, 0, e)
	s.observeSizes()

	return e.Clone(), s.persistJournal(ctx)
}

// JournalEntries returns every entry, newest first.
func (s *Store) JournalEntries() []models.JournalEntry {
	return s.FilterJournal(models.JournalFilter{})
}

// FilterJournal returns the entries matching f, newest first.
func (s *Store) FilterJournal(f models.JournalFilter) []models.JournalEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.JournalEntry, 0, len(s.journal))
	for i := range s.journal {
		if f.Matches(&s.journal[i]) {
			out = append(out, s.journal[i].Clone())
		}
	}

	return out
}
