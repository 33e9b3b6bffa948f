package store

import (
	"cmp"
	"context"
	"errors"
	"slices"

	"github.com/kinshiphq/kinship/internal/models"
)

// Snapshot returns a deep copy of all three collections.
func (s *Store) Snapshot() models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() models.Snapshot {
	snap := models.Snapshot{
		Contacts:       make([]models.Contact, len(s.contacts)),
		Relationships:  slices.Clone(s.relationships),
		JournalEntries: make([]models.JournalEntry, len(s.journal)),
	}

	for i := range s.contacts {
		snap.Contacts[i] = s.contacts[i].Clone()
	}

	for i := range s.journal {
		snap.JournalEntries[i] = s.journal[i].Clone()
	}

	return snap
}

// Restore loads in into the store. ImportReplace discards the current
// collections; ImportMerge overwrites records with matching ids and appends
// the rest. Relationships whose endpoints do not exist afterwards, or whose
// pair is already taken by a different record, are skipped. With dryRun the
// result is computed but nothing changes.
func (s *Store) Restore(ctx context.Context, in models.Snapshot, mode models.ImportMode, dryRun bool) (res models.ImportResult, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { record("restore", !dryRun, err) }()

	base := models.Snapshot{}
	if mode == models.ImportMerge {
		base = s.snapshotLocked()
	}

	out, res := mergeSnapshot(base, in)
	if dryRun {
		return res, nil
	}

	s.contacts = out.Contacts
	s.relationships = out.Relationships
	s.journal = out.JournalEntries
	s.normalize()
	s.seedIDs()
	s.observeSizes()

	err = errors.Join(s.persistContacts(ctx), s.persistRelationships(ctx), s.persistJournal(ctx))

	return res, err
}

// mergeSnapshot overlays in onto base.
func mergeSnapshot(base, in models.Snapshot) (models.Snapshot, models.ImportResult) {
	var res models.ImportResult

	out := models.Snapshot{
		Contacts:       nonNil(base.Contacts),
		Relationships:  nonNil(base.Relationships),
		JournalEntries: nonNil(base.JournalEntries),
	}

	for _, c := range in.Contacts {
		if i := slices.IndexFunc(out.Contacts, func(x models.Contact) bool { return x.ID == c.ID }); i >= 0 {
			out.Contacts[i] = c
			res.ContactsUpdated++
			continue
		}
		out.Contacts = append(out.Contacts, c)
		res.ContactsCreated++
	}

	known := make(map[string]bool, len(out.Contacts))
	for _, c := range out.Contacts {
		known[c.ID] = true
	}

	// Drop relationships left dangling by the contact set.
	out.Relationships = slices.DeleteFunc(out.Relationships, func(r models.Relationship) bool {
		return !known[r.SourceID] || !known[r.TargetID]
	})

	for _, r := range in.Relationships {
		if !known[r.SourceID] || !known[r.TargetID] || r.SourceID == r.TargetID {
			res.RelationshipsSkipped++
			continue
		}

		key := models.PairKey(r.SourceID, r.TargetID)
		i := slices.IndexFunc(out.Relationships, func(x models.Relationship) bool { return x.ID == r.ID })
		pair := slices.IndexFunc(out.Relationships, func(x models.Relationship) bool {
			return models.PairKey(x.SourceID, x.TargetID) == key
		})

		switch {
		case pair >= 0 && pair != i:
			res.RelationshipsSkipped++
		case i >= 0:
			out.Relationships[i] = r
			res.RelationshipsUpdated++
		default:
			out.Relationships = append(out.Relationships, r)
			res.RelationshipsCreated++
		}
	}

	for _, e := range in.JournalEntries {
		if i := slices.IndexFunc(out.JournalEntries, func(x models.JournalEntry) bool { return x.ID == e.ID }); i >= 0 {
			out.JournalEntries[i] = e
			res.JournalUpdated++
			continue
		}
		out.JournalEntries = append(out.JournalEntries, e)
		res.JournalCreated++
	}

	// The journal is kept newest-first whatever order the payload used.
	slices.SortStableFunc(out.JournalEntries, func(a, b models.JournalEntry) int {
		return cmp.Compare(b.Date.UnixNano(), a.Date.UnixNano())
	})

	return out, res
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}

	return s
}
