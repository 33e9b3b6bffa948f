package models

import "time"

// ExportSchemaVersion is bumped whenever the export layout changes.
const ExportSchemaVersion = 1

// Snapshot holds all three collections in store order.
type Snapshot struct {
	Contacts       []Contact      `json:"contacts"`
	Relationships  []Relationship `json:"relationships"`
	JournalEntries []JournalEntry `json:"journal"`
}

// ExportFormat is the top-level structure of an export file.
type ExportFormat struct {
	SchemaVersion int         `json:"schema_version"`
	ExportedAt    time.Time   `json:"exported_at"`
	Stats         ExportStats `json:"stats"`
	Snapshot
}

// ExportStats summarises the contents of an export.
type ExportStats struct {
	ContactCount      int `json:"contact_count"`
	RelationshipCount int `json:"relationship_count"`
	JournalCount      int `json:"journal_count"`
	InteractionCount  int `json:"interaction_count"`
}

// ImportMode selects how an import combines with existing data.
type ImportMode string

// Import modes.
const (
	// ImportReplace discards the current collections.
	ImportReplace ImportMode = "replace"
	// ImportMerge keeps existing records and overwrites those with matching ids.
	ImportMerge ImportMode = "merge"
)

// Valid reports whether m is a known import mode.
func (m ImportMode) Valid() bool { return m == ImportReplace || m == ImportMerge }

// ImportOptions controls the behaviour of an import operation.
type ImportOptions struct {
	Mode ImportMode `json:"mode"`
	// DryRun computes the result without writing anything.
	DryRun bool `json:"dry_run"`
}

// ImportResult summarises the outcome of an import operation.
type ImportResult struct {
	ContactsCreated      int      `json:"contacts_created"`
	ContactsUpdated      int      `json:"contacts_updated"`
	RelationshipsCreated int      `json:"relationships_created"`
	RelationshipsUpdated int      `json:"relationships_updated"`
	RelationshipsSkipped int      `json:"relationships_skipped"`
	JournalCreated       int      `json:"journal_created"`
	JournalUpdated       int      `json:"journal_updated"`
	Errors               []string `json:"errors,omitempty"`
}
