// Package slots provides the durable key-value slots the relationship store
// persists its collections to. Each slot holds one opaque blob.
package slots

import (
	"context"
	"errors"
)

// Slot keys used by the relationship store.
const (
	KeyContacts      = "crm-contacts"
	KeyRelationships = "crm-relationships"
	KeyJournal       = "crm-journal"
)

// ErrClosed is returned by operations on a closed backend.
var ErrClosed = errors.New("slots: backend closed")

// Backend is a durable key-value store of blobs.
type Backend interface {
	// Get returns the blob stored under key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	// Put replaces the blob stored under key.
	Put(ctx context.Context, key string, value []byte) error
	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error
	// Close releases resources held by the backend.
	Close() error
}

// CorruptError reports a blob that was read but could not be decoded.
// Raw holds the bytes exactly as stored so callers can quarantine them.
type CorruptError struct {
	Key string
	Raw []byte
	Err error
}

func (e *CorruptError) Error() string {
	return "slot " + e.Key + " is corrupt: " + e.Err.Error()
}

func (e *CorruptError) Unwrap() error { return e.Err }
