// Package crypto provides AES-256-GCM sealing for persisted slot blobs.
package crypto

import "context"

// KeyProvider returns the AES-256 key used to seal slots.
type KeyProvider interface {
	// Key returns the 32-byte AES-256 key.
	Key(ctx context.Context) ([]byte, error)
}
