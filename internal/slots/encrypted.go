package slots

import (
	"context"
	"fmt"
)

// Sealer encrypts and decrypts blobs bound to a scope.
type Sealer interface {
	Seal(ctx context.Context, scope string, plaintext []byte) ([]byte, error)
	Open(ctx context.Context, scope string, data []byte) ([]byte, error)
}

// Encrypted wraps a Backend and seals every blob with the slot key as scope.
// A blob that fails to open is reported as a *CorruptError.
type Encrypted struct {
	next   Backend
	sealer Sealer
}

var _ Backend = (*Encrypted)(nil)

// NewEncrypted returns a Backend that seals blobs before handing them to next.
func NewEncrypted(next Backend, sealer Sealer) *Encrypted {
	return &Encrypted{next: next, sealer: sealer}
}

// Get reads and opens the blob under key.
func (e *Encrypted) Get(ctx context.Context, key string) ([]byte, bool, error) {
	sealed, ok, err := e.next.Get(ctx, key)
	if err != nil || !ok {
		return nil, ok, err
	}

	plain, err := e.sealer.Open(ctx, key, sealed)
	if err != nil {
		return nil, true, &CorruptError{Key: key, Raw: sealed, Err: err}
	}

	return plain, true, nil
}

// Put seals value and writes it under key.
func (e *Encrypted) Put(ctx context.Context, key string, value []byte) error {
	sealed, err := e.sealer.Seal(ctx, key, value)
	if err != nil {
		return fmt.Errorf("sealing slot %s: %w", key, err)
	}

	return e.next.Put(ctx, key, sealed)
}

// Ping delegates to the wrapped backend.
func (e *Encrypted) Ping(ctx context.Context) error {
	return e.next.Ping(ctx)
}

// Close closes the wrapped backend.
func (e *Encrypted) Close() error {
	return e.next.Close()
}
