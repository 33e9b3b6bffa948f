package main

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/kinshiphq/kinship/internal/config"
	"github.com/kinshiphq/kinship/internal/crypto"
	"github.com/kinshiphq/kinship/internal/slots"
)

// openBackend opens the configured slot backend, sealing it when an
// encryption key is set.
func openBackend(ctx context.Context, cfg *config.Config, log *logrus.Logger) (slots.Backend, error) {
	var (
		backend slots.Backend
		err     error
	)

	switch cfg.StorageBackend {
	case config.BackendMemory:
		log.Warn("using in-memory storage; data is lost on exit")
		backend = slots.NewMemory()
	case config.BackendSQLite:
		backend, err = slots.OpenSQLite(ctx, cfg.SQLitePath, log)
	case config.BackendPostgres:
		backend, err = slots.OpenPostgres(ctx, cfg.DatabaseURL.Value(), log)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}

	if err != nil {
		return nil, fmt.Errorf("opening %s backend: %w", cfg.StorageBackend, err)
	}

	if cfg.EncryptionKey.Value() == "" {
		return backend, nil
	}

	keys, err := crypto.NewStaticProvider(cfg.EncryptionKey.Value())
	if err != nil {
		backend.Close() //nolint:errcheck // already failing.
		return nil, fmt.Errorf("encryption key: %w", err)
	}

	log.Info("slot encryption enabled")

	return slots.NewEncrypted(backend, crypto.NewService(keys)), nil
}
