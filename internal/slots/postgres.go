package slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pressly/goose/v3"
	"github.com/sirupsen/logrus"

	"github.com/kinshiphq/kinship/internal/db"
	"github.com/kinshiphq/kinship/internal/db/migrations"
	"github.com/kinshiphq/kinship/internal/dbpool"
)

const defaultQueryTimeout = 30 * time.Second

// Postgres stores slots in the kinship_slots table.
type Postgres struct {
	pool *dbpool.Pool
}

var _ Backend = (*Postgres)(nil)

// OpenPostgres connects to databaseURL and applies pending migrations.
func OpenPostgres(ctx context.Context, databaseURL string, log *logrus.Logger) (*Postgres, error) {
	pool, err := dbpool.NewPool(ctx, databaseURL, dbpool.DefaultOptions())
	if err != nil {
		return nil, err
	}

	if err := db.RunMigrations(ctx, pool.SQLDB(), goose.DialectPostgres, log, migrations.Postgres()); err != nil {
		pool.Close()
		return nil, err
	}

	return &Postgres{pool: pool}, nil
}

// Get returns the blob under key.
func (p *Postgres) Get(ctx context.Context, key string) ([]byte, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultQueryTimeout)
	defer cancel()

	var value []byte

	err := p.pool.QueryRow(ctx, "SELECT value FROM kinship_slots WHERE key = $1", key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading slot %s: %w", key, err)
	}

	return value, true, nil
}

// Put upserts the blob under key.
func (p *Postgres) Put(ctx context.Context, key string, value []byte) error {
	ctx, cancel := context.WithTimeout(ctx, defaultQueryTimeout)
	defer cancel()

	_, err := p.pool.Exec(ctx,
		`INSERT INTO kinship_slots (key, value, updated_at) VALUES ($1, $2, now())
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("writing slot %s: %w", key, err)
	}

	return nil
}

// Ping runs a trivial query against the database.
func (p *Postgres) Ping(ctx context.Context) error {
	return p.pool.HealthCheck(ctx)
}

// Close closes the connection pool.
func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}
