// Package main copies the kinship collection slots from one storage backend
// to another, for example when moving from SQLite to PostgreSQL. It can also
// seal or re-key the data on the way.
//
// Usage:
//
//	SOURCE_SQLITE=kinship.db DATABASE_URL=postgres://... go run ./scripts/migrate
package main

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kinshiphq/kinship/internal/crypto"
	"github.com/kinshiphq/kinship/internal/slots"
)

// config holds environment-driven migration settings.
type config struct {
	SourceSQLite string
	TargetSQLite string
	DatabaseURL  string
	SourceKey    string
	TargetKey    string
	DryRun       bool
	Force        bool
}

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg := loadConfig()
	if cfg.DatabaseURL == "" && cfg.TargetSQLite == "" {
		log.Error("DATABASE_URL or TARGET_SQLITE is required")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src, err := openSource(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Error("opening source")
		os.Exit(1)
	}
	defer src.Close()

	dst, target, err := openTarget(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Error("opening target")
		os.Exit(1)
	}
	defer dst.Close()

	log.WithFields(logrus.Fields{
		"source":  cfg.SourceSQLite,
		"target":  target,
		"dry_run": cfg.DryRun,
	}).Info("starting migration")

	start := time.Now()
	r, err := copySlots(ctx, src, dst, copyOptions{DryRun: cfg.DryRun, Force: cfg.Force}, log)
	r.Source = cfg.SourceSQLite
	r.Target = target
	r.Duration = time.Since(start)
	if err != nil {
		r.Err = err
		log.WithError(err).Error("migration failed")
	}
	printReport(os.Stdout, &r)
	if err != nil {
		os.Exit(1)
	}
}

// loadConfig reads configuration from environment variables.
func loadConfig() config {
	return config{
		SourceSQLite: envOr("SOURCE_SQLITE", "kinship.db"),
		TargetSQLite: os.Getenv("TARGET_SQLITE"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		SourceKey:    os.Getenv("SOURCE_ENCRYPTION_KEY"),
		TargetKey:    os.Getenv("TARGET_ENCRYPTION_KEY"),
		DryRun:       isTrue(os.Getenv("DRY_RUN")),
		Force:        isTrue(os.Getenv("FORCE")),
	}
}

func openSource(ctx context.Context, cfg config, log *logrus.Logger) (slots.Backend, error) {
	if _, err := os.Stat(cfg.SourceSQLite); err != nil {
		return nil, fmt.Errorf("source database: %w", err)
	}
	b, err := slots.OpenSQLite(ctx, cfg.SourceSQLite, log)
	if err != nil {
		return nil, err
	}
	return seal(b, cfg.SourceKey)
}

// openTarget prefers TARGET_SQLITE over DATABASE_URL. It also returns a
// printable name for the target.
func openTarget(ctx context.Context, cfg config, log *logrus.Logger) (slots.Backend, string, error) {
	if cfg.TargetSQLite != "" {
		b, err := slots.OpenSQLite(ctx, cfg.TargetSQLite, log)
		if err != nil {
			return nil, "", err
		}
		sealed, err := seal(b, cfg.TargetKey)
		return sealed, cfg.TargetSQLite, err
	}

	b, err := slots.OpenPostgres(ctx, cfg.DatabaseURL, log)
	if err != nil {
		return nil, "", err
	}
	sealed, err := seal(b, cfg.TargetKey)
	return sealed, sanitizeURL(cfg.DatabaseURL), err
}

// seal wraps b with encryption when hexKey is set.
func seal(b slots.Backend, hexKey string) (slots.Backend, error) {
	if hexKey == "" {
		return b, nil
	}
	keys, err := crypto.NewStaticProvider(hexKey)
	if err != nil {
		b.Close() //nolint:errcheck // already failing.
		return nil, err
	}
	return slots.NewEncrypted(b, crypto.NewService(keys)), nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func isTrue(v string) bool {
	v = strings.ToLower(v)
	return v == "true" || v == "1" || v == "yes"
}

// sanitizeURL strips the password from a database URL for display.
func sanitizeURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "[invalid url]"
	}
	if u.User != nil {
		u.User = url.User(u.User.Username())
	}
	return u.String()
}
