// Package migrations owns the board schema, embedded as numbered SQL files.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/slok/planboard/internal/log"
)

//go:embed sql/*.sql
var schemaFiles embed.FS

// ErrDirtySchema is returned when a previous migration was interrupted halfway.
var ErrDirtySchema = errors.New("dirty schema")

// MigratorConfig is the configuration of the schema migrator.
type MigratorConfig struct {
	DB *sql.DB
	// MigrationsTable is the table where the schema version is tracked.
	MigrationsTable string
	Logger          log.Logger
}

func (c *MigratorConfig) defaults() error {
	if c.DB == nil {
		return fmt.Errorf("db is required")
	}
	if c.MigrationsTable == "" {
		c.MigrationsTable = "schema_migrations"
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.sqlite.Migrator"})
	return nil
}

// Migrator moves the board database between schema versions.
type Migrator struct {
	db     *sql.DB
	table  string
	logger log.Logger
}

// NewMigrator returns a new schema migrator.
func NewMigrator(cfg MigratorConfig) (*Migrator, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Migrator{
		db:     cfg.DB,
		table:  cfg.MigrationsTable,
		logger: cfg.Logger,
	}, nil
}

// Up applies every pending schema version, it's a no-op on an up to date database.
func (m *Migrator) Up(ctx context.Context) error {
	err := m.with(ctx, func(inst *migrate.Migrate) error {
		if err := inst.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("could not apply schema: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	version, err := m.Version(ctx)
	if err != nil {
		return err
	}
	m.logger.Debugf("Board schema at version %d", version)

	return nil
}

// Down drops the whole board schema.
func (m *Migrator) Down(ctx context.Context) error {
	err := m.with(ctx, func(inst *migrate.Migrate) error {
		if err := inst.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("could not drop schema: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	m.logger.Debugf("Board schema dropped")
	return nil
}

// Version returns the current schema version, 0 when no schema has been applied.
func (m *Migrator) Version(ctx context.Context) (uint, error) {
	var version uint
	err := m.with(ctx, func(inst *migrate.Migrate) error {
		v, dirty, err := inst.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("could not get schema version: %w", err)
		}
		if dirty {
			return fmt.Errorf("schema version %d: %w", v, ErrDirtySchema)
		}
		version = v
		return nil
	})

	return version, err
}

// with runs f with a migrate instance backed by the embedded schema files.
// The instance is never closed, closing it would close the shared db.
func (m *Migrator) with(ctx context.Context, f func(*migrate.Migrate) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	driver, err := sqlite3.WithInstance(m.db, &sqlite3.Config{MigrationsTable: m.table})
	if err != nil {
		return fmt.Errorf("could not create schema driver: %w", err)
	}

	src, err := iofs.New(schemaFiles, "sql")
	if err != nil {
		return fmt.Errorf("could not load schema files: %w", err)
	}
	defer func() {
		if err := src.Close(); err != nil {
			m.logger.Warningf("Could not close schema files: %s", err)
		}
	}()

	inst, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("could not create schema migrator: %w", err)
	}

	return f(inst)
}
