// Package taskstore opens the TaskStore selected by configuration.
package taskstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmehra2102/TaskList/internal/domain"
	"github.com/dmehra2102/TaskList/internal/infrastructure/config"
	"github.com/dmehra2102/TaskList/internal/infrastructure/memory"
	"github.com/dmehra2102/TaskList/internal/infrastructure/sqlstore"
	"go.uber.org/zap"
)

// Store is a TaskStore that can also be seeded.
type Store interface {
	domain.TaskStore
	domain.TaskWriter
}

type Handle struct {
	Store Store
	db    *sql.DB
}

// Ping reports store reachability. The in-memory store is always reachable.
func (h *Handle) Ping(ctx context.Context) error {
	if h.db == nil {
		return nil
	}
	return h.db.PingContext(ctx)
}

func (h *Handle) Close() error {
	if h.db == nil {
		return nil
	}
	return h.db.Close()
}

// Open connects, migrates and optionally seeds the configured store.
func Open(ctx context.Context, cfg config.StoreConfig, logger *zap.Logger) (*Handle, error) {
	h := &Handle{}

	if cfg.Driver == "memory" {
		h.Store = memory.NewStore()
	} else {
		dialect, err := sqlstore.DialectFor(cfg.Driver)
		if err != nil {
			return nil, err
		}

		db, err := sqlstore.Open(dialect, cfg.URL, sqlstore.PoolConfig{
			MaxOpenConns:    cfg.MaxOpenConns,
			MaxIdleConns:    cfg.MaxIdleConns,
			ConnMaxLifetime: cfg.ConnMaxLifetime,
			ConnMaxIdleTime: cfg.ConnMaxIdleTime,
			PingTimeout:     cfg.Timeout,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}

		if err := runMigrations(db, dialect, cfg); err != nil {
			db.Close()
			return nil, err
		}

		h.db = db
		h.Store = sqlstore.NewRepository(db, dialect).WithQueryTimeout(cfg.Timeout)
	}

	logger.Info("task store ready", zap.String("driver", cfg.Driver))

	if cfg.SeedTasks > 0 {
		if err := Seed(ctx, h.Store, cfg.SeedTasks, time.Now().UTC()); err != nil {
			h.Close()
			return nil, err
		}
		logger.Info("seeded task store", zap.Int("tasks", cfg.SeedTasks))
	}

	return h, nil
}

// runMigrations uses a dedicated handle for server databases, since the
// migration driver pins a connection it never returns. SQLite reuses the main
// handle so in-memory databases see the schema.
func runMigrations(db *sql.DB, dialect sqlstore.Dialect, cfg config.StoreConfig) error {
	if dialect.Name == sqlstore.SQLite.Name {
		return sqlstore.Migrate(db, dialect)
	}

	migrationDB, err := sqlstore.Open(dialect, cfg.URL, sqlstore.PoolConfig{MaxOpenConns: 1, PingTimeout: cfg.Timeout})
	if err != nil {
		return fmt.Errorf("failed to open database for migrations: %w", err)
	}
	defer migrationDB.Close()

	return sqlstore.Migrate(migrationDB, dialect)
}

var seedTitles = []string{
	"Write release notes",
	"Review pull request",
	"Update dependencies",
	"Fix flaky test",
	"Plan sprint",
	"Refactor list endpoint",
	"Triage bug reports",
	"Document API",
}

// Seed inserts n demo tasks when the store is empty. Tasks are spaced one minute
// apart going back from now and cycle through every status.
func Seed(ctx context.Context, store Store, n int, now time.Time) error {
	existing, err := store.Count(ctx, domain.TaskFilter{})
	if err != nil {
		return fmt.Errorf("failed to count tasks before seeding: %w", err)
	}
	if existing > 0 {
		return nil
	}

	for i := 0; i < n; i++ {
		title := fmt.Sprintf("%s #%d", seedTitles[i%len(seedTitles)], i+1)
		task, err := domain.NewTask(title, domain.Statuses[i%len(domain.Statuses)], i%5)
		if err != nil {
			return err
		}
		task.CreatedAt = now.Add(-time.Duration(i) * time.Minute)

		if err := store.Insert(ctx, task); err != nil {
			return fmt.Errorf("failed to seed task %d: %w", i+1, err)
		}
	}
	return nil
}
