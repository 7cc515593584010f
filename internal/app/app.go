// Package app assembles the ledger from configuration so the API server and
// the TUI share one wiring.
package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/movilidad/internal/company"
	companyCache "github.com/MrJamesThe3rd/movilidad/internal/company/cache"
	companyStore "github.com/MrJamesThe3rd/movilidad/internal/company/store"
	"github.com/MrJamesThe3rd/movilidad/internal/config"
	"github.com/MrJamesThe3rd/movilidad/internal/database"
	"github.com/MrJamesThe3rd/movilidad/internal/metrics"
	"github.com/MrJamesThe3rd/movilidad/internal/submission"
	submissionStore "github.com/MrJamesThe3rd/movilidad/internal/submission/store"
	"github.com/MrJamesThe3rd/movilidad/internal/worker"
	workerStore "github.com/MrJamesThe3rd/movilidad/internal/worker/store"
)

type App struct {
	DB      *sql.DB
	Redis   *redis.Client // nil when REDIS_ADDR is unset
	Metrics *metrics.Metrics
	Ledger  *submission.Service
	Workers *worker.Service
}

// New connects to Postgres, runs migrations when enabled and builds the
// services. Close releases the connections.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	limit, err := cfg.Cap()
	if err != nil {
		return nil, err
	}

	db, err := database.New(ctx, database.Options{
		DSN:             cfg.ConnectionString(),
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if cfg.DB.Migrate {
		if err := database.Migrate(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrating database: %w", err)
		}
	}

	a := &App{DB: db}

	if cfg.Redis.Addr != "" {
		a.Redis = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})

		if err := a.Redis.Ping(ctx).Err(); err != nil {
			log.Warn("redis unreachable, company cache will retry per request", zap.Error(err))
		}
	}

	var (
		workers   = worker.NewService(workerStore.New(db))
		companies = company.NewService(
			companyCache.New(a.Redis, companyStore.New(db), cfg.Redis.TTL, log.Named("company_cache")),
		)
		opts = []submission.Option{submission.WithLogger(log.Named("ledger"))}
	)

	if cfg.Metrics.Enabled {
		a.Metrics = metrics.New()
		opts = append(opts, submission.WithRecorder(a.Metrics))
	}

	a.Workers = workers
	a.Ledger = submission.NewService(
		submissionStore.New(db),
		workers,
		companies,
		submission.NewCapEnforcer(limit),
		opts...,
	)

	return a, nil
}

func (a *App) Close() error {
	if a.Redis != nil {
		_ = a.Redis.Close()
	}

	return a.DB.Close()
}
