// Package store opens the configured article store and exposes its
// repositories together with the health probes for the backing service.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"blog/internal/config"
	"blog/internal/infra/adapter/persistence"
	blogmongo "blog/internal/infra/adapter/persistence/mongo"
	pgRepo "blog/internal/infra/adapter/persistence/postgres"
	sqliteRepo "blog/internal/infra/adapter/persistence/sqlite"
	"blog/internal/infra/db"
	"blog/internal/repository"
	"blog/internal/resilience/circuitbreaker"
)

// ErrCircuitOpen is reported by the breaker health probe while the breaker is open.
var ErrCircuitOpen = errors.New("circuit breaker open")

// Store is an opened article store.
type Store struct {
	Driver   string
	Articles repository.ArticleRepository
	Authors  repository.AuthorRepository
	// Checks are health probes keyed by name. A nil return means healthy.
	Checks map[string]func(ctx context.Context) error

	sqlDB       *sql.DB
	mongoClient *blogmongo.Client
}

// Open connects to the store selected by cfg.Driver and prepares its schema:
// migrations for the SQL drivers, indexes and seed authors for mongo.
func Open(ctx context.Context, cfg config.StoreConfig, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	switch cfg.Driver {
	case config.DriverPostgres, config.DriverSQLite:
		return openSQL(ctx, cfg, logger)
	case config.DriverMongo:
		return openMongo(ctx, cfg, logger)
	default:
		return nil, fmt.Errorf("store: unknown driver %q", cfg.Driver)
	}
}

func openSQL(ctx context.Context, cfg config.StoreConfig, logger *slog.Logger) (*Store, error) {
	dialect := db.DialectPostgres
	if cfg.Driver == config.DriverSQLite {
		dialect = db.DialectSQLite
	}

	connCfg := db.DefaultConnectionConfig()
	if cfg.MaxOpenConns > 0 {
		connCfg.MaxOpenConns = cfg.MaxOpenConns
	}
	if cfg.MaxIdleConns > 0 {
		connCfg.MaxIdleConns = cfg.MaxIdleConns
	}
	if cfg.ConnMaxLifetime > 0 {
		connCfg.ConnMaxLifetime = cfg.ConnMaxLifetime
	}

	sqlDB, err := db.Open(ctx, dialect, cfg.DatabaseURL, connCfg)
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	if err := db.MigrateUp(ctx, sqlDB, dialect); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("store: %w", err)
	}

	s := &Store{
		Driver: cfg.Driver,
		Checks: map[string]func(ctx context.Context) error{
			"database": sqlDB.PingContext,
		},
		sqlDB: sqlDB,
	}

	var q persistence.Querier = sqlDB
	if cfg.CircuitBreakerEnabled {
		breaker := circuitbreaker.NewDBCircuitBreaker(sqlDB)
		q = breaker
		s.Checks["circuit_breaker"] = func(context.Context) error {
			if breaker.IsOpen() {
				return ErrCircuitOpen
			}
			return nil
		}
	}

	if dialect == db.DialectSQLite {
		s.Articles = sqliteRepo.NewArticleRepo(q)
		s.Authors = sqliteRepo.NewAuthorRepo(q)
	} else {
		s.Articles = pgRepo.NewArticleRepo(q)
		s.Authors = pgRepo.NewAuthorRepo(q)
	}

	logger.Info("store opened",
		slog.String("driver", cfg.Driver),
		slog.Int("max_open_conns", connCfg.MaxOpenConns),
		slog.Bool("circuit_breaker", cfg.CircuitBreakerEnabled))
	return s, nil
}

func openMongo(ctx context.Context, cfg config.StoreConfig, logger *slog.Logger) (*Store, error) {
	client, err := blogmongo.NewClient(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	if err := blogmongo.EnsureSchema(ctx, client.Database()); err != nil {
		_ = client.Close(ctx)
		return nil, fmt.Errorf("store: %w", err)
	}

	logger.Info("store opened",
		slog.String("driver", cfg.Driver),
		slog.String("database", cfg.MongoDatabase))
	return &Store{
		Driver:   cfg.Driver,
		Articles: blogmongo.NewArticleRepo(client.Database()),
		Authors:  blogmongo.NewAuthorRepo(client.Database()),
		Checks: map[string]func(ctx context.Context) error{
			"database": client.Ping,
		},
		mongoClient: client,
	}, nil
}

// ReportPoolStats publishes SQL pool gauges every interval until ctx is done.
// For mongo it just waits for ctx.
func (s *Store) ReportPoolStats(ctx context.Context, interval time.Duration) {
	if s.sqlDB == nil {
		<-ctx.Done()
		return
	}
	db.ReportPoolStats(ctx, s.sqlDB, interval)
}

// Close releases the underlying connection pool or client.
func (s *Store) Close(ctx context.Context) error {
	switch {
	case s.sqlDB != nil:
		return s.sqlDB.Close()
	case s.mongoClient != nil:
		return s.mongoClient.Close(ctx)
	default:
		return nil
	}
}
