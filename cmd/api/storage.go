package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/storerating/rating-system/internal/core/ports"
	"github.com/storerating/rating-system/internal/infrastructure/config"
	"github.com/storerating/rating-system/internal/infrastructure/db/memory"
	mongodb "github.com/storerating/rating-system/internal/infrastructure/db/mongo"
	"github.com/storerating/rating-system/internal/infrastructure/db/sqldb"
	"github.com/storerating/rating-system/internal/infrastructure/http/handlers"
)

const closeTimeout = 5 * time.Second

// storage is the repository set of the configured backend.
type storage struct {
	users   ports.UserRepository
	stores  ports.StoreRepository
	ratings ports.RatingRepository
	probe   handlers.Dependency
	close   func(context.Context) error
}

// openStorage connects to cfg.Storage.Driver and makes sure its indexes exist.
func openStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*storage, error) {
	switch cfg.Storage.Driver {
	case config.StorageMongo:
		client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")
		return &storage{
			users:   mongodb.NewUserRepository(db),
			stores:  mongodb.NewStoreRepository(db),
			ratings: mongodb.NewRatingRepository(db),
			probe:   handlers.Dependency{Name: "mongodb", Probe: mongodb.Probe(client)},
			close:   client.Disconnect,
		}, nil

	case config.StorageSQL:
		db, err := sqldb.Open(sqldb.Config{Dialect: cfg.SQL.Dialect, DSN: cfg.SQL.DSN})
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("sql: %w", err)
		}
		if err := sqldb.Migrate(ctx, db); err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
		log.Info().Str("dialect", cfg.SQL.Dialect).Msg("connected to sql database")
		return &storage{
			users:   sqldb.NewUserRepository(db),
			stores:  sqldb.NewStoreRepository(db),
			ratings: sqldb.NewRatingRepository(db),
			probe:   handlers.Dependency{Name: "sql", Probe: sqldb.Probe(db)},
			close:   func(context.Context) error { return sqlDB.Close() },
		}, nil

	case config.StorageMemory:
		db := memory.New()
		log.Warn().Msg("using in-memory storage; data is lost on restart")
		return &storage{
			users:   db.Users(),
			stores:  db.Stores(),
			ratings: db.Ratings(),
			probe:   handlers.Dependency{Name: "memory", Probe: db.Ping},
			close:   func(context.Context) error { return nil },
		}, nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}
