// Package sqldb is the relational storage backend, built on gorm. It runs on
// PostgreSQL in production and on SQLite in tests.
package sqldb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/storerating/rating-system/internal/core/domain"
)

// Config selects the SQL dialect and data source.
type Config struct {
	Dialect string // "postgres" or "sqlite"
	DSN     string
}

type userModel struct {
	ID           string `gorm:"primaryKey;size:36"`
	Name         string `gorm:"size:60;not null"`
	Email        string `gorm:"size:255;not null;uniqueIndex"`
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"size:10;not null;default:user;index"`
	Address      string `gorm:"size:400;not null;default:''"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (userModel) TableName() string { return "users" }

type storeModel struct {
	ID        string  `gorm:"primaryKey;size:36"`
	Name      string  `gorm:"size:200;not null"`
	Email     string  `gorm:"size:255;not null;default:''"`
	Address   string  `gorm:"size:400;not null;default:''"`
	OwnerID   *string `gorm:"size:36;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (storeModel) TableName() string { return "stores" }

type ratingModel struct {
	ID        string `gorm:"primaryKey;size:36"`
	UserID    string `gorm:"size:36;not null;uniqueIndex:idx_ratings_user_store"`
	StoreID   string `gorm:"size:36;not null;uniqueIndex:idx_ratings_user_store;index"`
	Value     int    `gorm:"column:rating;not null;check:rating BETWEEN 1 AND 5"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ratingModel) TableName() string { return "ratings" }

// Open connects to the configured database. TranslateError makes unique
// violations surface as gorm.ErrDuplicatedKey on every dialect.
func Open(cfg Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch strings.ToLower(cfg.Dialect) {
	case "postgres", "postgresql":
		dialector = postgres.Open(cfg.DSN)
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("sql: unsupported dialect %q", cfg.Dialect)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the tables and their unique indexes.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(&userModel{}, &storeModel{}, &ratingModel{}); err != nil {
		return fmt.Errorf("sql migrate: %w", err)
	}
	return nil
}

// Probe returns a readiness check for db.
func Probe(db *gorm.DB) func(context.Context) error {
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}

func storageErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStorageUnavailable, err)
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern builds a case-insensitive substring pattern for use with
// LOWER(col) LIKE ? ESCAPE '\'.
func likePattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}

func direction(desc bool) string {
	if desc {
		return "DESC"
	}
	return "ASC"
}
