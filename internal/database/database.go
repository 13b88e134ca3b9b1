// package database provides sqlite and postgresql connection management.
package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/blockedby/starred-jobs/internal/models"
)

// Dialect names the backing engine.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// DB wraps a GORM instance and remembers which engine it talks to.
type DB struct {
	GORM    *gorm.DB
	Dialect Dialect
}

// DialectFor picks the engine from a database URL.
// postgres:// and postgresql:// select postgres; anything else is a sqlite path.
func DialectFor(databaseURL string) Dialect {
	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		return DialectPostgres
	}
	return DialectSQLite
}

// New opens the database named by databaseURL and verifies connectivity.
func New(ctx context.Context, databaseURL string) (*DB, error) {
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}

	dialect := DialectFor(databaseURL)

	var (
		gormDB *gorm.DB
		err    error
	)
	switch dialect {
	case DialectPostgres:
		gormDB, err = gorm.Open(postgres.Open(databaseURL), cfg)
	default:
		dsn, derr := sqliteDSN(databaseURL)
		if derr != nil {
			return nil, derr
		}
		gormDB, err = gorm.Open(sqlite.Open(dsn), cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("open gorm: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}
	if dialect == DialectSQLite {
		// sqlite serialises writers; one connection also keeps :memory: databases shared
		sqlDB.SetMaxOpenConns(1)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{GORM: gormDB, Dialect: dialect}, nil
}

// sqliteDSN adds the pragmas the service relies on and creates the parent directory.
func sqliteDSN(path string) (string, error) {
	if path != ":memory:" && !strings.HasPrefix(path, "file:") {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return "", fmt.Errorf("create database dir: %w", err)
		}
	}

	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", nil
}

// Migrate creates or updates the users and favorites tables.
func (db *DB) Migrate() error {
	if err := db.GORM.AutoMigrate(&models.User{}, &models.Favorite{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// Reset drops every table and recreates the schema.
func (db *DB) Reset() error {
	if err := db.GORM.Migrator().DropTable(&models.Favorite{}, &models.User{}); err != nil {
		return fmt.Errorf("drop tables: %w", err)
	}
	return db.Migrate()
}

// Close closes the underlying connection pool.
func (db *DB) Close() error {
	sqlDB, err := db.GORM.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks if the database is reachable.
func (db *DB) Ping(ctx context.Context) error {
	sqlDB, err := db.GORM.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
