package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blockedby/starred-jobs/internal/models"
)

func TestDialectFor(t *testing.T) {
	assert.Equal(t, DialectPostgres, DialectFor("postgres://u:p@localhost:5432/db"))
	assert.Equal(t, DialectPostgres, DialectFor("postgresql://localhost/db"))
	assert.Equal(t, DialectSQLite, DialectFor("./data/starred.db"))
	assert.Equal(t, DialectSQLite, DialectFor(":memory:"))
}

func TestNew_SQLiteFileMigrates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "starred.db")

	db, err := New(context.Background(), path)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Migrate())
	assert.True(t, db.GORM.Migrator().HasTable(&models.User{}))
	assert.True(t, db.GORM.Migrator().HasTable(&models.Favorite{}))
	assert.NoError(t, db.Ping(context.Background()))
}

func TestReset_ClearsRows(t *testing.T) {
	db, err := New(context.Background(), ":memory:")
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, db.Migrate())

	require.NoError(t, db.GORM.Create(&models.User{FirstName: "A", LastName: "B", Email: "a@b.c", Password: "x", Salt: "y"}).Error)

	require.NoError(t, db.Reset())

	var n int64
	require.NoError(t, db.GORM.Model(&models.User{}).Count(&n).Error)
	assert.Zero(t, n)
}
