// Package dbtest hands out migrated in-memory databases to package tests.
package dbtest

import (
	"testing"

	"quicknotes-be/internal/model"
	"quicknotes-be/pkg/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// New returns a fresh schema that disappears when t finishes.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.NewSQLiteDB(database.InMemorySQLiteDSN(uuid.NewString()), logger.Silent)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(model.All()...))
	return db
}
