package config

import (
	"path/filepath"
	"testing"

	"Recipe-Share-Backend/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresDSN(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_USER", "chef")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_NAME", "recipes")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_SSLMODE", "require")

	assert.Equal(t,
		"host=db.internal user=chef password=pw dbname=recipes port=6543 sslmode=require TimeZone=UTC",
		PostgresDSN())
}

func TestConnectDBSQLite(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "app.db"))

	db, err := ConnectDB()
	require.NoError(t, err)
	assert.False(t, database.IsPostgres(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
}

func TestConnectDBUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "oracle")

	_, err := ConnectDB()
	assert.Error(t, err)
}
