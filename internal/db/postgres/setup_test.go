package postgres

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"Postfeed/internal/db/migrations"

	"github.com/stretchr/testify/require"
)

// setupTestDB connects to TEST_DATABASE_URL and rebuilds the schema
// Tests are skipped when the variable is not set
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping PostgreSQL repository tests")
	}

	driver := os.Getenv("TEST_DATABASE_DRIVER")
	ctx := context.Background()

	db, err := Open(ctx, Options{
		Driver:          driver,
		DSN:             dsn,
		MaxOpenConns:    4,
		MaxIdleConns:    2,
		ConnMaxLifetime: time.Minute,
		ConnectTimeout:  5 * time.Second,
	})
	require.NoError(t, err, "Failed to connect to test database")

	require.NoError(t, migrations.Reset(ctx, db), "Failed to reset migrations")
	require.NoError(t, migrations.Up(ctx, db), "Failed to run migrations")

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}
