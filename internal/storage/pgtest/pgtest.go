// Package pgtest starts a throwaway Postgres with the schema applied, for
// tests that need real locking and constraint behavior.
package pgtest

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/carson-networks/money-movement/internal/storage"
	"github.com/carson-networks/money-movement/migrations"
)

const image = "postgres:16-alpine"

// Start skips under -short. The container is removed when t finishes.
func Start(t *testing.T) *storage.Storage {
	t.Helper()
	if testing.Short() {
		t.Skip("pgtest: skipping container test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	container, err := postgres.Run(ctx, image,
		postgres.WithDatabase("money_movement"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("testpassword"),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = migrations.Up(db)
	require.NoError(t, err)

	return storage.NewStorageFromDB(db)
}
