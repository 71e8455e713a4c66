package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// NewTestDB creates a new in-memory SQLite database for testing
func NewTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(":memory:")
	require.NoError(t, err, "failed to create test database")

	err = db.RunMigrations()
	require.NoError(t, err, "failed to run migrations")

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func TestSettings_GetUnsetReturnsEmpty(t *testing.T) {
	repo := NewSettingsRepository(NewTestDB(t))
	value, err := repo.Get(context.Background(), "provider")
	require.NoError(t, err)
	require.Equal(t, "", value)
}

func TestSettings_SetAndGet(t *testing.T) {
	repo := NewSettingsRepository(NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "provider", "openai"))
	value, err := repo.Get(ctx, "provider")
	require.NoError(t, err)
	require.Equal(t, "openai", value)

	// Overwrite replaces the old value.
	require.NoError(t, repo.Set(ctx, "provider", "local"))
	value, err = repo.Get(ctx, "provider")
	require.NoError(t, err)
	require.Equal(t, "local", value)
}

func TestSettings_All(t *testing.T) {
	repo := NewSettingsRepository(NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "provider", "openai"))
	require.NoError(t, repo.Set(ctx, "model", "gpt-4o-mini"))

	all, err := repo.All(ctx)
	require.NoError(t, err)
	require.Equal(t, map[string]string{
		"provider": "openai",
		"model":    "gpt-4o-mini",
	}, all)
}
