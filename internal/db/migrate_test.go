package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/craftdex/internal/testutil"
)

func TestRunMigrations_Idempotent(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	ctx := testutil.ContextWithTimeout(t, testutil.DBTimeout)

	// SetupTestDB уже применил схему, повторный прогон ничего не меняет.
	require.NoError(t, RunMigrations(ctx, pool.Config().ConnString()))

	var version int64
	err := pool.QueryRow(ctx, `SELECT max(version_id) FROM goose_db_version`).Scan(&version)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	var exists bool
	err = pool.QueryRow(ctx, `SELECT to_regclass('items') IS NOT NULL`).Scan(&exists)
	require.NoError(t, err)
	assert.True(t, exists)
}
