package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSQLiteEnablesForeignKeys(t *testing.T) {
	conn, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	var on int
	require.NoError(t, conn.QueryRow(`PRAGMA foreign_keys;`).Scan(&on))
	assert.Equal(t, 1, on)
}

func TestOpenSQLiteMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "trips.db")

	conn, err := OpenSQLite(path)
	require.Error(t, err)
	assert.Nil(t, conn)
	assert.Contains(t, err.Error(), "verify sqlite connection")
}
