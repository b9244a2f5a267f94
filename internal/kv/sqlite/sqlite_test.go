package sqlite

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"browserstore/internal/kv"
)

func openTestDB(t *testing.T) (*DB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "browserstore.db")
	db, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, db.Close()) })
	return db, path
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open(" ")
	require.Error(t, err)
}

func TestOpenRunsMigrationsOnce(t *testing.T) {
	_, path := openTestDB(t)

	// Reopening must not re-apply migrations.
	again, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, again.Close())

	sqlDB, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer func() { _ = sqlDB.Close() }()

	var n int
	require.NoError(t, sqlDB.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&n))
	require.Equal(t, 1, n)
	require.NoError(t, sqlDB.QueryRow(`SELECT COUNT(*) FROM storage_items`).Scan(&n))
}

func TestArea_Items(t *testing.T) {
	db, _ := openTestDB(t)
	local := db.Area("local")

	_, ok, err := local.GetItem("k")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, local.SetItem("k", `"v1"`))
	require.NoError(t, local.SetItem("k", `"v2"`))
	text, ok, err := local.GetItem("k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `"v2"`, text)

	require.NoError(t, local.RemoveItem("k"))
	require.NoError(t, local.RemoveItem("k"))
	_, ok, err = local.GetItem("k")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestArea_NamesAreIsolated(t *testing.T) {
	db, _ := openTestDB(t)
	local, session := db.Area("local"), db.Area("session")

	require.NoError(t, local.SetItem("k", "local"))
	require.NoError(t, session.SetItem("k", "session"))

	require.NoError(t, kv.New("session", session, nil).Clear())
	_, ok, err := session.GetItem("k")
	require.NoError(t, err)
	require.False(t, ok)

	text, ok, err := local.GetItem("k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "local", text)
}

func TestArea_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "browserstore.db")
	db, err := Open(path)
	require.NoError(t, err)
	store := kv.New("local", db.Area("local"), nil)
	require.NoError(t, store.Set("prefs", kv.Literal(map[string]any{"theme": "dark"})))
	require.NoError(t, db.Close())

	db, err = Open(path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()
	store = kv.New("local", db.Area("local"), nil)
	require.Equal(t, map[string]any{"theme": "dark"}, store.Get("prefs", kv.Value{}))
}

func TestUpSection(t *testing.T) {
	require.Equal(t, "\nA\n", upSection("-- +migrate Up\nA\n-- +migrate Down\nB"))
	require.Equal(t, "plain", upSection("plain"))
}
