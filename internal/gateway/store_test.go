package gateway

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupStore(t *testing.T, name string) *SQLiteStore {
	t.Helper()
	db, err := Open(context.Background(), "file:"+name+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLiteStore(db)
}

func TestSQLiteStore_PutThenGet(t *testing.T) {
	store := setupStore(t, "putget")
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "user:alice", `{"name":"Alice"}`, false))

	rec, found, err := store.Get(ctx, "user:alice")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "user:alice", rec.Key)
	require.Equal(t, `{"name":"Alice"}`, rec.Value)
	require.False(t, rec.Shared)
	require.False(t, rec.UpdatedAt.IsZero())
}

func TestSQLiteStore_GetAbsent(t *testing.T) {
	store := setupStore(t, "absent")

	_, found, err := store.Get(context.Background(), "user:nobody")
	require.NoError(t, err)
	require.False(t, found)
}

func TestSQLiteStore_UpsertLastWriterWins(t *testing.T) {
	store := setupStore(t, "upsert")
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "online-users", `["x"]`, true))
	require.NoError(t, store.Put(ctx, "online-users", `["y"]`, true))

	rec, found, err := store.Get(ctx, "online-users")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, `["y"]`, rec.Value, "no merge, the second write replaces the first")
	require.True(t, rec.Shared)
}

func TestOpen_MigrationsAreIdempotent(t *testing.T) {
	dsn := "file:remigrate?mode=memory&cache=shared"
	db, err := Open(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	db2, err := Open(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db2.Close() })

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM records`).Scan(&n))
	require.Zero(t, n)
}

func TestSQLiteStore_WorksInsideTransaction(t *testing.T) {
	db, err := Open(context.Background(), "file:txstore?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)

	store := NewSQLiteStore(tx)
	require.NoError(t, store.Put(context.Background(), "k", "v", false))
	require.NoError(t, tx.Commit())

	var got string
	require.NoError(t, db.QueryRow(`SELECT value FROM records WHERE key = ?`, "k").Scan(&got))
	require.Equal(t, "v", got)
}
