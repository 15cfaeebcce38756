package user

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TEST_DATABASE_DSN が設定されている場合のみ実行する統合テストです。
func newTestStore(t *testing.T) *PostgresStore {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN is not set")
	}

	store, err := NewPostgresStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, store.RunMigrations(ctx))

	_, err = store.db.ExecContext(ctx, "TRUNCATE users")
	require.NoError(t, err)

	return store
}

func TestPostgresInsertAndFindByEmail(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	u := New("alice", "a@x.com", "hashed")
	require.NoError(t, store.Insert(ctx, u))

	creds, err := store.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.Len(t, creds, 1)
	require.Equal(t, "alice", creds[0].Username)
	require.Equal(t, "hashed", creds[0].PasswordHash)
}

func TestPostgresFindByEmailNoMatch(t *testing.T) {
	store := newTestStore(t)

	creds, err := store.FindByEmail(context.Background(), "nobody@x.com")
	require.NoError(t, err)
	require.Empty(t, creds)
}

func TestPostgresDuplicateEmail(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, New("alice", "a@x.com", "hashed")))

	err := store.Insert(ctx, New("bob", "a@x.com", "hashed"))
	require.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestPostgresFindByUsernameAllowsDuplicates(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		u := New("alice", fmt.Sprintf("alice%d@x.com", i), "hashed")
		require.NoError(t, store.Insert(ctx, u))
	}

	creds, err := store.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, creds, 2)
}
