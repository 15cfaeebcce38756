package user

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestNewAssignsID(t *testing.T) {
	u := New("alice", "a@x.com", "hashed")

	_, err := uuid.Parse(u.ID)
	require.NoError(t, err)
	require.Equal(t, "alice", u.Username)
	require.Equal(t, "a@x.com", u.Email)
	require.Equal(t, "hashed", u.PasswordHash)
}

func TestNewAssignsUniqueIDs(t *testing.T) {
	first := New("alice", "a@x.com", "hashed")
	second := New("alice", "a@x.com", "hashed")
	require.NotEqual(t, first.ID, second.ID)
}
