package password

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashVerifyRoundTrip(t *testing.T) {
	hashed, err := Hash("secret1")
	require.NoError(t, err)
	require.NotEqual(t, "secret1", hashed)

	ok, err := Verify("secret1", hashed)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = Verify("wrongpass", hashed)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestHashUsesConfiguredCost(t *testing.T) {
	hashed, err := Hash("secret1")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hashed))
	require.NoError(t, err)
	require.Equal(t, Cost, cost)
}

func TestHashIsSalted(t *testing.T) {
	first, err := Hash("secret1")
	require.NoError(t, err)
	second, err := Hash("secret1")
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}

func TestVerifyMalformedStoredHash(t *testing.T) {
	ok, err := Verify("secret1", "not-a-bcrypt-hash")
	require.Error(t, err)
	require.False(t, ok)
}
