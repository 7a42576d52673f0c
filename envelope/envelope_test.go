package envelope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmsyan/mediated-kpabe/internal/curve"
)

func randomGT(t *testing.T) curve.GT {
	t.Helper()
	g1, g2 := curve.Generators()
	pair, err := curve.Pair(g1, g2)
	require.NoError(t, err)
	gt, err := curve.RandomGT(pair)
	require.NoError(t, err)
	return gt
}

func TestSealOpenRoundTrip(t *testing.T) {
	secret := randomGT(t)
	plaintext := []byte("Hello World!")

	sealed, err := Seal(secret, plaintext)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(sealed), nonceSize+16)

	opened, err := Open(secret, sealed)
	require.NoError(t, err)
	assert.Equal(t, plaintext, opened)
}

func TestOpenWrongSecretFails(t *testing.T) {
	secret := randomGT(t)
	wrong := randomGT(t)
	sealed, err := Seal(secret, []byte("payload"))
	require.NoError(t, err)

	_, err = Open(wrong, sealed)
	require.Error(t, err)
	var authErr *AuthenticationError
	assert.ErrorAs(t, err, &authErr)
}

func TestOpenTruncatedFails(t *testing.T) {
	secret := randomGT(t)
	_, err := Open(secret, []byte("short"))
	require.Error(t, err)
}

func TestSealNonceIsRandom(t *testing.T) {
	secret := randomGT(t)
	a, err := Seal(secret, []byte("same plaintext"))
	require.NoError(t, err)
	b, err := Seal(secret, []byte("same plaintext"))
	require.NoError(t, err)
	assert.NotEqual(t, a[:nonceSize], b[:nonceSize])
}
