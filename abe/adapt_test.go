package abe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmsyan/mediated-kpabe/policy"
)

func TestAdaptPreservesExistingMaterial(t *testing.T) {
	pk, msk, err := Setup([]string{"A", "B"})
	require.NoError(t, err)

	adaptedPK, adaptedMSK, err := Adapt(pk, msk, []string{"C"})
	require.NoError(t, err)

	assert.Equal(t, pk.G1, adaptedPK.G1)
	assert.Equal(t, pk.G2, adaptedPK.G2)
	assert.Equal(t, pk.Y, adaptedPK.Y)
	assert.Equal(t, pk.Pair, adaptedPK.Pair)
	assert.True(t, msk.Alpha.Equal(&adaptedMSK.Alpha))

	for _, name := range []string{"A", "B"} {
		original, ok := pk.BigT.Get(name)
		require.True(t, ok)
		adapted, ok := adaptedPK.BigT.Get(name)
		require.True(t, ok)
		assert.Equal(t, original, adapted)
	}

	assert.False(t, pk.BigT.Has("C"))
	assert.True(t, adaptedPK.BigT.Has("C"))
}

func TestAdaptedPublicKeyDecryptsUnderOriginalKey(t *testing.T) {
	pk, msk, err := Setup([]string{"A", "B"})
	require.NoError(t, err)
	clientKey, mediatorKey, err := KeyGen(pk, msk, []string{"A", "B"})
	require.NoError(t, err)

	adaptedPK, _, err := Adapt(pk, msk, []string{"C"})
	require.NoError(t, err)

	tree, err := policy.Parse("A&B")
	require.NoError(t, err)
	ct, err := Encrypt(adaptedPK, tree, []byte("Hello World!"))
	require.NoError(t, err)

	mediatorValue, err := MediatorDecrypt(ct, mediatorKey)
	require.NoError(t, err)
	result, err := UserDecrypt(ct, clientKey, mediatorValue)
	require.NoError(t, err)
	assert.Equal(t, []byte("Hello World!"), result.Message)
}

func TestNewKeyDecryptsDataEncryptedBeforeAdapt(t *testing.T) {
	pk, msk, err := Setup([]string{"A", "B"})
	require.NoError(t, err)

	tree, err := policy.Parse("A&B")
	require.NoError(t, err)
	ct, err := Encrypt(pk, tree, []byte("Hello World!"))
	require.NoError(t, err)

	adaptedPK, adaptedMSK, err := Adapt(pk, msk, []string{"C"})
	require.NoError(t, err)
	clientKey, mediatorKey, err := KeyGen(adaptedPK, adaptedMSK, []string{"A", "B", "C"})
	require.NoError(t, err)

	mediatorValue, err := MediatorDecrypt(ct, mediatorKey)
	require.NoError(t, err)
	result, err := UserDecrypt(ct, clientKey, mediatorValue)
	require.NoError(t, err)
	assert.Equal(t, []byte("Hello World!"), result.Message)
}
