package serial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmsyan/mediated-kpabe/abe"
	"github.com/mmsyan/mediated-kpabe/policy"
)

func TestPublicKeyJSONRoundTrip(t *testing.T) {
	pk, _, err := abe.Setup([]string{"A", "B", "C"})
	require.NoError(t, err)

	data, err := MarshalPublicKeyJSON(pk)
	require.NoError(t, err)

	got, err := UnmarshalPublicKeyJSON(data)
	require.NoError(t, err)

	assert.Equal(t, pk.G1, got.G1)
	assert.Equal(t, pk.G2, got.G2)
	assert.Equal(t, pk.Y, got.Y)
	assert.Equal(t, pk.BigT.Keys(), got.BigT.Keys())
	for _, name := range pk.BigT.Keys() {
		want, _ := pk.BigT.Get(name)
		have, _ := got.BigT.Get(name)
		assert.Equal(t, want, have)
	}
}

func TestMasterSecretJSONRoundTrip(t *testing.T) {
	_, msk, err := abe.Setup([]string{"A", "B"})
	require.NoError(t, err)

	data, err := MarshalMasterSecretJSON(msk)
	require.NoError(t, err)

	got, err := UnmarshalMasterSecretJSON(data)
	require.NoError(t, err)
	assert.True(t, msk.Alpha.Equal(&got.Alpha))
}

func TestClientAndMediatorKeyJSONRoundTrip(t *testing.T) {
	pk, msk, err := abe.Setup([]string{"A", "B"})
	require.NoError(t, err)
	clientKey, mediatorKey, err := abe.KeyGen(pk, msk, []string{"A", "B"})
	require.NoError(t, err)

	clientData, err := MarshalClientKeyJSON(clientKey)
	require.NoError(t, err)
	gotClient, err := UnmarshalClientKeyJSON(clientData)
	require.NoError(t, err)
	assert.True(t, clientKey.UID.Equal(&gotClient.UID))
	assert.Equal(t, clientKey.D0, gotClient.D0)

	mediatorData, err := MarshalMediatorKeyJSON(mediatorKey)
	require.NoError(t, err)
	gotMediator, err := UnmarshalMediatorKeyJSON(mediatorData)
	require.NoError(t, err)
	assert.Equal(t, mediatorKey.ArrD1.Keys(), gotMediator.ArrD1.Keys())
}

func TestCiphertextJSONRoundTrip(t *testing.T) {
	pk, _, err := abe.Setup([]string{"A", "B"})
	require.NoError(t, err)
	tree, err := policy.Parse("A&B")
	require.NoError(t, err)
	ct, err := abe.Encrypt(pk, tree, []byte("payload bytes"))
	require.NoError(t, err)

	data, err := MarshalCiphertextJSON(ct)
	require.NoError(t, err)
	got, err := UnmarshalCiphertextJSON(data)
	require.NoError(t, err)

	assert.Equal(t, ct.C0, got.C0)
	assert.Equal(t, ct.C1, got.C1)
	assert.Equal(t, ct.Payload, got.Payload)
	require.Len(t, got.ArrC, len(ct.ArrC))
	for i, share := range ct.ArrC {
		assert.Equal(t, share.ID, got.ArrC[i].ID)
		assert.Equal(t, share.C, got.ArrC[i].C)
	}
}

func TestWrongContainerKindRejected(t *testing.T) {
	pk, _, err := abe.Setup([]string{"A"})
	require.NoError(t, err)
	data, err := MarshalPublicKeyJSON(pk)
	require.NoError(t, err)

	_, err = UnmarshalMasterSecretJSON(data)
	assert.Error(t, err)
}
