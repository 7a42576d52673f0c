package abe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmsyan/mediated-kpabe/envelope"
	"github.com/mmsyan/mediated-kpabe/internal/curve"
	"github.com/mmsyan/mediated-kpabe/internal/ordered"
	"github.com/mmsyan/mediated-kpabe/policy"
)

func setupAndKeys(t *testing.T, attrs []string, userAttrs []string) (*PublicKey, *ClientKey, *MediatorKey) {
	t.Helper()
	pk, msk, err := Setup(attrs)
	require.NoError(t, err)
	clientKey, mediatorKey, err := KeyGen(pk, msk, userAttrs)
	require.NoError(t, err)
	return pk, clientKey, mediatorKey
}

func encryptThenDecrypt(t *testing.T, pk *PublicKey, clientKey *ClientKey, mediatorKey *MediatorKey, policyStr string, payload []byte) (*DecryptResult, error) {
	t.Helper()
	tree, err := policy.Parse(policyStr)
	require.NoError(t, err)

	ct, err := Encrypt(pk, tree, payload)
	require.NoError(t, err)

	mediatorValue, err := MediatorDecrypt(ct, mediatorKey)
	if err != nil {
		return nil, err
	}
	return UserDecrypt(ct, clientKey, mediatorValue)
}

func TestRoundTripSeededScenario1(t *testing.T) {
	pk, clientKey, mediatorKey := setupAndKeys(t, []string{"A", "B", "C", "D"}, []string{"A", "B"})
	result, err := encryptThenDecrypt(t, pk, clientKey, mediatorKey, "(A&B)|(C&D)", []byte("Hello World!"))
	require.NoError(t, err)
	assert.Equal(t, []byte("Hello World!"), result.Message)
}

func TestMediatorDecryptFailsWhenPolicyNotSatisfied(t *testing.T) {
	pk, _, mediatorKey := setupAndKeys(t, []string{"A", "B"}, []string{"A"})
	tree, err := policy.Parse("A&B")
	require.NoError(t, err)
	ct, err := Encrypt(pk, tree, []byte("secret"))
	require.NoError(t, err)

	_, err = MediatorDecrypt(ct, mediatorKey)
	require.Error(t, err)
	var notSatisfied *PolicyNotSatisfiedError
	assert.ErrorAs(t, err, &notSatisfied)
}

func TestRoundTripDuplicateAttributeName(t *testing.T) {
	pk, clientKey, mediatorKey := setupAndKeys(t, []string{"A"}, []string{"A"})
	tree, err := policy.Parse("A&A")
	require.NoError(t, err)

	ct, err := Encrypt(pk, tree, []byte("payload"))
	require.NoError(t, err)
	require.Len(t, ct.ArrC, 2)
	assert.NotEqual(t, ct.ArrC[0].ID, ct.ArrC[1].ID)
	assert.Equal(t, "A", ct.ArrC[0].ID.Name)
	assert.Equal(t, "A", ct.ArrC[1].ID.Name)

	mediatorValue, err := MediatorDecrypt(ct, mediatorKey)
	require.NoError(t, err)
	result, err := UserDecrypt(ct, clientKey, mediatorValue)
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), result.Message)
}

func TestRoundTripDeepNesting(t *testing.T) {
	pk, clientKey, mediatorKey := setupAndKeys(t, []string{"A", "B", "C", "D", "E"}, []string{"A", "B", "C"})
	result, err := encryptThenDecrypt(t, pk, clientKey, mediatorKey, "(A|D)&(B|E)&C&A", []byte("nested"))
	require.NoError(t, err)
	assert.Equal(t, []byte("nested"), result.Message)
}

func TestRevocationDeletesDecryptionAbility(t *testing.T) {
	pk, _, mediatorKey := setupAndKeys(t, []string{"A", "B"}, []string{"A", "B"})
	tree, err := policy.Parse("A&B")
	require.NoError(t, err)
	ct, err := Encrypt(pk, tree, []byte("revoke me"))
	require.NoError(t, err)

	// Sanity check: with its key shares intact, the mediator can
	// produce its half of decryption.
	_, err = MediatorDecrypt(ct, mediatorKey)
	require.NoError(t, err)

	// Revocation: the mediator's key shares are deleted (an empty
	// ArrD1, the same state a revoked mediator is left in). With no
	// shares to pair against the ciphertext, MediatorDecrypt must fail
	// rather than quietly succeed.
	revoked := &MediatorKey{ArrD1: ordered.New[string, curve.G2]()}
	_, err = MediatorDecrypt(ct, revoked)
	require.Error(t, err)
	var notSatisfied *PolicyNotSatisfiedError
	assert.ErrorAs(t, err, &notSatisfied)
}

func TestSecretRoundTripsAlongsideMessage(t *testing.T) {
	pk, clientKey, mediatorKey := setupAndKeys(t, []string{"A"}, []string{"A"})
	tree, err := policy.Parse("A")
	require.NoError(t, err)
	ct, err := Encrypt(pk, tree, []byte("msg"))
	require.NoError(t, err)

	mediatorValue, err := MediatorDecrypt(ct, mediatorKey)
	require.NoError(t, err)
	result, err := UserDecrypt(ct, clientKey, mediatorValue)
	require.NoError(t, err)
	assert.Equal(t, []byte("msg"), result.Message)

	// The recovered secret is the one the payload was sealed under.
	opened, err := envelope.Open(result.Secret, ct.Payload)
	require.NoError(t, err)
	assert.Equal(t, []byte("msg"), opened)
}
