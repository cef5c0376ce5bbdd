package vybiumfibstark

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProveVerifyPublicAPI(t *testing.T) {
	cfg := DefaultConfig()
	proof, err := Prove(cfg, Secret)
	require.NoError(t, err)
	require.NotNil(t, proof)

	assert.NoError(t, Verify(cfg, proof))
}

func TestProveRejectsInvalidSecret(t *testing.T) {
	cfg := DefaultConfig()
	_, err := Prove(cfg, 1)
	require.Error(t, err)

	var starkErr *StarkError
	require.ErrorAs(t, err, &starkErr)
	assert.Equal(t, ErrProofGeneration, starkErr.Code)
}

func TestVerifyRejectsTamperedProof(t *testing.T) {
	cfg := DefaultConfig()
	proof, err := Prove(cfg, Secret)
	require.NoError(t, err)

	proof.FX.Value ^= 1
	err = Verify(cfg, proof)
	require.Error(t, err)

	var starkErr *StarkError
	require.ErrorAs(t, err, &starkErr)
	assert.Equal(t, ErrInvalidProof, starkErr.Code)
}

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	proof, err := Prove(cfg, Secret)
	require.NoError(t, err)

	data, err := Serialize(proof)
	require.NoError(t, err)
	assert.NotEmpty(t, data)

	decoded, err := Deserialize(data)
	require.NoError(t, err)
	assert.NoError(t, Verify(cfg, decoded))
}

func TestExpectedFinalValueMatchesStatement(t *testing.T) {
	assert.Equal(t, uint64(2338775057), uint64(ExpectedFinalValue))
	assert.Equal(t, uint64(3141592), uint64(Secret))
}
