package core

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func digestFromHex(t *testing.T, s string) Digest {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	require.Len(t, b, 32)
	var d Digest
	copy(d[:], b)
	return d
}

// TestMerkleFixedVector reproduces the four-leaf tree over residues
// {1, 2, 3, 4}, including its root, from the reference implementation this
// statement's Merkle scheme was distilled from.
func TestMerkleFixedVector(t *testing.T) {
	tree, err := NewMerkleTree([]uint32{1, 2, 3, 4}, HashSHA256)
	require.NoError(t, err)

	want := digestFromHex(t, "327cf213e1738de4206bfd14297c26c682961750cb56897ed5e8f519b0548ff2")
	assert.Equal(t, want, tree.Root())
}

func TestMerklePathVerifies(t *testing.T) {
	tree, err := NewMerkleTree([]uint32{1, 2, 3, 4}, HashSHA256)
	require.NoError(t, err)

	for i, residue := range []uint32{1, 2, 3, 4} {
		path, err := tree.Path(i)
		require.NoError(t, err)
		assert.True(t, VerifyPath(HashSHA256, tree.Root(), residue, i, path))
	}
}

func TestMerklePathRejectsWrongLeaf(t *testing.T) {
	tree, err := NewMerkleTree([]uint32{1, 2, 3, 4}, HashSHA256)
	require.NoError(t, err)

	path, err := tree.Path(0)
	require.NoError(t, err)
	assert.False(t, VerifyPath(HashSHA256, tree.Root(), 99, 0, path))
}

func TestMerklePathRejectsWrongIndex(t *testing.T) {
	tree, err := NewMerkleTree([]uint32{1, 2, 3, 4}, HashSHA256)
	require.NoError(t, err)

	path, err := tree.Path(1)
	require.NoError(t, err)
	assert.False(t, VerifyPath(HashSHA256, tree.Root(), 2, 0, path))
}

func TestMerkleSHA3DiffersFromSHA256(t *testing.T) {
	treeSHA256, err := NewMerkleTree([]uint32{1, 2, 3, 4}, HashSHA256)
	require.NoError(t, err)
	treeSHA3, err := NewMerkleTree([]uint32{1, 2, 3, 4}, HashSHA3)
	require.NoError(t, err)

	assert.NotEqual(t, treeSHA256.Root(), treeSHA3.Root())
}

func TestMerkleRejectsNonPowerOfTwo(t *testing.T) {
	_, err := NewMerkleTree([]uint32{1, 2, 3}, HashSHA256)
	assert.Error(t, err)
}
