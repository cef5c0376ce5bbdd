package core

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/sha3"
)

// Digest is a 32-byte hash output, used uniformly for Merkle leaves,
// internal nodes, and roots.
type Digest [32]byte

// HashFunc names a leaf/node hash backend. "sha256" is canonical: the
// protocol's byte-for-byte reproducibility (spec fixtures, Fiat-Shamir
// transcripts) depends on it. "sha3" exists as an ambient alternative the
// channel and tree both expose, never used on the canonical proving path.
type HashFunc string

const (
	HashSHA256 HashFunc = "sha256"
	HashSHA3   HashFunc = "sha3"
)

// HashForChannel exposes the selected hash backend to the Fiat-Shamir
// channel, which absorbs arbitrary byte strings rather than fixed-width
// leaves, so it needs the raw hash rather than the leaf/node encodings.
func HashForChannel(fn HashFunc, data []byte) Digest {
	return hashBytes(fn, data)
}

func hashBytes(fn HashFunc, data []byte) Digest {
	switch fn {
	case HashSHA3:
		return Digest(sha3.Sum256(data))
	case HashSHA256, "":
		return Digest(sha256.Sum256(data))
	default:
		panic(fmt.Sprintf("core: unknown hash function %q", fn))
	}
}

// leafHash hashes a single field-element residue as its big-endian 4-byte
// encoding, matching the canonical transcript's leaf encoding.
func leafHash(fn HashFunc, residue uint32) Digest {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], residue)
	return hashBytes(fn, buf[:])
}

// nodeHash hashes two child digests in left-then-right order.
func nodeHash(fn HashFunc, left, right Digest) Digest {
	buf := make([]byte, 0, 64)
	buf = append(buf, left[:]...)
	buf = append(buf, right[:]...)
	return hashBytes(fn, buf)
}

// MerkleTree is a binary Merkle tree over a power-of-two number of
// Fp-residue leaves, stored as a flat array: index 0 is the root, and for
// any internal node at index i its children sit at 2i+1 and 2i+2 (leaves
// occupy the back half of the array). This mirrors the original Rust
// reference's flat layout rather than the teacher's level-slice layout,
// since the flat index arithmetic is what the fixed test vectors below are
// computed against.
type MerkleTree struct {
	hashFunc HashFunc
	nodes    []Digest // flat array, root at index 0
	numLeafs int
}

// NewMerkleTree builds a tree over the given residues, which must have a
// power-of-two length. leaves[i] becomes the hash of residues[i]'s
// big-endian encoding.
func NewMerkleTree(residues []uint32, fn HashFunc) (*MerkleTree, error) {
	n := len(residues)
	if n == 0 || n&(n-1) != 0 {
		return nil, fmt.Errorf("core: merkle tree requires a power-of-two, nonzero leaf count, got %d", n)
	}

	nodes := make([]Digest, 2*n-1)
	leafOffset := n - 1
	for i, r := range residues {
		nodes[leafOffset+i] = leafHash(fn, r)
	}
	for i := leafOffset - 1; i >= 0; i-- {
		nodes[i] = nodeHash(fn, nodes[2*i+1], nodes[2*i+2])
	}

	return &MerkleTree{hashFunc: fn, nodes: nodes, numLeafs: n}, nil
}

// Root returns the tree's root digest.
func (t *MerkleTree) Root() Digest {
	return t.nodes[0]
}

// AuthPath is an authentication path from a leaf to the root: the sibling
// digest encountered at each level, in leaf-to-root order.
type AuthPath []Digest

// Path returns the authentication path for the leaf at the given index.
func (t *MerkleTree) Path(index int) (AuthPath, error) {
	if index < 0 || index >= t.numLeafs {
		return nil, fmt.Errorf("core: leaf index %d out of range [0, %d)", index, t.numLeafs)
	}
	i := index + t.numLeafs - 1
	var path AuthPath
	for i > 0 {
		if i%2 == 0 {
			path = append(path, t.nodes[i-1])
			i -= 2
		} else {
			path = append(path, t.nodes[i+1])
			i -= 1
		}
		i >>= 1
	}
	return path, nil
}

// VerifyPath recomputes the root from a leaf residue, its index, and an
// authentication path, and reports whether it matches the expected root.
func VerifyPath(fn HashFunc, root Digest, residue uint32, index int, path AuthPath) bool {
	current := leafHash(fn, residue)
	numLeafs := 1 << len(path)
	idx := index + numLeafs - 1
	for _, sibling := range path {
		if idx%2 == 0 {
			current = nodeHash(fn, sibling, current)
		} else {
			current = nodeHash(fn, current, sibling)
		}
		idx = (idx - 1) >> 1
	}
	return current == root
}
