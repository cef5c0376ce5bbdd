package utils

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/vybium/vybium-fib-stark/internal/vybium-fib-stark/core"
)

// Channel implements the Fiat-Shamir transform: it turns the prover's
// transcript into a sequence of verifier "challenges" derived
// deterministically from everything committed so far, so an interactive
// protocol can run non-interactively. Both prover and verifier build an
// identical Channel and must observe identical state at every step for a
// proof to verify.
type Channel struct {
	state    [32]byte
	log      [][]byte
	hashFunc core.HashFunc
}

// NewChannel creates a channel with a zeroed initial state. hashFunc
// selects the digest backend; "" defaults to the canonical "sha256" the
// protocol's byte-exact transcripts depend on.
func NewChannel(hashFunc core.HashFunc) *Channel {
	if hashFunc == "" {
		hashFunc = core.HashSHA256
	}
	return &Channel{hashFunc: hashFunc}
}

// Commit absorbs data into the channel: appends it to the transcript log
// and re-derives the state as hash(state || data). This is the only way
// the channel's state advances.
func (c *Channel) Commit(data []byte) {
	c.log = append(c.log, append([]byte(nil), data...))
	buf := make([]byte, 0, len(c.state)+len(data))
	buf = append(buf, c.state[:]...)
	buf = append(buf, data...)
	c.state = core.HashForChannel(c.hashFunc, buf)
}

// CommitUint32 absorbs a little-endian 4-byte encoding of v, matching the
// canonical proof transcript's bincode-style integer encoding.
func (c *Channel) CommitUint32(v uint32) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	c.Commit(buf[:])
}

// CommitDigest absorbs a 32-byte Merkle digest.
func (c *Channel) CommitDigest(d core.Digest) {
	c.Commit(d[:])
}

// SqueezeUint32 derives the next challenge: the first four bytes of the
// current state, interpreted big-endian, then re-absorbed (so the next
// squeeze produces a different value). This chaining is what makes
// successive challenges independent while remaining fully deterministic
// given the transcript so far.
func (c *Channel) SqueezeUint32() uint32 {
	v := binary.BigEndian.Uint32(c.state[:4])
	c.CommitUint32(v)
	return v
}

// SqueezeFieldElement derives a challenge reduced into Fp.
func (c *Channel) SqueezeFieldElement() core.Fp {
	return core.NewFp(uint64(c.SqueezeUint32()))
}

// State returns a copy of the current 32-byte accumulator.
func (c *Channel) State() [32]byte {
	return c.state
}

// Log returns the ordered list of absorbed messages, for transcript
// inspection and debugging.
func (c *Channel) Log() [][]byte {
	out := make([][]byte, len(c.log))
	for i, msg := range c.log {
		out[i] = append([]byte(nil), msg...)
	}
	return out
}

// String renders the transcript log as hex, one entry per absorbed
// message.
func (c *Channel) String() string {
	parts := make([]string, len(c.log))
	for i, msg := range c.log {
		parts[i] = hex.EncodeToString(msg)
	}
	return fmt.Sprintf("%v", parts)
}
