package utils

import (
	"fmt"

	"github.com/vybium/vybium-fib-stark/internal/vybium-fib-stark/core"
)

// Config captures the fixed-statement parameters for the Fibonacci-square
// STARK: trace length, evaluation domain size, FRI layer count, and the
// hash function backing the Merkle tree and Fiat-Shamir channel. Unlike the
// teacher's general-purpose config, TraceLength has exactly one correct
// value for the statement this repository proves and Validate pins it;
// EvaluationDomain and FRILayers are only range-checked.
type Config struct {
	// TraceLength is the number of rows in the execution trace: indices
	// 0..1022 for a[0]..a[1022], i.e. 1023 values.
	TraceLength int

	// EvaluationDomain is the size of the low-degree-extension domain the
	// trace and composition polynomials are evaluated over.
	EvaluationDomain int

	// FRILayers is the number of FRI folding rounds.
	FRILayers int

	// HashFunction selects the Merkle/channel hash backend: "sha256" is
	// canonical and required for the fixed test vectors and transcript
	// format; "sha3" is an ambient alternative for non-canonical use.
	HashFunction core.HashFunc
}

// DefaultConfig returns the one configuration this repository's statement
// is defined for.
func DefaultConfig() *Config {
	return &Config{
		TraceLength:      1023,
		EvaluationDomain: 8192,
		FRILayers:        10,
		HashFunction:     core.HashSHA256,
	}
}

// Validate checks the configuration against the invariants the fixed
// statement requires: the trace length must be exactly 1023 (1024 rows
// including the implicit padding slot the trace domain's order requires),
// the evaluation domain must be a power of two at least 8x the trace
// domain's size, and FRILayers must be positive and must not fold that
// domain below a single point.
func (c *Config) Validate() error {
	if c.TraceLength != 1023 {
		return fmt.Errorf("trace length must be 1023, got %d", c.TraceLength)
	}
	if !IsPowerOfTwo(c.EvaluationDomain) {
		return fmt.Errorf("evaluation domain size must be a power of two, got %d", c.EvaluationDomain)
	}
	if c.EvaluationDomain < 8*NextPowerOfTwo(c.TraceLength+1) {
		return fmt.Errorf("evaluation domain size (%d) must be at least 8x the trace domain", c.EvaluationDomain)
	}
	if c.FRILayers <= 0 {
		return fmt.Errorf("FRI layers must be positive")
	}
	if (1 << uint(c.FRILayers)) > c.EvaluationDomain {
		return fmt.Errorf("FRI layers (%d) cannot fold the domain (%d) below one element", c.FRILayers, c.EvaluationDomain)
	}
	switch c.HashFunction {
	case core.HashSHA256, core.HashSHA3:
	default:
		return fmt.Errorf("hash function must be %q or %q, got %q", core.HashSHA256, core.HashSHA3, c.HashFunction)
	}
	return nil
}

// WithFRILayers sets the number of FRI folding rounds.
func (c *Config) WithFRILayers(layers int) *Config {
	c.FRILayers = layers
	return c
}

// WithHashFunction sets the hash backend.
func (c *Config) WithHashFunction(hashFunc core.HashFunc) *Config {
	c.HashFunction = hashFunc
	return c
}

// Clone returns an independent copy of the configuration.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}
