package vybiumfibstark

import (
	"github.com/vybium/vybium-fib-stark/internal/vybium-fib-stark/protocols"
	"github.com/vybium/vybium-fib-stark/internal/vybium-fib-stark/utils"
)

// Config is the public alias for the statement's configuration.
type Config = utils.Config

// Proof is the public alias for a generated proof.
type Proof = protocols.Proof

// Secret is the witness value that satisfies the fixed statement.
const Secret = protocols.Secret

// ExpectedFinalValue is the statement's fixed public output, a[1022].
const ExpectedFinalValue = protocols.ExpectedFinalValue

// DefaultConfig returns the configuration this statement is defined for.
func DefaultConfig() *Config {
	return utils.DefaultConfig()
}

// Prove builds a proof that the caller knows a secret satisfying the
// fixed Fibonacci-square statement, without revealing it.
func Prove(cfg *Config, secret uint64) (*Proof, error) {
	proof, err := protocols.Prove(cfg, secret)
	if err != nil {
		return nil, wrapError(ErrProofGeneration, "failed to generate proof", err)
	}
	return proof, nil
}

// Verify checks a proof against the fixed statement.
func Verify(cfg *Config, proof *Proof) error {
	if err := protocols.Verify(cfg, proof); err != nil {
		return wrapError(ErrInvalidProof, "proof failed verification", err)
	}
	return nil
}

// Serialize encodes a proof to its canonical byte representation.
func Serialize(proof *Proof) ([]byte, error) {
	data, err := proof.Serialize()
	if err != nil {
		return nil, wrapError(ErrSerialization, "failed to serialize proof", err)
	}
	return data, nil
}

// Deserialize decodes a proof from Serialize's byte representation.
func Deserialize(data []byte) (*Proof, error) {
	proof, err := protocols.Deserialize(data)
	if err != nil {
		return nil, wrapError(ErrSerialization, "failed to deserialize proof", err)
	}
	return proof, nil
}
