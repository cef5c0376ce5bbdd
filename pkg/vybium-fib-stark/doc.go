// Package vybiumfibstark provides a non-interactive STARK prover and
// verifier for one fixed statement: knowledge of a secret a1 such that the
// recurrence a[0]=1, a[1]=a1, a[n+2]=a[n+1]^2+a[n]^2 over F_3221225473
// yields a[1022] = 2338775057.
//
// # Quick start
//
//	cfg := vybiumfibstark.DefaultConfig()
//	proof, err := vybiumfibstark.Prove(cfg, vybiumfibstark.Secret)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	if err := vybiumfibstark.Verify(cfg, proof); err != nil {
//		log.Fatal(err)
//	}
//
// # Architecture
//
//   - pkg/vybium-fib-stark/: public API (this package)
//   - internal/vybium-fib-stark/protocols: the statement, prover, verifier
//   - internal/vybium-fib-stark/core: field, polynomial, Merkle tree
//   - internal/vybium-fib-stark/utils: Fiat-Shamir channel, config
//
// Implementation details under internal/ can change without breaking this
// package's API.
package vybiumfibstark
