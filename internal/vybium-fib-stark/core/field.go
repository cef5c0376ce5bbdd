// Package core implements the prime-field arithmetic, dense polynomial
// algebra, and Merkle commitment scheme the STARK protocol is built on.
package core

import "fmt"

// Modulus is the fixed prime the statement is proven over: p = 3*2^30 + 1.
// Its multiplicative group has order p-1 = 3*2^30, which is divisible by a
// large power of two -- the property that makes the trace and evaluation
// domains below FFT-friendly.
const Modulus uint64 = 3221225473

// Fp is an element of the prime field Z/pZ, always held canonical in
// [0, Modulus). Fp is a value type; every operation returns a new Fp rather
// than mutating its receiver.
type Fp struct {
	v uint64
}

// NewFp reduces value modulo Modulus and returns the canonical element.
func NewFp(value uint64) Fp {
	return Fp{v: value % Modulus}
}

// NewFpSigned reduces a signed value modulo Modulus.
func NewFpSigned(value int64) Fp {
	m := int64(Modulus)
	r := value % m
	if r < 0 {
		r += m
	}
	return Fp{v: uint64(r)}
}

// Zero is the additive identity.
func Zero() Fp { return Fp{v: 0} }

// One is the multiplicative identity.
func One() Fp { return Fp{v: 1} }

// Residue returns the canonical representative in [0, Modulus).
func (a Fp) Residue() uint64 { return a.v }

// Add returns a + b mod p.
func (a Fp) Add(b Fp) Fp {
	return Fp{v: (a.v + b.v) % Modulus}
}

// Sub returns a - b mod p.
func (a Fp) Sub(b Fp) Fp {
	if a.v >= b.v {
		return Fp{v: a.v - b.v}
	}
	return Fp{v: Modulus - b.v + a.v}
}

// Neg returns -a mod p.
func (a Fp) Neg() Fp {
	if a.v == 0 {
		return a
	}
	return Fp{v: Modulus - a.v}
}

// Mul returns a * b mod p.
func (a Fp) Mul(b Fp) Fp {
	return Fp{v: (a.v * b.v) % Modulus}
}

// Inv returns the multiplicative inverse of a, computed via Fermat's little
// theorem (a^(p-2) = a^-1 for a != 0). Inverting zero panics: it is a
// programming error for the protocol to attempt it, never a runtime
// condition a correctly parameterized proof can trigger.
func (a Fp) Inv() Fp {
	if a.v == 0 {
		panic("core: cannot invert zero field element")
	}
	return a.Pow(Modulus - 2)
}

// Div returns a / b mod p. Panics if b is zero, for the same reason as Inv.
func (a Fp) Div(b Fp) Fp {
	return a.Mul(b.Inv())
}

// Pow returns a^exp mod p by square-and-multiply. pow(0, 0) = 1 by
// convention, matching the field's Zero/One identities.
func (a Fp) Pow(exp uint64) Fp {
	result := One()
	base := a
	for exp > 0 {
		if exp&1 == 1 {
			result = result.Mul(base)
		}
		base = base.Mul(base)
		exp >>= 1
	}
	return result
}

// Equal reports whether a and b are the same residue.
func (a Fp) Equal(b Fp) bool { return a.v == b.v }

// IsZero reports whether a is the additive identity.
func (a Fp) IsZero() bool { return a.v == 0 }

// String renders the canonical residue.
func (a Fp) String() string { return fmt.Sprintf("%d", a.v) }

// primeFactors returns the distinct prime factors of n via trial division.
// n is small here (p-1 has only the factors 2 and 3) so trial division is
// more than fast enough.
func primeFactors(n uint64) []uint64 {
	var factors []uint64
	remaining := n
	for d := uint64(2); d*d <= remaining; d++ {
		if remaining%d == 0 {
			factors = append(factors, d)
			for remaining%d == 0 {
				remaining /= d
			}
		}
	}
	if remaining > 1 {
		factors = append(factors, remaining)
	}
	return factors
}

// Generator returns the smallest integer g in [2, p) that is a primitive
// root of the multiplicative group: for every prime factor q of p-1,
// g^((p-1)/q) != 1 mod p. For Modulus = 3221225473, p-1 = 3*2^30 and this
// returns 5.
func Generator() Fp {
	order := Modulus - 1
	factors := primeFactors(order)
	exps := make([]uint64, len(factors))
	for i, q := range factors {
		exps[i] = order / q
	}

candidate:
	for x := uint64(2); x < Modulus; x++ {
		candidateElem := NewFp(x)
		for _, exp := range exps {
			if candidateElem.Pow(exp).Residue() == 1 {
				continue candidate
			}
		}
		return candidateElem
	}
	panic("core: no primitive root found, modulus is not prime")
}

// Order returns the smallest positive k such that a^k = 1 mod p. Intended
// for tests and diagnostics: for large-order elements this is O(order) and
// should never run on a production path.
func (a Fp) Order() uint64 {
	if a.IsZero() {
		panic("core: zero has no multiplicative order")
	}
	current := a
	for k := uint64(1); ; k++ {
		if current.Residue() == 1 {
			return k
		}
		current = current.Mul(a)
	}
}
