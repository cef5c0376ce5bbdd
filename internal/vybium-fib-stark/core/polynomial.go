package core

import (
	"fmt"
	"strings"
)

// Polynomial is a dense univariate polynomial over Fp, stored as
// coefficients in ascending order of degree: coeffs[i] is the coefficient
// of x^i. The zero polynomial is represented as an empty coefficient slice;
// every other polynomial is trimmed so its highest-index coefficient is
// nonzero.
type Polynomial struct {
	coeffs []Fp
}

// trim drops trailing zero coefficients so the leading coefficient (if any)
// is always nonzero.
func trim(coeffs []Fp) []Fp {
	n := len(coeffs)
	for n > 0 && coeffs[n-1].IsZero() {
		n--
	}
	return coeffs[:n]
}

// NewPolynomial builds a polynomial from coefficients in ascending-degree
// order, trimming trailing zeros.
func NewPolynomial(coeffs []Fp) Polynomial {
	cp := make([]Fp, len(coeffs))
	copy(cp, coeffs)
	return Polynomial{coeffs: trim(cp)}
}

// ZeroPolynomial returns the additive identity, degree "none".
func ZeroPolynomial() Polynomial { return Polynomial{} }

// Monomial returns coeff * x^exp.
func Monomial(coeff Fp, exp int) Polynomial {
	if coeff.IsZero() {
		return ZeroPolynomial()
	}
	coeffs := make([]Fp, exp+1)
	for i := range coeffs {
		coeffs[i] = Zero()
	}
	coeffs[exp] = coeff
	return Polynomial{coeffs: coeffs}
}

// Degree returns the polynomial's degree and true, or (0, false) for the
// zero polynomial, which has no degree.
func (p Polynomial) Degree() (int, bool) {
	if len(p.coeffs) == 0 {
		return 0, false
	}
	return len(p.coeffs) - 1, true
}

// IsZero reports whether p is the zero polynomial.
func (p Polynomial) IsZero() bool { return len(p.coeffs) == 0 }

// Coefficient returns the coefficient of x^i, or Zero if i exceeds the
// degree.
func (p Polynomial) Coefficient(i int) Fp {
	if i < 0 || i >= len(p.coeffs) {
		return Zero()
	}
	return p.coeffs[i]
}

// Coefficients returns a copy of the ascending-degree coefficient slice.
func (p Polynomial) Coefficients() []Fp {
	cp := make([]Fp, len(p.coeffs))
	copy(cp, p.coeffs)
	return cp
}

// Eval evaluates p at x via Horner's method.
func (p Polynomial) Eval(x Fp) Fp {
	result := Zero()
	for i := len(p.coeffs) - 1; i >= 0; i-- {
		result = result.Mul(x).Add(p.coeffs[i])
	}
	return result
}

// Add returns p + q.
func (p Polynomial) Add(q Polynomial) Polynomial {
	n := len(p.coeffs)
	if len(q.coeffs) > n {
		n = len(q.coeffs)
	}
	out := make([]Fp, n)
	for i := 0; i < n; i++ {
		out[i] = p.Coefficient(i).Add(q.Coefficient(i))
	}
	return NewPolynomial(out)
}

// Sub returns p - q.
func (p Polynomial) Sub(q Polynomial) Polynomial {
	n := len(p.coeffs)
	if len(q.coeffs) > n {
		n = len(q.coeffs)
	}
	out := make([]Fp, n)
	for i := 0; i < n; i++ {
		out[i] = p.Coefficient(i).Sub(q.Coefficient(i))
	}
	return NewPolynomial(out)
}

// Neg returns -p.
func (p Polynomial) Neg() Polynomial {
	out := make([]Fp, len(p.coeffs))
	for i, c := range p.coeffs {
		out[i] = c.Neg()
	}
	return Polynomial{coeffs: trim(out)}
}

// ScalarMul returns c * p.
func (p Polynomial) ScalarMul(c Fp) Polynomial {
	if c.IsZero() {
		return ZeroPolynomial()
	}
	out := make([]Fp, len(p.coeffs))
	for i, coeff := range p.coeffs {
		out[i] = coeff.Mul(c)
	}
	return Polynomial{coeffs: out}
}

// Mul returns p * q via schoolbook multiplication.
func (p Polynomial) Mul(q Polynomial) Polynomial {
	if p.IsZero() || q.IsZero() {
		return ZeroPolynomial()
	}
	out := make([]Fp, len(p.coeffs)+len(q.coeffs)-1)
	for i := range out {
		out[i] = Zero()
	}
	for i, a := range p.coeffs {
		if a.IsZero() {
			continue
		}
		for j, b := range q.coeffs {
			out[i+j] = out[i+j].Add(a.Mul(b))
		}
	}
	return NewPolynomial(out)
}

// Div performs polynomial long division, returning (quotient, remainder)
// such that p = quotient*divisor + remainder and remainder has degree less
// than divisor (or is zero). Panics if divisor is the zero polynomial,
// since division by it is a programming error, not a recoverable runtime
// condition.
func (p Polynomial) Div(divisor Polynomial) (Polynomial, Polynomial) {
	if divisor.IsZero() {
		panic("core: division by zero polynomial")
	}
	divDeg, _ := divisor.Degree()
	leadInv := divisor.coeffs[divDeg].Inv()

	remainder := make([]Fp, len(p.coeffs))
	copy(remainder, p.coeffs)
	remainder = trim(remainder)

	var quotientCoeffs []Fp

	for {
		remDeg, ok := Polynomial{coeffs: remainder}.Degree()
		if !ok || remDeg < divDeg {
			break
		}
		shift := remDeg - divDeg
		coeff := remainder[remDeg].Mul(leadInv)

		for len(quotientCoeffs) <= shift {
			quotientCoeffs = append(quotientCoeffs, Zero())
		}
		quotientCoeffs[shift] = coeff

		for i, dc := range divisor.coeffs {
			idx := i + shift
			remainder[idx] = remainder[idx].Sub(dc.Mul(coeff))
		}
		remainder = trim(remainder)
	}

	return NewPolynomial(quotientCoeffs), NewPolynomial(remainder)
}

// SubstituteScale returns the polynomial q(x) = p(c*x), i.e. each
// coefficient a_i is scaled by c^i. Used to form f(g*x) and f(g^2*x) for
// the transition constraint.
func (p Polynomial) SubstituteScale(c Fp) Polynomial {
	out := make([]Fp, len(p.coeffs))
	power := One()
	for i, coeff := range p.coeffs {
		out[i] = coeff.Mul(power)
		power = power.Mul(c)
	}
	return Polynomial{coeffs: trim(out)}
}

// FoldFRI splits p into its even- and odd-indexed coefficients and combines
// them as even(x) + beta*odd(x), halving the degree. This is the core FRI
// folding step: for p(x) = even(x^2) + x*odd(x^2), the folded polynomial
// p_next(y) = even(y) + beta*odd(y) satisfies
// p_next(x^2) = (p(x)+p(-x))/2 + beta*(p(x)-p(-x))/(2x).
func (p Polynomial) FoldFRI(beta Fp) Polynomial {
	if p.IsZero() {
		return ZeroPolynomial()
	}
	half := (len(p.coeffs) + 1) / 2
	out := make([]Fp, half)
	for i := range out {
		evenCoeff := p.Coefficient(2 * i)
		oddCoeff := p.Coefficient(2*i + 1)
		out[i] = evenCoeff.Add(beta.Mul(oddCoeff))
	}
	return NewPolynomial(out)
}

// LagrangeInterpolate returns the unique lowest-degree polynomial passing
// through the given (x, y) points, computed in O(n) basis-polynomial work
// via running left/right partial products rather than recomputing each
// basis polynomial from scratch.
func LagrangeInterpolate(xs, ys []Fp) Polynomial {
	n := len(xs)
	if n == 0 {
		return ZeroPolynomial()
	}
	if n != len(ys) {
		panic("core: LagrangeInterpolate requires equal-length xs and ys")
	}

	// left[i] = product_{j<i} (x - xs[j]), right[i] = product_{j>i} (x - xs[j])
	left := make([]Polynomial, n)
	right := make([]Polynomial, n)

	acc := NewPolynomial([]Fp{One()})
	for i := 0; i < n; i++ {
		left[i] = acc
		acc = acc.Mul(NewPolynomial([]Fp{xs[i].Neg(), One()}))
	}

	acc = NewPolynomial([]Fp{One()})
	for i := n - 1; i >= 0; i-- {
		right[i] = acc
		acc = acc.Mul(NewPolynomial([]Fp{xs[i].Neg(), One()}))
	}

	result := ZeroPolynomial()
	for i := 0; i < n; i++ {
		basis := left[i].Mul(right[i])
		denom := basis.Eval(xs[i])
		coeff := ys[i].Mul(denom.Inv())
		result = result.Add(basis.ScalarMul(coeff))
	}
	return result
}

// Clone returns an independent copy of p.
func (p Polynomial) Clone() Polynomial {
	return NewPolynomial(p.coeffs)
}

// String renders p as a sum of terms in descending degree, for debugging.
func (p Polynomial) String() string {
	if p.IsZero() {
		return "0"
	}
	var sb strings.Builder
	for i := len(p.coeffs) - 1; i >= 0; i-- {
		c := p.coeffs[i]
		if c.IsZero() {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString(" + ")
		}
		switch i {
		case 0:
			fmt.Fprintf(&sb, "%s", c)
		case 1:
			fmt.Fprintf(&sb, "%s*x", c)
		default:
			fmt.Fprintf(&sb, "%s*x^%d", c, i)
		}
	}
	return sb.String()
}
