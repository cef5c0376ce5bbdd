// Package protocols implements the Fibonacci-square STARK statement: trace
// synthesis, the constraint/composition polynomials, FRI low-degree
// testing, and the prover/verifier pair that produce and check a Proof.
package protocols

import "github.com/vybium/vybium-fib-stark/internal/vybium-fib-stark/core"

const (
	// TraceLength is the number of trace values a[0]..a[TraceLength-1].
	TraceLength = 1023
	// TraceDomainSize is the order of the cyclic group G the trace
	// polynomial is interpolated over; one element larger than
	// TraceLength so the constraint denominators have a distinct extra
	// point (g[1023]) to divide against.
	TraceDomainSize = 1024
	// EvalDomainSize is the size of the low-degree-extension/FRI domain,
	// an 8x blow-up of the trace domain.
	EvalDomainSize = 8192
	// NumFRILayers is the number of FRI folding rounds, enough to reduce
	// a degree-1023 composition polynomial to a constant.
	NumFRILayers = 10
)

// StatementDomains holds the domains the Fibonacci-square statement is
// defined over. Every field is a pure function of the field's fixed
// modulus, so prover and verifier derive identical domains independently.
type StatementDomains struct {
	PrimitiveRoot core.Fp
	GeneratorG    core.Fp   // order TraceDomainSize
	GeneratorH    core.Fp   // order EvalDomainSize
	G             []core.Fp // TraceDomainSize powers of GeneratorG
	H             []core.Fp // EvalDomainSize powers of GeneratorH
	FDomain       []core.Fp // EvalDomainSize elements: PrimitiveRoot * H[n]
}

// DeriveDomains computes the trace and evaluation domains from the field's
// primitive root.
func DeriveDomains() *StatementDomains {
	root := core.Generator()
	generatorG := root.Pow((core.Modulus - 1) / TraceDomainSize)
	generatorH := root.Pow((core.Modulus - 1) / EvalDomainSize)

	g := make([]core.Fp, TraceDomainSize)
	power := core.One()
	for i := range g {
		g[i] = power
		power = power.Mul(generatorG)
	}

	h := make([]core.Fp, EvalDomainSize)
	power = core.One()
	for i := range h {
		h[i] = power
		power = power.Mul(generatorH)
	}

	fDomain := make([]core.Fp, EvalDomainSize)
	for i, hv := range h {
		fDomain[i] = root.Mul(hv)
	}

	return &StatementDomains{
		PrimitiveRoot: root,
		GeneratorG:    generatorG,
		GeneratorH:    generatorH,
		G:             g,
		H:             h,
		FDomain:       fDomain,
	}
}

// FRIDomainElement returns the element at `index` of the layer-`layer` FRI
// domain. Each FRI fold takes the first half of the previous domain and
// squares every element, so the layer-i domain at index n is always
// FDomain[n]^(2^i); this lets the verifier recompute any layer's domain
// value directly, without materializing the shrinking domain arrays the
// prover builds.
func (d *StatementDomains) FRIDomainElement(layer, index int) core.Fp {
	return d.FDomain[index].Pow(uint64(1) << uint(layer))
}
