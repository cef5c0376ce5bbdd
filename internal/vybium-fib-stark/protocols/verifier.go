package protocols

import (
	"fmt"

	"github.com/vybium/vybium-fib-stark/internal/vybium-fib-stark/core"
	"github.com/vybium/vybium-fib-stark/internal/vybium-fib-stark/utils"
)

// Verify checks a Fibonacci-square STARK proof against the fixed
// statement: the boundary/transition algebraic identity at the query
// point, every Merkle authentication path, and the full chain of FRI
// fold-consistency checks from the composition polynomial down to the
// committed constant term.
func Verify(cfg *utils.Config, proof *Proof) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("protocols: invalid config: %w", err)
	}

	domains := DeriveDomains()
	g := domains.G
	x := domains.FDomain[proof.TestPoint]

	fx := core.NewFp(uint64(proof.FX.Value))
	fgx := core.NewFp(uint64(proof.FGX.Value))
	fggx := core.NewFp(uint64(proof.FGGX.Value))

	alpha0 := core.NewFp(uint64(proof.Alpha0))
	alpha1 := core.NewFp(uint64(proof.Alpha1))
	alpha2 := core.NewFp(uint64(proof.Alpha2))

	// Boundary constraint 0: f(x) agrees with a[0] = 1 at g[0].
	p0 := fx.Sub(core.One()).Div(x.Sub(g[0]))
	// Boundary constraint 1: f(x) agrees with the fixed public output at g[1022].
	p1 := fx.Sub(core.NewFp(ExpectedFinalValue)).Div(x.Sub(g[TraceLength-1]))
	// Transition constraint: the recurrence holds at every interior row.
	zNumerator := x.Pow(TraceDomainSize).Sub(core.One())
	zDenominator := x.Sub(g[1021]).Mul(x.Sub(g[1022])).Mul(x.Sub(g[1023]))
	zX := zNumerator.Div(zDenominator)
	p2 := fggx.Sub(fgx.Mul(fgx)).Sub(fx.Mul(fx)).Div(zX)

	cp0 := alpha0.Mul(p0).Add(alpha1.Mul(p1)).Add(alpha2.Mul(p2))
	if cp0.Residue() != uint64(proof.CP0X.Value) {
		return &CompositionMismatchError{Computed: uint32(cp0.Residue()), Opened: proof.CP0X.Value}
	}

	hashFunc := cfg.HashFunction

	if !core.VerifyPath(hashFunc, proof.FEvalMerkleRoot, proof.FX.Value, int(proof.TestPoint), proof.FX.Path) {
		return &AuthPathMismatchError{Which: "f(x)"}
	}
	if !core.VerifyPath(hashFunc, proof.FEvalMerkleRoot, proof.FGX.Value, int(proof.TestPoint)+8, proof.FGX.Path) {
		return &AuthPathMismatchError{Which: "f(gx)"}
	}
	if !core.VerifyPath(hashFunc, proof.FEvalMerkleRoot, proof.FGGX.Value, int(proof.TestPoint)+16, proof.FGGX.Path) {
		return &AuthPathMismatchError{Which: "f(ggx)"}
	}
	if !core.VerifyPath(hashFunc, proof.CPEvalMerkleRoot, proof.CP0X.Value, int(proof.TestPoint), proof.CP0X.Path) {
		return &AuthPathMismatchError{Which: "cp0(x)"}
	}

	if err := verifyFRIChain(hashFunc, domains, proof); err != nil {
		return err
	}

	return nil
}

// verifyFRIChain checks, for every FRI layer, that the two authenticated
// openings (at the query index and its domain negation) are consistent
// with the layer's committed root, and that folding them under that
// layer's beta challenge produces exactly the next layer's opening -- or,
// for the last layer, the committed free term.
func verifyFRIChain(hashFunc core.HashFunc, domains *StatementDomains, proof *Proof) error {
	length := EvalDomainSize
	for i := 0; i < NumFRILayers; i++ {
		xi := int(proof.TestPoint) % length
		nxi := (xi + length/2) % length

		root := proof.CPEvalMerkleRoot
		if i > 0 {
			root = proof.FRIEvalMerkleRoots[i-1]
		}

		opening := proof.FRILayers[i]
		if !core.VerifyPath(hashFunc, root, opening.CPX.Value, xi, opening.CPX.Path) {
			return &AuthPathMismatchError{Which: fmt.Sprintf("fri layer %d cp(x)", i)}
		}
		if !core.VerifyPath(hashFunc, root, opening.CPNX.Value, nxi, opening.CPNX.Path) {
			return &AuthPathMismatchError{Which: fmt.Sprintf("fri layer %d cp(-x)", i)}
		}

		domainX := domains.FRIDomainElement(i, xi)
		beta := core.NewFp(uint64(proof.Betas[i]))
		cpX := core.NewFp(uint64(opening.CPX.Value))
		cpNX := core.NewFp(uint64(opening.CPNX.Value))

		two := core.NewFp(2)
		even := cpX.Add(cpNX).Div(two)
		odd := cpX.Sub(cpNX).Div(domainX.Mul(two))
		folded := even.Add(beta.Mul(odd))

		length /= 2
		if i+1 < NumFRILayers {
			nextOpening := proof.FRILayers[i+1].CPX
			if folded.Residue() != uint64(nextOpening.Value) {
				return &FRIConsistencyError{Layer: i}
			}
		} else {
			if folded.Residue() != uint64(proof.FRIFreeTerm) {
				return &FRIConsistencyError{Layer: i}
			}
		}
	}
	return nil
}
