package protocols

import (
	"fmt"

	"github.com/vybium/vybium-fib-stark/internal/vybium-fib-stark/core"
	"github.com/vybium/vybium-fib-stark/internal/vybium-fib-stark/utils"
)

// Prove builds a Fibonacci-square STARK proof that the prover knows a
// secret a1 such that a[0]=1, a[1]=a1, a[n+2]=a[n+1]^2+a[n]^2 yields
// a[TraceLength-1] == ExpectedFinalValue, without revealing a1 itself.
//
// It follows the four-part structure of the statement this proof system
// implements: (1) trace synthesis and its low-degree extension, (2) the
// constraint and composition polynomials, (3) FRI folding to attest the
// composition polynomial is low degree, (4) a single-query decommit phase
// tying every stage together via Fiat-Shamir challenges.
func Prove(cfg *utils.Config, secret uint64) (*Proof, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("protocols: invalid config: %w", err)
	}

	trace, err := synthesizeTrace(secret)
	if err != nil {
		return nil, err
	}

	domains := DeriveDomains()
	channel := utils.NewChannel(cfg.HashFunction)
	initState := channel.State()

	// Part 1: trace polynomial and its low-degree extension.
	points := domains.G[:TraceLength]
	fPoly := core.LagrangeInterpolate(points, trace)

	fEval := make([]core.Fp, EvalDomainSize)
	for i, x := range domains.FDomain {
		fEval[i] = fPoly.Eval(x)
	}

	fEvalTree, err := core.NewMerkleTree(fpToResidues(fEval), core.HashFunc(cfg.HashFunction))
	if err != nil {
		return nil, fmt.Errorf("protocols: building f_eval merkle tree: %w", err)
	}
	channel.CommitDigest(fEvalTree.Root())

	// Part 2: constraint polynomials and their linear combination.
	c0, c1, c2, err := buildConstraintPolynomials(fPoly, trace, domains)
	if err != nil {
		return nil, err
	}

	alpha0 := channel.SqueezeFieldElement()
	alpha1 := channel.SqueezeFieldElement()
	alpha2 := channel.SqueezeFieldElement()

	cpPoly := c0.ScalarMul(alpha0).Add(c1.ScalarMul(alpha1)).Add(c2.ScalarMul(alpha2))
	if deg, ok := cpPoly.Degree(); !ok || deg != TraceLength {
		return nil, fmt.Errorf("protocols: composition polynomial has unexpected degree")
	}

	cpEval := make([]core.Fp, EvalDomainSize)
	for i, x := range domains.FDomain {
		cpEval[i] = cpPoly.Eval(x)
	}
	cpEvalTree, err := core.NewMerkleTree(fpToResidues(cpEval), core.HashFunc(cfg.HashFunction))
	if err != nil {
		return nil, fmt.Errorf("protocols: building cp_eval merkle tree: %w", err)
	}
	channel.CommitDigest(cpEvalTree.Root())

	// Part 3: FRI folding.
	cpPolys := []core.Polynomial{cpPoly}
	cpEvals := [][]core.Fp{cpEval}
	cpTrees := []*core.MerkleTree{cpEvalTree}

	var betas [NumFRILayers]uint32
	var friRoots [NumFRILayers]core.Digest
	domain := append([]core.Fp(nil), domains.FDomain...)

	for i := 0; i < NumFRILayers; i++ {
		beta := channel.SqueezeFieldElement()
		betas[i] = uint32(beta.Residue())

		foldPoly := cpPolys[len(cpPolys)-1].FoldFRI(beta)

		nextLen := len(domain) / 2
		nextDomain := make([]core.Fp, nextLen)
		for j := 0; j < nextLen; j++ {
			nextDomain[j] = domain[j].Mul(domain[j])
		}
		domain = nextDomain

		nextEval := make([]core.Fp, nextLen)
		for j, x := range domain {
			nextEval[j] = foldPoly.Eval(x)
		}

		nextTree, err := core.NewMerkleTree(fpToResidues(nextEval), core.HashFunc(cfg.HashFunction))
		if err != nil {
			return nil, fmt.Errorf("protocols: building fri layer %d merkle tree: %w", i, err)
		}

		cpPolys = append(cpPolys, foldPoly)
		cpEvals = append(cpEvals, nextEval)
		cpTrees = append(cpTrees, nextTree)

		friRoots[i] = nextTree.Root()
		channel.CommitDigest(nextTree.Root())
	}

	finalPoly := cpPolys[NumFRILayers]
	if deg, ok := finalPoly.Degree(); ok && deg != 0 {
		return nil, fmt.Errorf("protocols: final FRI polynomial is not constant (degree %v)", deg)
	}
	freeTerm := finalPoly.Coefficient(0)
	channel.CommitUint32(uint32(freeTerm.Residue()))

	// Part 4: decommit phase.
	testPoint := channel.SqueezeUint32() % uint32(EvalDomainSize-16)
	x := int(testPoint)

	fxPath, err := fEvalTree.Path(x)
	if err != nil {
		return nil, err
	}
	fgxPath, err := fEvalTree.Path(x + 8)
	if err != nil {
		return nil, err
	}
	fggxPath, err := fEvalTree.Path(x + 16)
	if err != nil {
		return nil, err
	}
	cp0xPath, err := cpTrees[0].Path(x)
	if err != nil {
		return nil, err
	}

	var friLayerOpenings [NumFRILayers]FRILayerOpening
	for i := 0; i < NumFRILayers; i++ {
		length := len(cpEvals[i])
		xi := x % length
		nxi := (xi + length/2) % length

		cpxPath, err := cpTrees[i].Path(xi)
		if err != nil {
			return nil, fmt.Errorf("protocols: fri layer %d path at x: %w", i, err)
		}
		cpnxPath, err := cpTrees[i].Path(nxi)
		if err != nil {
			return nil, fmt.Errorf("protocols: fri layer %d path at -x: %w", i, err)
		}

		friLayerOpenings[i] = FRILayerOpening{
			CPX:  Opening{Value: uint32(cpEvals[i][xi].Residue()), Path: cpxPath},
			CPNX: Opening{Value: uint32(cpEvals[i][nxi].Residue()), Path: cpnxPath},
		}
	}

	return &Proof{
		InitState:          initState,
		FinalState:         channel.State(),
		FEvalMerkleRoot:    fEvalTree.Root(),
		Alpha0:             uint32(alpha0.Residue()),
		Alpha1:             uint32(alpha1.Residue()),
		Alpha2:             uint32(alpha2.Residue()),
		CPEvalMerkleRoot:   cpEvalTree.Root(),
		Betas:              betas,
		FRIEvalMerkleRoots: friRoots,
		FRIFreeTerm:        uint32(freeTerm.Residue()),
		TestPoint:          testPoint,
		FX:                 Opening{Value: uint32(fEval[x].Residue()), Path: fxPath},
		FGX:                Opening{Value: uint32(fEval[x+8].Residue()), Path: fgxPath},
		FGGX:               Opening{Value: uint32(fEval[x+16].Residue()), Path: fggxPath},
		CP0X:               Opening{Value: uint32(cpEval[x].Residue()), Path: cp0xPath},
		FRILayers:          friLayerOpenings,
	}, nil
}

// synthesizeTrace computes a[0..TraceLength-1] from the recurrence
// a[0]=1, a[1]=secret, a[n+2]=a[n+1]^2+a[n]^2, and checks the result
// against the statement's fixed public output.
func synthesizeTrace(secret uint64) ([]core.Fp, error) {
	trace := make([]core.Fp, TraceLength)
	trace[0] = core.One()
	trace[1] = core.NewFp(secret)
	for i := 2; i < TraceLength; i++ {
		t0 := trace[i-2].Mul(trace[i-2])
		t1 := trace[i-1].Mul(trace[i-1])
		trace[i] = t0.Add(t1)
	}
	if trace[TraceLength-1].Residue() != ExpectedFinalValue {
		return nil, &WitnessError{Got: trace[TraceLength-1].Residue()}
	}
	return trace, nil
}

// buildConstraintPolynomials builds the three constraint quotients:
//
//	c0 = (f(x) - a[0])   / (x - g[0])         -- boundary: a[0] is fixed
//	c1 = (f(x) - a[1022]) / (x - g[1022])     -- boundary: a[1022] is fixed
//	c2 = (f(g^2 x) - f(gx)^2 - f(x)^2) / Z(x) -- transition, for all but
//	                                             the last two trace rows
//
// where Z(x) = (x^1024 - 1) / ((x-g[1021])(x-g[1022])(x-g[1023])), built
// as one division by the product of the three linear factors rather than
// three separate divisions.
func buildConstraintPolynomials(fPoly core.Polynomial, trace []core.Fp, domains *StatementDomains) (c0, c1, c2 core.Polynomial, err error) {
	g := domains.G

	numerator0 := fPoly.Sub(core.Monomial(trace[0], 0))
	denom0 := core.NewPolynomial([]core.Fp{g[0].Neg(), core.One()})
	c0, r0 := numerator0.Div(denom0)
	if !r0.IsZero() {
		return core.Polynomial{}, core.Polynomial{}, core.Polynomial{}, fmt.Errorf("protocols: constraint 0 has nonzero remainder")
	}

	numerator1 := fPoly.Sub(core.Monomial(trace[TraceLength-1], 0))
	denom1 := core.NewPolynomial([]core.Fp{g[TraceLength-1].Neg(), core.One()})
	c1, r1 := numerator1.Div(denom1)
	if !r1.IsZero() {
		return core.Polynomial{}, core.Polynomial{}, core.Polynomial{}, fmt.Errorf("protocols: constraint 1 has nonzero remainder")
	}

	fgg := fPoly.SubstituteScale(g[2])
	fg := fPoly.SubstituteScale(g[1])
	fgSquared := fg.Mul(fg)
	fSquared := fPoly.Mul(fPoly)
	numerator2 := fgg.Sub(fgSquared).Sub(fSquared)

	xPow1024Minus1 := core.Monomial(core.One(), 1024).Sub(core.Monomial(core.One(), 0))
	tp0 := core.NewPolynomial([]core.Fp{g[1021].Neg(), core.One()})
	tp1 := core.NewPolynomial([]core.Fp{g[1022].Neg(), core.One()})
	tp2 := core.NewPolynomial([]core.Fp{g[1023].Neg(), core.One()})
	excludedRoots := tp2.Mul(tp0).Mul(tp1)

	zPoly, zRem := xPow1024Minus1.Div(excludedRoots)
	if !zRem.IsZero() {
		return core.Polynomial{}, core.Polynomial{}, core.Polynomial{}, fmt.Errorf("protocols: Z(x) division has nonzero remainder")
	}

	c2, r2 := numerator2.Div(zPoly)
	if !r2.IsZero() {
		return core.Polynomial{}, core.Polynomial{}, core.Polynomial{}, fmt.Errorf("protocols: constraint 2 has nonzero remainder")
	}

	return c0, c1, c2, nil
}

func fpToResidues(vals []core.Fp) []uint32 {
	out := make([]uint32, len(vals))
	for i, v := range vals {
		out[i] = uint32(v.Residue())
	}
	return out
}
