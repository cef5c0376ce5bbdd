package protocols

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vybium/vybium-fib-stark/internal/vybium-fib-stark/core"
	"github.com/vybium/vybium-fib-stark/internal/vybium-fib-stark/utils"
)

func TestSynthesizeTraceHitsExpectedFinalValue(t *testing.T) {
	trace, err := synthesizeTrace(Secret)
	require.NoError(t, err)
	assert.Equal(t, ExpectedFinalValue, trace[TraceLength-1].Residue())
	assert.Equal(t, uint64(1), trace[0].Residue())
	assert.Equal(t, Secret, trace[1].Residue())
}

func TestSynthesizeTraceRejectsBadWitness(t *testing.T) {
	_, err := synthesizeTrace(42)
	require.Error(t, err)
	var witnessErr *WitnessError
	assert.ErrorAs(t, err, &witnessErr)
}

// TestFEvalSpotChecks reproduces the trace polynomial's low-degree
// extension at the fixed evaluation points this statement's reference
// implementation checks.
func TestFEvalSpotChecks(t *testing.T) {
	trace, err := synthesizeTrace(Secret)
	require.NoError(t, err)

	domains := DeriveDomains()
	fPoly := core.LagrangeInterpolate(domains.G[:TraceLength], trace)

	want := map[int]uint64{
		0:    576067152,
		1:    3100214617,
		2:    2091264768,
		8189: 800520420,
		8190: 1199720174,
		8191: 1076821037,
	}
	for idx, expected := range want {
		got := fPoly.Eval(domains.FDomain[idx]).Residue()
		assert.Equal(t, expected, got, "f_eval[%d]", idx)
	}
}

// TestConstraintSpotChecks reproduces the constraint-quotient polynomials'
// values at fixed sample points from the reference implementation.
func TestConstraintSpotChecks(t *testing.T) {
	trace, err := synthesizeTrace(Secret)
	require.NoError(t, err)

	domains := DeriveDomains()
	fPoly := core.LagrangeInterpolate(domains.G[:TraceLength], trace)

	c0, c1, c2, err := buildConstraintPolynomials(fPoly, trace, domains)
	require.NoError(t, err)

	d0, ok := c0.Degree()
	require.True(t, ok)
	assert.Equal(t, 1021, d0)

	d1, ok := c1.Degree()
	require.True(t, ok)
	assert.Equal(t, 1021, d1)

	d2, ok := c2.Degree()
	require.True(t, ok)
	assert.Equal(t, 1023, d2)

	assert.Equal(t, uint64(2509888982), c0.Eval(core.NewFp(2718)).Residue())
	assert.Equal(t, uint64(232961446), c1.Eval(core.NewFp(5772)).Residue())
	assert.Equal(t, uint64(2090051528), c2.Eval(core.NewFp(31415)).Residue())
}

// TestCompositionEvalSpotChecks reproduces the composition polynomial's
// low-degree extension at fixed evaluation points, using the canonical
// hash-derived alpha challenges (not the hard-coded-constant transcript
// variant the source rejects, see SPEC_FULL.md/DESIGN.md).
func TestCompositionEvalSpotChecks(t *testing.T) {
	cfg := utils.DefaultConfig()

	trace, err := synthesizeTrace(Secret)
	require.NoError(t, err)

	domains := DeriveDomains()
	channel := utils.NewChannel(cfg.HashFunction)

	fPoly := core.LagrangeInterpolate(domains.G[:TraceLength], trace)
	fEval := make([]core.Fp, EvalDomainSize)
	for i, x := range domains.FDomain {
		fEval[i] = fPoly.Eval(x)
	}
	fEvalTree, err := core.NewMerkleTree(fpToResidues(fEval), core.HashFunc(cfg.HashFunction))
	require.NoError(t, err)
	channel.CommitDigest(fEvalTree.Root())

	c0, c1, c2, err := buildConstraintPolynomials(fPoly, trace, domains)
	require.NoError(t, err)

	alpha0 := channel.SqueezeFieldElement()
	alpha1 := channel.SqueezeFieldElement()
	alpha2 := channel.SqueezeFieldElement()

	cpPoly := c0.ScalarMul(alpha0).Add(c1.ScalarMul(alpha1)).Add(c2.ScalarMul(alpha2))

	want := map[int]uint64{
		0:    551740506,
		1:    716458408,
		2:    2091260387,
		8189: 412406999,
		8190: 782538909,
		8191: 811632985,
	}
	for idx, expected := range want {
		got := cpPoly.Eval(domains.FDomain[idx]).Residue()
		assert.Equal(t, expected, got, "cp_eval[%d]", idx)
	}
}

// TestFRIDegreeAndEvaluationSchedule reproduces the ten-round FRI fold
// over the degree-1023 composition polynomial: each fold must halve the
// degree (511, 255, ..., down to the constant 0th-degree free term) and
// each evaluation vector must halve in length (4096 down to 8).
func TestFRIDegreeAndEvaluationSchedule(t *testing.T) {
	cfg := utils.DefaultConfig()

	trace, err := synthesizeTrace(Secret)
	require.NoError(t, err)

	domains := DeriveDomains()
	channel := utils.NewChannel(cfg.HashFunction)

	fPoly := core.LagrangeInterpolate(domains.G[:TraceLength], trace)
	fEval := make([]core.Fp, EvalDomainSize)
	for i, x := range domains.FDomain {
		fEval[i] = fPoly.Eval(x)
	}
	fEvalTree, err := core.NewMerkleTree(fpToResidues(fEval), core.HashFunc(cfg.HashFunction))
	require.NoError(t, err)
	channel.CommitDigest(fEvalTree.Root())

	c0, c1, c2, err := buildConstraintPolynomials(fPoly, trace, domains)
	require.NoError(t, err)

	alpha0 := channel.SqueezeFieldElement()
	alpha1 := channel.SqueezeFieldElement()
	alpha2 := channel.SqueezeFieldElement()
	cpPoly := c0.ScalarMul(alpha0).Add(c1.ScalarMul(alpha1)).Add(c2.ScalarMul(alpha2))

	cpEval := make([]core.Fp, EvalDomainSize)
	for i, x := range domains.FDomain {
		cpEval[i] = cpPoly.Eval(x)
	}
	cpEvalTree, err := core.NewMerkleTree(fpToResidues(cpEval), core.HashFunc(cfg.HashFunction))
	require.NoError(t, err)
	channel.CommitDigest(cpEvalTree.Root())

	wantDegrees := []int{511, 255, 127, 63, 31, 15, 7, 3, 1, 0}
	wantLengths := []int{4096, 2048, 1024, 512, 256, 128, 64, 32, 16, 8}

	domain := append([]core.Fp(nil), domains.FDomain...)
	poly := cpPoly
	for i := 0; i < NumFRILayers; i++ {
		beta := channel.SqueezeFieldElement()
		poly = poly.FoldFRI(beta)

		deg, ok := poly.Degree()
		if wantDegrees[i] == 0 {
			assert.True(t, !ok || deg == 0, "fri degree[%d]", i)
		} else {
			require.True(t, ok)
			assert.Equal(t, wantDegrees[i], deg, "fri degree[%d]", i)
		}

		nextLen := len(domain) / 2
		nextDomain := make([]core.Fp, nextLen)
		for j := 0; j < nextLen; j++ {
			nextDomain[j] = domain[j].Mul(domain[j])
		}
		domain = nextDomain
		assert.Equal(t, wantLengths[i], len(domain), "fri eval length[%d]", i)
	}
}

func TestDomainOrders(t *testing.T) {
	domains := DeriveDomains()
	assert.Equal(t, uint64(5), domains.PrimitiveRoot.Residue())
	assert.Equal(t, uint64(1024), domains.GeneratorG.Order())
	assert.Equal(t, uint64(8192), domains.GeneratorH.Order())
	assert.Len(t, domains.G, TraceDomainSize)
	assert.Len(t, domains.H, EvalDomainSize)
	assert.Len(t, domains.FDomain, EvalDomainSize)
}
