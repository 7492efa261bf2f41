package nested

import (
	"math/rand"
	"testing"
)

// TestProposalsRespectLikelihoodConstraint exercises each proposal kind
// directly against a bound fit to a Gaussian live set, checking every
// accepted point clears the threshold and lies in the unit cube.
func TestProposalsRespectLikelihoodConstraint(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	model := gaussianTestModel(2)
	live := randomGaussianCluster(rng, 60, 2, []float64{0.5, 0.5})

	cases := []struct {
		name string
		kind BoundKind
		prop Proposal
	}{
		{"uniform/ellipsoid", BoundEllipsoid, UniformProposal{}},
		{"rwalk/ellipsoid", BoundEllipsoid, NewRWalkProposal(25, 0.1)},
		{"rslice/ellipsoid", BoundEllipsoid, NewRSliceProposal(5)},
		{"slice/ellipsoid", BoundEllipsoid, NewSliceProposal(5)},
		{"rwalk/multiellipsoid", BoundMultiEllipsoid, NewRWalkProposal(25, 0.1)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bound := newBound(tc.kind, 2, len(live))
			if err := bound.Fit(live, 1e-4, rng); err != nil {
				t.Fatalf("bound fit failed: %v", err)
			}
			bound.Enlarge(1.25)

			lstar := -10.0
			ctx := proposalContext{
				bound:   bound,
				model:   model,
				lstar:   lstar,
				live:    live,
				fromIdx: 0,
				iterNo:  1,
			}
			result, err := tc.prop.Propose(rng, ctx)
			if err != nil {
				t.Fatalf("propose failed: %v", err)
			}
			if result.logL < lstar {
				t.Errorf("proposed point violates the threshold: logL=%v < lstar=%v", result.logL, lstar)
			}
			if !inUnitCube(result.u) {
				t.Errorf("proposed point escaped the unit cube: %v", result.u)
			}
		})
	}
}

func TestUniformProposalHonorsRejectionBudget(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	model := gaussianTestModel(2)
	bound := NewUnitCube(2)
	ctx := proposalContext{
		bound:   bound,
		model:   model,
		lstar:   1e9, // unreachable threshold
		live:    []UnitPoint{{0.5, 0.5}},
		fromIdx: 0,
		budget:  20,
		iterNo:  1,
	}
	_, err := UniformProposal{}.Propose(rng, ctx)
	if err == nil {
		t.Fatal("expected StuckProposalError for an unreachable threshold")
	}
	if _, ok := err.(*StuckProposalError); !ok {
		t.Errorf("expected *StuckProposalError, got %T", err)
	}
}
