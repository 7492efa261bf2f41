package nested

import "math/rand"

// ProposalKind selects which concrete Proposal implementation a Sampler
// uses.
type ProposalKind int

const (
	ProposalUniform ProposalKind = iota
	ProposalRWalk
	ProposalRSlice
	ProposalSlice
)

// proposalContext is everything a Proposal needs to draw a new live point
// other than the rng it is handed explicitly: the current bound, the
// model, the likelihood threshold, and the rest of the live set to walk
// from. Proposals must not retain any of these slices past one call.
type proposalContext struct {
	bound    Bound
	model    Model
	lstar    float64
	live     []UnitPoint
	fromIdx  int // index in live[] to exclude (the point being replaced)
	budget   int // 0 means unlimited
	iterNo   int
}

// proposalResult is what a successful Propose call returns.
type proposalResult struct {
	u     UnitPoint
	theta PriorPoint
	logL  float64
	ncall int
}

// Proposal draws a new point with log-likelihood at least L*, given the
// current bound and a starting context. All proposals must be
// deterministic given the rng's state and must not retain references to
// the driver's live points beyond one call.
type Proposal interface {
	Propose(rng *rand.Rand, ctx proposalContext) (proposalResult, error)
}

// UniformProposal repeatedly draws from the bound and rejects points
// outside the unit cube or below the threshold.
type UniformProposal struct{}

// Propose implements Proposal for UniformProposal.
func (UniformProposal) Propose(rng *rand.Rand, ctx proposalContext) (proposalResult, error) {
	calls := 0
	for {
		u := ctx.bound.Sample(rng)
		if !inUnitCube(u) {
			continue
		}
		theta := ctx.model.toTheta(u)
		logL, err := ctx.model.safeLogLike(theta)
		calls++
		if err != nil {
			return proposalResult{}, err
		}
		if logL >= ctx.lstar {
			return proposalResult{u: u, theta: theta, logL: logL, ncall: calls}, nil
		}
		if ctx.budget > 0 && calls >= ctx.budget {
			return proposalResult{}, &StuckProposalError{LStar: ctx.lstar, Iteration: ctx.iterNo, Budget: ctx.budget}
		}
	}
}
