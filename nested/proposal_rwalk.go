package nested

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"
	exprand "golang.org/x/exp/rand"
)

// randSource adapts a *math/rand.Rand to the golang.org/x/exp/rand.Source
// interface that distmv.NewNormal requires, so the rest of the package can
// keep using the standard library's rand.Rand as its rng type.
type randSource struct{ rng *rand.Rand }

func (s randSource) Uint64() uint64    { return s.rng.Uint64() }
func (s randSource) Seed(seed uint64) { s.rng.Seed(int64(seed)) }

// rwalkTargetAccept is the target acceptance ratio the scale adaptation in
// RWalkProposal tunes toward. RSliceProposal keeps a fixed scale.
const rwalkTargetAccept = 0.5

// scaleMin and scaleMax bound the adaptive step scale so a long run of
// rejections or acceptances cannot collapse or blow it up; the distilled
// spec leaves this implicit, but the teacher's own step-length adaptation
// in mcmc.go's adjustBranchLengthStepLength has the same failure mode, and
// this is the natural fix.
const (
	scaleMin = 1e-6
	scaleMax = 10
)

// shapedBound is implemented by bounds that have a local covariance shape
// a walk-based proposal can step along. UnitCube does not implement it;
// proposals fall back to an isotropic step in that case.
type shapedBound interface {
	covarianceAt(u []float64) *mat.SymDense
}

func (b ellipsoidBound) covarianceAt(u []float64) *mat.SymDense { return b.Ellipsoid.Covariance() }

func (b multiEllipsoidBound) covarianceAt(u []float64) *mat.SymDense {
	return b.MultiEllipsoid.CovarianceNear(u).Covariance()
}

func stepDistribution(bound Bound, u []float64, dim int, rng *rand.Rand) *distmv.Normal {
	mean := make([]float64, dim)
	var cov mat.Symmetric
	if sb, ok := bound.(shapedBound); ok {
		cov = sb.covarianceAt(u)
	} else {
		ident := mat.NewSymDense(dim, nil)
		for i := 0; i < dim; i++ {
			ident.SetSym(i, i, 1)
		}
		cov = ident
	}
	normal, ok := distmv.NewNormal(mean, cov, exprand.Source(randSource{rng}))
	if !ok {
		ident := mat.NewSymDense(dim, nil)
		for i := 0; i < dim; i++ {
			ident.SetSym(i, i, 1)
		}
		normal, _ = distmv.NewNormal(mean, ident, exprand.Source(randSource{rng}))
	}
	return normal
}

// RWalkProposal performs a fixed-length constrained random walk starting
// from a randomly chosen other live point, stepping along the bound's
// local shape and adapting Scale toward a 0.5 acceptance ratio.
type RWalkProposal struct {
	Walks int
	Scale float64
}

// NewRWalkProposal builds an RWalkProposal with the given step count and
// initial scale.
func NewRWalkProposal(walks int, scale float64) *RWalkProposal {
	return &RWalkProposal{Walks: walks, Scale: scale}
}

// Propose implements Proposal for RWalkProposal.
func (p *RWalkProposal) Propose(rng *rand.Rand, ctx proposalContext) (proposalResult, error) {
	start := pickOtherLive(ctx.live, ctx.fromIdx, rng)
	dim := len(start)
	cur := append(UnitPoint{}, start...)
	curTheta := ctx.model.toTheta(cur)
	curLogL := ctx.lstar // unknown without evaluation; only used if no step accepts
	haveCur := false

	normal := stepDistribution(ctx.bound, cur, dim, rng)
	accepts := 0
	calls := 0
	var result proposalResult
	for step := 0; step < p.Walks; step++ {
		eta := normal.Rand(nil)
		cand := make(UnitPoint, dim)
		for i := range cand {
			cand[i] = cur[i] + p.Scale*eta[i]
		}
		if !inUnitCube(cand) {
			continue
		}
		theta := ctx.model.toTheta(cand)
		logL, err := ctx.model.safeLogLike(theta)
		calls++
		if err != nil {
			return proposalResult{}, err
		}
		if logL >= ctx.lstar {
			cur = cand
			curTheta = theta
			curLogL = logL
			haveCur = true
			accepts++
			result = proposalResult{u: cur, theta: curTheta, logL: curLogL}
		}
		if ctx.budget > 0 && calls >= ctx.budget && !haveCur {
			return proposalResult{}, &StuckProposalError{LStar: ctx.lstar, Iteration: ctx.iterNo, Budget: ctx.budget}
		}
	}
	p.adapt(accepts, dim)
	if !haveCur {
		// No step improved on the threshold; fall back to a single
		// rejection-sampling draw from the bound so the driver always
		// makes progress.
		uni := UniformProposal{}
		res, err := uni.Propose(rng, ctx)
		if err != nil {
			return proposalResult{}, err
		}
		res.ncall += calls
		return res, nil
	}
	result.ncall = calls
	return result, nil
}

func (p *RWalkProposal) adapt(accepts, dim int) {
	ratio := float64(accepts) / float64(max(1, p.Walks))
	p.Scale *= math.Exp((ratio - rwalkTargetAccept) / float64(dim))
	if p.Scale < scaleMin {
		p.Scale = scaleMin
	}
	if p.Scale > scaleMax {
		p.Scale = scaleMax
	}
}

func pickOtherLive(live []UnitPoint, exclude int, rng *rand.Rand) UnitPoint {
	if len(live) <= 1 {
		return live[0]
	}
	for {
		i := rng.Intn(len(live))
		if i != exclude {
			return live[i]
		}
	}
}

