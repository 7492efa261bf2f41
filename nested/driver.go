package nested

import (
	"math"
	"math/rand"
)

// Config holds the tunables a Sampler is constructed with. Everything here
// is set programmatically by the caller — package nested has no flag/env
// coupling of its own; see cmd/nestfit for the CLI surface that does.
type Config struct {
	// NActive is the number of live points N, fixed for the run. Required,
	// >= 2*dim is recommended.
	NActive int
	// Bound selects the geometric envelope. Defaults to BoundEllipsoid.
	Bound BoundKind
	// Proposal selects the point-generation strategy. Defaults to
	// ProposalUniform.
	Proposal ProposalKind
	// Enlarge is the bound enlargement factor applied after every refit.
	// Defaults to 1.25.
	Enlarge float64
	// UpdateInterval is the number of iterations between bound refits.
	// Defaults to round(0.6*NActive).
	UpdateInterval int
	// RejectionBudget caps the number of rejected draws the Uniform
	// proposal will attempt before returning StuckProposalError. 0 means
	// unlimited.
	RejectionBudget int
	// RWalkWalks is the number of steps per call for ProposalRWalk.
	// Defaults to 25.
	RWalkWalks int
	// RWalkScale is the initial step scale for ProposalRWalk. Defaults to
	// 0.1.
	RWalkScale float64
	// RSliceSlices is the number of sweeps per call for ProposalRSlice.
	// Defaults to 5.
	RSliceSlices int
	// SliceSlices is the number of sweeps per call for ProposalSlice.
	// Defaults to 5.
	SliceSlices int
}

func (c *Config) setDefaults() {
	if c.Enlarge == 0 {
		c.Enlarge = 1.25
	}
	if c.UpdateInterval == 0 {
		c.UpdateInterval = int(math.Round(0.6 * float64(c.NActive)))
	}
	if c.RWalkWalks == 0 {
		c.RWalkWalks = 25
	}
	if c.RWalkScale == 0 {
		c.RWalkScale = 0.1
	}
	if c.RSliceSlices == 0 {
		c.RSliceSlices = 5
	}
	if c.SliceSlices == 0 {
		c.SliceSlices = 5
	}
}

func (c *Config) validate() error {
	if c.NActive < 2 {
		return &ConfigError{Reason: "nactive must be >= 2"}
	}
	if c.UpdateInterval <= 0 {
		return &ConfigError{Reason: "update_interval must be > 0"}
	}
	if c.Proposal == ProposalSlice && c.Bound == BoundUnitCube {
		return &ConfigError{Reason: "slice proposal requires a non-trivial bound (ellipsoid or multi-ellipsoid)"}
	}
	if c.Proposal == ProposalRSlice && c.Bound == BoundUnitCube {
		return &ConfigError{Reason: "rslice proposal requires a non-trivial bound (ellipsoid or multi-ellipsoid)"}
	}
	return nil
}

// Sampler is the mutable driver state: the live-point matrix (held as
// parallel slices rather than a literal column-major buffer, but with the
// same no-reallocation-per-iteration discipline spec.md calls for), the
// current bound and proposal, and the running evidence/information
// moments.
type Sampler struct {
	cfg   Config
	model Model
	rng   *rand.Rand

	bound    Bound
	proposal Proposal

	liveU     []UnitPoint
	liveTheta []PriorPoint
	liveLogL  []float64

	logZ          float64
	h             float64
	logVol        float64
	lastLogWt     float64
	haveLastLogWt bool
	ndecl         int
	iter          int
	ncall         int

	samples  []Sample
	warnings []Warning
}

// NewSampler validates cfg, applies its defaults, draws the initial N live
// points from the unit cube, and fits the initial bound enlarged by
// cfg.Enlarge.
func NewSampler(model Model, cfg Config, seed int64) (*Sampler, error) {
	cfg.setDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	s := &Sampler{
		cfg:   cfg,
		model: model,
		rng:   rand.New(rand.NewSource(seed)),
		logZ:  logZInit,
	}
	s.proposal = s.newProposal()
	s.bound = newBound(cfg.Bound, model.Dim, cfg.NActive)

	s.liveU = make([]UnitPoint, cfg.NActive)
	s.liveTheta = make([]PriorPoint, cfg.NActive)
	s.liveLogL = make([]float64, cfg.NActive)
	cube := NewUnitCube(model.Dim)
	for i := 0; i < cfg.NActive; i++ {
		u := cube.Sample(s.rng)
		theta := model.toTheta(u)
		logL, err := model.safeLogLike(theta)
		if err != nil {
			return nil, err
		}
		s.liveU[i] = u
		s.liveTheta[i] = theta
		s.liveLogL[i] = logL
		s.ncall++
	}

	pointvol := 1.0 / float64(cfg.NActive)
	if err := s.bound.Fit(s.liveU, pointvol, s.rng); err != nil {
		s.warnings = append(s.warnings, Warning{Iteration: 0, Message: err.Error()})
	} else {
		s.bound.Enlarge(cfg.Enlarge)
	}
	return s, nil
}

func (s *Sampler) newProposal() Proposal {
	switch s.cfg.Proposal {
	case ProposalRWalk:
		return NewRWalkProposal(s.cfg.RWalkWalks, s.cfg.RWalkScale)
	case ProposalRSlice:
		return NewRSliceProposal(s.cfg.RSliceSlices)
	case ProposalSlice:
		return NewSliceProposal(s.cfg.SliceSlices)
	default:
		return UniformProposal{}
	}
}

// Iteration returns the number of steps completed so far.
func (s *Sampler) Iteration() int { return s.iter }

// NCalls returns the total number of log-likelihood evaluations so far.
func (s *Sampler) NCalls() int { return s.ncall }

// LogZ returns the running log evidence estimate.
func (s *Sampler) LogZ() float64 { return s.logZ }

// H returns the running posterior information estimate.
func (s *Sampler) H() float64 { return s.h }

// Warnings returns the non-fatal anomalies recorded so far.
func (s *Sampler) Warnings() []Warning { return s.warnings }

// Step performs one nested-sampling iteration: it finds the worst live
// point, accumulates the evidence and information moments, refits the
// bound on schedule, and replaces the worst point via the proposal. It
// returns the sample emitted for the replaced point.
func (s *Sampler) Step() (Sample, error) {
	i := s.iter + 1
	n := float64(s.cfg.NActive)

	j := argmin(s.liveLogL)
	lstar := s.liveLogL[j]

	if i == 1 {
		s.logVol = math.Log1p(-math.Exp(-1 / n))
	} else {
		s.logVol -= 1 / n
	}
	logWt := s.logVol + lstar

	logZNew := logAddExp(s.logZ, logWt)
	hNew := math.Exp(logWt-logZNew)*lstar + math.Exp(s.logZ-logZNew)*(s.h+s.logZ) - logZNew
	s.logZ = logZNew
	s.h = hNew

	if s.haveLastLogWt && logWt < s.lastLogWt {
		s.ndecl++
	} else {
		s.ndecl = 0
	}
	s.lastLogWt = logWt
	s.haveLastLogWt = true

	if i%s.cfg.UpdateInterval == 0 {
		pointvol := math.Exp(-float64(i-1)/n) / n
		if err := s.bound.Fit(s.liveU, pointvol, s.rng); err != nil {
			s.warnings = append(s.warnings, Warning{Iteration: i, Message: err.Error()})
		} else {
			s.bound.Enlarge(s.cfg.Enlarge)
		}
	}

	outTheta := s.liveTheta[j]
	outU := s.liveU[j]

	result, err := s.propose(lstar, j, i)
	if err != nil {
		return Sample{}, err
	}
	s.liveU[j] = result.u
	s.liveTheta[j] = result.theta
	s.liveLogL[j] = result.logL
	s.ncall += result.ncall

	s.iter = i
	sample := Sample{Theta: outTheta, U: outU, LogL: lstar, LogVol: s.logVol, LogWt: logWt}
	s.samples = append(s.samples, sample)
	return sample, nil
}

func (s *Sampler) propose(lstar float64, fromIdx, iterNo int) (proposalResult, error) {
	ctx := proposalContext{
		bound:   s.bound,
		model:   s.model,
		lstar:   lstar,
		live:    s.liveU,
		fromIdx: fromIdx,
		budget:  s.cfg.RejectionBudget,
		iterNo:  iterNo,
	}
	result, err := s.proposal.Propose(s.rng, ctx)
	if err == nil {
		return result, nil
	}
	if _, stuck := err.(*StuckProposalError); stuck && s.cfg.Proposal == ProposalUniform {
		s.warnings = append(s.warnings, Warning{Iteration: iterNo, Message: err.Error() + "; switching to rwalk"})
		s.proposal = NewRWalkProposal(s.cfg.RWalkWalks, s.cfg.RWalkScale)
		s.cfg.Proposal = ProposalRWalk
		return s.proposal.Propose(s.rng, ctx)
	}
	return proposalResult{}, err
}
