package nested

import "fmt"

// ConfigError reports a problem found while validating a Config at
// construction time. It is always fatal to the call that produced it.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("nested: invalid configuration: %s", e.Reason)
}

// DegenerateBoundError reports that a bound refit produced a singular
// covariance even after diagonal regularization. The driver recovers from
// this locally by keeping the previous bound for one iteration; the error
// value itself is kept only for the warning log, not returned to the
// caller. It carries no iteration number of its own — the bound doesn't
// know which iteration it was fit at — the caller's Warning wraps it with
// that.
type DegenerateBoundError struct{}

func (e *DegenerateBoundError) Error() string {
	return "nested: degenerate bound fit, falling back to previous bound"
}

// StuckProposalError reports that a proposal failed to find a point above
// the current likelihood threshold: the Uniform and RWalk proposals return
// it when the caller-supplied rejection budget is used up, and the slice
// proposals also return it, budget or not, when their shrinkage phase runs
// out of draws.
type StuckProposalError struct {
	LStar     float64
	Iteration int
	Budget    int
}

func (e *StuckProposalError) Error() string {
	return fmt.Sprintf("nested: proposal stuck (rejection budget %d) at iteration %d (L*=%g)", e.Budget, e.Iteration, e.LStar)
}

// UserLikelihoodError wraps a panic raised by the caller-supplied
// log-likelihood function; Unwrap returns the panic value as an error.
type UserLikelihoodError struct {
	Theta PriorPoint
	Err   error
}

func (e *UserLikelihoodError) Error() string {
	return fmt.Sprintf("nested: user log-likelihood failed at theta=%v: %v", e.Theta, e.Err)
}

func (e *UserLikelihoodError) Unwrap() error { return e.Err }

// Warning is a non-fatal anomaly recorded during a run: a degenerate bound
// fallback, or a finalization sanity-check mismatch. The driver never
// swallows these silently; they accumulate on the Sampler and are surfaced
// once by Finalize.
type Warning struct {
	Iteration int
	Message   string
}

func (w Warning) String() string {
	return fmt.Sprintf("iteration %d: %s", w.Iteration, w.Message)
}
