package nested

import "gonum.org/v1/gonum/floats"

// DlogzConverged reports whether the fractional remaining evidence has
// fallen below tau. The default threshold is 0.5.
func (s *Sampler) DlogzConverged(tau float64) bool {
	if len(s.liveLogL) == 0 {
		return true
	}
	maxLogL := floats.Max(s.liveLogL)
	n := float64(s.cfg.NActive)
	logZRemain := maxLogL - float64(s.iter-1)/n
	delta := logAddExp(s.logZ, logZRemain) - s.logZ
	return delta < tau
}

// DeclineConverged reports whether the number of consecutive declining
// weights exceeds factor times the iteration count. The default factor of
// 1 is intentionally lax; callers that want a tighter stop should lower it.
func (s *Sampler) DeclineConverged(factor float64) bool {
	return float64(s.ndecl) > factor*float64(s.iter)
}

// DefaultDlogzTau is the default fractional-remaining-evidence threshold.
const DefaultDlogzTau = 0.5

// DefaultDeclineFactor is the default decline-convergence factor.
const DefaultDeclineFactor = 1.0
