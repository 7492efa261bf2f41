package nested

import "math"

// Summary holds the scalar outputs of a completed run: the evidence
// estimate, its uncertainty, the posterior information, and bookkeeping
// counts. Packaging a Summary's samples into any particular tabular chain
// structure is left to the caller, per spec.md's scope note.
type Summary struct {
	LogZ       float64
	LogZErr    float64
	H          float64
	Iterations int
	NCalls     int
	Samples    []Sample
	Weights    []float64
	Warnings   []Warning
}

// sqrtEps is the square root of machine epsilon for float64, used for the
// H sanity clamp and warning threshold spec.md's finalization calls for.
var sqrtEps = math.Sqrt(2.220446049250313e-16)

// Finalize sweeps the remaining live points into the evidence sum at an
// equal partition of the residual prior mass, normalizes the final
// weights, and runs the sanity checks spec.md's finalization requires. It
// may be called on a partially completed run; the result is then an
// under-integrated but still valid evidence estimate.
func (s *Sampler) Finalize() Summary {
	n := float64(s.cfg.NActive)
	logVolEnd := -float64(s.iter)/n - math.Log(n)

	for idx := range s.liveU {
		logWt := logVolEnd + s.liveLogL[idx]
		logZNew := logAddExp(s.logZ, logWt)
		hNew := math.Exp(logWt-logZNew)*s.liveLogL[idx] + math.Exp(s.logZ-logZNew)*(s.h+s.logZ) - logZNew
		s.logZ = logZNew
		s.h = hNew
		s.samples = append(s.samples, Sample{
			Theta:  s.liveTheta[idx],
			U:      s.liveU[idx],
			LogL:   s.liveLogL[idx],
			LogVol: logVolEnd,
			LogWt:  logWt,
		})
	}

	if math.IsNaN(s.h) {
		s.warnings = append(s.warnings, Warning{Iteration: s.iter, Message: "posterior information H is NaN"})
	} else if s.h < 0 {
		if s.h > -sqrtEps {
			s.h = 0
		} else {
			s.warnings = append(s.warnings, Warning{Iteration: s.iter, Message: "posterior information H is negative beyond sqrt(machine epsilon)"})
		}
	}

	weights := make([]float64, len(s.samples))
	sum := 0.0
	for i, smp := range s.samples {
		w := math.Exp(smp.LogWt - s.logZ)
		weights[i] = w
		sum += w
	}

	tol := 3 * math.Sqrt(s.h/n)
	if s.h == 0 {
		tol = 1e-3
	}
	if math.Abs(sum-1) > tol {
		s.warnings = append(s.warnings, Warning{Iteration: s.iter, Message: "final weights sum deviates from 1 beyond tolerance"})
	}
	if sum > 0 {
		for i := range weights {
			weights[i] /= sum
		}
	}

	return Summary{
		LogZ:       s.logZ,
		LogZErr:    math.Sqrt(s.h / n),
		H:          s.h,
		Iterations: s.iter,
		NCalls:     s.ncall,
		Samples:    s.samples,
		Weights:    weights,
		Warnings:   s.warnings,
	}
}
