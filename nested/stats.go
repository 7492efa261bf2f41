package nested

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// logAddExp returns log(exp(a) + exp(b)) computed without overflow, the way
// the driver's running-evidence update needs at every step.
func logAddExp(a, b float64) float64 {
	if a == negInf && b == negInf {
		return negInf
	}
	if a > b {
		return a + math.Log1p(math.Exp(b-a))
	}
	return b + math.Log1p(math.Exp(a-b))
}

// negInf is the IEEE negative infinity used for an empty log-sum-exp
// accumulator; the driver itself never starts at -Inf (see logZInit).
var negInf = math.Inf(-1)

// logZInit is the finite sentinel the driver seeds log Z with. Starting at
// -Inf would make the first H update evaluate exp(log Z - log Z')*(H+log Z)
// as an indeterminate 0 * -Inf in floating point; a very negative finite
// value keeps the arithmetic well-defined and has no effect on the result
// once the running evidence grows past it.
const logZInit = -1e300

// meanAndCov computes the columnwise mean and sample covariance of a set of
// d-dimensional points, the same quantity the teacher estimates by hand in
// mvn_priors.go's GIWStartingSampleMean, but using gonum/stat directly.
func meanAndCov(points []UnitPoint, dim int) (mean []float64, cov *mat.SymDense) {
	n := len(points)
	data := mat.NewDense(n, dim, nil)
	for i, p := range points {
		for j := 0; j < dim; j++ {
			data.Set(i, j, p[j])
		}
	}
	mean = make([]float64, dim)
	for j := 0; j < dim; j++ {
		col := make([]float64, n)
		mat.Col(col, j, data)
		mean[j] = stat.Mean(col, nil)
	}
	cov = mat.NewSymDense(dim, nil)
	stat.CovarianceMatrix(cov, data, nil)
	return mean, cov
}

// sampleUnitBall draws a point uniformly from the d-dimensional unit ball
// by normalizing a standard Gaussian direction and scaling by U^(1/d), the
// classic rejection-free construction cited in spec.md's Ellipsoid.sample.
func sampleUnitBall(rng *rand.Rand, dim int) []float64 {
	z := make([]float64, dim)
	norm := 0.0
	for i := range z {
		g := rng.NormFloat64()
		z[i] = g
		norm += g * g
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		norm = 1
	}
	u := rng.Float64()
	radius := math.Pow(u, 1.0/float64(dim))
	scale := radius / norm
	for i := range z {
		z[i] *= scale
	}
	return z
}

// unitBallVolume returns the volume of the d-dimensional unit ball,
// V_d = pi^(d/2) / Gamma(d/2 + 1).
func unitBallVolume(dim int) float64 {
	d := float64(dim)
	return math.Pow(math.Pi, d/2) / math.Gamma(d/2+1)
}

func inUnitCube(u []float64) bool {
	for _, v := range u {
		if v <= 0 || v >= 1 {
			return false
		}
	}
	return true
}

func argmin(xs []float64) int {
	return floats.MinIdx(xs)
}
