package nested

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// ellipsoidRegularizeEps is added to the diagonal of a covariance estimate
// when its Cholesky factorization fails, the same "degenerate covariance"
// recovery spec.md's Ellipsoid.fit calls for.
const ellipsoidRegularizeEps = 1e-10

// Ellipsoid is a single d-dimensional bounding ellipsoid
// E = { x : (x-c)^T A^-1 (x-c) <= 1 }, with its Cholesky factor, inverse,
// and volume cached at fit time.
type Ellipsoid struct {
	dim    int
	center []float64
	cov    *mat.SymDense // A
	lower  *mat.TriDense // Cholesky factor L, A = L L^T
	inv    *mat.SymDense // A^-1
	vol    float64
}

// NewEllipsoid builds an empty ellipsoid of the given dimension; call Fit
// before using it.
func NewEllipsoid(dim int) *Ellipsoid {
	return &Ellipsoid{dim: dim}
}

// Fit sets the ellipsoid's center to the sample mean of points and its
// shape to the sample covariance, scaled to enclose every point and then
// expanded, if necessary, so its volume is at least n*pointvol. On a
// singular covariance it regularizes the diagonal once before giving up.
func (e *Ellipsoid) Fit(points []UnitPoint, pointvol float64) error {
	n := len(points)
	mean, cov := meanAndCov(points, e.dim)
	if !e.setShape(cov) {
		addDiag(cov, ellipsoidRegularizeEps)
		if !e.setShape(cov) {
			return &DegenerateBoundError{}
		}
	}

	// Scale A so every point satisfies (x-c)^T A^-1 (x-c) <= 1.
	maxQuad := 0.0
	diff := make([]float64, e.dim)
	for _, p := range points {
		for i := range diff {
			diff[i] = p[i] - mean[i]
		}
		q := e.quadForm(diff)
		if q > maxQuad {
			maxQuad = q
		}
	}
	if maxQuad > 0 {
		cov.ScaleSym(maxQuad, cov)
		if !e.setShape(cov) {
			addDiag(cov, ellipsoidRegularizeEps)
			if !e.setShape(cov) {
				return &DegenerateBoundError{}
			}
		}
	}

	e.center = mean
	e.recomputeVolume()

	// Enforce the minimum-volume floor required of every fitted bound.
	target := float64(n) * pointvol
	if e.vol < target && e.vol > 0 {
		factor := math.Pow(target/e.vol, 2.0/float64(e.dim))
		cov.ScaleSym(factor, cov)
		if !e.setShape(cov) {
			return &DegenerateBoundError{}
		}
		e.recomputeVolume()
	}
	return nil
}

// Enlarge multiplies the ellipsoid's shape matrix by f^(2/d), scaling its
// volume by f. This is the enlargement-factor tunable the driver applies
// once after every refit.
func (e *Ellipsoid) Enlarge(f float64) {
	if f == 1 {
		return
	}
	factor := math.Pow(f, 2.0/float64(e.dim))
	cov := mat.NewSymDense(e.dim, nil)
	cov.CopySym(e.cov)
	cov.ScaleSym(factor, cov)
	// A degenerate enlargement should never happen starting from a valid
	// ellipsoid, but keep the bound usable if it somehow does.
	if e.setShape(cov) {
		e.recomputeVolume()
	}
}

// Sample draws a point uniformly from the ellipsoid: z uniform in the unit
// ball, then c + L z where L is the Cholesky factor of A.
func (e *Ellipsoid) Sample(rng *rand.Rand) UnitPoint {
	z := sampleUnitBall(rng, e.dim)
	zv := mat.NewVecDense(e.dim, z)
	var lz mat.VecDense
	lz.MulVec(e.lower, zv)
	out := make(UnitPoint, e.dim)
	for i := range out {
		out[i] = e.center[i] + lz.AtVec(i)
	}
	return out
}

// Contains reports whether x lies within the ellipsoid's quadratic form.
func (e *Ellipsoid) Contains(x []float64) bool {
	diff := make([]float64, e.dim)
	for i := range diff {
		diff[i] = x[i] - e.center[i]
	}
	return e.quadForm(diff) <= 1
}

// Volume returns the ellipsoid's cached volume V = V_d * sqrt(det A).
func (e *Ellipsoid) Volume() float64 { return e.vol }

// Center returns the ellipsoid's center, owned by the caller to read only.
func (e *Ellipsoid) Center() []float64 { return e.center }

// Covariance returns the ellipsoid's shape matrix A, used by proposals that
// want to step along the bound's principal axes.
func (e *Ellipsoid) Covariance() *mat.SymDense { return e.cov }

func (e *Ellipsoid) quadForm(diff []float64) float64 {
	v := mat.NewVecDense(e.dim, diff)
	var y mat.VecDense
	y.MulVec(e.inv, v)
	return mat.Dot(v, &y)
}

// setShape stores cov as the ellipsoid's shape matrix, factorizing it with
// gonum's mat.Cholesky to get both its lower-triangular factor L (for
// Sample) and its inverse (for quadForm/Contains). It reports false,
// leaving the previous shape untouched, if cov is not positive-definite.
func (e *Ellipsoid) setShape(cov *mat.SymDense) bool {
	var chol mat.Cholesky
	if ok := chol.Factorize(cov); !ok {
		return false
	}
	var inv mat.SymDense
	if err := chol.InverseTo(&inv); err != nil {
		return false
	}
	e.cov = mat.NewSymDense(e.dim, nil)
	e.cov.CopySym(cov)
	e.lower = mat.NewTriDense(e.dim, mat.Lower, nil)
	chol.LTo(e.lower)
	e.inv = &inv
	return true
}

func (e *Ellipsoid) recomputeVolume() {
	logDet, _ := mat.LogDet(e.cov)
	e.vol = unitBallVolume(e.dim) * math.Exp(logDet/2)
}

func addDiag(m *mat.SymDense, eps float64) {
	n := m.SymmetricDim()
	for i := 0; i < n; i++ {
		m.SetSym(i, i, m.At(i, i)+eps)
	}
}
