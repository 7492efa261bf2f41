package nested

import (
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// TestEllipsoidContainsOwnSamples is round-trip law R1: a point sampled
// from an enlarged ellipsoid's Sample must satisfy Contains.
func TestEllipsoidContainsOwnSamples(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	points := randomGaussianCluster(rng, 200, 3, []float64{0, 0, 0})
	e := NewEllipsoid(3)
	if err := e.Fit(points, 1.0/200); err != nil {
		t.Fatalf("fit failed: %v", err)
	}
	e.Enlarge(1.25)
	for i := 0; i < 500; i++ {
		x := e.Sample(rng)
		if !e.Contains(x) {
			t.Fatalf("sampled point %v not contained in its own ellipsoid", x)
		}
	}
}

// TestEllipsoidFitVolumeWithinFactorOfTwo is round-trip law R2: fitting an
// ellipsoid to its own uniform samples and enlarging by 1 should recover a
// volume within a factor of 2 of the original, statistically.
func TestEllipsoidFitVolumeWithinFactorOfTwo(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	orig := NewEllipsoid(2)
	orig.center = []float64{0.5, 0.5}
	cov := identitySym(2, 0.05)
	if !orig.setShape(cov) {
		t.Fatal("could not construct seed ellipsoid")
	}
	orig.recomputeVolume()

	n := 2000
	points := make([]UnitPoint, n)
	for i := range points {
		points[i] = orig.Sample(rng)
	}
	refit := NewEllipsoid(2)
	if err := refit.Fit(points, orig.Volume()/float64(n)); err != nil {
		t.Fatalf("refit failed: %v", err)
	}
	ratio := refit.Volume() / orig.Volume()
	if ratio < 0.5 || ratio > 2.0 {
		t.Errorf("refit volume %v not within factor of 2 of original %v (ratio %v)", refit.Volume(), orig.Volume(), ratio)
	}
}

func TestEllipsoidDegenerateCovarianceRegularizes(t *testing.T) {
	points := []UnitPoint{
		{0.5, 0.5, 0.5},
		{0.5, 0.5, 0.5},
		{0.5, 0.5, 0.5},
		{0.5, 0.5, 0.5},
	}
	e := NewEllipsoid(3)
	if err := e.Fit(points, 1e-6); err != nil {
		t.Fatalf("expected regularization to recover from a degenerate covariance, got error: %v", err)
	}
	if e.Volume() <= 0 {
		t.Errorf("expected positive volume after regularization, got %v", e.Volume())
	}
}

func TestEllipsoidEnforcesMinimumVolume(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	points := randomGaussianCluster(rng, 50, 2, []float64{0, 0})
	pointvol := 1.0 // deliberately large target
	e := NewEllipsoid(2)
	if err := e.Fit(points, pointvol); err != nil {
		t.Fatalf("fit failed: %v", err)
	}
	if e.Volume() < float64(len(points))*pointvol-1e-9 {
		t.Errorf("ellipsoid volume %v below required floor %v", e.Volume(), float64(len(points))*pointvol)
	}
}

func randomGaussianCluster(rng *rand.Rand, n, dim int, center []float64) []UnitPoint {
	points := make([]UnitPoint, n)
	for i := range points {
		p := make(UnitPoint, dim)
		for j := 0; j < dim; j++ {
			p[j] = center[j] + 0.1*rng.NormFloat64()
		}
		points[i] = p
	}
	return points
}

func identitySym(dim int, scale float64) *mat.SymDense {
	m := mat.NewSymDense(dim, nil)
	for i := 0; i < dim; i++ {
		m.SetSym(i, i, scale)
	}
	return m
}
