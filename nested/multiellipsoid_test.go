package nested

import (
	"math/rand"
	"testing"
)

func TestMultiEllipsoidContainsOwnSamples(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	points := append(
		randomGaussianCluster(rng, 150, 2, []float64{0.2, 0.2}),
		randomGaussianCluster(rng, 150, 2, []float64{0.8, 0.8})...,
	)
	m := NewMultiEllipsoid(2, maxSplitDepth(len(points)))
	if err := m.Fit(points, 1e-4, rng); err != nil {
		t.Fatalf("fit failed: %v", err)
	}
	m.Enlarge(1.25)
	for i := 0; i < 300; i++ {
		x := m.Sample(rng)
		if !m.Contains(x) {
			t.Fatalf("sampled point %v not contained in any sub-ellipsoid", x)
		}
	}
}

// TestMultiEllipsoidSplitsBimodalCluster is boundary case B3: a two-mode
// live set, well separated relative to each mode's spread, should split
// into at least two sub-ellipsoids.
func TestMultiEllipsoidSplitsBimodalCluster(t *testing.T) {
	rng := rand.New(rand.NewSource(23))
	points := append(
		randomGaussianCluster(rng, 200, 2, []float64{-2, -2}),
		randomGaussianCluster(rng, 200, 2, []float64{2, 2})...,
	)
	m := NewMultiEllipsoid(2, maxSplitDepth(len(points)))
	if err := m.Fit(points, 1e-6, rng); err != nil {
		t.Fatalf("fit failed: %v", err)
	}
	if m.NumEllipsoids() < 2 {
		t.Errorf("expected at least 2 sub-ellipsoids for a well separated bimodal set, got %d", m.NumEllipsoids())
	}
}

// TestMultiEllipsoidSingleClusterStaysCompact checks that a single tight
// Gaussian cluster does not fragment into many sub-ellipsoids when its
// volume is in line with n*pointvol (pointvol = 1/n, as for the sampler's
// initial fit). With a much smaller pointvol, fitRecursive keeps splitting
// as long as the children's total volume stays below the parent's.
func TestMultiEllipsoidSingleClusterStaysCompact(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	points := randomGaussianCluster(rng, 200, 2, []float64{0, 0})
	m := NewMultiEllipsoid(2, maxSplitDepth(len(points)))
	if err := m.Fit(points, 1.0/float64(len(points)), rng); err != nil {
		t.Fatalf("fit failed: %v", err)
	}
	if m.NumEllipsoids() > 4 {
		t.Errorf("expected a single tight Gaussian cluster to stay compact, got %d sub-ellipsoids", m.NumEllipsoids())
	}
}

func TestMaxSplitDepthCeilLog2(t *testing.T) {
	cases := map[int]int{1: 1, 2: 1, 3: 2, 4: 2, 5: 3, 500: 9}
	for n, want := range cases {
		if got := maxSplitDepth(n); got != want {
			t.Errorf("maxSplitDepth(%d) = %d, want %d", n, got, want)
		}
	}
}
