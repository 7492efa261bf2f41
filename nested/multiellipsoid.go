package nested

import (
	"math"
	"math/rand"
)

// multiEllipsoidVolumeFactor is the multiple of n*pointvol a single
// ellipsoid fit must exceed before MultiEllipsoid considers splitting it.
const multiEllipsoidVolumeFactor = 2.0

// MultiEllipsoid is a clustered union of Ellipsoids, built by recursively
// splitting an over-large single-ellipsoid fit with k-means(k=2), the way
// the teacher's expectMaxClust.go assigns sites to clusters by iteratively
// comparing per-cluster likelihoods.
type MultiEllipsoid struct {
	dim    int
	ells   []*Ellipsoid
	vols   []float64
	maxDep int
}

// NewMultiEllipsoid builds an empty multi-ellipsoid bound of the given
// dimension; call Fit before using it. maxDepth caps the recursive k-means
// split depth (a hard ceil(log2 N) cap avoids pathological blow-up on
// ill-conditioned live sets).
func NewMultiEllipsoid(dim, maxDepth int) *MultiEllipsoid {
	return &MultiEllipsoid{dim: dim, maxDep: maxDepth}
}

// Fit rebuilds the clustering from scratch given the current live points.
func (m *MultiEllipsoid) Fit(points []UnitPoint, pointvol float64, rng *rand.Rand) error {
	ells, err := fitRecursive(points, pointvol, m.dim, m.maxDep, rng)
	if err != nil {
		return err
	}
	m.ells = ells
	m.vols = make([]float64, len(ells))
	for i, e := range ells {
		m.vols[i] = e.Volume()
	}
	return nil
}

func fitRecursive(points []UnitPoint, pointvol float64, dim, depth int, rng *rand.Rand) ([]*Ellipsoid, error) {
	base := NewEllipsoid(dim)
	if err := base.Fit(points, pointvol); err != nil {
		return nil, err
	}
	n := len(points)
	target := float64(n) * pointvol
	if depth <= 0 || base.Volume() <= multiEllipsoidVolumeFactor*target || n < 2*(dim+1) {
		return []*Ellipsoid{base}, nil
	}

	groupA, groupB := kmeans2(points, dim, rng)
	if len(groupA) < dim+1 || len(groupB) < dim+1 {
		return []*Ellipsoid{base}, nil
	}

	childrenA, errA := fitRecursive(groupA, pointvol, dim, depth-1, rng)
	childrenB, errB := fitRecursive(groupB, pointvol, dim, depth-1, rng)
	if errA != nil || errB != nil {
		return []*Ellipsoid{base}, nil
	}

	childVol := 0.0
	for _, c := range childrenA {
		childVol += c.Volume()
	}
	for _, c := range childrenB {
		childVol += c.Volume()
	}
	if childVol > base.Volume() {
		return []*Ellipsoid{base}, nil
	}
	return append(childrenA, childrenB...), nil
}

// kmeans2 runs Lloyd's algorithm with k=2 on the given points, returning
// the two resulting partitions.
func kmeans2(points []UnitPoint, dim int, rng *rand.Rand) ([]UnitPoint, []UnitPoint) {
	n := len(points)
	i0 := rng.Intn(n)
	i1 := rng.Intn(n)
	for i1 == i0 && n > 1 {
		i1 = rng.Intn(n)
	}
	centers := [2][]float64{append([]float64{}, points[i0]...), append([]float64{}, points[i1]...)}

	assign := make([]int, n)
	for iter := 0; iter < 50; iter++ {
		changed := false
		for i, p := range points {
			d0 := sqDist(p, centers[0])
			d1 := sqDist(p, centers[1])
			newAssign := 0
			if d1 < d0 {
				newAssign = 1
			}
			if newAssign != assign[i] {
				changed = true
			}
			assign[i] = newAssign
		}
		var sum [2][]float64
		var count [2]int
		sum[0] = make([]float64, dim)
		sum[1] = make([]float64, dim)
		for i, p := range points {
			k := assign[i]
			count[k]++
			for j := 0; j < dim; j++ {
				sum[k][j] += p[j]
			}
		}
		for k := 0; k < 2; k++ {
			if count[k] == 0 {
				continue
			}
			for j := 0; j < dim; j++ {
				centers[k][j] = sum[k][j] / float64(count[k])
			}
		}
		if !changed && iter > 0 {
			break
		}
	}

	var groupA, groupB []UnitPoint
	for i, p := range points {
		if assign[i] == 0 {
			groupA = append(groupA, p)
		} else {
			groupB = append(groupB, p)
		}
	}
	return groupA, groupB
}

func sqDist(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// Enlarge applies the same volume multiplier to every sub-ellipsoid.
func (m *MultiEllipsoid) Enlarge(f float64) {
	for i, e := range m.ells {
		e.Enlarge(f)
		m.vols[i] = e.Volume()
	}
}

// Sample picks an ellipsoid with probability proportional to its volume,
// draws from it, then accepts with probability 1/k where k is the number
// of sub-ellipsoids containing the drawn point, to avoid over-counting
// overlap regions.
func (m *MultiEllipsoid) Sample(rng *rand.Rand) UnitPoint {
	for {
		idx := weightedChoice(m.vols, rng)
		x := m.ells[idx].Sample(rng)
		k := 0
		for _, e := range m.ells {
			if e.Contains(x) {
				k++
			}
		}
		if k <= 1 || rng.Float64() < 1.0/float64(k) {
			return x
		}
	}
}

// Contains reports whether x lies in any sub-ellipsoid.
func (m *MultiEllipsoid) Contains(x []float64) bool {
	for _, e := range m.ells {
		if e.Contains(x) {
			return true
		}
	}
	return false
}

// Volume returns the sum of sub-ellipsoid volumes.
func (m *MultiEllipsoid) Volume() float64 {
	total := 0.0
	for _, v := range m.vols {
		total += v
	}
	return total
}

// NumEllipsoids returns the current number of clusters, mostly useful for
// tests checking multi-modal behavior (spec.md boundary case B3).
func (m *MultiEllipsoid) NumEllipsoids() int { return len(m.ells) }

// CovarianceNear returns the sub-ellipsoid containing u, or the one with the
// nearest center if none contains it; proposals that want to step along the
// bound's local shape read its Covariance.
func (m *MultiEllipsoid) CovarianceNear(u []float64) *Ellipsoid {
	for _, e := range m.ells {
		if e.Contains(u) {
			return e
		}
	}
	best := 0
	bestDist := math.Inf(1)
	for i, e := range m.ells {
		d := sqDist(u, e.Center())
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return m.ells[best]
}

func weightedChoice(weights []float64, rng *rand.Rand) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return rng.Intn(len(weights))
	}
	r := rng.Float64() * total
	cum := 0.0
	for i, w := range weights {
		cum += w
		if r <= cum {
			return i
		}
	}
	return len(weights) - 1
}
