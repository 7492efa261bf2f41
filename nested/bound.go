package nested

import "math/rand"

// Bound is the uniform interface the driver calls against, independent of
// which concrete geometric shape backs it: UnitCube, Ellipsoid, or
// MultiEllipsoid.
type Bound interface {
	Fit(points []UnitPoint, pointvol float64, rng *rand.Rand) error
	Enlarge(f float64)
	Sample(rng *rand.Rand) UnitPoint
	Contains(u UnitPoint) bool
	Volume() float64
}

// BoundKind selects which concrete Bound implementation a Sampler uses. The
// zero value is BoundEllipsoid.
type BoundKind int

const (
	BoundEllipsoid BoundKind = iota
	BoundMultiEllipsoid
	BoundUnitCube
)

// UnitCube is the trivial bound: fitting is a no-op and sampling draws
// uniformly from (0,1)^d.
type UnitCube struct {
	dim int
}

// NewUnitCube builds a UnitCube bound of the given dimension.
func NewUnitCube(dim int) *UnitCube { return &UnitCube{dim: dim} }

// Fit is a no-op for UnitCube: the bound never changes shape.
func (c *UnitCube) Fit(points []UnitPoint, pointvol float64, rng *rand.Rand) error { return nil }

// Enlarge is a no-op for UnitCube.
func (c *UnitCube) Enlarge(f float64) {}

// Sample draws each coordinate independently and uniformly from (0,1).
func (c *UnitCube) Sample(rng *rand.Rand) UnitPoint {
	u := make(UnitPoint, c.dim)
	for i := range u {
		u[i] = rng.Float64()
	}
	return u
}

// Contains reports whether u lies in (0,1)^d.
func (c *UnitCube) Contains(u UnitPoint) bool { return inUnitCube(u) }

// Volume is always 1 for the unit cube.
func (c *UnitCube) Volume() float64 { return 1 }

// ellipsoidBound adapts *Ellipsoid to the Bound interface; its Fit ignores
// the rng parameter (fitting an ellipsoid is deterministic given points).
type ellipsoidBound struct{ *Ellipsoid }

func (b ellipsoidBound) Fit(points []UnitPoint, pointvol float64, rng *rand.Rand) error {
	return b.Ellipsoid.Fit(points, pointvol)
}

func (b ellipsoidBound) Contains(u UnitPoint) bool { return b.Ellipsoid.Contains(u) }

// newBound constructs the Bound implementation selected by kind. nactive is
// the live-point count N, used to cap MultiEllipsoid's recursive split
// depth at ceil(log2 N).
func newBound(kind BoundKind, dim, nactive int) Bound {
	switch kind {
	case BoundEllipsoid:
		return ellipsoidBound{NewEllipsoid(dim)}
	case BoundMultiEllipsoid:
		return multiEllipsoidBound{NewMultiEllipsoid(dim, maxSplitDepth(nactive))}
	default:
		return NewUnitCube(dim)
	}
}

// multiEllipsoidBound adapts *MultiEllipsoid to the Bound interface.
type multiEllipsoidBound struct{ *MultiEllipsoid }

func (b multiEllipsoidBound) Contains(u UnitPoint) bool { return b.MultiEllipsoid.Contains(u) }

func maxSplitDepth(n int) int {
	depth := 0
	for v := 1; v < n; v <<= 1 {
		depth++
	}
	if depth < 1 {
		depth = 1
	}
	return depth
}
