package common

import "github.com/go-gl/mathgl/mgl32"

// Bounds is an axis-aligned bounding box stored as center and half-size.
type Bounds struct {
	Center  mgl32.Vec3
	Extents mgl32.Vec3
}

// NewBoundsMinMax builds a Bounds from its minimum and maximum corners.
func NewBoundsMinMax(minCorner, maxCorner mgl32.Vec3) Bounds {
	return Bounds{
		Center:  minCorner.Add(maxCorner).Mul(0.5),
		Extents: maxCorner.Sub(minCorner).Mul(0.5),
	}
}

// Min returns the minimum corner.
func (b Bounds) Min() mgl32.Vec3 {
	return b.Center.Sub(b.Extents)
}

// Max returns the maximum corner.
func (b Bounds) Max() mgl32.Vec3 {
	return b.Center.Add(b.Extents)
}

// Encapsulate returns the smallest Bounds containing both b and other.
func (b Bounds) Encapsulate(other Bounds) Bounds {
	bMin, bMax := b.Min(), b.Max()
	oMin, oMax := other.Min(), other.Max()
	return NewBoundsMinMax(
		mgl32.Vec3{min(bMin[0], oMin[0]), min(bMin[1], oMin[1]), min(bMin[2], oMin[2])},
		mgl32.Vec3{max(bMax[0], oMax[0]), max(bMax[1], oMax[1]), max(bMax[2], oMax[2])},
	)
}

// IntersectsSphere reports whether the box overlaps a sphere.
func (b Bounds) IntersectsSphere(center mgl32.Vec3, radius float32) bool {
	bMin, bMax := b.Min(), b.Max()
	var distSq float32
	for i := 0; i < 3; i++ {
		c := center[i]
		if c < bMin[i] {
			d := bMin[i] - c
			distSq += d * d
		} else if c > bMax[i] {
			d := c - bMax[i]
			distSq += d * d
		}
	}
	return distSq <= radius*radius
}
