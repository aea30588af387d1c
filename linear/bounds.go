// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package linear

import (
	"github.com/chewxy/math32"
)

// Bounds is an axis-aligned box and a bounding
// sphere sharing a common origin.
// The zero value is the empty bound.
type Bounds struct {
	Origin V3
	Extent V3
	Radius float32
}

// BoundsFromBox creates Bounds enclosing the box
// given by its corners.
func BoundsFromBox(min, max V3) Bounds {
	lo := MinV3(min, max)
	hi := MaxV3(min, max)
	ext := ScaleV3(0.5, SubV3(hi, lo))
	return Bounds{
		Origin: ScaleV3(0.5, AddV3(lo, hi)),
		Extent: ext,
		Radius: LenV3(ext),
	}
}

// IsZero reports whether b is the empty bound.
func (b Bounds) IsZero() bool { return b == Bounds{} }

// Min returns the minimum corner of b's box.
func (b Bounds) Min() V3 { return SubV3(b.Origin, b.Extent) }

// Max returns the maximum corner of b's box.
func (b Bounds) Max() V3 { return AddV3(b.Origin, b.Extent) }

// Transform returns b transformed by m.
// The box remains axis-aligned, so it grows to
// enclose the rotated box.
func (b Bounds) Transform(m *M4) Bounds {
	var ext V3
	for i := range ext {
		for j := 0; j < 3; j++ {
			ext[i] += math32.Abs(m[j][i]) * b.Extent[j]
		}
	}
	return Bounds{
		Origin: m.MulPoint(b.Origin),
		Extent: ext,
		Radius: b.Radius * m.MaxScale(),
	}
}

// Union returns the smallest Bounds enclosing
// both b and c.
// The empty bound is the identity element.
func (b Bounds) Union(c Bounds) Bounds {
	switch {
	case b.IsZero():
		return c
	case c.IsZero():
		return b
	}
	u := BoundsFromBox(MinV3(b.Min(), c.Min()), MaxV3(b.Max(), c.Max()))
	// The sphere must also enclose both spheres.
	d := LenV3(SubV3(b.Origin, u.Origin)) + b.Radius
	e := LenV3(SubV3(c.Origin, u.Origin)) + c.Radius
	u.Radius = math32.Max(u.Radius, math32.Max(d, e))
	return u
}
