// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package linear implements math for 3D graphics.
package linear

import (
	"github.com/chewxy/math32"
)

// V3 is a 3-component vector of float32.
type V3 [3]float32

// AddV3 returns v + w.
func AddV3(v, w V3) (u V3) {
	for i := range u {
		u[i] = v[i] + w[i]
	}
	return
}

// SubV3 returns v - w.
func SubV3(v, w V3) (u V3) {
	for i := range u {
		u[i] = v[i] - w[i]
	}
	return
}

// ScaleV3 returns s ⋅ v.
func ScaleV3(s float32, v V3) (u V3) {
	for i := range u {
		u[i] = s * v[i]
	}
	return
}

// DotV3 returns v ⋅ w.
func DotV3(v, w V3) (d float32) {
	for i := range v {
		d += v[i] * w[i]
	}
	return
}

// LenV3 returns the length of v.
func LenV3(v V3) float32 { return math32.Sqrt(DotV3(v, v)) }

// MinV3 returns the component-wise minimum of v and w.
func MinV3(v, w V3) (u V3) {
	for i := range u {
		u[i] = math32.Min(v[i], w[i])
	}
	return
}

// MaxV3 returns the component-wise maximum of v and w.
func MaxV3(v, w V3) (u V3) {
	for i := range u {
		u[i] = math32.Max(v[i], w[i])
	}
	return
}

// V4 is a 4-component vector of float32.
type V4 [4]float32

// ScaleV4 returns s ⋅ v.
func ScaleV4(s float32, v V4) (u V4) {
	for i := range u {
		u[i] = s * v[i]
	}
	return
}

// DotV4 returns v ⋅ w.
func DotV4(v, w V4) (d float32) {
	for i := range v {
		d += v[i] * w[i]
	}
	return
}

// V3 returns the first three components of v.
func (v V4) V3() V3 { return V3{v[0], v[1], v[2]} }
