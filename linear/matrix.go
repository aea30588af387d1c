// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package linear

import (
	"github.com/chewxy/math32"
)

// M4 is a column-major 4x4 matrix of float32.
type M4 [4]V4

// I makes m an identity matrix.
func (m *M4) I() { *m = M4{{1}, {0, 1}, {0, 0, 1}, {0, 0, 0, 1}} }

// Mul sets m to contain l ⋅ r.
func (m *M4) Mul(l, r *M4) {
	*m = M4{}
	for i := range m {
		for j := range m {
			for k := range m {
				m[i][j] += l[k][j] * r[i][k]
			}
		}
	}
}

// Translate sets m to contain a translation by v.
func (m *M4) Translate(v V3) {
	m.I()
	m[3] = V4{v[0], v[1], v[2], 1}
}

// Scale sets m to contain a scale by v.
func (m *M4) Scale(v V3) { *m = M4{{v[0]}, {1: v[1]}, {2: v[2]}, {3: 1}} }

// MulPoint returns m ⋅ [p 1], dropping the w component.
func (m *M4) MulPoint(p V3) (u V3) {
	for i := range u {
		u[i] = m[0][i]*p[0] + m[1][i]*p[1] + m[2][i]*p[2] + m[3][i]
	}
	return
}

// MaxScale returns the length of the longest basis
// vector of the upper 3x3 portion of m.
func (m *M4) MaxScale() (s float32) {
	for i := 0; i < 3; i++ {
		s = math32.Max(s, LenV3(m[i].V3()))
	}
	return
}
