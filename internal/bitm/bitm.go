// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package bitm defines a bitmap type used to allocate
// small integer identifiers (primitive IDs, render handles).
package bitm

import (
	"math/bits"
)

// nbit is the number of bits in each word of a Bitm.
const nbit = 32

// Bitm is a growable bitmap.
// The zero value is an empty bitmap.
type Bitm struct {
	m   []uint32
	rem int
}

// Len returns the number of bits in the map.
func (m *Bitm) Len() int { return len(m.m) * nbit }

// Rem returns the number of unset bits in the map.
func (m *Bitm) Rem() int { return m.rem }

// Grow appends nplus words of unset bits to the map.
// It returns the value of m.Len prior to the call.
func (m *Bitm) Grow(nplus int) (index int) {
	index = m.Len()
	if nplus > 0 {
		m.rem += nplus * nbit
		m.m = append(m.m, make([]uint32, nplus)...)
	}
	return
}

// Set sets a given bit.
func (m *Bitm) Set(index int) {
	i, b := index/nbit, uint32(1)<<(index%nbit)
	if m.m[i]&b == 0 {
		m.m[i] |= b
		m.rem--
	}
}

// Unset unsets a given bit.
func (m *Bitm) Unset(index int) {
	i, b := index/nbit, uint32(1)<<(index%nbit)
	if m.m[i]&b != 0 {
		m.m[i] &^= b
		m.rem++
	}
}

// IsSet checks whether a given bit is set.
// Out of range indices are never set.
func (m *Bitm) IsSet(index int) bool {
	if index < 0 || index >= m.Len() {
		return false
	}
	return m.m[index/nbit]&(1<<(index%nbit)) != 0
}

// Search locates the lowest unset bit.
// It fails only when m.Rem() == 0.
func (m *Bitm) Search() (index int, ok bool) {
	if m.rem == 0 {
		return
	}
	for i, x := range m.m {
		if x == ^uint32(0) {
			continue
		}
		return i*nbit + bits.TrailingZeros32(^x), true
	}
	return
}

// Alloc sets and returns the lowest unset bit,
// growing the map if necessary.
func (m *Bitm) Alloc() int {
	if m.rem == 0 {
		m.Grow(1 + len(m.m))
	}
	idx, ok := m.Search()
	if !ok {
		// Should never happen.
		panic("unexpected failure from Bitm.Search")
	}
	m.Set(idx)
	return idx
}
