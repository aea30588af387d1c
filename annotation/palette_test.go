// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package annotation

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPalette(t *testing.T) {
	p := NewPalette(0.9, 1)
	const n = 2000
	seen := make(map[Color]bool, n)
	for i := 0; i < n; i++ {
		name := "Object" + strconv.Itoa(i)
		c, err := p.Assign(name)
		require.NoError(t, err)
		require.NotEqual(t, Color{}, c, "black assigned to %s", name)
		require.False(t, seen[c], "%v assigned twice", c)
		seen[c] = true

		again, err := p.Assign(name)
		require.NoError(t, err)
		require.Equal(t, c, again)

		got, ok := p.Lookup(c)
		require.True(t, ok)
		require.Equal(t, name, got)
	}
	assert.Equal(t, n, p.Len())

	_, ok := p.Lookup(Color{})
	assert.False(t, ok)
}

func TestPaletteDefaults(t *testing.T) {
	for _, x := range [][2]float64{{0, 0}, {-1, 2}, {1.5, 1}} {
		p := NewPalette(x[0], x[1])
		assert.Equal(t, 1.0, p.sat)
		assert.Equal(t, 1.0, p.val)
	}
	p := NewPalette(0.5, 0.25)
	assert.Equal(t, 0.5, p.sat)
	assert.Equal(t, 0.25, p.val)

	// Distinct palettes with equal settings agree.
	a, b := NewPalette(1, 1), NewPalette(1, 1)
	for i := 0; i < 16; i++ {
		ca, _ := a.Assign(strconv.Itoa(i))
		cb, _ := b.Assign(strconv.Itoa(i))
		assert.Equal(t, ca, cb)
	}
}
