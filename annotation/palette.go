// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package annotation

import (
	"errors"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrPaletteExhausted is returned by Palette.Assign when
// no unused color could be found.
var ErrPaletteExhausted = errors.New("annotation: palette exhausted")

const (
	// Hue step in degrees (golden angle), which keeps
	// consecutive colors far apart.
	hueStep = 360 * 0.381966011250105

	// Colors generated per value band.
	bandSize = 256

	maxAttempts = 1 << 20
)

// Palette assigns a unique annotation color to each
// object name.
// Black is never assigned; it is the background of an
// annotation image.
type Palette struct {
	sat, val float64
	next     int
	byName   map[string]Color
	byColor  map[Color]string
}

// NewPalette creates a new palette whose colors have the
// given HSV saturation and value.
// Values outside (0, 1] are replaced by 1.
func NewPalette(sat, val float64) *Palette {
	if sat <= 0 || sat > 1 {
		sat = 1
	}
	if val <= 0 || val > 1 {
		val = 1
	}
	return &Palette{
		sat:     sat,
		val:     val,
		byName:  make(map[string]Color),
		byColor: make(map[Color]string),
	}
}

// Assign returns the color of the named object,
// allocating one on first use.
func (p *Palette) Assign(name string) (Color, error) {
	if c, ok := p.byName[name]; ok {
		return c, nil
	}
	for i := 0; i < maxAttempts; i++ {
		c := p.color(p.next)
		p.next++
		if c == (Color{}) {
			continue
		}
		if _, taken := p.byColor[c]; taken {
			continue
		}
		p.byName[name] = c
		p.byColor[c] = name
		return c, nil
	}
	return Color{}, ErrPaletteExhausted
}

// color generates the n-th candidate color.
// Every bandSize candidates the value is lowered so
// that hues which collide in 8-bit RGB get new shades.
func (p *Palette) color(n int) Color {
	h := math.Mod(float64(n)*hueStep, 360)
	band := n / bandSize
	v := p.val * (1 - math.Mod(float64(band)*0.618033988749895, 0.75))
	r, g, b := colorful.Hsv(h, p.sat, v).RGB255()
	return Color{r, g, b}
}

// Lookup returns the name of the object that was
// assigned c.
func (p *Palette) Lookup(c Color) (string, bool) {
	name, ok := p.byColor[c]
	return name, ok
}

// Len returns the number of assigned colors.
func (p *Palette) Len() int { return len(p.byName) }
