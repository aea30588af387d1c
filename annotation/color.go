// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package annotation

import (
	"fmt"

	"gviegas/annotation/engine"
	"gviegas/annotation/linear"
)

// ParamName is the vector parameter of the annotation
// template that receives the normalized color.
const ParamName = "AnnotationColor"

// Color is an opaque 8-bit RGB annotation color.
type Color struct {
	R, G, B uint8
}

// String implements fmt.Stringer.
func (c Color) String() string { return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B) }

// Normalize converts c to the linear value consumed by
// the annotation shader.
// Each channel is divided by 255 and alpha is 1.
func Normalize(c Color) linear.V4 {
	return linear.V4{
		float32(c.R) / 255,
		float32(c.G) / 255,
		float32(c.B) / 255,
		1,
	}
}

// bindColor pushes the normalized c to mi.
func bindColor(mi *engine.MaterialInstance, c Color) error {
	return mi.SetVector(ParamName, Normalize(c))
}

// NewTemplate creates the shared annotation template.
// Its color parameter defaults to opaque black.
func NewTemplate(name string) (*engine.MaterialTemplate, error) {
	return engine.NewTemplate(name, map[string]linear.V4{
		ParamName: {0, 0, 0, 1},
	})
}
