// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"strings"
)

// ShowFlags controls which features a View renders.
type ShowFlags uint32

// Show flags.
const (
	// Regular materials.
	// Views used for annotation clear this flag.
	ShowMaterials ShowFlags = 1 << iota
	ShowLighting
	ShowShadows

	// Flags of a regular color pass.
	ShowDefault = ShowMaterials | ShowLighting | ShowShadows
)

// Has reports whether all flags in x are set in f.
func (f ShowFlags) Has(x ShowFlags) bool { return f&x == x }

// String implements fmt.Stringer.
func (f ShowFlags) String() string {
	var s []string
	for _, x := range [...]struct {
		f ShowFlags
		s string
	}{
		{ShowMaterials, "Materials"},
		{ShowLighting, "Lighting"},
		{ShowShadows, "Shadows"},
	} {
		if f.Has(x.f) {
			s = append(s, x.s)
		}
	}
	if len(s) == 0 {
		return "None"
	}
	return strings.Join(s, "|")
}

// View describes one pass over the scene.
type View struct {
	Name  string
	Flags ShowFlags
	// Level of detail used for every primitive.
	// Values out of range are clamped.
	LOD int
}

// ViewRelevance describes how a primitive participates
// in a given View.
// The zero value means not drawn at all.
type ViewRelevance struct {
	Draw    bool
	Shadow  bool
	Static  bool
	Dynamic bool
}
