// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package annotation

import (
	"github.com/rs/zerolog"

	"gviegas/annotation/engine"
)

// SkinnedProxy draws the geometry of a skinned mesh
// component with the annotation material.
// It is hidden from views that show regular materials.
type SkinnedProxy struct {
	*engine.SkinnedMeshProxy
}

// NewSkinnedProxy creates a proxy that wraps the regular
// proxy of c built from rd.
// Every section of every level of detail is assigned
// mat, which must outlive the returned proxy. If mat is
// not valid, sections keep the mesh's own materials.
func NewSkinnedProxy(c *engine.SkinnedMeshComponent, rd *engine.SkeletalRenderData, mat engine.Material, log zerolog.Logger) *SkinnedProxy {
	p := &SkinnedProxy{engine.NewSkinnedMeshProxy(c, rd)}
	p.CastDynamicShadow = false
	p.VerifyUsedMaterials = false
	if mat == nil || !mat.Valid() {
		log.Warn().Str("parent", c.Name()).Msg("annotation material is invalid in skinned proxy")
		return p
	}
	for i := range p.LODSections {
		es := p.LODSections[i].SectionElements
		for j := range es {
			es[j].Material = mat
		}
	}
	return p
}

// ViewRelevance implements engine.DrawProxy.
func (p *SkinnedProxy) ViewRelevance(v *engine.View) engine.ViewRelevance {
	if v.Flags.Has(engine.ShowMaterials) {
		return engine.ViewRelevance{}
	}
	return p.SkinnedMeshProxy.ViewRelevance(v)
}
