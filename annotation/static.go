// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package annotation

import (
	"github.com/rs/zerolog"

	"gviegas/annotation/engine"
)

// StaticProxy draws the geometry of a static mesh
// component with the annotation material.
// It is hidden from views that show regular materials.
type StaticProxy struct {
	*engine.StaticMeshProxy

	// Borrowed from the owning Component.
	mat    engine.Material
	handle engine.RenderHandle
}

// NewStaticProxy creates a proxy that wraps the regular
// proxy of c.
// mat must outlive the returned proxy. If mat is not
// valid, batches keep the mesh's own materials.
func NewStaticProxy(c *engine.StaticMeshComponent, mat engine.Material, log zerolog.Logger) *StaticProxy {
	p := &StaticProxy{StaticMeshProxy: engine.NewStaticMeshProxy(c)}
	p.CastShadow = false
	// The annotation material is not one of the
	// mesh's slots.
	p.VerifyUsedMaterials = false
	if mat == nil || !mat.Valid() {
		log.Warn().Str("parent", c.Name()).Msg("annotation material is invalid in static proxy")
		return p
	}
	p.mat = mat
	p.handle = mat.RenderHandle()
	return p
}

// ViewRelevance implements engine.DrawProxy.
func (p *StaticProxy) ViewRelevance(v *engine.View) engine.ViewRelevance {
	if v.Flags.Has(engine.ShowMaterials) {
		return engine.ViewRelevance{}
	}
	return p.StaticMeshProxy.ViewRelevance(v)
}

// MeshBatch implements engine.DrawProxy.
func (p *StaticProxy) MeshBatch(lod, batch, elem int) (engine.MeshBatch, bool) {
	mb, ok := p.StaticMeshProxy.MeshBatch(lod, batch, elem)
	if p.mat != nil {
		mb.Material = p.handle
	}
	return mb, ok
}

// UsedMaterials implements engine.MaterialVerifier.
func (p *StaticProxy) UsedMaterials() []engine.RenderHandle {
	if p.mat == nil {
		return p.StaticMeshProxy.UsedMaterials()
	}
	return []engine.RenderHandle{p.handle}
}

// Destroy implements engine.Destroyer.
func (p *StaticProxy) Destroy() {
	p.StaticMeshProxy.Destroy()
	p.mat = nil
	p.handle = 0
}
