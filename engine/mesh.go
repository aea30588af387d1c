// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"errors"

	"gviegas/annotation/linear"
	"gviegas/annotation/node"
)

const meshPrefix = "mesh: "

func newMeshErr(reason string) error { return errors.New(meshPrefix + reason) }

// StaticLOD is one level of detail of a StaticMesh.
type StaticLOD struct {
	Sections []Section
}

// StaticMesh is rigid geometry.
type StaticMesh struct {
	name  string
	lods  []StaticLOD
	slots []Material
	box   linear.Bounds
}

// NewStaticMesh creates a new static mesh.
// box is the local-space bounds of the geometry.
func NewStaticMesh(name string, lods []StaticLOD, slots []Material, box linear.Bounds) (*StaticMesh, error) {
	switch n := len(lods); {
	case n == 0:
		return nil, newMeshErr("[]StaticLOD length is 0")
	case n > cfg.MaxLOD:
		return nil, newMeshErr("too many levels of detail")
	}
	if len(slots) == 0 {
		return nil, newMeshErr("[]Material length is 0")
	}
	ls := make([]StaticLOD, len(lods))
	for i := range lods {
		if err := validateSections(lods[i].Sections, len(slots)); err != nil {
			return nil, err
		}
		ls[i].Sections = append([]Section(nil), lods[i].Sections...)
	}
	return &StaticMesh{
		name:  name,
		lods:  ls,
		slots: append([]Material(nil), slots...),
		box:   box,
	}, nil
}

// Name returns the name of m.
func (m *StaticMesh) Name() string { return m.name }

// NumLODs returns the number of levels of detail
// resident in m.
func (m *StaticMesh) NumLODs() int {
	if m == nil {
		return 0
	}
	return len(m.lods)
}

// Slots returns the material slots of m.
// The slice must not be mutated.
func (m *StaticMesh) Slots() []Material { return m.slots }

// Box returns the local-space bounds of m.
func (m *StaticMesh) Box() linear.Bounds { return m.box }

// Free releases m's render data.
// Components using m must have their render state
// marked dirty.
func (m *StaticMesh) Free() { m.lods = nil }

// StaticMeshComponent is a primitive that draws a
// StaticMesh.
type StaticMeshComponent struct {
	node  *node.Node
	mesh  *StaticMesh
	scene *Scene

	// World is the component's world transform.
	World linear.M4
	// Whether the component casts shadows.
	CastShadow bool
}

// NewStaticMeshComponent creates a new static mesh
// component with an identity world transform.
func NewStaticMeshComponent(name string, mesh *StaticMesh) *StaticMeshComponent {
	c := &StaticMeshComponent{
		node:       node.New(),
		mesh:       mesh,
		CastShadow: true,
	}
	c.World.I()
	c.node.Name = name
	c.node.Data = c
	return c
}

// Name returns the name of c's node.
func (c *StaticMeshComponent) Name() string { return c.node.Name }

// Node implements Primitive.
func (c *StaticMeshComponent) Node() *node.Node { return c.node }

// Mesh returns the mesh that c draws.
func (c *StaticMeshComponent) Mesh() *StaticMesh { return c.mesh }

// SetMesh replaces the mesh that c draws.
func (c *StaticMeshComponent) SetMesh(m *StaticMesh) {
	c.mesh = m
	if c.scene != nil {
		c.scene.MarkRenderStateDirty(c)
	}
}

// Registered reports whether c belongs to a Scene.
func (c *StaticMeshComponent) Registered() bool { return c.scene != nil }

// OnRegister implements Registrar.
func (c *StaticMeshComponent) OnRegister(s *Scene) { c.scene = s }

// OnUnregister implements Registrar.
func (c *StaticMeshComponent) OnUnregister() { c.scene = nil }

// CalcBounds implements Primitive.
func (c *StaticMeshComponent) CalcBounds(world linear.M4) linear.Bounds {
	if c.mesh == nil {
		return linear.Bounds{}
	}
	return c.mesh.box.Transform(&world)
}

// CreateDrawProxy implements Primitive.
func (c *StaticMeshComponent) CreateDrawProxy() DrawProxy {
	if c.mesh.NumLODs() == 0 {
		return nil
	}
	return NewStaticMeshProxy(c)
}

// Tick implements Primitive.
func (c *StaticMeshComponent) Tick(float32) {}

// StaticMeshProxy is the draw proxy of a
// StaticMeshComponent.
// It is meant to be embedded by proxies that need to
// change how static geometry is drawn.
type StaticMeshProxy struct {
	lods   []StaticLOD
	slots  []Material
	bounds linear.Bounds

	// Whether the proxy casts shadows.
	CastShadow bool
	// Whether batches must use one of the mesh's
	// material slots.
	VerifyUsedMaterials bool
}

// NewStaticMeshProxy creates a new proxy from c.
// c.Mesh() must have at least one level of detail.
// The proxy borrows the mesh's render data.
func NewStaticMeshProxy(c *StaticMeshComponent) *StaticMeshProxy {
	return &StaticMeshProxy{
		lods:                c.mesh.lods,
		slots:               c.mesh.slots,
		bounds:              c.CalcBounds(c.World),
		CastShadow:          c.CastShadow,
		VerifyUsedMaterials: true,
	}
}

// ViewRelevance implements DrawProxy.
func (p *StaticMeshProxy) ViewRelevance(v *View) ViewRelevance {
	return ViewRelevance{
		Draw:   true,
		Shadow: p.CastShadow && v.Flags.Has(ShowShadows),
		Static: true,
	}
}

// MeshBatch implements DrawProxy.
func (p *StaticMeshProxy) MeshBatch(lod, batch, elem int) (MeshBatch, bool) {
	if elem != 0 || lod < 0 || lod >= len(p.lods) {
		return MeshBatch{}, false
	}
	secs := p.lods[lod].Sections
	if batch < 0 || batch >= len(secs) {
		return MeshBatch{}, false
	}
	s := secs[batch]
	return MeshBatch{
		LOD:          lod,
		Batch:        batch,
		Element:      elem,
		Material:     p.slots[s.Material].RenderHandle(),
		FirstIndex:   s.FirstIndex,
		NumTriangles: s.NumTriangles,
		CastShadow:   p.CastShadow,
	}, true
}

// Bounds implements DrawProxy.
func (p *StaticMeshProxy) Bounds() linear.Bounds { return p.bounds }

// NumLODs implements DrawProxy.
func (p *StaticMeshProxy) NumLODs() int { return len(p.lods) }

// NumBatches implements DrawProxy.
func (p *StaticMeshProxy) NumBatches(lod int) int {
	if lod < 0 || lod >= len(p.lods) {
		return 0
	}
	return len(p.lods[lod].Sections)
}

// NumElements implements DrawProxy.
// Static batches have a single element.
func (p *StaticMeshProxy) NumElements(lod, batch int) int {
	if batch < 0 || batch >= p.NumBatches(lod) {
		return 0
	}
	return 1
}

// VerifyMaterials implements MaterialVerifier.
func (p *StaticMeshProxy) VerifyMaterials() bool { return p.VerifyUsedMaterials }

// UsedMaterials implements MaterialVerifier.
func (p *StaticMeshProxy) UsedMaterials() []RenderHandle {
	hs := make([]RenderHandle, 0, len(p.slots))
	for _, m := range p.slots {
		hs = append(hs, m.RenderHandle())
	}
	return hs
}

// Destroy implements Destroyer.
func (p *StaticMeshProxy) Destroy() {
	p.lods = nil
	p.slots = nil
}
