// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"errors"
	"sort"

	"gviegas/annotation/linear"
	"gviegas/annotation/node"
)

const skinPrefix = "skin: "

func newSkinErr(reason string) error { return errors.New(skinPrefix + reason) }

// Skin defines a joint hierarchy.
type Skin struct {
	joints []Joint
	// Sorted such that every parent comes
	// before any of its descendants.
	hier []int
}

// Joint describes a single joint in a skin.
// Joint.Parent refers to another Joint's index within
// the slice presented to NewSkin, or is negative if the
// joint has no parent.
type Joint struct {
	Name   string
	IBM    linear.M4
	Parent int
}

// NewSkin creates a new skin from a joint hierarchy.
func NewSkin(joints []Joint) (*Skin, error) {
	n := len(joints)
	if n == 0 {
		return nil, newSkinErr("[]Joint length is 0")
	}
	js := make([]Joint, n)
	for i := range joints {
		js[i] = joints[i]
		switch pnt := joints[i].Parent; {
		case pnt >= n:
			return nil, newSkinErr("Joint.Parent out of bounds")
		case pnt == i:
			return nil, newSkinErr("Joint.Parent refers to itself")
		case pnt < 0:
			js[i].Parent = -1
		}
	}
	depth := make([]int, n)
	for i := range js {
		d := 0
		for pnt := js[i].Parent; pnt >= 0; pnt = js[pnt].Parent {
			if d++; d > n {
				return nil, newSkinErr("cycle in joint hierarchy")
			}
		}
		depth[i] = d
	}
	hier := make([]int, n)
	for i := range hier {
		hier[i] = i
	}
	sort.SliceStable(hier, func(i, j int) bool { return depth[hier[i]] < depth[hier[j]] })
	return &Skin{js, hier}, nil
}

// Len returns the number of joints in sk.
func (sk *Skin) Len() int { return len(sk.joints) }

// SkeletalLOD is one level of detail of a SkeletalMesh.
type SkeletalLOD struct {
	Sections []Section
}

// SkeletalMesh is geometry deformed by a Skin.
type SkeletalMesh struct {
	name  string
	skin  *Skin
	lods  []SkeletalLOD
	slots []Material
	box   linear.Bounds
	rdata *SkeletalRenderData
}

// SkeletalRenderData is the render-side data of a
// SkeletalMesh.
type SkeletalRenderData struct {
	LODs []SkeletalLOD
}

// NewSkeletalMesh creates a new skeletal mesh.
// Render data is not available until BuildRenderData
// is called.
func NewSkeletalMesh(name string, skin *Skin, lods []SkeletalLOD, slots []Material, box linear.Bounds) (*SkeletalMesh, error) {
	if skin == nil {
		return nil, newSkinErr("nil Skin")
	}
	switch n := len(lods); {
	case n == 0:
		return nil, newMeshErr("[]SkeletalLOD length is 0")
	case n > cfg.MaxLOD:
		return nil, newMeshErr("too many levels of detail")
	}
	if len(slots) == 0 {
		return nil, newMeshErr("[]Material length is 0")
	}
	ls := make([]SkeletalLOD, len(lods))
	for i := range lods {
		if err := validateSections(lods[i].Sections, len(slots)); err != nil {
			return nil, err
		}
		ls[i].Sections = append([]Section(nil), lods[i].Sections...)
	}
	return &SkeletalMesh{
		name:  name,
		skin:  skin,
		lods:  ls,
		slots: append([]Material(nil), slots...),
		box:   box,
	}, nil
}

// Name returns the name of m.
func (m *SkeletalMesh) Name() string { return m.name }

// Skin returns the skin of m.
func (m *SkeletalMesh) Skin() *Skin { return m.skin }

// NumLODs returns the number of levels of detail in m.
func (m *SkeletalMesh) NumLODs() int { return len(m.lods) }

// BuildRenderData makes m's render data available.
func (m *SkeletalMesh) BuildRenderData() {
	if m.rdata == nil {
		m.rdata = &SkeletalRenderData{LODs: m.lods}
	}
}

// RenderData returns m's render data, or nil if it has
// not been built.
func (m *SkeletalMesh) RenderData() *SkeletalRenderData {
	if m == nil {
		return nil
	}
	return m.rdata
}

// SkinnedMeshComponent is a primitive that draws a
// SkeletalMesh.
type SkinnedMeshComponent struct {
	node  *node.Node
	mesh  *SkeletalMesh
	scene *Scene
	ready bool

	// World is the component's world transform.
	World linear.M4
	// Level of detail predicted for the next frame.
	PredictedLOD int
	// Whether the component casts shadows.
	CastShadow bool
}

// NewSkinnedMeshComponent creates a new skinned mesh
// component with an identity world transform.
func NewSkinnedMeshComponent(name string, mesh *SkeletalMesh) *SkinnedMeshComponent {
	c := &SkinnedMeshComponent{
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
func (c *SkinnedMeshComponent) Name() string { return c.node.Name }

// Node implements Primitive.
func (c *SkinnedMeshComponent) Node() *node.Node { return c.node }

// Mesh returns the mesh that c draws.
func (c *SkinnedMeshComponent) Mesh() *SkeletalMesh { return c.mesh }

// RenderData returns the render data of c's mesh.
func (c *SkinnedMeshComponent) RenderData() *SkeletalRenderData { return c.mesh.RenderData() }

// MeshObjectReady reports whether the GPU skinning state
// of c has been initialized.
func (c *SkinnedMeshComponent) MeshObjectReady() bool { return c.ready }

// Registered reports whether c belongs to a Scene.
func (c *SkinnedMeshComponent) Registered() bool { return c.scene != nil }

// OnRegister implements Registrar.
func (c *SkinnedMeshComponent) OnRegister(s *Scene) { c.scene = s }

// OnUnregister implements Registrar.
func (c *SkinnedMeshComponent) OnUnregister() {
	c.scene = nil
	c.ready = false
}

// CalcBounds implements Primitive.
func (c *SkinnedMeshComponent) CalcBounds(world linear.M4) linear.Bounds {
	if c.mesh == nil {
		return linear.Bounds{}
	}
	return c.mesh.box.Transform(&world)
}

// CreateDrawProxy implements Primitive.
// The mesh object is initialized on the first call
// that finds render data available.
func (c *SkinnedMeshComponent) CreateDrawProxy() DrawProxy {
	rd := c.RenderData()
	if rd == nil || c.PredictedLOD < 0 || c.PredictedLOD >= len(rd.LODs) {
		return nil
	}
	c.ready = true
	return NewSkinnedMeshProxy(c, rd)
}

// Tick implements Primitive.
func (c *SkinnedMeshComponent) Tick(float32) {}

// SectionElement is the per-section state of a
// SkinnedMeshProxy.
type SectionElement struct {
	Section  Section
	Material Material
}

// LODSectionElements are the section elements of one
// level of detail.
type LODSectionElements struct {
	SectionElements []SectionElement
}

// SkinnedMeshProxy is the draw proxy of a
// SkinnedMeshComponent.
// Batch assembly is driven by LODSections, so proxies
// that embed it change materials by editing that table.
type SkinnedMeshProxy struct {
	LODSections []LODSectionElements
	bounds      linear.Bounds
	slots       []Material

	// Whether the proxy casts shadows at all.
	CastShadow bool
	// Whether the proxy casts dynamic shadows.
	CastDynamicShadow bool
	// Whether batches must use one of the mesh's
	// material slots.
	VerifyUsedMaterials bool
}

// NewSkinnedMeshProxy creates a new proxy from c
// and its render data.
func NewSkinnedMeshProxy(c *SkinnedMeshComponent, rd *SkeletalRenderData) *SkinnedMeshProxy {
	slots := c.mesh.slots
	lods := make([]LODSectionElements, len(rd.LODs))
	for i := range rd.LODs {
		es := make([]SectionElement, len(rd.LODs[i].Sections))
		for j, s := range rd.LODs[i].Sections {
			es[j] = SectionElement{s, slots[s.Material]}
		}
		lods[i].SectionElements = es
	}
	return &SkinnedMeshProxy{
		LODSections:         lods,
		bounds:              c.CalcBounds(c.World),
		slots:               slots,
		CastShadow:          c.CastShadow,
		CastDynamicShadow:   c.CastShadow,
		VerifyUsedMaterials: true,
	}
}

// ViewRelevance implements DrawProxy.
func (p *SkinnedMeshProxy) ViewRelevance(v *View) ViewRelevance {
	return ViewRelevance{
		Draw:    true,
		Shadow:  p.CastShadow && p.CastDynamicShadow && v.Flags.Has(ShowShadows),
		Dynamic: true,
	}
}

// MeshBatch implements DrawProxy.
func (p *SkinnedMeshProxy) MeshBatch(lod, batch, elem int) (MeshBatch, bool) {
	if elem != 0 || batch < 0 || batch >= p.NumBatches(lod) {
		return MeshBatch{}, false
	}
	e := p.LODSections[lod].SectionElements[batch]
	var h RenderHandle
	if e.Material != nil {
		h = e.Material.RenderHandle()
	}
	return MeshBatch{
		LOD:          lod,
		Batch:        batch,
		Element:      elem,
		Material:     h,
		FirstIndex:   e.Section.FirstIndex,
		NumTriangles: e.Section.NumTriangles,
		CastShadow:   p.CastShadow && p.CastDynamicShadow,
	}, true
}

// Bounds implements DrawProxy.
func (p *SkinnedMeshProxy) Bounds() linear.Bounds { return p.bounds }

// NumLODs implements DrawProxy.
func (p *SkinnedMeshProxy) NumLODs() int { return len(p.LODSections) }

// NumBatches implements DrawProxy.
func (p *SkinnedMeshProxy) NumBatches(lod int) int {
	if lod < 0 || lod >= len(p.LODSections) {
		return 0
	}
	return len(p.LODSections[lod].SectionElements)
}

// NumElements implements DrawProxy.
func (p *SkinnedMeshProxy) NumElements(lod, batch int) int {
	if batch < 0 || batch >= p.NumBatches(lod) {
		return 0
	}
	return 1
}

// VerifyMaterials implements MaterialVerifier.
func (p *SkinnedMeshProxy) VerifyMaterials() bool { return p.VerifyUsedMaterials }

// UsedMaterials implements MaterialVerifier.
func (p *SkinnedMeshProxy) UsedMaterials() []RenderHandle {
	hs := make([]RenderHandle, 0, len(p.slots))
	for _, m := range p.slots {
		hs = append(hs, m.RenderHandle())
	}
	return hs
}

// Destroy implements Destroyer.
func (p *SkinnedMeshProxy) Destroy() {
	p.LODSections = nil
	p.slots = nil
}
