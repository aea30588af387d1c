// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"gviegas/annotation/linear"
	"gviegas/annotation/node"
)

// Primitive is a drawable component that a Scene manages.
type Primitive interface {
	// Node returns the primitive's node in the scene
	// graph. It must not return nil.
	Node() *node.Node

	// CreateDrawProxy creates the render-side proxy of
	// the primitive. It may return nil, in which case
	// the primitive draws nothing until its render state
	// is marked dirty again.
	CreateDrawProxy() DrawProxy

	// CalcBounds computes the bounds of the primitive
	// under the given transform.
	CalcBounds(world linear.M4) linear.Bounds

	// Tick is called once per frame.
	Tick(dt float32)
}

// Registrar is implemented by primitives that need to
// know when they are added to or removed from a Scene.
type Registrar interface {
	OnRegister(s *Scene)
	OnUnregister()
}

// DirtyObserver is implemented by primitives that need to
// know when their proxy becomes stale.
type DirtyObserver interface {
	RenderStateDirty()
}

// DrawProxy is the render-side snapshot of a primitive.
// A proxy lives for one render-state generation: the
// Scene destroys it before building its replacement.
type DrawProxy interface {
	// ViewRelevance returns how the proxy participates
	// in view v.
	ViewRelevance(v *View) ViewRelevance

	// MeshBatch assembles the batch identified by lod,
	// batch and elem. It returns false if the indices
	// are out of range.
	MeshBatch(lod, batch, elem int) (MeshBatch, bool)

	// Bounds returns the world bounds of the proxy.
	Bounds() linear.Bounds

	NumLODs() int
	NumBatches(lod int) int
	NumElements(lod, batch int) int
}

// Destroyer is implemented by proxies that hold
// borrowed references which must be dropped when the
// proxy is destroyed.
type Destroyer interface {
	Destroy()
}

// MaterialVerifier is implemented by proxies that
// declare the set of materials they may draw with.
// When VerifyMaterials returns true, batches whose
// material is not in UsedMaterials are rejected.
type MaterialVerifier interface {
	VerifyMaterials() bool
	UsedMaterials() []RenderHandle
}

// MeshBatch describes a single draw.
type MeshBatch struct {
	Primitive    PrimitiveID
	LOD          int
	Batch        int
	Element      int
	Material     RenderHandle
	FirstIndex   int
	NumTriangles int
	CastShadow   bool
}

// Section is a range of a mesh's index data drawn
// with one material slot.
type Section struct {
	Material     int
	FirstIndex   int
	NumTriangles int
}

// validateSections checks that every section refers
// to an existing material slot.
func validateSections(secs []Section, nslot int) error {
	if len(secs) == 0 {
		return newMeshErr("LOD has no sections")
	}
	for _, s := range secs {
		switch {
		case s.Material < 0 || s.Material >= nslot:
			return newMeshErr("Section.Material out of bounds")
		case s.FirstIndex < 0 || s.NumTriangles < 0:
			return newMeshErr("negative Section range")
		}
	}
	return nil
}

// contains reports whether h is in s.
func contains(s []RenderHandle, h RenderHandle) bool {
	for _, x := range s {
		if x == h {
			return true
		}
	}
	return false
}
