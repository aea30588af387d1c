// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"errors"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"gviegas/annotation/node"
)

func newSceneErr(s string) error { return errors.New("scene: " + s) }

// PrimitiveID identifies a primitive in a Scene.
type PrimitiveID int

// primitive is what a Scene stores.
type primitive struct {
	prim  Primitive
	proxy DrawProxy
	dirty bool
	gen   int
}

// Scene owns the primitives of a world and their draw
// proxies.
//
// Add, Remove, Tick and MarkRenderStateDirty run on the
// game side. Flush and Gather run on the render side.
// A proxy is only ever replaced during Flush, which
// destroys the stale proxy before building a new one,
// so a primitive has at most one live proxy.
type Scene struct {
	prims  dataMap[PrimitiveID, primitive]
	byNode map[*node.Node]PrimitiveID
	log    zerolog.Logger
	mu     sync.RWMutex
}

// NewScene creates a new scene.
func NewScene(log zerolog.Logger) *Scene {
	return &Scene{
		byNode: make(map[*node.Node]PrimitiveID),
		log:    log.With().Str("component", "scene").Logger(),
	}
}

// Add adds p to s.
// Its proxy is built on the next Flush. Primitives
// already attached below p have their render state
// marked dirty.
func (s *Scene) Add(p Primitive) (PrimitiveID, error) {
	s.mu.Lock()
	if _, ok := s.byNode[p.Node()]; ok {
		s.mu.Unlock()
		return 0, newSceneErr("Primitive already added")
	}
	if s.prims.len() >= cfg.MaxPrimitive {
		s.mu.Unlock()
		return 0, newSceneErr("too many primitives")
	}
	id := s.prims.insert(primitive{prim: p, dirty: true})
	s.byNode[p.Node()] = id
	s.markBelow(p.Node())
	s.mu.Unlock()

	if r, ok := p.(Registrar); ok {
		r.OnRegister(s)
	}
	s.log.Debug().Int("id", int(id)).Str("name", p.Node().Name).Msg("primitive added")
	return id, nil
}

// Remove removes p from s, destroying its proxy.
// Primitives attached below p have their render
// state marked dirty.
func (s *Scene) Remove(p Primitive) {
	s.mu.Lock()
	id, ok := s.byNode[p.Node()]
	if !ok {
		s.mu.Unlock()
		return
	}
	pr := s.prims.remove(id)
	delete(s.byNode, p.Node())
	destroy(pr.proxy)
	s.markBelow(p.Node())
	s.mu.Unlock()

	if r, ok := p.(Registrar); ok {
		r.OnUnregister()
	}
	s.log.Debug().Int("id", int(id)).Str("name", p.Node().Name).Msg("primitive removed")
}

// ID returns the identifier of p in s.
func (s *Scene) ID(p Primitive) (PrimitiveID, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byNode[p.Node()]
	return id, ok
}

// Len returns the number of primitives in s.
func (s *Scene) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prims.len()
}

// MarkRenderStateDirty marks p's proxy as stale.
// Primitives attached below p are marked too, since
// their proxies may borrow p's render data.
// The proxies are rebuilt on the next Flush.
func (s *Scene) MarkRenderStateDirty(p Primitive) {
	s.mu.Lock()
	s.mark(p.Node())
	s.markBelow(p.Node())
	s.mu.Unlock()
}

// mark marks the primitive at nd, if any.
// s must be locked.
func (s *Scene) mark(nd *node.Node) {
	id, ok := s.byNode[nd]
	if !ok {
		return
	}
	pr := s.prims.get(id)
	if pr.dirty {
		return
	}
	pr.dirty = true
	if o, ok := pr.prim.(DirtyObserver); ok {
		o.RenderStateDirty()
	}
}

// markBelow marks every primitive below nd.
// s must be locked.
func (s *Scene) markBelow(nd *node.Node) { nd.ForEach(s.mark) }

// Flush rebuilds the proxies of every dirty primitive.
// Ancestors are rebuilt before their descendants.
// It returns the number of proxies rebuilt.
func (s *Scene) Flush() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	type dirty struct {
		id    PrimitiveID
		depth int
	}
	var ds []dirty
	s.prims.each(func(id PrimitiveID, pr *primitive) {
		if pr.dirty {
			ds = append(ds, dirty{id, depth(pr.prim.Node())})
		}
	})
	sort.Slice(ds, func(i, j int) bool {
		if ds[i].depth != ds[j].depth {
			return ds[i].depth < ds[j].depth
		}
		return ds[i].id < ds[j].id
	})
	for _, d := range ds {
		pr := s.prims.get(d.id)
		destroy(pr.proxy)
		pr.proxy = pr.prim.CreateDrawProxy()
		pr.dirty = false
		pr.gen++
		if pr.proxy == nil {
			s.log.Debug().Int("id", int(d.id)).Str("name", pr.prim.Node().Name).Msg("primitive has no proxy")
		}
	}
	return len(ds)
}

// Proxy returns the live proxy of p, or nil if p has
// none or its proxy is stale.
func (s *Scene) Proxy(p Primitive) DrawProxy {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byNode[p.Node()]
	if !ok {
		return nil
	}
	pr := s.prims.get(id)
	if pr.dirty {
		return nil
	}
	return pr.proxy
}

// Generation returns the number of times the proxy of
// p has been built.
func (s *Scene) Generation(p Primitive) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byNode[p.Node()]
	if !ok {
		return 0
	}
	return s.prims.get(id).gen
}

// Tick calls Tick on every primitive.
// Primitives may call back into s.
func (s *Scene) Tick(dt float32) {
	s.mu.RLock()
	ps := make([]Primitive, 0, s.prims.len())
	s.prims.each(func(_ PrimitiveID, pr *primitive) { ps = append(ps, pr.prim) })
	s.mu.RUnlock()
	for _, p := range ps {
		p.Tick(dt)
	}
}

// Gather assembles the mesh batches of every live proxy
// that is relevant to v.
// Batches are ordered by primitive identifier.
func (s *Scene) Gather(v *View) []MeshBatch {
	s.mu.RLock()
	defer s.mu.RUnlock()
	type entry struct {
		id    PrimitiveID
		proxy DrawProxy
	}
	var es []entry
	s.prims.each(func(id PrimitiveID, pr *primitive) {
		if pr.proxy != nil && !pr.dirty {
			es = append(es, entry{id, pr.proxy})
		}
	})
	sort.Slice(es, func(i, j int) bool { return es[i].id < es[j].id })

	var mbs []MeshBatch
	for _, e := range es {
		if !e.proxy.ViewRelevance(v).Draw {
			continue
		}
		n := e.proxy.NumLODs()
		if n == 0 {
			continue
		}
		lod := min(max(v.LOD, 0), n-1)
		var used []RenderHandle
		mv, verify := e.proxy.(MaterialVerifier)
		if verify = verify && mv.VerifyMaterials(); verify {
			used = mv.UsedMaterials()
		}
		for b := 0; b < e.proxy.NumBatches(lod); b++ {
			for el := 0; el < e.proxy.NumElements(lod, b); el++ {
				mb, ok := e.proxy.MeshBatch(lod, b, el)
				if !ok {
					continue
				}
				if verify && !contains(used, mb.Material) {
					s.log.Warn().Int("id", int(e.id)).Int("lod", lod).Int("batch", b).
						Int("material", int(mb.Material)).Msg("batch material not used by primitive")
					continue
				}
				mb.Primitive = e.id
				mbs = append(mbs, mb)
			}
		}
	}
	return mbs
}

func destroy(p DrawProxy) {
	if d, ok := p.(Destroyer); ok {
		d.Destroy()
	}
}

func depth(nd *node.Node) (d int) {
	for p := nd.Parent(); p != nil; p = p.Parent() {
		d++
	}
	return
}
