// Copyright 2024 Gustavo C. Viegas. All rights reserved.

// Package annotation renders objects with flat, unique
// colors for ground-truth segmentation.
//
// A Component is attached below a static or skinned
// mesh component. When the scene asks it for a draw
// proxy, it builds one that reuses its parent's
// geometry, replaces every material with the
// component's annotation material and hides itself
// from views that show regular materials. Capturing a
// view without engine.ShowMaterials then yields the
// annotation image.
package annotation

import (
	"github.com/rs/zerolog"

	"gviegas/annotation/engine"
	"gviegas/annotation/linear"
	"gviegas/annotation/node"
)

// State is the lifecycle state of a Component.
type State int

// Component states.
const (
	Unregistered State = iota
	Registered
	ProxyLive
	ProxyStale
	Destroyed
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case Unregistered:
		return "Unregistered"
	case Registered:
		return "Registered"
	case ProxyLive:
		return "ProxyLive"
	case ProxyStale:
		return "ProxyStale"
	case Destroyed:
		return "Destroyed"
	default:
		return "!annotation.State"
	}
}

// Component draws its attachment parent with a flat
// annotation color.
//
// Game-side methods (SetColor, Tick, OnRegister,
// OnUnregister) and CreateDrawProxy must not be called
// concurrently; the scene's render-state protocol is
// what orders them.
type Component struct {
	node  *node.Node
	tmpl  *engine.MaterialTemplate
	mid   *engine.MaterialInstance
	color Color
	scene *engine.Scene
	state State
	log   zerolog.Logger
	met   *metrics

	parentChanged bool
	unwatch       func()
}

// New creates a new annotation component.
// tmpl is the shared annotation template (see
// NewTemplate); the component's material instance is
// created from it when the component is registered.
func New(name string, tmpl *engine.MaterialTemplate, log zerolog.Logger) *Component {
	c := &Component{
		node: node.New(),
		tmpl: tmpl,
		log:  log.With().Str("component", name).Logger(),
		met:  defaultMetrics(),
	}
	c.node.Name = name
	c.node.Data = c
	return c
}

// Attach attaches c below the given primitive.
func (c *Component) Attach(p engine.Primitive) { p.Node().Insert(c.node) }

// Detach detaches c from its parent.
func (c *Component) Detach() { c.node.Remove() }

// Name returns the name of c.
func (c *Component) Name() string { return c.node.Name }

// Node implements engine.Primitive.
func (c *Component) Node() *node.Node { return c.node }

// State returns the lifecycle state of c.
func (c *Component) State() State { return c.state }

// Material returns the material instance of c, or nil if
// it is not registered or its material failed to build.
func (c *Component) Material() *engine.MaterialInstance { return c.mid }

// OnRegister implements engine.Registrar.
// It builds the material instance and binds the current
// color to it.
func (c *Component) OnRegister(s *engine.Scene) {
	c.scene = s
	c.state = Registered
	c.unwatch = c.node.Watch(func(*node.Node) { c.parentChanged = true })

	mid, err := engine.NewInstance(c.tmpl, c.node.Name+"MID")
	if err != nil {
		c.log.Error().Err(err).Msg("annotation material is not correctly initialized")
		return
	}
	c.mid = mid
	if err := bindColor(c.mid, c.color); err != nil {
		c.log.Error().Err(err).Msg("cannot bind annotation color")
	}
}

// OnUnregister implements engine.Registrar.
// It releases the material instance; the scene has
// already destroyed the proxy that borrowed it.
func (c *Component) OnUnregister() {
	if c.unwatch != nil {
		c.unwatch()
		c.unwatch = nil
	}
	if c.mid != nil {
		c.mid.Release()
		c.mid = nil
	}
	c.scene = nil
	c.parentChanged = false
	c.state = Destroyed
}

// SetColor sets the annotation color.
// The material parameter is updated immediately when
// the material instance exists; otherwise the color is
// only stored and a warning is logged.
func (c *Component) SetColor(color Color) {
	c.color = color
	if !c.mid.Valid() {
		c.log.Warn().Stringer("color", color).Msg("annotation material is not initialized, color not bound")
		return
	}
	if err := bindColor(c.mid, color); err != nil {
		c.log.Error().Err(err).Stringer("color", color).Msg("cannot bind annotation color")
		return
	}
	c.met.colorUpdated()
}

// Color returns the annotation color.
func (c *Component) Color() Color { return c.color }

// CreateDrawProxy implements engine.Primitive.
// It returns nil when no annotation can be drawn this
// render-state generation; the reason is logged.
func (c *Component) CreateDrawProxy() engine.DrawProxy {
	p := resolveParent(c.node)
	switch p.kind {
	case parentNone:
		return c.skip("no_parent", c.log.Info().Str("reason", "parent component is invalid"))
	case parentUnsupported:
		return c.skip("unsupported_parent", c.log.Info().Str("parent_type", p.typ).
			Str("reason", "parent component type is not supported"))
	}
	if !c.mid.Valid() {
		return c.skip("no_material", c.log.Warn().Str("parent", p.name()).
			Str("reason", "annotation material is not initialized"))
	}

	var proxy engine.DrawProxy
	switch p.kind {
	case parentStatic:
		if p.static.Mesh().NumLODs() == 0 {
			return c.skip("invalid_mesh", c.log.Info().Str("parent", p.name()).
				Str("reason", "parent static mesh is invalid"))
		}
		proxy = NewStaticProxy(p.static, c.mid, c.log)
	case parentSkinned:
		rd := p.skinned.RenderData()
		lod := p.skinned.PredictedLOD
		if rd == nil || lod < 0 || lod >= len(rd.LODs) || !p.skinned.MeshObjectReady() {
			return c.skip("data_not_ready", c.log.Info().Str("parent", p.name()).Int("lod", lod).
				Str("reason", "parent skinned mesh data is invalid"))
		}
		proxy = NewSkinnedProxy(p.skinned, rd, c.mid, c.log)
	}
	c.state = ProxyLive
	c.met.proxyCreated(p.kind.String())
	return proxy
}

// skip logs e and reports that no proxy was built.
func (c *Component) skip(reason string, e *zerolog.Event) engine.DrawProxy {
	e.Msg("annotation draw proxy not created")
	c.met.proxySkipped(reason)
	if c.state == ProxyLive {
		c.state = ProxyStale
	}
	return nil
}

// RenderStateDirty implements engine.DirtyObserver.
func (c *Component) RenderStateDirty() {
	if c.state == ProxyLive {
		c.state = ProxyStale
	}
}

// CalcBounds implements engine.Primitive.
// The component occupies exactly its parent's bounds,
// or the empty bound if it has no mesh parent.
func (c *Component) CalcBounds(world linear.M4) linear.Bounds {
	p := resolveParent(c.node)
	switch p.kind {
	case parentStatic:
		return p.static.CalcBounds(world)
	case parentSkinned:
		return p.skinned.CalcBounds(world)
	default:
		return linear.Bounds{}
	}
}

// Tick implements engine.Primitive.
// A change of attachment parent since the previous
// tick marks the render state dirty once, so the proxy
// is rebuilt against the new parent.
func (c *Component) Tick(float32) {
	if !c.parentChanged || c.scene == nil {
		return
	}
	c.parentChanged = false
	c.log.Debug().Str("parent", resolveParent(c.node).name()).Msg("attachment parent changed")
	c.scene.MarkRenderStateDirty(c)
}
