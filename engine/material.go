// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"errors"
	"sync"

	"gviegas/annotation/internal/bitm"
	"gviegas/annotation/linear"
)

const matPrefix = "material: "

func newMatErr(reason string) error { return errors.New(matPrefix + reason) }

// RenderHandle identifies a material on the render side.
// The zero value is not a valid handle.
type RenderHandle int

// Global render handle storage.
var handles struct {
	sync.Mutex
	m bitm.Bitm
}

func newHandle() RenderHandle {
	handles.Lock()
	defer handles.Unlock()
	return RenderHandle(handles.m.Alloc() + 1)
}

func freeHandle(h RenderHandle) {
	if h < 1 {
		return
	}
	handles.Lock()
	defer handles.Unlock()
	handles.m.Unset(int(h) - 1)
}

// Material is what mesh sections and batches refer to.
type Material interface {
	// RenderHandle returns the handle that draw
	// batches carry.
	RenderHandle() RenderHandle

	// Valid reports whether the material can still
	// be used for drawing.
	Valid() bool
}

// MaterialTemplate is a shared shader template.
// It declares the vector parameters that instances
// created from it can override.
type MaterialTemplate struct {
	name   string
	params map[string]linear.V4
	handle RenderHandle
}

// NewTemplate creates a new material template.
// params maps each parameter name to its default value.
func NewTemplate(name string, params map[string]linear.V4) (*MaterialTemplate, error) {
	if name == "" {
		return nil, newMatErr("empty template name")
	}
	p := make(map[string]linear.V4, len(params))
	for k, v := range params {
		if k == "" {
			return nil, newMatErr("empty parameter name")
		}
		p[k] = v
	}
	return &MaterialTemplate{
		name:   name,
		params: p,
		handle: newHandle(),
	}, nil
}

// Name returns the name of t.
func (t *MaterialTemplate) Name() string { return t.name }

// RenderHandle implements Material.
func (t *MaterialTemplate) RenderHandle() RenderHandle {
	if t == nil {
		return 0
	}
	return t.handle
}

// Valid implements Material.
func (t *MaterialTemplate) Valid() bool { return t != nil && t.handle > 0 }

// HasParam reports whether t declares the named parameter.
func (t *MaterialTemplate) HasParam(name string) bool {
	_, ok := t.params[name]
	return ok
}

// Release invalidates t.
// Instances created from t are not affected.
func (t *MaterialTemplate) Release() {
	freeHandle(t.handle)
	t.handle = 0
}

// MaterialInstance is a dynamic material created from
// a MaterialTemplate.
// Parameter updates are visible to every draw that
// resolves the instance after the update returns.
type MaterialInstance struct {
	tmpl   *MaterialTemplate
	name   string
	handle RenderHandle

	mu  sync.RWMutex
	vec map[string]linear.V4
}

// NewInstance creates a new material instance from tmpl.
func NewInstance(tmpl *MaterialTemplate, name string) (*MaterialInstance, error) {
	if !tmpl.Valid() {
		return nil, newMatErr("invalid MaterialTemplate")
	}
	return &MaterialInstance{
		tmpl:   tmpl,
		name:   name,
		handle: newHandle(),
		vec:    make(map[string]linear.V4),
	}, nil
}

// Name returns the name of m.
func (m *MaterialInstance) Name() string { return m.name }

// Template returns the template from which m was created.
func (m *MaterialInstance) Template() *MaterialTemplate { return m.tmpl }

// RenderHandle implements Material.
func (m *MaterialInstance) RenderHandle() RenderHandle {
	if m == nil {
		return 0
	}
	return m.handle
}

// Valid implements Material.
func (m *MaterialInstance) Valid() bool { return m != nil && m.handle > 0 }

// SetVector sets the value of a vector parameter.
// The parameter must be declared by m's template.
func (m *MaterialInstance) SetVector(name string, v linear.V4) error {
	if !m.Valid() {
		return newMatErr("SetVector on released MaterialInstance")
	}
	if !m.tmpl.HasParam(name) {
		return newMatErr("undefined parameter " + name)
	}
	m.mu.Lock()
	m.vec[name] = v
	m.mu.Unlock()
	return nil
}

// Vector returns the value of a vector parameter.
// Parameters never set on m have the template's default.
func (m *MaterialInstance) Vector(name string) (linear.V4, bool) {
	m.mu.RLock()
	v, ok := m.vec[name]
	m.mu.RUnlock()
	if ok {
		return v, true
	}
	v, ok = m.tmpl.params[name]
	return v, ok
}

// Release invalidates m.
// Draw proxies referring to m must have been destroyed.
func (m *MaterialInstance) Release() {
	freeHandle(m.handle)
	m.handle = 0
}
