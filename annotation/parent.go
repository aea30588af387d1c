// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package annotation

import (
	"fmt"

	"gviegas/annotation/engine"
	"gviegas/annotation/node"
)

// parentKind is the kind of geometry that an
// attachment parent bears.
type parentKind int

const (
	parentNone parentKind = iota
	parentStatic
	parentSkinned
	parentUnsupported
)

func (k parentKind) String() string {
	switch k {
	case parentNone:
		return "none"
	case parentStatic:
		return "static"
	case parentSkinned:
		return "skinned"
	default:
		return "unsupported"
	}
}

// parent is the resolved attachment parent of a
// Component. Only the field matching kind is set.
type parent struct {
	kind    parentKind
	static  *engine.StaticMeshComponent
	skinned *engine.SkinnedMeshComponent
	// Type of an unsupported parent.
	typ string
}

// resolveParent classifies the component stored in
// nd's immediate ancestor.
// Parents that are not registered in a scene resolve
// to parentNone.
func resolveParent(nd *node.Node) parent {
	pn := nd.Parent()
	if pn == nil {
		return parent{kind: parentNone}
	}
	switch c := pn.Data.(type) {
	case *engine.StaticMeshComponent:
		if c == nil || !c.Registered() {
			return parent{kind: parentNone}
		}
		return parent{kind: parentStatic, static: c}
	case *engine.SkinnedMeshComponent:
		if c == nil || !c.Registered() {
			return parent{kind: parentNone}
		}
		return parent{kind: parentSkinned, skinned: c}
	case nil:
		return parent{kind: parentNone}
	default:
		return parent{kind: parentUnsupported, typ: fmt.Sprintf("%T", c)}
	}
}

// name returns the node name of the parent.
func (p parent) name() string {
	switch p.kind {
	case parentStatic:
		return p.static.Name()
	case parentSkinned:
		return p.skinned.Name()
	default:
		return ""
	}
}
