// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"strconv"
	"testing"

	"gviegas/annotation/linear"
)

// checkHier checks that sk.hier is correctly sorted.
func (sk *Skin) checkHier(t *testing.T) {
	seen := make([]bool, len(sk.joints))
	for i := range sk.hier {
		pnt := sk.joints[sk.hier[i]].Parent
		if pnt >= 0 && !seen[pnt] {
			t.Fatalf("Skin.hier: bad hierarchy order\n%v\n...must come after:\n%v", sk.joints[sk.hier[i]], sk.joints[pnt])
		}
		seen[sk.hier[i]] = true
	}
}

// dummyJoints creates len joints whose hierarchy is
// at most depth levels deep. Children precede their
// parents in the returned slice.
func dummyJoints(len, depth int) []Joint {
	js := make([]Joint, 0, len)
	for i := 0; i < len; i++ {
		pnt := -1
		if i%(depth+1) != depth {
			pnt = i + 1
		}
		if pnt >= len {
			pnt = -1
		}
		js = append(js, Joint{
			Name:   "Joint " + strconv.Itoa(i),
			IBM:    linear.M4{{1}, {1: 1}, {2: 1}, {3: 1}},
			Parent: pnt,
		})
	}
	return js
}

func TestSkin(t *testing.T) {
	for _, x := range [...][2]int{
		{1, 0},
		{2, 1},
		{4, 3},
		{15, 2},
		{15, 14},
		{127, 63},
		{255, 254},
	} {
		in := dummyJoints(x[0], x[1])
		sk, err := NewSkin(in)
		if sk == nil || err != nil {
			t.Fatalf("NewSkin:\nhave %v, %#v\nwant non-nil, nil", sk, err)
		}
		if n := sk.Len(); n != len(in) {
			t.Fatalf("Skin.Len\nhave %d\nwant %d", n, len(in))
		}
		sk.checkHier(t)
	}
}

func TestSkinFail(t *testing.T) {
	for _, x := range [...]struct {
		joints []Joint
		reason string
	}{
		{nil, "no joints"},
		{[]Joint{{Parent: 1}}, "parent out of bounds"},
		{[]Joint{{Parent: -1}, {Parent: 1}}, "self parent"},
		{[]Joint{{Parent: 1}, {Parent: 0}}, "cycle"},
	} {
		if sk, err := NewSkin(x.joints); sk != nil || err == nil {
			t.Fatalf("NewSkin (%s):\nhave %v, %#v\nwant nil, non-nil", x.reason, sk, err)
		}
	}
}

func testSkeletalMesh(nlod, nsec, nslot int, t *testing.T) *SkeletalMesh {
	sk, err := NewSkin(dummyJoints(4, 3))
	if err != nil {
		t.Fatalf("NewSkin failed:\n%#v", err)
	}
	lods := make([]SkeletalLOD, nlod)
	for i := range lods {
		lods[i].Sections = testSections(nsec, nslot)
	}
	m, err := NewSkeletalMesh("Character", sk, lods, testSlots(nslot, t), unitBox)
	if err != nil {
		t.Fatalf("NewSkeletalMesh failed:\n%#v", err)
	}
	return m
}

func TestSkeletalMeshFail(t *testing.T) {
	sk, _ := NewSkin(dummyJoints(1, 0))
	lods := []SkeletalLOD{{testSections(1, 1)}}
	slots := testSlots(1, t)
	if m, err := NewSkeletalMesh("Bad", nil, lods, slots, unitBox); m != nil || err == nil {
		t.Fatalf("NewSkeletalMesh (nil Skin):\nhave %v, %#v\nwant nil, non-nil", m, err)
	}
	if m, err := NewSkeletalMesh("Bad", sk, nil, slots, unitBox); m != nil || err == nil {
		t.Fatalf("NewSkeletalMesh (no LODs):\nhave %v, %#v\nwant nil, non-nil", m, err)
	}
	if m, err := NewSkeletalMesh("Bad", sk, lods, nil, unitBox); m != nil || err == nil {
		t.Fatalf("NewSkeletalMesh (no slots):\nhave %v, %#v\nwant nil, non-nil", m, err)
	}
}

func TestSkinnedMeshComponent(t *testing.T) {
	m := testSkeletalMesh(3, 4, 2, t)
	if n := m.Skin().Len(); n != 4 {
		t.Fatalf("SkeletalMesh.Skin().Len:\nhave %d\nwant 4", n)
	}
	c := NewSkinnedMeshComponent("Walker", m)

	if c.RenderData() != nil {
		t.Fatal("SkinnedMeshComponent.RenderData: should be nil before BuildRenderData")
	}
	if p := c.CreateDrawProxy(); p != nil {
		t.Fatal("SkinnedMeshComponent.CreateDrawProxy: should be nil without render data")
	}
	if c.MeshObjectReady() {
		t.Fatal("SkinnedMeshComponent.MeshObjectReady: should be false")
	}

	m.BuildRenderData()
	c.PredictedLOD = 3
	if p := c.CreateDrawProxy(); p != nil {
		t.Fatal("SkinnedMeshComponent.CreateDrawProxy: should be nil for bad PredictedLOD")
	}
	c.PredictedLOD = 1
	p, ok := c.CreateDrawProxy().(*SkinnedMeshProxy)
	if !ok {
		t.Fatal("SkinnedMeshComponent.CreateDrawProxy: expected *SkinnedMeshProxy")
	}
	if !c.MeshObjectReady() {
		t.Fatal("SkinnedMeshComponent.MeshObjectReady: should be true")
	}
	if n := len(p.LODSections); n != 3 {
		t.Fatalf("SkinnedMeshProxy.LODSections: len\nhave %d\nwant 3", n)
	}
	slots := m.slots
	for lod := range p.LODSections {
		if n := p.NumBatches(lod); n != 4 {
			t.Fatalf("SkinnedMeshProxy.NumBatches\nhave %d\nwant 4", n)
		}
		for b := 0; b < p.NumBatches(lod); b++ {
			mb, ok := p.MeshBatch(lod, b, 0)
			if !ok {
				t.Fatalf("SkinnedMeshProxy.MeshBatch(%d, %d, 0) failed", lod, b)
			}
			if want := slots[b%2].RenderHandle(); mb.Material != want {
				t.Fatalf("SkinnedMeshProxy.MeshBatch: Material\nhave %d\nwant %d", mb.Material, want)
			}
			if !mb.CastShadow {
				t.Fatal("SkinnedMeshProxy.MeshBatch: CastShadow should be set")
			}
		}
	}
	rel := p.ViewRelevance(&View{Flags: ShowDefault})
	if !rel.Draw || !rel.Shadow || !rel.Dynamic || rel.Static {
		t.Fatalf("SkinnedMeshProxy.ViewRelevance\nhave %+v", rel)
	}
	if b := p.Bounds(); b != unitBox {
		t.Fatalf("SkinnedMeshProxy.Bounds\nhave %v\nwant %v", b, unitBox)
	}

	c.OnUnregister()
	if c.MeshObjectReady() {
		t.Fatal("SkinnedMeshComponent.OnUnregister: MeshObjectReady should be false")
	}
}
