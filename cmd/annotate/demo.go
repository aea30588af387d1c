// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/rs/zerolog"

	"gviegas/annotation/annotation"
	"gviegas/annotation/engine"
	"gviegas/annotation/internal/config"
	"gviegas/annotation/linear"
)

// legend maps an annotation color to the object it marks.
type legend struct {
	color annotation.Color
	name  string
}

// report is the outcome of one demo frame.
type report struct {
	primitives int
	rebuilt    int
	// Batches of the regular pass.
	lit []engine.MeshBatch
	// Batches of the annotation pass, split by
	// whether an annotation component drew them.
	masked, unmasked []engine.MeshBatch
	legend           []legend
}

func (r *report) write(w io.Writer) {
	fmt.Fprintf(w, "primitives: %d (rebuilt %d)\n", r.primitives, r.rebuilt)
	fmt.Fprintf(w, "lit pass: %d batches\n", len(r.lit))
	fmt.Fprintf(w, "annotation pass: %d annotated batches, %d other batches\n", len(r.masked), len(r.unmasked))
	for _, l := range r.legend {
		fmt.Fprintf(w, "  %s  %s\n", l.color, l.name)
	}
}

// slotTemplates creates the regular materials shared by
// every demo mesh.
func slotTemplates() ([]engine.Material, error) {
	names := [...]string{"Default", "Metal", "Cloth"}
	ms := make([]engine.Material, len(names))
	for i, n := range names {
		t, err := engine.NewTemplate(n, map[string]linear.V4{"BaseColor": {0.8, 0.8, 0.8, 1}})
		if err != nil {
			return nil, err
		}
		ms[i] = t
	}
	return ms, nil
}

func demoLODs(lods, sections, slots int) [][]engine.Section {
	ls := make([][]engine.Section, lods)
	for i := range ls {
		// Coarser levels draw fewer triangles.
		tris := 64 >> i
		if tris < 1 {
			tris = 1
		}
		ss := make([]engine.Section, sections)
		for j := range ss {
			ss[j] = engine.Section{
				Material:     j % slots,
				FirstIndex:   j * tris * 3,
				NumTriangles: tris,
			}
		}
		ls[i] = ss
	}
	return ls
}

// run builds the demo scene described by cfg and
// gathers one frame of both passes.
func run(cfg *config.Config, log zerolog.Logger) (*report, error) {
	scene := engine.NewScene(log)
	slots, err := slotTemplates()
	if err != nil {
		return nil, err
	}
	tmpl, err := annotation.NewTemplate(cfg.Annotation.Template)
	if err != nil {
		return nil, fmt.Errorf("annotation template: %w", err)
	}
	box := linear.BoundsFromBox(linear.V3{-1, -1, -1}, linear.V3{1, 1, 1})
	secs := demoLODs(cfg.Demo.LODs, cfg.Demo.Sections, len(slots))

	var parents []engine.Primitive
	for i := 0; i < cfg.Demo.Static; i++ {
		lods := make([]engine.StaticLOD, len(secs))
		for j := range secs {
			lods[j].Sections = secs[j]
		}
		name := "StaticMesh" + strconv.Itoa(i)
		m, err := engine.NewStaticMesh(name, lods, slots, box)
		if err != nil {
			return nil, err
		}
		c := engine.NewStaticMeshComponent(name, m)
		c.World.Translate(linear.V3{float32(i) * 3, 0, 0})
		parents = append(parents, c)
	}
	if cfg.Demo.Skinned > 0 {
		skin, err := engine.NewSkin([]engine.Joint{
			{Name: "Hips", Parent: -1},
			{Name: "Spine", Parent: 0},
			{Name: "Head", Parent: 1},
		})
		if err != nil {
			return nil, err
		}
		for i := 0; i < cfg.Demo.Skinned; i++ {
			lods := make([]engine.SkeletalLOD, len(secs))
			for j := range secs {
				lods[j].Sections = secs[j]
			}
			name := "SkeletalMesh" + strconv.Itoa(i)
			m, err := engine.NewSkeletalMesh(name, skin, lods, slots, box)
			if err != nil {
				return nil, err
			}
			m.BuildRenderData()
			c := engine.NewSkinnedMeshComponent(name, m)
			c.World.Translate(linear.V3{0, 0, float32(i+1) * -3})
			parents = append(parents, c)
		}
	}

	pal := annotation.NewPalette(cfg.Palette.Saturation, cfg.Palette.Value)
	anns := make(map[engine.PrimitiveID]bool)
	rep := new(report)
	for _, p := range parents {
		if _, err := scene.Add(p); err != nil {
			return nil, err
		}
		name := p.Node().Name
		a := annotation.New(name+"Annotation", tmpl, log)
		a.Attach(p)
		id, err := scene.Add(a)
		if err != nil {
			return nil, err
		}
		anns[id] = true
		color, err := pal.Assign(name)
		if err != nil {
			return nil, err
		}
		a.SetColor(color)
		rep.legend = append(rep.legend, legend{color, name})
	}

	scene.Tick(1.0 / 60)
	rep.rebuilt = scene.Flush()
	rep.primitives = scene.Len()

	lit := &engine.View{Name: "lit", Flags: engine.ShowDefault, LOD: cfg.Demo.LOD}
	mask := &engine.View{Name: "object_mask", Flags: engine.ShowDefault &^ engine.ShowMaterials, LOD: cfg.Demo.LOD}
	rep.lit = scene.Gather(lit)
	for _, mb := range scene.Gather(mask) {
		if anns[mb.Primitive] {
			rep.masked = append(rep.masked, mb)
		} else {
			rep.unmasked = append(rep.unmasked, mb)
		}
	}
	for _, v := range [...]struct {
		view *engine.View
		mbs  []engine.MeshBatch
	}{{lit, rep.lit}, {mask, append(rep.unmasked, rep.masked...)}} {
		for _, mb := range v.mbs {
			log.Debug().Str("view", v.view.Name).Int("primitive", int(mb.Primitive)).
				Int("lod", mb.LOD).Int("batch", mb.Batch).Int("material", int(mb.Material)).
				Int("triangles", mb.NumTriangles).Msg("mesh batch")
		}
		log.Info().Str("view", v.view.Name).Stringer("flags", v.view.Flags).
			Int("batches", len(v.mbs)).Msg("view gathered")
	}
	return rep, nil
}
