// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package bitm

import (
	"testing"
)

func TestZero(t *testing.T) {
	var m Bitm
	if n := m.Len(); n != 0 {
		t.Fatalf("Bitm.Len:\nhave %d\nwant 0", n)
	}
	if n := m.Rem(); n != 0 {
		t.Fatalf("Bitm.Rem:\nhave %d\nwant 0", n)
	}
	if _, ok := m.Search(); ok {
		t.Fatal("Bitm.Search: unexpected success on empty map")
	}
	if m.IsSet(0) {
		t.Fatal("Bitm.IsSet: out of range index should not be set")
	}
}

func TestGrow(t *testing.T) {
	var m Bitm
	for _, x := range [...]struct{ nplus, wantLen int }{
		{1, 32},
		{2, 96},
		{0, 96},
		{-1, 96},
		{5, 256},
	} {
		if n, i := m.Len(), m.Grow(x.nplus); n != i {
			t.Fatalf("Bitm.Grow:\nhave %d\nwant %d", i, n)
		}
		if n := m.Len(); n != x.wantLen {
			t.Fatalf("Bitm.Len:\nhave %d\nwant %d", n, x.wantLen)
		}
		if n := m.Rem(); n != x.wantLen {
			t.Fatalf("Bitm.Rem:\nhave %d\nwant %d", n, x.wantLen)
		}
	}
}

func TestSetUnset(t *testing.T) {
	var m Bitm
	m.Grow(2)
	m.Set(0)
	m.Set(33)
	m.Set(33)
	if n := m.Rem(); n != 62 {
		t.Fatalf("Bitm.Rem:\nhave %d\nwant 62", n)
	}
	if !m.IsSet(0) || !m.IsSet(33) || m.IsSet(1) {
		t.Fatal("Bitm.IsSet: bad state after Set")
	}
	if idx, ok := m.Search(); !ok || idx != 1 {
		t.Fatalf("Bitm.Search:\nhave %d, %t\nwant 1, true", idx, ok)
	}
	m.Unset(0)
	m.Unset(0)
	if n := m.Rem(); n != 63 {
		t.Fatalf("Bitm.Rem:\nhave %d\nwant 63", n)
	}
	if idx, ok := m.Search(); !ok || idx != 0 {
		t.Fatalf("Bitm.Search:\nhave %d, %t\nwant 0, true", idx, ok)
	}
}

func TestAlloc(t *testing.T) {
	var m Bitm
	for i := 0; i < 100; i++ {
		if idx := m.Alloc(); idx != i {
			t.Fatalf("Bitm.Alloc:\nhave %d\nwant %d", idx, i)
		}
	}
	m.Unset(42)
	if idx := m.Alloc(); idx != 42 {
		t.Fatalf("Bitm.Alloc: reuse\nhave %d\nwant 42", idx)
	}
	if m.Len() < 100 {
		t.Fatalf("Bitm.Len: %d less than allocated count", m.Len())
	}
}
