// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"gviegas/annotation/internal/bitm"
)

// dataEntry is what a dataMap stores.
type dataEntry[T any] struct {
	data T
	id   int
}

// dataMap stores data of type D with identifiers
// of type I.
// Entries are kept packed, so iteration order is
// not insertion order once removals happen.
type dataMap[I ~int, D any] struct {
	ids   []int
	idMap bitm.Bitm
	data  []dataEntry[D]
}

// insert inserts data into m.
// It returns an I value that identifies data in m.
func (m *dataMap[I, D]) insert(data D) I {
	id := m.idMap.Alloc()
	for len(m.ids) < m.idMap.Len() {
		m.ids = append(m.ids, -1)
	}
	m.ids[id] = len(m.data)
	m.data = append(m.data, dataEntry[D]{data, id})
	return I(id)
}

// remove removes the data identified by id.
// It returns the removed data.
// id must belong to m.
func (m *dataMap[I, D]) remove(id I) D {
	d := m.ids[id]
	data := m.data[d]
	last := len(m.data) - 1
	if d < last {
		swap := m.data[last].id
		m.ids[swap] = d
		m.data[d] = m.data[last]
	}
	m.ids[id] = -1
	m.idMap.Unset(int(id))
	m.data[last] = dataEntry[D]{}
	m.data = m.data[:last]
	return data.data
}

// get returns a pointer to the data identified by id.
// id must belong to m.
func (m *dataMap[I, D]) get(id I) *D { return &m.data[m.ids[id]].data }

// len returns the number of entries in m.
func (m *dataMap[_, _]) len() int { return len(m.data) }

// each calls f for every entry in m.
// m must not be changed until each returns.
func (m *dataMap[I, D]) each(f func(I, *D)) {
	for i := range m.data {
		f(I(m.data[i].id), &m.data[i].data)
	}
}
