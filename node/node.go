// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package node provides the elements of the scene graph.
//
// Components attach to one another through nodes: a
// component's attachment parent is the component stored
// in its node's immediate ancestor.
package node

// Node represents a single node in a scene graph.
// Nodes have at most one immediate ancestor and
// an arbitrary number of immediate descendants.
type Node struct {
	next *Node
	prev *Node
	sub  *Node

	watch []watcher
	wseq  int

	// Name for the node.
	// It is not used by node code.
	Name string

	// Data is the component that owns the node.
	// It is not used by node code.
	Data any
}

type watcher struct {
	id int
	f  func(*Node)
}

// New creates an initialized node.
func New() *Node { return new(Node).Init() }

// Init initializes node n.
func (n *Node) Init() *Node { return n }

// Insert inserts node sub as immediate descendant
// of node n.
// sub must be either a descendant of n or part of
// an unrelated graph - it must not be an ancestor
// of node n.
// Watchers of sub are notified unless n already was
// its immediate ancestor.
func (n *Node) Insert(sub *Node) {
	old := sub.Parent()
	sub.unlink()
	sub.next = n.sub
	sub.prev = n
	if n.sub != nil {
		n.sub.prev = sub
	}
	n.sub = sub
	if old != n {
		sub.notify()
	}
}

// Remove removes node n from its immediate ancestor.
// Watchers of n are notified if it had one.
func (n *Node) Remove() {
	if n.unlink() {
		n.notify()
	}
}

// unlink removes n from its immediate ancestor
// and reports whether there was one.
func (n *Node) unlink() bool {
	// Note that Node.prev is only nil when the node
	// has no ancestors, since the prev field of the
	// first immediate descendant is set to refer to
	// its immediate ancestor.
	if n.prev == nil {
		return false
	}
	if n.prev.sub == n {
		n.prev.sub = n.next
	} else {
		n.prev.next = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	}
	n.prev = nil
	n.next = nil
	return true
}

// Parent returns the immediate ancestor of n,
// or nil if n has none.
func (n *Node) Parent() *Node {
	nd := n
	for nd.prev != nil {
		if nd.prev.sub == nd {
			return nd.prev
		}
		nd = nd.prev
	}
	return nil
}

// Watch registers f to be called whenever the
// immediate ancestor of n changes.
// f runs synchronously in the goroutine that
// changed the graph.
// It returns a function that unregisters f.
func (n *Node) Watch(f func(*Node)) (cancel func()) {
	n.wseq++
	id := n.wseq
	n.watch = append(n.watch, watcher{id, f})
	return func() {
		for i := range n.watch {
			if n.watch[i].id == id {
				n.watch = append(n.watch[:i], n.watch[i+1:]...)
				return
			}
		}
	}
}

func (n *Node) notify() {
	for _, w := range n.watch {
		w.f(n)
	}
}

// ForEach calls f for each descendant of node n.
// Ancestors are processed first.
// The scene graph must not be changed until this
// method returns.
func (n *Node) ForEach(f func(*Node)) {
	n.Until(func(nd *Node) bool {
		f(nd)
		return true
	})
}

// Until calls f for each descendant of node n.
// Ancestors are processed first. If f returns false,
// Until returns immediately.
// The scene graph must not be changed until this
// method returns.
func (n *Node) Until(f func(*Node) bool) {
	if n.sub == nil {
		return
	}
	que := []*Node{n.sub}
	for len(que) > 0 {
		for nd := que[0]; nd != nil; nd = nd.next {
			if !f(nd) {
				return
			}
			if sub := nd.sub; sub != nil {
				que = append(que, sub)
			}
		}
		que = que[1:]
	}
}

// Children returns the immediate descendants of n.
func (n *Node) Children() (s []*Node) {
	for nd := n.sub; nd != nil; nd = nd.next {
		s = append(s, nd)
	}
	return
}
