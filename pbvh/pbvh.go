// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pbvh provides the spatial partition tree used by the sculpt
// engine to process a surface in parallel, node by node. A [Tree]
// partitions exactly one of three storage representations: a plain
// mesh ([MeshData]), a set of subdivision control grids ([GridData]),
// or a dynamic-topology vertex set ([Vert]). Leaf nodes own disjoint
// element batches, so parallel writes through different nodes never
// race on the underlying position buffers.
package pbvh

import (
	"slices"

	"cogentcore.org/core/math32"
)

// Type is the storage representation that a [Tree] partitions.
type Type int32

const (
	// MeshType partitions a plain mesh position buffer.
	MeshType Type = iota

	// GridsType partitions subdivision-surface control grids.
	GridsType

	// BMeshType partitions a dynamic-topology vertex set.
	BMeshType
)

// IndexMask identifies a subset of leaf nodes by index. The sculpt
// engine receives one per stroke step, listing the nodes the brush
// touches. Order carries no meaning: processing must produce identical
// results for any permutation.
type IndexMask []int

// treeChild addresses one child of an inner node: either a leaf
// (by leaf index) or another inner node (by inner index).
type treeChild struct {
	index int
	leaf  bool
}

// innerNode is a non-leaf tree node, holding only aggregate bounds.
type innerNode struct {
	bounds math32.Box3
	kids   []treeChild
}

// Tree is the spatial partition over one sculptable surface.
// Exactly one of the three leaf slices is populated, according to
// [Tree.Type]. Leaves are processed in parallel by the sculpt engine;
// inner nodes exist only for bounds aggregation.
type Tree struct {
	typ   Type
	mesh  []MeshNode
	grids []GridsNode
	bmesh []BMeshNode

	// inner nodes in bottom-up construction order: children always
	// precede parents, and the last entry is the root.
	inner []innerNode

	// dirty tags leaves whose positions changed since the last flush,
	// for downstream consumers (render caches etc).
	dirty []bool
}

// Type returns the storage representation this tree partitions.
func (t *Tree) Type() Type { return t.typ }

// Len returns the number of leaf nodes.
func (t *Tree) Len() int {
	switch t.typ {
	case GridsType:
		return len(t.grids)
	case BMeshType:
		return len(t.bmesh)
	}
	return len(t.mesh)
}

// MeshNodes returns the mesh leaf nodes. Callers index into the
// returned slice; node i corresponds to index i in an [IndexMask].
func (t *Tree) MeshNodes() []MeshNode { return t.mesh }

// GridsNodes returns the grids leaf nodes.
func (t *Tree) GridsNodes() []GridsNode { return t.grids }

// BMeshNodes returns the dynamic-topology leaf nodes.
func (t *Tree) BMeshNodes() []BMeshNode { return t.bmesh }

// AllNodes returns an [IndexMask] covering every leaf node.
func (t *Tree) AllNodes() IndexMask {
	mask := make(IndexMask, t.Len())
	for i := range mask {
		mask[i] = i
	}
	return mask
}

// TagPositionsChanged marks the given leaves as having modified
// positions, so downstream consumers can invalidate caches.
func (t *Tree) TagPositionsChanged(mask IndexMask) {
	for _, i := range mask {
		t.dirty[i] = true
	}
}

// PositionsChanged reports whether leaf i has modified positions
// since the last [Tree.ClearPositionsChanged].
func (t *Tree) PositionsChanged(i int) bool { return t.dirty[i] }

// ClearPositionsChanged resets all position-changed tags.
func (t *Tree) ClearPositionsChanged() {
	for i := range t.dirty {
		t.dirty[i] = false
	}
}

// LeafBounds returns the bounding box of leaf node i.
func (t *Tree) LeafBounds(i int) math32.Box3 {
	switch t.typ {
	case GridsType:
		return t.grids[i].bounds
	case BMeshType:
		return t.bmesh[i].bounds
	}
	return t.mesh[i].bounds
}

// Bounds returns the bounding box of the whole tree.
// It is valid after [Tree.FlushBounds].
func (t *Tree) Bounds() math32.Box3 {
	if len(t.inner) == 0 {
		return math32.B3Empty()
	}
	return t.inner[len(t.inner)-1].bounds
}

// FlushBounds propagates leaf bounds up through the inner nodes.
// Leaves update their own bounds during the parallel phase; this is
// the sequential phase that runs after all node jobs complete.
func (t *Tree) FlushBounds() {
	for i := range t.inner {
		in := &t.inner[i]
		in.bounds.SetEmpty()
		for _, c := range in.kids {
			if c.leaf {
				in.bounds.ExpandByBox(t.LeafBounds(c.index))
			} else {
				in.bounds.ExpandByBox(t.inner[c.index].bounds)
			}
		}
	}
}

// buildInner constructs the inner hierarchy over n leaves by pairing
// children level by level, bottom-up.
func (t *Tree) buildInner(n int) {
	t.dirty = make([]bool, n)
	if n == 0 {
		return
	}
	level := make([]treeChild, n)
	for i := range level {
		level[i] = treeChild{index: i, leaf: true}
	}
	for len(level) > 1 || level[0].leaf {
		next := make([]treeChild, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			kids := slices.Clone(level[i:min(i+2, len(level))])
			t.inner = append(t.inner, innerNode{kids: kids})
			next = append(next, treeChild{index: len(t.inner) - 1})
		}
		level = next
	}
}
