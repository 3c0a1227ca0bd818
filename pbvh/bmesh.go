// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pbvh

import "cogentcore.org/core/math32"

// Vert is a dynamic-topology vertex. Unlike the mesh and grids
// representations there is no shared flat buffer: verts are owned by
// nodes directly, so topology changes can add and remove them without
// global reindexing.
type Vert struct {

	// Co is the vertex position, deformed in place.
	Co math32.Vector3

	// No is the vertex normal.
	No math32.Vector3

	// Hide flags a hidden vertex.
	Hide bool

	// Mask is the paint mask in [0, 1].
	Mask float32
}

// DeformVerts applies one translation per vert to the vert set.
func DeformVerts(verts []*Vert, translations []math32.Vector3) {
	for i, v := range verts {
		v.Co.SetAdd(translations[i])
	}
}

// BMeshNode is a leaf batch of a dynamic-topology [Tree]. The unique
// vert set is deduplicated against neighbor nodes when nodes are
// built or split, so a vert appears in exactly one node.
type BMeshNode struct {
	verts  []*Vert
	bounds math32.Box3
}

// UniqueVerts returns the verts owned by this node.
func (n *BMeshNode) UniqueVerts() []*Vert { return n.verts }

// Bounds returns the node bounding box as of the last update.
func (n *BMeshNode) Bounds() math32.Box3 { return n.bounds }

// UpdateBounds recomputes the node bounding box directly from its
// (possibly mutated) vert set.
func (n *BMeshNode) UpdateBounds() {
	n.bounds.SetEmpty()
	for _, v := range n.verts {
		n.bounds.ExpandByPoint(v.Co)
	}
}

// NewBMeshTree builds a dynamic-topology tree over the given
// already-deduplicated per-node vert sets and computes all bounds.
func NewBMeshTree(nodeVerts [][]*Vert) *Tree {
	t := &Tree{typ: BMeshType}
	for _, verts := range nodeVerts {
		t.bmesh = append(t.bmesh, BMeshNode{verts: verts})
	}
	for i := range t.bmesh {
		t.bmesh[i].UpdateBounds()
	}
	t.buildInner(len(t.bmesh))
	t.FlushBounds()
	return t
}
