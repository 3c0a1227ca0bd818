// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pbvh

import "cogentcore.org/core/math32"

// MeshData is the evaluated mesh payload that a mesh [Tree]
// partitions. Positions are shared across all nodes, but each node's
// vertex index list is disjoint, so per-node writes never race.
// Hide and Mask are the per-vertex visibility and paint-mask
// attributes; either may be nil, meaning all-visible / unmasked.
type MeshData struct {

	// Positions are the evaluated vertex positions, deformed in place.
	Positions []math32.Vector3

	// Normals are the evaluated vertex normals.
	Normals []math32.Vector3

	// Hide flags hidden vertices. Hidden vertices never deform.
	Hide []bool

	// Mask is the paint mask in [0, 1]; 1 fully protects a vertex.
	Mask []float32

	// Key is an optional shape-key position buffer that receives the
	// same translations as Positions, keeping key-relative sculpting
	// consistent. May be nil.
	Key []math32.Vector3
}

// Deform applies one translation per vertex in verts to the position
// buffer, writing through to the shape-key buffer when present.
func (d *MeshData) Deform(translations []math32.Vector3, verts []int) {
	for i, v := range verts {
		d.Positions[v].SetAdd(translations[i])
		if d.Key != nil {
			d.Key[v].SetAdd(translations[i])
		}
	}
}

// MeshNode is a leaf batch of vertices of a mesh [Tree], identified
// by indexes into the shared [MeshData] buffers.
type MeshNode struct {
	verts  []int
	bounds math32.Box3
}

// Verts returns the vertex indexes owned by this node.
func (n *MeshNode) Verts() []int { return n.verts }

// Bounds returns the node bounding box as of the last update.
func (n *MeshNode) Bounds() math32.Box3 { return n.bounds }

// UpdateBounds recomputes the node bounding box from its vertex
// subset of the given position buffer.
func (n *MeshNode) UpdateBounds(positions []math32.Vector3) {
	n.bounds.SetEmpty()
	for _, v := range n.verts {
		n.bounds.ExpandByPoint(positions[v])
	}
}

// NewMeshTree partitions the given mesh into leaf nodes of at most
// leafSize vertices each, in index order, and computes all bounds.
func NewMeshTree(data *MeshData, leafSize int) *Tree {
	if leafSize <= 0 {
		leafSize = 1
	}
	t := &Tree{typ: MeshType}
	n := len(data.Positions)
	for start := 0; start < n; start += leafSize {
		end := min(start+leafSize, n)
		verts := make([]int, end-start)
		for i := range verts {
			verts[i] = start + i
		}
		t.mesh = append(t.mesh, MeshNode{verts: verts})
	}
	for i := range t.mesh {
		t.mesh[i].UpdateBounds(data.Positions)
	}
	t.buildInner(len(t.mesh))
	t.FlushBounds()
	return t
}
