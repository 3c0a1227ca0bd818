// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sculpt implements a digital-sculpting brush engine: it
// deforms a surface partitioned by a [pbvh.Tree] by computing a
// per-vertex displacement field from a user stroke and applying it in
// parallel over the touched partition nodes, with identical results
// across the three surface representations (mesh, grids, and dynamic
// topology).
//
// One entry point is provided per brush; [ClayStrips] is the
// plane-projection deformer. All inputs are assumed pre-validated by
// the caller: a valid object whose tree matches its payload, a
// non-nil brush, a node mask referring to existing nodes, a non-zero
// radius, and a unit view normal. These are programming contracts,
// not runtime errors, and are deliberately not re-checked with silent
// clamps here.
package sculpt

import (
	"cogentcore.org/core/math32"
	"cogentcore.org/sculpt/brush"
	"cogentcore.org/sculpt/pbvh"
)

// Settings are the sculpt-mode scene settings shared by all brushes.
type Settings struct {

	// Brush is the active brush.
	Brush *brush.Brush

	// LockX, LockY, LockZ prevent deformation along a world axis.
	LockX, LockY, LockZ bool
}

// axisLocked returns whether the given world axis is locked.
func (sd *Settings) axisLocked(dim math32.Dims) bool {
	switch dim {
	case math32.X:
		return sd.LockX
	case math32.Y:
		return sd.LockY
	}
	return sd.LockZ
}

// Object is one sculptable surface: a partition tree plus the
// representation payload it partitions. Exactly one of Mesh and Grids
// is non-nil, matching the tree type; dynamic-topology verts are
// owned by the tree's nodes directly.
type Object struct {

	// Tree is the spatial partition over the surface.
	Tree *pbvh.Tree

	// Mesh is the mesh payload when Tree is a mesh tree.
	Mesh *pbvh.MeshData

	// Grids is the grids payload when Tree is a grids tree.
	Grids *pbvh.GridData

	// Sculpt is the active sculpt session on this object.
	Sculpt *Session
}
