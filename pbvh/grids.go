// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pbvh

import "cogentcore.org/core/math32"

// GridData is the control-grid payload of a subdivided surface that a
// grids [Tree] partitions. All grids share one uniform resolution:
// each grid is Size × Size cells, stored flat in row-major order, so
// cell (grid, row, col) lives at grid*Size*Size + row*Size + col in
// every per-cell buffer.
type GridData struct {

	// Size is the number of cells per grid side.
	Size int

	// Positions are the control-cell positions, deformed in place.
	Positions []math32.Vector3

	// Normals are the control-cell normals.
	Normals []math32.Vector3

	// Hide flags hidden cells; may be nil.
	Hide []bool

	// Mask is the paint mask in [0, 1]; may be nil.
	Mask []float32
}

// GridArea returns the number of cells in one grid.
func (g *GridData) GridArea() int { return g.Size * g.Size }

// NumGrids returns the number of grids.
func (g *GridData) NumGrids() int {
	if g.Size == 0 {
		return 0
	}
	return len(g.Positions) / g.GridArea()
}

// Index returns the flat buffer index of cell (grid, row, col).
func (g *GridData) Index(grid, row, col int) int {
	return grid*g.GridArea() + row*g.Size + col
}

// Deform applies one translation per cell of the given grids to the
// position buffer, in the same cell order as a gather.
func (g *GridData) Deform(translations []math32.Vector3, grids []int) {
	area := g.GridArea()
	for i, grid := range grids {
		base := grid * area
		for c := 0; c < area; c++ {
			g.Positions[base+c].SetAdd(translations[i*area+c])
		}
	}
}

// GridsNode is a leaf batch of whole grids of a grids [Tree].
type GridsNode struct {
	grids  []int
	bounds math32.Box3
}

// Grids returns the grid indexes owned by this node.
func (n *GridsNode) Grids() []int { return n.grids }

// Bounds returns the node bounding box as of the last update.
func (n *GridsNode) Bounds() math32.Box3 { return n.bounds }

// UpdateBounds recomputes the node bounding box from the cells of its
// grids, using the grid area of the given data.
func (n *GridsNode) UpdateBounds(g *GridData) {
	area := g.GridArea()
	n.bounds.SetEmpty()
	for _, grid := range n.grids {
		for _, p := range g.Positions[grid*area : (grid+1)*area] {
			n.bounds.ExpandByPoint(p)
		}
	}
}

// NewGridsTree partitions the given grids into leaf nodes of at most
// gridsPerNode whole grids each and computes all bounds.
func NewGridsTree(data *GridData, gridsPerNode int) *Tree {
	if gridsPerNode <= 0 {
		gridsPerNode = 1
	}
	t := &Tree{typ: GridsType}
	n := data.NumGrids()
	for start := 0; start < n; start += gridsPerNode {
		end := min(start+gridsPerNode, n)
		grids := make([]int, end-start)
		for i := range grids {
			grids[i] = start + i
		}
		t.grids = append(t.grids, GridsNode{grids: grids})
	}
	for i := range t.grids {
		t.grids[i].UpdateBounds(data)
	}
	t.buildInner(len(t.grids))
	t.FlushBounds()
	return t
}
