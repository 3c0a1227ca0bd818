// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sculpt

import (
	"cogentcore.org/core/base/slicesx"
	"cogentcore.org/core/math32"
	"cogentcore.org/sculpt/pbvh"
)

// gatherMeshPositions copies a mesh node's positions out of the
// shared buffer into the given scratch, resizing it to the node's
// vertex count.
func gatherMeshPositions(d *pbvh.MeshData, verts []int, buf *[]math32.Vector3) []math32.Vector3 {
	*buf = slicesx.SetLength(*buf, len(verts))
	for i, v := range verts {
		(*buf)[i] = d.Positions[v]
	}
	return *buf
}

// gatherGridsPositions copies a grids node's cell positions into the
// given scratch, whole grid by whole grid.
func gatherGridsPositions(g *pbvh.GridData, grids []int, buf *[]math32.Vector3) []math32.Vector3 {
	area := g.GridArea()
	*buf = slicesx.SetLength(*buf, len(grids)*area)
	for i, grid := range grids {
		copy((*buf)[i*area:(i+1)*area], g.Positions[grid*area:(grid+1)*area])
	}
	return *buf
}

// gatherBMeshPositions copies a dynamic-topology node's vert
// positions into the given scratch.
func gatherBMeshPositions(verts []*pbvh.Vert, buf *[]math32.Vector3) []math32.Vector3 {
	*buf = slicesx.SetLength(*buf, len(verts))
	for i, v := range verts {
		(*buf)[i] = v.Co
	}
	return *buf
}
