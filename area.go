// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sculpt

import (
	"slices"

	"cogentcore.org/core/math32"
	"cogentcore.org/sculpt/brush"
	"cogentcore.org/sculpt/pbvh"
)

// tiltSensitivity scales stylus tilt into plane-normal rotation.
const tiltSensitivity = 0.7

// forEachVertInNodes calls fn with the position and normal of every
// vertex in the given leaf nodes, in deterministic order.
func forEachVertInNodes(ob *Object, nodes []int, fn func(p, n math32.Vector3)) {
	switch ob.Tree.Type() {
	case pbvh.MeshType:
		mnodes := ob.Tree.MeshNodes()
		for _, i := range nodes {
			for _, v := range mnodes[i].Verts() {
				fn(ob.Mesh.Positions[v], ob.Mesh.Normals[v])
			}
		}
	case pbvh.GridsType:
		gnodes := ob.Tree.GridsNodes()
		area := ob.Grids.GridArea()
		for _, i := range nodes {
			for _, grid := range gnodes[i].Grids() {
				for c := grid * area; c < (grid+1)*area; c++ {
					fn(ob.Grids.Positions[c], ob.Grids.Normals[c])
				}
			}
		}
	case pbvh.BMeshType:
		bnodes := ob.Tree.BMeshNodes()
		for _, i := range nodes {
			for _, v := range bnodes[i].UniqueVerts() {
				fn(v.Co, v.No)
			}
		}
	}
}

// calcAreaCenterAndNormal accumulates the radius-weighted average
// surface position and normal over the touched nodes. The mask is
// iterated in sorted order so that the floating-point accumulation is
// identical for any permutation of the same mask. A zero normal is
// returned when no vertex falls inside the brush radius.
func calcAreaCenterAndNormal(ob *Object, cache *StrokeCache, mask pbvh.IndexMask) (center, normal math32.Vector3) {
	nodes := slices.Clone([]int(mask))
	slices.Sort(nodes)

	var posSum, noSum math32.Vector3
	var wSum float32
	radius := cache.Radius
	rsq := radius * radius
	forEachVertInNodes(ob, nodes, func(p, n math32.Vector3) {
		dsq := p.DistanceToSquared(cache.Location)
		if dsq > rsq {
			return
		}
		w := 1 - math32.Sqrt(dsq)/radius
		posSum.SetAdd(p.MulScalar(w))
		noSum.SetAdd(n.MulScalar(w))
		wSum += w
	})
	if wSum == 0 {
		return cache.Location, math32.Vector3{}
	}
	return posSum.DivScalar(wSum), noSum.Normal()
}

// calcAreaNormal returns the accumulated area normal over the
// touched nodes, or the zero vector when no surface is in range.
func calcAreaNormal(ob *Object, cache *StrokeCache, mask pbvh.IndexMask) math32.Vector3 {
	_, normal := calcAreaCenterAndNormal(ob, cache, mask)
	return normal
}

// calcBrushPlane computes the sculpt plane normal and center for this
// step: the area accumulation, overridden by the brush's sculpt-plane
// mode and by the OriginalNormal/OriginalPlane flags, which pin the
// stroke-start values seeded in the cache. A degenerate area normal
// falls back to the view normal so that the plane stays well-defined.
func calcBrushPlane(br *brush.Brush, ob *Object, cache *StrokeCache, mask pbvh.IndexMask) (normal, center math32.Vector3) {
	center, normal = calcAreaCenterAndNormal(ob, cache, mask)
	if n, ok := br.SculptPlane.Normal(); ok {
		normal = n
	} else if br.SculptPlane == brush.PlaneView {
		normal = cache.ViewNormalSymm
	}
	if normal == (math32.Vector3{}) {
		normal = cache.ViewNormalSymm
	}
	if br.Flags.HasAll(brush.OriginalNormal) {
		normal = cache.InitialNormal
	}
	if br.Flags.HasAll(brush.OriginalPlane) {
		center = cache.InitialCenter
	}
	return normal, center
}

// tiltApplyToNormal rotates the plane normal by the stylus tilt,
// about the view right axis for Y tilt and the view up axis for X
// tilt, scaled by the brush tilt strength.
func tiltApplyToNormal(n math32.Vector3, cache *StrokeCache, strength float32) math32.Vector3 {
	if strength == 0 || (cache.XTilt == 0 && cache.YTilt == 0) {
		return n
	}
	rotMax := math32.Pi / 2 * strength * tiltSensitivity
	n = n.MulQuat(math32.NewQuatAxisAngle(cache.ViewRight, cache.YTilt*rotMax))
	n = n.MulQuat(math32.NewQuatAxisAngle(cache.ViewUp, cache.XTilt*rotMax))
	return n.Normal()
}
