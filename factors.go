// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sculpt

import (
	"cogentcore.org/core/math32"
	"cogentcore.org/sculpt/brush"
	"cogentcore.org/sculpt/pbvh"
)

// The factor pipeline computes one influence weight per vertex in a
// node batch. Stages run in a fixed order; each multiplies or zeroes
// the running factor, so a vertex driven to 0 can never regain
// influence at a later stage.

// fillFactorFromHideAndMaskMesh initializes factors for a mesh node:
// 1 - mask for visible vertices, 0 for hidden ones.
func fillFactorFromHideAndMaskMesh(d *pbvh.MeshData, verts []int, factors []float32) {
	for i, v := range verts {
		switch {
		case d.Hide != nil && d.Hide[v]:
			factors[i] = 0
		case d.Mask != nil:
			factors[i] = 1 - d.Mask[v]
		default:
			factors[i] = 1
		}
	}
}

// fillFactorFromHideAndMaskGrids initializes factors for a grids node.
func fillFactorFromHideAndMaskGrids(g *pbvh.GridData, grids []int, factors []float32) {
	area := g.GridArea()
	for i, grid := range grids {
		for c := 0; c < area; c++ {
			e := grid*area + c
			switch {
			case g.Hide != nil && g.Hide[e]:
				factors[i*area+c] = 0
			case g.Mask != nil:
				factors[i*area+c] = 1 - g.Mask[e]
			default:
				factors[i*area+c] = 1
			}
		}
	}
}

// fillFactorFromHideAndMaskBMesh initializes factors for a
// dynamic-topology node.
func fillFactorFromHideAndMaskBMesh(verts []*pbvh.Vert, factors []float32) {
	for i, v := range verts {
		if v.Hide {
			factors[i] = 0
		} else {
			factors[i] = 1 - v.Mask
		}
	}
}

// filterRegionClipFactors zeroes factors for vertices outside the
// active region-clip half-spaces.
func filterRegionClipFactors(cache *StrokeCache, positions []math32.Vector3, factors []float32) {
	if len(cache.ClipPlanes) == 0 {
		return
	}
	for i, p := range positions {
		if factors[i] == 0 {
			continue
		}
		for _, pl := range cache.ClipPlanes {
			if pl.X*p.X+pl.Y*p.Y+pl.Z*p.Z+pl.W < 0 {
				factors[i] = 0
				break
			}
		}
	}
}

// calcFrontFace scales factors by the positive dot product of the
// vertex normal with the view normal, zeroing back-facing vertices.
func calcFrontFace(viewNormal math32.Vector3, normals []math32.Vector3, factors []float32) {
	for i, n := range normals {
		d := viewNormal.Dot(n)
		if d <= 0 {
			factors[i] = 0
		} else {
			factors[i] *= d
		}
	}
}

// calcFrontFaceIndexed is calcFrontFace reading normals through a
// vertex index list, for the mesh path's shared normal buffer.
func calcFrontFaceIndexed(viewNormal math32.Vector3, normals []math32.Vector3, verts []int, factors []float32) {
	for i, v := range verts {
		d := viewNormal.Dot(normals[v])
		if d <= 0 {
			factors[i] = 0
		} else {
			factors[i] *= d
		}
	}
}

// calcFrontFaceGrids is calcFrontFace reading normals from the flat
// grid buffers of a grids node.
func calcFrontFaceGrids(viewNormal math32.Vector3, g *pbvh.GridData, grids []int, factors []float32) {
	area := g.GridArea()
	for i, grid := range grids {
		for c := 0; c < area; c++ {
			d := viewNormal.Dot(g.Normals[grid*area+c])
			if d <= 0 {
				factors[i*area+c] = 0
			} else {
				factors[i*area+c] *= d
			}
		}
	}
}

// calcFrontFaceBMesh is calcFrontFace over a dynamic-topology vert set.
func calcFrontFaceBMesh(viewNormal math32.Vector3, verts []*pbvh.Vert, factors []float32) {
	for i, v := range verts {
		d := viewNormal.Dot(v.No)
		if d <= 0 {
			factors[i] = 0
		} else {
			factors[i] *= d
		}
	}
}

// calcBrushCubeDistances computes the distance of each vertex into
// the brush-local test cube through the given world-to-brush matrix.
// The cube has falloff in its local XY axes only: the distance is the
// larger of |x| and |y| (Chebyshev, not Euclidean), while Z bounds
// the cube without contributing falloff. Vertices outside the unit
// cube on any axis get an infinite distance.
func calcBrushCubeDistances(mat *math32.Matrix4, positions []math32.Vector3, distances, factors []float32) {
	for i, p := range positions {
		if factors[i] == 0 {
			distances[i] = math32.Infinity
			continue
		}
		l := p.MulMatrix4(mat).Abs()
		if l.X > 1 || l.Y > 1 || l.Z > 1 {
			distances[i] = math32.Infinity
			continue
		}
		distances[i] = math32.Max(l.X, l.Y)
	}
}

// filterDistancesWithRadius zeroes factors for vertices beyond the
// given falloff radius.
func filterDistancesWithRadius(radius float32, distances, factors []float32) {
	for i, d := range distances {
		if d > radius {
			factors[i] = 0
		}
	}
}

// applyHardnessToDistances remaps distances for the given hardness:
// the fraction of the radius below hardness collapses to 0 (full
// strength), and the remainder rescales linearly back to the radius.
func applyHardnessToDistances(radius, hardness float32, distances []float32) {
	if hardness <= 0 {
		return
	}
	for i, d := range distances {
		p := d / radius
		switch {
		case p < hardness:
			distances[i] = 0
		case hardness >= 1:
			distances[i] = radius
		default:
			distances[i] = (p - hardness) / (1 - hardness) * radius
		}
	}
}

// calcCurveFactors multiplies the falloff curve evaluated at each
// distance into the factors.
func calcCurveFactors(curve *brush.Curve, distances []float32, radius float32, factors []float32) {
	for i, d := range distances {
		if factors[i] == 0 {
			continue
		}
		factors[i] *= curve.Strength(d, radius)
	}
}

// calcAutomaskFactors multiplies the external automasking weights
// into the factors, when automasking is active.
func calcAutomaskFactors(am Automasker, positions []math32.Vector3, factors []float32) {
	if am == nil {
		return
	}
	am.Factors(positions, factors)
}

// calcBrushTextureFactors multiplies the brush texture sample at each
// vertex, mapped per the brush's texture mapping mode, into the
// factors. The world-to-brush matrix serves the area-plane mode.
func calcBrushTextureFactors(br *brush.Brush, mat *math32.Matrix4, positions []math32.Vector3, factors []float32) {
	if br.Tex == nil {
		return
	}
	for i, p := range positions {
		if factors[i] == 0 {
			continue
		}
		var q math32.Vector3
		switch br.TexMap.Mode {
		case brush.MapTiled:
			q = math32.Vec3(p.X, p.Y, 0)
		case brush.MapAreaPlane:
			l := p.MulMatrix4(mat)
			q = math32.Vec3(l.X, l.Y, 0)
		default:
			q = p
		}
		factors[i] *= math32.Clamp(br.Tex.Sample(br.TexMap.Map(q)), 0, 1)
	}
}

// scaleFactors scales all factors by the given scalar.
func scaleFactors(factors []float32, scale float32) {
	for i := range factors {
		factors[i] *= scale
	}
}

// filterAbovePlaneFactors zeroes factors for vertices on the normal
// side of the plane, leaving only below-plane vertices active.
func filterAbovePlaneFactors(positions []math32.Vector3, pl *math32.Plane, factors []float32) {
	for i, p := range positions {
		if pl.DistanceToPoint(p) > 0 {
			factors[i] = 0
		}
	}
}

// filterBelowPlaneFactors zeroes factors for vertices below the
// plane, leaving only above-plane vertices active.
func filterBelowPlaneFactors(positions []math32.Vector3, pl *math32.Plane, factors []float32) {
	for i, p := range positions {
		if pl.DistanceToPoint(p) < 0 {
			factors[i] = 0
		}
	}
}
