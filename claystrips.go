// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sculpt

import (
	"cogentcore.org/core/base/slicesx"
	"cogentcore.org/core/math32"
	"cogentcore.org/sculpt/brush"
	"cogentcore.org/sculpt/pbvh"
)

// Empirical constants tuned against reference strokes. They are fixed
// parts of the brush behavior, not tunables.
const (
	// planeDisplaceBias lifts the deformation plane above the
	// averaged surface, so noise in the area normal cannot make the
	// plane clip through the geometry.
	planeDisplaceBias = 0.18

	// cubeRecenter shifts the test cube below the plane in add mode.
	// Without it, vertices below the plane but outside the cube stay
	// still while their neighbors deform, leaving visible artifacts.
	cubeRecenter = 0.7

	// cubeDepthScale elongates the test cube along its depth axis.
	// The cube has no falloff in Z, so the extra depth catches more
	// vertices during big deformations without changing the surface
	// falloff.
	cubeDepthScale = 1.25
)

// ClayStrips applies one step of the clay-strips brush over the given
// node set: it derives a reference plane from the touched surface,
// then moves the vertices inside the brush's test cube onto the
// plane, weighted by the per-vertex factor pipeline. The cache in
// ob.Sculpt must hold the current step's stroke state. A zero drag
// delta is a defined no-op: no plane can be derived from it.
//
// Node jobs run in parallel; results are identical for any node
// order and worker count, since each node owns a disjoint slice of
// the position storage.
func ClayStrips(sd *Settings, ob *Object, mask pbvh.IndexMask) {
	ss := ob.Sculpt
	cache := ss.Cache
	if cache.GrabDeltaSymm == (math32.Vector3{}) {
		return
	}
	br := sd.Brush

	flip := cache.BStrength < 0
	radius := cache.Radius
	if flip {
		radius = -radius
	}
	offset := br.PlaneOffset
	if br.Flags.HasAll(brush.OffsetPressure) {
		offset *= cache.Pressure
	}
	displace := radius * (planeDisplaceBias + offset)

	planeNormal, areaPos := calcBrushPlane(br, ob, cache, mask)
	planeNormal = tiltApplyToNormal(planeNormal, cache, br.TiltStrength)
	areaPos = areaPos.Add(planeNormal.Mul(cache.Scale).MulScalar(displace))

	var areaNormal math32.Vector3
	if br.SculptPlane != brush.PlaneArea || br.Flags.HasAll(brush.OriginalNormal) {
		areaNormal = calcAreaNormal(ob, cache, mask)
	} else {
		areaNormal = planeNormal
	}

	cubeCenter := areaPos.Add(areaNormal.MulScalar(-radius * cubeRecenter))
	mat := worldToBrushMatrix(areaNormal, cache.GrabDeltaSymm, cubeCenter, cache.Radius, br.TipScaleX)

	var pl math32.Plane
	pl.SetFromNormalAndCoplanarPoint(planeNormal, areaPos)

	strength := math32.Abs(cache.BStrength)

	switch ob.Tree.Type() {
	case pbvh.MeshType:
		nodes := ob.Tree.MeshNodes()
		ss.forEachNode(mask, func(i int, tls *localData) {
			calcMeshNode(sd, cache, br, &mat, &pl, strength, flip, &nodes[i], ob.Mesh, tls)
			nodes[i].UpdateBounds(ob.Mesh.Positions)
		})
	case pbvh.GridsType:
		nodes := ob.Tree.GridsNodes()
		ss.forEachNode(mask, func(i int, tls *localData) {
			calcGridsNode(sd, cache, br, &mat, &pl, strength, flip, &nodes[i], ob.Grids, tls)
			nodes[i].UpdateBounds(ob.Grids)
		})
	case pbvh.BMeshType:
		nodes := ob.Tree.BMeshNodes()
		ss.forEachNode(mask, func(i int, tls *localData) {
			calcBMeshNode(sd, cache, br, &mat, &pl, strength, flip, &nodes[i], tls)
			nodes[i].UpdateBounds()
		})
	}
	ob.Tree.TagPositionsChanged(mask)
	ob.Tree.FlushBounds()
}

// worldToBrushMatrix builds the world-to-brush-local transform: the
// inverse of the frame with X along the stroke direction, Z along the
// area normal, origin at the displaced cube center, scaled per axis
// by the radius with the depth axis elongated. A world point maps to
// per-axis magnitudes <= 1 iff it lies inside the brush test cube.
func worldToBrushMatrix(areaNormal, grabDelta, origin math32.Vector3, radius, tipScaleX float32) math32.Matrix4 {
	x := areaNormal.Cross(grabDelta).Normal()
	y := areaNormal.Cross(x).Normal()
	z := areaNormal.Normal()
	sx := radius
	sy := radius * tipScaleX
	sz := radius * cubeDepthScale
	var m math32.Matrix4
	m[0], m[4], m[8], m[12] = x.X/sx, x.Y/sx, x.Z/sx, -origin.Dot(x)/sx
	m[1], m[5], m[9], m[13] = y.X/sy, y.Y/sy, y.Z/sy, -origin.Dot(y)/sy
	m[2], m[6], m[10], m[14] = z.X/sz, z.Y/sz, z.Z/sz, -origin.Dot(z)/sz
	m[15] = 1
	return m
}

// calcMeshNode runs the shared pipeline for one mesh node: gather
// from the shared position buffer, compute factors and translations,
// scatter back through the deform indirection.
func calcMeshNode(sd *Settings, cache *StrokeCache, br *brush.Brush, mat *math32.Matrix4, pl *math32.Plane, strength float32, flip bool, node *pbvh.MeshNode, mesh *pbvh.MeshData, tls *localData) {
	verts := node.Verts()
	positions := gatherMeshPositions(mesh, verts, &tls.positions)

	tls.factors = slicesx.SetLength(tls.factors, len(verts))
	factors := tls.factors
	fillFactorFromHideAndMaskMesh(mesh, verts, factors)
	filterRegionClipFactors(cache, positions, factors)
	if br.Flags.HasAll(brush.FrontFace) {
		calcFrontFaceIndexed(cache.ViewNormalSymm, mesh.Normals, verts, factors)
	}

	tls.distances = slicesx.SetLength(tls.distances, len(verts))
	distances := tls.distances
	calcBrushCubeDistances(mat, positions, distances, factors)
	filterDistancesWithRadius(1, distances, factors)
	applyHardnessToDistances(1, cache.Hardness, distances)
	calcCurveFactors(&br.Falloff, distances, 1, factors)

	calcAutomaskFactors(cache.Automasking, positions, factors)
	calcBrushTextureFactors(br, mat, positions, factors)

	scaleFactors(factors, strength)

	if flip {
		filterBelowPlaneFactors(positions, pl, factors)
	} else {
		filterAbovePlaneFactors(positions, pl, factors)
	}

	tls.translations = slicesx.SetLength(tls.translations, len(verts))
	translations := tls.translations
	calcTranslationsToPlane(positions, pl, translations)
	filterPlaneTrimLimitFactors(br, cache, translations, factors)
	scaleTranslations(translations, factors)

	clipAndLockTranslations(sd, cache, positions, translations)
	mesh.Deform(translations, verts)
}

// calcGridsNode runs the shared pipeline for one grids node.
func calcGridsNode(sd *Settings, cache *StrokeCache, br *brush.Brush, mat *math32.Matrix4, pl *math32.Plane, strength float32, flip bool, node *pbvh.GridsNode, g *pbvh.GridData, tls *localData) {
	grids := node.Grids()
	positions := gatherGridsPositions(g, grids, &tls.positions)

	tls.factors = slicesx.SetLength(tls.factors, len(positions))
	factors := tls.factors
	fillFactorFromHideAndMaskGrids(g, grids, factors)
	filterRegionClipFactors(cache, positions, factors)
	if br.Flags.HasAll(brush.FrontFace) {
		calcFrontFaceGrids(cache.ViewNormalSymm, g, grids, factors)
	}

	tls.distances = slicesx.SetLength(tls.distances, len(positions))
	distances := tls.distances
	calcBrushCubeDistances(mat, positions, distances, factors)
	filterDistancesWithRadius(1, distances, factors)
	applyHardnessToDistances(1, cache.Hardness, distances)
	calcCurveFactors(&br.Falloff, distances, 1, factors)

	calcAutomaskFactors(cache.Automasking, positions, factors)
	calcBrushTextureFactors(br, mat, positions, factors)

	scaleFactors(factors, strength)

	if flip {
		filterBelowPlaneFactors(positions, pl, factors)
	} else {
		filterAbovePlaneFactors(positions, pl, factors)
	}

	tls.translations = slicesx.SetLength(tls.translations, len(positions))
	translations := tls.translations
	calcTranslationsToPlane(positions, pl, translations)
	filterPlaneTrimLimitFactors(br, cache, translations, factors)
	scaleTranslations(translations, factors)

	clipAndLockTranslations(sd, cache, positions, translations)
	g.Deform(translations, grids)
}

// calcBMeshNode runs the shared pipeline for one dynamic-topology
// node over its unique vert set.
func calcBMeshNode(sd *Settings, cache *StrokeCache, br *brush.Brush, mat *math32.Matrix4, pl *math32.Plane, strength float32, flip bool, node *pbvh.BMeshNode, tls *localData) {
	verts := node.UniqueVerts()
	positions := gatherBMeshPositions(verts, &tls.positions)

	tls.factors = slicesx.SetLength(tls.factors, len(verts))
	factors := tls.factors
	fillFactorFromHideAndMaskBMesh(verts, factors)
	filterRegionClipFactors(cache, positions, factors)
	if br.Flags.HasAll(brush.FrontFace) {
		calcFrontFaceBMesh(cache.ViewNormalSymm, verts, factors)
	}

	tls.distances = slicesx.SetLength(tls.distances, len(verts))
	distances := tls.distances
	calcBrushCubeDistances(mat, positions, distances, factors)
	filterDistancesWithRadius(1, distances, factors)
	applyHardnessToDistances(1, cache.Hardness, distances)
	calcCurveFactors(&br.Falloff, distances, 1, factors)

	calcAutomaskFactors(cache.Automasking, positions, factors)
	calcBrushTextureFactors(br, mat, positions, factors)

	scaleFactors(factors, strength)

	if flip {
		filterBelowPlaneFactors(positions, pl, factors)
	} else {
		filterAbovePlaneFactors(positions, pl, factors)
	}

	tls.translations = slicesx.SetLength(tls.translations, len(verts))
	translations := tls.translations
	calcTranslationsToPlane(positions, pl, translations)
	filterPlaneTrimLimitFactors(br, cache, translations, factors)
	scaleTranslations(translations, factors)

	clipAndLockTranslations(sd, cache, positions, translations)
	pbvh.DeformVerts(verts, translations)
}
