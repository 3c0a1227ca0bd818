// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sculpt

import (
	"math/rand"
	"slices"
	"testing"

	"cogentcore.org/core/base/tolassert"
	"cogentcore.org/core/math32"
	"cogentcore.org/sculpt/brush"
	"cogentcore.org/sculpt/pbvh"
	"github.com/stretchr/testify/assert"
)

// flatMesh returns an n×n vertex grid in the z=height plane, spacing
// 1, centered on the origin, with +Z normals.
func flatMesh(n int, height float32) *pbvh.MeshData {
	d := &pbvh.MeshData{}
	half := float32(n-1) / 2
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			d.Positions = append(d.Positions, math32.Vec3(float32(c)-half, float32(r)-half, height))
			d.Normals = append(d.Normals, math32.Vec3(0, 0, 1))
		}
	}
	return d
}

func flatObject(n int, height float32, leafSize int) *Object {
	d := flatMesh(n, height)
	return &Object{Tree: pbvh.NewMeshTree(d, leafSize), Mesh: d, Sculpt: NewSession()}
}

// vertAt returns the index of the vertex at (x, y) in a flatMesh(n).
func vertAt(n int, x, y float32) int {
	half := float32(n-1) / 2
	return int(y+half)*n + int(x+half)
}

// testCache seeds the stroke state for a downward-looking stroke
// dragging along +X at the origin.
func testCache(ss *Session, radius, strength float32) *StrokeCache {
	cache := ss.Cache
	cache.Location = math32.Vector3{}
	cache.GrabDeltaSymm = math32.Vec3(1, 0, 0)
	cache.ViewNormalSymm = math32.Vec3(0, 0, 1)
	cache.ViewRight = math32.Vec3(1, 0, 0)
	cache.ViewUp = math32.Vec3(0, 1, 0)
	cache.Radius = radius
	cache.BStrength = strength
	cache.Pressure = 1
	return cache
}

func TestClayStripsFlatSurface(t *testing.T) {
	sd := &Settings{Brush: brush.New()}
	ob := flatObject(21, 0, 32)
	testCache(ob.Sculpt, 5, 1)
	ClayStrips(sd, ob, ob.Tree.AllNodes())

	// the deformation plane sits 0.18 × radius above the surface; the
	// fully weighted center vertex lands exactly on it
	const plane = 0.9
	center := ob.Mesh.Positions[vertAt(21, 0, 0)]
	tolassert.EqualTol(t, plane, center.Z, 1e-3)

	orig := flatMesh(21, 0).Positions
	for i, p := range ob.Mesh.Positions {
		assert.GreaterOrEqual(t, p.Z, float32(0), "vertex %d", i)
		assert.LessOrEqual(t, p.Z, float32(plane+1e-3), "vertex %d", i)
		// only z moves: translations run along the plane normal
		assert.Equal(t, orig[i].X, p.X)
	}

	// falloff: influence decreases away from the stroke center
	prev := center.Z
	for x := float32(1); x <= 4; x++ {
		z := ob.Mesh.Positions[vertAt(21, x, 0)].Z
		assert.LessOrEqual(t, z, prev, "x=%v", x)
		prev = z
	}

	// beyond the brush cube nothing moves
	assert.Equal(t, float32(0), ob.Mesh.Positions[vertAt(21, 6, 0)].Z)
	assert.Equal(t, float32(0), ob.Mesh.Positions[vertAt(21, 10, 10)].Z)

	// touched leaves are tagged for downstream cache invalidation
	assert.True(t, ob.Tree.PositionsChanged(0))
	// and the tree bounds now include the raised strip
	tolassert.EqualTol(t, plane, ob.Tree.Bounds().Max.Z, 1e-3)
}

func TestClayStripsSmallGrid(t *testing.T) {
	sd := &Settings{Brush: brush.New()}
	ob := flatObject(10, 0, 16)
	testCache(ob.Sculpt, 5, 1)
	ClayStrips(sd, ob, ob.Tree.AllNodes())

	// every vertex of the small grid is inside the brush cube, so each
	// moves toward the plane at z = 0.9 by the falloff curve evaluated
	// at its cube (Chebyshev) distance
	orig := flatMesh(10, 0).Positions
	for i, p := range ob.Mesh.Positions {
		d := math32.Max(math32.Abs(orig[i].X), math32.Abs(orig[i].Y)) / 5
		want := 0.9 * sd.Brush.Falloff.Strength(d, 1)
		tolassert.EqualTol(t, want, p.Z, 1e-3)
	}
}

func TestClayStripsDeterministic(t *testing.T) {
	run := func(workers int, mask pbvh.IndexMask) []math32.Vector3 {
		sd := &Settings{Brush: brush.New()}
		ob := flatObject(21, 0, 16)
		ob.Sculpt.Workers = workers
		testCache(ob.Sculpt, 5, 1)
		ClayStrips(sd, ob, mask)
		return ob.Mesh.Positions
	}

	base := flatObject(21, 0, 16)
	mask := base.Tree.AllNodes()
	want := run(1, mask)

	shuffled := slices.Clone(mask)
	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 3; trial++ {
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		for _, workers := range []int{1, 4, 16} {
			assert.Equal(t, want, run(workers, shuffled),
				"trial %d workers %d", trial, workers)
		}
	}
}

func TestClayStripsNoOps(t *testing.T) {
	orig := flatMesh(21, 0).Positions

	// zero drag delta: no plane can be derived, nothing moves
	sd := &Settings{Brush: brush.New()}
	ob := flatObject(21, 0, 32)
	cache := testCache(ob.Sculpt, 5, 1)
	cache.GrabDeltaSymm = math32.Vector3{}
	ClayStrips(sd, ob, ob.Tree.AllNodes())
	assert.Equal(t, orig, ob.Mesh.Positions)
	assert.False(t, ob.Tree.PositionsChanged(0))

	// zero strength
	ob = flatObject(21, 0, 32)
	testCache(ob.Sculpt, 5, 0)
	ClayStrips(sd, ob, ob.Tree.AllNodes())
	assert.Equal(t, orig, ob.Mesh.Positions)

	// empty node mask
	ob = flatObject(21, 0, 32)
	testCache(ob.Sculpt, 5, 1)
	ClayStrips(sd, ob, pbvh.IndexMask{})
	assert.Equal(t, orig, ob.Mesh.Positions)
}

func TestClayStripsMask(t *testing.T) {
	sd := &Settings{Brush: brush.New()}

	free := flatObject(21, 0, 32)
	testCache(free.Sculpt, 5, 1)
	ClayStrips(sd, free, free.Tree.AllNodes())

	half := flatObject(21, 0, 32)
	half.Mesh.Mask = make([]float32, len(half.Mesh.Positions))
	for i := range half.Mesh.Mask {
		half.Mesh.Mask[i] = 0.5
	}
	testCache(half.Sculpt, 5, 1)
	ClayStrips(sd, half, half.Tree.AllNodes())

	// a uniform 0.5 mask halves every displacement
	for i := range free.Mesh.Positions {
		tolassert.EqualTol(t, free.Mesh.Positions[i].Z/2, half.Mesh.Positions[i].Z, 1e-5)
	}

	// a full mask protects completely
	full := flatObject(21, 0, 32)
	full.Mesh.Mask = make([]float32, len(full.Mesh.Positions))
	for i := range full.Mesh.Mask {
		full.Mesh.Mask[i] = 1
	}
	testCache(full.Sculpt, 5, 1)
	ClayStrips(sd, full, full.Tree.AllNodes())
	assert.Equal(t, flatMesh(21, 0).Positions, full.Mesh.Positions)
}

func TestClayStripsMaskSubset(t *testing.T) {
	sd := &Settings{Brush: brush.New()}
	orig := flatMesh(21, 0).Positions

	run := func(masked []int) []math32.Vector3 {
		ob := flatObject(21, 0, 32)
		ob.Mesh.Mask = make([]float32, len(ob.Mesh.Positions))
		for _, v := range masked {
			ob.Mesh.Mask[v] = 1
		}
		testCache(ob.Sculpt, 5, 1)
		ClayStrips(sd, ob, ob.Tree.AllNodes())
		return ob.Mesh.Positions
	}

	maskedA := []int{vertAt(21, 1, 0), vertAt(21, 2, 0)}
	maskedB := append(slices.Clone(maskedA), vertAt(21, 0, 0), vertAt(21, 0, 1))
	a := run(maskedA)
	b := run(maskedB)

	// masking additional vertices only shrinks the set that moves
	for i := range a {
		if b[i] != orig[i] {
			assert.NotEqual(t, orig[i], a[i], "vertex %d", i)
		}
	}
	for _, v := range maskedB {
		assert.Equal(t, orig[v], b[v])
	}
}

func TestClayStripsHidden(t *testing.T) {
	sd := &Settings{Brush: brush.New()}
	ob := flatObject(21, 0, 32)
	hidden := vertAt(21, 0, 0)
	ob.Mesh.Hide = make([]bool, len(ob.Mesh.Positions))
	ob.Mesh.Hide[hidden] = true
	testCache(ob.Sculpt, 5, 1)
	ClayStrips(sd, ob, ob.Tree.AllNodes())

	assert.Equal(t, float32(0), ob.Mesh.Positions[hidden].Z)
	// neighbors still deform
	assert.Greater(t, ob.Mesh.Positions[vertAt(21, 1, 0)].Z, float32(0))
}

func TestClayStripsPlaneTrim(t *testing.T) {
	sd := &Settings{Brush: brush.New()}
	// the required displacement to the plane (0.18 × radius = 0.9)
	// exceeds the trim limit (0.05 × radius = 0.25) everywhere, so the
	// whole stroke is trimmed away
	sd.Brush.PlaneTrim = 0.05
	ob := flatObject(21, 0, 32)
	testCache(ob.Sculpt, 5, 1)
	ClayStrips(sd, ob, ob.Tree.AllNodes())
	assert.Equal(t, flatMesh(21, 0).Positions, ob.Mesh.Positions)
}

func TestClayStripsAxisLock(t *testing.T) {
	sd := &Settings{Brush: brush.New(), LockZ: true}
	ob := flatObject(21, 0, 32)
	testCache(ob.Sculpt, 5, 1)
	ClayStrips(sd, ob, ob.Tree.AllNodes())
	// all translations run along +Z here, so locking Z freezes the
	// surface entirely
	assert.Equal(t, flatMesh(21, 0).Positions, ob.Mesh.Positions)
}

func TestClayStripsSubtract(t *testing.T) {
	sd := &Settings{Brush: brush.New()}
	ob := flatObject(21, 0, 32)
	testCache(ob.Sculpt, 5, -1)
	ClayStrips(sd, ob, ob.Tree.AllNodes())

	// negative strength carves: the plane sits below the surface
	tolassert.EqualTol(t, -0.9, ob.Mesh.Positions[vertAt(21, 0, 0)].Z, 1e-3)
	for _, p := range ob.Mesh.Positions {
		assert.LessOrEqual(t, p.Z, float32(0))
	}
}

func TestClayStripsMirrorClip(t *testing.T) {
	sd := &Settings{Brush: brush.New()}
	ob := flatObject(21, 0.2, 32)
	cache := testCache(ob.Sculpt, 5, -1)
	cache.MirrorClip[2] = true
	ClayStrips(sd, ob, ob.Tree.AllNodes())

	// carving from z=0.2 wants to land at z=-0.7, but the mirror plane
	// stops every vertex exactly at z=0
	assert.Equal(t, float32(0), ob.Mesh.Positions[vertAt(21, 0, 0)].Z)
	for i, p := range ob.Mesh.Positions {
		assert.GreaterOrEqual(t, p.Z, float32(0), "vertex %d", i)
	}
}

func TestClayStripsFrontFaceOnly(t *testing.T) {
	sd := &Settings{Brush: brush.New()}
	sd.Brush.Flags |= brush.FrontFace
	ob := flatObject(21, 0, 32)
	// flip the surface away from the viewer
	for i := range ob.Mesh.Normals {
		ob.Mesh.Normals[i] = math32.Vec3(0, 0, -1)
	}
	cache := testCache(ob.Sculpt, 5, 1)
	// pin the plane orientation: the area normal now points along -Z
	cache.InitialNormal = math32.Vec3(0, 0, 1)
	sd.Brush.Flags |= brush.OriginalNormal
	ClayStrips(sd, ob, ob.Tree.AllNodes())
	assert.Equal(t, flatMesh(21, 0).Positions, ob.Mesh.Positions)
}

func TestClayStripsHardness(t *testing.T) {
	run := func(hardness float32) []math32.Vector3 {
		sd := &Settings{Brush: brush.New()}
		ob := flatObject(21, 0, 32)
		cache := testCache(ob.Sculpt, 5, 1)
		cache.Hardness = hardness
		ClayStrips(sd, ob, ob.Tree.AllNodes())
		return ob.Mesh.Positions
	}
	soft := run(0)
	hard := run(0.8)
	// hardness pulls mid-falloff vertices to full strength
	mid := vertAt(21, 3, 0)
	assert.Greater(t, hard[mid].Z, soft[mid].Z)
	tolassert.EqualTol(t, 0.9, hard[mid].Z, 1e-3)
}

func TestClayStripsTexture(t *testing.T) {
	run := func(tex brush.Texture) []math32.Vector3 {
		sd := &Settings{Brush: brush.New()}
		sd.Brush.Tex = tex
		ob := flatObject(21, 0, 32)
		testCache(ob.Sculpt, 5, 1)
		ClayStrips(sd, ob, ob.Tree.AllNodes())
		return ob.Mesh.Positions
	}
	plain := run(nil)
	halved := run(brush.ConstantTexture(0.5))
	for i := range plain {
		tolassert.EqualTol(t, plain[i].Z/2, halved[i].Z, 1e-5)
	}
}

func TestClayStripsAutomask(t *testing.T) {
	sd := &Settings{Brush: brush.New()}
	ob := flatObject(21, 0, 32)
	cache := testCache(ob.Sculpt, 5, 1)
	// protect the y > 0 half of the surface
	cache.Automasking = AutomaskFunc(func(positions []math32.Vector3, factors []float32) {
		for i, p := range positions {
			if p.Y > 0 {
				factors[i] = 0
			}
		}
	})
	ClayStrips(sd, ob, ob.Tree.AllNodes())
	assert.Equal(t, float32(0), ob.Mesh.Positions[vertAt(21, 0, 2)].Z)
	assert.Greater(t, ob.Mesh.Positions[vertAt(21, 0, -2)].Z, float32(0))
}

// flatGrids and flatBMesh mirror flatMesh for the other two
// representations, with the same vertex layout and order.
func flatGrids(n int, height float32) *pbvh.GridData {
	m := flatMesh(n, height)
	return &pbvh.GridData{Size: n, Positions: m.Positions, Normals: m.Normals}
}

func flatBMesh(n int, height float32) []*pbvh.Vert {
	m := flatMesh(n, height)
	verts := make([]*pbvh.Vert, len(m.Positions))
	for i := range verts {
		verts[i] = &pbvh.Vert{Co: m.Positions[i], No: m.Normals[i]}
	}
	return verts
}

func TestClayStripsRepresentations(t *testing.T) {
	sd := &Settings{Brush: brush.New()}

	mesh := flatObject(9, 0, len(flatMesh(9, 0).Positions))
	testCache(mesh.Sculpt, 5, 1)
	ClayStrips(sd, mesh, mesh.Tree.AllNodes())

	g := flatGrids(9, 0)
	grids := &Object{Tree: pbvh.NewGridsTree(g, 1), Grids: g, Sculpt: NewSession()}
	testCache(grids.Sculpt, 5, 1)
	ClayStrips(sd, grids, grids.Tree.AllNodes())

	verts := flatBMesh(9, 0)
	bm := &Object{Tree: pbvh.NewBMeshTree([][]*pbvh.Vert{verts}), Sculpt: NewSession()}
	testCache(bm.Sculpt, 5, 1)
	ClayStrips(sd, bm, bm.Tree.AllNodes())

	// the same surface deforms the same way in all three storages
	for i := range mesh.Mesh.Positions {
		tolassert.EqualTol(t, mesh.Mesh.Positions[i].Z, g.Positions[i].Z, 1e-5)
		tolassert.EqualTol(t, mesh.Mesh.Positions[i].Z, verts[i].Co.Z, 1e-5)
	}
	assert.Greater(t, verts[len(verts)/2].Co.Z, float32(0))
}
