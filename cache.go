// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sculpt

import "cogentcore.org/core/math32"

// StrokeCache is the per-step stroke state, rebuilt by the input
// handler before each step and strictly read-only while node jobs
// run, so no job can observe a mutation mid-step. Vectors suffixed
// Symm are already mirrored for the active symmetry pass.
type StrokeCache struct {

	// Location is the brush center for this step, mirrored.
	Location math32.Vector3

	// GrabDeltaSymm is the mirrored stroke drag delta. A zero delta
	// makes the step a defined no-op: no plane can be derived.
	GrabDeltaSymm math32.Vector3

	// ViewNormalSymm is the mirrored view normal.
	ViewNormalSymm math32.Vector3

	// BStrength is the signed brush strength; the sign selects add
	// versus subtract mode.
	BStrength float32

	// Radius is the brush radius in object space.
	Radius float32

	// Scale is the object scale, applied to plane displacement.
	Scale math32.Vector3

	// Hardness in [0, 1] compresses falloff distances toward the
	// center, steepening the falloff; 0 leaves them unchanged.
	Hardness float32

	// Pressure is the stylus pressure in [0, 1].
	Pressure float32

	// XTilt and YTilt are the stylus tilt in [-1, 1].
	XTilt, YTilt float32

	// ViewRight and ViewUp are the view-space right and up axes in
	// object space, used to apply tilt.
	ViewRight, ViewUp math32.Vector3

	// InitialNormal and InitialCenter are the sculpt normal and plane
	// center computed at stroke start, used by the OriginalNormal and
	// OriginalPlane brush flags.
	InitialNormal, InitialCenter math32.Vector3

	// Automasking is an optional externally computed protection
	// weight; see [Automasker].
	Automasking Automasker

	// ClipPlanes are optional region-clip half-spaces (normal, offset):
	// vertices outside any of them do not deform.
	ClipPlanes []math32.Vector4

	// MirrorClip enables mirror clipping per world axis.
	MirrorClip [3]bool

	// ClipTolerance is the per-axis distance within which positions
	// snap onto the mirror plane.
	ClipTolerance [3]float32
}

// NewStrokeCache returns a cache with unit object scale.
func NewStrokeCache() *StrokeCache {
	return &StrokeCache{Scale: math32.Vec3(1, 1, 1)}
}

// Automasker is an externally computed per-vertex protection weight
// (from cavity, topology distance, or a paint mask) in [0, 1],
// multiplied into the brush factor. Implementations receive the
// gathered positions for one node batch and must be safe for
// concurrent calls from multiple node jobs.
type Automasker interface {

	// Factors multiplies the automasking weight of each vertex into
	// the corresponding factor.
	Factors(positions []math32.Vector3, factors []float32)
}

// AutomaskFunc adapts a function to the [Automasker] interface.
type AutomaskFunc func(positions []math32.Vector3, factors []float32)

// Factors implements [Automasker].
func (f AutomaskFunc) Factors(positions []math32.Vector3, factors []float32) {
	f(positions, factors)
}
