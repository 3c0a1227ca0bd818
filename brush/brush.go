// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package brush provides sculpt brush settings: falloff curves,
// procedural textures, and the per-brush configuration consumed by
// the deformation pipeline. A [Brush] is immutable for the duration
// of a stroke step; per-step state such as pressure-adjusted radius
// and strength lives in the stroke cache, not here.
package brush

import "cogentcore.org/core/math32"

// Flags are boolean brush options.
type Flags int64

const (
	// FrontFace limits deformation to vertices facing the viewer.
	FrontFace Flags = 1 << iota

	// OriginalNormal pins the sculpt normal to the one computed at
	// the start of the stroke instead of recomputing it per step.
	OriginalNormal

	// OriginalPlane pins the sculpt plane center to the one computed
	// at the start of the stroke.
	OriginalPlane

	// PlaneTrim caps per-step displacement at PlaneTrim × radius:
	// vertices whose displacement-to-plane exceeds the cap do not
	// move at all.
	PlaneTrim

	// OffsetPressure scales PlaneOffset by the stylus pressure.
	OffsetPressure
)

// HasAll returns whether the flags have all of the given flags set.
func (fl Flags) HasAll(f Flags) bool { return fl&f == f }

// SculptPlane selects the displacement basis for plane-based brushes.
type SculptPlane int32

const (
	// PlaneArea orients the plane along the accumulated area normal.
	PlaneArea SculptPlane = iota

	// PlaneView orients the plane along the view normal.
	PlaneView

	// PlaneX, PlaneY, PlaneZ orient the plane along a world axis.
	PlaneX
	PlaneY
	PlaneZ
)

// Normal returns the fixed plane normal for the axis-aligned modes,
// or (false) for the area and view modes, which are stroke-dependent.
func (sp SculptPlane) Normal() (math32.Vector3, bool) {
	switch sp {
	case PlaneX:
		return math32.Vec3(1, 0, 0), true
	case PlaneY:
		return math32.Vec3(0, 1, 0), true
	case PlaneZ:
		return math32.Vec3(0, 0, 1), true
	}
	return math32.Vector3{}, false
}

// Brush is the per-brush configuration, read-only during a stroke
// step. Zero values are not useful; start from [New].
type Brush struct {

	// Falloff is the spatial falloff curve.
	Falloff Curve

	// Flags are the boolean brush options.
	Flags Flags

	// SculptPlane selects the displacement basis.
	SculptPlane SculptPlane

	// PlaneTrim is the displacement cap as a fraction of the radius,
	// active when the [PlaneTrim] flag is set.
	PlaneTrim float32

	// PlaneOffset displaces the sculpt plane along its normal, as a
	// fraction of the radius.
	PlaneOffset float32

	// TipScaleX scales the brush tip along its local Y axis, making
	// the test volume anisotropic.
	TipScaleX float32

	// TiltStrength scales how much stylus tilt rotates the sculpt
	// plane normal, in [0, 1].
	TiltStrength float32

	// Tex is an optional procedural texture modulating the brush
	// strength per vertex. Not serialized with presets.
	Tex Texture `toml:"-"`

	// TexMap maps vertex positions into texture space for Tex.
	TexMap TextureMapping
}

// New returns a Brush with the default clay-strips configuration.
func New() *Brush {
	return &Brush{
		Falloff:   Curve{Preset: CurveSmooth},
		Flags:     PlaneTrim,
		PlaneTrim: 0.5,
		TipScaleX: 1,
		TexMap:    TextureMapping{Size: math32.Vec3(1, 1, 1)},
	}
}
