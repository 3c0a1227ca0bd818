// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package brush

import (
	"fmt"

	"cogentcore.org/core/math32"
	"gonum.org/v1/gonum/interp"
)

// CurvePreset selects the shape of the brush falloff curve.
type CurvePreset int32

const (
	// CurveCustom evaluates a user-defined spline; see [Curve.SetPoints].
	CurveCustom CurvePreset = iota
	CurveSmooth
	CurveSphere
	CurveRoot
	CurveSharp
	CurveLinear
	CurvePow4
	CurveInvSquare
	CurveConstant
	CurveSmoother
)

// Curve is a brush falloff curve: it maps a distance within the brush
// radius to a strength in [0, 1], reaching 0 at the radius. For the
// Custom preset, call [Curve.SetPoints] (or [Curve.Update] after
// assigning Points directly) before use; evaluation itself is
// read-only and safe for concurrent use.
type Curve struct {

	// Preset is the curve shape.
	Preset CurvePreset

	// Points are the custom control points, x strictly increasing in
	// [0, 1], where x is the distance fraction and y the strength.
	// Used only by the Custom preset.
	Points []math32.Vector2

	// spline is the fitted predictor over Points.
	spline *interp.FritschButland
}

// SetPoints sets the custom control points, switches the preset to
// Custom, and fits the spline.
func (c *Curve) SetPoints(points ...math32.Vector2) error {
	c.Preset = CurveCustom
	c.Points = points
	return c.Update()
}

// Update (re)fits the custom spline from the current Points. It must
// be called before evaluating a Custom curve whose Points were
// assigned directly, and is a no-op for the other presets.
func (c *Curve) Update() error {
	if c.Preset != CurveCustom {
		return nil
	}
	if len(c.Points) < 2 {
		return fmt.Errorf("brush.Curve: custom curve needs at least 2 control points, got %d", len(c.Points))
	}
	xs := make([]float64, len(c.Points))
	ys := make([]float64, len(c.Points))
	for i, p := range c.Points {
		xs[i] = float64(p.X)
		ys[i] = float64(p.Y)
	}
	fb := &interp.FritschButland{}
	if err := fb.Fit(xs, ys); err != nil {
		return err
	}
	c.spline = fb
	return nil
}

// Strength evaluates the curve for a vertex at the given distance
// from the brush center, for the given radius. Distances at or beyond
// the radius yield 0. The preset shapes evaluate on the inverted
// fraction (1 at the center), while the custom spline is sampled on
// the distance fraction directly, matching how users draw it.
func (c *Curve) Strength(dist, radius float32) float32 {
	if dist >= radius {
		return 0
	}
	p := dist / radius
	x := 1 - p
	switch c.Preset {
	case CurveCustom:
		return c.evalSpline(p)
	case CurveSmooth:
		return 3*x*x - 2*x*x*x
	case CurveSmoother:
		return x * x * x * (x*(x*6-15) + 10)
	case CurveSphere:
		return math32.Sqrt(2*x - x*x)
	case CurveRoot:
		return math32.Sqrt(x)
	case CurveSharp:
		return x * x
	case CurveLinear:
		return x
	case CurvePow4:
		return x * x * x * x
	case CurveInvSquare:
		return x * (2 - x)
	case CurveConstant:
		return 1
	}
	return x
}

// evalSpline samples the fitted custom spline, clamping the input to
// the fitted range and the output to [0, 1]. An unfitted custom curve
// degrades to linear falloff.
func (c *Curve) evalSpline(p float32) float32 {
	if c.spline == nil {
		return 1 - p
	}
	x := math32.Clamp(p, c.Points[0].X, c.Points[len(c.Points)-1].X)
	return math32.Clamp(float32(c.spline.Predict(float64(x))), 0, 1)
}
