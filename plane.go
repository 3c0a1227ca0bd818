// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sculpt

import (
	"cogentcore.org/core/math32"
	"cogentcore.org/sculpt/brush"
)

// calcTranslationsToPlane computes, for each vertex, the translation
// that projects it onto the plane: the signed distance to the plane
// along its normal, negated.
func calcTranslationsToPlane(positions []math32.Vector3, pl *math32.Plane, translations []math32.Vector3) {
	for i, p := range positions {
		translations[i] = pl.Norm.MulScalar(-pl.DistanceToPoint(p))
	}
}

// filterPlaneTrimLimitFactors zeroes factors for vertices whose
// translation to the plane exceeds the trim limit. Trimmed vertices
// do not move at all; the limit is a participation cutoff, not a
// magnitude clamp. This is evaluated on the pre-clip translation:
// mirror clipping can only shorten a translation afterwards, so the
// limit holds for the final displacement as well.
func filterPlaneTrimLimitFactors(br *brush.Brush, cache *StrokeCache, translations []math32.Vector3, factors []float32) {
	if !br.Flags.HasAll(brush.PlaneTrim) {
		return
	}
	limit := cache.Radius * br.PlaneTrim
	sq := limit * limit
	for i, t := range translations {
		if t.LengthSquared() > sq {
			factors[i] = 0
		}
	}
}

// scaleTranslations scales each translation by its factor.
func scaleTranslations(translations []math32.Vector3, factors []float32) {
	for i := range translations {
		translations[i].SetMulScalar(factors[i])
	}
}
