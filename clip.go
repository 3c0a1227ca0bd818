// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sculpt

import "cogentcore.org/core/math32"

// clipAndLockTranslations finalizes translations against the user
// clipping constraints, per world axis independently: a locked axis
// zeroes that translation component, and a mirror-clipped axis keeps
// vertices from leaving or crossing the mirror plane. This is the
// single point enforcing that a symmetric stroke cannot be pushed
// through the mirror plane.
func clipAndLockTranslations(sd *Settings, cache *StrokeCache, positions, translations []math32.Vector3) {
	for axis := 0; axis < 3; axis++ {
		dim := math32.Dims(axis)
		if sd.axisLocked(dim) {
			for i := range translations {
				translations[i].SetDim(dim, 0)
			}
			continue
		}
		if !cache.MirrorClip[axis] {
			continue
		}
		tol := cache.ClipTolerance[axis]
		for i := range translations {
			p := positions[i].Dim(dim)
			q := p + translations[i].Dim(dim)
			// vertices within tolerance of the mirror plane stay
			// glued to it, and no vertex may cross it: either way
			// the result lands exactly on the plane.
			if math32.Abs(p) <= tol || math32.Abs(q) <= tol || (p > 0) != (q > 0) {
				translations[i].SetDim(dim, -p)
			}
		}
	}
}
