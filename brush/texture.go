// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package brush

import (
	"cogentcore.org/core/math32"
	"github.com/aquilax/go-perlin"
)

// Texture is a procedural texture sampled per vertex to modulate
// brush strength. Implementations must be safe for concurrent
// sampling: the pipeline calls Sample from many workers at once.
type Texture interface {

	// Sample returns the texture intensity in [0, 1] at the given
	// point in texture space.
	Sample(p math32.Vector3) float32
}

// MapMode determines how a vertex position is mapped into texture
// space before sampling.
type MapMode int32

const (
	// Map3D samples at the vertex world position.
	Map3D MapMode = iota

	// MapTiled samples at the world XY position, ignoring depth.
	MapTiled

	// MapAreaPlane samples in the brush-local plane: the position is
	// projected into the stroke's local frame first, so the texture
	// follows the brush across the surface.
	MapAreaPlane
)

// TextureMapping positions a [Texture] in space.
type TextureMapping struct {

	// Mode selects the coordinate mapping.
	Mode MapMode

	// Offset translates texture space.
	Offset math32.Vector3

	// Size scales texture space per axis. Zero means 1.
	Size math32.Vector3
}

// Map transforms an already mode-mapped point by the offset and size.
func (m *TextureMapping) Map(p math32.Vector3) math32.Vector3 {
	size := m.Size
	if size == (math32.Vector3{}) {
		size = math32.Vec3(1, 1, 1)
	}
	return p.Mul(size).Add(m.Offset)
}

// NoiseTexture is a fractal Perlin noise [Texture].
type NoiseTexture struct {

	// Scale is the spatial frequency of the noise.
	Scale float32

	noise *perlin.Perlin
}

const (
	noiseAlpha   = 2
	noiseBeta    = 2
	noiseOctaves = 3
)

// NewNoiseTexture returns a noise texture with the given spatial
// frequency and seed.
func NewNoiseTexture(scale float32, seed int64) *NoiseTexture {
	return &NoiseTexture{
		Scale: scale,
		noise: perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctaves, seed),
	}
}

// Sample implements [Texture].
func (t *NoiseTexture) Sample(p math32.Vector3) float32 {
	v := t.noise.Noise3D(float64(p.X*t.Scale), float64(p.Y*t.Scale), float64(p.Z*t.Scale))
	return math32.Clamp(0.5+0.5*float32(v), 0, 1)
}

// ConstantTexture is a uniform [Texture], mainly useful for tests and
// for disabling texture variation without unsetting the texture.
type ConstantTexture float32

// Sample implements [Texture].
func (t ConstantTexture) Sample(p math32.Vector3) float32 {
	return math32.Clamp(float32(t), 0, 1)
}
