// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package brush

import (
	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/base/iox/tomlx"
)

// Open loads a brush preset from the given TOML file. Textures are
// not serialized; assign [Brush.Tex] after loading.
func Open(filename string) (*Brush, error) {
	br := New()
	if err := tomlx.Open(br, filename); err != nil {
		return nil, err
	}
	if err := br.Falloff.Update(); err != nil {
		return nil, err
	}
	return br, nil
}

// OpenOrDefault loads a brush preset, falling back to [New] and
// logging the error if the file cannot be read.
func OpenOrDefault(filename string) *Brush {
	br, err := Open(filename)
	if err != nil {
		errors.Log(err)
		return New()
	}
	return br
}

// Save writes the brush as a TOML preset file.
func (br *Brush) Save(filename string) error {
	return tomlx.Save(br, filename)
}
