// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sculpt

import (
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"

	"cogentcore.org/core/base/slicesx"
	"cogentcore.org/core/math32"
	"cogentcore.org/sculpt/pbvh"
)

// localData is the per-worker scratch for one node job: one entry per
// vertex in the node being processed. Buffers are resized, not
// reallocated, as the worker moves between nodes, and persist across
// stroke steps. This per-worker ownership is what makes the parallel
// phase lock-free: nodes share no mutable state beyond their disjoint
// slices of the representation's position buffer.
type localData struct {
	positions    []math32.Vector3
	factors      []float32
	distances    []float32
	translations []math32.Vector3
}

// Session holds the transient sculpt state on an [Object]: the
// current stroke snapshot and the worker scratch pool.
type Session struct {

	// Cache is the read-only snapshot for the current stroke step.
	Cache *StrokeCache

	// Workers overrides the parallel worker count; 0 uses GOMAXPROCS.
	// Any count produces bit-identical results.
	Workers int

	scratch []localData
}

// NewSession returns a session with a default stroke cache.
func NewSession() *Session {
	return &Session{Cache: NewStrokeCache()}
}

// forEachNode runs fn for every node index in the mask, fanned out
// over the worker pool at the finest grain (one node at a time, via
// an atomic cursor) because node sizes vary widely and coarser
// batches risk load imbalance. Each worker gets its own lazily
// allocated [localData]. Jobs run to completion without yielding;
// forEachNode returns only after all of them finish.
func (ss *Session) forEachNode(mask pbvh.IndexMask, fn func(i int, tls *localData)) {
	n := ss.Workers
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	n = min(n, len(mask))
	if n <= 0 {
		return
	}
	if len(ss.scratch) < n {
		slog.Debug("sculpt: growing worker scratch pool", "workers", n)
		ss.scratch = slicesx.SetLength(ss.scratch, n)
	}
	if n == 1 {
		for _, i := range mask {
			fn(i, &ss.scratch[0])
		}
		return
	}
	var cursor atomic.Int64
	var wg sync.WaitGroup
	for w := 0; w < n; w++ {
		wg.Add(1)
		go func(tls *localData) {
			defer wg.Done()
			for {
				i := int(cursor.Add(1)) - 1
				if i >= len(mask) {
					return
				}
				fn(mask[i], tls)
			}
		}(&ss.scratch[w])
	}
	wg.Wait()
}
