// Copyright 2025 The udfcost Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package costmath

import (
	"fmt"
	"sort"

	"github.com/aclements/go-moremath/stats"
)

// Collapse reduces repeated measurements of one deterministic quantity
// to a single value.
//
// Callgrind counts are exact, so measurements of the same invocation
// shape from different dump files should agree bit for bit. Collapse
// returns the most common value and, when the values are not all equal,
// a warning describing the spread. A disagreement usually means dumps
// from different binaries were mixed together.
func Collapse(values []int64) (int64, error) {
	if len(values) == 0 {
		panic("Collapse of empty sample")
	}

	xs := make([]float64, len(values))
	for i, v := range values {
		xs[i] = float64(v)
	}
	sort.Float64s(xs)

	// Find the sample's mode. Ties keep the smallest value.
	val, count := xs[0], 1
	modeVal, modeCount := val, count
	for _, v := range xs[1:] {
		if v == val {
			count++
			if count > modeCount {
				modeVal, modeCount = val, count
			}
		} else {
			val, count = v, 1
		}
	}

	var warn error
	if modeCount != len(xs) {
		s := stats.Sample{Xs: xs, Sorted: true}
		min, max := s.Bounds()
		warn = fmt.Errorf("exact measurement expected, but values range from %v to %v", min, max)
	}
	return int64(modeVal), warn
}
