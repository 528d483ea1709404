// Copyright 2025 The udfcost Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package costmath

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestScaleColumns(t *testing.T) {
	orig := mat.NewDense(4, 2, []float64{
		2, 1,
		4, 1,
		6, 1,
		8, 1,
	})
	a := mat.DenseCopyOf(orig)

	scales := ScaleColumns(a)

	// Population standard deviation of {2,4,6,8} is sqrt(5).
	if want := math.Sqrt(5); math.Abs(scales[0]-want) > 1e-12 {
		t.Errorf("scales[0] = %v, want %v", scales[0], want)
	}
	// The constant column has zero variance and must be left alone.
	if scales[1] != 1 {
		t.Errorf("scales[1] = %v, want 1", scales[1])
	}
	for i := 0; i < 4; i++ {
		if got := a.At(i, 1); got != 1 {
			t.Errorf("a[%d,1] = %v, want 1", i, got)
		}
	}

	// Scaled column times its scale reproduces the original.
	for i := 0; i < 4; i++ {
		if got, want := a.At(i, 0)*scales[0], orig.At(i, 0); math.Abs(got-want) > 1e-12 {
			t.Errorf("a[%d,0]*scale = %v, want %v", i, got, want)
		}
	}
}

func TestCollapse(t *testing.T) {
	tests := []struct {
		values []int64
		want   int64
		warn   bool
	}{
		{[]int64{42}, 42, false},
		{[]int64{7, 7, 7}, 7, false},
		{[]int64{1, 2, 1}, 1, true},
		{[]int64{2, 1, 2, 1, 1}, 1, true},
		// Ties keep the smallest value.
		{[]int64{2, 1, 2, 1}, 1, true},
	}
	for _, test := range tests {
		got, warn := Collapse(test.values)
		if got != test.want {
			t.Errorf("Collapse(%v) = %d, want %d", test.values, got, test.want)
		}
		if (warn != nil) != test.warn {
			t.Errorf("Collapse(%v) warning = %v, want warning: %v", test.values, warn, test.warn)
		}
	}
}
