// Copyright 2025 The udfcost Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package costmath

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// ScaleColumns rescales each column of a to unit standard deviation in
// place and returns the per-column scale factors.
//
// The columns of the cost design matrix span wildly different ranges
// (total rows vs. a constant one), which hurts the conditioning of the
// least squares subproblems. Columns are deliberately not centered:
// centering would destroy the non-negativity structure and the meaning
// of the constant column. Zero-variance columns are left untouched with
// a scale of 1.
//
// A solution ẑ of the scaled system maps back to the original
// coefficients as x[j] = ẑ[j] / scale[j].
func ScaleColumns(a *mat.Dense) []float64 {
	m, n := a.Dims()
	scales := make([]float64, n)
	col := make([]float64, m)
	for j := 0; j < n; j++ {
		mat.Col(col, j, a)
		s := stat.PopStdDev(col, nil)
		if s == 0 {
			s = 1
		}
		scales[j] = s
		for i := 0; i < m; i++ {
			a.Set(i, j, col[i]/s)
		}
	}
	return scales
}
