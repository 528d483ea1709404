// Copyright 2025 The udfcost Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package costmath provides the numerical machinery for fitting
// constrained linear cost models to profile observations.
package costmath

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// gradTol is the relative gradient tolerance that decides when a
// coordinate can no longer reduce the residual.
const gradTol = 1e-10

// NNLS solves the least squares problem
//
//	minimize ‖a·x − b‖₂  subject to  x ≥ 0
//
// using the Lawson-Hanson active set method. The cost decomposition
// requires the non-negativity constraint: a per-row or per-call cost
// below zero has no physical meaning.
func NNLS(a mat.Matrix, b []float64) ([]float64, error) {
	m, n := a.Dims()
	if m == 0 || n == 0 {
		return nil, errors.New("costmath: empty system")
	}
	if len(b) != m {
		return nil, fmt.Errorf("costmath: dimension mismatch: %d rows, %d responses", m, len(b))
	}

	bv := mat.NewVecDense(m, append([]float64(nil), b...))
	x := mat.NewVecDense(n, nil)
	passive := make([]bool, n)

	ax := mat.NewVecDense(m, nil)
	resid := mat.NewVecDense(m, nil)
	w := mat.NewVecDense(n, nil)

	// The gradient at x = 0 sets the scale for the stopping
	// tolerance. If b is orthogonal to the column space this is
	// zero and x = 0 is already optimal.
	w.MulVec(a.T(), bv)
	tol := gradTol * mat.Norm(w, math.Inf(1))

	// Each outer iteration moves one coordinate into the passive
	// (unconstrained) set. Coordinates can be pushed back out by
	// the inner loop, so bound the total work to catch degenerate
	// systems instead of spinning.
	maxIter := 10 * (n + 1)
	for iter := 0; ; iter++ {
		if iter >= maxIter {
			return nil, errors.New("costmath: NNLS failed to converge")
		}

		// Gradient of ½‖a·x − b‖² is −aᵀ(b − a·x); a positive
		// w means growing that coordinate reduces the residual.
		ax.MulVec(a, x)
		resid.SubVec(bv, ax)
		w.MulVec(a.T(), resid)

		j, wMax := -1, tol
		for i := 0; i < n; i++ {
			if !passive[i] && w.AtVec(i) > wMax {
				j, wMax = i, w.AtVec(i)
			}
		}
		if j < 0 {
			// No constrained coordinate wants to grow.
			break
		}
		passive[j] = true

		for inner := 0; ; inner++ {
			if inner > n {
				return nil, errors.New("costmath: NNLS failed to converge")
			}
			z, err := solvePassive(a, bv, passive)
			if err != nil {
				return nil, err
			}

			feasible := true
			for i := 0; i < n; i++ {
				if passive[i] && z[i] <= 0 {
					feasible = false
					break
				}
			}
			if feasible {
				for i := 0; i < n; i++ {
					if passive[i] {
						x.SetVec(i, z[i])
					} else {
						x.SetVec(i, 0)
					}
				}
				break
			}

			// The unconstrained optimum left the feasible
			// region. Back off along the line from x to z
			// until the first coordinate hits zero, then
			// return that coordinate to the active set.
			alpha := math.Inf(1)
			for i := 0; i < n; i++ {
				if passive[i] && z[i] <= 0 {
					if r := x.AtVec(i) / (x.AtVec(i) - z[i]); r < alpha {
						alpha = r
					}
				}
			}
			for i := 0; i < n; i++ {
				if !passive[i] {
					continue
				}
				v := x.AtVec(i) + alpha*(z[i]-x.AtVec(i))
				if z[i] <= 0 && v <= tol {
					v = 0
					passive[i] = false
				}
				x.SetVec(i, v)
			}
		}
	}

	out := make([]float64, n)
	for i := 0; i < n; i++ {
		// Rounding can leave harmless negative dust on active
		// coordinates.
		out[i] = math.Max(0, x.AtVec(i))
	}
	return out, nil
}

// solvePassive solves the unconstrained least squares problem restricted
// to the passive columns of a, returning a full-length solution vector
// with zeros in the active coordinates.
func solvePassive(a mat.Matrix, b *mat.VecDense, passive []bool) ([]float64, error) {
	m, n := a.Dims()
	var cols []int
	for i, p := range passive {
		if p {
			cols = append(cols, i)
		}
	}
	sub := mat.NewDense(m, len(cols), nil)
	for k, c := range cols {
		for i := 0; i < m; i++ {
			sub.Set(i, k, a.At(i, c))
		}
	}

	var sol mat.VecDense
	if err := sol.SolveVec(sub, b); err != nil {
		// A poorly conditioned subproblem still yields a usable
		// solution estimate; anything else is fatal.
		if _, ok := err.(mat.Condition); !ok {
			return nil, fmt.Errorf("costmath: least squares subproblem: %w", err)
		}
	}

	z := make([]float64, n)
	for k, c := range cols {
		z[c] = sol.AtVec(k)
	}
	return z, nil
}
