// Copyright 2025 The udfcost Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package costmodel fits per-mode cost models to profile observations
// and compares them.
//
// The model for one execution mode decomposes the measured cost of a
// run into three non-negative components:
//
//	cost = CostRow*n_rows + CostCall*n_batches + CostCached
//
// where n_rows is the total number of rows across all batches. CostRow
// is the marginal cost of one input row, CostCall the marginal cost of
// one UDF invocation, and CostCached the fixed overhead amortized over
// repeated invocations.
package costmodel

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/datafusion-contrib/udfcost/costmath"
	"github.com/datafusion-contrib/udfcost/proffmt"
)

// A Model is the fitted cost decomposition for one execution mode.
// Models are not mutated after Fit returns them.
type Model struct {
	Mode string

	// CostRow, CostCall and CostCached are the fitted coefficients,
	// truncated toward zero. The fit constrains them to be
	// non-negative.
	CostRow    int64
	CostCall   int64
	CostCached int64

	// Score is the coefficient of determination of the fit:
	// 1 means the linear decomposition explains the measurements
	// perfectly, 0 means it explains nothing.
	Score float64

	// Warnings is a list of warnings about this model that should
	// be reported to the user.
	Warnings []error
}

// Predict returns the modeled cost of invoking the UDF on batches
// batches of batchSize rows each.
func (m *Model) Predict(batchSize, batches int) int64 {
	return m.CostRow*int64(batchSize)*int64(batches) + m.CostCall*int64(batches) + m.CostCached
}

// A cell is one distinct invocation shape within a mode.
type cell struct {
	batchSize, batches int
}

// Fit derives a cost model per execution mode from the observations.
//
// Observations are grouped by mode; repeated measurements of the same
// invocation shape are collapsed first (see costmath.Collapse). The
// returned models are sorted by ascending CostRow, with ties keeping
// lexicographic mode order.
func Fit(obs []*proffmt.Observation) ([]*Model, error) {
	if len(obs) == 0 {
		return nil, errors.New("costmodel: no observations")
	}

	byMode := make(map[string][]*proffmt.Observation)
	var modes []string
	for _, o := range obs {
		if _, ok := byMode[o.Mode]; !ok {
			modes = append(modes, o.Mode)
		}
		byMode[o.Mode] = append(byMode[o.Mode], o)
	}
	sort.Strings(modes)

	models := make([]*Model, 0, len(modes))
	for _, mode := range modes {
		m, err := fitMode(mode, byMode[mode])
		if err != nil {
			return nil, fmt.Errorf("costmodel: fitting %s: %w", mode, err)
		}
		models = append(models, m)
	}

	sort.SliceStable(models, func(i, j int) bool {
		return models[i].CostRow < models[j].CostRow
	})
	return models, nil
}

func fitMode(mode string, obs []*proffmt.Observation) (*Model, error) {
	m := &Model{Mode: mode}

	// Collapse repeated measurements of the same invocation shape.
	costs := make(map[cell][]int64)
	var cells []cell
	for _, o := range obs {
		c := cell{o.BatchSize, o.Batches}
		if _, ok := costs[c]; !ok {
			cells = append(cells, c)
		}
		costs[c] = append(costs[c], o.Cost)
	}

	var x []float64
	var y []float64
	for _, c := range cells {
		v, warn := costmath.Collapse(costs[c])
		if warn != nil {
			m.Warnings = append(m.Warnings, fmt.Errorf("batchsize %d batches %d: %w", c.batchSize, c.batches, warn))
		}
		x = append(x,
			float64(c.batchSize)*float64(c.batches), // total rows
			float64(c.batches),
			1, // constant term as a regular coefficient
		)
		y = append(y, float64(v))
	}
	if len(cells) < 3 {
		m.Warnings = append(m.Warnings, fmt.Errorf("only %d distinct configurations for 3 coefficients; model is underdetermined", len(cells)))
	}

	a := mat.NewDense(len(cells), 3, x)
	scales := costmath.ScaleColumns(a)
	coef, err := costmath.NNLS(a, y)
	if err != nil {
		return nil, err
	}

	// Predictions use the scaled system directly; mapping the
	// coefficients back through the scales afterwards yields the
	// same fitted values.
	est := make([]float64, len(y))
	for i := range est {
		for j, c := range coef {
			est[i] += a.At(i, j) * c
		}
	}
	m.Score = stat.RSquaredFrom(est, y, nil)

	m.CostRow = int64(coef[0] / scales[0])
	m.CostCall = int64(coef[1] / scales[1])
	m.CostCached = int64(coef[2] / scales[2])
	return m, nil
}
