// Copyright 2025 The udfcost Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package costtab presents cost observations, fitted models and their
// deltas as report tables.
package costtab

import (
	"strconv"

	"github.com/datafusion-contrib/udfcost/costmodel"
	"github.com/datafusion-contrib/udfcost/costunit"
	"github.com/datafusion-contrib/udfcost/proffmt"
)

// A Table is one titled section of the report.
type Table struct {
	// Title is the section title, e.g. "input" or "delta abs".
	Title string

	// Legend is an optional multi-line description printed between
	// the title and the table body.
	Legend string

	// Header holds the column names.
	Header []string

	// Rows holds the data cells, row-major.
	Rows [][]Cell

	// LabelCols is the number of leading label columns; the
	// remaining columns are numeric and rendered right-aligned.
	LabelCols int
}

// A Cell is one table cell in both of its renderings.
type Cell struct {
	// Text is the human-readable form, with digit grouping.
	Text string

	// Raw is the machine-readable form used for CSV output.
	Raw string
}

func strCell(s string) Cell {
	return Cell{s, s}
}

func intCell(v int64) Cell {
	return Cell{costunit.Int(v), strconv.FormatInt(v, 10)}
}

func floatCell(v float64) Cell {
	return Cell{costunit.Float(v), strconv.FormatFloat(v, 'g', -1, 64)}
}

// Input builds the table of raw observations, in input order.
func Input(obs []*proffmt.Observation) *Table {
	t := &Table{
		Title:     "input",
		Header:    []string{"mode", "batchsize", "batches", "cost"},
		LabelCols: 1,
	}
	for _, o := range obs {
		t.Rows = append(t.Rows, []Cell{
			strCell(o.Mode),
			intCell(int64(o.BatchSize)),
			intCell(int64(o.Batches)),
			intCell(o.Cost),
		})
	}
	return t
}

const modelLegend = `y = cost_row * n_rows + cost_call * n_batches + cost_cached

   cost_row: Cost per input row/cell.
  cost_call: Cost per UDF call / record batch.
cost_cached: Cost amortized by calling the UDF multiple times.
      score: How well the linear model fits (0=not, 1=perfect).`

// Models builds the cost model table, one row per mode.
func Models(models []*costmodel.Model) *Table {
	t := &Table{
		Title:     "cost model",
		Legend:    modelLegend,
		Header:    []string{"mode", "cost_row", "cost_call", "cost_cached", "score"},
		LabelCols: 1,
	}
	for _, m := range models {
		t.Rows = append(t.Rows, []Cell{
			strCell(m.Mode),
			intCell(m.CostRow),
			intCell(m.CostCall),
			intCell(m.CostCached),
			floatCell(m.Score),
		})
	}
	return t
}

// Deltas builds the pairwise comparison table for one delta operation.
func Deltas(models []*costmodel.Model, op costmodel.DeltaOp) *Table {
	t := &Table{
		Title:     "delta " + op.Name,
		Legend:    op.Legend,
		Header:    []string{"mode", "baseline", "cost_row", "cost_call", "cost_cached"},
		LabelCols: 2,
	}
	for _, d := range costmodel.Deltas(models, op) {
		num := floatCell
		if op.Integer {
			num = func(v float64) Cell { return intCell(int64(v)) }
		}
		t.Rows = append(t.Rows, []Cell{
			strCell(d.Mode),
			strCell(d.Baseline),
			num(d.CostRow),
			num(d.CostCall),
			num(d.CostCached),
		})
	}
	return t
}
