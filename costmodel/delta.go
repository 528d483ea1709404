// Copyright 2025 The udfcost Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package costmodel

// A DeltaOp transforms one coefficient pair (x from the baseline model,
// y from the more expensive model) into a comparison value.
type DeltaOp struct {
	// Name is the short name of the operation, used as table title
	// suffix in reports.
	Name string

	// Legend describes the transform.
	Legend string

	// F computes the comparison value.
	F func(x, y int64) float64

	// Integer reports whether F yields integer values, so reports
	// can format them without a fraction.
	Integer bool
}

// The delta operations reported by the tool. Abs gives the raw
// coefficient difference, Rel1 the relative growth and Rel2 the ratio;
// the relative forms guard against zero baselines by dividing by at
// least 1.
var (
	Abs = DeltaOp{
		Name:    "abs",
		Legend:  "delta = y - x",
		F:       func(x, y int64) float64 { return float64(y - x) },
		Integer: true,
	}
	Rel1 = DeltaOp{
		Name:   "rel1",
		Legend: "delta = (y - x) / max(x, 1)",
		F:      func(x, y int64) float64 { return (float64(y) - float64(x)) / clamp1(x) },
	}
	Rel2 = DeltaOp{
		Name:   "rel2",
		Legend: "delta = y / max(x, 1)",
		F:      func(x, y int64) float64 { return float64(y) / clamp1(x) },
	}
)

func clamp1(x int64) float64 {
	if x < 1 {
		return 1
	}
	return float64(x)
}

// A Delta compares two cost models coefficient by coefficient. The
// baseline is the model with the strictly lower per-row cost.
type Delta struct {
	Mode     string
	Baseline string

	CostRow    float64
	CostCall   float64
	CostCached float64
}

// Deltas applies op to every ordered pair of models where the
// baseline's per-row cost is strictly lower. Models must already be in
// ascending CostRow order, as returned by Fit; the output follows that
// order, the more expensive model varying slowest.
func Deltas(models []*Model, op DeltaOp) []Delta {
	var out []Delta
	for _, m2 := range models {
		for _, m1 := range models {
			if m1.CostRow >= m2.CostRow {
				continue
			}
			out = append(out, Delta{
				Mode:       m2.Mode,
				Baseline:   m1.Mode,
				CostRow:    op.F(m1.CostRow, m2.CostRow),
				CostCall:   op.F(m1.CostCall, m2.CostCall),
				CostCached: op.F(m1.CostCached, m2.CostCached),
			})
		}
	}
	return out
}
