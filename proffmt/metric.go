// Copyright 2025 The udfcost Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proffmt

import "fmt"

// A Metric selects which Callgrind measurement a Reader extracts as the
// cost of each observation.
type Metric int

const (
	// Cycles is Callgrind's estimated CPU cycle count. This is the
	// most faithful single proxy for wall time and the usual choice.
	Cycles Metric = iota

	// Instructions is the retired instruction count ("Ir"). It is
	// fully deterministic, at the price of ignoring memory effects.
	Instructions
)

var metricNames = map[string]Metric{
	"cycles":       Cycles,
	"instructions": Instructions,
}

// ParseMetric converts the human-readable metric name used on the
// command line into a Metric.
func ParseMetric(name string) (Metric, error) {
	m, ok := metricNames[name]
	if !ok {
		return 0, fmt.Errorf("unknown metric %q; must be cycles or instructions", name)
	}
	return m, nil
}

func (m Metric) String() string {
	switch m {
	case Cycles:
		return "cycles"
	case Instructions:
		return "instructions"
	}
	return fmt.Sprintf("Metric(%d)", int(m))
}

// CallgrindName returns the key under which the profiler reports this
// metric in its Callgrind summary.
func (m Metric) CallgrindName() string {
	switch m {
	case Cycles:
		return "EstimatedCycles"
	case Instructions:
		return "Ir"
	}
	panic("unknown metric " + m.String())
}
