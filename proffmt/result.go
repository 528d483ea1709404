// Copyright 2025 The udfcost Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package proffmt reads the JSON lines dump emitted by the udf_overhead
// benchmark suite (gungraun/iai-callgrind with --output-format=json).
//
// The reader is structured as a streaming operation modeled on
// bufio.Scanner: malformed lines surface as in-band *SyntaxError records
// rather than aborting the scan, so one bad line does not discard an
// otherwise usable dump.
//
// This package is designed to be used with the higher-level packages
// costmath and costmodel.
package proffmt

// An Observation is one profiled benchmark run: a UDF invoked in a given
// execution mode over a number of equally sized record batches, with the
// selected Callgrind metric as its cost.
//
// Observations are immutable once emitted by a Reader.
type Observation struct {
	// Mode is the execution strategy under which the UDF was
	// invoked, e.g. "native", "wasm" or "python". It is parsed from
	// the benchmark function name and treated as an opaque category.
	Mode string

	// BatchSize is the number of rows per record batch.
	BatchSize int

	// Batches is the number of batches the UDF was invoked on.
	Batches int

	// Cost is the measured value of the selected metric for the
	// whole run.
	Cost int64

	fileName string
	line     int
}

// Pos returns the position this Observation was read from as a file name
// and a 1-based line number within that file.
func (o *Observation) Pos() (fileName string, line int) {
	return o.fileName, o.line
}

// TotalRows returns the total number of rows processed across all
// batches of this run.
func (o *Observation) TotalRows() int64 {
	return int64(o.BatchSize) * int64(o.Batches)
}
