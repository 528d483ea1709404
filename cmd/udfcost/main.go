// Copyright 2025 The udfcost Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Udfcost derives a per-call-site cost model from the udf_overhead
// benchmark and compares execution modes.
//
// Usage:
//
//	udfcost [-metric metric] [-format format] [-chart dir] [inputs...]
//
// Each input file must contain the JSON lines dump of the udf_overhead
// benchmark suite. If no inputs are provided, udfcost reads from stdin;
// "-" also means stdin.
//
// To generate a dump, run:
//
//	cargo bench \
//	    --features=all-arch --package=datafusion-udf-wasm-host --bench=udf_overhead \
//	    -- --output-format=json --baseline=doesnotexist \
//	    > perf.json
//
// Note that the command deliberately names a non-existing baseline:
// with a real baseline the profiler emits two-sided metrics that this
// tool does not parse.
//
// Each benchmark in the dump invokes one UDF implementation ("mode": a
// native one, the same compiled to WASM, or a Python function running
// on an embedded interpreter) over a number of equally sized record
// batches. For every mode, udfcost fits the constrained linear model
//
//	cost = cost_row * n_rows + cost_call * n_batches + cost_cached
//
// where all three coefficients are non-negative: cost_row is the
// marginal cost of one input row, cost_call the marginal cost of one
// UDF invocation, and cost_cached the fixed overhead amortized over
// repeated invocations. It then prints the observations, the model per
// mode, and pairwise deltas (absolute and relative) for every pair of
// modes where the baseline has a strictly lower per-row cost.
//
// The -metric option selects which Callgrind measurement serves as the
// cost: "cycles" (estimated CPU cycles, the default) or "instructions"
// (retired instructions).
//
// The -format option controls the output: "text" (fixed-width tables,
// the default), "csv", or "html".
//
// The -chart option additionally writes one predicted-vs-measured
// scatter chart per mode as a PNG file into the given directory,
// creating it if necessary.
//
// Parse errors in the dump are reported to stderr and make the exit
// status non-zero, but do not stop the analysis as long as at least one
// observation was read.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/datafusion-contrib/udfcost/cmd/udfcost/internal/costtab"
	"github.com/datafusion-contrib/udfcost/costmodel"
	"github.com/datafusion-contrib/udfcost/proffmt"
)

func main() {
	log.SetPrefix("udfcost: ")
	log.SetFlags(0)
	if err := udfcost(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

// udfcost runs the analysis with the given command line arguments,
// writing the report to w and diagnostics to wErr.
func udfcost(w, wErr io.Writer, args []string) error {
	flags := flag.NewFlagSet("udfcost", flag.ExitOnError)
	flagMetric := flags.String("metric", "cycles", "use callgrind `metric` as the cost: cycles or instructions")
	flagFormat := flags.String("format", "text", "print results in `format`: text, csv, or html")
	flagChart := flags.String("chart", "", "write a per-mode fit chart as a PNG file into `dir`")
	flags.Usage = func() {
		fmt.Fprintf(wErr, "Usage: udfcost [flags] inputs...\n")
		flags.SetOutput(wErr)
		flags.PrintDefaults()
	}
	flags.Parse(args)

	metric, err := proffmt.ParseMetric(*flagMetric)
	if err != nil {
		return err
	}

	// Parse the inputs. Malformed lines are reported as they are
	// found and the scan continues.
	files := &proffmt.Files{
		Paths:      flags.Args(),
		Metric:     metric,
		AllowStdin: true,
	}
	var obs []*proffmt.Observation
	nErrs := 0
	for files.Scan() {
		switch rec := files.Result().(type) {
		case *proffmt.Observation:
			obs = append(obs, rec)
		case *proffmt.SyntaxError:
			nErrs++
			fmt.Fprintln(wErr, rec)
		default:
			return fmt.Errorf("unexpected record type %T", rec)
		}
	}
	if err := files.Err(); err != nil {
		return err
	}
	if len(obs) == 0 {
		return fmt.Errorf("no observations found")
	}

	models, err := costmodel.Fit(obs)
	if err != nil {
		return err
	}
	for _, m := range models {
		for _, warn := range m.Warnings {
			fmt.Fprintf(wErr, "warning: %s: %v\n", m.Mode, warn)
		}
	}

	tables := []*costtab.Table{
		costtab.Input(obs),
		costtab.Models(models),
		costtab.Deltas(models, costmodel.Abs),
		costtab.Deltas(models, costmodel.Rel1),
		costtab.Deltas(models, costmodel.Rel2),
	}

	var buf bytes.Buffer
	switch *flagFormat {
	case "text":
		err = costtab.FormatText(&buf, tables)
	case "csv":
		err = costtab.FormatCSV(&buf, tables)
	case "html":
		err = formatHTML(&buf, tables)
	default:
		return fmt.Errorf("unknown format %q; must be text, csv, or html", *flagFormat)
	}
	if err != nil {
		return err
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return err
	}

	if *flagChart != "" {
		if err := writeCharts(*flagChart, models, obs); err != nil {
			return err
		}
	}

	if nErrs > 0 {
		return fmt.Errorf("%d malformed input lines", nErrs)
	}
	return nil
}
