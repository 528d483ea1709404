// Copyright 2025 The udfcost Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proffmt

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
)

// benchLineJSON builds one line of profiler output with the given
// benchmark identity and a single Callgrind metric.
func benchLineJSON(fn, id, metric string, cost int64) string {
	return fmt.Sprintf(`{"function_name":%q,"id":%q,"profiles":[{"summaries":{"total":{"summary":{"Callgrind":{%q:{"metrics":{"Left":{"Int":%d}}}}}}}}]}`,
		fn, id, metric, cost)
}

func parseAll(t *testing.T, data string, metric Metric) []Record {
	t.Helper()
	r := NewReader(strings.NewReader(data), "test", metric)
	var out []Record
	for r.Scan() {
		switch rec := r.Result().(type) {
		case *Observation:
			// Wipe position information for comparisons.
			rec.fileName, rec.line = "", 0
			out = append(out, rec)
		case *SyntaxError:
			out = append(out, rec)
		default:
			t.Fatalf("unexpected record type %T", rec)
		}
	}
	if err := r.Err(); err != nil {
		t.Fatal("parsing failed: ", err)
	}
	return out
}

func TestReader(t *testing.T) {
	data := strings.Join([]string{
		benchLineJSON("bench_native", "batchsize_8192_batches_2", "EstimatedCycles", 123456),
		"",
		benchLineJSON("bench_python", "batchsize_0_batches_0", "EstimatedCycles", 42),
	}, "\n")

	got := parseAll(t, data, Cycles)
	want := []Record{
		&Observation{Mode: "native", BatchSize: 8192, Batches: 2, Cost: 123456},
		&Observation{Mode: "python", BatchSize: 0, Batches: 0, Cost: 42},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestReaderMetric(t *testing.T) {
	data := benchLineJSON("bench_wasm", "batchsize_16384_batches_3", "Ir", 999)

	got := parseAll(t, data, Instructions)
	want := []Record{
		&Observation{Mode: "wasm", BatchSize: 16384, Batches: 3, Cost: 999},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}

	// The same line read under the cycles metric must fail because
	// the dump carries no EstimatedCycles entry.
	got = parseAll(t, data, Cycles)
	if len(got) != 1 {
		t.Fatalf("got %d records, want 1", len(got))
	}
	serr, ok := got[0].(*SyntaxError)
	if !ok {
		t.Fatalf("got %T, want *SyntaxError", got[0])
	}
	if want := "missing Callgrind metric EstimatedCycles"; serr.Msg != want {
		t.Errorf("got message %q, want %q", serr.Msg, want)
	}
}

func TestReaderErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{
			"badJSON",
			`{"function_name": oops}`,
			"parsing JSON",
		},
		{
			"badFunctionName",
			benchLineJSON("setup_native", "batchsize_1_batches_1", "EstimatedCycles", 1),
			`unrecognized function name "setup_native"`,
		},
		{
			"emptyMode",
			benchLineJSON("bench_", "batchsize_1_batches_1", "EstimatedCycles", 1),
			`unrecognized function name "bench_"`,
		},
		{
			"badID",
			benchLineJSON("bench_native", "rows_1_batches_1", "EstimatedCycles", 1),
			`unrecognized benchmark id "rows_1_batches_1"`,
		},
		{
			"missingBatches",
			benchLineJSON("bench_native", "batchsize_1", "EstimatedCycles", 1),
			`unrecognized benchmark id "batchsize_1"`,
		},
		{
			"noProfiles",
			`{"function_name":"bench_native","id":"batchsize_1_batches_1","profiles":[]}`,
			"want exactly 1 profile, got 0",
		},
		{
			"negativeCost",
			benchLineJSON("bench_native", "batchsize_1_batches_1", "EstimatedCycles", -5),
			"negative cost -5",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := parseAll(t, test.line, Cycles)
			if len(got) != 1 {
				t.Fatalf("got %d records, want 1", len(got))
			}
			serr, ok := got[0].(*SyntaxError)
			if !ok {
				t.Fatalf("got %T, want *SyntaxError", got[0])
			}
			if !strings.Contains(serr.Msg, test.want) {
				t.Errorf("got message %q, want %q", serr.Msg, test.want)
			}
			if serr.FileName != "test" || serr.Line != 1 {
				t.Errorf("got position %s:%d, want test:1", serr.FileName, serr.Line)
			}
		})
	}
}

func TestReaderContinuesAfterError(t *testing.T) {
	data := strings.Join([]string{
		"not json",
		benchLineJSON("bench_native", "batchsize_8192_batches_1", "EstimatedCycles", 7),
	}, "\n")

	got := parseAll(t, data, Cycles)
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2", len(got))
	}
	if _, ok := got[0].(*SyntaxError); !ok {
		t.Errorf("record 0: got %T, want *SyntaxError", got[0])
	}
	if obs, ok := got[1].(*Observation); !ok || obs.Cost != 7 {
		t.Errorf("record 1: got %+v, want cost 7 observation", got[1])
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		name string
		mode string
		ok   bool
	}{
		{"bench_native", "native", true},
		{"bench_wasm", "wasm", true},
		// The suite appends numeric suffixes in some configurations;
		// everything after the mode letters is ignored.
		{"bench_python_2", "python", true},
		{"bench_", "", false},
		{"bench_123", "", false},
		{"warmup_native", "", false},
	}
	for _, test := range tests {
		mode, ok := parseMode(test.name)
		if mode != test.mode || ok != test.ok {
			t.Errorf("parseMode(%q) = %q, %v, want %q, %v", test.name, mode, ok, test.mode, test.ok)
		}
	}
}

func TestParseID(t *testing.T) {
	tests := []struct {
		id                 string
		batchSize, batches int
		ok                 bool
	}{
		{"batchsize_8192_batches_3", 8192, 3, true},
		{"batchsize_0_batches_0", 0, 0, true},
		{"batchsize_8192_batches_", 0, 0, false},
		{"batchsize__batches_3", 0, 0, false},
		{"batches_3_batchsize_8192", 0, 0, false},
	}
	for _, test := range tests {
		batchSize, batches, ok := parseID(test.id)
		if batchSize != test.batchSize || batches != test.batches || ok != test.ok {
			t.Errorf("parseID(%q) = %d, %d, %v, want %d, %d, %v",
				test.id, batchSize, batches, ok, test.batchSize, test.batches, test.ok)
		}
	}
}

func TestMetric(t *testing.T) {
	for _, name := range []string{"cycles", "instructions"} {
		m, err := ParseMetric(name)
		if err != nil {
			t.Fatalf("ParseMetric(%q): %v", name, err)
		}
		if m.String() != name {
			t.Errorf("ParseMetric(%q).String() = %q", name, m.String())
		}
	}
	if _, err := ParseMetric("branches"); err == nil {
		t.Error("ParseMetric(branches) succeeded, want error")
	}
	if got := Cycles.CallgrindName(); got != "EstimatedCycles" {
		t.Errorf("Cycles.CallgrindName() = %q", got)
	}
	if got := Instructions.CallgrindName(); got != "Ir" {
		t.Errorf("Instructions.CallgrindName() = %q", got)
	}
}
