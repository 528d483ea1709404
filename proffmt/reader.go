// Copyright 2025 The udfcost Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proffmt

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// A Reader reads profile observations from a JSON lines benchmark dump.
//
// Its API is modeled on bufio.Scanner. Call Scan to advance to the next
// record and Result to retrieve it; when Scan returns false, check Err.
//
// To construct a new Reader, either call NewReader, or call Reset on a
// zeroed Reader.
type Reader struct {
	s      *bufio.Scanner
	metric Metric
	err    error // current I/O error

	fileName string
	line     int

	rec Record
}

// A SyntaxError represents a malformed line of a benchmark dump.
type SyntaxError struct {
	FileName string
	Line     int
	Msg      string
}

func (e *SyntaxError) Pos() (fileName string, line int) {
	return e.FileName, e.Line
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.FileName, e.Line, e.Msg)
}

var noResult = &SyntaxError{"", 0, "Reader.Scan has not been called"}

// Profile lines can easily exceed bufio.Scanner's default token limit:
// the profiler dumps the full per-callee breakdown on every line.
const maxLine = 16 << 20

// NewReader constructs a reader that extracts metric as the cost of each
// observation parsed from r. fileName is used in error messages; it is
// purely diagnostic.
func NewReader(r io.Reader, fileName string, metric Metric) *Reader {
	reader := new(Reader)
	reader.Reset(r, fileName, metric)
	return reader
}

// Reset resets the reader to begin reading from a new input.
func (r *Reader) Reset(ior io.Reader, fileName string, metric Metric) {
	r.s = bufio.NewScanner(ior)
	r.s.Buffer(nil, maxLine)
	if fileName == "" {
		fileName = "<unknown>"
	}
	r.metric = metric
	r.err = nil
	r.fileName = fileName
	r.line = 0
	r.rec = nil
}

// newSyntaxError returns a *SyntaxError at the Reader's current position.
func (r *Reader) newSyntaxError(msg string) *SyntaxError {
	return &SyntaxError{r.fileName, r.line, msg}
}

// benchLine mirrors the envelope of one dumped benchmark. Only the
// fields this tool consumes are declared; everything else in the line is
// ignored by the JSON decoder.
type benchLine struct {
	FunctionName string      `json:"function_name"`
	ID           string      `json:"id"`
	Profiles     []benchProf `json:"profiles"`
}

type benchProf struct {
	Summaries struct {
		Total struct {
			Summary struct {
				Callgrind map[string]struct {
					Metrics struct {
						Left struct {
							Int int64 `json:"Int"`
						} `json:"Left"`
					} `json:"metrics"`
				} `json:"Callgrind"`
			} `json:"summary"`
		} `json:"total"`
	} `json:"summaries"`
}

// Scan advances the reader to the next record and reports whether one
// was read. The caller should use the Result method to get the record.
// If Scan reaches EOF or an I/O error occurs, it returns false, in which
// case the caller should use the Err method to check for errors.
func (r *Reader) Scan() bool {
	if r.err != nil {
		return false
	}

	for r.s.Scan() {
		r.line++
		line := r.s.Bytes()
		if len(line) == 0 {
			continue
		}
		if obs, err := r.parseLine(line); err != nil {
			r.rec = err
		} else {
			r.rec = obs
		}
		return true
	}

	if err := r.s.Err(); err != nil {
		r.err = fmt.Errorf("%s:%d: %w", r.fileName, r.line, err)
	}
	return false
}

// parseLine parses one dumped benchmark into an Observation.
func (r *Reader) parseLine(line []byte) (*Observation, *SyntaxError) {
	var b benchLine
	if err := json.Unmarshal(line, &b); err != nil {
		return nil, r.newSyntaxError("parsing JSON: " + err.Error())
	}

	mode, ok := parseMode(b.FunctionName)
	if !ok {
		return nil, r.newSyntaxError(fmt.Sprintf("unrecognized function name %q", b.FunctionName))
	}
	batchSize, batches, ok := parseID(b.ID)
	if !ok {
		return nil, r.newSyntaxError(fmt.Sprintf("unrecognized benchmark id %q", b.ID))
	}

	if len(b.Profiles) != 1 {
		return nil, r.newSyntaxError(fmt.Sprintf("want exactly 1 profile, got %d", len(b.Profiles)))
	}
	name := r.metric.CallgrindName()
	m, ok := b.Profiles[0].Summaries.Total.Summary.Callgrind[name]
	if !ok {
		return nil, r.newSyntaxError(fmt.Sprintf("missing Callgrind metric %s", name))
	}
	cost := m.Metrics.Left.Int
	if cost < 0 {
		return nil, r.newSyntaxError(fmt.Sprintf("negative cost %d", cost))
	}

	return &Observation{
		Mode:      mode,
		BatchSize: batchSize,
		Batches:   batches,
		Cost:      cost,
		fileName:  r.fileName,
		line:      r.line,
	}, nil
}

// parseMode extracts the execution mode from a benchmark function name
// of the form "bench_<mode>". Anything after the leading run of lower
// case letters is ignored, matching how the suite names its benchmark
// groups.
func parseMode(name string) (mode string, ok bool) {
	rest, ok := strings.CutPrefix(name, "bench_")
	if !ok {
		return "", false
	}
	i := 0
	for i < len(rest) && 'a' <= rest[i] && rest[i] <= 'z' {
		i++
	}
	if i == 0 {
		return "", false
	}
	return rest[:i], true
}

// parseID extracts the invocation shape from a benchmark id of the form
// "batchsize_<N>_batches_<M>".
func parseID(id string) (batchSize, batches int, ok bool) {
	rest, ok := strings.CutPrefix(id, "batchsize_")
	if !ok {
		return 0, 0, false
	}
	batchSize, rest, ok = parseInt(rest)
	if !ok {
		return 0, 0, false
	}
	rest, ok = strings.CutPrefix(rest, "_batches_")
	if !ok {
		return 0, 0, false
	}
	batches, _, ok = parseInt(rest)
	if !ok {
		return 0, 0, false
	}
	return batchSize, batches, true
}

// parseInt consumes a leading run of decimal digits.
func parseInt(s string) (val int, rest string, ok bool) {
	i := 0
	for i < len(s) && '0' <= s[i] && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, s, false
	}
	val, err := strconv.Atoi(s[:i])
	if err != nil {
		return 0, s, false
	}
	return val, s[i:], true
}

// A Record is a single record read from a benchmark dump. It is either
// an *Observation or a *SyntaxError.
type Record interface {
	// Pos returns the position of this record as a file name and a
	// 1-based line number within that file.
	Pos() (fileName string, line int)
}

var _ Record = (*Observation)(nil)
var _ Record = (*SyntaxError)(nil)

// Result returns the record that was just read by Scan. This is either
// an *Observation or a *SyntaxError indicating a parse error.
//
// Parse errors are non-fatal, so the caller can continue to call Scan.
func (r *Reader) Result() Record {
	if r.rec == nil {
		return noResult
	}
	return r.rec
}

// Err returns the first non-EOF I/O error that was encountered by the
// Reader.
func (r *Reader) Err() error {
	return r.err
}
