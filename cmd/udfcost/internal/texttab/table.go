// Copyright 2025 The udfcost Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package texttab does layout of fixed-width text tables.
package texttab

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Table does layout of text-based tables.
//
// Many of its methods return the Table so callers can easily chain them
// to build up many cells at once.
type Table struct {
	cells []textCell
	cols  int

	curRow, curCol int
}

type textCell struct {
	row, col   int
	value      string
	leftMargin string
	alignment  align
}

type CellOption func(c *textCell)

func LeftMargin(x string) CellOption {
	return func(c *textCell) {
		c.leftMargin = x
	}
}

var (
	Left  CellOption = func(c *textCell) { c.alignment = alignLeft }
	Right CellOption = func(c *textCell) { c.alignment = alignRight }
)

type align int

const (
	alignLeft align = iota
	alignRight
)

func (a align) pad(s string, w int) string {
	switch a {
	default:
		return fmt.Sprintf("%-*s", w, s)
	case alignRight:
		return fmt.Sprintf("%*s", w, s)
	}
}

// Row starts a new row in table t.
func (t *Table) Row() *Table {
	if len(t.cells) > 0 {
		t.curRow++
	}
	t.curCol = 0
	return t
}

// Cell adds a cell at the current row and column.
func (t *Table) Cell(value string, opts ...CellOption) *Table {
	lMargin := "  "
	if t.curCol == 0 {
		// The left-most column has no margin.
		lMargin = ""
	}
	t.cells = append(t.cells, textCell{t.curRow, t.curCol, value, lMargin, alignLeft})
	for _, o := range opts {
		o(&t.cells[len(t.cells)-1])
	}

	t.curCol++
	if t.curCol > t.cols {
		t.cols = t.curCol
	}

	return t
}

// Format lays out table t and writes it to w.
func (t *Table) Format(w io.Writer) error {
	// Compute column widths, excluding margins.
	ws := make([]int, t.cols)
	for _, cell := range t.cells {
		if n := utf8.RuneCountInString(cell.value); n > ws[cell.col] {
			ws[cell.col] = n
		}
	}

	var sb strings.Builder
	for i, cell := range t.cells {
		if i > 0 && t.cells[i-1].row != cell.row {
			// Rows without cells still take a line.
			for r := t.cells[i-1].row; r < cell.row; r++ {
				sb.WriteByte('\n')
			}
		}
		sb.WriteString(cell.leftMargin)
		// Avoid trailing spaces on the last cell of a row.
		last := i+1 == len(t.cells) || t.cells[i+1].row != cell.row
		if last && cell.alignment == alignLeft {
			sb.WriteString(cell.value)
		} else {
			sb.WriteString(cell.alignment.pad(cell.value, ws[cell.col]))
		}
	}
	if len(t.cells) > 0 {
		sb.WriteByte('\n')
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
