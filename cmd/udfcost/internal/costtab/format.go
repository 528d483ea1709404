// Copyright 2025 The udfcost Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package costtab

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/datafusion-contrib/udfcost/cmd/udfcost/internal/texttab"
)

// FormatText writes a fixed-width text rendering of the tables to w.
// Sections are separated by blank lines.
func FormatText(w io.Writer, tables []*Table) error {
	for i, t := range tables {
		if i > 0 {
			if _, err := fmt.Fprintf(w, "\n\n"); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "=== %s ===\n", t.Title); err != nil {
			return err
		}
		if t.Legend != "" {
			if _, err := fmt.Fprintf(w, "%s\n", t.Legend); err != nil {
				return err
			}
		}

		var tab texttab.Table
		tab.Row()
		for col, h := range t.Header {
			tab.Cell(h, alignment(t, col))
		}
		for _, row := range t.Rows {
			tab.Row()
			for col, c := range row {
				tab.Cell(c.Text, alignment(t, col))
			}
		}
		if err := tab.Format(w); err != nil {
			return err
		}
	}
	return nil
}

func alignment(t *Table, col int) texttab.CellOption {
	if col < t.LabelCols {
		return texttab.Left
	}
	return texttab.Right
}

// FormatCSV writes a CSV rendering of the tables to w. Each table is
// preceded by a record holding its title; legends are omitted.
func FormatCSV(w io.Writer, tables []*Table) error {
	for i, t := range tables {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		cw := csv.NewWriter(w)
		if err := cw.Write([]string{t.Title}); err != nil {
			return err
		}
		if err := cw.Write(t.Header); err != nil {
			return err
		}
		rec := make([]string, len(t.Header))
		for _, row := range t.Rows {
			for col, c := range row {
				rec[col] = c.Raw
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		cw.Flush()
		if err := cw.Error(); err != nil {
			return err
		}
	}
	return nil
}
