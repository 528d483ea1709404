// Copyright 2025 The udfcost Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/datafusion-contrib/udfcost/costmodel"
	"github.com/datafusion-contrib/udfcost/proffmt"
)

// writeCharts writes one fit diagnostic chart per mode into dir:
// modeled cost on the X axis, measured cost on the Y axis, with the
// identity line for reference. Points far off the line are invocation
// shapes the linear decomposition does not capture.
func writeCharts(dir string, models []*costmodel.Model, obs []*proffmt.Observation) error {
	if err := os.MkdirAll(dir, 0777); err != nil {
		return err
	}

	byMode := make(map[string][]*proffmt.Observation)
	for _, o := range obs {
		byMode[o.Mode] = append(byMode[o.Mode], o)
	}

	for _, m := range models {
		var pts plotter.XYs
		lo, hi := int64(0), int64(0)
		for _, o := range byMode[m.Mode] {
			pred := m.Predict(o.BatchSize, o.Batches)
			pts = append(pts, plotter.XY{X: float64(pred), Y: float64(o.Cost)})
			if o.Cost > hi {
				hi = o.Cost
			}
			if pred > hi {
				hi = pred
			}
		}

		pl := plot.New()
		pl.Title.Text = fmt.Sprintf("%s (score=%.2f)", m.Mode, m.Score)
		pl.X.Label.Text = "modeled cost"
		pl.Y.Label.Text = "measured cost"

		ident, err := plotter.NewLine(plotter.XYs{{X: float64(lo), Y: float64(lo)}, {X: float64(hi), Y: float64(hi)}})
		if err != nil {
			return err
		}
		ident.LineStyle.Color = color.Gray{Y: 0xb0}

		sc, err := plotter.NewScatter(pts)
		if err != nil {
			return err
		}
		sc.GlyphStyle.Radius = vg.Points(3)

		pl.Add(ident, sc)

		can := vgimg.PngCanvas{Canvas: vgimg.NewWith(
			vgimg.UseWH(16*vg.Centimeter, 12*vg.Centimeter),
			vgimg.UseDPI(150),
			vgimg.UseBackgroundColor(color.White))}
		pl.Draw(draw.New(can))

		file := filepath.Join(dir, "fit_"+m.Mode+".png")
		f, err := os.Create(file)
		if err != nil {
			return err
		}
		if _, err := can.WriteTo(f); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	return nil
}
