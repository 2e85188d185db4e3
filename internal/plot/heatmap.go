// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"fmt"
	"math"

	"github.com/aclements/querychart/internal/table"
)

// minOpacity keeps the smallest heatmap cells visible.
const minOpacity = 0.05

// cell is one value of a category by series grid.
type cell struct {
	row, col, series int
	v                float64
}

// grid returns the numeric cells of the visible series and the largest
// magnitude among them.
func (c *Chart) grid() (cells []cell, maxAbs float64) {
	for row, r := range c.tbl.Rows {
		for i, col := range c.visible() {
			v, ok := table.Number(r.Cell(col))
			if !ok {
				continue
			}
			cells = append(cells, cell{row, col, i, v})
			maxAbs = max(maxAbs, math.Abs(v))
		}
	}
	return
}

// heatmap fills each category and series cell with an opacity
// proportional to the magnitude of its value. Negative values use a
// contrasting palette colour.
func (c *Chart) heatmap(f *frame) []Element {
	cells, maxAbs := c.grid()
	if maxAbs == 0 {
		return nil
	}
	var out []Element
	for _, g := range cells {
		x, ok := f.band.Project(c.tbl.Rows[g.row].Cell(c.stringCol))
		if !ok {
			continue
		}
		color := c.palette(0)
		if g.v < 0 {
			color = c.palette(2)
		}
		out = append(out, Element{
			Shape:   ShapeRect,
			X:       x,
			Y:       f.band2.At(g.series),
			Width:   f.band.Bandwidth(),
			Height:  f.band2.Bandwidth(),
			Color:   color,
			Opacity: max(minOpacity, math.Abs(g.v)/maxAbs),
			Label:   c.cfg.format(g.v, c.tbl.Columns[g.col]),
			Tooltip: c.tooltip(g.row, g.col),
			Click:   c.click(g.row, g.col),
		})
	}
	return out
}

// bubbles draws a circle in each category and series cell whose area is
// proportional to the magnitude of its value.
func (c *Chart) bubbles(f *frame) []Element {
	cells, maxAbs := c.grid()
	if maxAbs == 0 {
		return nil
	}
	rmax := min(f.band.Bandwidth(), f.band2.Bandwidth()) / 2
	var out []Element
	for _, g := range cells {
		x, ok := f.band.Project(c.tbl.Rows[g.row].Cell(c.stringCol))
		if !ok {
			continue
		}
		r := rmax * math.Sqrt(math.Abs(g.v)/maxAbs)
		if r < heightEpsilon {
			continue
		}
		out = append(out, Element{
			Shape:   ShapeCircle,
			X:       x + f.band.Bandwidth()/2,
			Y:       f.band2.At(g.series) + f.band2.Bandwidth()/2,
			R:       r,
			Color:   c.color(g.col),
			Opacity: 0.7,
			Label:   c.cfg.format(g.v, c.tbl.Columns[g.col]),
			Tooltip: c.tooltip(g.row, g.col),
			Click:   c.click(g.row, g.col),
		})
	}
	return out
}

// histogram draws one bar per bin. Bins span many rows, so they carry a
// tooltip but no click payload.
func (c *Chart) histogram(f *frame) []Element {
	if len(f.bins) == 0 {
		return nil
	}
	col := c.visible()[0]
	column := c.tbl.Columns[col]
	base := f.value.Baseline()
	var out []Element
	for _, b := range f.bins {
		x0, x1 := f.xlin.Map(b.X0), f.xlin.Map(b.X1)
		y := f.value.Map(float64(b.Count))
		h := base - y
		if h < heightEpsilon {
			continue
		}
		tip := fmt.Sprintf("%s: %s to %s\nCount: %d", column.Title(),
			c.cfg.format(b.X0, column), c.cfg.format(b.X1, column), b.Count)
		out = append(out, Element{
			Shape:   ShapeRect,
			X:       x0,
			Y:       y,
			Width:   max(0, x1-x0-1),
			Height:  h,
			Color:   c.color(col),
			Label:   fmt.Sprint(b.Count),
			Tooltip: tip,
		})
	}
	return out
}

// scatter draws one point per row at the first two visible series.
func (c *Chart) scatter(f *frame) []Element {
	vis := c.visible()
	if len(vis) < 2 {
		return nil
	}
	xc, yc := vis[0], vis[1]
	var out []Element
	for row, r := range c.tbl.Rows {
		x, ok1 := table.Number(r.Cell(xc))
		y, ok2 := table.Number(r.Cell(yc))
		if !ok1 || !ok2 {
			continue
		}
		tip := fmt.Sprintf("%s: %s\n%s: %s",
			c.tbl.Columns[xc].Title(), c.cfg.format(x, c.tbl.Columns[xc]),
			c.tbl.Columns[yc].Title(), c.cfg.format(y, c.tbl.Columns[yc]))
		if c.stringCol >= 0 {
			tip = c.cfg.format(r.Cell(c.stringCol), c.tbl.Columns[c.stringCol]) + "\n" + tip
		}
		out = append(out, Element{
			Shape:   ShapeCircle,
			X:       f.xlin.Map(x),
			Y:       f.value.Map(y),
			R:       4,
			Color:   c.color(yc),
			Opacity: 0.8,
			Tooltip: tip,
			Click:   c.click(row, yc),
		})
	}
	return out
}
