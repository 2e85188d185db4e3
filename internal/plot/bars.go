// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"math"

	"github.com/aclements/querychart/internal/table"
)

func (c *Chart) groupedBars(f *frame) []Element {
	return c.bars(f, c.visible(), f.value)
}

// bars lays out one bar per row and series. The series split each band
// into equal slices in order, so hidden series take no room.
func (c *Chart) bars(f *frame, cols []int, s *LinearScale) []Element {
	if len(cols) == 0 || f.band == nil {
		return nil
	}
	horizontal := c.cfg.ChartType.horizontal()
	slice := f.band.Bandwidth() / float64(len(cols))
	base := s.Baseline()

	var out []Element
	for row, r := range c.tbl.Rows {
		start, ok := f.band.Project(r.Cell(c.stringCol))
		if !ok {
			continue
		}
		for i, col := range cols {
			v, ok := table.Number(r.Cell(col))
			if !ok {
				continue
			}
			off := start + float64(i)*slice
			if e, ok := c.bar(row, col, off, slice, base, s.Map(v), horizontal); ok {
				e.Label = c.cfg.format(v, c.tbl.Columns[col])
				out = append(out, e)
			}
		}
	}
	return out
}

// bar returns the rectangle for cell (row, col) spanning [off, off+width]
// across the band and [p0, p1] along the measure. Bars thinner than
// heightEpsilon are not drawn.
func (c *Chart) bar(row, col int, off, width, p0, p1 float64, horizontal bool) (Element, bool) {
	extent := math.Abs(p1 - p0)
	if extent < heightEpsilon {
		return Element{}, false
	}
	e := Element{
		Shape:   ShapeRect,
		Color:   c.color(col),
		Tooltip: c.tooltip(row, col),
		Click:   c.click(row, col),
	}
	if horizontal {
		e.X, e.Y, e.Width, e.Height = min(p0, p1), off, extent, width
	} else {
		e.X, e.Y, e.Width, e.Height = off, min(p0, p1), width, extent
	}
	return e, true
}

// stackedBars lays out series on top of each other per category.
// Positive values grow away from zero above the running positive total
// and negative values below the running negative total.
func (c *Chart) stackedBars(f *frame) []Element {
	cols := c.visible()
	if len(cols) == 0 || f.band == nil {
		return nil
	}
	horizontal := c.cfg.ChartType.horizontal()
	prevPos := make(map[string]float64)
	prevNeg := make(map[string]float64)

	var out []Element
	for row, r := range c.tbl.Rows {
		key := table.String(r.Cell(c.stringCol))
		off, ok := f.band.Value(key)
		if !ok {
			continue
		}
		for _, col := range cols {
			v, ok := table.Number(r.Cell(col))
			if !ok || v == 0 {
				continue
			}
			var lo float64
			if v > 0 {
				lo = prevPos[key]
				prevPos[key] = lo + v
			} else {
				lo = prevNeg[key]
				prevNeg[key] = lo + v
			}
			p0, p1 := f.value.Map(lo), f.value.Map(lo+v)
			if e, ok := c.bar(row, col, off, f.band.Bandwidth(), p0, p1, horizontal); ok {
				e.Label = c.cfg.format(v, c.tbl.Columns[col])
				out = append(out, e)
			}
		}
	}
	return out
}

// columnLine draws the first visible series as columns on the primary
// axis and the rest as lines on the secondary axis.
func (c *Chart) columnLine(f *frame) []Element {
	vis := c.visible()
	if len(vis) == 0 {
		return nil
	}
	out := c.bars(f, vis[:1], f.value)
	if f.value2 != nil {
		out = append(out, c.lines(f, vis[1:], f.value2)...)
	}
	return out
}
