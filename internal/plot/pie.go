// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"fmt"
	"math"

	"github.com/aclements/querychart/internal/table"
)

// A pieSlice is the total of one category.
type pieSlice struct {
	label string
	value float64
	row   int // first row of the category
}

// pieSlices sums the first visible series per category. Categories whose
// total is not positive are left out.
func (c *Chart) pieSlices() (slices []pieSlice, col int) {
	vis := c.visible()
	if len(vis) == 0 || c.stringCol < 0 {
		return nil, -1
	}
	col = vis[0]
	index := make(map[string]int)
	for row, r := range c.tbl.Rows {
		v, ok := table.Number(r.Cell(col))
		if !ok {
			continue
		}
		key := table.String(r.Cell(c.stringCol))
		i, ok := index[key]
		if !ok {
			i = len(slices)
			index[key] = i
			slices = append(slices, pieSlice{label: key, row: row})
		}
		slices[i].value += v
	}
	out := slices[:0]
	for _, s := range slices {
		if s.value > 0 {
			out = append(out, s)
		}
	}
	return out, col
}

func (c *Chart) pieCategories() []string {
	slices, _ := c.pieSlices()
	labels := make([]string, len(slices))
	for i, s := range slices {
		labels[i] = c.cfg.format(s.label, c.tbl.Columns[c.stringCol])
	}
	return labels
}

// pie lays out one wedge per category, clockwise from 12 o'clock in
// category order. Wedge i has the colour of legend entry i.
func (c *Chart) pie(f *frame) []Element {
	slices, col := c.pieSlices()
	var total float64
	for _, s := range slices {
		total += s.value
	}
	if total <= 0 {
		return nil
	}
	center := Point{(f.inner.x0 + f.inner.x1) / 2, (f.inner.y0 + f.inner.y1) / 2}
	r := min(f.inner.dx(), f.inner.dy()) / 2
	if r <= 0 {
		return nil
	}

	var out []Element
	angle := 0.0
	for i, s := range slices {
		sweep := 2 * math.Pi * s.value / total
		start, end := angle, angle+sweep
		angle = end
		e := Element{
			Shape:      ShapeArc,
			X:          center.X,
			Y:          center.Y,
			R:          r,
			StartAngle: start,
			EndAngle:   end,
			Path:       wedgePath(center, r, start, end),
			Color:      c.palette(i),
			Label:      fmt.Sprintf("%.1f%%", 100*s.value/total),
			Tooltip:    c.tooltip(s.row, col),
			Click:      c.click(s.row, col),
		}
		out = append(out, e)
	}
	return out
}

// polar returns the point at angle a, clockwise from 12 o'clock, on the
// circle of radius r around o.
func polar(o Point, r, a float64) Point {
	return Point{o.X + r*math.Sin(a), o.Y - r*math.Cos(a)}
}

func wedgePath(o Point, r, start, end float64) string {
	var d pathData
	if end-start >= 2*math.Pi-1e-9 {
		// A full circle needs two arcs.
		d.moveTo(polar(o, r, 0))
		d.arc(r, false, polar(o, r, math.Pi))
		d.arc(r, false, polar(o, r, 0))
		d.close()
		return d.String()
	}
	d.moveTo(o)
	d.lineTo(polar(o, r, start))
	d.arc(r, end-start > math.Pi, polar(o, r, end))
	d.close()
	return d.String()
}
