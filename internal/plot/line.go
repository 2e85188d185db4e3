// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import "github.com/aclements/querychart/internal/table"

// pointRadius is the radius of line chart vertex markers.
const pointRadius = 3

// A vertex is one point of a line series.
type vertex struct {
	Point
	row int
}

// lines draws one path per series of cols against measure scale s. A row
// with no value for a series breaks that series' path; a row whose
// category cannot be placed is skipped.
func (c *Chart) lines(f *frame, cols []int, s *LinearScale) []Element {
	var paths, marks []Element
	for _, col := range cols {
		var segs [][]vertex
		var cur []vertex
		for row, r := range c.tbl.Rows {
			x, ok := c.categoryCenter(f, r)
			if !ok {
				continue
			}
			v, ok := table.Number(r.Cell(col))
			if !ok {
				if len(cur) > 0 {
					segs = append(segs, cur)
					cur = nil
				}
				continue
			}
			cur = append(cur, vertex{Point{x, s.Map(v)}, row})
		}
		if len(cur) > 0 {
			segs = append(segs, cur)
		}

		color := c.color(col)
		var d pathData
		for _, seg := range segs {
			pts := make([]Point, len(seg))
			for i, v := range seg {
				pts[i] = v.Point
				marks = append(marks, Element{
					Shape:   ShapeCircle,
					X:       v.X,
					Y:       v.Y,
					R:       pointRadius,
					Color:   color,
					Tooltip: c.tooltip(v.row, col),
					Click:   c.click(v.row, col),
				})
			}
			smoothPath(&d, pts, c.cfg.Smoothing)
		}
		if d.buf.Len() == 0 {
			continue
		}
		paths = append(paths, Element{
			Shape:       ShapePath,
			Path:        d.String(),
			Color:       color,
			StrokeWidth: 2,
			Label:       c.tbl.Columns[col].Title(),
		})
	}
	return append(paths, marks...)
}

// categoryCenter returns the pixel position of r's category on the X
// axis.
func (c *Chart) categoryCenter(f *frame, r table.Row) (float64, bool) {
	v := r.Cell(c.stringCol)
	if f.time != nil {
		t, err := ParseDate(v, c.cfg.DataFormatting.DateFormat)
		if err != nil {
			return 0, false
		}
		return f.time.Map(t), true
	}
	x, ok := f.band.Project(v)
	return x + f.band.Bandwidth()/2, ok
}

// smoothPath appends pts to d as a Catmull-Rom spline converted to cubic
// Bézier segments. tension scales the tangents; 0 draws straight lines.
func smoothPath(d *pathData, pts []Point, tension float64) {
	if len(pts) == 0 {
		return
	}
	d.moveTo(pts[0])
	at := func(i int) Point {
		return pts[min(max(i, 0), len(pts)-1)]
	}
	for i := 0; i+1 < len(pts); i++ {
		p0, p1, p2, p3 := at(i-1), at(i), at(i+1), at(i+2)
		if tension == 0 {
			d.lineTo(p2)
			continue
		}
		c1 := Point{p1.X + (p2.X-p0.X)*tension, p1.Y + (p2.Y-p0.Y)*tension}
		c2 := Point{p2.X - (p3.X-p1.X)*tension, p2.Y - (p3.Y-p1.Y)*tension}
		d.curveTo(c1, c2, p2)
	}
}
