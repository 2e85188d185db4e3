// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"fmt"

	"github.com/aclements/querychart/internal/table"
)

const (
	sankeyNodeWidth = 15
	sankeyNodeGap   = 10
)

// A flow is the total carried from one source to one target.
type flow struct {
	src, dst string
	value    float64
	row      int // first row of the flow
}

// flows sums the weight column over each (source, target) pair in order
// of first appearance. Without a weight column each row counts 1.
// Non-positive totals are dropped.
func (c *Chart) flows() (flows []flow, weight int) {
	weight = -1
	if vis := c.visible(); len(vis) > 0 {
		weight = vis[0]
	}
	index := make(map[[2]string]int)
	for row, r := range c.tbl.Rows {
		v := 1.0
		if weight >= 0 {
			var ok bool
			if v, ok = table.Number(r.Cell(weight)); !ok {
				continue
			}
		}
		k := [2]string{table.String(r.Cell(c.stringCol)), table.String(r.Cell(c.legendCol))}
		i, ok := index[k]
		if !ok {
			i = len(flows)
			index[k] = i
			flows = append(flows, flow{src: k[0], dst: k[1], row: row})
		}
		flows[i].value += v
	}
	out := flows[:0]
	for _, f := range flows {
		if f.value > 0 {
			out = append(out, f)
		}
	}
	return out, weight
}

// sankeySide is one column of sankey nodes.
type sankeySide struct {
	names  []string
	totals map[string]float64
	// y is the running top of each node's next link band.
	y map[string]float64
}

func newSankeySide() *sankeySide {
	return &sankeySide{totals: make(map[string]float64), y: make(map[string]float64)}
}

func (s *sankeySide) add(name string, v float64) {
	if _, ok := s.totals[name]; !ok {
		s.names = append(s.names, name)
	}
	s.totals[name] += v
}

func (s *sankeySide) sum() float64 {
	var t float64
	for _, n := range s.names {
		t += s.totals[n]
	}
	return t
}

// sankey lays out sources on the left and targets on the right. Node
// heights and link widths share one scale so flows conserve thickness.
func (c *Chart) sankey(f *frame) []Element {
	flows, weight := c.flows()
	if len(flows) == 0 {
		return nil
	}
	left, right := newSankeySide(), newSankeySide()
	for _, fl := range flows {
		left.add(fl.src, fl.value)
		right.add(fl.dst, fl.value)
	}
	in := f.inner
	// Both sides carry the same total, so the side with more nodes
	// (and more gaps) sets the scale.
	gaps := float64(max(len(left.names), len(right.names))-1) * sankeyNodeGap
	k := max(0, in.dy()-gaps) / left.sum()

	var nodes []Element
	place := func(s *sankeySide, x float64) {
		y := in.y0
		for i, n := range s.names {
			h := s.totals[n] * k
			s.y[n] = y
			nodes = append(nodes, Element{
				Shape:   ShapeRect,
				X:       x,
				Y:       y,
				Width:   sankeyNodeWidth,
				Height:  h,
				Color:   c.palette(i),
				Label:   n,
				Tooltip: fmt.Sprintf("%s: %s", n, c.formatWeight(s.totals[n], weight)),
			})
			y += h + sankeyNodeGap
		}
	}
	place(left, in.x0)
	place(right, in.x1-sankeyNodeWidth)

	valueCol := weight
	if valueCol < 0 {
		valueCol = c.legendCol
	}
	x0, x1 := in.x0+sankeyNodeWidth, in.x1-sankeyNodeWidth
	xm := (x0 + x1) / 2
	var links []Element
	for _, fl := range flows {
		w := fl.value * k
		if w < heightEpsilon {
			continue
		}
		y0, y1 := left.y[fl.src], right.y[fl.dst]
		left.y[fl.src] += w
		right.y[fl.dst] += w

		var d pathData
		d.moveTo(Point{x0, y0})
		d.curveTo(Point{xm, y0}, Point{xm, y1}, Point{x1, y1})
		d.lineTo(Point{x1, y1 + w})
		d.curveTo(Point{xm, y1 + w}, Point{xm, y0 + w}, Point{x0, y0 + w})
		d.close()
		links = append(links, Element{
			Shape:   ShapePath,
			Path:    d.String(),
			Color:   c.color(weight),
			Opacity: 0.4,
			Tooltip: fmt.Sprintf("%s → %s: %s", fl.src, fl.dst, c.formatWeight(fl.value, weight)),
			Click:   c.click(fl.row, valueCol),
		})
	}
	return append(links, nodes...)
}

func (c *Chart) formatWeight(v float64, weight int) string {
	if weight < 0 {
		return fmt.Sprint(v)
	}
	return c.cfg.format(v, c.tbl.Columns[weight])
}
