// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"fmt"
	"math"

	"github.com/aclements/querychart/internal/table"
)

// Interaction is the pointer state of one network chart. It is owned by
// the chart's container and passed to every layout step; two charts
// never share one.
type Interaction struct {
	// Pinned nodes are held at a fixed position.
	Pinned map[string]Point
	// Dragging is the node under the pointer during a drag, or "".
	Dragging string
	DragTo   Point
	// Hovered is the node under the pointer, or "". Links that do not
	// touch it are dimmed.
	Hovered string
}

// NewInteraction returns an empty interaction state.
func NewInteraction() *Interaction {
	return &Interaction{Pinned: make(map[string]Point)}
}

// StartDrag begins dragging node id to p.
func (ia *Interaction) StartDrag(id string, p Point) {
	ia.Dragging, ia.DragTo = id, p
}

// DragMove moves the dragged node to p.
func (ia *Interaction) DragMove(p Point) {
	if ia.Dragging != "" {
		ia.DragTo = p
	}
}

// EndDrag drops the dragged node, pinning it where it was released.
func (ia *Interaction) EndDrag() {
	if ia.Dragging == "" {
		return
	}
	if ia.Pinned == nil {
		ia.Pinned = make(map[string]Point)
	}
	ia.Pinned[ia.Dragging] = ia.DragTo
	ia.Dragging = ""
}

// Unpin releases node id.
func (ia *Interaction) Unpin(id string) {
	delete(ia.Pinned, id)
}

// fixed returns the position node id is held at, if any.
func (ia *Interaction) fixed(id string) (Point, bool) {
	if ia == nil {
		return Point{}, false
	}
	if ia.Dragging == id && id != "" {
		return ia.DragTo, true
	}
	p, ok := ia.Pinned[id]
	return p, ok
}

// NetworkNode is the final position of one node.
type NetworkNode struct {
	ID     string  `json:"id" yaml:"id"`
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Degree int     `json:"degree" yaml:"degree"`
}

// NetworkSummary describes a network layout.
type NetworkSummary struct {
	Nodes      []NetworkNode `json:"nodes" yaml:"nodes"`
	Iterations int           `json:"iterations" yaml:"iterations"`
}

type netNode struct {
	id     string
	pos    Point
	disp   Point
	degree int
}

type netEdge struct {
	a, b   int
	weight float64
	row    int
}

// forceLayout is a Fruchterman-Reingold layout within bounds.
type forceLayout struct {
	nodes  []netNode
	edges  []netEdge
	bounds rect
	k      float64 // ideal edge length
}

// newForceLayout places nodes evenly on a circle in order of first
// appearance, so the result depends only on the data.
func newForceLayout(nodes []netNode, edges []netEdge, bounds rect) *forceLayout {
	cx, cy := (bounds.x0+bounds.x1)/2, (bounds.y0+bounds.y1)/2
	r := min(bounds.dx(), bounds.dy()) / 3
	for i := range nodes {
		a := 2 * math.Pi * float64(i) / float64(len(nodes))
		nodes[i].pos = Point{cx + r*math.Cos(a), cy + r*math.Sin(a)}
	}
	area := max(bounds.dx()*bounds.dy(), 1)
	return &forceLayout{
		nodes:  nodes,
		edges:  edges,
		bounds: bounds,
		k:      math.Sqrt(area / float64(max(len(nodes), 1))),
	}
}

// forceStep advances the layout by one step, moving no node farther than
// temp. Nodes held by ia stay where ia puts them.
func forceStep(l *forceLayout, ia *Interaction, temp float64) {
	const minDist = 0.01
	ns := l.nodes
	for i := range ns {
		ns[i].disp = Point{}
	}
	for i := range ns {
		for j := i + 1; j < len(ns); j++ {
			dx, dy := ns[i].pos.X-ns[j].pos.X, ns[i].pos.Y-ns[j].pos.Y
			d := max(math.Hypot(dx, dy), minDist)
			f := l.k * l.k / d
			ns[i].disp.X += dx / d * f
			ns[i].disp.Y += dy / d * f
			ns[j].disp.X -= dx / d * f
			ns[j].disp.Y -= dy / d * f
		}
	}
	for _, e := range l.edges {
		a, b := &ns[e.a], &ns[e.b]
		dx, dy := a.pos.X-b.pos.X, a.pos.Y-b.pos.Y
		d := max(math.Hypot(dx, dy), minDist)
		f := d * d / l.k * e.weight
		a.disp.X -= dx / d * f
		a.disp.Y -= dy / d * f
		b.disp.X += dx / d * f
		b.disp.Y += dy / d * f
	}

	cx, cy := (l.bounds.x0+l.bounds.x1)/2, (l.bounds.y0+l.bounds.y1)/2
	for i := range ns {
		n := &ns[i]
		if p, ok := ia.fixed(n.id); ok {
			n.pos = p
			continue
		}
		// Weak gravity keeps disconnected components on screen.
		n.disp.X += (cx - n.pos.X) * 0.05
		n.disp.Y += (cy - n.pos.Y) * 0.05
		d := math.Hypot(n.disp.X, n.disp.Y)
		if d > 0 {
			s := min(d, temp) / d
			n.pos.X += n.disp.X * s
			n.pos.Y += n.disp.Y * s
		}
		n.pos.X = min(max(n.pos.X, l.bounds.x0), l.bounds.x1)
		n.pos.Y = min(max(n.pos.Y, l.bounds.y0), l.bounds.y1)
	}
}

// network lays out the graph whose edges are the rows, from the
// categorical column to the legend column. The first visible series, if
// any, weights the edges.
func (c *Chart) network(f *frame) ([]Element, *NetworkSummary) {
	weight := -1
	if vis := c.visible(); len(vis) > 0 {
		weight = vis[0]
	}
	index := make(map[string]int)
	var nodes []netNode
	node := func(id string) int {
		i, ok := index[id]
		if !ok {
			i = len(nodes)
			index[id] = i
			nodes = append(nodes, netNode{id: id})
		}
		return i
	}
	var edges []netEdge
	var maxW float64
	for row, r := range c.tbl.Rows {
		src, dst := r.Cell(c.stringCol), r.Cell(c.legendCol)
		if src == nil || dst == nil {
			continue
		}
		w := 1.0
		if weight >= 0 {
			v, ok := table.Number(r.Cell(weight))
			if !ok || v <= 0 {
				continue
			}
			w = v
		}
		a, b := node(table.String(src)), node(table.String(dst))
		nodes[a].degree++
		nodes[b].degree++
		edges = append(edges, netEdge{a: a, b: b, weight: w, row: row})
		maxW = max(maxW, w)
	}
	if len(nodes) == 0 {
		return nil, nil
	}
	// Attraction uses weights relative to the heaviest edge.
	for i := range edges {
		edges[i].weight /= maxW
	}

	l := newForceLayout(nodes, edges, f.inner)
	iters := max(c.cfg.NetworkIterations, 1)
	temp := min(f.inner.dx(), f.inner.dy()) / 10
	for i := 0; i < iters; i++ {
		forceStep(l, c.cfg.Interaction, temp*(1-float64(i)/float64(iters)))
	}

	hovered := ""
	if c.cfg.Interaction != nil {
		hovered = c.cfg.Interaction.Hovered
	}
	valueCol := weight
	if valueCol < 0 {
		valueCol = c.legendCol
	}
	var out []Element
	for _, e := range l.edges {
		a, b := l.nodes[e.a], l.nodes[e.b]
		var d pathData
		d.moveTo(a.pos)
		d.lineTo(b.pos)
		opacity := 0.6
		if hovered != "" && a.id != hovered && b.id != hovered {
			opacity = 0.15
		}
		out = append(out, Element{
			Shape:       ShapePath,
			Path:        d.String(),
			Color:       "#999999",
			Opacity:     opacity,
			StrokeWidth: 1 + 3*e.weight,
			Tooltip:     fmt.Sprintf("%s → %s", a.id, b.id),
			Click:       c.click(e.row, valueCol),
		})
	}
	sum := &NetworkSummary{Iterations: iters}
	for i, n := range l.nodes {
		out = append(out, Element{
			Shape:   ShapeCircle,
			X:       n.pos.X,
			Y:       n.pos.Y,
			R:       4 + 2*math.Sqrt(float64(n.degree)),
			Color:   c.palette(i),
			Label:   n.id,
			Tooltip: fmt.Sprintf("%s: %d links", n.id, n.degree),
		})
		sum.Nodes = append(sum.Nodes, NetworkNode{ID: n.id, X: n.pos.X, Y: n.pos.Y, Degree: n.degree})
	}
	return out, sum
}
