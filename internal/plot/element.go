// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"fmt"

	"github.com/aclements/querychart/internal/table"
)

// ElementShape is the primitive an [Element] is drawn with.
type ElementShape string

const (
	ShapeRect   ElementShape = "rect"
	ShapeCircle ElementShape = "circle"
	ShapePath   ElementShape = "path"
	ShapeArc    ElementShape = "arc"
)

// heightEpsilon is the smallest bar extent, in pixels, that is drawn.
// Thinner bars are dropped so they cannot be clicked.
const heightEpsilon = 0.05

// An Element is one piece of chart geometry.
type Element struct {
	Shape ElementShape `json:"shape" yaml:"shape"`

	// Rect and circle geometry.
	X      float64 `json:"x,omitempty" yaml:"x,omitempty"`
	Y      float64 `json:"y,omitempty" yaml:"y,omitempty"`
	Width  float64 `json:"width,omitempty" yaml:"width,omitempty"`
	Height float64 `json:"height,omitempty" yaml:"height,omitempty"`
	R      float64 `json:"r,omitempty" yaml:"r,omitempty"`

	// Path holds SVG path data for paths and arcs.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
	// Arc angles are in radians, clockwise from 12 o'clock.
	StartAngle float64 `json:"startAngle,omitempty" yaml:"startAngle,omitempty"`
	EndAngle   float64 `json:"endAngle,omitempty" yaml:"endAngle,omitempty"`

	Color       string  `json:"color" yaml:"color"`
	Opacity     float64 `json:"opacity,omitempty" yaml:"opacity,omitempty"`
	StrokeWidth float64 `json:"strokeWidth,omitempty" yaml:"strokeWidth,omitempty"`
	Label       string  `json:"label,omitempty" yaml:"label,omitempty"`
	Tooltip     string  `json:"tooltip,omitempty" yaml:"tooltip,omitempty"`

	// Click is nil for elements that cannot be clicked.
	Click *ClickPayload `json:"click,omitempty" yaml:"click,omitempty"`
}

// ClickPayload is handed to the host when an element is clicked.
type ClickPayload struct {
	Row               table.Row     `json:"row" yaml:"row"`
	RowIndex          int           `json:"rowIndex" yaml:"rowIndex"`
	ColumnIndex       int           `json:"columnIndex" yaml:"columnIndex"`
	StringColumnIndex int           `json:"stringColumnIndex" yaml:"stringColumnIndex"`
	LegendColumn      *table.Column `json:"legendColumn,omitempty" yaml:"legendColumn,omitempty"`
	// ActiveKey identifies the element across the whole chart.
	ActiveKey string  `json:"activeKey" yaml:"activeKey"`
	Filter    *Filter `json:"filter,omitempty" yaml:"filter,omitempty"`
}

// ActiveKey returns the key of the element for column col of row row.
// At most one element of a chart has a given key.
func ActiveKey(col, row int) string {
	return fmt.Sprintf("%d-%d", col, row)
}

// click builds the payload for the cell at (row, col) of the chart's
// table.
func (c *Chart) click(row, col int) *ClickPayload {
	r := c.tbl.Rows[row]
	p := &ClickPayload{
		Row:               r,
		RowIndex:          row,
		ColumnIndex:       col,
		StringColumnIndex: c.stringCol,
		LegendColumn:      c.legendColumn,
		ActiveKey:         ActiveKey(col, row),
	}
	if c.stringCol >= 0 {
		p.Filter = BuildFilter(c.tbl.Columns[c.stringCol], r.Cell(c.stringCol), c.cfg.DataFormatting, c.log)
	}
	return p
}

// tooltip describes the cell at (row, col).
func (c *Chart) tooltip(row, col int) string {
	r := c.tbl.Rows[row]
	val := c.cfg.format(r.Cell(col), c.tbl.Columns[col])
	if c.stringCol < 0 {
		return fmt.Sprintf("%s: %s", c.tbl.Columns[col].Title(), val)
	}
	cat := c.cfg.format(r.Cell(c.stringCol), c.tbl.Columns[c.stringCol])
	return fmt.Sprintf("%s: %s\n%s: %s",
		c.tbl.Columns[c.stringCol].Title(), cat,
		c.tbl.Columns[col].Title(), val)
}
