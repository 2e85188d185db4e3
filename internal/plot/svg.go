// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"bufio"
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
)

// SVG writes r as a standalone SVG document.
func (r *Rendered) SVG(w io.Writer) error {
	bw := bufio.NewWriter(w)
	canvas := svg.New(bw)
	width, height := int(math.Ceil(r.Width)), int(math.Ceil(r.Height))
	canvas.Start(width, height, fmt.Sprintf(`font-family=%q font-size="%.6gpx"`, r.Font.Family, r.Font.Size))
	canvas.Rect(0, 0, width, height, "fill:white")

	for _, e := range r.Elements {
		drawElement(canvas, e)
	}
	if a := r.Average; a != nil {
		x0, y0, x1, y1 := r.Plot[0], r.Plot[1], r.Plot[2], r.Plot[3]
		if a.Vertical {
			x0, x1 = a.Position, a.Position
		} else {
			y0, y1 = a.Position, a.Position
		}
		canvas.Group()
		canvas.Title(a.Label)
		canvas.Line(px(x0), px(y0), px(x1), px(y1), "stroke:#555;stroke-dasharray:4 3")
		canvas.Gend()
	}
	for _, ax := range []*AxisLayout{r.XAxis, r.YAxis, r.Y2Axis} {
		if ax != nil {
			drawAxis(canvas, r, ax)
		}
	}
	drawLegend(canvas, r)

	canvas.End()
	return bw.Flush()
}

func px(f float64) int {
	return int(math.Round(f))
}

func drawElement(canvas *svg.SVG, e Element) {
	style := "fill:" + e.Color
	if e.Opacity > 0 {
		style += fmt.Sprintf(";fill-opacity:%.3g", e.Opacity)
	}
	if e.Tooltip != "" {
		canvas.Group()
		canvas.Title(e.Tooltip)
		defer canvas.Gend()
	}
	switch e.Shape {
	case ShapeRect:
		canvas.Rect(px(e.X), px(e.Y), max(1, px(e.Width)), max(1, px(e.Height)), style)
	case ShapeCircle:
		canvas.Circle(px(e.X), px(e.Y), max(1, px(e.R)), style)
	case ShapeArc:
		canvas.Path(e.Path, style+";stroke:white")
	case ShapePath:
		if e.StrokeWidth > 0 {
			stroke := fmt.Sprintf("fill:none;stroke:%s;stroke-width:%.3g", e.Color, e.StrokeWidth)
			if e.Opacity > 0 {
				stroke += fmt.Sprintf(";stroke-opacity:%.3g", e.Opacity)
			}
			canvas.Path(e.Path, stroke)
		} else {
			canvas.Path(e.Path, style)
		}
	}
}

func drawAxis(canvas *svg.SVG, r *Rendered, ax *AxisLayout) {
	x0, y0, x1, y1 := r.Plot[0], r.Plot[1], r.Plot[2], r.Plot[3]
	const axisStyle = "stroke:#888;fill:none"
	var d pathData
	switch ax.Axis {
	case AxisX:
		d.moveTo(Point{x0, y1})
		d.lineTo(Point{x1, y1})
		for _, t := range ax.Ticks {
			d.moveTo(Point{t.Position, y1})
			d.lineTo(Point{t.Position, y1 + tickSize})
		}
	case AxisY:
		d.moveTo(Point{x0, y0})
		d.lineTo(Point{x0, y1})
		for _, t := range ax.Ticks {
			d.moveTo(Point{x0, t.Position})
			d.lineTo(Point{x0 - tickSize, t.Position})
		}
	case AxisY2:
		d.moveTo(Point{x1, y0})
		d.lineTo(Point{x1, y1})
		for _, t := range ax.Ticks {
			d.moveTo(Point{x1, t.Position})
			d.lineTo(Point{x1 + tickSize, t.Position})
		}
	}
	canvas.Path(d.String(), axisStyle)

	off := float64(tickSize + tickPadding)
	for _, t := range ax.Ticks {
		if t.Truncated {
			canvas.Group()
			canvas.Title(t.FullLabel)
		}
		switch ax.Axis {
		case AxisX:
			x, y := px(t.Position), px(y1+off)
			if ax.Rotate {
				canvas.Text(x, y, t.Label, fmt.Sprintf(`text-anchor="end" dy=".7em" transform="rotate(-45 %d %d)"`, x, y))
			} else {
				canvas.Text(x, y, t.Label, `text-anchor="middle" dy=".7em"`)
			}
		case AxisY:
			canvas.Text(px(x0-off), px(t.Position), t.Label, `text-anchor="end" dy=".3em"`)
		case AxisY2:
			canvas.Text(px(x1+off), px(t.Position), t.Label, `text-anchor="start" dy=".3em"`)
		}
		if t.Truncated {
			canvas.Gend()
		}
	}

	if ax.Title == "" {
		return
	}
	const titleStyle = `text-anchor="middle" font-weight="bold"`
	switch ax.Axis {
	case AxisX:
		canvas.Text(px((x0+x1)/2), px(r.Height-edgePadding), ax.Title, titleStyle)
	case AxisY:
		x, y := px(edgePadding), px((y0+y1)/2)
		canvas.Text(x, y, ax.Title, titleStyle+fmt.Sprintf(` dy="1em" transform="rotate(-90 %d %d)"`, x, y))
	case AxisY2:
		x, y := px(r.Width-edgePadding), px((y0+y1)/2)
		canvas.Text(x, y, ax.Title, titleStyle+fmt.Sprintf(` transform="rotate(90 %d %d)" dy="1em"`, x, y))
	}
}

func drawLegend(canvas *svg.SVG, r *Rendered) {
	if len(r.Legend) < 2 {
		return
	}
	x := r.LegendX
	if x == 0 {
		x = r.Width - r.Margins.Right + edgePadding
	}
	y := r.Plot[1]
	lineHeight := max(r.Font.Size*1.4, legendSwatch+2)
	for _, it := range r.Legend {
		style := "fill:" + it.Color
		if it.Hidden {
			style += ";fill-opacity:0.25"
		}
		canvas.Rect(px(x), px(y), legendSwatch, legendSwatch, style)
		canvas.Text(px(x+legendSwatch+legendGap), px(y+legendSwatch/2), it.Label, `dy=".3em"`)
		y += lineHeight
	}
}
