// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"fmt"
	"math"
	"time"

	"github.com/aclements/querychart/internal/table"
)

// Pixel constants of the axis decorations.
const (
	tickSize      = 6
	tickPadding   = 4
	titlePadding  = 8
	edgePadding   = 4
	legendSwatch  = 12
	legendGap     = 6
	rotateSlack   = 2   // px a label may overhang its tick span unrotated
	marginSlack   = 0.5 // px change that does not warrant a remeasure
	maxSideMargin = 0.4 // of the width
	maxBottom     = 0.5 // of the height
)

var diag = math.Sqrt2 / 2 // sin and cos of 45°

// AxisLayout is one computed axis.
type AxisLayout struct {
	Axis  Axis      `json:"-" yaml:"-"`
	Name  string    `json:"name" yaml:"name"`
	Scale Scale     `json:"-" yaml:"-"`
	Kind  ScaleKind `json:"kind" yaml:"kind"`
	Title string    `json:"title" yaml:"title"`
	Ticks []Tick    `json:"ticks" yaml:"ticks"`
	// Rotate is set when tick labels are drawn at 45°.
	Rotate bool       `json:"rotate,omitempty" yaml:"rotate,omitempty"`
	Range  [2]float64 `json:"range" yaml:"range"`
	// Selector lists the columns that could drive this axis.
	Selector *Selector `json:"selector,omitempty" yaml:"selector,omitempty"`
}

// Selector offers a choice of driving column for an axis. Choosing one
// rebuilds the chart with [Chart.WithStringColumn].
type Selector struct {
	Options  []int `json:"options" yaml:"options"`
	Selected int   `json:"selected" yaml:"selected"`
}

// layoutState is the result of one pass of the margin engine.
type layoutState struct {
	margins Margins
	rotate  bool
	// legendX is the left edge of the legend, or 0 if there is none.
	legendX float64
}

type rect struct {
	x0, y0, x1, y1 float64
}

func (r rect) dx() float64 { return r.x1 - r.x0 }
func (r rect) dy() float64 { return r.y1 - r.y0 }

// A frame is the set of scales for one layout state. Frames are rebuilt
// from scratch on every pass.
type frame struct {
	lay   layoutState
	inner rect
	axes  axisMap[*AxisLayout]

	// band is the categorical axis. band2 is the series axis of
	// heatmaps and bubbles.
	band, band2 *BandScale
	time        *TimeScale
	// value is the primary measure axis and value2 the secondary one.
	value, value2 *LinearScale
	// xlin is the horizontal measure of scatter plots and histograms.
	xlin *LinearScale
	bins []Bin
}

// frame derives every scale of the chart for lay.
func (c *Chart) frame(lay layoutState) *frame {
	cfg := c.cfg
	m := lay.margins
	f := &frame{lay: lay}
	f.inner = rect{
		x0: m.Left,
		y0: m.Top,
		x1: max(m.Left, cfg.Width-m.Right),
		y1: max(m.Top, cfg.Height-m.Bottom),
	}
	if !cfg.ChartType.hasAxes() {
		return f
	}

	in := f.inner
	rows := c.tbl.Rows
	vis := c.visible()
	pad := cfg.bandPadding()
	yTicks := maxTicksFor(in.dy(), 40)
	xTicks := maxTicksFor(in.dx(), 80)
	linOpt := func(n int) LinearOptions {
		return LinearOptions{Scaled: cfg.Scaled, Nice: true, MaxTicks: n}
	}

	switch cfg.ChartType {
	case ChartColumn, ChartStackedColumn, ChartLine:
		f.categoryX(c, rows, pad, xTicks)
		f.value = NewLinearScale(c.valueBounds(vis), in.y1, in.y0, linOpt(yTicks), c.valueInfo(vis))

	case ChartColumnLine:
		f.categoryX(c, rows, pad, xTicks)
		var bars, lines []int
		if len(vis) > 0 {
			bars, lines = vis[:1], vis[1:]
		}
		p := LinearDomain(MinMax(rows, bars), linOpt(yTicks))
		if len(lines) == 0 {
			f.value = newLinearScale(p, in.y1, in.y0, nil, yTicks, c.valueInfo(bars))
			break
		}
		s := LinearDomain(MinMax(rows, lines), linOpt(yTicks))
		p, s = SyncDomains(p, s)
		f.value = newLinearScale(p, in.y1, in.y0, nil, yTicks, c.valueInfo(bars))
		f.value2 = newLinearScale(s, in.y1, in.y0, alignTicks(f.value.Ticks(), p, s), yTicks, c.valueInfo(lines))

	case ChartBar, ChartStackedBar:
		f.band = BandScaleOf(rows, c.stringCol, in.y0, in.y1, pad, c.categoryInfo())
		f.value = NewLinearScale(c.valueBounds(vis), in.x0, in.x1, linOpt(xTicks), c.valueInfo(vis))

	case ChartHeatmap, ChartBubble:
		f.band = BandScaleOf(rows, c.stringCol, in.x0, in.x1, pad, c.categoryInfo())
		names := make([]string, len(vis))
		for i, s := range vis {
			names[i] = c.tbl.Columns[s].Title()
		}
		title := ""
		if c.legendColumn != nil {
			title = c.legendColumn.Title()
		}
		f.band2 = NewBandScale(names, in.y0, in.y1, pad, ScaleInfo{Title: title})

	case ChartHistogram:
		col := -1
		if len(vis) > 0 {
			col = vis[0]
			f.bins = Bins(rows, col, cfg.Thresholds)
		}
		xd, maxCount := Bounds{0, 1}, 0
		if len(f.bins) > 0 {
			xd = Bounds{f.bins[0].X0, f.bins[len(f.bins)-1].X1}
			for _, b := range f.bins {
				maxCount = max(maxCount, b.Count)
			}
		}
		f.xlin = newLinearScale(xd, in.x0, in.x1, nil, xTicks, c.columnInfo(col, ""))
		f.value = NewLinearScale(Bounds{0, float64(maxCount)}, in.y1, in.y0,
			LinearOptions{Nice: true, MaxTicks: yTicks},
			ScaleInfo{Title: "Count", Format: func(v any) string {
				return c.cfg.format(v, table.Column{Type: table.TypeQuantity})
			}})

	case ChartScatter:
		xc, yc := -1, -1
		if len(vis) >= 2 {
			xc, yc = vis[0], vis[1]
		}
		f.xlin = NewLinearScale(MinMax(rows, []int{xc}), in.x0, in.x1, linOpt(xTicks), c.columnInfo(xc, ""))
		f.value = NewLinearScale(MinMax(rows, []int{yc}), in.y1, in.y0, linOpt(yTicks), c.columnInfo(yc, ""))
	}

	f.buildAxes(c)
	return f
}

// categoryX puts the categorical column on the X axis, as a time scale
// for line charts over raw dated rows and as a band scale otherwise.
func (f *frame) categoryX(c *Chart, rows []table.Row, pad BandPadding, maxTicks int) {
	in := f.inner
	if c.cfg.ChartType == ChartLine {
		if _, list := c.cls.Shape.(table.List); list && c.tbl.Columns[c.stringCol].Type == table.TypeDate {
			if tmin, tmax, ok := c.timeBounds(); ok {
				f.time = NewTimeScale(tmin, tmax, in.x0, in.x1, maxTicks, c.cfg.DataFormatting.DateFormat, c.categoryInfo())
				return
			}
		}
	}
	f.band = BandScaleOf(rows, c.stringCol, in.x0, in.x1, pad, c.categoryInfo())
}

// timeBounds returns the extent of the parseable dates of the
// categorical column.
func (c *Chart) timeBounds() (tmin, tmax time.Time, ok bool) {
	for _, r := range c.tbl.Rows {
		t, err := ParseDate(r.Cell(c.stringCol), c.cfg.DataFormatting.DateFormat)
		if err != nil {
			continue
		}
		if !ok || t.Before(tmin) {
			tmin = t
		}
		if !ok || t.After(tmax) {
			tmax = t
		}
		ok = true
	}
	return
}

// valueBounds returns the data bounds of the measure axis for the visible
// series.
func (c *Chart) valueBounds(vis []int) Bounds {
	if c.cfg.ChartType.IsStacked() {
		return StackedMinMax(c.tbl.Rows, c.stringCol, vis)
	}
	return MinMax(c.tbl.Rows, vis)
}

func (c *Chart) valueInfo(cols []int) ScaleInfo {
	col := -1
	if len(cols) > 0 {
		col = cols[0]
	} else if len(c.series) > 0 {
		col = c.series[0]
	}
	return c.columnInfo(col, c.valueTitle(cols))
}

func (c *Chart) categoryInfo() ScaleInfo {
	return c.columnInfo(c.stringCol, "")
}

// buildAxes computes the ticks of every scale in f.
func (f *frame) buildAxes(c *Chart) {
	cfg := c.cfg
	in := f.inner
	maxChars := cfg.MaxLabelChars
	catSel, valSel := c.selectors()

	axis := func(a Axis, s Scale, ticks []Tick, sel *Selector) {
		lo, hi := s.Range()
		ax := &AxisLayout{
			Axis:     a,
			Name:     a.Name(),
			Scale:    s,
			Kind:     s.Kind(),
			Title:    s.Title(),
			Ticks:    ticks,
			Range:    [2]float64{lo, hi},
			Selector: sel,
		}
		if t := cfg.axisTitles.Get(a); t != "" {
			ax.Title = t
		}
		if a == AxisX {
			ax.Rotate = f.lay.rotate
		}
		f.axes.Set(a, ax)
	}

	switch cfg.ChartType {
	case ChartBar, ChartStackedBar:
		axis(AxisY, f.band, bandTicks(f.band, in.dy(), cfg.MinTickSpacing, maxChars), catSel)
		axis(AxisX, f.value, linearTicks(f.value, maxChars), valSel)
		return
	case ChartHeatmap, ChartBubble:
		axis(AxisX, f.band, bandTicks(f.band, in.dx(), cfg.MinTickSpacing, maxChars), catSel)
		axis(AxisY, f.band2, bandTicks(f.band2, in.dy(), cfg.MinTickSpacing, maxChars), nil)
		return
	case ChartHistogram, ChartScatter:
		axis(AxisX, f.xlin, linearTicks(f.xlin, maxChars), valSel)
		axis(AxisY, f.value, linearTicks(f.value, maxChars), nil)
		return
	}
	if f.time != nil {
		axis(AxisX, f.time, timeTicksOf(f.time, maxChars), catSel)
	} else {
		axis(AxisX, f.band, bandTicks(f.band, in.dx(), cfg.MinTickSpacing, maxChars), catSel)
	}
	axis(AxisY, f.value, linearTicks(f.value, maxChars), valSel)
	if f.value2 != nil {
		axis(AxisY2, f.value2, linearTicks(f.value2, maxChars), nil)
	}
}

// measurements are the label extents of one frame.
type measurements struct {
	present axisMap[bool]
	labels  axisMap[labelSize]
	// titles holds the line height of each axis title, or 0.
	titles axisMap[float64]
	// tickSpan is the pixel room each X tick label has unrotated.
	tickSpan float64
	legend   labelSize
	legendN  int
}

func (m measurements) String() string {
	return fmt.Sprintf("labels=%v titles=%v span=%g legend=%v", m.labels.String(), m.titles.String(), m.tickSpan, m.legend)
}

// measure measures every label f would draw.
func (c *Chart) measure(m TextMeasurer, f *frame, legend []LegendItem) (measurements, error) {
	var meas measurements
	titleFont := c.cfg.Font
	titleFont.Weight = "bold"
	for a := Axis(0); a < axisMax; a++ {
		ax := f.axes.Get(a)
		if ax == nil {
			continue
		}
		labels := make([]string, len(ax.Ticks))
		for i, t := range ax.Ticks {
			labels[i] = t.Label
		}
		ls, err := measureLabels(m, labels, c.cfg.Font)
		if err != nil {
			return meas, fmt.Errorf("%s axis: %w", a.Name(), err)
		}
		meas.present.Set(a, true)
		meas.labels.Set(a, ls)
		if ax.Title != "" {
			ts, err := measureLabels(m, []string{ax.Title}, titleFont)
			if err != nil {
				return meas, fmt.Errorf("%s axis title: %w", a.Name(), err)
			}
			meas.titles.Set(a, ts.height)
		}
	}
	if x := f.axes.Get(AxisX); x != nil && len(x.Ticks) > 0 {
		if b, ok := x.Scale.(*BandScale); ok && len(x.Ticks) == len(b.domain) {
			meas.tickSpan = b.Step()
		} else {
			meas.tickSpan = f.inner.dx() / float64(len(x.Ticks))
		}
	}
	if len(legend) > 1 {
		labels := make([]string, len(legend))
		for i, it := range legend {
			labels[i] = it.Label
		}
		ls, err := measureLabels(m, labels, c.cfg.Font)
		if err != nil {
			return meas, fmt.Errorf("legend: %w", err)
		}
		meas.legend, meas.legendN = ls, len(legend)
	}
	return meas, nil
}

// computeLayout derives margins and label rotation from meas. It reports
// whether the result differs enough from prev that labels must be
// measured again.
func computeLayout(prev layoutState, meas measurements, cfg *Config) (layoutState, bool) {
	next := layoutState{margins: cfg.Margins}
	titleExtent := func(a Axis) float64 {
		if h := meas.titles.Get(a); h > 0 {
			return h + titlePadding
		}
		return 0
	}

	if meas.present.Get(AxisX) {
		ls := meas.labels.Get(AxisX)
		next.rotate = ls.width > meas.tickSpan+rotateSlack
		ext := ls.height
		if next.rotate {
			ext = (ls.width + ls.height) * diag
		}
		next.margins.Bottom = tickSize + tickPadding + ext + titleExtent(AxisX) + edgePadding
	}
	if meas.present.Get(AxisY) {
		ls := meas.labels.Get(AxisY)
		next.margins.Left = tickSize + tickPadding + ls.width + titleExtent(AxisY) + edgePadding
	}
	if meas.present.Get(AxisY2) {
		ls := meas.labels.Get(AxisY2)
		next.margins.Right = tickSize + tickPadding + ls.width + titleExtent(AxisY2) + edgePadding
	}
	if meas.legendN > 0 {
		w := legendSwatch + legendGap + meas.legend.width + edgePadding
		next.margins.Right += w
		next.legendX = max(0, cfg.Width-w)
	}

	next.margins.Left = min(next.margins.Left, maxSideMargin*cfg.Width)
	next.margins.Right = min(next.margins.Right, maxSideMargin*cfg.Width)
	next.margins.Bottom = min(next.margins.Bottom, maxBottom*cfg.Height)

	moved := func(a, b float64) bool { return math.Abs(a-b) > marginSlack }
	p, n := prev.margins, next.margins
	again := prev.rotate != next.rotate ||
		moved(p.Top, n.Top) || moved(p.Right, n.Right) ||
		moved(p.Bottom, n.Bottom) || moved(p.Left, n.Left)
	return next, again
}
