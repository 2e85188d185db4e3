// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aclements/querychart/internal/table"
	"go.uber.org/zap"
)

// A Chart binds a table to a render configuration. Building a Chart
// classifies the table's columns once; every Render derives fresh scales
// from that classification.
type Chart struct {
	cfg *Config
	log *zap.Logger

	// src is the table as supplied. tbl is the table that is drawn,
	// which is src pivoted by the legend column if there is one.
	src, tbl *table.Table
	cls      table.Classification

	// catCol is the categorical column in src; stringCol is the same
	// column in tbl. Both are -1 if there is none.
	catCol, stringCol int
	// legendCol is the second categorical column in src, or -1.
	legendCol int
	// legendColumn is set when tbl is pivoted by the legend column.
	legendColumn *table.Column
	// measureTitle names the measure a pivoted table was built from.
	measureTitle string

	// series are the candidate number columns of tbl, hidden or not.
	series []int
}

// NewChart prepares tbl for drawing with cfg. A nil cfg uses
// [NewConfig].
//
// Series indices used by cfg's visibility state refer to the columns of
// [Chart.Table], which differs from tbl when the rows are pivoted into
// one series per legend value.
func NewChart(tbl *table.Table, cfg *Config) (*Chart, error) {
	if cfg == nil {
		cfg = NewConfig()
	}
	if tbl == nil || len(tbl.Rows) == 0 || len(tbl.Columns) == 0 {
		return nil, ErrNoData
	}
	if _, err := ParseChartType(string(cfg.ChartType)); err != nil {
		return nil, err
	}
	c := &Chart{
		cfg:       cfg,
		log:       cfg.logger(),
		src:       tbl,
		tbl:       tbl,
		cls:       table.Classify(tbl.Columns),
		catCol:    -1,
		stringCol: -1,
		legendCol: -1,
	}

	strs := c.cls.StringColumnIndices
	switch {
	case cfg.StringColumnIndex >= 0:
		if !slices.Contains(strs, cfg.StringColumnIndex) {
			return nil, fmt.Errorf("column %d cannot drive a categorical axis: %w", cfg.StringColumnIndex, table.ErrColumnIndex)
		}
		c.catCol = cfg.StringColumnIndex
	case len(strs) > 0:
		c.catCol = strs[0]
	}

	switch {
	case cfg.LegendColumnIndex >= 0:
		if !slices.Contains(strs, cfg.LegendColumnIndex) || cfg.LegendColumnIndex == c.catCol {
			return nil, fmt.Errorf("column %d cannot be a legend: %w", cfg.LegendColumnIndex, table.ErrColumnIndex)
		}
		c.legendCol = cfg.LegendColumnIndex
	default:
		candidates := shapeKeys(c.cls.Shape)
		if cfg.ChartType == ChartSankey || cfg.ChartType == ChartNetwork {
			candidates = strs
		}
		for _, k := range candidates {
			if k != c.catCol {
				c.legendCol = k
				break
			}
		}
	}

	numbers := c.cls.NumberColumnIndices
	if cfg.NumberColumnIndices != nil {
		for _, n := range cfg.NumberColumnIndices {
			if !slices.Contains(c.cls.NumberColumnIndices, n) {
				return nil, fmt.Errorf("column %d is not a number column: %w", n, table.ErrColumnIndex)
			}
		}
		numbers = cfg.NumberColumnIndices
	}

	c.stringCol = c.catCol
	if c.legendCol >= 0 && c.catCol >= 0 && len(numbers) > 0 && pivotsLegend(cfg.ChartType) {
		p, err := table.PivotOn(tbl, c.catCol, c.legendCol, numbers[0])
		if err != nil {
			return nil, fmt.Errorf("pivoting by %s: %w", tbl.Columns[c.legendCol].Name, err)
		}
		lc := tbl.Columns[c.legendCol]
		c.legendColumn = &lc
		c.measureTitle = tbl.Columns[numbers[0]].Title()
		c.tbl = p
		c.stringCol = 0
		numbers = table.Classify(p.Columns).NumberColumnIndices
	}
	c.series = numbers

	if err := c.check(); err != nil {
		return nil, err
	}
	return c, nil
}

func shapeKeys(s table.Shape) []int {
	switch s := s.(type) {
	case table.Pivot:
		return s.Keys
	case table.DatePivot:
		return s.Keys
	}
	return nil
}

// pivotsLegend reports whether chart type t draws a second categorical
// column as one series per value.
func pivotsLegend(t ChartType) bool {
	switch t {
	case ChartBar, ChartColumn, ChartLine, ChartStackedBar, ChartStackedColumn,
		ChartColumnLine, ChartHeatmap, ChartBubble:
		return true
	}
	return false
}

func (c *Chart) check() error {
	t := c.cfg.ChartType
	switch t {
	case ChartHistogram:
		if len(c.series) < 1 {
			return fmt.Errorf("%w: %s needs a number column", ErrUnsupportedChart, t)
		}
		return nil
	case ChartScatter:
		if len(c.series) < 2 {
			return fmt.Errorf("%w: %s needs two number columns", ErrUnsupportedChart, t)
		}
		return nil
	case ChartSankey, ChartNetwork:
		if c.catCol < 0 || c.legendCol < 0 {
			return fmt.Errorf("%w: %s needs two string columns", ErrUnsupportedChart, t)
		}
		return nil
	}
	if c.stringCol < 0 {
		return fmt.Errorf("%w: %s needs a string column", ErrUnsupportedChart, t)
	}
	if len(c.series) == 0 {
		return fmt.Errorf("%w: %s needs a number column", ErrUnsupportedChart, t)
	}
	return nil
}

// Table returns the table that is drawn.
func (c *Chart) Table() *table.Table { return c.tbl }

// Shape returns the shape of the supplied table.
func (c *Chart) Shape() table.Shape { return c.cls.Shape }

// Series returns the number columns of [Chart.Table] that are plotted as
// series, including hidden ones.
func (c *Chart) Series() []int { return slices.Clone(c.series) }

// WithStringColumn returns a chart of the same table whose categorical
// axis is driven by column col of the supplied table. The whole pipeline
// is rerun.
func (c *Chart) WithStringColumn(col int) (*Chart, error) {
	cfg := c.cfg.Clone()
	cfg.StringColumnIndex = col
	cfg.LegendColumnIndex = -1
	cfg.NumberColumnIndices = nil
	return NewChart(c.src, cfg)
}

// visible returns the series that are not hidden.
func (c *Chart) visible() []int {
	var out []int
	for _, s := range c.series {
		if !c.cfg.IsSeriesHidden(s) {
			out = append(out, s)
		}
	}
	return out
}

// seriesIndex returns the position of column col among the series. It
// selects the series colour.
func (c *Chart) seriesIndex(col int) int {
	return slices.Index(c.series, col)
}

func (c *Chart) color(col int) string {
	return c.palette(c.seriesIndex(col))
}

func (c *Chart) palette(i int) string {
	if c.cfg.ColorScale == nil {
		return DefaultColorScale(i)
	}
	return c.cfg.ColorScale(i)
}

// valueTitle names the measure axis for the given series.
func (c *Chart) valueTitle(cols []int) string {
	switch {
	case c.measureTitle != "":
		return c.measureTitle
	case len(cols) == 0:
		return ""
	case len(cols) == 1:
		return c.tbl.Columns[cols[0]].Title()
	}
	titles := make([]string, len(cols))
	for i, col := range cols {
		titles[i] = c.tbl.Columns[col].Title()
	}
	return strings.Join(titles, ", ")
}

// columnInfo describes a scale driven by column col of tbl.
func (c *Chart) columnInfo(col int, title string) ScaleInfo {
	var column table.Column
	if col >= 0 && col < len(c.tbl.Columns) {
		column = c.tbl.Columns[col]
	}
	if title == "" {
		title = column.Title()
	}
	return ScaleInfo{
		Column: column,
		Title:  title,
		Format: func(v any) string { return c.cfg.format(v, column) },
	}
}

// Rendered is the result of laying out a chart.
type Rendered struct {
	ChartType ChartType `json:"chartType" yaml:"chartType"`
	Shape     string    `json:"shape" yaml:"shape"`
	Width     float64   `json:"width" yaml:"width"`
	Height    float64   `json:"height" yaml:"height"`
	Margins   Margins   `json:"margins" yaml:"margins"`
	// Passes is the number of measurement passes the layout took.
	Passes int `json:"passes" yaml:"passes"`
	// MeasureFallback is set when text could not be measured and
	// default margins were used.
	MeasureFallback bool `json:"measureFallback,omitempty" yaml:"measureFallback,omitempty"`

	XAxis  *AxisLayout `json:"xAxis,omitempty" yaml:"xAxis,omitempty"`
	YAxis  *AxisLayout `json:"yAxis,omitempty" yaml:"yAxis,omitempty"`
	Y2Axis *AxisLayout `json:"y2Axis,omitempty" yaml:"y2Axis,omitempty"`

	Elements []Element       `json:"elements" yaml:"elements"`
	Legend   []LegendItem    `json:"legend,omitempty" yaml:"legend,omitempty"`
	LegendX  float64         `json:"legendX,omitempty" yaml:"legendX,omitempty"`
	Average  *ReferenceLine  `json:"average,omitempty" yaml:"average,omitempty"`
	Font     FontStyle       `json:"font" yaml:"font"`
	Plot     [4]float64      `json:"plot" yaml:"plot"` // x0, y0, x1, y1
	Network  *NetworkSummary `json:"network,omitempty" yaml:"network,omitempty"`
}

// ReferenceLine is a straight line across the plot at a measure value.
type ReferenceLine struct {
	Value    float64 `json:"value" yaml:"value"`
	Position float64 `json:"position" yaml:"position"`
	// Vertical is set when the measure axis is horizontal.
	Vertical bool   `json:"vertical,omitempty" yaml:"vertical,omitempty"`
	Label    string `json:"label" yaml:"label"`
}

// Render lays out the chart, measuring labels with m, and returns its
// axes and geometry. A nil m or a failing measurer falls back to
// [DefaultMargins] without rotating labels.
func (c *Chart) Render(m TextMeasurer) (*Rendered, error) {
	legend := c.legend()
	lay := layoutState{margins: c.cfg.Margins}
	maxPasses := max(c.cfg.MaxLayoutPasses, 1)

	var f *frame
	passes, fallback := 0, false
	for passes < maxPasses {
		passes++
		f = c.frame(lay)
		meas, err := c.measure(m, f, legend)
		if err != nil {
			c.log.Warn("text measurement failed, using default margins",
				zap.Int("pass", passes), zap.Error(err))
			lay = layoutState{margins: DefaultMargins}
			f = c.frame(lay)
			fallback = true
			break
		}
		next, again := computeLayout(lay, meas, c.cfg)
		c.log.Debug("layout pass",
			zap.Int("pass", passes),
			zap.Any("margins", next.margins),
			zap.Bool("rotate", next.rotate),
			zap.Bool("remeasure", again))
		if !again {
			break
		}
		lay = next
		f = nil
	}
	if f == nil {
		// Out of passes; accept the last layout without measuring it.
		f = c.frame(lay)
	}

	r := &Rendered{
		ChartType:       c.cfg.ChartType,
		Shape:           c.cls.Shape.String(),
		Width:           c.cfg.Width,
		Height:          c.cfg.Height,
		Margins:         lay.margins,
		Passes:          passes,
		MeasureFallback: fallback,
		XAxis:           f.axes.Get(AxisX),
		YAxis:           f.axes.Get(AxisY),
		Y2Axis:          f.axes.Get(AxisY2),
		Legend:          legend,
		LegendX:         lay.legendX,
		Font:            c.cfg.Font,
		Plot:            [4]float64{f.inner.x0, f.inner.y0, f.inner.x1, f.inner.y1},
	}

	switch c.cfg.ChartType {
	case ChartColumn, ChartBar:
		r.Elements = c.groupedBars(f)
	case ChartStackedColumn, ChartStackedBar:
		r.Elements = c.stackedBars(f)
	case ChartLine:
		r.Elements = c.lines(f, c.visible(), f.value)
	case ChartColumnLine:
		r.Elements = c.columnLine(f)
	case ChartPie:
		r.Elements = c.pie(f)
	case ChartHeatmap:
		r.Elements = c.heatmap(f)
	case ChartBubble:
		r.Elements = c.bubbles(f)
	case ChartHistogram:
		r.Elements = c.histogram(f)
	case ChartScatter:
		r.Elements = c.scatter(f)
	case ChartSankey:
		r.Elements = c.sankey(f)
	case ChartNetwork:
		r.Elements, r.Network = c.network(f)
	}
	if r.Elements == nil {
		r.Elements = []Element{}
	}
	if c.cfg.ShowAverage {
		r.Average = c.average(f)
	}
	return r, nil
}

// average returns the reference line at the mean of the visible series.
func (c *Chart) average(f *frame) *ReferenceLine {
	if f.value == nil {
		return nil
	}
	var cols []int
	switch c.cfg.ChartType {
	case ChartHistogram, ChartScatter, ChartHeatmap, ChartBubble:
		return nil
	case ChartColumnLine:
		cols = c.visible()
		if len(cols) > 1 {
			cols = cols[:1]
		}
	default:
		cols = c.visible()
	}
	avg, ok := Average(c.tbl.Rows, cols, c.cfg.ChartType)
	if !ok {
		return nil
	}
	col := table.Column{Type: table.TypeQuantity}
	if len(cols) > 0 {
		col = c.tbl.Columns[cols[0]]
	}
	return &ReferenceLine{
		Value:    avg,
		Position: f.value.Map(avg),
		Vertical: c.cfg.ChartType.horizontal(),
		Label:    "Average: " + c.cfg.format(avg, col),
	}
}

// legend returns the legend entries for the chart type.
func (c *Chart) legend() []LegendItem {
	switch c.cfg.ChartType {
	case ChartPie:
		return categoryLegend(c.pieCategories(), c.cfg.ColorScale)
	case ChartHistogram, ChartScatter, ChartSankey, ChartNetwork, ChartHeatmap, ChartBubble:
		return nil
	}
	return Legend(c.tbl.Columns, c.series, c.cfg.IsSeriesHidden, c.cfg.ColorScale)
}

// selectors returns the column choices for the categorical and measure
// axes, in terms of the supplied table.
func (c *Chart) selectors() (cat, measure *Selector) {
	if strs := c.cls.StringColumnIndices; len(strs) > 1 && c.catCol >= 0 {
		cat = &Selector{Options: slices.Clone(strs), Selected: c.catCol}
	}
	if nums := c.cls.NumberColumnIndices; len(nums) > 1 && c.legendColumn == nil {
		sel := -1
		if vis := c.visible(); len(vis) > 0 {
			sel = vis[0]
		}
		measure = &Selector{Options: slices.Clone(nums), Selected: sel}
	}
	return
}
