// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aclements/querychart/internal/table"
	"go.uber.org/zap"
)

var (
	// ErrNoData is returned when a table has nothing that can be plotted.
	ErrNoData = errors.New("no data")
	// ErrUnsupportedChart is returned when a chart type cannot be drawn
	// from the table's columns.
	ErrUnsupportedChart = errors.New("unsupported chart")
)

// ChartType selects the geometry and aggregation a chart uses.
type ChartType string

const (
	ChartBar           ChartType = "bar"
	ChartColumn        ChartType = "column"
	ChartLine          ChartType = "line"
	ChartPie           ChartType = "pie"
	ChartStackedBar    ChartType = "stacked_bar"
	ChartStackedColumn ChartType = "stacked_column"
	ChartColumnLine    ChartType = "column_line"
	ChartHeatmap       ChartType = "heatmap"
	ChartBubble        ChartType = "bubble"
	ChartHistogram     ChartType = "histogram"
	ChartScatter       ChartType = "scatter"
	ChartSankey        ChartType = "sankey"
	ChartNetwork       ChartType = "network"
)

var chartTypes = []ChartType{
	ChartBar, ChartColumn, ChartLine, ChartPie, ChartStackedBar,
	ChartStackedColumn, ChartColumnLine, ChartHeatmap, ChartBubble,
	ChartHistogram, ChartScatter, ChartSankey, ChartNetwork,
}

// ParseChartType is the inverse of the ChartType string.
func ParseChartType(s string) (ChartType, error) {
	t := ChartType(strings.ToLower(strings.TrimSpace(s)))
	for _, ct := range chartTypes {
		if ct == t {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedChart, s)
}

// IsStacked reports whether series of t are summed per category.
func (t ChartType) IsStacked() bool {
	return t == ChartStackedBar || t == ChartStackedColumn
}

// horizontal reports whether t puts categories on the Y axis.
func (t ChartType) horizontal() bool {
	return t == ChartBar || t == ChartStackedBar
}

// hasAxes reports whether t is drawn in a Cartesian frame.
func (t ChartType) hasAxes() bool {
	switch t {
	case ChartPie, ChartSankey, ChartNetwork:
		return false
	}
	return true
}

// DataFormatting is the host's display configuration. It is passed
// through to the [Formatter] untouched.
type DataFormatting struct {
	CurrencyCode string `json:"currencyCode" yaml:"currencyCode" mapstructure:"currencyCode"`
	LanguageCode string `json:"languageCode" yaml:"languageCode" mapstructure:"languageCode"`
	// NumberFormat "full" disables compact quantities.
	NumberFormat string `json:"numberFormat" yaml:"numberFormat" mapstructure:"numberFormat"`
	// DateFormat, if set, is a Go time layout used for date labels and
	// tried first when parsing dates.
	DateFormat string `json:"dateFormat" yaml:"dateFormat" mapstructure:"dateFormat"`
}

// Margins are the pixel gutters around the plotting area.
type Margins struct {
	Top    float64 `json:"top" yaml:"top"`
	Right  float64 `json:"right" yaml:"right"`
	Bottom float64 `json:"bottom" yaml:"bottom"`
	Left   float64 `json:"left" yaml:"left"`
}

// DefaultMargins are used before the first measurement and whenever text
// cannot be measured.
var DefaultMargins = Margins{Top: 20, Right: 20, Bottom: 60, Left: 70}

// BandPadding is the d3-style padding of a band scale, as fractions of
// the band step.
type BandPadding struct {
	Inner, Outer float64
}

// Config is the input of one render pass.
type Config struct {
	ChartType ChartType

	// Width and Height are the outer size of the chart in pixels.
	Width, Height float64
	// Margins are the starting margins. The layout engine grows them
	// to fit labels.
	Margins Margins

	DataFormatting DataFormatting

	// StringColumnIndex selects the column that drives the categorical
	// axis, or -1 to pick the first string-like column.
	StringColumnIndex int
	// LegendColumnIndex selects the second categorical column of pivot
	// data, or -1 to pick the second groupable column if there is one.
	LegendColumnIndex int
	// NumberColumnIndices restricts the series, or nil for every
	// number-like column.
	NumberColumnIndices []int

	// hidden is the series visibility snapshot, by column index.
	hidden map[int]bool
	// axisTitles overrides the generated axis titles.
	axisTitles axisMap[string]

	// Scaled zooms the numeric domain to the data instead of anchoring
	// it at zero.
	Scaled bool
	// ShowAverage adds a reference line at the mean of the series.
	ShowAverage bool

	Font FontStyle
	// MinTickSpacing is the smallest pixel distance between two
	// categorical ticks.
	MinTickSpacing float64
	// MaxLabelChars is the length beyond which tick labels are
	// truncated.
	MaxLabelChars int
	// Thresholds is the number of histogram buckets.
	Thresholds int
	// Smoothing is the line curve tension, 0 for straight segments.
	Smoothing float64
	// MaxLayoutPasses caps the measure/relayout loop.
	MaxLayoutPasses int
	// BandPadding overrides the chart type's default band padding.
	BandPadding *BandPadding
	// NetworkIterations is the number of force layout steps.
	NetworkIterations int
	// Interaction is the network chart's interaction state. It belongs
	// to a single chart instance.
	Interaction *Interaction

	// ColorScale maps a series index to a colour.
	ColorScale func(int) string
	// Formatter renders cell values. It defaults to [FormatElement].
	Formatter Formatter

	Logger *zap.Logger
}

// NewConfig returns a Config with default settings.
func NewConfig() *Config {
	return &Config{
		ChartType:         ChartColumn,
		Width:             600,
		Height:            400,
		Margins:           DefaultMargins,
		StringColumnIndex: -1,
		LegendColumnIndex: -1,
		Font:              FontStyle{Family: "sans-serif", Size: 12},
		MinTickSpacing:    20,
		MaxLabelChars:     35,
		Thresholds:        20,
		Smoothing:         0.2,
		MaxLayoutPasses:   2,
		NetworkIterations: 300,
		ColorScale:        DefaultColorScale,
		Formatter:         FormatElement,
		Logger:            zap.NewNop(),
	}
}

// Clone returns a copy of c that can be changed without affecting c.
func (c *Config) Clone() *Config {
	c2 := *c
	c2.NumberColumnIndices = append([]int(nil), c.NumberColumnIndices...)
	c2.hidden = make(map[int]bool, len(c.hidden))
	for k, v := range c.hidden {
		c2.hidden[k] = v
	}
	return &c2
}

// SetSeriesHidden hides or shows the series of number column col.
func (c *Config) SetSeriesHidden(col int, hidden bool) {
	if c.hidden == nil {
		c.hidden = make(map[int]bool)
	}
	c.hidden[col] = hidden
}

// ToggleSeries flips the visibility of number column col, as a legend
// click does.
func (c *Config) ToggleSeries(col int) {
	c.SetSeriesHidden(col, !c.hidden[col])
}

// IsSeriesHidden reports whether number column col is hidden.
func (c *Config) IsSeriesHidden(col int) bool {
	return c.hidden[col]
}

// SetAxisTitle overrides the title of axis a. An empty title restores the
// column-derived title.
func (c *Config) SetAxisTitle(a Axis, title string) {
	c.axisTitles.Set(a, title)
}

func (c *Config) bandPadding() BandPadding {
	if c.BandPadding != nil {
		return *c.BandPadding
	}
	switch c.ChartType {
	case ChartHeatmap, ChartBubble:
		return BandPadding{Inner: 0.01, Outer: 0}
	case ChartLine:
		return BandPadding{Inner: 0, Outer: 0}
	}
	return BandPadding{Inner: 0.25, Outer: 0.5}
}

func (c *Config) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

func (c *Config) format(v any, col table.Column) string {
	f := c.Formatter
	if f == nil {
		f = FormatElement
	}
	return f(v, col, c.DataFormatting)
}
