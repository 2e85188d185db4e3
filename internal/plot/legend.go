// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import "github.com/aclements/querychart/internal/table"

var defaultColors = []string{
	"#26A7E9", "#A5CD39", "#DD6A6A", "#FFA700", "#00C1B2",
	"#4F46E5", "#EC4899", "#84CC16", "#F97316", "#8B5CF6",
}

// DefaultColorScale cycles through a fixed palette.
func DefaultColorScale(i int) string {
	if i < 0 {
		i = -i
	}
	return defaultColors[i%len(defaultColors)]
}

// LegendItem is one legend entry.
type LegendItem struct {
	Label  string `json:"label" yaml:"label"`
	Color  string `json:"color" yaml:"color"`
	Hidden bool   `json:"hidden" yaml:"hidden"`
	// ColumnIndex is the number column the entry toggles, or -1 for
	// category legends.
	ColumnIndex int `json:"columnIndex" yaml:"columnIndex"`
}

// Legend lists the series columns in order. The i'th series is coloured
// colorScale(i) whether or not it is hidden, so colours stay stable as
// series are toggled and match the chart elements.
func Legend(cols []table.Column, series []int, hidden func(int) bool, colorScale func(int) string) []LegendItem {
	if colorScale == nil {
		colorScale = DefaultColorScale
	}
	items := make([]LegendItem, 0, len(series))
	for i, c := range series {
		label := ""
		if c >= 0 && c < len(cols) {
			label = cols[c].Title()
		}
		items = append(items, LegendItem{
			Label:       label,
			Color:       colorScale(i),
			Hidden:      hidden != nil && hidden(c),
			ColumnIndex: c,
		})
	}
	return items
}

// categoryLegend lists categories for charts coloured by category.
func categoryLegend(categories []string, colorScale func(int) string) []LegendItem {
	if colorScale == nil {
		colorScale = DefaultColorScale
	}
	items := make([]LegendItem, len(categories))
	for i, c := range categories {
		items[i] = LegendItem{Label: c, Color: colorScale(i), ColumnIndex: -1}
	}
	return items
}
