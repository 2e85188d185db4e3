// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"strconv"

	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/querychart/internal/table"
)

// Bounds is a closed numeric interval.
type Bounds struct {
	Min, Max float64
}

// MinMax returns the bounds of every numeric cell of rows in the given
// columns. Cells that are not numbers are skipped. If there are no
// numbers, it returns the zero Bounds.
func MinMax(rows []table.Row, cols []int) Bounds {
	var b Bounds
	first := true
	for _, r := range rows {
		for _, c := range cols {
			v, ok := table.Number(r.Cell(c))
			if !ok {
				continue
			}
			if first {
				b.Min, b.Max = v, v
				first = false
				continue
			}
			b.Min, b.Max = min(b.Min, v), max(b.Max, v)
		}
	}
	return b
}

// stackTotals accumulates the positive and negative parts of stacked
// series per category, keeping categories in order of first appearance.
type stackTotals struct {
	keys     []string
	pos, neg map[string]float64
}

func newStackTotals() *stackTotals {
	return &stackTotals{pos: make(map[string]float64), neg: make(map[string]float64)}
}

func (s *stackTotals) add(key string, v float64) {
	if _, ok := s.pos[key]; !ok {
		s.keys = append(s.keys, key)
		s.pos[key], s.neg[key] = 0, 0
	}
	if v > 0 {
		s.pos[key] += v
	} else {
		s.neg[key] += v
	}
}

// StackedMinMax returns the bounds of the stacked sums of cols. Rows
// sharing a value in column stringCol stack onto the same category; if
// stringCol is negative every row is its own category. Positive and
// negative values stack separately, so the result spans from the most
// negative negative total to the most positive positive total. Those
// totals start at zero, so the bounds always include zero.
func StackedMinMax(rows []table.Row, stringCol int, cols []int) Bounds {
	totals := newStackTotals()
	for i, r := range rows {
		key := table.String(r.Cell(stringCol))
		if stringCol < 0 {
			key = strconv.Itoa(i)
		}
		for _, c := range cols {
			if v, ok := table.Number(r.Cell(c)); ok {
				totals.add(key, v)
			}
		}
	}
	var b Bounds
	for _, k := range totals.keys {
		b.Max = max(b.Max, totals.pos[k])
		b.Min = min(b.Min, totals.neg[k])
	}
	return b
}

// Average returns the mean used for a chart's average line.
//
// For stacked chart types, it is the mean of the per-row totals of cols,
// ignoring rows whose total is exactly zero. Otherwise it is the mean of
// every numeric cell in cols. ok is false when there is nothing to
// average; the caller should then draw no line.
func Average(rows []table.Row, cols []int, chartType ChartType) (avg float64, ok bool) {
	var vals []float64
	if chartType.IsStacked() {
		for _, r := range rows {
			total, seen := 0.0, false
			for _, c := range cols {
				if v, ok := table.Number(r.Cell(c)); ok {
					total += v
					seen = true
				}
			}
			if seen && total != 0 {
				vals = append(vals, total)
			}
		}
	} else {
		for _, r := range rows {
			for _, c := range cols {
				if v, ok := table.Number(r.Cell(c)); ok {
					vals = append(vals, v)
				}
			}
		}
	}
	if len(vals) == 0 {
		return 0, false
	}
	return stats.Mean(vals), true
}
