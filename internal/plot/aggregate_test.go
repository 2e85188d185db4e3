// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"testing"

	"github.com/aclements/querychart/internal/table"
	"github.com/stretchr/testify/assert"
)

func TestMinMax(t *testing.T) {
	rows := []table.Row{{"a", 3.0, "x"}, {"b", -2.0, 7.0}, {"c", nil}}
	assert.Equal(t, Bounds{-2, 7}, MinMax(rows, []int{1, 2}))
	assert.Equal(t, Bounds{-2, 3}, MinMax(rows, []int{1}))
	assert.Equal(t, Bounds{}, MinMax(rows, []int{0}))
	assert.Equal(t, Bounds{}, MinMax(nil, []int{1}))
}

func TestStackedMinMax(t *testing.T) {
	rows := []table.Row{
		{"a", 3.0, -2.0},
		{"a", 1.0, nil},
		{"b", 4.0, 0.0},
	}
	assert.Equal(t, Bounds{-2, 4}, StackedMinMax(rows, 0, []int{1, 2}))

	// Positive and negative parts stack separately.
	mixed := []table.Row{{"A", 3.0, -2.0}, {"B", -1.0, 4.0}}
	assert.Equal(t, Bounds{-2, 4}, StackedMinMax(mixed, 0, []int{1, 2}))

	// Without a category every row stands alone.
	assert.Equal(t, Bounds{-2, 4}, StackedMinMax(rows, -1, []int{1, 2}))
	assert.Equal(t, Bounds{0, 4}, StackedMinMax(rows, -1, []int{1}))

	// All-negative stacks still include zero.
	neg := []table.Row{{"a", -1.0, -2.0}}
	assert.Equal(t, Bounds{-3, 0}, StackedMinMax(neg, 0, []int{1, 2}))
}

func TestAverage(t *testing.T) {
	rows := []table.Row{{1.0, nil}, {3.0, "x"}}
	avg, ok := Average(rows, []int{0, 1}, ChartColumn)
	assert.True(t, ok)
	assert.InDelta(t, 2, avg, 1e-9)

	stacked := []table.Row{{2.0, -2.0}, {1.0, 3.0}, {nil, nil}}
	avg, ok = Average(stacked, []int{0, 1}, ChartStackedColumn)
	assert.True(t, ok)
	assert.InDelta(t, 4, avg, 1e-9, "zero totals are skipped")

	_, ok = Average(nil, []int{0}, ChartColumn)
	assert.False(t, ok)
	_, ok = Average([]table.Row{{nil}, {"-"}}, []int{0}, ChartLine)
	assert.False(t, ok)
}
