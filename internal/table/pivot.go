// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import (
	"fmt"
	"strings"
)

// Aggregation names accepted in [Column.AggType].
const (
	AggSum   = "sum"
	AggAvg   = "avg"
	AggCount = "count"
)

// PivotOn aggregates a list table into a pivot table.
//
// The result's first column is rowKey. If legend is negative, the second
// column is the aggregate of measure per distinct rowKey value. Otherwise
// there is one measure column per distinct value of legend, named after
// that value, and cells with no contributing rows are nil. Distinct values
// keep their order of first appearance. Cells of measure that are not
// numbers are skipped.
func PivotOn(t *Table, rowKey, legend, measure int) (*Table, error) {
	for _, i := range []int{rowKey, measure} {
		if _, err := t.Column(i); err != nil {
			return nil, err
		}
	}
	if legend >= 0 {
		if _, err := t.Column(legend); err != nil {
			return nil, err
		}
	}
	mcol := t.Columns[measure]
	agg := strings.ToLower(mcol.AggType)
	switch agg {
	case "":
		agg = AggSum
	case AggSum, AggAvg, AggCount:
	default:
		return nil, fmt.Errorf("unsupported aggregation %q on column %s", mcol.AggType, mcol.Name)
	}

	rowGroups, rowKeys := groupBy(t.Rows, func(r Row) string { return String(r.Cell(rowKey)) })

	keyCol := t.Columns[rowKey]
	keyCol.Groupable = true
	out := &Table{Columns: []Column{keyCol}}

	if legend < 0 {
		out.Columns = append(out.Columns, mcol)
		for _, k := range rowKeys {
			rows := rowGroups[k]
			v, ok := aggregate(rows, measure, agg)
			out.Rows = append(out.Rows, Row{rows[0].Cell(rowKey), cellOrNil(v, ok)})
		}
		return out, nil
	}

	_, legendKeys := groupBy(t.Rows, func(r Row) string { return String(r.Cell(legend)) })
	for _, lk := range legendKeys {
		c := mcol
		c.Name, c.DisplayName = lk, lk
		c.Groupable = false
		c.Visible = true
		out.Columns = append(out.Columns, c)
	}
	for _, k := range rowKeys {
		rows := rowGroups[k]
		cells, cellKeys := groupBy(rows, func(r Row) string { return String(r.Cell(legend)) })
		row := make(Row, len(out.Columns))
		row[0] = rows[0].Cell(rowKey)
		for _, ck := range cellKeys {
			v, ok := aggregate(cells[ck], measure, agg)
			for j, lk := range legendKeys {
				if lk == ck {
					row[j+1] = cellOrNil(v, ok)
					break
				}
			}
		}
		out.Rows = append(out.Rows, row)
	}
	return out, nil
}

func aggregate(rows []Row, col int, agg string) (float64, bool) {
	if agg == AggCount {
		return float64(len(rows)), true
	}
	var sum float64
	n := 0
	for _, r := range rows {
		if v, ok := Number(r.Cell(col)); ok {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	if agg == AggAvg {
		return sum / float64(n), true
	}
	return sum, true
}

func cellOrNil(v float64, ok bool) any {
	if !ok {
		return nil
	}
	return v
}

// groupBy groups the elements of s according to the value of grouper. It
// maintains the order of elements within each group, and keys is in order
// of first appearance.
func groupBy[T any, U comparable](s []T, grouper func(T) U) (groups map[U][]T, keys []U) {
	groups = make(map[U][]T)
	for _, v := range s {
		k := grouper(v)
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], v)
	}
	return groups, keys
}

// Unique returns the distinct categorical values of column col in order
// of first appearance.
func Unique(rows []Row, col int) []string {
	_, keys := groupBy(rows, func(r Row) string { return String(r.Cell(col)) })
	return keys
}
