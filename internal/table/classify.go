// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import "fmt"

// Shape is the layout of a table's rows. It is one of [List], [Pivot] or
// [DatePivot].
type Shape interface {
	shape()
	String() string
}

// List is raw rows: any number of measures and at most one grouping
// column.
type List struct{}

// Pivot is pre-aggregated rows keyed by one or two categorical columns.
type Pivot struct {
	// Keys are the indices of the groupable columns, in column order.
	Keys []int
}

// DatePivot is a [Pivot] whose first key is a date bucket.
type DatePivot struct {
	Keys []int
	// Precision is the bucket size of the date key.
	Precision Precision
}

func (List) shape()      {}
func (Pivot) shape()     {}
func (DatePivot) shape() {}

func (List) String() string        { return "list" }
func (s Pivot) String() string     { return fmt.Sprintf("pivot%v", s.Keys) }
func (s DatePivot) String() string { return fmt.Sprintf("date-pivot%v/%s", s.Keys, s.Precision) }

// Classification partitions a table's columns into measures and
// categories.
type Classification struct {
	NumberColumnIndices []int
	StringColumnIndices []int
	Shape               Shape
}

// Classify partitions columns. A visible column of a measure type is
// number-like. A visible column of a categorical or date type is
// string-like, and so is every groupable column whatever its type. A
// groupable measure column is string-like only, so no index appears in
// both lists. Columns matching neither rule appear in neither list.
func Classify(columns []Column) Classification {
	var c Classification
	var keys []int
	for i, col := range columns {
		switch {
		case col.Groupable:
			c.StringColumnIndices = append(c.StringColumnIndices, i)
			keys = append(keys, i)
		case col.Visible && col.Type.IsString():
			c.StringColumnIndices = append(c.StringColumnIndices, i)
		case col.Visible && col.Type.IsNumber():
			c.NumberColumnIndices = append(c.NumberColumnIndices, i)
		}
	}

	switch {
	case len(keys) == 0:
		c.Shape = List{}
	case columns[keys[0]].Type == TypeDate:
		c.Shape = DatePivot{Keys: keys, Precision: columns[keys[0]].DatePrecision()}
	default:
		c.Shape = Pivot{Keys: keys}
	}
	return c
}

// IsDateColumn reports whether c holds absolute dates that drilldown can
// turn into a range.
func IsDateColumn(c Column) bool {
	return c.Type == TypeDate
}
