// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package table describes the tabular query results that charts are drawn
// from: typed columns and positionally aligned rows.
package table

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ErrColumnIndex is returned when a column index does not refer to a
// column of the table.
var ErrColumnIndex = errors.New("column index out of range")

// ColumnType is the semantic type of a column.
type ColumnType string

const (
	TypeString     ColumnType = "STRING"
	TypeDate       ColumnType = "DATE"
	TypeDateString ColumnType = "DATE_STRING"
	TypeQuantity   ColumnType = "QUANTITY"
	TypeDollarAmt  ColumnType = "DOLLAR_AMT"
	TypeRatio      ColumnType = "RATIO"
	TypePercent    ColumnType = "PERCENT"
)

// IsNumber reports whether values of type t are measures.
func (t ColumnType) IsNumber() bool {
	switch t {
	case TypeQuantity, TypeDollarAmt, TypeRatio, TypePercent:
		return true
	}
	return false
}

// IsString reports whether values of type t are categorical or dates.
func (t ColumnType) IsString() bool {
	switch t {
	case TypeString, TypeDate, TypeDateString:
		return true
	}
	return false
}

// Precision is the bucket size of a DATE column.
type Precision string

const (
	PrecisionSecond  Precision = "SECOND"
	PrecisionMinute  Precision = "MINUTE"
	PrecisionHour    Precision = "HOUR"
	PrecisionDay     Precision = "DAY"
	PrecisionWeek    Precision = "WEEK"
	PrecisionMonth   Precision = "MONTH"
	PrecisionQuarter Precision = "QUARTER"
	PrecisionYear    Precision = "YEAR"
)

// ParsePrecision maps loose spellings ("day", "Month", "") to a
// Precision. The empty string maps to PrecisionDay.
func ParsePrecision(s string) (Precision, error) {
	switch p := Precision(strings.ToUpper(strings.TrimSpace(s))); p {
	case "":
		return PrecisionDay, nil
	case PrecisionSecond, PrecisionMinute, PrecisionHour, PrecisionDay,
		PrecisionWeek, PrecisionMonth, PrecisionQuarter, PrecisionYear:
		return p, nil
	}
	return "", fmt.Errorf("unknown date precision %q", s)
}

// A Column describes one field of a table.
type Column struct {
	Name        string     `json:"name" yaml:"name"`
	DisplayName string     `json:"display_name,omitempty" yaml:"display_name,omitempty"`
	Type        ColumnType `json:"type" yaml:"type"`
	Visible     bool       `json:"is_visible" yaml:"is_visible"`
	Groupable   bool       `json:"groupable,omitempty" yaml:"groupable,omitempty"`
	Precision   Precision  `json:"precision,omitempty" yaml:"precision,omitempty"`
	AggType     string     `json:"aggType,omitempty" yaml:"aggType,omitempty"`
}

// Title returns the display name of c, falling back to its name.
func (c Column) Title() string {
	if c.DisplayName != "" {
		return c.DisplayName
	}
	return c.Name
}

// DatePrecision returns c's precision normalized, defaulting to
// PrecisionDay.
func (c Column) DatePrecision() Precision {
	p, err := ParsePrecision(string(c.Precision))
	if err != nil {
		return PrecisionDay
	}
	return p
}

// A Row is one record, aligned with the table's columns. A row may be
// shorter than the column list; missing cells read as nil.
type Row []any

// Cell returns the i'th cell of r, or nil if r is too short.
func (r Row) Cell(i int) any {
	if i < 0 || i >= len(r) {
		return nil
	}
	return r[i]
}

// A Table is an immutable query result.
type Table struct {
	Columns []Column `json:"columns" yaml:"columns"`
	Rows    []Row    `json:"data" yaml:"data"`
}

// Column returns column i of t.
func (t *Table) Column(i int) (Column, error) {
	if i < 0 || i >= len(t.Columns) {
		return Column{}, fmt.Errorf("%w: %d", ErrColumnIndex, i)
	}
	return t.Columns[i], nil
}

// Number coerces a cell to a finite float64. Strings are parsed, and
// anything that is not a finite number reports false.
func Number(v any) (float64, bool) {
	var f float64
	switch v := v.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case int32:
		f = float64(v)
	case uint:
		f = float64(v)
	case uint64:
		f = float64(v)
	case json.Number:
		x, err := v.Float64()
		if err != nil {
			return 0, false
		}
		f = x
	case string:
		x, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		f = x
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// String renders a cell as the categorical key used for band domains.
// nil renders as the empty string.
func String(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case time.Time:
		return v.UTC().Format(time.RFC3339)
	}
	return fmt.Sprint(v)
}
