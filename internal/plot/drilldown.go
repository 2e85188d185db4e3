// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"fmt"

	"github.com/aclements/querychart/internal/table"
	"go.uber.org/zap"
)

// Filter is a query refinement built from a clicked element.
type Filter struct {
	Name       string           `json:"name" yaml:"name"`
	Operator   string           `json:"operator" yaml:"operator"`
	Value      string           `json:"value" yaml:"value"`
	ColumnType table.ColumnType `json:"column_type" yaml:"column_type"`
}

// filterTimeLayout is the format of date range bounds in a Filter.
const filterTimeLayout = "2006-01-02T15:04:05.000Z07:00"

// BuildFilter turns a click on category value of column col into a
// filter. For DATE columns it returns a "between" filter spanning the
// clicked date's precision bucket. For every other column, and for values
// that cannot be parsed as dates, it returns nil; the host then filters on
// the row's identity instead. Parse failures are logged to log, which may
// be nil.
func BuildFilter(col table.Column, value any, df DataFormatting, log *zap.Logger) *Filter {
	if !table.IsDateColumn(col) {
		return nil
	}
	t, err := ParseDate(value, df.DateFormat)
	if err != nil {
		if log != nil {
			log.Warn("drilldown: cannot parse date",
				zap.String("column", col.Name),
				zap.String("value", fmt.Sprint(value)),
				zap.Error(err))
		}
		return nil
	}
	p := col.DatePrecision()
	start, end := StartOf(t, p), EndOf(t, p)
	return &Filter{
		Name:       col.Name,
		Operator:   "between",
		Value:      start.Format(filterTimeLayout) + "," + end.Format(filterTimeLayout),
		ColumnType: table.TypeDate,
	}
}
