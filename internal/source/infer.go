// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package source loads tables from files: CSV, XLSX, the host's JSON
// response shape and Go benchmark results.
package source

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/aclements/querychart/internal/table"
	"go.uber.org/zap"
)

// Options control how a file is turned into a table.
type Options struct {
	// Sheet selects an XLSX sheet. The first sheet is used if empty.
	Sheet string
	// Groupable names columns that key pre-aggregated rows.
	Groupable []string
	// Types overrides the inferred type of the named columns.
	Types map[string]table.ColumnType
	// Precision overrides the inferred precision of the named DATE
	// columns.
	Precision map[string]table.Precision

	Logger *zap.Logger
}

func (o *Options) logger() *zap.Logger {
	if o == nil || o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// matchFraction is the share of non-empty cells that must agree for a
// column to get a non-string type.
const matchFraction = 0.8

// datePrecision reports the precision of s if it is a date.
func datePrecision(s string) (table.Precision, bool) {
	_, p, ok := table.ParseDateString(s)
	return p, ok
}

// parseMeasure parses a formatted number such as "$1,234.50" or "12%".
func parseMeasure(s string) (v float64, currency, percent bool, ok bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	neg := false
	if rest, found := strings.CutPrefix(s, "-"); found {
		neg, s = true, rest
	}
	for _, sym := range []string{"$", "€", "£", "¥"} {
		if rest, found := strings.CutPrefix(s, sym); found {
			currency, s = true, rest
			break
		}
	}
	if rest, found := strings.CutSuffix(s, "%"); found {
		percent, s = true, rest
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, false, false
	}
	if neg {
		v = -v
	}
	return v, currency, percent, true
}

// inferColumn picks a type for a column from its raw cells.
func inferColumn(name string, cells []string) table.Column {
	col := table.Column{Name: name, Type: table.TypeString, Visible: true}
	var n, dates, nums, cur, pct int
	precs := make(map[table.Precision]int)
	for _, c := range cells {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		n++
		if p, ok := datePrecision(c); ok {
			dates++
			precs[p]++
		}
		if _, isCur, isPct, ok := parseMeasure(c); ok {
			nums++
			if isCur {
				cur++
			}
			if isPct {
				pct++
			}
		}
	}
	if n == 0 {
		return col
	}
	need := int(float64(n) * matchFraction)
	switch {
	case dates >= need && dates > 0:
		col.Type = table.TypeDate
		col.Precision = mostCommon(precs)
	case nums >= need && nums > 0:
		switch {
		case cur*2 > nums:
			col.Type = table.TypeDollarAmt
		case pct*2 > nums:
			col.Type = table.TypePercent
		default:
			col.Type = table.TypeQuantity
		}
	}
	return col
}

func mostCommon(counts map[table.Precision]int) table.Precision {
	keys := make([]table.Precision, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	best := table.PrecisionDay
	bestN := 0
	for _, k := range keys {
		if counts[k] > bestN {
			best, bestN = k, counts[k]
		}
	}
	return best
}

// build turns a header and string records into a typed table.
func build(header []string, records [][]string, opts *Options) (*table.Table, error) {
	if len(header) == 0 {
		return nil, fmt.Errorf("missing header row")
	}
	log := opts.logger()
	t := &table.Table{Columns: make([]table.Column, len(header))}
	for i, h := range header {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("column%d", i+1)
		}
		cells := make([]string, len(records))
		for j, r := range records {
			if i < len(r) {
				cells[j] = r[i]
			}
		}
		col := inferColumn(h, cells)
		if opts != nil {
			if typ, ok := opts.Types[h]; ok {
				col.Type = typ
			}
			if p, ok := opts.Precision[h]; ok {
				col.Precision = p
			}
			col.Groupable = slices.Contains(opts.Groupable, h)
		}
		t.Columns[i] = col
	}

	for j, r := range records {
		row := make(table.Row, len(header))
		for i := range header {
			if i >= len(r) {
				continue
			}
			raw := strings.TrimSpace(r[i])
			if raw == "" {
				continue
			}
			col := t.Columns[i]
			if !col.Type.IsNumber() {
				row[i] = raw
				continue
			}
			v, _, _, ok := parseMeasure(raw)
			if !ok {
				log.Debug("skipping unparseable cell",
					zap.Int("row", j), zap.String("column", col.Name), zap.String("value", raw))
				continue
			}
			row[i] = v
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}
