// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateLayout is a date string layout and the precision it is written at.
type DateLayout struct {
	Layout    string
	Precision Precision
}

// DateLayouts are the layouts of date strings in DATE cells, tried in
// order.
var DateLayouts = []DateLayout{
	{time.RFC3339Nano, PrecisionSecond},
	{"2006-01-02T15:04:05", PrecisionSecond},
	{"2006-01-02 15:04:05", PrecisionSecond},
	{"2006-01-02", PrecisionDay},
	{"01/02/2006", PrecisionDay},
	{"Jan 2, 2006", PrecisionDay},
	{"January 2, 2006", PrecisionDay},
	{"2 Jan 2006", PrecisionDay},
	{"2006-01", PrecisionMonth},
	{"Jan-2006", PrecisionMonth},
	{"January 2006", PrecisionMonth},
	{"Jan 2006", PrecisionMonth},
	{"2006", PrecisionYear},
}

// Bare four digit numbers are years only in this range.
const minYear, maxYear = 1900, 2100

var quarterRE = regexp.MustCompile(`(?i)^(?:Q([1-4])[ -](\d{4})|(\d{4})[ -]Q([1-4]))$`)

// ParseDateString parses s against DateLayouts and the quarter forms
// "2024-Q1", "2024 Q1", "Q1 2024" and "Q1-2024". It returns the start of
// the date in UTC and the precision s is written at.
func ParseDateString(s string) (time.Time, Precision, bool) {
	s = strings.TrimSpace(s)
	if m := quarterRE.FindStringSubmatch(s); m != nil {
		q, y := m[1], m[2]
		if q == "" {
			y, q = m[3], m[4]
		}
		yi, _ := strconv.Atoi(y)
		qi, _ := strconv.Atoi(q)
		return time.Date(yi, time.Month(3*(qi-1)+1), 1, 0, 0, 0, 0, time.UTC), PrecisionQuarter, true
	}
	for _, l := range DateLayouts {
		t, err := time.Parse(l.Layout, s)
		if err != nil {
			continue
		}
		if l.Precision == PrecisionYear && (t.Year() < minYear || t.Year() > maxYear) {
			// Most four digit numbers are not years.
			continue
		}
		return t.UTC(), l.Precision, true
	}
	return time.Time{}, "", false
}
