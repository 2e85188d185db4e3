// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/aclements/querychart/internal/table"
)

// ParseDate interprets a DATE cell. Numbers are Unix seconds, or Unix
// milliseconds if they are too large to be seconds. Strings are tried
// against layout, if non-empty, and then the layouts of
// table.ParseDateString. Numeric strings are read as Unix times. The
// result is in UTC.
func ParseDate(v any, layout string) (time.Time, error) {
	switch v := v.(type) {
	case time.Time:
		return v.UTC(), nil
	case string:
		return parseDateString(strings.TrimSpace(v), layout)
	}
	if n, ok := table.Number(v); ok {
		return epoch(n), nil
	}
	return time.Time{}, fmt.Errorf("cannot parse %v (%T) as a date", v, v)
}

func epoch(n float64) time.Time {
	if math.Abs(n) >= 1e11 {
		return time.UnixMilli(int64(n)).UTC()
	}
	sec, frac := math.Modf(n)
	return time.Unix(int64(sec), int64(frac*1e9)).UTC()
}

func parseDateString(s, layout string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if layout != "" {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	if t, _, ok := table.ParseDateString(s); ok {
		return t, nil
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(n) && !math.IsInf(n, 0) {
		return epoch(n), nil
	}
	return time.Time{}, fmt.Errorf("cannot parse %q as a date", s)
}

// StartOf truncates t to the start of its precision bucket. Weeks start
// on Monday.
func StartOf(t time.Time, p table.Precision) time.Time {
	t = t.UTC()
	y, m, d := t.Date()
	switch p {
	case table.PrecisionSecond:
		return t.Truncate(time.Second)
	case table.PrecisionMinute:
		return t.Truncate(time.Minute)
	case table.PrecisionHour:
		return time.Date(y, m, d, t.Hour(), 0, 0, 0, time.UTC)
	case table.PrecisionWeek:
		off := (int(t.Weekday()) + 6) % 7
		return time.Date(y, m, d-off, 0, 0, 0, 0, time.UTC)
	case table.PrecisionMonth:
		return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	case table.PrecisionQuarter:
		return time.Date(y, (m-1)/3*3+1, 1, 0, 0, 0, 0, time.UTC)
	case table.PrecisionYear:
		return time.Date(y, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// EndOf returns the last millisecond of t's precision bucket.
func EndOf(t time.Time, p table.Precision) time.Time {
	return nextBucket(StartOf(t, p), p).Add(-time.Millisecond)
}

func nextBucket(start time.Time, p table.Precision) time.Time {
	switch p {
	case table.PrecisionSecond:
		return start.Add(time.Second)
	case table.PrecisionMinute:
		return start.Add(time.Minute)
	case table.PrecisionHour:
		return start.Add(time.Hour)
	case table.PrecisionWeek:
		return start.AddDate(0, 0, 7)
	case table.PrecisionMonth:
		return start.AddDate(0, 1, 0)
	case table.PrecisionQuarter:
		return start.AddDate(0, 3, 0)
	case table.PrecisionYear:
		return start.AddDate(1, 0, 0)
	}
	return start.AddDate(0, 0, 1)
}

// formatDate renders t at precision p, or with layout if it is set.
func formatDate(t time.Time, p table.Precision, layout string) string {
	if layout != "" {
		return t.Format(layout)
	}
	switch p {
	case table.PrecisionYear:
		return t.Format("2006")
	case table.PrecisionQuarter:
		return fmt.Sprintf("%d Q%d", t.Year(), (int(t.Month())-1)/3+1)
	case table.PrecisionMonth:
		return t.Format("January 2006")
	case table.PrecisionHour:
		return t.Format("Jan 2 3PM")
	case table.PrecisionMinute:
		return t.Format("Jan 2 3:04PM")
	case table.PrecisionSecond:
		return t.Format("Jan 2 3:04:05PM")
	}
	return t.Format("Jan 2, 2006")
}
