// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"time"

	"github.com/aclements/querychart/internal/table"
)

// TimeScale maps a time interval linearly to pixels.
type TimeScale struct {
	scaleMeta
	min, max time.Time
	ticks    []time.Time
	layout   string
}

// timeStep is a candidate tick spacing. Steps of a month or more are
// calendar aligned.
type timeStep struct {
	d      time.Duration
	months int
	prec   table.Precision
}

var timeSteps = []timeStep{
	{d: time.Second, prec: table.PrecisionSecond},
	{d: 5 * time.Second, prec: table.PrecisionSecond},
	{d: 15 * time.Second, prec: table.PrecisionSecond},
	{d: 30 * time.Second, prec: table.PrecisionSecond},
	{d: time.Minute, prec: table.PrecisionMinute},
	{d: 5 * time.Minute, prec: table.PrecisionMinute},
	{d: 15 * time.Minute, prec: table.PrecisionMinute},
	{d: 30 * time.Minute, prec: table.PrecisionMinute},
	{d: time.Hour, prec: table.PrecisionHour},
	{d: 3 * time.Hour, prec: table.PrecisionHour},
	{d: 6 * time.Hour, prec: table.PrecisionHour},
	{d: 12 * time.Hour, prec: table.PrecisionHour},
	{d: 24 * time.Hour, prec: table.PrecisionDay},
	{d: 2 * 24 * time.Hour, prec: table.PrecisionDay},
	{d: 7 * 24 * time.Hour, prec: table.PrecisionWeek},
	{months: 1, prec: table.PrecisionMonth},
	{months: 3, prec: table.PrecisionQuarter},
	{months: 6, prec: table.PrecisionMonth},
	{months: 12, prec: table.PrecisionYear},
	{months: 24, prec: table.PrecisionYear},
	{months: 60, prec: table.PrecisionYear},
	{months: 120, prec: table.PrecisionYear},
	{months: 600, prec: table.PrecisionYear},
	{months: 1200, prec: table.PrecisionYear},
}

// NewTimeScale returns a time scale over [tmin, tmax] spanning the pixel
// range [lo, hi] with at most maxTicks calendar-aligned ticks. If the
// interval is empty it is widened to one day. Tick labels use
// dateLayout if it is set.
func NewTimeScale(tmin, tmax time.Time, lo, hi float64, maxTicks int, dateLayout string, info ScaleInfo) *TimeScale {
	if tmax.Before(tmin) {
		tmin, tmax = tmax, tmin
	}
	if !tmax.After(tmin) {
		tmax = tmin.Add(24 * time.Hour)
	}
	if maxTicks <= 0 {
		maxTicks = 10
	}
	s := &TimeScale{
		scaleMeta: scaleMeta{info: info, lo: lo, hi: hi},
		min:       tmin.UTC(),
		max:       tmax.UTC(),
		layout:    dateLayout,
	}
	step := timeSteps[len(timeSteps)-1]
	for _, st := range timeSteps {
		if countTimeTicks(s.min, s.max, st) <= maxTicks {
			step = st
			break
		}
	}
	s.ticks = timeTicks(s.min, s.max, step)
	s.labels = make([]string, len(s.ticks))
	for i, t := range s.ticks {
		if info.Format != nil {
			s.labels[i] = info.Format(t)
		} else {
			s.labels[i] = formatDate(t, step.prec, dateLayout)
		}
	}
	return s
}

func countTimeTicks(tmin, tmax time.Time, st timeStep) int {
	if st.months == 0 {
		return int(tmax.Sub(tmin)/st.d) + 1
	}
	months := (tmax.Year()-tmin.Year())*12 + int(tmax.Month()-tmin.Month())
	return months/st.months + 1
}

func timeTicks(tmin, tmax time.Time, st timeStep) []time.Time {
	var t time.Time
	if st.months == 0 {
		t = tmin.Truncate(st.d)
		if st.prec == table.PrecisionWeek {
			t = StartOf(tmin, table.PrecisionWeek)
		}
	} else {
		y, m, _ := tmin.Date()
		mi := (y*12 + int(m) - 1) / st.months * st.months
		t = time.Date(mi/12, time.Month(mi%12+1), 1, 0, 0, 0, 0, time.UTC)
	}
	var out []time.Time
	for !t.After(tmax) {
		if !t.Before(tmin) {
			out = append(out, t)
		}
		if st.months == 0 {
			t = t.Add(st.d)
		} else {
			t = t.AddDate(0, st.months, 0)
		}
	}
	return out
}

func (s *TimeScale) Kind() ScaleKind { return ScaleTime }

// Domain returns the time interval.
func (s *TimeScale) Domain() (time.Time, time.Time) { return s.min, s.max }

// Ticks returns the tick times.
func (s *TimeScale) Ticks() []time.Time { return append([]time.Time(nil), s.ticks...) }

// Map maps t to a pixel position.
func (s *TimeScale) Map(t time.Time) float64 {
	f := float64(t.Sub(s.min)) / float64(s.max.Sub(s.min))
	return s.lo + f*(s.hi-s.lo)
}

func (s *TimeScale) Project(v any) (float64, bool) {
	t, err := ParseDate(v, s.layout)
	if err != nil {
		return 0, false
	}
	return s.Map(t), true
}
