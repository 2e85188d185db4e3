// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"math"
	"time"
)

// A Tick is one labelled position on an axis.
type Tick struct {
	Value    any     `json:"value" yaml:"value"`
	Position float64 `json:"position" yaml:"position"`
	Label    string  `json:"label" yaml:"label"`
	// FullLabel is the untruncated label, shown as a tooltip when
	// Truncated is set.
	FullLabel string `json:"fullLabel,omitempty" yaml:"fullLabel,omitempty"`
	Truncated bool   `json:"truncated,omitempty" yaml:"truncated,omitempty"`
}

// SelectBandTicks picks which of n categories get a tick when span pixels
// are available and ticks must be at least minSpacing apart. It returns
// indices into the domain. If all categories fit they are all returned.
// Otherwise it returns an evenly strided subset that starts with the
// first category and ends with the last, assuming the categories evenly
// share span.
func SelectBandTicks(n int, span, minSpacing float64) []int {
	if n <= 0 {
		return nil
	}
	maxVisible := n
	if minSpacing > 0 {
		maxVisible = int(math.Floor(span / minSpacing))
	}
	if n <= maxVisible {
		return seq(n)
	}
	if n == 1 {
		return []int{0}
	}
	if maxVisible < 2 {
		return []int{0, n - 1}
	}
	stride := (n - 1 + maxVisible - 2) / (maxVisible - 1)
	var out []int
	for i := 0; i < n; i += stride {
		out = append(out, i)
	}
	// End on the last category: append it if it clears the previous
	// tick, otherwise move the previous tick there. Moving only widens
	// the gap before it.
	last := out[len(out)-1]
	switch {
	case last == n-1:
	case len(out) < maxVisible && float64(n-1-last)*span/float64(n) >= minSpacing:
		out = append(out, n-1)
	default:
		out[len(out)-1] = n - 1
	}
	return out
}

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// bandTicks returns ticks centred on the selected bands of s.
func bandTicks(s *BandScale, span, minSpacing float64, maxChars int) []Tick {
	domain := s.Domain()
	labels := s.TickLabels()
	var ticks []Tick
	for _, i := range SelectBandTicks(len(domain), span, minSpacing) {
		pos, _ := s.Value(domain[i])
		ticks = append(ticks, newTick(domain[i], pos+s.Bandwidth()/2, labels[i], maxChars))
	}
	return ticks
}

func linearTicks(s *LinearScale, maxChars int) []Tick {
	labels := s.TickLabels()
	var ticks []Tick
	for i, v := range s.Ticks() {
		ticks = append(ticks, newTick(v, s.Map(v), labels[i], maxChars))
	}
	return ticks
}

func timeTicksOf(s *TimeScale, maxChars int) []Tick {
	labels := s.TickLabels()
	var ticks []Tick
	for i, t := range s.Ticks() {
		ticks = append(ticks, newTick(t.Format(time.RFC3339), s.Map(t), labels[i], maxChars))
	}
	return ticks
}

func newTick(v any, pos float64, label string, maxChars int) Tick {
	short, truncated := TruncateLabel(label, maxChars)
	t := Tick{Value: v, Position: pos, Label: short, Truncated: truncated}
	if truncated {
		t.FullLabel = label
	}
	return t
}

// maxTicksFor returns how many numeric ticks fit in span pixels.
func maxTicksFor(span, spacing float64) int {
	n := int(math.Abs(span) / spacing)
	return min(max(n, 2), 10)
}
