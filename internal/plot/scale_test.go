// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"math"
	"testing"
	"time"

	"github.com/aclements/querychart/internal/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinearDomain(t *testing.T) {
	tests := []struct {
		name string
		b    Bounds
		opt  LinearOptions
		want Bounds
	}{
		{"includes zero", Bounds{2, 8}, LinearOptions{}, Bounds{0, 8}},
		{"scaled", Bounds{2, 8}, LinearOptions{Scaled: true}, Bounds{2, 8}},
		{"negative", Bounds{-5, 10}, LinearOptions{}, Bounds{-5, 10}},
		{"degenerate positive", Bounds{5, 5}, LinearOptions{Scaled: true}, Bounds{0, 5}},
		{"degenerate negative", Bounds{-3, -3}, LinearOptions{Scaled: true}, Bounds{-3, 0}},
		{"all zero", Bounds{0, 0}, LinearOptions{}, Bounds{0, 1}},
		{"swapped", Bounds{8, 2}, LinearOptions{Scaled: true}, Bounds{2, 8}},
		{"not finite", Bounds{math.NaN(), 3}, LinearOptions{Scaled: true}, Bounds{0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LinearDomain(tt.b, tt.opt))
		})
	}
}

func TestLinearDomainNice(t *testing.T) {
	d := LinearDomain(Bounds{0.3, 9.3}, LinearOptions{Nice: true, MaxTicks: 5})
	assert.LessOrEqual(t, d.Min, 0.0)
	assert.GreaterOrEqual(t, d.Max, 9.3)
	assert.LessOrEqual(t, d.Max, 20.0)
}

func TestLinearScale(t *testing.T) {
	s := NewLinearScale(Bounds{0, 10}, 100, 0, LinearOptions{}, ScaleInfo{Title: "v"})
	assert.Equal(t, ScaleLinear, s.Kind())
	assert.InDelta(t, 100, s.Map(0), 1e-9)
	assert.InDelta(t, 50, s.Map(5), 1e-9)
	assert.InDelta(t, 0, s.Map(10), 1e-9)
	assert.InDelta(t, 100, s.Baseline(), 1e-9)

	p, ok := s.Project("2.5")
	require.True(t, ok)
	assert.InDelta(t, 75, p, 1e-9)
	_, ok = s.Project("x")
	assert.False(t, ok)

	ticks := s.Ticks()
	require.NotEmpty(t, ticks)
	for _, tk := range ticks {
		assert.GreaterOrEqual(t, tk, 0.0)
		assert.LessOrEqual(t, tk, 10.0)
	}
	assert.Len(t, s.TickLabels(), len(ticks))

	// Bars of an all-positive scaled domain grow from its lower bound.
	s = NewLinearScale(Bounds{5, 10}, 0, 100, LinearOptions{Scaled: true}, ScaleInfo{})
	assert.InDelta(t, 0, s.Baseline(), 1e-9)
}

func TestBandScale(t *testing.T) {
	s := NewBandScale([]string{"a", "b", "c"}, 0, 300, BandPadding{}, ScaleInfo{})
	assert.Equal(t, ScaleBand, s.Kind())
	assert.InDelta(t, 100, s.Step(), 1e-9)
	assert.InDelta(t, 100, s.Bandwidth(), 1e-9)
	for i, c := range []string{"a", "b", "c"} {
		v, ok := s.Value(c)
		require.True(t, ok)
		assert.InDelta(t, 100*float64(i), v, 1e-9)
	}
	_, ok := s.Value("d")
	assert.False(t, ok)

	// Padded bands are centred in the range.
	s = NewBandScale([]string{"a", "b", "c"}, 0, 300, BandPadding{Inner: 0.25, Outer: 0.5}, ScaleInfo{})
	assert.InDelta(t, 80, s.Step(), 1e-9)
	assert.InDelta(t, 60, s.Bandwidth(), 1e-9)
	first := s.At(0)
	last := s.At(2) + s.Bandwidth()
	assert.InDelta(t, 40, first, 1e-9)
	assert.InDelta(t, 300-last, first, 1e-9)
	for i := 1; i < 3; i++ {
		assert.InDelta(t, s.Step(), s.At(i)-s.At(i-1), 1e-9)
	}

	// An inverted range collapses.
	s = NewBandScale([]string{"a"}, 10, 5, BandPadding{}, ScaleInfo{})
	lo, hi := s.Range()
	assert.Equal(t, 10.0, lo)
	assert.Equal(t, 10.0, hi)
	assert.Zero(t, s.Bandwidth())
}

func TestBandScaleOf(t *testing.T) {
	rows := []table.Row{{"b", 1.0}, {"a", 2.0}, {"b", 3.0}}
	s := BandScaleOf(rows, 0, 0, 100, BandPadding{}, ScaleInfo{})
	assert.Equal(t, []string{"b", "a"}, s.Domain())
	assert.Equal(t, []string{"b", "a"}, s.TickLabels())
}

func TestBins(t *testing.T) {
	rows := []table.Row{{0.0}, {2.0}, {4.0}, {6.0}, {8.0}, {10.0}, {"x"}}
	bins := Bins(rows, 0, 5)
	require.Len(t, bins, 5)
	var counts []int
	for _, b := range bins {
		counts = append(counts, b.Count)
	}
	assert.Equal(t, []int{1, 1, 1, 1, 2}, counts)
	assert.Equal(t, 0.0, bins[0].X0)
	assert.Equal(t, 10.0, bins[4].X1)
	assert.Equal(t, []int{4, 5}, bins[4].Rows)

	bins = Bins([]table.Row{{3.0}, {3.0}}, 0, 5)
	require.Len(t, bins, 1)
	assert.Equal(t, Bin{X0: 2.5, X1: 3.5, Count: 2, Rows: []int{0, 1}}, bins[0])

	assert.Nil(t, Bins([]table.Row{{"x"}}, 0, 5))
}

func TestTimeScale(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	t1 := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)
	s := NewTimeScale(t0, t1, 0, 1000, 6, "", ScaleInfo{})
	assert.Equal(t, ScaleTime, s.Kind())
	assert.InDelta(t, 0, s.Map(t0), 1e-6)
	assert.InDelta(t, 1000, s.Map(t1), 1e-6)

	ticks := s.Ticks()
	require.NotEmpty(t, ticks)
	assert.LessOrEqual(t, len(ticks), 6)
	for i, tk := range ticks {
		assert.False(t, tk.Before(t0), "tick %v before domain", tk)
		assert.False(t, tk.After(t1), "tick %v after domain", tk)
		if i > 0 {
			assert.True(t, tk.After(ticks[i-1]))
		}
	}

	p, ok := s.Project("2024-01-01")
	require.True(t, ok)
	assert.InDelta(t, 0, p, 1e-6)
}

func TestSelectBandTicks(t *testing.T) {
	tests := []struct {
		n         int
		span, min float64
		want      []int
	}{
		{0, 100, 20, nil},
		{3, 100, 20, []int{0, 1, 2}},
		{10, 100, 20, []int{0, 3, 6, 9}},
		{10, 30, 20, []int{0, 9}},
		{8, 90, 30, []int{0, 4, 7}},
		{7, 90, 30, []int{0, 3, 6}},
		{1, 5, 20, []int{0}},
		{4, 100, 0, []int{0, 1, 2, 3}},
	}
	for _, tt := range tests {
		got := SelectBandTicks(tt.n, tt.span, tt.min)
		assert.Equal(t, tt.want, got, "SelectBandTicks(%d, %g, %g)", tt.n, tt.span, tt.min)
	}
}

func TestSelectBandTicksSpacing(t *testing.T) {
	for n := 2; n < 60; n++ {
		got := SelectBandTicks(n, 200, 20)
		require.NotEmpty(t, got)
		assert.Equal(t, 0, got[0])
		assert.Equal(t, n-1, got[len(got)-1])
		assert.LessOrEqual(t, len(got), 10)
		for i := 1; i < len(got); i++ {
			assert.GreaterOrEqual(t, float64(got[i]-got[i-1])*200/float64(n), 20.0, "n=%d: %v", n, got)
		}
	}
}

func TestTruncateLabel(t *testing.T) {
	tests := []struct {
		in    string
		max   int
		want  string
		trunc bool
	}{
		{"abcdef", 3, "abc…", true},
		{"abc", 3, "abc", false},
		{"héllo wörld", 4, "héll…", true},
		{"anything", 0, "anything", false},
	}
	for _, tt := range tests {
		got, trunc := TruncateLabel(tt.in, tt.max)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, tt.trunc, trunc)
	}
}

func TestNewTickTruncates(t *testing.T) {
	tk := newTick("x", 5, "a long label", 4)
	assert.Equal(t, "a lo…", tk.Label)
	assert.Equal(t, "a long label", tk.FullLabel)
	assert.True(t, tk.Truncated)

	tk = newTick("x", 5, "ok", 4)
	assert.Empty(t, tk.FullLabel)
	assert.False(t, tk.Truncated)
}

func TestSyncDomains(t *testing.T) {
	tests := []struct {
		name         string
		p, s         Bounds
		wantP, wantS Bounds
	}{
		{"zero at bottom and middle", Bounds{0, 10}, Bounds{-5, 5}, Bounds{-10, 10}, Bounds{-5, 5}},
		{"already aligned", Bounds{0, 10}, Bounds{0, 4}, Bounds{0, 10}, Bounds{0, 4}},
		{"opposite edges", Bounds{0, 10}, Bounds{-10, 0}, Bounds{-10, 10}, Bounds{-10, 10}},
		{"no zero", Bounds{2, 8}, Bounds{-1, 1}, Bounds{2, 8}, Bounds{-1, 1}},
		{"grow primary", Bounds{-2, 8}, Bounds{-1, 1}, Bounds{-8, 8}, Bounds{-1, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, s := SyncDomains(tt.p, tt.s)
			assert.InDelta(t, tt.wantP.Min, p.Min, 1e-9)
			assert.InDelta(t, tt.wantP.Max, p.Max, 1e-9)
			assert.InDelta(t, tt.wantS.Min, s.Min, 1e-9)
			assert.InDelta(t, tt.wantS.Max, s.Max, 1e-9)

			// The result contains the input.
			assert.LessOrEqual(t, p.Min, tt.p.Min)
			assert.GreaterOrEqual(t, p.Max, tt.p.Max)
			assert.LessOrEqual(t, s.Min, tt.s.Min)
			assert.GreaterOrEqual(t, s.Max, tt.s.Max)

			fp, okp := zeroFraction(p)
			fs, oks := zeroFraction(s)
			if okp && oks {
				assert.InDelta(t, fp, fs, 1e-9)
			}
		})
	}
}

func TestAlignTicks(t *testing.T) {
	got := alignTicks([]float64{0, 5, 10}, Bounds{0, 10}, Bounds{0, 100})
	assert.InDeltaSlice(t, []float64{0, 50, 100}, got, 1e-9)
	assert.Nil(t, alignTicks([]float64{1}, Bounds{1, 1}, Bounds{0, 1}))
}
