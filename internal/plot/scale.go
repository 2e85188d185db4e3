// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"fmt"
	"math"
	"slices"

	"github.com/aclements/go-moremath/scale"
	"github.com/aclements/querychart/internal/table"
)

// ScaleKind is the family of a [Scale].
type ScaleKind int

const (
	ScaleBand ScaleKind = iota
	ScaleLinear
	ScaleTime
)

func (k ScaleKind) String() string {
	switch k {
	case ScaleBand:
		return "BAND"
	case ScaleLinear:
		return "LINEAR"
	case ScaleTime:
		return "TIME"
	}
	return fmt.Sprintf("ScaleKind(%d)", int(k))
}

func (k ScaleKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// A Scale maps domain values to pixel positions. Scales are built once
// per layout pass and never modified afterwards.
type Scale interface {
	Kind() ScaleKind
	// Range returns the pixel span. lo may be greater than hi for
	// inverted (vertical) axes.
	Range() (lo, hi float64)
	// Project maps a cell value to a pixel position. It reports false
	// for values outside the scale's domain type.
	Project(v any) (float64, bool)
	Column() table.Column
	Title() string
	// TickLabels returns the formatted labels of the scale's natural
	// ticks.
	TickLabels() []string
}

// ScaleInfo is the descriptive part of a scale.
type ScaleInfo struct {
	Column table.Column
	Title  string
	// Format renders tick values. nil uses the cell's string form.
	Format func(any) string
}

func (si ScaleInfo) format(v any) string {
	if si.Format == nil {
		if f, ok := v.(float64); ok {
			return fmt.Sprintf("%.6g", f)
		}
		return table.String(v)
	}
	return si.Format(v)
}

type scaleMeta struct {
	info   ScaleInfo
	lo, hi float64
	labels []string
}

func (m *scaleMeta) Range() (float64, float64) { return m.lo, m.hi }
func (m *scaleMeta) Column() table.Column      { return m.info.Column }
func (m *scaleMeta) Title() string             { return m.info.Title }
func (m *scaleMeta) TickLabels() []string      { return slices.Clone(m.labels) }

// BandScale maps categories to equal pixel bands.
type BandScale struct {
	scaleMeta
	domain    []string
	index     map[string]int
	start     float64
	step      float64
	bandwidth float64
}

// NewBandScale returns a band scale over domain, which must already be
// de-duplicated, spanning [lo, hi]. If hi < lo the range collapses to lo.
// Bands are centred in the range.
func NewBandScale(domain []string, lo, hi float64, pad BandPadding, info ScaleInfo) *BandScale {
	if hi < lo {
		hi = lo
	}
	inner := min(max(pad.Inner, 0), 1)
	outer := max(pad.Outer, 0)
	s := &BandScale{
		scaleMeta: scaleMeta{info: info, lo: lo, hi: hi},
		domain:    slices.Clone(domain),
		index:     make(map[string]int, len(domain)),
	}
	for i, d := range domain {
		if _, ok := s.index[d]; !ok {
			s.index[d] = i
		}
	}
	n := float64(len(domain))
	s.step = (hi - lo) / max(1, n-inner+2*outer)
	s.start = lo + (hi-lo-s.step*(n-inner))*0.5
	s.bandwidth = s.step * (1 - inner)
	s.labels = make([]string, len(domain))
	for i, d := range domain {
		s.labels[i] = info.format(d)
	}
	return s
}

// BandScaleOf builds a band scale over the distinct values of column col.
func BandScaleOf(rows []table.Row, col int, lo, hi float64, pad BandPadding, info ScaleInfo) *BandScale {
	return NewBandScale(table.Unique(rows, col), lo, hi, pad, info)
}

func (s *BandScale) Kind() ScaleKind { return ScaleBand }

// Domain returns the categories in order.
func (s *BandScale) Domain() []string { return slices.Clone(s.domain) }

// Bandwidth returns the pixel width of one band.
func (s *BandScale) Bandwidth() float64 { return s.bandwidth }

// Step returns the distance between the starts of adjacent bands.
func (s *BandScale) Step() float64 { return s.step }

// Value returns the start pixel of category v's band.
func (s *BandScale) Value(v string) (float64, bool) {
	i, ok := s.index[v]
	if !ok {
		return 0, false
	}
	return s.At(i), true
}

// At returns the start pixel of the i'th band.
func (s *BandScale) At(i int) float64 {
	return s.start + s.step*float64(i)
}

func (s *BandScale) Project(v any) (float64, bool) {
	return s.Value(table.String(v))
}

// LinearOptions controls how a linear domain is derived from data bounds.
type LinearOptions struct {
	// Scaled lets the domain start near the data instead of including
	// zero.
	Scaled bool
	// Nice rounds the domain out to tick boundaries.
	Nice bool
	// MaxTicks bounds the number of ticks. Zero means 10.
	MaxTicks int
}

// LinearScale maps a numeric domain linearly to pixels.
type LinearScale struct {
	scaleMeta
	lin   scale.Linear
	ticks []float64
}

func tickOptions(maxTicks int) scale.TickOptions {
	if maxTicks <= 0 {
		maxTicks = 10
	}
	return scale.TickOptions{Max: maxTicks, MinLevel: -1000, MaxLevel: 1000}
}

// LinearDomain derives a domain from data bounds. Unless opt.Scaled, the
// domain includes zero. A degenerate domain is widened by moving the
// bound on zero's side to zero, or to [0, 1] if the data is all zero.
func LinearDomain(b Bounds, opt LinearOptions) Bounds {
	lo, hi := b.Min, b.Max
	if lo > hi {
		lo, hi = hi, lo
	}
	if !finite(lo) || !finite(hi) {
		lo, hi = 0, 0
	}
	if !opt.Scaled {
		lo, hi = min(lo, 0), max(hi, 0)
	}
	if lo == hi {
		switch {
		case lo > 0:
			lo = 0
		case hi < 0:
			hi = 0
		default:
			hi = 1
		}
	}
	if opt.Nice {
		l := scale.Linear{Min: lo, Max: hi}
		l.Nice(tickOptions(opt.MaxTicks))
		lo, hi = l.Min, l.Max
	}
	return Bounds{lo, hi}
}

// NewLinearScale returns a linear scale from the data bounds b to the
// pixel range [lo, hi].
func NewLinearScale(b Bounds, lo, hi float64, opt LinearOptions, info ScaleInfo) *LinearScale {
	d := LinearDomain(b, opt)
	return newLinearScale(d, lo, hi, nil, opt.MaxTicks, info)
}

// newLinearScale builds a scale over an already derived domain. If ticks
// is nil, nice ticks are generated.
func newLinearScale(d Bounds, lo, hi float64, ticks []float64, maxTicks int, info ScaleInfo) *LinearScale {
	s := &LinearScale{
		scaleMeta: scaleMeta{info: info, lo: lo, hi: hi},
		lin:       scale.Linear{Min: d.Min, Max: d.Max},
	}
	if ticks == nil {
		major, _ := s.lin.Ticks(tickOptions(maxTicks))
		const eps = 1e-9
		span := d.Max - d.Min
		for _, t := range major {
			if t >= d.Min-eps*span && t <= d.Max+eps*span {
				ticks = append(ticks, t)
			}
		}
		if len(ticks) == 0 {
			ticks = []float64{d.Min, d.Max}
		}
	}
	s.ticks = ticks
	s.labels = make([]string, len(ticks))
	for i, t := range ticks {
		s.labels[i] = info.format(t)
	}
	return s
}

func (s *LinearScale) Kind() ScaleKind { return ScaleLinear }

// Domain returns the numeric domain.
func (s *LinearScale) Domain() Bounds { return Bounds{s.lin.Min, s.lin.Max} }

// Map maps v to a pixel position. Values outside the domain extrapolate.
func (s *LinearScale) Map(v float64) float64 {
	return s.lo + s.lin.Map(v)*(s.hi-s.lo)
}

func (s *LinearScale) Project(v any) (float64, bool) {
	f, ok := table.Number(v)
	if !ok {
		return 0, false
	}
	return s.Map(f), true
}

// Ticks returns the tick values within the domain.
func (s *LinearScale) Ticks() []float64 { return slices.Clone(s.ticks) }

// Baseline returns the pixel position bars grow from: zero if it is in
// the domain, otherwise the domain bound closest to zero.
func (s *LinearScale) Baseline() float64 {
	d := s.Domain()
	return s.Map(min(max(0, d.Min), d.Max))
}

// Bin is one histogram bucket, [X0, X1).
type Bin struct {
	X0, X1 float64
	Count  int
	// Rows are the indices of the rows that fell in the bucket.
	Rows []int
}

// Bins partitions the numeric cells of column col into n equal-width
// buckets spanning the data. The last bucket is closed. If every value
// is equal, the single bucket is one unit wide around it.
func Bins(rows []table.Row, col int, n int) []Bin {
	if n <= 0 {
		n = 20
	}
	b := MinMax(rows, []int{col})
	found := false
	for _, r := range rows {
		if _, ok := table.Number(r.Cell(col)); ok {
			found = true
			break
		}
	}
	if !found {
		return nil
	}
	if b.Min == b.Max {
		bin := Bin{X0: b.Min - 0.5, X1: b.Max + 0.5}
		for i, r := range rows {
			if _, ok := table.Number(r.Cell(col)); ok {
				bin.Count++
				bin.Rows = append(bin.Rows, i)
			}
		}
		return []Bin{bin}
	}
	width := (b.Max - b.Min) / float64(n)
	bins := make([]Bin, n)
	for i := range bins {
		bins[i].X0 = b.Min + float64(i)*width
		bins[i].X1 = b.Min + float64(i+1)*width
	}
	bins[n-1].X1 = b.Max
	for i, r := range rows {
		v, ok := table.Number(r.Cell(col))
		if !ok {
			continue
		}
		k := int(math.Floor((v - b.Min) / width))
		k = min(max(k, 0), n-1)
		bins[k].Count++
		bins[k].Rows = append(bins[k].Rows, i)
	}
	return bins
}
