// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

// SyncDomains extends a primary and a secondary domain so that zero falls
// at the same fraction of both. Domains that do not contain zero are
// returned unchanged.
func SyncDomains(p, s Bounds) (Bounds, Bounds) {
	fp, okp := zeroFraction(p)
	fs, oks := zeroFraction(s)
	if !okp || !oks || fp == fs {
		return p, s
	}
	// Zero can only move away from an edge it sits on, so pick a
	// fraction strictly inside (0, 1).
	f := max(fp, fs)
	if f >= 1 {
		f = min(fp, fs)
	}
	if f <= 0 || f >= 1 {
		f = 0.5
	}
	return alignZero(p, f), alignZero(s, f)
}

// zeroFraction returns where zero sits in b, as a fraction from b.Min.
func zeroFraction(b Bounds) (float64, bool) {
	if b.Min > 0 || b.Max < 0 || b.Min == b.Max {
		return 0, false
	}
	return -b.Min / (b.Max - b.Min), true
}

// alignZero grows b until zero sits at fraction f of it, 0 < f < 1.
func alignZero(b Bounds, f float64) Bounds {
	span := max(b.Max/(1-f), -b.Min/f)
	return Bounds{Min: -f * span, Max: (1 - f) * span}
}

// alignTicks maps ticks of domain p to the same relative positions in
// domain s, so both axes share grid lines.
func alignTicks(ticks []float64, p, s Bounds) []float64 {
	if p.Max == p.Min {
		return nil
	}
	out := make([]float64, len(ticks))
	for i, t := range ticks {
		frac := (t - p.Min) / (p.Max - p.Min)
		out[i] = s.Min + frac*(s.Max-s.Min)
	}
	return out
}
