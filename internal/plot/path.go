// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"strconv"
	"strings"
)

// A Point is a pixel position.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// pathData accumulates SVG path data.
type pathData struct {
	buf strings.Builder
}

func (p *pathData) cmd(c byte, xs ...float64) {
	if p.buf.Len() > 0 {
		p.buf.WriteByte(' ')
	}
	p.buf.WriteByte(c)
	for i, x := range xs {
		if i > 0 {
			p.buf.WriteByte(',')
		}
		p.buf.WriteString(strconv.FormatFloat(x, 'f', 2, 64))
	}
}

func (p *pathData) moveTo(a Point) { p.cmd('M', a.X, a.Y) }
func (p *pathData) lineTo(a Point) { p.cmd('L', a.X, a.Y) }
func (p *pathData) curveTo(c1, c2, a Point) { p.cmd('C', c1.X, c1.Y, c2.X, c2.Y, a.X, a.Y) }
func (p *pathData) close() { p.cmd('Z') }
func (p *pathData) String() string { return p.buf.String() }
func (p *pathData) arc(r float64, large bool, a Point) {
	l := 0.0
	if large {
		l = 1
	}
	p.cmd('A', r, r, 0, l, 1, a.X, a.Y)
}
