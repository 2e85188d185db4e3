// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"fmt"
	"strings"
	"sync"
)

// Axis names one of a chart's axes.
type Axis int

const (
	AxisX  Axis = iota // Bottom
	AxisY              // Left
	AxisY2             // Right, secondary measure

	axisMax
)

// Name returns a short name for axis a, such as "x".
func (a Axis) Name() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisY2:
		return "y2"
	}
	return fmt.Sprintf("Axis(%d)", a)
}

var nameToAxis = sync.OnceValue(func() map[string]Axis {
	m := make(map[string]Axis)
	for i := Axis(0); i < axisMax; i++ {
		m[i.Name()] = i
	}
	return m
})

// AxisFromName is the inverse of [Axis.Name].
func AxisFromName(name string) (Axis, bool) {
	a, ok := nameToAxis()[name]
	return a, ok
}

// axisMap is an efficient map from Axis to T.
type axisMap[T any] struct {
	axes [axisMax]T
}

func (m *axisMap[T]) Set(a Axis, val T) {
	m.axes[a] = val
}

func (m *axisMap[T]) Get(a Axis) T {
	return m.axes[a]
}

func (m *axisMap[T]) String() string {
	var buf strings.Builder
	buf.WriteByte('{')
	for a := Axis(0); a < axisMax; a++ {
		if a > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(a.Name())
		buf.WriteByte(':')
		fmt.Fprint(&buf, m.Get(a))
	}
	buf.WriteByte('}')
	return buf.String()
}
