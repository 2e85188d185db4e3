// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"fmt"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// FontStyle describes how tick labels are drawn.
type FontStyle struct {
	Family string  `json:"family" yaml:"family"`
	Size   float64 `json:"size" yaml:"size"`
	Weight string  `json:"weight,omitempty" yaml:"weight,omitempty"`
}

// A TextMeasurer reports the rendered size of text. Hosts with a real
// text engine supply their own.
type TextMeasurer interface {
	MeasureText(text string, style FontStyle) (width, height float64, err error)
}

// MeasureFunc adapts a function to a [TextMeasurer].
type MeasureFunc func(text string, style FontStyle) (width, height float64, err error)

func (f MeasureFunc) MeasureText(text string, style FontStyle) (float64, float64, error) {
	return f(text, style)
}

// BasicMeasurer measures text with the fixed-width 7x13 bitmap face,
// scaled linearly to the requested font size.
type BasicMeasurer struct{}

func (BasicMeasurer) MeasureText(text string, style FontStyle) (float64, float64, error) {
	face := basicfont.Face7x13
	size := style.Size
	if size <= 0 {
		size = 12
	}
	k := size / float64(face.Height)
	w := float64(font.MeasureString(face, text).Ceil()) * k
	h := float64(face.Metrics().Height.Ceil()) * k
	return w, h, nil
}

// labelSize is the largest extent of a set of labels.
type labelSize struct {
	width, height float64
}

// measureLabels returns the width of the longest label and the line
// height. A measurer that fails or returns a non-finite size is an error.
func measureLabels(m TextMeasurer, labels []string, style FontStyle) (labelSize, error) {
	var out labelSize
	if m == nil {
		return out, fmt.Errorf("no text measurer")
	}
	for _, l := range labels {
		w, h, err := m.MeasureText(l, style)
		if err != nil {
			return labelSize{}, fmt.Errorf("measuring %q: %w", l, err)
		}
		if !finite(w) || !finite(h) || w < 0 || h < 0 {
			return labelSize{}, fmt.Errorf("measuring %q: non-finite size %gx%g", l, w, h)
		}
		out.width = max(out.width, w)
		out.height = max(out.height, h)
	}
	if len(labels) == 0 {
		// Still need a line height for titles and empty axes.
		_, h, err := m.MeasureText("M", style)
		if err != nil {
			return labelSize{}, fmt.Errorf("measuring line height: %w", err)
		}
		if !finite(h) {
			return labelSize{}, fmt.Errorf("measuring line height: non-finite %g", h)
		}
		out.height = h
	}
	return out, nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
