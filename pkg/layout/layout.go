// Package layout fits text blocks into fixed rectangular regions.
//
// The engine answers one question: what is the largest font size at
// which a given block of text still fits inside a bounding box? The
// search decrements from a starting size one point at a time. Fit is
// monotonic in size, and measuring a candidate size is cheap next to
// rendering a slide, so a linear scan keeps the logic obvious.
package layout

import (
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/classdeck/classdeck/pkg/errors"
)

// DefaultWrapColumns is the character-column width at which award
// strings are pre-wrapped before fitting.
const DefaultWrapColumns = 30

// FaceSource provides font faces at integer point sizes.
// Implemented by fonts.Source and by fixed-metric test fakes.
type FaceSource interface {
	Face(size int) (font.Face, error)
}

// Line is one measured line of a fitted block.
type Line struct {
	Text  string
	Width float64 // advance at the chosen size
}

// Result describes a fitted text block. Placement is left to the
// caller; the result carries everything needed to center the block and
// its individual lines.
type Result struct {
	Size   int     // chosen font size
	Width  float64 // widest line advance
	Height float64 // total block height including inter-line spacing

	Ascent     float64 // baseline offset from a line's top
	LineHeight float64 // ascent + descent of one line
	Spacing    float64 // extra pixels between consecutive lines

	Lines []Line
}

// Fit finds the largest integer font size ≤ start at which text fits
// strictly within maxWidth and, when maxHeight > 0, strictly within
// maxHeight. Lines are separated by '\n'; the line structure is fixed
// during the search, only the size varies.
//
// Returns a LAYOUT_INFEASIBLE error when no size down to 1 fits:
// clipped text on a slide is worse than an explicit failure.
func Fit(src FaceSource, text string, start int, maxWidth, maxHeight, spacing float64) (*Result, error) {
	if start < 1 {
		return nil, errors.New(errors.ErrCodeLayoutInfeasible, "start size must be positive, got %d", start)
	}

	lines := strings.Split(text, "\n")

	for size := start; size >= 1; size-- {
		face, err := src.Face(size)
		if err != nil {
			return nil, err
		}

		r := measure(face, lines, spacing)
		r.Size = size
		if r.Width < maxWidth && (maxHeight <= 0 || r.Height < maxHeight) {
			return r, nil
		}
	}

	return nil, errors.New(errors.ErrCodeLayoutInfeasible,
		"text %q does not fit within %.0fx%.0f at any size ≤ %d", firstLine(text), maxWidth, maxHeight, start)
}

// measure computes the bounding box of lines at the face's size.
func measure(face font.Face, lines []string, spacing float64) *Result {
	m := face.Metrics()
	ascent := fixedToFloat(m.Ascent)
	lineHeight := ascent + fixedToFloat(m.Descent)

	r := &Result{
		Ascent:     ascent,
		LineHeight: lineHeight,
		Spacing:    spacing,
		Lines:      make([]Line, len(lines)),
	}

	for i, line := range lines {
		w := fixedToFloat(font.MeasureString(face, line))
		r.Lines[i] = Line{Text: line, Width: w}
		if w > r.Width {
			r.Width = w
		}
	}

	r.Height = lineHeight + float64(len(lines)-1)*(lineHeight+spacing)
	return r
}

// fixedToFloat converts a 26.6 fixed-point value to float64 pixels.
func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

// firstLine truncates text to its first line for error messages.
func firstLine(text string) string {
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		return text[:i] + "…"
	}
	return text
}
