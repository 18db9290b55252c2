package textmetric

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/matzehuels/treechart/pkg/errors"
)

// Default estimator constants.
const (
	DefaultBaseCharPx  = 16.0
	DefaultLineSpacing = 1.5
	DefaultMinHeight   = 60.0
)

// maxCharsPerLine caps charsPerLine so an infinite box width stays an integer.
const maxCharsPerLine = 1 << 20

// Mode selects how text length is measured.
type Mode int

const (
	// ModeRunes counts every rune as one glyph advance.
	ModeRunes Mode = iota
	// ModeCells counts display cells; two cells make one glyph advance.
	ModeCells
)

// String returns the config name of the mode.
func (m Mode) String() string {
	if m == ModeCells {
		return "cells"
	}
	return "runes"
}

// ParseMode converts a config name to a Mode. An empty string selects ModeRunes.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "runes":
		return ModeRunes, nil
	case "cells":
		return ModeCells, nil
	}
	return ModeRunes, errors.New(errors.ErrCodeInvalidConfig, "unknown text mode %q (must be runes or cells)", s)
}

// Estimator holds the font constants used for height estimation.
// Zero, negative or non-finite fields fall back to the package defaults.
type Estimator struct {
	BaseCharPx  float64 // average glyph advance at fontScale 1
	LineSpacing float64 // line height as a multiple of the glyph advance
	MinHeight   float64 // floor for every estimated height
	Mode        Mode
}

// Default returns an Estimator with the package defaults.
func Default() Estimator {
	return Estimator{
		BaseCharPx:  DefaultBaseCharPx,
		LineSpacing: DefaultLineSpacing,
		MinHeight:   DefaultMinHeight,
	}
}

// Metrics describes how a text wraps inside a box.
type Metrics struct {
	CharsPerLine int     // glyph advances that fit on one line
	Lines        int     // number of wrapped lines
	LineHeight   float64 // height of one line
	Height       float64 // box height including padding and the minimum floor
}

// EstimateBoxHeight estimates a box height with the default estimator.
func EstimateBoxHeight(text string, boxWidth, fontScale, padding float64) float64 {
	return Default().BoxHeight(text, boxWidth, fontScale, padding)
}

// BoxHeight returns the estimated height of a box of width boxWidth holding
// text at the given font scale, with padding reserved both horizontally and
// vertically.
func (e Estimator) BoxHeight(text string, boxWidth, fontScale, padding float64) float64 {
	return e.Measure(text, boxWidth, fontScale, padding).Height
}

// Measure returns the full wrapping metrics behind [Estimator.BoxHeight].
func (e Estimator) Measure(text string, boxWidth, fontScale, padding float64) Metrics {
	e = e.normalized()
	fontScale = clampScale(fontScale)
	padding = clampPadding(padding)

	cpl := e.charsPerLine(boxWidth, fontScale, padding)
	var lines int
	if e.Mode == ModeCells {
		e.split(text, cpl, func(string) { lines++ })
	} else {
		lines = int(math.Ceil(float64(utf8.RuneCountInString(text)) / float64(cpl)))
	}
	lineHeight := fontScale * e.BaseCharPx * e.LineSpacing

	return Metrics{
		CharsPerLine: cpl,
		Lines:        lines,
		LineHeight:   lineHeight,
		Height:       max(float64(lines)*lineHeight+padding, e.MinHeight),
	}
}

// Wrap splits text into the lines assumed by [Estimator.Measure]. Newlines
// and tabs are treated as spaces. In ModeCells a wide glyph that does not fit
// at the end of a line starts the next one, and zero-width runes such as
// combining marks stay on the line of the rune before them.
func (e Estimator) Wrap(text string, boxWidth, fontScale, padding float64) []string {
	e = e.normalized()
	cpl := e.charsPerLine(boxWidth, clampScale(fontScale), clampPadding(padding))
	var lines []string
	e.split(text, cpl, func(line string) { lines = append(lines, line) })
	return lines
}

// split greedily fills lines of cpl advances and calls emit for each one.
func (e Estimator) split(text string, cpl int, emit func(line string)) {
	text = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' || r == '\r' {
			return ' '
		}
		return r
	}, text)

	budget := cpl
	if e.Mode == ModeCells {
		budget = cpl * 2
	}
	start, used := 0, 0
	for i, r := range text {
		w := e.width(r)
		if used > 0 && used+w > budget {
			emit(text[start:i])
			start, used = i, 0
		}
		used += w
	}
	if start < len(text) {
		emit(text[start:])
	}
}

// width returns the budget r consumes: one per rune, or its display cells.
func (e Estimator) width(r rune) int {
	if e.Mode == ModeCells {
		return runewidth.RuneWidth(r)
	}
	return 1
}

func (e Estimator) charsPerLine(boxWidth, fontScale, padding float64) int {
	charWidth := fontScale * e.BaseCharPx
	usable := boxWidth - padding
	cpl := math.Floor(usable / charWidth)
	if !(cpl >= 1) {
		return 1
	}
	return int(min(cpl, maxCharsPerLine))
}

func (e Estimator) normalized() Estimator {
	if !positive(e.BaseCharPx) {
		e.BaseCharPx = DefaultBaseCharPx
	}
	if !positive(e.LineSpacing) {
		e.LineSpacing = DefaultLineSpacing
	}
	if !positive(e.MinHeight) {
		e.MinHeight = DefaultMinHeight
	}
	return e
}

func clampScale(fontScale float64) float64 {
	if !positive(fontScale) {
		return 1
	}
	return fontScale
}

func clampPadding(padding float64) float64 {
	if math.IsNaN(padding) || math.IsInf(padding, 0) || padding < 0 {
		return 0
	}
	return padding
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
