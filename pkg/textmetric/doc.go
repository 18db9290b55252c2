// Package textmetric estimates how tall a text box must be.
//
// Chart boxes have a fixed width and a height that depends on how many lines
// their text wraps to. Real glyph metrics are not available when the layout is
// computed, so [Estimator] approximates every glyph with the same advance:
//
//	charWidth    = fontScale * BaseCharPx
//	charsPerLine = floor((boxWidth - padding) / charWidth), at least 1
//	lines        = ceil(len(text) / charsPerLine)
//	height       = max(lines * fontScale * BaseCharPx * LineSpacing + padding, MinHeight)
//
// The defaults (16px, 1.5, 60px) are tuned for CJK text where every glyph is
// close to one em wide. For mixed scripts use [ModeCells], which measures
// East-Asian display cells and counts a narrow (Latin) glyph as half an
// advance. In that mode lines are counted by the same greedy pass that
// [Estimator.Wrap] uses: a wide glyph never straddles two lines and
// zero-width runes add nothing.
//
// Estimation is a pure function of its inputs and is safe for concurrent use.
// Degenerate inputs are clamped rather than rejected: the result is always a
// finite number no smaller than MinHeight.
//
// [Estimator.Wrap] splits text at the same positions the estimate assumes, so
// renderers can draw text that fills exactly the estimated number of lines.
package textmetric
