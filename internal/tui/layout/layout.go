package layout

import "github.com/mattn/go-runewidth"

// Width tiers are shared across TUI surfaces so behavior stays predictable on
// narrow laptops, split panes, and wide displays. Panels need roughly 50 cells
// to render their content without aggressive truncation, so the thresholds
// leave headroom for borders and the gap between columns.
//
// Tier semantics:
//   - TierNarrow: panels stack in a single column
//   - TierSplit: two-column grid
//   - TierWide: three-column grid
const (
	TwoColumnThreshold   = 110
	ThreeColumnThreshold = 170
)

// Tier describes the current width bucket.
type Tier int

const (
	TierNarrow Tier = 0
	TierSplit  Tier = 1
	TierWide   Tier = 2
)

// TierForWidth maps a terminal width to a tier.
func TierForWidth(width int) Tier {
	switch {
	case width >= ThreeColumnThreshold:
		return TierWide
	case width >= TwoColumnThreshold:
		return TierSplit
	default:
		return TierNarrow
	}
}

// Columns returns the panel grid column count for the tier.
func (t Tier) Columns() int {
	switch t {
	case TierWide:
		return 3
	case TierSplit:
		return 2
	default:
		return 1
	}
}

// ColumnWidths splits a total width into per-column budgets, reserving one
// cell of gap between adjacent columns. Leftover cells go to the leftmost
// columns so the sum always fills the available width.
func ColumnWidths(total, cols int) []int {
	if cols <= 1 {
		return []int{total}
	}
	avail := total - (cols - 1)
	if avail < cols {
		return []int{total}
	}
	base := avail / cols
	rem := avail % cols
	widths := make([]int, cols)
	for i := range widths {
		widths[i] = base
		if i < rem {
			widths[i]++
		}
	}
	return widths
}

// RowHeights splits a total height into per-row budgets. Leftover cells go to
// the topmost rows.
func RowHeights(total, rows int) []int {
	if rows <= 1 {
		return []int{total}
	}
	if total < rows {
		total = rows
	}
	base := total / rows
	rem := total % rows
	heights := make([]int, rows)
	for i := range heights {
		heights[i] = base
		if i < rem {
			heights[i]++
		}
	}
	return heights
}

// TruncateRunes trims a string to max display cells and appends suffix when
// truncated. Wide glyphs and emoji are counted by terminal cell, not by rune,
// so truncated lines still fit their panel frame.
func TruncateRunes(s string, max int, suffix string) string {
	if max <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= max {
		return s
	}
	if max < runewidth.StringWidth(suffix) {
		return runewidth.Truncate(s, max, "")
	}
	return runewidth.Truncate(s, max, suffix)
}

// Truncate is a convenience wrapper for TruncateRunes using the standard
// single-character ellipsis "…" (U+2026). This is the preferred truncation
// function for visual consistency across the TUI.
func Truncate(s string, max int) string {
	return TruncateRunes(s, max, "…")
}
