// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package textutil

import (
	"github.com/mattn/go-runewidth"
)

// UNICODE: All width math goes through go-runewidth so CJK characters,
// emoji, and other double-width runes occupy the columns the terminal
// actually gives them. Byte or rune counts are never used for layout.

// Width returns the display width of a string in terminal columns.
func Width(s string) int {
	return runewidth.StringWidth(s)
}

// Truncate shortens a string to at most maxWidth columns, appending "..."
// when anything was cut. Safe for double-width runes.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, "...")
}

// TruncateNoTail shortens a string to at most maxWidth columns without
// appending an ellipsis.
func TruncateNoTail(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	return runewidth.Truncate(s, maxWidth, "")
}

// Pad right-fills a string with spaces to exactly width columns,
// truncating first if it is already wider.
func Pad(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, "")
	}
	return runewidth.FillRight(s, width)
}
