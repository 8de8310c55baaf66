// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

// =============================================================================
// GLYPH SETS
// =============================================================================

// GlyphSet holds the characters the components draw chrome with. ASCII-only
// sets keep rendering correct on terminals without Unicode fonts and give
// colorblind users shape cues beyond color.
type GlyphSet struct {
	IndicatorActive   string // marker for the current slide
	IndicatorInactive string // marker for every other slide
	ControlPrev       string // previous-slide control
	ControlNext       string // next-slide control
	CaretClosed       string // collapsed branch caret
	CaretOpen         string // deployed branch caret
	Bullet            string // leaf entry marker
	Pointer           string // focused menu row marker
}

// ASCIIGlyphs is the default set. Safe everywhere.
var ASCIIGlyphs = GlyphSet{
	IndicatorActive:   "[*]",
	IndicatorInactive: "[ ]",
	ControlPrev:       "<",
	ControlNext:       ">",
	CaretClosed:       "+",
	CaretOpen:         "-",
	Bullet:            "*",
	Pointer:           ">",
}

// UnicodeGlyphs is used when the terminal reports at least 256 colors,
// which in practice tracks font coverage closely enough.
var UnicodeGlyphs = GlyphSet{
	IndicatorActive:   "●",
	IndicatorInactive: "○",
	ControlPrev:       "‹",
	ControlNext:       "›",
	CaretClosed:       "▸",
	CaretOpen:         "▾",
	Bullet:            "•",
	Pointer:           "›",
}
