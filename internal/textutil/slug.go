// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package textutil provides text helpers shared by the component packages:
// slug derivation for menu identity and display-width operations for
// fixed-width terminal cells.
package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slug derives a stable identifier from a display title. Titles are the
// only identity menu entries carry, so two entries with the same title
// share selection state.
//
// The derivation: decompose to NFKD, drop combining marks, lowercase,
// collapse every non-alphanumeric run to a single dash, and trim dashes
// from both ends. "Café  Menu!" becomes "cafe-menu".
func Slug(title string) string {
	t := transform.Chain(norm.NFKD)
	decomposed, _, err := transform.String(t, title)
	if err != nil {
		decomposed = title // Fallback to original on error
	}

	var b strings.Builder
	b.Grow(len(decomposed))
	pendingDash := false
	for _, r := range decomposed {
		// Combining marks (accents, diacritics) carry no identity.
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(unicode.ToLower(r))
		default:
			pendingDash = true
		}
	}
	return b.String()
}
