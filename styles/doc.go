// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the rigdeck
component kit.

This package defines the color palette, the glyph sets, and the Theme
that every component renders through. All colors use Lip Gloss
AdaptiveColor for automatic light/dark terminal detection.

# Color System (colors.go)

  - Purple - Primary accent for selections and deployed branches
  - Cyan - Brand color for links and active indicators
  - Emerald - Autoplay running
  - Amber - Autoplay paused, warnings
  - Rose - Errors

Surface and text tokens follow the layered system:

	Surface    - Main background
	SurfaceDim - Captions and dropdown panels
	Overlay    - Borders and separators
	TextPrimary / TextSecondary / TextMuted / TextInverse

# Theme and Class Registry (theme.go)

The Theme detects terminal capabilities and carries both named component
styles and a class registry. The registry maps the kit's class names
("carousel-item", "active", "nav-link", ...) to styles, and Resolve
merges a class list with later classes winning:

	theme := styles.NewTheme()
	style := theme.Resolve("carousel-item", "active")

Deck files restyle stock classes through Register without forking the
theme.

# Glyph Sets (glyphs.go)

ASCIIGlyphs is the safe default; UnicodeGlyphs is selected automatically
on 256-color and truecolor terminals. Components never hardcode chrome
characters.
*/
package styles
