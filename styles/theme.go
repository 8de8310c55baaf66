// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled pieces the components render with, plus a
// class registry mapping the kit's class names to styles. It detects the
// terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Glyph set matching the detected capability
	Glyphs GlyphSet

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// CAROUSEL STYLES
	// ==========================================================================

	CarouselFrame lipgloss.Style
	CarouselInner lipgloss.Style
	SlideBody     lipgloss.Style
	CaptionBox    lipgloss.Style
	CaptionHeader lipgloss.Style
	CaptionText   lipgloss.Style

	IndicatorActive   lipgloss.Style
	IndicatorInactive lipgloss.Style
	Control           lipgloss.Style
	ControlDisabled   lipgloss.Style

	// ==========================================================================
	// NAV MENU STYLES
	// ==========================================================================

	NavFrame       lipgloss.Style
	NavLink        lipgloss.Style
	NavLinkActive  lipgloss.Style
	NavRowFocused  lipgloss.Style
	DropdownToggle lipgloss.Style
	DropdownMenu   lipgloss.Style
	DropdownItem   lipgloss.Style
	NavCaret       lipgloss.Style

	// classes maps the kit's class names to styles. Components resolve
	// class lists through it; see Resolve.
	classes map[string]lipgloss.Style
}

// NewTheme creates a new theme with all styles configured.
func NewTheme() *Theme {
	colorProfile := termenv.ColorProfile()
	hasTrueColor := colorProfile == termenv.TrueColor
	isDark := termenv.HasDarkBackground()

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: hasTrueColor,
		ColorProfile: colorProfile,
		Glyphs:       ASCIIGlyphs,
	}
	if colorProfile == termenv.TrueColor || colorProfile == termenv.ANSI256 {
		t.Glyphs = UnicodeGlyphs
	}

	t.initStyles()
	t.initClasses()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// Carousel chrome
	t.CarouselFrame = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay)

	t.CarouselInner = lipgloss.NewStyle().
		Padding(0, 1)

	t.SlideBody = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.CaptionBox = lipgloss.NewStyle().
		Background(SurfaceDim).
		Padding(0, 2).
		Align(lipgloss.Center)

	t.CaptionHeader = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple)

	t.CaptionText = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.IndicatorActive = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.IndicatorInactive = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.Control = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true).
		Padding(0, 1)

	t.ControlDisabled = lipgloss.NewStyle().
		Foreground(TextMuted).
		Padding(0, 1)

	// Nav menu chrome. The frame stays geometry-free so menu rows map
	// one to one onto screen lines for pointer hit-testing.
	t.NavFrame = lipgloss.NewStyle()

	t.NavLink = lipgloss.NewStyle().
		Foreground(LinkColor)

	t.NavLinkActive = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true).
		Underline(true)

	t.NavRowFocused = lipgloss.NewStyle().
		Background(SelectionBg)

	t.DropdownToggle = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Bold(true)

	t.DropdownMenu = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.DropdownItem = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.NavCaret = lipgloss.NewStyle().
		Foreground(TextMuted)
}

// initClasses builds the class registry. The names mirror the CSS-framework
// conventions the kit's markup vocabulary comes from, so content authored
// against those conventions styles the same way here.
func (t *Theme) initClasses() {
	t.classes = map[string]lipgloss.Style{
		// State classes
		"active":   lipgloss.NewStyle().Foreground(Cyan).Bold(true),
		"disabled": lipgloss.NewStyle().Foreground(TextMuted).Faint(true),
		"show":     lipgloss.NewStyle(),
		"focus":    t.NavRowFocused,

		// Carousel classes
		"carousel":              t.CarouselFrame,
		"slide":                 lipgloss.NewStyle(),
		"carousel-fade":         lipgloss.NewStyle().Faint(true),
		"carousel-inner":        t.CarouselInner,
		"carousel-item":         t.SlideBody,
		"carousel-item-prev":    lipgloss.NewStyle().Foreground(TextMuted),
		"carousel-item-next":    lipgloss.NewStyle().Foreground(TextMuted),
		"carousel-item-left":    lipgloss.NewStyle().Faint(true),
		"carousel-item-right":   lipgloss.NewStyle().Faint(true),
		"carousel-caption":      t.CaptionBox,
		"carousel-indicators":   lipgloss.NewStyle().Foreground(TextMuted),
		"carousel-control-prev": t.Control,
		"carousel-control-next": t.Control,

		// Nav classes
		"nav":             t.NavFrame,
		"nav-item":        lipgloss.NewStyle(),
		"nav-link":        t.NavLink,
		"dropdown":        lipgloss.NewStyle(),
		"dropdown-toggle": t.DropdownToggle,
		"dropdown-menu":   t.DropdownMenu,
		"dropdown-item":   t.DropdownItem,

		// Utility classes
		"visually-hidden": lipgloss.NewStyle().Faint(true),
		"text-muted":      lipgloss.NewStyle().Foreground(TextMuted),
	}
}

// Resolve merges the styles registered for the given class names.
// Later classes win where they set the same attribute; unknown class
// names are ignored, matching how a class string tolerates classes the
// stylesheet never defined. Inline attributes merge; box geometry
// (padding, borders) comes from whichever class sets it first.
func (t *Theme) Resolve(classes ...string) lipgloss.Style {
	merged := lipgloss.NewStyle()
	for _, name := range classes {
		cls, ok := t.classes[name]
		if !ok {
			continue
		}
		merged = cls.Inherit(merged)
	}
	return merged
}

// Register adds or replaces a class in the registry. Deck files use this
// to restyle the stock class names without forking the theme.
func (t *Theme) Register(name string, style lipgloss.Style) {
	if t.classes == nil {
		t.classes = make(map[string]lipgloss.Style)
	}
	t.classes[name] = style
}

// HasClass reports whether a class name is registered.
func (t *Theme) HasClass(name string) bool {
	_, ok := t.classes[name]
	return ok
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // > 100 columns
)
