// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tag is the render primitive underneath every rigdeck component.
// A Tag pairs content with a kind (how it occupies space), a class list
// (how it is styled, resolved through the theme's class registry), and
// optional attributes. Components compose Tags instead of calling Lip
// Gloss directly, so restyling a class in the theme restyles every
// component the same way.
package tag

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/jeranaias/rigdeck/styles"
)

// =============================================================================
// KINDS
// =============================================================================

// Kind controls how a Tag occupies space when rendered.
type Kind int

const (
	// Block renders full width with its own line.
	Block Kind = iota
	// Inline renders flush with no layout of its own.
	Inline
	// Link renders inline with link affordances; an href attribute
	// becomes a terminal hyperlink.
	Link
	// Button renders inline with padding and a panel background.
	Button
	// ListItem renders with a leading bullet glyph.
	ListItem
	// Panel renders inside a rounded border.
	Panel
)

// =============================================================================
// ATTRIBUTES
// =============================================================================

// Attribute names carried on Tags. Components read these; Render only
// acts on the ones with a terminal meaning.
const (
	AttrHref  = "href"
	AttrID    = "id"
	AttrTitle = "title"
	AttrLabel = "aria-label"
)

// =============================================================================
// TAG
// =============================================================================

// Tag is one renderable node.
type Tag struct {
	Kind    Kind
	Classes []string
	Attrs   map[string]string
	Content string
}

// New builds a Tag of the given kind.
func New(kind Kind, content string, classes ...string) Tag {
	return Tag{Kind: kind, Classes: classes, Content: content}
}

// WithAttr returns a copy of the Tag with one attribute set.
func (t Tag) WithAttr(name, value string) Tag {
	attrs := make(map[string]string, len(t.Attrs)+1)
	for k, v := range t.Attrs {
		attrs[k] = v
	}
	attrs[name] = value
	t.Attrs = attrs
	return t
}

// Attr returns the named attribute, or "" when unset.
func (t Tag) Attr(name string) string {
	if t.Attrs == nil {
		return ""
	}
	return t.Attrs[name]
}

// Render resolves the class list against the theme and lays the content
// out according to the kind. width applies to Block and Panel; other
// kinds size to their content. A width of 0 means unconstrained.
func (t Tag) Render(theme *styles.Theme, width int) string {
	style := theme.Resolve(t.Classes...)

	switch t.Kind {
	case Inline:
		return style.Render(t.Content)

	case Link:
		base := lipgloss.NewStyle().Foreground(styles.LinkColor).Underline(true)
		text := style.Inherit(base).Render(t.Content)
		if href := t.Attr(AttrHref); href != "" {
			return termenv.Hyperlink(href, text)
		}
		return text

	case Button:
		base := lipgloss.NewStyle().Background(styles.Overlay)
		return style.Inherit(base).Padding(0, 1).Render(t.Content)

	case ListItem:
		return style.Render(theme.Glyphs.Bullet + " " + t.Content)

	case Panel:
		panel := style.Inherit(lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(styles.Overlay)).
			Padding(0, 1)
		if width > 2 {
			// Border consumes one column per side.
			panel = panel.Width(width - 2)
		}
		return panel.Render(t.Content)

	default: // Block
		if width > 0 {
			style = style.Width(width)
		}
		return style.Render(t.Content)
	}
}
