// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package carousel

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/rigdeck/styles"
	"github.com/jeranaias/rigdeck/tag"
)

// =============================================================================
// LAYOUT
// =============================================================================

// frameLayout is the cell geometry of one rendered frame, relative to the
// frame origin. View draws with it and handleMouse hit-tests against it,
// so the two can never disagree about where a control lives.
type frameLayout struct {
	inner Rect
	prev  Rect
	next  Rect
	dots  []Rect
}

// layout derives the frame geometry from the configured size, the slide
// count, and the glyph set. Indicator glyphs are assumed uniform width,
// which both stock glyph sets guarantee.
func (c Controlled) layout() frameLayout {
	theme := c.theme
	if theme == nil {
		theme = styles.NewTheme()
	}
	glyphs := theme.Glyphs

	w, h := c.width, c.height
	if w <= 0 {
		w = 60
	}
	if h <= 0 {
		h = 10
	}

	ctrlW := 0
	if c.Controls && len(c.items) > 1 {
		ctrlW = lipgloss.Width(glyphs.ControlPrev) + 2
	}
	indH := 0
	if c.Indicators && len(c.items) > 1 {
		indH = 1
	}

	innerH := h - indH
	if innerH < 1 {
		innerH = 1
	}
	innerW := w - 2*ctrlW
	if innerW < 1 {
		innerW = 1
	}

	lay := frameLayout{
		prev:  Rect{X: 0, Y: 0, W: ctrlW, H: innerH},
		inner: Rect{X: ctrlW, Y: 0, W: innerW, H: innerH},
		next:  Rect{X: ctrlW + innerW, Y: 0, W: ctrlW, H: innerH},
	}

	if indH == 1 {
		n := len(c.items)
		dotW := lipgloss.Width(glyphs.IndicatorInactive)
		rowW := n*dotW + (n - 1)
		startX := (w - rowW) / 2
		if startX < 0 {
			startX = 0
		}
		for i := 0; i < n; i++ {
			lay.dots = append(lay.dots, Rect{X: startX + i*(dotW+1), Y: innerH, W: dotW, H: 1})
		}
	}
	return lay
}

// =============================================================================
// FRAME
// =============================================================================

// View renders the deck: controls flanking the slide viewport, with the
// indicator row underneath. A carousel that has not been started, or has
// nothing to show, renders nothing.
func (c Controlled) View() string {
	if !c.started || len(c.items) == 0 {
		return ""
	}
	if c.theme == nil {
		c.theme = styles.NewTheme()
	}

	lay := c.layout()
	vc := ViewContext{Current: c.active, Count: len(c.items), Direction: c.direction}

	slide := c.items[c.active].View(c.theme, c.active, vc, lay.inner.W)
	inner := lipgloss.Place(lay.inner.W, lay.inner.H, lipgloss.Center, lipgloss.Center, slide)

	frame := inner
	if lay.prev.W > 0 {
		frame = lipgloss.JoinHorizontal(lipgloss.Top,
			c.renderControl(c.theme.Glyphs.ControlPrev, "carousel-control-prev", lay.prev),
			inner,
			c.renderControl(c.theme.Glyphs.ControlNext, "carousel-control-next", lay.next),
		)
	}

	if len(lay.dots) > 0 {
		frame = lipgloss.JoinVertical(lipgloss.Left, frame, c.renderIndicators(lay))
	}
	return frame
}

// =============================================================================
// CONTROLS
// =============================================================================

// renderControl renders one prev/next glyph centered in its column.
func (c Controlled) renderControl(glyph, class string, zone Rect) string {
	rendered := tag.New(tag.Inline, glyph, class).Render(c.theme, 0)
	return lipgloss.Place(zone.W, zone.H, lipgloss.Center, lipgloss.Center, rendered)
}

// =============================================================================
// INDICATORS
// =============================================================================

// renderIndicators renders the dot row, padded so each dot lands exactly
// on its hit zone.
func (c Controlled) renderIndicators(lay frameLayout) string {
	glyphs := c.theme.Glyphs

	dots := make([]string, 0, len(c.items))
	for i := range c.items {
		glyph := glyphs.IndicatorInactive
		classes := []string{"carousel-indicators"}
		if i == c.active {
			glyph = glyphs.IndicatorActive
			classes = append(classes, "active")
		}
		dots = append(dots, tag.New(tag.Inline, glyph, classes...).Render(c.theme, 0))
	}

	pad := ""
	if len(lay.dots) > 0 && lay.dots[0].X > 0 {
		pad = strings.Repeat(" ", lay.dots[0].X)
	}
	return pad + strings.Join(dots, " ")
}
