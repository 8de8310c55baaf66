// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package navmenu

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/rigdeck/internal/textutil"
	"github.com/jeranaias/rigdeck/tag"
)

// defaultWidth sizes the menu when the embedding program never set one.
const defaultWidth = 40

// =============================================================================
// VIEW
// =============================================================================

// View renders the menu. A stopped or empty menu renders nothing.
func (m Model) View() string {
	if !m.started || len(m.nodes) == 0 {
		return ""
	}
	if m.Orientation == Horizontal {
		return m.viewHorizontal()
	}
	return m.viewVertical()
}

// -----------------------------------------------------------------------------
// Vertical: one row per visible node, deployed branches indented below.
// -----------------------------------------------------------------------------

func (m Model) viewVertical() string {
	rows := m.visibleRows()
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = m.renderVerticalRow(r, i == m.focus)
	}
	body := strings.Join(lines, "\n")
	return tag.New(tag.Block, body, "nav").Render(m.theme, m.width)
}

func (m Model) renderVerticalRow(r row, focused bool) string {
	glyphs := m.theme.Glyphs

	gutter := "  "
	if focused {
		gutter = glyphs.Pointer + " "
	}
	indent := strings.Repeat("  ", r.depth)

	caret := ""
	if r.node.IsBranch() {
		caret = r.node.Caret.Render(glyphs, m.isOpen(r.path))
	}

	title := r.node.Title
	if m.width > 0 {
		avail := m.width - textutil.Width(gutter) - textutil.Width(indent)
		if caret != "" {
			avail -= textutil.Width(caret) + 1
		}
		if avail < 1 {
			avail = 1
		}
		title = textutil.Truncate(title, avail)
	}

	var t tag.Tag
	if r.node.IsBranch() {
		text := title
		if caret != "" {
			text = caret + " " + title
		}
		classes := []string{"nav-item", "nav-link", "dropdown-toggle"}
		if m.isOpen(r.path) {
			classes = append(classes, "show")
		}
		if focused {
			classes = append(classes, "focus")
		}
		t = tag.New(tag.Link, text, classes...)
	} else {
		classes := []string{"nav-item", "nav-link"}
		if r.node.Slug == m.active {
			classes = append(classes, "active")
		}
		if focused {
			classes = append(classes, "focus")
		}
		t = tag.New(tag.Link, title, classes...)
		if r.node.Href != "" {
			t = t.WithAttr(tag.AttrHref, r.node.Href)
		}
	}

	return gutter + indent + t.Render(m.theme, 0)
}

// -----------------------------------------------------------------------------
// Horizontal: the top level on one line, the open dropdown panel below
// its toggle. Panel rows render as plain links whatever their shape.
// -----------------------------------------------------------------------------

func (m Model) viewHorizontal() string {
	segs := m.topSegments()
	top := strings.Join(segs, "  ")
	if len(m.open) == 0 {
		return top
	}

	parent, ok := findNode(m.nodes, m.open[0])
	if !ok {
		return top
	}

	panel := m.renderPanel(parent)
	panelX := m.panelX(segs, lipgloss.Width(panel))

	var b strings.Builder
	b.WriteString(top)
	pad := strings.Repeat(" ", panelX)
	for _, line := range strings.Split(panel, "\n") {
		b.WriteString("\n")
		b.WriteString(pad)
		b.WriteString(line)
	}
	return b.String()
}

func (m Model) topSegments() []string {
	segs := make([]string, len(m.nodes))
	for i, n := range m.nodes {
		segs[i] = m.renderTopItem(n, i == m.focus)
	}
	return segs
}

func (m Model) renderTopItem(n Node, focused bool) string {
	if !n.IsBranch() {
		classes := []string{"nav-item", "nav-link"}
		if n.Slug == m.active {
			classes = append(classes, "active")
		}
		if focused {
			classes = append(classes, "focus")
		}
		t := tag.New(tag.Link, n.Title, classes...)
		if n.Href != "" {
			t = t.WithAttr(tag.AttrHref, n.Href)
		}
		return t.Render(m.theme, 0)
	}

	open := len(m.open) > 0 && m.open[0] == n.Slug
	text := n.Title
	if caret := n.Caret.Render(m.theme.Glyphs, open); caret != "" {
		text = text + " " + caret
	}
	classes := []string{"nav-item", "nav-link", "dropdown-toggle"}
	if open {
		classes = append(classes, "show")
	}
	if focused {
		classes = append(classes, "focus")
	}
	return tag.New(tag.Link, text, classes...).Render(m.theme, 0)
}

// renderPanel renders the open dropdown's rows inside a bordered panel.
func (m Model) renderPanel(parent Node) string {
	top := len(m.nodes)
	lines := make([]string, len(parent.Children))
	for j, child := range parent.Children {
		classes := []string{"dropdown-item"}
		if child.Slug == m.active {
			classes = append(classes, "active")
		}
		if m.focus == top+j {
			classes = append(classes, "focus")
		}
		lines[j] = tag.New(tag.ListItem, child.Title, classes...).Render(m.theme, 0)
	}
	body := strings.Join(lines, "\n")
	return tag.New(tag.Panel, body, "dropdown-menu").Render(m.theme, 0)
}

// panelX anchors the panel under its toggle, clamped to the menu width.
func (m Model) panelX(segs []string, panelW int) int {
	anchor := 0
	x := 0
	for i, n := range m.nodes {
		if len(m.open) > 0 && n.Slug == m.open[0] {
			anchor = x
			break
		}
		x += lipgloss.Width(segs[i]) + 2
	}

	width := m.width
	if width <= 0 {
		width = defaultWidth
	}
	if anchor+panelW > width {
		anchor = width - panelW
	}
	if anchor < 0 {
		anchor = 0
	}
	return anchor
}

// =============================================================================
// HIT ZONES
// =============================================================================

// rowZones returns one clickable zone per visible row, in row order.
// The zones are relative to the menu origin; Update translates pointer
// events by the recorded bounds before testing them.
func (m Model) rowZones(rows []row) []zone {
	if m.Orientation == Horizontal {
		return m.horizontalZones(rows)
	}

	w := m.width
	if w <= 0 {
		w = defaultWidth
	}
	zones := make([]zone, len(rows))
	for i := range rows {
		zones[i] = zone{x: 0, y: i, w: w, h: 1}
	}
	return zones
}

func (m Model) horizontalZones(rows []row) []zone {
	segs := m.topSegments()
	zones := make([]zone, 0, len(rows))

	x := 0
	for _, seg := range segs {
		w := lipgloss.Width(seg)
		zones = append(zones, zone{x: x, y: 0, w: w, h: 1})
		x += w + 2
	}

	if len(rows) <= len(segs) {
		return zones
	}

	parent, ok := findNode(m.nodes, m.open[0])
	if !ok {
		return zones
	}
	panel := m.renderPanel(parent)
	panelW := lipgloss.Width(panel)
	panelX := m.panelX(segs, panelW)

	// Panel rows sit inside the border: one line for the top edge, then
	// one row per child.
	for j := range parent.Children {
		zones = append(zones, zone{x: panelX, y: 2 + j, w: panelW, h: 1})
	}
	return zones
}
