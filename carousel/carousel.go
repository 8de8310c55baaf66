// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package carousel

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/rigdeck/styles"
)

// =============================================================================
// DIRECTION
// =============================================================================

// Direction is which way the deck travels between two slides.
type Direction int

const (
	// Right is forward travel: the next slide comes in from the right.
	Right Direction = iota
	// Left is backward travel.
	Left
)

// String returns a human-readable representation of the direction.
func (d Direction) String() string {
	switch d {
	case Right:
		return "right"
	case Left:
		return "left"
	default:
		return "unknown"
	}
}

// =============================================================================
// MODEL
// =============================================================================

// Model is a carousel that owns its active index. It embeds Controlled
// for rendering, autoplay, and input, and consumes the request messages
// Controlled emits: every advance funnels through Next, Previous, or
// Goto, which hold the single-writer and animating-window invariants.
type Model struct {
	Controlled
}

// New creates a carousel that manages its own index.
func New(theme *styles.Theme, items ...Item) Model {
	return Model{Controlled: NewControlled(theme, items...)}
}

// Init implements tea.Model conventions; starting is explicit via Start.
func (m Model) Init() tea.Cmd {
	return nil
}

// Next advances one slide, wrapping past the end. It is a no-op while a
// slide is still animating out, and on an empty deck.
func (m Model) Next() (Model, tea.Cmd) {
	if m.Animating() || m.Count() == 0 {
		return m, nil
	}
	var cmd tea.Cmd
	m.Controlled, cmd = m.Controlled.SetActive((m.Active() + 1) % m.Count())
	return m, cmd
}

// Previous retreats one slide, wrapping past the start. Same no-op rules
// as Next.
func (m Model) Previous() (Model, tea.Cmd) {
	if m.Animating() || m.Count() == 0 {
		return m, nil
	}
	var cmd tea.Cmd
	m.Controlled, cmd = m.Controlled.SetActive((m.Active() - 1 + m.Count()) % m.Count())
	return m, cmd
}

// Goto jumps straight to a slide. Out-of-range targets, the current
// slide, and jumps during the animating window are all no-ops.
func (m Model) Goto(index int) (Model, tea.Cmd) {
	if m.Animating() || m.Count() == 0 || index < 0 || index >= m.Count() || index == m.Active() {
		return m, nil
	}
	var cmd tea.Cmd
	m.Controlled, cmd = m.Controlled.SetActive(index)
	return m, cmd
}

// Update consumes this carousel's own request messages and routes
// everything else into the embedded Controlled.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case NextRequestMsg:
		if msg.ID != m.ID() {
			return m, nil
		}
		return m.Next()

	case PrevRequestMsg:
		if msg.ID != m.ID() {
			return m, nil
		}
		return m.Previous()

	case GotoRequestMsg:
		if msg.ID != m.ID() {
			return m, nil
		}
		return m.Goto(msg.Index)
	}

	var cmd tea.Cmd
	m.Controlled, cmd = m.Controlled.Update(msg)
	return m, cmd
}
