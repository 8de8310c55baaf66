// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package carousel

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/rigdeck/styles"
	"github.com/jeranaias/rigdeck/tag"
	"github.com/jeranaias/rigdeck/transition"
)

// =============================================================================
// VIEW CONTEXT
// =============================================================================

// ViewContext carries the deck-level facts an item needs while rendering:
// which index is current, how many items exist, and which way travel is
// going. It is passed explicitly per render; items hold no deck state.
type ViewContext struct {
	Current   int
	Count     int
	Direction Direction
}

// =============================================================================
// CAPTION
// =============================================================================

// Caption is the optional header and text block rendered under a slide.
type Caption struct {
	Header string
	Text   string
}

// Empty reports whether the caption has nothing to show.
func (c Caption) Empty() bool {
	return c.Header == "" && c.Text == ""
}

func (c Caption) render(theme *styles.Theme, width int) string {
	var lines []string
	if c.Header != "" {
		lines = append(lines, theme.CaptionHeader.Render(c.Header))
	}
	if c.Text != "" {
		lines = append(lines, theme.CaptionText.Render(c.Text))
	}
	body := lipgloss.JoinVertical(lipgloss.Center, lines...)
	return tag.New(tag.Block, body, "carousel-caption").Render(theme, width)
}

// =============================================================================
// ITEM
// =============================================================================

// Item is one slide. It wraps a transition for its enter/exit animation
// and derives its class list fresh every render from its index and the
// ViewContext; position is never stored.
type Item struct {
	// Source is the slide's visual block (rendered markdown, highlighted
	// code, ASCII art). An item without a Source degrades to AltText.
	Source string

	// AltText is a short description shown when Source is empty.
	AltText string

	// Caption is rendered under the slide body when non-empty.
	Caption Caption

	// Slide gates animation. When false the item still moves through its
	// phases, but synchronously and without scheduling ticks.
	Slide bool

	trans transition.Model
	start bool
}

// NewItem creates a slide around the given visual block.
func NewItem(source string) Item {
	return Item{
		Source: source,
		Slide:  true,
		trans:  transition.New(),
	}
}

// WithFade returns the item with its enter and exit window set to d.
// Zero and negative durations keep the default.
func (it Item) WithFade(d time.Duration) Item {
	if d > 0 {
		it.trans.Timeout = d
	}
	return it
}

// Phase returns the item's current transition phase.
func (it Item) Phase() transition.Phase {
	return it.trans.Phase()
}

// Animating reports whether the item is mid enter or exit.
func (it Item) Animating() bool {
	return it.trans.Animating()
}

// Starting reports the rendering hint that a move is underway. It turns
// true when the item begins entering or exiting and false when the move
// settles.
func (it Item) Starting() bool {
	return it.start
}

// Enter starts the item's move toward shown.
func (it Item) Enter() (Item, tea.Cmd) {
	it.trans.Enabled = it.Slide
	var cmd tea.Cmd
	it.trans, cmd = it.trans.Enter()
	it.start = it.trans.Animating()
	return it, cmd
}

// Exit starts the item's move toward hidden.
func (it Item) Exit() (Item, tea.Cmd) {
	it.trans.Enabled = it.Slide
	var cmd tea.Cmd
	it.trans, cmd = it.trans.Exit()
	it.start = it.trans.Animating()
	return it, cmd
}

// appear settles the item as shown without animating, for the slide that
// is already current when the carousel starts.
func (it Item) appear() Item {
	enabled := it.trans.Enabled
	it.trans.Enabled = false
	it.trans, _ = it.trans.Enter()
	it.trans.Enabled = enabled
	it.start = false
	return it
}

// vanish settles the item as hidden without animating.
func (it Item) vanish() Item {
	enabled := it.trans.Enabled
	it.trans.Enabled = false
	it.trans, _ = it.trans.Exit()
	it.trans.Enabled = enabled
	it.start = false
	return it
}

// Update routes settle ticks to the item's transition.
func (it Item) Update(msg tea.Msg) (Item, tea.Cmd) {
	var cmd tea.Cmd
	it.trans, cmd = it.trans.Update(msg)
	it.start = it.trans.Animating()
	return it, cmd
}

// Classes derives the item's class list from its index and the view
// context. With wraparound arithmetic a two-item deck makes every item
// both prev and next, and a single item is all three at once.
func (it Item) Classes(index int, vc ViewContext) []string {
	classes := []string{"carousel-item"}
	if vc.Count > 0 {
		if index == vc.Current {
			classes = append(classes, "active")
		}
		if index == (vc.Current-1+vc.Count)%vc.Count {
			classes = append(classes, "carousel-item-prev")
		}
		if index == (vc.Current+1)%vc.Count {
			classes = append(classes, "carousel-item-next")
		}
	}
	if it.trans.Phase() == transition.Exiting {
		switch vc.Direction {
		case Right:
			classes = append(classes, "carousel-item-left")
		case Left:
			classes = append(classes, "carousel-item-right")
		}
	}
	return classes
}

// View renders the slide body and caption at the given width.
func (it Item) View(theme *styles.Theme, index int, vc ViewContext, width int) string {
	classes := it.Classes(index, vc)

	body := it.Source
	if body == "" {
		body = it.AltText
	}
	out := tag.New(tag.Block, body, classes...).Render(theme, width)

	if !it.Caption.Empty() {
		out = lipgloss.JoinVertical(lipgloss.Left, out, it.Caption.render(theme, width))
	}
	return out
}
