// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package carousel provides a slide carousel component for Bubble Tea
programs, in both index-owning and externally controlled flavors.

# Models

Model (carousel.go) - Owns its active index. Next, Previous, and Goto are
the only writers, and all three refuse to move while a departing slide is
still animating out. Wraps Controlled for everything else.

Controlled (controlled.go) - The index belongs to the embedding program.
Autoplay ticks, arrow keys, control clicks, and indicator clicks are
emitted as request messages (NextRequestMsg, PrevRequestMsg,
GotoRequestMsg, or the owner's own constructors via OnNext, OnPrevious,
OnGoto); the owner decides what to do with them and feeds the result back
through SetActive. The owner also holds the animating-window invariant.

Item (item.go) - One slide: a visual block, optional alt text and
caption, and a transition driving its enter/exit phases. Its class list
(active, carousel-item-prev/next, carousel-item-left/right) is derived
fresh on every render from the index, the deck size, and the travel
direction, which is passed in explicitly through ViewContext.

# Autoplay

At most one tick chain is ever live per carousel. Every chain carries a
generation stamp; Stop, SetInterval, hover pauses, and manual advances
bump the generation, so a tick that outlives its chain is dropped on
arrival. Starting is governed by Ride (immediately, or held until the
first manual advance) and pausing by Pause (on pointer hover, or never).

# Pointer support

The embedding program reports where the carousel is drawn with SetBounds
and enables mouse cell motion on its tea.Program. Pointer motion then
drives hover pause/resume, and left clicks are hit-tested against the
indicator dots and the prev/next control columns.

# Lifecycle

	theme := styles.NewTheme()
	deck := carousel.New(theme, items...)
	cmd := deck.Start()   // current slide appears, autoplay may begin
	...
	deck.Stop()           // mandatory before dropping a started deck

A carousel that has not been started renders nothing and ignores input.
*/
package carousel
