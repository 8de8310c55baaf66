// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package carousel

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/rigdeck/styles"
	"github.com/jeranaias/rigdeck/transition"
)

// DefaultInterval is the autoplay period used until the owner sets one.
const DefaultInterval = 5 * time.Second

// =============================================================================
// POLICIES
// =============================================================================

// Ride determines when autoplay begins.
type Ride int

const (
	// RideCarousel starts autoplay as soon as the carousel starts.
	RideCarousel Ride = iota
	// RideOnNext holds autoplay until the first manual advance.
	RideOnNext
)

// Pause determines what suspends a running autoplay chain.
type Pause int

const (
	// PauseHover suspends autoplay while the pointer is inside the
	// carousel's bounds and resumes it when the pointer leaves.
	PauseHover Pause = iota
	// PauseNever keeps autoplay running regardless of the pointer.
	PauseNever
)

// =============================================================================
// INSTANCE IDS
// =============================================================================

var (
	lastID int
	idMtx  sync.Mutex
)

func nextID() int {
	idMtx.Lock()
	defer idMtx.Unlock()
	lastID++
	return lastID
}

// =============================================================================
// MESSAGES
// =============================================================================

// NextRequestMsg asks the index owner to advance one slide. Autoplay
// ticks, the right arrow, and the next control all emit it unless the
// owner supplied its own message constructor.
type NextRequestMsg struct{ ID int }

// PrevRequestMsg asks the index owner to retreat one slide.
type PrevRequestMsg struct{ ID int }

// GotoRequestMsg asks the index owner to jump to a specific slide.
// Indicator clicks emit it.
type GotoRequestMsg struct {
	ID    int
	Index int
}

// autoplayMsg is the internal autoplay tick. The generation stamps the
// chain it belongs to; a tick from a torn-down chain settles nothing.
type autoplayMsg struct {
	id  int
	gen int
}

// =============================================================================
// RECT
// =============================================================================

// Rect is a rectangle in screen cells, used for pointer hit-testing.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell at (x, y) falls inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// =============================================================================
// CONTROLLED MODEL
// =============================================================================

// Controlled is a carousel whose active index belongs to someone else.
// It renders the deck, runs autoplay, and handles keys and the pointer,
// but it never moves the index itself: every advance is emitted as a
// request message (or through the On* constructors) for the owner to act
// on. The owner is responsible for honoring the animating window; see
// Animating. Model wraps Controlled when the carousel should own its own
// index.
type Controlled struct {
	id int

	// Interval is the autoplay period. Zero or negative disables autoplay.
	Interval time.Duration

	// Ride picks when autoplay begins, Pause what suspends it.
	Ride  Ride
	Pause Pause

	// Keyboard gates arrow-key handling.
	Keyboard bool

	// Indicators and Controls gate the chrome rows.
	Indicators bool
	Controls   bool

	// Message constructors supplied by the owner. When nil, the stock
	// request messages carrying this instance's ID are emitted instead.
	OnNext     func() tea.Msg
	OnPrevious func() tea.Msg
	OnGoto     func(index int) tea.Msg

	// Pointer callbacks, both optional.
	OnMouseEnter func() tea.Msg
	OnMouseLeave func() tea.Msg

	theme *styles.Theme
	items []Item

	active    int
	direction Direction
	animating bool

	started bool
	running bool
	ridden  bool
	hovered bool
	gen     int

	bounds Rect
	width  int
	height int
}

// NewControlled creates a controlled carousel over the given slides.
func NewControlled(theme *styles.Theme, items ...Item) Controlled {
	return Controlled{
		id:         nextID(),
		Interval:   DefaultInterval,
		Keyboard:   true,
		Indicators: true,
		Controls:   true,
		theme:      theme,
		items:      items,
	}
}

// =============================================================================
// ACCESSORS
// =============================================================================

// ID returns the instance id carried by this carousel's request messages.
func (c Controlled) ID() int { return c.id }

// Active returns the index of the current slide.
func (c Controlled) Active() int { return c.active }

// Count returns the number of slides.
func (c Controlled) Count() int { return len(c.items) }

// Direction returns which way the last move went.
func (c Controlled) Direction() Direction { return c.direction }

// Animating reports whether a departing slide is still on its way out.
// Owners must drop their own advances during this window.
func (c Controlled) Animating() bool { return c.animating }

// Started reports whether Start has been called without a matching Stop.
func (c Controlled) Started() bool { return c.started }

// AutoplayRunning reports whether a live tick chain exists.
func (c Controlled) AutoplayRunning() bool { return c.running }

// Hovered reports whether the pointer was last seen inside the bounds.
func (c Controlled) Hovered() bool { return c.hovered }

// Item returns a copy of the slide at index i.
func (c Controlled) Item(i int) (Item, bool) {
	if i < 0 || i >= len(c.items) {
		return Item{}, false
	}
	return c.items[i], true
}

// =============================================================================
// CONFIGURATION
// =============================================================================

// SetSize fixes the rendered frame size in cells.
func (c *Controlled) SetSize(width, height int) {
	c.width = width
	c.height = height
	c.bounds.W = width
	c.bounds.H = height
}

// SetBounds records where on screen the frame is drawn, for pointer
// hit-testing. The embedding program calls this whenever it moves the
// carousel.
func (c *Controlled) SetBounds(r Rect) {
	c.bounds = r
	c.width = r.W
	c.height = r.H
}

// SetTheme swaps the theme used for rendering.
func (c *Controlled) SetTheme(theme *styles.Theme) {
	c.theme = theme
}

// SetItems replaces the deck. The active index is clamped and any
// animation in flight is abandoned; stale settle ticks die against the
// fresh transitions.
func (c *Controlled) SetItems(items ...Item) {
	c.items = items
	if c.active >= len(items) {
		c.active = 0
	}
	c.animating = false
	if c.started && len(c.items) > 0 {
		c.items[c.active] = c.items[c.active].appear()
	}
}

// Restore jumps straight to a slide with no animation, for view state
// brought back from disk. Out-of-range indexes are clamped.
func (c *Controlled) Restore(index int) {
	if len(c.items) == 0 {
		return
	}
	if index < 0 {
		index = 0
	}
	if index >= len(c.items) {
		index = len(c.items) - 1
	}
	if c.started && index != c.active {
		items := make([]Item, len(c.items))
		copy(items, c.items)
		items[c.active] = items[c.active].vanish()
		items[index] = items[index].appear()
		c.items = items
	}
	c.active = index
	c.animating = false
}

// SetInterval changes the autoplay period. A running chain is torn down
// and rebuilt so the new period takes effect immediately; zero or
// negative tears it down for good.
func (c *Controlled) SetInterval(d time.Duration) tea.Cmd {
	c.Interval = d
	c.stopAutoplay()
	return c.startAutoplay()
}

// =============================================================================
// LIFECYCLE
// =============================================================================

// Start marks the carousel mounted: the current slide appears, keys are
// live, and autoplay begins when the Ride policy allows. The returned
// command carries the first autoplay tick, if any.
func (c *Controlled) Start() tea.Cmd {
	c.started = true
	if len(c.items) > 0 {
		if c.active >= len(c.items) {
			c.active = 0
		}
		c.items[c.active] = c.items[c.active].appear()
	}
	return c.startAutoplay()
}

// Stop tears the carousel down. The autoplay generation is bumped so any
// tick still in flight lands dead, and keys go quiet. Owners must call
// Stop when they remove a started carousel.
func (c *Controlled) Stop() {
	c.started = false
	c.stopAutoplay()
}

// autoplayEligible reports whether a tick chain may exist right now.
func (c Controlled) autoplayEligible() bool {
	if !c.started || c.Interval <= 0 || len(c.items) < 2 {
		return false
	}
	if c.Ride == RideOnNext && !c.ridden {
		return false
	}
	if c.Pause == PauseHover && c.hovered {
		return false
	}
	return true
}

// startAutoplay opens a fresh tick chain when eligibility allows. At most
// one chain is ever live: the generation bump kills the previous one no
// matter how this call resolves.
func (c *Controlled) startAutoplay() tea.Cmd {
	c.gen++
	if !c.autoplayEligible() {
		c.running = false
		return nil
	}
	c.running = true
	return c.tick()
}

// stopAutoplay kills the live chain, if any.
func (c *Controlled) stopAutoplay() {
	c.gen++
	c.running = false
}

// tick schedules the next autoplay message for the current generation.
func (c Controlled) tick() tea.Cmd {
	id, gen, interval := c.id, c.gen, c.Interval
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return autoplayMsg{id: id, gen: gen}
	})
}

// =============================================================================
// REQUEST EMISSION
// =============================================================================

func (c Controlled) nextRequest() tea.Cmd {
	if c.OnNext != nil {
		fn := c.OnNext
		return func() tea.Msg { return fn() }
	}
	id := c.id
	return func() tea.Msg { return NextRequestMsg{ID: id} }
}

func (c Controlled) prevRequest() tea.Cmd {
	if c.OnPrevious != nil {
		fn := c.OnPrevious
		return func() tea.Msg { return fn() }
	}
	id := c.id
	return func() tea.Msg { return PrevRequestMsg{ID: id} }
}

func (c Controlled) gotoRequest(index int) tea.Cmd {
	if c.OnGoto != nil {
		fn := c.OnGoto
		return func() tea.Msg { return fn(index) }
	}
	id := c.id
	return func() tea.Msg { return GotoRequestMsg{ID: id, Index: index} }
}

// manualAdvance wraps a user-driven request: it satisfies the RideOnNext
// policy and resets a running chain so the full interval elapses before
// the next automatic advance.
func (c *Controlled) manualAdvance(req tea.Cmd) tea.Cmd {
	cmds := []tea.Cmd{req}
	if c.Ride == RideOnNext && !c.ridden {
		c.ridden = true
	}
	if cmd := c.startAutoplay(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// =============================================================================
// INDEX MOVES
// =============================================================================

// SetActive moves the deck to the given slide: the departing item exits,
// the arriving one enters, and the travel direction is inferred from the
// index delta. Wraparound jumps fold onto the short way round, so any
// backward jump larger than one reads as forward travel. Out-of-range
// and same-index calls are no-ops. SetActive does not check Animating;
// the index owner holds that invariant.
func (c Controlled) SetActive(index int) (Controlled, tea.Cmd) {
	if len(c.items) == 0 || index < 0 || index >= len(c.items) || index == c.active {
		return c, nil
	}

	old := c.active
	switch {
	case index == old+1:
		c.direction = Right
	case index == old-1:
		c.direction = Left
	case index < old:
		c.direction = Right
	default:
		c.direction = Left
	}

	items := make([]Item, len(c.items))
	copy(items, c.items)
	c.items = items

	var exitCmd, enterCmd tea.Cmd
	c.items[old], exitCmd = c.items[old].Exit()
	c.items[index], enterCmd = c.items[index].Enter()
	c.active = index
	c.animating = c.items[old].Animating()

	return c, tea.Batch(exitCmd, enterCmd)
}

// anyExiting reports whether some slide is still on its way out.
func (c Controlled) anyExiting() bool {
	for _, it := range c.items {
		if it.Phase() == transition.Exiting {
			return true
		}
	}
	return false
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles autoplay ticks, settle ticks, keys, and the pointer.
func (c Controlled) Update(msg tea.Msg) (Controlled, tea.Cmd) {
	switch msg := msg.(type) {
	case autoplayMsg:
		if msg.id != c.id || msg.gen != c.gen || !c.running {
			return c, nil
		}
		return c, tea.Batch(c.nextRequest(), c.tick())

	case tea.KeyMsg:
		if !c.started || !c.Keyboard {
			return c, nil
		}
		switch msg.String() {
		case "left":
			return c, c.manualAdvance(c.prevRequest())
		case "right":
			return c, c.manualAdvance(c.nextRequest())
		}
		return c, nil

	case tea.MouseMsg:
		if !c.started {
			return c, nil
		}
		return c.handleMouse(msg)

	case transition.SettleMsg:
		items := make([]Item, len(c.items))
		copy(items, c.items)
		c.items = items

		var cmds []tea.Cmd
		for i := range c.items {
			var cmd tea.Cmd
			c.items[i], cmd = c.items[i].Update(msg)
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		c.animating = c.anyExiting()
		return c, tea.Batch(cmds...)
	}
	return c, nil
}

// handleMouse tracks hover for the pause policy and hit-tests clicks
// against the indicator and control zones.
func (c Controlled) handleMouse(msg tea.MouseMsg) (Controlled, tea.Cmd) {
	switch msg.Type {
	case tea.MouseMotion:
		inside := c.bounds.Contains(msg.X, msg.Y)
		switch {
		case inside && !c.hovered:
			c.hovered = true
			var cmds []tea.Cmd
			if c.Pause == PauseHover && c.running {
				c.stopAutoplay()
			}
			if c.OnMouseEnter != nil {
				fn := c.OnMouseEnter
				cmds = append(cmds, func() tea.Msg { return fn() })
			}
			return c, tea.Batch(cmds...)

		case !inside && c.hovered:
			c.hovered = false
			var cmds []tea.Cmd
			if cmd := c.startAutoplay(); cmd != nil {
				cmds = append(cmds, cmd)
			}
			if c.OnMouseLeave != nil {
				fn := c.OnMouseLeave
				cmds = append(cmds, func() tea.Msg { return fn() })
			}
			return c, tea.Batch(cmds...)
		}
		return c, nil

	case tea.MouseLeft:
		lay := c.layout()
		x := msg.X - c.bounds.X
		y := msg.Y - c.bounds.Y
		for i, dot := range lay.dots {
			if dot.Contains(x, y) {
				return c, c.manualAdvance(c.gotoRequest(i))
			}
		}
		if c.Controls && lay.prev.W > 0 {
			if lay.prev.Contains(x, y) {
				return c, c.manualAdvance(c.prevRequest())
			}
			if lay.next.Contains(x, y) {
				return c, c.manualAdvance(c.nextRequest())
			}
		}
		return c, nil
	}
	return c, nil
}
