// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package transition implements the enter/exit phase machine the carousel
// items animate through.
//
// A transition is always in one of four phases and moves through them in a
// fixed cycle:
//
//	Entered ──Exit()──► Exiting ──timeout──► Exited
//	   ▲                                        │
//	   └──timeout── Entering ◄──Enter()─────────┘
//
// Enter and Exit start the move and schedule a settle tick; the tick
// carries the instance id and a sequence number so a tick that outlives
// its owner, or that was superseded by a newer move, settles nothing.
package transition

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultTimeout is how long the in-between phases last unless the owner
// sets its own duration.
const DefaultTimeout = 600 * time.Millisecond

// =============================================================================
// PHASES
// =============================================================================

// Phase is the current position in the enter/exit cycle.
type Phase int

const (
	// Exited means fully out. Zero value: a new transition starts here.
	Exited Phase = iota
	// Entering means on the way in, waiting for the settle tick.
	Entering
	// Entered means fully in.
	Entered
	// Exiting means on the way out, waiting for the settle tick.
	Exiting
)

// String returns a human-readable representation of the phase.
func (p Phase) String() string {
	switch p {
	case Exited:
		return "exited"
	case Entering:
		return "entering"
	case Entered:
		return "entered"
	case Exiting:
		return "exiting"
	default:
		return "unknown"
	}
}

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

// SettleMsg moves a transition out of its in-between phase. It is produced
// by the tick commands this package schedules; route it through Update
// untouched.
type SettleMsg struct {
	ID  int
	seq int
}

// =============================================================================
// MODEL
// =============================================================================

// Model is one transition instance. The zero value is unusable; construct
// with New.
type Model struct {
	id    int
	seq   int
	phase Phase

	// Timeout is the length of the Entering and Exiting phases.
	Timeout time.Duration

	// Enabled gates animation. When false, Enter and Exit settle
	// synchronously and no tick is scheduled.
	Enabled bool

	// Lifecycle callbacks, all optional. OnEnter and OnExit fire when the
	// move starts, OnEntering and OnExiting immediately after, OnEntered
	// and OnExited when the move settles.
	OnEnter    func()
	OnEntering func()
	OnEntered  func()
	OnExit     func()
	OnExiting  func()
	OnExited   func()
}

// New creates a transition in the Exited phase with the default timeout.
func New() Model {
	return Model{
		id:      nextID(),
		phase:   Exited,
		Timeout: DefaultTimeout,
		Enabled: true,
	}
}

// Phase returns the current phase.
func (m Model) Phase() Phase {
	return m.phase
}

// Animating reports whether the transition is in an in-between phase.
func (m Model) Animating() bool {
	return m.phase == Entering || m.phase == Exiting
}

// Enter starts the move toward Entered. A transition already in or on its
// way in is left alone.
func (m Model) Enter() (Model, tea.Cmd) {
	if m.phase == Entering || m.phase == Entered {
		return m, nil
	}
	m.seq++
	call(m.OnEnter)
	if !m.Enabled {
		m.phase = Entered
		call(m.OnEntering)
		call(m.OnEntered)
		return m, nil
	}
	m.phase = Entering
	call(m.OnEntering)
	return m, m.settleAfter()
}

// Exit starts the move toward Exited. A transition already out or on its
// way out is left alone.
func (m Model) Exit() (Model, tea.Cmd) {
	if m.phase == Exiting || m.phase == Exited {
		return m, nil
	}
	m.seq++
	call(m.OnExit)
	if !m.Enabled {
		m.phase = Exited
		call(m.OnExiting)
		call(m.OnExited)
		return m, nil
	}
	m.phase = Exiting
	call(m.OnExiting)
	return m, m.settleAfter()
}

// Update handles settle ticks. Ticks for other instances or from moves
// that have since been superseded are dropped.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	settle, ok := msg.(SettleMsg)
	if !ok {
		return m, nil
	}
	if settle.ID != m.id || settle.seq != m.seq {
		return m, nil
	}
	switch m.phase {
	case Entering:
		m.phase = Entered
		call(m.OnEntered)
	case Exiting:
		m.phase = Exited
		call(m.OnExited)
	}
	return m, nil
}

// settleAfter schedules the settle tick for the current move.
func (m Model) settleAfter() tea.Cmd {
	id, seq, timeout := m.id, m.seq, m.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return tea.Tick(timeout, func(time.Time) tea.Msg {
		return SettleMsg{ID: id, seq: seq}
	})
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}
