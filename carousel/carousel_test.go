// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package carousel

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/rigdeck/styles"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

// testItems builds n slides with near-instant transitions so tests can
// settle animations by executing the scheduled commands.
func testItems(n int) []Item {
	items := make([]Item, n)
	for i := range items {
		it := NewItem(fmt.Sprintf("slide-%d", i))
		it.trans.Timeout = time.Millisecond
		items[i] = it
	}
	return items
}

// newTestModel builds a started carousel with autoplay disabled.
func newTestModel(t *testing.T, n int) Model {
	t.Helper()
	m := New(styles.NewTheme(), testItems(n)...)
	m.Interval = 0
	m.SetSize(60, 10)
	if cmd := m.Start(); cmd != nil {
		t.Fatal("Start with autoplay disabled should not schedule anything")
	}
	return m
}

// drain executes a command tree and feeds every produced message back
// into the model, the way the program loop would. Only safe when no
// autoplay chain is live.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		msg := next()
		if batch, ok := msg.(tea.BatchMsg); ok {
			for _, sub := range batch {
				queue = append(queue, sub)
			}
			continue
		}
		var produced tea.Cmd
		m, produced = m.Update(msg)
		queue = append(queue, produced)
	}
	return m
}

// =============================================================================
// INDEX ARITHMETIC TESTS
// =============================================================================

func TestNextAdvancesAndWraps(t *testing.T) {
	m := newTestModel(t, 5)

	for step := 1; step <= 5; step++ {
		var cmd tea.Cmd
		m, cmd = m.Next()
		m = drain(t, m, cmd)

		want := step % 5
		if m.Active() != want {
			t.Fatalf("step %d: active = %d, want %d", step, m.Active(), want)
		}
		if m.Direction() != Right {
			t.Errorf("step %d: direction = %v, want %v", step, m.Direction(), Right)
		}
	}
}

func TestPreviousRetreatsAndWraps(t *testing.T) {
	m := newTestModel(t, 5)

	var cmd tea.Cmd
	m, cmd = m.Previous()
	m = drain(t, m, cmd)

	if m.Active() != 4 {
		t.Fatalf("Previous from 0: active = %d, want 4", m.Active())
	}
	if m.Direction() != Left {
		t.Errorf("Previous direction = %v, want %v", m.Direction(), Left)
	}

	m, cmd = m.Previous()
	m = drain(t, m, cmd)
	if m.Active() != 3 {
		t.Errorf("Previous from 4: active = %d, want 3", m.Active())
	}
}

func TestGoto(t *testing.T) {
	m := newTestModel(t, 5)

	var cmd tea.Cmd
	m, cmd = m.Goto(3)
	m = drain(t, m, cmd)
	if m.Active() != 3 {
		t.Fatalf("Goto(3): active = %d, want 3", m.Active())
	}

	// Jumping backward folds onto forward travel.
	m, cmd = m.Goto(0)
	m = drain(t, m, cmd)
	if m.Active() != 0 {
		t.Fatalf("Goto(0): active = %d, want 0", m.Active())
	}
	if m.Direction() != Right {
		t.Errorf("backward jump direction = %v, want %v", m.Direction(), Right)
	}

	// Jumping forward by more than one reads as backward travel.
	m, cmd = m.Goto(2)
	m = drain(t, m, cmd)
	if m.Direction() != Left {
		t.Errorf("forward jump direction = %v, want %v", m.Direction(), Left)
	}
}

func TestGotoNoops(t *testing.T) {
	m := newTestModel(t, 3)

	tests := []struct {
		name  string
		index int
	}{
		{"negative", -1},
		{"past end", 3},
		{"current", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m2, cmd := m.Goto(tt.index)
			if cmd != nil {
				t.Error("no-op Goto should not schedule anything")
			}
			if m2.Active() != 0 {
				t.Errorf("no-op Goto moved active to %d", m2.Active())
			}
		})
	}
}

// =============================================================================
// ANIMATING WINDOW TESTS
// =============================================================================

func TestAdvanceDuringAnimationIsDropped(t *testing.T) {
	// Real-length transitions keep the window open for the whole test.
	m := New(styles.NewTheme(), NewItem("a"), NewItem("b"), NewItem("c"))
	m.Interval = 0
	m.Start()

	m, _ = m.Next()
	if m.Active() != 1 {
		t.Fatalf("first Next: active = %d, want 1", m.Active())
	}
	if !m.Animating() {
		t.Fatal("first Next should open the animating window")
	}

	for i := 0; i < 3; i++ {
		var cmd tea.Cmd
		m, cmd = m.Next()
		if cmd != nil {
			t.Error("Next during animation should not schedule anything")
		}
	}
	if m.Active() != 1 {
		t.Errorf("Next during animation moved active to %d", m.Active())
	}

	m, _ = m.Previous()
	m, _ = m.Goto(2)
	if m.Active() != 1 {
		t.Errorf("Previous/Goto during animation moved active to %d", m.Active())
	}
}

func TestAnimatingClearsAfterSettle(t *testing.T) {
	m := newTestModel(t, 3)

	var cmd tea.Cmd
	m, cmd = m.Next()
	if !m.Animating() {
		t.Fatal("Next should open the animating window")
	}

	m = drain(t, m, cmd)
	if m.Animating() {
		t.Error("window should close once the departing slide settles")
	}

	// And the deck moves again afterwards.
	m, cmd = m.Next()
	m = drain(t, m, cmd)
	if m.Active() != 2 {
		t.Errorf("post-settle Next: active = %d, want 2", m.Active())
	}
}

// =============================================================================
// EMPTY DECK TESTS
// =============================================================================

func TestEmptyDeck(t *testing.T) {
	m := New(styles.NewTheme())
	m.Interval = 0
	m.Start()

	var cmd tea.Cmd
	m, cmd = m.Next()
	if cmd != nil || m.Active() != 0 {
		t.Error("Next on an empty deck should be a no-op")
	}
	m, cmd = m.Previous()
	if cmd != nil || m.Active() != 0 {
		t.Error("Previous on an empty deck should be a no-op")
	}
	m, cmd = m.Goto(0)
	if cmd != nil {
		t.Error("Goto on an empty deck should be a no-op")
	}
	if m.View() != "" {
		t.Error("an empty deck renders nothing")
	}
}

// =============================================================================
// REQUEST ROUTING TESTS
// =============================================================================

func TestRequestMessagesDriveTheIndex(t *testing.T) {
	m := newTestModel(t, 4)

	var cmd tea.Cmd
	m, cmd = m.Update(NextRequestMsg{ID: m.ID()})
	m = drain(t, m, cmd)
	if m.Active() != 1 {
		t.Fatalf("NextRequestMsg: active = %d, want 1", m.Active())
	}

	m, cmd = m.Update(GotoRequestMsg{ID: m.ID(), Index: 3})
	m = drain(t, m, cmd)
	if m.Active() != 3 {
		t.Fatalf("GotoRequestMsg: active = %d, want 3", m.Active())
	}

	m, cmd = m.Update(PrevRequestMsg{ID: m.ID()})
	m = drain(t, m, cmd)
	if m.Active() != 2 {
		t.Fatalf("PrevRequestMsg: active = %d, want 2", m.Active())
	}
}

func TestForeignRequestsIgnored(t *testing.T) {
	m := newTestModel(t, 4)

	m2, cmd := m.Update(NextRequestMsg{ID: m.ID() + 1000})
	if cmd != nil || m2.Active() != 0 {
		t.Error("requests stamped for another carousel must be ignored")
	}
}

// =============================================================================
// VIEW TESTS
// =============================================================================

func TestViewShowsActiveSlide(t *testing.T) {
	m := newTestModel(t, 3)

	if !strings.Contains(m.View(), "slide-0") {
		t.Error("view should contain the first slide before any advance")
	}

	var cmd tea.Cmd
	m, cmd = m.Next()
	m = drain(t, m, cmd)

	view := m.View()
	if !strings.Contains(view, "slide-1") {
		t.Error("view should contain the active slide")
	}
	if strings.Contains(view, "slide-0") {
		t.Error("view should not contain inactive slides")
	}
}

func TestViewEmptyUntilStarted(t *testing.T) {
	m := New(styles.NewTheme(), testItems(3)...)
	if m.View() != "" {
		t.Error("an unstarted carousel renders nothing")
	}

	m.Interval = 0
	m.Start()
	if m.View() == "" {
		t.Error("a started carousel renders its frame")
	}

	m.Stop()
	if m.View() != "" {
		t.Error("a stopped carousel renders nothing again")
	}
}

func TestViewChromeOmittedForSingleSlide(t *testing.T) {
	m := newTestModel(t, 1)
	theme := styles.NewTheme()

	view := m.View()
	if strings.Contains(view, theme.Glyphs.IndicatorInactive) {
		t.Error("single-slide deck should not render indicators")
	}
	if strings.Contains(view, theme.Glyphs.ControlPrev) {
		t.Error("single-slide deck should not render controls")
	}
}

func TestViewIndicatorCount(t *testing.T) {
	m := newTestModel(t, 4)
	theme := styles.NewTheme()

	view := m.View()
	active := strings.Count(view, theme.Glyphs.IndicatorActive)
	inactive := strings.Count(view, theme.Glyphs.IndicatorInactive)
	if active != 1 {
		t.Errorf("active indicator count = %d, want 1", active)
	}
	if inactive != 3 {
		t.Errorf("inactive indicator count = %d, want 3", inactive)
	}
}

// =============================================================================
// DIRECTION STRING TESTS
// =============================================================================

func TestDirectionString(t *testing.T) {
	tests := []struct {
		d    Direction
		want string
	}{
		{Right, "right"},
		{Left, "left"},
		{Direction(9), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.d.String(); got != tt.want {
			t.Errorf("Direction(%d).String() = %q, want %q", int(tt.d), got, tt.want)
		}
	}
}
