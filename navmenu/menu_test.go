// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package navmenu

import (
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/rigdeck/styles"
)

// testTree is the menu used across these tests:
//
//	Home
//	Docs
//	  Install
//	  Guides
//	    Basics
//	Blog
//	  News
func testTree() []Entry {
	return []Entry{
		Text("Home"),
		Branch{Title: "Docs", Children: []Entry{
			Text("Install"),
			Branch{Title: "Guides", Children: []Entry{Text("Basics")}},
		}},
		Branch{Title: "Blog", Children: []Entry{Text("News")}},
	}
}

func newTestMenu(t *testing.T, entries ...Entry) Model {
	t.Helper()
	if entries == nil {
		entries = testTree()
	}
	m := New(styles.NewTheme(), entries...)
	m.Start()
	return m
}

func keyMsg(k tea.KeyType) tea.Msg {
	return tea.KeyMsg{Type: k}
}

// =============================================================================
// SELECTION TESTS
// =============================================================================

func TestSelectTogglesAndReplaces(t *testing.T) {
	m := newTestMenu(t)

	if !m.Select("home") {
		t.Fatal("first select should activate")
	}
	if m.Active() != "home" {
		t.Fatalf("active = %q, want %q", m.Active(), "home")
	}

	if m.Select("home") {
		t.Fatal("selecting the active slug should clear it")
	}
	if m.Active() != "" {
		t.Fatalf("active = %q after toggle-off, want empty", m.Active())
	}

	m.Select("home")
	m.Select("install")
	if m.Active() != "install" {
		t.Errorf("active = %q, want replacement %q", m.Active(), "install")
	}
}

func TestToggleDeploy(t *testing.T) {
	m := newTestMenu(t,
		Text("A"),
		Branch{Title: "B", Children: []Entry{Text("C")}},
	)

	if len(m.Nodes()) != 2 {
		t.Fatalf("top-level nodes = %d, want 2", len(m.Nodes()))
	}

	if !m.Toggle("b") {
		t.Fatal("toggle should open the branch")
	}
	if m.Deploy() != "b" {
		t.Fatalf("deploy = %q, want %q", m.Deploy(), "b")
	}

	if m.Toggle("b") {
		t.Fatal("second toggle should close the branch")
	}
	if m.Deploy() != "" {
		t.Fatalf("deploy = %q after toggle-off, want empty", m.Deploy())
	}
}

func TestToggleExclusivePerDepth(t *testing.T) {
	m := newTestMenu(t)

	m.Toggle("docs")
	m.Toggle("blog")
	if m.Deploy() != "blog" {
		t.Errorf("deploy = %q, want %q replacing docs", m.Deploy(), "blog")
	}
	if len(m.DeployPath()) != 1 {
		t.Errorf("deploy path = %v, want a single open branch", m.DeployPath())
	}
}

func TestToggleNestedChain(t *testing.T) {
	m := newTestMenu(t)

	m.Toggle("docs")
	m.Toggle("docs", "guides")
	if want := []string{"docs", "guides"}; !reflect.DeepEqual(m.DeployPath(), want) {
		t.Fatalf("deploy path = %v, want %v", m.DeployPath(), want)
	}

	// Opening a sibling at the top closes the whole docs chain.
	m.Toggle("blog")
	if want := []string{"blog"}; !reflect.DeepEqual(m.DeployPath(), want) {
		t.Fatalf("deploy path = %v, want %v", m.DeployPath(), want)
	}

	// Closing an open branch drops everything beneath it.
	m.Toggle("docs")
	m.Toggle("docs", "guides")
	m.Toggle("docs")
	if len(m.DeployPath()) != 0 {
		t.Errorf("deploy path = %v, want empty after closing the root", m.DeployPath())
	}
}

func TestDeployPathIsACopy(t *testing.T) {
	m := newTestMenu(t)
	m.Toggle("docs")

	p := m.DeployPath()
	p[0] = "mangled"
	if m.Deploy() != "docs" {
		t.Error("mutating the returned path must not touch menu state")
	}
}

// =============================================================================
// FOCUS AND KEYBOARD TESTS
// =============================================================================

func TestFocusMovementClamps(t *testing.T) {
	m := newTestMenu(t)

	// Closed tree: Home, Docs, Blog.
	for i := 0; i < 5; i++ {
		m, _ = m.Update(keyMsg(tea.KeyDown))
	}
	if got, _ := m.Focused(); got.Slug != "blog" {
		t.Errorf("focus after many downs = %q, want last row %q", got.Slug, "blog")
	}

	for i := 0; i < 5; i++ {
		m, _ = m.Update(keyMsg(tea.KeyUp))
	}
	if got, _ := m.Focused(); got.Slug != "home" {
		t.Errorf("focus after many ups = %q, want first row %q", got.Slug, "home")
	}
}

func TestEnterActivatesLeaf(t *testing.T) {
	m := newTestMenu(t)

	m, cmd := m.Update(keyMsg(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("enter on a leaf should emit a message")
	}
	sel, ok := cmd().(SelectedMsg)
	if !ok {
		t.Fatalf("enter emitted %T, want SelectedMsg", cmd())
	}
	if sel.Node.Slug != "home" || !sel.Active {
		t.Errorf("selected = %+v, want home active", sel)
	}
	if m.Active() != "home" {
		t.Errorf("active = %q, want %q", m.Active(), "home")
	}

	m, cmd = m.Update(keyMsg(tea.KeyEnter))
	sel = cmd().(SelectedMsg)
	if sel.Active {
		t.Error("re-selecting the active leaf should report cleared")
	}
	if m.Active() != "" {
		t.Errorf("active = %q, want empty", m.Active())
	}
}

func TestEnterTogglesBranchAndRevealsChildren(t *testing.T) {
	m := newTestMenu(t)

	m, _ = m.Update(keyMsg(tea.KeyDown)) // Docs
	m, cmd := m.Update(keyMsg(tea.KeyEnter))
	tog, ok := cmd().(ToggledMsg)
	if !ok {
		t.Fatalf("enter emitted %T, want ToggledMsg", cmd())
	}
	if tog.Node.Slug != "docs" || !tog.Open {
		t.Errorf("toggled = %+v, want docs open", tog)
	}
	if rows := m.visibleRows(); len(rows) != 5 {
		t.Fatalf("visible rows = %d after deploy, want 5", len(rows))
	}
	if got, _ := m.Focused(); got.Slug != "docs" {
		t.Errorf("focus moved to %q, want to stay on docs", got.Slug)
	}

	m, cmd = m.Update(keyMsg(tea.KeyEnter))
	if tog = cmd().(ToggledMsg); tog.Open {
		t.Error("second enter should close the branch")
	}
	if rows := m.visibleRows(); len(rows) != 3 {
		t.Errorf("visible rows = %d after close, want 3", len(rows))
	}
}

func TestVimKeysMoveFocus(t *testing.T) {
	m := newTestMenu(t)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	if got, _ := m.Focused(); got.Slug != "docs" {
		t.Errorf("j moved focus to %q, want docs", got.Slug)
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	if got, _ := m.Focused(); got.Slug != "home" {
		t.Errorf("k moved focus to %q, want home", got.Slug)
	}
}

func TestKeyboardGates(t *testing.T) {
	m := New(styles.NewTheme(), testTree()...)

	// Not started.
	m, cmd := m.Update(keyMsg(tea.KeyEnter))
	if cmd != nil {
		t.Error("keys must be dead before Start")
	}

	m.Start()
	m.Keyboard = false
	m, cmd = m.Update(keyMsg(tea.KeyEnter))
	if cmd != nil {
		t.Error("keys must be dead with Keyboard off")
	}

	m.Stop()
	m.Keyboard = true
	if _, cmd = m.Update(keyMsg(tea.KeyEnter)); cmd != nil {
		t.Error("keys must be dead after Stop")
	}
}

func TestCustomCallbacks(t *testing.T) {
	type picked struct{ slug string }
	type flipped struct {
		slug string
		open bool
	}

	m := newTestMenu(t)
	m.OnSelect = func(n Node, active bool) tea.Msg { return picked{slug: n.Slug} }
	m.OnToggle = func(n Node, open bool) tea.Msg { return flipped{slug: n.Slug, open: open} }

	m, cmd := m.Update(keyMsg(tea.KeyEnter))
	if got, ok := cmd().(picked); !ok || got.slug != "home" {
		t.Errorf("OnSelect constructor not used: got %#v", cmd())
	}

	m, _ = m.Update(keyMsg(tea.KeyDown))
	_, cmd = m.Update(keyMsg(tea.KeyEnter))
	if got, ok := cmd().(flipped); !ok || got.slug != "docs" || !got.open {
		t.Errorf("OnToggle constructor not used: got %#v", cmd())
	}
}

// =============================================================================
// POINTER TESTS
// =============================================================================

func TestClickActivatesRow(t *testing.T) {
	m := newTestMenu(t)
	m.SetBounds(2, 3, 40, 10)

	// Row 1 of the closed tree is the Docs toggle.
	m, cmd := m.Update(tea.MouseMsg{X: 6, Y: 4, Type: tea.MouseLeft})
	if cmd == nil {
		t.Fatal("click on a row should emit a message")
	}
	tog, ok := cmd().(ToggledMsg)
	if !ok || tog.Node.Slug != "docs" || !tog.Open {
		t.Fatalf("click emitted %#v, want docs toggled open", cmd())
	}
	if got, _ := m.Focused(); got.Slug != "docs" {
		t.Errorf("click should move focus to the hit row, got %q", got.Slug)
	}
}

func TestClickOutsideIgnored(t *testing.T) {
	m := newTestMenu(t)
	m.SetBounds(0, 0, 40, 10)

	if _, cmd := m.Update(tea.MouseMsg{X: 5, Y: 9, Type: tea.MouseLeft}); cmd != nil {
		t.Error("clicks below the last row should be ignored")
	}
	if _, cmd := m.Update(tea.MouseMsg{X: 45, Y: 0, Type: tea.MouseLeft}); cmd != nil {
		t.Error("clicks past the menu width should be ignored")
	}
	if _, cmd := m.Update(tea.MouseMsg{X: 5, Y: 1, Type: tea.MouseMotion}); cmd != nil {
		t.Error("pointer motion is not an activation")
	}
}

func TestHorizontalClickFlow(t *testing.T) {
	m := newTestMenu(t,
		Branch{Title: "Products", Children: []Entry{
			Branch{Title: "Nested", Children: []Entry{Text("X")}},
			Text("Plain"),
		}},
		Text("About"),
	)
	m.Orientation = Horizontal
	m.SetBounds(0, 0, 60, 10)

	zones := m.rowZones(m.visibleRows())
	if len(zones) != 2 {
		t.Fatalf("closed zones = %d, want 2", len(zones))
	}

	// Click the Products toggle.
	m, cmd := m.Update(tea.MouseMsg{X: zones[0].x, Y: 0, Type: tea.MouseLeft})
	if tog, ok := cmd().(ToggledMsg); !ok || !tog.Open {
		t.Fatalf("toggle click emitted %#v", cmd())
	}

	rows := m.visibleRows()
	if len(rows) != 4 {
		t.Fatalf("visible rows = %d with panel open, want 4", len(rows))
	}
	zones = m.rowZones(rows)

	// Click the panel row holding the nested branch: it acts as a link.
	m, cmd = m.Update(tea.MouseMsg{X: zones[2].x + 1, Y: zones[2].y, Type: tea.MouseLeft})
	sel, ok := cmd().(SelectedMsg)
	if !ok {
		t.Fatalf("panel click emitted %T, want SelectedMsg", cmd())
	}
	if sel.Node.Slug != "nested" || !sel.Active {
		t.Errorf("panel click selected %+v", sel)
	}
	if want := []string{"products"}; !reflect.DeepEqual(m.DeployPath(), want) {
		t.Errorf("dropdowns must stay one level deep, path = %v", m.DeployPath())
	}
}

// =============================================================================
// RELOAD AND RESTORE TESTS
// =============================================================================

func TestSetEntriesPrunesState(t *testing.T) {
	m := newTestMenu(t)
	m.Toggle("docs")
	m.Toggle("docs", "guides")
	for i := 0; i < 10; i++ {
		m, _ = m.Update(keyMsg(tea.KeyDown))
	}

	m.SetEntries(Text("Solo"))
	if len(m.DeployPath()) != 0 {
		t.Errorf("deploy path = %v after reload, want empty", m.DeployPath())
	}
	if got, ok := m.Focused(); !ok || got.Slug != "solo" {
		t.Errorf("focus = %v, want clamped onto the only row", got)
	}
}

func TestSetDeployRestores(t *testing.T) {
	m := newTestMenu(t)

	m.SetDeploy("docs", "guides")
	if want := []string{"docs", "guides"}; !reflect.DeepEqual(m.DeployPath(), want) {
		t.Errorf("deploy path = %v, want %v", m.DeployPath(), want)
	}

	m.SetDeploy("docs", "missing")
	if want := []string{"docs"}; !reflect.DeepEqual(m.DeployPath(), want) {
		t.Errorf("deploy path = %v, want pruned %v", m.DeployPath(), want)
	}

	m.SetDeploy("home") // a leaf cannot deploy
	if len(m.DeployPath()) != 0 {
		t.Errorf("deploy path = %v, want empty for a leaf slug", m.DeployPath())
	}

	m.SetActive("install")
	if m.Active() != "install" {
		t.Errorf("active = %q, want restored %q", m.Active(), "install")
	}
}

// =============================================================================
// VIEW TESTS
// =============================================================================

func TestViewVertical(t *testing.T) {
	m := newTestMenu(t)
	m.SetSize(40)

	view := m.View()
	if lines := strings.Split(view, "\n"); len(lines) != 3 {
		t.Fatalf("closed view lines = %d, want 3", len(lines))
	}
	if !strings.Contains(view, "> Home") {
		t.Error("focused row should carry the pointer gutter")
	}
	if strings.Contains(view, "Install") {
		t.Error("children of a closed branch must not render")
	}

	m.Toggle("docs")
	view = m.View()
	if !strings.Contains(view, "Install") {
		t.Error("deployed children should render")
	}
	if !strings.Contains(view, "  "+"  "+"Install") {
		t.Error("deployed children should be indented below their branch")
	}
}

func TestViewHorizontal(t *testing.T) {
	m := newTestMenu(t,
		Branch{Title: "Products", Children: []Entry{Text("Widgets"), Text("Gadgets")}},
		Text("About"),
	)
	m.Orientation = Horizontal
	m.SetSize(60)

	view := m.View()
	if strings.Count(view, "\n") != 0 {
		t.Fatalf("closed horizontal menu should be a single line, got %q", view)
	}
	if !strings.Contains(view, "Products") || !strings.Contains(view, "About") {
		t.Error("top-level items missing from the row")
	}

	m.Toggle("products")
	lines := strings.Split(m.View(), "\n")
	if len(lines) < 4 {
		t.Fatalf("open dropdown should add panel lines, got %d", len(lines))
	}
	if !strings.Contains(lines[2], "Widgets") {
		t.Errorf("first panel row = %q, want Widgets", lines[2])
	}
	if !strings.Contains(lines[3], "Gadgets") {
		t.Errorf("second panel row = %q, want Gadgets", lines[3])
	}
}

func TestViewGates(t *testing.T) {
	m := New(styles.NewTheme(), testTree()...)
	if m.View() != "" {
		t.Error("an unstarted menu renders nothing")
	}

	m.Start()
	if m.View() == "" {
		t.Error("a started menu renders rows")
	}

	m.Stop()
	if m.View() != "" {
		t.Error("a stopped menu renders nothing")
	}

	empty := New(styles.NewTheme())
	empty.Start()
	if empty.View() != "" {
		t.Error("an empty menu renders nothing")
	}
}

func TestViewTruncatesLongTitles(t *testing.T) {
	long := strings.Repeat("VeryLongTitle", 10)
	m := newTestMenu(t, Text(long))
	m.SetSize(20)

	for _, line := range strings.Split(m.View(), "\n") {
		if w := lipgloss.Width(line); w > 20 {
			t.Errorf("line width = %d, want <= 20", w)
		}
	}
}
