// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package navmenu

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/rigdeck/styles"
)

// =============================================================================
// ORIENTATION
// =============================================================================

// Orientation picks the menu's layout and, with it, how deep branches
// deploy. Vertical menus nest without bound; horizontal menus open one
// dropdown panel and render anything deeper as plain rows.
type Orientation int

const (
	Vertical Orientation = iota
	Horizontal
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

// SelectedMsg reports a leaf activation. When the activated leaf was
// already active the selection was cleared and Active is false.
type SelectedMsg struct {
	ID     int
	Node   Node
	Active bool
}

// ToggledMsg reports a branch toggle and the open state it produced.
type ToggledMsg struct {
	ID   int
	Node Node
	Open bool
}

// =============================================================================
// MODEL
// =============================================================================

// Model is a navigation menu over a reduced Node tree. It tracks one
// active leaf slug and one open branch chain, a keyboard focus cursor,
// and renders links, toggles, and dropdown panels through the theme's
// class registry.
type Model struct {
	id int

	// Orientation picks vertical (recursive) or horizontal (one
	// dropdown level) layout.
	Orientation Orientation

	// Caret is the ambient marker branches inherit when they set none.
	Caret Caret

	// Keyboard gates focus movement and activation keys.
	Keyboard bool

	// Message constructors supplied by the owner. When nil, the stock
	// messages carrying this instance's ID are emitted instead.
	OnSelect func(Node, bool) tea.Msg
	OnToggle func(Node, bool) tea.Msg

	theme   *styles.Theme
	entries []Entry
	nodes   []Node

	active string
	open   []string
	focus  int

	started bool
	bounds  zone
	width   int
}

// zone is a screen rectangle in cells, for pointer hit-testing.
type zone struct {
	x, y, w, h int
}

func (z zone) contains(x, y int) bool {
	return x >= z.x && x < z.x+z.w && y >= z.y && y < z.y+z.h
}

// New creates a menu over the given entries. The entries are reduced
// immediately with the default ambient caret.
func New(theme *styles.Theme, entries ...Entry) Model {
	m := Model{
		id:       nextID(),
		Caret:    CaretOn,
		Keyboard: true,
		theme:    theme,
		entries:  entries,
	}
	m.nodes = Reduce(entries, m.Caret)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// =============================================================================
// ACCESSORS
// =============================================================================

// ID returns the instance id carried by this menu's messages.
func (m Model) ID() int { return m.id }

// Nodes returns the reduced tree.
func (m Model) Nodes() []Node { return m.nodes }

// Active returns the selected leaf slug, or "" when none is selected.
func (m Model) Active() string { return m.active }

// Deploy returns the open top-level branch slug, or "" when the menu is
// fully collapsed.
func (m Model) Deploy() string {
	if len(m.open) == 0 {
		return ""
	}
	return m.open[0]
}

// DeployPath returns the full chain of open branch slugs, outermost
// first. Horizontal menus never have more than one element here.
func (m Model) DeployPath() []string {
	path := make([]string, len(m.open))
	copy(path, m.open)
	return path
}

// Started reports whether Start has been called without a matching Stop.
func (m Model) Started() bool { return m.started }

// Focused returns the node under the focus cursor.
func (m Model) Focused() (Node, bool) {
	rows := m.visibleRows()
	if m.focus < 0 || m.focus >= len(rows) {
		return Node{}, false
	}
	return rows[m.focus].node, true
}

// =============================================================================
// CONFIGURATION
// =============================================================================

// SetEntries replaces the menu description and re-reduces it. Selection
// state is kept where the new tree still has the slugs; the open chain
// is pruned at the first slug that no longer resolves.
func (m *Model) SetEntries(entries ...Entry) {
	m.entries = entries
	m.nodes = Reduce(entries, m.Caret)
	m.open = m.pruneOpen(m.open)
	m.clampFocus()
}

// SetCaret changes the ambient caret and re-reduces the entries so
// branches that inherit pick it up.
func (m *Model) SetCaret(c Caret) {
	m.Caret = c
	m.nodes = Reduce(m.entries, c)
}

// SetTheme swaps the theme used for rendering.
func (m *Model) SetTheme(theme *styles.Theme) {
	m.theme = theme
}

// SetSize fixes the rendered width in cells.
func (m *Model) SetSize(width int) {
	m.width = width
	m.bounds.w = width
}

// SetBounds records where on screen the menu is drawn, for pointer
// hit-testing.
func (m *Model) SetBounds(x, y, w, h int) {
	m.bounds = zone{x: x, y: y, w: w, h: h}
	m.width = w
}

// SetActive restores a leaf selection, for state brought back from disk.
func (m *Model) SetActive(slug string) {
	m.active = slug
}

// SetDeploy restores an open branch chain. Slugs that no longer resolve
// cut the chain there.
func (m *Model) SetDeploy(path ...string) {
	m.open = m.pruneOpen(path)
}

// pruneOpen walks a slug chain down the tree and returns the prefix
// that still resolves to branches.
func (m Model) pruneOpen(path []string) []string {
	var kept []string
	level := m.nodes
	for _, slug := range path {
		n, ok := findNode(level, slug)
		if !ok || !n.IsBranch() {
			break
		}
		kept = append(kept, slug)
		level = n.Children
	}
	return kept
}

// =============================================================================
// LIFECYCLE
// =============================================================================

// Start makes the menu visible and its input live.
func (m *Model) Start() {
	m.started = true
}

// Stop hides the menu and silences its input.
func (m *Model) Stop() {
	m.started = false
}

// =============================================================================
// SELECTION
// =============================================================================

// Select marks the leaf with the given slug active. Selecting the slug
// that is already active clears the selection; selecting a different
// one replaces it. Returns the resulting active state of the slug.
func (m *Model) Select(slug string) bool {
	if m.active == slug {
		m.active = ""
		return false
	}
	m.active = slug
	return true
}

// Toggle opens the branch at the given slug path, closing whatever
// other branch was open at that depth. Toggling an open branch closes
// it together with everything deployed below it. Returns the resulting
// open state.
func (m *Model) Toggle(path ...string) bool {
	if len(path) == 0 {
		return false
	}
	depth := len(path) - 1
	slug := path[depth]
	if len(m.open) > depth && m.open[depth] == slug && samePrefix(m.open, path[:depth]) {
		m.open = m.open[:depth]
		return false
	}
	chain := make([]string, 0, len(path))
	chain = append(chain, path[:depth]...)
	m.open = append(chain, slug)
	return true
}

func samePrefix(chain, prefix []string) bool {
	if len(chain) < len(prefix) {
		return false
	}
	for i, s := range prefix {
		if chain[i] != s {
			return false
		}
	}
	return true
}

// isOpen reports whether every slug along the path is deployed.
func (m Model) isOpen(path []string) bool {
	return samePrefix(m.open, path)
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles focus movement, activation keys, and pointer clicks.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.started {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !m.Keyboard {
			return m, nil
		}
		switch msg.String() {
		case "up", "k":
			if m.focus > 0 {
				m.focus--
			}
			return m, nil
		case "down", "j":
			if m.focus < len(m.visibleRows())-1 {
				m.focus++
			}
			return m, nil
		case "enter":
			rows := m.visibleRows()
			if m.focus < 0 || m.focus >= len(rows) {
				return m, nil
			}
			return m.activate(rows[m.focus])
		}
		return m, nil

	case tea.MouseMsg:
		if msg.Type != tea.MouseLeft {
			return m, nil
		}
		x := msg.X - m.bounds.x
		y := msg.Y - m.bounds.y
		rows := m.visibleRows()
		for i, z := range m.rowZones(rows) {
			if z.contains(x, y) {
				m.focus = i
				return m.activate(rows[i])
			}
		}
		return m, nil
	}
	return m, nil
}

// activate selects a leaf or toggles a branch and emits the matching
// message. Inside a horizontal dropdown panel every row acts as a plain
// link, branch or not; dropdowns never open a second level.
func (m Model) activate(r row) (Model, tea.Cmd) {
	if r.node.IsBranch() && !(m.Orientation == Horizontal && r.depth > 0) {
		open := m.Toggle(r.path...)
		m.clampFocus()
		node := r.node
		if m.OnToggle != nil {
			fn := m.OnToggle
			return m, func() tea.Msg { return fn(node, open) }
		}
		id := m.id
		return m, func() tea.Msg { return ToggledMsg{ID: id, Node: node, Open: open} }
	}

	active := m.Select(r.node.Slug)
	node := r.node
	if m.OnSelect != nil {
		fn := m.OnSelect
		return m, func() tea.Msg { return fn(node, active) }
	}
	id := m.id
	return m, func() tea.Msg { return SelectedMsg{ID: id, Node: node, Active: active} }
}

func (m *Model) clampFocus() {
	if n := len(m.visibleRows()); m.focus >= n {
		m.focus = n - 1
	}
	if m.focus < 0 {
		m.focus = 0
	}
}

// =============================================================================
// VISIBLE ROWS
// =============================================================================

// row is one focusable line of the rendered menu.
type row struct {
	node  Node
	path  []string
	depth int
}

// visibleRows flattens the tree into the rows currently on screen, in
// render order. Vertical menus descend through every deployed branch;
// horizontal menus list the top level and then the rows of the one open
// dropdown panel.
func (m Model) visibleRows() []row {
	var rows []row

	if m.Orientation == Horizontal {
		for _, n := range m.nodes {
			rows = append(rows, row{node: n, path: []string{n.Slug}, depth: 0})
		}
		if len(m.open) > 0 {
			if parent, ok := findNode(m.nodes, m.open[0]); ok {
				for _, child := range parent.Children {
					rows = append(rows, row{
						node:  child,
						path:  []string{parent.Slug, child.Slug},
						depth: 1,
					})
				}
			}
		}
		return rows
	}

	var walk func(nodes []Node, prefix []string, depth int)
	walk = func(nodes []Node, prefix []string, depth int) {
		for _, n := range nodes {
			path := make([]string, 0, len(prefix)+1)
			path = append(path, prefix...)
			path = append(path, n.Slug)
			rows = append(rows, row{node: n, path: path, depth: depth})
			if n.IsBranch() && m.isOpen(path) {
				walk(n.Children, path, depth+1)
			}
		}
	}
	walk(m.nodes, nil, 0)
	return rows
}
