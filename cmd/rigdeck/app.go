// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/jeranaias/rigdeck/carousel"
	"github.com/jeranaias/rigdeck/internal/deckfile"
	"github.com/jeranaias/rigdeck/internal/history"
	"github.com/jeranaias/rigdeck/navmenu"
	"github.com/jeranaias/rigdeck/slides"
	"github.com/jeranaias/rigdeck/styles"
)

// =============================================================================
// MESSAGES
// =============================================================================

// fileChangedMsg arrives from the watcher goroutine when a deck source
// changes on disk.
type fileChangedMsg struct {
	path string
}

// deckLoadedMsg carries a freshly reloaded deck back into the program.
type deckLoadedMsg struct {
	deck    *deckfile.Deck
	slides  []slides.Slide
	entries []navmenu.Entry
}

// reloadFailedMsg reports a reload that did not take. The running deck
// stays up on its last good sources.
type reloadFailedMsg struct {
	err error
}

// =============================================================================
// KEY MAP
// =============================================================================

// keyMap declares the bindings shown in the help footer. The slide and
// menu keys are handled by the components themselves; the app only acts
// on the jump, help, and quit bindings.
type keyMap struct {
	NextSlide  key.Binding
	PrevSlide  key.Binding
	FirstSlide key.Binding
	LastSlide  key.Binding
	MenuUp     key.Binding
	MenuDown   key.Binding
	MenuEnter  key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		NextSlide: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "next slide"),
		),
		PrevSlide: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "previous slide"),
		),
		FirstSlide: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("home", "first slide"),
		),
		LastSlide: key.NewBinding(
			key.WithKeys("end"),
			key.WithHelp("end", "last slide"),
		),
		MenuUp: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "menu up"),
		),
		MenuDown: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "menu down"),
		),
		MenuEnter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "activate menu row"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevSlide, k.NextSlide, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevSlide, k.NextSlide, k.FirstSlide, k.LastSlide},
		{k.MenuUp, k.MenuDown, k.MenuEnter},
		{k.Help, k.Quit},
	}
}

// =============================================================================
// CHROME STYLES
// =============================================================================

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(styles.Purple)
	counterStyle = lipgloss.NewStyle().Foreground(styles.TextMuted)
	statusStyle  = lipgloss.NewStyle().Foreground(styles.Emerald)
	problemStyle = lipgloss.NewStyle().Foreground(styles.Rose)
)

// =============================================================================
// APP MODEL
// =============================================================================

// App is the program model. It owns the deck, the slide carousel, the
// navigation menu, and the chrome around them.
type App struct {
	theme    *styles.Theme
	deck     *deckfile.Deck
	deckPath string

	carousel carousel.Model
	menu     navmenu.Model
	menuPane viewport.Model
	renderer *slides.Renderer
	slides   []slides.Slide

	keys keyMap
	help help.Model

	width    int
	height   int
	menuW    int
	menuRows int
	ready    bool

	status    string
	statusBad bool
}

// newApp assembles the program model from loaded deck sources.
func newApp(theme *styles.Theme, deck *deckfile.Deck, deckPath string, slideDeck []slides.Slide, entries []navmenu.Entry) *App {
	renderW := 60
	if deck.UI.Width > 0 {
		renderW = deck.UI.Width
	}
	renderer := slides.NewRenderer(renderW)

	c := carousel.New(theme, buildItems(deck, renderer, slideDeck)...)
	c.Interval = deck.Carousel.Interval()
	c.Ride = deck.Carousel.RideMode()
	c.Pause = deck.Carousel.PauseMode()
	c.Keyboard = deck.Carousel.Keyboard
	c.Indicators = deck.Carousel.Indicators
	c.Controls = deck.Carousel.Controls

	m := navmenu.New(theme, entries...)
	m.Orientation = deck.Nav.OrientationMode()
	m.SetCaret(deck.Nav.CaretMode())
	if deck.Nav.Active != "" {
		m.SetActive(deck.Nav.Active)
	}
	if len(deck.Nav.Deploy) > 0 {
		m.SetDeploy(deck.Nav.Deploy...)
	}

	pane := viewport.New(0, 0)
	pane.Style = lipgloss.NewStyle()

	return &App{
		theme:    theme,
		deck:     deck,
		deckPath: deckPath,
		carousel: c,
		menu:     m,
		menuPane: pane,
		renderer: renderer,
		slides:   slideDeck,
		keys:     defaultKeyMap(),
		help:     help.New(),
	}
}

// buildItems renders the deck into carousel items, applying the deck's
// transition settings and captions.
func buildItems(deck *deckfile.Deck, r *slides.Renderer, slideDeck []slides.Slide) []carousel.Item {
	items := slides.Items(r, slideDeck)
	for i := range items {
		items[i].Slide = deck.Carousel.Slide
		items[i] = items[i].WithFade(deck.Carousel.Fade())
	}
	for _, c := range deck.Captions {
		if c.Slide < 1 || c.Slide > len(items) {
			continue
		}
		items[c.Slide-1].Caption = carousel.Caption{Header: c.Header, Text: c.Text}
	}
	return items
}

// =============================================================================
// VIEW STATE
// =============================================================================

// restore puts the app back on a saved view. It runs before the program
// starts, so nothing animates.
func (a *App) restore(view history.View) {
	a.carousel.Restore(view.SlideIndex)
	if view.NavActive != "" {
		a.menu.SetActive(view.NavActive)
	}
	if len(view.NavDeploy) > 0 {
		a.menu.SetDeploy(view.NavDeploy...)
	}
}

// snapshot captures the state worth keeping for the next run.
func (a *App) snapshot(deckPath string) history.View {
	return history.View{
		DeckPath:   deckPath,
		SlideIndex: a.carousel.Active(),
		NavActive:  a.menu.Active(),
		NavDeploy:  a.menu.DeployPath(),
	}
}

// =============================================================================
// LIFECYCLE
// =============================================================================

// Init starts both components. The returned command carries the first
// autoplay tick when the deck autoplays.
func (a *App) Init() tea.Cmd {
	a.menu.Start()
	return a.carousel.Start()
}

// Update routes messages. The components gate their own input, so most
// traffic is forwarded to both and each takes what is addressed to it.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.layout()
		return a, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, a.keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, a.keys.Help):
			a.help.ShowAll = !a.help.ShowAll
			a.layout()
			return a, nil
		case key.Matches(msg, a.keys.FirstSlide):
			var cmd tea.Cmd
			a.carousel, cmd = a.carousel.Goto(0)
			return a, cmd
		case key.Matches(msg, a.keys.LastSlide):
			var cmd tea.Cmd
			a.carousel, cmd = a.carousel.Goto(a.carousel.Count() - 1)
			return a, cmd
		}

	case tea.MouseMsg:
		return a, a.routeMouse(msg)

	case navmenu.SelectedMsg:
		if msg.Active {
			target := msg.Node.Href
			if target == "" {
				target = msg.Node.Slug
			}
			a.setStatus("→ "+target, false)
		}
		return a, nil

	case navmenu.ToggledMsg:
		// A dropdown opening or closing changes the horizontal strip
		// height, so the deck bounds have to follow.
		a.layout()
		return a, nil

	case fileChangedMsg:
		a.setStatus("reloading "+filepath.Base(msg.path), false)
		return a, a.reloadCmd()

	case deckLoadedMsg:
		cmd := a.applyReload(msg)
		a.setStatus("reloaded "+time.Now().Format("15:04:05"), false)
		return a, cmd

	case reloadFailedMsg:
		a.setStatus(msg.err.Error(), true)
		return a, nil
	}

	// Everything else flows to both components: the keys they own, the
	// autoplay and settle ticks, and the carousel's request messages.
	var cmds []tea.Cmd
	var cmd tea.Cmd
	a.carousel, cmd = a.carousel.Update(msg)
	cmds = append(cmds, cmd)
	a.menu, cmd = a.menu.Update(msg)
	cmds = append(cmds, cmd)
	return a, tea.Batch(cmds...)
}

// routeMouse fans a pointer event out. The carousel hit-tests against
// screen coordinates as is; the menu sees coordinates shifted by the
// pane's scroll offset so its zones keep lining up; the wheel scrolls
// the pane when the pointer is over it.
func (a *App) routeMouse(msg tea.MouseMsg) tea.Cmd {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	a.carousel, cmd = a.carousel.Update(msg)
	cmds = append(cmds, cmd)

	translated := msg
	if a.menuW > 0 {
		translated.Y += a.menuPane.YOffset
	}
	a.menu, cmd = a.menu.Update(translated)
	cmds = append(cmds, cmd)

	if a.menuW > 0 && msg.X < a.menuW {
		a.menuPane, cmd = a.menuPane.Update(msg)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (a *App) setStatus(text string, bad bool) {
	a.status = text
	a.statusBad = bad
}

// =============================================================================
// LAYOUT
// =============================================================================

// layout recomputes the pane geometry and pushes it into the components,
// whose pointer zones must match what View draws.
func (a *App) layout() {
	if a.width <= 0 || a.height <= 0 {
		return
	}
	a.theme.SetSize(a.width, a.height)
	a.help.Width = a.width

	helpRows := 1
	if a.help.ShowAll {
		helpRows = 4
	}
	// Header, a blank line, the body, the status row, then help.
	bodyTop := 2
	bodyH := a.height - bodyTop - 1 - helpRows
	if bodyH < 4 {
		bodyH = 4
	}

	a.menuW = 0
	a.menuRows = 0
	gap := 0
	horizontal := a.menu.Orientation == navmenu.Horizontal
	if len(a.menu.Nodes()) > 0 {
		if horizontal {
			a.menuRows = a.menuStripRows()
		} else {
			a.menuW = a.width / 4
			if a.menuW > 28 {
				a.menuW = 28
			}
			if a.menuW < 16 {
				a.menuW = 16
			}
			gap = 2
		}
	}

	carH := bodyH - a.menuRows
	if carH < 4 {
		carH = 4
	}
	carW := a.width - a.menuW - gap
	if a.deck.UI.Width > 0 && carW > a.deck.UI.Width {
		carW = a.deck.UI.Width
	}

	if horizontal {
		a.menu.SetBounds(0, bodyTop, a.width, a.menuRows)
	} else {
		a.menu.SetBounds(0, bodyTop, a.menuW, bodyH)
	}
	a.menuPane.Width = a.menuW
	a.menuPane.Height = bodyH
	a.carousel.SetBounds(carousel.Rect{X: a.menuW + gap, Y: bodyTop + a.menuRows, W: carW, H: carH})

	// Controls flank the slide and the item block carries padding; keep
	// the wrap width inside that chrome.
	contentW := carW - 10
	if contentW < 20 {
		contentW = 20
	}
	if a.renderer.Width() != contentW {
		a.renderer.SetWidth(contentW)
		a.carousel.SetItems(buildItems(a.deck, a.renderer, a.slides)...)
	}
}

// menuStripRows returns the rows a horizontal menu occupies: one for the
// top-level bar, plus the open dropdown panel and its border.
func (a *App) menuStripRows() int {
	open := a.menu.Deploy()
	if open == "" {
		return 1
	}
	for _, n := range a.menu.Nodes() {
		if n.Slug == open && len(n.Children) > 0 {
			return 1 + len(n.Children) + 2
		}
	}
	return 1
}

// =============================================================================
// HOT RELOAD
// =============================================================================

// reloadCmd re-reads the deck sources off the program goroutine.
func (a *App) reloadCmd() tea.Cmd {
	deckPath := a.deckPath
	return func() tea.Msg {
		deck, slideDeck, entries, err := loadDeck(deckPath)
		if err != nil {
			return reloadFailedMsg{err: err}
		}
		return deckLoadedMsg{deck: deck, slides: slideDeck, entries: entries}
	}
}

// applyReload swaps in reloaded sources. The carousel keeps its position
// when the deck still has that many slides; the autoplay chain is rebuilt
// so a changed interval takes effect at once.
func (a *App) applyReload(msg deckLoadedMsg) tea.Cmd {
	a.deck = msg.deck
	a.slides = msg.slides

	unicodeOK := a.theme.ColorProfile == termenv.TrueColor || a.theme.ColorProfile == termenv.ANSI256
	a.theme.Glyphs = a.deck.UI.Glyphs(unicodeOK)

	a.carousel.SetItems(buildItems(a.deck, a.renderer, a.slides)...)
	a.carousel.Ride = a.deck.Carousel.RideMode()
	a.carousel.Pause = a.deck.Carousel.PauseMode()
	a.carousel.Keyboard = a.deck.Carousel.Keyboard
	a.carousel.Indicators = a.deck.Carousel.Indicators
	a.carousel.Controls = a.deck.Carousel.Controls
	cmd := a.carousel.SetInterval(a.deck.Carousel.Interval())

	a.menu.SetEntries(msg.entries...)
	a.menu.Orientation = a.deck.Nav.OrientationMode()
	a.menu.SetCaret(a.deck.Nav.CaretMode())

	a.layout()
	return cmd
}

// =============================================================================
// VIEW
// =============================================================================

// View composes the frame: header, the menu beside or above the deck,
// a status row, and the help footer.
func (a *App) View() string {
	if !a.ready {
		return "loading deck..."
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		a.renderHeader(),
		"",
		a.renderBody(),
		a.renderStatus(),
		a.help.View(a.keys),
	)
}

func (a *App) renderHeader() string {
	title := titleStyle.Render(a.deck.Title)
	counter := counterStyle.Render(fmt.Sprintf("slide %d/%d", a.carousel.Active()+1, a.carousel.Count()))

	pad := a.width - lipgloss.Width(title) - lipgloss.Width(counter)
	if pad < 1 {
		pad = 1
	}
	return title + strings.Repeat(" ", pad) + counter
}

func (a *App) renderBody() string {
	deckView := a.carousel.View()

	if a.menuRows > 0 {
		strip := lipgloss.Place(a.width, a.menuRows, lipgloss.Left, lipgloss.Top, a.menu.View())
		return lipgloss.JoinVertical(lipgloss.Left, strip, deckView)
	}
	if a.menuW == 0 {
		return deckView
	}
	a.menuPane.SetContent(a.menu.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, a.menuPane.View(), "  ", deckView)
}

func (a *App) renderStatus() string {
	if a.status == "" {
		return ""
	}
	if a.statusBad {
		return problemStyle.Render(a.status)
	}
	return statusStyle.Render(a.status)
}
