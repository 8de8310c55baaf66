// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/jeranaias/rigdeck/internal/deckfile"
	"github.com/jeranaias/rigdeck/internal/history"
	"github.com/jeranaias/rigdeck/internal/watch"
	"github.com/jeranaias/rigdeck/navmenu"
	"github.com/jeranaias/rigdeck/slides"
	"github.com/jeranaias/rigdeck/styles"
)

// =============================================================================
// RUN
// =============================================================================

// runDeck plays a deck: resolve the deck file, build the program model,
// restore the saved view, and run until the user quits.
func runDeck(opts cliArgs) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("stdout is not a terminal; rigdeck needs an interactive session")
	}

	deckPath, err := resolveDeckPath(opts.Path)
	if err != nil {
		return err
	}

	deck, slideDeck, entries, err := loadDeck(deckPath)
	if err != nil {
		return err
	}
	if opts.Width > 0 {
		deck.UI.Width = opts.Width
	}

	theme := buildTheme(deck)
	app := newApp(theme, deck, deckPath, slideDeck, entries)

	// View state comes back before the program starts so the first frame
	// already sits on the saved slide.
	var store *history.Store
	if !opts.NoHistory {
		if store = openHistory(); store != nil {
			defer store.Close()
			restoreView(store, deckPath, app)
		}
	}

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if !opts.NoWatch {
		// TODO: rebuild the watch set when a reload moves the slides or
		// menu path; until then a renamed source needs a restart.
		watcher, err := watch.Start(func(ev watch.Event) {
			p.Send(fileChangedMsg{path: ev.Path})
		}, deckPath, deck.SlidesPath(), deck.MenuPath())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: hot reload unavailable: %v\n", err)
		} else {
			defer watcher.Close()
		}
	}

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}

	// The alt screen is gone by now, so warnings land on a sane terminal.
	if store != nil {
		if a, ok := finalModel.(*App); ok {
			saveView(store, deckPath, a)
		}
	}
	return nil
}

// resolveDeckPath turns the positional argument into a deck file path.
// Directories are probed for the well-known deck file names.
func resolveDeckPath(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("deck path: %w", err)
	}
	if info.IsDir() {
		return deckfile.Discover(path)
	}
	return path, nil
}

// loadDeck reads the deck file and everything it points at. Hot reload
// goes through the same path, so a broken edit fails here and leaves the
// running deck alone.
func loadDeck(deckPath string) (*deckfile.Deck, []slides.Slide, []navmenu.Entry, error) {
	deck, err := deckfile.Load(deckPath)
	if err != nil {
		return nil, nil, nil, err
	}

	slideDeck, err := slides.Load(deck.SlidesPath())
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading slides: %w", err)
	}

	var entries []navmenu.Entry
	if menuPath := deck.MenuPath(); menuPath != "" {
		data, err := os.ReadFile(menuPath)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("loading menu: %w", err)
		}
		entries, err = navmenu.ParseYAML(data)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("parsing menu: %w", err)
		}
	}
	return deck, slideDeck, entries, nil
}

// buildTheme detects terminal capabilities and applies the deck's
// overrides on top.
func buildTheme(deck *deckfile.Deck) *styles.Theme {
	theme := styles.NewTheme()

	switch deck.UI.Theme {
	case "dark":
		lipgloss.SetHasDarkBackground(true)
		theme.IsDark = true
	case "light":
		lipgloss.SetHasDarkBackground(false)
		theme.IsDark = false
	}

	unicodeOK := theme.ColorProfile == termenv.TrueColor || theme.ColorProfile == termenv.ANSI256
	theme.Glyphs = deck.UI.Glyphs(unicodeOK)
	return theme
}

// =============================================================================
// VIEW STATE
// =============================================================================

// openHistory opens the view-state store. Persistence degrades to none
// when the store cannot open; the deck still plays.
func openHistory() *history.Store {
	path, err := history.DefaultPath()
	if err == nil {
		var store *history.Store
		if store, err = history.Open(path); err == nil {
			return store
		}
	}
	fmt.Fprintf(os.Stderr, "Warning: view history unavailable: %v\n", err)
	return nil
}

// restoreView puts the app back on the deck's saved view. A deck seen
// for the first time starts fresh without a word.
func restoreView(store *history.Store, deckPath string, app *App) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	view, err := store.Load(ctx, deckPath)
	if err != nil {
		if !errors.Is(err, history.ErrNotFound) {
			fmt.Fprintf(os.Stderr, "Warning: restoring view state: %v\n", err)
		}
		return
	}
	app.restore(view)
}

// saveView records where the deck was left for the next run.
func saveView(store *history.Store, deckPath string, app *App) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := store.Save(ctx, app.snapshot(deckPath)); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: saving view state: %v\n", err)
	}
}
