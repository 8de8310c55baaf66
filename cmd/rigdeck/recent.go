// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jeranaias/rigdeck/internal/history"
)

// =============================================================================
// RECENT COMMAND
// =============================================================================

// runRecent lists recently played decks, newest first. An optional
// positional argument raises the count.
func runRecent(opts cliArgs) error {
	limit := 10
	if len(opts.Raw) > 0 {
		if n, err := strconv.Atoi(opts.Raw[0]); err == nil && n > 0 {
			limit = n
		}
	}

	path, err := history.DefaultPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err != nil {
		fmt.Println("No decks played yet.")
		return nil
	}

	store, err := history.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	views, err := store.Recent(ctx, limit)
	if err != nil {
		return err
	}
	if len(views) == 0 {
		fmt.Println("No decks played yet.")
		return nil
	}

	fmt.Println(titleStyle.Render("Recently played"))
	fmt.Println()

	width := 0
	paths := make([]string, len(views))
	for i, v := range views {
		paths[i] = tildePath(v.DeckPath)
		if len(paths[i]) > width {
			width = len(paths[i])
		}
	}
	for i, v := range views {
		detail := fmt.Sprintf("slide %d, %s", v.SlideIndex+1, humanAge(time.Since(v.SavedAt)))
		fmt.Printf("  %-*s  %s\n", width, paths[i], counterStyle.Render(detail))
	}
	return nil
}

// tildePath shortens a home-relative path for display.
func tildePath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	if strings.HasPrefix(path, home) {
		return "~" + strings.TrimPrefix(path, home)
	}
	return path
}

// humanAge renders an age in the coarsest sensible unit.
func humanAge(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
