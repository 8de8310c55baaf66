// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/jeranaias/rigdeck/internal/deckfile"
)

// =============================================================================
// STARTER CONTENT
// =============================================================================

const starterSlides = `# %s

Built with rigdeck. Edit this file and watch the deck reload.

---

## How slides work

- one slide per ` + "`---`" + ` rule
- regular markdown everywhere
- a slide holding a lone code fence renders as highlighted code

---

` + "```go" + `
func main() {
	fmt.Println("hello from rigdeck")
}
` + "```" + `
`

const starterMenu = `- Overview
- title: Getting started
  href: "#start"
- title: Reference
  caret: true
  children:
    - title: Deck file
      href: "#deckfile"
    - title: Slides
      href: "#slides"
`

// =============================================================================
// INIT WIZARD
// =============================================================================

// runInit scaffolds a starter deck in the target directory, asking a few
// questions first. Existing files stop it unless --force is set.
func runInit(opts cliArgs) error {
	dir := opts.Path
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating deck directory: %w", err)
	}

	deckPath := filepath.Join(dir, "deck.toml")
	if !opts.Force {
		if _, err := os.Stat(deckPath); err == nil {
			return fmt.Errorf("%s already exists; pass --force to overwrite", deckPath)
		}
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}

	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	defer line.Close()

	fmt.Println(titleStyle.Render("rigdeck init"))
	fmt.Println(counterStyle.Render("scaffolding a deck in " + abs))
	fmt.Println()

	title, err := ask(line, "Deck title", filepath.Base(abs))
	if err != nil {
		return abortInit(err)
	}
	slidesName, err := ask(line, "Slides file", "slides.md")
	if err != nil {
		return abortInit(err)
	}
	seconds, err := askInt(line, "Autoplay interval in seconds (0 disables)", 5)
	if err != nil {
		return abortInit(err)
	}
	withMenu, err := askBool(line, "Add a navigation menu", true)
	if err != nil {
		return abortInit(err)
	}

	deck := deckfile.Default()
	deck.Title = title
	deck.Slides = slidesName
	if seconds <= 0 {
		deck.Carousel.Ride = "off"
		deck.Carousel.IntervalMS = 0
	} else {
		deck.Carousel.IntervalMS = seconds * 1000
	}
	if withMenu {
		deck.Menu = "menu.yaml"
	} else {
		deck.Menu = ""
	}

	if err := deckfile.Save(deck, deckPath); err != nil {
		return err
	}
	created := []string{deckPath}

	slidesPath := filepath.Join(dir, slidesName)
	wrote, err := writeStarter(slidesPath, fmt.Sprintf(starterSlides, title), opts.Force)
	if err != nil {
		return err
	}
	if wrote {
		created = append(created, slidesPath)
	}

	if withMenu {
		menuPath := filepath.Join(dir, "menu.yaml")
		wrote, err := writeStarter(menuPath, starterMenu, opts.Force)
		if err != nil {
			return err
		}
		if wrote {
			created = append(created, menuPath)
		}
	}

	fmt.Println()
	for _, path := range created {
		fmt.Println(statusStyle.Render("created " + path))
	}
	fmt.Println()
	fmt.Println("Play it with: rigdeck " + dir)
	return nil
}

// abortInit turns a Ctrl+C or EOF during a prompt into a quiet exit;
// nothing has been written yet at that point.
func abortInit(err error) error {
	if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
		fmt.Println()
		fmt.Println(counterStyle.Render("init aborted, nothing written"))
		return nil
	}
	return err
}

// writeStarter creates a content file. An existing file is kept unless
// --force is set, so starter content does not clobber slides someone
// already wrote.
func writeStarter(path, content string, force bool) (bool, error) {
	if _, err := os.Stat(path); err == nil && !force {
		fmt.Println(counterStyle.Render("kept existing " + path))
		return false, nil
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	return true, nil
}

// =============================================================================
// PROMPT HELPERS
// =============================================================================

// ask prompts with a default that an empty answer accepts.
func ask(line *liner.State, prompt, fallback string) (string, error) {
	input, err := line.Prompt(fmt.Sprintf("%s [%s]: ", prompt, fallback))
	if err != nil {
		return "", err
	}
	input = strings.TrimSpace(input)
	if input == "" {
		return fallback, nil
	}
	return input, nil
}

func askInt(line *liner.State, prompt string, fallback int) (int, error) {
	for {
		input, err := ask(line, prompt, strconv.Itoa(fallback))
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(input)
		if err != nil {
			fmt.Println(problemStyle.Render("please enter a number"))
			continue
		}
		return n, nil
	}
}

func askBool(line *liner.State, prompt string, fallback bool) (bool, error) {
	hint := "Y/n"
	if !fallback {
		hint = "y/N"
	}
	input, err := ask(line, prompt, hint)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(input) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	default:
		return fallback, nil
	}
}
