// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package slides turns markdown documents into carousel decks. A deck file
// is ordinary markdown split into slides on `---` rule lines; each slide
// body is rendered to ANSI with glamour, except slides that consist of a
// single fenced code block, which are highlighted directly so they get
// line numbers and a language badge.
package slides

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// =============================================================================
// ERRORS
// =============================================================================

// ErrEmptyDeck is returned by Load when the file parses to zero slides.
var ErrEmptyDeck = errors.New("no slides found")

// =============================================================================
// SLIDE
// =============================================================================

// Slide is one parsed deck entry. Title is taken from the slide's first
// ATX heading and doubles as the carousel item's alt text; Body is the raw
// markdown between rule lines.
type Slide struct {
	Title string
	Body  string
}

// Load reads and parses a deck file.
func Load(path string) ([]Slide, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading deck: %w", err)
	}
	deck := Parse(data)
	if len(deck) == 0 {
		return nil, fmt.Errorf("deck %s: %w", path, ErrEmptyDeck)
	}
	return deck, nil
}

// Parse splits markdown into slides on rule lines (three or more dashes on
// a line of their own). Rules inside fenced code blocks do not split, and
// segments that are all whitespace are dropped.
func Parse(src []byte) []Slide {
	text := strings.ReplaceAll(string(src), "\r\n", "\n")
	lines := strings.Split(text, "\n")

	var deck []Slide
	var current []string
	inFence := false

	flush := func() {
		body := strings.TrimSpace(strings.Join(current, "\n"))
		current = current[:0]
		if body == "" {
			return
		}
		deck = append(deck, Slide{Title: firstHeading(body), Body: body})
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			inFence = !inFence
		}
		if !inFence && isRule(trimmed) {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()

	return deck
}

// isRule reports whether a trimmed line is a slide separator.
func isRule(line string) bool {
	if len(line) < 3 {
		return false
	}
	return strings.Count(line, "-") == len(line)
}

// firstHeading returns the text of the first ATX heading in the body, or
// "" when the slide has none. Headings inside fenced code are ignored so
// a shell comment never becomes a title.
func firstHeading(body string) string {
	inFence := false
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			inFence = !inFence
			continue
		}
		if inFence || !strings.HasPrefix(trimmed, "#") {
			continue
		}
		text := strings.TrimLeft(trimmed, "#")
		if !strings.HasPrefix(text, " ") {
			continue
		}
		return strings.TrimSpace(text)
	}
	return ""
}

// soloFence reports whether the body is exactly one fenced code block and
// returns its language tag and contents.
func soloFence(body string) (language, code string, ok bool) {
	lines := strings.Split(strings.TrimSpace(body), "\n")
	if len(lines) < 2 {
		return "", "", false
	}
	first := strings.TrimSpace(lines[0])
	last := strings.TrimSpace(lines[len(lines)-1])
	if !strings.HasPrefix(first, "```") || last != "```" {
		return "", "", false
	}
	for _, line := range lines[1 : len(lines)-1] {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			return "", "", false
		}
	}
	language = strings.TrimSpace(strings.TrimPrefix(first, "```"))
	code = strings.Join(lines[1:len(lines)-1], "\n")
	return language, code, true
}
