// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package slides

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestRenderMarkdownSlide(t *testing.T) {
	r := NewRenderer(60)
	out := r.Render(Slide{Title: "Hello", Body: "# Hello\n\nSome plain body text."})

	if !strings.Contains(out, "Hello") {
		t.Errorf("rendered slide missing heading text:\n%s", out)
	}
	if !strings.Contains(out, "body text") {
		t.Errorf("rendered slide missing paragraph text:\n%s", out)
	}
	if strings.HasSuffix(out, "\n") {
		t.Error("rendered slide keeps a trailing newline")
	}
}

func TestRenderCodeSlideDirect(t *testing.T) {
	body := "```go\npackage main\n\nfunc main() {}\n```"
	r := NewRenderer(60)
	out := r.Render(Slide{Body: body})

	if !strings.Contains(out, "package") {
		t.Errorf("code slide missing code text:\n%s", out)
	}
	if !strings.Contains(out, " go ") {
		t.Errorf("code slide missing language badge:\n%s", out)
	}
	if !strings.Contains(out, "   1 ") {
		t.Errorf("code slide missing line numbers:\n%s", out)
	}
	if !strings.Contains(out, "╭") {
		t.Errorf("code slide missing frame:\n%s", out)
	}
}

func TestRenderMixedBodyUsesMarkdownPath(t *testing.T) {
	body := "# Title\n\n```go\nx := 1\n```\n\ntrailing prose"
	r := NewRenderer(60)
	out := r.Render(Slide{Body: body})

	// The framed chrome belongs to solo code slides only.
	if strings.Contains(out, "╭") {
		t.Errorf("mixed slide picked up the code frame:\n%s", out)
	}
	if !strings.Contains(out, "trailing prose") {
		t.Errorf("mixed slide missing prose:\n%s", out)
	}
}

func TestCodeBadgeOnlyWhenDeclared(t *testing.T) {
	declared := Code("go", "x := 1", 60)
	if !strings.Contains(declared, " go ") {
		t.Errorf("declared language missing from badge:\n%s", declared)
	}

	bare := Code("", "x := 1", 60)
	if strings.Contains(bare, " go ") {
		t.Errorf("undeclared language grew a badge:\n%s", bare)
	}
}

func TestCodeClampsWidth(t *testing.T) {
	out := Code("go", "const answer = 42 // the long tail of this line keeps going well past any narrow terminal", 30)
	for _, line := range strings.Split(out, "\n") {
		if w := lipgloss.Width(line); w > 30 {
			t.Errorf("line width = %d, want <= 30: %q", w, line)
		}
	}
}

func TestCodeHighlightFallsBackToPlainText(t *testing.T) {
	out := Code("no-such-language", "plain words here", 60)
	if !strings.Contains(out, "plain") {
		t.Errorf("fallback lost the code text:\n%s", out)
	}
}

func TestRendererWidthClamp(t *testing.T) {
	r := NewRenderer(5)
	if got := r.Width(); got != minRenderWidth {
		t.Errorf("Width() = %d, want clamp to %d", got, minRenderWidth)
	}

	r.SetWidth(100)
	if got := r.Width(); got != 100 {
		t.Errorf("Width() after SetWidth = %d, want 100", got)
	}
}

func TestItemsBuildsDeck(t *testing.T) {
	deck := []Slide{
		{Title: "Intro", Body: "# Intro\n\nwelcome"},
		{Body: "untitled body"},
	}
	items := Items(NewRenderer(60), deck)

	if len(items) != 2 {
		t.Fatalf("Items returned %d items, want 2", len(items))
	}
	if items[0].AltText != "Intro" {
		t.Errorf("item 0 alt text = %q, want %q", items[0].AltText, "Intro")
	}
	if items[1].AltText != "slide 2" {
		t.Errorf("item 1 alt text = %q, want %q", items[1].AltText, "slide 2")
	}
	for i, item := range items {
		if item.Source == "" {
			t.Errorf("item %d has empty source", i)
		}
	}
}
