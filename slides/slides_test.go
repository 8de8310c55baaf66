// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package slides

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseSplitsOnRules(t *testing.T) {
	doc := `# One

body one

---

# Two

body two

-----

no heading here
`
	deck := Parse([]byte(doc))
	if len(deck) != 3 {
		t.Fatalf("Parse returned %d slides, want 3", len(deck))
	}

	wantTitles := []string{"One", "Two", ""}
	for i, want := range wantTitles {
		if deck[i].Title != want {
			t.Errorf("slide %d title = %q, want %q", i, deck[i].Title, want)
		}
	}
	if !strings.Contains(deck[0].Body, "body one") {
		t.Errorf("slide 0 body = %q, missing %q", deck[0].Body, "body one")
	}
	if !strings.Contains(deck[2].Body, "no heading here") {
		t.Errorf("slide 2 body = %q, missing %q", deck[2].Body, "no heading here")
	}
}

func TestParseIgnoresRulesInsideFences(t *testing.T) {
	doc := "# Code\n\n```\n---\n```\n\n---\n\n# After\n"
	deck := Parse([]byte(doc))
	if len(deck) != 2 {
		t.Fatalf("Parse returned %d slides, want 2", len(deck))
	}
	if !strings.Contains(deck[0].Body, "---") {
		t.Errorf("fenced rule should stay in slide 0, body = %q", deck[0].Body)
	}
	if deck[1].Title != "After" {
		t.Errorf("slide 1 title = %q, want %q", deck[1].Title, "After")
	}
}

func TestParseSkipsEmptySegments(t *testing.T) {
	doc := "---\n\n# Only\n\n---\n---\n"
	deck := Parse([]byte(doc))
	if len(deck) != 1 {
		t.Fatalf("Parse returned %d slides, want 1", len(deck))
	}
	if deck[0].Title != "Only" {
		t.Errorf("title = %q, want %q", deck[0].Title, "Only")
	}
}

func TestParseEmptyInput(t *testing.T) {
	if deck := Parse(nil); len(deck) != 0 {
		t.Errorf("Parse(nil) returned %d slides, want 0", len(deck))
	}
	if deck := Parse([]byte("\n  \n")); len(deck) != 0 {
		t.Errorf("whitespace-only input returned %d slides, want 0", len(deck))
	}
}

func TestParseUnclosedFence(t *testing.T) {
	doc := "# T\n\n```go\ncode\n---\nstill code"
	deck := Parse([]byte(doc))
	if len(deck) != 1 {
		t.Fatalf("Parse returned %d slides, want 1", len(deck))
	}
	if !strings.Contains(deck[0].Body, "still code") {
		t.Errorf("unclosed fence lost its tail, body = %q", deck[0].Body)
	}
}

func TestParseWindowsLineEndings(t *testing.T) {
	doc := "# A\r\n\r\n---\r\n\r\n# B\r\n"
	deck := Parse([]byte(doc))
	if len(deck) != 2 {
		t.Fatalf("Parse returned %d slides, want 2", len(deck))
	}
	if deck[1].Title != "B" {
		t.Errorf("slide 1 title = %q, want %q", deck[1].Title, "B")
	}
}

func TestFirstHeading(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"top level", "# Top\n\ntext", "Top"},
		{"later heading", "intro line\n\n## Sub", "Sub"},
		{"no space after hash", "#nospace\ntext", ""},
		{"hash inside fence", "```sh\n# comment\n```\ntext", ""},
		{"heading after fence", "```sh\n# comment\n```\n\n# Real", "Real"},
		{"no heading", "plain text only", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := firstHeading(tt.body); got != tt.want {
				t.Errorf("firstHeading(%q) = %q, want %q", tt.body, got, tt.want)
			}
		})
	}
}

func TestSoloFence(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantLang string
		wantCode string
		wantOK   bool
	}{
		{"tagged fence", "```go\na\nb\n```", "go", "a\nb", true},
		{"bare fence", "```\nx\n```", "", "x", true},
		{"empty fence", "```go\n```", "go", "", true},
		{"leading text", "text\n```go\nx\n```", "", "", false},
		{"trailing text", "```go\nx\n```\ntrailing", "", "", false},
		{"two fences", "```go\nx\n```\n```py\ny\n```", "", "", false},
		{"not a fence", "just a paragraph", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lang, code, ok := soloFence(tt.body)
			if ok != tt.wantOK {
				t.Fatalf("soloFence ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if lang != tt.wantLang {
				t.Errorf("language = %q, want %q", lang, tt.wantLang)
			}
			if code != tt.wantCode {
				t.Errorf("code = %q, want %q", code, tt.wantCode)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.md")
	doc := "# First\n\nhello\n\n---\n\n# Second\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	deck, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(deck) != 2 {
		t.Fatalf("Load returned %d slides, want 2", len(deck))
	}
	if deck[0].Title != "First" || deck[1].Title != "Second" {
		t.Errorf("titles = %q, %q, want First, Second", deck[0].Title, deck[1].Title)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.md"))
	if err == nil {
		t.Fatal("Load of a missing file returned nil error")
	}
	if !strings.Contains(err.Error(), "reading deck") {
		t.Errorf("error = %q, want it to mention reading deck", err)
	}
}

func TestLoadEmptyDeck(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.md")
	if err := os.WriteFile(path, []byte("---\n\n---\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if !errors.Is(err, ErrEmptyDeck) {
		t.Errorf("Load error = %v, want ErrEmptyDeck", err)
	}
}
