// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package navmenu

import (
	"github.com/jeranaias/rigdeck/internal/textutil"
	"github.com/jeranaias/rigdeck/styles"
)

// =============================================================================
// ENTRIES
// =============================================================================

// Entry is one element of a menu description. The concrete variants are
// Text, Item, Branch, and Group; Reduce normalizes any mix of them into
// a uniform Node tree.
type Entry interface {
	menuEntry()
}

// Text is a bare label. It reduces to a leaf with no attributes.
type Text string

// Item is a leaf with attributes.
type Item struct {
	Title string
	Href  string
	Attrs map[string]string
}

// Branch is an entry with children of its own.
type Branch struct {
	Title    string
	Href     string
	Attrs    map[string]string
	Caret    Caret
	Children []Entry
}

// Group splices a sequence of entries into its parent sequence. Groups
// never appear in the reduced tree; arbitrarily nested groups all
// collapse into the level that holds them.
type Group []Entry

func (Text) menuEntry()   {}
func (Item) menuEntry()   {}
func (Branch) menuEntry() {}
func (Group) menuEntry()  {}

// =============================================================================
// CARET
// =============================================================================

// Caret controls the open/closed marker on a branch row. The zero value
// is unset, which inherits the menu's ambient caret during Reduce.
type Caret struct {
	kind  caretKind
	glyph string
	fn    func(open bool) string
}

type caretKind int

const (
	caretUnset caretKind = iota
	caretOn
	caretOff
	caretGlyph
	caretFunc
)

// CaretOn renders the theme's caret glyphs.
var CaretOn = Caret{kind: caretOn}

// CaretOff suppresses the marker entirely.
var CaretOff = Caret{kind: caretOff}

// CaretWith renders a fixed marker regardless of open state.
func CaretWith(glyph string) Caret {
	return Caret{kind: caretGlyph, glyph: glyph}
}

// CaretBy derives the marker from the open state.
func CaretBy(fn func(open bool) string) Caret {
	return Caret{kind: caretFunc, fn: fn}
}

// IsSet reports whether the caret was set explicitly.
func (c Caret) IsSet() bool {
	return c.kind != caretUnset
}

// Render returns the marker for the given open state. Unset and off
// carets render nothing.
func (c Caret) Render(glyphs styles.GlyphSet, open bool) string {
	switch c.kind {
	case caretOn:
		if open {
			return glyphs.CaretOpen
		}
		return glyphs.CaretClosed
	case caretGlyph:
		return c.glyph
	case caretFunc:
		if c.fn == nil {
			return ""
		}
		return c.fn(open)
	default:
		return ""
	}
}

// =============================================================================
// NODES
// =============================================================================

// Node is one normalized menu node. Leaves have no children; branches
// carry a caret and a child list that went through the same reduction.
type Node struct {
	Title    string
	Slug     string
	Href     string
	Attrs    map[string]string
	Caret    Caret
	Children []Node
}

// IsBranch reports whether the node has children.
func (n Node) IsBranch() bool {
	return len(n.Children) > 0
}

// Find returns the child with the given slug.
func (n Node) Find(slug string) (Node, bool) {
	return findNode(n.Children, slug)
}

func findNode(nodes []Node, slug string) (Node, bool) {
	for _, n := range nodes {
		if n.Slug == slug {
			return n, true
		}
	}
	return Node{}, false
}

// =============================================================================
// REDUCE
// =============================================================================

// Reduce normalizes a heterogeneous entry sequence into a Node tree.
// Text entries become leaves, groups splice their contents into the
// parent sequence, and a branch whose own caret is unset inherits the
// ambient one. Children go through the same reduction, so the result is
// uniform at every level. A branch without children reduces to a leaf
// and inherits no caret.
func Reduce(entries []Entry, ambient Caret) []Node {
	nodes := make([]Node, 0, len(entries))
	for _, entry := range entries {
		switch e := entry.(type) {
		case Text:
			nodes = append(nodes, Node{
				Title: string(e),
				Slug:  textutil.Slug(string(e)),
			})

		case Item:
			nodes = append(nodes, Node{
				Title: e.Title,
				Slug:  textutil.Slug(e.Title),
				Href:  e.Href,
				Attrs: e.Attrs,
			})

		case Branch:
			n := Node{
				Title:    e.Title,
				Slug:     textutil.Slug(e.Title),
				Href:     e.Href,
				Attrs:    e.Attrs,
				Caret:    e.Caret,
				Children: Reduce(e.Children, ambient),
			}
			if len(n.Children) > 0 && !n.Caret.IsSet() {
				n.Caret = ambient
			}
			nodes = append(nodes, n)

		case Group:
			nodes = append(nodes, Reduce(e, ambient)...)
		}
	}
	return nodes
}
