// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package navmenu

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParseYAML decodes a menu description. The wire shape is a sequence
// whose elements are plain labels, nested sequences (spliced into the
// parent during Reduce), or mappings:
//
//	- Home
//	- title: Docs
//	  caret: true
//	  children:
//	    - Install
//	    - title: Guides
//	      children: [Basics, Advanced]
//	- title: Blog
//	  href: https://example.com/blog
//
// Mapping keys other than title, href, caret, and children are kept as
// string attributes. caret accepts a bool or a literal glyph.
func ParseYAML(data []byte) ([]Entry, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing menu: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("menu line %d: top level must be a sequence", root.Line)
	}
	return parseSequence(root)
}

func parseSequence(seq *yaml.Node) ([]Entry, error) {
	entries := make([]Entry, 0, len(seq.Content))
	for _, n := range seq.Content {
		e, err := parseEntry(n)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func parseEntry(n *yaml.Node) (Entry, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return Text(n.Value), nil
	case yaml.SequenceNode:
		sub, err := parseSequence(n)
		if err != nil {
			return nil, err
		}
		return Group(sub), nil
	case yaml.MappingNode:
		return parseMapping(n)
	case yaml.AliasNode:
		return parseEntry(n.Alias)
	}
	return nil, fmt.Errorf("menu line %d: entry must be a label, mapping, or sequence", n.Line)
}

func parseMapping(n *yaml.Node) (Entry, error) {
	var (
		title    string
		href     string
		caret    Caret
		children []Entry
		attrs    map[string]string
	)

	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		switch key.Value {
		case "title":
			title = val.Value

		case "href":
			href = val.Value

		case "caret":
			c, err := parseCaret(val)
			if err != nil {
				return nil, err
			}
			caret = c

		case "children":
			if val.Kind != yaml.SequenceNode {
				return nil, fmt.Errorf("menu line %d: children must be a sequence", val.Line)
			}
			sub, err := parseSequence(val)
			if err != nil {
				return nil, err
			}
			children = sub

		default:
			if val.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("menu line %d: attribute %q must be a scalar", val.Line, key.Value)
			}
			if attrs == nil {
				attrs = make(map[string]string)
			}
			attrs[key.Value] = val.Value
		}
	}

	if title == "" {
		return nil, fmt.Errorf("menu line %d: node needs a title", n.Line)
	}

	if len(children) > 0 {
		return Branch{
			Title:    title,
			Href:     href,
			Attrs:    attrs,
			Caret:    caret,
			Children: children,
		}, nil
	}
	return Item{Title: title, Href: href, Attrs: attrs}, nil
}

// parseCaret accepts a bool (theme glyphs on or off) or a literal glyph.
func parseCaret(val *yaml.Node) (Caret, error) {
	if val.Kind != yaml.ScalarNode {
		return Caret{}, fmt.Errorf("menu line %d: caret must be a bool or a glyph", val.Line)
	}
	var b bool
	if err := val.Decode(&b); err == nil {
		if b {
			return CaretOn, nil
		}
		return CaretOff, nil
	}
	return CaretWith(val.Value), nil
}
