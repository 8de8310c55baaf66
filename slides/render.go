// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package slides

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/rigdeck/carousel"
	"github.com/jeranaias/rigdeck/styles"
)

// minRenderWidth keeps rendering sane when the terminal reports a sliver.
const minRenderWidth = 20

// =============================================================================
// STYLES
// =============================================================================

var (
	// Line number gutter for code slides
	lineNumStyle = lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			Width(4).
			Align(lipgloss.Right).
			MarginRight(1)

	// Language badge above a code slide
	langBadgeStyle = lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			Background(styles.OverlayDim).
			Padding(0, 1).
			Bold(true)

	// Container around a code slide
	codeFrameStyle = lipgloss.NewStyle().
			Background(styles.SurfaceDim).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(styles.Overlay).
			Padding(1, 2)
)

// =============================================================================
// RENDERER
// =============================================================================

// Renderer turns slide bodies into ANSI blocks at a fixed wrap width.
// Markdown goes through glamour; solo code fences go through chroma so
// they pick up line numbers and a language badge. Rendering never fails:
// when a stage errors the raw text comes back instead.
type Renderer struct {
	width int
	md    *glamour.TermRenderer
}

// NewRenderer creates a renderer wrapping at the given width.
func NewRenderer(width int) *Renderer {
	r := &Renderer{}
	r.SetWidth(width)
	return r
}

// Width returns the current wrap width.
func (r *Renderer) Width() int {
	return r.width
}

// SetWidth rebuilds the markdown renderer for a new wrap width. Called on
// terminal resize.
func (r *Renderer) SetWidth(width int) {
	if width < minRenderWidth {
		width = minRenderWidth
	}
	r.width = width

	md, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		// Fall back to raw markdown bodies.
		r.md = nil
		return
	}
	r.md = md
}

// Render produces the slide's visual block.
func (r *Renderer) Render(s Slide) string {
	if language, code, ok := soloFence(s.Body); ok {
		return Code(language, code, r.width)
	}
	return r.markdown(s.Body)
}

// markdown renders a markdown body, returning it untouched when the
// renderer is unavailable or errors.
func (r *Renderer) markdown(body string) string {
	if r.md == nil {
		return body
	}
	rendered, err := r.md.Render(body)
	if err != nil {
		return body
	}
	return strings.TrimRight(rendered, "\n")
}

// =============================================================================
// CODE SLIDES (Chroma-based)
// =============================================================================

// Code highlights a block of code and dresses it as a slide: numbered
// lines, a badge naming the declared language, and a rounded frame capped
// at the given width.
func Code(language, code string, width int) string {
	code = strings.TrimSpace(code)

	resolved := language
	if resolved == "" {
		resolved = detectLanguage(code)
	}
	highlighted := highlight(code, resolved)

	var gutter []string
	for i, line := range strings.Split(highlighted, "\n") {
		gutter = append(gutter, lineNumStyle.Render(strconv.Itoa(i+1))+line)
	}
	body := strings.Join(gutter, "\n")

	// Badge only the language the fence declared; detection stays silent.
	if language != "" {
		body = langBadgeStyle.Render(language) + "\n" + body
	}

	frameWidth := width - 4
	if frameWidth < minRenderWidth {
		frameWidth = minRenderWidth
	}
	return codeFrameStyle.MaxWidth(frameWidth).Render(body)
}

// highlight runs code through chroma and returns ANSI-colored text, or the
// input unchanged when tokenizing or formatting fails.
func highlight(code, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromaStyles.Get("monokai")
	if style == nil {
		style = chromaStyles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}
	return buf.String()
}

// detectLanguage guesses the language of a bare code block.
func detectLanguage(code string) string {
	if lexer := lexers.Analyse(code); lexer != nil {
		return lexer.Config().Name
	}
	return ""
}

// =============================================================================
// DECK ASSEMBLY
// =============================================================================

// Items renders every slide and wraps the results as carousel items. Alt
// text comes from the slide title, falling back to the slide's position so
// an empty render still identifies itself.
func Items(r *Renderer, deck []Slide) []carousel.Item {
	items := make([]carousel.Item, 0, len(deck))
	for i, s := range deck {
		item := carousel.NewItem(r.Render(s))
		item.AltText = s.Title
		if item.AltText == "" {
			item.AltText = fmt.Sprintf("slide %d", i+1)
		}
		items = append(items, item)
	}
	return items
}
