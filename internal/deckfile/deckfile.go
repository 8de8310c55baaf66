// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package deckfile loads and validates deck description files for rigdeck.
//
// A deck file names the slide and menu sources and tunes the carousel, nav
// menu, and chrome. TOML is the native format with JSON accepted as a
// fallback, and RIGDECK_* environment variables override both.
package deckfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/rigdeck/carousel"
	"github.com/jeranaias/rigdeck/navmenu"
	"github.com/jeranaias/rigdeck/styles"
)

// =============================================================================
// ERRORS
// =============================================================================

// ErrNoDeck is returned by Discover when a directory holds no deck file.
var ErrNoDeck = errors.New("no deck file found")

// =============================================================================
// DECK STRUCTURES
// =============================================================================

// Deck is the complete description of one presentation.
type Deck struct {
	// Version is the deck file format version.
	Version string `toml:"version" json:"version"`
	// Title is shown in the demo header.
	Title string `toml:"title" json:"title"`
	// Slides is the markdown deck path, relative to the deck file.
	Slides string `toml:"slides" json:"slides"`
	// Menu is the optional YAML menu tree path, relative to the deck file.
	Menu string `toml:"menu" json:"menu"`

	Carousel CarouselConfig  `toml:"carousel" json:"carousel"`
	Nav      NavConfig       `toml:"nav" json:"nav"`
	UI       UIConfig        `toml:"ui" json:"ui"`
	Captions []CaptionConfig `toml:"caption" json:"caption"`

	// dir is the deck file's directory, set by Load for path resolution.
	dir string
}

// CarouselConfig tunes the slide carousel.
type CarouselConfig struct {
	// IntervalMS is the autoplay interval in milliseconds. 0 disables.
	IntervalMS int `toml:"interval_ms" json:"interval_ms"`
	// Ride picks the autoplay mode: "carousel" cycles from start, "on-next"
	// waits for the first manual advance, "off" disables autoplay outright.
	Ride string `toml:"ride" json:"ride"`
	// Pause picks the hover behavior: "hover" or "never".
	Pause string `toml:"pause" json:"pause"`
	// Keyboard enables left/right arrow handling.
	Keyboard bool `toml:"keyboard" json:"keyboard"`
	// Indicators shows the clickable position dots.
	Indicators bool `toml:"indicators" json:"indicators"`
	// Controls shows the previous/next arrow zones.
	Controls bool `toml:"controls" json:"controls"`
	// Slide animates transitions. When false slides swap instantly.
	Slide bool `toml:"slide" json:"slide"`
	// FadeMS is the transition window in milliseconds.
	FadeMS int `toml:"fade_ms" json:"fade_ms"`
}

// NavConfig tunes the navigation menu.
type NavConfig struct {
	// Orientation is "vertical" or "horizontal".
	Orientation string `toml:"orientation" json:"orientation"`
	// Caret draws deploy carets on branches.
	Caret bool `toml:"caret" json:"caret"`
	// CaretGlyph overrides the caret with a literal glyph when non-empty.
	CaretGlyph string `toml:"caret_glyph" json:"caret_glyph"`
	// Active is the slug marked current at startup.
	Active string `toml:"active" json:"active"`
	// Deploy is the branch chain opened at startup, outermost first.
	Deploy []string `toml:"deploy" json:"deploy"`
}

// UIConfig tunes the demo chrome.
type UIConfig struct {
	// Theme is "dark", "light", or "auto".
	Theme string `toml:"theme" json:"theme"`
	// Unicode is "auto", "always", or "never" and picks the glyph set.
	Unicode string `toml:"unicode" json:"unicode"`
	// Width caps the render width. 0 follows the terminal.
	Width int `toml:"width" json:"width"`
}

// CaptionConfig attaches a caption to a slide by 1-based position.
type CaptionConfig struct {
	Slide  int    `toml:"slide" json:"slide"`
	Header string `toml:"header" json:"header"`
	Text   string `toml:"text" json:"text"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns a Deck with sensible default values.
func Default() *Deck {
	return &Deck{
		Version: "1",
		Slides:  "slides.md",

		Carousel: CarouselConfig{
			IntervalMS: 5000,
			Ride:       "carousel",
			Pause:      "hover",
			Keyboard:   true,
			Indicators: true,
			Controls:   true,
			Slide:      true,
			FadeMS:     600,
		},

		Nav: NavConfig{
			Orientation: "vertical",
			Caret:       true,
		},

		UI: UIConfig{
			Theme:   "auto",
			Unicode: "auto",
		},
	}
}

// =============================================================================
// PATH HELPERS
// =============================================================================

// deckNames are the file names Discover probes, in order.
var deckNames = []string{"deck.toml", "deck.json", "rigdeck.toml"}

// Discover finds the deck file in a directory.
func Discover(dir string) (string, error) {
	for _, name := range deckNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%s: %w", dir, ErrNoDeck)
}

// SlidesPath resolves the slide source against the deck file's directory.
func (d *Deck) SlidesPath() string {
	return d.resolve(d.Slides)
}

// MenuPath resolves the menu source against the deck file's directory.
// Empty when the deck has no menu.
func (d *Deck) MenuPath() string {
	if d.Menu == "" {
		return ""
	}
	return d.resolve(d.Menu)
}

func (d *Deck) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) || d.dir == "" {
		return path
	}
	return filepath.Join(d.dir, path)
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load reads a deck file, layering it over defaults. JSON is detected by
// extension; anything else decodes as TOML. Environment overrides apply
// after the file, and the result is validated before returning.
func Load(path string) (*Deck, error) {
	deck := Default()

	if strings.HasSuffix(path, ".json") {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading deck file: %w", err)
		}
		if err := json.Unmarshal(data, deck); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", path, err)
		}
	} else {
		if _, err := toml.DecodeFile(path, deck); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", path, err)
		}
	}

	deck.dir = filepath.Dir(path)
	deck.ApplyEnvOverrides()
	deck.migrate()
	deck.fillDefaults()
	if err := deck.Validate(); err != nil {
		return nil, fmt.Errorf("invalid deck file %s: %w", path, err)
	}
	return deck, nil
}

// fillDefaults patches empty fields so partial deck files stay usable.
// Decoding already lands on top of Default(), so this only matters for
// fields a file explicitly blanked.
func (d *Deck) fillDefaults() {
	defaults := Default()

	if d.Version == "" {
		d.Version = defaults.Version
	}
	if d.Slides == "" {
		d.Slides = defaults.Slides
	}
	if d.Carousel.Ride == "" {
		d.Carousel.Ride = defaults.Carousel.Ride
	}
	if d.Carousel.Pause == "" {
		d.Carousel.Pause = defaults.Carousel.Pause
	}
	if d.Carousel.FadeMS == 0 {
		d.Carousel.FadeMS = defaults.Carousel.FadeMS
	}
	if d.Nav.Orientation == "" {
		d.Nav.Orientation = defaults.Nav.Orientation
	}
	if d.UI.Theme == "" {
		d.UI.Theme = defaults.UI.Theme
	}
	if d.UI.Unicode == "" {
		d.UI.Unicode = defaults.UI.Unicode
	}
}

// migrate normalizes legacy spellings before validation.
func (d *Deck) migrate() {
	d.Carousel.Ride = strings.ToLower(d.Carousel.Ride)
	d.Carousel.Pause = strings.ToLower(d.Carousel.Pause)
	d.Nav.Orientation = strings.ToLower(d.Nav.Orientation)
	d.UI.Theme = strings.ToLower(d.UI.Theme)
	d.UI.Unicode = strings.ToLower(d.UI.Unicode)

	// Older decks spelled autoplay as a boolean.
	switch d.Carousel.Ride {
	case "true", "auto":
		d.Carousel.Ride = "carousel"
	case "false":
		d.Carousel.Ride = "off"
	}
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save writes the deck as TOML with owner-only permissions.
func Save(d *Deck, path string) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("creating deck file: %w", err)
	}
	defer file.Close()

	if err := os.Chmod(path, 0600); err != nil {
		return fmt.Errorf("setting deck file permissions: %w", err)
	}

	fmt.Fprintln(file, "# rigdeck deck file")
	fmt.Fprintln(file, "# Generated by rigdeck init - edit freely")
	fmt.Fprintln(file, "")

	if err := toml.NewEncoder(file).Encode(d); err != nil {
		return fmt.Errorf("encoding deck: %w", err)
	}
	return nil
}

// SaveJSON writes the deck as JSON atomically.
func SaveJSON(d *Deck, path string) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding deck: %w", err)
	}
	if err := atomicWrite(path, data, 0600); err != nil {
		return fmt.Errorf("writing deck file: %w", err)
	}
	return nil
}

// atomicWrite lands data via a temp file and rename so a crash mid-write
// leaves either the old deck or the new one, never a torn file.
func atomicWrite(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	f, err := os.CreateTemp(dir, ".deck-")
	if err != nil {
		return err
	}
	tmp := f.Name()

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Chmod(tmp, perm); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError names one bad field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors collects every validation failure in a deck.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate checks every tunable and returns the full error list.
func (d *Deck) Validate() error {
	var errs ValidateErrors

	if d.Slides == "" {
		errs = append(errs, ValidationError{
			Field:   "slides",
			Message: "deck needs a slide source",
		})
	}

	validRides := map[string]bool{"carousel": true, "on-next": true, "off": true}
	if !validRides[d.Carousel.Ride] {
		errs = append(errs, ValidationError{
			Field:   "carousel.ride",
			Message: fmt.Sprintf("invalid mode '%s', must be one of: carousel, on-next, off", d.Carousel.Ride),
		})
	}

	validPauses := map[string]bool{"hover": true, "never": true}
	if !validPauses[d.Carousel.Pause] {
		errs = append(errs, ValidationError{
			Field:   "carousel.pause",
			Message: fmt.Sprintf("invalid mode '%s', must be one of: hover, never", d.Carousel.Pause),
		})
	}

	if d.Carousel.IntervalMS < 0 || d.Carousel.IntervalMS > 3600000 {
		errs = append(errs, ValidationError{
			Field:   "carousel.interval_ms",
			Message: fmt.Sprintf("must be 0-3600000, got %d", d.Carousel.IntervalMS),
		})
	}

	if d.Carousel.FadeMS < 0 || d.Carousel.FadeMS > 10000 {
		errs = append(errs, ValidationError{
			Field:   "carousel.fade_ms",
			Message: fmt.Sprintf("must be 0-10000, got %d", d.Carousel.FadeMS),
		})
	}

	validOrientations := map[string]bool{"vertical": true, "horizontal": true}
	if !validOrientations[d.Nav.Orientation] {
		errs = append(errs, ValidationError{
			Field:   "nav.orientation",
			Message: fmt.Sprintf("invalid orientation '%s', must be vertical or horizontal", d.Nav.Orientation),
		})
	}

	validThemes := map[string]bool{"dark": true, "light": true, "auto": true}
	if !validThemes[d.UI.Theme] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: dark, light, auto", d.UI.Theme),
		})
	}

	validUnicode := map[string]bool{"auto": true, "always": true, "never": true}
	if !validUnicode[d.UI.Unicode] {
		errs = append(errs, ValidationError{
			Field:   "ui.unicode",
			Message: fmt.Sprintf("invalid value '%s', must be one of: auto, always, never", d.UI.Unicode),
		})
	}

	if d.UI.Width < 0 {
		errs = append(errs, ValidationError{
			Field:   "ui.width",
			Message: "must be non-negative",
		})
	}

	for i, caption := range d.Captions {
		if caption.Slide < 1 {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("caption[%d].slide", i),
				Message: fmt.Sprintf("slide positions are 1-based, got %d", caption.Slide),
			})
		}
		if caption.Header == "" && caption.Text == "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("caption[%d]", i),
				Message: "caption needs a header or text",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the deck.
//
// Supported environment variables:
//   - RIGDECK_SLIDES: overrides the slide source path
//   - RIGDECK_MENU: overrides the menu source path
//   - RIGDECK_INTERVAL_MS: overrides carousel.interval_ms
//   - RIGDECK_RIDE: overrides carousel.ride
//   - RIGDECK_THEME: overrides ui.theme
//   - RIGDECK_UNICODE: overrides ui.unicode
func (d *Deck) ApplyEnvOverrides() {
	if slides := os.Getenv("RIGDECK_SLIDES"); slides != "" {
		d.Slides = slides
	}
	if menu := os.Getenv("RIGDECK_MENU"); menu != "" {
		d.Menu = menu
	}
	if interval := os.Getenv("RIGDECK_INTERVAL_MS"); interval != "" {
		if ms, err := strconv.Atoi(interval); err == nil {
			d.Carousel.IntervalMS = ms
		}
	}
	if ride := os.Getenv("RIGDECK_RIDE"); ride != "" {
		d.Carousel.Ride = ride
	}
	if theme := os.Getenv("RIGDECK_THEME"); theme != "" {
		d.UI.Theme = theme
	}
	if unicode := os.Getenv("RIGDECK_UNICODE"); unicode != "" {
		d.UI.Unicode = unicode
	}
}

// =============================================================================
// COMPONENT BRIDGES
// =============================================================================

// Interval converts the autoplay tuning to a duration. Ride "off" wins
// over any interval.
func (c CarouselConfig) Interval() time.Duration {
	if c.Ride == "off" {
		return 0
	}
	return time.Duration(c.IntervalMS) * time.Millisecond
}

// Fade converts the transition window to a duration.
func (c CarouselConfig) Fade() time.Duration {
	return time.Duration(c.FadeMS) * time.Millisecond
}

// RideMode maps the ride string onto the carousel's autoplay modes.
func (c CarouselConfig) RideMode() carousel.Ride {
	if c.Ride == "on-next" {
		return carousel.RideOnNext
	}
	return carousel.RideCarousel
}

// PauseMode maps the pause string onto the carousel's hover modes.
func (c CarouselConfig) PauseMode() carousel.Pause {
	if c.Pause == "never" {
		return carousel.PauseNever
	}
	return carousel.PauseHover
}

// OrientationMode maps the orientation string onto the menu's layouts.
func (n NavConfig) OrientationMode() navmenu.Orientation {
	if n.Orientation == "horizontal" {
		return navmenu.Horizontal
	}
	return navmenu.Vertical
}

// CaretMode maps the caret tuning onto the menu's caret variants.
func (n NavConfig) CaretMode() navmenu.Caret {
	if n.CaretGlyph != "" {
		return navmenu.CaretWith(n.CaretGlyph)
	}
	if n.Caret {
		return navmenu.CaretOn
	}
	return navmenu.CaretOff
}

// Glyphs picks the glyph set. unicodeOK reports what the terminal can
// actually draw and only matters in "auto".
func (u UIConfig) Glyphs(unicodeOK bool) styles.GlyphSet {
	switch u.Unicode {
	case "always":
		return styles.UnicodeGlyphs
	case "never":
		return styles.ASCIIGlyphs
	default:
		if unicodeOK {
			return styles.UnicodeGlyphs
		}
		return styles.ASCIIGlyphs
	}
}
