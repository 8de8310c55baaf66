// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Command rigdeck plays a deck in the terminal: it loads the deck file,
// builds the slide carousel and the navigation menu, and runs them in a
// full-screen program with autoplay, pointer support, and hot reload.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Build-time variables, set via ldflags.
var (
	Version   = "0.4.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// =============================================================================
// COMMANDS
// =============================================================================

type command int

const (
	cmdRun command = iota
	cmdInit
	cmdRecent
	cmdVersion
	cmdHelp
)

// cliArgs carries everything the flag pass extracted from the command line.
type cliArgs struct {
	// Path is the deck file or directory to act on.
	Path string
	// Width caps the render width, overriding the deck file.
	Width int
	// NoWatch disables hot reload.
	NoWatch bool
	// NoHistory skips restoring and saving view state.
	NoHistory bool
	// Force lets init overwrite files that already exist.
	Force bool
	// Raw is everything left after the command word.
	Raw []string
}

// parse splits args into a command and its options. The first non-flag
// token picks the command; a token that is no known command is treated
// as a deck path for the default run command.
func parse(args []string) (command, cliArgs) {
	rest, opts := parseFlags(args)

	if len(rest) == 0 {
		opts.Path = "."
		return cmdRun, opts
	}

	switch strings.ToLower(rest[0]) {
	case "run", "play":
		opts.Raw = rest[1:]
	case "init", "new":
		opts.Raw = rest[1:]
		opts.Path = firstOr(opts.Raw, ".")
		return cmdInit, opts
	case "recent":
		opts.Raw = rest[1:]
		return cmdRecent, opts
	case "version", "-v", "--version":
		return cmdVersion, opts
	case "help", "-h", "--help":
		return cmdHelp, opts
	default:
		opts.Raw = rest
	}

	opts.Path = firstOr(opts.Raw, ".")
	return cmdRun, opts
}

// parseFlags strips option flags from args, in both --flag and
// --flag=value forms, and returns the rest in order.
func parseFlags(args []string) ([]string, cliArgs) {
	var opts cliArgs
	var rest []string

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--width":
			if i+1 < len(args) {
				i++
				opts.Width, _ = strconv.Atoi(args[i])
			}
		case strings.HasPrefix(arg, "--width="):
			opts.Width, _ = strconv.Atoi(strings.TrimPrefix(arg, "--width="))
		case arg == "--no-watch":
			opts.NoWatch = true
		case arg == "--no-history":
			opts.NoHistory = true
		case arg == "--force":
			opts.Force = true
		default:
			rest = append(rest, arg)
		}
	}
	return rest, opts
}

func firstOr(args []string, fallback string) string {
	if len(args) > 0 {
		return args[0]
	}
	return fallback
}

// =============================================================================
// USAGE
// =============================================================================

const usageText = `rigdeck %s - terminal deck player

USAGE:
  rigdeck [deck]              play the deck in the current directory
  rigdeck run [deck]          same, spelled out
  rigdeck init [dir]          scaffold a starter deck
  rigdeck recent              list recently played decks
  rigdeck version             print version information
  rigdeck help                show this help

OPTIONS:
  --width <cols>              cap the render width
  --no-watch                  disable hot reload
  --no-history                do not restore or save view state
  --force                     let init overwrite existing files

KEYS WHILE PLAYING:
  left / right                previous / next slide
  home / end                  first / last slide
  up/k, down/j                move through the menu
  enter                       activate the focused menu row
  ?                           toggle the full key list
  q                           quit
`

func printUsage() {
	fmt.Printf(usageText, Version)
}

func printVersion() {
	fmt.Printf("rigdeck version %s\n", Version)
	fmt.Printf("Git commit: %s\n", GitCommit)
	fmt.Printf("Build date: %s\n", BuildDate)
}

// =============================================================================
// MAIN
// =============================================================================

func main() {
	cmd, opts := parse(os.Args[1:])

	var err error
	switch cmd {
	case cmdInit:
		err = runInit(opts)
	case cmdRecent:
		err = runRecent(opts)
	case cmdVersion:
		printVersion()
	case cmdHelp:
		printUsage()
	default:
		err = runDeck(opts)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
