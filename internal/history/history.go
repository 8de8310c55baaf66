// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history persists last-view state per deck so a presentation
// reopens where it left off: the active slide plus the menu's active and
// deployed slugs. State lives in a small SQLite database keyed by the
// deck file's absolute path.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrNotFound      = errors.New("no saved view")
	ErrDatabaseError = errors.New("database error")
)

// =============================================================================
// SCHEMA
// =============================================================================

const schema = `
CREATE TABLE IF NOT EXISTS meta (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
) WITHOUT ROWID;

-- One row per deck, keyed by absolute deck file path.
CREATE TABLE IF NOT EXISTS views (
    deck_path TEXT PRIMARY KEY,
    slide_index INTEGER NOT NULL,
    nav_active TEXT NOT NULL DEFAULT '',
    nav_deploy TEXT NOT NULL DEFAULT '',
    session_id TEXT NOT NULL,
    saved_at INTEGER NOT NULL  -- Unix nanoseconds
) WITHOUT ROWID;

CREATE INDEX IF NOT EXISTS idx_views_saved_at ON views(saved_at);
`

const initMeta = `
INSERT OR IGNORE INTO meta (key, value) VALUES ('schema_version', '1');
INSERT OR IGNORE INTO meta (key, value) VALUES ('created_at', strftime('%s', 'now'));
`

// =============================================================================
// VIEW
// =============================================================================

// View is the saved state of one deck.
type View struct {
	// DeckPath is the absolute path of the deck file.
	DeckPath string
	// SlideIndex is the carousel position, 0-based.
	SlideIndex int
	// NavActive is the menu's active slug, "" when none.
	NavActive string
	// NavDeploy is the menu's open branch chain, outermost first.
	NavDeploy []string
	// SessionID identifies the run that last wrote the row.
	SessionID string
	// SavedAt is when the row was written.
	SavedAt time.Time
}

// =============================================================================
// STORE
// =============================================================================

// Store is the view-state database. One writer at a time; the connection
// pool is pinned to a single connection the way SQLite wants.
type Store struct {
	db        *sql.DB
	sessionID string
}

// DefaultPath returns the standard history database location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".rigdeck", "history.db"), nil
}

// Open opens or creates the history database at path and stamps the run
// with a fresh session id.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	// SQLite supports one writer; pin the pool to a single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	if _, err := db.Exec(initMeta); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize metadata: %w", err)
	}

	return &Store{
		db:        db,
		sessionID: uuid.New().String(),
	}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SessionID returns this run's identifier.
func (s *Store) SessionID() string {
	return s.sessionID
}

// Save upserts the view state for a deck. The deck path is made absolute
// so later lookups agree regardless of the working directory.
func (s *Store) Save(ctx context.Context, view View) error {
	path, err := filepath.Abs(view.DeckPath)
	if err != nil {
		return fmt.Errorf("resolving deck path: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO views (deck_path, slide_index, nav_active, nav_deploy, session_id, saved_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(deck_path) DO UPDATE SET
			slide_index = excluded.slide_index,
			nav_active = excluded.nav_active,
			nav_deploy = excluded.nav_deploy,
			session_id = excluded.session_id,
			saved_at = excluded.saved_at`,
		path, view.SlideIndex, view.NavActive, joinDeploy(view.NavDeploy),
		s.sessionID, time.Now().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return nil
}

// Load returns the saved view for a deck, or ErrNotFound.
func (s *Store) Load(ctx context.Context, deckPath string) (View, error) {
	path, err := filepath.Abs(deckPath)
	if err != nil {
		return View{}, fmt.Errorf("resolving deck path: %w", err)
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT deck_path, slide_index, nav_active, nav_deploy, session_id, saved_at
		FROM views WHERE deck_path = ?`, path)

	view, err := scanView(row)
	if errors.Is(err, sql.ErrNoRows) {
		return View{}, fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	if err != nil {
		return View{}, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return view, nil
}

// Recent returns saved views newest first, up to limit.
func (s *Store) Recent(ctx context.Context, limit int) ([]View, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT deck_path, slide_index, nav_active, nav_deploy, session_id, saved_at
		FROM views ORDER BY saved_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	var views []View
	for rows.Next() {
		view, err := scanView(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return views, nil
}

// =============================================================================
// ROW HELPERS
// =============================================================================

// scanner covers *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanView(sc scanner) (View, error) {
	var view View
	var deploy string
	var savedAt int64

	if err := sc.Scan(&view.DeckPath, &view.SlideIndex, &view.NavActive,
		&deploy, &view.SessionID, &savedAt); err != nil {
		return View{}, err
	}
	view.NavDeploy = splitDeploy(deploy)
	view.SavedAt = time.Unix(0, savedAt)
	return view, nil
}

// joinDeploy flattens a deploy chain for storage. Slugs never contain a
// slash, so the separator is unambiguous.
func joinDeploy(deploy []string) string {
	return strings.Join(deploy, "/")
}

func splitDeploy(deploy string) []string {
	if deploy == "" {
		return nil
	}
	return strings.Split(deploy, "/")
}
