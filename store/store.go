// Package store persists games to a relational database (§4.7, C7). No
// repo in the retrieval pack ships a SQL backend, so this package reaches
// outside the pack for modernc.org/sqlite — a pure-Go, cgo-free driver
// consistent with the rest of this module never requiring a C toolchain.
// Moves and annotations are packed through the blob/Bitstream codec
// (package blob) rather than stored as text, keeping the on-disk
// representation close to the wire Move encoding.
package store

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"

	_ "modernc.org/sqlite"
)

// handleState is the database handle's lifecycle (§4.7 Design Notes):
// closed -> opening -> open[read]|open[read_write] -> closing -> closed.
type handleState int

const (
	stateClosed handleState = iota
	stateOpening
	stateOpenRead
	stateOpenReadWrite
	stateClosing
)

// Store is a handle onto a game database.
type Store struct {
	mu    sync.Mutex
	state handleState
	db    *sql.DB
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS player (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS event (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS site (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS annotator (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS game (
		id INTEGER PRIMARY KEY,
		white_id INTEGER NOT NULL REFERENCES player(id),
		black_id INTEGER NOT NULL REFERENCES player(id),
		event_id INTEGER REFERENCES event(id),
		site_id INTEGER REFERENCES site(id),
		annotator_id INTEGER REFERENCES annotator(id),
		round TEXT,
		date TEXT,
		result TEXT,
		start_fen TEXT,
		movetext BLOB NOT NULL,
		annotations BLOB
	)`,
	`CREATE TABLE IF NOT EXISTS opening_tree (
		id INTEGER PRIMARY KEY,
		hash_key INTEGER NOT NULL,
		last_move_flag INTEGER NOT NULL,
		eco TEXT,
		opening TEXT,
		variation TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_opening_tree_hash ON opening_tree(hash_key, last_move_flag)`,
}

// Open opens (creating if necessary) the sqlite database at path in the
// requested mode.
func Open(path string, readWrite bool) (*Store, error) {
	s := &Store{state: stateOpening}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		s.state = stateClosed
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	if readWrite {
		for _, stmt := range schema {
			if _, err := db.Exec(stmt); err != nil {
				db.Close()
				s.state = stateClosed
				return nil, fmt.Errorf("store: migrate: %w", err)
			}
		}
		s.state = stateOpenReadWrite
	} else {
		s.state = stateOpenRead
	}
	s.db = db
	return s, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == stateClosed {
		return nil
	}
	s.state = stateClosing
	err := s.db.Close()
	s.state = stateClosed
	return err
}

func (s *Store) requireOpen() error {
	if s.state == stateClosed || s.state == stateClosing || s.state == stateOpening {
		return fmt.Errorf("store: handle is not open")
	}
	return nil
}

func (s *Store) requireWritable() error {
	if err := s.requireOpen(); err != nil {
		return err
	}
	if s.state != stateOpenReadWrite {
		return fmt.Errorf("store: handle is read-only")
	}
	return nil
}

// canonicalize trims and case-folds a free-text field for select-or-insert
// matching (player/event/site/annotator names), so "Kasparov, G." and
// "kasparov, g. " resolve to the same row.
func canonicalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// selectOrInsert returns the id of the row in table whose canonicalized
// name column matches name, inserting a new row (storing the original,
// trimmed name) if none exists. Callers serialize calls per table via tx.
func selectOrInsert(tx *sql.Tx, table, name string) (int64, error) {
	trimmed := strings.TrimSpace(name)
	canon := canonicalize(name)
	row := tx.QueryRow(fmt.Sprintf("SELECT id FROM %s WHERE lower(trim(name)) = ?", table), canon)
	var id int64
	if err := row.Scan(&id); err == nil {
		return id, nil
	} else if err != sql.ErrNoRows {
		return 0, fmt.Errorf("store: lookup %s: %w", table, err)
	}
	res, err := tx.Exec(fmt.Sprintf("INSERT INTO %s (name) VALUES (?)", table), trimmed)
	if err != nil {
		return 0, fmt.Errorf("store: insert %s: %w", table, err)
	}
	return res.LastInsertId()
}
