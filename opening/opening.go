// Package opening classifies a game's opening (ECO code, opening name,
// variation name) against the opening_tree table populated by package
// store (§4.8, C8), by replaying the game's moves from the start and
// walking the tree one Zobrist hash at a time.
package opening

import (
	"database/sql"
	"fmt"

	chess "github.com/rookwing/chesscore"
)

// Classification is the opening identified for a position.
type Classification struct {
	ECO       string
	Opening   string
	Variation string
	Plies     int // number of half-moves matched
}

// Classifier looks up classifications in an opening_tree table.
type Classifier struct {
	db *sql.DB
}

// NewClassifier wraps an already-open database handle.
func NewClassifier(db *sql.DB) *Classifier {
	return &Classifier{db: db}
}

// Classify walks moves from the standard starting position (or startFEN,
// if non-empty), looking up each resulting position's Zobrist hash in the
// opening tree. It performs two passes per the original engine's lookup
// strategy: first requiring an exact match on last_move_flag (the tree
// entry that marks "this is the named line's final move", so two
// transpositions sharing a prefix don't get the wrong name from a
// mid-line entry with the same hash), then falling back to any match
// ignoring that flag. It stops at the first position with no tree entry
// at all, returning the deepest classification found.
func (c *Classifier) Classify(startFEN string, moves []chess.Move) (Classification, error) {
	var pos *chess.Position
	if startFEN == "" {
		pos = chess.StartingPosition()
	} else {
		p, _, err := chess.ParseFEN(startFEN)
		if err != nil {
			return Classification{}, fmt.Errorf("opening: %w", err)
		}
		pos = p
	}

	var best Classification
	for i, m := range moves {
		undo := chess.MakeMove(pos, m)
		_ = undo
		hash := pos.Hash()
		isLast := i == len(moves)-1

		cl, found, err := c.lookup(hash, true)
		if err != nil {
			return Classification{}, err
		}
		if !found {
			cl, found, err = c.lookup(hash, false)
			if err != nil {
				return Classification{}, err
			}
		}
		if !found {
			break
		}
		cl.Plies = i + 1
		best = cl
		if isLast {
			break
		}
	}
	return best, nil
}

func (c *Classifier) lookup(hash uint64, requireLastMove bool) (Classification, bool, error) {
	query := `SELECT eco, opening, variation FROM opening_tree WHERE hash_key = ?`
	args := []interface{}{int64(hash)}
	if requireLastMove {
		query += ` AND last_move_flag = 1`
	}
	query += ` LIMIT 1`

	row := c.db.QueryRow(query, args...)
	var cl Classification
	var eco, name, variation sql.NullString
	if err := row.Scan(&eco, &name, &variation); err != nil {
		if err == sql.ErrNoRows {
			return Classification{}, false, nil
		}
		return Classification{}, false, fmt.Errorf("opening: lookup: %w", err)
	}
	cl.ECO = eco.String
	cl.Opening = name.String
	cl.Variation = variation.String
	return cl, true, nil
}
