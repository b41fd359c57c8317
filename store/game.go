package store

import (
	"database/sql"
	"fmt"

	chess "github.com/rookwing/chesscore"
	"github.com/rookwing/chesscore/blob"
)

// GameRecord is the header metadata stored alongside a packed game.
type GameRecord struct {
	ID          int64
	White       string
	Black       string
	Event       string
	Site        string
	Annotator   string
	Round       string
	Date        string
	Result      string
	StartFEN    string
}

// SaveGame canonicalizes the record's player/event/site/annotator names
// (select-or-insert), packs g's move tree, and inserts one game row, all
// inside a single transaction.
func (s *Store) SaveGame(rec GameRecord, g *chess.Game) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireWritable(); err != nil {
		return 0, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("store: begin: %w", err)
	}
	defer tx.Rollback()

	whiteID, err := selectOrInsert(tx, "player", rec.White)
	if err != nil {
		return 0, err
	}
	blackID, err := selectOrInsert(tx, "player", rec.Black)
	if err != nil {
		return 0, err
	}
	var eventID, siteID, annotatorID sql.NullInt64
	if rec.Event != "" {
		id, err := selectOrInsert(tx, "event", rec.Event)
		if err != nil {
			return 0, err
		}
		eventID = sql.NullInt64{Int64: id, Valid: true}
	}
	if rec.Site != "" {
		id, err := selectOrInsert(tx, "site", rec.Site)
		if err != nil {
			return 0, err
		}
		siteID = sql.NullInt64{Int64: id, Valid: true}
	}
	if rec.Annotator != "" {
		id, err := selectOrInsert(tx, "annotator", rec.Annotator)
		if err != nil {
			return 0, err
		}
		annotatorID = sql.NullInt64{Int64: id, Valid: true}
	}

	movetext, annotations, err := EncodeMoves(g)
	if err != nil {
		return 0, fmt.Errorf("store: encode: %w", err)
	}

	res, err := tx.Exec(
		`INSERT INTO game (white_id, black_id, event_id, site_id, annotator_id,
			round, date, result, start_fen, movetext, annotations)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		whiteID, blackID, eventID, siteID, annotatorID,
		rec.Round, rec.Date, rec.Result, rec.StartFEN,
		movetext.Bytes(), annotations.Bytes(),
	)
	if err != nil {
		return 0, fmt.Errorf("store: insert game: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("store: commit: %w", err)
	}
	return id, nil
}

// LoadGame reads game id and replays it back into a *chess.Game through
// legal-move lookup; a movetext that does not replay fails with an error.
// It does not compare the result against anything.
func (s *Store) LoadGame(id int64) (GameRecord, *chess.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireOpen(); err != nil {
		return GameRecord{}, nil, err
	}

	var rec GameRecord
	var whiteID, blackID int64
	var eventID, siteID, annotatorID sql.NullInt64
	var movetext, annotations []byte
	row := s.db.QueryRow(
		`SELECT white_id, black_id, event_id, site_id, annotator_id,
			round, date, result, start_fen, movetext, annotations
			FROM game WHERE id = ?`, id)
	if err := row.Scan(&whiteID, &blackID, &eventID, &siteID, &annotatorID,
		&rec.Round, &rec.Date, &rec.Result, &rec.StartFEN, &movetext, &annotations); err != nil {
		return GameRecord{}, nil, fmt.Errorf("store: load game %d: %w", id, err)
	}
	rec.ID = id
	rec.White, _ = nameByID(s.db, "player", whiteID)
	rec.Black, _ = nameByID(s.db, "player", blackID)
	if eventID.Valid {
		rec.Event, _ = nameByID(s.db, "event", eventID.Int64)
	}
	if siteID.Valid {
		rec.Site, _ = nameByID(s.db, "site", siteID.Int64)
	}
	if annotatorID.Valid {
		rec.Annotator, _ = nameByID(s.db, "annotator", annotatorID.Int64)
	}

	mb := blob.NewOwnedCopy(movetext)
	ab := blob.NewOwnedCopy(annotations)
	g, err := DecodeMoves(mb, ab, rec.StartFEN)
	if err != nil {
		return GameRecord{}, nil, fmt.Errorf("store: decode game %d: %w", id, err)
	}
	return rec, g, nil
}

func nameByID(db *sql.DB, table string, id int64) (string, error) {
	var name string
	err := db.QueryRow(fmt.Sprintf("SELECT name FROM %s WHERE id = ?", table), id).Scan(&name)
	return name, err
}
