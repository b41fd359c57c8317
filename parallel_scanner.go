package chesscore

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"regexp"
	"runtime"
	"strings"
	"sync"
)

// ParallelScanner splits a PGN-database stream into per-game chunks (a
// block of tag pairs followed by a block of movetext) and parses each
// chunk's movetext concurrently across a worker pool, the same
// producer/worker-pool shape used for any other bulk line-oriented
// import job. It is line-oriented block splitting, not a real PGN tag
// lexer — quoted values containing "]" or escaped quotes are not handled,
// matching the narrower scope ParseMoveText already declares for
// movetext itself.
type ParallelScanner struct {
	scanr *bufio.Scanner
	err   error
}

// NewParallelScanner returns a scanner that decodes PGN games in parallel.
func NewParallelScanner(r io.Reader) *ParallelScanner {
	return &ParallelScanner{scanr: bufio.NewScanner(r)}
}

type scanState int

const (
	notInPGN scanState = iota
	inTagPairs
	inMoves
)

var tagPairRe = regexp.MustCompile(`^\[(\w+)\s+"(.*)"\]$`)

// Begin scans r, parsing each game it finds and sending it to output.
// Parsing itself fans out over runtime.NumCPU() workers; output order is
// not the same as input order.
func (s *ParallelScanner) Begin(ctx context.Context, output chan *Game) error {
	s.err = nil
	var tagLines []string
	var moveText strings.Builder
	state := notInPGN
	var wg sync.WaitGroup
	work := make(chan pgnChunk)
	for i := 0; i < runtime.NumCPU(); i++ {
		wg.Add(1)
		go parseGameWorker(work, output, &wg)
	}

OUTER:
	for {
		select {
		case <-ctx.Done():
			break OUTER
		default:
			if !s.scanr.Scan() {
				s.err = s.scanr.Err()
				if s.err == nil {
					s.err = io.EOF
				}
				break OUTER
			}
			line := strings.TrimSpace(s.scanr.Text())
			isTagPair := strings.HasPrefix(line, "[")
			switch state {
			case notInPGN:
				if !isTagPair {
					continue
				}
				state = inTagPairs
				tagLines = append(tagLines, line)
			case inTagPairs:
				if isTagPair {
					tagLines = append(tagLines, line)
					continue
				}
				state = inMoves
				moveText.WriteString(line + "\n")
			case inMoves:
				if line == "" {
					work <- pgnChunk{tagLines: tagLines, moveText: moveText.String()}
					tagLines = nil
					moveText.Reset()
					state = notInPGN
					continue
				}
				moveText.WriteString(line + "\n")
			}
		}
	}
	if state == inMoves && moveText.Len() > 0 {
		work <- pgnChunk{tagLines: tagLines, moveText: moveText.String()}
	}
	close(work)
	wg.Wait()
	close(output)
	return ctx.Err()
}

// Err returns the error that stopped scanning, typically io.EOF.
func (s *ParallelScanner) Err() error { return s.err }

type pgnChunk struct {
	tagLines []string
	moveText string
}

func parseGameWorker(work chan pgnChunk, out chan *Game, wg *sync.WaitGroup) {
	defer wg.Done()
	for chunk := range work {
		g, err := decodeChunk(chunk)
		if err != nil {
			fmt.Printf("chesscore: parallel scan: %v\n", err)
			continue
		}
		out <- g
	}
}

func decodeChunk(chunk pgnChunk) (*Game, error) {
	g := NewGame()
	for _, line := range chunk.tagLines {
		if m := tagPairRe.FindStringSubmatch(line); m != nil {
			g.AddTagPair(m[1], m[2])
		}
	}
	if fen, ok := g.TagPairs()["FEN"]; ok && fen != "" {
		ng, err := NewGameFromFEN(fen)
		if err != nil {
			return nil, fmt.Errorf("chesscore: chunk FEN: %w", err)
		}
		for k, v := range g.TagPairs() {
			ng.AddTagPair(k, v)
		}
		g = ng
	}
	if err := ParseMoveText(g, chunk.moveText); err != nil {
		return nil, fmt.Errorf("chesscore: chunk movetext: %w", err)
	}
	return g, nil
}
