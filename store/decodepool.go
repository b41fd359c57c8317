package store

import (
	"context"
	"runtime"
	"sync"

	chess "github.com/rookwing/chesscore"
)

// decoded pairs a loaded game with the record it came from.
type decoded struct {
	rec GameRecord
	g   *chess.Game
}

// DecodeAllConcurrently loads every game in ids using a fixed worker pool,
// one goroutine per CPU, adapting the fan-out/fan-in shape the rest of
// this module already uses for bulk PGN scanning to bulk database reads.
// Results are streamed to the returned channel in completion order, not
// id order.
func (s *Store) DecodeAllConcurrently(ctx context.Context, ids []int64) <-chan decodeResult {
	out := make(chan decodeResult)
	work := make(chan int64)
	var wg sync.WaitGroup

	for i := 0; i < runtime.NumCPU(); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range work {
				rec, g, err := s.LoadGame(id)
				select {
				case out <- decodeResult{id: id, rec: rec, g: g, err: err}:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		defer close(work)
		for _, id := range ids {
			select {
			case work <- id:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(out)
	}()

	return out
}

// decodeResult is one concurrently-decoded game, or the error that
// prevented loading it.
type decodeResult struct {
	id  int64
	rec GameRecord
	g   *chess.Game
	err error
}
