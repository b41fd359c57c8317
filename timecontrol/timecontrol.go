// Package timecontrol implements the period-list time control model and a
// per-side tracker (§4.12, C12), parsing both of the textual forms the
// original engine accepted: the compact "PGN format" (seconds throughout)
// and the "normal format" people type at a keyboard (minutes, with a
// seconds remainder and a "+increment" suffix).
package timecontrol

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Kind distinguishes how a Period's move count is interpreted.
type Kind int

const (
	// Rollover repeats indefinitely: after Moves moves, Seconds is added
	// to whatever time remains (classic "40 moves in 2 hours, repeating").
	Rollover Kind = iota
	// MovesIn grants Seconds for exactly Moves moves, then the next
	// period in the list takes over.
	MovesIn
	// GameIn grants Seconds for the rest of the game; must be the final
	// period in a list.
	GameIn
)

// Period is one segment of a time control.
type Period struct {
	Kind       Kind
	Moves      int     // meaningful for Rollover/MovesIn
	Seconds    float64 // base time for this period
	Increment  float64 // added to the clock after each move in this period
}

// Control is an ordered list of Periods, describing the whole game's clock.
type Control struct {
	Periods []Period
}

// Format selects which textual convention Parse should assume when a
// number is ambiguous between minutes and seconds.
type Format int

const (
	// FormatPGN treats bare numbers as seconds (e.g. PGN TimeControl tags).
	FormatPGN Format = iota
	// FormatNormal treats bare numbers as minutes, matching what a person
	// typing at a UCI front-end would expect ("40/120" = 40 moves in 120
	// minutes).
	FormatNormal
)

// Parse parses a time control spec such as "40/120:30+0" (40 moves in 120
// minutes 30 seconds, no increment) or "300+2" (5 minutes plus 2 second
// increment, sudden death) according to format. Multiple periods are
// separated by commas.
func Parse(spec string, format Format) (Control, error) {
	var ctl Control
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		p, err := parsePeriod(part, format)
		if err != nil {
			return Control{}, fmt.Errorf("timecontrol: %q: %w", part, err)
		}
		ctl.Periods = append(ctl.Periods, p)
	}
	if len(ctl.Periods) == 0 {
		return Control{}, fmt.Errorf("timecontrol: empty spec")
	}
	for i, p := range ctl.Periods {
		if p.Kind == GameIn && i != len(ctl.Periods)-1 {
			return Control{}, fmt.Errorf("timecontrol: a game-in period must be last")
		}
	}
	return ctl, nil
}

func parsePeriod(part string, format Format) (Period, error) {
	var p Period
	inc := 0.0
	body := part
	if idx := strings.IndexByte(body, '+'); idx >= 0 {
		val, err := strconv.ParseFloat(body[idx+1:], 64)
		if err != nil {
			return p, fmt.Errorf("increment: %w", err)
		}
		inc = val
		body = body[:idx]
	}

	moves := 0
	kind := GameIn
	if idx := strings.IndexByte(body, '/'); idx >= 0 {
		n, err := strconv.Atoi(body[:idx])
		if err != nil {
			return p, fmt.Errorf("move count: %w", err)
		}
		moves = n
		kind = Rollover
		body = body[idx+1:]
	}

	secs, err := parseClock(body, format)
	if err != nil {
		return p, err
	}

	if kind == Rollover && moves == 0 {
		kind = GameIn
	}
	p = Period{Kind: kind, Moves: moves, Seconds: secs, Increment: inc}
	return p, nil
}

// parseClock parses "M:SS" or a bare number, interpreting the bare-number
// case according to format.
func parseClock(s string, format Format) (float64, error) {
	if idx := strings.IndexByte(s, ':'); idx >= 0 {
		minPart, secPart := s[:idx], s[idx+1:]
		mins, err := strconv.ParseFloat(minPart, 64)
		if err != nil {
			return 0, fmt.Errorf("minutes: %w", err)
		}
		secs, err := strconv.ParseFloat(secPart, 64)
		if err != nil {
			return 0, fmt.Errorf("seconds: %w", err)
		}
		return mins*60 + secs, nil
	}
	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("time: %w", err)
	}
	if format == FormatNormal {
		return val * 60, nil
	}
	return val, nil
}

// Tracker maintains one side's clock against a Control as the game
// progresses move by move.
type Tracker struct {
	ctl         Control
	periodIdx   int
	movesInCur  int
	remaining   time.Duration
	outOfTime   bool
}

// NewTracker returns a Tracker positioned at the start of ctl.
func NewTracker(ctl Control) *Tracker {
	t := &Tracker{ctl: ctl}
	if len(ctl.Periods) > 0 {
		t.remaining = secondsToDuration(ctl.Periods[0].Seconds)
	}
	return t
}

// Update charges timeTaken against the clock, applies the active period's
// increment, and advances to the next period if a move-count period has
// just been exhausted. Once the clock has run out, OutOfTime reports true
// and further calls have no effect.
func (t *Tracker) Update(timeTaken time.Duration) {
	if t.outOfTime {
		return
	}
	t.remaining -= timeTaken
	if t.remaining <= 0 {
		t.remaining = 0
		t.outOfTime = true
		return
	}
	cur := t.ctl.Periods[t.periodIdx]
	t.remaining += secondsToDuration(cur.Increment)
	t.movesInCur++

	switch cur.Kind {
	case Rollover:
		if t.movesInCur >= cur.Moves {
			t.movesInCur = 0
			t.remaining += secondsToDuration(cur.Seconds)
		}
	case MovesIn:
		if t.movesInCur >= cur.Moves && t.periodIdx < len(t.ctl.Periods)-1 {
			t.periodIdx++
			t.movesInCur = 0
			t.remaining += secondsToDuration(t.ctl.Periods[t.periodIdx].Seconds)
		}
	case GameIn:
		// no replenishment; the clock simply counts down to zero.
	}
}

// OutOfTime reports whether the tracked side has run out of time.
func (t *Tracker) OutOfTime() bool { return t.outOfTime }

// RunningTimeLeft returns the time remaining on the current period's clock.
func (t *Tracker) RunningTimeLeft() time.Duration { return t.remaining }

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
