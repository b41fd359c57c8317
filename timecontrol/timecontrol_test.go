package timecontrol

import (
	"testing"
	"time"
)

func TestParseNormalFormat(t *testing.T) {
	ctl, err := Parse("40/120:30+5", FormatNormal)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(ctl.Periods) != 1 {
		t.Fatalf("len(Periods) = %d, want 1", len(ctl.Periods))
	}
	p := ctl.Periods[0]
	if p.Kind != Rollover || p.Moves != 40 {
		t.Errorf("period = %+v, want Rollover/40", p)
	}
	wantSecs := 120.0*60 + 30
	if p.Seconds != wantSecs {
		t.Errorf("Seconds = %v, want %v", p.Seconds, wantSecs)
	}
	if p.Increment != 5 {
		t.Errorf("Increment = %v, want 5", p.Increment)
	}
}

func TestParsePGNFormat(t *testing.T) {
	ctl, err := Parse("300+2", FormatPGN)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	p := ctl.Periods[0]
	if p.Kind != GameIn {
		t.Errorf("Kind = %v, want GameIn", p.Kind)
	}
	if p.Seconds != 300 {
		t.Errorf("Seconds = %v, want 300 (PGN format is already seconds)", p.Seconds)
	}
}

func TestTrackerOutOfTime(t *testing.T) {
	ctl, err := Parse("10", FormatPGN)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	tr := NewTracker(ctl)
	tr.Update(4 * time.Second)
	if tr.OutOfTime() {
		t.Fatalf("OutOfTime after using 4s of 10s")
	}
	tr.Update(7 * time.Second)
	if !tr.OutOfTime() {
		t.Errorf("expected OutOfTime after using 11s total of a 10s clock")
	}
}

func TestTrackerRolloverReplenishes(t *testing.T) {
	ctl, err := Parse("2/10", FormatPGN)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	tr := NewTracker(ctl)
	tr.Update(3 * time.Second)
	tr.Update(3 * time.Second) // completes the 2-move period
	if tr.OutOfTime() {
		t.Fatalf("should have replenished after 2 moves")
	}
	if tr.RunningTimeLeft() <= 0 {
		t.Errorf("RunningTimeLeft() = %v, want > 0 after replenishment", tr.RunningTimeLeft())
	}
}
