package uciengine

import "testing"

func TestParseSpinOption(t *testing.T) {
	tokens := []string{"name", "Hash", "type", "spin", "default", "16", "min", "1", "max", "1024"}
	opt, err := ParseOption(tokens)
	if err != nil {
		t.Fatalf("ParseOption: %v", err)
	}
	if opt.Name != "Hash" || opt.Type != OptionSpin {
		t.Fatalf("opt = %+v", opt)
	}
	if !opt.IsValid() {
		t.Errorf("expected IsValid() true for min<=max")
	}
	if !opt.IsValidValue("512") {
		t.Errorf("512 should be a valid value within [1,1024]")
	}
	if opt.IsValidValue("2048") {
		t.Errorf("2048 should be invalid, exceeds max")
	}
}

func TestFilenameHeuristic(t *testing.T) {
	tokens := []string{"name", "NalimovPath", "type", "string", "default", ""}
	opt, err := ParseOption(tokens)
	if err != nil {
		t.Fatalf("ParseOption: %v", err)
	}
	if opt.Type != OptionFilename {
		t.Errorf("Type = %v, want OptionFilename (name contains \"Path\")", opt.Type)
	}
}

func TestFilenameHeuristicExcludesUsePrefix(t *testing.T) {
	tokens := []string{"name", "Use NNUE File", "type", "check", "default", "true"}
	opt, err := ParseOption(tokens)
	if err != nil {
		t.Fatalf("ParseOption: %v", err)
	}
	if opt.Type == OptionFilename {
		t.Errorf("Type = %v, want not OptionFilename (\"Use NNUE File\" is a toggle, not a path)", opt.Type)
	}

	tokens = []string{"name", "FileLimit", "type", "string", "default", ""}
	opt, err = ParseOption(tokens)
	if err != nil {
		t.Fatalf("ParseOption: %v", err)
	}
	if opt.Type == OptionFilename {
		t.Errorf("Type = %v, want not OptionFilename (\"file\" is not a suffix of %q)", opt.Type, opt.Name)
	}
}

func TestComboOption(t *testing.T) {
	tokens := []string{"name", "Style", "type", "combo", "default", "Normal",
		"var", "Solid", "var", "Normal", "var", "Risky"}
	opt, err := ParseOption(tokens)
	if err != nil {
		t.Fatalf("ParseOption: %v", err)
	}
	if len(opt.Vars) != 3 {
		t.Fatalf("Vars = %v, want 3 entries", opt.Vars)
	}
	if !opt.IsValidValue("Risky") {
		t.Errorf("Risky should be a valid combo value")
	}
	if opt.IsValidValue("Aggressive") {
		t.Errorf("Aggressive is not a declared var, should be invalid")
	}
}
