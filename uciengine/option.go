package uciengine

import (
	"fmt"
	"strconv"
	"strings"
)

// OptionType is a UCI "option" declaration's value type.
type OptionType int

const (
	OptionNone OptionType = iota
	OptionCheck
	OptionSpin
	OptionCombo
	OptionButton
	OptionString
	// OptionFilename is not a distinct wire type in the UCI protocol — it
	// is an OptionString whose name suggests it holds a filesystem path,
	// per the original engine's heuristic: the name ends in "file",
	// "filename" or "path", case-insensitively, and doesn't start with
	// "use" (so a toggle like "Use NNUE File" isn't mistaken for a path).
	// Front ends use it to decide whether to show a file picker.
	OptionFilename
)

var typeNames = [...]string{"none", "check", "spin", "combo", "button", "string", "filename"}

func (t OptionType) String() string {
	if int(t) < 0 || int(t) >= len(typeNames) {
		return "unknown"
	}
	return typeNames[t]
}

// Option describes one entry from an engine's "option name ... type ..."
// declaration, as advertised during the UCI handshake, after "uci" and
// before "uciok".
type Option struct {
	Name     string
	Type     OptionType
	Default  string
	Min, Max int
	Vars     []string
}

// looksLikeFilename applies the original engine's "does this option hold a
// path" heuristic: its name ends in "file", "filename" or "path",
// case-insensitively, unless it starts with "use" (a toggle, not a path).
func looksLikeFilename(name string) bool {
	lower := strings.ToLower(name)
	if strings.HasPrefix(lower, "use") {
		return false
	}
	return strings.HasSuffix(lower, "file") || strings.HasSuffix(lower, "filename") || strings.HasSuffix(lower, "path")
}

// ParseOption parses the tokens following "option" in a UCI "option ..."
// line (already split on whitespace, keyword tokens included).
func ParseOption(tokens []string) (Option, error) {
	var opt Option
	i := 0
	for i < len(tokens) {
		switch tokens[i] {
		case "name":
			j := i + 1
			for j < len(tokens) && !isKeyword(tokens[j]) {
				j++
			}
			opt.Name = strings.Join(tokens[i+1:j], " ")
			i = j
		case "type":
			if i+1 >= len(tokens) {
				return opt, fmt.Errorf("uciengine: option: type with no value")
			}
			opt.Type = parseTypeName(tokens[i+1])
			i += 2
		case "default":
			j := i + 1
			for j < len(tokens) && !isKeyword(tokens[j]) {
				j++
			}
			opt.Default = strings.Join(tokens[i+1:j], " ")
			i = j
		case "min":
			if i+1 >= len(tokens) {
				return opt, fmt.Errorf("uciengine: option: min with no value")
			}
			n, err := strconv.Atoi(tokens[i+1])
			if err != nil {
				return opt, fmt.Errorf("uciengine: option: min: %w", err)
			}
			opt.Min = n
			i += 2
		case "max":
			if i+1 >= len(tokens) {
				return opt, fmt.Errorf("uciengine: option: max with no value")
			}
			n, err := strconv.Atoi(tokens[i+1])
			if err != nil {
				return opt, fmt.Errorf("uciengine: option: max: %w", err)
			}
			opt.Max = n
			i += 2
		case "var":
			j := i + 1
			for j < len(tokens) && !isKeyword(tokens[j]) {
				j++
			}
			opt.Vars = append(opt.Vars, strings.Join(tokens[i+1:j], " "))
			i = j
		default:
			i++
		}
	}
	if opt.Name == "" {
		return opt, fmt.Errorf("uciengine: option: missing name")
	}
	if opt.Type == OptionString && looksLikeFilename(opt.Name) {
		opt.Type = OptionFilename
	}
	return opt, nil
}

func isKeyword(tok string) bool {
	switch tok {
	case "name", "type", "default", "min", "max", "var":
		return true
	}
	return false
}

func parseTypeName(s string) OptionType {
	for i, n := range typeNames {
		if n == s {
			return OptionType(i)
		}
	}
	return OptionNone
}

// IsValid checks an option's own declared invariants: spin options need
// min <= max, combo options need at least one var.
func (o Option) IsValid() bool {
	switch o.Type {
	case OptionSpin:
		return o.Min <= o.Max
	case OptionCombo:
		return len(o.Vars) > 0
	case OptionNone:
		return false
	}
	return true
}

// IsValidValue reports whether value is acceptable for this option.
func (o Option) IsValidValue(value string) bool {
	switch o.Type {
	case OptionCheck:
		return value == "true" || value == "false"
	case OptionSpin:
		n, err := strconv.Atoi(value)
		if err != nil {
			return false
		}
		return n >= o.Min && n <= o.Max
	case OptionCombo:
		for _, v := range o.Vars {
			if v == value {
				return true
			}
		}
		return false
	case OptionButton:
		return true
	case OptionString, OptionFilename:
		return true
	}
	return false
}

// SetOptionLine formats a "setoption name X value Y" line for this option.
func (o Option) SetOptionLine(value string) string {
	if o.Type == OptionButton {
		return fmt.Sprintf("setoption name %s", o.Name)
	}
	return fmt.Sprintf("setoption name %s value %s", o.Name, value)
}
