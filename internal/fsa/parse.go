package fsa

import (
	"strings"
	"unicode/utf8"
)

// Row is one parsed state line: a state, its accept flag, and one target
// list per alphabet symbol in alphabet order. Trailing symbols without a
// token have no transition.
type Row struct {
	Name    string
	Accept  bool
	Targets [][]string

	// Nondeterministic is set when any token was written in the
	// comma-joined form, even if it names a single state.
	Nondeterministic bool
}

// ParseRow tokenizes a state line:
//
//	[*]<state> <tok> <tok> ...
//
// A token is a state name, a comma-joined list of names, or EmptyToken.
func ParseRow(line string) (Row, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Row{}, newParseError(ErrCodeStateLine, "empty state line")
	}

	row := Row{Name: fields[0]}
	if strings.HasPrefix(row.Name, AcceptMarker) {
		row.Accept = true
		row.Name = strings.TrimPrefix(row.Name, AcceptMarker)
	}
	if err := CheckStateName(row.Name); err != nil {
		return Row{}, err
	}

	for _, tok := range fields[1:] {
		if tok == EmptyToken {
			row.Targets = append(row.Targets, nil)
			continue
		}
		parts, joined, err := splitTargets(tok)
		if err != nil {
			return Row{}, err
		}
		if joined {
			row.Nondeterministic = true
		}
		var targets []string
		for _, name := range parts {
			if name == "" || name == EmptyToken {
				continue
			}
			if err := CheckStateName(name); err != nil {
				return Row{}, err
			}
			targets = appendUnique(targets, name)
		}
		row.Targets = append(row.Targets, targets)
	}
	return row, nil
}

// CheckStateName reports whether name can be written in a state line.
// Commas may only appear inside balanced () or {} groups, so derived names
// such as "(q0,q1)" and "{q0,q1}" stay atomic.
func CheckStateName(name string) error {
	switch {
	case name == "":
		return newParseError(ErrCodeStateLine, "missing state name")
	case name == EmptyToken:
		return newParseError(ErrCodeStateLine, "%q is not a valid state name", name)
	case strings.Contains(name, AcceptMarker):
		return newParseError(ErrCodeStateLine, "invalid state name %q", name)
	}
	parts, joined, err := splitTargets(name)
	if err != nil || joined || len(parts) != 1 {
		return newParseError(ErrCodeStateLine, "invalid state name %q", name)
	}
	return nil
}

// splitTargets splits tok at commas outside any bracket group and reports
// whether it found one.
func splitTargets(tok string) ([]string, bool, error) {
	var (
		parts  []string
		open   []rune
		start  int
		joined bool
	)
	for i, r := range tok {
		switch r {
		case '(', '{':
			open = append(open, r)
		case ')', '}':
			if len(open) == 0 || open[len(open)-1] != openerOf[r] {
				return nil, false, newParseError(ErrCodeStateLine, "unbalanced %q in %q", r, tok)
			}
			open = open[:len(open)-1]
		case ',':
			if len(open) == 0 {
				parts = append(parts, tok[start:i])
				start = i + 1
				joined = true
			}
		}
	}
	if len(open) > 0 {
		return nil, false, newParseError(ErrCodeStateLine, "unclosed %q in %q", open[len(open)-1], tok)
	}
	return append(parts, tok[start:]), joined, nil
}

var openerOf = map[rune]rune{')': '(', '}': '{'}

// parseAlphabet reads a whitespace-separated symbol line. Each symbol is a
// single character; EpsilonToken enables epsilon transitions.
func parseAlphabet(line string) ([]rune, error) {
	var alphabet []rune
	seen := make(map[rune]bool)
	for _, tok := range strings.Fields(line) {
		sym := Epsilon
		if tok != EpsilonToken {
			if utf8.RuneCountInString(tok) != 1 {
				return nil, newParseError(ErrCodeAlphabet, "symbol %q must be a single character", tok)
			}
			sym, _ = utf8.DecodeRuneInString(tok)
		}
		if seen[sym] {
			return nil, newParseError(ErrCodeAlphabet, "symbol %q appears twice", tok)
		}
		seen[sym] = true
		alphabet = append(alphabet, sym)
	}
	return alphabet, nil
}

func appendUnique(list []string, name string) []string {
	for _, s := range list {
		if s == name {
			return list
		}
	}
	return append(list, name)
}
