package interp

import (
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokWord tokenKind = iota
	tokQuoted
)

type token struct {
	kind tokenKind
	text string
}

// isSeparator reports whether r splits words outside quotes. Parentheses
// and commas only group arguments visually.
func isSeparator(r rune) bool {
	return unicode.IsSpace(r) || r == '(' || r == ')' || r == ','
}

// tokenize splits a command line into words and quoted strings. A quoted
// string runs to the next double quote and has no escapes.
func tokenize(line string) ([]token, error) {
	var toks []token
	rs := []rune(line)
	for i := 0; i < len(rs); {
		switch r := rs[i]; {
		case isSeparator(r):
			i++
		case r == '"':
			end := i + 1
			for end < len(rs) && rs[end] != '"' {
				end++
			}
			if end == len(rs) {
				return nil, newCommandError(ErrCodeMalformedCommand, "unterminated string starting at column %d", i+1)
			}
			toks = append(toks, token{kind: tokQuoted, text: string(rs[i+1 : end])})
			i = end + 1
		default:
			start := i
			for i < len(rs) && !isSeparator(rs[i]) && rs[i] != '"' {
				i++
			}
			toks = append(toks, token{kind: tokWord, text: string(rs[start:i])})
		}
	}
	return toks, nil
}

// validName reports whether s can be defined: letters, digits, '_' and
// '-', not starting with a digit or '-', and not a reserved word.
func validName(s string) bool {
	if s == "" || reserved[s] {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && (r == '-' || unicode.IsDigit(r)):
		default:
			return false
		}
	}
	return true
}

var reserved = map[string]bool{
	"define": true,
	"print":  true,
	"run":    true,
	"quit":   true,
	"fsa":    true,
	"true":   true,
	"false":  true,
}

func init() {
	for name := range functions {
		reserved[name] = true
	}
}

// tokenStream walks the tokens of one command.
type tokenStream struct {
	toks []token
	pos  int
}

func (s *tokenStream) next() (token, bool) {
	if s.pos >= len(s.toks) {
		return token{}, false
	}
	t := s.toks[s.pos]
	s.pos++
	return t, true
}

func (s *tokenStream) done() bool { return s.pos >= len(s.toks) }

// source returns the text of tokens [from, to) as it would be typed.
func (s *tokenStream) source(from, to int) string {
	var words []string
	for _, t := range s.toks[from:to] {
		if t.kind == tokQuoted {
			words = append(words, `"`+t.text+`"`)
		} else {
			words = append(words, t.text)
		}
	}
	return strings.Join(words, " ")
}

func (s *tokenStream) rest() string {
	return s.source(s.pos, len(s.toks))
}
