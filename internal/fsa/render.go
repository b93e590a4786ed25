package fsa

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// minFieldWidth is the narrowest transition column.
const minFieldWidth = 4

// render produces the canonical form shared by both variants:
//
//	<label>
//	<pad>   0   1
//	 q0  q1  q0
//	*q1  q2  q1
//
// The first column is the accept marker ('*' or space) followed by the
// state name. Every transition cell, and the symbol above it, is
// right-justified in a fixed-width field. Trailing spaces are trimmed.
func render(b *base, cell func(state string, sym rune) string) string {
	nameWidth := 0
	for _, q := range b.states {
		nameWidth = max(nameWidth, utf8.RuneCountInString(q))
	}

	cells := make([][]string, len(b.states))
	width := minFieldWidth
	for i, q := range b.states {
		cells[i] = make([]string, len(b.alphabet))
		for j, sym := range b.alphabet {
			cells[i][j] = cell(q, sym)
			width = max(width, utf8.RuneCountInString(cells[i][j])+1)
		}
	}

	var buf strings.Builder
	buf.WriteString(b.label)
	buf.WriteByte('\n')

	header := strings.Repeat(" ", 1+nameWidth)
	for _, sym := range b.alphabet {
		header += padLeft(SymbolString(sym), width)
	}
	buf.WriteString(strings.TrimRight(header, " "))
	buf.WriteByte('\n')

	for i, q := range b.states {
		marker := " "
		if b.accept[q] {
			marker = AcceptMarker
		}
		line := marker + padRight(q, nameWidth)
		for _, c := range cells[i] {
			line += padLeft(c, width)
		}
		buf.WriteString(strings.TrimRight(line, " "))
		buf.WriteByte('\n')
	}
	return buf.String()
}

func padLeft(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return strings.Repeat(" ", width-n) + s
	}
	return " " + s
}

func padRight(s string, width int) string {
	return fmt.Sprintf("%-*s", width, s)
}
