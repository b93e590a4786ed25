package compiler

import (
	"fmt"
	"strings"

	"github.com/roach88/lexaard/internal/fsa"
	"github.com/roach88/lexaard/internal/ir"
)

// ToDoc converts a built automaton into its document form.
func ToDoc(a fsa.Automaton) ir.AutomatonDoc {
	doc := ir.AutomatonDoc{
		Label:  a.Label(),
		Kind:   kindOf(a),
		Start:  a.Start(),
		States: []ir.StateDoc{},
	}

	alphabet := a.Alphabet()
	doc.Alphabet = make([]string, len(alphabet))
	for i, sym := range alphabet {
		doc.Alphabet[i] = fsa.SymbolString(sym)
	}

	for _, q := range a.States() {
		state := ir.StateDoc{
			Name:   q,
			Accept: a.IsAccept(q),
			On:     make(map[string][]string),
		}
		for i, sym := range alphabet {
			if targets := a.Successors(q, sym); len(targets) > 0 {
				state.On[doc.Alphabet[i]] = targets
			}
		}
		doc.States = append(doc.States, state)
	}
	return doc
}

func kindOf(a fsa.Automaton) ir.DefinitionKind {
	if a.Kind() == fsa.KindDFA {
		return ir.KindDFA
	}
	return ir.KindNFA
}

// FromDoc rebuilds an automaton from its document form. The result has
// the document's variant, alphabet, start state and rows.
//
// State names are not re-checked against the text grammar: documents may
// hold synthesized names such as "(q0,q1)" or "{q0,q2}".
func FromDoc(doc ir.AutomatonDoc) (fsa.Automaton, error) {
	if errs := ValidateDoc(doc); len(errs) > 0 {
		return nil, errs[0]
	}

	b := fsa.NewBuilder(doc.Label)
	if err := b.SetAlphabet(strings.Join(doc.Alphabet, " ")); err != nil {
		return nil, fmt.Errorf("automaton %q: %w", doc.Label, err)
	}
	if doc.Kind == ir.KindNFA {
		b.Promote()
	}

	// The builder takes its start state from the first row.
	rows := make([]ir.StateDoc, 0, len(doc.States))
	for _, s := range doc.States {
		if s.Name == doc.Start {
			rows = append(rows, s)
		}
	}
	for _, s := range doc.States {
		if s.Name != doc.Start {
			rows = append(rows, s)
		}
	}

	for _, s := range rows {
		row := fsa.Row{Name: s.Name, Accept: s.Accept, Targets: make([][]string, len(doc.Alphabet))}
		for i, sym := range doc.Alphabet {
			row.Targets[i] = append([]string(nil), s.On[sym]...)
		}
		if err := b.AddRow(row); err != nil {
			return nil, fmt.Errorf("automaton %q: %w", doc.Label, err)
		}
	}

	a, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("automaton %q: %w", doc.Label, err)
	}
	if got := kindOf(a); got != doc.Kind {
		return nil, fmt.Errorf("automaton %q: document kind %s rebuilt as %s", doc.Label, doc.Kind, got)
	}
	return a, nil
}
