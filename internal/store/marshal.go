package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/roach88/lexaard/internal/ir"
)

// marshalDefinition encodes def as JSON TEXT for the body column and
// returns its content hash alongside.
//
// The body keeps display-only fields such as automaton labels, so it is
// plain JSON rather than the canonical hashing view.
func marshalDefinition(def ir.Definition) (body, hash string, err error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(def); err != nil {
		return "", "", fmt.Errorf("marshal definition: %w", err)
	}

	hash, err = ir.DefinitionHash(def)
	if err != nil {
		return "", "", fmt.Errorf("marshal definition: %w", err)
	}

	// json.Encoder adds a trailing newline
	return strings.TrimSuffix(buf.String(), "\n"), hash, nil
}

// unmarshalDefinition decodes a body column back into a Definition.
func unmarshalDefinition(body string) (ir.Definition, error) {
	var def ir.Definition
	dec := json.NewDecoder(strings.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&def); err != nil {
		return ir.Definition{}, fmt.Errorf("unmarshal definition: %w", err)
	}
	if def.Automaton != nil {
		for i := range def.Automaton.States {
			if def.Automaton.States[i].On == nil {
				def.Automaton.States[i].On = map[string][]string{}
			}
		}
	}
	return def, nil
}
