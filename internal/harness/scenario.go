package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Session is an optional fixed session token. Empty uses
	// testutil.DefaultSession.
	Session string `yaml:"session,omitempty"`

	// Automata are defined first, in order.
	Automata []AutomatonSource `yaml:"automata"`

	// Derive defines further names from interpreter expressions over the
	// automata, in order.
	Derive []Derivation `yaml:"derive,omitempty"`

	// Checks validate the defined automata.
	Checks []Check `yaml:"checks"`

	// Script is an optional interpreter session run after the checks.
	Script string `yaml:"script,omitempty"`

	// Output is the exact text Script must print. Compared only when
	// Script is set.
	Output string `yaml:"output,omitempty"`
}

// AutomatonSource names an automaton and where to read it. Exactly one of
// FSA, File and CUE is set.
type AutomatonSource struct {
	Name string `yaml:"name"`

	// FSA is an inline definition block.
	FSA string `yaml:"fsa,omitempty"`

	// File is a .fsa file holding one block.
	File string `yaml:"file,omitempty"`

	// CUE is a .cue file; the automaton is its field automaton.<Name>.
	CUE string `yaml:"cue,omitempty"`
}

// Derivation defines Name as the value of an interpreter expression.
type Derivation struct {
	Name string `yaml:"name"`
	Expr string `yaml:"expr"`
}

// Check validates one property of the defined automata.
type Check struct {
	// Type is one of the Check* constants.
	Type string `yaml:"type"`

	// Automaton is the subject of accepts, rejects, kind and states.
	Automaton string `yaml:"automaton,omitempty"`

	// Inputs are the strings for accepts and rejects.
	Inputs []string `yaml:"inputs,omitempty"`

	// Automata are the two operands of equivalent and distinct.
	Automata []string `yaml:"automata,omitempty"`

	// Witness, if set on distinct, is the expected shortest string
	// accepted by exactly one operand.
	Witness *string `yaml:"witness,omitempty"`

	// Kind is "dfa" or "nfa" for kind.
	Kind string `yaml:"kind,omitempty"`

	// Count is the expected number of states for states.
	Count int `yaml:"count,omitempty"`
}

// Check types.
const (
	CheckAccepts    = "accepts"
	CheckRejects    = "rejects"
	CheckEquivalent = "equivalent"
	CheckDistinct   = "distinct"
	CheckKind       = "kind"
	CheckStates     = "states"
)

// LoadScenario reads and parses a scenario YAML file. Relative file and
// cue paths are resolved against the scenario's directory. Unknown fields
// are rejected.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	scenario, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}

	base := filepath.Dir(path)
	for i := range scenario.Automata {
		src := &scenario.Automata[i]
		src.File = resolvePath(base, src.File)
		src.CUE = resolvePath(base, src.CUE)
	}

	if err := validateScenario(scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return scenario, nil
}

// ParseScenario decodes a scenario without touching the filesystem.
// Paths are left as written.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &scenario, nil
}

func resolvePath(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Automata) == 0 {
		return fmt.Errorf("automata list is required and must be non-empty")
	}
	if len(s.Checks) == 0 && s.Script == "" {
		return fmt.Errorf("checks or script is required")
	}

	names := make(map[string]bool)
	for i, src := range s.Automata {
		if src.Name == "" {
			return fmt.Errorf("automata[%d]: name is required", i)
		}
		if names[src.Name] {
			return fmt.Errorf("automata[%d]: duplicate name %q", i, src.Name)
		}
		names[src.Name] = true

		set := 0
		for _, v := range []string{src.FSA, src.File, src.CUE} {
			if v != "" {
				set++
			}
		}
		if set != 1 {
			return fmt.Errorf("automata[%d]: exactly one of fsa, file, cue is required", i)
		}
		for _, path := range []string{src.File, src.CUE} {
			if path == "" {
				continue
			}
			if _, err := os.Stat(path); os.IsNotExist(err) {
				return fmt.Errorf("automata[%d]: file not found: %s", i, path)
			}
		}
	}

	for i, d := range s.Derive {
		if d.Name == "" || d.Expr == "" {
			return fmt.Errorf("derive[%d]: name and expr are required", i)
		}
	}

	for i, c := range s.Checks {
		if err := validateCheck(i, &c); err != nil {
			return err
		}
	}
	return nil
}

// validateCheck validates a single check based on its type.
func validateCheck(index int, c *Check) error {
	switch c.Type {
	case "":
		return fmt.Errorf("checks[%d]: type is required", index)
	case CheckAccepts, CheckRejects:
		if c.Automaton == "" {
			return fmt.Errorf("checks[%d]: automaton is required for %s", index, c.Type)
		}
		if len(c.Inputs) == 0 {
			return fmt.Errorf("checks[%d]: inputs list is required for %s", index, c.Type)
		}
	case CheckEquivalent, CheckDistinct:
		if len(c.Automata) != 2 {
			return fmt.Errorf("checks[%d]: %s compares exactly 2 automata, got %d", index, c.Type, len(c.Automata))
		}
		if c.Witness != nil && c.Type != CheckDistinct {
			return fmt.Errorf("checks[%d]: witness only applies to distinct", index)
		}
	case CheckKind:
		if c.Automaton == "" {
			return fmt.Errorf("checks[%d]: automaton is required for kind", index)
		}
		if c.Kind != "dfa" && c.Kind != "nfa" {
			return fmt.Errorf("checks[%d]: kind must be dfa or nfa, got %q", index, c.Kind)
		}
	case CheckStates:
		if c.Automaton == "" {
			return fmt.Errorf("checks[%d]: automaton is required for states", index)
		}
		if c.Count < 1 {
			return fmt.Errorf("checks[%d]: count must be positive for states", index)
		}
	default:
		return fmt.Errorf("checks[%d]: unknown check type %q", index, c.Type)
	}
	return nil
}
