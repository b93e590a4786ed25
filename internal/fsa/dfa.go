package fsa

// DFA is a deterministic finite-state automaton.
//
// Each (state, symbol) maps to at most one target; a missing entry is an
// implicit transition to a dead, rejecting state.
type DFA struct {
	base
	delta map[edge]string
}

// NewDFA creates an empty DFA with the given label.
func NewDFA(label string) *DFA {
	return &DFA{
		base:  newBase(label),
		delta: make(map[edge]string),
	}
}

// Kind returns KindDFA.
func (d *DFA) Kind() Kind { return KindDFA }

// Delta returns the target for (state, sym) and whether one is defined.
func (d *DFA) Delta(state string, sym rune) (string, bool) {
	t, ok := d.delta[edge{state, sym}]
	return t, ok
}

// Successors implements Automaton.
func (d *DFA) Successors(state string, sym rune) []string {
	if t, ok := d.delta[edge{state, sym}]; ok {
		return []string{t}
	}
	return nil
}

// AddStateLine implements Automaton. It returns false without mutating
// anything if the line uses the comma-joined form or the alphabet enables
// epsilon; the caller must then promote to an NFA.
func (d *DFA) AddStateLine(line string) (bool, error) {
	row, err := ParseRow(line)
	if err != nil {
		return false, err
	}
	return d.AddRow(row)
}

// AddRow is AddStateLine for an already tokenized row.
func (d *DFA) AddRow(row Row) (bool, error) {
	if row.Nondeterministic || d.HasEpsilon() {
		return false, nil
	}
	for _, targets := range row.Targets {
		if len(targets) > 1 {
			return false, nil
		}
	}
	if err := d.checkRow(row); err != nil {
		return false, err
	}

	d.declare(row)
	for i, targets := range row.Targets {
		if len(targets) == 1 {
			d.setDelta(row.Name, d.alphabet[i], targets[0])
		}
	}
	return true, nil
}

func (d *DFA) setDelta(state string, sym rune, target string) {
	d.delta[edge{state, sym}] = target
}

// Run walks the transition function from the start state. A character
// outside the alphabet or an undefined transition rejects immediately.
func (d *DFA) Run(input string) bool {
	current := d.start
	if current == "" {
		return false
	}
	for _, c := range input {
		next, ok := d.delta[edge{current, c}]
		if !ok {
			return false
		}
		current = next
	}
	return d.accept[current]
}

// String renders the DFA with one target name per field.
func (d *DFA) String() string {
	return render(&d.base, func(state string, sym rune) string {
		if t, ok := d.delta[edge{state, sym}]; ok {
			return t
		}
		return EmptyToken
	})
}

// clone returns an independent copy with a new label.
func (d *DFA) clone(label string) *DFA {
	c := &DFA{base: d.copyBase(label), delta: make(map[edge]string, len(d.delta))}
	for k, v := range d.delta {
		c.delta[k] = v
	}
	return c
}
