package fsa

import "strings"

// Op is the operator at the root of a Regex.
type Op int

const (
	OpChar  Op = iota // one symbol
	OpEmpty           // the empty string
	OpNull            // the empty language
	OpUnion
	OpConcat
	OpStar
)

// Regex is a regular expression tree. Build it with the Regex*
// constructors, which fold away null and empty operands.
type Regex struct {
	Op   Op
	Char rune
	Subs []*Regex
}

// RegexChar matches the one-symbol string c.
func RegexChar(c rune) *Regex { return &Regex{Op: OpChar, Char: c} }

// RegexEmpty matches only the empty string.
func RegexEmpty() *Regex { return &Regex{Op: OpEmpty} }

// RegexNull matches nothing.
func RegexNull() *Regex { return &Regex{Op: OpNull} }

// RegexUnion matches what any of subs matches. Null operands and repeats
// are dropped and nested unions are flattened.
func RegexUnion(subs ...*Regex) *Regex {
	var out []*Regex
	seen := make(map[string]bool)
	var add func(r *Regex)
	add = func(r *Regex) {
		switch {
		case r == nil || r.Op == OpNull:
		case r.Op == OpUnion:
			for _, s := range r.Subs {
				add(s)
			}
		default:
			if key := r.String(); !seen[key] {
				seen[key] = true
				out = append(out, r)
			}
		}
	}
	for _, r := range subs {
		add(r)
	}

	switch len(out) {
	case 0:
		return RegexNull()
	case 1:
		return out[0]
	}
	return &Regex{Op: OpUnion, Subs: out}
}

// RegexConcat matches the concatenation of subs. Any null operand makes
// the whole expression null; empty operands are dropped.
func RegexConcat(subs ...*Regex) *Regex {
	var out []*Regex
	for _, r := range subs {
		switch {
		case r == nil || r.Op == OpNull:
			return RegexNull()
		case r.Op == OpEmpty:
		case r.Op == OpConcat:
			out = append(out, r.Subs...)
		default:
			out = append(out, r)
		}
	}

	switch len(out) {
	case 0:
		return RegexEmpty()
	case 1:
		return out[0]
	}
	return &Regex{Op: OpConcat, Subs: out}
}

// RegexStar matches zero or more repetitions of r.
func RegexStar(r *Regex) *Regex {
	switch {
	case r == nil || r.Op == OpNull || r.Op == OpEmpty:
		return RegexEmpty()
	case r.Op == OpStar:
		return r
	}
	return &Regex{Op: OpStar, Subs: []*Regex{r}}
}

// String writes r in prefix form:
//
//	a            one symbol
//	r.           the empty string
//	r/           the empty language
//	(r| a b )    union
//	(r. a b )    concatenation
//	(r* a)       star
func (r *Regex) String() string {
	var buf strings.Builder
	r.write(&buf)
	return buf.String()
}

func (r *Regex) write(buf *strings.Builder) {
	switch r.Op {
	case OpChar:
		buf.WriteRune(r.Char)
	case OpEmpty:
		buf.WriteString("r.")
	case OpNull:
		buf.WriteString("r/")
	case OpUnion, OpConcat:
		if r.Op == OpUnion {
			buf.WriteString("(r|")
		} else {
			buf.WriteString("(r.")
		}
		for _, s := range r.Subs {
			buf.WriteByte(' ')
			s.write(buf)
		}
		buf.WriteString(" )")
	case OpStar:
		buf.WriteString("(r* ")
		r.Subs[0].write(buf)
		buf.WriteByte(')')
	}
}

// NFA builds an automaton for r from the literal automata and the NFA
// combinators. It is labelled with r's text.
func (r *Regex) NFA() *NFA {
	return r.build().clone(r.String())
}

func (r *Regex) build() *NFA {
	switch r.Op {
	case OpChar:
		return Char(r.Char)
	case OpEmpty:
		return EmptyString()
	case OpUnion, OpConcat:
		join := Union
		if r.Op == OpConcat {
			join = Concat
		}
		n := r.Subs[0].build()
		for _, s := range r.Subs[1:] {
			n = join(n, s.build())
		}
		return n
	case OpStar:
		return Star(r.Subs[0].build())
	}
	return EmptyLanguage()
}

// ToRegex converts a into an equivalent regular expression by state
// elimination.
//
// An NFA is first determinized. The DFA's reachable states are wrapped in
// a generalized automaton with a fresh start, joined by an empty edge to
// the old start, and a fresh accept, joined by empty edges from every old
// accept state. Parallel symbol edges are united. States are then ripped
// out in declaration order: for every remaining pair (i, j) the edge
// becomes (i→rip)(rip→rip)*(rip→j) ∪ (i→j). The expression left on the
// edge from the new start to the new accept is the result.
func ToRegex(a Automaton) *Regex {
	d, ok := a.(*DFA)
	if !ok {
		d = ToDFA(ToNFA(a))
	}
	d = PruneDFA(d)

	// Index the DFA states 0..n-1; n is the new start and n+1 the new accept.
	n := len(d.states)
	start, accept := n, n+1
	index := make(map[string]int, n)
	for i, q := range d.states {
		index[q] = i
	}

	type arc struct{ from, to int }
	edges := make(map[arc]*Regex)
	unite := func(from, to int, r *Regex) {
		k := arc{from, to}
		edges[k] = RegexUnion(edges[k], r)
	}

	unite(start, index[d.start], RegexEmpty())
	for i, q := range d.states {
		if d.accept[q] {
			unite(i, accept, RegexEmpty())
		}
		for _, sym := range d.alphabet {
			if t, ok := d.delta[edge{q, sym}]; ok {
				unite(i, index[t], RegexChar(sym))
			}
		}
	}

	remaining := make([]int, 0, n+2)
	for i := 0; i <= accept; i++ {
		remaining = append(remaining, i)
	}

	for rip := 0; rip < n; rip++ {
		remaining = remaining[1:]
		loop := RegexStar(edges[arc{rip, rip}])
		next := make(map[arc]*Regex)
		for _, i := range remaining {
			if i == accept {
				continue
			}
			for _, j := range remaining {
				if j == start {
					continue
				}
				through := RegexConcat(edges[arc{i, rip}], loop, edges[arc{rip, j}])
				if r := RegexUnion(through, edges[arc{i, j}]); r.Op != OpNull {
					next[arc{i, j}] = r
				}
			}
		}
		edges = next
	}

	if r, ok := edges[arc{start, accept}]; ok {
		return r
	}
	return RegexNull()
}
