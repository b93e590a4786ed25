package harness

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/roach88/lexaard/internal/compiler"
	"github.com/roach88/lexaard/internal/fsa"
	"github.com/roach88/lexaard/internal/interp"
	"github.com/roach88/lexaard/internal/store"
	"github.com/roach88/lexaard/internal/testutil"
)

// Harness holds the state of one scenario execution.
type Harness struct {
	store  *store.Store
	interp *interp.Interpreter
}

// Run executes a scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database with a deterministic
// clock and session token, so its trace is reproducible.
//
// Execution flow:
//  1. Define the scenario's automata in order
//  2. Define each derivation by evaluating its expression
//  3. Evaluate the checks
//  4. Run the script, if any, and compare its output
//  5. Read the trace back from the store
//
// Failing checks are reported in the result. A scenario whose automata or
// derivations cannot be defined returns an error.
func Run(scenario *Scenario) (*Result, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	ctx := context.Background()
	in, err := interp.New(ctx,
		interp.WithStore(st),
		interp.WithClock(testutil.NewDeterministicClock()),
		interp.WithSessionGenerator(testutil.NewFixedSessionGenerator(scenario.Session)),
		interp.WithLogger(testutil.DiscardLogger()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start interpreter: %w", err)
	}

	h := &Harness{store: st, interp: in}

	if err := h.defineAutomata(ctx, scenario.Automata); err != nil {
		return nil, err
	}
	if err := h.derive(ctx, scenario.Derive); err != nil {
		return nil, err
	}

	result := NewResult()
	for _, msg := range EvaluateChecks(ctx, in, scenario.Checks) {
		result.AddError(msg)
	}

	if scenario.Script != "" {
		var out strings.Builder
		if err := in.Run(ctx, strings.NewReader(scenario.Script), &out); err != nil {
			return nil, fmt.Errorf("failed to run script: %w", err)
		}
		result.Output = out.String()
		if result.Output != scenario.Output {
			result.AddError((&CheckError{
				Type:     "script",
				Expected: fmt.Sprintf("%q", scenario.Output),
				Actual:   fmt.Sprintf("%q", result.Output),
			}).Error())
		}
	}

	trace, err := h.trace(ctx)
	if err != nil {
		return nil, err
	}
	result.Trace = trace
	return result, nil
}

// defineAutomata loads each source and defines it under its name.
func (h *Harness) defineAutomata(ctx context.Context, sources []AutomatonSource) error {
	for i, src := range sources {
		a, err := loadSource(src)
		if err != nil {
			return fmt.Errorf("automata[%d] %s: %w", i, src.Name, err)
		}
		if err := h.interp.Define(ctx, src.Name, interp.AutomatonValue(a)); err != nil {
			return fmt.Errorf("automata[%d] %s: %w", i, src.Name, err)
		}
	}
	return nil
}

func loadSource(src AutomatonSource) (fsa.Automaton, error) {
	switch {
	case src.FSA != "":
		return fsa.Parse(src.FSA)
	case src.File != "":
		return compiler.LoadFSAFile(src.File)
	case src.CUE != "":
		data, err := os.ReadFile(src.CUE)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", src.CUE, err)
		}
		named, err := compiler.CompileCUE(src.CUE, data)
		if err != nil {
			return nil, err
		}
		for _, n := range named {
			if n.Name == src.Name {
				return n.FSA, nil
			}
		}
		return nil, fmt.Errorf("%s has no automaton.%s", src.CUE, src.Name)
	default:
		return nil, fmt.Errorf("no source given")
	}
}

// derive defines each derivation through the interpreter's define command,
// so expressions are parsed exactly as a session would parse them.
func (h *Harness) derive(ctx context.Context, steps []Derivation) error {
	for i, d := range steps {
		if _, err := h.interp.Execute(ctx, "define "+d.Name+" "+d.Expr, nil); err != nil {
			return fmt.Errorf("derive[%d] %s: %w", i, d.Name, err)
		}
	}
	return nil
}

// trace reads the definitions and runs back from the store and merges
// them by seq. A name defined twice appears once, at its latest seq.
func (h *Harness) trace(ctx context.Context) ([]TraceEvent, error) {
	defs, err := h.store.LoadDefinitions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read definitions: %w", err)
	}
	runs, err := h.store.Runs(ctx, h.interp.Session())
	if err != nil {
		return nil, fmt.Errorf("failed to read runs: %w", err)
	}

	events := make([]TraceEvent, 0, len(defs)+len(runs))
	for _, d := range defs {
		events = append(events, TraceEvent{
			Type: EventDefine,
			Seq:  d.Seq,
			Name: d.Name,
			Kind: string(d.Kind),
		})
	}
	for _, r := range runs {
		events = append(events, TraceEvent{
			Type:     EventRun,
			Seq:      r.Seq,
			Name:     r.Target,
			Input:    r.Input,
			Accepted: r.Accepted,
		})
	}
	sort.SliceStable(events, func(i, j int) bool { return events[i].Seq < events[j].Seq })
	return events, nil
}
