package interp

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/roach88/lexaard/internal/ir"
	"github.com/roach88/lexaard/internal/store"
)

// Interpreter executes Lexaard commands against a registry.
//
// An Interpreter is not safe for concurrent use; one session drives it.
type Interpreter struct {
	registry *Registry
	store    *store.Store
	logger   *slog.Logger
	clock    Clock
	sessions SessionGenerator
	session  string
	prompt   string
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithStore persists definitions and runs to s. Definitions already in s
// are loaded into the registry when the interpreter is created.
func WithStore(s *store.Store) Option {
	return func(in *Interpreter) { in.store = s }
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(in *Interpreter) { in.logger = l }
}

// WithClock sets the seq source. Default: a LogicalClock resuming after
// the store's last seq.
func WithClock(c Clock) Option {
	return func(in *Interpreter) { in.clock = c }
}

// WithSessionGenerator sets the session token source. Default:
// UUIDv7Generator.
func WithSessionGenerator(g SessionGenerator) Option {
	return func(in *Interpreter) { in.sessions = g }
}

// WithPrompt writes prompt before reading each command in Run.
func WithPrompt(prompt string) Option {
	return func(in *Interpreter) { in.prompt = prompt }
}

// New creates an interpreter and, if a store is attached, restores its
// definitions. A stored definition that no longer builds is skipped with
// a warning.
func New(ctx context.Context, opts ...Option) (*Interpreter, error) {
	in := &Interpreter{
		registry: NewRegistry(),
		logger:   slog.Default(),
		sessions: UUIDv7Generator{},
	}
	for _, opt := range opts {
		opt(in)
	}

	if in.clock == nil {
		var last int64
		if in.store != nil {
			var err error
			if last, err = in.store.LastSeq(ctx); err != nil {
				return nil, fmt.Errorf("resume clock: %w", err)
			}
		}
		in.clock = NewClockAt(last)
	}
	in.session = in.sessions.Generate()

	restored := 0
	if in.store != nil {
		defs, err := in.store.LoadDefinitions(ctx)
		if err != nil {
			return nil, fmt.Errorf("restore definitions: %w", err)
		}
		for _, def := range defs {
			v, err := ValueFromDefinition(def.Definition)
			if err != nil {
				in.logger.Warn("skipping stored definition", "name", def.Name, "error", err)
				continue
			}
			in.registry.Define(def.Name, v)
			restored++
		}
	}

	in.logger.Info("interpreter starting",
		"session", in.session,
		"restored", restored,
		"seq", in.clock.Current())
	return in, nil
}

// Session returns the token stamped on this session's runs.
func (in *Interpreter) Session() string { return in.session }

// Lookup returns the value registered under name.
func (in *Interpreter) Lookup(name string) (Value, bool) {
	return in.registry.Lookup(name)
}

// Names returns every registered name, sorted.
func (in *Interpreter) Names() []string { return in.registry.Names() }

// Outcome is the result of one command.
type Outcome struct {
	// Output is what the command prints, without a trailing newline.
	Output string

	// Quit is set by the quit command.
	Quit bool
}

// Execute runs one command line. Inline fsa blocks are read from lines,
// which may be nil when the command has none.
//
// A *CommandError leaves the registry unchanged. Any other error comes
// from the store.
func (in *Interpreter) Execute(ctx context.Context, line string, lines LineSource) (Outcome, error) {
	toks, err := tokenize(line)
	if err != nil {
		return Outcome{}, err
	}
	if len(toks) == 0 {
		return Outcome{}, nil
	}
	if lines == nil {
		lines = noLines{}
	}

	ts := &tokenStream{toks: toks[1:]}
	ev := &evaluator{reg: in.registry, toks: ts, lines: lines}

	cmd := toks[0]
	if cmd.kind != tokWord {
		return Outcome{}, newCommandError(ErrCodeUnknownCommand, "expected a command, got a string")
	}

	switch cmd.text {
	case "quit":
		if err := noTrailing(ts); err != nil {
			return Outcome{}, err
		}
		return Outcome{Quit: true}, nil
	case "print":
		v, err := ev.expr()
		if err != nil {
			return Outcome{}, err
		}
		if err := noTrailing(ts); err != nil {
			return Outcome{}, err
		}
		return Outcome{Output: strings.TrimSuffix(v.Render(), "\n")}, nil
	case "define":
		return Outcome{}, in.define(ctx, ev)
	case "run":
		return in.run(ctx, ev)
	default:
		return Outcome{}, newCommandError(ErrCodeUnknownCommand, "unknown command %q", cmd.text)
	}
}

func (in *Interpreter) define(ctx context.Context, ev *evaluator) error {
	t, ok := ev.toks.next()
	if !ok {
		return newCommandError(ErrCodeMalformedCommand, "define needs a name and a value")
	}
	if t.kind != tokWord || !validName(t.text) {
		return newCommandError(ErrCodeMalformedCommand, "%q cannot be used as a name", t.text)
	}
	name := t.text

	v, err := ev.expr()
	if err != nil {
		return err
	}
	if err := noTrailing(ev.toks); err != nil {
		return err
	}

	return in.Define(ctx, name, v)
}

// Define registers v under name, replacing any earlier value, and
// persists it when a store is attached. A store failure leaves the
// registry unchanged.
func (in *Interpreter) Define(ctx context.Context, name string, v Value) error {
	if !validName(name) {
		return newCommandError(ErrCodeMalformedCommand, "%q cannot be used as a name", name)
	}

	seq := in.clock.Next()
	if in.store != nil {
		if err := in.store.SaveDefinition(ctx, v.Definition(name), seq); err != nil {
			return fmt.Errorf("define %s: %w", name, err)
		}
	}
	old, replaced := in.registry.Define(name, v)

	attrs := []any{"name", name, "kind", v.describe(), "seq", seq}
	if replaced {
		attrs = append(attrs, "replaced", old.describe())
	}
	in.logger.Debug("definition registered", attrs...)
	return nil
}

// Evaluate runs the automaton registered under target on input and
// records the outcome in the run log.
func (in *Interpreter) Evaluate(ctx context.Context, target, input string) (bool, error) {
	v, ok := in.registry.Lookup(target)
	if !ok {
		return false, newCommandError(ErrCodeNotFound, "nothing is defined as %q", target)
	}
	a, err := wantAutomaton("run", 1, v)
	if err != nil {
		return false, err
	}
	accepted := a.Run(input)
	return accepted, in.record(ctx, target, input, accepted)
}

func (in *Interpreter) run(ctx context.Context, ev *evaluator) (Outcome, error) {
	from := ev.toks.pos
	target, err := ev.expr()
	if err != nil {
		return Outcome{}, err
	}
	targetSrc := ev.toks.source(from, ev.toks.pos)
	a, err := wantAutomaton("run", 1, target)
	if err != nil {
		return Outcome{}, err
	}

	input, err := ev.expr()
	if err != nil {
		return Outcome{}, err
	}
	if input.Kind != ValueString {
		return Outcome{}, newCommandError(ErrCodeTypeMismatch, "run: argument 2 is a %s, want a string", input.describe())
	}
	if err := noTrailing(ev.toks); err != nil {
		return Outcome{}, err
	}

	accepted := a.Run(input.Text)
	if err := in.record(ctx, targetSrc, input.Text, accepted); err != nil {
		return Outcome{}, err
	}
	return Outcome{Output: verdict(accepted)}, nil
}

func (in *Interpreter) record(ctx context.Context, target, input string, accepted bool) error {
	seq := in.clock.Next()
	if in.store != nil {
		_, err := in.store.RecordRun(ctx, ir.RunRecord{
			Session:  in.session,
			Target:   target,
			Input:    input,
			Accepted: accepted,
			Seq:      seq,
		})
		if err != nil {
			return fmt.Errorf("record run: %w", err)
		}
	}
	in.logger.Debug("run recorded", "target", target, "input", input, "accepted", accepted, "seq", seq)
	return nil
}

func verdict(accepted bool) string {
	if accepted {
		return "accept"
	}
	return "reject"
}

func noTrailing(ts *tokenStream) error {
	if ts.done() {
		return nil
	}
	return newCommandError(ErrCodeMalformedCommand, "unexpected %s", ts.rest())
}

// Run reads commands from r until quit or end of input, writing output to
// w. A failed command prints "error: ..." and the session continues. Run
// returns early only for a cancelled context, a read or write failure, or
// a store failure.
func (in *Interpreter) Run(ctx context.Context, r io.Reader, w io.Writer) error {
	src := NewLineSource(r)
	commands := 0
	defer func() {
		in.logger.Info("interpreter stopped", "session", in.session, "commands", commands)
	}()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if in.prompt != "" {
			if _, err := io.WriteString(w, in.prompt); err != nil {
				return err
			}
		}
		line, ok := src.NextLine()
		if !ok {
			return src.Err()
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		commands++

		out, err := in.Execute(ctx, line, src)
		var ce *CommandError
		switch {
		case errors.As(err, &ce):
			in.logger.Debug("command failed", "line", src.Line(), "code", ce.Code, "error", ce)
			if _, werr := fmt.Fprintf(w, "error: %v\n", ce); werr != nil {
				return werr
			}
			continue
		case err != nil:
			return err
		}

		if out.Output != "" {
			if _, err := fmt.Fprintln(w, out.Output); err != nil {
				return err
			}
		}
		if out.Quit {
			return nil
		}
	}
}

// ScannerSource is a LineSource over a reader that tracks line numbers.
type ScannerSource struct {
	sc   *bufio.Scanner
	line int
}

// NewLineSource wraps r.
func NewLineSource(r io.Reader) *ScannerSource {
	return &ScannerSource{sc: bufio.NewScanner(r)}
}

// NextLine returns the next line without its terminator.
func (s *ScannerSource) NextLine() (string, bool) {
	if !s.sc.Scan() {
		return "", false
	}
	s.line++
	return strings.TrimSuffix(s.sc.Text(), "\r"), true
}

// Line is the 1-based number of the last line returned.
func (s *ScannerSource) Line() int { return s.line }

// Err returns the first read error, if any.
func (s *ScannerSource) Err() error { return s.sc.Err() }

type noLines struct{}

func (noLines) NextLine() (string, bool) { return "", false }
