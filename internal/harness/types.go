package harness

// TraceEvent is one definition or run, in seq order.
type TraceEvent struct {
	Type     string `json:"type"` // "define" or "run"
	Seq      int64  `json:"seq"`
	Name     string `json:"name"`
	Kind     string `json:"kind,omitempty"`
	Input    string `json:"input,omitempty"`
	Accepted bool   `json:"accepted,omitempty"`
}

// Trace event types.
const (
	EventDefine = "define"
	EventRun    = "run"
)

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every check held.
	Pass bool `json:"pass"`

	// Trace lists definitions and runs ordered by seq.
	Trace []TraceEvent `json:"trace"`

	// Errors holds one message per failed check. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Output is what the scenario script printed.
	Output string `json:"output,omitempty"`
}

// NewResult creates a passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError records a failed check and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
