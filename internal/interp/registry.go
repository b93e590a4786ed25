package interp

import "sort"

// Registry maps names to values. One map holds every kind, so defining a
// name replaces any earlier value under it regardless of kind.
type Registry struct {
	values map[string]Value
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{values: make(map[string]Value)}
}

// Define registers v under name and returns the value it replaced, if any.
func (r *Registry) Define(name string, v Value) (Value, bool) {
	old, ok := r.values[name]
	r.values[name] = v
	return old, ok
}

// Lookup returns the value registered under name.
func (r *Registry) Lookup(name string) (Value, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Names returns every registered name, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.values))
	for name := range r.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered names.
func (r *Registry) Len() int { return len(r.values) }
