package lang

import (
	"iter"
	"log/slog"
)

// Scope resolves variable names during evaluation.
type Scope interface {
	Lookup(name string) (float64, bool)
}

// Env is an ordered set of variable bindings.
//
// Names iterate in the order they were first assigned; reassigning a name
// updates its value in place. Names are case-sensitive. The zero Env is
// empty and ready to use. An Env is not safe for concurrent mutation.
type Env struct {
	values map[string]float64
	names  []string
}

// NewEnv returns an empty environment.
func NewEnv() *Env { return &Env{} }

// Get returns the value bound to name.
func (e *Env) Get(name string) (float64, bool) {
	if e == nil {
		return 0, false
	}

	v, ok := e.values[name]

	return v, ok
}

// Lookup implements [Scope].
func (e *Env) Lookup(name string) (float64, bool) { return e.Get(name) }

// Set binds name to value.
func (e *Env) Set(name string, value float64) {
	if e.values == nil {
		e.values = make(map[string]float64)
	}

	if _, ok := e.values[name]; !ok {
		e.names = append(e.names, name)
	}

	e.values[name] = value
}

// Len returns the number of bound names.
func (e *Env) Len() int {
	if e == nil {
		return 0
	}

	return len(e.names)
}

// Names returns the bound names in first-assignment order.
func (e *Env) Names() []string {
	if e == nil {
		return nil
	}

	return append([]string(nil), e.names...)
}

// All iterates the bindings in first-assignment order.
func (e *Env) All() iter.Seq2[string, float64] {
	return func(yield func(string, float64) bool) {
		if e == nil {
			return
		}

		for _, name := range e.names {
			if !yield(name, e.values[name]) {
				return
			}
		}
	}
}

// Clone returns an independent copy of e.
func (e *Env) Clone() *Env {
	c := &Env{}
	if e == nil || len(e.names) == 0 {
		return c
	}

	c.names = append(c.names, e.names...)
	c.values = make(map[string]float64, len(e.values))

	for k, v := range e.values {
		c.values[k] = v
	}

	return c
}

func (e *Env) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, e.Len())
	for name, v := range e.All() {
		attrs = append(attrs, slog.Float64(name, v))
	}

	return slog.GroupValue(attrs...)
}
