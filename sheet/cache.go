package sheet

import (
	"github.com/zeebo/xxh3"

	"github.com/ardnew/solvee/lang"
)

// Both caches are keyed by the xxh3 hash of a line's text. Entries keep the
// text itself, so a hash collision is a miss rather than a wrong answer.

type parsed struct {
	program *lang.Program
	err     error
	text    string
	blank   bool
}

// binding is the value a name resolved to in the scope of an evaluation.
type binding struct {
	name  string
	value float64
	bound bool
}

type evaluated struct {
	err   error
	text  string
	deps  []binding
	value float64
}

type cache struct {
	parsed    map[uint64]parsed
	evaluated map[uint64]evaluated
}

func newCache() cache {
	return cache{
		parsed:    make(map[uint64]parsed),
		evaluated: make(map[uint64]evaluated),
	}
}

func hashLine(text string) uint64 { return xxh3.HashString(text) }

// parse returns the parse of text, from the cache when possible.
func (c cache) parse(key uint64, text string) parsed {
	if p, ok := c.parsed[key]; ok && p.text == text {
		return p
	}

	p := parsed{text: text}

	tokens, err := lang.Lex(text)

	switch {
	case err != nil:
		p.err = err
	case lang.IsBlank(tokens):
		p.blank = true
	default:
		p.program, p.err = lang.ParseTokens(tokens)
	}

	c.parsed[key] = p

	return p
}

// lookup returns a cached evaluation of text whose dependencies resolve to
// the same values in env.
func (c cache) lookup(key uint64, text string, env *lang.Env) (evaluated, bool) {
	e, ok := c.evaluated[key]
	if !ok || e.text != text {
		return evaluated{}, false
	}

	for _, dep := range e.deps {
		v, bound := env.Get(dep.name)
		if bound != dep.bound || v != dep.value {
			return evaluated{}, false
		}
	}

	return e, true
}

// eval evaluates program against env and caches the result along with the
// bindings it read.
func (c cache) eval(key uint64, text string, program *lang.Program, env *lang.Env) evaluated {
	e := evaluated{text: text, deps: make([]binding, len(program.Names))}

	for i, name := range program.Names {
		v, bound := env.Get(name)
		e.deps[i] = binding{name: name, value: v, bound: bound}
	}

	e.value, e.err = program.Run(env)
	c.evaluated[key] = e

	return e
}

// retain drops every entry whose key is not in live.
func (c cache) retain(live map[uint64]struct{}) {
	for key := range c.parsed {
		if _, ok := live[key]; !ok {
			delete(c.parsed, key)
		}
	}

	for key := range c.evaluated {
		if _, ok := live[key]; !ok {
			delete(c.evaluated, key)
		}
	}
}
