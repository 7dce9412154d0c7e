package vocab

import "github.com/blevesearch/vellum"

// prefixAutomaton implements vellum.Automaton for "starts with prefix":
// the GLOSSARY's "Levenshtein automaton ... composed here with a prefix
// matcher to also accept extensions." States 0..len(prefix) track bytes
// of prefix matched so far; -1 is the dead (failed) state.
type prefixAutomaton struct {
	prefix []byte
}

func newPrefixAutomaton(prefix string) *prefixAutomaton {
	return &prefixAutomaton{prefix: []byte(prefix)}
}

func (p *prefixAutomaton) Start() int { return 0 }

func (p *prefixAutomaton) IsMatch(state int) bool {
	return state >= len(p.prefix)
}

func (p *prefixAutomaton) CanMatch(state int) bool {
	return state != -1
}

func (p *prefixAutomaton) WillAlwaysMatch(state int) bool {
	return state >= len(p.prefix)
}

func (p *prefixAutomaton) Accept(state int, c byte) int {
	if state == -1 {
		return -1
	}
	if state >= len(p.prefix) {
		return state // prefix already fully matched; any continuation matches
	}
	if p.prefix[state] == c {
		return state + 1
	}
	return -1
}

// pairState packs the product state of two automata being unioned.
type pairState struct {
	a, b int
}

// orAutomaton implements vellum.Automaton as the union (OR) of two
// automata, the Go analogue of the original `fst::automaton`'s
// `.union(...)` combinator (e.g. Levenshtein(term, d).union(StartsWith(term))).
type orAutomaton struct {
	a, b   vellum.Automaton
	states []pairState
}

func newOrAutomaton(a, b vellum.Automaton) *orAutomaton {
	o := &orAutomaton{a: a, b: b}
	o.states = []pairState{{a.Start(), b.Start()}}
	return o
}

func (o *orAutomaton) Start() int { return 0 }

func (o *orAutomaton) IsMatch(state int) bool {
	s := o.states[state]
	return o.a.IsMatch(s.a) || o.b.IsMatch(s.b)
}

func (o *orAutomaton) CanMatch(state int) bool {
	s := o.states[state]
	return o.a.CanMatch(s.a) || o.b.CanMatch(s.b)
}

func (o *orAutomaton) WillAlwaysMatch(state int) bool {
	s := o.states[state]
	return o.a.WillAlwaysMatch(s.a) || o.b.WillAlwaysMatch(s.b)
}

func (o *orAutomaton) Accept(state int, c byte) int {
	s := o.states[state]
	next := pairState{o.a.Accept(s.a, c), o.b.Accept(s.b, c)}
	for i, existing := range o.states {
		if existing == next {
			return i
		}
	}
	o.states = append(o.states, next)
	return len(o.states) - 1
}
