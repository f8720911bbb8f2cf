// Copyright 2017-2018 Denis Bernard <db047h@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
// the Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
// FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
// COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
// IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
// CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.

package lexer

import (
	"errors"
	"fmt"

	"github.com/db47h/lex/v2/automaton"
	"github.com/db47h/lex/v2/token"
)

// Grammar definition errors.
var (
	ErrNoModes       = errors.New("no lexical mode defined")
	ErrUnknownMode   = errors.New("unknown mode")
	ErrDuplicateMode = errors.New("duplicate mode")
	ErrMacro         = errors.New("invalid macro")
	ErrRule          = errors.New("invalid rule")
)

// A Macro is a named pattern that rules and other macros can refer to with
// {Name}. A macro can only refer to macros defined before it.
//
type Macro struct {
	Name    string `yaml:"name"`
	Pattern string `yaml:"match"`
}

// A Rule defines a token kind.
//
// Exactly one of Pattern and Literal must be set. The rule applies in the
// given modes, or in the default mode if Modes is empty.
//
// Several rules may share the same name: they define a single kind, which
// lets the same token switch to a different mode depending on the mode it
// was matched in. Rules sharing a name must agree on Skip.
//
type Rule struct {
	Name    string   `yaml:"name"`
	Modes   []string `yaml:"modes,omitempty"`
	Pattern string   `yaml:"match,omitempty"`
	Literal string   `yaml:"literal,omitempty"`
	Skip    bool     `yaml:"skip,omitempty"`
	Next    string   `yaml:"next,omitempty"` // mode switched to after the token
}

// A Definition describes the lexical structure of a language. Kinds are
// numbered in rule declaration order, starting at 1.
//
type Definition struct {
	Name  string   `yaml:"name"`
	Modes []string `yaml:"modes"` // the first one is the default mode

	// Unterminated lists the modes that a source must not end in, like the
	// inside of a quoted string or of a block comment.
	Unterminated []string `yaml:"unterminated,omitempty"`

	Macros []Macro `yaml:"macros,omitempty"`
	Rules  []Rule  `yaml:"tokens"`
}

type kindInfo struct {
	name    string
	literal string
	skip    bool
}

type mode struct {
	name         string
	table        *automaton.Table
	next         []int32 // next mode by kind, -1 to stay
	unterminated bool
}

// A Grammar is a compiled Definition. It is immutable and can be shared by
// any number of Lexers.
//
type Grammar struct {
	name   string
	modes  []mode
	kinds  []kindInfo // indexed by kind, kinds[0] is EOF
	skip   []uint64   // bitmask of skipped kinds
	byName map[string]token.Kind
}

// Compile compiles a Definition.
//
func Compile(def *Definition) (*Grammar, error) {
	if len(def.Modes) == 0 {
		return nil, ErrNoModes
	}
	g := &Grammar{
		name:   def.Name,
		kinds:  []kindInfo{{name: "EOF"}},
		byName: map[string]token.Kind{"EOF": token.EOF},
	}
	modes := make(map[string]int, len(def.Modes))
	for i, name := range def.Modes {
		if _, ok := modes[name]; ok {
			return nil, fmt.Errorf("%w %q", ErrDuplicateMode, name)
		}
		modes[name] = i
		g.modes = append(g.modes, mode{name: name})
	}
	for _, name := range def.Unterminated {
		m, ok := modes[name]
		if !ok {
			return nil, fmt.Errorf("%w %q", ErrUnknownMode, name)
		}
		g.modes[m].unterminated = true
	}

	macros := make(automaton.Macros, len(def.Macros))
	for _, m := range def.Macros {
		if _, ok := macros[m.Name]; ok || m.Name == "" {
			return nil, fmt.Errorf("%w %q: duplicate or empty name", ErrMacro, m.Name)
		}
		n, err := automaton.Parse(m.Pattern, macros)
		if err != nil {
			return nil, fmt.Errorf("%w %s: %w", ErrMacro, m.Name, err)
		}
		macros[m.Name] = n
	}

	builders := make([]automaton.Builder, len(g.modes))
	type transition struct {
		mode int
		kind token.Kind
		next int
	}
	var transitions []transition
	for i := range def.Rules {
		r := &def.Rules[i]
		if r.Name == "" {
			return nil, fmt.Errorf("%w #%d: missing name", ErrRule, i+1)
		}
		var (
			n   *automaton.Node
			err error
		)
		switch {
		case r.Pattern != "" && r.Literal != "":
			err = errors.New("both match and literal set")
		case r.Literal != "":
			n, err = automaton.Literal(r.Literal)
		default:
			n, err = automaton.Parse(r.Pattern, macros)
		}
		if err != nil {
			return nil, fmt.Errorf("%w %s: %w", ErrRule, r.Name, err)
		}

		k, ok := g.byName[r.Name]
		if !ok {
			k = token.Kind(len(g.kinds))
			g.byName[r.Name] = k
			g.kinds = append(g.kinds, kindInfo{name: r.Name, literal: r.Literal, skip: r.Skip})
		} else {
			ki := &g.kinds[k]
			if k == token.EOF || ki.skip != r.Skip {
				return nil, fmt.Errorf("%w %s: conflicting redefinition", ErrRule, r.Name)
			}
			if ki.literal != r.Literal {
				ki.literal = ""
			}
		}

		next := -1
		if r.Next != "" {
			if next, ok = modes[r.Next]; !ok {
				return nil, fmt.Errorf("%w %s: %w %q", ErrRule, r.Name, ErrUnknownMode, r.Next)
			}
		}
		ruleModes := r.Modes
		if len(ruleModes) == 0 {
			ruleModes = def.Modes[:1]
		}
		for _, name := range ruleModes {
			m, ok := modes[name]
			if !ok {
				return nil, fmt.Errorf("%w %s: %w %q", ErrRule, r.Name, ErrUnknownMode, name)
			}
			builders[m].Add(n, int(k))
			if next >= 0 {
				transitions = append(transitions, transition{m, k, next})
			}
		}
	}

	g.skip = make([]uint64, (len(g.kinds)+63)/64)
	for k, ki := range g.kinds {
		if ki.skip {
			g.skip[k/64] |= 1 << (k % 64)
		}
	}
	for i := range g.modes {
		m := &g.modes[i]
		t, err := builders[i].Build()
		if err != nil {
			return nil, fmt.Errorf("mode %s: %w", m.name, err)
		}
		m.table = t
		m.next = make([]int32, len(g.kinds))
		for k := range m.next {
			m.next[k] = -1
		}
	}
	for _, t := range transitions {
		g.modes[t.mode].next[t.kind] = int32(t.next)
	}
	return g, nil
}

// Name returns the grammar name.
//
func (g *Grammar) Name() string { return g.name }

// NumKinds returns the number of token kinds, EOF included.
//
func (g *Grammar) NumKinds() int { return len(g.kinds) }

// Kind returns the kind with the given name, or -1 if there is no such kind.
//
func (g *Grammar) Kind(name string) token.Kind {
	if k, ok := g.byName[name]; ok {
		return k
	}
	return -1
}

// KindName returns the name of kind k.
//
func (g *Grammar) KindName(k token.Kind) string {
	if k < 0 || int(k) >= len(g.kinds) {
		return fmt.Sprintf("Kind(%d)", k)
	}
	return g.kinds[k].name
}

// Literal returns the fixed image of kind k, or "" if tokens of that kind
// can have different images.
//
func (g *Grammar) Literal(k token.Kind) string {
	if k < 0 || int(k) >= len(g.kinds) {
		return ""
	}
	return g.kinds[k].literal
}

// IsSkip returns true if tokens of kind k are discarded by the lexer.
//
func (g *Grammar) IsSkip(k token.Kind) bool {
	return k >= 0 && int(k) < len(g.kinds) && g.skip[k/64]&(1<<(k%64)) != 0
}

// NumModes returns the number of lexical modes.
//
func (g *Grammar) NumModes() int { return len(g.modes) }

// Mode returns the index of the mode with the given name.
//
func (g *Grammar) Mode(name string) (int, bool) {
	for i := range g.modes {
		if g.modes[i].name == name {
			return i, true
		}
	}
	return -1, false
}

// ModeName returns the name of mode m.
//
func (g *Grammar) ModeName(m int) string {
	if m < 0 || m >= len(g.modes) {
		return fmt.Sprintf("Mode(%d)", m)
	}
	return g.modes[m].name
}

// Table returns the automaton of mode m.
//
func (g *Grammar) Table(m int) *automaton.Table {
	return g.modes[m].table
}

// Next returns the mode switched to after a token of kind k is matched in
// mode m, or -1 if the token does not switch modes.
//
func (g *Grammar) Next(m int, k token.Kind) int {
	return int(g.modes[m].next[k])
}
