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

package automaton

import (
	"errors"
	"fmt"
	"math"
)

// NoMatch is the accept value of transitions that do not complete a match.
// Since the lowest kind wins ties, it is larger than any kind.
const NoMatch = math.MaxInt32

// ErrEmptyMatch is returned by Build when a rule matches the empty string.
var ErrEmptyMatch = errors.New("pattern matches the empty string")

// nstate is a Thompson NFA state. A state has at most one character
// transition.
type nstate struct {
	class  Class
	out    int // target of the character transition, -1 if none
	eps    []int
	accept int // kind accepted in this state or NoMatch
}

type frag struct {
	start, end int
}

// A Builder compiles a set of patterns into a Table.
type Builder struct {
	states []nstate
	rules  []rule
}

type rule struct {
	start int
	kind  int
}

func (b *Builder) newState() int {
	b.states = append(b.states, nstate{out: -1, accept: NoMatch})
	return len(b.states) - 1
}

func (b *Builder) epsilon(from, to int) {
	b.states[from].eps = append(b.states[from].eps, to)
}

// Add adds a pattern accepting kind. Kinds must be non-negative. When patterns
// of different kinds match the same input, the lowest kind wins.
func (b *Builder) Add(n *Node, kind int) {
	f := b.compile(n)
	b.states[f.end].accept = kind
	b.rules = append(b.rules, rule{f.start, kind})
}

func (b *Builder) compile(n *Node) frag {
	switch n.Op {
	case OpEmpty:
		s := b.newState()
		return frag{s, s}
	case OpClass:
		s, e := b.newState(), b.newState()
		b.states[s].class = n.Class
		b.states[s].out = e
		return frag{s, e}
	case OpConcat:
		f := b.compile(n.Sub[0])
		for _, sub := range n.Sub[1:] {
			g := b.compile(sub)
			b.epsilon(f.end, g.start)
			f.end = g.end
		}
		return f
	case OpAlt:
		s, e := b.newState(), b.newState()
		for _, sub := range n.Sub {
			g := b.compile(sub)
			b.epsilon(s, g.start)
			b.epsilon(g.end, e)
		}
		return frag{s, e}
	case OpStar:
		g := b.compile(n.Sub[0])
		s, e := b.newState(), b.newState()
		b.epsilon(s, g.start)
		b.epsilon(s, e)
		b.epsilon(g.end, g.start)
		b.epsilon(g.end, e)
		return frag{s, e}
	case OpPlus:
		g := b.compile(n.Sub[0])
		e := b.newState()
		b.epsilon(g.end, g.start)
		b.epsilon(g.end, e)
		return frag{g.start, e}
	case OpQuest:
		g := b.compile(n.Sub[0])
		s, e := b.newState(), b.newState()
		b.epsilon(s, g.start)
		b.epsilon(s, e)
		b.epsilon(g.end, e)
		return frag{s, e}
	}
	panic(fmt.Sprintf("automaton: invalid op %d", n.Op))
}

// closure returns the character states reachable from s through epsilon
// transitions, and the lowest kind accepted along the way.
func (b *Builder) closure(s int, mark []bool, set []int) ([]int, int) {
	for i := range mark {
		mark[i] = false
	}
	set = set[:0]
	accept := NoMatch
	stack := []int{s}
	mark[s] = true
	for len(stack) > 0 {
		u := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		st := &b.states[u]
		if st.out >= 0 {
			set = append(set, u)
		}
		if st.accept < accept {
			accept = st.accept
		}
		for _, v := range st.eps {
			if !mark[v] {
				mark[v] = true
				stack = append(stack, v)
			}
		}
	}
	return set, accept
}

// Build folds the epsilon closures of the NFA into a Table. It fails with
// ErrEmptyMatch if a pattern matches the empty string.
func (b *Builder) Build() (*Table, error) {
	// number character states
	ids := make([]int32, len(b.states))
	n := 0
	for i := range b.states {
		ids[i] = -1
		if b.states[i].out >= 0 {
			ids[i] = int32(n)
			n++
		}
	}

	t := &Table{
		class:   make([]Class, n),
		nextOff: make([]int32, n+1),
		accept:  make([]int32, n),
	}
	mark := make([]bool, len(b.states))
	var set []int
	var accept int
	for i := range b.states {
		st := &b.states[i]
		if st.out < 0 {
			continue
		}
		id := ids[i]
		t.class[id] = st.class
		set, accept = b.closure(st.out, mark, set)
		t.accept[id] = int32(accept)
		for _, s := range set {
			t.next = append(t.next, ids[s])
		}
		t.nextOff[id+1] = int32(len(t.next))
	}

	seen := make([]bool, n)
	for _, r := range b.rules {
		set, accept = b.closure(r.start, mark, set)
		if accept != NoMatch {
			return nil, fmt.Errorf("%w (kind %d)", ErrEmptyMatch, r.kind)
		}
		for _, s := range set {
			if id := ids[s]; !seen[id] {
				seen[id] = true
				t.start = append(t.start, id)
			}
		}
	}

	t.buildFirst()
	return t, nil
}

// A Table is the compiled automaton for a set of patterns. Each state is a
// character transition: a Class, the states that follow it, and the kind
// accepted by taking the transition.
//
// A Table is immutable and can be shared between Runners.
type Table struct {
	class   []Class
	nextOff []int32 // successors of state i are next[nextOff[i]:nextOff[i+1]]
	next    []int32
	accept  []int32
	start   []int32

	// first character dispatch, computed from the start states
	firstOff    [257]int32
	firstNext   []int32
	firstAccept [256]int32
}

func (t *Table) buildFirst() {
	seen := make([]int, len(t.class))
	for c := 0; c < 256; c++ {
		t.firstOff[c] = int32(len(t.firstNext))
		accept := int32(NoMatch)
		for _, s := range t.start {
			if !t.class[s].Has(byte(c)) {
				continue
			}
			if t.accept[s] < accept {
				accept = t.accept[s]
			}
			for _, u := range t.next[t.nextOff[s]:t.nextOff[s+1]] {
				if seen[u] != c+1 {
					seen[u] = c + 1
					t.firstNext = append(t.firstNext, u)
				}
			}
		}
		t.firstAccept[c] = accept
	}
	t.firstOff[256] = int32(len(t.firstNext))
}

// Len returns the number of states in t.
func (t *Table) Len() int {
	return len(t.class)
}

// CanStart returns true if some pattern in t starts with c.
func (t *Table) CanStart(c byte) bool {
	return t.firstAccept[c] != NoMatch || t.firstOff[c] != t.firstOff[int(c)+1]
}

// Match returns the kind and length of the longest prefix of s matched by t.
// It returns NoMatch, 0 if no prefix matches.
func (t *Table) Match(s string) (kind, length int) {
	kind = NoMatch
	if len(s) == 0 {
		return kind, 0
	}
	r := NewRunner(t)
	k := r.First(s[0])
	for i := 0; ; {
		if k != NoMatch {
			kind, length = k, i+1
		}
		i++
		if i == len(s) || !r.Alive() {
			return kind, length
		}
		k = r.Step(s[i])
	}
}
