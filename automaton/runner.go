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

// A Runner simulates a Table on input fed one character at a time.
//
// The active state set is kept in a slice. States already added to the next
// set are marked with the current round number, which avoids clearing a
// visited set at every character.
type Runner struct {
	t      *Table
	cur    []int32
	next   []int32
	rounds []uint32
	round  uint32
}

// NewRunner returns a new Runner for t.
func NewRunner(t *Table) *Runner {
	return &Runner{
		t:      t,
		cur:    make([]int32, 0, len(t.class)),
		next:   make([]int32, 0, len(t.class)),
		rounds: make([]uint32, len(t.class)),
	}
}

// Table returns the Table run by r.
func (r *Runner) Table() *Table {
	return r.t
}

func (r *Runner) nextRound() {
	r.round++
	if r.round == 0 {
		for i := range r.rounds {
			r.rounds[i] = 0
		}
		r.round = 1
	}
}

// First starts a new match with character c. It returns the kind matched by
// c alone, or NoMatch.
func (r *Runner) First(c byte) int {
	r.nextRound()
	t := r.t
	r.cur = append(r.cur[:0], t.firstNext[t.firstOff[c]:t.firstOff[int(c)+1]]...)
	return int(t.firstAccept[c])
}

// Step feeds the next character of the current match. It returns the kind
// matched by the input fed since First, or NoMatch.
func (r *Runner) Step(c byte) int {
	r.nextRound()
	t := r.t
	kind := int32(NoMatch)
	next := r.next[:0]
	for _, s := range r.cur {
		if !t.class[s].Has(c) {
			continue
		}
		if t.accept[s] < kind {
			kind = t.accept[s]
		}
		for _, u := range t.next[t.nextOff[s]:t.nextOff[s+1]] {
			if r.rounds[u] != r.round {
				r.rounds[u] = r.round
				next = append(next, u)
			}
		}
	}
	r.cur, r.next = next, r.cur
	return int(kind)
}

// Alive returns true if more input can extend the current match.
func (r *Runner) Alive() bool {
	return len(r.cur) > 0
}
