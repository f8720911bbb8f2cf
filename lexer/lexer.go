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
	"fmt"
	"io"
	"strings"

	"github.com/db47h/lex/v2"
	"github.com/db47h/lex/v2/automaton"
	"github.com/db47h/lex/v2/token"
)

// A Lexer splits the input of a Stream into tokens.
//
// A Lexer is not safe for concurrent use. Use one Lexer and one Stream per
// input; the Grammar can be shared.
//
type Lexer struct {
	g       *Grammar
	s       *lex.Stream
	mode    int
	runners []*automaton.Runner // by mode, created on first use

	// unterminated mode tracking
	outer  int
	opened lex.Position
	acc    strings.Builder
}

type options struct {
	mode int
}

// An Option is a configuration option for a new Lexer.
//
type Option func(*options)

// InitialMode sets the mode the lexer starts in. The default is 0, the first
// mode of the grammar.
//
func InitialMode(m int) Option {
	return func(o *options) {
		o.mode = m
	}
}

// New returns a new Lexer reading tokens of grammar g from s. It panics if
// the initial mode is invalid.
//
func New(g *Grammar, s *lex.Stream, opts ...Option) *Lexer {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	l := &Lexer{
		g:       g,
		runners: make([]*automaton.Runner, len(g.modes)),
	}
	l.ReInit(s)
	if err := l.SwitchTo(o.mode); err != nil {
		panic(err)
	}
	return l
}

// ReInit resets the lexer to read from s, in the default mode.
//
func (l *Lexer) ReInit(s *lex.Stream) {
	l.s = s
	l.mode = 0
	l.outer = 0
	l.opened = lex.Position{}
	l.acc.Reset()
}

// Grammar returns the grammar of l.
//
func (l *Lexer) Grammar() *Grammar { return l.g }

// Stream returns the input stream of l.
//
func (l *Lexer) Stream() *lex.Stream { return l.s }

// Mode returns the current lexical mode.
//
func (l *Lexer) Mode() int { return l.mode }

// SwitchTo switches to lexical mode m.
//
func (l *Lexer) SwitchTo(m int) error {
	if m < 0 || m >= len(l.g.modes) {
		return fmt.Errorf("%w: %d", ErrInvalidMode, m)
	}
	l.enter(m, "", l.s.Cursor())
	return nil
}

func (l *Lexer) enter(m int, image string, begin lex.Position) {
	switch {
	case l.g.modes[m].unterminated && !l.g.modes[l.mode].unterminated:
		l.outer = l.mode
		l.opened = begin
		l.acc.Reset()
		l.acc.WriteString(image)
	case !l.g.modes[m].unterminated:
		l.acc.Reset()
	}
	l.mode = m
}

func (l *Lexer) runner(m int) *automaton.Runner {
	r := l.runners[m]
	if r == nil {
		r = automaton.NewRunner(l.g.modes[m].table)
		l.runners[m] = r
	}
	return r
}

// Next returns the next token. At the end of input, it returns a token of
// kind token.EOF, and keeps doing so on subsequent calls.
//
// If no rule matches, Next returns a *LexicalError and leaves the input
// position unspecified. Callers can either stop or call SkipChar and resume.
// Read errors other than io.EOF are returned as is.
//
func (l *Lexer) Next() (token.Token, error) {
	for {
		c, err := l.s.BeginToken()
		if err != nil {
			if err != io.EOF {
				return token.Token{}, err
			}
			if l.g.modes[l.mode].unterminated {
				return token.Token{}, l.unterminated()
			}
			p := l.s.Cursor()
			return token.Token{Kind: token.EOF, Begin: p, End: p}, nil
		}

		r := l.runner(l.mode)
		kind, matchedPos, curPos := r.First(c), 0, 0
		for r.Alive() {
			cc, err := l.s.ReadChar()
			if err != nil {
				if err != io.EOF {
					return token.Token{}, err
				}
				break
			}
			c = cc
			curPos++
			if k := r.Step(c); k != automaton.NoMatch {
				kind, matchedPos = k, curPos
			}
		}
		if kind == automaton.NoMatch {
			return token.Token{}, l.lexicalError(c, curPos+1)
		}
		if n := curPos - matchedPos; n > 0 {
			l.s.Backup(n)
		}

		k := token.Kind(kind)
		m := &l.g.modes[l.mode]
		skip := l.g.skip[k/64]&(1<<(k%64)) != 0
		var image string
		if !skip || m.unterminated || m.next[k] >= 0 {
			if image = l.g.kinds[k].literal; image == "" {
				image = l.s.Image()
			}
		}
		begin := l.s.Begin()
		if m.unterminated {
			l.acc.WriteString(image)
		}
		if next := m.next[k]; next >= 0 {
			l.enter(int(next), image, begin)
		}
		if skip {
			continue
		}
		return token.Token{Kind: k, Image: image, Begin: begin, End: l.s.End()}, nil
	}
}

// lexicalError builds the error for a failed match after reading n
// characters, the last one being c.
//
func (l *Lexer) lexicalError(c byte, n int) error {
	e := &LexicalError{
		Mode: l.g.modes[l.mode].name,
		Pos:  l.s.End(),
		Char: c,
	}
	if _, err := l.s.ReadChar(); err != nil {
		e.EOFSeen = true
		if n > 1 {
			e.After = l.s.Image()
		}
		if c == '\n' || c == '\r' {
			e.Pos.Line++
			e.Pos.Column = 0
		} else {
			e.Pos.Column++
		}
		e.Pos.Offset++
		return e
	}
	l.s.Backup(2)
	if n > 1 {
		e.After = l.s.Image()
	}
	return e
}

// unterminated reports the end of input in an unterminated mode, then
// returns to the mode that was active before entering it.
//
func (l *Lexer) unterminated() error {
	e := &LexicalError{
		EOFSeen: true,
		Mode:    l.g.modes[l.mode].name,
		Pos:     l.s.Cursor(),
		After:   l.acc.String(),
		Opened:  l.opened,
	}
	if len(e.After) > 0 {
		e.Char = e.After[len(e.After)-1]
	}
	l.mode = l.outer
	l.acc.Reset()
	return e
}

// SkipChar moves the input position right after the first character of the
// last token or failed match. Callers use it to resume after a
// *LexicalError.
//
func (l *Lexer) SkipChar() {
	l.s.Retract()
}

// All returns all the tokens up to, and not including, the EOF token. It
// stops at the first error.
//
func (l *Lexer) All() ([]token.Token, error) {
	var toks []token.Token
	for {
		t, err := l.Next()
		if err != nil {
			return toks, err
		}
		if t.Kind == token.EOF {
			return toks, nil
		}
		toks = append(toks, t)
	}
}
