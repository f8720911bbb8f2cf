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
	"unicode/utf8"
)

// Pattern syntax errors.
var (
	ErrUnmatchedLpar       = errors.New("unmatched '('")
	ErrUnmatchedRpar       = errors.New("unmatched ')'")
	ErrUnmatchedLbkt       = errors.New("unmatched '['")
	ErrUnmatchedRbkt       = errors.New("unmatched ']'")
	ErrBadRange            = errors.New("bad range in character class")
	ErrExtraneousBackslash = errors.New("extraneous backslash")
	ErrBareClosure         = errors.New("closure applies to nothing")
	ErrBadBackslash        = errors.New("illegal backslash escape")
	ErrUnknownMacro        = errors.New("unknown macro")
	ErrNotLatin1           = errors.New("character out of Latin-1 range")
	ErrEmptyPattern        = errors.New("empty pattern")
)

// Op is the operator of a pattern Node.
type Op uint8

// Node operators.
const (
	OpEmpty  Op = iota // matches the empty string
	OpClass            // matches one character of Class
	OpConcat           // Sub[0] followed by Sub[1]...
	OpAlt              // Sub[0] or Sub[1]...
	OpStar             // Sub[0] zero or more times
	OpPlus             // Sub[0] one or more times
	OpQuest            // Sub[0] zero or one time
)

// A Node is a node in the syntax tree of a pattern.
type Node struct {
	Op    Op
	Class Class
	Sub   []*Node
}

// Macros maps macro names to their parsed pattern. Patterns refer to macros
// with {NAME}.
type Macros map[string]*Node

// Literal returns a Node matching exactly s. Characters in s are Unicode code
// points and must be in the Latin-1 range.
func Literal(s string) (*Node, error) {
	if s == "" {
		return nil, ErrEmptyPattern
	}
	n := &Node{Op: OpConcat}
	for i, r := range s {
		if r > 0xff || r == utf8.RuneError {
			return nil, fmt.Errorf("%w at offset %d", ErrNotLatin1, i)
		}
		var cl Class
		cl.Add(byte(r))
		n.Sub = append(n.Sub, &Node{Op: OpClass, Class: cl})
	}
	if len(n.Sub) == 1 {
		return n.Sub[0], nil
	}
	return n, nil
}

// Parse parses a pattern. The syntax is:
//
//	x        the character x
//	\n \r \t \f \v \xHH
//	         escaped characters; a backslash before any punctuation
//	         character matches that character
//	.        any character, newlines included
//	[abc]    character class; ranges like a-z are allowed
//	[^abc]   negated character class
//	{NAME}   the pattern of macro NAME
//	(re)     grouping
//	re|re    alternation
//	re* re+ re?
//	         zero or more, one or more, zero or one
//
// A '{' not followed by a macro name and a '}' matches itself.
func Parse(expr string, macros Macros) (*Node, error) {
	if expr == "" {
		return nil, ErrEmptyPattern
	}
	p := parser{s: expr, macros: macros}
	return p.alt()
}

type parser struct {
	s      string
	pos    int
	depth  int
	macros Macros
}

func (p *parser) errorf(err error) error {
	return fmt.Errorf("%w at offset %d", err, p.pos)
}

func (p *parser) peek() (rune, int) {
	if p.pos >= len(p.s) {
		return -1, 0
	}
	r, sz := utf8.DecodeRuneInString(p.s[p.pos:])
	return r, sz
}

func (p *parser) alt() (*Node, error) {
	var subs []*Node
	for {
		n, err := p.concat()
		if err != nil {
			return nil, err
		}
		subs = append(subs, n)
		if r, _ := p.peek(); r != '|' {
			break
		}
		p.pos++
	}
	if len(subs) == 1 {
		return subs[0], nil
	}
	return &Node{Op: OpAlt, Sub: subs}, nil
}

func (p *parser) concat() (*Node, error) {
	var subs []*Node
	for {
		r, _ := p.peek()
		if r == -1 || r == '|' || r == ')' && p.depth > 0 {
			break
		}
		n, err := p.repeat()
		if err != nil {
			return nil, err
		}
		subs = append(subs, n)
	}
	switch len(subs) {
	case 0:
		return &Node{Op: OpEmpty}, nil
	case 1:
		return subs[0], nil
	}
	return &Node{Op: OpConcat, Sub: subs}, nil
}

func (p *parser) repeat() (*Node, error) {
	n, err := p.atom()
	if err != nil {
		return nil, err
	}
	for {
		var op Op
		switch r, _ := p.peek(); r {
		case '*':
			op = OpStar
		case '+':
			op = OpPlus
		case '?':
			op = OpQuest
		default:
			return n, nil
		}
		p.pos++
		n = &Node{Op: op, Sub: []*Node{n}}
	}
}

func (p *parser) atom() (*Node, error) {
	r, _ := p.peek()
	switch r {
	case '*', '+', '?':
		return nil, p.errorf(ErrBareClosure)
	case ')':
		return nil, p.errorf(ErrUnmatchedRpar)
	case ']':
		return nil, p.errorf(ErrUnmatchedRbkt)
	case '(':
		start := p.pos
		p.pos++
		p.depth++
		n, err := p.alt()
		if err != nil {
			return nil, err
		}
		p.depth--
		if r, _ := p.peek(); r != ')' {
			p.pos = start
			return nil, p.errorf(ErrUnmatchedLpar)
		}
		p.pos++
		return n, nil
	case '[':
		return p.class()
	case '.':
		p.pos++
		return &Node{Op: OpClass, Class: AnyChar()}, nil
	case '{':
		if name, ok := p.macroName(); ok {
			n, found := p.macros[name]
			if !found {
				return nil, fmt.Errorf("%w %q at offset %d", ErrUnknownMacro, name, p.pos)
			}
			p.pos += len(name) + 2
			return n, nil
		}
	}
	c, err := p.char()
	if err != nil {
		return nil, err
	}
	var cl Class
	cl.Add(c)
	return &Node{Op: OpClass, Class: cl}, nil
}

// macroName returns the macro name if the input at the current position is
// {NAME}, with NAME an identifier.
func (p *parser) macroName() (string, bool) {
	s := p.s[p.pos+1:]
	i := 0
	for ; i < len(s); i++ {
		c := s[i]
		if c == '_' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || i > 0 && '0' <= c && c <= '9' {
			continue
		}
		break
	}
	if i == 0 || i == len(s) || s[i] != '}' {
		return "", false
	}
	return s[:i], true
}

// char reads a single, possibly escaped, character.
func (p *parser) char() (byte, error) {
	r, sz := p.peek()
	if r != '\\' {
		if r > 0xff || r == utf8.RuneError && sz == 1 {
			return 0, p.errorf(ErrNotLatin1)
		}
		p.pos += sz
		return byte(r), nil
	}
	p.pos++
	r, sz = p.peek()
	if r == -1 {
		p.pos--
		return 0, p.errorf(ErrExtraneousBackslash)
	}
	switch r {
	case 'n':
		r = '\n'
	case 'r':
		r = '\r'
	case 't':
		r = '\t'
	case 'f':
		r = '\f'
	case 'v':
		r = '\v'
	case 'x':
		if p.pos+3 > len(p.s) {
			return 0, p.errorf(ErrBadBackslash)
		}
		h, ok1 := unhex(p.s[p.pos+1])
		l, ok2 := unhex(p.s[p.pos+2])
		if !ok1 || !ok2 {
			return 0, p.errorf(ErrBadBackslash)
		}
		p.pos += 3
		return h<<4 | l, nil
	default:
		if r >= 0x80 || !isPunct(byte(r)) {
			return 0, p.errorf(ErrBadBackslash)
		}
	}
	p.pos += sz
	return byte(r), nil
}

func (p *parser) class() (*Node, error) {
	start := p.pos
	p.pos++ // [
	var cl Class
	neg := false
	if r, _ := p.peek(); r == '^' {
		neg = true
		p.pos++
	}
	first := true
	for {
		r, _ := p.peek()
		switch {
		case r == -1:
			p.pos = start
			return nil, p.errorf(ErrUnmatchedLbkt)
		case r == ']' && !first:
			p.pos++
			if neg {
				cl = cl.Negate()
			}
			return &Node{Op: OpClass, Class: cl}, nil
		}
		first = false
		lo, err := p.char()
		if err != nil {
			return nil, err
		}
		// a '-' right before ']' is a literal
		if r, _ := p.peek(); r != '-' || p.pos+1 < len(p.s) && p.s[p.pos+1] == ']' {
			cl.Add(lo)
			continue
		}
		p.pos++ // -
		if p.pos >= len(p.s) {
			p.pos = start
			return nil, p.errorf(ErrUnmatchedLbkt)
		}
		hi, err := p.char()
		if err != nil {
			return nil, err
		}
		if hi < lo {
			return nil, p.errorf(ErrBadRange)
		}
		cl.AddRange(lo, hi)
	}
}

func isPunct(c byte) bool {
	return '!' <= c && c <= '/' || ':' <= c && c <= '@' || '[' <= c && c <= '`' || '{' <= c && c <= '~'
}

func unhex(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
