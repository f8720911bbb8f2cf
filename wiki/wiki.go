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


// Package wiki implements a lexer and a page builder driver for a simple Wiki
// markup.
//
// The markup has a single lexical mode. Text is split into words, white
// space, line breaks and markup tokens: *bold*, _underline_, ~italic~,
// ^color text^, ^^header text^, ----- rules, [[quoted blocks]], CamelCase
// Wiki terms, short Wiki terms ending with $, URLs and e-mail addresses.
// Doubled markup characters (**, __, ~~, ^^) stand for the character itself.
//
// Parse feeds the tokens of a page to a Builder, one call per markup
// construct, in document order.
package wiki

import (
	_ "embed"
	"io"

	"github.com/db47h/lex/v2"
	"github.com/db47h/lex/v2/lexer"
	"github.com/db47h/lex/v2/lexer/lang"
	"github.com/db47h/lex/v2/token"
)

//go:embed wiki.yaml
var definition []byte

var grammar = lang.MustParse(definition)

// Token kinds.
const (
	QuotedBlock token.Kind = iota + 1
	Bold
	Underline
	Italic
	LT
	GT
	LI         // bulleted list item, at the start of an indented line
	LINumbered // numbered list item
	Color
	Header
	ColorHeaderTerminate
	Rule
	Email
	URL
	WikiTerm
	ShortWikiTerm
	Word
	NewParagraph
	LineBreak
	Indent
	Whitespace
	Tilde
	Asterisk
	Underscore
	Caret
	DoubleLBracket
	Delimiters // any other character
)

// Grammar returns the Wiki grammar.
func Grammar() *lexer.Grammar {
	return grammar
}

// Definition returns the source of the Wiki grammar definition.
func Definition() []byte {
	return definition
}

// New returns a lexer reading a Wiki page from f.
func New(f *lex.File, opts ...lex.Option) *lexer.Lexer {
	return lexer.New(grammar, lex.NewStream(f, opts...))
}

// A Builder builds a page from the markup constructs found by Parse.
//
// Bold, Underline and Italic toggle the corresponding style. Color and Header
// start a colored or header section that ends with EndColorOrHeader.
type Builder interface {
	Begin()
	Done()

	// IsWikiTermReference reports whether a CamelCase word refers to a page.
	// If not, it is passed to Word.
	IsWikiTermReference(term string) bool

	Bold()
	Underline()
	Italic()
	Color(color string)
	Header(name string)
	EndColorOrHeader()
	Indent(n int)
	Space()
	Newline()
	Paragraph()
	Ruler()
	Word(word string)
	WikiTerm(term string)
	LT()
	GT()
	LI()
	LINumbered()
	URL(url string)
	Email(addr string)
	QuotedBlock(text string)
}

// Parse reads all the tokens from l and calls the matching methods of b. It
// calls b.Begin first and b.Done once the end of input is reached. It returns
// the first read error, if any.
func Parse(l *lexer.Lexer, b Builder) error {
	var (
		color  string
		header string
	)
	b.Begin()
	for {
		t, err := l.Next()
		if err != nil {
			return err
		}
		text := t.Text()
		switch t.Kind {
		case token.EOF:
			b.Done()
			return nil
		case LT:
			b.LT()
		case GT:
			b.GT()
		case Bold:
			b.Bold()
		case Underline:
			b.Underline()
		case Italic:
			b.Italic()
		case Color:
			if color == "" && header == "" {
				color = text[1:]
				b.Color(color)
				break
			}
			// ^word right after a colored or header text closes it
			b.EndColorOrHeader()
			color, header = "", ""
			term(b, text[1:])
		case Header:
			header = text[2:]
			b.Header(header)
		case ColorHeaderTerminate:
			if color == "" && header == "" {
				b.Word("^")
				break
			}
			b.EndColorOrHeader()
			color, header = "", ""
		case Rule:
			b.Ruler()
		case Email:
			b.Email(text)
		case URL:
			b.URL(text)
		case WikiTerm:
			term(b, text)
		case ShortWikiTerm:
			b.WikiTerm(text[:len(text)-1])
		case Word, Delimiters:
			b.Word(text)
		case NewParagraph:
			b.Paragraph()
		case LineBreak:
			b.Newline()
		case Indent:
			b.Indent(2)
		case Whitespace:
			b.Space()
		case LI:
			b.LI()
		case LINumbered:
			b.LINumbered()
		case Tilde:
			b.Word("~")
		case Asterisk:
			b.Word("*")
		case Underscore:
			b.Word("_")
		case Caret:
			b.Word("^")
		case DoubleLBracket:
			b.Word("[[")
		case QuotedBlock:
			b.QuotedBlock(text[2 : len(text)-2])
		}
	}
}

func term(b Builder, s string) {
	if b.IsWikiTermReference(s) {
		b.WikiTerm(s)
	} else {
		b.Word(s)
	}
}

// ParseFile parses the Wiki page read from r with b.
func ParseFile(name string, r io.Reader, b Builder, opts ...lex.Option) error {
	return Parse(New(lex.NewFile(name, r), opts...), b)
}
