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

// Package webmacro implements a lexer for WebMacro templates.
//
// A template starts in the Default mode, where anything but directives,
// variables, braces and backslash escapes is plain text (STUFF tokens).
// Directives like #set or #foreach, #begin and { switch to the WM mode, where
// expressions are lexed; a closing } returns to Default. Double and single
// quotes switch to the QS and SQS modes for the inside of strings, and #--
// starts a block comment that runs up to --#. Line comments start with ##.
//
// The grammar layer may switch modes with SwitchTo, e.g. to lex the body of
// a directive as text.
package webmacro

import (
	_ "embed"

	"github.com/db47h/lex/v2"
	"github.com/db47h/lex/v2/lexer"
	"github.com/db47h/lex/v2/lexer/lang"
	"github.com/db47h/lex/v2/token"
)

//go:embed webmacro.yaml
var definition []byte

var grammar = lang.MustParse(definition)

// Lexical modes.
const (
	Default = iota
	WM
	QS
	SQS
	Comment
)

// Token kinds. Comments, and white space in the WM mode, are skipped.
const (
	LineComment token.Kind = iota + 1
	CommentStart
	CommentEnd
	CommentText
	Begin
	End
	Directive
	Pound
	LBrace
	RBrace
	Dollar
	QChar // backslash escaped character
	Slash // lone backslash at the end of input
	Stuff // template text
	WS
	Newline
	Quote
	SQuote
	Null
	True
	False
	Undefined
	LParen
	RParen
	LBracket
	RBracket
	Colon
	Dot
	OpLT
	OpLE
	OpGT
	OpGE
	OpEQ
	OpSet
	OpNE
	OpPlus
	OpMinus
	OpMult
	OpDiv
	OpAnd
	OpOr
	OpNot
	Comma
	Semi
	Word
	Number
	QSText
	SQSText
)

// Grammar returns the WebMacro grammar.
func Grammar() *lexer.Grammar {
	return grammar
}

// Definition returns the source of the WebMacro grammar definition.
func Definition() []byte {
	return definition
}

// New returns a lexer reading a WebMacro template from f.
func New(f *lex.File, opts ...lex.Option) *lexer.Lexer {
	return lexer.New(grammar, lex.NewStream(f, opts...))
}
