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
	"strings"

	"github.com/db47h/lex/v2"
)

// ErrInvalidMode is returned by SwitchTo for out of range modes.
//
var ErrInvalidMode = errors.New("invalid lexical mode")

// A LexicalError is returned by Lexer.Next when no rule of the current mode
// matches the input.
//
type LexicalError struct {
	// EOFSeen is true if the end of input was reached while trying to match
	// a token.
	EOFSeen bool
	Mode    string       // name of the lexical mode
	Pos     lex.Position // where the error occurred
	After   string       // input read from the token start up to the error
	Char    byte         // last character read

	// For errors at the end of input in an unterminated mode, Opened is the
	// position of the token that entered the mode. Otherwise Opened.Line is
	// 0.
	Opened lex.Position
}

func (e *LexicalError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: lexical error in mode %s: encountered ", e.Pos, e.Mode)
	if e.EOFSeen {
		b.WriteString("<EOF>")
	} else {
		fmt.Fprintf(&b, "%q (%d)", e.Char, e.Char)
	}
	fmt.Fprintf(&b, " after %q", e.After)
	if e.Opened.Line > 0 {
		fmt.Fprintf(&b, ", unterminated since %d:%d", e.Opened.Line, e.Opened.Column)
	}
	return b.String()
}
