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
	"io"
	"strings"
	"unicode"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/width"

	"github.com/db47h/lex/v2"
)

// Report writes err to w. If err is a *LexicalError and the source line can
// be read back from f, the line is printed below the message, followed by a
// caret under the error position:
//
//	file:line:col: lexical error ...
//	|source line
//	|     ^
//
// Reading back source lines requires the reader of f to implement io.Seeker.
//
func Report(w io.Writer, f *lex.File, err error) error {
	if _, e := fmt.Fprintln(w, err); e != nil {
		return e
	}
	var le *LexicalError
	if f == nil || !errors.As(err, &le) {
		return nil
	}
	lp := f.LinePos(le.Pos.Line)
	if !lp.IsValid() {
		return nil
	}
	l, e := f.GetLineBytes(lp)
	if e != nil {
		return nil
	}
	// ISO8859_1 decodes any byte
	src, _ := charmap.ISO8859_1.NewDecoder().Bytes(l)
	b := int(le.Pos.Offset - lp)
	if b > len(l) {
		b = len(l)
	}
	if b < 0 {
		b = 0
	}
	var caret strings.Builder
	// Latin-1 characters are 1 byte each, so the first b runes of src are
	// the characters before the error.
	for _, r := range string(src) {
		if b == 0 {
			break
		}
		b--
		switch {
		case r == '\t':
			caret.WriteByte('\t')
		case !unicode.IsGraphic(r):
		default:
			caret.WriteString(strings.Repeat(" ", runeWidth(r)))
		}
	}
	_, e = fmt.Fprintf(w, "|%s\n|%s^\n", src, caret.String())
	return e
}

// runeWidth returns the width in text cells of r, supposing rendering with a
// UTF-8 locale and a monospaced font.
//
func runeWidth(r rune) int {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianFullwidth, width.EastAsianWide:
		return 2
	}
	return 1
}
