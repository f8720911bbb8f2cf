// Copyright 2017-2020 Denis Bernard <db047h@gmail.com>
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

/*
Package lex provides the character input layer of a table-driven lexer: a
Stream that reads Latin-1 text from a File, tracks line and column numbers and
lets a tokenizer back up over any number of characters read since the start of
the current token.

The tokenizer itself lives in the lexer sub-package. It runs one nondeterministic
finite automaton per lexical mode over a Stream and keeps the longest match.
The automaton tables are built by the automaton package from regular
expressions, usually loaded from a YAML language definition (see lexer/lang).
The webmacro and wiki packages are two such languages.

# Stream protocol

A tokenizer calls BeginToken to mark the start of a token and get its first
character, then ReadChar until no pattern can extend the match. It then calls
Backup to give back the characters read past the end of the longest match and
Image to get the token text:

	c, err := s.BeginToken()
	// ... feed c and subsequent s.ReadChar() to the automaton
	s.Backup(overRead)
	text := s.Image()
	begin, end := s.Begin(), s.End()

Characters delivered again after a Backup keep the line and column numbers
computed the first time they were read. A "\r\n" pair counts as a single line
break and tabs move the column to the next tab stop.

End of input is not an error condition: ReadChar returns io.EOF, which callers
must treat as a clean termination signal. Backing up more characters than
retained is a programming error and panics.

# Buffering

The stream keeps a single buffer with a sliding retention window. When the
buffer is nearly full, characters older than the window are discarded, but
never those of the current token: if the token is too long to make room, the
buffer grows instead. Memory use is therefore bounded by the longest token plus
twice the window, and results never depend on the buffer size.
*/
package lex
