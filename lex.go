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

package lex

import (
	"errors"
	"fmt"
	"io"
)

// ErrBackupOverflow is the panic value (wrapped) of Stream.Backup when asked
// to back up over characters that are no longer retained.
var ErrBackupOverflow = errors.New("backup beyond retained input")

// A Stream delivers the characters of a File one at a time, tracks their line
// and column, and supports backing up over characters already read.
//
// Characters are kept in a single buffer. When it runs low on free space, the
// characters older than the retention window are discarded, except those of
// the token being scanned (see BeginToken). If that does not free enough
// space, the buffer grows instead. As a result, Backup can always go back to
// the start of the current token, and at least Slack characters further.
type Stream struct {
	f      *File
	buf    []byte
	lines  []int32 // line of buf[i]
	cols   []int32 // column of buf[i]
	n      int     // bytes of valid data in buf
	pos    int     // index of the last character read, -1 if none
	offs   Pos     // file offset of buf[0]
	tok    int     // index of the token start, -1 if none
	backup int     // characters backed over and not yet re-read
	line   int
	column int
	prevCR bool
	prevLF bool
	err    error // sticky read error, io.EOF included
	opts   options
}

// NewStream returns a new Stream reading from f.
func NewStream(f *File, opts ...Option) *Stream {
	s := new(Stream)
	s.ReInit(f, opts...)
	return s
}

// ReInit resets the stream to read from f. The buffer is reused if its size
// did not change.
func (s *Stream) ReInit(f *File, opts ...Option) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.slack == 0 {
		o.slack = o.size / 2
	}
	if o.size < 2*o.slack {
		o.size = 2 * o.slack
	}
	s.opts = o
	if len(s.buf) != o.size {
		s.buf = make([]byte, o.size)
		s.lines = make([]int32, o.size)
		s.cols = make([]int32, o.size)
	}
	s.f = f
	s.n = 0
	s.pos = -1
	s.offs = 0
	s.tok = -1
	s.backup = 0
	s.line = o.line
	s.column = o.col - 1
	s.prevCR, s.prevLF = false, false
	s.err = nil

	f.reset()
	f.AddLine(0, o.line)
}

// Done releases the stream buffers. The stream must be re-initialized with
// ReInit before any further use.
func (s *Stream) Done() {
	s.buf, s.lines, s.cols = nil, nil, nil
	s.f = nil
}

// File returns the File used as input for the stream.
func (s *Stream) File() *File {
	return s.f
}

// Slack returns the minimum number of characters retained behind the read
// position.
func (s *Stream) Slack() int {
	return s.opts.slack
}

// BeginToken marks the start of a new token and returns its first character.
// At the end of input, it returns io.EOF and the token is empty.
func (s *Stream) BeginToken() (byte, error) {
	s.tok = -1
	c, err := s.ReadChar()
	if err != nil {
		s.tok = s.pos + 1
		return 0, err
	}
	s.tok = s.pos
	return c, nil
}

// ReadChar returns the next character. It returns io.EOF at the end of input
// and any other error from the underlying reader as is.
//
// Characters re-read after a Backup do not update the line and column
// counters a second time.
func (s *Stream) ReadChar() (byte, error) {
	if s.backup > 0 {
		s.backup--
		s.pos++
		return s.buf[s.pos], nil
	}
	if s.pos+1 >= s.n {
		if err := s.fill(); err != nil {
			return 0, err
		}
	}
	s.pos++
	c := s.buf[s.pos]
	s.updateLineColumn(c)
	return c, nil
}

// ReadByte implements io.ByteReader.
func (s *Stream) ReadByte() (byte, error) {
	return s.ReadChar()
}

// UnreadByte implements io.ByteScanner.
func (s *Stream) UnreadByte() error {
	if s.pos < 0 {
		return ErrBackupOverflow
	}
	s.Backup(1)
	return nil
}

// Backup moves the read position n characters back. Subsequent calls to
// ReadChar deliver the same characters again.
//
// Backing up more characters than retained is a programming error: Backup
// panics with an error wrapping ErrBackupOverflow.
func (s *Stream) Backup(n int) {
	if n < 0 || n > s.pos+1 {
		panic(fmt.Errorf("%w: %d characters requested, %d retained", ErrBackupOverflow, n, s.pos+1))
	}
	s.pos -= n
	s.backup += n
}

// Retract moves the read position right after the first character of the
// current token. Lexers use it to skip a single character after an error.
func (s *Stream) Retract() {
	if s.tok < 0 {
		return
	}
	d := s.pos - s.tok
	switch {
	case d >= 0:
		s.Backup(d)
	case -d <= s.backup:
		s.pos -= d
		s.backup += d
	}
}

// Image returns the characters from the start of the current token up to and
// including the last character read.
func (s *Stream) Image() string {
	if s.tok < 0 || s.tok > s.pos {
		return ""
	}
	return string(s.buf[s.tok : s.pos+1])
}

// Suffix returns the last n characters read, or fewer if not that many are
// retained.
func (s *Stream) Suffix(n int) []byte {
	if n > s.pos+1 {
		n = s.pos + 1
	}
	if n <= 0 {
		return nil
	}
	r := make([]byte, n)
	copy(r, s.buf[s.pos+1-n:s.pos+1])
	return r
}

// Begin returns the position of the first character of the current token.
func (s *Stream) Begin() Position {
	if s.tok < 0 || s.tok > s.pos {
		return s.Cursor()
	}
	return s.position(s.tok)
}

// End returns the position of the last character read.
func (s *Stream) End() Position {
	if s.pos < 0 {
		return s.Cursor()
	}
	return s.position(s.pos)
}

// Cursor returns the position of the next character to be read.
func (s *Stream) Cursor() Position {
	if s.backup > 0 {
		return s.position(s.pos + 1)
	}
	p := Position{
		Filename: s.f.name,
		Offset:   s.offs + Pos(s.pos+1),
		Line:     s.line,
		Column:   s.column + 1,
	}
	if s.prevLF || s.prevCR {
		p.Line++
		p.Column = 1
	}
	return p
}

func (s *Stream) position(i int) Position {
	return Position{
		Filename: s.f.name,
		Offset:   s.offs + Pos(i),
		Line:     int(s.lines[i]),
		Column:   int(s.cols[i]),
	}
}

func (s *Stream) updateLineColumn(c byte) {
	s.column++
	if s.prevLF {
		s.prevLF = false
		s.newLine()
	} else if s.prevCR {
		s.prevCR = false
		if c == '\n' {
			s.prevLF = true
		} else {
			s.newLine()
		}
	}

	switch c {
	case '\r':
		s.prevCR = true
	case '\n':
		s.prevLF = true
	case '\t':
		s.column--
		s.column += s.opts.tabWidth - s.column%s.opts.tabWidth
	}

	s.lines[s.pos] = int32(s.line)
	s.cols[s.pos] = int32(s.column)
}

func (s *Stream) newLine() {
	s.line++
	s.column = 1
	s.f.AddLine(s.offs+Pos(s.pos), s.line)
}

func (s *Stream) fill() error {
	if s.err != nil {
		return s.err
	}
	if len(s.buf)-s.n < s.opts.slack {
		s.makeRoom()
	}
	for i := 0; i < 100; i++ {
		n, err := s.f.Read(s.buf[s.n:])
		s.n += n
		if err != nil {
			s.err = err
		}
		if n > 0 {
			return nil
		}
		if err != nil {
			return err
		}
	}
	s.err = io.ErrNoProgress
	return s.err
}

// makeRoom discards characters older than the retention window, keeping the
// current token, then grows the buffer if free space is still below slack.
func (s *Stream) makeRoom() {
	drop := s.n - s.opts.slack
	if s.tok >= 0 && s.tok < drop {
		drop = s.tok
	}
	if drop > 0 {
		copy(s.buf, s.buf[drop:s.n])
		copy(s.lines, s.lines[drop:s.n])
		copy(s.cols, s.cols[drop:s.n])
		s.n -= drop
		s.pos -= drop
		s.offs += Pos(drop)
		if s.tok >= 0 {
			s.tok -= drop
		}
	}
	if len(s.buf)-s.n < s.opts.slack {
		s.grow(len(s.buf) + s.opts.slack)
	}
}

func (s *Stream) grow(size int) {
	buf := make([]byte, size)
	lines := make([]int32, size)
	cols := make([]int32, size)
	copy(buf, s.buf[:s.n])
	copy(lines, s.lines[:s.n])
	copy(cols, s.cols[:s.n])
	s.buf, s.lines, s.cols = buf, lines, cols
}
