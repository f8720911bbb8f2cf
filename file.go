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
	"bufio"
	"errors"
	"fmt"
	"io"
)

// Pos represents a byte offset within a File. Since input characters are
// Latin-1, a byte offset is also a character index.
type Pos int

// IsValid returns true if p is a valid position (i.e. p >= 0).
func (p Pos) IsValid() bool {
	return p >= 0
}

// Common errors.
var (
	ErrSeek   = errors.New("wrong file position after seek")
	ErrNoSeek = errors.New("io.Reader does not support Seek")
	ErrLine   = errors.New("invalid line number")
)

// Position describes an arbitrary source position including the file, line,
// and column location.
type Position struct {
	Filename string
	Offset   Pos // byte offset in the file
	Line     int // 1-based line number
	Column   int // 1-based column number, tabs expanded
}

func (p Position) String() string {
	if p.Filename == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

// A File represents an input file. It's a wrapper around an io.Reader that
// records the offset of every line start seen by a Stream reading it.
type File struct {
	name string
	io.Reader
	base  int   // line number of lines[0]
	lines []Pos // line start offsets
}

// NewFile returns a new File.
func NewFile(name string, r io.Reader) *File {
	return &File{
		name:   name,
		Reader: r,
	}
}

// Name returns the file name.
func (f *File) Name() string {
	return f.name
}

// AddLine records that line starts at offset pos. The first call sets the
// base line number.
//
// Lines already known are ignored. AddLine panics with ErrLine if line is not
// the last known line plus one.
func (f *File) AddLine(pos Pos, line int) {
	l := len(f.lines)
	if l == 0 {
		f.base = line
		f.lines = append(f.lines, pos)
		return
	}
	if f.lines[l-1] >= pos {
		return
	}
	if f.base+l != line {
		panic(ErrLine)
	}
	f.lines = append(f.lines, pos)
}

func (f *File) reset() {
	f.base = 0
	f.lines = f.lines[:0]
}

// Position returns the line and byte column for a given pos. Tabs are not
// expanded.
func (f *File) Position(pos Pos) Position {
	i, j := 0, len(f.lines)
	for i < j {
		h := int(uint(i+j) >> 1)
		if !(f.lines[h] > pos) {
			i = h + 1
		} else {
			j = h
		}
	}
	if i == 0 {
		return Position{f.name, pos, f.base, int(pos) + 1}
	}
	return Position{f.name, pos, f.base + i - 1, int(pos - f.lines[i-1] + 1)}
}

// LinePos return the file offset of the given line.
func (f *File) LinePos(line int) Pos {
	i := line - f.base
	if i < 0 || i >= len(f.lines) {
		return -1
	}
	return f.lines[i]
}

// GetLineBytes returns the bytes of the line containing pos, without its line
// terminator. The underlying reader must implement io.Seeker; its current
// position is restored before returning.
func (f *File) GetLineBytes(pos Pos) (l []byte, err error) {
	lp := f.LinePos(f.Position(pos).Line)
	if !lp.IsValid() {
		return nil, ErrLine
	}
	rs, ok := f.Reader.(io.ReadSeeker)
	if !ok {
		return nil, ErrNoSeek
	}
	cur, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, err
	}
	defer func() {
		p, err := rs.Seek(cur, io.SeekStart)
		if err != nil {
			// cannot resume normal operation, panic
			panic(err)
		}
		if p != cur {
			panic(ErrSeek)
		}
	}()
	fp, err := rs.Seek(int64(lp), io.SeekStart)
	if err != nil {
		return nil, err
	}
	if fp != int64(lp) {
		return nil, ErrSeek
	}

	r := bufio.NewReader(rs)
	for {
		buf, pref, err := r.ReadLine()
		if err != nil {
			if err == io.EOF && len(l) > 0 {
				break
			}
			return nil, err
		}
		l = append(l, buf...)
		if !pref {
			break
		}
	}
	// a lone \r terminates a line for the Stream but not for bufio
	for i, b := range l {
		if b == '\r' {
			return l[:i], nil
		}
	}
	return l, nil
}
