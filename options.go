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

// Stream defaults.
const (
	DefaultBufferSize = 4096
	DefaultTabWidth   = 8
	minBufferSize     = 16
)

type options struct {
	size      int
	slack     int
	tabWidth  int
	line, col int
}

func defaultOptions() options {
	return options{
		size:     DefaultBufferSize,
		tabWidth: DefaultTabWidth,
		line:     1,
		col:      1,
	}
}

// An Option is a configuration option for a new Stream.
type Option func(*options)

// BufferSize sets the initial size of the stream buffer. The stream retains at
// least half that many characters behind the read position, so that is also
// the guaranteed backup distance. Values below 16 are rounded up.
func BufferSize(n int) Option {
	return func(o *options) {
		if n < minBufferSize {
			n = minBufferSize
		}
		o.size = n
	}
}

// Slack overrides the retention window set by BufferSize. The buffer size is
// raised to 2*n if needed.
func Slack(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = 1
		}
		o.slack = n
	}
}

// TabWidth sets the column width of tab stops. The default is 8.
func TabWidth(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = 1
		}
		o.tabWidth = n
	}
}

// StartPosition sets the line and column number of the first character.
func StartPosition(line, col int) Option {
	return func(o *options) {
		o.line, o.col = line, col
	}
}
