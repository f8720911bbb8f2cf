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

// Package lang loads lexer definitions written in YAML.
//
// A definition looks like this:
//
//	name: calc
//	modes: [MAIN]         # the first mode is the default one
//	unterminated: []      # modes the input must not end in
//	macros:               # in dependency order
//	  - name: DIGIT
//	    match: '[0-9]'
//	tokens:               # kinds are numbered from 1 in this order
//	  - name: WS
//	    match: '[ \t\r\n]+'
//	    skip: true
//	  - name: NUMBER
//	    match: '{DIGIT}+'
//	  - name: PLUS
//	    literal: '+'
//	    modes: [MAIN]     # defaults to the first mode
//	    next: MAIN        # mode to switch to after the token
//
// Patterns use the syntax of package automaton. Using single quotes in YAML
// avoids escaping backslashes twice.
package lang

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/db47h/lex/v2/lexer"
)

// Definition errors.
var (
	ErrEmpty = errors.New("empty definition")
	ErrMatch = errors.New("exactly one of match or literal must be set")
)

// Decode decodes a YAML definition. Unknown fields are errors.
func Decode(data []byte) (*lexer.Definition, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return nil, ErrEmpty
	}
	var def lexer.Definition
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&def); err != nil {
		return nil, err
	}

	// report rule errors with their line number
	root := doc.Content[0]
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value != "tokens" {
			continue
		}
		for j, n := range root.Content[i+1].Content {
			if j >= len(def.Rules) {
				break
			}
			r := &def.Rules[j]
			if (r.Pattern == "") == (r.Literal == "") {
				return nil, fmt.Errorf("line %d: token %s: %w", n.Line, r.Name, ErrMatch)
			}
		}
	}
	return &def, nil
}

// Parse decodes and compiles a YAML definition.
func Parse(data []byte) (*lexer.Grammar, error) {
	def, err := Decode(data)
	if err != nil {
		return nil, err
	}
	g, err := lexer.Compile(def)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", def.Name, err)
	}
	return g, nil
}

// Load reads and compiles a YAML definition from r.
func Load(r io.Reader) (*lexer.Grammar, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// MustParse is like Parse but panics on error. It is meant for definitions
// embedded in programs.
func MustParse(data []byte) *lexer.Grammar {
	g, err := Parse(data)
	if err != nil {
		panic(err)
	}
	return g
}
