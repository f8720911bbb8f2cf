// Copyright 2017 Denis Bernard <db047h@gmail.com>
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
Package lexer implements a table driven lexer with multiple lexical modes.

A language is described by a Definition: a list of modes and of token rules,
each rule being a regular expression (see package automaton for the syntax) or
a literal string. Compile turns it into a Grammar holding one automaton per
mode. A Lexer then runs the automaton of its current mode over a lex.Stream.

# Matching

At each step, the lexer looks for the longest input prefix matched by a rule of
the current mode. If several rules match a prefix of that length, the rule
declared first wins, so keywords must be declared before identifiers:

	Rules: []lexer.Rule{
		{Name: "IF", Literal: "if"},
		{Name: "IDENT", Pattern: "[a-z]+"},
	}

Here "if" is an IF token, and "iff" an IDENT.

Rules marked Skip produce tokens that are discarded, like white space or
comments. A rule can switch the lexer to another mode after matching, for
skipped tokens as well. Since rules can share a name, the same token may switch
to different modes depending on where it is found:

	{Name: "QUOTE", Literal: `"`, Next: "STRING"},
	{Name: "QUOTE", Modes: []string{"STRING"}, Literal: `"`, Next: "DEFAULT"},

# Errors

When no rule matches, Next returns a *LexicalError. The lexer does no recovery
by itself: callers may stop there or call SkipChar to skip one character and
resume.

Modes listed as Unterminated in the definition are modes the input must not end
in, like the inside of a string. Reaching the end of input there yields a
*LexicalError with EOFSeen set and the text read since the mode was entered;
the lexer then returns to the mode it was in before.
*/
package lexer
