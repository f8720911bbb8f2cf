// Package token defines the Token type returned by lexers.
//
package token

import (
	"fmt"

	"golang.org/x/text/encoding/charmap"

	"github.com/db47h/lex/v2"
)

// Kind represents a token's numeric ID. Kind values are assigned by a grammar,
// in declaration order, starting at 1.
//
type Kind int

// EOF is the kind of the token returned at the end of input. It is the same
// for every grammar.
//
const EOF Kind = 0

// A Token is a lexical unit: its kind, the exact input characters it matched
// and the positions of its first and last character.
//
// For EOF tokens, Image is empty and Begin == End is the position right after
// the last character of input.
//
type Token struct {
	Kind  Kind
	Image string
	Begin lex.Position
	End   lex.Position
}

// Text returns the token image decoded from Latin-1 to UTF-8.
//
func (t Token) Text() string {
	for i := 0; i < len(t.Image); i++ {
		if t.Image[i] >= 0x80 {
			s, err := charmap.ISO8859_1.NewDecoder().String(t.Image)
			if err != nil {
				// ISO8859_1 maps every byte
				panic(err)
			}
			return s
		}
	}
	return t.Image
}

// String returns a debug representation of t.
//
func (t Token) String() string {
	return fmt.Sprintf("%s: %d %q", t.Begin, t.Kind, t.Text())
}
