package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/db47h/lex/v2"
	"github.com/db47h/lex/v2/token"
)

func TestToken_Text(t *testing.T) {
	td := []struct {
		image string
		want  string
	}{
		{"", ""},
		{"plain", "plain"},
		{"d\xe9j\xe0 vu", "déjà vu"},
		{"\xff", "ÿ"},
	}
	for _, d := range td {
		tok := token.Token{Image: d.image}
		assert.Equal(t, d.want, tok.Text(), "image %q", d.image)
	}
}

func TestToken_String(t *testing.T) {
	tok := token.Token{
		Kind:  3,
		Image: "caf\xe9",
		Begin: lex.Position{Filename: "f", Line: 2, Column: 4},
	}
	assert.Equal(t, `f:2:4: 3 "café"`, tok.String())
}
