package lang_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/db47h/lex/v2"
	"github.com/db47h/lex/v2/automaton"
	"github.com/db47h/lex/v2/lexer"
	"github.com/db47h/lex/v2/lexer/lang"
)

const calc = `
name: calc
modes: [MAIN, PAREN]
macros:
  - name: DIGIT
    match: '[0-9]'
tokens:
  - name: WS
    match: '[ \t\r\n]+'
    modes: [MAIN, PAREN]
    skip: true
  - name: NUMBER
    match: '{DIGIT}+'
    modes: [MAIN, PAREN]
  - name: LPAREN
    literal: '('
    next: PAREN
  - name: RPAREN
    literal: ')'
    modes: [PAREN]
    next: MAIN
`

func TestParse(t *testing.T) {
	g, err := lang.Parse([]byte(calc))
	require.NoError(t, err)
	assert.Equal(t, "calc", g.Name())
	assert.Equal(t, 5, g.NumKinds())
	assert.Equal(t, "NUMBER", g.KindName(2))
	assert.True(t, g.IsSkip(g.Kind("WS")))

	l := lexer.New(g, lex.NewStream(lex.NewFile("", strings.NewReader("1 (22) 3"))))
	toks, err := l.All()
	require.NoError(t, err)
	var names []string
	for _, tok := range toks {
		names = append(names, g.KindName(tok.Kind)+":"+tok.Image)
	}
	assert.Equal(t, []string{"NUMBER:1", "LPAREN:(", "NUMBER:22", "RPAREN:)", "NUMBER:3"}, names)
}

func TestLoad(t *testing.T) {
	g, err := lang.Load(strings.NewReader(calc))
	require.NoError(t, err)
	assert.Equal(t, 2, g.NumModes())
}

func TestParse_errors(t *testing.T) {
	_, err := lang.Parse([]byte(""))
	assert.ErrorIs(t, err, lang.ErrEmpty)

	_, err = lang.Parse([]byte("name: x\nmodes: [A]\nbogus: 1\n"))
	assert.Error(t, err)

	_, err = lang.Parse([]byte("name: x\nmodes: [A]\ntokens:\n  - name: A\n    literal: a\n  - name: B\n"))
	require.ErrorIs(t, err, lang.ErrMatch)
	assert.Contains(t, err.Error(), "line 6")

	_, err = lang.Parse([]byte("name: x\nmodes: [A]\ntokens:\n  - name: A\n    match: '[a'\n"))
	assert.ErrorIs(t, err, automaton.ErrUnmatchedLbkt)
	assert.ErrorIs(t, err, lexer.ErrRule)

	assert.Panics(t, func() { lang.MustParse([]byte("modes: []")) })
}
