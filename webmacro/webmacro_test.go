package webmacro_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/db47h/lex/v2"
	"github.com/db47h/lex/v2/lexer"
	"github.com/db47h/lex/v2/token"
	"github.com/db47h/lex/v2/webmacro"
)

func newLexer(input string, opts ...lex.Option) *lexer.Lexer {
	return webmacro.New(lex.NewFile("", strings.NewReader(input)), opts...)
}

func lexAll(l *lexer.Lexer) []string {
	g := l.Grammar()
	var res []string
	for {
		t, err := l.Next()
		if err != nil {
			return append(res, err.Error())
		}
		res = append(res, fmt.Sprintf("%d:%d: %s %q", t.Begin.Line, t.Begin.Column, g.KindName(t.Kind), t.Image))
		if t.Kind == token.EOF {
			return res
		}
	}
}

func TestKinds(t *testing.T) {
	g := webmacro.Grammar()
	kinds := map[token.Kind]string{
		webmacro.LineComment:  "LINE_COMMENT",
		webmacro.CommentStart: "COMMENT_START",
		webmacro.CommentEnd:   "COMMENT_END",
		webmacro.CommentText:  "COMMENT_TEXT",
		webmacro.Begin:        "BEGIN",
		webmacro.End:          "END",
		webmacro.Directive:    "DIRECTIVE",
		webmacro.Pound:        "POUND",
		webmacro.LBrace:       "LBRACE",
		webmacro.RBrace:       "RBRACE",
		webmacro.Dollar:       "DOLLAR",
		webmacro.QChar:        "QCHAR",
		webmacro.Slash:        "SLASH",
		webmacro.Stuff:        "STUFF",
		webmacro.WS:           "WS",
		webmacro.Newline:      "NEWLINE",
		webmacro.Quote:        "QUOTE",
		webmacro.SQuote:       "SQUOTE",
		webmacro.Null:         "NULL",
		webmacro.True:         "TRUE",
		webmacro.False:        "FALSE",
		webmacro.Undefined:    "UNDEFINED",
		webmacro.LParen:       "LPAREN",
		webmacro.RParen:       "RPAREN",
		webmacro.LBracket:     "LBRACKET",
		webmacro.RBracket:     "RBRACKET",
		webmacro.Colon:        "COLON",
		webmacro.Dot:          "DOT",
		webmacro.OpLT:         "OP_LT",
		webmacro.OpLE:         "OP_LE",
		webmacro.OpGT:         "OP_GT",
		webmacro.OpGE:         "OP_GE",
		webmacro.OpEQ:         "OP_EQ",
		webmacro.OpSet:        "OP_SET",
		webmacro.OpNE:         "OP_NE",
		webmacro.OpPlus:       "OP_PLUS",
		webmacro.OpMinus:      "OP_MINUS",
		webmacro.OpMult:       "OP_MULT",
		webmacro.OpDiv:        "OP_DIV",
		webmacro.OpAnd:        "OP_AND",
		webmacro.OpOr:         "OP_OR",
		webmacro.OpNot:        "OP_NOT",
		webmacro.Comma:        "COMMA",
		webmacro.Semi:         "SEMI",
		webmacro.Word:         "WORD",
		webmacro.Number:       "NUMBER",
		webmacro.QSText:       "QS_TEXT",
		webmacro.SQSText:      "SQS_TEXT",
	}
	require.Equal(t, len(kinds)+1, g.NumKinds())
	for k, name := range kinds {
		assert.Equal(t, k, g.Kind(name), name)
	}
	for _, k := range []token.Kind{webmacro.LineComment, webmacro.CommentStart, webmacro.CommentEnd,
		webmacro.CommentText, webmacro.WS, webmacro.Newline} {
		assert.True(t, g.IsSkip(k), g.KindName(k))
	}

	modes := map[int]string{
		webmacro.Default: "DEFAULT",
		webmacro.WM:      "WM",
		webmacro.QS:      "QS",
		webmacro.SQS:     "SQS",
		webmacro.Comment: "COMMENT",
	}
	require.Equal(t, len(modes), g.NumModes())
	for m, name := range modes {
		assert.Equal(t, name, g.ModeName(m))
	}
	assert.NotEmpty(t, webmacro.Definition())
}

func TestLexer(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"variable in braces", "text{$x}more", []string{
			`1:1: STUFF "text"`,
			`1:5: LBRACE "{"`,
			`1:6: DOLLAR "$"`,
			`1:7: WORD "x"`,
			`1:8: RBRACE "}"`,
			`1:9: STUFF "more"`,
			`1:13: EOF ""`,
		}},
		{"line comment", "## this is a comment\n#begin foo(){}", []string{
			`2:1: BEGIN "#begin"`,
			`2:8: WORD "foo"`,
			`2:11: LPAREN "("`,
			`2:12: RPAREN ")"`,
			`2:13: LBRACE "{"`,
			`2:14: RBRACE "}"`,
			`2:15: EOF ""`,
		}},
		{"skipped newlines", "#set $a = 1\n\n  $b", []string{
			`1:1: DIRECTIVE "#set"`,
			`1:6: DOLLAR "$"`,
			`1:7: WORD "a"`,
			`1:9: OP_SET "="`,
			`1:11: NUMBER "1"`,
			`3:3: DOLLAR "$"`,
			`3:4: WORD "b"`,
			`3:5: EOF ""`,
		}},
		{"block comment", "a#-- x\n-y --#b", []string{
			`1:1: STUFF "a"`,
			`2:7: STUFF "b"`,
			`2:8: EOF ""`,
		}},
		{"directives", "#begin#beginning#end#endif", []string{
			`1:1: BEGIN "#begin"`,
			`1:7: DIRECTIVE "#beginning"`,
			`1:17: END "#end"`,
			`1:21: DIRECTIVE "#endif"`,
			`1:27: EOF ""`,
		}},
		{"keywords and operators", "{null nullable <= < 'it' 12}", []string{
			`1:1: LBRACE "{"`,
			`1:2: NULL "null"`,
			`1:7: WORD "nullable"`,
			`1:16: OP_LE "<="`,
			`1:19: OP_LT "<"`,
			`1:21: SQUOTE "'"`,
			`1:22: SQS_TEXT "it"`,
			`1:24: SQUOTE "'"`,
			`1:26: NUMBER "12"`,
			`1:28: RBRACE "}"`,
			`1:29: EOF ""`,
		}},
		{"escapes", `\$x \{ end\`, []string{
			`1:1: QCHAR "\\$"`,
			`1:3: STUFF "x "`,
			`1:5: QCHAR "\\{"`,
			`1:7: STUFF " end"`,
			`1:11: SLASH "\\"`,
			`1:12: EOF ""`,
		}},
		{"quoted string", `#set $s = "a $b \" c"`, []string{
			`1:1: DIRECTIVE "#set"`,
			`1:6: DOLLAR "$"`,
			`1:7: WORD "s"`,
			`1:9: OP_SET "="`,
			`1:11: QUOTE "\""`,
			`1:12: QS_TEXT "a "`,
			`1:14: DOLLAR "$"`,
			`1:15: QS_TEXT "b "`,
			`1:17: QCHAR "\\\""`,
			`1:19: QS_TEXT " c"`,
			`1:21: QUOTE "\""`,
			`1:22: EOF ""`,
		}},
		{"unterminated string", `#set $a = "ab`, []string{
			`1:1: DIRECTIVE "#set"`,
			`1:6: DOLLAR "$"`,
			`1:7: WORD "a"`,
			`1:9: OP_SET "="`,
			`1:11: QUOTE "\""`,
			`1:12: QS_TEXT "ab"`,
			`1:14: lexical error in mode QS: encountered <EOF> after "\"ab", unterminated since 1:11`,
		}},
		{"unterminated comment", "x#-- never closed", []string{
			`1:1: STUFF "x"`,
			`1:18: lexical error in mode COMMENT: encountered <EOF> after "#-- never closed", unterminated since 1:2`,
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := lexAll(newLexer(tt.input))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("tokens mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLexer_modes(t *testing.T) {
	l := newLexer("text{$x}more")
	want := []struct {
		kind token.Kind
		mode int
	}{
		{webmacro.Stuff, webmacro.Default},
		{webmacro.LBrace, webmacro.WM},
		{webmacro.Dollar, webmacro.WM},
		{webmacro.Word, webmacro.WM},
		{webmacro.RBrace, webmacro.Default},
		{webmacro.Stuff, webmacro.Default},
		{token.EOF, webmacro.Default},
	}
	for _, w := range want {
		tok, err := l.Next()
		require.NoError(t, err)
		assert.Equal(t, w.kind, tok.Kind)
		assert.Equal(t, w.mode, l.Mode(), "after %s", tok)
	}
}

func TestLexer_unterminated(t *testing.T) {
	l := newLexer(`#set $a = "ab`)
	toks, err := l.All()
	require.Len(t, toks, 6)
	var le *lexer.LexicalError
	require.True(t, errors.As(err, &le))
	assert.True(t, le.EOFSeen)
	assert.Equal(t, `"ab`, le.After)
	assert.Equal(t, "QS", le.Mode)

	// back in WM, then EOF
	assert.Equal(t, webmacro.WM, l.Mode())
	tok, err := l.Next()
	require.NoError(t, err)
	assert.Equal(t, token.EOF, tok.Kind)
}

func TestLexer_skipChar(t *testing.T) {
	l := newLexer("#set $a @ 1")
	toks, err := l.All()
	require.Len(t, toks, 3)
	var le *lexer.LexicalError
	require.True(t, errors.As(err, &le))
	assert.False(t, le.EOFSeen)
	assert.Equal(t, byte('@'), le.Char)
	assert.Equal(t, "WM", le.Mode)
	assert.Equal(t, 9, le.Pos.Column)

	l.SkipChar()
	assert.Equal(t, []string{`1:11: NUMBER "1"`, `1:12: EOF ""`}, lexAll(l))
}

// Token streams must not depend on the buffer size.
func TestLexer_bufferSize(t *testing.T) {
	seg := "Hello {$name.first} and #set $a = \"v $b\\\" w\" }more ## note\n" +
		"#-- multi\nline --#stuff\\{ x\n"
	input := strings.Repeat(seg, 300)
	require.Greater(t, len(input), 3*lex.DefaultBufferSize)

	lexInput := func(opts ...lex.Option) []token.Token {
		toks, err := newLexer(input, opts...).All()
		require.NoError(t, err)
		return toks
	}
	want := lexInput(lex.BufferSize(1 << 20))
	// 24 tokens per segment, the last STUFF of a segment merging with the
	// first one of the next
	require.Len(t, want, 23*300+1)
	for _, size := range []int{16, 100, lex.DefaultBufferSize} {
		got := lexInput(lex.BufferSize(size))
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("buffer size %d: tokens mismatch (-want +got):\n%s", size, diff)
		}
	}
}
