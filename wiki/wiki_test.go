package wiki_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/db47h/lex/v2"
	"github.com/db47h/lex/v2/token"
	"github.com/db47h/lex/v2/wiki"
)

func lexAll(t *testing.T, input string) []string {
	t.Helper()
	l := wiki.New(lex.NewFile("", strings.NewReader(input)))
	g := l.Grammar()
	var res []string
	for {
		tok, err := l.Next()
		require.NoError(t, err)
		res = append(res, fmt.Sprintf("%d:%d: %s %q", tok.Begin.Line, tok.Begin.Column, g.KindName(tok.Kind), tok.Text()))
		if tok.Kind == token.EOF {
			return res
		}
	}
}

func TestKinds(t *testing.T) {
	g := wiki.Grammar()
	names := []string{"QUOTED_BLOCK", "BOLD", "UNDERLINE", "ITALIC", "LT", "GT", "LI", "LI_NUMBERED",
		"COLOR", "HEADER", "COLOR_HEADER_TERMINATE", "RULE", "EMAIL", "URL", "WIKI_TERM",
		"SHORT_WIKI_TERM", "WORD", "NEW_PARAGRAPH", "LINE_BREAK", "INDENT", "WHITESPACE", "TILDE",
		"ASTERISK", "UNDERSCORE", "CARET", "DOUBLE_LBRACKET", "DELIMITERS"}
	require.Equal(t, len(names)+1, g.NumKinds())
	for i, name := range names {
		assert.Equal(t, token.Kind(i+1), g.Kind(name), name)
	}
	assert.Equal(t, wiki.Delimiters, g.Kind("DELIMITERS"))
	assert.Equal(t, wiki.ShortWikiTerm, g.Kind("SHORT_WIKI_TERM"))
	assert.Equal(t, 1, g.NumModes())
	assert.Equal(t, "*", g.Literal(wiki.Bold))
	assert.Equal(t, "[[[[", g.Literal(wiki.DoubleLBracket))
}

func TestLexer(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"bold", "*bold* normal", []string{
			`1:1: BOLD "*"`,
			`1:2: WORD "bold"`,
			`1:6: BOLD "*"`,
			`1:7: WHITESPACE " "`,
			`1:8: WORD "normal"`,
			`1:14: EOF ""`,
		}},
		{"wiki terms", "WikiTerm Wiki Page$", []string{
			`1:1: WIKI_TERM "WikiTerm"`,
			`1:9: WHITESPACE " "`,
			`1:10: WORD "Wiki"`,
			`1:14: WHITESPACE " "`,
			`1:15: SHORT_WIKI_TERM "Page$"`,
			`1:20: EOF ""`,
		}},
		{"links", "me@example.com http://x.org/a", []string{
			`1:1: EMAIL "me@example.com"`,
			`1:15: WHITESPACE " "`,
			`1:16: URL "http://x.org/a"`,
			`1:30: EOF ""`,
		}},
		{"quoted block", "[[a<b]]", []string{
			`1:1: QUOTED_BLOCK "[[a<b]]"`,
			`1:8: EOF ""`,
		}},
		{"line structure", "a\n\nb\n  c\n * d\ne", []string{
			`1:1: WORD "a"`,
			`1:2: NEW_PARAGRAPH "\n\n"`,
			`3:1: WORD "b"`,
			`3:2: INDENT "\n  "`,
			`4:3: WORD "c"`,
			`4:4: LI "\n * "`,
			`5:4: WORD "d"`,
			`5:5: LINE_BREAK "\n"`,
			`6:1: WORD "e"`,
			`6:2: EOF ""`,
		}},
		{"header", "^^Title text^", []string{
			`1:1: HEADER "^^Title"`,
			`1:8: WHITESPACE " "`,
			`1:9: WORD "text"`,
			`1:13: COLOR_HEADER_TERMINATE "^"`,
			`1:14: EOF ""`,
		}},
		{"doubled markup", "^^ ** ~~ ----", []string{
			`1:1: CARET "^^"`,
			`1:3: WHITESPACE " "`,
			`1:4: ASTERISK "**"`,
			`1:6: WHITESPACE " "`,
			`1:7: TILDE "~~"`,
			`1:9: WHITESPACE " "`,
			`1:10: DELIMITERS "-"`,
			`1:11: DELIMITERS "-"`,
			`1:12: DELIMITERS "-"`,
			`1:13: DELIMITERS "-"`,
			`1:14: EOF ""`,
		}},
		{"latin-1", "caf\xe9.", []string{
			`1:1: WORD "café"`,
			`1:5: DELIMITERS "."`,
			`1:6: EOF ""`,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, lexAll(t, tt.input)); diff != "" {
				t.Errorf("tokens mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

type recorder struct {
	calls []string
}

func (r *recorder) add(format string, args ...interface{}) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *recorder) Begin()                               { r.add("Begin") }
func (r *recorder) Done()                                { r.add("Done") }
func (r *recorder) IsWikiTermReference(term string) bool { return term == "Foo" }
func (r *recorder) Bold()                                { r.add("Bold") }
func (r *recorder) Underline()                           { r.add("Underline") }
func (r *recorder) Italic()                              { r.add("Italic") }
func (r *recorder) Color(color string)                   { r.add("Color(%s)", color) }
func (r *recorder) Header(name string)                   { r.add("Header(%s)", name) }
func (r *recorder) EndColorOrHeader()                    { r.add("EndColorOrHeader") }
func (r *recorder) Indent(n int)                         { r.add("Indent(%d)", n) }
func (r *recorder) Space()                               { r.add("Space") }
func (r *recorder) Newline()                             { r.add("Newline") }
func (r *recorder) Paragraph()                           { r.add("Paragraph") }
func (r *recorder) Ruler()                               { r.add("Ruler") }
func (r *recorder) Word(word string)                     { r.add("Word(%s)", word) }
func (r *recorder) WikiTerm(term string)                 { r.add("WikiTerm(%s)", term) }
func (r *recorder) LT()                                  { r.add("LT") }
func (r *recorder) GT()                                  { r.add("GT") }
func (r *recorder) LI()                                  { r.add("LI") }
func (r *recorder) LINumbered()                          { r.add("LINumbered") }
func (r *recorder) URL(url string)                       { r.add("URL(%s)", url) }
func (r *recorder) Email(addr string)                    { r.add("Email(%s)", addr) }
func (r *recorder) QuotedBlock(text string)              { r.add("QuotedBlock(%s)", text) }

func TestParse(t *testing.T) {
	var r recorder
	err := wiki.ParseFile("", strings.NewReader("^red ^Foo ^ ^^H1 x^ Foo$ [[a]] ** [[[["), &r)
	require.NoError(t, err)
	want := []string{
		"Begin",
		"Color(red)", "Space",
		"EndColorOrHeader", "WikiTerm(Foo)", "Space",
		"Word(^)", "Space",
		"Header(H1)", "Space", "Word(x)", "EndColorOrHeader", "Space",
		"WikiTerm(Foo)", "Space",
		"QuotedBlock(a)", "Space",
		"Word(*)", "Space",
		"Word([[)",
		"Done",
	}
	if diff := cmp.Diff(want, r.calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}

	r.calls = nil
	err = wiki.ParseFile("", strings.NewReader("Bar\n\t# one\n\ttwo\n-----"), &r)
	require.NoError(t, err)
	want = []string{
		"Begin",
		"Word(Bar)", "LINumbered", "Word(one)", "Indent(2)", "Word(two)", "Newline", "Ruler",
		"Done",
	}
	if diff := cmp.Diff(want, r.calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
}

func TestRender(t *testing.T) {
	src := "*bold* _u_ ~i~ <x>\n\nFooBar and Page$ see http://a.b/c\n * one\n * two\n\n^red hot^ -----"
	got, err := wiki.Render(src,
		func(s string) bool { return s == "FooBar" },
		func(s string) string { return "/wiki/" + s })
	require.NoError(t, err)
	want := `<b>bold</b> <u>u</u> <i>i</i> &lt;x&gt;<p>` +
		`<a href="/wiki/FooBar">FooBar</a> and <a href="/wiki/Page">Page</a> see <a href="http://a.b/c">http://a.b/c</a>` +
		`<ul><li>one<li>two</ul><p>` +
		`<font color="red"> hot</font> <hr>`
	assert.Equal(t, want, got)
}

func TestRender_closeFormatting(t *testing.T) {
	got, err := wiki.Render("*open ^^H2 [[<pre>]]\nnext a@b.cd", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, `<b>open <span class="H2"> <pre>&lt;pre&gt;</pre></b></span><br>next <a href="mailto:a@b.cd">a@b.cd</a>`, got)

	got, err = wiki.Render("CamelCase Term$ déjà", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "CamelCase Term déjà", got)

	_, err = wiki.Render("€", nil, nil)
	assert.Error(t, err)
}
