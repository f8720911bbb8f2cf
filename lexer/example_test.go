package lexer_test

import (
	"fmt"
	"os"
	"strings"

	"github.com/db47h/lex/v2"
	"github.com/db47h/lex/v2/lexer"
	"github.com/db47h/lex/v2/token"
)

// A small subset of Go.
var goDef = &lexer.Definition{
	Name:  "go",
	Modes: []string{"DEFAULT"},
	Rules: []lexer.Rule{
		{Name: "WS", Pattern: `[ \t\r\n]+`, Skip: true},
		{Name: "COMMENT", Pattern: `//[^\n]*|/\*([^*]|\*+[^*/])*\*+/`},
		{Name: "FUNC", Literal: "func"},
		{Name: "IDENT", Pattern: "[a-zA-Z_][a-zA-Z0-9_]*"},
		{Name: "INT", Pattern: "[0-9]+"},
		{Name: "DEFINE", Literal: ":="},
		{Name: "LPAREN", Literal: "("},
		{Name: "RPAREN", Literal: ")"},
		{Name: "LBRACKET", Literal: "["},
		{Name: "RBRACKET", Literal: "]"},
		{Name: "LBRACE", Literal: "{"},
		{Name: "RBRACE", Literal: "}"},
		{Name: "COMMA", Literal: ","},
	},
}

func ExampleLexer() {
	input := `// main function
func main() {
  b := make([]int, 10) /* trailing */
}`
	g, err := lexer.Compile(goDef)
	if err != nil {
		panic(err)
	}
	l := lexer.New(g, lex.NewStream(lex.NewFile("", strings.NewReader(input))))
	for {
		t, err := l.Next()
		if err != nil {
			fmt.Println(err)
			return
		}
		fmt.Printf("%s %s %q\n", t.Begin, g.KindName(t.Kind), t.Image)
		if t.Kind == token.EOF {
			break
		}
	}

	// Output:
	// 1:1 COMMENT "// main function"
	// 2:1 FUNC "func"
	// 2:6 IDENT "main"
	// 2:10 LPAREN "("
	// 2:11 RPAREN ")"
	// 2:13 LBRACE "{"
	// 3:3 IDENT "b"
	// 3:5 DEFINE ":="
	// 3:8 IDENT "make"
	// 3:12 LPAREN "("
	// 3:13 LBRACKET "["
	// 3:14 RBRACKET "]"
	// 3:15 IDENT "int"
	// 3:18 COMMA ","
	// 3:20 INT "10"
	// 3:22 RPAREN ")"
	// 3:24 COMMENT "/* trailing */"
	// 4:1 RBRACE "}"
	// 4:2 EOF ""
}

// This example shows how to display lexical errors along with the source line,
// then skip the offending character and resume. The input is Latin-1.
// For the example's sake, the language has no digits.
func ExampleReport() {
	g, err := lexer.Compile(&lexer.Definition{
		Modes: []string{"DEFAULT"},
		Rules: []lexer.Rule{
			{Name: "TEXT", Pattern: "[^0-9\\n\"]+"},
			{Name: "STRING", Pattern: `"[^"\n]*"`},
			{Name: "NL", Literal: "\n", Skip: true},
		},
	})
	if err != nil {
		panic(err)
	}
	input := "caf\xe9 bar 1<\nd\xe9j\xe0 vu 2< \"x"
	f := lex.NewFile("INPUT", strings.NewReader(input))
	l := lexer.New(g, lex.NewStream(f))
	for {
		t, err := l.Next()
		if err != nil {
			_ = lexer.Report(os.Stdout, f, err)
			l.SkipChar()
			continue
		}
		if t.Kind == token.EOF {
			break
		}
	}

	// Output:
	// INPUT:1:10: lexical error in mode DEFAULT: encountered '1' (49) after ""
	// |café bar 1<
	// |         ^
	// INPUT:2:9: lexical error in mode DEFAULT: encountered '2' (50) after ""
	// |déjà vu 2< "x
	// |        ^
	// INPUT:2:14: lexical error in mode DEFAULT: encountered <EOF> after "\"x"
	// |déjà vu 2< "x
	// |             ^
}
