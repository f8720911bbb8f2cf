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


package wiki

import (
	"html"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// HTMLBuilder is a Builder that renders a page as an HTML fragment.
//
// Styles still open at the end of a line are closed. Consecutive list items
// are wrapped in a single <ul> or <ol> element, closed by the next paragraph
// break or at the end of the page.
type HTMLBuilder struct {
	// Terms reports whether a CamelCase word is a page name. If nil, no
	// CamelCase word is a page name, but short Wiki terms (Name$) are.
	Terms func(term string) bool
	// Link returns the URL of the page for a Wiki term. If nil, Wiki terms
	// are rendered as plain text.
	Link func(term string) string

	sb        strings.Builder
	bold      bool
	underline bool
	italic    bool
	color     bool
	header    string
	list      string // closing tag of the open list, if any
}

// String returns the HTML rendered so far.
func (h *HTMLBuilder) String() string {
	return h.sb.String()
}

func (h *HTMLBuilder) Begin() {
	h.sb.Reset()
	h.bold, h.underline, h.italic, h.color = false, false, false, false
	h.header, h.list = "", ""
}

func (h *HTMLBuilder) Done() {
	h.finishFormatting()
	h.endList()
}

func (h *HTMLBuilder) IsWikiTermReference(term string) bool {
	return h.Terms != nil && h.Terms(term)
}

func (h *HTMLBuilder) Bold() {
	h.bold = h.toggle(h.bold, "b")
}

func (h *HTMLBuilder) Underline() {
	h.underline = h.toggle(h.underline, "u")
}

func (h *HTMLBuilder) Italic() {
	h.italic = h.toggle(h.italic, "i")
}

func (h *HTMLBuilder) toggle(on bool, tag string) bool {
	if on {
		h.sb.WriteString("</" + tag + ">")
	} else {
		h.sb.WriteString("<" + tag + ">")
	}
	return !on
}

func (h *HTMLBuilder) Color(color string) {
	if h.color {
		h.sb.WriteString("</font>")
		h.color = false
		return
	}
	h.sb.WriteString(`<font color="` + html.EscapeString(color) + `">`)
	h.color = true
}

func (h *HTMLBuilder) Header(name string) {
	if h.header != "" {
		h.sb.WriteString("</span>")
		h.header = ""
		return
	}
	h.sb.WriteString(`<span class="` + html.EscapeString(name) + `">`)
	h.header = name
}

func (h *HTMLBuilder) EndColorOrHeader() {
	if h.color {
		h.Color("")
	}
	if h.header != "" {
		h.Header(h.header)
	}
}

func (h *HTMLBuilder) finishFormatting() {
	if h.bold {
		h.Bold()
	}
	if h.underline {
		h.Underline()
	}
	if h.italic {
		h.Italic()
	}
	h.EndColorOrHeader()
}

func (h *HTMLBuilder) Indent(n int) {
	if h.list == "" {
		h.sb.WriteString(strings.Repeat("&nbsp;", n))
	}
}

func (h *HTMLBuilder) Space() {
	h.sb.WriteByte(' ')
}

func (h *HTMLBuilder) Newline() {
	h.finishFormatting()
	h.sb.WriteString("<br>")
}

func (h *HTMLBuilder) Paragraph() {
	h.finishFormatting()
	h.endList()
	h.sb.WriteString("<p>")
}

func (h *HTMLBuilder) Ruler() {
	h.sb.WriteString("<hr>")
}

func (h *HTMLBuilder) Word(word string) {
	h.sb.WriteString(html.EscapeString(word))
}

func (h *HTMLBuilder) WikiTerm(term string) {
	if h.Link == nil {
		h.Word(term)
		return
	}
	h.sb.WriteString(`<a href="` + html.EscapeString(h.Link(term)) + `">` + html.EscapeString(term) + "</a>")
}

func (h *HTMLBuilder) LT() {
	h.sb.WriteString("&lt;")
}

func (h *HTMLBuilder) GT() {
	h.sb.WriteString("&gt;")
}

func (h *HTMLBuilder) LI() {
	h.item("ul")
}

func (h *HTMLBuilder) LINumbered() {
	h.item("ol")
}

func (h *HTMLBuilder) item(tag string) {
	if end := "</" + tag + ">"; h.list != end {
		h.endList()
		h.sb.WriteString("<" + tag + ">")
		h.list = end
	}
	h.sb.WriteString("<li>")
}

func (h *HTMLBuilder) endList() {
	h.sb.WriteString(h.list)
	h.list = ""
}

func (h *HTMLBuilder) URL(url string) {
	u := html.EscapeString(url)
	h.sb.WriteString(`<a href="` + u + `">` + u + "</a>")
}

func (h *HTMLBuilder) Email(addr string) {
	a := html.EscapeString(addr)
	h.sb.WriteString(`<a href="mailto:` + a + `">` + a + "</a>")
}

func (h *HTMLBuilder) QuotedBlock(text string) {
	r := strings.NewReplacer("<", "&lt;", ">", "&gt;")
	h.sb.WriteString("<pre>" + r.Replace(text) + "</pre>")
}

// Render returns the HTML rendering of a Wiki page given as UTF-8 text. Every
// short Wiki term and every CamelCase word for which isPage returns true link
// to the URL returned by link. src must only contain Latin-1 characters.
func Render(src string, isPage func(string) bool, link func(string) string) (string, error) {
	latin1, err := charmap.ISO8859_1.NewEncoder().String(src)
	if err != nil {
		return "", err
	}
	h := &HTMLBuilder{Terms: isPage, Link: link}
	if err := ParseFile("", strings.NewReader(latin1), h); err != nil {
		return "", err
	}
	return h.String(), nil
}
