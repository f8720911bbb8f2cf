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


// Command wmlex tokenizes WebMacro templates or Wiki pages.
//
// Usage:
//
//	wmlex [flags] pattern...
//
// Patterns are file paths that may contain doublestar globs, like
// templates/**/*.wm. Tokens are printed one per line as
//
//	file:line:col KIND "text"
//
// The -lang flag selects the language: webmacro, wiki, or the path of a YAML
// language definition. With -html, Wiki pages are rendered as HTML instead.
//
// Files are processed concurrently but their output is printed in the order
// of the command line. The exit status is 1 if any file had an error.
package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/db47h/lex/v2"
	"github.com/db47h/lex/v2/lexer"
	"github.com/db47h/lex/v2/lexer/lang"
	"github.com/db47h/lex/v2/token"
	"github.com/db47h/lex/v2/webmacro"
	"github.com/db47h/lex/v2/wiki"
)

// errFailed is returned by run when some files had errors that have already
// been reported.
var errFailed = errors.New("some files had errors")

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errFailed) && !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "wmlex:", err)
		}
		os.Exit(1)
	}
}

type config struct {
	grammar    *lexer.Grammar
	opts       []lex.Option
	skipErrors bool
	html       bool
	log        *slog.Logger
}

type result struct {
	out    bytes.Buffer
	errs   bytes.Buffer
	failed bool
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("wmlex", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: wmlex [flags] pattern...")
		fs.PrintDefaults()
	}
	var (
		language   = fs.String("lang", "webmacro", "language: webmacro, wiki, or the path of a YAML definition")
		jobs       = fs.Int("j", runtime.GOMAXPROCS(0), "number of files processed concurrently")
		bufSize    = fs.Int("buffer", lex.DefaultBufferSize, "stream buffer size")
		tabWidth   = fs.Int("tab", lex.DefaultTabWidth, "tab width")
		skipErrors = fs.Bool("skip-errors", false, "skip a character after a lexical error and continue")
		html       = fs.Bool("html", false, "render Wiki pages as HTML")
		verbose    = fs.Bool("v", false, "verbose logging")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errors.New("no input files")
	}
	if *jobs < 1 {
		return fmt.Errorf("invalid -j value %d", *jobs)
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	cfg := &config{
		opts:       []lex.Option{lex.BufferSize(*bufSize), lex.TabWidth(*tabWidth)},
		skipErrors: *skipErrors,
		html:       *html,
		log:        slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})),
	}
	g, err := loadGrammar(*language)
	if err != nil {
		return err
	}
	if cfg.html && g != wiki.Grammar() {
		return errors.New("-html requires -lang wiki")
	}
	cfg.grammar = g

	files, err := expand(fs.Args())
	if err != nil {
		return err
	}
	cfg.log.Debug("starting", "lang", g.Name(), "files", len(files), "jobs", *jobs)

	results := make([]result, len(files))
	grp, ctx := errgroup.WithContext(ctx)
	grp.SetLimit(*jobs)
	for i, name := range files {
		i, name := i, name
		grp.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r := &results[i]
			if err := cfg.process(name, r); err != nil {
				fmt.Fprintf(&r.errs, "%s: %v\n", name, err)
				r.failed = true
			}
			return nil
		})
	}
	err = grp.Wait()

	failed := 0
	for i := range results {
		r := &results[i]
		if _, e := r.out.WriteTo(stdout); e != nil {
			return e
		}
		if _, e := r.errs.WriteTo(stderr); e != nil {
			return e
		}
		if r.failed {
			failed++
		}
	}
	if err != nil {
		return err
	}
	if failed > 0 {
		cfg.log.Debug("done", "files", len(files), "failed", failed)
		return errFailed
	}
	return nil
}

func loadGrammar(name string) (*lexer.Grammar, error) {
	switch name {
	case "webmacro":
		return webmacro.Grammar(), nil
	case "wiki":
		return wiki.Grammar(), nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("unknown language %q: %w", name, err)
	}
	defer f.Close()
	return lang.Load(f)
}

// expand expands glob patterns. Patterns without meta characters are kept
// as is so that missing files are reported when opened. Files matched by
// several patterns are listed once.
func expand(patterns []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			files = append(files, name)
		}
	}
	for _, p := range patterns {
		if !strings.ContainsAny(p, "*?[{") {
			add(p)
			continue
		}
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid pattern %q", p)
		}
		matches, err := doublestar.FilepathGlob(p, doublestar.WithFilesOnly())
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("%s: no matching files", p)
		}
		for _, m := range matches {
			add(m)
		}
	}
	return files, nil
}

// process tokenizes a single file. Lexical errors are written to r.errs and
// mark the result as failed; other errors are returned.
func (c *config) process(name string, r *result) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()
	lf := lex.NewFile(name, f)
	l := lexer.New(c.grammar, lex.NewStream(lf, c.opts...))
	c.log.Debug("lexing", "file", name)

	if c.html {
		var h wiki.HTMLBuilder
		if err := wiki.Parse(l, &h); err != nil {
			return err
		}
		r.out.WriteString(h.String())
		r.out.WriteByte('\n')
		return nil
	}

	for {
		t, err := l.Next()
		if err != nil {
			var le *lexer.LexicalError
			if !errors.As(err, &le) {
				return err
			}
			r.failed = true
			if err := lexer.Report(&r.errs, lf, err); err != nil {
				return err
			}
			if !c.skipErrors {
				return nil
			}
			l.SkipChar()
			continue
		}
		c.print(&r.out, t)
		if t.Kind == token.EOF {
			return nil
		}
	}
}

func (c *config) print(w io.Writer, t token.Token) {
	fmt.Fprintf(w, "%s %s %q\n", t.Begin, c.grammar.KindName(t.Kind), t.Text())
}
