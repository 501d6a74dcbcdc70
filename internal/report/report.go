// Package report renders a markdown document comparing a component before and
// after conversion, optionally against a hand-written expectation.
package report

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
)

// Document holds the texts placed in the report.
type Document struct {
	Input    string
	Output   string
	Expected string
	// HasExpected distinguishes an empty expectation from none at all.
	HasExpected bool
}

// Comparison describes how the output relates to the expectation. Line is
// 1-based and zero when the texts match.
type Comparison struct {
	Match bool
	Line  int
	Want  string
	Got   string

	// WantEnded and GotEnded mark a side that ran out of lines.
	WantEnded bool
	GotEnded  bool
}

// Compare checks output against expected line by line. Trailing whitespace and
// trailing blank lines are ignored.
func Compare(expected, output string) Comparison {
	want := normalizedLines(expected)
	got := normalizedLines(output)
	for i := 0; i < max(len(want), len(got)); i++ {
		c := Comparison{Line: i + 1, WantEnded: i >= len(want), GotEnded: i >= len(got)}
		if !c.WantEnded {
			c.Want = want[i]
		}
		if !c.GotEnded {
			c.Got = got[i]
		}
		if c.WantEnded || c.GotEnded || c.Want != c.Got {
			return c
		}
	}
	return Comparison{Match: true}
}

func normalizedLines(text string) []string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

//go:embed templates/*.md.tpl
var embeddedTemplates embed.FS

var defaultEngine = sync.OnceValues(func() (*Engine, error) {
	templates, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return nil, fmt.Errorf("report: sub fs: %w", err)
	}
	return NewEngine(WithFS(templates))
})

// Markdown renders the report with the embedded template.
func Markdown(doc Document) (string, error) {
	engine, err := defaultEngine()
	if err != nil {
		return "", err
	}
	return engine.Markdown(doc)
}

// Markdown renders the report through the "report" template.
func (e *Engine) Markdown(doc Document) (string, error) {
	return e.RenderTemplate("report", reportContext(doc))
}

func reportContext(doc Document) pongo2.Context {
	sections := []map[string]any{
		section("Input", doc.Input),
		section("Output", doc.Output),
	}
	ctx := pongo2.Context{}
	if doc.HasExpected {
		c := Compare(doc.Expected, doc.Output)
		ctx["comparison"] = map[string]any{
			"match": c.Match,
			"line":  c.Line,
			"want":  quoteLine(c.Want, c.WantEnded),
			"got":   quoteLine(c.Got, c.GotEnded),
		}
		sections = append(sections, section("Expected output", doc.Expected))
	}
	ctx["sections"] = sections
	return ctx
}

func section(title, body string) map[string]any {
	if !strings.HasSuffix(body, "\n") {
		body += "\n"
	}
	return map[string]any{
		"title": title,
		"fence": fenceFor(body),
		"body":  body,
	}
}

// fenceFor returns a backtick fence longer than any run inside body.
func fenceFor(body string) string {
	return strings.Repeat("`", max(3, longestBacktickRun(body)+1))
}

func longestBacktickRun(s string) int {
	longest, run := 0, 0
	for _, r := range s {
		if r == '`' {
			run++
			longest = max(longest, run)
			continue
		}
		run = 0
	}
	return longest
}

func quoteLine(line string, ended bool) string {
	if ended {
		return "end of document"
	}
	fence := strings.Repeat("`", longestBacktickRun(line)+1)
	return fence + " " + line + " " + fence
}
