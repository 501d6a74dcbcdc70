// Package format holds the formatter implementations registered under the
// names "beautify" and "passthrough".
package format

import (
	"strings"

	"github.com/mattn/go-runewidth"

	pkgformat "github.com/goliatone/go-vuemigrate/pkg/format"
)

// Formatter names.
const (
	BeautifyName    = "beautify"
	PassthroughName = "passthrough"
)

// maxWrapDepth bounds how many times a single line is split.
const maxWrapDepth = 8

// Beautifier re-indents script text by bracket nesting, puts statements and
// object members on their own lines and wraps argument lists that overflow
// the configured width. Tokens and their relative spacing are preserved.
type Beautifier struct{}

var _ pkgformat.Formatter = Beautifier{}

// NewBeautifier returns the beautify formatter.
func NewBeautifier() Beautifier { return Beautifier{} }

// Name implements pkgformat.Formatter.
func (Beautifier) Name() string { return BeautifyName }

// Format implements pkgformat.Formatter.
func (Beautifier) Format(source string, opts pkgformat.Options) (string, error) {
	opts = opts.WithDefaults()

	b := &beautifier{}
	b.run(lex(source))

	out := make([]string, 0, len(b.lines))
	for _, ln := range b.lines {
		for _, wrapped := range wrapLine(ln, opts, 0) {
			out = append(out, wrapped.String(opts.Indent))
		}
	}
	return strings.Join(out, "\n"), nil
}

// Passthrough returns its input unchanged.
type Passthrough struct{}

var _ pkgformat.Formatter = Passthrough{}

// NewPassthrough returns the passthrough formatter.
func NewPassthrough() Passthrough { return Passthrough{} }

// Name implements pkgformat.Formatter.
func (Passthrough) Name() string { return PassthroughName }

// Format implements pkgformat.Formatter.
func (Passthrough) Format(source string, _ pkgformat.Options) (string, error) {
	return source, nil
}

// Register adds the built-in formatters to registry.
func Register(registry *pkgformat.Registry) error {
	for _, f := range []pkgformat.Formatter{NewBeautifier(), NewPassthrough()} {
		if err := registry.Register(f); err != nil {
			return err
		}
	}
	return nil
}

type line struct {
	indent int
	tokens []token
}

func (l line) blank() bool { return len(l.tokens) == 0 }

func (l line) String(indent string) string {
	if l.blank() {
		return ""
	}
	return strings.Repeat(indent, l.indent) + render(l.tokens)
}

type frame struct {
	open     string
	indent   int
	expanded bool
	inline   bool
	isSwitch bool
	inCase   bool
}

type beautifier struct {
	lines         []line
	cur           line
	stack         []*frame
	pendingSwitch bool
	caseLabel     bool
}

func (b *beautifier) top() *frame {
	if len(b.stack) == 0 {
		return nil
	}
	return b.stack[len(b.stack)-1]
}

func (b *beautifier) contentIndent() int {
	f := b.top()
	if f == nil {
		return 0
	}
	if f.inCase {
		return f.indent + 2
	}
	return f.indent + 1
}

func (b *beautifier) emit(tok token, indent int) {
	if b.cur.blank() {
		b.cur.indent = indent
		tok.space = false
		tok.newlines = 0
	}
	b.cur.tokens = append(b.cur.tokens, tok)
}

func (b *beautifier) breakLine(blankLine bool) {
	if !b.cur.blank() {
		b.lines = append(b.lines, b.cur)
		b.cur = line{}
		if f := b.top(); f != nil {
			f.expanded = true
		}
	}
	if blankLine && len(b.lines) > 0 && !b.lines[len(b.lines)-1].blank() {
		b.lines = append(b.lines, line{})
	}
}

// inlineBrace reports whether a brace opens an import/export specifier list,
// which stays on one line.
func (b *beautifier) inlineBrace() bool {
	if len(b.stack) > 0 || b.cur.blank() {
		return false
	}
	first := b.cur.tokens[0]
	return first.is("import") || (first.is("export") && len(b.cur.tokens) == 1)
}

func trailingComment(next *token) bool {
	return next != nil && next.kind == tokLineComment && next.newlines == 0
}

// joinsClosingBrace lists tokens that continue the line after a "}".
var joinsClosingBrace = map[string]struct{}{
	")": {}, "]": {}, ",": {}, ";": {}, ".": {}, "?": {},
	"else": {}, "catch": {}, "finally": {}, "while": {},
}

func (b *beautifier) run(tokens []token) {
	for k := range tokens {
		tok := tokens[k]
		var next *token
		if k+1 < len(tokens) {
			next = &tokens[k+1]
		}

		if tok.newlines > 0 {
			b.breakLine(tok.newlines > 1)
		}

		switch {
		case tok.kind == tokPunct && (tok.text == "}" || tok.text == ")" || tok.text == "]"):
			b.closeFrame(tok, next)

		case tok.kind == tokPunct && (tok.text == "{" || tok.text == "(" || tok.text == "["):
			b.openFrame(tokens, k)

		case tok.is(";"):
			b.emit(tok, b.contentIndent())
			if f := b.top(); (f == nil || f.open == "{") && !trailingComment(next) {
				b.breakLine(false)
			}

		case tok.is(","):
			b.emit(tok, b.contentIndent())
			if f := b.top(); f != nil && f.open == "{" && !f.inline && !trailingComment(next) {
				b.breakLine(false)
			}

		case tok.is(":") && b.caseLabel:
			b.emit(tok, b.contentIndent())
			b.caseLabel = false
			if f := b.top(); f != nil && f.isSwitch {
				f.inCase = true
			}
			if !trailingComment(next) {
				b.breakLine(false)
			}

		case (tok.is("case") || tok.is("default")) && b.cur.blank() && b.top() != nil && b.top().isSwitch:
			f := b.top()
			f.inCase = false
			b.emit(tok, f.indent+1)
			b.caseLabel = true

		case tok.kind == tokLineComment:
			b.emit(tok, b.contentIndent())
			b.breakLine(false)

		default:
			if tok.is("switch") {
				b.pendingSwitch = true
			}
			b.emit(tok, b.contentIndent())
		}
	}
	b.breakLine(false)
	for len(b.lines) > 0 && b.lines[len(b.lines)-1].blank() {
		b.lines = b.lines[:len(b.lines)-1]
	}
}

func (b *beautifier) openFrame(tokens []token, k int) {
	tok := tokens[k]
	var next *token
	if k+1 < len(tokens) {
		next = &tokens[k+1]
	}

	inline := tok.text == "{" && (b.inlineBrace() || shortObject(tokens, k))
	b.emit(tok, b.contentIndent())
	f := &frame{open: tok.text, indent: b.cur.indent, inline: inline}
	if tok.text == "{" && b.pendingSwitch {
		f.isSwitch = true
		b.pendingSwitch = false
	}
	b.stack = append(b.stack, f)

	if tok.text != "{" || inline || trailingComment(next) {
		return
	}
	if next != nil && next.is("}") {
		return
	}
	b.breakLine(false)
}

// blockWords precede a brace that opens a statement block.
var blockWords = map[string]struct{}{
	"else": {}, "try": {}, "finally": {}, "do": {},
}

// shortObject reports whether the brace at k opens an object literal that
// was written on one line without nested braces or statements.
func shortObject(tokens []token, k int) bool {
	if k == 0 {
		return false
	}
	prev := tokens[k-1]
	if prev.is(")") || prev.is(">") {
		return false
	}
	if _, block := blockWords[prev.text]; block && prev.kind == tokWord {
		return false
	}
	for j := k + 1; j < len(tokens); j++ {
		t := tokens[j]
		switch {
		case t.newlines > 0, t.kind == tokLineComment, t.kind == tokBlockComment:
			return false
		case t.is(";"), t.is("{"):
			return false
		case t.is("}"):
			return true
		}
	}
	return false
}

func (b *beautifier) closeFrame(tok token, next *token) {
	f := b.top()
	if f == nil {
		b.emit(tok, 0)
		return
	}
	if f.expanded {
		b.breakLine(false)
	}
	b.stack = b.stack[:len(b.stack)-1]
	b.emit(tok, f.indent)

	if tok.text != "}" || f.inline || next == nil || trailingComment(next) {
		return
	}
	if _, joins := joinsClosingBrace[next.text]; joins && next.kind != tokString {
		return
	}
	if next.is("(") {
		return
	}
	b.breakLine(false)
}

// wrapLine splits a line wider than the configured width at the first
// bracket pair that holds a comma separated list, one item per line.
func wrapLine(ln line, opts pkgformat.Options, depth int) []line {
	if opts.Width <= 0 || depth >= maxWrapDepth || ln.blank() {
		return []line{ln}
	}
	if runewidth.StringWidth(ln.String(opts.Indent)) <= opts.Width {
		return []line{ln}
	}

	lo, hi, commas := splittableList(ln.tokens)
	if lo < 0 {
		return []line{ln}
	}

	out := []line{{indent: ln.indent, tokens: ln.tokens[:lo+1]}}
	start := lo + 1
	for _, comma := range append(commas, hi) {
		item := append([]token(nil), ln.tokens[start:comma]...)
		if comma != hi {
			item = append(item, ln.tokens[comma])
		}
		if len(item) > 0 {
			out = append(out, wrapLine(line{indent: ln.indent + 1, tokens: item}, opts, depth+1)...)
		}
		start = comma + 1
	}
	tail := line{indent: ln.indent, tokens: ln.tokens[hi:]}
	return append(out, wrapLine(tail, opts, depth+1)...)
}

// splittableList finds the first bracket whose matching closer is on the
// same line with at least one comma directly inside it.
func splittableList(tokens []token) (lo, hi int, commas []int) {
	for i, tok := range tokens {
		if !tok.is("(") && !tok.is("[") && !tok.is("{") {
			continue
		}
		depth := 0
		var found []int
		for j := i + 1; j < len(tokens); j++ {
			t := tokens[j]
			switch {
			case t.is("(") || t.is("[") || t.is("{"):
				depth++
			case t.is(")") || t.is("]") || t.is("}"):
				if depth == 0 {
					if len(found) > 0 {
						return i, j, found
					}
					j = len(tokens)
					continue
				}
				depth--
			case t.is(",") && depth == 0:
				found = append(found, j)
			}
		}
	}
	return -1, -1, nil
}
