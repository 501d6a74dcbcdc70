package sfc

import (
	"errors"
	"strings"

	"golang.org/x/net/html"
)

// ErrNoScript reports a document without an options script block.
var ErrNoScript = errors.New("sfc: no script block found")

// ScriptBlock describes the body of a <script> element inside a component
// document. Start and End are byte offsets of the body (excluding the tags).
type ScriptBlock struct {
	Body  string
	Start int
	End   int
	Attrs map[string]string
}

// Lang returns the declared script language, defaulting to "js".
func (b ScriptBlock) Lang() string {
	if lang := b.Attrs["lang"]; lang != "" {
		return lang
	}
	return "js"
}

// ExtractScript returns the first <script> block that is not already a
// `<script setup>` block. Elements nested in <template> are tokenized but
// ignored.
func ExtractScript(document string) (ScriptBlock, bool) {
	z := html.NewTokenizer(strings.NewReader(document))
	offset := 0
	for {
		tt := z.Next()
		raw := len(z.Raw())
		switch tt {
		case html.ErrorToken:
			// io.EOF or a tokenizer failure; either way there is no block.
			return ScriptBlock{}, false
		case html.StartTagToken:
			name, hasAttr := z.TagName()
			offset += raw
			if string(name) != "script" {
				continue
			}
			attrs := readAttrs(z, hasAttr)
			if _, setup := attrs["setup"]; setup {
				continue
			}
			start := offset
			next := z.Next()
			if next == html.TextToken {
				body := string(z.Raw())
				return ScriptBlock{Body: body, Start: start, End: start + len(body), Attrs: attrs}, true
			}
			if next == html.EndTagToken {
				return ScriptBlock{Start: start, End: start, Attrs: attrs}, true
			}
			offset += len(z.Raw())
		default:
			offset += raw
		}
	}
}

func readAttrs(z *html.Tokenizer, more bool) map[string]string {
	attrs := map[string]string{}
	for more {
		var key, val []byte
		key, val, more = z.TagAttr()
		attrs[string(key)] = string(val)
	}
	return attrs
}

// ReplaceScript swaps the body of block inside document for body. The
// replacement is padded with newlines so the tags stay on their own lines.
func ReplaceScript(document string, block ScriptBlock, body string) string {
	if block.Start < 0 || block.End > len(document) || block.Start > block.End {
		return document
	}
	var b strings.Builder
	b.Grow(len(document) - (block.End - block.Start) + len(body) + 2)
	b.WriteString(document[:block.Start])
	b.WriteString("\n")
	b.WriteString(strings.Trim(body, "\n"))
	b.WriteString("\n")
	b.WriteString(document[block.End:])
	return b.String()
}
