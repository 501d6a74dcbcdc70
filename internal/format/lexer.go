package format

import "strings"

type tokenKind int

const (
	tokWord tokenKind = iota
	tokPunct
	tokString
	tokTemplate
	tokRegex
	tokLineComment
	tokBlockComment
)

// token is a lexical unit of script text. Only the whitespace that preceded
// a token is remembered; the beautifier decides the rest.
type token struct {
	kind     tokenKind
	text     string
	space    bool
	newlines int
}

func (t token) is(text string) bool {
	return (t.kind == tokPunct || t.kind == tokWord) && t.text == text
}

// regexKeywords may directly precede a regular expression literal.
var regexKeywords = map[string]struct{}{
	"return": {}, "typeof": {}, "case": {}, "do": {}, "else": {}, "in": {},
	"of": {}, "new": {}, "delete": {}, "void": {}, "throw": {}, "yield": {},
	"await": {},
}

// lex splits source into tokens. It never fails: unterminated strings and
// comments run to the end of the line or input.
func lex(src string) []token {
	var (
		tokens   []token
		space    bool
		newlines int
	)
	emit := func(kind tokenKind, text string) {
		tokens = append(tokens, token{kind: kind, text: text, space: space, newlines: newlines})
		space, newlines = false, 0
	}

	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case c == '\n':
			space = true
			newlines++
			i++
		case c == ' ' || c == '\t' || c == '\r' || c == '\f' || c == '\v':
			space = true
			i++
		case c == '/' && i+1 < len(src) && src[i+1] == '/':
			end := strings.IndexByte(src[i:], '\n')
			if end < 0 {
				end = len(src)
			} else {
				end += i
			}
			emit(tokLineComment, strings.TrimRight(src[i:end], " \t\r"))
			i = end
		case c == '/' && i+1 < len(src) && src[i+1] == '*':
			end := strings.Index(src[i+2:], "*/")
			if end < 0 {
				end = len(src)
			} else {
				end = i + 2 + end + 2
			}
			emit(tokBlockComment, src[i:end])
			i = end
		case c == '/' && regexAllowed(tokens):
			end := scanRegex(src, i)
			emit(tokRegex, src[i:end])
			i = end
		case c == '\'' || c == '"':
			end := scanString(src, i)
			emit(tokString, src[i:end])
			i = end
		case c == '`':
			end := scanTemplate(src, i)
			emit(tokTemplate, src[i:end])
			i = end
		case isWordByte(c):
			j := i
			for j < len(src) && isWordByte(src[j]) {
				j++
			}
			emit(tokWord, src[i:j])
			i = j
		default:
			emit(tokPunct, string(c))
			i++
		}
	}
	return tokens
}

func isWordByte(c byte) bool {
	return c == '_' || c == '$' || c >= 0x80 ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func regexAllowed(tokens []token) bool {
	for i := len(tokens) - 1; i >= 0; i-- {
		prev := tokens[i]
		switch prev.kind {
		case tokLineComment, tokBlockComment:
			continue
		case tokPunct:
			return !strings.Contains(")]}", prev.text)
		case tokWord:
			_, ok := regexKeywords[prev.text]
			return ok
		default:
			return false
		}
	}
	return true
}

func scanString(src string, start int) int {
	quote := src[start]
	for j := start + 1; j < len(src); j++ {
		switch src[j] {
		case '\\':
			j++
		case quote:
			return j + 1
		case '\n':
			return j
		}
	}
	return len(src)
}

func scanTemplate(src string, start int) int {
	for j := start + 1; j < len(src); j++ {
		switch src[j] {
		case '\\':
			j++
		case '`':
			return j + 1
		case '$':
			if j+1 < len(src) && src[j+1] == '{' {
				j = scanInterpolation(src, j+2) - 1
			}
		}
	}
	return len(src)
}

// scanInterpolation returns the index just past the brace closing a ${ ... }
// section that starts at j.
func scanInterpolation(src string, j int) int {
	depth := 1
	for j < len(src) {
		switch src[j] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return j + 1
			}
		case '\'', '"':
			j = scanString(src, j)
			continue
		case '`':
			j = scanTemplate(src, j)
			continue
		}
		j++
	}
	return len(src)
}

func scanRegex(src string, start int) int {
	inClass := false
	for j := start + 1; j < len(src); j++ {
		switch src[j] {
		case '\\':
			j++
		case '\n':
			return j
		case '[':
			inClass = true
		case ']':
			inClass = false
		case '/':
			if inClass {
				continue
			}
			j++
			for j < len(src) && isWordByte(src[j]) {
				j++
			}
			return j
		}
	}
	return len(src)
}

// render joins tokens back into a single line, keeping the recorded spacing.
func render(tokens []token) string {
	var b strings.Builder
	for i, tok := range tokens {
		if i > 0 && (tok.space || tok.newlines > 0) {
			b.WriteByte(' ')
		}
		b.WriteString(tok.text)
	}
	return b.String()
}
