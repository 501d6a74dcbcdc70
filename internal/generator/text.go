package generator

import "strings"

// walkCode calls fn for every byte of s that is outside string, template and
// comment text. depth is the bracket nesting at i; an opener and its closer
// report the same depth. Walking stops when fn returns false.
func walkCode(s string, fn func(i, depth int) bool) {
	depth := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\'' || c == '"' || c == '`':
			i = skipQuoted(s, i) - 1
			continue
		case c == '/' && i+1 < len(s) && s[i+1] == '/':
			end := strings.IndexByte(s[i:], '\n')
			if end < 0 {
				return
			}
			i += end - 1
			continue
		case c == '/' && i+1 < len(s) && s[i+1] == '*':
			end := strings.Index(s[i+2:], "*/")
			if end < 0 {
				return
			}
			i += end + 3
			continue
		case c == '(' || c == '[' || c == '{':
			if !fn(i, depth) {
				return
			}
			depth++
			continue
		case c == ')' || c == ']' || c == '}':
			if depth > 0 {
				depth--
			}
		}
		if !fn(i, depth) {
			return
		}
	}
}

// skipQuoted returns the index just past the quoted text starting at i.
// Template interpolations are skipped along with the template.
func skipQuoted(s string, i int) int {
	quote := s[i]
	nested := 0
	for j := i + 1; j < len(s); j++ {
		switch s[j] {
		case '\\':
			j++
		case '{':
			if quote == '`' && nested > 0 {
				nested++
			}
		case '$':
			if quote == '`' && j+1 < len(s) && s[j+1] == '{' {
				nested++
				j++
			}
		case '}':
			if nested > 0 {
				nested--
			}
		case quote:
			if nested == 0 {
				return j + 1
			}
		}
	}
	return len(s)
}

// matchingClose returns the index of the bracket closing the one at open, or
// -1.
func matchingClose(s string, open int) int {
	found := -1
	started := false
	walkCode(s[open:], func(i, depth int) bool {
		if !started {
			started = true
			return true
		}
		if depth == 0 && strings.IndexByte(")]}", s[open+i]) >= 0 {
			found = open + i
			return false
		}
		return true
	})
	return found
}

// continuesAfterBrace lists words that keep a statement going after "}".
var continuesAfterBrace = []string{"else", "catch", "finally", "while"}

// splitStatements splits a statement list at top-level terminators and
// after top-level blocks. Each statement is returned trimmed.
func splitStatements(body string) []string {
	var (
		out   []string
		start int
	)
	cut := func(end int) {
		if stmt := strings.TrimSpace(body[start:end]); stmt != "" {
			out = append(out, stmt)
		}
		start = end
	}
	walkCode(body, func(i, depth int) bool {
		if depth != 0 {
			return true
		}
		switch body[i] {
		case ';':
			cut(i + 1)
		case '}':
			rest := strings.TrimLeft(body[i+1:], " \t\r\n")
			if rest == "" || strings.ContainsRune(");,.?:", rune(rest[0])) || rest[0] == '(' {
				return true
			}
			for _, word := range continuesAfterBrace {
				if strings.HasPrefix(rest, word) {
					return true
				}
			}
			cut(i + 1)
		}
		return true
	})
	cut(len(body))
	return out
}

// blockStatements start statements that end with their own block and take
// no terminator.
var blockStatements = []string{
	"if", "for", "while", "switch", "try", "function", "async function", "class",
}

// terminate appends a statement terminator unless the statement already ends
// with one or is a block statement. Expressions ending in an object literal
// or an arrow body, such as return { a: 1 }, are terminated.
func terminate(stmt string) string {
	stmt = strings.TrimSpace(stmt)
	if stmt == "" || strings.HasSuffix(stmt, ";") {
		return stmt
	}
	if strings.HasSuffix(stmt, "}") && isBlockStatement(stmt) {
		return stmt
	}
	return stmt + ";"
}

func isBlockStatement(stmt string) bool {
	if strings.HasPrefix(stmt, "{") {
		return true
	}
	for _, kw := range blockStatements {
		if rest, ok := strings.CutPrefix(stmt, kw); ok && (rest == "" || !isIdentByte(rest[0])) {
			return true
		}
	}
	return false
}

// countCode counts occurrences of c outside string, template and comment
// text.
func countCode(s string, c byte) int {
	n := 0
	walkCode(s, func(i, _ int) bool {
		if s[i] == c {
			n++
		}
		return true
	})
	return n
}

// collapseTerminators removes repeated ";" outside strings and brackets other
// than braces, which keeps for(;;) intact.
func collapseTerminators(s string) string {
	var (
		b      strings.Builder
		parens = 0
		last   = 0
	)
	walkCode(s, func(i, _ int) bool {
		switch s[i] {
		case '(', '[':
			parens++
		case ')', ']':
			if parens > 0 {
				parens--
			}
		case ';':
			if parens == 0 && i+1 < len(s) && s[i+1] == ';' {
				b.WriteString(s[last:i])
				last = i + 1
			}
		}
		return true
	})
	b.WriteString(s[last:])
	return b.String()
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// fnParts is a function or arrow expression split into its pieces.
type fnParts struct {
	async  bool
	params string
	body   string
	block  bool
}

// splitFunction recognises `function name(params) { body }`, `(params) =>
// body` and `param => body`, each optionally async.
func splitFunction(text string) (fnParts, bool) {
	text = strings.TrimSpace(text)
	parts := fnParts{}
	if rest, ok := strings.CutPrefix(text, "async"); ok && rest != "" && !isIdentByte(rest[0]) {
		parts.async = true
		text = strings.TrimSpace(rest)
	}

	if rest, ok := strings.CutPrefix(text, "function"); ok && rest != "" && !isIdentByte(rest[0]) {
		open := strings.IndexByte(rest, '(')
		if open < 0 {
			return fnParts{}, false
		}
		closeParen := matchingClose(rest, open)
		if closeParen < 0 {
			return fnParts{}, false
		}
		parts.params = strings.TrimSpace(rest[open+1 : closeParen])
		body := strings.TrimSpace(rest[closeParen+1:])
		inner, ok := blockInner(body)
		if !ok {
			return fnParts{}, false
		}
		parts.body, parts.block = inner, true
		return parts, true
	}

	var rest string
	switch {
	case strings.HasPrefix(text, "("):
		closeParen := matchingClose(text, 0)
		if closeParen < 0 {
			return fnParts{}, false
		}
		parts.params = strings.TrimSpace(text[1:closeParen])
		rest = strings.TrimSpace(text[closeParen+1:])
	default:
		end := 0
		for end < len(text) && isIdentByte(text[end]) {
			end++
		}
		if end == 0 {
			return fnParts{}, false
		}
		parts.params = text[:end]
		rest = strings.TrimSpace(text[end:])
	}
	rest, ok := strings.CutPrefix(rest, "=>")
	if !ok {
		return fnParts{}, false
	}
	rest = strings.TrimSpace(rest)
	if inner, ok := blockInner(rest); ok {
		parts.body, parts.block = inner, true
		return parts, true
	}
	parts.body = rest
	return parts, true
}

// blockInner returns the trimmed content of text when text is exactly one
// brace block.
func blockInner(text string) (string, bool) {
	if !strings.HasPrefix(text, "{") {
		return "", false
	}
	if matchingClose(text, 0) != len(text)-1 {
		return "", false
	}
	return strings.TrimSpace(text[1 : len(text)-1]), true
}

// toArrow rewrites a function expression as an arrow function. Arrows and
// other expressions are returned unchanged.
func toArrow(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "function") && !strings.HasPrefix(text, "async function") {
		return text
	}
	parts, ok := splitFunction(text)
	if !ok {
		return text
	}
	return arrowFrom(parts)
}

func arrowFrom(parts fnParts) string {
	prefix := ""
	if parts.async {
		prefix = "async "
	}
	head := prefix + "(" + parts.params + ") => "
	if !parts.block {
		return head + parts.body
	}
	if parts.body == "" {
		return head + "{}"
	}
	return head + "{ " + parts.body + " }"
}
