package scanner

import (
	"strings"

	"github.com/tdewolff/parse/v2/js"

	"github.com/goliatone/go-vuemigrate/pkg/model"
)

// vueModule named specifiers are merged into the generator's own framework
// import; default and namespace bindings pass through.
const vueModule = "vue"

// scanImport normalizes an import declaration and records it unless it
// belongs to the legacy store or only pulls in store helpers.
func (s *Scanner) scanImport(b model.Builder, stmt *js.ImportStmt) model.Builder {
	module := unquote(string(stmt.Module))
	if _, legacy := s.legacyStore[module]; legacy {
		s.logger.Debug("scanner: dropped import", "module", module)
		return b
	}
	framework := module == vueModule

	sideEffect := stmt.Default == nil && stmt.List == nil
	if sideEffect {
		return b.WithImport("import '" + module + "'")
	}

	var (
		namespace string
		named     []string
	)
	for _, alias := range stmt.List {
		if len(alias.Binding) == 0 {
			continue
		}
		if string(alias.Name) == "*" {
			namespace = "* as " + string(alias.Binding)
			continue
		}
		imported := string(alias.Binding)
		if alias.Name != nil {
			imported = string(alias.Name)
		}
		if _, helper := s.storeHelpers[imported]; helper && !framework {
			continue
		}
		spec := imported
		if alias.Name != nil {
			spec = string(alias.Name) + " as " + string(alias.Binding)
		}
		if framework {
			b = b.WithFrameworkSymbol(spec)
			continue
		}
		named = append(named, spec)
	}

	clauses := make([]string, 0, 2)
	if stmt.Default != nil {
		clauses = append(clauses, string(stmt.Default))
	}
	if namespace != "" {
		clauses = append(clauses, namespace)
	}
	if len(named) > 0 {
		clauses = append(clauses, "{ "+strings.Join(named, ", ")+" }")
	}
	if len(clauses) == 0 {
		if !framework {
			s.logger.Debug("scanner: dropped helper-only import", "module", module)
		}
		return b
	}
	return b.WithImport("import " + strings.Join(clauses, ", ") + " from '" + module + "'")
}

// unquote strips matching single, double or backtick quotes.
func unquote(text string) string {
	if len(text) >= 2 {
		first, last := text[0], text[len(text)-1]
		if first == last && (first == '\'' || first == '"' || first == '`') {
			return text[1 : len(text)-1]
		}
	}
	return text
}
