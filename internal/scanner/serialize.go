package scanner

import (
	"fmt"
	"strings"

	"github.com/tdewolff/parse/v2/js"
)

// The serializer rebuilds source text from tdewolff/parse syntax nodes. It is
// total: nodes it does not model become an explicit placeholder comment.
// Statements inside blocks are terminated with ";" except for compound
// statements (if, loops, try, switch, nested blocks, declarations).

func exprText(node js.IExpr) string {
	switch n := node.(type) {
	case nil:
		return ""
	case *js.Var:
		return string(n.Name())
	case *js.LiteralExpr:
		return literalText(*n)
	case js.LiteralExpr:
		return literalText(n)
	case *js.ArrayExpr:
		return arrayText(n)
	case *js.ObjectExpr:
		return objectText(n)
	case *js.TemplateExpr:
		return templateText(n)
	case *js.GroupExpr:
		return "(" + exprText(n.X) + ")"
	case *js.DotExpr:
		sep := "."
		if n.Optional {
			sep = "?."
		}
		return exprText(n.X) + sep + exprText(n.Y)
	case *js.IndexExpr:
		sep := ""
		if n.Optional {
			sep = "?."
		}
		return exprText(n.X) + sep + "[" + exprText(n.Y) + "]"
	case *js.NewTargetExpr:
		return "new.target"
	case *js.ImportMetaExpr:
		return "import.meta"
	case *js.NewExpr:
		if n.Args == nil {
			return "new " + exprText(n.X)
		}
		return "new " + exprText(n.X) + argsText(*n.Args)
	case *js.CallExpr:
		sep := ""
		if n.Optional {
			sep = "?."
		}
		return exprText(n.X) + sep + argsText(n.Args)
	case *js.UnaryExpr:
		return unaryText(n)
	case *js.BinaryExpr:
		return binaryText(n)
	case *js.CondExpr:
		return "(" + exprText(n.Cond) + " ? " + exprText(n.X) + " : " + exprText(n.Y) + ")"
	case *js.YieldExpr:
		out := "yield"
		if n.Generator {
			out += "*"
		}
		if n.X != nil {
			out += " " + exprText(n.X)
		}
		return out
	case *js.ArrowFunc:
		return arrowText(n)
	case *js.FuncDecl:
		return funcText(n.Async, n.Generator, n.Name, n.Params, n.Body.List)
	case *js.MethodDecl:
		return funcText(n.Async, n.Generator, nil, n.Params, n.Body.List)
	case *js.CommaExpr:
		parts := make([]string, 0, len(n.List))
		for _, item := range n.List {
			parts = append(parts, exprText(item))
		}
		return strings.Join(parts, ", ")
	case *js.VarDecl:
		return varDeclText(n)
	default:
		return unsupported(node)
	}
}

func literalText(n js.LiteralExpr) string {
	switch n.TokenType {
	case js.TrueToken, js.FalseToken:
		return strings.ToLower(string(n.Data))
	default:
		return string(n.Data)
	}
}

func arrayText(n *js.ArrayExpr) string {
	parts := make([]string, 0, len(n.List))
	for _, el := range n.List {
		text := exprText(el.Value)
		if el.Spread {
			text = "..." + text
		}
		parts = append(parts, text)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func objectText(n *js.ObjectExpr) string {
	if len(n.List) == 0 {
		return "{}"
	}
	parts := make([]string, 0, len(n.List))
	for _, prop := range n.List {
		parts = append(parts, propertyText(prop))
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

func propertyText(prop js.Property) string {
	if prop.Spread {
		return "..." + exprText(prop.Value)
	}
	if method, ok := prop.Value.(*js.MethodDecl); ok && prop.Name == nil {
		key := propertyNameText(&method.Name.PropertyName)
		switch {
		case method.Get:
			return "get " + key + "(" + paramsText(method.Params) + ") " + blockText(method.Body.List)
		case method.Set:
			return "set " + key + "(" + paramsText(method.Params) + ") " + blockText(method.Body.List)
		}
		return key + ": " + exprText(method)
	}
	key := propertyNameText(prop.Name)
	if v, ok := prop.Value.(*js.Var); ok && prop.Name != nil && !prop.Name.IsComputed() && string(v.Name()) == key {
		if prop.Init != nil {
			return key + " = " + exprText(prop.Init)
		}
		return key
	}
	return key + ": " + exprText(prop.Value)
}

func propertyNameText(name *js.PropertyName) string {
	if name == nil {
		return ""
	}
	if name.IsComputed() {
		return "[" + exprText(name.Computed) + "]"
	}
	return string(name.Literal.Data)
}

func templateText(n *js.TemplateExpr) string {
	var b strings.Builder
	if n.Tag != nil {
		b.WriteString(exprText(n.Tag))
		if n.Optional {
			b.WriteString("?.")
		}
	}
	for _, part := range n.List {
		b.Write(part.Value)
		b.WriteString(exprText(part.Expr))
	}
	b.Write(n.Tail)
	return b.String()
}

func argsText(args js.Args) string {
	parts := make([]string, 0, len(args.List))
	for _, arg := range args.List {
		text := exprText(arg.Value)
		if arg.Rest {
			text = "..." + text
		}
		parts = append(parts, text)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func unaryText(n *js.UnaryExpr) string {
	x := exprText(n.X)
	switch n.Op {
	case js.PostIncrToken, js.PostDecrToken:
		return x + n.Op.String()
	case js.AwaitToken, js.TypeofToken, js.VoidToken, js.DeleteToken:
		return n.Op.String() + " " + x
	case js.NegToken, js.PreDecrToken:
		if strings.HasPrefix(x, "-") {
			return n.Op.String() + " " + x
		}
	case js.PosToken, js.PreIncrToken:
		if strings.HasPrefix(x, "+") {
			return n.Op.String() + " " + x
		}
	}
	return n.Op.String() + x
}

func isLogical(op js.TokenType) bool {
	return op == js.AndToken || op == js.OrToken || op == js.NullishToken
}

func binaryText(n *js.BinaryExpr) string {
	x := exprText(n.X)
	y := exprText(n.Y)
	if isLogical(n.Op) {
		if child, ok := n.X.(*js.BinaryExpr); ok && isLogical(child.Op) && child.Op != n.Op {
			x = "(" + x + ")"
		}
		if child, ok := n.Y.(*js.BinaryExpr); ok && isLogical(child.Op) && child.Op != n.Op {
			y = "(" + y + ")"
		}
	}
	return x + " " + n.Op.String() + " " + y
}

// conciseBody reports the expression of a body made of a single return.
func conciseBody(list []js.IStmt) (js.IExpr, bool) {
	if len(list) != 1 {
		return nil, false
	}
	ret, ok := list[0].(*js.ReturnStmt)
	if !ok || ret.Value == nil {
		return nil, false
	}
	return ret.Value, true
}

func arrowText(n *js.ArrowFunc) string {
	prefix := ""
	if n.Async {
		prefix = "async "
	}
	head := prefix + "(" + paramsText(n.Params) + ") => "
	if expr, ok := conciseBody(n.Body.List); ok {
		body := exprText(expr)
		if _, isObject := expr.(*js.ObjectExpr); isObject {
			body = "(" + body + ")"
		}
		return head + body
	}
	return head + blockText(n.Body.List)
}

func funcText(async, generator bool, name *js.Var, params js.Params, body []js.IStmt) string {
	var b strings.Builder
	if async {
		b.WriteString("async ")
	}
	b.WriteString("function")
	if generator {
		b.WriteString("*")
	}
	if name != nil {
		b.WriteString(" ")
		b.Write(name.Name())
	}
	b.WriteString("(")
	b.WriteString(paramsText(params))
	b.WriteString(") ")
	b.WriteString(blockText(body))
	return b.String()
}

func paramsText(params js.Params) string {
	parts := make([]string, 0, len(params.List)+1)
	for _, el := range params.List {
		parts = append(parts, bindingElementText(el))
	}
	if params.Rest != nil {
		parts = append(parts, "..."+bindingText(params.Rest))
	}
	return strings.Join(parts, ", ")
}

func bindingText(binding js.IBinding) string {
	switch n := binding.(type) {
	case nil:
		return ""
	case *js.Var:
		return string(n.Name())
	case *js.BindingArray:
		parts := make([]string, 0, len(n.List)+1)
		for _, el := range n.List {
			parts = append(parts, bindingElementText(el))
		}
		if n.Rest != nil {
			parts = append(parts, "..."+bindingText(n.Rest))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *js.BindingObject:
		parts := make([]string, 0, len(n.List)+1)
		for _, item := range n.List {
			parts = append(parts, bindingItemText(item))
		}
		if n.Rest != nil {
			parts = append(parts, "..."+string(n.Rest.Name()))
		}
		if len(parts) == 0 {
			return "{}"
		}
		return "{ " + strings.Join(parts, ", ") + " }"
	default:
		return unsupported(binding)
	}
}

func bindingItemText(item js.BindingObjectItem) string {
	value := bindingElementText(item.Value)
	if item.Key == nil {
		return value
	}
	if v, ok := item.Value.Binding.(*js.Var); ok && !item.Key.IsComputed() && string(item.Key.Literal.Data) == string(v.Name()) {
		return value
	}
	return propertyNameText(item.Key) + ": " + value
}

func bindingElementText(el js.BindingElement) string {
	text := bindingText(el.Binding)
	if el.Default != nil {
		text += " = " + exprText(el.Default)
	}
	return text
}

func varDeclText(n *js.VarDecl) string {
	parts := make([]string, 0, len(n.List))
	for _, el := range n.List {
		parts = append(parts, bindingElementText(el))
	}
	return n.TokenType.String() + " " + strings.Join(parts, ", ")
}

func stmtText(node js.IStmt) string {
	switch n := node.(type) {
	case nil:
		return ""
	case *js.ExprStmt:
		return exprText(n.Value)
	case *js.BlockStmt:
		return blockText(n.List)
	case *js.ReturnStmt:
		if n.Value == nil {
			return "return"
		}
		return "return " + exprText(n.Value)
	case *js.IfStmt:
		out := "if (" + exprText(n.Cond) + ") " + terminated(n.Body)
		if n.Else != nil {
			out += " else " + terminated(n.Else)
		}
		return out
	case *js.TryStmt:
		out := "try " + blockText(n.Body.List)
		if n.Catch != nil {
			if n.Binding != nil {
				out += " catch (" + bindingText(n.Binding) + ") "
			} else {
				out += " catch "
			}
			out += blockText(n.Catch.List)
		}
		if n.Finally != nil {
			out += " finally " + blockText(n.Finally.List)
		}
		return out
	case *js.SwitchStmt:
		cases := make([]string, 0, len(n.List))
		for _, clause := range n.List {
			head := "default:"
			if clause.TokenType != js.DefaultToken {
				head = "case " + exprText(clause.Cond) + ":"
			}
			if body := stmtsText(clause.List); body != "" {
				head += " " + body
			}
			cases = append(cases, head)
		}
		if len(cases) == 0 {
			return "switch (" + exprText(n.Init) + ") {}"
		}
		return "switch (" + exprText(n.Init) + ") { " + strings.Join(cases, " ") + " }"
	case *js.BranchStmt:
		out := n.Type.String()
		if len(n.Label) > 0 {
			out += " " + string(n.Label)
		}
		return out
	case *js.VarDecl:
		return varDeclText(n)
	case *js.ThrowStmt:
		return "throw " + exprText(n.Value)
	case *js.ForStmt:
		out := "for (" + exprText(n.Init) + ";"
		if n.Cond != nil {
			out += " " + exprText(n.Cond)
		}
		out += ";"
		if n.Post != nil {
			out += " " + exprText(n.Post)
		}
		return out + ") " + blockText(n.Body.List)
	case *js.ForInStmt:
		return "for (" + exprText(n.Init) + " in " + exprText(n.Value) + ") " + blockText(n.Body.List)
	case *js.ForOfStmt:
		head := "for ("
		if n.Await {
			head = "for await ("
		}
		return head + exprText(n.Init) + " of " + exprText(n.Value) + ") " + blockText(n.Body.List)
	case *js.WhileStmt:
		return "while (" + exprText(n.Cond) + ") " + terminated(n.Body)
	case *js.DoWhileStmt:
		return "do " + terminated(n.Body) + " while (" + exprText(n.Cond) + ")"
	case *js.LabelledStmt:
		return string(n.Label) + ": " + terminated(n.Value)
	case *js.FuncDecl:
		return funcText(n.Async, n.Generator, n.Name, n.Params, n.Body.List)
	case *js.EmptyStmt:
		return ""
	case *js.DebuggerStmt:
		return "debugger"
	case *js.Comment:
		return string(n.Value)
	case *js.DirectivePrologueStmt:
		return string(n.Value)
	default:
		return unsupported(node)
	}
}

func isCompound(node js.IStmt) bool {
	switch node.(type) {
	case *js.BlockStmt, *js.IfStmt, *js.TryStmt, *js.SwitchStmt,
		*js.ForStmt, *js.ForInStmt, *js.ForOfStmt, *js.WhileStmt,
		*js.LabelledStmt, *js.FuncDecl, *js.ClassDecl, *js.Comment, *js.EmptyStmt:
		return true
	}
	return false
}

// terminated renders a statement in a statement-list position.
func terminated(node js.IStmt) string {
	text := stmtText(node)
	if text == "" || isCompound(node) {
		return text
	}
	return text + ";"
}

func stmtsText(list []js.IStmt) string {
	parts := make([]string, 0, len(list))
	for _, stmt := range list {
		if text := terminated(stmt); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

func blockText(list []js.IStmt) string {
	body := stmtsText(list)
	if body == "" {
		return "{}"
	}
	return "{ " + body + " }"
}

// bodyText renders a function body without its braces or final terminator.
func bodyText(list []js.IStmt) string {
	return strings.TrimSuffix(stmtsText(list), ";")
}

func unsupported(node any) string {
	name := strings.TrimPrefix(fmt.Sprintf("%T", node), "*")
	name = strings.TrimPrefix(name, "js.")
	return "/* Unsupported node type: " + name + " */"
}
