package scanner

import (
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"
)

// namedChildren returns the named children of node.
func namedChildren(node *ts.Node) []*ts.Node {
	if node == nil {
		return nil
	}
	count := node.NamedChildCount()
	children := make([]*ts.Node, 0, count)
	for i := uint(0); i < count; i++ {
		if child := node.NamedChild(i); child != nil {
			children = append(children, child)
		}
	}
	return children
}

// findChildByKind returns the first direct child of the given kind.
func findChildByKind(node *ts.Node, kind string) *ts.Node {
	if node == nil {
		return nil
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child != nil && child.Kind() == kind {
			return child
		}
	}
	return nil
}

// hasToken reports whether node has an anonymous child token such as "?" or
// "default".
func hasToken(node *ts.Node, token string) bool {
	if node == nil {
		return false
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child != nil && !child.IsNamed() && child.Kind() == token {
			return true
		}
	}
	return false
}

// unwrapType strips type_annotation and parenthesized_type wrappers.
func unwrapType(node *ts.Node) *ts.Node {
	for node != nil {
		switch node.Kind() {
		case "type_annotation", "parenthesized_type":
			children := namedChildren(node)
			if len(children) == 0 {
				return nil
			}
			node = children[0]
		default:
			return node
		}
	}
	return nil
}

// unwrapExpression strips parentheses and `as`/`satisfies` casts around an
// initializer.
func unwrapExpression(node *ts.Node) *ts.Node {
	for node != nil {
		switch node.Kind() {
		case "parenthesized_expression", "as_expression", "satisfies_expression", "non_null_expression":
			children := namedChildren(node)
			if len(children) == 0 {
				return nil
			}
			node = children[0]
		default:
			return node
		}
	}
	return nil
}

// flattenTypes flattens a left-recursive binary union_type or
// intersection_type into its leaf members, in declaration order.
func flattenTypes(node *ts.Node, kind string) []*ts.Node {
	if node == nil {
		return nil
	}
	if node.Kind() != kind {
		return []*ts.Node{node}
	}
	var members []*ts.Node
	for _, child := range namedChildren(node) {
		members = append(members, flattenTypes(child, kind)...)
	}
	return members
}

// calleeName returns the last segment of a call's callee:
// "React.forwardRef(...)" -> "forwardRef".
func calleeName(call *ts.Node, source []byte) string {
	if call == nil || call.Kind() != "call_expression" {
		return ""
	}
	fn := call.ChildByFieldName("function")
	if fn == nil {
		return ""
	}
	text := fn.Utf8Text(source)
	if i := strings.LastIndexByte(text, '.'); i >= 0 {
		return text[i+1:]
	}
	return text
}

// typeArguments returns the type arguments of a call_expression or
// generic_type.
func typeArguments(node *ts.Node) []*ts.Node {
	if node == nil {
		return nil
	}
	args := node.ChildByFieldName("type_arguments")
	if args == nil {
		args = findChildByKind(node, "type_arguments")
	}
	return namedChildren(args)
}

// firstParameterType returns the type node annotating the first parameter
// of a function, arrow function or function expression.
func firstParameterType(fn *ts.Node) *ts.Node {
	if fn == nil {
		return nil
	}
	params := fn.ChildByFieldName("parameters")
	if params == nil {
		return nil
	}
	for _, param := range namedChildren(params) {
		switch param.Kind() {
		case "required_parameter", "optional_parameter":
			return unwrapType(param.ChildByFieldName("type"))
		}
	}
	return nil
}

// isFunctionNode reports whether node is a function value.
func isFunctionNode(node *ts.Node) bool {
	if node == nil {
		return false
	}
	switch node.Kind() {
	case "function_declaration", "function_expression", "function", "arrow_function",
		"generator_function_declaration":
		return true
	}
	return false
}

// isStringLiteral checks if a string is a quoted string literal.
func isStringLiteral(s string) bool {
	if len(s) < 2 {
		return false
	}
	return (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'')
}

// unquoteString removes surrounding quotes from a string literal.
func unquoteString(s string) string {
	if isStringLiteral(s) {
		return s[1 : len(s)-1]
	}
	return s
}

// isNumberLiteral reports whether s spells a (possibly negative) number.
func isNumberLiteral(s string) bool {
	s = strings.TrimSpace(strings.TrimPrefix(s, "-"))
	if s == "" {
		return false
	}
	c := s[0]
	return (c >= '0' && c <= '9') || (c == '.' && len(s) > 1)
}
