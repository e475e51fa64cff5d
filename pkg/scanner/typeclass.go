package scanner

import (
	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/storygen/pkg/source"
)

// TypeClassifier answers the questions the prop resolver and the value
// synthesizer ask about a type node. It stands in for a type checker: the
// implementation only sees syntax and the declarations of one file.
type TypeClassifier interface {
	IsPrimitiveString(t *ts.Node) bool
	IsPrimitiveNumber(t *ts.Node) bool
	IsPrimitiveBoolean(t *ts.Node) bool
	IsEnumOrUnion(t *ts.Node) bool
	IsIntersection(t *ts.Node) bool
	// FirstUnionMember returns the first member, in declaration order, of an
	// enum or union type. null and undefined members are skipped.
	FirstUnionMember(t *ts.Node) (Literal, bool)
}

// Classify applies the classifier's predicates in priority order.
func Classify(tc TypeClassifier, t *ts.Node) TypeClass {
	switch {
	case t == nil:
		return TypeOther
	case tc.IsPrimitiveString(t):
		return TypeString
	case tc.IsPrimitiveNumber(t):
		return TypeNumber
	case tc.IsPrimitiveBoolean(t):
		return TypeBoolean
	case tc.IsEnumOrUnion(t):
		return TypeEnumOrUnion
	default:
		return TypeOther
	}
}

// maxAliasDepth bounds alias chains such as `type A = B; type B = A`.
const maxAliasDepth = 16

// syntaxClassifier resolves type references against the top-level
// declarations of one source.Unit. References to anything declared
// elsewhere classify as other.
type syntaxClassifier struct {
	unit *source.Unit
}

// NewTypeClassifier returns the tree-sitter backed classifier for unit.
func NewTypeClassifier(unit *source.Unit) TypeClassifier {
	return &syntaxClassifier{unit: unit}
}

func (c *syntaxClassifier) IsPrimitiveString(t *ts.Node) bool {
	return c.classify(t) == TypeString
}

func (c *syntaxClassifier) IsPrimitiveNumber(t *ts.Node) bool {
	return c.classify(t) == TypeNumber
}

func (c *syntaxClassifier) IsPrimitiveBoolean(t *ts.Node) bool {
	return c.classify(t) == TypeBoolean
}

func (c *syntaxClassifier) IsEnumOrUnion(t *ts.Node) bool {
	return c.classify(t) == TypeEnumOrUnion
}

func (c *syntaxClassifier) IsIntersection(t *ts.Node) bool {
	t = c.resolve(t)
	return t != nil && t.Kind() == "intersection_type"
}

func (c *syntaxClassifier) FirstUnionMember(t *ts.Node) (Literal, bool) {
	return c.firstMember(t, 0)
}

// resolve unwraps annotations and parentheses and follows local type
// aliases. Enum and interface references are returned as the reference.
func (c *syntaxClassifier) resolve(t *ts.Node) *ts.Node {
	for depth := 0; depth < maxAliasDepth; depth++ {
		t = unwrapType(t)
		if t == nil || t.Kind() != "type_identifier" {
			return t
		}
		decl, ok := c.unit.LookupKind(c.unit.NodeText(t), source.DeclTypeAlias)
		if !ok {
			return t
		}
		t = decl.Node.ChildByFieldName("value")
	}
	return nil
}

func (c *syntaxClassifier) classify(t *ts.Node) TypeClass {
	return c.classifyDepth(t, 0)
}

func (c *syntaxClassifier) classifyDepth(t *ts.Node, depth int) TypeClass {
	t = c.resolve(t)
	if t == nil || depth > maxAliasDepth {
		return TypeOther
	}

	switch t.Kind() {
	case "predefined_type":
		switch c.unit.NodeText(t) {
		case "string":
			return TypeString
		case "number":
			return TypeNumber
		case "boolean":
			return TypeBoolean
		}
		return TypeOther

	case "union_type":
		members := c.unionMembers(t)
		switch {
		case len(members) == 0:
			return TypeOther
		case len(members) == 1:
			// `string | undefined` is a string
			return c.classifyDepth(members[0], depth+1)
		case c.isBooleanUnion(members):
			return TypeBoolean
		}
		return TypeEnumOrUnion

	case "type_identifier":
		if _, ok := c.unit.LookupKind(c.unit.NodeText(t), source.DeclEnum); ok {
			return TypeEnumOrUnion
		}
	}
	return TypeOther
}

// unionMembers flattens a union and drops null and undefined.
func (c *syntaxClassifier) unionMembers(t *ts.Node) []*ts.Node {
	var members []*ts.Node
	for _, m := range flattenTypes(t, "union_type") {
		if isNullish(c.unit.NodeText(unwrapType(m))) {
			continue
		}
		members = append(members, m)
	}
	return members
}

func (c *syntaxClassifier) isBooleanUnion(members []*ts.Node) bool {
	if len(members) != 2 {
		return false
	}
	seen := map[string]bool{}
	for _, m := range members {
		m = unwrapType(m)
		if m == nil || m.Kind() != "literal_type" {
			return false
		}
		seen[c.unit.NodeText(m)] = true
	}
	return seen["true"] && seen["false"]
}

func (c *syntaxClassifier) firstMember(t *ts.Node, depth int) (Literal, bool) {
	t = c.resolve(t)
	if t == nil || depth > maxAliasDepth {
		return Literal{}, false
	}

	switch t.Kind() {
	case "union_type":
		members := c.unionMembers(t)
		if len(members) == 0 {
			return Literal{}, false
		}
		return c.firstMember(members[0], depth+1)

	case "literal_type":
		return literalOf(c.unit.NodeText(t)), true

	case "type_identifier":
		decl, ok := c.unit.LookupKind(c.unit.NodeText(t), source.DeclEnum)
		if !ok {
			return Literal{Kind: LiteralOther, Raw: c.unit.NodeText(t)}, true
		}
		return c.firstEnumMember(decl.Node)
	}
	return Literal{Kind: LiteralOther, Raw: c.unit.NodeText(t)}, true
}

// firstEnumMember returns the value of an enum's first member. A member
// without initializer is the number 0.
func (c *syntaxClassifier) firstEnumMember(enum *ts.Node) (Literal, bool) {
	body := enum.ChildByFieldName("body")
	for _, member := range namedChildren(body) {
		switch member.Kind() {
		case "enum_assignment":
			value := member.ChildByFieldName("value")
			if value == nil {
				return Literal{Kind: LiteralOther}, true
			}
			return literalOf(c.unit.NodeText(value)), true
		case "property_identifier", "string", "number":
			return Literal{Kind: LiteralNumber, Value: "0", Raw: "0"}, true
		}
	}
	return Literal{}, false
}

func literalOf(raw string) Literal {
	switch {
	case isStringLiteral(raw):
		return Literal{Kind: LiteralString, Value: unquoteString(raw), Raw: raw}
	case isNumberLiteral(raw):
		return Literal{Kind: LiteralNumber, Value: raw, Raw: raw}
	default:
		return Literal{Kind: LiteralOther, Value: raw, Raw: raw}
	}
}

func isNullish(text string) bool {
	return text == "null" || text == "undefined"
}
