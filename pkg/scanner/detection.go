package scanner

import (
	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/storygen/pkg/source"
)

// ComponentKind describes how a component was declared.
type ComponentKind string

const (
	ComponentKindFunction   ComponentKind = "function"
	ComponentKindForwardRef ComponentKind = "forwardRef"
	ComponentKindMemo       ComponentKind = "memo"
	ComponentKindClass      ComponentKind = "class"
	ComponentKindOther      ComponentKind = "other"
)

// shape locates the places a component's props can be declared.
type shape struct {
	kind ComponentKind
	// fn is the render function whose first parameter carries the props.
	fn *ts.Node
	// annotation is a props type given by the declared type of the binding:
	// the P of `const X: FC<P>` or of `class X extends Component<P>`.
	annotation *ts.Node
	// call is the initializer call expression, for the type-argument path.
	call *ts.Node
}

// maxUnwrapDepth bounds following memo(Inner) references.
const maxUnwrapDepth = 8

// detectShape inspects a declaration node of the ExportBinding.Decl kinds.
func detectShape(unit *source.Unit, decl *ts.Node) shape {
	return detectShapeDepth(unit, decl, 0)
}

func detectShapeDepth(unit *source.Unit, decl *ts.Node, depth int) shape {
	if decl == nil || depth > maxUnwrapDepth {
		return shape{kind: ComponentKindOther}
	}

	switch decl.Kind() {
	case "function_declaration", "generator_function_declaration", "function_expression", "function", "arrow_function":
		return shape{kind: ComponentKindFunction, fn: decl}

	case "class_declaration", "abstract_class_declaration", "class":
		return shape{kind: ComponentKindClass, annotation: classPropsType(decl)}

	case "variable_declarator":
		s := valueShape(unit, decl.ChildByFieldName("value"), depth)
		if s.annotation == nil {
			s.annotation = declaredPropsType(decl, unit.Source())
		}
		return s
	}
	return shape{kind: ComponentKindOther}
}

// valueShape inspects a variable initializer.
func valueShape(unit *source.Unit, value *ts.Node, depth int) shape {
	value = unwrapExpression(value)
	if value == nil {
		return shape{kind: ComponentKindOther}
	}
	if isFunctionNode(value) {
		return shape{kind: ComponentKindFunction, fn: value}
	}
	if value.Kind() != "call_expression" {
		return shape{kind: ComponentKindOther}
	}

	s := shape{kind: ComponentKindOther, call: value}
	switch calleeName(value, unit.Source()) {
	case "forwardRef":
		s.kind = ComponentKindForwardRef
	case "memo":
		s.kind = ComponentKindMemo
	default:
		return s
	}

	args := namedChildren(value.ChildByFieldName("arguments"))
	if len(args) == 0 {
		return s
	}
	inner := unwrapExpression(args[0])
	switch {
	case inner == nil:
	case isFunctionNode(inner):
		s.fn = inner
	case inner.Kind() == "call_expression":
		// memo(forwardRef(...))
		nested := valueShape(unit, inner, depth+1)
		s.fn = nested.fn
		if len(typeArguments(value)) < 2 {
			s.call = nested.call
		}
	case inner.Kind() == "identifier":
		// memo(Inner) where Inner is declared in the same file
		if d, ok := unit.Lookup(inner.Utf8Text(unit.Source())); ok && d.IsValue() {
			nested := detectShapeDepth(unit, d.Node, depth+1)
			s.fn = nested.fn
			s.annotation = nested.annotation
		}
	}
	return s
}

// declaredPropsType returns P from `const X: FC<P>`, `React.FC<P>`,
// `FunctionComponent<P>` and similar single-argument component types.
func declaredPropsType(declarator *ts.Node, src []byte) *ts.Node {
	t := unwrapType(declarator.ChildByFieldName("type"))
	if t == nil || t.Kind() != "generic_type" {
		return nil
	}
	switch lastSegment(t.ChildByFieldName("name"), src) {
	case "FC", "FunctionComponent", "VFC", "VoidFunctionComponent", "ComponentType":
		if args := typeArguments(t); len(args) > 0 {
			return args[0]
		}
	}
	return nil
}

// classPropsType returns P from `class X extends Component<P>`.
func classPropsType(class *ts.Node) *ts.Node {
	heritage := findChildByKind(class, "class_heritage")
	extends := findChildByKind(heritage, "extends_clause")
	if extends == nil {
		return nil
	}
	if args := typeArguments(extends); len(args) > 0 {
		return args[0]
	}
	return nil
}

func lastSegment(node *ts.Node, src []byte) string {
	if node == nil {
		return ""
	}
	if node.Kind() == "nested_type_identifier" {
		if name := node.ChildByFieldName("name"); name != nil {
			return name.Utf8Text(src)
		}
	}
	return node.Utf8Text(src)
}
