package scanner

import (
	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/storygen/pkg/source"
)

// ClassifyExports collects the exported bindings of a file and keeps those
// whose declaration is a function, variable or class. Re-exports
// (`export ... from`) and default exports of arbitrary expressions are not
// candidates.
func ClassifyExports(unit *source.Unit) Exports {
	var out Exports
	seen := make(map[string]bool)
	src := unit.Source()

	addNamed := func(b ExportBinding) {
		if seen[b.Name] {
			return
		}
		seen[b.Name] = true
		if b.Kind == ExportType {
			out.Types = append(out.Types, b)
			return
		}
		out.Named = append(out.Named, b)
	}
	setDefault := func(b *ExportBinding) {
		if out.Default == nil && b != nil {
			out.Default = b
		}
	}

	for _, stmt := range namedChildren(unit.Root()) {
		if stmt.Kind() != "export_statement" {
			continue
		}
		if stmt.ChildByFieldName("source") != nil {
			continue
		}

		isDefault := hasToken(stmt, "default")
		decl := stmt.ChildByFieldName("declaration")
		value := stmt.ChildByFieldName("value")

		switch {
		case isDefault && decl != nil:
			setDefault(defaultFromDeclaration(unit, decl))
		case isDefault && value != nil:
			setDefault(defaultFromValue(unit, value))
		case decl != nil:
			for _, b := range bindingsFromDeclaration(decl, src) {
				addNamed(b)
			}
		default:
			clause := findChildByKind(stmt, "export_clause")
			for _, spec := range namedChildren(clause) {
				if spec.Kind() != "export_specifier" {
					continue
				}
				local := spec.ChildByFieldName("name")
				if local == nil {
					continue
				}
				localName := unquoteString(local.Utf8Text(src))
				exported := localName
				if alias := spec.ChildByFieldName("alias"); alias != nil {
					exported = unquoteString(alias.Utf8Text(src))
				}

				b, ok := bindingForLocal(unit, localName)
				if !ok {
					continue
				}
				if exported == "default" {
					b.Kind = ExportDefault
					setDefault(&b)
					continue
				}
				b.Name = exported
				addNamed(b)
			}
		}
	}

	if out.Default != nil && out.Default.Name == "" {
		out.Default.Name = PascalCase(BaseName(unit.Path))
	}
	return out
}

// bindingsFromDeclaration handles `export function/const/class/interface ...`.
func bindingsFromDeclaration(decl *ts.Node, src []byte) []ExportBinding {
	name := func() string {
		if n := decl.ChildByFieldName("name"); n != nil {
			return n.Utf8Text(src)
		}
		return ""
	}

	switch decl.Kind() {
	case "function_declaration", "generator_function_declaration":
		return []ExportBinding{{Name: name(), Kind: ExportFunction, Target: ExportFunction, Decl: decl}}
	case "class_declaration", "abstract_class_declaration":
		return []ExportBinding{{Name: name(), Kind: ExportClass, Target: ExportClass, Decl: decl}}
	case "lexical_declaration", "variable_declaration":
		var out []ExportBinding
		for _, d := range namedChildren(decl) {
			if d.Kind() != "variable_declarator" {
				continue
			}
			n := d.ChildByFieldName("name")
			// destructuring exports bind no single declaration
			if n == nil || n.Kind() != "identifier" {
				continue
			}
			out = append(out, ExportBinding{Name: n.Utf8Text(src), Kind: ExportVariable, Target: ExportVariable, Decl: d})
		}
		return out
	case "interface_declaration", "type_alias_declaration", "enum_declaration":
		return []ExportBinding{{Name: name(), Kind: ExportType, Target: ExportType}}
	default:
		return nil
	}
}

// bindingForLocal resolves `export { X }` and `export default X` to X's
// top-level declaration.
func bindingForLocal(unit *source.Unit, localName string) (ExportBinding, bool) {
	decl, ok := unit.Lookup(localName)
	if !ok {
		return ExportBinding{}, false
	}
	switch decl.Kind {
	case source.DeclFunction:
		return ExportBinding{Name: localName, Kind: ExportFunction, Target: ExportFunction, Decl: decl.Node}, true
	case source.DeclVariable:
		return ExportBinding{Name: localName, Kind: ExportVariable, Target: ExportVariable, Decl: decl.Node}, true
	case source.DeclClass:
		return ExportBinding{Name: localName, Kind: ExportClass, Target: ExportClass, Decl: decl.Node}, true
	default:
		return ExportBinding{Name: localName, Kind: ExportType, Target: ExportType}, true
	}
}

// defaultFromDeclaration handles `export default function X() {}` and
// `export default class X {}`.
func defaultFromDeclaration(unit *source.Unit, decl *ts.Node) *ExportBinding {
	bindings := bindingsFromDeclaration(decl, unit.Source())
	if len(bindings) == 0 || bindings[0].Kind == ExportType {
		return nil
	}
	b := bindings[0]
	b.Kind = ExportDefault
	return &b
}

// defaultFromValue handles anonymous functions and classes and identifiers
// referring to a local declaration. Any other expression is not a candidate.
func defaultFromValue(unit *source.Unit, value *ts.Node) *ExportBinding {
	switch value.Kind() {
	case "function_expression", "function":
		name := ""
		if n := value.ChildByFieldName("name"); n != nil {
			name = n.Utf8Text(unit.Source())
		}
		return &ExportBinding{Name: name, Kind: ExportDefault, Target: ExportFunction, Decl: value}
	case "class":
		name := ""
		if n := value.ChildByFieldName("name"); n != nil {
			name = n.Utf8Text(unit.Source())
		}
		return &ExportBinding{Name: name, Kind: ExportDefault, Target: ExportClass, Decl: value}
	case "identifier":
		b, ok := bindingForLocal(unit, value.Utf8Text(unit.Source()))
		if !ok || !b.IsCandidate() {
			return nil
		}
		b.Kind = ExportDefault
		return &b
	default:
		return nil
	}
}
