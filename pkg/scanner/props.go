package scanner

import (
	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/storygen/pkg/source"
)

// propSignature is a property_signature found while walking a props type.
type propSignature struct {
	node     *ts.Node
	name     string
	typeNode *ts.Node
	optional bool
}

// propsResolver collects a component's props from the declarations of one
// file.
type propsResolver struct {
	unit *source.Unit
	tc   TypeClassifier
	h    *Heuristics
	// visiting guards against interfaces extending themselves
	visiting map[string]bool
}

// ResolveProps resolves the prop contract of one exported binding and names
// where it came from. The first source that applies wins:
//
//  1. an interface or type alias named {Name}Props in the same file, even
//     when it declares no property of its own
//  2. the component's declared props type: the first parameter of its render
//     function, or P of FC<P> / Component<P>
//  3. the second type argument of the initializer call (forwardRef<E, P>)
//
// Reserved names, duplicates and properties not declared in this file are
// dropped. Unresolvable types contribute nothing.
func ResolveProps(unit *source.Unit, b ExportBinding, tc TypeClassifier, h *Heuristics) ([]PropDescriptor, string) {
	r := &propsResolver{unit: unit, tc: tc, h: h, visiting: make(map[string]bool)}
	sigs, from := r.collect(b)
	return r.describe(sigs), from
}

func (r *propsResolver) collect(b ExportBinding) ([]propSignature, string) {
	propsName := b.Name + "Props"
	if decl, ok := r.unit.LookupKind(propsName, source.DeclInterface, source.DeclTypeAlias); ok {
		// an interface contributes its own members only, even when empty
		if decl.Kind == source.DeclInterface {
			return r.fromBody(interfaceBody(decl.Node)), propsName
		}
		return r.fromType(decl.Node.ChildByFieldName("value")), propsName
	}

	s := detectShape(r.unit, b.Decl)

	if s.annotation != nil {
		if sigs := r.fromType(s.annotation); len(sigs) > 0 {
			return sigs, "declared type"
		}
	}
	if t := firstParameterType(s.fn); t != nil {
		if sigs := r.fromType(t); len(sigs) > 0 {
			return sigs, "parameter"
		}
	}
	if s.call != nil {
		if args := typeArguments(s.call); len(args) >= 2 {
			if sigs := r.fromType(args[1]); len(sigs) > 0 {
				return sigs, "type argument"
			}
		}
	}
	return nil, ""
}

// fromType collects the properties of a type expression. Intersections are
// flattened and every branch contributes.
func (r *propsResolver) fromType(t *ts.Node) []propSignature {
	t = unwrapType(t)
	if t == nil {
		return nil
	}

	if r.tc.IsIntersection(t) {
		var sigs []propSignature
		for _, branch := range flattenTypes(r.resolveAlias(t), "intersection_type") {
			sigs = append(sigs, r.fromType(branch)...)
		}
		return sigs
	}

	switch t.Kind() {
	case "object_type":
		return r.fromBody(t)

	case "type_identifier":
		return r.fromReference(r.unit.NodeText(t))

	case "generic_type":
		name := t.ChildByFieldName("name")
		if name != nil && name.Kind() == "type_identifier" {
			if sigs := r.fromReference(r.unit.NodeText(name)); len(sigs) > 0 {
				return sigs
			}
		}
		// PropsWithChildren<P> and friends add nothing local beyond P
		switch lastSegment(name, r.unit.Source()) {
		case "PropsWithChildren", "PropsWithRef", "PropsWithoutRef":
			var sigs []propSignature
			for _, arg := range typeArguments(t) {
				sigs = append(sigs, r.fromType(arg)...)
			}
			return sigs
		}
	}
	return nil
}

// fromReference follows a name to a local interface (with its local extends
// chain) or type alias.
func (r *propsResolver) fromReference(name string) []propSignature {
	decl, ok := r.unit.LookupKind(name, source.DeclInterface, source.DeclTypeAlias)
	if !ok || r.visiting[name] {
		return nil
	}
	r.visiting[name] = true
	defer delete(r.visiting, name)

	if decl.Kind == source.DeclTypeAlias {
		return r.fromType(decl.Node.ChildByFieldName("value"))
	}

	sigs := r.fromBody(interfaceBody(decl.Node))
	if extends := findChildByKind(decl.Node, "extends_type_clause"); extends != nil {
		for _, parent := range namedChildren(extends) {
			sigs = append(sigs, r.fromType(parent)...)
		}
	}
	return sigs
}

// resolveAlias follows a type_identifier through local aliases so that an
// aliased intersection can be flattened.
func (r *propsResolver) resolveAlias(t *ts.Node) *ts.Node {
	for depth := 0; depth < maxAliasDepth && t != nil && t.Kind() == "type_identifier"; depth++ {
		decl, ok := r.unit.LookupKind(r.unit.NodeText(t), source.DeclTypeAlias)
		if !ok {
			break
		}
		t = unwrapType(decl.Node.ChildByFieldName("value"))
	}
	return t
}

// fromBody reads the property signatures of an interface_body or object_type.
// Method, call and index signatures are not props.
func (r *propsResolver) fromBody(body *ts.Node) []propSignature {
	var sigs []propSignature
	for _, member := range namedChildren(body) {
		if member.Kind() != "property_signature" {
			continue
		}
		name := member.ChildByFieldName("name")
		if name == nil {
			continue
		}
		sigs = append(sigs, propSignature{
			node:     member,
			name:     r.unit.NodeText(name),
			typeNode: unwrapType(member.ChildByFieldName("type")),
			optional: hasToken(member, "?"),
		})
	}
	return sigs
}

// describe filters the collected signatures and classifies their types.
func (r *propsResolver) describe(sigs []propSignature) []PropDescriptor {
	seen := make(map[string]bool, len(sigs))
	props := make([]PropDescriptor, 0, len(sigs))

	for _, sig := range sigs {
		if r.h.IsReserved(unquoteString(sig.name)) || seen[sig.name] {
			continue
		}
		local := r.unit.Owns(sig.node)
		if !local {
			continue
		}
		seen[sig.name] = true

		desc := PropDescriptor{
			Name:      sig.name,
			TypeClass: Classify(r.tc, sig.typeNode),
			Optional:  sig.optional,
			IsLocal:   local,
			TypeText:  r.unit.NodeText(sig.typeNode),
		}
		if desc.TypeClass == TypeEnumOrUnion {
			if lit, ok := r.tc.FirstUnionMember(sig.typeNode); ok {
				desc.First = &lit
			}
		}
		props = append(props, desc)
	}
	return props
}

func interfaceBody(decl *ts.Node) *ts.Node {
	if body := decl.ChildByFieldName("body"); body != nil {
		return body
	}
	return findChildByKind(decl, "interface_body")
}
