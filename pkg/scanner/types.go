// Package scanner analyzes one component source file: it classifies exports,
// filters them down to components, resolves each component's props,
// synthesizes example values and infers file-wide decorators.
package scanner

import (
	ts "github.com/tree-sitter/go-tree-sitter"
)

// ExportKind classifies an exported binding.
type ExportKind string

const (
	ExportFunction ExportKind = "function"
	ExportVariable ExportKind = "variable"
	ExportClass    ExportKind = "class"
	ExportDefault  ExportKind = "default"
	ExportType     ExportKind = "type"
)

// ExportBinding is one exported name of a file.
type ExportBinding struct {
	// Name is the exported name. For the default export it is the effective
	// name: the declaration's identifier, or the file name in PascalCase.
	Name string
	Kind ExportKind
	// Target is the kind of the underlying declaration. It equals Kind for
	// everything but default exports.
	Target ExportKind
	// Decl is the declaration node: function_declaration, function_expression,
	// variable_declarator, class_declaration or class. Nil for type exports.
	// It is only valid while the owning source.Unit is alive.
	Decl *ts.Node
}

// IsCandidate reports whether the binding can be a component at all.
func (b ExportBinding) IsCandidate() bool {
	switch b.Target {
	case ExportFunction, ExportVariable, ExportClass:
		return b.Decl != nil
	default:
		return false
	}
}

// Exports are the candidate bindings of a file.
type Exports struct {
	// Default is the default export when it is a candidate.
	Default *ExportBinding
	// Named holds the candidate named exports in source order.
	Named []ExportBinding
	// Types holds interface, type alias and enum exports.
	Types []ExportBinding
}

// Empty reports whether the file has no candidate export.
func (e Exports) Empty() bool {
	return e.Default == nil && len(e.Named) == 0
}

// HasNamed reports whether name is a candidate named export.
func (e Exports) HasNamed(name string) bool {
	for _, b := range e.Named {
		if b.Name == name {
			return true
		}
	}
	return false
}

// TypeClass is the coarse type of a prop.
type TypeClass string

const (
	TypeString      TypeClass = "string"
	TypeNumber      TypeClass = "number"
	TypeBoolean     TypeClass = "boolean"
	TypeEnumOrUnion TypeClass = "enumOrUnion"
	TypeOther       TypeClass = "other"
)

// LiteralKind classifies the first member of an enum or union.
type LiteralKind int

const (
	LiteralOther LiteralKind = iota
	LiteralString
	LiteralNumber
)

// Literal is a literal type member. For strings Value is unquoted and Raw
// keeps the source spelling.
type Literal struct {
	Kind  LiteralKind
	Value string
	Raw   string
}

// PropDescriptor is one resolved prop of a component.
type PropDescriptor struct {
	Name      string
	TypeClass TypeClass
	Optional  bool
	// IsLocal is true when the prop is declared in the component's own file.
	IsLocal bool
	// First is the first enum or union member, when TypeClass is enumOrUnion.
	First *Literal
	// TypeText is the declared type as written, for display.
	TypeText string
}

// Assignment is one synthesized prop value.
type Assignment struct {
	Name  string
	Value string
	// Note is a trailing comment, set on placeholders.
	Note string
}

// Verdict is the component filter's decision for one binding.
type Verdict struct {
	Accepted bool
	Reason   string
}

// Component is an analyzed export.
type Component struct {
	Name    string
	Kind    ComponentKind
	Verdict Verdict
	// PropsSource names where the props came from: "BadgeProps",
	// "declared type", "parameter", "type argument", or empty when nothing
	// resolved.
	PropsSource string
	Props       []PropDescriptor
	Args        []Assignment
}

// Decorations are the decorators and extra imports shared by every fixture
// of a file.
type Decorations struct {
	Decorators []string
	Imports    []string
}

// Analysis is everything the fixture emitter needs from one file. It holds no
// tree-sitter nodes, so it outlives the source.Unit it was computed from.
type Analysis struct {
	Path string
	// DefaultName is the effective name of the default export, or empty.
	DefaultName string
	// NamedExports are all candidate named exports, in source order.
	NamedExports []string
	Primary      *Component
	Secondary    []Component
	// Rejected are candidates the component filter turned down.
	Rejected    []Component
	Decorations Decorations
}
