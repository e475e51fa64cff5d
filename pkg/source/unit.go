// Package source loads one component file at a time: it maps the file into
// memory, parses it with tree-sitter and indexes its top-level declarations.
// A Unit owns all of that state until Release is called.
package source

import (
	"os"
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/edsrzf/mmap-go"
	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/storygen/pkg/parser"
)

// DeclKind classifies a top-level declaration.
type DeclKind string

const (
	DeclInterface DeclKind = "interface"
	DeclTypeAlias DeclKind = "type"
	DeclEnum      DeclKind = "enum"
	DeclFunction  DeclKind = "function"
	DeclClass     DeclKind = "class"
	DeclVariable  DeclKind = "variable"
)

// Declaration is a named top-level declaration of a Unit. For variables Node
// is the variable_declarator; for everything else it is the declaration node
// itself.
type Declaration struct {
	Name string
	Kind DeclKind
	Node *ts.Node
}

// IsValue reports whether the declaration binds a runtime value
// (function, class or variable) as opposed to a type.
func (d Declaration) IsValue() bool {
	switch d.Kind {
	case DeclFunction, DeclClass, DeclVariable:
		return true
	default:
		return false
	}
}

// Unit is one loaded source file.
type Unit struct {
	Path  string
	Lang  parser.Language
	IsTSX bool

	source []byte
	tree   *ts.Tree

	decls map[string]Declaration
	order []Declaration

	mapping mmap.MMap
	file    *os.File
}

// Source returns the file contents. The slice is only valid until Release.
func (u *Unit) Source() []byte {
	return u.source
}

// Text returns the full file text.
func (u *Unit) Text() string {
	return string(u.source)
}

// Root returns the program node.
func (u *Unit) Root() *ts.Node {
	return u.tree.RootNode()
}

// NodeText returns the source text spanned by node.
func (u *Unit) NodeText(node *ts.Node) string {
	if node == nil {
		return ""
	}
	return node.Utf8Text(u.source)
}

// Lookup finds a top-level declaration by name.
func (u *Unit) Lookup(name string) (Declaration, bool) {
	d, ok := u.decls[name]
	return d, ok
}

// LookupKind finds a top-level declaration by name, restricted to kinds.
func (u *Unit) LookupKind(name string, kinds ...DeclKind) (Declaration, bool) {
	d, ok := u.decls[name]
	if !ok {
		return Declaration{}, false
	}
	for _, k := range kinds {
		if d.Kind == k {
			return d, true
		}
	}
	return Declaration{}, false
}

// Declarations returns the indexed declarations in source order.
func (u *Unit) Declarations() []Declaration {
	return u.order
}

// Owns reports whether node belongs to this unit's tree. Every node reachable
// from a Unit is local to it; the check guards against nodes leaking in from
// another file's tree.
func (u *Unit) Owns(node *ts.Node) bool {
	if node == nil || u.tree == nil {
		return false
	}
	top := node
	for p := top.Parent(); p != nil; p = top.Parent() {
		top = p
	}
	return top.Id() == u.tree.RootNode().Id()
}

// Release closes the tree and unmaps the file. The Unit and every node or
// slice obtained from it must not be used afterwards. Release is idempotent.
func (u *Unit) Release() error {
	if u.tree != nil {
		u.tree.Close()
		u.tree = nil
	}
	u.decls = nil
	u.order = nil
	u.source = nil

	var errs error
	if u.mapping != nil {
		if err := u.mapping.Unmap(); err != nil {
			errs = errors.CombineErrors(errs, errors.Wrapf(err, "unmap %s", u.Path))
		}
		u.mapping = nil
	}
	if u.file != nil {
		if err := u.file.Close(); err != nil {
			errs = errors.CombineErrors(errs, errors.Wrapf(err, "close %s", u.Path))
		}
		u.file = nil
	}
	return errs
}

func (u *Unit) index(decls []Declaration) {
	u.decls = make(map[string]Declaration, len(decls))
	u.order = make([]Declaration, 0, len(decls))
	for _, d := range decls {
		// first declaration wins (function overload bodies, merged interfaces)
		if _, dup := u.decls[d.Name]; dup {
			continue
		}
		u.decls[d.Name] = d
		u.order = append(u.order, d)
	}
	sort.SliceStable(u.order, func(i, j int) bool {
		return u.order[i].Node.StartByte() < u.order[j].Node.StartByte()
	})
}
