// Package fixture turns a scanner.Analysis into the text of a Storybook
// fixture file: imports, the meta block and one story per component.
package fixture

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/gnana997/storygen/pkg/scanner"
)

// DefaultSuffix replaces the component file's extension.
const DefaultSuffix = ".stories.tsx"

// PrimaryStory is the name of the story rendering the primary component.
const PrimaryStory = "Primary"

// Story is one exported story object.
type Story struct {
	Name string
	// Component is the export the args were synthesized for.
	Component string
	Args      []scanner.Assignment
}

// Plan is everything needed to render one fixture file.
type Plan struct {
	// SourcePath is the component file, FilePath the fixture written for it.
	SourcePath string
	FilePath   string
	Title      string
	// Component is the primary export, referenced by meta.component.
	Component  string
	Imports    []string
	Decorators []string
	Primary    Story
	Secondary  []Story
}

// Options control naming.
type Options struct {
	// Root is the component root titles are made relative to.
	Root string
	// Suffix replaces the source extension. Empty selects DefaultSuffix.
	Suffix string
}

// NewPlan builds the plan for an analyzed file. The analysis must have a
// primary component.
func NewPlan(a *scanner.Analysis, opts Options) (*Plan, error) {
	if a == nil || a.Primary == nil {
		return nil, errors.Newf("no primary component to plan for")
	}
	suffix := opts.Suffix
	if suffix == "" {
		suffix = DefaultSuffix
	}

	title, err := Title(opts.Root, a.Path, a.Primary.Name)
	if err != nil {
		return nil, err
	}

	componentImport := ImportLine(a.Path, a.DefaultName, a.NamedExports)
	p := &Plan{
		SourcePath: a.Path,
		FilePath:   StoryPath(a.Path, suffix),
		Title:      title,
		Component:  a.Primary.Name,
		Imports:    append([]string{componentImport}, a.Decorations.Imports...),
		Decorators: a.Decorations.Decorators,
		Primary:    Story{Name: PrimaryStory, Component: a.Primary.Name, Args: a.Primary.Args},
	}

	exports := make([]string, 0, len(a.Secondary))
	for _, c := range a.Secondary {
		exports = append(exports, c.Name)
	}
	imported := append([]string{a.DefaultName}, a.NamedExports...)
	for i, name := range StoryNames(exports, imported...) {
		c := a.Secondary[i]
		p.Secondary = append(p.Secondary, Story{Name: name, Component: c.Name, Args: c.Args})
	}
	return p, nil
}

// StoryNames names one secondary story per export: "{Export}Story", or
// "{Export}Story1", "{Export}Story2", ... when the name is taken. The used set
// is seeded with "Primary" and with taken, the identifiers the fixture
// imports.
func StoryNames(exports []string, taken ...string) []string {
	used := map[string]bool{PrimaryStory: true}
	for _, name := range taken {
		if name != "" {
			used[name] = true
		}
	}

	names := make([]string, 0, len(exports))
	for _, export := range exports {
		name := export + "Story"
		for counter := 1; used[name]; counter++ {
			name = fmt.Sprintf("%sStory%d", export, counter)
		}
		used[name] = true
		names = append(names, name)
	}
	return names
}

// Title is "Components/" followed by path relative to root, without its
// extension and with every segment in PascalCase, then "/" and primary.
func Title(root, path, primary string) (string, error) {
	rel := path
	if root != "" {
		var err error
		rel, err = filepath.Rel(root, path)
		if err != nil {
			return "", errors.Wrapf(err, "%s is not under %s", path, root)
		}
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", errors.Newf("%s is outside the component root %s", path, root)
	}
	rel = strings.TrimSuffix(rel, filepath.Ext(rel))

	segments := strings.Split(rel, "/")
	for i, s := range segments {
		segments[i] = scanner.PascalCase(s)
	}
	return "Components/" + strings.Join(segments, "/") + "/" + primary, nil
}

// StoryPath is the sibling fixture path of a component file.
func StoryPath(path, suffix string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + suffix
}

// ImportLine imports the default export, when there is one, and every named
// component candidate from the component's module.
func ImportLine(path, defaultName string, named []string) string {
	module := "./" + scanner.BaseName(path)

	names := make([]string, 0, len(named))
	for _, n := range named {
		if n != defaultName {
			names = append(names, n)
		}
	}

	switch {
	case defaultName != "" && len(names) > 0:
		return fmt.Sprintf("import %s, { %s } from '%s';", defaultName, strings.Join(names, ", "), module)
	case defaultName != "":
		return fmt.Sprintf("import %s from '%s';", defaultName, module)
	default:
		return fmt.Sprintf("import { %s } from '%s';", strings.Join(names, ", "), module)
	}
}
