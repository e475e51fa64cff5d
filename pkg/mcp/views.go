package mcp

import (
	"github.com/gnana997/storygen/pkg/generator"
	"github.com/gnana997/storygen/pkg/scanner"
)

type generateView struct {
	Dir       string              `json:"dir"`
	DryRun    bool                `json:"dry_run"`
	Processed []string            `json:"processed"`
	Skipped   []string            `json:"skipped"`
	Failed    []generator.Failure `json:"failed,omitempty"`
}

type cleanView struct {
	Dir     string              `json:"dir"`
	Deleted []string            `json:"deleted"`
	Failed  []generator.Failure `json:"failed,omitempty"`
}

type analysisView struct {
	File       string          `json:"file"`
	Primary    string          `json:"primary,omitempty"`
	Components []componentView `json:"components"`
	Decorators int             `json:"decorators"`
	Imports    []string        `json:"imports,omitempty"`
}

type componentView struct {
	Name        string     `json:"name"`
	Kind        string     `json:"kind"`
	Role        string     `json:"role"`
	Accepted    bool       `json:"accepted"`
	Reason      string     `json:"reason,omitempty"`
	PropsSource string     `json:"props_source,omitempty"`
	Props       []propView `json:"props,omitempty"`
	Args        []argView  `json:"args,omitempty"`
}

type propView struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Class    string `json:"class"`
	Optional bool   `json:"optional,omitempty"`
}

type argView struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Note  string `json:"note,omitempty"`
}

func newAnalysisView(a *scanner.Analysis) analysisView {
	v := analysisView{File: a.Path, Components: []componentView{}}
	if a.Primary != nil {
		v.Primary = a.Primary.Name
		v.Components = append(v.Components, newComponentView(*a.Primary, "primary"))
	}
	for _, c := range a.Secondary {
		v.Components = append(v.Components, newComponentView(c, "secondary"))
	}
	for _, c := range a.Rejected {
		v.Components = append(v.Components, newComponentView(c, "rejected"))
	}
	v.Decorators = len(a.Decorations.Decorators)
	v.Imports = a.Decorations.Imports
	return v
}

func newComponentView(c scanner.Component, role string) componentView {
	v := componentView{
		Name:        c.Name,
		Kind:        string(c.Kind),
		Role:        role,
		Accepted:    c.Verdict.Accepted,
		Reason:      c.Verdict.Reason,
		PropsSource: c.PropsSource,
	}
	for _, p := range c.Props {
		v.Props = append(v.Props, propView{Name: p.Name, Type: p.TypeText, Class: string(p.TypeClass), Optional: p.Optional})
	}
	for _, a := range c.Args {
		v.Args = append(v.Args, argView{Name: a.Name, Value: a.Value, Note: a.Note})
	}
	return v
}
