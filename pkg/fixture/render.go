package fixture

import (
	"fmt"
	"strings"

	"github.com/gnana997/storygen/pkg/scanner"
)

// Render returns the fixture file text. The output depends only on the plan.
func (p *Plan) Render() []byte {
	var b strings.Builder

	b.WriteString("\nimport React from 'react';\n")
	b.WriteString("import { Meta, StoryObj } from '@storybook/react';\n")
	for _, line := range p.Imports {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	fmt.Fprintf(&b, `
const meta = {
  title: '%s',
  component: %s,
  parameters: {
    layout: 'centered',
  },
  tags: ['autodocs'],
  argTypes: {},
  decorators: %s,
} satisfies Meta<typeof %s>;

export default meta;

type Story = StoryObj<typeof meta>;
`, escapeSingle(p.Title), p.Component, renderDecorators(p.Decorators), p.Component)

	writeStory(&b, p.Primary)
	for _, s := range p.Secondary {
		writeStory(&b, s)
	}
	return []byte(b.String())
}

func writeStory(b *strings.Builder, s Story) {
	fmt.Fprintf(b, "\nexport const %s: Story = {\n  args: %s,\n};\n", s.Name, renderArgs(s.Args))
}

func renderArgs(args []scanner.Assignment) string {
	if len(args) == 0 {
		return "{}"
	}
	var b strings.Builder
	b.WriteString("{\n")
	for _, a := range args {
		fmt.Fprintf(&b, "    %s: %s,", a.Name, a.Value)
		if a.Note != "" {
			b.WriteString(" // " + a.Note)
		}
		b.WriteByte('\n')
	}
	b.WriteString("  }")
	return b.String()
}

func renderDecorators(decorators []string) string {
	if len(decorators) == 0 {
		return "[]"
	}
	var b strings.Builder
	b.WriteString("[\n")
	for _, d := range decorators {
		b.WriteString(indent(strings.TrimRight(d, "\n"), "    "))
		b.WriteString(",\n")
	}
	b.WriteString("  ]")
	return b.String()
}

func indent(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = prefix + l
		}
	}
	return strings.Join(lines, "\n")
}

func escapeSingle(s string) string {
	return strings.ReplaceAll(s, "'", `\'`)
}
