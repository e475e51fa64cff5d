package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/gnana997/storygen/pkg/scanner"
)

func newInspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Show which exports of a file are components and the args they would get",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, 1)
			if err != nil {
				return err
			}
			defer a.Close()

			analysis, err := a.generator(nil, true).Inspect(args[0])
			if err != nil && !errors.Is(err, scanner.ErrNoComponents) {
				return err
			}
			printAnalysis(cmd.OutOrStdout(), analysis)
			return nil
		},
	}
	addTreeFlags(cmd)
	return cmd
}

func printAnalysis(w io.Writer, a *scanner.Analysis) {
	fmt.Fprintln(w, a.Path)
	if a.Primary == nil {
		fmt.Fprintln(w, "  no components: the file would be skipped")
	}

	tbl := newTable(w)
	tbl.AppendHeader(table.Row{"Component", "Kind", "Role", "Verdict"})
	if a.Primary != nil {
		tbl.AppendRow(componentRow(*a.Primary, "primary"))
	}
	for _, c := range a.Secondary {
		tbl.AppendRow(componentRow(c, "secondary"))
	}
	for _, c := range a.Rejected {
		tbl.AppendRow(componentRow(c, "rejected"))
	}
	fmt.Fprintln(w)
	tbl.Render()

	if a.Primary != nil {
		printProps(w, *a.Primary)
	}
	for _, c := range a.Secondary {
		printProps(w, c)
	}

	if len(a.Decorations.Decorators) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Decorators")
		for _, d := range a.Decorations.Decorators {
			fmt.Fprintf(w, "  %s\n", strings.ReplaceAll(d, "\n", "\n  "))
		}
	}
}

func printProps(w io.Writer, c scanner.Component) {
	fmt.Fprintln(w)
	if len(c.Props) == 0 {
		fmt.Fprintf(w, "%s props  (none)\n", c.Name)
		return
	}
	fmt.Fprintf(w, "%s props  (from %s)\n", c.Name, c.PropsSource)

	values := make(map[string]scanner.Assignment, len(c.Args))
	for _, arg := range c.Args {
		values[arg.Name] = arg
	}

	tbl := newTable(w)
	tbl.AppendHeader(table.Row{"Prop", "Type", "Optional", "Value"})
	for _, p := range c.Props {
		value := "(omitted)"
		if arg, ok := values[p.Name]; ok {
			value = arg.Value
			if arg.Note != "" {
				value += "  // " + arg.Note
			}
		}
		optional := ""
		if p.Optional {
			optional = "yes"
		}
		tbl.AppendRow(table.Row{p.Name, p.TypeClass, optional, value})
	}
	tbl.Render()
}

func componentRow(c scanner.Component, role string) table.Row {
	verdict := "accepted"
	if !c.Verdict.Accepted {
		verdict = c.Verdict.Reason
	}
	return table.Row{c.Name, c.Kind, role, verdict}
}

func newTable(w io.Writer) table.Writer {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	return tbl
}
