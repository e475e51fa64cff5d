package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/storygen/pkg/parser"
	"github.com/gnana997/storygen/pkg/parser/queries"
	"github.com/gnana997/storygen/pkg/source"
	"github.com/gnana997/storygen/pkg/util"
)

func loadUnit(t *testing.T, path, src string) *source.Unit {
	t.Helper()
	logger := util.NopLogger()
	pm := parser.NewParserManager(logger, 1)
	qm := queries.NewQueryManager(pm, logger)
	loader := source.NewLoader(pm, qm, logger)

	unit, err := loader.LoadBytes(path, []byte(src))
	require.NoError(t, err)
	t.Cleanup(func() {
		unit.Release()
		qm.Close()
		pm.Close()
	})
	return unit
}

func analyzeSource(t *testing.T, path, src string) (*Analysis, error) {
	t.Helper()
	return NewScanner(nil, util.NopLogger()).Analyze(loadUnit(t, path, src))
}

func argList(args []Assignment) [][2]string {
	out := make([][2]string, 0, len(args))
	for _, a := range args {
		out = append(out, [2]string{a.Name, a.Value})
	}
	return out
}

func TestAnalyze_BadgeInlineProps(t *testing.T) {
	src := `export default function Badge({ label, variant }: { label: string; variant?: "red" | "blue" }) {
  return <span data-variant={variant}>{label}</span>;
}
`
	a, err := analyzeSource(t, "components/Badge.tsx", src)
	require.NoError(t, err)
	require.NotNil(t, a.Primary)

	assert.Equal(t, "Badge", a.Primary.Name)
	assert.Equal(t, "Badge", a.DefaultName)
	assert.Equal(t, "parameter", a.Primary.PropsSource)
	assert.Equal(t, [][2]string{
		{"label", `"Sample Text"`},
		{"variant", `"red"`},
	}, argList(a.Primary.Args))
	assert.Empty(t, a.Secondary)
	assert.Empty(t, a.Decorations.Decorators)
}

func TestAnalyze_StringPropWithoutInterface(t *testing.T) {
	src := `export const Chip = ({ text }: { text: string }) => <em>{text}</em>;`
	a, err := analyzeSource(t, "chip.tsx", src)
	require.NoError(t, err)

	assert.Equal(t, [][2]string{{"text", `"Sample Text"`}}, argList(a.Primary.Args))
}

func TestAnalyze_PlaceholderAndOptionalComplex(t *testing.T) {
	src := `import * as React from "react";

interface ToggleProps {
  onToggle: (value: boolean) => void;
  renderIcon?: () => React.ReactNode;
  count: number;
  enabled?: boolean;
  children?: React.ReactNode;
  className?: string;
  onClick?: () => void;
}

export function Toggle({ onToggle, count, enabled }: ToggleProps) {
  return <button onClick={() => onToggle(!enabled)}>{count}</button>;
}
`
	a, err := analyzeSource(t, "toggle.tsx", src)
	require.NoError(t, err)

	assert.Equal(t, "ToggleProps", a.Primary.PropsSource)
	assert.Equal(t, []Assignment{
		{Name: "onToggle", Value: "undefined", Note: "TODO: Provide appropriate value"},
		{Name: "count", Value: "123"},
		{Name: "enabled", Value: "true"},
	}, a.Primary.Args)

	var names []string
	for _, p := range a.Primary.Props {
		names = append(names, p.Name)
		assert.True(t, p.IsLocal)
	}
	assert.Equal(t, []string{"onToggle", "renderIcon", "count", "enabled"}, names, "reserved props are dropped")
}

func TestAnalyze_VariantFactoryNeverAComponent(t *testing.T) {
	src := `import { cva } from "class-variance-authority";

export function Button({ size }: { size?: "sm" | "lg" }) {
  return <button className={buttonVariants({ size })} />;
}

export const ButtonVariants = cva("inline-flex", {
  variants: { size: { sm: "h-8", lg: "h-10" } },
});

const buttonVariants = ButtonVariants;

export { buttonVariants };
`
	a, err := analyzeSource(t, "components/ui/button.tsx", src)
	require.NoError(t, err)

	assert.Equal(t, "Button", a.Primary.Name)
	assert.Empty(t, a.Secondary)
	assert.Equal(t, []string{"Button", "ButtonVariants", "buttonVariants"}, a.NamedExports)

	rejected := map[string]string{}
	for _, c := range a.Rejected {
		rejected[c.Name] = c.Verdict.Reason
	}
	assert.Equal(t, "declaration calls cva", rejected["ButtonVariants"])
	assert.Contains(t, rejected, "buttonVariants")
}

func TestAnalyze_DefaultAndNamedSecondary(t *testing.T) {
	src := `export default function Foo() { return <div />; }
export function Bar({ count }: { count: number }) { return <span>{count}</span>; }
`
	a, err := analyzeSource(t, "foo.tsx", src)
	require.NoError(t, err)

	assert.Equal(t, "Foo", a.Primary.Name)
	assert.Empty(t, a.Primary.Args)
	require.Len(t, a.Secondary, 1)
	assert.Equal(t, "Bar", a.Secondary[0].Name)
	assert.Equal(t, [][2]string{{"count", "123"}}, argList(a.Secondary[0].Args))
}

func TestAnalyze_PrimaryIsNotFiltered(t *testing.T) {
	src := `import { cn } from "@/lib/utils";

export default function Sidebar({ collapsed }: { collapsed?: boolean }) {
  return <nav className={cn("sidebar", collapsed && "w-12")} />;
}

export const SidebarItem = ({ label }: { label: string }) => <li>{label}</li>;
export function useSidebar() { return null; }
`
	a, err := analyzeSource(t, "components/ui/sidebar.tsx", src)
	require.NoError(t, err)

	assert.Equal(t, "Sidebar", a.Primary.Name)
	assert.True(t, a.Primary.Verdict.Accepted)
	assert.Equal(t, [][2]string{{"collapsed", "true"}}, argList(a.Primary.Args))
	require.Len(t, a.Secondary, 1)
	assert.Equal(t, "SidebarItem", a.Secondary[0].Name)
	require.Len(t, a.Rejected, 1)
	assert.Equal(t, "useSidebar", a.Rejected[0].Name)
}

func TestAnalyze_FirstNamedExportIsPrimary(t *testing.T) {
	src := `export function useThing() { return 1; }
export const Panel = () => <section />;
`
	a, err := analyzeSource(t, "thing.tsx", src)
	require.NoError(t, err)

	assert.Empty(t, a.DefaultName)
	assert.Equal(t, "useThing", a.Primary.Name)
	require.Len(t, a.Secondary, 1)
	assert.Equal(t, "Panel", a.Secondary[0].Name)
	assert.Empty(t, a.Rejected)
}

func TestAnalyze_NoComponents(t *testing.T) {
	a, err := analyzeSource(t, "types.tsx", `export type Size = "sm" | "lg";
export interface SizeOptions { size?: Size }
const sizes = ["sm", "lg"];
`)
	assert.ErrorIs(t, err, ErrNoComponents)
	require.NotNil(t, a)
	assert.Nil(t, a.Primary)

	_, err = analyzeSource(t, "empty.tsx", `const Hidden = () => <div />;`)
	assert.ErrorIs(t, err, ErrNoComponents)
}

func TestAnalyze_Decorations(t *testing.T) {
	src := `export function ChartContainer() { return <div />; }
export function ChartTooltip() {
  const chart = useChart();
  const form = useFormContext();
  return <div>{chart.id}</div>;
}
`
	a, err := analyzeSource(t, "chart.tsx", src)
	require.NoError(t, err)

	require.Len(t, a.Decorations.Decorators, 2)
	assert.Contains(t, a.Decorations.Decorators[0], "<ChartContainer config=")
	assert.Contains(t, a.Decorations.Decorators[1], "<FormProvider {...form}>")
	assert.Equal(t, []string{"import { useForm, FormProvider } from 'react-hook-form';"}, a.Decorations.Imports,
		"ChartContainer is exported by the file itself")
}

func TestResolveProps_Paths(t *testing.T) {
	src := `import * as React from "react";

type Tone = "warm" | "cool";

interface BaseProps {
  tone: Tone;
}

interface CardBaseProps {
  elevation: number;
}

interface CardProps extends CardBaseProps {
  heading: string;
}

export function Card(props: CardProps) { return <div />; }

export function Panel({ tone, heading }: BaseProps & { heading: string } & React.HTMLAttributes<HTMLDivElement>) {
  return <div />;
}

type TextFieldOptions = { label: string } & { hint?: string; required: boolean };

export const TextField = React.forwardRef<HTMLInputElement, TextFieldOptions>((props, ref) => <input ref={ref} />);

interface TagOptions {
  text: string;
  count?: number;
}

export const Tag: React.FC<TagOptions> = ({ text }) => <b>{text}</b>;

function InnerList({ items }: { items: string[] }) {
  return <ul />;
}

export const List = React.memo(InnerList);

export class Clock extends React.Component<{ zone: string }> {
  render() { return <time />; }
}

export function Dupe(props: { label: string } & { label: number }) { return <i />; }
`
	unit := loadUnit(t, "paths.tsx", src)
	h := DefaultHeuristics()
	tc := NewTypeClassifier(unit)
	exports := ClassifyExports(unit)

	resolve := func(name string) ([][2]string, string) {
		for _, b := range exports.Named {
			if b.Name == name {
				props, from := ResolveProps(unit, b, tc, h)
				return argList(h.Synthesize(props)), from
			}
		}
		t.Fatalf("export %s not found", name)
		return nil, ""
	}

	args, from := resolve("Card")
	assert.Equal(t, "CardProps", from)
	assert.Equal(t, [][2]string{{"heading", `"Sample Text"`}}, args, "a Props interface contributes its own members only")

	args, from = resolve("Panel")
	assert.Equal(t, "parameter", from)
	assert.Equal(t, [][2]string{{"tone", `"warm"`}, {"heading", `"Sample Text"`}}, args)

	args, from = resolve("TextField")
	assert.Equal(t, "type argument", from)
	assert.Equal(t, [][2]string{{"label", `"Sample Text"`}, {"hint", `"Sample Text"`}, {"required", "true"}}, args)

	args, from = resolve("Tag")
	assert.Equal(t, "declared type", from)
	assert.Equal(t, [][2]string{{"text", `"Sample Text"`}, {"count", "123"}}, args)

	args, from = resolve("List")
	assert.Equal(t, "parameter", from)
	assert.Equal(t, [][2]string{{"items", "undefined"}}, args)

	args, from = resolve("Clock")
	assert.Equal(t, "declared type", from)
	assert.Equal(t, [][2]string{{"zone", `"Sample Text"`}}, args)

	args, _ = resolve("Dupe")
	assert.Equal(t, [][2]string{{"label", `"Sample Text"`}}, args, "first declaration of a name wins")
}

func TestResolveProps_ParameterInterfaceFollowsLocalExtends(t *testing.T) {
	src := `interface Base { elevation: number; }
interface SurfaceOptions extends Base, React.HTMLAttributes<HTMLDivElement> { tint: string; }
export function Surface(props: SurfaceOptions) { return <div />; }
`
	a, err := analyzeSource(t, "surface.tsx", src)
	require.NoError(t, err)

	assert.Equal(t, [][2]string{{"tint", `"Sample Text"`}, {"elevation", "123"}}, argList(a.Primary.Args))
}

func TestTypeClassification(t *testing.T) {
	src := `enum Size { Small = "sm", Large = "lg" }
enum Level { Low, High }
enum Rank { First = 10, Second }
type Alias = string;
type Nested = Tone | "extra";
type Tone = 'soft' | "loud";

interface Sample {
  a: string;
  b: number;
  c: boolean;
  d: Size;
  e: Level;
  f: "x" | 1;
  g: 2 | 3;
  h: string | number;
  i: true | false;
  j: string | undefined;
  k: Alias;
  l: Nested;
  m: "only";
  n: Record<string, unknown>;
  o: Rank;
  p: null | "late";
  q: Tone;
}
`
	unit := loadUnit(t, "sample.ts", src)
	tc := NewTypeClassifier(unit)
	decl, ok := unit.Lookup("Sample")
	require.True(t, ok)

	r := &propsResolver{unit: unit, tc: tc, h: DefaultHeuristics(), visiting: map[string]bool{}}
	props := r.describe(r.fromBody(interfaceBody(decl.Node)))

	byName := map[string]PropDescriptor{}
	for _, p := range props {
		byName[p.Name] = p
	}

	classes := map[string]TypeClass{
		"a": TypeString, "b": TypeNumber, "c": TypeBoolean,
		"d": TypeEnumOrUnion, "e": TypeEnumOrUnion, "f": TypeEnumOrUnion,
		"g": TypeEnumOrUnion, "h": TypeEnumOrUnion, "i": TypeBoolean,
		"j": TypeString, "k": TypeString, "l": TypeEnumOrUnion,
		"m": TypeOther, "n": TypeOther, "o": TypeEnumOrUnion,
		"p": TypeOther, "q": TypeEnumOrUnion,
	}
	for name, want := range classes {
		assert.Equal(t, want, byName[name].TypeClass, "prop %s", name)
	}

	h := DefaultHeuristics()
	values := map[string]string{}
	for _, a := range h.Synthesize(props) {
		values[a.Name] = a.Value
	}
	assert.Equal(t, `"sm"`, values["d"])
	assert.Equal(t, "0", values["e"])
	assert.Equal(t, `"x"`, values["f"])
	assert.Equal(t, "2", values["g"])
	assert.NotContains(t, values, "h", "a union led by a non-literal synthesizes nothing")
	assert.Equal(t, "true", values["i"])
	assert.Equal(t, `"Sample Text"`, values["j"])
	assert.Equal(t, `"Sample Text"`, values["k"])
	assert.Equal(t, `"soft"`, values["l"])
	assert.Equal(t, "undefined", values["m"])
	assert.Equal(t, "10", values["o"])
	assert.Equal(t, "undefined", values["p"], "null drops out and a lone literal is not a union")
	assert.Equal(t, `"soft"`, values["q"], "single-quoted literals are emitted with double quotes")
}
