package generator

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/storygen/pkg/parser"
	"github.com/gnana997/storygen/pkg/parser/queries"
	"github.com/gnana997/storygen/pkg/scanner"
	"github.com/gnana997/storygen/pkg/source"
	"github.com/gnana997/storygen/pkg/util"
)

const badgeSource = `export default function Badge({ label, variant }: { label: string; variant?: "red" | "blue" }) {
  return <span data-variant={variant}>{label}</span>;
}
`

const cardSource = `interface CardProps {
  heading: string;
  elevation?: number;
}

export function CardTitle({ text }: { text: string }) {
  return <h3>{text}</h3>;
}

export default function Card({ heading }: CardProps) {
  return <div>{heading}</div>;
}
`

const hooksSource = `export type ToggleState = "on" | "off";

export interface ToggleOptions {
  initial?: ToggleState;
}

function useToggle(options: ToggleOptions) {
  return options.initial ?? "off";
}
`

const shadcnButtonSource = `import * as React from "react";
import { cva, type VariantProps } from "class-variance-authority";
import { cn } from "@/lib/utils";

const buttonVariants = cva("inline-flex items-center", {
  variants: {
    variant: { default: "bg-primary", outline: "border" },
  },
});

export interface ButtonProps
  extends React.ButtonHTMLAttributes<HTMLButtonElement>,
    VariantProps<typeof buttonVariants> {
  asChild?: boolean;
}

const Button = React.forwardRef<HTMLButtonElement, ButtonProps>(
  ({ className, variant, asChild = false, ...props }, ref) => {
    return <button className={cn(buttonVariants({ variant, className }))} ref={ref} {...props} />;
  }
);
Button.displayName = "Button";

export { Button, buttonVariants };
`

func newGenerator(t *testing.T, opts Options) (*Generator, *bytes.Buffer) {
	t.Helper()
	logger := util.NopLogger()
	pm := parser.NewParserManager(logger, 1)
	qm := queries.NewQueryManager(pm, logger)
	t.Cleanup(func() {
		qm.Close()
		pm.Close()
	})

	out := &bytes.Buffer{}
	opts.Out = out
	opts.NoColor = true
	loader := source.NewLoader(pm, qm, logger)
	return New(loader, scanner.NewScanner(nil, logger), opts, logger), out
}

func componentTree(t *testing.T) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "components")
	writeFile(t, root, "Badge.tsx", badgeSource)
	writeFile(t, root, "ui/card.tsx", cardSource)
	writeFile(t, root, "hooks/use-toggle.tsx", hooksSource)
	return root
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func fixtureSet(t *testing.T, root string) map[string]string {
	t.Helper()
	files, err := DiscoverFiles(root, Matcher{Include: []string{"**/*.stories.tsx"}})
	require.NoError(t, err)
	set := make(map[string]string, len(files))
	for _, f := range files {
		set[f] = readFile(t, f)
	}
	return set
}

func TestGenerate_WritesFixtures(t *testing.T) {
	root := componentTree(t)
	gen, out := newGenerator(t, Options{Dir: root})

	report, err := gen.Generate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(root, "Badge.tsx"),
		filepath.Join(root, "ui", "card.tsx"),
	}, report.Processed)
	assert.Equal(t, []string{filepath.Join(root, "hooks", "use-toggle.tsx")}, report.Skipped)
	assert.Empty(t, report.Failed)

	badge := readFile(t, filepath.Join(root, "Badge.stories.tsx"))
	assert.Contains(t, badge, "title: 'Components/Badge/Badge',")
	assert.Contains(t, badge, "  args: {\n    label: \"Sample Text\",\n    variant: \"red\",\n  },\n")

	card := readFile(t, filepath.Join(root, "ui", "card.stories.tsx"))
	assert.Contains(t, card, "import Card, { CardTitle } from './card';")
	assert.Contains(t, card, "title: 'Components/Ui/Card/Card',")
	assert.Contains(t, card, "export const CardTitleStory: Story = {")
	assert.Contains(t, card, "    heading: \"Sample Text\",\n    elevation: 123,\n")

	assert.NoFileExists(t, filepath.Join(root, "hooks", "use-toggle.stories.tsx"))

	text := out.String()
	assert.Contains(t, text, "Generating Storybook stories...\n")
	assert.Contains(t, text, "Generated: "+filepath.Join(root, "Badge.stories.tsx")+"\n")
	assert.Contains(t, text, "Skipping "+filepath.Join(root, "hooks", "use-toggle.tsx")+": No valid exports found\n")
	assert.Contains(t, text, "\nStory generation complete!\n✅ Successfully processed: 2 files\n")
	assert.NotContains(t, text, "Failed to process")
}

func TestGenerate_ShadcnButton(t *testing.T) {
	root := filepath.Join(t.TempDir(), "components")
	writeFile(t, root, "ui/button.tsx", shadcnButtonSource)
	gen, out := newGenerator(t, Options{Dir: root})

	report, err := gen.Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "ui", "button.tsx")}, report.Processed)
	assert.Empty(t, report.Skipped)
	assert.NotContains(t, out.String(), "No valid exports found")

	res, err := gen.Preview(filepath.Join(root, "ui", "button.tsx"))
	require.NoError(t, err)
	assert.Equal(t, "Button", res.Analysis.Primary.Name)
	assert.Empty(t, res.Analysis.Secondary)

	story := readFile(t, filepath.Join(root, "ui", "button.stories.tsx"))
	assert.Contains(t, story, "import { Button, buttonVariants } from './button';")
	assert.Contains(t, story, "title: 'Components/Ui/Button/Button',")
	assert.Contains(t, story, "    asChild: true,\n")
	assert.NotContains(t, story, "buttonVariantsStory")
}

func TestGenerate_Idempotent(t *testing.T) {
	root := componentTree(t)
	gen, _ := newGenerator(t, Options{Dir: root})

	_, err := gen.Generate(context.Background())
	require.NoError(t, err)
	first := fixtureSet(t, root)

	report, err := gen.Generate(context.Background())
	require.NoError(t, err)
	assert.Len(t, report.Processed, 2, "existing fixtures are never treated as components")
	assert.Equal(t, first, fixtureSet(t, root))
}

func TestCleanThenGenerate(t *testing.T) {
	root := componentTree(t)
	gen, out := newGenerator(t, Options{Dir: root})

	_, err := gen.Generate(context.Background())
	require.NoError(t, err)
	want := fixtureSet(t, root)

	writeFile(t, root, "ui/stale.stories.tsx", "export default {};")

	cleaned, err := gen.Clean(context.Background())
	require.NoError(t, err)
	assert.Len(t, cleaned.Deleted, 3)
	assert.Empty(t, cleaned.Failed)
	assert.Empty(t, fixtureSet(t, root))
	assert.Contains(t, out.String(), "Cleaning Storybook stories...\n")
	assert.Contains(t, out.String(), "Deleted: "+filepath.Join(root, "ui", "stale.stories.tsx")+"\n")
	assert.Contains(t, out.String(), "Story cleanup complete!\n")

	_, err = gen.Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, fixtureSet(t, root))
}

func TestGenerate_FailureIsolation(t *testing.T) {
	root := componentTree(t)
	// a directory where the fixture should go makes the write fail
	require.NoError(t, os.MkdirAll(filepath.Join(root, "Badge.stories.tsx"), 0o755))
	writeFile(t, root, "Badge.stories.tsx/keep", "")

	gen, out := newGenerator(t, Options{Dir: root})
	report, err := gen.Generate(context.Background())
	require.NoError(t, err)

	require.Len(t, report.Failed, 1)
	assert.Equal(t, filepath.Join(root, "Badge.tsx"), report.Failed[0].Path)
	assert.NotEmpty(t, report.Failed[0].Reason)
	assert.Equal(t, []string{filepath.Join(root, "Badge.tsx")}, report.FailedPaths())
	assert.Equal(t, []string{filepath.Join(root, "ui", "card.tsx")}, report.Processed)
	assert.FileExists(t, filepath.Join(root, "ui", "card.stories.tsx"))

	text := out.String()
	assert.Contains(t, text, "❌ Failed to process: 1 files\n")
	assert.Contains(t, text, "Failed files:\n  - "+filepath.Join(root, "Badge.tsx"))
}

func TestGenerate_DryRun(t *testing.T) {
	root := componentTree(t)
	gen, out := newGenerator(t, Options{Dir: root, DryRun: true})

	report, err := gen.Generate(context.Background())
	require.NoError(t, err)
	assert.Len(t, report.Processed, 2)
	assert.Empty(t, fixtureSet(t, root))
	assert.Contains(t, out.String(), "Would generate: "+filepath.Join(root, "Badge.stories.tsx"))
	assert.Contains(t, out.String(), "Dry run: no files were written")
}

func TestGenerate_CustomSuffixAndExclude(t *testing.T) {
	root := componentTree(t)
	gen, _ := newGenerator(t, Options{Dir: root, Suffix: ".story.tsx", Exclude: []string{"ui/**"}})

	report, err := gen.Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "Badge.tsx")}, report.Processed)
	assert.FileExists(t, filepath.Join(root, "Badge.story.tsx"))
	assert.NoFileExists(t, filepath.Join(root, "ui", "card.story.tsx"))

	// a second run must not pick up the fixture it just wrote
	report, err = gen.Generate(context.Background())
	require.NoError(t, err)
	assert.Len(t, report.Processed, 1)
}

func TestGenerate_MissingRoot(t *testing.T) {
	gen, _ := newGenerator(t, Options{Dir: filepath.Join(t.TempDir(), "nope")})
	_, err := gen.Generate(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestGenerate_Cancelled(t *testing.T) {
	root := componentTree(t)
	gen, _ := newGenerator(t, Options{Dir: root})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	report, err := gen.Generate(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, report)
	assert.Empty(t, report.Processed)
}

func TestPreview(t *testing.T) {
	root := componentTree(t)
	gen, _ := newGenerator(t, Options{Dir: root})

	res, err := gen.Preview(filepath.Join(root, "Badge.tsx"))
	require.NoError(t, err)
	assert.Equal(t, StatusGenerated, res.Status)
	assert.Equal(t, filepath.Join(root, "Badge.stories.tsx"), res.StoryPath)
	assert.Equal(t, "Badge", res.Plan.Component)
	assert.Contains(t, string(res.Content), "export const Primary: Story = {")
	assert.NoFileExists(t, res.StoryPath)

	res, err = gen.Preview(filepath.Join(root, "hooks", "use-toggle.tsx"))
	require.NoError(t, err)
	assert.Equal(t, StatusSkipped, res.Status)
	assert.Nil(t, res.Analysis.Primary)

	_, err = gen.Preview(filepath.Join(root, "missing.tsx"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestInspect(t *testing.T) {
	root := componentTree(t)
	gen, _ := newGenerator(t, Options{Dir: root})

	a, err := gen.Inspect(filepath.Join(root, "ui", "card.tsx"))
	require.NoError(t, err)
	assert.Equal(t, "Card", a.Primary.Name)
	assert.Equal(t, "CardProps", a.Primary.PropsSource)
	require.Len(t, a.Secondary, 1)
	assert.Equal(t, "CardTitle", a.Secondary[0].Name)

	_, err = gen.Inspect(filepath.Join(root, "hooks", "use-toggle.tsx"))
	assert.ErrorIs(t, err, scanner.ErrNoComponents)
}

func TestClean_DryRun(t *testing.T) {
	root := componentTree(t)
	writeFile(t, root, "Badge.stories.tsx", "old")

	gen, out := newGenerator(t, Options{Dir: root, DryRun: true})
	report, err := gen.Clean(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "Badge.stories.tsx")}, report.Deleted)
	assert.FileExists(t, filepath.Join(root, "Badge.stories.tsx"))
	assert.Contains(t, out.String(), "Would delete: ")
}

func TestRemoveFixture(t *testing.T) {
	root := componentTree(t)
	gen, _ := newGenerator(t, Options{Dir: root})
	writeFile(t, root, "Badge.stories.tsx", "old")

	path, removed, err := gen.RemoveFixture(filepath.Join(root, "Badge.tsx"))
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, filepath.Join(root, "Badge.stories.tsx"), path)
	assert.NoFileExists(t, path)

	_, removed, err = gen.RemoveFixture(filepath.Join(root, "Badge.tsx"))
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestIsComponentPath(t *testing.T) {
	root := componentTree(t)
	gen, _ := newGenerator(t, Options{Dir: root})

	assert.True(t, gen.IsComponentPath(filepath.Join(root, "Badge.tsx")))
	assert.True(t, gen.IsComponentPath(filepath.Join(root, "ui", "new.tsx")))
	assert.False(t, gen.IsComponentPath(filepath.Join(root, "Badge.stories.tsx")))
	assert.False(t, gen.IsComponentPath(filepath.Join(root, "styles.css")))
	assert.False(t, gen.IsComponentPath(filepath.Join(filepath.Dir(root), "outside.tsx")))
}
