package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultHeuristics(t *testing.T) {
	h := DefaultHeuristics()

	assert.Equal(t, "^[A-Z][a-zA-Z]*$", h.NamePattern)
	assert.Equal(t, []string{"utils", "config", "helper", "constant"}, h.ExcludedNameSubstrings)
	assert.Equal(t, []string{"cva(", "cn(", "clsx(", "twMerge("}, h.VariantFactoryMarkers)
	assert.Len(t, h.ReservedProps, 13)
	for _, name := range []string{"children", "className", "style", "id", "tabIndex", "role", "title",
		"onClick", "onChange", "onFocus", "onBlur", "ref", "key"} {
		assert.True(t, h.IsReserved(name), name)
	}
	assert.False(t, h.IsReserved("label"))

	assert.Equal(t, `"Sample Text"`, h.Samples.String)
	assert.Equal(t, "123", h.Samples.Number)
	assert.Equal(t, "true", h.Samples.Boolean)

	require.Len(t, h.ContextMarkers, 2)
	assert.Equal(t, "useChart()", h.ContextMarkers[0].Marker)
	assert.Equal(t, "useFormContext()", h.ContextMarkers[1].Marker)
}

func TestParseHeuristics_OverrideReplacesFields(t *testing.T) {
	h, err := ParseHeuristics([]byte(`
reserved_props: [label]
samples:
  string: "'demo'"
`))
	require.NoError(t, err)

	assert.True(t, h.IsReserved("label"))
	assert.False(t, h.IsReserved("children"), "lists are replaced, not merged")
	assert.Equal(t, "'demo'", h.Samples.String)
	assert.Equal(t, "123", h.Samples.Number, "unset fields keep their default")
	assert.Len(t, h.ContextMarkers, 2)
}

func TestParseHeuristics_Invalid(t *testing.T) {
	_, err := ParseHeuristics([]byte("name_pattern: '['"))
	assert.Error(t, err)

	_, err = ParseHeuristics([]byte("context_markers:\n  - decorator: x\n"))
	assert.Error(t, err)

	_, err = ParseHeuristics([]byte("reserved_props: {"))
	assert.Error(t, err)
}

func TestLoadHeuristics(t *testing.T) {
	h, err := LoadHeuristics("")
	require.NoError(t, err)
	assert.Equal(t, "variants", h.VariantsKeyword)

	path := filepath.Join(t.TempDir(), "heuristics.yaml")
	require.NoError(t, os.WriteFile(path, []byte("excluded_name_suffixes: [Store]\n"), 0o644))
	h, err = LoadHeuristics(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Store"}, h.ExcludedNameSuffixes)

	_, err = LoadHeuristics(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFilter(t *testing.T) {
	h := DefaultHeuristics()

	testCases := []struct {
		name     string
		text     string
		accepted bool
	}{
		{"Button", "function Button() { return <button />; }", true},
		{"button", "function button() { return <button />; }", false},
		{"Button2", "function Button2() { return <button />; }", false},
		{"Alert_Dialog", "const Alert_Dialog = () => <div />", false},
		{"ThemeUtils", "function ThemeUtils() { return <div />; }", false},
		{"SiteConfig", "const SiteConfig = () => <div />", false},
		{"FormHelper", "const FormHelper = () => <div />", false},
		{"ColorConstants", "const ColorConstants = () => <div />", false},
		{"ThemeContext", "const ThemeContext = createContext(null)", false},
		{"ThemeProvider", "function ThemeProvider() { return <div />; }", false},
		{"BadgeVariants", "BadgeVariants = cva('px-2')", false},
		{"Card", "function Card() { return <div className={cn('p-4')} />; }", false},
		{"Merged", "const Merged = () => twMerge('a', 'b')", false},
		{"Sizes", "Sizes = { variants: { sm: 1 } }", false},
		{"Tabs", "function Tabs({ variants }) { return <div />; }", true},
		{"Legacy", "function Legacy({ variants }) { return React.createElement('div'); }", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := h.Filter(tc.name, tc.text)
			assert.Equal(t, tc.accepted, v.Accepted, v.Reason)
			if !tc.accepted {
				assert.NotEmpty(t, v.Reason)
			}
		})
	}
}

func TestFilter_HookPrefixWithCustomPattern(t *testing.T) {
	h, err := ParseHeuristics([]byte(`name_pattern: '^[A-Za-z]+$'`))
	require.NoError(t, err)

	v := h.Filter("useToggle", "function useToggle() {}")
	assert.False(t, v.Accepted)
	assert.Equal(t, `name starts with "use"`, v.Reason)
	assert.True(t, h.Filter("toggle", "function toggle() { return <div />; }").Accepted)
}

func TestSynthesize_Placeholder(t *testing.T) {
	h := DefaultHeuristics()

	args := h.Synthesize([]PropDescriptor{
		{Name: "data", TypeClass: TypeOther, IsLocal: true},
		{Name: "onSelect", TypeClass: TypeOther, Optional: true, IsLocal: true},
		{Name: "label", TypeClass: TypeString, Optional: true, IsLocal: true},
		{Name: "inherited", TypeClass: TypeString, IsLocal: false},
		{Name: "kind", TypeClass: TypeEnumOrUnion, IsLocal: true},
	})

	assert.Equal(t, []Assignment{
		{Name: "data", Value: "undefined", Note: "TODO: Provide appropriate value"},
		{Name: "label", Value: `"Sample Text"`},
	}, args)
	assert.Empty(t, h.Synthesize(nil))
}

func TestDoubleQuoted(t *testing.T) {
	assert.Equal(t, `"a"`, doubleQuoted(Literal{Kind: LiteralString, Value: "a", Raw: `"a"`}))
	assert.Equal(t, `"it's"`, doubleQuoted(Literal{Kind: LiteralString, Value: `it\'s`, Raw: `'it\'s'`}))
	assert.Equal(t, `"say \"hi\""`, doubleQuoted(Literal{Kind: LiteralString, Value: `say "hi"`, Raw: `'say "hi"'`}))
}

func TestPascalCase(t *testing.T) {
	testCases := map[string]string{
		"button":       "Button",
		"empty-state":  "EmptyState",
		"my card":      "MyCard",
		"ui":           "Ui",
		"SchoolHeader": "SchoolHeader",
		"snake_case":   "Snake_case",
		"alert.dialog": "Alert.Dialog",
		"2fa-form":     "2faForm",
		"":             "",
	}
	for in, want := range testCases {
		assert.Equal(t, want, PascalCase(in), in)
	}
}

func TestBaseName(t *testing.T) {
	assert.Equal(t, "empty-state", BaseName("components/ui/empty-state.tsx"))
	assert.Equal(t, "button.test", BaseName("button.test.tsx"))
}
