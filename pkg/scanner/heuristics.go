package scanner

import (
	_ "embed"
	"os"
	"regexp"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

//go:embed heuristics.yaml
var defaultHeuristics []byte

// Samples holds the literal text synthesized for each primitive prop type.
type Samples struct {
	String          string `yaml:"string"`
	Number          string `yaml:"number"`
	Boolean         string `yaml:"boolean"`
	Placeholder     string `yaml:"placeholder"`
	PlaceholderNote string `yaml:"placeholder_note"`
}

// ContextMarker maps a usage marker found anywhere in a file to the
// decorator and import its fixtures need.
type ContextMarker struct {
	Marker    string `yaml:"marker"`
	Decorator string `yaml:"decorator"`
	Import    string `yaml:"import"`
	// SkipImportIfExported names an export that makes Import unnecessary.
	SkipImportIfExported string `yaml:"skip_import_if_exported"`
}

// Heuristics is the data behind the component filter, the prop resolver,
// the value synthesizer and the decorator inferencer.
type Heuristics struct {
	NamePattern            string          `yaml:"name_pattern"`
	ExcludedNameSubstrings []string        `yaml:"excluded_name_substrings"`
	ExcludedNamePrefixes   []string        `yaml:"excluded_name_prefixes"`
	ExcludedNameSuffixes   []string        `yaml:"excluded_name_suffixes"`
	VariantFactoryMarkers  []string        `yaml:"variant_factory_markers"`
	VariantsKeyword        string          `yaml:"variants_keyword"`
	RenderSignals          []string        `yaml:"render_signals"`
	ReservedProps          []string        `yaml:"reserved_props"`
	Samples                Samples         `yaml:"samples"`
	ContextMarkers         []ContextMarker `yaml:"context_markers"`

	namePattern *regexp.Regexp
	reserved    map[string]struct{}
}

// DefaultHeuristics returns the built-in heuristics.
func DefaultHeuristics() *Heuristics {
	h, err := ParseHeuristics(nil)
	if err != nil {
		// the embedded document is validated by tests
		panic(err)
	}
	return h
}

// LoadHeuristics reads an override file on top of the defaults. An empty
// path returns the defaults.
func LoadHeuristics(path string) (*Heuristics, error) {
	if path == "" {
		return ParseHeuristics(nil)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read heuristics %s", path)
	}
	h, err := ParseHeuristics(data)
	if err != nil {
		return nil, errors.WithHint(errors.Wrapf(err, "heuristics %s", path),
			"see the default document embedded in pkg/scanner/heuristics.yaml")
	}
	return h, nil
}

// ParseHeuristics decodes override on top of the embedded defaults. Fields
// absent from override keep their default value.
func ParseHeuristics(override []byte) (*Heuristics, error) {
	h := &Heuristics{}
	if err := yaml.Unmarshal(defaultHeuristics, h); err != nil {
		return nil, errors.Wrap(err, "decode default heuristics")
	}
	if len(override) > 0 {
		if err := yaml.Unmarshal(override, h); err != nil {
			return nil, errors.Wrap(err, "decode heuristics")
		}
	}
	if err := h.compile(); err != nil {
		return nil, err
	}
	return h, nil
}

func (h *Heuristics) compile() error {
	re, err := regexp.Compile(h.NamePattern)
	if err != nil {
		return errors.Wrapf(err, "name_pattern %q", h.NamePattern)
	}
	h.namePattern = re

	h.reserved = make(map[string]struct{}, len(h.ReservedProps))
	for _, name := range h.ReservedProps {
		h.reserved[name] = struct{}{}
	}

	for i, m := range h.ContextMarkers {
		if m.Marker == "" {
			return errors.Newf("context_markers[%d]: marker is empty", i)
		}
	}
	return nil
}

// IsReserved reports whether name is a pass-through prop that never gets a
// synthesized value.
func (h *Heuristics) IsReserved(name string) bool {
	_, ok := h.reserved[name]
	return ok
}
