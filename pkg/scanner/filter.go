package scanner

import (
	"fmt"
	"strings"
)

// Filter decides whether an export is a component. name is the exported
// name, declText the declaration's source text. The rules are syntactic on
// purpose; a rejected binding carries the first rule it broke.
func (h *Heuristics) Filter(name, declText string) Verdict {
	if !h.namePattern.MatchString(name) {
		return reject("name does not match %s", h.NamePattern)
	}

	lower := strings.ToLower(name)
	for _, s := range h.ExcludedNameSubstrings {
		if strings.Contains(lower, s) {
			return reject("name contains %q", s)
		}
	}
	for _, p := range h.ExcludedNamePrefixes {
		if strings.HasPrefix(name, p) {
			return reject("name starts with %q", p)
		}
	}
	for _, s := range h.ExcludedNameSuffixes {
		if strings.HasSuffix(name, s) {
			return reject("name ends with %q", s)
		}
	}

	for _, m := range h.VariantFactoryMarkers {
		if strings.Contains(declText, m) {
			return reject("declaration calls %s", strings.TrimSuffix(m, "("))
		}
	}
	if h.VariantsKeyword != "" && strings.Contains(declText, h.VariantsKeyword) && !h.rendersMarkup(declText) {
		return reject("variants helper without markup")
	}

	return Verdict{Accepted: true}
}

func (h *Heuristics) rendersMarkup(text string) bool {
	for _, s := range h.RenderSignals {
		if strings.Contains(text, s) {
			return true
		}
	}
	return false
}

func reject(format string, args ...any) Verdict {
	return Verdict{Reason: fmt.Sprintf(format, args...)}
}
