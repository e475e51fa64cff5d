package scanner

import "strings"

// InferDecorations scans the whole file text for context markers. Every
// marker present adds its decorator to all fixtures of the file, and its
// import unless the file itself exports the named provider.
func (h *Heuristics) InferDecorations(text string, exports Exports) Decorations {
	var d Decorations
	for _, m := range h.ContextMarkers {
		if !strings.Contains(text, m.Marker) {
			continue
		}
		if m.Decorator != "" {
			d.Decorators = append(d.Decorators, m.Decorator)
		}
		if m.Import == "" {
			continue
		}
		if m.SkipImportIfExported != "" && exports.HasNamed(m.SkipImportIfExported) {
			continue
		}
		d.Imports = append(d.Imports, m.Import)
	}
	return d
}
