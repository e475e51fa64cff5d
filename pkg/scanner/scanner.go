package scanner

import (
	"log/slog"

	"github.com/cockroachdb/errors"

	"github.com/gnana997/storygen/pkg/source"
)

// ErrNoComponents marks a file without any function, variable or class
// export. Callers skip such files; it is not a failure.
var ErrNoComponents = errors.New("no component exports")

// Scanner runs the per-file analysis pipeline: classify exports, filter
// components, resolve props, synthesize args and infer decorators.
type Scanner struct {
	h   *Heuristics
	log *slog.Logger
}

// NewScanner creates a scanner. A nil heuristics selects the defaults.
func NewScanner(h *Heuristics, logger *slog.Logger) *Scanner {
	if h == nil {
		h = DefaultHeuristics()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{h: h, log: logger}
}

// Heuristics returns the scanner's heuristics.
func (s *Scanner) Heuristics() *Heuristics {
	return s.h
}

// Analyze analyzes one loaded file. The primary component is the default
// export, or the first named export when there is none, and is never
// filtered. Every other named export that passes the filter becomes a
// secondary component; the rest are listed as rejected.
//
// The returned Analysis does not reference unit, which may be released as
// soon as Analyze returns. A file without candidate exports returns its
// Analysis and ErrNoComponents.
func (s *Scanner) Analyze(unit *source.Unit) (*Analysis, error) {
	exports := ClassifyExports(unit)
	tc := NewTypeClassifier(unit)

	a := &Analysis{Path: unit.Path}
	if exports.Default != nil {
		a.DefaultName = exports.Default.Name
	}
	for _, b := range exports.Named {
		a.NamedExports = append(a.NamedExports, b.Name)
	}

	if exports.Empty() {
		s.log.Debug("no candidate exports", "file", unit.Path)
		return a, ErrNoComponents
	}

	analyze := func(b ExportBinding, v Verdict) Component {
		c := Component{
			Name:    b.Name,
			Kind:    detectShape(unit, b.Decl).kind,
			Verdict: v,
		}
		if !v.Accepted {
			return c
		}
		c.Props, c.PropsSource = ResolveProps(unit, b, tc, s.h)
		c.Args = s.h.Synthesize(c.Props)
		return c
	}

	primary := exports.Default
	if primary == nil {
		primary = &exports.Named[0]
	}
	p := analyze(*primary, Verdict{Accepted: true})
	a.Primary = &p

	for _, b := range exports.Named {
		if b.Name == p.Name {
			continue
		}
		c := analyze(b, s.h.Filter(b.Name, unit.NodeText(b.Decl)))
		if c.Verdict.Accepted {
			a.Secondary = append(a.Secondary, c)
		} else {
			a.Rejected = append(a.Rejected, c)
		}
	}

	a.Decorations = s.h.InferDecorations(unit.Text(), exports)

	s.log.Debug("analyzed file",
		"file", unit.Path,
		"primary", a.Primary.Name,
		"props", len(a.Primary.Props),
		"secondary", len(a.Secondary),
		"decorators", len(a.Decorations.Decorators))
	return a, nil
}
