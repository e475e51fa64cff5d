package scanner

import "strings"

// Synthesize picks an example value for every prop:
//
//   - string, number and boolean props get the configured samples
//   - enum and union props get their first member when it is a string or
//     number literal, and nothing otherwise
//   - any other prop gets a placeholder when required and is omitted when
//     optional
//
// Optional primitives are populated; only optional complex props are dropped.
func (h *Heuristics) Synthesize(props []PropDescriptor) []Assignment {
	args := make([]Assignment, 0, len(props))
	for _, p := range props {
		if !p.IsLocal {
			continue
		}
		switch p.TypeClass {
		case TypeString:
			args = append(args, Assignment{Name: p.Name, Value: h.Samples.String})
		case TypeNumber:
			args = append(args, Assignment{Name: p.Name, Value: h.Samples.Number})
		case TypeBoolean:
			args = append(args, Assignment{Name: p.Name, Value: h.Samples.Boolean})
		case TypeEnumOrUnion:
			if p.First == nil {
				continue
			}
			switch p.First.Kind {
			case LiteralString:
				args = append(args, Assignment{Name: p.Name, Value: doubleQuoted(*p.First)})
			case LiteralNumber:
				args = append(args, Assignment{Name: p.Name, Value: p.First.Value})
			}
		default:
			if !p.Optional {
				args = append(args, Assignment{Name: p.Name, Value: h.Samples.Placeholder, Note: h.Samples.PlaceholderNote})
			}
		}
	}
	return args
}

// doubleQuoted renders a string literal with double quotes whatever quotes
// the source used.
func doubleQuoted(lit Literal) string {
	if strings.HasPrefix(lit.Raw, `"`) {
		return lit.Raw
	}
	v := strings.ReplaceAll(lit.Value, `\'`, `'`)
	v = strings.ReplaceAll(v, `"`, `\"`)
	return `"` + v + `"`
}
