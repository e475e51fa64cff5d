package source

import (
	"log/slog"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/edsrzf/mmap-go"

	"github.com/gnana997/storygen/pkg/parser"
	"github.com/gnana997/storygen/pkg/parser/queries"
)

// Loader turns files into Units. It shares the parser and query managers
// across files; the Units themselves are independent.
type Loader struct {
	parsers *parser.ParserManager
	queries *queries.QueryManager
	logger  *slog.Logger
}

// NewLoader creates a Loader. Logger can be nil.
func NewLoader(pm *parser.ParserManager, qm *queries.QueryManager, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{parsers: pm, queries: qm, logger: logger}
}

// Load maps path read-only and parses it. When mapping fails the file is read
// into memory instead. The caller must Release the returned Unit.
func (l *Loader) Load(path string) (*Unit, error) {
	lang := parser.DetectLanguage(path)
	if lang == parser.LanguageUnknown {
		return nil, errors.Wrapf(parser.ErrUnsupportedLanguage, "%s", path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, errors.Wrapf(err, "stat %s", path)
	}

	unit := &Unit{Path: path, Lang: lang, IsTSX: parser.IsTSXFile(path)}

	switch {
	case stat.Size() == 0:
		// zero-length files cannot be mapped
		file.Close()
	default:
		mapping, mapErr := mmap.Map(file, mmap.RDONLY, 0)
		if mapErr != nil {
			l.logger.Warn("mmap failed, using fallback", "file", path, "size", stat.Size(), "error", mapErr)
			file.Close()
			data, readErr := os.ReadFile(path)
			if readErr != nil {
				return nil, errors.Wrapf(readErr, "read %s", path)
			}
			unit.source = data
			break
		}
		unit.mapping = mapping
		unit.file = file
		unit.source = mapping
	}

	if err := l.parse(unit); err != nil {
		_ = unit.Release()
		return nil, err
	}
	return unit, nil
}

// LoadBytes parses in-memory source as if it had been read from path.
func (l *Loader) LoadBytes(path string, src []byte) (*Unit, error) {
	lang := parser.DetectLanguage(path)
	if lang == parser.LanguageUnknown {
		return nil, errors.Wrapf(parser.ErrUnsupportedLanguage, "%s", path)
	}
	unit := &Unit{Path: path, Lang: lang, IsTSX: parser.IsTSXFile(path), source: src}
	if err := l.parse(unit); err != nil {
		_ = unit.Release()
		return nil, err
	}
	return unit, nil
}

func (l *Loader) parse(unit *Unit) error {
	tree, err := l.parsers.Parse(unit.source, unit.Lang, unit.IsTSX)
	if err != nil {
		return errors.Wrapf(err, "parse %s", unit.Path)
	}
	unit.tree = tree

	query, err := l.queries.GetQuery(unit.Lang, unit.IsTSX, queries.QueryTypeDeclarations)
	if err != nil {
		return err
	}
	matches, err := l.queries.ExecuteQuery(tree, query, unit.source)
	if err != nil {
		return errors.Wrapf(err, "index %s", unit.Path)
	}

	decls := make([]Declaration, 0, len(matches))
	for _, m := range matches {
		name, ok := m.Capture("name")
		if !ok {
			continue
		}
		def, ok := m.Capture("definition")
		if !ok {
			continue
		}
		decls = append(decls, Declaration{
			Name: name.Text,
			Kind: declKind(def.Category),
			Node: def.Node,
		})
	}
	unit.index(decls)

	l.logger.Debug("loaded source",
		"file", unit.Path,
		"bytes", len(unit.source),
		"declarations", len(unit.order),
		"mapped", unit.mapping != nil)
	return nil
}

func declKind(category string) DeclKind {
	switch category {
	case "interface":
		return DeclInterface
	case "type":
		return DeclTypeAlias
	case "enum":
		return DeclEnum
	case "function":
		return DeclFunction
	case "class":
		return DeclClass
	default:
		return DeclVariable
	}
}
