// Package queries compiles, caches and executes tree-sitter queries.
package queries

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/storygen/pkg/parser"
)

// QueryType identifies which query to execute.
type QueryType int

const (
	// QueryTypeDeclarations indexes top-level declarations by name.
	QueryTypeDeclarations QueryType = iota
)

// String returns the string representation of a QueryType.
func (qt QueryType) String() string {
	switch qt {
	case QueryTypeDeclarations:
		return "declarations"
	default:
		return "unknown"
	}
}

// queryKey identifies a compiled query. TSX and plain TypeScript are
// distinct grammars, so isTSX is part of the key.
type queryKey struct {
	lang  parser.Language
	isTSX bool
	qtype QueryType
}

// QueryManager manages tree-sitter query compilation and caching.
//
// Queries are compiled lazily on first use, cached behind an RWMutex and
// freed via Close().
//
//	qm := NewQueryManager(parserManager, logger)
//	defer qm.Close()
//
//	query, err := qm.GetQuery(parser.LanguageTypeScript, true, QueryTypeDeclarations)
//	if err != nil {
//	    return err
//	}
//	matches, err := qm.ExecuteQuery(tree, query, source)
type QueryManager struct {
	parserManager *parser.ParserManager
	cache         map[queryKey]*ts.Query
	mutex         sync.RWMutex
	logger        *slog.Logger
}

// NewQueryManager creates a new query manager. Logger can be nil.
func NewQueryManager(pm *parser.ParserManager, logger *slog.Logger) *QueryManager {
	if logger == nil {
		logger = slog.Default()
	}

	return &QueryManager{
		parserManager: pm,
		cache:         make(map[queryKey]*ts.Query),
		logger:        logger,
	}
}

// GetQuery returns the compiled query for the grammar and type, compiling it
// on first access.
func (qm *QueryManager) GetQuery(lang parser.Language, isTSX bool, qtype QueryType) (*ts.Query, error) {
	if lang != parser.LanguageTypeScript {
		isTSX = false
	}
	key := queryKey{lang: lang, isTSX: isTSX, qtype: qtype}

	qm.mutex.RLock()
	query, exists := qm.cache[key]
	qm.mutex.RUnlock()
	if exists {
		return query, nil
	}

	qm.mutex.Lock()
	defer qm.mutex.Unlock()

	if query, exists = qm.cache[key]; exists {
		return query, nil
	}

	queryString, err := queryString(lang, qtype)
	if err != nil {
		return nil, err
	}

	langPtr, err := qm.parserManager.GetLanguagePointer(lang, isTSX)
	if err != nil {
		return nil, errors.Wrapf(err, "language pointer for %s", lang)
	}

	query, qerr := ts.NewQuery(ts.NewLanguage(langPtr), queryString)
	if qerr != nil {
		return nil, errors.Newf("compile %s query for %s: %s", qtype, lang, qerr.Message)
	}
	qm.cache[key] = query

	qm.logger.Debug("compiled query",
		"language", lang.String(),
		"isTSX", isTSX,
		"type", qtype.String())

	return query, nil
}

func queryString(lang parser.Language, qtype QueryType) (string, error) {
	if qtype != QueryTypeDeclarations {
		return "", errors.Newf("unknown query type: %d", qtype)
	}
	switch lang {
	case parser.LanguageTypeScript:
		return TSDeclarations, nil
	case parser.LanguageJavaScript:
		return JSDeclarations, nil
	default:
		return "", errors.Wrapf(parser.ErrUnsupportedLanguage, "%s declarations", lang)
	}
}

// ExecuteQuery runs a compiled query over a tree and returns its matches.
// Captured nodes stay valid as long as the tree is open.
func (qm *QueryManager) ExecuteQuery(tree *ts.Tree, query *ts.Query, source []byte) ([]QueryMatch, error) {
	if tree == nil {
		return nil, errors.New("tree is nil")
	}
	if query == nil {
		return nil, errors.New("query is nil")
	}

	cursor := ts.NewQueryCursor()
	defer cursor.Close()

	iter := cursor.Matches(query, tree.RootNode(), source)
	captureNames := query.CaptureNames()

	var matches []QueryMatch
	for {
		match := iter.Next()
		if match == nil {
			break
		}

		captures := make([]QueryCapture, 0, len(match.Captures))
		for _, capture := range match.Captures {
			var captureName string
			if int(capture.Index) < len(captureNames) {
				captureName = captureNames[capture.Index]
			}
			category, field, _ := strings.Cut(captureName, ".")
			node := capture.Node

			captures = append(captures, QueryCapture{
				Name:     captureName,
				Category: category,
				Field:    field,
				Node:     &node,
				Text:     node.Utf8Text(source),
			})
		}

		matches = append(matches, QueryMatch{Captures: captures})
	}

	return matches, nil
}

// Close releases all compiled queries. The manager cannot be used afterwards.
func (qm *QueryManager) Close() error {
	qm.mutex.Lock()
	defer qm.mutex.Unlock()

	qm.logger.Debug("closing QueryManager", "queries_compiled", len(qm.cache))

	for key, query := range qm.cache {
		if query != nil {
			query.Close()
		}
		delete(qm.cache, key)
	}
	return nil
}

// QueryMatch is a single pattern match.
type QueryMatch struct {
	Captures []QueryCapture
}

// Capture returns the capture with the given field ("name", "definition").
func (m QueryMatch) Capture(field string) (QueryCapture, bool) {
	for _, c := range m.Captures {
		if c.Field == field {
			return c, true
		}
	}
	return QueryCapture{}, false
}

// QueryCapture is one captured node of a match. A capture named
// "interface.name" has Category "interface" and Field "name".
type QueryCapture struct {
	Name     string
	Category string
	Field    string
	Node     *ts.Node
	Text     string
}
