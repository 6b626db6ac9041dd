package extractor

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"os"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"readmesync/internal/markdown"
)

var (
	ErrSourceRead  = errors.New("cannot open source file")
	ErrSourceParse = errors.New("cannot parse source file")
)

// Dialect defines how one source language exposes its top-level
// documentation: which grammar to parse with and how to collect the raw
// payload of each inner doc attribute.
type Dialect interface {
	Language() *sitter.Language
	DocPayloads(root *sitter.Node, source []byte) []string
}

// Doc is the normalized documentation extracted from a source entry file,
// held as a markdown line sequence. Comment syntax never leaks into its
// lines. A Doc is only produced by an Extractor and never modified after.
type Doc struct {
	md markdown.Markdown
}

// Lines yields the documentation lines in source order.
func (d *Doc) Lines() iter.Seq[string] {
	return d.md.Lines()
}

// Slice returns a copy of the documentation lines.
func (d *Doc) Slice() []string {
	return d.md.Slice()
}

// Extractor parses a source file with tree-sitter and turns its top-level
// documentation comments into a Doc.
type Extractor struct {
	dialect  Dialect
	langName string
}

// NewExtractor creates an extractor for a given language.
func NewExtractor(lang string) (*Extractor, error) {
	switch lang {
	case "rust":
		return &Extractor{dialect: &RustDialect{}, langName: lang}, nil
	default:
		return nil, fmt.Errorf("unsupported language: %s", lang)
	}
}

// ExtractFromFile reads a source file and extracts its documentation.
func (e *Extractor) ExtractFromFile(path string) (*Doc, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w %q", ErrSourceRead, path)
	}
	return e.ExtractFromSource(source)
}

// ExtractFromSource parses source and concatenates the normalized payloads
// of its top-level doc attributes in encounter order. It returns a nil Doc
// when the result has zero lines, which covers both "no doc attributes" and
// "attributes present but yielding nothing".
func (e *Extractor) ExtractFromSource(source []byte) (*Doc, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(e.dialect.Language())
	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceParse, err)
	}

	root := tree.RootNode()
	if root.HasError() {
		return nil, fmt.Errorf("%w: %s source contains syntax errors", ErrSourceParse, e.langName)
	}

	var lines []string
	for _, payload := range e.dialect.DocPayloads(root, source) {
		lines = append(lines, normalizePayload(payload)...)
	}
	if len(lines) == 0 {
		return nil, nil
	}
	return &Doc{md: markdown.FromLines(lines)}, nil
}

// normalizePayload turns one attribute's raw string content into output
// lines: empty content becomes a single empty line, single-line content
// loses exactly one leading space, and multi-line content drops a
// whitespace-only first line while keeping every other line verbatim.
func normalizePayload(payload string) []string {
	lines := markdown.FromText(payload).Slice()
	switch len(lines) {
	case 0:
		return []string{""}
	case 1:
		return []string{strings.TrimPrefix(lines[0], " ")}
	default:
		if strings.TrimSpace(lines[0]) == "" {
			lines = lines[1:]
		}
		return lines
	}
}
