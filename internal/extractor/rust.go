package extractor

import (
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"
)

// RustDialect recognizes the inner documentation forms of a Rust crate root:
// `//!` line comments, `/*! ... */` block comments and `#![doc = "..."]`
// attributes.
type RustDialect struct{}

func (r *RustDialect) Language() *sitter.Language {
	return rust.GetLanguage()
}

// DocPayloads walks the direct children of the source file node in order and
// collects the raw payload of every inner doc attribute. The scan stops at
// the first real item: inner attributes are only legal before any item, so
// nothing past that point can be crate-level documentation. tree-sitter
// still parses files rustc would reject for a misplaced `//!`, so such
// comments are ignored here rather than reported as a syntax error.
func (r *RustDialect) DocPayloads(root *sitter.Node, source []byte) []string {
	var payloads []string

	for i := 0; i < int(root.NamedChildCount()); i++ {
		node := root.NamedChild(i)
		switch node.Type() {
		case "line_comment":
			if rest, ok := strings.CutPrefix(node.Content(source), "//!"); ok {
				payloads = append(payloads, strings.TrimSuffix(rest, "\r"))
			}
		case "block_comment":
			if rest, ok := strings.CutPrefix(node.Content(source), "/*!"); ok {
				payloads = append(payloads, strings.TrimSuffix(rest, "*/"))
			}
		case "inner_attribute_item":
			if payload, ok := docAttributePayload(node, source); ok {
				payloads = append(payloads, payload)
			}
		default:
			return payloads
		}
	}

	return payloads
}

// docAttributePayload extracts the string literal of a `#![doc = "..."]`
// attribute. Non-doc inner attributes such as `#![no_std]` report false.
func docAttributePayload(node *sitter.Node, source []byte) (string, bool) {
	attr := node.NamedChild(0)
	if attr == nil {
		return "", false
	}
	path := attr.NamedChild(0)
	if path == nil || path.Content(source) != "doc" {
		return "", false
	}

	value := attr.ChildByFieldName("value")
	if value == nil {
		return "", false
	}
	switch value.Type() {
	case "string_literal":
		return unquoteString(value.Content(source)), true
	case "raw_string_literal":
		return unquoteRawString(value.Content(source)), true
	}
	return "", false
}

func unquoteString(lit string) string {
	if s, err := strconv.Unquote(lit); err == nil {
		return s
	}
	return strings.Trim(lit, "\"")
}

// unquoteRawString strips the matched `r##"`/`"##` delimiter pair of a raw
// string literal positionally, so payloads starting or ending with `#` or
// `"` survive intact.
func unquoteRawString(lit string) string {
	s := strings.TrimPrefix(lit, "r")
	hashes := 0
	for hashes < len(s) && s[hashes] == '#' {
		hashes++
	}
	start, end := hashes+1, len(s)-hashes-1
	if start > end || s[hashes] != '"' || s[end] != '"' {
		return s
	}
	return s[start:end]
}
