package markdown

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel lines delimiting the managed README region. They render as HTML
// comments, invisible in the displayed markdown, and are part of the contract
// with anyone hand-editing the README: at most one of each, begin before end.
const (
	MarkerBegin = "<!-- readmesync start -->"
	MarkerEnd   = "<!-- readmesync end -->"
)

// ErrMalformedMarkers signals a structurally corrupted marker pair in the
// target document. It is always reported, never repaired.
var ErrMalformedMarkers = errors.New("malformed readmesync markers")

// Inject merges docLines into readme, replacing the managed region between
// MarkerBegin and MarkerEnd. When no markers exist yet, the region is
// inserted after a leading top-level heading, or at the start of the document
// otherwise. Everything outside the region is preserved in count and order.
//
// An empty docLines still produces the two marker lines, so a later run can
// find and update the region. The operation is pure and idempotent: running
// it again on its own output with the same docLines reproduces an identical
// document.
func Inject(readme Markdown, docLines []string) (Markdown, error) {
	begin, end := -1, -1
	for i, line := range readme.lines {
		switch line {
		case MarkerBegin:
			if begin >= 0 {
				return Markdown{}, fmt.Errorf("%w: more than one begin marker", ErrMalformedMarkers)
			}
			begin = i
		case MarkerEnd:
			if end >= 0 {
				return Markdown{}, fmt.Errorf("%w: more than one end marker", ErrMalformedMarkers)
			}
			end = i
		}
	}

	var before, after []string
	switch {
	case begin < 0 && end < 0:
		at := insertionPoint(readme.lines)
		before, after = readme.lines[:at], readme.lines[at:]
	case begin >= 0 && end < 0:
		return Markdown{}, fmt.Errorf("%w: begin marker without end marker", ErrMalformedMarkers)
	case begin < 0 && end >= 0:
		return Markdown{}, fmt.Errorf("%w: end marker without begin marker", ErrMalformedMarkers)
	case end < begin:
		return Markdown{}, fmt.Errorf("%w: end marker before begin marker", ErrMalformedMarkers)
	default:
		before, after = readme.lines[:begin], readme.lines[end+1:]
	}

	merged := make([]string, 0, len(before)+len(docLines)+2+len(after))
	merged = append(merged, before...)
	merged = append(merged, MarkerBegin)
	merged = append(merged, docLines...)
	merged = append(merged, MarkerEnd)
	merged = append(merged, after...)

	return Markdown{lines: merged}, nil
}

// insertionPoint places a fresh region right below a top-level heading when
// the document starts with one, so the crate docs land under the title.
func insertionPoint(lines []string) int {
	if len(lines) > 0 && strings.HasPrefix(lines[0], "# ") {
		return 1
	}
	return 0
}
