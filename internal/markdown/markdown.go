package markdown

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"slices"
	"strings"
)

var (
	ErrMarkdownRead  = errors.New("failed to read markdown file")
	ErrMarkdownWrite = errors.New("failed to write markdown file")
)

// Markdown is a markdown document held as a bare line sequence. Line
// terminators are stripped on the way in and chosen on the way out, so the
// same document can be rendered with either convention.
type Markdown struct {
	lines []string
}

// FromText splits text into lines. Both LF and CRLF breaks are accepted; a
// trailing terminator does not produce a final empty line.
func FromText(text string) Markdown {
	return Markdown{lines: splitLines(text)}
}

// FromLines wraps a copy of the given lines without any parsing.
func FromLines(lines []string) Markdown {
	return Markdown{lines: slices.Clone(lines)}
}

// FromFile reads the whole file and parses it with FromText.
func FromFile(path string) (Markdown, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Markdown{}, fmt.Errorf("%w %q", ErrMarkdownRead, path)
	}
	return FromText(string(data)), nil
}

// Lines yields the document's lines in order. The sequence can be ranged
// over any number of times.
func (m Markdown) Lines() iter.Seq[string] {
	return slices.Values(m.lines)
}

// Slice returns a copy of the document's lines.
func (m Markdown) Slice() []string {
	return slices.Clone(m.lines)
}

// LineCount returns the number of lines in the document.
func (m Markdown) LineCount() int {
	return len(m.lines)
}

// Equal reports whether both documents hold the same line sequence.
func (m Markdown) Equal(other Markdown) bool {
	return slices.Equal(m.lines, other.lines)
}

// Render joins the lines, each followed by the given terminator. A non-empty
// document therefore always ends with a terminator.
func (m Markdown) Render(t LineTerminator) string {
	var sb strings.Builder
	for _, line := range m.lines {
		sb.WriteString(line)
		sb.WriteString(t.Sequence())
	}
	return sb.String()
}

// Write renders the document into w using the given terminator.
func (m Markdown) Write(w io.Writer, t LineTerminator) error {
	if _, err := io.WriteString(w, m.Render(t)); err != nil {
		return fmt.Errorf("%w: %v", ErrMarkdownWrite, err)
	}
	return nil
}

// WriteToFile renders the document and replaces the file at path with it.
func (m Markdown) WriteToFile(path string, t LineTerminator) error {
	if err := os.WriteFile(path, []byte(m.Render(t)), 0644); err != nil {
		return fmt.Errorf("%w %q", ErrMarkdownWrite, path)
	}
	return nil
}

// splitLines splits on LF, strips a trailing CR from each line and drops the
// empty segment a trailing terminator would otherwise produce.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
