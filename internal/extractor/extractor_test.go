package extractor

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func extractLines(t *testing.T, source string) []string {
	t.Helper()
	ext, err := NewExtractor("rust")
	require.NoError(t, err)

	doc, err := ext.ExtractFromSource([]byte(source))
	require.NoError(t, err)
	require.NotNil(t, doc)
	return doc.Slice()
}

func TestNewExtractor_UnsupportedLanguage(t *testing.T) {
	_, err := NewExtractor("cobol")
	assert.Error(t, err)
}

func TestExtractFromSource_NoDoc(t *testing.T) {
	source := `use std::fs;

struct Nothing {}
`
	ext, err := NewExtractor("rust")
	require.NoError(t, err)

	doc, err := ext.ExtractFromSource([]byte(source))
	require.NoError(t, err)
	assert.Nil(t, doc, "a file without doc attributes yields no Doc")
}

func TestExtractFromSource_LineComments(t *testing.T) {
	source := `#![cfg_attr(not(feature = "std"), no_std)]
// normal comment

//! This is the doc for the crate.
//!This line doesn't start with space.
//!
//! And a nice empty line above us.
//! Also a line ending in "

struct Nothing {}
`

	assert.Equal(t, []string{
		"This is the doc for the crate.",
		"This line doesn't start with space.",
		"",
		"And a nice empty line above us.",
		`Also a line ending in "`,
	}, extractLines(t, source))
}

func TestExtractFromSource_BlockComment(t *testing.T) {
	source := `#![cfg_attr(not(feature = "std"), no_std)]
/* normal comment */

/*!
This is the doc for the crate.
 This line start with space.

And a nice empty line above us.
*/

struct Nothing {}
`

	assert.Equal(t, []string{
		"This is the doc for the crate.",
		" This line start with space.",
		"",
		"And a nice empty line above us.",
	}, extractLines(t, source))
}

func TestExtractFromSource_KeepIndentation(t *testing.T) {
	source := `//! This is the doc for the crate.  This crate does:
//!
//!   1. nothing.
//!   2. niente.

struct Nothing {}
`

	assert.Equal(t, []string{
		"This is the doc for the crate.  This crate does:",
		"",
		"  1. nothing.",
		"  2. niente.",
	}, extractLines(t, source))
}

func TestExtractFromSource_DocAttribute(t *testing.T) {
	source := `#![doc = " Attribute docs."]
#![allow(dead_code)]

struct Nothing {}
`

	assert.Equal(t, []string{"Attribute docs."}, extractLines(t, source))
}

func TestExtractFromSource_RawDocAttribute(t *testing.T) {
	source := `#![doc = r#"A "quoted" word."#]

struct Nothing {}
`

	assert.Equal(t, []string{`A "quoted" word.`}, extractLines(t, source))
}

func TestExtractFromSource_StopsAtFirstItem(t *testing.T) {
	source := `//! Crate docs.

struct Nothing {}

//! not crate docs anymore
fn noop() {}
`

	assert.Equal(t, []string{"Crate docs."}, extractLines(t, source))
}

func TestExtractFromSource_SyntaxError(t *testing.T) {
	ext, err := NewExtractor("rust")
	require.NoError(t, err)

	_, err = ext.ExtractFromSource([]byte("struct Nothing {\n"))
	assert.ErrorIs(t, err, ErrSourceParse)
}

func TestExtractFromFile(t *testing.T) {
	ext, err := NewExtractor("rust")
	require.NoError(t, err)

	doc, err := ext.ExtractFromFile(filepath.Join("testdata", "sample.rs"))
	require.NoError(t, err)
	require.NotNil(t, doc)

	assert.Equal(t, []string{
		"A sample crate.",
		"",
		"It demonstrates nothing in particular.",
	}, doc.Slice())
}

func TestExtractFromFile_Missing(t *testing.T) {
	ext, err := NewExtractor("rust")
	require.NoError(t, err)

	_, err = ext.ExtractFromFile(filepath.Join(t.TempDir(), "missing.rs"))
	assert.ErrorIs(t, err, ErrSourceRead)
}

func TestUnquoteRawString(t *testing.T) {
	tests := []struct {
		name string
		lit  string
		want string
	}{
		{"no hashes", `r"plain"`, "plain"},
		{"one hash", `r#"plain"#`, "plain"},
		{"quote at the edges", `r#"say ""#`, `say "`},
		{"hash at the edges", `r##"#tag#"##`, "#tag#"},
		{"malformed literal left alone", "r##", "##"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, unquoteRawString(tt.lit))
		})
	}
}

func TestNormalizePayload(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    []string
	}{
		{"empty content", "", []string{""}},
		{"single line with leading space", " hello", []string{"hello"}},
		{"single line without leading space", "hello", []string{"hello"}},
		{"only the first space is stripped", "  hello", []string{" hello"}},
		{"multi line with blank first segment", "\nfirst\n second", []string{"first", " second"}},
		{"multi line with non-blank first segment", "first\nsecond", []string{"first", "second"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizePayload(tt.payload))
		})
	}
}
