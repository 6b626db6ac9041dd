package markdown

import (
	"fmt"
	"os"
	"strings"
)

// LineTerminator is the end-of-line convention of a text file.
type LineTerminator int

const (
	LF LineTerminator = iota
	CRLF
)

// Sequence returns the terminator's byte sequence.
func (t LineTerminator) Sequence() string {
	if t == CRLF {
		return "\r\n"
	}
	return "\n"
}

func (t LineTerminator) String() string {
	if t == CRLF {
		return "crlf"
	}
	return "lf"
}

// InferTerminator reads the file at path and returns CRLF when strictly more
// line breaks are CRLF than bare LF, LF otherwise (ties included). The file
// is re-read on every call; the result is never cached, since the file may
// change between inference and a later write.
func InferTerminator(path string) (LineTerminator, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return LF, fmt.Errorf("%w %q", ErrMarkdownRead, path)
	}

	content := string(data)
	crlf := strings.Count(content, "\r\n")
	lf := strings.Count(content, "\n") - crlf

	if crlf > lf {
		return CRLF, nil
	}
	return LF, nil
}
