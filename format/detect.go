// Package format provides input format detection for the quill library.
package format

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
)

// sniffLen is how many leading bytes DetectFromReader inspects.
const sniffLen = 512

// Format represents a supported input format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// Script indicates a quill composition script.
	Script
	// HTML indicates an HTML document.
	HTML
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case Script:
		return "Script"
	case HTML:
		return "HTML"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case Script:
		return ".quill"
	case HTML:
		return ".html"
	default:
		return ""
	}
}

// Detect determines input format from filename extension.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".quill", ".qs":
		return Script
	case ".html", ".htm":
		return HTML
	default:
		return Unknown
	}
}

// scriptDirectives are the keywords that can open a composition script.
var scriptDirectives = []string{"text", "image", "newline", "tab"}

// DetectFromMagic inspects leading content to determine format. This is
// the fallback when no filename is available (stdin) or the extension is
// unrecognized. Returns Unknown if the content matches neither format.
func DetectFromMagic(data []byte) Format {
	// Trim leading whitespace
	start := 0
	for start < len(data) && (data[start] == ' ' || data[start] == '\t' || data[start] == '\n' || data[start] == '\r') {
		start++
	}
	if start >= len(data) {
		return Unknown
	}
	data = data[start:]

	if detectHTMLMagic(data) {
		return HTML
	}
	if detectScriptMagic(data) {
		return Script
	}
	return Unknown
}

// DetectFromReader sniffs the leading bytes of r to determine format.
// The returned reader replays the sniffed bytes followed by the rest of
// r, so the caller can parse from it as if nothing had been consumed.
func DetectFromReader(r io.Reader) (Format, io.Reader, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return Unknown, nil, err
	}
	head = head[:n]

	return DetectFromMagic(head), io.MultiReader(bytes.NewReader(head), r), nil
}

// detectHTMLMagic checks if the data looks like HTML content: a DOCTYPE,
// an <html> root, or any leading tag (fragments are accepted because the
// HTML importer parses fragments too).
func detectHTMLMagic(data []byte) bool {
	if data[0] != '<' {
		return false
	}
	if len(data) < 2 {
		return false
	}
	c := data[1]
	return c == '!' || c == '/' || c == '?' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// detectScriptMagic checks if the data opens with a script comment or a
// known directive keyword followed by a token boundary.
func detectScriptMagic(data []byte) bool {
	if data[0] == '#' {
		return true
	}

	end := 0
	for end < len(data) && data[end] >= 'a' && data[end] <= 'z' {
		end++
	}
	word := string(data[:end])
	for _, d := range scriptDirectives {
		if word != d {
			continue
		}
		// Keyword must end the input or be followed by a separator.
		if end == len(data) {
			return true
		}
		switch data[end] {
		case ' ', '\t', '\n', '\r', '"', '`':
			return true
		}
	}
	return false
}
