// Package quill provides an append-only document composer: typed
// elements, plain text rendering, pluggable persistence, and import and
// export of common formats.
//
// Basic usage:
//
//	editor := quill.NewEditor(model.NewDocument(), storage.NewFileStore("notes.txt"))
//	editor.AddText("Hello, world!")
//	editor.AddLineBreak()
//	fmt.Print(editor.Render())
//	if err := editor.Save(); err != nil {
//	    // handle error
//	}
//
// Importing existing content:
//
//	doc, err := quill.Open("draft.quill")
//	if err != nil {
//	    // handle error
//	}
//	editor := quill.NewEditor(doc, storage.NewFileStore(""))
//
// For lower-level control, the script, htmldoc, export and storage
// packages are also available directly.
package quill

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/quillkit/quill/format"
	"github.com/quillkit/quill/htmldoc"
	"github.com/quillkit/quill/model"
	"github.com/quillkit/quill/script"
)

// Open reads a document from a file, detecting the input format from the
// filename extension and falling back to content sniffing.
//
// Example:
//
//	doc, err := quill.Open("notes.quill")
func Open(filename string) (*model.Document, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}

	f := format.Detect(filename)
	if f == format.Unknown {
		f = format.DetectFromMagic(data)
	}
	return parseAs(f, bytes.NewReader(data))
}

// OpenReader reads a document from r, detecting the input format by
// content sniffing.
func OpenReader(r io.Reader) (*model.Document, error) {
	f, r, err := format.DetectFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return parseAs(f, r)
}

func parseAs(f format.Format, r io.Reader) (*model.Document, error) {
	switch f {
	case format.Script:
		return script.Parse(r)
	case format.HTML:
		hr, err := htmldoc.OpenReader(r)
		if err != nil {
			return nil, err
		}
		return hr.Document()
	default:
		return nil, fmt.Errorf("unrecognized input format")
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	doc := quill.Must(quill.Open("notes.quill"))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
