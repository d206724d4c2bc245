package quill

import (
	"errors"
	"io"

	"github.com/quillkit/quill/export"
	"github.com/quillkit/quill/model"
	"github.com/quillkit/quill/storage"
)

// ErrNoStore is returned by Save when the editor was built without a
// storage backend.
var ErrNoStore = errors.New("no storage backend configured")

// Editor is the high-level facade for composing a document. It appends
// elements to an underlying document, renders the result with caching,
// and saves through a storage backend.
//
// The editor is not safe for concurrent use.
type Editor struct {
	doc   *model.Document
	store storage.Store

	// render cache, invalidated by every mutation
	rendered string
	valid    bool
}

// NewEditor creates an editor over the given document and store. Both
// collaborators are supplied by the caller; the editor constructs
// neither. The document must be non-nil. A nil store is tolerated until
// Save is called, which then returns ErrNoStore.
func NewEditor(doc *model.Document, store storage.Store) *Editor {
	return &Editor{
		doc:   doc,
		store: store,
	}
}

// AddText appends a run of literal text to the document.
func (e *Editor) AddText(content string) {
	e.add(&model.Text{Content: content})
}

// AddImage appends an image reference by path.
func (e *Editor) AddImage(path string) {
	e.add(&model.Image{Path: path})
}

// AddLineBreak appends a line break.
func (e *Editor) AddLineBreak() {
	e.add(&model.LineBreak{})
}

// AddTab appends a horizontal tab stop.
func (e *Editor) AddTab() {
	e.add(&model.Tab{})
}

// AddElement appends an already-built element, such as one produced by
// an importer. A nil element is ignored.
func (e *Editor) AddElement(el model.Element) {
	if el == nil {
		return
	}
	e.add(el)
}

func (e *Editor) add(el model.Element) {
	e.doc.AddElement(el)
	e.valid = false
}

// Document returns the underlying document.
func (e *Editor) Document() *model.Document {
	return e.doc
}

// Render returns the document's plain text form. The result is cached
// and recomputed only after a mutation, so repeated calls are cheap.
func (e *Editor) Render() string {
	if !e.valid {
		e.rendered = e.doc.Render()
		e.valid = true
	}
	return e.rendered
}

// Save renders the document and hands the result to the store. Storage
// failures are returned to the caller.
func (e *Editor) Save() error {
	if e.store == nil {
		return ErrNoStore
	}
	return e.store.Save(e.Render())
}

// Export writes the document to w in the given format.
func (e *Editor) Export(f export.Format, w io.Writer) error {
	return export.NewExporter(f).Export(e.doc, w)
}
