// Package export renders documents in interchange formats.
//
// The plain text export is byte-identical to [model.Document.Render].
// Markdown and HTML map each element to its closest equivalent, and JSON
// emits the element sequence as an array of typed records. Markdown text
// content is emitted verbatim, without escaping.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/quillkit/quill/model"
)

// Format defines the available export formats
type Format int

const (
	// FormatText exports the plain text rendering
	FormatText Format = iota
	// FormatMarkdown exports Markdown
	FormatMarkdown
	// FormatHTML exports HTML
	FormatHTML
	// FormatJSON exports the element sequence as a JSON array
	FormatJSON
)

// String returns a human-readable representation of the export format
func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatMarkdown:
		return "markdown"
	case FormatHTML:
		return "html"
	case FormatJSON:
		return "json"
	default:
		return "unknown"
	}
}

// FileExtension returns the typical file extension for this format
func (f Format) FileExtension() string {
	switch f {
	case FormatMarkdown:
		return ".md"
	case FormatHTML:
		return ".html"
	case FormatJSON:
		return ".json"
	default:
		return ".txt"
	}
}

// ParseFormat maps a format name to its Format. Common aliases ("txt",
// "md") are accepted.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "txt", "plain":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatText, fmt.Errorf("unknown export format %q", s)
	}
}

// Config holds configuration options for export
type Config struct {
	// Format specifies the export format
	Format Format

	// Title sets the document title for standalone HTML output
	Title string

	// Standalone wraps HTML output in a complete document shell
	Standalone bool

	// PrettyPrint enables indented output for JSON
	PrettyPrint bool
}

// DefaultConfig returns sensible defaults for export configuration
func DefaultConfig() Config {
	return Config{
		Format: FormatText,
	}
}

// StandaloneHTMLConfig returns config producing a complete HTML page
func StandaloneHTMLConfig(title string) Config {
	config := DefaultConfig()
	config.Format = FormatHTML
	config.Standalone = true
	config.Title = title
	return config
}

// PrettyJSONConfig returns config for indented JSON export
func PrettyJSONConfig() Config {
	config := DefaultConfig()
	config.Format = FormatJSON
	config.PrettyPrint = true
	return config
}

// Exporter handles exporting documents to various formats
type Exporter struct {
	config Config
}

// NewExporter creates an exporter for the given format with default
// configuration
func NewExporter(format Format) *Exporter {
	config := DefaultConfig()
	config.Format = format
	return &Exporter{config: config}
}

// NewExporterWithConfig creates an exporter with custom configuration
func NewExporterWithConfig(config Config) *Exporter {
	return &Exporter{
		config: config,
	}
}

// Export writes the document to the specified writer
func (e *Exporter) Export(doc *model.Document, w io.Writer) error {
	switch e.config.Format {
	case FormatText:
		return e.exportText(doc, w)
	case FormatMarkdown:
		return e.exportMarkdown(doc, w)
	case FormatHTML:
		return e.exportHTML(doc, w)
	case FormatJSON:
		return e.exportJSON(doc, w)
	default:
		return fmt.Errorf("unsupported export format: %v", e.config.Format)
	}
}

// ExportToFile exports the document to a file
func (e *Exporter) ExportToFile(doc *model.Document, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	defer f.Close()

	return e.Export(doc, f)
}

// ExportToString exports the document to a string
func (e *Exporter) ExportToString(doc *model.Document) (string, error) {
	var buf bytes.Buffer
	if err := e.Export(doc, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (e *Exporter) exportText(doc *model.Document, w io.Writer) error {
	_, err := io.WriteString(w, doc.Render())
	return err
}

func (e *Exporter) exportMarkdown(doc *model.Document, w io.Writer) error {
	var sb strings.Builder
	for _, el := range doc.Elements() {
		switch v := el.(type) {
		case *model.Text:
			sb.WriteString(v.Content)
		case *model.Image:
			sb.WriteString("![")
			sb.WriteString(filepath.Base(v.Path))
			sb.WriteString("](")
			sb.WriteString(v.Path)
			sb.WriteString(")")
		case *model.LineBreak:
			sb.WriteString("\n")
		case *model.Tab:
			sb.WriteString("\t")
		default:
			return fmt.Errorf("unsupported element type: %v", el.Type())
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func (e *Exporter) exportHTML(doc *model.Document, w io.Writer) error {
	var sb strings.Builder

	if e.config.Standalone {
		title := e.config.Title
		if title == "" {
			title = "Document"
		}
		sb.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
		sb.WriteString("<meta charset=\"utf-8\">\n")
		sb.WriteString("<title>")
		sb.WriteString(html.EscapeString(title))
		sb.WriteString("</title>\n</head>\n<body>\n")
	}

	for _, el := range doc.Elements() {
		switch v := el.(type) {
		case *model.Text:
			sb.WriteString(html.EscapeString(v.Content))
		case *model.Image:
			sb.WriteString(`<img src="`)
			sb.WriteString(html.EscapeString(v.Path))
			sb.WriteString(`" alt="`)
			sb.WriteString(html.EscapeString(filepath.Base(v.Path)))
			sb.WriteString(`">`)
		case *model.LineBreak:
			sb.WriteString("<br>\n")
		case *model.Tab:
			sb.WriteString("&#9;")
		default:
			return fmt.Errorf("unsupported element type: %v", el.Type())
		}
	}

	if e.config.Standalone {
		sb.WriteString("\n</body>\n</html>\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// elementRecord is the JSON wire form of a single element
type elementRecord struct {
	Type    string `json:"type"`
	Content string `json:"content,omitempty"`
	Path    string `json:"path,omitempty"`
}

func (e *Exporter) exportJSON(doc *model.Document, w io.Writer) error {
	records := make([]elementRecord, 0, doc.Len())
	for _, el := range doc.Elements() {
		switch v := el.(type) {
		case *model.Text:
			records = append(records, elementRecord{Type: "text", Content: v.Content})
		case *model.Image:
			records = append(records, elementRecord{Type: "image", Path: v.Path})
		case *model.LineBreak:
			records = append(records, elementRecord{Type: "linebreak"})
		case *model.Tab:
			records = append(records, elementRecord{Type: "tab"})
		default:
			return fmt.Errorf("unsupported element type: %v", el.Type())
		}
	}

	enc := json.NewEncoder(w)
	if e.config.PrettyPrint {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(records)
}
