// Package script parses the quill composition script format.
//
// A script is a sequence of directives, one per statement, that build a
// document in order:
//
//	# a short note
//	text "Hello, world!"
//	newline
//	tab
//	text "Indented."
//	newline
//	image "picture.jpg"
//
// Strings are Go-quoted, so the usual escapes work. Comments run from #
// to end of line. Whitespace, including line breaks, only separates
// tokens; nothing is inferred from layout.
package script

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/quillkit/quill/model"
)

var (
	scriptLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
		{Name: "Comment", Pattern: `#[^\n]*`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[a-z]+`},
	})

	scriptParser = participle.MustBuild[Script](
		participle.Lexer(scriptLexer),
		participle.Elide("Whitespace", "Comment"),
	)
)

// Script is the root AST node for a composition script.
type Script struct {
	Statements []*Statement `parser:"@@*"`
}

// Statement is a single composition directive.
type Statement struct {
	Text    *TextStatement  `parser:"  @@"`
	Image   *ImageStatement `parser:"| @@"`
	Newline bool            `parser:"| @'newline'"`
	Tab     bool            `parser:"| @'tab'"`
}

// TextStatement appends a run of literal text.
type TextStatement struct {
	Content StringLiteral `parser:"'text' @String"`
}

// ImageStatement appends an image reference.
type ImageStatement struct {
	Path StringLiteral `parser:"'image' @String"`
}

// StringLiteral unquotes Go-style strings on capture.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// Parse parses script content from an io.Reader.
func Parse(r io.Reader) (*model.Document, error) {
	ast, err := scriptParser.Parse("", r)
	if err != nil {
		return nil, fmt.Errorf("parsing script: %w", err)
	}
	return build(ast), nil
}

// ParseString parses script content from a string.
func ParseString(input string) (*model.Document, error) {
	ast, err := scriptParser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("parsing script: %w", err)
	}
	return build(ast), nil
}

// ParseFile parses a script file. Parse errors carry the filename in
// their position information.
func ParseFile(filename string) (*model.Document, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	ast, err := scriptParser.Parse(filename, f)
	if err != nil {
		return nil, fmt.Errorf("parsing script: %w", err)
	}
	return build(ast), nil
}

// build converts the AST into a document. Exactly one field of each
// statement is set when parsing succeeds.
func build(s *Script) *model.Document {
	doc := model.NewDocument()
	for _, st := range s.Statements {
		switch {
		case st.Text != nil:
			doc.AddElement(&model.Text{Content: string(st.Text.Content)})
		case st.Image != nil:
			doc.AddElement(&model.Image{Path: string(st.Image.Path)})
		case st.Newline:
			doc.AddElement(&model.LineBreak{})
		case st.Tab:
			doc.AddElement(&model.Tab{})
		}
	}
	return doc
}
