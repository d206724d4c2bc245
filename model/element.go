package model

// ElementType represents the type of document element
type ElementType int

const (
	ElementTypeUnknown ElementType = iota
	ElementTypeText
	ElementTypeImage
	ElementTypeLineBreak
	ElementTypeTab
)

func (et ElementType) String() string {
	switch et {
	case ElementTypeText:
		return "Text"
	case ElementTypeImage:
		return "Image"
	case ElementTypeLineBreak:
		return "LineBreak"
	case ElementTypeTab:
		return "Tab"
	default:
		return "Unknown"
	}
}

// Element is the interface for all document elements. The set of
// implementations is closed: Text, Image, LineBreak and Tab. Consumers
// that need per-variant behavior switch exhaustively over these types
// and treat anything else as an error.
type Element interface {
	Type() ElementType
	Render() string
}

// Text represents a run of literal text
type Text struct {
	Content string
}

func (t *Text) Type() ElementType { return ElementTypeText }
func (t *Text) Render() string    { return t.Content }

// Image represents a reference to an image by path. The path is carried
// verbatim; it is not resolved or validated at composition time.
type Image struct {
	Path string
}

func (i *Image) Type() ElementType { return ElementTypeImage }
func (i *Image) Render() string    { return "[Image: " + i.Path + "]" }

// LineBreak represents a line break
type LineBreak struct{}

func (l *LineBreak) Type() ElementType { return ElementTypeLineBreak }
func (l *LineBreak) Render() string    { return "\n" }

// Tab represents a horizontal tab stop
type Tab struct{}

func (t *Tab) Type() ElementType { return ElementTypeTab }
func (t *Tab) Render() string    { return "\t" }
