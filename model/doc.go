// Package model provides the document representation for composed
// documents.
//
// This package defines the user-facing data structures that represent a
// document as an ordered sequence of typed elements. All composition and
// import operations ultimately produce these types, making them the
// primary API for consuming composed content.
//
// # Document Structure
//
// The [Document] type holds an append-only sequence of elements:
//
//	doc := model.NewDocument()
//	doc.AddElement(&model.Text{Content: "Hello, world!"})
//	doc.AddElement(&model.LineBreak{})
//
// # Elements
//
// All document content implements the [Element] interface. The concrete
// types form a closed set:
//
//   - [Text] - a run of literal text
//   - [Image] - a reference to an image by path
//   - [LineBreak] - a line break
//   - [Tab] - a horizontal tab stop
//
// Every element knows how to render itself as plain text; [Document.Render]
// concatenates the renderings in insertion order.
//
// # Statistics
//
// [Document.Stats] reports composition statistics: element counts by type,
// text rune totals, and rendered line counts.
package model
