// Package storage provides persistence backends for rendered documents.
//
// The [Store] interface is the persistence abstraction used by the editor
// facade. Implementations: [FileStore] (filesystem), [MemoryStore]
// (in-memory, useful for tests and dry runs), and [DBStore] (placeholder
// database backend).
package storage

// Store persists a rendered document. Save receives the complete rendered
// text and reports any failure to the caller; implementations do not
// swallow errors.
type Store interface {
	Save(data string) error
}
