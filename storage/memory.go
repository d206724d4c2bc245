package storage

// MemoryStore keeps the most recently saved document in memory. It is
// intended for tests and dry runs. Not safe for concurrent use.
type MemoryStore struct {
	data  string
	saves int
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Save retains the payload, replacing any previous one. It never fails.
func (s *MemoryStore) Save(data string) error {
	s.data = data
	s.saves++
	return nil
}

// Data returns the most recently saved payload.
func (s *MemoryStore) Data() string {
	return s.data
}

// Saves returns how many times Save has been called.
func (s *MemoryStore) Saves() int {
	return s.saves
}
