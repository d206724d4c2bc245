package storage

// DBStore is a placeholder database backend. It accepts saves and
// discards them; nothing is persisted. It exists so callers can select a
// database backend today and gain real persistence when one is added.
type DBStore struct{}

// NewDBStore creates the placeholder database store.
func NewDBStore() *DBStore {
	return &DBStore{}
}

// Save discards the payload and reports success.
func (s *DBStore) Save(data string) error {
	return nil
}
