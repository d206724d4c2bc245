package storage

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// DefaultPath is the output path used when none is configured.
const DefaultPath = "document.txt"

// FileConfig controls how a FileStore writes documents.
type FileConfig struct {
	// Path is the output file path. Empty means DefaultPath.
	Path string

	// Perm is the file mode for created files. Zero means 0644.
	Perm os.FileMode

	// Encoding transcodes the output before writing. Nil writes the
	// rendered text as-is (UTF-8).
	Encoding encoding.Encoding
}

// DefaultFileConfig returns the default file storage configuration.
func DefaultFileConfig() FileConfig {
	return FileConfig{
		Path: DefaultPath,
		Perm: 0644,
	}
}

// FileStore persists rendered documents to a file on disk. The whole
// document is rewritten on every save.
type FileStore struct {
	config FileConfig
}

// NewFileStore creates a file store writing to the given path.
// An empty path means DefaultPath.
func NewFileStore(path string) *FileStore {
	config := DefaultFileConfig()
	if path != "" {
		config.Path = path
	}
	return &FileStore{config: config}
}

// NewFileStoreWithConfig creates a file store with custom configuration.
// Zero-value fields fall back to their defaults.
func NewFileStoreWithConfig(config FileConfig) *FileStore {
	if config.Path == "" {
		config.Path = DefaultPath
	}
	if config.Perm == 0 {
		config.Perm = 0644
	}
	return &FileStore{config: config}
}

// Path returns the output path this store writes to.
func (s *FileStore) Path() string {
	return s.config.Path
}

// Save writes the rendered document to the configured path, creating or
// truncating the file. Every I/O failure, including the final close, is
// reported to the caller.
func (s *FileStore) Save(data string) error {
	path := s.config.Path

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, s.config.Perm)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	if err := s.write(f, data); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

// write sends the payload through the configured encoding, if any.
func (s *FileStore) write(w io.Writer, data string) error {
	if s.config.Encoding == nil {
		_, err := io.WriteString(w, data)
		return err
	}

	tw := transform.NewWriter(w, s.config.Encoding.NewEncoder())
	if _, err := io.WriteString(tw, data); err != nil {
		tw.Close()
		return err
	}
	// Close flushes any bytes the transformer is still holding.
	return tw.Close()
}
