package store

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// FileName is the blob written inside FileStore.Dir.
const FileName = "cardlist.dat"

// FileStore keeps the item list as a single encoded file.
type FileStore struct {
	Dir    string
	Codec  Codec
	Logger *slog.Logger
}

func (s *FileStore) Location() string {
	return filepath.Join(s.Dir, FileName)
}

func (s *FileStore) codec() Codec {
	if s.Codec == nil {
		return CBORCodec{}
	}
	return s.Codec
}

func (s *FileStore) logger() *slog.Logger {
	if s.Logger == nil {
		return discardLogger()
	}
	return s.Logger
}

// Load returns the stored list. A file that does not exist yields errNoData.
func (s *FileStore) Load() ([]string, error) {
	b, err := os.ReadFile(s.Location())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errNoData
		}
		return nil, err
	}
	items, err := s.codec().Unmarshal(b)
	if err != nil {
		return nil, fmt.Errorf("decode %s (%s): %w", s.Location(), s.codec().Name(), err)
	}
	return items, nil
}

// Save writes the whole list to a temp file and renames it into place.
func (s *FileStore) Save(items []string) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return err
	}
	b, err := s.codec().Marshal(items)
	if err != nil {
		return err
	}
	path := s.Location()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func (s *FileStore) Read() []string {
	return readOrEmpty(s.logger(), s.Location(), s.Load)
}

func (s *FileStore) Write(items []string) {
	if err := s.Save(items); err != nil {
		s.logger().Error("persist item list", "location", s.Location(), "error", err)
	}
}

func (s *FileStore) Close() error { return nil }
