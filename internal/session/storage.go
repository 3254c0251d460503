package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNoRecord indicates the storage holds no persisted session.
var ErrNoRecord = errors.New("no session record")

// Storage persists the serialized session record across restarts.
type Storage interface {
	Load() ([]byte, error)
	Save(data []byte) error
	Clear() error
}

// FileStorage keeps the session record in a single file under one
// well-known path.
type FileStorage struct {
	path string
}

// NewFileStorage returns storage backed by the given file path.
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

func (s *FileStorage) Load() ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoRecord
	}
	if err != nil {
		return nil, fmt.Errorf("read session file: %w", err)
	}
	return data, nil
}

func (s *FileStorage) Save(data []byte) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}

func (s *FileStorage) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

// MemoryStorage is an in-memory Storage for tests.
type MemoryStorage struct {
	data []byte
	// FailClear forces Clear to error, for exercising unconditional logout.
	FailClear bool
}

func (s *MemoryStorage) Load() ([]byte, error) {
	if s.data == nil {
		return nil, ErrNoRecord
	}
	return s.data, nil
}

func (s *MemoryStorage) Save(data []byte) error {
	s.data = append([]byte(nil), data...)
	return nil
}

func (s *MemoryStorage) Clear() error {
	s.data = nil
	if s.FailClear {
		return errors.New("clear failed")
	}
	return nil
}
