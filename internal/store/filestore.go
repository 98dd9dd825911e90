package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

// FileStore keeps each document as a file under a single directory. Replace
// is serialized per document name so concurrent writers cannot interleave the
// backup/write pair.
type FileStore struct {
	dir string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewFileStore creates a FileStore rooted at dir, creating it if absent.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store directory %s: %w", dir, err)
	}
	return &FileStore{dir: dir, locks: make(map[string]*sync.Mutex)}, nil
}

// Dir returns the backing directory.
func (s *FileStore) Dir() string { return s.dir }

func (s *FileStore) path(name string) string {
	// Document names are fixed by the service; reject anything that would
	// escape the store directory.
	return filepath.Join(s.dir, filepath.Base(name))
}

func (s *FileStore) lock(name string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[name]
	if !ok {
		l = &sync.Mutex{}
		s.locks[name] = l
	}
	return l
}

// Load implements Store.
func (s *FileStore) Load(_ context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(s.path(name))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

// Exists implements Store.
func (s *FileStore) Exists(_ context.Context, name string) (bool, error) {
	_, err := os.Stat(s.path(name))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", name, err)
	}
	return true, nil
}

// Replace implements Store. Phase one copies the prior content to the backup
// artifact; phase two writes the new bytes to a temp file and renames it over
// the document, so readers observe either the old or the new content, never a
// partial write.
func (s *FileStore) Replace(_ context.Context, name string, data []byte) error {
	l := s.lock(name)
	l.Lock()
	defer l.Unlock()

	path := s.path(name)

	prev, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// First write for this name; nothing to back up.
	case err != nil:
		return &PersistError{Name: name, Phase: "backup", Err: err}
	default:
		if err := os.WriteFile(path+BackupSuffix, prev, 0o644); err != nil {
			return &PersistError{Name: name, Phase: "backup", Err: err}
		}
	}

	tmp, err := os.CreateTemp(s.dir, filepath.Base(name)+".tmp-*")
	if err != nil {
		return &PersistError{Name: name, Phase: "write", Err: err}
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return &PersistError{Name: name, Phase: "write", Err: err}
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return &PersistError{Name: name, Phase: "write", Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return &PersistError{Name: name, Phase: "write", Err: err}
	}

	log.Debug().Str("document", name).Int("bytes", len(data)).Msg("document replaced")
	return nil
}

// LoadBackup returns the single-generation backup of the named document, or
// ErrNotFound if no replace has happened yet.
func (s *FileStore) LoadBackup(ctx context.Context, name string) ([]byte, error) {
	if strings.HasSuffix(name, BackupSuffix) {
		return s.Load(ctx, name)
	}
	return s.Load(ctx, name+BackupSuffix)
}
