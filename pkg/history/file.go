package history

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
)

// commitExt is the extension of commit files in a FileStore directory.
const commitExt = ".skc"

// FileStore keeps one file per commit in a directory, named by the
// zero-padded commit id.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a file-based commit store.
// If baseDir is empty, defaults to ~/.local/share/skelstore/commits/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".local", "share", "skelstore", "commits")
	}
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("create commit dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) commitPath(id uint32) string {
	return filepath.Join(s.baseDir, fmt.Sprintf("%010d%s", id, commitExt))
}

func (s *FileStore) Put(ctx context.Context, id uint32, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.commitPath(id), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if os.IsExist(err) {
			return ErrExists
		}
		return fmt.Errorf("create commit file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return fmt.Errorf("write commit file: %w", err)
	}
	return f.Close()
}

func (s *FileStore) Get(ctx context.Context, id uint32) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.commitPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read commit file: %w", err)
	}
	return data, nil
}

// ids lists the stored commit ids in ascending order. Files that do not
// look like commits are ignored.
func (s *FileStore) ids() ([]uint32, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read commit dir: %w", err)
	}
	var ids []uint32
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != commitExt {
			continue
		}
		id, err := strconv.ParseUint(strings.TrimSuffix(name, commitExt), 10, 32)
		if err != nil || id == 0 {
			continue
		}
		ids = append(ids, uint32(id))
	}
	slices.Sort(ids)
	return ids, nil
}

func (s *FileStore) Range(ctx context.Context, from, to uint32, fn func(uint32, []byte) error) error {
	ids, err := s.ids()
	if err != nil {
		return err
	}
	for _, id := range ids {
		if !inRange(id, from, to) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		data, err := s.Get(ctx, id)
		if err != nil {
			return err
		}
		if err := fn(id, data); err != nil {
			return err
		}
	}
	return nil
}

func (s *FileStore) Count(ctx context.Context) (int, error) {
	ids, err := s.ids()
	return len(ids), err
}

func (s *FileStore) Close() error { return nil }

// Path returns the directory holding the commit files.
func (s *FileStore) Path() string {
	return s.baseDir
}

// HistoryPath returns the path of the history file kept next to the
// commits.
func (s *FileStore) HistoryPath() string {
	return filepath.Join(s.baseDir, "history.json")
}

var _ Store = (*FileStore)(nil)
