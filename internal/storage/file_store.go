package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/sandeepkv93/tally/internal/tasklist"
)

const byteOrderMark = "\uFEFF"

type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load creates an empty file when none exists yet. A leading UTF-8 byte
// order mark is ignored.
func (s *FileStore) Load(ctx context.Context) (DecodeResult, error) {
	if err := ctx.Err(); err != nil {
		return DecodeResult{}, &PersistenceError{Op: "read", Target: s.path, Err: err}
	}
	if err := s.ensureDir(); err != nil {
		return DecodeResult{}, err
	}
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return DecodeResult{}, &PersistenceError{Op: "read", Target: s.path, Err: err}
		}
		if err := os.WriteFile(s.path, nil, 0o644); err != nil {
			return DecodeResult{}, &PersistenceError{Op: "create", Target: s.path, Err: err}
		}
		return DecodeResult{}, nil
	}
	text := strings.TrimPrefix(string(raw), byteOrderMark)
	return Decode(strings.Split(text, "\n")), nil
}

// Save rewrites the whole file through a temp file and rename.
func (s *FileStore) Save(ctx context.Context, snap tasklist.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return &PersistenceError{Op: "write", Target: s.path, Err: err}
	}
	if err := s.ensureDir(); err != nil {
		return err
	}
	var b strings.Builder
	for _, line := range Encode(snap) {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(b.String()), 0o644); err != nil {
		return &PersistenceError{Op: "write", Target: tmp, Err: err}
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return &PersistenceError{Op: "replace", Target: s.path, Err: err}
	}
	return nil
}

func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) ensureDir() error {
	dir := filepath.Dir(s.path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &PersistenceError{Op: "create directory", Target: dir, Err: err}
	}
	return nil
}
