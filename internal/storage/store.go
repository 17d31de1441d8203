package storage

import (
	"context"
	"fmt"

	"github.com/sandeepkv93/tally/internal/tasklist"
)

// Store is a backing store for the whole task list. Save always replaces the
// previous contents; there is no incremental append.
type Store interface {
	Load(ctx context.Context) (DecodeResult, error)
	Save(ctx context.Context, snap tasklist.Snapshot) error
	Close() error
}

// PersistenceError reports a transport-level failure: the backing store could
// not be created, read, or written at all.
type PersistenceError struct {
	Op     string
	Target string
	Err    error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("storage: %s %s: %v", e.Op, e.Target, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
