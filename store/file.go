package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/zeu5/bankers-rl/policies"
	"github.com/zeu5/bankers-rl/util"
)

// FileStore keeps the table as a JSON lines file. Saves replace the file atomically.
type FileStore struct {
	path string
}

var _ PolicyStore = &FileStore{}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) Load(_ context.Context) (*policies.QTable, error) {
	file, err := os.Open(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", f.path, err)
	}
	defer file.Close()

	table, err := policies.ReadQTable(file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}
	return table, nil
}

func (f *FileStore) Save(_ context.Context, table *policies.QTable) error {
	err := util.WriteFileAtomic(f.path, func(w io.Writer) error {
		return table.Write(w)
	})
	if err != nil {
		return fmt.Errorf("save %s: %w", f.path, err)
	}
	return nil
}
