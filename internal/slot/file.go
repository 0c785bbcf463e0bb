package slot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// File stores the slot as <dir>/<name>.json. Writes go through a temp file
// and a rename so a crash never leaves a half-written blob behind.
type File struct {
	name string
	path string
}

// NewFile creates dir if needed and returns the slot stored inside it.
func NewFile(dir, name string) (*File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &File{
		name: name,
		path: filepath.Join(dir, name+".json"),
	}, nil
}

func (f *File) Name() string { return f.name }

// Path returns the file backing the slot.
func (f *File) Path() string { return f.path }

func (f *File) Get(ctx context.Context) ([]byte, error) {
	b, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read slot %s: %w", f.name, err)
	}
	return b, nil
}

func (f *File) Put(ctx context.Context, value []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(f.path), "."+f.name+"-*.tmp")
	if err != nil {
		return fmt.Errorf("write slot %s: %w", f.name, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return fmt.Errorf("write slot %s: %w", f.name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write slot %s: %w", f.name, err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("write slot %s: %w", f.name, err)
	}
	return nil
}
