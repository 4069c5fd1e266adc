package fsio

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

//go:generate mockgen -destination=../../files/readermocks_test.go -package=files_test github.com/IlliquidAsset/deepcoder/internal/fsio Reader
type Reader interface {
	ReadFile(name string) ([]byte, error)
	Stat(name string) (fs.FileInfo, error)
	WalkDir(root string, fn fs.WalkDirFunc) error
}

//go:generate mockgen -destination=../../files/writermocks_test.go -package=files_test github.com/IlliquidAsset/deepcoder/internal/fsio Writer
type Writer interface {
	MkdirAll(path string, perm fs.FileMode) error
	WriteFile(name string, data []byte, perm fs.FileMode) error
}

type RealReader struct{}

func NewRealReader() *RealReader { return &RealReader{} }

func (r *RealReader) ReadFile(name string) ([]byte, error) { return os.ReadFile(name) }

func (r *RealReader) Stat(name string) (fs.FileInfo, error) { return os.Stat(name) }

func (r *RealReader) WalkDir(root string, fn fs.WalkDirFunc) error {
	return filepath.WalkDir(root, fn)
}

// RealWriter replaces files atomically: data goes to a temp file in the
// destination directory which is then renamed over the target.
type RealWriter struct{}

func NewRealWriter() *RealWriter { return &RealWriter{} }

func (w *RealWriter) MkdirAll(path string, perm fs.FileMode) error { return os.MkdirAll(path, perm) }

func (w *RealWriter) WriteFile(name string, data []byte, perm fs.FileMode) error {
	dir, base := filepath.Split(name)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, fmt.Sprintf(".%s.*.tmp", base))
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return err
	}

	// Rename may fail on Windows when the target exists.
	if err := os.Rename(tmpName, name); err != nil {
		if errors.Is(err, os.ErrExist) || errors.Is(err, os.ErrPermission) {
			_ = os.Remove(name)
			return os.Rename(tmpName, name)
		}
		return err
	}
	return nil
}
