// Package store persists rendered documents to disk.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/leofalp/hitsfinder/internal/utils"
)

const (
	dirPerm  os.FileMode = 0o755
	filePerm os.FileMode = 0o644
)

// ErrInvalidName is returned when a document name is empty or tries to leave
// the output directory.
var ErrInvalidName = errors.New("store: invalid document name")

// Store writes documents into one directory of a filesystem.
type Store struct {
	fs  afero.Fs
	dir string
}

// Option configures a Store.
type Option func(*Store)

// WithFs replaces the operating system filesystem, e.g. with
// afero.NewMemMapFs() in tests.
func WithFs(fs afero.Fs) Option {
	return func(s *Store) { s.fs = fs }
}

// New returns a Store rooted at dir. An empty dir means the working directory.
func New(dir string, opts ...Option) *Store {
	if dir == "" {
		dir = "."
	}

	s := &Store{fs: afero.NewOsFs(), dir: dir}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FileName returns the conventional document name for a query, e.g.
// "classic_rock_hits_1975.md".
func FileName(genre string, year int, extension string) string {
	slug := utils.Slug(genre)
	if slug == "" {
		slug = "music"
	}
	if extension != "" && !strings.HasPrefix(extension, ".") {
		extension = "." + extension
	}
	return fmt.Sprintf("%s_hits_%d%s", slug, year, extension)
}

// Save writes content to name inside the store directory and returns the
// full path. The write is atomic: content goes to a temporary file that is
// renamed over the destination, so readers never see a partial document.
func (s *Store) Save(name, content string) (string, error) {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	if err := s.fs.MkdirAll(s.dir, dirPerm); err != nil {
		return "", fmt.Errorf("store: creating %s: %w", s.dir, err)
	}

	tmp, err := afero.TempFile(s.fs, s.dir, "."+name+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("store: creating temporary file: %w", err)
	}
	tmpName := tmp.Name()

	if err := writeAndClose(tmp, content); err != nil {
		_ = s.fs.Remove(tmpName)
		return "", fmt.Errorf("store: writing %s: %w", name, err)
	}

	if err := s.fs.Chmod(tmpName, filePerm); err != nil {
		_ = s.fs.Remove(tmpName)
		return "", fmt.Errorf("store: setting permissions on %s: %w", name, err)
	}

	path := filepath.Join(s.dir, name)
	if err := s.fs.Rename(tmpName, path); err != nil {
		_ = s.fs.Remove(tmpName)
		return "", fmt.Errorf("store: moving %s into place: %w", name, err)
	}

	return path, nil
}

func writeAndClose(f afero.File, content string) error {
	if _, err := f.WriteString(content); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Save writes content to dir/name on the operating system filesystem.
func Save(dir, name, content string) (string, error) {
	return New(dir).Save(name, content)
}
