package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

func TestFileName(t *testing.T) {
	tests := []struct {
		genre     string
		year      int
		extension string
		want      string
	}{
		{genre: "classic rock", year: 1975, extension: ".md", want: "classic_rock_hits_1975.md"},
		{genre: "Hard Rock", year: 1980, extension: "html", want: "hard_rock_hits_1980.html"},
		{genre: "", year: 1990, extension: ".md", want: "music_hits_1990.md"},
		{genre: "punk", year: 1977, extension: "", want: "punk_hits_1977"},
	}

	for _, tt := range tests {
		if got := FileName(tt.genre, tt.year, tt.extension); got != tt.want {
			t.Errorf("FileName(%q, %d, %q) = %q, want %q", tt.genre, tt.year, tt.extension, got, tt.want)
		}
	}
}

func TestSave_OsFilesystem(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out", "nested")

	path, err := Save(dir, "classic_rock_hits_1975.md", "# Classic Rock Hits from 1975\n")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if path != filepath.Join(dir, "classic_rock_hits_1975.md") {
		t.Errorf("unexpected path %q", path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(content) != "# Classic Rock Hits from 1975\n" {
		t.Errorf("unexpected content %q", content)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("temporary files must not be left behind, got %d entries", len(entries))
	}
}

func TestSave_Overwrites(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := New("/out", WithFs(fs))

	if _, err := s.Save("doc.md", "first"); err != nil {
		t.Fatalf("first Save: %v", err)
	}
	path, err := s.Save("doc.md", "second")
	if err != nil {
		t.Fatalf("second Save: %v", err)
	}

	content, err := afero.ReadFile(fs, path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(content) != "second" {
		t.Errorf("expected overwritten content, got %q", content)
	}
}

func TestSave_InvalidName(t *testing.T) {
	s := New("/out", WithFs(afero.NewMemMapFs()))

	for _, name := range []string{"", ".", "..", "../escape.md", "sub/doc.md"} {
		if _, err := s.Save(name, "x"); !errors.Is(err, ErrInvalidName) {
			t.Errorf("Save(%q): expected ErrInvalidName, got %v", name, err)
		}
	}
}

func TestSave_ReadOnlyFilesystem(t *testing.T) {
	s := New("/out", WithFs(afero.NewReadOnlyFs(afero.NewMemMapFs())))

	if _, err := s.Save("doc.md", "x"); err == nil {
		t.Fatal("expected error on a read-only filesystem")
	}
}
