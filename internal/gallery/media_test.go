package gallery

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMediaImport(t *testing.T) {
	dir := t.TempDir()
	media, err := NewMedia(filepath.Join(dir, "media"))
	if err != nil {
		t.Fatalf("NewMedia() error = %v", err)
	}

	src := filepath.Join(dir, "photo.jpg")
	if err := os.WriteFile(src, []byte("jpeg bytes"), 0644); err != nil {
		t.Fatalf("failed to write source file: %v", err)
	}

	name, err := media.Import(src)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if filepath.Ext(name) != ".jpg" {
		t.Errorf("stored name %q lost source extension", name)
	}

	data, err := os.ReadFile(media.Path(name))
	if err != nil {
		t.Fatalf("failed to read stored file: %v", err)
	}
	if string(data) != "jpeg bytes" {
		t.Errorf("stored content = %q, want source bytes", data)
	}

	// Importing the same source twice yields distinct names.
	second, err := media.Import(src)
	if err != nil {
		t.Fatalf("second Import() error = %v", err)
	}
	if second == name {
		t.Error("second import reused the first stored name")
	}
}

func TestMediaImportMissingSource(t *testing.T) {
	media, err := NewMedia(t.TempDir())
	if err != nil {
		t.Fatalf("NewMedia() error = %v", err)
	}
	if _, err := media.Import("/nonexistent/photo.jpg"); err == nil {
		t.Error("Import() of missing source succeeded, want error")
	}
}

func TestMediaRemove(t *testing.T) {
	dir := t.TempDir()
	media, err := NewMedia(filepath.Join(dir, "media"))
	if err != nil {
		t.Fatalf("NewMedia() error = %v", err)
	}

	src := filepath.Join(dir, "photo.png")
	if err := os.WriteFile(src, []byte("png"), 0644); err != nil {
		t.Fatalf("failed to write source file: %v", err)
	}
	name, err := media.Import(src)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	if err := media.Remove(name); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if _, err := os.Stat(media.Path(name)); !os.IsNotExist(err) {
		t.Errorf("stored file still present after Remove()")
	}

	// Idempotent.
	if err := media.Remove(name); err != nil {
		t.Errorf("Remove() of absent file error = %v, want nil", err)
	}
}
