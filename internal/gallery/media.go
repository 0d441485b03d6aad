package gallery

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Media manages image files under a single flat directory. Stored
// files are named with a fresh UUID plus the source extension, so two
// imports of "photo.jpg" never collide.
type Media struct {
	dir string
}

// NewMedia creates the media directory if needed and returns a store
// rooted there.
func NewMedia(dir string) (*Media, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create media directory: %w", err)
	}
	return &Media{dir: dir}, nil
}

// NewImageURI allocates a fresh unique image name with the given
// extension (".jpg", ".png", ...).
func NewImageURI(ext string) string {
	return uuid.NewString() + ext
}

// Import copies a source file into the media directory and returns the
// stored file's name, suitable for use as an image URI.
func (m *Media) Import(src string) (string, error) {
	in, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	name := NewImageURI(filepath.Ext(src))
	dst := filepath.Join(m.dir, name)

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0640)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return "", fmt.Errorf("failed to copy into media store: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("failed to finish media import: %w", err)
	}

	return name, nil
}

// Remove deletes a stored file. Removing a name that is already gone
// is not an error.
func (m *Media) Remove(name string) error {
	err := os.Remove(filepath.Join(m.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove media file %s: %w", name, err)
	}
	return nil
}

// Path returns the absolute location of a stored file.
func (m *Media) Path(name string) string {
	return filepath.Join(m.dir, name)
}
