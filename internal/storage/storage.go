// Package storage persists uploaded supporting documents on local disk.
// Files are grouped per project and renamed with a random suffix so
// concurrent uploads of the same filename never collide.
package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// maxFileBytes caps a single uploaded document.
const maxFileBytes = 16 << 20 // 16 MB

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// allowedExtensions lists the upload types the dashboard accepts.
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".ppt":  true,
	".pptx": true,
	".txt":  true,
	".md":   true,
	".html": true,
	".htm":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// Store manages uploaded files under a single root directory.
type Store struct {
	root string
}

// SavedFile describes a stored upload.
type SavedFile struct {
	Name       string // original filename, sanitized
	StoredName string // on-disk name, unique per upload
	Path       string // absolute path under the store root
	Size       int64
}

// New creates a Store rooted at dir, creating the directory if needed.
func New(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("storage: root directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: failed to create root %s: %w", dir, err)
	}
	return &Store{root: dir}, nil
}

// Root returns the store's root directory.
func (s *Store) Root() string {
	return s.root
}

// SaveUpload writes a multipart upload into the project's directory and
// returns the stored metadata.
func (s *Store) SaveUpload(projectID uuid.UUID, header *multipart.FileHeader) (*SavedFile, error) {
	if header.Size > maxFileBytes {
		return nil, fmt.Errorf("storage: %s exceeds the %d byte limit", header.Filename, maxFileBytes)
	}

	name := SanitizeFilename(header.Filename)
	ext := strings.ToLower(filepath.Ext(name))
	if !allowedExtensions[ext] {
		return nil, fmt.Errorf("storage: file type %q is not allowed", ext)
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("storage: failed to open upload: %w", err)
	}
	defer src.Close()

	dir := filepath.Join(s.root, projectID.String())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: failed to create project dir: %w", err)
	}

	storedName := fmt.Sprintf("%s_%s", uuid.New().String()[:8], name)
	path := filepath.Join(dir, storedName)

	dst, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("storage: failed to create %s: %w", path, err)
	}
	defer dst.Close()

	written, err := io.Copy(dst, io.LimitReader(src, maxFileBytes+1))
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("storage: failed to write %s: %w", path, err)
	}
	if written > maxFileBytes {
		os.Remove(path)
		return nil, fmt.Errorf("storage: %s exceeds the %d byte limit", header.Filename, maxFileBytes)
	}

	return &SavedFile{
		Name:       name,
		StoredName: storedName,
		Path:       path,
		Size:       written,
	}, nil
}

// Open returns a reader for a stored file.
func (s *Store) Open(projectID uuid.UUID, storedName string) (*os.File, error) {
	// Reject traversal attempts in stored names coming from the database.
	if storedName != filepath.Base(storedName) {
		return nil, fmt.Errorf("storage: invalid stored name %q", storedName)
	}
	return os.Open(filepath.Join(s.root, projectID.String(), storedName))
}

// SanitizeFilename replaces characters outside [a-zA-Z0-9._-] with
// underscores and strips any path components.
func SanitizeFilename(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	cleaned := unsafeChars.ReplaceAllString(base, "_")
	if cleaned == "" || cleaned == "." || cleaned == ".." {
		return "upload"
	}
	return cleaned
}
