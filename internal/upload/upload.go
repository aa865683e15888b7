// Package upload stores request attachments in a content directory.
//
// Each accepted file is written under a generated, collision-resistant
// name and that name is returned as the file's handle — the only thing
// the rest of the application persists. Files that fail the type or
// size checks are rejected with a typed error naming the offending
// upload, so the response layer can tell the client exactly which
// attachment was at fault.
package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// DefaultMaxSize caps a single attachment at 10 MiB.
const DefaultMaxSize int64 = 10 << 20

// allowedExts are the only attachment types the scholarship form
// accepts. Both the filename extension and the declared content type
// must match one of them.
var allowedExts = map[string]bool{
	".pdf":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

var allowedContentTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/jpg":       true,
	"image/png":       true,
}

// FileErrorKind classifies why an upload was rejected.
type FileErrorKind int

const (
	// TypeRejected means the extension or declared content type is
	// not one of .pdf/.jpg/.jpeg/.png.
	TypeRejected FileErrorKind = iota
	// TooLarge means the file exceeds the store's size limit.
	TooLarge
)

// FileError reports a rejected upload. It carries the client-supplied
// filename so the response can name the offending attachment.
type FileError struct {
	Filename string
	Kind     FileErrorKind
}

func (e *FileError) Error() string {
	switch e.Kind {
	case TooLarge:
		return fmt.Sprintf("file %s is too large", e.Filename)
	default:
		return fmt.Sprintf("file %s: only .pdf, .jpg, .jpeg, .png files are allowed", e.Filename)
	}
}

// NameFunc generates a unique stored filename for an accepted upload.
// ext includes the leading dot. Pluggable so tests can inject
// deterministic names.
type NameFunc func(ext string) string

// UUIDName is the production NameFunc: a random UUID plus the original
// extension.
func UUIDName(ext string) string {
	return uuid.NewString() + ext
}

// Store writes accepted attachments into Dir. The zero value is not
// usable; construct with New.
type Store struct {
	Dir     string
	MaxSize int64
	NewName NameFunc
}

// New creates the content directory if needed and returns a Store with
// the default size limit and UUID naming.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("upload.New: create dir: %w", err)
	}
	return &Store{Dir: dir, MaxSize: DefaultMaxSize, NewName: UUIDName}, nil
}

// Save checks one uploaded file against the type and size limits and,
// if it passes, copies its bytes into the content directory under a
// generated name. The generated name is returned as the file handle.
//
// Rejections come back as *FileError. A file already written stays on
// disk even if a later file in the same request is rejected — there is
// no rollback across slots.
func (s *Store) Save(fh *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExts[ext] {
		return "", &FileError{Filename: fh.Filename, Kind: TypeRejected}
	}
	if ct := fh.Header.Get("Content-Type"); !allowedContentTypes[strings.ToLower(ct)] {
		return "", &FileError{Filename: fh.Filename, Kind: TypeRejected}
	}
	if fh.Size > s.MaxSize {
		return "", &FileError{Filename: fh.Filename, Kind: TooLarge}
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("Save: open upload %s: %w", fh.Filename, err)
	}
	defer src.Close()

	name := s.NewName(ext)
	path := filepath.Join(s.Dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("Save: create %s: %w", path, err)
	}
	defer dst.Close()

	// The declared size is client-supplied; cap the copy as well and
	// drop the partial file if the body turns out bigger than claimed.
	written, err := io.Copy(dst, io.LimitReader(src, s.MaxSize+1))
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("Save: write %s: %w", path, err)
	}
	if written > s.MaxSize {
		os.Remove(path)
		return "", &FileError{Filename: fh.Filename, Kind: TooLarge}
	}

	return name, nil
}
