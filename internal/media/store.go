// Package media stores uploaded job attachments on local disk and
// exposes them as URLs under the public uploads path.
package media

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// Upload limits.
const (
	// MaxFileSize is the per-file upload cap.
	MaxFileSize = 10 << 20 // 10MB
	// MaxFilesPerJob caps attachments on a single posting.
	MaxFilesPerJob = 5
)

// PublicPath is the URL path prefix under which stored files are served.
const PublicPath = "/uploads"

var (
	// ErrFileTooLarge indicates the upload exceeds MaxFileSize.
	ErrFileTooLarge = errors.New("file exceeds maximum size")
	// ErrUnsupportedFileType indicates the extension is not allowed.
	ErrUnsupportedFileType = errors.New("only image and document files are allowed")
	// ErrTooManyFiles indicates the per-job attachment cap was exceeded.
	ErrTooManyFiles = errors.New("too many attachments")
)

// allowedExtensions are the accepted upload types (images and documents).
var allowedExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

// Store writes uploads to a directory and maps them to public URLs.
type Store struct {
	dir     string
	baseURL string
}

// NewStore creates a Store rooted at dir, creating it if needed.
// baseURL is the externally visible server address.
func NewStore(dir, baseURL string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &Store{
		dir:     dir,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// Dir returns the filesystem directory backing the store.
func (s *Store) Dir() string {
	return s.dir
}

// SaveUpload persists one multipart file and returns its public URL.
func (s *Store) SaveUpload(fh *multipart.FileHeader) (string, error) {
	if fh.Size > MaxFileSize {
		return "", ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExtensions[ext] {
		return "", ErrUnsupportedFileType
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := storedName(fh.Filename)
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, io.LimitReader(src, MaxFileSize+1)); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	return s.baseURL + PublicPath + "/" + name, nil
}

// SaveUploads persists up to MaxFilesPerJob files, returning their URLs.
func (s *Store) SaveUploads(files []*multipart.FileHeader) ([]string, error) {
	if len(files) > MaxFilesPerJob {
		return nil, ErrTooManyFiles
	}

	urls := make([]string, 0, len(files))
	for _, fh := range files {
		url, err := s.SaveUpload(fh)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}

	return urls, nil
}

// Remove deletes the stored file behind a public URL.
// Unknown URLs are ignored so removal stays best-effort.
func (s *Store) Remove(url string) error {
	idx := strings.Index(url, PublicPath+"/")
	if idx < 0 {
		return nil
	}

	// path.Base strips any traversal components from the URL tail.
	name := path.Base(url[idx+len(PublicPath)+1:])
	if name == "" || name == "." || name == "/" {
		return nil
	}

	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove file: %w", err)
	}

	return nil
}

// storedName builds a collision-resistant filename preserving the
// original extension, with whitespace replaced.
func storedName(original string) string {
	base := strings.ReplaceAll(filepath.Base(original), " ", "_")
	return fmt.Sprintf("%d-%s", time.Now().UnixNano(), base)
}
