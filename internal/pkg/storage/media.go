package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const MaxFileSize = 10 * 1024 * 1024 // 10 MB

var (
	ErrUnsupportedType = errors.New("upload a valid image")
	ErrFileTooLarge    = errors.New("file exceeds maximum allowed size")
	ErrEmptyFile       = errors.New("file is empty")
)

var allowedExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Media keeps uploaded images on local disk under root and serves them below baseURL.
type Media struct {
	root    string
	baseURL string
}

func NewMedia(root, baseURL string) *Media {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &Media{root: root, baseURL: baseURL}
}

func (m *Media) Root() string    { return m.root }
func (m *Media) BaseURL() string { return m.baseURL }

// Save writes the file into folder and returns its name relative to the media root.
func (m *Media) Save(folder string, fh *multipart.FileHeader) (string, error) {
	if fh.Size == 0 {
		return "", ErrEmptyFile
	}
	if fh.Size > MaxFileSize {
		return "", ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExt[ext] {
		return "", ErrUnsupportedType
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	absDir := filepath.Join(m.root, folder)
	if err := os.MkdirAll(absDir, 0o755); err != nil {
		return "", fmt.Errorf("create media directory: %w", err)
	}

	// uuid-префикс исключает коллизии имён
	filename := fmt.Sprintf("%s_%s%s", uuid.NewString(), sanitizeName(fh.Filename), ext)
	absPath := filepath.Join(absDir, filename)

	dst, err := os.Create(absPath)
	if err != nil {
		return "", fmt.Errorf("create media file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(absPath)
		return "", fmt.Errorf("write media file: %w", err)
	}

	return path.Join(folder, filename), nil
}

// Remove deletes a previously saved file. Missing files are ignored.
func (m *Media) Remove(name string) {
	if name == "" {
		return
	}
	_ = os.Remove(filepath.Join(m.root, filepath.FromSlash(name)))
}

// URL returns the public path of a stored file, or nil when there is none.
func (m *Media) URL(name *string) *string {
	if name == nil || *name == "" {
		return nil
	}
	u := m.baseURL + *name
	return &u
}

func sanitizeName(name string) string {
	name = filepath.Base(name)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return '_'
	}, name)
	if len(name) > 40 {
		name = name[:40]
	}
	if name == "" {
		return "file"
	}
	return name
}

// FieldMessage returns the user facing message for an upload rejection.
// ok is false for I/O failures, which are not the client's fault.
func FieldMessage(err error) (msg string, ok bool) {
	switch {
	case errors.Is(err, ErrUnsupportedType):
		return "Upload a valid image. The file you uploaded was either not an image or a corrupted image.", true
	case errors.Is(err, ErrFileTooLarge):
		return "File exceeds maximum allowed size of 10 MB.", true
	case errors.Is(err, ErrEmptyFile):
		return "The submitted file is empty.", true
	default:
		return "", false
	}
}
