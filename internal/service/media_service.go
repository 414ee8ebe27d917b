package service

import (
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	apperrors "propdastak/pkg/errors"
	"propdastak/pkg/logger"
)

// extraMimeTypes covers extensions the platform mime database may miss.
var extraMimeTypes = map[string]string{
	".mkv":  "video/x-matroska",
	".webm": "video/webm",
	".mov":  "video/quicktime",
	".webp": "image/webp",
}

// MediaService serves and stores listing media under a single uploads root.
type MediaService struct {
	root string
	log  *logger.Logger
}

// NewMediaService creates a media service rooted at dir, creating it if needed.
func NewMediaService(dir string, log *logger.Logger) (*MediaService, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve uploads dir: %w", err)
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads dir: %w", err)
	}
	return &MediaService{root: root, log: log}, nil
}

// ResolvePath maps a requested file name to an absolute path inside the
// uploads root. Traversal outside the root resolves to not-found, never to a
// path on disk.
func (s *MediaService) ResolvePath(fileName string) (string, error) {
	if fileName == "" {
		return "", apperrors.NewValidationError("fileName is required", nil)
	}

	cleaned := filepath.Clean(strings.ReplaceAll(fileName, "\x00", ""))
	fullPath := filepath.Join(s.root, cleaned)
	if fullPath != s.root && !strings.HasPrefix(fullPath, s.root+string(filepath.Separator)) {
		return "", apperrors.NewNotFoundError("File not found")
	}

	info, err := os.Stat(fullPath)
	if err != nil || info.IsDir() {
		return "", apperrors.NewNotFoundError("File not found")
	}

	return fullPath, nil
}

// MimeType returns the content type for a file name by extension.
func (s *MediaService) MimeType(fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	if t, ok := extraMimeTypes[ext]; ok {
		return t
	}
	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}
	return "application/octet-stream"
}

// SaveUpload stores an uploaded file under a collision-free name derived
// from the original extension and returns the stored file name.
func (s *MediaService) SaveUpload(src io.Reader, originalName string) (string, error) {
	name := uuid.NewString() + strings.ToLower(filepath.Ext(originalName))
	dest := filepath.Join(s.root, name)

	f, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, src); err != nil {
		os.Remove(dest)
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}

	s.log.WithField("file", name).Debug("Upload stored")
	return name, nil
}

// Open opens a previously resolved path for streaming.
func (s *MediaService) Open(fullPath string) (*os.File, os.FileInfo, error) {
	f, err := os.Open(fullPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open media file: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("failed to stat media file: %w", err)
	}
	return f, info, nil
}
