package service

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "propdastak/pkg/errors"
)

func newTestMediaService(t *testing.T) (*MediaService, string) {
	t.Helper()
	dir := t.TempDir()
	svc, err := NewMediaService(dir, newTestLogger(t))
	require.NoError(t, err)
	return svc, dir
}

func TestMediaService_ResolvePath(t *testing.T) {
	svc, dir := newTestMediaService(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "photo.jpg"), []byte("jpeg"), 0o644))

	full, err := svc.ResolvePath("photo.jpg")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "photo.jpg"), full)
}

func TestMediaService_ResolvePathRejectsTraversal(t *testing.T) {
	svc, _ := newTestMediaService(t)

	tests := []struct {
		name     string
		fileName string
	}{
		{"parent escape", "../../etc/passwd"},
		{"absolute path", "/etc/passwd"},
		{"null byte", "photo\x00.jpg"},
		{"missing file", "nope.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ResolvePath(tt.fileName)
			require.Error(t, err)

			var appErr *apperrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, apperrors.ErrorTypeNotFound, appErr.Type)
		})
	}
}

func TestMediaService_ResolvePathRequiresFileName(t *testing.T) {
	svc, _ := newTestMediaService(t)

	_, err := svc.ResolvePath("")
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
}

func TestMediaService_MimeType(t *testing.T) {
	svc, _ := newTestMediaService(t)

	tests := []struct {
		fileName string
		want     string
	}{
		{"clip.mkv", "video/x-matroska"},
		{"clip.webm", "video/webm"},
		{"clip.mov", "video/quicktime"},
		{"photo.webp", "image/webp"},
		{"photo.png", "image/png"},
		{"mystery", "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.fileName, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.MimeType(tt.fileName))
		})
	}
}

func TestMediaService_SaveUpload(t *testing.T) {
	svc, dir := newTestMediaService(t)

	name, err := svc.SaveUpload(strings.NewReader("content"), "Holiday Photo.JPG")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, ".jpg"), "stored name keeps a lowercase extension: %s", name)
	assert.NotContains(t, name, " ")

	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))
}

func TestMediaService_SaveUploadUniqueNames(t *testing.T) {
	svc, _ := newTestMediaService(t)

	a, err := svc.SaveUpload(strings.NewReader("a"), "same.png")
	require.NoError(t, err)
	b, err := svc.SaveUpload(strings.NewReader("b"), "same.png")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}
