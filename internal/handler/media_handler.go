package handler

import (
	"io"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"

	"propdastak/internal/service"
	apperrors "propdastak/pkg/errors"
	"propdastak/pkg/logger"
)

// MediaHandler streams stored listing media.
type MediaHandler struct {
	media  *service.MediaService
	logger *logger.Logger
}

// NewMediaHandler creates a new media handler
func NewMediaHandler(media *service.MediaService, logger *logger.Logger) *MediaHandler {
	return &MediaHandler{
		media:  media,
		logger: logger,
	}
}

// Serve handles GET /api/media?fileName=...&mediaType=image|video.
// Images are written whole; videos go through http.ServeContent so Range
// requests seek without transferring the full file.
func (h *MediaHandler) Serve(w http.ResponseWriter, r *http.Request) {
	fileName := r.URL.Query().Get("fileName")
	mediaType := r.URL.Query().Get("mediaType")
	if mediaType != "image" && mediaType != "video" {
		writeError(w, apperrors.NewValidationError("mediaType must be one of: image, video", nil), h.logger)
		return
	}

	fullPath, err := h.media.ResolvePath(fileName)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	f, info, err := h.media.Open(fullPath)
	if err != nil {
		writeError(w, apperrors.NewInternalError("Failed to open media", err), h.logger)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", h.media.MimeType(fullPath))

	if mediaType == "video" {
		http.ServeContent(w, r, filepath.Base(fullPath), info.ModTime(), f)
		return
	}

	w.Header().Set("Content-Length", strconv.FormatInt(info.Size(), 10))
	if _, err := io.Copy(w, f); err != nil {
		h.logger.WithError(err).Debug("Media transfer aborted")
	}
}

// RegisterRoutes registers media routes with the router.
func (h *MediaHandler) RegisterRoutes(r chi.Router) {
	r.Get("/media", h.Serve)
}
