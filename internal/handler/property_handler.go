package handler

import (
	"context"
	"mime/multipart"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"propdastak/internal/domain"
	"propdastak/internal/middleware"
	"propdastak/internal/service"
	apperrors "propdastak/pkg/errors"
	"propdastak/pkg/logger"
)

// maxUploadMemory bounds how much of a multipart upload is buffered in
// memory before spilling to temp files.
const maxUploadMemory = 32 << 20

const (
	maxImagesPerUpload = 10
	maxVideosPerUpload = 1
)

// PropertyHandler handles listing CRUD, search, bookmarks and rankings.
type PropertyHandler struct {
	properties *service.PropertyService
	tracking   *service.TrackingService
	media      *service.MediaService
	logger     *logger.Logger
}

// NewPropertyHandler creates a new property handler
func NewPropertyHandler(properties *service.PropertyService, tracking *service.TrackingService, media *service.MediaService, logger *logger.Logger) *PropertyHandler {
	return &PropertyHandler{
		properties: properties,
		tracking:   tracking,
		media:      media,
		logger:     logger,
	}
}

// Create handles POST /api/properties
func (h *PropertyHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, err := callerClaims(r.Context())
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	var property domain.Property
	if err := decodeJSON(r, &property); err != nil {
		writeError(w, err, h.logger)
		return
	}

	if msg := validateProperty(&property); msg != "" {
		writeError(w, apperrors.NewValidationError(msg, nil), h.logger)
		return
	}

	created, err := h.properties.Create(r.Context(), &property, claims.UserUUID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, created, h.logger)
}

// GetByID handles GET /api/properties/{id}
func (h *PropertyHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := propertyID(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	property, err := h.properties.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, property, h.logger)
}

// ListMine handles GET /api/properties
func (h *PropertyHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	claims, err := callerClaims(r.Context())
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	properties, err := h.properties.ListByCreator(r.Context(), claims.UserUUID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, properties, h.logger)
}

// SearchByCity handles GET /api/properties/search/city/{city}
func (h *PropertyHandler) SearchByCity(w http.ResponseWriter, r *http.Request) {
	city := strings.TrimSpace(chi.URLParam(r, "city"))
	if city == "" {
		writeError(w, apperrors.NewValidationError("City is required", nil), h.logger)
		return
	}

	properties, err := h.properties.SearchByCity(r.Context(), city)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, properties, h.logger)
}

// SearchByType handles GET /api/properties/search/type/{type}
func (h *PropertyHandler) SearchByType(w http.ResponseWriter, r *http.Request) {
	propertyType := strings.TrimSpace(chi.URLParam(r, "type"))
	if propertyType == "" {
		writeError(w, apperrors.NewValidationError("Property type is required", nil), h.logger)
		return
	}

	properties, err := h.properties.SearchByType(r.Context(), propertyType)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, properties, h.logger)
}

// MostClicked handles GET /api/properties/most-clicked?limit=N.
//
// limit defaults to 1 and is floored at 1. With the default limit the
// response is a single ranking object, or a message body when nothing has
// been viewed yet; larger limits always return an array.
func (h *PropertyHandler) MostClicked(w http.ResponseWriter, r *http.Request) {
	limit := 1
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}
	if limit < 1 {
		limit = 1
	}

	ranks, err := h.tracking.MostClicked(r.Context(), limit)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	if limit == 1 {
		if len(ranks) == 0 {
			writeJSON(w, http.StatusOK, map[string]string{"message": "No property found"}, h.logger)
			return
		}
		writeJSON(w, http.StatusOK, ranks[0], h.logger)
		return
	}
	writeJSON(w, http.StatusOK, ranks, h.logger)
}

// Update handles PUT /api/properties/{id}
func (h *PropertyHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := propertyID(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	var upd domain.PropertyUpdate
	if err := decodeJSON(r, &upd); err != nil {
		writeError(w, err, h.logger)
		return
	}

	property, err := h.properties.Update(r.Context(), id, &upd)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, property, h.logger)
}

// Delete handles DELETE /api/properties/{id}
func (h *PropertyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := propertyID(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	if err := h.properties.Delete(r.Context(), id); err != nil {
		writeError(w, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UploadMedia handles POST /api/properties/{id}/media. It accepts up to ten
// files under the "images" field and one under "video", stores them through
// the media service and registers their URLs on the listing.
func (h *PropertyHandler) UploadMedia(w http.ResponseWriter, r *http.Request) {
	id, err := propertyID(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeError(w, apperrors.NewValidationError("Invalid multipart form", map[string]interface{}{"error": err.Error()}), h.logger)
		return
	}

	images := r.MultipartForm.File["images"]
	videos := r.MultipartForm.File["video"]
	if len(images) == 0 && len(videos) == 0 {
		writeError(w, apperrors.NewValidationError("No media files provided", nil), h.logger)
		return
	}
	if len(images) > maxImagesPerUpload {
		writeError(w, apperrors.NewValidationError("At most 10 images per upload", nil), h.logger)
		return
	}
	if len(videos) > maxVideosPerUpload {
		writeError(w, apperrors.NewValidationError("At most 1 video per upload", nil), h.logger)
		return
	}

	items := make([]domain.MediaItem, 0, len(images)+len(videos))
	store := func(fh *multipart.FileHeader, mediaType domain.MediaType) error {
		f, err := fh.Open()
		if err != nil {
			return apperrors.NewInternalError("Failed to read upload", err)
		}
		defer f.Close()

		name, err := h.media.SaveUpload(f, fh.Filename)
		if err != nil {
			return apperrors.NewInternalError("Failed to store upload", err)
		}
		items = append(items, domain.MediaItem{
			MediaType: mediaType,
			URL:       path.Join("/uploads", name),
		})
		return nil
	}

	for _, fh := range images {
		if err := store(fh, domain.MediaTypeImage); err != nil {
			writeError(w, err, h.logger)
			return
		}
	}
	for _, fh := range videos {
		if err := store(fh, domain.MediaTypeVideo); err != nil {
			writeError(w, err, h.logger)
			return
		}
	}

	if err := h.properties.AddMedia(r.Context(), id, items); err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, items, h.logger)
}

// Save handles POST /api/properties/user/save
func (h *PropertyHandler) Save(w http.ResponseWriter, r *http.Request) {
	claims, err := callerClaims(r.Context())
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	userID, err := claims.UserID()
	if err != nil {
		writeError(w, apperrors.NewAuthenticationError("Invalid token subject"), h.logger)
		return
	}

	var req struct {
		PropertyID int64 `json:"propertyId"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}
	if req.PropertyID <= 0 {
		writeError(w, apperrors.NewValidationError("propertyId is required", nil), h.logger)
		return
	}

	if err := h.properties.Save(r.Context(), userID, req.PropertyID); err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Property saved"}, h.logger)
}

// Saved handles GET /api/properties/user/save
func (h *PropertyHandler) Saved(w http.ResponseWriter, r *http.Request) {
	claims, err := callerClaims(r.Context())
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	userID, err := claims.UserID()
	if err != nil {
		writeError(w, apperrors.NewAuthenticationError("Invalid token subject"), h.logger)
		return
	}

	saved, err := h.properties.Saved(r.Context(), userID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, saved, h.logger)
}

// validateProperty checks the required fields of a new listing.
func validateProperty(p *domain.Property) string {
	switch p.PropertyFor {
	case domain.PropertyForSell, domain.PropertyForLeaseRent, domain.PropertyForPGHotel:
	default:
		return "property_for must be one of: sell, lease/rent, pg/hotel"
	}
	if strings.TrimSpace(p.PropertyType) == "" {
		return "property_type is required"
	}
	if strings.TrimSpace(p.City) == "" {
		return "city is required"
	}
	if strings.TrimSpace(p.Locality) == "" {
		return "locality is required"
	}
	switch p.AvailabilityStatus {
	case domain.AvailabilityReadyToMove, domain.AvailabilityUnderConstruction:
	default:
		return "availability_status must be one of: ready_to_move, under_construction"
	}
	return ""
}

func propertyID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("Invalid property id", nil)
	}
	return id, nil
}

// callerClaims extracts the verified token claims placed by the auth
// middleware.
func callerClaims(ctx context.Context) (*service.TokenClaims, error) {
	claims, ok := middleware.ClaimsFromContext(ctx)
	if !ok {
		return nil, apperrors.NewAuthenticationError("Authentication required")
	}
	return claims, nil
}

// RegisterRoutes registers property routes with the router. Lookups and
// rankings are public; mutations and bookmarks require authentication.
func (h *PropertyHandler) RegisterRoutes(r chi.Router, auth func(http.Handler) http.Handler) {
	r.Route("/properties", func(r chi.Router) {
		r.Get("/most-clicked", h.MostClicked)
		r.Get("/search/city/{city}", h.SearchByCity)
		r.Get("/search/type/{type}", h.SearchByType)
		r.Get("/{id:[0-9]+}", h.GetByID)

		r.Group(func(r chi.Router) {
			r.Use(auth)
			r.Post("/", h.Create)
			r.Get("/", h.ListMine)
			r.Put("/{id:[0-9]+}", h.Update)
			r.Delete("/{id:[0-9]+}", h.Delete)
			r.Post("/{id:[0-9]+}/media", h.UploadMedia)
			r.Post("/user/save", h.Save)
			r.Get("/user/save", h.Saved)
		})
	})
}
