package service

import (
	"context"

	"propdastak/internal/domain"
	"propdastak/internal/repository"
	apperrors "propdastak/pkg/errors"
	"propdastak/pkg/logger"
)

// PropertyService handles property listings and bookmarks.
type PropertyService struct {
	properties repository.PropertyRepository
	log        *logger.Logger
}

// NewPropertyService creates a new property service
func NewPropertyService(properties repository.PropertyRepository, log *logger.Logger) *PropertyService {
	return &PropertyService{
		properties: properties,
		log:        log,
	}
}

// Create inserts a listing on behalf of the creator.
func (s *PropertyService) Create(ctx context.Context, property *domain.Property, creatorUUID string) (*domain.Property, error) {
	property.CreatedBy = creatorUUID
	if err := s.properties.Create(ctx, property); err != nil {
		return nil, apperrors.NewInternalError("Failed to create property", err)
	}

	s.log.WithFields(map[string]interface{}{
		"property_id": property.ID,
		"created_by":  creatorUUID,
	}).Info("Property created")

	return property, nil
}

// GetByID returns one listing.
func (s *PropertyService) GetByID(ctx context.Context, id int64) (*domain.Property, error) {
	property, err := s.properties.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to get property", err)
	}
	if property == nil {
		return nil, apperrors.NewNotFoundError("Property not found")
	}
	return property, nil
}

// ListByCreator returns the caller's listings.
func (s *PropertyService) ListByCreator(ctx context.Context, creatorUUID string) ([]*domain.Property, error) {
	properties, err := s.properties.ListByCreator(ctx, creatorUUID)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to list properties", err)
	}
	return properties, nil
}

// SearchByCity returns listings in a city.
func (s *PropertyService) SearchByCity(ctx context.Context, city string) ([]*domain.Property, error) {
	properties, err := s.properties.ListByCity(ctx, city)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to search properties by city", err)
	}
	return properties, nil
}

// SearchByType returns listings of a property type.
func (s *PropertyService) SearchByType(ctx context.Context, propertyType string) ([]*domain.Property, error) {
	properties, err := s.properties.ListByType(ctx, propertyType)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to search properties by type", err)
	}
	return properties, nil
}

// Update patches a listing.
func (s *PropertyService) Update(ctx context.Context, id int64, upd *domain.PropertyUpdate) (*domain.Property, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}

	property, err := s.properties.Update(ctx, id, upd)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to update property", err)
	}
	if property == nil {
		return nil, apperrors.NewNotFoundError("Property not found")
	}
	return property, nil
}

// Delete removes a listing.
func (s *PropertyService) Delete(ctx context.Context, id int64) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.properties.Delete(ctx, id); err != nil {
		return apperrors.NewInternalError("Failed to delete property", err)
	}
	return nil
}

// AddMedia registers media rows for a listing.
func (s *PropertyService) AddMedia(ctx context.Context, propertyID int64, items []domain.MediaItem) error {
	if _, err := s.GetByID(ctx, propertyID); err != nil {
		return err
	}
	if err := s.properties.AddMedia(ctx, propertyID, items); err != nil {
		return apperrors.NewInternalError("Failed to save media", err)
	}
	return nil
}

// Save bookmarks a listing for a user. Saving twice is a no-op.
func (s *PropertyService) Save(ctx context.Context, userID, propertyID int64) error {
	if _, err := s.GetByID(ctx, propertyID); err != nil {
		return err
	}
	if err := s.properties.SaveForUser(ctx, userID, propertyID); err != nil {
		return apperrors.NewInternalError("Failed to save property", err)
	}
	return nil
}

// Saved returns the user's bookmarked listings.
func (s *PropertyService) Saved(ctx context.Context, userID int64) ([]domain.SavedProperty, error) {
	saved, err := s.properties.SavedByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to list saved properties", err)
	}
	return saved, nil
}
