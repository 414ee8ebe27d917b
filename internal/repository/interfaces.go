package repository

import (
	"context"

	"propdastak/internal/domain"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	// Create inserts a new user and fills in its generated fields
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by numeric ID
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByUUID retrieves a user by its public UUID
	GetByUUID(ctx context.Context, uuid string) (*domain.User, error)

	// GetByEmail retrieves a user, including its password hash, by email
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindByEmailOrPhone returns the first user matching either value, or nil
	FindByEmailOrPhone(ctx context.Context, email, phone string) (*domain.User, error)

	// List returns all users, newest first
	List(ctx context.Context) ([]*domain.User, error)

	// Update applies the non-nil fields of upd and returns the updated user
	Update(ctx context.Context, id int64, upd *domain.UserUpdate) (*domain.User, error)

	// Delete removes a user by ID
	Delete(ctx context.Context, id int64) error
}

// PropertyRepository defines the interface for property data operations
type PropertyRepository interface {
	// Create inserts a property with its optional details and parking rows
	// in a single transaction
	Create(ctx context.Context, property *domain.Property) error

	// GetByID retrieves a property joined with its details and parking
	GetByID(ctx context.Context, id int64) (*domain.Property, error)

	// ListByCreator returns the properties created by the given user
	ListByCreator(ctx context.Context, userUUID string) ([]*domain.Property, error)

	// ListByCity returns properties in a city (case-insensitive)
	ListByCity(ctx context.Context, city string) ([]*domain.Property, error)

	// ListByType returns properties of a type (case-insensitive)
	ListByType(ctx context.Context, propertyType string) ([]*domain.Property, error)

	// Update applies the non-nil fields of upd and upserts details/parking
	Update(ctx context.Context, id int64, upd *domain.PropertyUpdate) (*domain.Property, error)

	// Delete removes a property by ID
	Delete(ctx context.Context, id int64) error

	// AddMedia inserts media rows for a property in a single transaction
	AddMedia(ctx context.Context, propertyID int64, items []domain.MediaItem) error

	// SaveForUser bookmarks a property for a user; saving twice is a no-op
	SaveForUser(ctx context.Context, userID, propertyID int64) error

	// SavedByUser returns the user's bookmarked properties
	SavedByUser(ctx context.Context, userID int64) ([]domain.SavedProperty, error)
}

// LeadRepository defines the interface for lead capture
type LeadRepository interface {
	// Create inserts a lead and returns its generated ID
	Create(ctx context.Context, lead *domain.Lead) error
}

// ViewEventRepository defines the interface for persisted view events.
// Events are append-only; this subsystem never updates or deletes them.
type ViewEventRepository interface {
	// Insert writes exactly one view event row
	Insert(ctx context.Context, event *domain.ViewEvent) error

	// MostClicked ranks properties by view-event count, descending, ties
	// broken by property id ascending, enriched with listing summary data
	MostClicked(ctx context.Context, limit int) ([]domain.ClickRank, error)
}
