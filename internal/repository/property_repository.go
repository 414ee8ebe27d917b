package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"propdastak/internal/domain"
	"propdastak/pkg/database"
)

// propertyJoinQuery selects a property row together with its optional
// details and parking rows.
const propertyJoinQuery = `
	SELECT
		p.id, p.title, p.property_for, p.property_type, p.city, p.locality,
		p.sub_locality, p.apartment, p.property_size, p.availability_status,
		p.property_age, p.ownership, p.price, p.price_per_sqft, p.brokerage_charge,
		p.description, p.property_features, p.property_amenities, p.created_by,
		p.created_at, p.updated_at,
		pd.rooms, pd.bathrooms, pd.balconies, pd.other_rooms, pd.floors,
		pk.parking_count, pk.parking_type
	FROM properties p
	LEFT JOIN property_details pd ON p.id = pd.property_id
	LEFT JOIN parking pk ON p.id = pk.property_id
`

// propertyRepository handles property listings with PostgreSQL
type propertyRepository struct {
	db *database.PostgresDB
}

// NewPropertyRepository creates a new property repository
func NewPropertyRepository(db *database.PostgresDB) PropertyRepository {
	return &propertyRepository{
		db: db,
	}
}

// Create inserts the property and its optional details/parking rows in one
// transaction, so a partial listing is never visible.
func (r *propertyRepository) Create(ctx context.Context, property *domain.Property) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO properties (
			title, property_for, property_type, city, locality, sub_locality,
			apartment, property_size, availability_status, property_age, ownership,
			price, price_per_sqft, brokerage_charge, description,
			property_features, property_amenities, created_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING id, created_at, updated_at
	`

	err = tx.QueryRow(ctx, query,
		property.Title,
		property.PropertyFor,
		property.PropertyType,
		property.City,
		property.Locality,
		property.SubLocality,
		property.Apartment,
		property.PropertySize,
		property.AvailabilityStatus,
		property.PropertyAge,
		property.Ownership,
		property.Price,
		property.PricePerSqft,
		property.BrokerageCharge,
		property.Description,
		property.PropertyFeatures,
		property.PropertyAmenities,
		property.CreatedBy,
	).Scan(&property.ID, &property.CreatedAt, &property.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert property: %w", err)
	}

	if property.Details != nil {
		property.Details.PropertyID = property.ID
		_, err = tx.Exec(ctx, `
			INSERT INTO property_details (property_id, rooms, bathrooms, balconies, other_rooms, floors)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			property.ID,
			property.Details.Rooms,
			property.Details.Bathrooms,
			property.Details.Balconies,
			property.Details.OtherRooms,
			property.Details.Floors,
		)
		if err != nil {
			return fmt.Errorf("failed to insert property details: %w", err)
		}
	}

	if property.Parking != nil {
		property.Parking.PropertyID = property.ID
		_, err = tx.Exec(ctx, `
			INSERT INTO parking (property_id, parking_count, parking_type)
			VALUES ($1, $2, $3)`,
			property.ID,
			property.Parking.ParkingCount,
			property.Parking.ParkingType,
		)
		if err != nil {
			return fmt.Errorf("failed to insert parking: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit property: %w", err)
	}
	return nil
}

// scanJoinedProperty scans one row of propertyJoinQuery.
func scanJoinedProperty(row pgx.Row) (*domain.Property, error) {
	p := &domain.Property{}
	var (
		rooms, bathrooms, balconies, floors *int
		otherRooms                          *string
		parkingCount                        *int
		parkingType                         *string
	)

	err := row.Scan(
		&p.ID, &p.Title, &p.PropertyFor, &p.PropertyType, &p.City, &p.Locality,
		&p.SubLocality, &p.Apartment, &p.PropertySize, &p.AvailabilityStatus,
		&p.PropertyAge, &p.Ownership, &p.Price, &p.PricePerSqft, &p.BrokerageCharge,
		&p.Description, &p.PropertyFeatures, &p.PropertyAmenities, &p.CreatedBy,
		&p.CreatedAt, &p.UpdatedAt,
		&rooms, &bathrooms, &balconies, &otherRooms, &floors,
		&parkingCount, &parkingType,
	)
	if err != nil {
		return nil, err
	}

	if rooms != nil || bathrooms != nil || balconies != nil || otherRooms != nil || floors != nil {
		p.Details = &domain.PropertyDetails{
			PropertyID: p.ID,
			Rooms:      rooms,
			Bathrooms:  bathrooms,
			Balconies:  balconies,
			OtherRooms: otherRooms,
			Floors:     floors,
		}
	}
	if parkingCount != nil || parkingType != nil {
		p.Parking = &domain.Parking{
			PropertyID:   p.ID,
			ParkingCount: parkingCount,
		}
		if parkingType != nil {
			p.Parking.ParkingType = domain.ParkingType(*parkingType)
		}
	}
	return p, nil
}

func (r *propertyRepository) list(ctx context.Context, query string, args ...interface{}) ([]*domain.Property, error) {
	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query properties: %w", err)
	}
	defer rows.Close()

	var properties []*domain.Property
	for rows.Next() {
		p, err := scanJoinedProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan property row: %w", err)
		}
		properties = append(properties, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading property rows: %w", err)
	}

	return properties, nil
}

// GetByID retrieves one property with details and parking. Returns nil when
// not found.
func (r *propertyRepository) GetByID(ctx context.Context, id int64) (*domain.Property, error) {
	row := r.db.Pool.QueryRow(ctx, propertyJoinQuery+" WHERE p.id = $1", id)
	p, err := scanJoinedProperty(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get property: %w", err)
	}
	return p, nil
}

// ListByCreator returns the properties created by the given user.
func (r *propertyRepository) ListByCreator(ctx context.Context, userUUID string) ([]*domain.Property, error) {
	return r.list(ctx, propertyJoinQuery+" WHERE p.created_by = $1 ORDER BY p.created_at DESC", userUUID)
}

// ListByCity returns properties in a city, case-insensitive.
func (r *propertyRepository) ListByCity(ctx context.Context, city string) ([]*domain.Property, error) {
	return r.list(ctx, propertyJoinQuery+" WHERE LOWER(p.city) = LOWER($1) ORDER BY p.created_at DESC", city)
}

// ListByType returns properties of a type, case-insensitive.
func (r *propertyRepository) ListByType(ctx context.Context, propertyType string) ([]*domain.Property, error) {
	return r.list(ctx, propertyJoinQuery+" WHERE LOWER(p.property_type) = LOWER($1) ORDER BY p.created_at DESC", propertyType)
}

// Update patches the non-nil scalar fields and upserts details/parking in a
// single transaction, then returns the fresh joined row.
func (r *propertyRepository) Update(ctx context.Context, id int64, upd *domain.PropertyUpdate) (*domain.Property, error) {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	builder := sq.Update("properties").PlaceholderFormat(sq.Dollar)
	touched := false
	set := func(column string, value interface{}) {
		builder = builder.Set(column, value)
		touched = true
	}

	if upd.Title != nil {
		set("title", *upd.Title)
	}
	if upd.PropertyFor != nil {
		set("property_for", *upd.PropertyFor)
	}
	if upd.PropertyType != nil {
		set("property_type", *upd.PropertyType)
	}
	if upd.City != nil {
		set("city", *upd.City)
	}
	if upd.Locality != nil {
		set("locality", *upd.Locality)
	}
	if upd.SubLocality != nil {
		set("sub_locality", *upd.SubLocality)
	}
	if upd.Apartment != nil {
		set("apartment", *upd.Apartment)
	}
	if upd.PropertySize != nil {
		set("property_size", upd.PropertySize)
	}
	if upd.AvailabilityStatus != nil {
		set("availability_status", *upd.AvailabilityStatus)
	}
	if upd.PropertyAge != nil {
		set("property_age", *upd.PropertyAge)
	}
	if upd.Ownership != nil {
		set("ownership", *upd.Ownership)
	}
	if upd.Price != nil {
		set("price", *upd.Price)
	}
	if upd.PricePerSqft != nil {
		set("price_per_sqft", *upd.PricePerSqft)
	}
	if upd.BrokerageCharge != nil {
		set("brokerage_charge", *upd.BrokerageCharge)
	}
	if upd.Description != nil {
		set("description", *upd.Description)
	}
	if upd.PropertyFeatures != nil {
		set("property_features", upd.PropertyFeatures)
	}
	if upd.PropertyAmenities != nil {
		set("property_amenities", upd.PropertyAmenities)
	}

	if touched {
		builder = builder.
			Set("updated_at", sq.Expr("CURRENT_TIMESTAMP")).
			Where(sq.Eq{"id": id})

		query, args, err := builder.ToSql()
		if err != nil {
			return nil, fmt.Errorf("failed to build property update query: %w", err)
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return nil, fmt.Errorf("failed to update property: %w", err)
		}
	}

	if upd.Details != nil {
		_, err = tx.Exec(ctx, `
			INSERT INTO property_details (property_id, rooms, bathrooms, balconies, other_rooms, floors)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (property_id) DO UPDATE SET
				rooms = EXCLUDED.rooms,
				bathrooms = EXCLUDED.bathrooms,
				balconies = EXCLUDED.balconies,
				other_rooms = EXCLUDED.other_rooms,
				floors = EXCLUDED.floors`,
			id,
			upd.Details.Rooms,
			upd.Details.Bathrooms,
			upd.Details.Balconies,
			upd.Details.OtherRooms,
			upd.Details.Floors,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to upsert property details: %w", err)
		}
	}

	if upd.Parking != nil {
		_, err = tx.Exec(ctx, `
			INSERT INTO parking (property_id, parking_count, parking_type)
			VALUES ($1, $2, $3)
			ON CONFLICT (property_id) DO UPDATE SET
				parking_count = EXCLUDED.parking_count,
				parking_type = EXCLUDED.parking_type`,
			id,
			upd.Parking.ParkingCount,
			upd.Parking.ParkingType,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to upsert parking: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit property update: %w", err)
	}

	return r.GetByID(ctx, id)
}

// Delete removes a property; detail, parking, media and view rows cascade.
func (r *propertyRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.Pool.Exec(ctx, "DELETE FROM properties WHERE id = $1", id); err != nil {
		return fmt.Errorf("failed to delete property: %w", err)
	}
	return nil
}

// AddMedia inserts the given media rows in one transaction.
func (r *propertyRepository) AddMedia(ctx context.Context, propertyID int64, items []domain.MediaItem) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, item := range items {
		_, err := tx.Exec(ctx,
			"INSERT INTO property_media (property_id, media_type, url) VALUES ($1, $2, $3)",
			propertyID, item.MediaType, item.URL,
		)
		if err != nil {
			return fmt.Errorf("failed to insert property media: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit property media: %w", err)
	}
	return nil
}

// SaveForUser bookmarks a property. The insert is idempotent so two
// concurrent saves of the same pair cannot race a prior existence check.
func (r *propertyRepository) SaveForUser(ctx context.Context, userID, propertyID int64) error {
	_, err := r.db.Pool.Exec(ctx, `
		INSERT INTO saved_properties (user_id, property_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, property_id) DO NOTHING`,
		userID, propertyID,
	)
	if err != nil {
		return fmt.Errorf("failed to save property: %w", err)
	}
	return nil
}

// SavedByUser returns the user's bookmarked properties, newest first.
func (r *propertyRepository) SavedByUser(ctx context.Context, userID int64) ([]domain.SavedProperty, error) {
	rows, err := r.db.Pool.Query(ctx,
		"SELECT user_id, property_id FROM saved_properties WHERE user_id = $1 ORDER BY created_at DESC",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query saved properties: %w", err)
	}
	defer rows.Close()

	var saved []domain.SavedProperty
	for rows.Next() {
		var sp domain.SavedProperty
		if err := rows.Scan(&sp.UserID, &sp.PropertyID); err != nil {
			return nil, fmt.Errorf("failed to scan saved property row: %w", err)
		}
		saved = append(saved, sp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading saved property rows: %w", err)
	}

	return saved, nil
}
