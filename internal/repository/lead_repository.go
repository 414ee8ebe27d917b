package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"propdastak/internal/domain"
	"propdastak/pkg/database"
)

// leadRepository stores captured service enquiries with PostgreSQL
type leadRepository struct {
	db *database.PostgresDB
}

// NewLeadRepository creates a new lead repository
func NewLeadRepository(db *database.PostgresDB) LeadRepository {
	return &leadRepository{
		db: db,
	}
}

// Create inserts a lead. Service-specific extras beyond city/pincode/phone
// are stored as a JSON column.
func (r *leadRepository) Create(ctx context.Context, lead *domain.Lead) error {
	var extra []byte
	if len(lead.Extra) > 0 {
		var err error
		extra, err = json.Marshal(lead.Extra)
		if err != nil {
			return fmt.Errorf("failed to marshal lead extra: %w", err)
		}
	}

	query := `
		INSERT INTO leads (service_type, city, pincode, phone, extra)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		lead.ServiceType,
		lead.City,
		lead.Pincode,
		lead.Phone,
		extra,
	).Scan(&lead.ID, &lead.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create lead: %w", err)
	}

	return nil
}
