package repository

import (
	"context"
	"fmt"

	"propdastak/internal/domain"
	"propdastak/pkg/database"
)

// viewEventRepository persists completed property views with PostgreSQL
type viewEventRepository struct {
	db *database.PostgresDB
}

// NewViewEventRepository creates a new view event repository
func NewViewEventRepository(db *database.PostgresDB) ViewEventRepository {
	return &viewEventRepository{
		db: db,
	}
}

// Insert writes one view event row. Each insert is a fully independent row,
// so concurrent closes from different connections never contend.
func (r *viewEventRepository) Insert(ctx context.Context, event *domain.ViewEvent) error {
	query := `
		INSERT INTO property_view_events (property_id, user_id, duration_seconds, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.Pool.QueryRow(ctx, query,
		event.PropertyID,
		event.UserID,
		event.DurationSeconds,
		event.StartTime,
		event.EndTime,
	).Scan(&event.ID)

	if err != nil {
		return fmt.Errorf("failed to insert view event: %w", err)
	}

	return nil
}

// MostClicked groups view events by property, counts them and joins the
// listing summary. Price falls back to price-per-sqft when unset; the first
// attached image is used. Ties on the click count are broken by property id
// ascending so the ordering is deterministic.
func (r *viewEventRepository) MostClicked(ctx context.Context, limit int) ([]domain.ClickRank, error) {
	query := `
		SELECT
			e.property_id,
			COUNT(*) AS clicks,
			p.title,
			COALESCE(p.price, p.price_per_sqft) AS price,
			(
				SELECT pm.url FROM property_media pm
				WHERE pm.property_id = p.id AND pm.media_type = 'image'
				ORDER BY pm.id
				LIMIT 1
			) AS image_url,
			p.description
		FROM property_view_events e
		LEFT JOIN properties p ON p.id::text = e.property_id
		GROUP BY e.property_id, p.id, p.title, p.price, p.price_per_sqft, p.description
		ORDER BY clicks DESC, e.property_id ASC
		LIMIT $1
	`

	rows, err := r.db.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query most clicked properties: %w", err)
	}
	defer rows.Close()

	var ranks []domain.ClickRank
	for rows.Next() {
		var rank domain.ClickRank
		err := rows.Scan(
			&rank.PropertyID,
			&rank.Clicks,
			&rank.Title,
			&rank.Price,
			&rank.ImageURL,
			&rank.Description,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan click rank row: %w", err)
		}
		ranks = append(ranks, rank)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading click rank rows: %w", err)
	}

	return ranks, nil
}
