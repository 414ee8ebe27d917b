package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	if len(os.Args) < 2 {
		fmt.Println("Usage: go run main.go [drop|up|seed]")
		os.Exit(1)
	}

	command := os.Args[1]

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer conn.Close(ctx)

	switch command {
	case "drop":
		if err := dropTables(ctx, conn); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		fmt.Println("✅ All tables dropped successfully")

	case "up":
		if err := createTables(ctx, conn); err != nil {
			log.Fatalf("Failed to create tables: %v", err)
		}
		fmt.Println("✅ All tables created successfully")

	case "seed":
		if err := seedData(ctx, conn); err != nil {
			log.Fatalf("Failed to seed data: %v", err)
		}
		fmt.Println("✅ Data seeded successfully")

	default:
		fmt.Printf("Unknown command: %s\n", command)
		fmt.Println("Usage: go run main.go [drop|up|seed]")
		os.Exit(1)
	}
}

func dropTables(ctx context.Context, conn *pgx.Conn) error {
	queries := []string{
		`DROP TABLE IF EXISTS property_view_events CASCADE`,
		`DROP TABLE IF EXISTS leads CASCADE`,
		`DROP TABLE IF EXISTS saved_properties CASCADE`,
		`DROP TABLE IF EXISTS property_media CASCADE`,
		`DROP TABLE IF EXISTS parking CASCADE`,
		`DROP TABLE IF EXISTS property_details CASCADE`,
		`DROP TABLE IF EXISTS properties CASCADE`,
		`DROP TABLE IF EXISTS users CASCADE`,
	}

	for _, query := range queries {
		if _, err := conn.Exec(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
		fmt.Printf("  Dropped: %s\n", query)
	}

	return nil
}

func createTables(ctx context.Context, conn *pgx.Conn) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			user_uuid UUID UNIQUE NOT NULL,
			first_name VARCHAR(100) NOT NULL,
			last_name VARCHAR(100) NOT NULL,
			phone_number VARCHAR(20) UNIQUE NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			class VARCHAR(20) NOT NULL DEFAULT 'user',
			created_at TIMESTAMP DEFAULT NOW(),
			updated_at TIMESTAMP DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS properties (
			id SERIAL PRIMARY KEY,
			title VARCHAR(255),
			property_for VARCHAR(20) NOT NULL,
			property_type VARCHAR(50) NOT NULL,
			city VARCHAR(100) NOT NULL,
			locality VARCHAR(255) NOT NULL,
			sub_locality VARCHAR(255),
			apartment VARCHAR(255),
			property_size JSONB,
			availability_status VARCHAR(30) NOT NULL,
			property_age INTEGER,
			ownership VARCHAR(30),
			price NUMERIC(14,2),
			price_per_sqft NUMERIC(14,2),
			brokerage_charge NUMERIC(14,2),
			description TEXT,
			property_features TEXT[],
			property_amenities TEXT[],
			created_by UUID NOT NULL REFERENCES users(user_uuid) ON DELETE CASCADE,
			created_at TIMESTAMP DEFAULT NOW(),
			updated_at TIMESTAMP DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS property_details (
			property_id INTEGER PRIMARY KEY REFERENCES properties(id) ON DELETE CASCADE,
			rooms INTEGER,
			bathrooms INTEGER,
			balconies INTEGER,
			other_rooms VARCHAR(255),
			floors INTEGER
		)`,

		`CREATE TABLE IF NOT EXISTS parking (
			property_id INTEGER PRIMARY KEY REFERENCES properties(id) ON DELETE CASCADE,
			parking_count INTEGER,
			parking_type VARCHAR(20)
		)`,

		`CREATE TABLE IF NOT EXISTS property_media (
			id SERIAL PRIMARY KEY,
			property_id INTEGER NOT NULL REFERENCES properties(id) ON DELETE CASCADE,
			media_type VARCHAR(10) NOT NULL,
			url TEXT NOT NULL,
			created_at TIMESTAMP DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS saved_properties (
			id SERIAL PRIMARY KEY,
			user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			property_id INTEGER NOT NULL REFERENCES properties(id) ON DELETE CASCADE,
			created_at TIMESTAMP DEFAULT NOW(),
			UNIQUE(user_id, property_id)
		)`,

		`CREATE TABLE IF NOT EXISTS leads (
			id SERIAL PRIMARY KEY,
			service_type VARCHAR(30) NOT NULL,
			city VARCHAR(100) NOT NULL,
			pincode VARCHAR(10) NOT NULL,
			phone VARCHAR(20) NOT NULL,
			extra JSONB,
			created_at TIMESTAMP DEFAULT NOW()
		)`,

		// property_id is text on purpose: tracker clients send it as an
		// opaque string and events must survive listing deletion.
		`CREATE TABLE IF NOT EXISTS property_view_events (
			id SERIAL PRIMARY KEY,
			property_id TEXT NOT NULL,
			user_id TEXT,
			duration_seconds BIGINT NOT NULL,
			start_time TIMESTAMPTZ NOT NULL,
			end_time TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMP DEFAULT NOW()
		)`,

		`CREATE INDEX IF NOT EXISTS idx_properties_city ON properties(LOWER(city))`,
		`CREATE INDEX IF NOT EXISTS idx_properties_type ON properties(LOWER(property_type))`,
		`CREATE INDEX IF NOT EXISTS idx_properties_created_by ON properties(created_by)`,
		`CREATE INDEX IF NOT EXISTS idx_property_media_property_id ON property_media(property_id)`,
		`CREATE INDEX IF NOT EXISTS idx_saved_properties_user_id ON saved_properties(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_view_events_property_id ON property_view_events(property_id)`,
	}

	for _, query := range queries {
		if _, err := conn.Exec(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %w\nQuery: %s", err, query)
		}
		fmt.Printf("  Created: %s\n", getTableName(query))
	}

	return nil
}

func seedData(ctx context.Context, conn *pgx.Conn) error {
	query := `
		INSERT INTO users (user_uuid, first_name, last_name, phone_number, email, password, class) VALUES
		('00000000-0000-0000-0000-000000000001', 'Demo', 'Seller', '+919800000001', 'seller@example.com', '$2a$12$C6UzMDM.H6dfI/f/IKcEeO7lcojz1p1eqe8mFha2Ov9y1r1n1r1nK', 'seller'),
		('00000000-0000-0000-0000-000000000002', 'Demo', 'Buyer', '+919800000002', 'buyer@example.com', '$2a$12$C6UzMDM.H6dfI/f/IKcEeO7lcojz1p1eqe8mFha2Ov9y1r1n1r1nK', 'buyer')
		ON CONFLICT (email) DO NOTHING
	`

	if _, err := conn.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	fmt.Println("  Seeded 2 users")
	return nil
}

func getTableName(query string) string {
	if len(query) > 50 {
		return query[:50] + "..."
	}
	return query
}
