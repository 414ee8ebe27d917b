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

const userColumns = "id, user_uuid, first_name, last_name, phone_number, email, class, created_at, updated_at"

// userRepository handles user rows with PostgreSQL
type userRepository struct {
	db *database.PostgresDB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.PostgresDB) UserRepository {
	return &userRepository{
		db: db,
	}
}

// Create inserts a new user row and fills in the generated fields.
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (user_uuid, first_name, last_name, phone_number, email, password, class)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		user.UserUUID,
		user.FirstName,
		user.LastName,
		user.PhoneNumber,
		user.Email,
		user.PasswordHash,
		user.Class,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *userRepository) getOne(ctx context.Context, query string, args ...interface{}) (*domain.User, error) {
	user := &domain.User{}
	err := r.db.Pool.QueryRow(ctx, query, args...).Scan(
		&user.ID,
		&user.UserUUID,
		&user.FirstName,
		&user.LastName,
		&user.PhoneNumber,
		&user.Email,
		&user.Class,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetByID retrieves a user by numeric ID. Returns nil when not found.
func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.getOne(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id)
}

// GetByUUID retrieves a user by public UUID. Returns nil when not found.
func (r *userRepository) GetByUUID(ctx context.Context, uuid string) (*domain.User, error) {
	return r.getOne(ctx, "SELECT "+userColumns+" FROM users WHERE user_uuid = $1", uuid)
}

// GetByEmail retrieves a user by email, including the password hash for
// credential verification. Returns nil when not found.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, user_uuid, first_name, last_name, phone_number, email, password, class, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	user := &domain.User{}
	err := r.db.Pool.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.UserUUID,
		&user.FirstName,
		&user.LastName,
		&user.PhoneNumber,
		&user.Email,
		&user.PasswordHash,
		&user.Class,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

// FindByEmailOrPhone returns the first user matching either value, or nil.
func (r *userRepository) FindByEmailOrPhone(ctx context.Context, email, phone string) (*domain.User, error) {
	return r.getOne(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = $1 OR phone_number = $2 LIMIT 1",
		email, phone)
}

// List returns all users, newest first.
func (r *userRepository) List(ctx context.Context) ([]*domain.User, error) {
	rows, err := r.db.Pool.Query(ctx, "SELECT "+userColumns+" FROM users ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		user := &domain.User{}
		err := rows.Scan(
			&user.ID,
			&user.UserUUID,
			&user.FirstName,
			&user.LastName,
			&user.PhoneNumber,
			&user.Email,
			&user.Class,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading user rows: %w", err)
	}

	return users, nil
}

// Update applies the non-nil fields of upd and returns the updated user.
// The SET clause is built dynamically so callers can patch any subset.
func (r *userRepository) Update(ctx context.Context, id int64, upd *domain.UserUpdate) (*domain.User, error) {
	builder := sq.Update("users").PlaceholderFormat(sq.Dollar)

	if upd.FirstName != nil {
		builder = builder.Set("first_name", *upd.FirstName)
	}
	if upd.LastName != nil {
		builder = builder.Set("last_name", *upd.LastName)
	}
	if upd.PhoneNumber != nil {
		builder = builder.Set("phone_number", *upd.PhoneNumber)
	}
	if upd.Email != nil {
		builder = builder.Set("email", *upd.Email)
	}
	if upd.Password != nil {
		// Callers must pass an already-hashed password here.
		builder = builder.Set("password", *upd.Password)
	}
	if upd.Class != nil {
		builder = builder.Set("class", *upd.Class)
	}

	builder = builder.
		Set("updated_at", sq.Expr("CURRENT_TIMESTAMP")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + userColumns)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build user update query: %w", err)
	}

	user, err := r.getOne(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// Delete removes a user by ID.
func (r *userRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.Pool.Exec(ctx, "DELETE FROM users WHERE id = $1", id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
