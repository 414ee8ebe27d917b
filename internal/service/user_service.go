package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"propdastak/internal/domain"
	"propdastak/internal/repository"
	apperrors "propdastak/pkg/errors"
	"propdastak/pkg/logger"
)

// bcryptCost mirrors the 12 salt rounds used by the portal historically.
const bcryptCost = 12

// UserService handles portal accounts: signup, login and account CRUD.
type UserService struct {
	users  repository.UserRepository
	tokens TokenService
	log    *logger.Logger
}

// NewUserService creates a new user service
func NewUserService(users repository.UserRepository, tokens TokenService, log *logger.Logger) *UserService {
	return &UserService{
		users:  users,
		tokens: tokens,
		log:    log,
	}
}

// Signup registers a new account and returns it with a bearer token.
// Email and phone number must both be unused.
func (s *UserService) Signup(ctx context.Context, req *domain.SignupRequest) (*domain.AuthResponse, error) {
	existing, err := s.users.FindByEmailOrPhone(ctx, req.Email, req.PhoneNumber)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to check existing users", err)
	}
	if existing != nil {
		return nil, apperrors.NewConflictError("User with this email or phone number already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to hash password", err)
	}

	user := &domain.User{
		UserUUID:     uuid.NewString(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PhoneNumber:  req.PhoneNumber,
		Email:        req.Email,
		PasswordHash: string(hash),
		Class:        req.Class,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.NewInternalError("Failed to create user", err)
	}
	user.PasswordHash = ""

	token, expiresIn, err := s.tokens.Generate(user)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to issue token", err)
	}

	s.log.WithFields(map[string]interface{}{
		"user_uuid": user.UserUUID,
		"class":     user.Class,
	}).Info("User registered")

	return &domain.AuthResponse{
		User:        user,
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
		Message:     "User registered successfully",
	}, nil
}

// Login verifies credentials and returns the account with a bearer token.
func (s *UserService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to look up user", err)
	}
	if user == nil {
		return nil, apperrors.NewAuthenticationError("Invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperrors.NewAuthenticationError("Invalid email or password")
	}
	user.PasswordHash = ""

	token, expiresIn, err := s.tokens.Generate(user)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to issue token", err)
	}

	s.log.WithField("user_uuid", user.UserUUID).Debug("User logged in")

	return &domain.AuthResponse{
		User:        user,
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
	}, nil
}

// GetByID returns one account.
func (s *UserService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to get user", err)
	}
	if user == nil {
		return nil, apperrors.NewNotFoundError("User not found")
	}
	return user, nil
}

// GetByUUID returns one account by public UUID.
func (s *UserService) GetByUUID(ctx context.Context, userUUID string) (*domain.User, error) {
	user, err := s.users.GetByUUID(ctx, userUUID)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to get user", err)
	}
	if user == nil {
		return nil, apperrors.NewNotFoundError("User not found")
	}
	return user, nil
}

// List returns all accounts, newest first.
func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to list users", err)
	}
	return users, nil
}

// Update patches an account. A supplied password is re-hashed before it
// reaches the repository.
func (s *UserService) Update(ctx context.Context, id int64, upd *domain.UserUpdate) (*domain.User, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}

	if upd.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*upd.Password), bcryptCost)
		if err != nil {
			return nil, apperrors.NewInternalError("Failed to hash password", err)
		}
		hashed := string(hash)
		upd.Password = &hashed
	}

	user, err := s.users.Update(ctx, id, upd)
	if err != nil {
		return nil, apperrors.NewInternalError(fmt.Sprintf("Failed to update user %d", id), err)
	}
	if user == nil {
		return nil, apperrors.NewNotFoundError("User not found")
	}
	return user, nil
}

// Delete removes an account.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return apperrors.NewInternalError("Failed to delete user", err)
	}
	return nil
}
