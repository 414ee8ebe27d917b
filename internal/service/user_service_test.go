package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"propdastak/internal/domain"
	apperrors "propdastak/pkg/errors"
)

// fakeUserRepo is an in-memory UserRepository keyed by numeric ID.
type fakeUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*domain.User), nextID: 1}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	user.ID = f.nextID
	f.nextID++
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if u, ok := f.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByUUID(ctx context.Context, uuid string) (*domain.User, error) {
	for _, u := range f.users {
		if u.UserUUID == uuid {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmailOrPhone(ctx context.Context, email, phone string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email || u.PhoneNumber == phone {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) List(ctx context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(f.users))
	for _, u := range f.users {
		copied := *u
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, id int64, upd *domain.UserUpdate) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	if upd.FirstName != nil {
		u.FirstName = *upd.FirstName
	}
	if upd.Password != nil {
		u.PasswordHash = *upd.Password
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id int64) error {
	delete(f.users, id)
	return nil
}

func newTestUserService(t *testing.T) (*UserService, *fakeUserRepo) {
	t.Helper()
	repo := newFakeUserRepo()
	return NewUserService(repo, NewTokenService("test-secret"), newTestLogger(t)), repo
}

func signupReq() *domain.SignupRequest {
	return &domain.SignupRequest{
		FirstName:   "Asha",
		LastName:    "Verma",
		PhoneNumber: "+919876543210",
		Email:       "asha@example.com",
		Password:    "Str0ng@Pass",
		Class:       domain.UserClassBuyer,
	}
}

func TestUserService_Signup(t *testing.T) {
	svc, repo := newTestUserService(t)

	resp, err := svc.Signup(context.Background(), signupReq())
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, int64(24*60*60), resp.ExpiresIn)
	assert.NotEmpty(t, resp.User.UserUUID)
	assert.Empty(t, resp.User.PasswordHash, "hash must not leak in the response")

	// The stored hash is bcrypt, not the plaintext.
	stored := repo.users[resp.User.ID]
	require.NotNil(t, stored)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("Str0ng@Pass")))
}

func TestUserService_SignupDuplicate(t *testing.T) {
	svc, _ := newTestUserService(t)

	_, err := svc.Signup(context.Background(), signupReq())
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), signupReq())
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeConflict, appErr.Type)
}

func TestUserService_Login(t *testing.T) {
	svc, _ := newTestUserService(t)

	_, err := svc.Signup(context.Background(), signupReq())
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), &domain.LoginRequest{
		Email:    "asha@example.com",
		Password: "Str0ng@Pass",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Empty(t, resp.User.PasswordHash)
}

func TestUserService_LoginBadCredentials(t *testing.T) {
	svc, _ := newTestUserService(t)

	_, err := svc.Signup(context.Background(), signupReq())
	require.NoError(t, err)

	tests := []struct {
		name string
		req  domain.LoginRequest
	}{
		{"wrong password", domain.LoginRequest{Email: "asha@example.com", Password: "Wr0ng@Pass"}},
		{"unknown email", domain.LoginRequest{Email: "nobody@example.com", Password: "Str0ng@Pass"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), &tt.req)
			require.Error(t, err)

			var appErr *apperrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, apperrors.ErrorTypeAuthentication, appErr.Type)
			assert.Equal(t, "Invalid email or password", appErr.Message)
		})
	}
}

func TestUserService_GetByIDNotFound(t *testing.T) {
	svc, _ := newTestUserService(t)

	_, err := svc.GetByID(context.Background(), 404)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeNotFound, appErr.Type)
}

func TestUserService_UpdateRehashesPassword(t *testing.T) {
	svc, repo := newTestUserService(t)

	resp, err := svc.Signup(context.Background(), signupReq())
	require.NoError(t, err)

	newPassword := "N3w@Secret"
	_, err = svc.Update(context.Background(), resp.User.ID, &domain.UserUpdate{Password: &newPassword})
	require.NoError(t, err)

	stored := repo.users[resp.User.ID]
	require.NotNil(t, stored)
	assert.NotEqual(t, newPassword, stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(newPassword)))
}
