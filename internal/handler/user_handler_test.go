package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"propdastak/internal/domain"
)

func validSignup() domain.SignupRequest {
	return domain.SignupRequest{
		FirstName:   "Asha",
		LastName:    "Verma",
		PhoneNumber: "+919876543210",
		Email:       "asha@example.com",
		Password:    "Str0ng@Pass",
		Class:       domain.UserClassBuyer,
	}
}

func TestValidateSignupRequest(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.SignupRequest)
		wantMsg string
	}{
		{
			name:   "valid request",
			mutate: func(r *domain.SignupRequest) {},
		},
		{
			name:    "first name too short",
			mutate:  func(r *domain.SignupRequest) { r.FirstName = "A" },
			wantMsg: "First name must be between 2 and 100 characters",
		},
		{
			name:    "last name blank",
			mutate:  func(r *domain.SignupRequest) { r.LastName = "   " },
			wantMsg: "Last name must be between 2 and 100 characters",
		},
		{
			name:    "phone with letters",
			mutate:  func(r *domain.SignupRequest) { r.PhoneNumber = "98x6543210" },
			wantMsg: "Phone number must be a valid international format",
		},
		{
			name:    "phone leading zero",
			mutate:  func(r *domain.SignupRequest) { r.PhoneNumber = "0123456789" },
			wantMsg: "Phone number must be a valid international format",
		},
		{
			name:   "phone without plus",
			mutate: func(r *domain.SignupRequest) { r.PhoneNumber = "919876543210" },
		},
		{
			name:    "email missing domain",
			mutate:  func(r *domain.SignupRequest) { r.Email = "asha@" },
			wantMsg: "Please provide a valid email address",
		},
		{
			name:    "password too short",
			mutate:  func(r *domain.SignupRequest) { r.Password = "S0r@t" },
			wantMsg: "Password must be between 8 and 100 characters",
		},
		{
			name:    "password missing uppercase",
			mutate:  func(r *domain.SignupRequest) { r.Password = "str0ng@pass" },
			wantMsg: "Password must contain at least one uppercase letter, one lowercase letter, one number, and one special character",
		},
		{
			name:    "password missing digit",
			mutate:  func(r *domain.SignupRequest) { r.Password = "Strong@Pass" },
			wantMsg: "Password must contain at least one uppercase letter, one lowercase letter, one number, and one special character",
		},
		{
			name:    "password missing special",
			mutate:  func(r *domain.SignupRequest) { r.Password = "Str0ngPass" },
			wantMsg: "Password must contain at least one uppercase letter, one lowercase letter, one number, and one special character",
		},
		{
			name:    "unknown class",
			mutate:  func(r *domain.SignupRequest) { r.Class = "admin" },
			wantMsg: "Class must be one of: buyer, seller, user",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validSignup()
			tt.mutate(&req)
			assert.Equal(t, tt.wantMsg, validateSignupRequest(&req))
		})
	}
}

func TestValidateUserUpdate(t *testing.T) {
	strPtr := func(s string) *string { return &s }
	classPtr := func(c domain.UserClass) *domain.UserClass { return &c }

	tests := []struct {
		name    string
		upd     domain.UserUpdate
		wantMsg string
	}{
		{
			name: "empty patch is valid",
			upd:  domain.UserUpdate{},
		},
		{
			name: "valid partial patch",
			upd:  domain.UserUpdate{FirstName: strPtr("Asha"), Class: classPtr(domain.UserClassSeller)},
		},
		{
			name:    "bad email",
			upd:     domain.UserUpdate{Email: strPtr("nope")},
			wantMsg: "Please provide a valid email address",
		},
		{
			name:    "weak password",
			upd:     domain.UserUpdate{Password: strPtr("weakpass")},
			wantMsg: "Password must contain at least one uppercase letter, one lowercase letter, one number, and one special character",
		},
		{
			name:    "bad class",
			upd:     domain.UserUpdate{Class: classPtr("tenant")},
			wantMsg: "Class must be one of: buyer, seller, user",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMsg, validateUserUpdate(&tt.upd))
		})
	}
}
