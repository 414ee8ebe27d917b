package domain

import "time"

// UserClass categorizes portal accounts.
type UserClass string

const (
	UserClassBuyer  UserClass = "buyer"
	UserClassSeller UserClass = "seller"
	UserClassUser   UserClass = "user"
)

// ValidUserClass reports whether c is a known account class.
func ValidUserClass(c UserClass) bool {
	switch c {
	case UserClassBuyer, UserClassSeller, UserClassUser:
		return true
	}
	return false
}

// User represents a portal account. PasswordHash never leaves the
// repository/service layer.
type User struct {
	ID           int64     `json:"id"`
	UserUUID     string    `json:"user_uuid"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PhoneNumber  string    `json:"phone_number"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Class        UserClass `json:"class"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SignupRequest is the payload for POST /api/users/signup.
type SignupRequest struct {
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	PhoneNumber string    `json:"phone_number"`
	Email       string    `json:"email"`
	Password    string    `json:"password"`
	Class       UserClass `json:"class"`
}

// LoginRequest is the payload for POST /api/users/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserUpdate carries the optional fields of PUT /api/users/{id}.
// Nil fields are left unchanged.
type UserUpdate struct {
	FirstName   *string    `json:"first_name"`
	LastName    *string    `json:"last_name"`
	PhoneNumber *string    `json:"phone_number"`
	Email       *string    `json:"email"`
	Password    *string    `json:"password"`
	Class       *UserClass `json:"class"`
}

// AuthResponse is returned by signup and login.
type AuthResponse struct {
	User        *User  `json:"user"`
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	Message     string `json:"message,omitempty"`
}
