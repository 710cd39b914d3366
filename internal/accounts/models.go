package accounts

import "time"

// User is a directory account. The password hash never leaves this package.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`

	PasswordHash string `json:"-"`
}

// RegisterRequest creates a new account
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

func (r *RegisterRequest) Validate() error {
	if r.Email == "" {
		return ErrMissingEmail
	}
	if len(r.Password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

// LoginRequest authenticates an existing account
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries the signed bearer token
type AuthResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	User    *User  `json:"user"`
}
