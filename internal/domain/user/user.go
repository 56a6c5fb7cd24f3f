// Package user defines the owner identity model. Every proposal belongs
// to exactly one registered user; there is no team or tenant layer.
package user

import (
	"errors"
	"net/mail"
	"time"
)

// minPasswordLen is the floor for new passwords. Existing hashes are
// never re-checked against it.
const minPasswordLen = 8

// User is a registered proposal owner.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"` // never serialized
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateRequest carries the registration form fields.
type CreateRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// Validate reports the first problem with the registration input.
func (r *CreateRequest) Validate() error {
	switch {
	case r.Email == "":
		return errors.New("email is required")
	case r.Name == "":
		return errors.New("name is required")
	case r.Password == "":
		return errors.New("password is required")
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return errors.New("invalid email format")
	}
	if len(r.Password) < minPasswordLen {
		return errors.New("password must be at least 8 characters")
	}
	return nil
}

// LoginRequest carries the login form fields.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks that both credentials are present.
func (r *LoginRequest) Validate() error {
	if r.Email == "" {
		return errors.New("email is required")
	}
	if r.Password == "" {
		return errors.New("password is required")
	}
	return nil
}

// LoginResponse is the payload of a successful login.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"` // seconds until the token expires
	User        User   `json:"user"`
}

// TokenClaims is the access-token payload.
type TokenClaims struct {
	UserID   string `json:"sub"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	IssuedAt int64  `json:"iat"`
	Expiry   int64  `json:"exp"`
	Audience string `json:"aud"`
	Issuer   string `json:"iss"`
}
