package dto

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Password and username bounds shared by binding tags and Validate.
const (
	MinPasswordLength = 6
	MinUsernameLength = 3
	MaxUsernameLength = 30
)

// LoginRequest is the body of POST /api/v1/auth/login.
//
// @Description Credentials of a registered farmer
// @Example {"email": "farmer@example.com", "password": "password123"}
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"farmer@example.com"`
	Password string `json:"password" binding:"required,min=6" example:"password123"`
} // @name LoginRequest

// Validate lowercases the email and checks the password length.
func (r *LoginRequest) Validate() error {
	r.Email = normalizeEmail(r.Email)
	if r.Email == "" {
		return &ValidationError{Field: "email", Message: "email is required"}
	}
	return validatePassword(r.Password)
}

// RegisterRequest is the body of POST /api/v1/auth/register. A registered
// user has no farm until they create one.
//
// @Description New farmer account
// @Example {"email": "farmer@example.com", "username": "jdoe", "password": "password123", "name": "Jane Doe"}
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email" example:"farmer@example.com"`
	Username string `json:"username" binding:"required,min=3,max=30" example:"jdoe"`
	Password string `json:"password" binding:"required,min=6" example:"password123"`
	Name     string `json:"name,omitempty" example:"Jane Doe"`
} // @name RegisterRequest

// Validate normalizes the request and checks every field.
func (r *RegisterRequest) Validate() error {
	r.Email = normalizeEmail(r.Email)
	r.Username = strings.TrimSpace(r.Username)
	r.Name = strings.TrimSpace(r.Name)

	switch n := len(r.Username); {
	case r.Email == "":
		return &ValidationError{Field: "email", Message: "email is required"}
	case n == 0:
		return &ValidationError{Field: "username", Message: "username is required"}
	case n < MinUsernameLength:
		return &ValidationError{Field: "username", Message: "username must be at least 3 characters"}
	case n > MaxUsernameLength:
		return &ValidationError{Field: "username", Message: "username must be at most 30 characters"}
	}
	return validatePassword(r.Password)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return &ValidationError{Field: "password", Message: "password must be at least 6 characters"}
	}
	return nil
}

// LoginResponse carries a fresh token pair. Register, login and refresh all
// answer with it; refresh leaves User empty.
type LoginResponse struct {
	Token        string       `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	RefreshToken string       `json:"refresh_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	User         UserResponse `json:"user"`
} // @name LoginResponse

// UserResponse is the public view of a user.
type UserResponse struct {
	Email  string `json:"email" example:"farmer@example.com"`
	Name   string `json:"name,omitempty" example:"Jane Doe"`
	FarmID string `json:"farm_id,omitempty" example:"7f1c2a4e-8d1b-4a8e-9a55-0c4f1f0b9e21"`
} // @name UserResponse

// TokenPair is an access token with the refresh token that renews it.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"` // seconds
}

// NewLoginResponse pairs tokens with the user they were issued to.
func NewLoginResponse(pair *TokenPair, user UserResponse) LoginResponse {
	return LoginResponse{Token: pair.AccessToken, RefreshToken: pair.RefreshToken, User: user}
}

// Claims are the identity fields carried in an access token. FarmID is empty
// until the user creates or joins a farm.
type Claims struct {
	UserID primitive.ObjectID `json:"user_id"`
	Email  string             `json:"email"`
	Name   string             `json:"name"`
	Roles  []string           `json:"roles"`
	FarmID string             `json:"farm_id,omitempty"`
}

// HasFarm reports whether the token is scoped to a farm.
func (c *Claims) HasFarm() bool {
	return c != nil && c.FarmID != ""
}
