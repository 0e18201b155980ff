package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultRoleName is the role every registered user receives.
const DefaultRoleName = "user"

// Stored token types.
const (
	TokenTypeRefresh   = "refresh"
	TokenTypeBlacklist = "blacklist"
)

// User is an account. A user belongs to at most one farm.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email     string             `bson:"email" json:"email"`
	Username  string             `bson:"username" json:"username"`
	Password  string             `bson:"password,omitempty" json:"-"` // bcrypt hash
	Name      string             `bson:"name" json:"name"`
	Roles     []string           `bson:"roles" json:"roles"` // role ids
	FarmID    string             `bson:"farm_id,omitempty" json:"farm_id,omitempty"`
	Active    bool               `bson:"active" json:"active"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// Role groups permissions.
type Role struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Permissions []string           `bson:"permissions" json:"permissions"` // permission ids
	Active      bool               `bson:"active" json:"active"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// Permission grants one action on one resource, e.g. "batches" / "write".
type Permission struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Resource    string             `bson:"resource" json:"resource"`
	Action      string             `bson:"action" json:"action"`
	Active      bool               `bson:"active" json:"active"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// Token is a stored refresh token or a revoked access token.
type Token struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Token     string             `bson:"token" json:"token"`
	Type      string             `bson:"type" json:"type"`
	ExpiresAt time.Time          `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// Expired reports whether the token is past its expiry at now.
func (t *Token) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// PermissionSet is the set of permission ids granted by a group of roles.
type PermissionSet map[string]struct{}

// GrantedBy collects the permissions of the active roles.
func GrantedBy(roles []*Role) PermissionSet {
	set := make(PermissionSet)
	for _, role := range roles {
		if role == nil || !role.Active {
			continue
		}
		for _, id := range role.Permissions {
			set[id] = struct{}{}
		}
	}
	return set
}

// HasAny reports whether the set holds at least one of ids.
func (s PermissionSet) HasAny(ids ...string) bool {
	for _, id := range ids {
		if _, ok := s[id]; ok {
			return true
		}
	}
	return false
}

// HasAll reports whether the set holds every one of ids.
func (s PermissionSet) HasAll(ids ...string) bool {
	for _, id := range ids {
		if _, ok := s[id]; !ok {
			return false
		}
	}
	return true
}
