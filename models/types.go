package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRole enumerates the portal roles.
type UserRole string

const (
	UserRoleUSER      UserRole = "USER"      // regular member, owns submissions
	UserRoleMODERATOR UserRole = "MODERATOR" // reviews submissions
	UserRoleADMIN     UserRole = "ADMIN"     // full access
)

// IsModerator reports whether the role may perform moderation actions.
func (r UserRole) IsModerator() bool {
	return r == UserRoleMODERATOR || r == UserRoleADMIN
}

// User is a portal account.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Username  string             `bson:"username" json:"username"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	Role      UserRole           `bson:"role" json:"role"`
	Bio       string             `bson:"bio,omitempty" json:"bio,omitempty"`
	AvatarURL string             `bson:"avatarUrl,omitempty" json:"avatarUrl,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// RegisterRequest is the payload for account registration.
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest is the payload for login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued token and the account it belongs to.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// UpdateUserRoleRequest is the admin payload for changing an account role.
type UpdateUserRoleRequest struct {
	Role UserRole `json:"role" binding:"required"`
}

// UpdateProfileRequest is the payload for profile edits.
type UpdateProfileRequest struct {
	Username  string `json:"username,omitempty"`
	Bio       string `json:"bio,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}
