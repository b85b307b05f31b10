package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Roles attached to a user. Role gates write permissions; authorization is
// always re-read from this row, never trusted from a token.
const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

type User struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	Username    string    `gorm:"uniqueIndex;size:150;not null" json:"username"`
	Email       string    `gorm:"uniqueIndex;size:254;not null" json:"email"`
	Role        string    `gorm:"default:'user';not null" json:"role"`
	IsSuperuser bool      `gorm:"default:false;not null" json:"-"`
	FirstName   *string   `gorm:"size:150" json:"first_name,omitempty"`
	LastName    *string   `gorm:"size:150" json:"last_name,omitempty"`
	Bio         *string   `gorm:"type:text" json:"bio,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BeforeCreate hook to set UUID before creating a User
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	return
}

func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user holds admin privileges. Superusers count
// as admins everywhere.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.IsSuperuser
}

func (u *User) IsModerator() bool {
	return u.Role == RoleModerator
}

// StateFingerprint captures the parts of the row a confirmation code is bound
// to. Any change to them invalidates outstanding codes.
func (u *User) StateFingerprint() string {
	return u.ID + "|" + u.Username + "|" + u.Email
}

// ValidRole reports whether role is one of the three known roles.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleModerator || role == RoleAdmin
}
