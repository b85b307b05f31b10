package dto

import "titlehub/internal/httpapi/models"

// CreateUserDTO for the admin-managed directory (POST /v1/users/)
type CreateUserDTO struct {
	Username  string  `json:"username" binding:"required,max=150,username"`
	Email     string  `json:"email" binding:"required,email,max=254"`
	Role      string  `json:"role" binding:"omitempty,oneof=user moderator admin"`
	FirstName *string `json:"first_name,omitempty" binding:"omitempty,max=150"`
	LastName  *string `json:"last_name,omitempty" binding:"omitempty,max=150"`
	Bio       *string `json:"bio,omitempty"`
}

// UpdateUserDTO for PATCH /v1/users/:username and /v1/users/me (partial).
// The "me" path ignores Role regardless of what the body carries.
type UpdateUserDTO struct {
	Username  *string `json:"username,omitempty" binding:"omitempty,max=150,username"`
	Email     *string `json:"email,omitempty" binding:"omitempty,email,max=254"`
	Role      *string `json:"role,omitempty" binding:"omitempty,oneof=user moderator admin"`
	FirstName *string `json:"first_name,omitempty" binding:"omitempty,max=150"`
	LastName  *string `json:"last_name,omitempty" binding:"omitempty,max=150"`
	Bio       *string `json:"bio,omitempty"`
}

type UserResponse struct {
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Bio       *string `json:"bio,omitempty"`
}

func (d CreateUserDTO) ToModel() models.User {
	role := d.Role
	if role == "" {
		role = models.RoleUser
	}
	return models.User{
		Username:  d.Username,
		Email:     d.Email,
		Role:      role,
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Bio:       d.Bio,
	}
}

// ApplyTo copies the non-nil fields onto an existing user row.
func (d UpdateUserDTO) ApplyTo(u *models.User) {
	if d.Username != nil {
		u.Username = *d.Username
	}
	if d.Email != nil {
		u.Email = *d.Email
	}
	if d.Role != nil {
		u.Role = *d.Role
	}
	if d.FirstName != nil {
		u.FirstName = d.FirstName
	}
	if d.LastName != nil {
		u.LastName = d.LastName
	}
	if d.Bio != nil {
		u.Bio = d.Bio
	}
}

func UserFromModel(u *models.User) UserResponse {
	return UserResponse{
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Bio:       u.Bio,
	}
}
