package permissions

import (
	"net/http"
	"testing"

	"titlehub/internal/httpapi/models"

	"github.com/stretchr/testify/assert"
)

var (
	anonymous *models.User
	plainUser = &models.User{ID: "user-1", Role: models.RoleUser}
	moderator = &models.User{ID: "mod-1", Role: models.RoleModerator}
	admin     = &models.User{ID: "admin-1", Role: models.RoleAdmin}
	superuser = &models.User{ID: "super-1", Role: models.RoleUser, IsSuperuser: true}
)

func TestReadOnlyOrAuthenticated(t *testing.T) {
	tests := []struct {
		name   string
		user   *models.User
		method string
		want   bool
	}{
		{"anonymous read", anonymous, http.MethodGet, true},
		{"anonymous write", anonymous, http.MethodPost, false},
		{"user write", plainUser, http.MethodPost, true},
		{"user delete", plainUser, http.MethodDelete, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ReadOnlyOrAuthenticated(tt.user, tt.method))
		})
	}
}

func TestAdminOrReadOnly(t *testing.T) {
	tests := []struct {
		name   string
		user   *models.User
		method string
		want   bool
	}{
		{"anonymous read", anonymous, http.MethodGet, true},
		{"anonymous write", anonymous, http.MethodPost, false},
		{"user write", plainUser, http.MethodPost, false},
		{"moderator write", moderator, http.MethodPost, false},
		{"admin write", admin, http.MethodPost, true},
		{"superuser write", superuser, http.MethodDelete, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AdminOrReadOnly(tt.user, tt.method))
		})
	}
}

func TestModeratorAuthorOrReadOnly(t *testing.T) {
	const authorID = "user-1"

	tests := []struct {
		name   string
		user   *models.User
		method string
		want   bool
	}{
		{"anonymous read", anonymous, http.MethodGet, true},
		{"anonymous write", anonymous, http.MethodPatch, false},
		{"author edits own", plainUser, http.MethodPatch, true},
		{"stranger edits other", &models.User{ID: "user-2", Role: models.RoleUser}, http.MethodPatch, false},
		{"moderator edits other", moderator, http.MethodPatch, true},
		{"moderator deletes other", moderator, http.MethodDelete, true},
		{"admin deletes other", admin, http.MethodDelete, true},
		{"superuser deletes other", superuser, http.MethodDelete, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ModeratorAuthorOrReadOnly(tt.user, tt.method, authorID))
		})
	}
}

func TestAdminOnly(t *testing.T) {
	assert.False(t, AdminOnly(anonymous))
	assert.False(t, AdminOnly(plainUser))
	assert.False(t, AdminOnly(moderator))
	assert.True(t, AdminOnly(admin))
	assert.True(t, AdminOnly(superuser))
}
