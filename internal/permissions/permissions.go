// Package permissions holds the authorization predicates. Each predicate is a
// pure function of (identity, method, optional target author) returning
// allow/deny; callers translate a deny into 401 or 403 depending on whether
// an identity was present at all.
package permissions

import (
	"net/http"

	"titlehub/internal/httpapi/models"
)

// safeMethod reports whether method is a read.
func safeMethod(method string) bool {
	return method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions
}

// ReadOnlyOrAuthenticated: reads are always allowed, writes need an identity.
func ReadOnlyOrAuthenticated(user *models.User, method string) bool {
	return safeMethod(method) || user != nil
}

// AdminOrReadOnly: reads are always allowed, writes need the admin role.
func AdminOrReadOnly(user *models.User, method string) bool {
	if safeMethod(method) {
		return true
	}
	return user != nil && user.IsAdmin()
}

// ModeratorAuthorOrReadOnly gates object-level writes: the object's author,
// a moderator, or an admin may mutate it; anyone may read it.
func ModeratorAuthorOrReadOnly(user *models.User, method, authorID string) bool {
	if safeMethod(method) {
		return true
	}
	if user == nil {
		return false
	}
	return user.ID == authorID || user.IsModerator() || user.IsAdmin()
}

// AdminOnly: every operation requires admin or superuser.
func AdminOnly(user *models.User) bool {
	return user != nil && user.IsAdmin()
}
