// Package auth holds the authenticated caller attached to a request.
package auth

import "github.com/bikeshop/shop-api/internal/core/domain"

// ContextKey is the request-scoped key the auth middleware stores the Identity under.
const ContextKey = "identity"

// Identity is the decoded subject and role of a valid access token.
type Identity struct {
	UserID string
	Role   domain.Role
}

// HasRole reports strict role equality; there is no role hierarchy.
func (i Identity) HasRole(role domain.Role) bool {
	return i.Role == role
}
