// Package access decides whether an authenticated identity may perform an operation.
package access

import "storefront/internal/domain"

// RoleSet is the set of roles permitted for an operation.
type RoleSet map[domain.Role]struct{}

// Roles builds a RoleSet.
func Roles(roles ...domain.Role) RoleSet {
	set := make(RoleSet, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return set
}

// Common gates.
var (
	AdminOnly     = Roles(domain.RoleAdmin)
	Authenticated = Roles(domain.RoleUser, domain.RoleAdmin)
)

func (s RoleSet) Has(r domain.Role) bool {
	_, ok := s[r]
	return ok
}

// Allow reports whether id holds one of roles. An empty set allows nobody.
func Allow(id domain.Identity, roles RoleSet) bool {
	return roles.Has(id.Role)
}

// CanManageUser reports whether actor may modify the user with the given id:
// users may edit themselves, admins may edit anyone.
func CanManageUser(actor domain.Identity, userID string) bool {
	if actor.ID != "" && actor.ID == userID {
		return true
	}
	return Allow(actor, AdminOnly)
}
