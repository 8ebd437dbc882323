// Package permissions defines the role sets accepted by privileged endpoints.
// Routers attach a role set to a route group through the RBAC middleware
// instead of branching on roles inside handler bodies.
package permissions

import (
	"slices"

	"lagoon/shared/constant"
)

// RoleSet is the list of roles allowed to call an endpoint group.
type RoleSet []string

var (
	// AdminOnly covers the regular admin surface: lists, status updates,
	// exports, dashboard, image management.
	AdminOnly = RoleSet{constant.RoleAdmin, constant.RoleSuperAdmin}

	// SuperAdminOnly covers admin-account management.
	SuperAdminOnly = RoleSet{constant.RoleSuperAdmin}
)

func (rs RoleSet) Allows(role string) bool {
	return slices.Contains(rs, role)
}
