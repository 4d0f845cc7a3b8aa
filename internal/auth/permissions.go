package auth

import "slices"

// Role is the authorisation tier carried in a token.
type Role string

const (
	// RoleViewer may read properties but never write them.
	RoleViewer Role = "viewer"

	// RoleOperator may read and write properties and read the audit log.
	RoleOperator Role = "operator"
)

// ValidRoles lists every role a token may carry.
var ValidRoles = []Role{RoleViewer, RoleOperator}

// IsValidRole reports whether r is one of ValidRoles.
func IsValidRole(r Role) bool {
	return slices.Contains(ValidRoles, r)
}

// Permission is a named capability.
type Permission string

// Permission constants.
const (
	PermPropertyRead  Permission = "property:read"
	PermPropertyWrite Permission = "property:write"
	PermAuditRead     Permission = "audit:read"
)

// rolePermissions is the single source of truth for the authorisation model.
var rolePermissions = map[Role][]Permission{
	RoleViewer: {
		PermPropertyRead,
	},
	RoleOperator: {
		PermPropertyRead,
		PermPropertyWrite,
		PermAuditRead,
	},
}

// HasPermission returns true if role grants perm.
func HasPermission(role Role, perm Permission) bool {
	return slices.Contains(rolePermissions[role], perm)
}

// PermissionsForRole returns all permissions granted to a role, or nil for
// an unknown role.
func PermissionsForRole(role Role) []Permission {
	return slices.Clone(rolePermissions[role])
}
