package auth

// IsValid checks if the role is one of the predefined valid roles
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleSuperAdmin:
		return true
	default:
		return false
	}
}

// CanViewDataTables checks if this role may enter the data-table area under
// the dashboard. Only portal admins review the raw records; SUPER_ADMIN is a
// provisioning role and deliberately excluded, matching the route policy.
func (r Role) CanViewDataTables() bool {
	switch r {
	case RoleAdmin:
		return true
	case RoleUser, RoleSuperAdmin:
		return false
	default:
		return false
	}
}

// GetAllRoles returns all predefined roles
func GetAllRoles() []Role {
	return []Role{
		RoleUser,
		RoleAdmin,
		RoleSuperAdmin,
	}
}

// ParseRole safely parses a string into a Role type
func ParseRole(roleStr string) (Role, bool) {
	role := Role(roleStr)
	return role, role.IsValid()
}
