package auth

const (
	RoleCEO      = "CEO"
	RoleHR       = "HR"
	RoleManager  = "MANAGER"
	RoleEmployee = "EMPLOYEE"
)

const TokenTTLHours = 8

// IsElevated reports whether the role may act on any employee's data.
func IsElevated(role string) bool {
	return role == RoleHR || role == RoleCEO
}
