// Package domain defines the staff roles recognized by the internal API.
package domain

// Role is a staff role carried on access tokens.
type Role string

const (
	// RoleOfficer may read ticket summaries only.
	RoleOfficer Role = "OFFICER"
	// RoleSupervisor may read full ticket records.
	RoleSupervisor Role = "SUPERVISOR"
)

// ParseRole returns the Role for s, or false when s names no known role.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleOfficer:
		return RoleOfficer, true
	case RoleSupervisor:
		return RoleSupervisor, true
	default:
		return "", false
	}
}

// Identity is the authenticated staff principal attached to a request.
type Identity struct {
	Role       Role
	EmployeeID string
}
