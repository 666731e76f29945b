package auth

import (
	"errors"

	"artfolio_backend/internal/models"
)

// IsAdminRole reports whether the role carries the platform-wide override.
// Kept here so middleware and services share one definition.
func IsAdminRole(role models.UserRole) bool {
	return role == models.UserRoleAdmin || role == models.UserRoleSuperadmin
}

// IsSuperadmin gates the operations admins cannot perform on each other
// (role changes, admin account management).
func IsSuperadmin(role models.UserRole) bool {
	return role == models.UserRoleSuperadmin
}

// ValidateRole checks that a role is one of the known set.
func ValidateRole(role models.UserRole) error {
	for _, r := range models.ValidRoles {
		if r == role {
			return nil
		}
	}
	return errors.New("invalid role")
}

// ValidateRegistrationRole restricts self-service registration to the
// non-privileged tiers. Admin accounts are seeded or promoted.
func ValidateRegistrationRole(role models.UserRole) error {
	switch role {
	case models.UserRoleVisitor, models.UserRoleCollector, models.UserRoleCreator:
		return nil
	default:
		return errors.New("role not available at registration")
	}
}
