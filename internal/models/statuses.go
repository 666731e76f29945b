package models

type UserRole string
type UserStatus string
type SubscriptionType string
type OwnershipType string
type PermissionLevel string
type GrantState string

const (
	UserRoleVisitor    UserRole = "visitor"
	UserRoleCollector  UserRole = "collector"
	UserRoleCreator    UserRole = "creator"
	UserRoleAdmin      UserRole = "admin"
	UserRoleSuperadmin UserRole = "superadmin"

	UserStatusPending   UserStatus = "pending"
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"

	SubscriptionFree      SubscriptionType = "free"
	SubscriptionPaid      SubscriptionType = "paid"
	SubscriptionUnlimited SubscriptionType = "unlimited"

	OwnershipOwner        OwnershipType = "owner"
	OwnershipCollaborator OwnershipType = "collaborator"

	PermissionNone    PermissionLevel = "none"
	PermissionView    PermissionLevel = "view"
	PermissionComment PermissionLevel = "comment"
	PermissionEdit    PermissionLevel = "edit"
	PermissionFull    PermissionLevel = "full"

	GrantStateActive  GrantState = "active"
	GrantStateRevoked GrantState = "revoked"
	GrantStateExpired GrantState = "expired"
)

// ValidRoles is the set accepted at registration and role changes.
var ValidRoles = []UserRole{
	UserRoleVisitor,
	UserRoleCollector,
	UserRoleCreator,
	UserRoleAdmin,
	UserRoleSuperadmin,
}

var ValidSubscriptionTypes = []SubscriptionType{
	SubscriptionFree,
	SubscriptionPaid,
	SubscriptionUnlimited,
}

var ValidPermissionLevels = []PermissionLevel{
	PermissionNone,
	PermissionView,
	PermissionComment,
	PermissionEdit,
	PermissionFull,
}
