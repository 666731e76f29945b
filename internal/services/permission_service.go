package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"artfolio_backend/internal/logger"
	"artfolio_backend/internal/models"
	"artfolio_backend/internal/repositories"
	"artfolio_backend/internal/services/dto"
)

// ItemAction names the checkable operations on an item.
type ItemAction string

const (
	ActionView             ItemAction = "view"
	ActionEdit             ItemAction = "edit"
	ActionDelete           ItemAction = "delete"
	ActionShare            ItemAction = "share"
	ActionGrantPermissions ItemAction = "grant_permissions"
)

// PermissionService resolves per-item capability sets and manages explicit
// grants. Lookups degrade to the no-permission result instead of returning
// errors; mutations report success as a boolean with failures logged.
type PermissionService interface {
	// GetUserItemPermissions resolves the capability set for a possibly
	// anonymous requester. role may be empty, in which case it is loaded
	// from the user row. Admin override is NOT applied here.
	GetUserItemPermissions(itemID, userID string, role models.UserRole) dto.UserPermissions

	// CanUserPerformAction applies the admin override first, then the
	// resolved capability set.
	CanUserPerformAction(itemID, userID string, action ItemAction) bool

	GrantPermission(itemID, targetUserID, grantedByUserID string, ownershipType models.OwnershipType, level models.PermissionLevel, expiresAt *time.Time) bool
	RevokePermission(itemID, targetUserID, revokedByUserID string) bool

	// GrantOwnershipOnUpload records the owner/full convenience row at item
	// creation. Runs on the caller's transaction handle and is idempotent.
	GrantOwnershipOnUpload(db *gorm.DB, itemID, userID string) error

	GetItemCollaborators(itemID string) []dto.Collaborator
	IsUserAdmin(userID string) bool
}

type permissionService struct {
	db       *gorm.DB
	permRepo repositories.PermissionRepository
	itemRepo repositories.ItemRepository
	userRepo repositories.UserRepository
}

func NewPermissionService(
	db *gorm.DB,
	permRepo repositories.PermissionRepository,
	itemRepo repositories.ItemRepository,
	userRepo repositories.UserRepository,
) PermissionService {
	return &permissionService{
		db:       db,
		permRepo: permRepo,
		itemRepo: itemRepo,
		userRepo: userRepo,
	}
}

// resolveRequest carries everything the resolver chain needs.
type resolveRequest struct {
	item   *models.PortfolioItem
	userID string
	role   models.UserRole
}

// resolver inspects the request and either returns a final capability set or
// defers to the next resolver in the chain.
type resolver func(s *permissionService, req resolveRequest) (dto.UserPermissions, bool)

// The resolution order is load-bearing: role tiers short-circuit before the
// explicit-grant lookup, so a collector with a stored grant on someone
// else's item still resolves to view-only.
var resolverChain = []resolver{
	resolveAnonymous,
	resolveVisitor,
	resolveCreatorCollectorTier,
	resolveOwnerFallback,
	resolveExplicitGrant,
}

func (s *permissionService) GetUserItemPermissions(itemID, userID string, role models.UserRole) dto.UserPermissions {
	item, err := s.itemRepo.FindByID(s.db, itemID)
	if err != nil {
		if !errors.Is(err, repositories.ErrItemNotFound) {
			logger.Error("permission resolution failed", "item_id", itemID, "error", err)
		}
		return noPermissions()
	}

	if userID != "" && role == "" {
		user, err := s.userRepo.FindByID(s.db, userID)
		if err != nil {
			if !errors.Is(err, repositories.ErrUserNotFound) {
				logger.Error("permission resolution failed", "user_id", userID, "error", err)
			}
			return noPermissions()
		}
		role = user.Role
	}

	req := resolveRequest{item: item, userID: userID, role: role}
	for _, resolve := range resolverChain {
		if perms, ok := resolve(s, req); ok {
			return perms
		}
	}
	return noPermissions()
}

func (s *permissionService) CanUserPerformAction(itemID, userID string, action ItemAction) bool {
	if s.IsUserAdmin(userID) {
		return true
	}

	perms := s.GetUserItemPermissions(itemID, userID, "")
	switch action {
	case ActionView:
		return perms.CanView
	case ActionEdit:
		return perms.CanEdit
	case ActionDelete:
		return perms.CanDelete
	case ActionShare:
		return perms.CanShare
	case ActionGrantPermissions:
		return perms.CanGrantPermissions
	default:
		return false
	}
}

// IsUserAdmin is the platform-wide override predicate. Kept separate from
// the capability table on purpose.
func (s *permissionService) IsUserAdmin(userID string) bool {
	if userID == "" {
		return false
	}
	user, err := s.userRepo.FindByID(s.db, userID)
	if err != nil {
		return false
	}
	return user.IsAdminRole()
}

func (s *permissionService) GrantPermission(itemID, targetUserID, grantedByUserID string, ownershipType models.OwnershipType, level models.PermissionLevel, expiresAt *time.Time) bool {
	if !s.canManageGrants(itemID, grantedByUserID) {
		logger.Warn("grant denied", "item_id", itemID, "granted_by", grantedByUserID, "target", targetUserID)
		return false
	}

	perm := &models.ItemPermission{
		UserID:          targetUserID,
		ItemID:          itemID,
		OwnershipType:   ownershipType,
		PermissionLevel: level,
		GrantedBy:       grantedByUserID,
		GrantedAt:       time.Now(),
		ExpiresAt:       expiresAt,
		IsActive:        true,
	}

	if err := s.permRepo.Upsert(s.db, perm); err != nil {
		logger.Error("grant failed", "item_id", itemID, "target", targetUserID, "error", err)
		return false
	}
	return true
}

func (s *permissionService) RevokePermission(itemID, targetUserID, revokedByUserID string) bool {
	if !s.canManageGrants(itemID, revokedByUserID) {
		logger.Warn("revoke denied", "item_id", itemID, "revoked_by", revokedByUserID, "target", targetUserID)
		return false
	}

	if err := s.permRepo.Deactivate(s.db, itemID, targetUserID); err != nil {
		if !errors.Is(err, repositories.ErrPermissionNotFound) {
			logger.Error("revoke failed", "item_id", itemID, "target", targetUserID, "error", err)
		}
		return false
	}
	return true
}

// canManageGrants is the shared authorization gate for grant and revoke:
// platform admins, or holders of can_grant_permissions on the item.
func (s *permissionService) canManageGrants(itemID, userID string) bool {
	if userID == "" {
		return false
	}
	if s.IsUserAdmin(userID) {
		return true
	}
	return s.GetUserItemPermissions(itemID, userID, "").CanGrantPermissions
}

func (s *permissionService) GrantOwnershipOnUpload(db *gorm.DB, itemID, userID string) error {
	perm := &models.ItemPermission{
		UserID:          userID,
		ItemID:          itemID,
		OwnershipType:   models.OwnershipOwner,
		PermissionLevel: models.PermissionFull,
		GrantedBy:       userID,
		GrantedAt:       time.Now(),
		IsActive:        true,
	}
	// Convenience record only; PortfolioItem.UserID is the source of truth
	// for ownership, so an existing row is left untouched.
	return s.permRepo.InsertIgnoreConflict(db, perm)
}

func (s *permissionService) GetItemCollaborators(itemID string) []dto.Collaborator {
	perms, err := s.permRepo.ListActiveByItem(s.db, itemID)
	if err != nil {
		logger.Error("collaborator listing failed", "item_id", itemID, "error", err)
		return nil
	}

	now := time.Now()
	collaborators := make([]dto.Collaborator, 0, len(perms))
	for _, perm := range perms {
		// Same voidness rule as the resolver: expired grants do not
		// appear as collaborators even while is_active is still set.
		if perm.State(now) != models.GrantStateActive {
			continue
		}

		username := ""
		if perm.User != nil {
			username = perm.User.Username
		}
		collaborators = append(collaborators, dto.Collaborator{
			UserID:          perm.UserID,
			Username:        username,
			OwnershipType:   perm.OwnershipType,
			PermissionLevel: perm.PermissionLevel,
			GrantedBy:       perm.GrantedBy,
			GrantedAt:       perm.GrantedAt,
			ExpiresAt:       perm.ExpiresAt,
		})
	}
	return collaborators
}

// --- resolver chain ---

func resolveAnonymous(s *permissionService, req resolveRequest) (dto.UserPermissions, bool) {
	if req.userID != "" {
		return dto.UserPermissions{}, false
	}
	return viewOnlyPermissions(), true
}

// Visitors browse and favorite but never edit, even their own uploads
// (visitors cannot upload) and even with an explicit grant on record.
func resolveVisitor(s *permissionService, req resolveRequest) (dto.UserPermissions, bool) {
	if req.role != models.UserRoleVisitor {
		return dto.UserPermissions{}, false
	}
	return viewOnlyPermissions(), true
}

// For creators and collectors ownership is the sole gate: own item means
// full owner capabilities, anything else is view-only regardless of grants.
func resolveCreatorCollectorTier(s *permissionService, req resolveRequest) (dto.UserPermissions, bool) {
	if req.role != models.UserRoleCreator && req.role != models.UserRoleCollector {
		return dto.UserPermissions{}, false
	}
	if req.item.UserID == req.userID {
		return ownerPermissions(), true
	}
	return viewOnlyPermissions(), true
}

// General case for the remaining roles: direct ownership still wins before
// any grant lookup.
func resolveOwnerFallback(s *permissionService, req resolveRequest) (dto.UserPermissions, bool) {
	if req.item.UserID == req.userID {
		return ownerPermissions(), true
	}
	return dto.UserPermissions{}, false
}

func resolveExplicitGrant(s *permissionService, req resolveRequest) (dto.UserPermissions, bool) {
	perm, err := s.permRepo.FindByUserAndItem(s.db, req.userID, req.item.ID)
	if err != nil {
		if !errors.Is(err, repositories.ErrPermissionNotFound) {
			logger.Error("grant lookup failed", "item_id", req.item.ID, "user_id", req.userID, "error", err)
		}
		return noPermissions(), true
	}
	if perm.State(time.Now()) != models.GrantStateActive {
		return noPermissions(), true
	}
	return capabilitiesFor(perm.PermissionLevel, perm.OwnershipType), true
}

// --- capability sets ---

func noPermissions() dto.UserPermissions {
	return dto.UserPermissions{
		PermissionLevel: models.PermissionNone,
	}
}

func viewOnlyPermissions() dto.UserPermissions {
	return dto.UserPermissions{
		CanView:         true,
		PermissionLevel: models.PermissionView,
	}
}

func ownerPermissions() dto.UserPermissions {
	return dto.UserPermissions{
		CanView:             true,
		CanEdit:             true,
		CanDelete:           true,
		CanShare:            true,
		CanGrantPermissions: true,
		OwnershipType:       models.OwnershipOwner,
		PermissionLevel:     models.PermissionFull,
	}
}

// capabilitiesFor maps an explicit grant to its capability set. Deletion and
// re-granting stay owner-only even at the "full" level: level and ownership
// type are independent axes.
func capabilitiesFor(level models.PermissionLevel, ownership models.OwnershipType) dto.UserPermissions {
	isOwner := ownership == models.OwnershipOwner

	perms := dto.UserPermissions{
		OwnershipType:   ownership,
		PermissionLevel: level,
	}

	switch level {
	case models.PermissionView, models.PermissionComment:
		perms.CanView = true
	case models.PermissionEdit:
		perms.CanView = true
		perms.CanEdit = true
		perms.CanShare = isOwner
	case models.PermissionFull:
		perms.CanView = true
		perms.CanEdit = true
		perms.CanShare = true
		perms.CanDelete = isOwner
		perms.CanGrantPermissions = isOwner
	}
	return perms
}
