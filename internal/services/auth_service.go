package services

import (
	"errors"

	"gorm.io/gorm"

	"artfolio_backend/internal/auth"
	"artfolio_backend/internal/config"
	"artfolio_backend/internal/logger"
	"artfolio_backend/internal/models"
	"artfolio_backend/internal/repositories"
	"artfolio_backend/internal/services/dto"
	"artfolio_backend/pkg/apperrors"
)

type AuthService interface {
	Register(req *dto.RegisterRequest) (*models.User, error)
	Login(req *dto.LoginRequest) (*dto.LoginResponse, error)
	ChangePassword(userID, currentPassword, newPassword string) error
	ChangeRole(actorID, targetUserID string, role models.UserRole) error
}

type authService struct {
	db       *gorm.DB
	userRepo repositories.UserRepository
}

func NewAuthService(db *gorm.DB, userRepo repositories.UserRepository) AuthService {
	return &authService{
		db:       db,
		userRepo: userRepo,
	}
}

func (s *authService) Register(req *dto.RegisterRequest) (*models.User, error) {
	role := models.UserRole(req.Role)
	if err := auth.ValidateRegistrationRole(role); err != nil {
		return nil, apperrors.ErrInvalidUserRole
	}
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}

	if _, err := s.userRepo.FindByEmail(s.db, req.Email); err == nil {
		return nil, apperrors.ErrAlreadyExists(errors.New("email already registered"))
	}
	if _, err := s.userRepo.FindByUsername(s.db, req.Username); err == nil {
		return nil, apperrors.ErrAlreadyExists(errors.New("username already taken"))
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	// Free-plan defaults from config. The caps are numbers, not policy:
	// unlimited-ness comes from subscription type and role at read time.
	maxItems := config.AppConfig.Quota.FreeMaxItems
	maxStorage := config.AppConfig.Quota.FreeMaxStorageMB

	user := &models.User{
		Username:         req.Username,
		Email:            req.Email,
		PasswordHash:     hash,
		Role:             role,
		Status:           models.UserStatusActive,
		SubscriptionType: models.SubscriptionFree,
		MaxItems:         &maxItems,
		MaxStorageMB:     &maxStorage,
	}

	if err := s.userRepo.Create(s.db, user); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.Info("user registered", "user_id", user.ID, "role", user.Role)
	return user, nil
}

func (s *authService) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(s.db, req.Email)
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if user.Status != models.UserStatusActive {
		return nil, apperrors.NewForbiddenError("Account is not active")
	}

	token, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.LoginResponse{
		AccessToken: token,
		User:        user,
	}, nil
}

func (s *authService) ChangePassword(userID, currentPassword, newPassword string) error {
	user, err := s.userRepo.FindByID(s.db, userID)
	if err != nil {
		return apperrors.ErrNotFound(err)
	}

	if !auth.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return apperrors.ErrInvalidCredentials
	}
	if err := auth.ValidatePassword(newPassword); err != nil {
		return apperrors.ErrWeakPassword
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	user.PasswordHash = hash
	if err := s.userRepo.Update(s.db, user); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// ChangeRole is superadmin-only; admins cannot promote or demote anyone.
func (s *authService) ChangeRole(actorID, targetUserID string, role models.UserRole) error {
	actor, err := s.userRepo.FindByID(s.db, actorID)
	if err != nil {
		return apperrors.ErrNotFound(err)
	}
	if !auth.IsSuperadmin(actor.Role) {
		return apperrors.ErrInsufficientPermissions
	}
	if err := auth.ValidateRole(role); err != nil {
		return apperrors.ErrInvalidUserRole
	}

	if err := s.userRepo.UpdateRole(s.db, targetUserID, role); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	logger.Info("role changed", "target", targetUserID, "role", role, "by", actorID)
	return nil
}
