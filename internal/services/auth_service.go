package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"medicloud-backend/internal/apperror"
	"medicloud-backend/internal/models"
	"medicloud-backend/pkg/utils"
)

const errInvalidCredentials = "Invalid email or password."

type AuthService struct {
	db     *gorm.DB
	tokens *utils.TokenManager
}

func NewAuthService(db *gorm.DB, tokens *utils.TokenManager) *AuthService {
	return &AuthService{db: db, tokens: tokens}
}

// Register creates a user of any role inside an existing tenant.
func (s *AuthService) Register(ctx context.Context, input models.RegisterInput) (*models.UserProfile, error) {
	var tenant models.Tenant
	if err := s.db.WithContext(ctx).Where("id = ?", input.TenantID).First(&tenant).Error; err != nil {
		return nil, lookupErr(err, "Tenant")
	}

	user, err := createUser(ctx, s.db, tenant.ID, input.Email, input.Password, input.Name, input.Role)
	if err != nil {
		return nil, err
	}

	profile := user.Profile(&tenant)
	return &profile, nil
}

// Login checks the clinic first, then the credentials. An unknown email and a
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, input models.LoginInput) (*models.LoginResult, error) {
	db := s.db.WithContext(ctx)

	var tenant models.Tenant
	if err := db.Where("slug = ?", input.TenantSlug).First(&tenant).Error; err != nil {
		return nil, lookupErr(err, "Clinic")
	}

	var user models.User
	if err := db.Where("tenant_id = ? AND email = ?", tenant.ID, input.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Unauthorized(errInvalidCredentials)
		}
		return nil, err
	}

	if !utils.CheckPassword(input.Password, user.PasswordHash) {
		return nil, apperror.Unauthorized(errInvalidCredentials)
	}

	token, err := s.tokens.GenerateToken(utils.Claims{
		UserID:   user.ID,
		TenantID: user.TenantID,
		Email:    user.Email,
		Name:     user.Name,
		Role:     string(user.Role),
	})
	if err != nil {
		return nil, err
	}

	return &models.LoginResult{Token: token, User: user.Profile(&tenant)}, nil
}

// Me returns the caller's profile with its tenant.
func (s *AuthService) Me(ctx context.Context, userID string) (*models.UserProfile, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Preload("Tenant").Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, lookupErr(err, "User")
	}
	profile := user.Profile(user.Tenant)
	return &profile, nil
}

// Authenticate verifies a session token and re-reads the user, so deleted
// accounts lose access before their token expires.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.Identity, error) {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil, &apperror.Error{Kind: apperror.KindUnauthorized, Message: "Invalid or expired token.", Err: err}
	}

	var user models.User
	if err := s.db.WithContext(ctx).Where("id = ?", claims.UserID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Unauthorized("User not found.")
		}
		return nil, err
	}

	return &models.Identity{
		ID:       user.ID,
		TenantID: user.TenantID,
		Email:    user.Email,
		Name:     user.Name,
		Role:     user.Role,
	}, nil
}
