package services

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"medicloud-backend/internal/apperror"
	"medicloud-backend/internal/models"
	"medicloud-backend/pkg/utils"
)

const errEmailTaken = "Email already registered in this clinic."

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// List returns the tenant's staff, optionally narrowed to one role.
func (s *UserService) List(ctx context.Context, tenantID string, role string) ([]models.User, error) {
	q := s.db.WithContext(ctx).Where("tenant_id = ?", tenantID)
	if role != "" {
		q = q.Where("role = ?", role)
	}

	users := []models.User{}
	err := q.Order("name ASC").Find(&users).Error
	return users, err
}

func (s *UserService) CreateStaff(ctx context.Context, tenantID string, input models.CreateStaffInput) (*models.User, error) {
	return createUser(ctx, s.db, tenantID, input.Email, input.Password, input.Name, input.Role)
}

func createUser(ctx context.Context, db *gorm.DB, tenantID, email, password, name string, role models.Role) (*models.User, error) {
	db = db.WithContext(ctx)

	var taken int64
	if err := db.Model(&models.User{}).Where("tenant_id = ? AND email = ?", tenantID, email).Count(&taken).Error; err != nil {
		return nil, err
	}
	if taken > 0 {
		return nil, apperror.BadRequest(errEmailTaken)
	}

	hash, err := utils.HashPassword(password)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, apperror.Validation([]apperror.FieldError{{Field: "password", Message: "Must be at most 72 bytes"}})
	}
	if err != nil {
		return nil, err
	}

	user := models.User{
		TenantID:     tenantID,
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Role:         role,
	}
	if err := db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.BadRequest(errEmailTaken)
		}
		return nil, err
	}
	return &user, nil
}
