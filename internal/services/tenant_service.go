package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"medicloud-backend/internal/apperror"
	"medicloud-backend/internal/models"
)

const errSlugTaken = "Clinic with this slug already exists."

// Slugs that would shadow a top-level /api route.
var reservedSlugs = map[string]struct{}{
	"auth":    {},
	"tenants": {},
	"health":  {},
	"metrics": {},
}

type TenantService struct {
	db *gorm.DB
}

func NewTenantService(db *gorm.DB) *TenantService {
	return &TenantService{db: db}
}

func (s *TenantService) Create(ctx context.Context, input models.CreateTenantInput) (*models.Tenant, error) {
	if _, reserved := reservedSlugs[input.Slug]; reserved {
		return nil, apperror.BadRequest("This slug is reserved.")
	}

	var taken int64
	if err := s.db.WithContext(ctx).Model(&models.Tenant{}).Where("slug = ?", input.Slug).Count(&taken).Error; err != nil {
		return nil, err
	}
	if taken > 0 {
		return nil, apperror.BadRequest(errSlugTaken)
	}

	tenant := models.Tenant{Name: input.Name, Slug: input.Slug}
	if err := s.db.WithContext(ctx).Create(&tenant).Error; err != nil {
		// lost a race with a concurrent create
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.BadRequest(errSlugTaken)
		}
		return nil, err
	}
	return &tenant, nil
}

func (s *TenantService) List(ctx context.Context) ([]models.Tenant, error) {
	tenants := []models.Tenant{}
	err := s.db.WithContext(ctx).Order("name ASC").Find(&tenants).Error
	return tenants, err
}

// GetBySlug returns the tenant with its user and patient counts.
func (s *TenantService) GetBySlug(ctx context.Context, slug string) (*models.TenantDetail, error) {
	tenant, err := s.Resolve(ctx, slug)
	if err != nil {
		return nil, err
	}

	detail := &models.TenantDetail{Tenant: *tenant}
	db := s.db.WithContext(ctx)
	if err := db.Model(&models.User{}).Where("tenant_id = ?", tenant.ID).Count(&detail.Count.Users).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Patient{}).Where("tenant_id = ?", tenant.ID).Count(&detail.Count.Patients).Error; err != nil {
		return nil, err
	}
	return detail, nil
}

// Resolve looks the slug up on every call; nothing is cached.
func (s *TenantService) Resolve(ctx context.Context, slug string) (*models.Tenant, error) {
	var tenant models.Tenant
	if err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&tenant).Error; err != nil {
		return nil, lookupErr(err, "Tenant")
	}
	return &tenant, nil
}
