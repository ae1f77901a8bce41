package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"medicloud-backend/internal/models"
)

type InventoryService struct {
	db *gorm.DB
}

func NewInventoryService(db *gorm.DB) *InventoryService {
	return &InventoryService{db: db}
}

func (s *InventoryService) List(ctx context.Context, tenantID, search string) ([]models.Drug, error) {
	q := s.db.WithContext(ctx).Where("tenant_id = ?", tenantID)
	if search = strings.TrimSpace(search); search != "" {
		q = q.Where("LOWER(name) LIKE ? "+likeEscape, likePattern(strings.ToLower(search)))
	}

	drugs := []models.Drug{}
	err := q.Order("name ASC").Find(&drugs).Error
	return drugs, err
}

func (s *InventoryService) Create(ctx context.Context, tenantID string, input models.CreateDrugInput) (*models.Drug, error) {
	drug := models.Drug{
		TenantID: tenantID,
		Name:     input.Name,
		Stock:    int(*input.Stock),
		Unit:     input.Unit,
	}
	if err := s.db.WithContext(ctx).Create(&drug).Error; err != nil {
		return nil, err
	}
	return &drug, nil
}

// UpdateStock overwrites the counter. The read and the write are separate
// statements; two concurrent updates resolve last-writer-wins.
func (s *InventoryService) UpdateStock(ctx context.Context, tenantID, id string, stock int) (*models.Drug, error) {
	var drug models.Drug
	if err := s.db.WithContext(ctx).Where("tenant_id = ? AND id = ?", tenantID, id).First(&drug).Error; err != nil {
		return nil, lookupErr(err, "Drug")
	}

	if err := s.db.WithContext(ctx).Model(&drug).Update("stock", stock).Error; err != nil {
		return nil, err
	}
	drug.Stock = stock
	return &drug, nil
}
