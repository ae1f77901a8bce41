package services

import (
	"context"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"medicloud-backend/internal/models"
)

type PrescriptionService struct {
	db *gorm.DB
}

func NewPrescriptionService(db *gorm.DB) *PrescriptionService {
	return &PrescriptionService{db: db}
}

// List is the pharmacy queue: newest first, each with its record, patient and doctor.
func (s *PrescriptionService) List(ctx context.Context, tenantID, status string) ([]models.Prescription, error) {
	q := s.withRecord(ctx).Where("tenant_id = ?", tenantID)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	prescriptions := []models.Prescription{}
	err := q.Order("created_at DESC").Find(&prescriptions).Error
	return prescriptions, err
}

func (s *PrescriptionService) Create(ctx context.Context, tenantID string, input models.CreatePrescriptionInput) (*models.Prescription, error) {
	var record models.MedicalRecord
	if err := s.db.WithContext(ctx).Where("tenant_id = ? AND id = ?", tenantID, input.RecordID).First(&record).Error; err != nil {
		return nil, lookupErr(err, "Medical record")
	}

	prescription := models.Prescription{
		TenantID: tenantID,
		RecordID: record.ID,
		Items:    datatypes.JSONSlice[models.PrescriptionItem](input.Items),
		Status:   models.PrescriptionPending,
	}
	if err := s.db.WithContext(ctx).Create(&prescription).Error; err != nil {
		return nil, err
	}
	return s.GetByID(ctx, tenantID, prescription.ID)
}

func (s *PrescriptionService) GetByID(ctx context.Context, tenantID, id string) (*models.Prescription, error) {
	var prescription models.Prescription
	if err := s.withRecord(ctx).Where("tenant_id = ? AND id = ?", tenantID, id).First(&prescription).Error; err != nil {
		return nil, lookupErr(err, "Prescription")
	}
	return &prescription, nil
}

func (s *PrescriptionService) UpdateStatus(ctx context.Context, tenantID, id string, status models.PrescriptionStatus) (*models.Prescription, error) {
	var prescription models.Prescription
	if err := s.db.WithContext(ctx).Where("tenant_id = ? AND id = ?", tenantID, id).First(&prescription).Error; err != nil {
		return nil, lookupErr(err, "Prescription")
	}

	if err := s.db.WithContext(ctx).Model(&prescription).Update("status", string(status)).Error; err != nil {
		return nil, err
	}
	return s.GetByID(ctx, tenantID, id)
}

func (s *PrescriptionService) withRecord(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Preload("Record.Patient").Preload("Record.Doctor")
}
