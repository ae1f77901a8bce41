package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"medicloud-backend/internal/models"
)

// RecordService manages SOAP notes. Records are append-only.
type RecordService struct {
	db *gorm.DB
}

func NewRecordService(db *gorm.DB) *RecordService {
	return &RecordService{db: db}
}

// Create stamps the visit with the current time and the calling doctor.
func (s *RecordService) Create(ctx context.Context, tenantID, doctorID string, input models.CreateRecordInput) (*models.MedicalRecord, error) {
	if _, err := findPatient(ctx, s.db, tenantID, input.PatientID); err != nil {
		return nil, err
	}

	record := models.MedicalRecord{
		TenantID:   tenantID,
		PatientID:  input.PatientID,
		DoctorID:   doctorID,
		VisitDate:  time.Now().UTC(),
		Subjective: input.Subjective,
		Objective:  input.Objective,
		Assessment: input.Assessment,
		Plan:       input.Plan,
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return s.GetByID(ctx, tenantID, record.ID)
}

func (s *RecordService) GetByID(ctx context.Context, tenantID, id string) (*models.MedicalRecord, error) {
	var record models.MedicalRecord
	err := s.db.WithContext(ctx).
		Preload("Patient").
		Preload("Doctor").
		Preload("Prescriptions", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&record).Error
	if err != nil {
		return nil, lookupErr(err, "Medical record")
	}
	return &record, nil
}

// ListByPatient returns the patient's history, newest visit first.
func (s *RecordService) ListByPatient(ctx context.Context, tenantID, patientID string) ([]models.MedicalRecord, error) {
	if _, err := findPatient(ctx, s.db, tenantID, patientID); err != nil {
		return nil, err
	}

	records := []models.MedicalRecord{}
	err := s.db.WithContext(ctx).
		Preload("Doctor").
		Preload("Prescriptions", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Where("tenant_id = ? AND patient_id = ?", tenantID, patientID).
		Order("visit_date DESC").
		Find(&records).Error
	return records, err
}
