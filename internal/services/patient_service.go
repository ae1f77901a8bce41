package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"medicloud-backend/internal/models"
	"medicloud-backend/pkg/utils"
)

type PatientService struct {
	db *gorm.DB
}

func NewPatientService(db *gorm.DB) *PatientService {
	return &PatientService{db: db}
}

// List matches search case-insensitively against the name and as a plain
// substring against the phone number.
func (s *PatientService) List(ctx context.Context, tenantID, search string) ([]models.Patient, error) {
	q := s.db.WithContext(ctx).Where("tenant_id = ?", tenantID)
	if search = strings.TrimSpace(search); search != "" {
		q = q.Where("(LOWER(name) LIKE ? "+likeEscape+" OR phone LIKE ? "+likeEscape+")", likePattern(strings.ToLower(search)), likePattern(search))
	}

	patients := []models.Patient{}
	err := q.Order("name ASC").Find(&patients).Error
	return patients, err
}

func (s *PatientService) GetByID(ctx context.Context, tenantID, id string) (*models.PatientDetail, error) {
	patient, err := s.find(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	detail := &models.PatientDetail{Patient: *patient}
	db := s.db.WithContext(ctx)
	if err := db.Model(&models.Appointment{}).Where("tenant_id = ? AND patient_id = ?", tenantID, id).Count(&detail.Count.Appointments).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.MedicalRecord{}).Where("tenant_id = ? AND patient_id = ?", tenantID, id).Count(&detail.Count.Records).Error; err != nil {
		return nil, err
	}
	return detail, nil
}

func (s *PatientService) Create(ctx context.Context, tenantID string, input models.CreatePatientInput) (*models.Patient, error) {
	dob, err := utils.ParseDate(input.DOB)
	if err != nil {
		return nil, err
	}

	patient := models.Patient{
		TenantID: tenantID,
		Name:     input.Name,
		Phone:    input.Phone,
		DOB:      dob,
		Gender:   input.Gender,
	}
	if err := s.db.WithContext(ctx).Create(&patient).Error; err != nil {
		return nil, err
	}
	return &patient, nil
}

// Update patches only the supplied fields.
func (s *PatientService) Update(ctx context.Context, tenantID, id string, input models.UpdatePatientInput) (*models.Patient, error) {
	patient, err := s.find(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Phone != nil {
		updates["phone"] = *input.Phone
	}
	if input.DOB != nil {
		dob, err := utils.ParseDate(*input.DOB)
		if err != nil {
			return nil, err
		}
		updates["dob"] = dob
	}
	if input.Gender != nil {
		updates["gender"] = string(*input.Gender)
	}
	if len(updates) == 0 {
		return patient, nil
	}

	if err := s.db.WithContext(ctx).Model(patient).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.find(ctx, tenantID, id)
}

// Delete fails with a foreign key error while appointments or records still
// reference the patient.
func (s *PatientService) Delete(ctx context.Context, tenantID, id string) error {
	patient, err := s.find(ctx, tenantID, id)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(patient).Error
}

func (s *PatientService) find(ctx context.Context, tenantID, id string) (*models.Patient, error) {
	return findPatient(ctx, s.db, tenantID, id)
}

func findPatient(ctx context.Context, db *gorm.DB, tenantID, id string) (*models.Patient, error) {
	var patient models.Patient
	if err := db.WithContext(ctx).Where("tenant_id = ? AND id = ?", tenantID, id).First(&patient).Error; err != nil {
		return nil, lookupErr(err, "Patient")
	}
	return &patient, nil
}
