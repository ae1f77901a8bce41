package services

import (
	"context"

	"gorm.io/gorm"

	"medicloud-backend/internal/apperror"
	"medicloud-backend/internal/models"
	"medicloud-backend/pkg/utils"
)

type AppointmentService struct {
	db *gorm.DB
}

func NewAppointmentService(db *gorm.DB) *AppointmentService {
	return &AppointmentService{db: db}
}

// List orders by day then time slot. A date filter selects that whole UTC day.
func (s *AppointmentService) List(ctx context.Context, tenantID string, filter models.AppointmentFilter) ([]models.Appointment, error) {
	q := s.withPeople(ctx).Where("tenant_id = ?", tenantID)

	if filter.Date != "" {
		day, err := utils.ParseDate(filter.Date)
		if err != nil {
			return nil, apperror.Validation([]apperror.FieldError{{Field: "date", Message: "Invalid date format"}})
		}
		q = q.Where("date >= ? AND date <= ?", utils.StartOfDay(day), utils.EndOfDay(day))
	}
	if filter.DoctorID != "" {
		q = q.Where("doctor_id = ?", filter.DoctorID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	appointments := []models.Appointment{}
	err := q.Order("date ASC").Order("time_slot ASC").Find(&appointments).Error
	return appointments, err
}

// Create books a patient with a doctor of the same tenant. The doctor id must
// belong to a user with the DOCTOR role.
func (s *AppointmentService) Create(ctx context.Context, tenantID string, input models.CreateAppointmentInput) (*models.Appointment, error) {
	if _, err := findPatient(ctx, s.db, tenantID, input.PatientID); err != nil {
		return nil, err
	}

	var doctor models.User
	err := s.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ? AND role = ?", tenantID, input.DoctorID, models.RoleDoctor).
		First(&doctor).Error
	if err != nil {
		return nil, lookupErr(err, "Doctor")
	}

	date, err := utils.ParseDate(input.Date)
	if err != nil {
		return nil, err
	}

	appointment := models.Appointment{
		TenantID:  tenantID,
		PatientID: input.PatientID,
		DoctorID:  doctor.ID,
		Date:      date,
		TimeSlot:  input.TimeSlot,
		Status:    models.AppointmentScheduled,
	}
	if err := s.db.WithContext(ctx).Create(&appointment).Error; err != nil {
		return nil, err
	}
	return s.GetByID(ctx, tenantID, appointment.ID)
}

func (s *AppointmentService) GetByID(ctx context.Context, tenantID, id string) (*models.Appointment, error) {
	var appointment models.Appointment
	if err := s.withPeople(ctx).Where("tenant_id = ? AND id = ?", tenantID, id).First(&appointment).Error; err != nil {
		return nil, lookupErr(err, "Appointment")
	}
	return &appointment, nil
}

// Update patches date, time slot and status. Any status may follow any other.
func (s *AppointmentService) Update(ctx context.Context, tenantID, id string, input models.UpdateAppointmentInput) (*models.Appointment, error) {
	appointment, err := s.find(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.Date != nil {
		date, err := utils.ParseDate(*input.Date)
		if err != nil {
			return nil, err
		}
		updates["date"] = date
	}
	if input.TimeSlot != nil {
		updates["time_slot"] = *input.TimeSlot
	}
	if input.Status != nil {
		updates["status"] = string(*input.Status)
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(appointment).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.GetByID(ctx, tenantID, id)
}

func (s *AppointmentService) Delete(ctx context.Context, tenantID, id string) error {
	appointment, err := s.find(ctx, tenantID, id)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(appointment).Error
}

func (s *AppointmentService) find(ctx context.Context, tenantID, id string) (*models.Appointment, error) {
	var appointment models.Appointment
	if err := s.db.WithContext(ctx).Where("tenant_id = ? AND id = ?", tenantID, id).First(&appointment).Error; err != nil {
		return nil, lookupErr(err, "Appointment")
	}
	return &appointment, nil
}

func (s *AppointmentService) withPeople(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Preload("Patient").Preload("Doctor")
}
