package models

import "time"

type AppointmentStatus string

const (
	AppointmentScheduled  AppointmentStatus = "SCHEDULED"
	AppointmentCheckedIn  AppointmentStatus = "CHECKED_IN"
	AppointmentInProgress AppointmentStatus = "IN_PROGRESS"
	AppointmentCompleted  AppointmentStatus = "COMPLETED"
)

// Appointment books a patient with a doctor. Status may move freely between
// the four values; new appointments always start SCHEDULED.
type Appointment struct {
	Base
	TenantID  string            `gorm:"type:varchar(36);not null;index" json:"tenantId"`
	PatientID string            `gorm:"type:varchar(36);not null;index" json:"patientId"`
	DoctorID  string            `gorm:"type:varchar(36);not null;index" json:"doctorId"`
	Date      time.Time         `gorm:"not null;index" json:"date"`
	TimeSlot  string            `gorm:"size:20;not null" json:"timeSlot"` // e.g. "09:00-09:30"
	Status    AppointmentStatus `gorm:"size:20;not null;default:SCHEDULED;index" json:"status"`

	// preloaded
	Patient *Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  *User    `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Tenant  *Tenant  `gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE" json:"-"`
}

type AppointmentFilter struct {
	Date     string `form:"date"`
	DoctorID string `form:"doctorId"`
	Status   string `form:"status"`
}

type CreateAppointmentInput struct {
	PatientID string `json:"patientId" binding:"required"`
	DoctorID  string `json:"doctorId" binding:"required"`
	Date      string `json:"date" binding:"required,date"`
	TimeSlot  string `json:"timeSlot" binding:"required,max=20"`
}

type UpdateAppointmentInput struct {
	Date     *string            `json:"date" binding:"omitempty,date"`
	TimeSlot *string            `json:"timeSlot" binding:"omitempty,min=1,max=20"`
	Status   *AppointmentStatus `json:"status" binding:"omitempty,oneof=SCHEDULED CHECKED_IN IN_PROGRESS COMPLETED"`
}
