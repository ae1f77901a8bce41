package models

import (
	"time"

	"gorm.io/datatypes"
)

// MedicalRecord is a SOAP note written by a doctor. Records are never edited.
type MedicalRecord struct {
	Base
	TenantID   string    `gorm:"type:varchar(36);not null;index" json:"tenantId"`
	PatientID  string    `gorm:"type:varchar(36);not null;index" json:"patientId"`
	DoctorID   string    `gorm:"type:varchar(36);not null;index" json:"doctorId"`
	VisitDate  time.Time `gorm:"not null;index" json:"visitDate"`
	Subjective *string   `gorm:"type:text" json:"subjective"`
	Objective  *string   `gorm:"type:text" json:"objective"`
	Assessment *string   `gorm:"type:text" json:"assessment"`
	Plan       *string   `gorm:"type:text" json:"plan"`

	Patient       *Patient       `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor        *User          `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Prescriptions []Prescription `gorm:"foreignKey:RecordID" json:"prescriptions,omitempty"`
	Tenant        *Tenant        `gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE" json:"-"`
}

type CreateRecordInput struct {
	PatientID  string  `json:"patientId" binding:"required"`
	Subjective *string `json:"subjective"`
	Objective  *string `json:"objective"`
	Assessment *string `json:"assessment"`
	Plan       *string `json:"plan"`
}

type PrescriptionStatus string

const (
	PrescriptionPending    PrescriptionStatus = "PENDING"
	PrescriptionProcessing PrescriptionStatus = "PROCESSING"
	PrescriptionCompleted  PrescriptionStatus = "COMPLETED"
)

// PrescriptionItem is one line of a prescription, kept in order inside a JSON column.
type PrescriptionItem struct {
	DrugName  string `json:"drugName" binding:"required,max=200"`
	Dosage    string `json:"dosage" binding:"required,max=100"`
	Frequency string `json:"frequency" binding:"required,max=100"`
	Duration  string `json:"duration,omitempty" binding:"omitempty,max=100"`
}

type Prescription struct {
	Base
	TenantID string                               `gorm:"type:varchar(36);not null;index" json:"tenantId"`
	RecordID string                               `gorm:"type:varchar(36);not null;index" json:"recordId"`
	Items    datatypes.JSONSlice[PrescriptionItem] `gorm:"not null" json:"items"`
	Status   PrescriptionStatus                   `gorm:"size:20;not null;default:PENDING;index" json:"status"`

	Record *MedicalRecord `gorm:"foreignKey:RecordID" json:"record,omitempty"`
	Tenant *Tenant        `gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE" json:"-"`
}

type CreatePrescriptionInput struct {
	RecordID string             `json:"recordId" binding:"required"`
	Items    []PrescriptionItem `json:"items" binding:"required,min=1,dive"`
}

type UpdatePrescriptionStatusInput struct {
	Status PrescriptionStatus `json:"status" binding:"required,oneof=PENDING PROCESSING COMPLETED"`
}
