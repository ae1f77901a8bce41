package models

import "time"

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

type Patient struct {
	Base
	TenantID string    `gorm:"type:varchar(36);not null;index" json:"tenantId"`
	Name     string    `gorm:"size:100;not null;index" json:"name"`
	Phone    string    `gorm:"size:20;not null" json:"phone"`
	DOB      time.Time `gorm:"column:dob;not null" json:"dob"`
	Gender   Gender    `gorm:"size:10;not null" json:"gender"`

	Tenant *Tenant `gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE" json:"-"`
}

type PatientCount struct {
	Appointments int64 `json:"appointments"`
	Records      int64 `json:"records"`
}

type PatientDetail struct {
	Patient
	Count PatientCount `json:"_count"`
}

type CreatePatientInput struct {
	Name   string `json:"name" binding:"required,min=2,max=100"`
	Phone  string `json:"phone" binding:"required,min=10,max=20"`
	DOB    string `json:"dob" binding:"required,date"`
	Gender Gender `json:"gender" binding:"required,oneof=MALE FEMALE OTHER"`
}

// UpdatePatientInput is a partial patch: nil fields are left untouched.
type UpdatePatientInput struct {
	Name   *string `json:"name" binding:"omitempty,min=2,max=100"`
	Phone  *string `json:"phone" binding:"omitempty,min=10,max=20"`
	DOB    *string `json:"dob" binding:"omitempty,date"`
	Gender *Gender `json:"gender" binding:"omitempty,oneof=MALE FEMALE OTHER"`
}
