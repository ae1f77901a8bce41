// Package services holds the tenant-scoped business operations. Every method
// takes the caller's context and the tenant id resolved from the request path;
// rows of other tenants are invisible and surface as NotFound.
package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"medicloud-backend/internal/apperror"
	"medicloud-backend/pkg/utils"
)

// Services bundles every service built on one database handle.
type Services struct {
	Tenants       *TenantService
	Auth          *AuthService
	Users         *UserService
	Patients      *PatientService
	Appointments  *AppointmentService
	Records       *RecordService
	Prescriptions *PrescriptionService
	Inventory     *InventoryService
}

func New(db *gorm.DB, tokens *utils.TokenManager) *Services {
	return &Services{
		Tenants:       NewTenantService(db),
		Auth:          NewAuthService(db, tokens),
		Users:         NewUserService(db),
		Patients:      NewPatientService(db),
		Appointments:  NewAppointmentService(db),
		Records:       NewRecordService(db),
		Prescriptions: NewPrescriptionService(db),
		Inventory:     NewInventoryService(db),
	}
}

// lookupErr names the missing resource instead of the generic "Record not found.".
func lookupErr(err error, resource string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NotFound(resource)
	}
	return err
}

// Not a backslash: mysql reads backslashes inside string literals.
const likeEscape = "ESCAPE '!'"

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// likePattern matches s as a literal substring; % and _ in s are not wildcards.
func likePattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
