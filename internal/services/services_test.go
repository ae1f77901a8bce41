package services

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"medicloud-backend/internal/apperror"
	"medicloud-backend/internal/database"
	"medicloud-backend/internal/models"
	"medicloud-backend/pkg/utils"
)

func TestMain(m *testing.M) {
	utils.PasswordCost = bcrypt.MinCost
	os.Exit(m.Run())
}

type fixture struct {
	db  *gorm.DB
	svc *Services
	ctx context.Context
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := database.OpenTest(t)
	return &fixture{
		db:  db,
		svc: New(db, utils.NewTokenManager("test-secret", time.Hour)),
		ctx: context.Background(),
	}
}

func (f *fixture) tenant(t *testing.T, slug string) *models.Tenant {
	t.Helper()
	tenant, err := f.svc.Tenants.Create(f.ctx, models.CreateTenantInput{Name: "Clinic " + slug, Slug: slug})
	require.NoError(t, err)
	return tenant
}

func (f *fixture) user(t *testing.T, tenantID, email string, role models.Role) *models.User {
	t.Helper()
	user, err := createUser(f.ctx, f.db, tenantID, email, "secret123", "Staff "+email, role)
	require.NoError(t, err)
	return user
}

func (f *fixture) patient(t *testing.T, tenantID, name, phone string) *models.Patient {
	t.Helper()
	patient, err := f.svc.Patients.Create(f.ctx, tenantID, models.CreatePatientInput{
		Name: name, Phone: phone, DOB: "1990-04-12", Gender: models.GenderFemale,
	})
	require.NoError(t, err)
	return patient
}

func assertAppError(t *testing.T, err error, kind apperror.Kind, message string) {
	t.Helper()
	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, kind, appErr.Kind)
	assert.Equal(t, message, appErr.Message)
}

func TestTenantCreate(t *testing.T) {
	f := newFixture(t)

	tenant := f.tenant(t, "clinic-x")
	assert.NotEmpty(t, tenant.ID)

	_, err := f.svc.Tenants.Create(f.ctx, models.CreateTenantInput{Name: "Other", Slug: "clinic-x"})
	assertAppError(t, err, apperror.KindBadRequest, "Clinic with this slug already exists.")

	_, err = f.svc.Tenants.Create(f.ctx, models.CreateTenantInput{Name: "Health", Slug: "health"})
	assertAppError(t, err, apperror.KindBadRequest, "This slug is reserved.")

	f.user(t, tenant.ID, "admin@x.test", models.RoleAdmin)
	f.patient(t, tenant.ID, "Jane Doe", "08123456789")
	f.patient(t, tenant.ID, "John Roe", "08123456780")

	detail, err := f.svc.Tenants.GetBySlug(f.ctx, "clinic-x")
	require.NoError(t, err)
	assert.Equal(t, int64(1), detail.Count.Users)
	assert.Equal(t, int64(2), detail.Count.Patients)

	_, err = f.svc.Tenants.GetBySlug(f.ctx, "nope")
	assertAppError(t, err, apperror.KindNotFound, "Tenant not found.")
}

func TestRegisterAndLogin(t *testing.T) {
	f := newFixture(t)
	x := f.tenant(t, "clinic-x")
	y := f.tenant(t, "clinic-y")

	profile, err := f.svc.Auth.Register(f.ctx, models.RegisterInput{
		TenantID: x.ID, Email: "admin@x.test", Password: "secret123", Name: "Admin", Role: models.RoleAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, "clinic-x", profile.Tenant.Slug)

	_, err = f.svc.Auth.Register(f.ctx, models.RegisterInput{
		TenantID: x.ID, Email: "admin@x.test", Password: "secret123", Name: "Again", Role: models.RoleDoctor,
	})
	assertAppError(t, err, apperror.KindBadRequest, "Email already registered in this clinic.")

	// same email, different clinic
	_, err = f.svc.Auth.Register(f.ctx, models.RegisterInput{
		TenantID: y.ID, Email: "admin@x.test", Password: "secret123", Name: "Admin Y", Role: models.RoleAdmin,
	})
	require.NoError(t, err)

	_, err = f.svc.Auth.Register(f.ctx, models.RegisterInput{
		TenantID: "missing", Email: "a@b.test", Password: "secret123", Name: "Nobody", Role: models.RoleAdmin,
	})
	assertAppError(t, err, apperror.KindNotFound, "Tenant not found.")

	_, err = f.svc.Auth.Login(f.ctx, models.LoginInput{Email: "admin@x.test", Password: "wrong-pass", TenantSlug: "clinic-x"})
	assertAppError(t, err, apperror.KindUnauthorized, "Invalid email or password.")

	_, err = f.svc.Auth.Login(f.ctx, models.LoginInput{Email: "ghost@x.test", Password: "secret123", TenantSlug: "clinic-x"})
	assertAppError(t, err, apperror.KindUnauthorized, "Invalid email or password.")

	_, err = f.svc.Auth.Login(f.ctx, models.LoginInput{Email: "admin@x.test", Password: "secret123", TenantSlug: "clinic-z"})
	assertAppError(t, err, apperror.KindNotFound, "Clinic not found.")

	result, err := f.svc.Auth.Login(f.ctx, models.LoginInput{Email: "admin@x.test", Password: "secret123", TenantSlug: "clinic-x"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, models.RoleAdmin, result.User.Role)
	assert.Equal(t, x.ID, result.User.Tenant.ID)

	identity, err := f.svc.Auth.Authenticate(f.ctx, result.Token)
	require.NoError(t, err)
	assert.Equal(t, x.ID, identity.TenantID)
	assert.Equal(t, profile.ID, identity.ID)

	me, err := f.svc.Auth.Me(f.ctx, identity.ID)
	require.NoError(t, err)
	assert.Equal(t, "admin@x.test", me.Email)
	assert.Equal(t, "clinic-x", me.Tenant.Slug)
}

func TestAuthenticateRejects(t *testing.T) {
	f := newFixture(t)
	x := f.tenant(t, "clinic-x")
	user := f.user(t, x.ID, "doc@x.test", models.RoleDoctor)

	_, err := f.svc.Auth.Authenticate(f.ctx, "not-a-token")
	assertAppError(t, err, apperror.KindUnauthorized, "Invalid or expired token.")

	foreign, err := utils.NewTokenManager("other-secret", time.Hour).GenerateToken(utils.Claims{UserID: user.ID, TenantID: x.ID})
	require.NoError(t, err)
	_, err = f.svc.Auth.Authenticate(f.ctx, foreign)
	assertAppError(t, err, apperror.KindUnauthorized, "Invalid or expired token.")

	result, err := f.svc.Auth.Login(f.ctx, models.LoginInput{Email: "doc@x.test", Password: "secret123", TenantSlug: "clinic-x"})
	require.NoError(t, err)
	require.NoError(t, f.db.Delete(user).Error)

	_, err = f.svc.Auth.Authenticate(f.ctx, result.Token)
	assertAppError(t, err, apperror.KindUnauthorized, "User not found.")
}

func TestUsers(t *testing.T) {
	f := newFixture(t)
	x := f.tenant(t, "clinic-x")
	f.user(t, x.ID, "admin@x.test", models.RoleAdmin)

	staff, err := f.svc.Users.CreateStaff(f.ctx, x.ID, models.CreateStaffInput{
		Email: "doc@x.test", Password: "secret123", Name: "Dr. Who", Role: models.RoleDoctor,
	})
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", staff.PasswordHash)

	_, err = f.svc.Users.CreateStaff(f.ctx, x.ID, models.CreateStaffInput{
		Email: "doc@x.test", Password: "secret123", Name: "Dr. Two", Role: models.RolePharmacist,
	})
	assertAppError(t, err, apperror.KindBadRequest, "Email already registered in this clinic.")

	// 40 runes pass the binding rule but are 80 bytes, over bcrypt's limit
	_, err = f.svc.Users.CreateStaff(f.ctx, x.ID, models.CreateStaffInput{
		Email: "long@x.test", Password: strings.Repeat("é", 40), Name: "Dr. Long", Role: models.RoleDoctor,
	})
	assertAppError(t, err, apperror.KindValidation, "Validation failed.")

	all, err := f.svc.Users.List(f.ctx, x.ID, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	doctors, err := f.svc.Users.List(f.ctx, x.ID, "DOCTOR")
	require.NoError(t, err)
	require.Len(t, doctors, 1)
	assert.Equal(t, "doc@x.test", doctors[0].Email)
}

func TestPatients(t *testing.T) {
	f := newFixture(t)
	x := f.tenant(t, "clinic-x")
	y := f.tenant(t, "clinic-y")

	jane := f.patient(t, x.ID, "Jane Doe", "08123456789")
	f.patient(t, x.ID, "Adam Smith", "08999999999")
	f.patient(t, y.ID, "Jane Other", "08123456789")

	list, err := f.svc.Patients.List(f.ctx, x.ID, "")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Adam Smith", list[0].Name)

	found, err := f.svc.Patients.List(f.ctx, x.ID, "JANE")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, jane.ID, found[0].ID)

	byPhone, err := f.svc.Patients.List(f.ctx, x.ID, "99999")
	require.NoError(t, err)
	require.Len(t, byPhone, 1)
	assert.Equal(t, "Adam Smith", byPhone[0].Name)

	for _, wildcard := range []string{"_", "%", "!", "J_ne", "%Doe"} {
		none, err := f.svc.Patients.List(f.ctx, x.ID, wildcard)
		require.NoError(t, err)
		assert.Empty(t, none, "search %q", wildcard)
	}

	_, err = f.svc.Patients.GetByID(f.ctx, y.ID, jane.ID)
	assertAppError(t, err, apperror.KindNotFound, "Patient not found.")

	name := "Jane Smith"
	updated, err := f.svc.Patients.Update(f.ctx, x.ID, jane.ID, models.UpdatePatientInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Jane Smith", updated.Name)
	assert.Equal(t, "08123456789", updated.Phone)
	assert.Equal(t, models.GenderFemale, updated.Gender)

	_, err = f.svc.Patients.Update(f.ctx, y.ID, jane.ID, models.UpdatePatientInput{Name: &name})
	assertAppError(t, err, apperror.KindNotFound, "Patient not found.")

	assertAppError(t, f.svc.Patients.Delete(f.ctx, y.ID, jane.ID), apperror.KindNotFound, "Patient not found.")
	require.NoError(t, f.svc.Patients.Delete(f.ctx, x.ID, jane.ID))

	_, err = f.svc.Patients.GetByID(f.ctx, x.ID, jane.ID)
	assertAppError(t, err, apperror.KindNotFound, "Patient not found.")
}

func TestAppointments(t *testing.T) {
	f := newFixture(t)
	x := f.tenant(t, "clinic-x")
	y := f.tenant(t, "clinic-y")
	doctor := f.user(t, x.ID, "doc@x.test", models.RoleDoctor)
	pharmacist := f.user(t, x.ID, "ph@x.test", models.RolePharmacist)
	otherDoctor := f.user(t, y.ID, "doc@y.test", models.RoleDoctor)
	patient := f.patient(t, x.ID, "Jane Doe", "08123456789")

	book := func(patientID, doctorID, date, slot string) (*models.Appointment, error) {
		return f.svc.Appointments.Create(f.ctx, x.ID, models.CreateAppointmentInput{
			PatientID: patientID, DoctorID: doctorID, Date: date, TimeSlot: slot,
		})
	}

	_, err := book(patient.ID, pharmacist.ID, "2025-01-15", "09:00")
	assertAppError(t, err, apperror.KindNotFound, "Doctor not found.")

	_, err = book(patient.ID, otherDoctor.ID, "2025-01-15", "09:00")
	assertAppError(t, err, apperror.KindNotFound, "Doctor not found.")

	_, err = book("missing", doctor.ID, "2025-01-15", "09:00")
	assertAppError(t, err, apperror.KindNotFound, "Patient not found.")

	late, err := book(patient.ID, doctor.ID, "2025-01-15", "10:00")
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentScheduled, late.Status)
	require.NotNil(t, late.Patient)
	assert.Equal(t, "Jane Doe", late.Patient.Name)
	require.NotNil(t, late.Doctor)
	assert.Equal(t, doctor.ID, late.Doctor.ID)

	early, err := book(patient.ID, doctor.ID, "2025-01-15", "09:00")
	require.NoError(t, err)
	_, err = book(patient.ID, doctor.ID, "2025-01-16", "08:00")
	require.NoError(t, err)

	day, err := f.svc.Appointments.List(f.ctx, x.ID, models.AppointmentFilter{Date: "2025-01-15"})
	require.NoError(t, err)
	require.Len(t, day, 2)
	assert.Equal(t, early.ID, day[0].ID)
	assert.Equal(t, late.ID, day[1].ID)

	_, err = f.svc.Appointments.List(f.ctx, x.ID, models.AppointmentFilter{Date: "soon"})
	assertAppError(t, err, apperror.KindValidation, "Validation failed.")

	status := models.AppointmentCompleted
	updated, err := f.svc.Appointments.Update(f.ctx, x.ID, early.ID, models.UpdateAppointmentInput{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentCompleted, updated.Status)
	assert.Equal(t, "09:00", updated.TimeSlot)

	// no transition rules: back to SCHEDULED is allowed
	status = models.AppointmentScheduled
	_, err = f.svc.Appointments.Update(f.ctx, x.ID, early.ID, models.UpdateAppointmentInput{Status: &status})
	require.NoError(t, err)

	scheduled, err := f.svc.Appointments.List(f.ctx, x.ID, models.AppointmentFilter{Status: "SCHEDULED", DoctorID: doctor.ID})
	require.NoError(t, err)
	assert.Len(t, scheduled, 3)

	_, err = f.svc.Appointments.GetByID(f.ctx, y.ID, early.ID)
	assertAppError(t, err, apperror.KindNotFound, "Appointment not found.")

	require.NoError(t, f.svc.Appointments.Delete(f.ctx, x.ID, early.ID))
	_, err = f.svc.Appointments.GetByID(f.ctx, x.ID, early.ID)
	assertAppError(t, err, apperror.KindNotFound, "Appointment not found.")
}

func TestRecordsAndPrescriptions(t *testing.T) {
	f := newFixture(t)
	x := f.tenant(t, "clinic-x")
	y := f.tenant(t, "clinic-y")
	doctor := f.user(t, x.ID, "doc@x.test", models.RoleDoctor)
	patient := f.patient(t, x.ID, "Jane Doe", "08123456789")

	assessment := "Common cold"
	record, err := f.svc.Records.Create(f.ctx, x.ID, doctor.ID, models.CreateRecordInput{
		PatientID: patient.ID, Assessment: &assessment,
	})
	require.NoError(t, err)
	assert.Equal(t, doctor.ID, record.DoctorID)
	assert.Nil(t, record.Subjective)
	assert.Equal(t, "Common cold", *record.Assessment)
	assert.WithinDuration(t, time.Now(), record.VisitDate, time.Minute)

	_, err = f.svc.Records.Create(f.ctx, y.ID, doctor.ID, models.CreateRecordInput{PatientID: patient.ID})
	assertAppError(t, err, apperror.KindNotFound, "Patient not found.")

	items := []models.PrescriptionItem{
		{DrugName: "Paracetamol", Dosage: "500mg", Frequency: "3x1", Duration: "5 days"},
		{DrugName: "Vitamin C", Dosage: "1000mg", Frequency: "1x1"},
	}
	prescription, err := f.svc.Prescriptions.Create(f.ctx, x.ID, models.CreatePrescriptionInput{RecordID: record.ID, Items: items})
	require.NoError(t, err)
	assert.Equal(t, models.PrescriptionPending, prescription.Status)
	require.NotNil(t, prescription.Record)
	require.NotNil(t, prescription.Record.Patient)
	assert.Equal(t, "Jane Doe", prescription.Record.Patient.Name)

	fetched, err := f.svc.Prescriptions.GetByID(f.ctx, x.ID, prescription.ID)
	require.NoError(t, err)
	assert.Equal(t, items, []models.PrescriptionItem(fetched.Items))

	_, err = f.svc.Prescriptions.Create(f.ctx, y.ID, models.CreatePrescriptionInput{RecordID: record.ID, Items: items})
	assertAppError(t, err, apperror.KindNotFound, "Medical record not found.")

	updated, err := f.svc.Prescriptions.UpdateStatus(f.ctx, x.ID, prescription.ID, models.PrescriptionProcessing)
	require.NoError(t, err)
	assert.Equal(t, models.PrescriptionProcessing, updated.Status)

	pending, err := f.svc.Prescriptions.List(f.ctx, x.ID, "PENDING")
	require.NoError(t, err)
	assert.Empty(t, pending)

	withPrescriptions, err := f.svc.Records.GetByID(f.ctx, x.ID, record.ID)
	require.NoError(t, err)
	require.Len(t, withPrescriptions.Prescriptions, 1)
	require.NotNil(t, withPrescriptions.Doctor)
	assert.Equal(t, doctor.Name, withPrescriptions.Doctor.Name)

	history, err := f.svc.Records.ListByPatient(f.ctx, x.ID, patient.ID)
	require.NoError(t, err)
	assert.Len(t, history, 1)

	_, err = f.svc.Records.ListByPatient(f.ctx, y.ID, patient.ID)
	assertAppError(t, err, apperror.KindNotFound, "Patient not found.")
}

func TestInventory(t *testing.T) {
	f := newFixture(t)
	x := f.tenant(t, "clinic-x")
	y := f.tenant(t, "clinic-y")

	zero := models.Quantity(0)
	hundred := models.Quantity(100)
	_, err := f.svc.Inventory.Create(f.ctx, x.ID, models.CreateDrugInput{Name: "Paracetamol", Stock: &hundred, Unit: "tablet"})
	require.NoError(t, err)
	syrup, err := f.svc.Inventory.Create(f.ctx, x.ID, models.CreateDrugInput{Name: "Amoxicillin Syrup", Stock: &zero, Unit: "bottle"})
	require.NoError(t, err)
	assert.Equal(t, 0, syrup.Stock)

	drugs, err := f.svc.Inventory.List(f.ctx, x.ID, "")
	require.NoError(t, err)
	require.Len(t, drugs, 2)
	assert.Equal(t, "Amoxicillin Syrup", drugs[0].Name)

	found, err := f.svc.Inventory.List(f.ctx, x.ID, "PARA")
	require.NoError(t, err)
	require.Len(t, found, 1)

	five := models.Quantity(5)
	_, err = f.svc.Inventory.Create(f.ctx, x.ID, models.CreateDrugInput{Name: "Glucose 5%", Stock: &five, Unit: "bag"})
	require.NoError(t, err)

	percent, err := f.svc.Inventory.List(f.ctx, x.ID, "%")
	require.NoError(t, err)
	require.Len(t, percent, 1)
	assert.Equal(t, "Glucose 5%", percent[0].Name)

	underscore, err := f.svc.Inventory.List(f.ctx, x.ID, "_")
	require.NoError(t, err)
	assert.Empty(t, underscore)

	updated, err := f.svc.Inventory.UpdateStock(f.ctx, x.ID, syrup.ID, 12)
	require.NoError(t, err)
	assert.Equal(t, 12, updated.Stock)

	_, err = f.svc.Inventory.UpdateStock(f.ctx, y.ID, syrup.ID, 50)
	assertAppError(t, err, apperror.KindNotFound, "Drug not found.")

	var stored models.Drug
	require.NoError(t, f.db.First(&stored, "id = ?", syrup.ID).Error)
	assert.Equal(t, 12, stored.Stock)
}
