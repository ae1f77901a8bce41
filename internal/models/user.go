package models

type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleDoctor     Role = "DOCTOR"
	RolePharmacist Role = "PHARMACIST"
)

// User is a staff account. Email is unique per tenant, not globally.
type User struct {
	Base
	TenantID     string `gorm:"type:varchar(36);not null;uniqueIndex:idx_users_tenant_email" json:"tenantId"`
	Email        string `gorm:"size:100;not null;uniqueIndex:idx_users_tenant_email" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"` // never serialized
	Name         string `gorm:"size:100;not null" json:"name"`
	Role         Role   `gorm:"size:20;not null;index" json:"role"`

	Tenant *Tenant `gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE" json:"-"`
}

// UserProfile is what auth endpoints return about a user.
type UserProfile struct {
	ID     string         `json:"id"`
	Email  string         `json:"email"`
	Name   string         `json:"name"`
	Role   Role           `json:"role"`
	Tenant *TenantSummary `json:"tenant,omitempty"`
}

func (u *User) Profile(tenant *Tenant) UserProfile {
	p := UserProfile{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
	if tenant != nil {
		s := tenant.Summary()
		p.Tenant = &s
	}
	return p
}

// Identity is the authenticated caller, taken from a verified session token.
type Identity struct {
	ID       string `json:"id"`
	TenantID string `json:"tenantId"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     Role   `json:"role"`
}

type RegisterInput struct {
	TenantID string `json:"tenantId" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=72"`
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Role     Role   `json:"role" binding:"required,oneof=ADMIN DOCTOR PHARMACIST"`
}

type LoginInput struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	TenantSlug string `json:"tenantSlug" binding:"required"`
}

type LoginResult struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
}

// CreateStaffInput is used by clinic admins; new staff can only be doctors or pharmacists.
type CreateStaffInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=72"`
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Role     Role   `json:"role" binding:"required,oneof=DOCTOR PHARMACIST"`
}
