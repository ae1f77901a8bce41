package models

// Tenant is one clinic. Every other table is partitioned by tenant_id.
type Tenant struct {
	Base
	Name string `gorm:"size:100;not null" json:"name"`
	Slug string `gorm:"size:50;not null;uniqueIndex" json:"slug"`
}

// TenantSummary is the {id, slug, name} triple attached to requests and user profiles.
type TenantSummary struct {
	ID   string `json:"id"`
	Slug string `json:"slug"`
	Name string `json:"name"`
}

func (t *Tenant) Summary() TenantSummary {
	return TenantSummary{ID: t.ID, Slug: t.Slug, Name: t.Name}
}

type TenantCount struct {
	Users    int64 `json:"users"`
	Patients int64 `json:"patients"`
}

type TenantDetail struct {
	Tenant
	Count TenantCount `json:"_count"`
}

type CreateTenantInput struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
	Slug string `json:"slug" binding:"required,min=3,max=50,slug"`
}
