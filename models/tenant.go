package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	RoleSuperAdmin = "SUPER_ADMIN"
	RoleAdmin      = "ADMIN"
	RoleMember     = "MEMBER"

	// Non-super-admin seats allowed per tenant.
	MaxUsersPerTenant = 5
)

type Tenant struct {
	gorm.Model
	Name         string            `json:"name"`
	Slug         string            `gorm:"uniqueIndex" json:"slug"`
	ContactEmail string            `json:"contact_email"`
	Phone        string            `json:"phone"`
	Address      string            `json:"address"`
	Plan         string            `json:"plan"`
	Metadata     datatypes.JSONMap `json:"metadata"`
}

// Tenant-scoped lookup entities used to tag waste entries.

type Facility struct {
	gorm.Model
	TenantID uint   `gorm:"index" json:"tenant_id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
}

type PickupLocation struct {
	gorm.Model
	TenantID uint   `gorm:"index" json:"tenant_id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
}

type VehicleType struct {
	gorm.Model
	TenantID uint   `gorm:"index" json:"tenant_id"`
	Name     string `json:"name"`
	// Grams of CO2e per km, informational for logistics summaries.
	EmissionFactor float64 `json:"emission_factor"`
}

type RecyclingTechnology struct {
	gorm.Model
	TenantID    uint   `gorm:"index" json:"tenant_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
