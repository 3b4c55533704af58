package models

import "gorm.io/gorm"

// User belongs to exactly one tenant, except the platform super-admin
// which carries no tenant at all.
type User struct {
	gorm.Model
	TenantID *uint  `gorm:"index" json:"tenant_id"`
	Name     string `json:"name"`
	Email    string `gorm:"uniqueIndex" json:"email"`
	Password string `json:"-"`
	Role     string `json:"role"`
}

type Client struct {
	gorm.Model
	TenantID    uint   `gorm:"index" json:"tenant_id"`
	CompanyName string `json:"company_name"`
	ContactName string `json:"contact_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	Industry    string `json:"industry"`
}
