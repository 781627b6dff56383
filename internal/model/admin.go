package model

import "gorm.io/gorm"

// Admin roles.
const (
	AdminRoleAdmin  = "admin"
	AdminRoleEditor = "editor" // blog only
)

// Admin a back-office account, table admins.
type Admin struct {
	AdminID      string `gorm:"type:uuid;primaryKey"                      json:"admin_id"`
	Username     string `gorm:"type:varchar(40);not null;unique"          json:"username"`
	PasswordHash string `gorm:"type:varchar(255);not null"                json:"-"`
	Role         string `gorm:"type:varchar(20);not null;default:'admin'" json:"role"`
	BaseModel
}

// TableName overrides the gorm table name.
func (Admin) TableName() string { return "admins" }

// BeforeCreate assigns the primary key.
func (a *Admin) BeforeCreate(_ *gorm.DB) error {
	ensureID(&a.AdminID)
	return nil
}
