package model

import (
	"time"

	"github.com/google/uuid"
)

// BaseModel audit timestamps embedded by every model.
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// VersionedModel adds an optimistic-lock counter.
type VersionedModel struct {
	BaseModel
	Version int `gorm:"not null;default:1" json:"version"`
}

// ensureID fills an empty primary key. Keys are generated client side so
// the same models work on PostgreSQL and SQLite.
func ensureID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}

// All lists every model, in dependency order, for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&Member{},
		&Inscription{},
		&Event{},
		&EventLink{},
		&Post{},
		&Admin{},
	}
}
