package model

import (
	"time"

	"gorm.io/gorm"

	"github.com/fssotc/website/internal/lifecycle"
)

// Member a club member, table members.
type Member struct {
	MemberID   string     `gorm:"type:uuid;primaryKey"              json:"member_id"`
	Name       string     `gorm:"type:varchar(40);not null"         json:"name"`
	FamilyName string     `gorm:"type:varchar(40);not null"         json:"family_name"`
	Email      string     `gorm:"type:varchar(254);not null;unique" json:"email"`
	Phone      *string    `gorm:"type:varchar(20)"                  json:"phone,omitempty"`
	Address    *string    `gorm:"type:varchar(400)"                 json:"address,omitempty"`
	Username   string     `gorm:"type:varchar(20);not null;default:''" json:"username"` // GitHub username
	Birthday   *time.Time `gorm:"type:date"                         json:"birthday,omitempty"`
	BaseModel

	Inscriptions []Inscription `gorm:"foreignKey:MemberID;references:MemberID;constraint:OnDelete:CASCADE" json:"inscriptions,omitempty"`
}

// TableName overrides the gorm table name.
func (Member) TableName() string { return "members" }

// BeforeCreate assigns the primary key.
func (m *Member) BeforeCreate(_ *gorm.DB) error {
	ensureID(&m.MemberID)
	return nil
}

// FullName is "Name FamilyName".
func (m *Member) FullName() string {
	return m.Name + " " + m.FamilyName
}

// IsNew reports whether the member had no inscription before the session
// containing ref. Inscriptions must be loaded.
func (m *Member) IsNew(ref time.Time) bool {
	sessions := make([]time.Time, 0, len(m.Inscriptions))
	for _, ins := range m.Inscriptions {
		sessions = append(sessions, ins.Session)
	}
	return lifecycle.IsNew(sessions, ref)
}
