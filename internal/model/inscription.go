package model

import (
	"time"

	"gorm.io/gorm"

	"github.com/fssotc/website/internal/lifecycle"
)

// Role is the office held during a session. Empty means plain member.
type Role string

const (
	RolePresident     Role = "a"
	RoleVicePresident Role = "b"
	RoleSecretary     Role = "c"
	RoleTechLeader    Role = "e"
	RoleTreasurer     Role = "g"
	RoleMediaManager  Role = "k"
	RoleAdmin         Role = "z"
	RoleMember        Role = ""
)

var roleNames = map[Role]string{
	RolePresident:     "President",
	RoleVicePresident: "Vice President",
	RoleSecretary:     "Secretary",
	RoleTechLeader:    "Tech Leader",
	RoleTreasurer:     "Treasurer",
	RoleMediaManager:  "Media Manager",
	RoleAdmin:         "Admin",
	RoleMember:        "Member",
}

// Valid reports whether r is a known role code.
func (r Role) Valid() bool {
	_, ok := roleNames[r]
	return ok
}

// Name is the display name of the role.
func (r Role) Name() string { return roleNames[r] }

// Universities keyed by code; "" is "other".
var Universities = map[string]string{
	"FSS":     "Faculté des Sciences de Sfax",
	"ENIS":    "Ecole Nationale des Ingénieurs de Sfax",
	"ISIMS":   "Institut Supérieur d'Informatique et de Multimédia de Sfax",
	"ENETCOM": "Ecole Nationale d'electronique et de télécommunications de Sfax",
	"FSEGS":   "Faculté des Sciences Economiques et de Gestion de Sfax",
	"IPEIS":   "Institut Préparatoire aux Etudes d'Ingénieurs de Sfax",
	"ISGIS":   "Institut Supérieur de Gestion Industrielle de Sfax",
	"IPSAS":   "Institut Polytechnique Privé des Sciences Avancées de Sfax",
	"ISETS":   "Institut Supérieur des Etudes Technologiques de Sfax",
	"":        "Autre...",
}

// Educations keyed by code; "" is "other".
var Educations = map[string]string{
	"LF":  "Licence Fondamentale",
	"LA":  "Licence Appliqué",
	"P":   "Préparatoire",
	"ENG": "Ingéniorat",
	"MR":  "Master de Recherche",
	"MP":  "Master Professionnel",
	"PHD": "Doctorat",
	"":    "Autre...",
}

// StudyYears allowed values of Inscription.Year.
var StudyYears = map[string]bool{"1": true, "2": true, "3": true, "": true}

// Inscription one member's enrollment in one session, table inscriptions.
// Session holds the session start date (Sep 1); the label is derived.
type Inscription struct {
	InscriptionID  string    `gorm:"type:uuid;primaryKey"                                  json:"inscription_id"`
	MemberID       string    `gorm:"type:uuid;not null;uniqueIndex:uq_inscription_member_session" json:"member_id"`
	Session        time.Time `gorm:"type:date;not null;uniqueIndex:uq_inscription_member_session;index" json:"session"`
	Role           Role      `gorm:"type:varchar(1);not null;default:''"                   json:"role"`
	InscriptionNum *int64    `json:"inscription_num,omitempty"` // FSS students only, for the faculty's cultural service
	University     string    `gorm:"type:varchar(7);not null"                             json:"university"`
	Education      string    `gorm:"type:varchar(3);not null"                             json:"education"`
	Year           string    `gorm:"type:varchar(1);not null"                             json:"year"`
	Confirmed      bool      `gorm:"not null;default:false"                                json:"confirmed"`
	DreamsparkKey  bool      `gorm:"not null;default:false"                                json:"dreamspark_key"`
	MemberCard     bool      `gorm:"not null;default:false"                                json:"member_card"`
	BaseModel

	// belongs-to; the foreign key lives on inscriptions only
	Member *Member `gorm:"constraint:OnDelete:CASCADE" json:"member,omitempty"`
}

// TableName overrides the gorm table name.
func (Inscription) TableName() string { return "inscriptions" }

// BeforeCreate assigns the primary key.
func (i *Inscription) BeforeCreate(_ *gorm.DB) error {
	ensureID(&i.InscriptionID)
	return nil
}

// SessionValue is the academic session the inscription belongs to.
func (i *Inscription) SessionValue() lifecycle.Session {
	return lifecycle.SessionOf(i.Session)
}

// IsCurrent reports whether the inscription is for the session containing ref.
func (i *Inscription) IsCurrent(ref time.Time) bool {
	return lifecycle.IsCurrent(i.Session, ref)
}

func (i *Inscription) String() string {
	return i.SessionValue().Label()
}
