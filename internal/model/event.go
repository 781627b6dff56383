package model

import (
	"time"

	"gorm.io/gorm"

	"github.com/fssotc/website/internal/lifecycle"
)

// EventType codes, as stored.
const (
	EventConference = "con"
	EventChallenge  = "cha"
	EventTraining   = "tra"
	EventTalk       = "tlk"
	EventOther      = "unk"
)

// EventTypes maps codes to display names.
var EventTypes = map[string]string{
	EventConference: "conference",
	EventChallenge:  "challenge",
	EventTraining:   "training",
	EventTalk:       "talk",
	EventOther:      "other",
}

// Event a club event, table events.
type Event struct {
	EventID     string     `gorm:"type:uuid;primaryKey"                   json:"event_id"`
	Title       string     `gorm:"type:varchar(100);not null"             json:"title"`
	Description string     `gorm:"type:varchar(300);not null"             json:"description"`
	EventType   string     `gorm:"type:varchar(3);not null"               json:"event_type"`
	Place       string     `gorm:"type:varchar(80);not null;default:'FSS'" json:"place"`
	StartDate   time.Time  `gorm:"type:date;not null;index"               json:"start_date"`
	EndDate     *time.Time `gorm:"type:date"                              json:"end_date,omitempty"`
	IsOurs      bool       `gorm:"not null;default:false"                 json:"is_ours"`
	VersionedModel

	Links []EventLink `gorm:"foreignKey:EventID;references:EventID;constraint:OnDelete:CASCADE" json:"links,omitempty"`
}

// TableName overrides the gorm table name.
func (Event) TableName() string { return "events" }

// BeforeCreate assigns the primary key.
func (e *Event) BeforeCreate(_ *gorm.DB) error {
	ensureID(&e.EventID)
	return nil
}

// EventSpan implements lifecycle.Spanned.
func (e Event) EventSpan() lifecycle.Span {
	return lifecycle.Span{Start: e.StartDate, End: e.EndDate}
}

// IsPassed reports whether the event ended before ref.
func (e *Event) IsPassed(ref time.Time) bool {
	return lifecycle.IsPassed(e.EventSpan(), ref)
}

// EventLink an external link attached to an event, table event_links.
type EventLink struct {
	LinkID  string `gorm:"type:uuid;primaryKey"       json:"link_id"`
	EventID string `gorm:"type:uuid;not null;index"   json:"event_id"`
	Title   string `gorm:"type:varchar(40);not null"  json:"title"`
	Link    string `gorm:"type:varchar(200);not null" json:"link"`
	BaseModel
}

// TableName overrides the gorm table name.
func (EventLink) TableName() string { return "event_links" }

// BeforeCreate assigns the primary key.
func (l *EventLink) BeforeCreate(_ *gorm.DB) error {
	ensureID(&l.LinkID)
	return nil
}
