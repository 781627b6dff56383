package model

import (
	"time"

	"gorm.io/gorm"
)

// Post a blog post, table posts.
type Post struct {
	PostID      string     `gorm:"type:uuid;primaryKey"        json:"post_id"`
	Title       string     `gorm:"type:varchar(200);not null"  json:"title"`
	Summary     string     `gorm:"type:varchar(500);not null;default:''" json:"summary"`
	Body        string     `gorm:"type:text;not null"          json:"body"`
	Author      string     `gorm:"type:varchar(100);not null"  json:"author"`
	Published   bool       `gorm:"not null;default:false;index" json:"published"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	BaseModel
}

// TableName overrides the gorm table name.
func (Post) TableName() string { return "posts" }

// BeforeCreate assigns the primary key.
func (p *Post) BeforeCreate(_ *gorm.DB) error {
	ensureID(&p.PostID)
	return nil
}
