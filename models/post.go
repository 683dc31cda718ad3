package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Post struct {
	gorm.Model
	Content   string         `json:"content" gorm:"type:text;not null"`
	ImageURLs pq.StringArray `json:"imageUrls" gorm:"type:text[]"`
	UserID    uint           `json:"userId" gorm:"not null;index"`
	User      User           `json:"user" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Comments  []Comment      `json:"comments" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	Votes     []Vote         `json:"votes" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}
