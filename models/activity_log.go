package models

import (
	"time"

	"gorm.io/gorm"
)

type ActivityLog struct {
	gorm.Model
	CreatedAt time.Time `json:"createdAt"`
	UserID    uint      `json:"userId" gorm:"not null"`
	User      User      `json:"user" gorm:"foreignKey:UserID"`
	PostID    uint      `json:"postId"`
	Activity  string    `json:"activity" gorm:"not null;type:varchar(50)"` // "post_created", "post_liked", etc.
}
