package models

import (
	"time"
)

// Follow is a directed edge: FollowerID's feed includes FollowingID's posts.
// Rows are deleted outright on unfollow; a soft-delete column here would
// leave the dead row in the unique index and block a later re-follow.
type Follow struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	FollowerID  uint      `gorm:"not null;uniqueIndex:idx_follows_edge" json:"followerId"`
	FollowingID uint      `gorm:"not null;uniqueIndex:idx_follows_edge" json:"followingId"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`

	Follower  User `gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE" json:"-"`
	Following User `gorm:"foreignKey:FollowingID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Follow) TableName() string {
	return "follows"
}
