package models

import (
	"time"
)

// Vote statuses as stored in likes.vote_type. 0 is never persisted; the
// absence of a row means "no vote".
const (
	VoteNone    = 0
	VoteLike    = 1
	VoteDislike = -1
)

type Vote struct {
	ID        uint      `gorm:"column:like_id;primaryKey;autoIncrement" json:"id"`
	PostID    uint      `gorm:"column:post_id;not null;uniqueIndex:idx_likes_user_post" json:"postId"`
	UserID    uint      `gorm:"column:user_id;not null;uniqueIndex:idx_likes_user_post" json:"userId"`
	VoteType  int       `gorm:"column:vote_type;not null" json:"voteType"` // +1 like, -1 dislike
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`

	User User `gorm:"foreignKey:UserID" json:"-"`
	Post Post `gorm:"foreignKey:PostID" json:"-"`
}

func (Vote) TableName() string {
	return "likes"
}
