package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID            uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"deleted_at"`
	Username      string         `gorm:"unique;not null" json:"username"`
	FullName      string         `json:"full_name"`
	Email         string         `gorm:"unique;not null" json:"email"`
	Password      *string        `json:"-"` // nil for Google-provisioned accounts
	Bio           string         `json:"bio"`
	Avatar        string         `json:"avatar"`
	Posts         []Post         `json:"posts" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Comments      []Comment      `json:"comments" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Votes         []Vote         `json:"votes" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Followers     []User         `json:"followers" gorm:"many2many:follows;foreignKey:ID;joinForeignKey:FollowingID;References:ID;joinReferences:FollowerID"`
	Following     []User         `json:"following" gorm:"many2many:follows;foreignKey:ID;joinForeignKey:FollowerID;References:ID;joinReferences:FollowingID"`
	Role          Role           `json:"role" gorm:"foreignKey:RoleID"`
	RoleID        uint           `json:"role_id"`
	RefreshTokens []RefreshToken `json:"refresh_tokens" gorm:"foreignKey:UserID"`
	Provider      string         `gorm:"default:'email'" json:"provider"`
	GoogleID      *string        `gorm:"unique" json:"-"`
	EmailVerified bool           `json:"email_verified"`
}

// PublicProfile is the projection of a user that other users are allowed to
// see. It is what post, comment and follow listings embed.
type PublicProfile struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Avatar   string `json:"avatar"`
}

func (u *User) Public() PublicProfile {
	return PublicProfile{
		ID:       u.ID,
		Username: u.Username,
		FullName: u.FullName,
		Avatar:   u.Avatar,
	}
}
