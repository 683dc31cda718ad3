package models

import "gorm.io/gorm"

type Role struct {
	gorm.Model
	Name  string `gorm:"unique;not null" json:"name"` // "user" or "admin"
	Users []User `json:"-" gorm:"foreignKey:RoleID"`
}
