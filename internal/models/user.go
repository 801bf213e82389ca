package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User represents a registered account that owns characters.
type User struct {
	gorm.Model
	Username       string `gorm:"size:150;unique;not null"`
	Email          string `gorm:"size:150;unique;not null"`
	PasswordHash   string `gorm:"column:password;size:255;not null"`
	DateOfBirth    *datatypes.Date
	Gender         string `gorm:"size:50"` // "Male", "Female", "Other"
	ProfilePicture string `gorm:"size:300"`

	Characters []Character `gorm:"foreignKey:UserID"`
}

func (User) TableName() string { return "users" }
