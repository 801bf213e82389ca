package models

import "gorm.io/gorm"

// Contact is a message left through the public contact form.
type Contact struct {
	gorm.Model
	Name    string `gorm:"size:100;not null"`
	Email   string `gorm:"size:100;not null"`
	Message string `gorm:"type:text;not null"`
}

func (Contact) TableName() string { return "contact" }
