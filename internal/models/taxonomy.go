package models

import "time"

// House is a named category a character can belong to (e.g. "Gryffindor").
type House struct {
	ID        uint   `gorm:"primarykey"`
	Name      string `gorm:"size:100;unique;not null"`
	CreatedAt time.Time
}

func (House) TableName() string { return "house" }

// Role describes what a character does (e.g. "Student").
type Role struct {
	ID        uint   `gorm:"primarykey"`
	Name      string `gorm:"size:100;unique;not null"`
	CreatedAt time.Time
}

func (Role) TableName() string { return "role" }

// Strength is a character's defining quality (e.g. "Bravery").
type Strength struct {
	ID        uint   `gorm:"primarykey"`
	Name      string `gorm:"size:100;unique;not null"`
	CreatedAt time.Time
}

func (Strength) TableName() string { return "strength" }
