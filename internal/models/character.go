package models

import "gorm.io/gorm"

// Character is a fictional character tracked by a user.
// Name uniqueness per owner is checked by the application, not the schema.
type Character struct {
	gorm.Model
	Name       string `gorm:"size:100;not null;index"`
	HouseID    *uint  `gorm:"index"`
	RoleID     *uint  `gorm:"index"`
	StrengthID *uint  `gorm:"index"`
	UserID     *uint  `gorm:"index"` // Nullable: deleting a user orphans its characters
	Animal     string `gorm:"size:100"`
	Symbol     string `gorm:"size:100"`
	Nickname   string `gorm:"size:100"`
	Age        *int
	Death      *int

	House    *House    `gorm:"foreignKey:HouseID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	Role     *Role     `gorm:"foreignKey:RoleID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	Strength *Strength `gorm:"foreignKey:StrengthID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	User     *User     `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
}

func (Character) TableName() string { return "character" }

// HouseName returns the related house name, or "" when unset.
func (c Character) HouseName() string {
	if c.House == nil {
		return ""
	}
	return c.House.Name
}

// RoleName returns the related role name, or "" when unset.
func (c Character) RoleName() string {
	if c.Role == nil {
		return ""
	}
	return c.Role.Name
}

// StrengthName returns the related strength name, or "" when unset.
func (c Character) StrengthName() string {
	if c.Strength == nil {
		return ""
	}
	return c.Strength.Name
}
