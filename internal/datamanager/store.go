package datamanager

import (
	"fmt"
	"time"

	"charactervault/web/internal/character"
	"charactervault/web/internal/models"

	"gorm.io/gorm"
)

// Report counts the rows of every table.
type Report struct {
	Users      int64 `json:"users"`
	Characters int64 `json:"characters"`
	Houses     int64 `json:"houses"`
	Roles      int64 `json:"roles"`
	Strengths  int64 `json:"strengths"`
	Contacts   int64 `json:"contacts"`
}

// GetReport returns the row counts.
func GetReport(db *gorm.DB) (Report, error) {
	var r Report
	counts := []struct {
		model any
		dst   *int64
	}{
		{&models.User{}, &r.Users},
		{&models.Character{}, &r.Characters},
		{&models.House{}, &r.Houses},
		{&models.Role{}, &r.Roles},
		{&models.Strength{}, &r.Strengths},
		{&models.Contact{}, &r.Contacts},
	}
	for _, c := range counts {
		if err := db.Model(c.model).Count(c.dst).Error; err != nil {
			return Report{}, fmt.Errorf("count %T: %w", c.model, err)
		}
	}
	return r, nil
}

// UserRow is one line of the user listing.
type UserRow struct {
	ID         uint      `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	Characters int64     `json:"characters"`
	CreatedAt  time.Time `json:"created_at"`
}

// ListUsers returns every user with their character count.
func ListUsers(db *gorm.DB) ([]UserRow, error) {
	var users []models.User
	if err := db.Order("id").Find(&users).Error; err != nil {
		return nil, err
	}

	rows := make([]UserRow, 0, len(users))
	for _, u := range users {
		n, err := character.CountOwned(db, u.ID)
		if err != nil {
			return nil, err
		}
		rows = append(rows, UserRow{ID: u.ID, Username: u.Username, Email: u.Email, Characters: n, CreatedAt: u.CreatedAt})
	}
	return rows, nil
}

// DeleteUser removes a user for good. Their characters stay behind with no
// owner.
func DeleteUser(db *gorm.DB, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Character{}).Where("user_id = ?", id).Update("user_id", nil).Error; err != nil {
			return err
		}
		res := tx.Unscoped().Delete(&models.User{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("user %d: %w", id, ErrNotFound)
		}
		return nil
	})
}

// DeleteTaxonomy removes a house, role or strength and clears it from every
// character that referenced it.
func DeleteTaxonomy(db *gorm.DB, kind character.Kind, id uint) error {
	var (
		model  any
		column string
	)
	switch kind {
	case character.KindHouse:
		model, column = &models.House{}, "house_id"
	case character.KindRole:
		model, column = &models.Role{}, "role_id"
	case character.KindStrength:
		model, column = &models.Strength{}, "strength_id"
	default:
		return fmt.Errorf("%w: %q", character.ErrUnknownKind, kind)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Character{}).Where(column+" = ?", id).Update(column, nil).Error; err != nil {
			return err
		}
		res := tx.Delete(model, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%s %d: %w", kind, id, ErrNotFound)
		}
		return nil
	})
}
