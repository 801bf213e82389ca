package character

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"charactervault/web/internal/models"

	"gorm.io/gorm"
)

// Changes is the edit form of a character. Numbers arrive as text; an empty
// string clears the value.
type Changes struct {
	Name     string `form:"name"`
	House    string `form:"house"`
	Role     string `form:"role"`
	Strength string `form:"strength"`
	Animal   string `form:"animal"`
	Symbol   string `form:"symbol"`
	Nickname string `form:"nickname"`
	Age      string `form:"age"`
	Death    string `form:"death"`
}

// Get loads a character with its taxonomy rows.
func Get(db *gorm.DB, id uint) (*models.Character, error) {
	var c models.Character
	err := db.Preload("House").Preload("Role").Preload("Strength").First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabase, err)
	}
	return &c, nil
}

// GetOwned loads a character and checks it belongs to userID.
func GetOwned(db *gorm.DB, userID, id uint) (*models.Character, error) {
	c, err := Get(db, id)
	if err != nil {
		return nil, err
	}
	if c.UserID == nil || *c.UserID != userID {
		return nil, ErrNotOwned
	}
	return c, nil
}

// Update applies ch to the user's character id.
func Update(db *gorm.DB, userID, id uint, ch Changes) (*models.Character, error) {
	c, err := GetOwned(db, userID, id)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(ch.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	age, err := parseNullableInt(ch.Age)
	if err != nil {
		return nil, err
	}
	death, err := parseNullableInt(ch.Death)
	if err != nil {
		return nil, err
	}

	if name != c.Name {
		exists, err := ownedNameExists(db, userID, name, c.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDatabase, err)
		}
		if exists {
			return nil, ErrDuplicateName
		}
	}

	houseID, err := resolveOptional(db, KindHouse, strings.TrimSpace(ch.House))
	if err != nil {
		return nil, err
	}
	roleID, err := resolveOptional(db, KindRole, strings.TrimSpace(ch.Role))
	if err != nil {
		return nil, err
	}
	strengthID, err := resolveOptional(db, KindStrength, strings.TrimSpace(ch.Strength))
	if err != nil {
		return nil, err
	}

	updates := map[string]any{
		"name":        name,
		"house_id":    houseID,
		"role_id":     roleID,
		"strength_id": strengthID,
		"animal":      strings.TrimSpace(ch.Animal),
		"symbol":      strings.TrimSpace(ch.Symbol),
		"nickname":    strings.TrimSpace(ch.Nickname),
		"age":         age,
		"death":       death,
	}
	if err := db.Transaction(func(tx *gorm.DB) error {
		return tx.Model(&models.Character{}).Where("id = ?", c.ID).Updates(updates).Error
	}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabase, err)
	}

	return Get(db, c.ID)
}

// Delete removes the character id if userID owns it. A character that does
// not exist and one owned by someone else are reported the same way.
func Delete(db *gorm.DB, userID, id uint) error {
	result := db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Character{})
	if result.Error != nil {
		return fmt.Errorf("%w: %v", ErrDatabase, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountOwned returns how many characters userID owns.
func CountOwned(db *gorm.DB, userID uint) (int64, error) {
	var n int64
	if err := db.Model(&models.Character{}).Where("user_id = ?", userID).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("%w: %v", ErrDatabase, err)
	}
	return n, nil
}

// Recent returns the user's most recently added characters.
func Recent(db *gorm.DB, userID uint, limit int) ([]models.Character, error) {
	var list []models.Character
	err := db.Preload("House").Where("user_id = ?", userID).Order("created_at DESC").Order("id DESC").Limit(limit).Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabase, err)
	}
	return list, nil
}

func parseNullableInt(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	return &n, nil
}
