package character

import (
	"testing"

	"charactervault/web/internal/models"

	"gorm.io/gorm"
)

func seedUser(t *testing.T, db *gorm.DB, username string) uint {
	t.Helper()
	u := models.User{Username: username, Email: username + "@example.com", PasswordHash: "x"}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return u.ID
}

func seedCharacter(t *testing.T, db *gorm.DB, owner uint, name string, age *int) models.Character {
	t.Helper()
	c := models.Character{Name: name, UserID: &owner, Age: age}
	if err := db.Create(&c).Error; err != nil {
		t.Fatalf("seed character %s: %v", name, err)
	}
	return c
}

func intPtr(n int) *int { return &n }
