package character

import (
	"errors"
	"testing"

	"charactervault/web/internal/database/dbtest"
	"charactervault/web/internal/models"
)

func TestGetOwned(t *testing.T) {
	db := dbtest.Open(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	c := seedCharacter(t, db, alice, "Harry Potter", nil)

	if _, err := GetOwned(db, alice, c.ID); err != nil {
		t.Fatalf("owner get: %v", err)
	}
	if _, err := GetOwned(db, bob, c.ID); !errors.Is(err, ErrNotOwned) {
		t.Fatalf("expected ErrNotOwned, got %v", err)
	}
	if _, err := GetOwned(db, alice, c.ID+100); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdate(t *testing.T) {
	db := dbtest.Open(t)
	uid := seedUser(t, db, "alice")
	c := seedCharacter(t, db, uid, "Harry Potter", intPtr(17))

	got, err := Update(db, uid, c.ID, Changes{
		Name:     "Harry James Potter",
		House:    "Gryffindor",
		Role:     "Auror",
		Nickname: "Chosen One",
		Age:      "40",
		Death:    "",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Name != "Harry James Potter" || got.HouseName() != "Gryffindor" || got.RoleName() != "Auror" {
		t.Fatalf("unexpected character after update: %+v", got)
	}
	if got.StrengthID != nil || got.Death != nil {
		t.Fatal("expected empty strength and death to be cleared")
	}
	if got.Age == nil || *got.Age != 40 {
		t.Fatalf("expected age 40, got %v", got.Age)
	}
}

func TestUpdateErrors(t *testing.T) {
	db := dbtest.Open(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	harry := seedCharacter(t, db, alice, "Harry Potter", nil)
	seedCharacter(t, db, alice, "Ron Weasley", nil)

	tests := []struct {
		desc string
		user uint
		ch   Changes
		want error
	}{
		{"blank name", alice, Changes{Name: "  "}, ErrNameRequired},
		{"bad age", alice, Changes{Name: "Harry Potter", Age: "old"}, ErrInvalidNumber},
		{"bad death", alice, Changes{Name: "Harry Potter", Death: "1.5"}, ErrInvalidNumber},
		{"rename onto sibling", alice, Changes{Name: "Ron Weasley"}, ErrDuplicateName},
		{"not owner", bob, Changes{Name: "Stolen"}, ErrNotOwned},
	}
	for _, tt := range tests {
		if _, err := Update(db, tt.user, harry.ID, tt.ch); !errors.Is(err, tt.want) {
			t.Fatalf("%s: error = %v, want %v", tt.desc, err, tt.want)
		}
	}

	got, err := Get(db, harry.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Harry Potter" {
		t.Fatalf("failed updates changed the row: %+v", got)
	}
}

func TestUpdateKeepsOwnName(t *testing.T) {
	db := dbtest.Open(t)
	uid := seedUser(t, db, "alice")
	c := seedCharacter(t, db, uid, "Harry Potter", nil)

	if _, err := Update(db, uid, c.ID, Changes{Name: "Harry Potter", Animal: "Stag"}); err != nil {
		t.Fatalf("update without rename: %v", err)
	}
}

func TestDelete(t *testing.T) {
	db := dbtest.Open(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	c := seedCharacter(t, db, alice, "Harry Potter", nil)

	if err := Delete(db, bob, c.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for non-owner, got %v", err)
	}
	if _, err := Get(db, c.ID); err != nil {
		t.Fatalf("row should survive a non-owner delete: %v", err)
	}

	if err := Delete(db, alice, c.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if _, err := Get(db, c.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected row gone, got %v", err)
	}
	if err := Delete(db, alice, c.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete: expected ErrNotFound, got %v", err)
	}
}

func TestCountAndRecent(t *testing.T) {
	db := dbtest.Open(t)
	uid := seedUser(t, db, "alice")
	other := seedUser(t, db, "bob")
	for _, n := range []string{"A", "B", "C"} {
		seedCharacter(t, db, uid, n, nil)
	}
	seedCharacter(t, db, other, "D", nil)

	n, err := CountOwned(db, uid)
	if err != nil || n != 3 {
		t.Fatalf("CountOwned = %d, %v", n, err)
	}

	recent, err := Recent(db, uid, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 2 || recent[0].Name != "C" || recent[1].Name != "B" {
		t.Fatalf("unexpected recent list: %+v", recent)
	}

	var total int64
	db.Model(&models.Character{}).Count(&total)
	if total != 4 {
		t.Fatalf("expected 4 characters in total, got %d", total)
	}
}
