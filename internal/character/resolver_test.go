package character

import (
	"errors"
	"testing"

	"charactervault/web/internal/database/dbtest"
	"charactervault/web/internal/models"
)

func TestFindOrCreateHouseReusesRow(t *testing.T) {
	db := dbtest.Open(t)

	first, err := FindOrCreateHouse(db, "Gryffindor")
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	second, err := FindOrCreateHouse(db, "Gryffindor")
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected same id, got %d and %d", first.ID, second.ID)
	}

	var count int64
	db.Model(&models.House{}).Where("name = ?", "Gryffindor").Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 house row, got %d", count)
	}
}

func TestFindOrCreateIsCaseSensitive(t *testing.T) {
	db := dbtest.Open(t)

	a, err := FindOrCreateRole(db, "Auror")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	b, err := FindOrCreateRole(db, "auror")
	if err != nil {
		t.Fatalf("create lower: %v", err)
	}
	if a.ID == b.ID {
		t.Fatal("expected distinct rows for names differing in case")
	}
}

func TestResolve(t *testing.T) {
	db := dbtest.Open(t)

	for _, kind := range Kinds {
		id, err := Resolve(db, kind, "Bravery")
		if err != nil {
			t.Fatalf("resolve %s: %v", kind, err)
		}
		if id == 0 {
			t.Fatalf("resolve %s: zero id", kind)
		}
	}

	if _, err := Resolve(db, Kind("wand"), "Elder"); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}

func TestResolveOptionalEmptyName(t *testing.T) {
	db := dbtest.Open(t)

	id, err := resolveOptional(db, KindStrength, "")
	if err != nil || id != nil {
		t.Fatalf("expected nil id and error, got %v, %v", id, err)
	}
	var count int64
	db.Model(&models.Strength{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no strength rows, got %d", count)
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"house", KindHouse, false},
		{"houses", KindHouse, false},
		{"roles", KindRole, false},
		{"strength", KindStrength, false},
		{"wands", "", true},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseKind(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseKind(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestListTaxonomySorted(t *testing.T) {
	db := dbtest.Open(t)
	for _, n := range []string{"Slytherin", "Gryffindor", "Ravenclaw"} {
		if _, err := FindOrCreateHouse(db, n); err != nil {
			t.Fatalf("seed %s: %v", n, err)
		}
	}

	opts, err := ListTaxonomy(db, KindHouse)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"Gryffindor", "Ravenclaw", "Slytherin"}
	if len(opts) != len(want) {
		t.Fatalf("expected %d options, got %d", len(want), len(opts))
	}
	for i, o := range opts {
		if o.Name != want[i] {
			t.Fatalf("option %d = %q, want %q", i, o.Name, want[i])
		}
	}
}
