package character

import (
	"errors"
	"fmt"

	"charactervault/web/internal/models"

	"gorm.io/gorm"
)

// Kind names one of the taxonomy tables attached to a character.
type Kind string

const (
	KindHouse    Kind = "house"
	KindRole     Kind = "role"
	KindStrength Kind = "strength"
)

// Kinds lists every taxonomy kind in display order.
var Kinds = []Kind{KindHouse, KindRole, KindStrength}

var ErrUnknownKind = errors.New("unknown taxonomy kind")

// ParseKind maps "house", "houses", "role", ... to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "house", "houses":
		return KindHouse, nil
	case "role", "roles":
		return KindRole, nil
	case "strength", "strengths":
		return KindStrength, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Option is a taxonomy row as shown in dropdowns.
type Option struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// FindOrCreateHouse returns the house named exactly name, inserting it first
// if needed. The insert commits on its own.
func FindOrCreateHouse(db *gorm.DB, name string) (*models.House, error) {
	return findOrCreate(db, name, func(n string) models.House { return models.House{Name: n} })
}

// FindOrCreateRole is FindOrCreateHouse for roles.
func FindOrCreateRole(db *gorm.DB, name string) (*models.Role, error) {
	return findOrCreate(db, name, func(n string) models.Role { return models.Role{Name: n} })
}

// FindOrCreateStrength is FindOrCreateHouse for strengths.
func FindOrCreateStrength(db *gorm.DB, name string) (*models.Strength, error) {
	return findOrCreate(db, name, func(n string) models.Strength { return models.Strength{Name: n} })
}

// Resolve finds or creates the row of the given kind and returns its ID.
func Resolve(db *gorm.DB, kind Kind, name string) (uint, error) {
	switch kind {
	case KindHouse:
		h, err := FindOrCreateHouse(db, name)
		if err != nil {
			return 0, err
		}
		return h.ID, nil
	case KindRole:
		r, err := FindOrCreateRole(db, name)
		if err != nil {
			return 0, err
		}
		return r.ID, nil
	case KindStrength:
		s, err := FindOrCreateStrength(db, name)
		if err != nil {
			return 0, err
		}
		return s.ID, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}

// resolveOptional resolves name when it is non-empty and returns nil otherwise.
func resolveOptional(db *gorm.DB, kind Kind, name string) (*uint, error) {
	if name == "" {
		return nil, nil
	}
	id, err := Resolve(db, kind, name)
	if err != nil {
		return nil, fmt.Errorf("resolve %s %q: %w", kind, name, err)
	}
	return &id, nil
}

// ListTaxonomy returns every row of the given kind ordered by name.
func ListTaxonomy(db *gorm.DB, kind Kind) ([]Option, error) {
	var model any
	switch kind {
	case KindHouse:
		model = &models.House{}
	case KindRole:
		model = &models.Role{}
	case KindStrength:
		model = &models.Strength{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	options := []Option{}
	if err := db.Model(model).Select("id", "name").Order("name").Scan(&options).Error; err != nil {
		return nil, err
	}
	return options, nil
}

// findOrCreate is a plain read-then-insert with no locking: two concurrent
// callers with the same new name can both miss and one insert will then
// fail on the unique index. That error is returned as is.
func findOrCreate[T any](db *gorm.DB, name string, build func(string) T) (*T, error) {
	var row T
	err := db.Where("name = ?", name).First(&row).Error
	if err == nil {
		return &row, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	row = build(name)
	if err := db.Create(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}
