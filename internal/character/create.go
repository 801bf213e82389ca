package character

import (
	"errors"
	"fmt"

	"charactervault/web/internal/chardata"
	"charactervault/web/internal/models"

	"gorm.io/gorm"
)

// Create adds the character called name to the user's list, seeding its
// attributes from src.
//
// Taxonomy rows are resolved and committed before the character insert, so
// a failed insert can leave a new house/role/strength behind. The duplicate
// check is not atomic with the insert.
func Create(db *gorm.DB, src chardata.Source, userID uint, name string) (*models.Character, error) {
	if name == "" {
		return nil, ErrNameRequired
	}

	if exists, err := ownedNameExists(db, userID, name, 0); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabase, err)
	} else if exists {
		return nil, ErrDuplicateName
	}

	record, ok := src.Lookup(name)
	if !ok || record == nil {
		return nil, ErrDataNotFound
	}
	if record.Name == "" {
		return nil, ErrInvalidData
	}

	// The lookup is a substring match, so the stored name can differ from
	// the one typed in.
	if record.Name != name {
		if exists, err := ownedNameExists(db, userID, record.Name, 0); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDatabase, err)
		} else if exists {
			return nil, ErrDuplicateName
		}
	}

	houseID, err := resolveOptional(db, KindHouse, record.House)
	if err != nil {
		return nil, err
	}
	roleID, err := resolveOptional(db, KindRole, record.Role)
	if err != nil {
		return nil, err
	}
	strengthID, err := resolveOptional(db, KindStrength, record.Strength)
	if err != nil {
		return nil, err
	}

	owner := userID
	c := models.Character{
		Name:       record.Name,
		HouseID:    houseID,
		RoleID:     roleID,
		StrengthID: strengthID,
		UserID:     &owner,
		Animal:     record.Animal,
		Symbol:     record.Symbol,
		Nickname:   record.Nickname,
		Age:        record.Age,
		Death:      record.Death,
	}

	if err := db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&c).Error
	}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabase, err)
	}
	return &c, nil
}

// ownedNameExists reports whether userID already owns a character named
// exactly name, ignoring the character with id exclude.
func ownedNameExists(db *gorm.DB, userID uint, name string, exclude uint) (bool, error) {
	var existing models.Character
	q := db.Select("id").Where("name = ? AND user_id = ?", name, userID)
	if exclude != 0 {
		q = q.Where("id <> ?", exclude)
	}
	err := q.First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
