package character

import "errors"

var (
	ErrNameRequired      = errors.New("character name is required")
	ErrDuplicateName     = errors.New("character with this name already exists")
	ErrDataNotFound      = errors.New("character data could not be found")
	ErrInvalidData       = errors.New("invalid character data")
	ErrNotFound          = errors.New("character not found")
	ErrNotOwned          = errors.New("character does not belong to user")
	ErrInvalidNumber     = errors.New("age and death must be whole numbers")
	ErrInvalidSortColumn = errors.New("invalid sort column")
	ErrDatabase          = errors.New("database error")
)
