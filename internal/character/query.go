package character

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"charactervault/web/internal/models"
	"charactervault/web/internal/pagination"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultPageSize is the number of characters shown per list page.
const DefaultPageSize = 5

// SortableColumns is the allow-list of columns a list can be ordered by.
var SortableColumns = map[string]bool{
	"name":       true,
	"age":        true,
	"death":      true,
	"nickname":   true,
	"animal":     true,
	"symbol":     true,
	"created_at": true,
	"updated_at": true,
}

// Filter holds the optional criteria of a character list request.
type Filter struct {
	Search     string
	House      string
	Role       string
	Strength   string
	AgeMin     *int // inclusive
	AgeMax     *int // inclusive
	SortColumn string
	SortOrder  string
	Page       int
}

// ParseFilter reads a Filter from query parameters. Age bounds that are not
// integers are ignored rather than rejected.
func ParseFilter(q url.Values) Filter {
	f := Filter{
		Search:     strings.TrimSpace(q.Get("search")),
		House:      strings.TrimSpace(q.Get("house")),
		Role:       strings.TrimSpace(q.Get("role")),
		Strength:   strings.TrimSpace(q.Get("strength")),
		AgeMin:     parseOptionalInt(q.Get("age_more_than")),
		AgeMax:     parseOptionalInt(q.Get("age_less_than")),
		SortColumn: q.Get("sort_column"),
		SortOrder:  q.Get("sort_order"),
		Page:       1,
	}
	if page, err := strconv.Atoi(q.Get("page")); err == nil {
		f.Page = page
	}
	f.normalize()
	return f
}

func (f *Filter) normalize() {
	if f.SortColumn == "" {
		f.SortColumn = "name"
	}
	if strings.EqualFold(f.SortOrder, "desc") {
		f.SortOrder = "desc"
	} else {
		f.SortOrder = "asc"
	}
	f.Page = pagination.Normalize(f.Page)
}

// Query returns the filter as query parameters, without the page number.
func (f Filter) Query() url.Values {
	v := url.Values{}
	set := func(key, value string) {
		if value != "" {
			v.Set(key, value)
		}
	}
	set("search", f.Search)
	set("house", f.House)
	set("role", f.Role)
	set("strength", f.Strength)
	if f.AgeMin != nil {
		v.Set("age_more_than", strconv.Itoa(*f.AgeMin))
	}
	if f.AgeMax != nil {
		v.Set("age_less_than", strconv.Itoa(*f.AgeMax))
	}
	set("sort_column", f.SortColumn)
	set("sort_order", f.SortOrder)
	return v
}

// Scope builds the filtered, unordered query over the owner's characters.
func Scope(db *gorm.DB, ownerID uint, f Filter) *gorm.DB {
	q := db.Model(&models.Character{}).Where("user_id = ?", ownerID)

	if f.Search != "" {
		q = q.Where("LOWER(name) LIKE ? ESCAPE '!'", likePattern(f.Search))
	}
	if f.House != "" {
		q = q.Where("house_id IN (?)", nameSubquery(db, &models.House{}, f.House))
	}
	if f.Role != "" {
		q = q.Where("role_id IN (?)", nameSubquery(db, &models.Role{}, f.Role))
	}
	if f.Strength != "" {
		q = q.Where("strength_id IN (?)", nameSubquery(db, &models.Strength{}, f.Strength))
	}
	if f.AgeMin != nil {
		q = q.Where("age >= ?", *f.AgeMin)
	}
	if f.AgeMax != nil {
		q = q.Where("age <= ?", *f.AgeMax)
	}
	return q
}

// List returns one page of the owner's characters matching f. The total is
// counted with a separate query before the page is fetched.
func List(db *gorm.DB, ownerID uint, f Filter, pageSize int) (*pagination.Page[models.Character], error) {
	f.normalize()
	if !SortableColumns[f.SortColumn] {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSortColumn, f.SortColumn)
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	order := clause.OrderByColumn{
		Column: clause.Column{Name: f.SortColumn},
		Desc:   f.SortOrder == "desc",
	}
	page, err := pagination.Paginate[models.Character](Scope(db, ownerID, f), f.Page, pageSize, func(tx *gorm.DB) *gorm.DB {
		return tx.Order(order).Order("id").Preload("House").Preload("Role").Preload("Strength")
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabase, err)
	}
	return page, nil
}

func nameSubquery(db *gorm.DB, model any, name string) *gorm.DB {
	return db.Model(model).Select("id").Where("LOWER(name) LIKE ? ESCAPE '!'", likePattern(name))
}

// likeEscaper makes user text match literally inside a LIKE pattern. '!' is
// the escape character because a backslash literal is not portable to MySQL.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func likePattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}

func parseOptionalInt(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}
