package pagination

import "gorm.io/gorm"

// Meta defines the structure for pagination metadata.
type Meta struct {
	TotalItems  int64 `json:"total_items"`
	TotalPages  int   `json:"total_pages"`
	CurrentPage int   `json:"current_page"`
	PageSize    int   `json:"page_size"`
}

// HasPrev reports whether a page exists before the current one.
func (m Meta) HasPrev() bool { return m.CurrentPage > 1 }

// HasNext reports whether a page exists after the current one.
func (m Meta) HasNext() bool { return m.CurrentPage < m.TotalPages }

// PrevPage is the previous page number, clamped to 1.
func (m Meta) PrevPage() int {
	if m.CurrentPage <= 1 {
		return 1
	}
	return m.CurrentPage - 1
}

// NextPage is the next page number.
func (m Meta) NextPage() int { return m.CurrentPage + 1 }

// Page defines the structure for a paginated list of any type.
type Page[T any] struct {
	Data []T  `json:"data"`
	Meta Meta `json:"meta"`
}

// NewPage creates a new Page.
func NewPage[T any](data []T, totalItems int64, page, limit int) Page[T] {
	if limit <= 0 {
		limit = 1
	}
	if data == nil {
		data = []T{}
	}
	return Page[T]{
		Data: data,
		Meta: Meta{
			TotalItems:  totalItems,
			TotalPages:  (int(totalItems) + limit - 1) / limit,
			CurrentPage: page,
			PageSize:    limit,
		},
	}
}

// Normalize clamps a requested page number to at least 1.
func Normalize(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// Paginate counts the rows matched by query, then fetches one page of them.
// A page past the end is clamped to the last page. The fetch scopes
// (ordering, preloads) are applied to the page query only.
func Paginate[T any](query *gorm.DB, page, limit int, fetch ...func(*gorm.DB) *gorm.DB) (*Page[T], error) {
	page = Normalize(page)
	if limit < 1 {
		limit = 1
	}
	base := query.Session(&gorm.Session{})

	var totalItems int64
	if err := base.Model(new(T)).Count(&totalItems).Error; err != nil {
		return nil, err
	}
	if last := Normalize(int((totalItems + int64(limit) - 1) / int64(limit))); page > last {
		page = last
	}

	var results []T
	offset := (page - 1) * limit
	if err := base.Scopes(fetch...).Offset(offset).Limit(limit).Find(&results).Error; err != nil {
		return nil, err
	}

	response := NewPage(results, totalItems, page, limit)
	return &response, nil
}
