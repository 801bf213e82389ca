// Package web holds the server-rendered HTML templates.
package web

import (
	"embed"
	"html/template"
	"net/url"
	"strconv"
	"time"

	"charactervault/web/internal/character"

	"gorm.io/datatypes"
)

//go:embed templates/*.html templates/partials/*.html
var templatesFS embed.FS

// UploadURL is where uploaded profile pictures are served from.
const UploadURL = "/static/upload"

// Templates parses every page and partial. Templates are addressed by file
// name, e.g. "login.html" or "manage_character_content.html".
func Templates() (*template.Template, error) {
	return template.New("").Funcs(Funcs).ParseFS(templatesFS, "templates/*.html", "templates/partials/*.html")
}

// Funcs are the helpers available to every template.
var Funcs = template.FuncMap{
	"deref":    deref,
	"date":     date,
	"pageURL":  pageURL,
	"sortURL":  sortURL,
	"imageURL": imageURL,
}

func deref(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

func date(d *datatypes.Date) string {
	if d == nil {
		return ""
	}
	return time.Time(*d).Format("2006-01-02")
}

// pageURL is the list URL for page with the current filters kept.
func pageURL(query url.Values, page int) string {
	q := clone(query)
	q.Set("page", strconv.Itoa(page))
	return "?" + q.Encode()
}

// sortURL orders by column, flipping the direction when the list is
// already sorted by it.
func sortURL(f character.Filter, column string) string {
	q := f.Query()
	order := "asc"
	if f.SortColumn == column && f.SortOrder == "asc" {
		order = "desc"
	}
	q.Set("sort_column", column)
	q.Set("sort_order", order)
	return "?" + q.Encode()
}

func imageURL(name string) string {
	if name == "" {
		return ""
	}
	return UploadURL + "/" + url.PathEscape(name)
}

func clone(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}
