package character

import (
	"errors"
	"math"
	"net/url"
	"testing"

	"charactervault/web/internal/database/dbtest"
)

func TestParseFilter(t *testing.T) {
	q := url.Values{
		"search":        {"  harry "},
		"house":         {"Gryffindor"},
		"age_more_than": {"10"},
		"age_less_than": {"ten"},
		"sort_order":    {"DESC"},
		"page":          {"-3"},
	}
	f := ParseFilter(q)

	if f.Search != "harry" || f.House != "Gryffindor" {
		t.Fatalf("unexpected text filters: %+v", f)
	}
	if f.AgeMin == nil || *f.AgeMin != 10 {
		t.Fatalf("expected age min 10, got %v", f.AgeMin)
	}
	if f.AgeMax != nil {
		t.Fatalf("expected non-numeric age bound to be ignored, got %v", *f.AgeMax)
	}
	if f.SortColumn != "name" || f.SortOrder != "desc" || f.Page != 1 {
		t.Fatalf("unexpected defaults: %+v", f)
	}

	back := f.Query()
	if back.Get("search") != "harry" || back.Get("age_more_than") != "10" || back.Has("page") || back.Has("age_less_than") {
		t.Fatalf("unexpected query round trip: %v", back)
	}
}

func TestParseFilterSortOrder(t *testing.T) {
	for in, want := range map[string]string{
		"":     "asc",
		"asc":  "asc",
		"desc": "desc",
		"Desc": "desc",
		"DESC": "desc",
		"up":   "asc",
	} {
		if got := ParseFilter(url.Values{"sort_order": {in}}).SortOrder; got != want {
			t.Fatalf("sort_order %q: got %q, want %q", in, got, want)
		}
	}
}

func TestListOnlyOwnerRows(t *testing.T) {
	db := dbtest.Open(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	seedCharacter(t, db, alice, "Harry Potter", intPtr(17))
	seedCharacter(t, db, bob, "Draco Malfoy", intPtr(17))

	page, err := List(db, alice, Filter{}, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Meta.TotalItems != 1 || len(page.Data) != 1 {
		t.Fatalf("expected one row, got total=%d len=%d", page.Meta.TotalItems, len(page.Data))
	}
	for _, c := range page.Data {
		if c.UserID == nil || *c.UserID != alice {
			t.Fatalf("row %q belongs to someone else", c.Name)
		}
	}
}

func TestListAgeBoundsInclusive(t *testing.T) {
	db := dbtest.Open(t)
	uid := seedUser(t, db, "alice")
	seedCharacter(t, db, uid, "Nine", intPtr(9))
	seedCharacter(t, db, uid, "Ten", intPtr(10))
	seedCharacter(t, db, uid, "Fifteen", intPtr(15))
	seedCharacter(t, db, uid, "Twenty", intPtr(20))
	seedCharacter(t, db, uid, "TwentyOne", intPtr(21))
	seedCharacter(t, db, uid, "Ageless", nil)

	page, err := List(db, uid, Filter{AgeMin: intPtr(10), AgeMax: intPtr(20), SortColumn: "age"}, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var names []string
	for _, c := range page.Data {
		names = append(names, c.Name)
	}
	want := []string{"Ten", "Fifteen", "Twenty"}
	if len(names) != len(want) {
		t.Fatalf("got %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("got %v, want %v", names, want)
		}
	}
}

func TestListSearchAndTaxonomyFilters(t *testing.T) {
	db := dbtest.Open(t)
	uid := seedUser(t, db, "alice")
	for _, name := range []string{"Harry Potter", "Severus Snape"} {
		if _, err := Create(db, testData, uid, name); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	tests := []struct {
		name   string
		filter Filter
		want   string
	}{
		{"search ignores case", Filter{Search: "HARRY"}, "Harry Potter"},
		{"house substring", Filter{House: "slyth"}, "Severus Snape"},
		{"role", Filter{Role: "professor"}, "Severus Snape"},
		{"strength", Filter{Strength: "brav"}, "Harry Potter"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := List(db, uid, tt.filter, 10)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(page.Data) != 1 || page.Data[0].Name != tt.want {
				t.Fatalf("expected only %q, got %+v", tt.want, page.Data)
			}
		})
	}
}

func TestListSearchMatchesWildcardsLiterally(t *testing.T) {
	db := dbtest.Open(t)
	uid := seedUser(t, db, "alice")
	seedCharacter(t, db, uid, "Harry Potter", nil)
	seedCharacter(t, db, uid, "Ron", nil)
	seedCharacter(t, db, uid, "100% Pure_Blood!", nil)

	tests := []struct {
		search string
		want   []string
	}{
		{"%", []string{"100% Pure_Blood!"}},
		{"_", []string{"100% Pure_Blood!"}},
		{"!", []string{"100% Pure_Blood!"}},
		{"r_n", nil},
		{"ro", []string{"Ron"}},
	}
	for _, tt := range tests {
		page, err := List(db, uid, Filter{Search: tt.search}, 10)
		if err != nil {
			t.Fatalf("search %q: %v", tt.search, err)
		}
		var got []string
		for _, c := range page.Data {
			got = append(got, c.Name)
		}
		if len(got) != len(tt.want) {
			t.Fatalf("search %q: got %v, want %v", tt.search, got, tt.want)
		}
		for i := range tt.want {
			if got[i] != tt.want[i] {
				t.Fatalf("search %q: got %v, want %v", tt.search, got, tt.want)
			}
		}
	}
}

func TestListTaxonomyFilterMatchesWildcardsLiterally(t *testing.T) {
	db := dbtest.Open(t)
	uid := seedUser(t, db, "alice")
	if _, err := Create(db, testData, uid, "Harry Potter"); err != nil {
		t.Fatalf("create: %v", err)
	}

	for _, filter := range []Filter{{House: "%"}, {Role: "_"}, {Strength: "%a%"}} {
		page, err := List(db, uid, filter, 10)
		if err != nil {
			t.Fatalf("list %+v: %v", filter, err)
		}
		if len(page.Data) != 0 {
			t.Fatalf("filter %+v matched %d rows", filter, len(page.Data))
		}
	}
}

func TestListClampsHugePage(t *testing.T) {
	db := dbtest.Open(t)
	uid := seedUser(t, db, "alice")
	for _, name := range []string{"Albus", "Bellatrix", "Cedric", "Dobby", "Errol", "Fawkes", "Ginny"} {
		seedCharacter(t, db, uid, name, nil)
	}

	page, err := List(db, uid, Filter{Page: math.MaxInt}, 5)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Meta.CurrentPage != 2 || len(page.Data) != 2 || page.Data[0].Name != "Fawkes" {
		t.Fatalf("expected the last page, got meta=%+v rows=%d", page.Meta, len(page.Data))
	}
}

func TestListSortAndPaginate(t *testing.T) {
	db := dbtest.Open(t)
	uid := seedUser(t, db, "alice")
	for i, name := range []string{"Albus", "Bellatrix", "Cedric", "Dobby", "Errol", "Fawkes", "Ginny"} {
		seedCharacter(t, db, uid, name, intPtr(i+1))
	}

	page, err := List(db, uid, Filter{SortColumn: "name", SortOrder: "desc", Page: 2}, 5)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Meta.TotalItems != 7 || page.Meta.TotalPages != 2 || page.Meta.CurrentPage != 2 {
		t.Fatalf("unexpected meta: %+v", page.Meta)
	}
	if len(page.Data) != 2 || page.Data[0].Name != "Bellatrix" || page.Data[1].Name != "Albus" {
		t.Fatalf("unexpected second page: %+v", page.Data)
	}
	if page.Meta.HasNext() || !page.Meta.HasPrev() {
		t.Fatalf("unexpected navigation flags: %+v", page.Meta)
	}
}

func TestListRejectsUnknownSortColumn(t *testing.T) {
	db := dbtest.Open(t)
	uid := seedUser(t, db, "alice")

	_, err := List(db, uid, Filter{SortColumn: "name; DROP TABLE users"}, 5)
	if !errors.Is(err, ErrInvalidSortColumn) {
		t.Fatalf("expected ErrInvalidSortColumn, got %v", err)
	}
}
