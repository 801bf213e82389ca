// Package chardata looks up seed attributes for new characters in a static
// JSON dataset keyed by character name.
package chardata

import (
	"encoding/json"
	"log"
	"os"
	"strings"
	"sync"

	"golang.org/x/text/cases"
)

// Record is one entry of the dataset.
type Record struct {
	Name     string `json:"name"`
	House    string `json:"house"`
	Role     string `json:"role"`
	Strength string `json:"strength"`
	Animal   string `json:"animal"`
	Symbol   string `json:"symbol"`
	Nickname string `json:"nickname"`
	Age      *int   `json:"age"`
	Death    *int   `json:"death"`
}

// Source finds the record for a character name. A false result covers every
// failure: no match, no backing data, unreadable data.
type Source interface {
	Lookup(name string) (*Record, bool)
}

// FileSource reads a JSON array of records from Path on every lookup, so
// edits to the file are picked up without a restart.
type FileSource struct {
	Path string
}

// Lookup returns the first record whose name contains name, ignoring case.
func (s FileSource) Lookup(name string) (*Record, bool) {
	if s.Path == "" {
		log.Println("chardata: CHARACTERS_JSON_PATH is not set")
		return nil, false
	}

	b, err := os.ReadFile(s.Path)
	if err != nil {
		log.Printf("chardata: read %s: %v", s.Path, err)
		return nil, false
	}

	var records []Record
	if err := json.Unmarshal(b, &records); err != nil {
		log.Printf("chardata: could not parse %s: %v", s.Path, err)
		return nil, false
	}

	if rec := match(records, name); rec != nil {
		return rec, true
	}
	log.Printf("chardata: character %q not found", name)
	return nil, false
}

// StaticSource serves a fixed in-memory dataset.
type StaticSource []Record

// Lookup implements Source.
func (s StaticSource) Lookup(name string) (*Record, bool) {
	rec := match(s, name)
	return rec, rec != nil
}

func match(records []Record, name string) *Record {
	fold := cases.Fold()
	needle := fold.String(name)
	for i := range records {
		if strings.Contains(fold.String(records[i].Name), needle) {
			rec := records[i]
			return &rec
		}
	}
	return nil
}

var (
	mu      sync.RWMutex
	current Source = FileSource{}
)

// SetSource replaces the process-wide source.
func SetSource(s Source) {
	mu.Lock()
	defer mu.Unlock()
	current = s
}

// GetSource returns the process-wide source.
func GetSource() Source {
	mu.RLock()
	defer mu.RUnlock()
	return current
}
