// Package knowledge holds the read-only food table consulted by the
// classifier. A Base is built once at startup and never mutated.
package knowledge

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"portion-vision/plate-svc/internal/domain"
)

var (
	nonAlnum   = regexp.MustCompile(`[^a-z0-9\s]`)
	whitespace = regexp.MustCompile(`\s+`)
)

// Normalize lowercases a food name, drops punctuation and collapses spaces.
func Normalize(text string) string {
	text = nonAlnum.ReplaceAllString(strings.ToLower(text), "")
	return strings.TrimSpace(whitespace.ReplaceAllString(text, " "))
}

type Base struct {
	records []domain.FoodRecord
	byName  map[string]int
}

func NewBase(records []domain.FoodRecord) *Base {
	b := &Base{
		records: make([]domain.FoodRecord, 0, len(records)),
		byName:  make(map[string]int, len(records)),
	}
	for _, rec := range records {
		key := strings.ToLower(strings.TrimSpace(rec.Name))
		if key == "" {
			continue
		}
		if _, dup := b.byName[key]; dup {
			continue
		}
		b.byName[key] = len(b.records)
		b.records = append(b.records, rec)
	}
	return b
}

// Load reads a JSON array of food records. A missing file yields an empty
// base and no error; a corrupt file yields an empty base and the parse error.
func Load(path string) (*Base, error) {
	if path == "" {
		return NewBase(nil), nil
	}
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return NewBase(nil), nil
	}
	if err != nil {
		return NewBase(nil), fmt.Errorf("read knowledge base %s: %w", path, err)
	}

	var records []domain.FoodRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return NewBase(nil), fmt.Errorf("parse knowledge base %s: %w", path, err)
	}
	return NewBase(records), nil
}

// Lookup finds a record by exact name, ignoring case.
func (b *Base) Lookup(name string) (domain.FoodRecord, bool) {
	idx, ok := b.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return domain.FoodRecord{}, false
	}
	return cloneRecord(b.records[idx]), true
}

func (b *Base) Search(query string) []domain.FoodRecord {
	q := Normalize(query)
	out := []domain.FoodRecord{}
	if q == "" {
		return out
	}
	for _, rec := range b.records {
		if strings.Contains(Normalize(rec.Name), q) {
			out = append(out, cloneRecord(rec))
		}
	}
	return out
}

func (b *Base) All() []domain.FoodRecord {
	out := make([]domain.FoodRecord, 0, len(b.records))
	for _, rec := range b.records {
		out = append(out, cloneRecord(rec))
	}
	return out
}

func (b *Base) Len() int { return len(b.records) }

func cloneRecord(rec domain.FoodRecord) domain.FoodRecord {
	if rec.Tags != nil {
		rec.Tags = append([]string(nil), rec.Tags...)
	}
	return rec
}
