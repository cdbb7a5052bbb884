// Package engine holds the portion-recommendation logic: item
// classification, daily calorie estimation and plate building. Everything
// here is synchronous and free of I/O.
package engine

import "portion-vision/plate-svc/internal/domain"

// FoodLookup finds a record by name, ignoring case.
type FoodLookup interface {
	Lookup(name string) (domain.FoodRecord, bool)
}

type Classifier struct {
	foods FoodLookup
}

// NewClassifier builds a classifier over foods. A nil lookup means every
// name goes through the keyword fallback.
func NewClassifier(foods FoodLookup) *Classifier {
	return &Classifier{foods: foods}
}

func (c *Classifier) Classify(name string) domain.ClassifiedItem {
	var rec domain.FoodRecord
	found := false
	if c.foods != nil {
		rec, found = c.foods.Lookup(name)
	}
	if !found {
		rec = Fallback(name)
	} else {
		rec = fillGaps(rec)
	}
	return domain.ClassifiedItem{FoodRecord: rec, Role: DeriveRole(rec)}
}

// fillGaps completes a knowledge-base row that omits core fields using the
// keyword fallback for its name.
func fillGaps(rec domain.FoodRecord) domain.FoodRecord {
	if rec.Category != "" && rec.UnitType != "" && rec.ServingSize > 0 && rec.Calories > 0 {
		return rec
	}
	fb := Fallback(rec.Name)
	if rec.Category == "" {
		rec.Category = fb.Category
	}
	if rec.UnitType == "" {
		rec.UnitType = fb.UnitType
	}
	if rec.ServingSize <= 0 {
		rec.ServingSize = fb.ServingSize
	}
	if rec.Calories <= 0 {
		rec.Calories = fb.Calories
	}
	return rec
}
