package engine

import (
	"strings"

	"portion-vision/plate-svc/internal/domain"
)

type fallbackRule struct {
	keywords []string
	record   domain.FoodRecord
}

// Checked top to bottom. Mixed-dish keywords come before plain "rice".
var fallbackRules = []fallbackRule{
	{
		keywords: []string{"biryani", "pulao", "fried rice", "khichdi"},
		record:   domain.FoodRecord{Category: domain.CategoryCarbBase, MealRole: "mixed", UnitType: "bowl", ServingSize: 250, Calories: 300},
	},
	{
		keywords: []string{"rice"},
		record:   domain.FoodRecord{Category: domain.CategoryCarbBase, UnitType: "bowl", ServingSize: 200, Calories: 250},
	},
	{
		keywords: []string{"roti", "chapati", "naan", "paratha", "bread"},
		record:   domain.FoodRecord{Category: domain.CategoryCarbBase, UnitType: "piece", ServingSize: 50, Calories: 100},
	},
	{
		keywords: []string{"chicken", "egg", "fish", "paneer"},
		record:   domain.FoodRecord{Category: domain.CategoryProteinMain, UnitType: "bowl", ServingSize: 150, Calories: 220},
	},
	{
		keywords: []string{"dal", "sambar", "rajma", "chole"},
		record:   domain.FoodRecord{Category: domain.CategoryProteinMain, UnitType: "bowl", ServingSize: 150, Calories: 180},
	},
	{
		keywords: []string{"sabji", "fry", "poriyal", "bhaji"},
		record:   domain.FoodRecord{Category: domain.CategorySide, UnitType: "bowl", ServingSize: 150, Calories: 140},
	},
	{
		keywords: []string{"salad", "raita", "curd"},
		record:   domain.FoodRecord{Category: domain.CategorySide, UnitType: "bowl", ServingSize: 100, Calories: 80},
	},
	{
		keywords: []string{"sweet", "halwa", "jamun", "laddu"},
		record:   domain.FoodRecord{Category: domain.CategoryDessert, UnitType: "piece", ServingSize: 50, Calories: 200},
	},
}

var genericRecord = domain.FoodRecord{Category: domain.CategoryOther, UnitType: "serving", ServingSize: 100, Calories: 150}

// Fallback synthesizes a record from keywords in the name. It always returns
// a record with category, unit, serving size and calories set.
func Fallback(name string) domain.FoodRecord {
	lowered := strings.ToLower(name)
	rec := genericRecord
	for _, rule := range fallbackRules {
		if containsAny(lowered, rule.keywords) {
			rec = rule.record
			break
		}
	}
	rec.Name = name
	return rec
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
