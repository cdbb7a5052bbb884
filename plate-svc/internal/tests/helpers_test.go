package tests

import (
	"portion-vision/plate-svc/internal/domain"
	"portion-vision/plate-svc/internal/knowledge"
)

func fixtureBase() *knowledge.Base {
	return knowledge.NewBase([]domain.FoodRecord{
		{Name: "Jeera Rice", Category: domain.CategoryCarbBase, UnitType: "bowl", ServingSize: 200, Calories: 260, Tags: []string{"veg"}},
		{Name: "Dal Tadka", Category: domain.CategoryProteinMain, ProteinLevel: "high", UnitType: "bowl", ServingSize: 150, Calories: 190, Tags: []string{"veg"}},
		{Name: "Curd", Category: domain.CategoryCondiment, UnitType: "bowl", ServingSize: 100, Calories: 60, Tags: []string{"dairy"}},
		{Name: "Gulab Jamun", Category: domain.CategoryDessert, UnitType: "piece", ServingSize: 50, Calories: 175},
	})
}
