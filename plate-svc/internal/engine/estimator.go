package engine

import (
	"math"
	"strings"

	"portion-vision/plate-svc/internal/domain"
)

const (
	MinDailyCalories = 1200
	MaxDailyCalories = 4000

	loseDeficit = 400
	gainSurplus = 300
)

var activityMultipliers = map[string]float64{
	"sedentary": 1.2,
	"light":     1.375,
	"moderate":  1.55,
	"active":    1.725,
}

const defaultActivityMultiplier = 1.55

var mealFractions = map[string]float64{
	"breakfast": 0.25,
	"lunch":     0.35,
	"dinner":    0.30,
	"snack":     0.10,
}

const defaultMealFraction = 0.33

// ActivityMultiplier matches the first word of level against the table.
func ActivityMultiplier(level string) float64 {
	fields := strings.Fields(strings.ToLower(level))
	if len(fields) == 0 {
		return defaultActivityMultiplier
	}
	if m, ok := activityMultipliers[fields[0]]; ok {
		return m
	}
	return defaultActivityMultiplier
}

// BMR is the Mifflin-St Jeor basal rate.
func BMR(p domain.UserProfile) float64 {
	base := 10*p.WeightKg + 6.25*p.HeightCm - 5*float64(p.Age)
	if strings.ToLower(p.Sex) == "female" {
		return base - 161
	}
	return base + 5
}

// EstimateDailyCalories returns the goal-adjusted TDEE, rounded and clamped
// to [MinDailyCalories, MaxDailyCalories]. Zero-valued fields take defaults.
func EstimateDailyCalories(p domain.UserProfile) int {
	p = withDefaults(p)
	tdee := BMR(p) * ActivityMultiplier(p.ActivityLevel)

	goal := strings.ToLower(p.Goal)
	if strings.Contains(goal, "lose") {
		tdee -= loseDeficit
	}
	if strings.Contains(goal, "gain") {
		tdee += gainSurplus
	}
	return int(math.Round(math.Max(MinDailyCalories, math.Min(MaxDailyCalories, tdee))))
}

// MealFraction is the share of daily calories for a meal slot.
func MealFraction(mealType string) float64 {
	if f, ok := mealFractions[strings.ToLower(strings.TrimSpace(mealType))]; ok {
		return f
	}
	return defaultMealFraction
}

func withDefaults(p domain.UserProfile) domain.UserProfile {
	if p.WeightKg <= 0 || math.IsNaN(p.WeightKg) {
		p.WeightKg = DefaultWeightKg
	}
	if p.HeightCm <= 0 || math.IsNaN(p.HeightCm) {
		p.HeightCm = DefaultHeightCm
	}
	if p.Age <= 0 {
		p.Age = DefaultAge
	}
	if p.Sex == "" {
		p.Sex = DefaultSex
	}
	if p.ActivityLevel == "" {
		p.ActivityLevel = DefaultActivity
	}
	if p.Goal == "" {
		p.Goal = DefaultGoal
	}
	return p
}
