package engine

import (
	"math"
	"strings"

	"portion-vision/plate-svc/internal/domain"
)

func BMI(p domain.UserProfile) float64 {
	p = withDefaults(p)
	m := p.HeightCm / 100
	return math.Round(p.WeightKg/(m*m)*100) / 100
}

// ProteinPerKg is the daily protein target in grams per kg of body weight.
func ProteinPerKg(goal string) float64 {
	goal = strings.ToLower(goal)
	switch {
	case strings.Contains(goal, "gain"):
		return 1.6
	case strings.Contains(goal, "lose"):
		return 1.2
	default:
		return 0.8
	}
}

func Insights(p domain.UserProfile) domain.ProfileInsights {
	p = withDefaults(p)
	return domain.ProfileInsights{
		BMI:               BMI(p),
		DailyCalories:     EstimateDailyCalories(p),
		DailyProteinGrams: int(math.Round(p.WeightKg * ProteinPerKg(p.Goal))),
	}
}
