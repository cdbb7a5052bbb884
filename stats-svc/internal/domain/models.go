package domain

import "time"

const PlateRecommendedEvent = "plate_recommended"

// AllMeals aggregates every meal type.
const AllMeals = "all"

type PlateItem struct {
	Item     string  `json:"item"`
	Role     string  `json:"role"`
	Quantity float64 `json:"quantity"`
	Calories int     `json:"calories"`
}

// PlateEvent is the message plate-svc publishes on the plates topic.
type PlateEvent struct {
	Type             string      `json:"type"`
	RecommendationID string      `json:"recommendation_id"`
	MealType         string      `json:"meal_type"`
	Items            []PlateItem `json:"items"`
	TotalCalories    int         `json:"total_calories"`
	Timestamp        time.Time   `json:"timestamp"`
}

type ItemCount struct {
	Item  string `json:"item"`
	Count int64  `json:"count"`
}

type CalorieStats struct {
	MealType string  `json:"meal_type"`
	Average  float64 `json:"average"`
	Count    int64   `json:"count"`
}

type DailyStats struct {
	Date   string `json:"date"`
	Plates int64  `json:"plates"`
}
