package domain

import "time"

type Category string

const (
	CategoryCarbBase    Category = "carb_base"
	CategoryProteinMain Category = "protein_main"
	CategorySide        Category = "side"
	CategorySnack       Category = "snack"
	CategoryBeverage    Category = "beverage"
	CategoryCondiment   Category = "condiment"
	CategoryDessert     Category = "dessert"
	CategoryOther       Category = "other"
)

type Role string

const (
	RoleCarb    Role = "carb"
	RoleProtein Role = "protein"
	RoleVeg     Role = "veg"
	RoleSide    Role = "side"
	RoleMixed   Role = "mixed"
	RoleSnack   Role = "snack"
	RoleAddon   Role = "addon"
	RoleLimit   Role = "limit"
	RoleOther   Role = "other"
)

// FoodRecord is one knowledge-base row. Calories are per recommended unit.
type FoodRecord struct {
	Name         string   `json:"name"`
	Category     Category `json:"category"`
	UnitType     string   `json:"unit_type"`
	ServingSize  float64  `json:"serving_size"`
	Calories     float64  `json:"calories"`
	ProteinLevel string   `json:"protein_level,omitempty"`
	MealRole     string   `json:"meal_role,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	DishType     string   `json:"dish_type,omitempty"`
}

type ClassifiedItem struct {
	FoodRecord
	Role Role `json:"role"`
}

type UserProfile struct {
	WeightKg       float64 `json:"weight_kg"`
	HeightCm       float64 `json:"height_cm"`
	Age            int     `json:"age"`
	Sex            string  `json:"sex"`
	ActivityLevel  string  `json:"activity_level"`
	Goal           string  `json:"goal"`
	DietPreference string  `json:"diet_preference,omitempty"`
}

type PlateEntry struct {
	Item                string  `json:"item"`
	DishType            string  `json:"dish_type,omitempty"`
	Role                Role    `json:"role"`
	RecommendedQuantity float64 `json:"recommendedQuantity"`
	Unit                string  `json:"unit"`
	ServingSize         float64 `json:"serving_size"`
	EstimatedCalories   int     `json:"estimatedCalories"`
	Reason              string  `json:"reason"`
	Icon                string  `json:"icon"`
}

type OptionalItem struct {
	ClassifiedItem
	Note  string `json:"note"`
	Limit string `json:"limit"`
}

type AvoidItem struct {
	Item   string `json:"item"`
	Reason string `json:"reason"`
}

type Summary struct {
	DailyCalories      int    `json:"dailyCalories"`
	TargetMealCalories int    `json:"targetMealCalories"`
	TotalPlateCalories int    `json:"totalPlateCalories"`
	PlateLogic         string `json:"plateLogic"`
	Notes              string `json:"notes"`
}

type RecommendationResult struct {
	ID               string         `json:"id,omitempty"`
	MealType         string         `json:"mealType"`
	RecommendedPlate []PlateEntry   `json:"recommendedPlate"`
	OptionalItems    []OptionalItem `json:"optionalItems"`
	AvoidOrLimit     []AvoidItem    `json:"avoidOrLimit"`
	Summary          Summary        `json:"summary"`
	CreatedAt        time.Time      `json:"createdAt,omitzero"`
}

type ProfileInsights struct {
	BMI               float64 `json:"bmi"`
	DailyCalories     int     `json:"dailyCalories"`
	DailyProteinGrams int     `json:"dailyProteinGrams"`
}

// StoredProfile is a saved user profile keyed by a caller-chosen id.
type StoredProfile struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Profile   UserProfile `json:"profile"`
	UpdatedAt time.Time   `json:"updated_at"`
}

type ProfileView struct {
	StoredProfile
	Insights ProfileInsights `json:"insights"`
}

// Menu is the list of item names offered on a given day.
type Menu struct {
	Date      string    `json:"date"`
	Items     []string  `json:"menuItems"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}

// RecommendRequest keeps the loosely typed fields as decoded JSON; the
// service coerces them.
type RecommendRequest struct {
	Profile   any    `json:"profile"`
	ProfileID string `json:"profileId"`
	MenuItems any    `json:"menuItems"`
	MealType  any    `json:"mealType"`
}

type PlateEventItem struct {
	Item     string  `json:"item"`
	Role     Role    `json:"role"`
	Quantity float64 `json:"quantity"`
	Calories int     `json:"calories"`
}

// PlateEvent is published to Kafka after each recommendation.
type PlateEvent struct {
	Type             string           `json:"type"`
	RecommendationID string           `json:"recommendation_id"`
	MealType         string           `json:"meal_type"`
	Items            []PlateEventItem `json:"items"`
	TotalCalories    int              `json:"total_calories"`
	Timestamp        time.Time        `json:"timestamp"`
}

const PlateRecommendedEvent = "plate_recommended"
