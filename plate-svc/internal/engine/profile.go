package engine

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"

	"portion-vision/plate-svc/internal/domain"
)

const (
	DefaultWeightKg = 70.0
	DefaultHeightCm = 170.0
	DefaultAge      = 25
	DefaultSex      = "male"
	DefaultActivity = "moderate"
	DefaultGoal     = "maintain"
)

// Accepted field names per attribute, in lookup order.
var (
	WeightKeys   = []string{"weight_kg", "weightKg", "weight"}
	HeightKeys   = []string{"height_cm", "heightCm", "height"}
	AgeKeys      = []string{"age"}
	SexKeys      = []string{"sex", "gender"}
	ActivityKeys = []string{"activity_level", "activityLevel"}
	GoalKeys     = []string{"goalType", "goal_type", "goal"}
	DietKeys     = []string{"diet_preference", "dietPreference"}
	NameKeys     = []string{"name"}
)

func DefaultProfile() domain.UserProfile {
	return domain.UserProfile{
		WeightKg:      DefaultWeightKg,
		HeightCm:      DefaultHeightCm,
		Age:           DefaultAge,
		Sex:           DefaultSex,
		ActivityLevel: DefaultActivity,
		Goal:          DefaultGoal,
	}
}

// NormalizeProfile turns loosely typed caller input into a canonical profile.
// Unknown, empty, unparseable or non-positive values take the defaults.
func NormalizeProfile(raw map[string]any) domain.UserProfile {
	p := DefaultProfile()
	if v, ok := positiveField(raw, WeightKeys...); ok {
		p.WeightKg = v
	}
	if v, ok := positiveField(raw, HeightKeys...); ok {
		p.HeightCm = v
	}
	if v, ok := positiveField(raw, AgeKeys...); ok && int(math.Trunc(v)) > 0 {
		p.Age = int(math.Trunc(v))
	}
	if v, ok := StringField(raw, SexKeys...); ok {
		p.Sex = strings.ToLower(v)
	}
	if v, ok := StringField(raw, ActivityKeys...); ok {
		p.ActivityLevel = strings.ToLower(v)
	}
	if v, ok := StringField(raw, GoalKeys...); ok {
		p.Goal = strings.ToLower(v)
	}
	if v, ok := StringField(raw, DietKeys...); ok {
		p.DietPreference = strings.ToLower(v)
	}
	return p
}

// ProfileFields is the inverse of NormalizeProfile, using snake_case keys.
func ProfileFields(p domain.UserProfile) map[string]any {
	fields := map[string]any{
		"weight_kg":      p.WeightKg,
		"height_cm":      p.HeightCm,
		"age":            p.Age,
		"sex":            p.Sex,
		"activity_level": p.ActivityLevel,
		"goal":           p.Goal,
	}
	if p.DietPreference != "" {
		fields["diet_preference"] = p.DietPreference
	}
	return fields
}

// positiveField skips aliases holding zero or negative values, so a blank
// weight_kg still lets a usable weight through.
func positiveField(raw map[string]any, keys ...string) (float64, bool) {
	for _, key := range keys {
		if v, ok := NumberField(raw, key); ok && v > 0 {
			return v, true
		}
	}
	return 0, false
}

var leadingNumber = regexp.MustCompile(`^[-+]?(\d+\.?\d*|\.\d+)`)

// NumberField returns the first of keys holding a number or a string that
// starts with one.
func NumberField(raw map[string]any, keys ...string) (float64, bool) {
	for _, key := range keys {
		val, ok := raw[key]
		if !ok || val == nil {
			continue
		}
		if f, ok := toNumber(val); ok {
			return f, true
		}
	}
	return 0, false
}

func toNumber(val any) (float64, bool) {
	switch v := val.(type) {
	case float64:
		return v, !math.IsNaN(v) && !math.IsInf(v, 0)
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		m := leadingNumber.FindString(strings.TrimSpace(v))
		if m == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(m, 64)
		return f, err == nil
	}
	return 0, false
}

// StringField returns the first of keys holding a non-blank string.
func StringField(raw map[string]any, keys ...string) (string, bool) {
	for _, key := range keys {
		s, ok := raw[key].(string)
		if !ok {
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			return s, true
		}
	}
	return "", false
}

// MenuItems accepts any decoded JSON value and keeps the non-blank strings of
// an array. Anything else is an empty menu.
func MenuItems(raw any) []string {
	items := []string{}
	switch v := raw.(type) {
	case []string:
		for _, s := range v {
			if s = strings.TrimSpace(s); s != "" {
				items = append(items, s)
			}
		}
	case []any:
		for _, el := range v {
			if s, ok := el.(string); ok && strings.TrimSpace(s) != "" {
				items = append(items, strings.TrimSpace(s))
			}
		}
	}
	return items
}

// ProfileObject returns raw when it decoded from a JSON object. Any other
// value carries no profile fields.
func ProfileObject(raw any) map[string]any {
	if m, ok := raw.(map[string]any); ok && m != nil {
		return m
	}
	return map[string]any{}
}

// MealType returns raw when it is a string, blank otherwise.
func MealType(raw any) string {
	s, _ := raw.(string)
	return s
}
