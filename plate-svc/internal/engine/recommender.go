package engine

import (
	"math"
	"strings"

	"portion-vision/plate-svc/internal/domain"
)

const (
	defaultMealType = "lunch"

	mixedShare          = 0.7
	carbShareWithProt   = 0.5
	carbShareNoProt     = 0.7
	proteinShare        = 0.3
	addonMinimumHeadway = 50

	ReasonMixed   = "Complete balanced meal"
	ReasonCarb    = "Energy Source"
	ReasonProtein = "Muscle Repair"
	ReasonVeg     = "Fiber & Vitamins"
	ReasonDairy   = "Probiotics/Calcium"
	ReasonAddon   = "Flavor"

	LimitNote   = "Consume in moderation"
	LimitAmount = "1 portion max"
	PlateNotes  = "Portions are estimates."
)

var dairyKeywords = []string{"curd", "milk", "buttermilk", "lassi"}

var roleIcons = map[domain.Role]string{
	domain.RoleMixed:   "🍲",
	domain.RoleCarb:    "🌾",
	domain.RoleProtein: "💪",
	domain.RoleVeg:     "🥗",
	domain.RoleSide:    "🥗",
	domain.RoleSnack:   "🥣",
	domain.RoleAddon:   "🥛",
	domain.RoleLimit:   "🍰",
}

func IconForRole(role domain.Role) string {
	if icon, ok := roleIcons[role]; ok {
		return icon
	}
	return "🍽️"
}

type Recommender struct {
	classifier *Classifier
}

func NewRecommender(classifier *Classifier) *Recommender {
	return &Recommender{classifier: classifier}
}

type buckets struct {
	mixed, carb, protein, veg, snack, addon, limit []domain.ClassifiedItem
}

func (b *buckets) add(item domain.ClassifiedItem) {
	switch item.Role {
	case domain.RoleMixed:
		b.mixed = append(b.mixed, item)
	case domain.RoleCarb:
		b.carb = append(b.carb, item)
	case domain.RoleProtein:
		b.protein = append(b.protein, item)
	case domain.RoleVeg, domain.RoleSide:
		b.veg = append(b.veg, item)
	case domain.RoleSnack:
		b.snack = append(b.snack, item)
	case domain.RoleAddon:
		b.addon = append(b.addon, item)
	case domain.RoleLimit:
		b.limit = append(b.limit, item)
	}
}

type plate struct {
	entries  []domain.PlateEntry
	calories int
}

func (p *plate) add(item domain.ClassifiedItem, qty float64, reason string) {
	est := int(math.Round(item.Calories * qty))
	unit := item.UnitType
	if unit == "" {
		unit = "serving"
	}
	p.entries = append(p.entries, domain.PlateEntry{
		Item:                item.Name,
		DishType:            item.DishType,
		Role:                item.Role,
		RecommendedQuantity: qty,
		Unit:                unit,
		ServingSize:         item.ServingSize,
		EstimatedCalories:   est,
		Reason:              reason,
		Icon:                IconForRole(item.Role),
	})
	p.calories += est
}

// Recommend builds a plate for one meal. It never fails: an empty menu gives
// an empty plate with a complete summary.
func (r *Recommender) Recommend(profile domain.UserProfile, menuItems []string, mealType string) domain.RecommendationResult {
	profile = withDefaults(profile)
	daily := EstimateDailyCalories(profile)

	mealType = strings.ToLower(strings.TrimSpace(mealType))
	if mealType == "" {
		mealType = defaultMealType
	}
	target := float64(daily) * MealFraction(mealType)

	result := domain.RecommendationResult{
		MealType:         mealType,
		RecommendedPlate: []domain.PlateEntry{},
		OptionalItems:    []domain.OptionalItem{},
		AvoidOrLimit:     []domain.AvoidItem{},
	}

	var b buckets
	for _, name := range menuItems {
		item := r.classifier.Classify(name)
		if reason, conflict := DietConflict(profile.DietPreference, item); conflict {
			result.AvoidOrLimit = append(result.AvoidOrLimit, domain.AvoidItem{Item: item.Name, Reason: reason})
			continue
		}
		b.add(item)
	}

	var p plate
	if len(b.mixed) > 0 {
		main := b.mixed[0]
		p.add(main, mixedQuantity(target, main.Calories), ReasonMixed)
	} else {
		var carb *domain.ClassifiedItem
		switch {
		case len(b.carb) > 0:
			carb = &b.carb[0]
		case len(b.snack) > 0:
			carb = &b.snack[0]
		}
		var protein *domain.ClassifiedItem
		if len(b.protein) > 0 {
			protein = &b.protein[0]
		}

		if carb != nil {
			share := target * carbShareNoProt
			if protein != nil {
				share = target * carbShareWithProt
			}
			p.add(*carb, carbQuantity(share, *carb), ReasonCarb)
		}
		if protein != nil {
			p.add(*protein, proteinQuantity(target*proteinShare, *protein), ReasonProtein)
		}
	}

	if len(b.veg) > 0 {
		p.add(b.veg[0], 1, ReasonVeg)
	}

	if target > float64(p.calories)+addonMinimumHeadway && len(b.addon) > 0 {
		if dairy, ok := firstDairy(b.addon); ok {
			p.add(dairy, 1, ReasonDairy)
		} else {
			p.add(b.addon[0], 1, ReasonAddon)
		}
	}

	for _, item := range b.limit {
		result.OptionalItems = append(result.OptionalItems, domain.OptionalItem{
			ClassifiedItem: item,
			Note:           LimitNote,
			Limit:          LimitAmount,
		})
	}

	if p.entries != nil {
		result.RecommendedPlate = p.entries
	}
	result.Summary = domain.Summary{
		DailyCalories:      daily,
		TargetMealCalories: int(math.Round(target)),
		TotalPlateCalories: p.calories,
		PlateLogic:         "Balanced plate aligned with " + profile.Goal + " goal.",
		Notes:              PlateNotes,
	}
	return result
}

// units returns how many units of an item cover share calories. Items
// without a calorie value count as one unit.
func units(share, calories float64) float64 {
	if calories <= 0 {
		return 1
	}
	return share / calories
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

func mixedQuantity(target, calories float64) float64 {
	return clamp(math.Round(units(target*mixedShare, calories)*2)/2, 1, 2.5)
}

func carbQuantity(share float64, item domain.ClassifiedItem) float64 {
	qty := math.Round(units(share, item.Calories))
	switch item.UnitType {
	case "piece":
		return clamp(qty, 1, 4)
	case "bowl":
		return clamp(qty, 1, 2)
	default:
		return math.Max(1, qty)
	}
}

func proteinQuantity(share float64, item domain.ClassifiedItem) float64 {
	qty := math.Round(units(share, item.Calories))
	if item.UnitType == "bowl" {
		return clamp(qty, 1, 2)
	}
	return math.Max(1, qty)
}

func firstDairy(addons []domain.ClassifiedItem) (domain.ClassifiedItem, bool) {
	for _, a := range addons {
		if containsAny(strings.ToLower(a.Name), dairyKeywords) {
			return a, true
		}
	}
	return domain.ClassifiedItem{}, false
}
