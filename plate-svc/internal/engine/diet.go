package engine

import (
	"strings"

	"portion-vision/plate-svc/internal/domain"
)

type dietGroup struct {
	reason   string
	keywords []string
}

var (
	meatGroup = dietGroup{
		reason:   "Contains meat or fish",
		keywords: []string{"chicken", "mutton", "fish", "prawn", "meat", "beef", "pork", "keema", "lamb"},
	}
	eggGroup = dietGroup{
		reason:   "Contains egg",
		keywords: []string{"egg", "omelette"},
	}
	dairyGroup = dietGroup{
		reason:   "Contains dairy",
		keywords: []string{"dairy", "curd", "milk", "paneer", "lassi", "buttermilk", "raita", "ghee", "cheese", "butter", "kheer"},
	}
	rootGroup = dietGroup{
		reason:   "Contains root vegetables or onion/garlic",
		keywords: []string{"onion", "garlic", "potato", "aloo", "carrot", "beetroot", "radish"},
	}
)

// Excluded groups per preference. Keys are lowercased with separators
// removed. Unknown preferences exclude nothing.
var dietExclusions = map[string][]dietGroup{
	"vegetarian":      {meatGroup, eggGroup},
	"lactovegetarian": {meatGroup, eggGroup},
	"ovovegetarian":   {meatGroup, dairyGroup},
	"vegan":           {meatGroup, eggGroup, dairyGroup},
	"jain":            {meatGroup, eggGroup, rootGroup},
}

func dietKey(pref string) string {
	r := strings.NewReplacer("-", "", " ", "", "_", "")
	return r.Replace(strings.ToLower(strings.TrimSpace(pref)))
}

// DietConflict reports why item is unsuitable under pref, if it is.
func DietConflict(pref string, item domain.ClassifiedItem) (string, bool) {
	groups, ok := dietExclusions[dietKey(pref)]
	if !ok {
		return "", false
	}
	name := strings.ToLower(item.Name)
	for _, g := range groups {
		for _, k := range g.keywords {
			if strings.Contains(name, k) || hasTag(item.Tags, k) {
				return g.reason, true
			}
		}
	}
	return "", false
}

func hasTag(tags []string, want string) bool {
	for _, t := range tags {
		if strings.EqualFold(t, want) {
			return true
		}
	}
	return false
}
