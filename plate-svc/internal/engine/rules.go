package engine

import (
	"slices"
	"strings"

	"portion-vision/plate-svc/internal/domain"
)

// RoleRule assigns a role when Match holds. Rules are pure and evaluated in
// order; the first match decides.
type RoleRule struct {
	Name  string
	Match func(domain.FoodRecord) bool
	Role  func(domain.FoodRecord) domain.Role
}

func fixed(role domain.Role) func(domain.FoodRecord) domain.Role {
	return func(domain.FoodRecord) domain.Role { return role }
}

var categoryRoles = map[domain.Category]domain.Role{
	domain.CategoryCarbBase:    domain.RoleCarb,
	domain.CategoryProteinMain: domain.RoleProtein,
	domain.CategorySide:        domain.RoleVeg,
	domain.CategorySnack:       domain.RoleSnack,
	domain.CategoryBeverage:    domain.RoleAddon,
	domain.CategoryCondiment:   domain.RoleAddon,
	domain.CategoryDessert:     domain.RoleLimit,
}

var (
	mixedMealRule = RoleRule{
		Name:  "mixed meal",
		Match: func(r domain.FoodRecord) bool { return r.MealRole == "mixed" },
		Role:  fixed(domain.RoleMixed),
	}
	lowProteinRule = RoleRule{
		Name: "low protein main",
		Match: func(r domain.FoodRecord) bool {
			return r.Category == domain.CategoryProteinMain && r.ProteinLevel == "low"
		},
		Role: fixed(domain.RoleSide),
	}
	sweetRule = RoleRule{
		Name: "dessert or sweet",
		Match: func(r domain.FoodRecord) bool {
			return r.Category == domain.CategoryDessert || slices.Contains(r.Tags, "sweet")
		},
		Role: fixed(domain.RoleLimit),
	}
	categoryRule = RoleRule{
		Name:  "category",
		Match: func(domain.FoodRecord) bool { return true },
		Role: func(r domain.FoodRecord) domain.Role {
			if role, ok := categoryRoles[r.Category]; ok {
				return role
			}
			return domain.RoleOther
		},
	}
)

// RoleRules is the ordered base rule list. The last rule always matches.
var RoleRules = []RoleRule{mixedMealRule, lowProteinRule, sweetRule, categoryRule}

var hiddenProteinTags = []string{"egg", "chicken", "paneer", "fish"}

// HiddenProtein reports whether a record whose base role is neither protein
// nor mixed carries a protein tag and enough calories to count as a main.
func HiddenProtein(r domain.FoodRecord, role domain.Role) bool {
	if role == domain.RoleProtein || role == domain.RoleMixed {
		return false
	}
	if r.Calories <= 100 {
		return false
	}
	for _, tag := range r.Tags {
		if slices.Contains(hiddenProteinTags, strings.ToLower(tag)) {
			return true
		}
	}
	return false
}

// DeriveRole runs the ordered rules and then the hidden-protein override.
func DeriveRole(r domain.FoodRecord) domain.Role {
	role := domain.RoleOther
	for _, rule := range RoleRules {
		if rule.Match(r) {
			role = rule.Role(r)
			break
		}
	}
	if HiddenProtein(r, role) {
		return domain.RoleProtein
	}
	return role
}
