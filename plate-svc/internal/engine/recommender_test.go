package engine

import (
	"math"
	"testing"

	"portion-vision/plate-svc/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reference() domain.UserProfile {
	return domain.UserProfile{WeightKg: 70, HeightCm: 170, Age: 25, Sex: "male", ActivityLevel: "moderate", Goal: "maintain"}
}

func roles(plate []domain.PlateEntry) []domain.Role {
	out := make([]domain.Role, 0, len(plate))
	for _, e := range plate {
		out = append(out, e.Role)
	}
	return out
}

func TestRecommend_MixedMeal(t *testing.T) {
	r := NewRecommender(NewClassifier(nil))

	result := r.Recommend(reference(), []string{"Chicken Biryani"}, "lunch")

	require.Len(t, result.RecommendedPlate, 1)
	entry := result.RecommendedPlate[0]
	assert.Equal(t, domain.RoleMixed, entry.Role)
	assert.Equal(t, ReasonMixed, entry.Reason)
	assert.Equal(t, "🍲", entry.Icon)
	assert.Equal(t, 2.0, entry.RecommendedQuantity)
	assert.Equal(t, 600, entry.EstimatedCalories)
	assert.Equal(t, "bowl", entry.Unit)
	assert.Equal(t, 250.0, entry.ServingSize)

	assert.Equal(t, 2546, result.Summary.DailyCalories)
	assert.Equal(t, 891, result.Summary.TargetMealCalories)
	assert.Equal(t, 600, result.Summary.TotalPlateCalories)
	assert.Equal(t, "Balanced plate aligned with maintain goal.", result.Summary.PlateLogic)
	assert.Equal(t, PlateNotes, result.Summary.Notes)
}

func TestRecommend_MixedQuantityBounds(t *testing.T) {
	r := NewRecommender(NewClassifier(nil))

	snack := r.Recommend(reference(), []string{"Veg Pulao"}, "snack")
	require.Len(t, snack.RecommendedPlate, 1)
	assert.Equal(t, 1.0, snack.RecommendedPlate[0].RecommendedQuantity)

	heavy := domain.UserProfile{WeightKg: 120, HeightCm: 190, Age: 25, Sex: "male", ActivityLevel: "active", Goal: "gain"}
	big := r.Recommend(heavy, []string{"Khichdi"}, "lunch")
	require.Len(t, big.RecommendedPlate, 1)
	assert.Equal(t, 2.5, big.RecommendedPlate[0].RecommendedQuantity)
	assert.Equal(t, 750, big.RecommendedPlate[0].EstimatedCalories)

	half := r.Recommend(reference(), []string{"Fried Rice"}, "breakfast")
	require.Len(t, half.RecommendedPlate, 1)
	assert.Equal(t, 1.5, half.RecommendedPlate[0].RecommendedQuantity)
}

func TestRecommend_EmptyMenu(t *testing.T) {
	r := NewRecommender(NewClassifier(nil))

	for _, menu := range [][]string{nil, {}} {
		result := r.Recommend(reference(), menu, "lunch")

		assert.NotNil(t, result.RecommendedPlate)
		assert.Empty(t, result.RecommendedPlate)
		assert.NotNil(t, result.OptionalItems)
		assert.NotNil(t, result.AvoidOrLimit)
		assert.Equal(t, 0, result.Summary.TotalPlateCalories)
		assert.Equal(t, 2546, result.Summary.DailyCalories)
		assert.Equal(t, 891, result.Summary.TargetMealCalories)
	}
}

func TestRecommend_StandardPlate(t *testing.T) {
	r := NewRecommender(NewClassifier(fixtureBase()))

	t.Run("carb protein and dairy addon", func(t *testing.T) {
		result := r.Recommend(reference(), []string{"Dal", "Rice", "Curd"}, "lunch")

		require.Equal(t, []domain.Role{domain.RoleCarb, domain.RoleProtein, domain.RoleAddon}, roles(result.RecommendedPlate))
		assert.Equal(t, "Rice", result.RecommendedPlate[0].Item)
		assert.Equal(t, ReasonCarb, result.RecommendedPlate[0].Reason)
		assert.Equal(t, 2.0, result.RecommendedPlate[0].RecommendedQuantity)
		assert.Equal(t, 500, result.RecommendedPlate[0].EstimatedCalories)
		// 0.3 * 891 / 180 = 1.49
		assert.Equal(t, "Dal", result.RecommendedPlate[1].Item)
		assert.Equal(t, ReasonProtein, result.RecommendedPlate[1].Reason)
		assert.Equal(t, 1.0, result.RecommendedPlate[1].RecommendedQuantity)
		assert.Equal(t, 180, result.RecommendedPlate[1].EstimatedCalories)
		assert.Equal(t, "Curd", result.RecommendedPlate[2].Item)
		assert.Equal(t, ReasonDairy, result.RecommendedPlate[2].Reason)
		assert.Equal(t, 740, result.Summary.TotalPlateCalories)
	})

	t.Run("no addon without headroom", func(t *testing.T) {
		result := r.Recommend(reference(), []string{"Chicken Biryani", "Curd"}, "snack")

		require.Equal(t, []domain.Role{domain.RoleMixed}, roles(result.RecommendedPlate))
		assert.Equal(t, 350, result.Summary.TotalPlateCalories)
	})

	t.Run("dairy addon when budget remains", func(t *testing.T) {
		gain := reference()
		gain.Goal = "gain"
		result := r.Recommend(gain, []string{"Dal", "Rice", "Curd"}, "lunch")

		require.Equal(t, []domain.Role{domain.RoleCarb, domain.RoleProtein, domain.RoleAddon}, roles(result.RecommendedPlate))
		addon := result.RecommendedPlate[2]
		assert.Equal(t, "Curd", addon.Item)
		assert.Equal(t, ReasonDairy, addon.Reason)
		assert.Equal(t, 1.0, addon.RecommendedQuantity)
		assert.Equal(t, "🥛", addon.Icon)
		assert.Equal(t, 920, result.Summary.TotalPlateCalories)
		assert.Equal(t, "Balanced plate aligned with gain goal.", result.Summary.PlateLogic)
	})

	t.Run("piece carb is capped at four", func(t *testing.T) {
		result := r.Recommend(reference(), []string{"Chapati", "Paneer Tikka"}, "lunch")

		require.Len(t, result.RecommendedPlate, 2)
		assert.Equal(t, 4.0, result.RecommendedPlate[0].RecommendedQuantity)
		assert.Equal(t, 400, result.RecommendedPlate[0].EstimatedCalories)
		assert.Equal(t, 1.0, result.RecommendedPlate[1].RecommendedQuantity)
		assert.Equal(t, 620, result.Summary.TotalPlateCalories)
	})

	t.Run("carb takes protein share when protein is missing", func(t *testing.T) {
		result := r.Recommend(reference(), []string{"Chapati"}, "dinner")

		require.Len(t, result.RecommendedPlate, 1)
		// 0.7 * 0.30 * 2546 / 100 = 5.3 -> capped
		assert.Equal(t, 4.0, result.RecommendedPlate[0].RecommendedQuantity)
	})

	t.Run("snack stands in for carb", func(t *testing.T) {
		result := r.Recommend(reference(), []string{"Masala Chai", "Poha"}, "Breakfast")

		assert.Equal(t, "breakfast", result.MealType)
		require.Equal(t, []domain.Role{domain.RoleSnack, domain.RoleAddon}, roles(result.RecommendedPlate))
		assert.Equal(t, "Poha", result.RecommendedPlate[0].Item)
		assert.Equal(t, ReasonCarb, result.RecommendedPlate[0].Reason)
		assert.Equal(t, 2.0, result.RecommendedPlate[0].RecommendedQuantity)
		assert.Equal(t, "Masala Chai", result.RecommendedPlate[1].Item)
		assert.Equal(t, ReasonAddon, result.RecommendedPlate[1].Reason)
	})

	t.Run("veg side and low protein main", func(t *testing.T) {
		result := r.Recommend(reference(), []string{"Veg Hariyali", "Aloo Sabji", "Rice"}, "lunch")

		require.Equal(t, []domain.Role{domain.RoleCarb, domain.RoleSide}, roles(result.RecommendedPlate))
		side := result.RecommendedPlate[1]
		assert.Equal(t, "Veg Hariyali", side.Item)
		assert.Equal(t, ReasonVeg, side.Reason)
		assert.Equal(t, "🥗", side.Icon)
	})

	t.Run("first dairy addon is preferred", func(t *testing.T) {
		result := r.Recommend(reference(), []string{"Mango Pickle", "Buttermilk", "Egg Curry"}, "lunch")

		require.Equal(t, []domain.Role{domain.RoleProtein, domain.RoleAddon}, roles(result.RecommendedPlate))
		assert.Equal(t, "Buttermilk", result.RecommendedPlate[1].Item)
		assert.Equal(t, ReasonDairy, result.RecommendedPlate[1].Reason)
	})
}

func TestRecommend_FallbackCurdIsASide(t *testing.T) {
	result := NewRecommender(NewClassifier(nil)).Recommend(reference(), []string{"Dal", "Rice", "Curd"}, "lunch")

	assert.Equal(t, []domain.Role{domain.RoleCarb, domain.RoleProtein, domain.RoleVeg}, roles(result.RecommendedPlate))
	assert.Equal(t, ReasonVeg, result.RecommendedPlate[2].Reason)
}

func TestRecommend_LimitItems(t *testing.T) {
	r := NewRecommender(NewClassifier(fixtureBase()))

	result := r.Recommend(reference(), []string{"Gulab Jamun", "Rice", "Sweet Lassi"}, "dinner")

	assert.Equal(t, []domain.Role{domain.RoleCarb}, roles(result.RecommendedPlate))
	require.Len(t, result.OptionalItems, 2)
	for _, opt := range result.OptionalItems {
		assert.Equal(t, domain.RoleLimit, opt.Role)
		assert.Equal(t, LimitNote, opt.Note)
		assert.Equal(t, LimitAmount, opt.Limit)
	}
	assert.Equal(t, "Gulab Jamun", result.OptionalItems[0].Name)
	assert.Empty(t, result.AvoidOrLimit)
}

func TestRecommend_DietPreference(t *testing.T) {
	r := NewRecommender(NewClassifier(nil))

	veg := reference()
	veg.DietPreference = "Vegetarian"
	result := r.Recommend(veg, []string{"Chicken Biryani", "Rice", "Dal", "Egg Bhurji"}, "lunch")

	assert.Equal(t, []domain.Role{domain.RoleCarb, domain.RoleProtein}, roles(result.RecommendedPlate))
	assert.Equal(t, []domain.AvoidItem{
		{Item: "Chicken Biryani", Reason: "Contains meat or fish"},
		{Item: "Egg Bhurji", Reason: "Contains egg"},
	}, result.AvoidOrLimit)

	nonVeg := reference()
	nonVeg.DietPreference = "non-vegetarian"
	result = r.Recommend(nonVeg, []string{"Chicken Biryani", "Rice"}, "lunch")
	assert.Equal(t, []domain.Role{domain.RoleMixed}, roles(result.RecommendedPlate))
	assert.Empty(t, result.AvoidOrLimit)
}

func TestRecommend_MealTypes(t *testing.T) {
	r := NewRecommender(NewClassifier(nil))

	tests := []struct {
		mealType string
		wantType string
		target   int
	}{
		{mealType: "", wantType: "lunch", target: 891},
		{mealType: "DINNER", wantType: "dinner", target: 764},
		{mealType: "breakfast", wantType: "breakfast", target: 637},
		{mealType: "snack", wantType: "snack", target: 255},
		{mealType: "brunch", wantType: "brunch", target: 840},
	}

	for _, testCase := range tests {
		t.Run(testCase.wantType, func(t *testing.T) {
			result := r.Recommend(reference(), nil, testCase.mealType)
			assert.Equal(t, testCase.wantType, result.MealType)
			assert.Equal(t, testCase.target, result.Summary.TargetMealCalories)
		})
	}
}

func TestRecommend_Invariants(t *testing.T) {
	r := NewRecommender(NewClassifier(fixtureBase()))
	menus := [][]string{
		{"Chicken Biryani", "Rice", "Dal", "Curd"},
		{"Fried Rice", "Chapati", "Paneer Tikka", "Aloo Sabji", "Buttermilk"},
		{"Roti", "Chole", "Salad", "Mango Pickle", "Gajar Halwa"},
		{"Poha", "Masala Chai", "Boiled Egg"},
		{"Upma", "Idli", "Sambar"},
		{"Noodles", "Soup"},
	}
	profiles := []domain.UserProfile{
		reference(),
		{WeightKg: 45, HeightCm: 150, Age: 60, Sex: "female", ActivityLevel: "sedentary", Goal: "lose"},
		{WeightKg: 110, HeightCm: 190, Age: 22, Sex: "male", ActivityLevel: "active", Goal: "gain"},
	}

	for _, menu := range menus {
		for _, profile := range profiles {
			for _, meal := range []string{"breakfast", "lunch", "dinner", "snack"} {
				result := r.Recommend(profile, menu, meal)

				total := 0
				hasMixed, hasCarb := false, false
				for _, entry := range result.RecommendedPlate {
					item := r.classifier.Classify(entry.Item)
					assert.Equal(t, int(math.Round(item.Calories*entry.RecommendedQuantity)), entry.EstimatedCalories, entry.Item)
					assert.GreaterOrEqual(t, entry.RecommendedQuantity, 1.0)
					total += entry.EstimatedCalories
					hasMixed = hasMixed || entry.Role == domain.RoleMixed
					hasCarb = hasCarb || entry.Role == domain.RoleCarb
				}
				assert.Equal(t, total, result.Summary.TotalPlateCalories)
				assert.False(t, hasMixed && hasCarb, "mixed and carb on one plate: %v", menu)
			}
		}
	}
}

func TestIconForRole(t *testing.T) {
	assert.Equal(t, "🌾", IconForRole(domain.RoleCarb))
	assert.Equal(t, "💪", IconForRole(domain.RoleProtein))
	assert.Equal(t, "🥗", IconForRole(domain.RoleVeg))
	assert.Equal(t, "🥣", IconForRole(domain.RoleSnack))
	assert.Equal(t, "🍰", IconForRole(domain.RoleLimit))
	assert.Equal(t, "🍽️", IconForRole(domain.RoleOther))
}
