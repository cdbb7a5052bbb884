package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"portion-vision/plate-svc/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "platectl.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore_Profile(t *testing.T) {
	store := newTestSQLite(t)
	ctx := context.Background()

	_, err := store.GetProfile(ctx, "me")
	assert.True(t, errors.Is(err, sql.ErrNoRows))

	profile := &domain.StoredProfile{ID: "me", Name: "Ravi", Profile: domain.UserProfile{WeightKg: 72, HeightCm: 174, Age: 33, Sex: "male", ActivityLevel: "light", Goal: "lose"}}
	require.NoError(t, store.SaveProfile(ctx, profile))

	profile.Profile.Goal = "maintain"
	require.NoError(t, store.SaveProfile(ctx, profile))

	got, err := store.GetProfile(ctx, "me")
	require.NoError(t, err)
	assert.Equal(t, "Ravi", got.Name)
	assert.Equal(t, profile.Profile, got.Profile)
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestSQLiteStore_Menu(t *testing.T) {
	store := newTestSQLite(t)
	ctx := context.Background()

	menu := &domain.Menu{Date: "2026-03-02", Items: []string{"Idli", "Sambar"}, Source: "manual"}
	require.NoError(t, store.SaveMenu(ctx, menu))

	menu.Items = []string{"Poha"}
	require.NoError(t, store.SaveMenu(ctx, menu))

	got, err := store.GetMenu(ctx, "2026-03-02")
	require.NoError(t, err)
	assert.Equal(t, []string{"Poha"}, got.Items)
	assert.Equal(t, "2026-03-02", got.Date)

	_, err = store.GetMenu(ctx, "2026-03-03")
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestSQLiteStore_Recommendations(t *testing.T) {
	store := newTestSQLite(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

	for i, meal := range []string{"breakfast", "lunch", "dinner"} {
		rec := &domain.RecommendationResult{ID: meal + "-id", MealType: meal, CreatedAt: base.Add(time.Duration(i) * time.Hour)}
		require.NoError(t, store.SaveRecommendation(ctx, "me", rec))
	}
	require.NoError(t, store.SaveRecommendation(ctx, "", &domain.RecommendationResult{ID: "anon", MealType: "snack", CreatedAt: base}))

	got, err := store.GetRecommendation(ctx, "lunch-id")
	require.NoError(t, err)
	assert.Equal(t, "lunch", got.MealType)

	history, err := store.ListRecommendations(ctx, "me", 2)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "dinner-id", history[0].ID)
	assert.Equal(t, "lunch-id", history[1].ID)

	_, err = store.GetRecommendation(ctx, "nope")
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}
