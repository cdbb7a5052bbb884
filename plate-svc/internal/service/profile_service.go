package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"portion-vision/plate-svc/internal/domain"
	"portion-vision/plate-svc/internal/engine"
)

type ProfileService struct {
	repository ProfileRepository
}

func NewProfileService(repository ProfileRepository) *ProfileService {
	return &ProfileService{repository: repository}
}

// ValidateProfile applies the form rules used when a profile is saved.
// Estimation itself never rejects input.
func ValidateProfile(raw map[string]any) ValidationError {
	errs := ValidationError{}

	name, _ := engine.StringField(raw, engine.NameKeys...)
	switch {
	case name == "":
		errs["name"] = "Name is required"
	case utf8.RuneCountInString(name) < 2:
		errs["name"] = "Name must be at least 2 characters"
	}

	age, ok := engine.NumberField(raw, engine.AgeKeys...)
	age = math.Trunc(age)
	switch {
	case !ok || age == 0:
		errs["age"] = "Age is required"
	case age < 10 || age > 120:
		errs["age"] = "Age must be between 10 and 120"
	}

	height, ok := engine.NumberField(raw, engine.HeightKeys...)
	switch {
	case !ok || height == 0:
		errs["height"] = "Height is required"
	case height < 100 || height > 250:
		errs["height"] = "Height must be between 100-250 cm"
	}

	weight, ok := engine.NumberField(raw, engine.WeightKeys...)
	switch {
	case !ok || weight == 0:
		errs["weight"] = "Weight is required"
	case weight < 30 || weight > 300:
		errs["weight"] = "Weight must be between 30-300 kg"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (s *ProfileService) Save(ctx context.Context, id string, raw map[string]any) (*domain.ProfileView, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ValidationError{"id": "Profile id is required"}
	}
	if errs := ValidateProfile(raw); errs != nil {
		return nil, errs
	}

	name, _ := engine.StringField(raw, engine.NameKeys...)
	stored := &domain.StoredProfile{
		ID:      id,
		Name:    name,
		Profile: engine.NormalizeProfile(raw),
	}
	if err := s.repository.SaveProfile(ctx, stored); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	return &domain.ProfileView{StoredProfile: *stored, Insights: engine.Insights(stored.Profile)}, nil
}

func (s *ProfileService) Get(ctx context.Context, id string) (*domain.ProfileView, error) {
	stored, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return &domain.ProfileView{StoredProfile: *stored, Insights: engine.Insights(stored.Profile)}, nil
}

func (s *ProfileService) Estimate(raw map[string]any) domain.ProfileInsights {
	return engine.Insights(engine.NormalizeProfile(raw))
}

func (s *ProfileService) load(ctx context.Context, id string) (*domain.StoredProfile, error) {
	stored, err := s.repository.GetProfile(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return stored, nil
}
