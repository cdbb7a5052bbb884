package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"portion-vision/plate-svc/internal/domain"
)

const dateLayout = "2006-01-02"

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

func (r *PostgresRepository) EnsureSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS profiles (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			payload JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS menus (
			menu_date DATE PRIMARY KEY,
			items JSONB NOT NULL,
			source TEXT NOT NULL DEFAULT 'manual',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS recommendations (
			id UUID PRIMARY KEY,
			profile_id TEXT,
			meal_type TEXT NOT NULL,
			payload JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		"CREATE INDEX IF NOT EXISTS recommendations_profile_idx ON recommendations (profile_id, created_at DESC)",
	}
	for _, stmt := range statements {
		if _, err := r.DB.Exec(stmt); err != nil {
			return fmt.Errorf("ensure schema `%s`: %w", stmt, err)
		}
	}
	return nil
}

func (r *PostgresRepository) SaveProfile(ctx context.Context, profile *domain.StoredProfile) error {
	payload, err := json.Marshal(profile.Profile)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	err = r.DB.QueryRowContext(ctx, `
		INSERT INTO profiles (id, name, payload, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, payload = EXCLUDED.payload, updated_at = NOW()
		RETURNING updated_at
	`, profile.ID, profile.Name, payload).Scan(&profile.UpdatedAt)
	if err != nil {
		return fmt.Errorf("save profile %s: %w", profile.ID, err)
	}
	return nil
}

func (r *PostgresRepository) GetProfile(ctx context.Context, id string) (*domain.StoredProfile, error) {
	var (
		stored  domain.StoredProfile
		payload []byte
	)
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, name, payload, updated_at FROM profiles WHERE id = $1
	`, id).Scan(&stored.ID, &stored.Name, &payload, &stored.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("get profile %s: %w", id, err)
	}
	if err := json.Unmarshal(payload, &stored.Profile); err != nil {
		return nil, fmt.Errorf("decode profile %s: %w", id, err)
	}
	return &stored, nil
}

func (r *PostgresRepository) SaveMenu(ctx context.Context, menu *domain.Menu) error {
	items, err := json.Marshal(menu.Items)
	if err != nil {
		return fmt.Errorf("encode menu: %w", err)
	}
	err = r.DB.QueryRowContext(ctx, `
		INSERT INTO menus (menu_date, items, source, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (menu_date) DO UPDATE SET items = EXCLUDED.items, source = EXCLUDED.source, created_at = NOW()
		RETURNING created_at
	`, menu.Date, items, menu.Source).Scan(&menu.CreatedAt)
	if err != nil {
		return fmt.Errorf("save menu %s: %w", menu.Date, err)
	}
	return nil
}

func (r *PostgresRepository) GetMenu(ctx context.Context, date string) (*domain.Menu, error) {
	var (
		menu    domain.Menu
		day     time.Time
		payload []byte
	)
	err := r.DB.QueryRowContext(ctx, `
		SELECT menu_date, items, source, created_at FROM menus WHERE menu_date = $1
	`, date).Scan(&day, &payload, &menu.Source, &menu.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("get menu %s: %w", date, err)
	}
	if err := json.Unmarshal(payload, &menu.Items); err != nil {
		return nil, fmt.Errorf("decode menu %s: %w", date, err)
	}
	menu.Date = day.Format(dateLayout)
	return &menu, nil
}

func (r *PostgresRepository) SaveRecommendation(ctx context.Context, profileID string, rec *domain.RecommendationResult) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode recommendation: %w", err)
	}
	var owner sql.NullString
	if profileID != "" {
		owner = sql.NullString{String: profileID, Valid: true}
	}
	_, err = r.DB.ExecContext(ctx, `
		INSERT INTO recommendations (id, profile_id, meal_type, payload, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, rec.ID, owner, rec.MealType, payload, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("save recommendation %s: %w", rec.ID, err)
	}
	return nil
}

func (r *PostgresRepository) GetRecommendation(ctx context.Context, id string) (*domain.RecommendationResult, error) {
	var payload []byte
	err := r.DB.QueryRowContext(ctx, `
		SELECT payload FROM recommendations WHERE id = $1
	`, id).Scan(&payload)
	if err != nil {
		return nil, fmt.Errorf("get recommendation %s: %w", id, err)
	}
	var rec domain.RecommendationResult
	if err := json.Unmarshal(payload, &rec); err != nil {
		return nil, fmt.Errorf("decode recommendation %s: %w", id, err)
	}
	return &rec, nil
}

// ListRecommendations returns the most recent results saved for a profile.
func (r *PostgresRepository) ListRecommendations(ctx context.Context, profileID string, limit int) ([]domain.RecommendationResult, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT payload FROM recommendations
		WHERE profile_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, profileID, limit)
	if err != nil {
		return nil, fmt.Errorf("list recommendations %s: %w", profileID, err)
	}
	defer rows.Close()

	results := []domain.RecommendationResult{}
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			continue
		}
		var rec domain.RecommendationResult
		if err := json.Unmarshal(payload, &rec); err != nil {
			continue
		}
		results = append(results, rec)
	}
	return results, rows.Err()
}
