package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"portion-vision/plate-svc/internal/domain"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps profiles, menus and past plates on the local machine for
// platectl.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS profiles (
        id TEXT PRIMARY KEY,
        name TEXT NOT NULL,
        payload TEXT NOT NULL,
        updated_at TEXT NOT NULL
    );

    CREATE TABLE IF NOT EXISTS menus (
        menu_date TEXT PRIMARY KEY,
        items TEXT NOT NULL,
        source TEXT NOT NULL,
        created_at TEXT NOT NULL
    );

    CREATE TABLE IF NOT EXISTS recommendations (
        id TEXT PRIMARY KEY,
        profile_id TEXT,
        meal_type TEXT NOT NULL,
        payload TEXT NOT NULL,
        created_at TEXT NOT NULL
    );

    CREATE INDEX IF NOT EXISTS idx_recommendations_profile ON recommendations(profile_id, created_at);
    `
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

func (s *SQLiteStore) SaveProfile(ctx context.Context, profile *domain.StoredProfile) error {
	payload, err := json.Marshal(profile.Profile)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	profile.UpdatedAt = time.Now().UTC()
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO profiles (id, name, payload, updated_at) VALUES (?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET name = excluded.name, payload = excluded.payload, updated_at = excluded.updated_at
    `, profile.ID, profile.Name, string(payload), profile.UpdatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("save profile %s: %w", profile.ID, err)
	}
	return nil
}

func (s *SQLiteStore) GetProfile(ctx context.Context, id string) (*domain.StoredProfile, error) {
	var (
		stored             domain.StoredProfile
		payload, updatedAt string
	)
	err := s.db.QueryRowContext(ctx, `
        SELECT id, name, payload, updated_at FROM profiles WHERE id = ?
    `, id).Scan(&stored.ID, &stored.Name, &payload, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("get profile %s: %w", id, err)
	}
	if err := json.Unmarshal([]byte(payload), &stored.Profile); err != nil {
		return nil, fmt.Errorf("decode profile %s: %w", id, err)
	}
	stored.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
	return &stored, nil
}

func (s *SQLiteStore) SaveMenu(ctx context.Context, menu *domain.Menu) error {
	items, err := json.Marshal(menu.Items)
	if err != nil {
		return fmt.Errorf("encode menu: %w", err)
	}
	menu.CreatedAt = time.Now().UTC()
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO menus (menu_date, items, source, created_at) VALUES (?, ?, ?, ?)
        ON CONFLICT(menu_date) DO UPDATE SET items = excluded.items, source = excluded.source, created_at = excluded.created_at
    `, menu.Date, string(items), menu.Source, menu.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("save menu %s: %w", menu.Date, err)
	}
	return nil
}

func (s *SQLiteStore) GetMenu(ctx context.Context, date string) (*domain.Menu, error) {
	var (
		menu             domain.Menu
		items, createdAt string
	)
	err := s.db.QueryRowContext(ctx, `
        SELECT menu_date, items, source, created_at FROM menus WHERE menu_date = ?
    `, date).Scan(&menu.Date, &items, &menu.Source, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("get menu %s: %w", date, err)
	}
	if err := json.Unmarshal([]byte(items), &menu.Items); err != nil {
		return nil, fmt.Errorf("decode menu %s: %w", date, err)
	}
	menu.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	return &menu, nil
}

func (s *SQLiteStore) SaveRecommendation(ctx context.Context, profileID string, rec *domain.RecommendationResult) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode recommendation: %w", err)
	}
	var owner sql.NullString
	if profileID != "" {
		owner = sql.NullString{String: profileID, Valid: true}
	}
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO recommendations (id, profile_id, meal_type, payload, created_at) VALUES (?, ?, ?, ?, ?)
    `, rec.ID, owner, rec.MealType, string(payload), rec.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("save recommendation %s: %w", rec.ID, err)
	}
	return nil
}

func (s *SQLiteStore) GetRecommendation(ctx context.Context, id string) (*domain.RecommendationResult, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM recommendations WHERE id = ?`, id).Scan(&payload)
	if err != nil {
		return nil, fmt.Errorf("get recommendation %s: %w", id, err)
	}
	var rec domain.RecommendationResult
	if err := json.Unmarshal([]byte(payload), &rec); err != nil {
		return nil, fmt.Errorf("decode recommendation %s: %w", id, err)
	}
	return &rec, nil
}

func (s *SQLiteStore) ListRecommendations(ctx context.Context, profileID string, limit int) ([]domain.RecommendationResult, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT payload FROM recommendations
        WHERE profile_id = ?
        ORDER BY created_at DESC
        LIMIT ?
    `, profileID, limit)
	if err != nil {
		return nil, fmt.Errorf("list recommendations %s: %w", profileID, err)
	}
	defer rows.Close()

	results := []domain.RecommendationResult{}
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan recommendation: %w", err)
		}
		var rec domain.RecommendationResult
		if err := json.Unmarshal([]byte(payload), &rec); err != nil {
			continue
		}
		results = append(results, rec)
	}
	return results, rows.Err()
}
