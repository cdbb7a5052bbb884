package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"portion-vision/logging"
	"portion-vision/plate-svc/internal/domain"
	"portion-vision/plate-svc/internal/ocr"
)

const (
	SourceManual = "manual"
	SourceOCR    = "ocr"

	sniffLen = 512
)

type MenuService struct {
	repository MenuRepository
	cache      MenuCache
	extractor  MenuExtractor
	now        func() time.Time
}

// NewMenuService wires the menu store. cache and extractor may be nil; without
// an extractor image imports report ErrOCRUnavailable.
func NewMenuService(repository MenuRepository, cache MenuCache, extractor MenuExtractor) *MenuService {
	return &MenuService{
		repository: repository,
		cache:      cache,
		extractor:  extractor,
		now:        time.Now,
	}
}

// WithClock replaces the clock used to decide which day is today.
func (s *MenuService) WithClock(now func() time.Time) *MenuService {
	s.now = now
	return s
}

func (s *MenuService) today() string {
	return s.now().Format("2006-01-02")
}

func (s *MenuService) Today(ctx context.Context) (*domain.Menu, error) {
	log := logging.FromContext(ctx)
	date := s.today()

	if s.cache != nil {
		menu, err := s.cache.GetMenu(ctx, date)
		if err != nil {
			log.WithError(err).Warn("menu cache read failed")
		}
		if menu != nil {
			return menu, nil
		}
	}

	menu, err := s.repository.GetMenu(ctx, date)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMenuNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load menu: %w", err)
	}

	s.remember(ctx, menu)
	return menu, nil
}

func (s *MenuService) SetToday(ctx context.Context, items []string, source string) (*domain.Menu, error) {
	cleaned := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			cleaned = append(cleaned, item)
		}
	}
	if len(cleaned) == 0 {
		return nil, ValidationError{"menuItems": "At least one menu item is required"}
	}
	if source == "" {
		source = SourceManual
	}

	menu := &domain.Menu{Date: s.today(), Items: cleaned, Source: source}
	if err := s.repository.SaveMenu(ctx, menu); err != nil {
		return nil, fmt.Errorf("failed to save menu: %w", err)
	}

	s.remember(ctx, menu)
	return menu, nil
}

// ImportImage validates an uploaded menu photo, extracts its items and stores
// them as today's menu. An image with no readable items is not stored.
func (s *MenuService) ImportImage(ctx context.Context, filename string, image []byte) (*domain.Menu, error) {
	head := image
	if len(head) > sniffLen {
		head = head[:sniffLen]
	}
	if _, err := ocr.ValidateImage(head, int64(len(image))); err != nil {
		return nil, err
	}
	if s.extractor == nil {
		return nil, ocr.ErrOCRUnavailable
	}

	items, err := s.extractor.Extract(ctx, filename, bytes.NewReader(image))
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		logging.FromContext(ctx).WithField("filename", filename).Info("no menu items recognised")
		return &domain.Menu{Date: s.today(), Items: []string{}, Source: SourceOCR}, nil
	}
	return s.SetToday(ctx, items, SourceOCR)
}

func (s *MenuService) remember(ctx context.Context, menu *domain.Menu) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetMenu(ctx, menu); err != nil {
		logging.FromContext(ctx).WithError(err).Warn("menu cache write failed")
	}
}
