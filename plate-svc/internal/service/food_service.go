package service

import (
	"strings"

	"portion-vision/plate-svc/internal/domain"
	"portion-vision/plate-svc/internal/engine"
)

type FoodService struct {
	catalog    FoodCatalog
	classifier *engine.Classifier
}

func NewFoodService(catalog FoodCatalog, classifier *engine.Classifier) *FoodService {
	return &FoodService{catalog: catalog, classifier: classifier}
}

func (s *FoodService) List() []domain.FoodRecord {
	return s.catalog.All()
}

func (s *FoodService) Search(query string) ([]domain.FoodRecord, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	return s.catalog.Search(query), nil
}

func (s *FoodService) Classify(name string) domain.ClassifiedItem {
	return s.classifier.Classify(name)
}
