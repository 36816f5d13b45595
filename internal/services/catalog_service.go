// internal/services/catalog_service.go
package services

import (
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/lotkeeper/carstock-backend/internal/catalog"
	"github.com/lotkeeper/carstock-backend/internal/config"
)

var ErrDuplicateFeature = errors.New("feature already exists in this category")

// CatalogService guards the shared catalog behind a mutex (handlers run
// concurrently) and persists the whole file on every mutation, the way the
// desktop app rewrote car_options.json.
type CatalogService struct {
	mtx  sync.Mutex
	cat  *catalog.Catalog
	path string
}

type AddFeatureRequest struct {
	Category string `json:"category" validate:"required"`
	Feature  string `json:"feature" validate:"required"`
}

type RemoveFeatureRequest struct {
	Category string `json:"category" validate:"required"`
	Feature  string `json:"feature" validate:"required"`
}

func NewCatalogService(cfg config.CatalogConfig) (*CatalogService, error) {
	cat, err := catalog.Load(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"path":       cfg.Path,
		"categories": cat.Len(),
	}).Info("Catalog loaded")

	return &CatalogService{cat: cat, path: cfg.Path}, nil
}

// Catalog returns a snapshot of the catalog for read-only use (composition,
// selection parsing, listing).
func (s *CatalogService) Catalog() *catalog.Catalog {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	snapshot := catalog.New()
	for _, cat := range s.cat.Categories() {
		for _, feature := range cat.Features {
			snapshot.AddFeature(cat.Name, feature)
		}
	}
	return snapshot
}

// Categories lists the catalog in insertion order.
func (s *CatalogService) Categories() []catalog.Category {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.cat.Categories()
}

// AddFeature appends a feature to a category (creating the category when
// absent) and rewrites the catalog file.
func (s *CatalogService) AddFeature(category, feature string) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.cat.HasFeature(category, feature) {
		return ErrDuplicateFeature
	}

	s.cat.AddFeature(category, feature)
	if err := s.cat.Save(s.path); err != nil {
		// keep memory and disk in agreement
		s.cat.RemoveFeature(category, feature)
		return fmt.Errorf("saving catalog: %w", err)
	}

	logrus.WithFields(logrus.Fields{"category": category, "feature": feature}).Info("Catalog feature added")
	return nil
}

// RemoveFeature deletes a feature from a category and rewrites the catalog
// file. Reports whether the feature existed.
func (s *CatalogService) RemoveFeature(category, feature string) (bool, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if !s.cat.RemoveFeature(category, feature) {
		return false, nil
	}
	if err := s.cat.Save(s.path); err != nil {
		s.cat.AddFeature(category, feature)
		return false, fmt.Errorf("saving catalog: %w", err)
	}

	logrus.WithFields(logrus.Fields{"category": category, "feature": feature}).Info("Catalog feature removed")
	return true, nil
}
