package services

import (
	"sort"
	"strings"

	"gorm.io/gorm"

	apperrors "finledger/internal/errors"
	"finledger/internal/models"
)

// categoryService manages the flat list of category names. Transactions
// store the category as free text, so the list is a vocabulary, not a
// foreign key.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// List returns all category names sorted case-insensitively.
func (s *categoryService) List() ([]string, error) {
	var categories []models.Category
	if err := s.db.Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	names := make([]string, 0, len(categories))
	for _, category := range categories {
		names = append(names, category.Name)
	}
	sortNames(names)
	return names, nil
}

// ReplaceAll reconciles the stored list against the given one: names absent
// from the input are removed, new names are inserted, and names that only
// changed case keep their row. Existing transactions keep whatever category
// text they were written with.
func (s *categoryService) ReplaceAll(names []string) ([]string, error) {
	wanted := make(map[string]string, len(names))
	for _, name := range names {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if _, ok := wanted[key]; !ok {
			wanted[key] = trimmed
		}
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing []models.Category
		if err := tx.Find(&existing).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		existingByKey := make(map[string]models.Category, len(existing))
		for _, category := range existing {
			existingByKey[strings.ToLower(category.Name)] = category
		}

		for key, category := range existingByKey {
			if _, ok := wanted[key]; !ok {
				if err := tx.Delete(&category).Error; err != nil {
					return apperrors.Wrap(apperrors.ErrInternalServer, err)
				}
			}
		}
		for key, name := range wanted {
			if _, ok := existingByKey[key]; !ok {
				if err := tx.Create(&models.Category{Name: name}).Error; err != nil {
					return apperrors.Wrap(apperrors.ErrInternalServer, err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.List()
}

func sortNames(names []string) {
	sort.Slice(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})
}
