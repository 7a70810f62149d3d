package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "finledger/internal/errors"
	"finledger/internal/models"
	"finledger/internal/validator"
)

// budgetService handles budget allocation.
type budgetService struct {
	db     *gorm.DB
	income IncomeServicer
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB, income IncomeServicer) BudgetServicer {
	return &budgetService{db: db, income: income}
}

// Create resolves and stores a budget. Fixed budgets keep the requested
// amount. Percentage budgets are resolved once against the owner's effective
// income for the competency and stored as that concrete amount; the snapshot
// is never recomputed, even if income changes retroactively.
func (s *budgetService) Create(req BudgetRequest) (*models.Budget, error) {
	if err := validator.Struct(req); err != nil {
		return nil, err
	}

	if err := s.ensureOwnerExists(req.Owner); err != nil {
		return nil, err
	}

	budgetType := req.BudgetType
	if budgetType == "" {
		budgetType = models.BudgetTypeFixed
	}

	amount := req.Amount
	if budgetType == models.BudgetTypePercentage && req.Percentage != nil {
		income, err := s.income.TotalIncomeFor(req.Competency, req.Owner)
		if err != nil {
			return nil, err
		}
		amount = income.Percent(*req.Percentage)
	}

	budget := &models.Budget{
		Competency: req.Competency,
		Category:   req.Category,
		Owner:      req.Owner,
		BudgetType: budgetType,
		Amount:     amount,
		Percentage: req.Percentage,
	}
	if err := s.db.Create(budget).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budget, nil
}

func (s *budgetService) ensureOwnerExists(owner models.PersonRef) error {
	if owner.Joint {
		return nil
	}
	if owner.PersonID == nil {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "budget owner is required")
	}
	var count int64
	if err := s.db.Model(&models.Person{}).Where("id = ?", *owner.PersonID).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return apperrors.ErrPersonNotFound
	}
	return nil
}

// List returns all budgets ordered by competency then category.
func (s *budgetService) List() ([]models.Budget, error) {
	var budgets []models.Budget
	if err := s.db.Order("competency, category").Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budgets, nil
}

// Delete removes a budget by ID.
func (s *budgetService) Delete(budgetID string) error {
	var budget models.Budget
	if err := s.db.First(&budget, "id = ?", budgetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrBudgetNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.db.Delete(&budget).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
