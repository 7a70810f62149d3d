package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "finledger/internal/errors"
	"finledger/internal/models"
	"finledger/internal/validator"
)

type investmentService struct {
	db *gorm.DB
}

// NewInvestmentService creates a new InvestmentServicer.
func NewInvestmentService(db *gorm.DB) InvestmentServicer {
	return &investmentService{db: db}
}

// List returns all investments ordered by investment date descending.
func (s *investmentService) List() ([]models.Investment, error) {
	var investments []models.Investment
	if err := s.db.Order("investment_date DESC, id DESC").Find(&investments).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return investments, nil
}

// Create stores a new investment. When no current value is given the
// invested amount is used.
func (s *investmentService) Create(req InvestmentRequest) (*models.Investment, error) {
	if err := validator.Struct(req); err != nil {
		return nil, err
	}
	if err := s.ensureOwner(req.OwnerID); err != nil {
		return nil, err
	}

	currentValue := req.InvestedAmount
	if req.CurrentValue != nil {
		currentValue = *req.CurrentValue
	}
	investment := &models.Investment{
		Name:           req.Name,
		Type:           req.Type,
		OwnerID:        req.OwnerID,
		InvestedAmount: req.InvestedAmount,
		InvestmentDate: req.InvestmentDate,
		AnnualRate:     req.AnnualRate,
		CurrentValue:   &currentValue,
		Description:    req.Description,
		Institution:    req.Institution,
	}
	if err := s.db.Create(investment).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return investment, nil
}

// Update rewrites an investment's fields.
func (s *investmentService) Update(investmentID string, req InvestmentRequest) (*models.Investment, error) {
	if err := validator.Struct(req); err != nil {
		return nil, err
	}

	investment, err := s.getByID(investmentID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureOwner(req.OwnerID); err != nil {
		return nil, err
	}

	investment.Name = req.Name
	investment.Type = req.Type
	investment.OwnerID = req.OwnerID
	investment.InvestedAmount = req.InvestedAmount
	investment.InvestmentDate = req.InvestmentDate
	investment.AnnualRate = req.AnnualRate
	investment.Description = req.Description
	investment.Institution = req.Institution
	if req.CurrentValue != nil {
		investment.CurrentValue = req.CurrentValue
	}

	if err := s.db.Save(investment).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return investment, nil
}

// Delete removes an investment.
func (s *investmentService) Delete(investmentID string) error {
	investment, err := s.getByID(investmentID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(investment).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func (s *investmentService) getByID(investmentID string) (*models.Investment, error) {
	var investment models.Investment
	if err := s.db.First(&investment, "id = ?", investmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvestmentNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &investment, nil
}

func (s *investmentService) ensureOwner(personID string) error {
	var count int64
	if err := s.db.Model(&models.Person{}).Where("id = ?", personID).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return apperrors.WithMessage(apperrors.ErrPersonNotFound, "Person not found: "+personID)
	}
	return nil
}
