package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "finledger/internal/errors"
	"finledger/internal/models"
	"finledger/internal/validator"
)

type creditCardService struct {
	db *gorm.DB
}

// NewCreditCardService creates a new CreditCardServicer.
func NewCreditCardService(db *gorm.DB) CreditCardServicer {
	return &creditCardService{db: db}
}

// List returns all cards ordered by name.
func (s *creditCardService) List() ([]models.CreditCard, error) {
	var cards []models.CreditCard
	if err := s.db.Order("name").Find(&cards).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return cards, nil
}

// Create stores a new credit card.
func (s *creditCardService) Create(req CreditCardRequest) (*models.CreditCard, error) {
	if err := validator.Struct(req); err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.Model(&models.Person{}).Where("id = ?", req.OwnerID).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrPersonNotFound, "Person not found: "+req.OwnerID)
	}

	card := &models.CreditCard{
		Name:       req.Name,
		OwnerID:    req.OwnerID,
		ClosingDay: req.ClosingDay,
		DueDay:     req.DueDay,
		Limit:      req.Limit,
	}
	if err := s.db.Create(card).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return card, nil
}

// Delete removes a card. Transactions that referenced it keep their card
// column; they simply point at a card that no longer resolves.
func (s *creditCardService) Delete(cardID string) error {
	var card models.CreditCard
	if err := s.db.First(&card, "id = ?", cardID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrCreditCardNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("credit_card_id = ?", card.ID).Delete(&models.CreditCardInvoice{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(&card).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// FindByName resolves a card by name, case-insensitively. CSV rows carry the
// card name, not its ID.
func (s *creditCardService) FindByName(name string) (*models.CreditCard, error) {
	var card models.CreditCard
	if err := s.db.First(&card, "LOWER(name) = LOWER(?)", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.WithMessage(apperrors.ErrCreditCardNotFound, "Credit card not found: "+name)
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &card, nil
}
