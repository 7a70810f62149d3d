package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"finledger/internal/competency"
	apperrors "finledger/internal/errors"
	"finledger/internal/models"
)

// invoiceService tracks whether a card's invoice for a reference month has
// been paid. Invoice rows are created lazily, so a card with no row for a
// month is simply unpaid.
type invoiceService struct {
	db *gorm.DB
}

// NewInvoiceService creates a new InvoiceServicer.
func NewInvoiceService(db *gorm.DB) InvoiceServicer {
	return &invoiceService{db: db}
}

// ListByMonth reports the invoice status of every card for a reference
// month, defaulting cards without a stored row to unpaid.
func (s *invoiceService) ListByMonth(referenceMonth string) ([]InvoiceStatus, error) {
	if _, err := competency.Parse(referenceMonth); err != nil {
		return nil, apperrors.ErrReferenceMonthRequired
	}

	var cards []models.CreditCard
	if err := s.db.Order("name").Find(&cards).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var invoices []models.CreditCardInvoice
	if err := s.db.Where("reference_month = ?", referenceMonth).Find(&invoices).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	byCard := make(map[string]models.CreditCardInvoice, len(invoices))
	for _, invoice := range invoices {
		byCard[invoice.CreditCardID] = invoice
	}

	statuses := make([]InvoiceStatus, 0, len(cards))
	for _, card := range cards {
		status := InvoiceStatus{
			CardID:         card.ID,
			CardName:       card.Name,
			ReferenceMonth: referenceMonth,
		}
		if invoice, ok := byCard[card.ID]; ok {
			status.Paid = invoice.Paid
			status.PaidAt = invoice.PaidAt
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

// SetStatus marks one card's invoice paid or unpaid for a reference month.
func (s *invoiceService) SetStatus(cardID string, req InvoiceStatusRequest) (*InvoiceStatus, error) {
	if _, err := competency.Parse(req.ReferenceMonth); err != nil {
		return nil, apperrors.ErrReferenceMonthRequired
	}
	if req.Paid == nil {
		return nil, apperrors.ErrPaidFlagRequired
	}

	var card models.CreditCard
	if err := s.db.First(&card, "id = ?", cardID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCreditCardNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var status *InvoiceStatus
	err := s.db.Transaction(func(tx *gorm.DB) error {
		invoice, err := s.setCardStatus(tx, card.ID, req.ReferenceMonth, *req.Paid)
		if err != nil {
			return err
		}
		status = &InvoiceStatus{
			CardID:         card.ID,
			CardName:       card.Name,
			ReferenceMonth: req.ReferenceMonth,
			Paid:           invoice.Paid,
			PaidAt:         invoice.PaidAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return status, nil
}

// SetAllStatus marks every card's invoice paid or unpaid for a reference
// month and returns the resulting statuses.
func (s *invoiceService) SetAllStatus(req InvoiceStatusRequest) ([]InvoiceStatus, error) {
	if _, err := competency.Parse(req.ReferenceMonth); err != nil {
		return nil, apperrors.ErrReferenceMonthRequired
	}
	if req.Paid == nil {
		return nil, apperrors.ErrPaidFlagRequired
	}

	var cards []models.CreditCard
	if err := s.db.Order("name").Find(&cards).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, card := range cards {
			if _, err := s.setCardStatus(tx, card.ID, req.ReferenceMonth, *req.Paid); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.ListByMonth(req.ReferenceMonth)
}

// setCardStatus upserts the lazily-created invoice row for one card/month.
func (s *invoiceService) setCardStatus(tx *gorm.DB, cardID, referenceMonth string, paid bool) (*models.CreditCardInvoice, error) {
	var invoice models.CreditCardInvoice
	err := tx.Where("credit_card_id = ? AND reference_month = ?", cardID, referenceMonth).First(&invoice).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		invoice = models.CreditCardInvoice{
			CreditCardID:   cardID,
			ReferenceMonth: referenceMonth,
		}
	}

	invoice.Paid = paid
	if paid {
		now := time.Now()
		invoice.PaidAt = &now
	} else {
		invoice.PaidAt = nil
	}

	if err := tx.Save(&invoice).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &invoice, nil
}
