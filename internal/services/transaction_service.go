package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"finledger/internal/competency"
	apperrors "finledger/internal/errors"
	"finledger/internal/models"
	"finledger/internal/money"
	"finledger/internal/pagination"
	"finledger/internal/uuid"
	"finledger/internal/validator"
)

// transactionService handles ledger entries and the installment lifecycle.
type transactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db}
}

// Create stores a single (non-installment) transaction.
func (s *transactionService) Create(req TransactionRequest) (*models.Transaction, error) {
	if err := validator.Struct(req); err != nil {
		return nil, err
	}
	if err := s.ensureRefs(s.db, req); err != nil {
		return nil, err
	}

	transaction := newTransactionFromRequest(req)
	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transaction, nil
}

func newTransactionFromRequest(req TransactionRequest) *models.Transaction {
	return &models.Transaction{
		Date:              req.Date,
		Type:              req.Type,
		PaymentMethod:     req.PaymentMethod,
		Owner:             req.Owner,
		Category:          req.Category,
		Description:       req.Description,
		Value:             req.Value,
		Competency:        req.Competency,
		CreditCardID:      req.CreditCardID,
		InstallmentNumber: 1,
		TotalInstallments: 1,
	}
}

func (s *transactionService) ensureRefs(tx *gorm.DB, req TransactionRequest) error {
	if !req.Owner.Joint {
		if req.Owner.PersonID == nil {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, "transaction owner is required")
		}
		var count int64
		if err := tx.Model(&models.Person{}).Where("id = ?", *req.Owner.PersonID).Count(&count).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count == 0 {
			return apperrors.WithMessage(apperrors.ErrPersonNotFound, "Person not found: "+*req.Owner.PersonID)
		}
	}
	if req.CreditCardID != nil {
		var count int64
		if err := tx.Model(&models.CreditCard{}).Where("id = ?", *req.CreditCardID).Count(&count).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count == 0 {
			return apperrors.WithMessage(apperrors.ErrCreditCardNotFound, "Credit card not found: "+*req.CreditCardID)
		}
	}
	return nil
}

// GetByID returns a transaction by ID.
func (s *transactionService) GetByID(transactionID string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.First(&transaction, "id = ?", transactionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// Update rewrites a transaction's fields. Installment-group columns are not
// editable here; use ReflowInstallments for grouped rows.
func (s *transactionService) Update(transactionID string, req TransactionRequest) (*models.Transaction, error) {
	if err := validator.Struct(req); err != nil {
		return nil, err
	}

	transaction, err := s.GetByID(transactionID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureRefs(s.db, req); err != nil {
		return nil, err
	}

	transaction.Date = req.Date
	transaction.Type = req.Type
	transaction.PaymentMethod = req.PaymentMethod
	transaction.Owner = req.Owner
	transaction.Category = req.Category
	transaction.Description = req.Description
	transaction.Value = req.Value
	transaction.Competency = req.Competency
	transaction.CreditCardID = req.CreditCardID

	if err := s.db.Save(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transaction, nil
}

// Delete removes a single transaction. Rows belonging to an installment
// group cannot be deleted on their own: that would leave the group's
// TotalInstallments lying about the actual row count. Delete the group.
func (s *transactionService) Delete(transactionID string) error {
	transaction, err := s.GetByID(transactionID)
	if err != nil {
		return err
	}
	if transaction.Grouped() {
		return apperrors.ErrInstallmentGroupMember
	}
	if err := s.db.Delete(transaction).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// List returns transactions ordered by date descending, with optional
// date-range, competency and type filters.
func (s *transactionService) List(page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := s.db.Model(&models.Transaction{})
	if filter.FromDate != nil {
		base = base.Where("date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		base = base.Where("date <= ?", *filter.ToDate)
	}
	if filter.Competency != nil {
		base = base.Where("competency = ?", *filter.Competency)
	}
	if filter.Type != nil {
		base = base.Where("type = ?", *filter.Type)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Scopes(pagination.Paginate(page)).
		Order("date DESC, id DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// CreateInstallments splits one purchase into totalInstallments rows dated
// one calendar month apart (day clamped to shorter months), each valued at
// round(total/n, 2, half-up). The division remainder is absorbed by rounding
// rather than redistributed to the last row. All rows share a fresh group ID
// and are written in one unit of work.
func (s *transactionService) CreateInstallments(req TransactionRequest, totalInstallments int) ([]models.Transaction, error) {
	if totalInstallments < 2 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "an installment purchase needs at least 2 installments")
	}
	if err := validator.Struct(req); err != nil {
		return nil, err
	}
	if err := s.ensureRefs(s.db, req); err != nil {
		return nil, err
	}

	groupID := uuid.New()
	perInstallment := req.Value.SplitEven(totalInstallments)

	rows := make([]models.Transaction, 0, totalInstallments)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for i := 0; i < totalInstallments; i++ {
			date := competency.AddMonths(req.Date, i)
			row := newTransactionFromRequest(req)
			row.Date = date
			row.Competency = competency.FromDate(date).String()
			row.Value = perInstallment
			row.InstallmentNumber = i + 1
			row.TotalInstallments = totalInstallments
			row.ParentPurchaseID = &groupID

			if err := tx.Create(row).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			rows = append(rows, *row)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Installments returns an installment group ordered by installment number.
func (s *transactionService) Installments(parentPurchaseID string) ([]models.Transaction, error) {
	var rows []models.Transaction
	err := s.db.
		Where("parent_purchase_id = ?", parentPurchaseID).
		Order("installment_number").
		Find(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if len(rows) == 0 {
		return nil, apperrors.ErrInstallmentGroupNotFound
	}
	return rows, nil
}

// ReflowInstallments re-splits and redates an existing group after its total
// value or anchor date changes. The group size is immutable: the row count
// is authoritative. When no new total is given, the sum of the rows' current
// values is used, so prior manual edits are preserved; when no new date is
// given, the first installment's date anchors the group. Values and dates of
// all rows are recomputed uniformly and written back as one unit of work.
func (s *transactionService) ReflowInstallments(parentPurchaseID string, newTotalValue *money.Money, newPurchaseDate *time.Time) ([]models.Transaction, error) {
	var rows []models.Transaction
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("parent_purchase_id = ?", parentPurchaseID).
			Order("installment_number").
			Find(&rows).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if len(rows) == 0 {
			return apperrors.ErrInstallmentGroupNotFound
		}

		total := money.Zero()
		if newTotalValue != nil {
			total = *newTotalValue
		} else {
			for _, row := range rows {
				total = total.Add(row.Value)
			}
		}

		anchor := rows[0].Date
		if newPurchaseDate != nil {
			anchor = *newPurchaseDate
		}

		perInstallment := total.SplitEven(len(rows))
		for i := range rows {
			date := competency.AddMonths(anchor, i)
			rows[i].Value = perInstallment
			rows[i].Date = date
			rows[i].Competency = competency.FromDate(date).String()

			if err := tx.Save(&rows[i]).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// DeleteInstallmentGroup removes every row of an installment group in one
// operation.
func (s *transactionService) DeleteInstallmentGroup(parentPurchaseID string) error {
	var count int64
	if err := s.db.Model(&models.Transaction{}).Where("parent_purchase_id = ?", parentPurchaseID).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return apperrors.ErrInstallmentGroupNotFound
	}
	if err := s.db.Where("parent_purchase_id = ?", parentPurchaseID).Delete(&models.Transaction{}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
