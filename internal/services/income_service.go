package services

import (
	"gorm.io/gorm"

	"finledger/internal/competency"
	apperrors "finledger/internal/errors"
	"finledger/internal/models"
	"finledger/internal/money"
)

// incomeService resolves effective income per competency and owner.
type incomeService struct {
	db *gorm.DB
}

// NewIncomeService creates a new IncomeServicer.
func NewIncomeService(db *gorm.DB) IncomeServicer {
	return &incomeService{db: db}
}

// TotalIncomeFor loads the competency's income transactions and resolves the
// owner's effective income from them.
func (s *incomeService) TotalIncomeFor(comp string, owner models.PersonRef) (money.Money, error) {
	if _, err := competency.Parse(comp); err != nil {
		return money.Zero(), apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid competency: "+comp)
	}

	var incomes []models.Transaction
	err := s.db.
		Where("competency = ? AND type = ?", comp, models.TransactionTypeIncome).
		Find(&incomes).Error
	if err != nil {
		return money.Zero(), apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return TotalIncome(owner, incomes), nil
}

// TotalIncome computes an owner's effective income from the income
// transactions of one competency. The joint owner subsumes everyone's income
// and sums every transaction exactly. A concrete person gets their own
// transactions in full plus half of each joint transaction, rounded half-up
// at each division, so reordering the input never changes the total.
func TotalIncome(owner models.PersonRef, incomes []models.Transaction) money.Money {
	total := money.Zero()

	if owner.Joint {
		for _, t := range incomes {
			total = total.Add(t.Value)
		}
		return total
	}

	for _, t := range incomes {
		switch {
		case t.Owner.Joint:
			total = total.Add(t.Value.Half())
		case owner.PersonID != nil && t.Owner.Is(*owner.PersonID):
			total = total.Add(t.Value)
		}
	}
	return total
}
