package models

import (
	"github.com/shopspring/decimal"

	"finledger/internal/money"
)

// Budget caps a category's spending for one competency and owner. Amount is
// always resolved to a concrete value at creation time; percentage budgets
// keep the percentage for display but are never re-resolved, even when the
// competency's income later changes.
type Budget struct {
	Base
	Competency string           `gorm:"size:7;not null;index" json:"competency"`
	Category   string           `gorm:"not null" json:"category"`
	Owner      PersonRef        `gorm:"embedded" json:"owner"`
	BudgetType BudgetType       `gorm:"not null;default:fixed" json:"budget_type"`
	Amount     money.Money      `gorm:"type:decimal(14,2);not null" json:"amount"`
	Percentage *decimal.Decimal `gorm:"type:decimal(6,2)" json:"percentage,omitempty"`
}
