package models

import (
	"time"

	"github.com/shopspring/decimal"

	"finledger/internal/money"
)

// Investment is a position held by one person.
type Investment struct {
	Base
	Name           string           `gorm:"not null" json:"name"`
	Type           InvestmentType   `gorm:"not null" json:"type"`
	OwnerID        string           `gorm:"type:uuid;not null;index" json:"owner_id"`
	InvestedAmount money.Money      `gorm:"type:decimal(14,2);not null" json:"invested_amount"`
	InvestmentDate time.Time        `gorm:"not null" json:"investment_date"`
	AnnualRate     *decimal.Decimal `gorm:"type:decimal(8,4)" json:"annual_rate,omitempty"`
	CurrentValue   *money.Money     `gorm:"type:decimal(14,2)" json:"current_value,omitempty"`
	Description    string           `json:"description"`
	Institution    string           `json:"institution"`
}
