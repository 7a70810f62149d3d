package models

import (
	"time"

	"finledger/internal/money"
)

// RecurringTransaction is a template that, projected onto a target
// competency, yields at most one concrete transaction. Definitions are
// deactivated rather than deleted when past generations must stay valid.
type RecurringTransaction struct {
	Base
	Description    string          `gorm:"not null" json:"description"`
	Type           TransactionType `gorm:"not null" json:"type"`
	PaymentMethod  PaymentMethod   `gorm:"not null" json:"payment_method"`
	Owner          PersonRef       `gorm:"embedded" json:"owner"`
	Category       string          `gorm:"not null" json:"category"`
	Value          money.Money     `gorm:"type:decimal(14,2);not null" json:"value"`
	StartDate      time.Time       `gorm:"not null" json:"start_date"`
	EndDate        *time.Time      `json:"end_date,omitempty"`
	DayOfMonth     int             `gorm:"not null;default:1" json:"day_of_month"`
	CreditCardID   *string         `gorm:"type:uuid" json:"credit_card_id,omitempty"`
	Active         bool            `gorm:"default:true" json:"active"`
	BaseCompetency string          `gorm:"size:7" json:"base_competency"`
}
