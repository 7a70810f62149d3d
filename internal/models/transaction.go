package models

import (
	"time"

	"finledger/internal/money"
)

// Transaction is one concrete ledger entry. Installment purchases produce
// several rows sharing a ParentPurchaseID, numbered 1..TotalInstallments
// with one-month date and competency increments.
type Transaction struct {
	Base
	Date          time.Time       `gorm:"not null;index" json:"date"`
	Type          TransactionType `gorm:"not null" json:"type"`
	PaymentMethod PaymentMethod   `gorm:"not null" json:"payment_method"`
	Owner         PersonRef       `gorm:"embedded" json:"owner"`
	Category      string          `gorm:"not null" json:"category"`
	Description   string          `json:"description"`
	Value         money.Money     `gorm:"type:decimal(14,2);not null" json:"value"`
	Competency    string          `gorm:"size:7;not null;index" json:"competency"`
	CreditCardID  *string         `gorm:"type:uuid" json:"credit_card_id,omitempty"`

	// Installment group. Both fields are 1 for standalone entries;
	// ParentPurchaseID is set only for grouped rows.
	InstallmentNumber int     `gorm:"default:1" json:"installment_number"`
	TotalInstallments int     `gorm:"default:1" json:"total_installments"`
	ParentPurchaseID  *string `gorm:"type:uuid;index" json:"parent_purchase_id,omitempty"`
}

// Grouped reports whether the row belongs to an installment group.
func (t *Transaction) Grouped() bool {
	return t.ParentPurchaseID != nil
}
