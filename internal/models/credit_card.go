package models

import (
	"time"

	"finledger/internal/money"
)

// CreditCard is a card owned by one person.
type CreditCard struct {
	Base
	Name       string      `gorm:"not null" json:"name"`
	OwnerID    string      `gorm:"type:uuid;not null;index" json:"owner_id"`
	ClosingDay int         `json:"closing_day"`
	DueDay     int         `json:"due_day"`
	Limit      money.Money `gorm:"type:decimal(14,2)" json:"limit"`
}

// CreditCardInvoice tracks whether a card's invoice for a reference month
// has been paid. A missing row means unpaid.
type CreditCardInvoice struct {
	Base
	CreditCardID   string     `gorm:"type:uuid;not null;index:idx_invoice_card_month,unique" json:"credit_card_id"`
	ReferenceMonth string     `gorm:"size:7;not null;index:idx_invoice_card_month,unique" json:"reference_month"`
	Paid           bool       `gorm:"default:false" json:"paid"`
	PaidAt         *time.Time `json:"paid_at,omitempty"`
}
