package models

import (
	"time"

	"finledger/internal/money"
)

// SavingsGoal accumulates deposits toward a target amount.
// Invariant: CurrentAmount always equals the sum of the goal's live
// deposits; every mutation path applies its delta through the savings
// service's single choke point.
type SavingsGoal struct {
	Base
	Name          string           `gorm:"not null" json:"name"`
	TargetAmount  money.Money      `gorm:"type:decimal(14,2);not null" json:"target_amount"`
	CurrentAmount money.Money      `gorm:"type:decimal(14,2);not null" json:"current_amount"`
	Deadline      *time.Time       `json:"deadline,omitempty"`
	OwnerID       string           `gorm:"type:uuid;not null;index" json:"owner_id"`
	Description   string           `json:"description"`
	Deposits      []SavingsDeposit `gorm:"foreignKey:GoalID" json:"deposits,omitempty"`
}

// SavingsDeposit is one contribution toward a goal.
type SavingsDeposit struct {
	Base
	GoalID   string      `gorm:"type:uuid;not null;index" json:"goal_id"`
	Amount   money.Money `gorm:"type:decimal(14,2);not null" json:"amount"`
	Date     time.Time   `gorm:"not null" json:"date"`
	PersonID *string     `gorm:"type:uuid" json:"person_id,omitempty"`
	Note     string      `json:"note"`
}
