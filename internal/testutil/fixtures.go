package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"gorm.io/gorm"

	"finledger/internal/models"
	"finledger/internal/money"
)

var fixtureCounter int64

func nextID() int64 {
	return atomic.AddInt64(&fixtureCounter, 1)
}

// CreateTestPerson inserts an active person with a unique name.
func CreateTestPerson(t *testing.T, db *gorm.DB) *models.Person {
	t.Helper()
	person := &models.Person{
		Name:   fmt.Sprintf("Person %d", nextID()),
		Active: true,
	}
	if err := db.Create(person).Error; err != nil {
		t.Fatalf("failed to create test person: %v", err)
	}
	return person
}

// CreateTestCreditCard inserts a card owned by the given person.
func CreateTestCreditCard(t *testing.T, db *gorm.DB, ownerID string) *models.CreditCard {
	t.Helper()
	card := &models.CreditCard{
		Name:       fmt.Sprintf("Card %d", nextID()),
		OwnerID:    ownerID,
		ClosingDay: 5,
		DueDay:     12,
		Limit:      money.MustFromString("5000.00"),
	}
	if err := db.Create(card).Error; err != nil {
		t.Fatalf("failed to create test credit card: %v", err)
	}
	return card
}

// CreateTestTransaction inserts a single expense transaction for the given
// owner on the given date.
func CreateTestTransaction(t *testing.T, db *gorm.DB, owner models.PersonRef, date time.Time, value string) *models.Transaction {
	t.Helper()
	transaction := &models.Transaction{
		Date:              date,
		Type:              models.TransactionTypeExpense,
		PaymentMethod:     models.PaymentMethodPix,
		Owner:             owner,
		Category:          "Mercado",
		Description:       fmt.Sprintf("Test transaction %d", nextID()),
		Value:             money.MustFromString(value),
		Competency:        fmt.Sprintf("%02d/%d", date.Month(), date.Year()),
		InstallmentNumber: 1,
		TotalInstallments: 1,
	}
	if err := db.Create(transaction).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return transaction
}

// CreateTestIncome inserts an income transaction for the given owner and
// competency.
func CreateTestIncome(t *testing.T, db *gorm.DB, owner models.PersonRef, comp string, value string) *models.Transaction {
	t.Helper()
	transaction := &models.Transaction{
		Date:              time.Now(),
		Type:              models.TransactionTypeIncome,
		PaymentMethod:     models.PaymentMethodPix,
		Owner:             owner,
		Category:          "Salário",
		Description:       fmt.Sprintf("Test income %d", nextID()),
		Value:             money.MustFromString(value),
		Competency:        comp,
		InstallmentNumber: 1,
		TotalInstallments: 1,
	}
	if err := db.Create(transaction).Error; err != nil {
		t.Fatalf("failed to create test income: %v", err)
	}
	return transaction
}

// CreateTestGoal inserts a savings goal owned by the given person.
func CreateTestGoal(t *testing.T, db *gorm.DB, ownerID string) *models.SavingsGoal {
	t.Helper()
	goal := &models.SavingsGoal{
		Name:          fmt.Sprintf("Goal %d", nextID()),
		TargetAmount:  money.MustFromString("10000.00"),
		CurrentAmount: money.Zero(),
		OwnerID:       ownerID,
	}
	if err := db.Create(goal).Error; err != nil {
		t.Fatalf("failed to create test goal: %v", err)
	}
	return goal
}
