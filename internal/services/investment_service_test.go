package services

import (
	"testing"

	apperrors "finledger/internal/errors"
	"finledger/internal/models"
	"finledger/internal/money"
	"finledger/internal/testutil"
)

func TestInvestmentService(t *testing.T) {
	db := testutil.SetupTestDB(t)
	service := NewInvestmentService(db)
	person := testutil.CreateTestPerson(t, db)

	t.Run("current value defaults to the invested amount", func(t *testing.T) {
		investment, err := service.Create(InvestmentRequest{
			Name:           "Tesouro Selic 2029",
			Type:           models.InvestmentTypeTreasury,
			OwnerID:        person.ID,
			InvestedAmount: money.MustFromString("10000.00"),
			InvestmentDate: mustDate(t, "2024-01-15"),
		})
		testutil.AssertNoError(t, err)
		if investment.CurrentValue == nil || !investment.CurrentValue.Equal(money.MustFromString("10000.00")) {
			t.Errorf("expected current value 10000.00, got %v", investment.CurrentValue)
		}
	})

	t.Run("update tracks a new current value", func(t *testing.T) {
		investments, err := service.List()
		testutil.AssertNoError(t, err)
		if len(investments) != 1 {
			t.Fatalf("expected 1 investment, got %d", len(investments))
		}

		current := money.MustFromString("10450.00")
		updated, err := service.Update(investments[0].ID, InvestmentRequest{
			Name:           "Tesouro Selic 2029",
			Type:           models.InvestmentTypeTreasury,
			OwnerID:        person.ID,
			InvestedAmount: money.MustFromString("10000.00"),
			InvestmentDate: mustDate(t, "2024-01-15"),
			CurrentValue:   &current,
		})
		testutil.AssertNoError(t, err)
		if !updated.CurrentValue.Equal(current) {
			t.Errorf("expected current value %s, got %s", current, updated.CurrentValue)
		}
	})

	t.Run("unknown owner and missing rows", func(t *testing.T) {
		_, err := service.Create(InvestmentRequest{
			Name:           "CDB",
			Type:           models.InvestmentTypeCDB,
			OwnerID:        "missing-person",
			InvestedAmount: money.MustFromString("100.00"),
			InvestmentDate: mustDate(t, "2024-01-15"),
		})
		testutil.AssertAppError(t, err, apperrors.ErrPersonNotFound)

		testutil.AssertAppError(t, service.Delete("missing-investment"), apperrors.ErrInvestmentNotFound)
	})
}
