package services

import (
	"testing"

	apperrors "finledger/internal/errors"
	"finledger/internal/models"
	"finledger/internal/money"
	"finledger/internal/testutil"
)

func TestTotalIncome(t *testing.T) {
	alice := models.IndividualRef("alice-id")
	bob := models.IndividualRef("bob-id")

	incomes := []models.Transaction{
		{Owner: alice, Value: money.MustFromString("5000.00")},
		{Owner: bob, Value: money.MustFromString("3000.00")},
		{Owner: models.JointRef(), Value: money.MustFromString("1000.00")},
	}

	t.Run("joint owner sums everything exactly", func(t *testing.T) {
		total := TotalIncome(models.JointRef(), incomes)
		if !total.Equal(money.MustFromString("9000.00")) {
			t.Errorf("expected 9000.00, got %s", total)
		}
	})

	t.Run("individual gets own income plus half of joint", func(t *testing.T) {
		total := TotalIncome(alice, incomes)
		if !total.Equal(money.MustFromString("5500.00")) {
			t.Errorf("expected 5500.00, got %s", total)
		}
	})

	t.Run("each joint row is halved and rounded separately", func(t *testing.T) {
		rows := []models.Transaction{
			{Owner: models.JointRef(), Value: money.MustFromString("0.01")},
			{Owner: models.JointRef(), Value: money.MustFromString("0.01")},
		}
		// Half of 0.01 rounds half-up to 0.01, per row.
		total := TotalIncome(alice, rows)
		if !total.Equal(money.MustFromString("0.02")) {
			t.Errorf("expected 0.02, got %s", total)
		}
	})

	t.Run("order of rows does not change the total", func(t *testing.T) {
		reversed := []models.Transaction{incomes[2], incomes[1], incomes[0]}
		if !TotalIncome(alice, incomes).Equal(TotalIncome(alice, reversed)) {
			t.Error("expected total to be independent of row order")
		}
	})

	t.Run("no income rows means zero", func(t *testing.T) {
		if !TotalIncome(alice, nil).IsZero() {
			t.Error("expected zero total for no rows")
		}
	})
}

func TestIncomeServiceTotalIncomeFor(t *testing.T) {
	db := testutil.SetupTestDB(t)
	service := NewIncomeService(db)

	person := testutil.CreateTestPerson(t, db)
	owner := models.IndividualRef(person.ID)

	testutil.CreateTestIncome(t, db, owner, "03/2024", "4000.00")
	testutil.CreateTestIncome(t, db, models.JointRef(), "03/2024", "1000.00")
	// Different competency, must not count.
	testutil.CreateTestIncome(t, db, owner, "04/2024", "9999.00")
	// Expenses must not count either.
	testutil.CreateTestTransaction(t, db, owner, mustDate(t, "2024-03-10"), "250.00")

	t.Run("filters by competency and type", func(t *testing.T) {
		total, err := service.TotalIncomeFor("03/2024", owner)
		testutil.AssertNoError(t, err)
		if !total.Equal(money.MustFromString("4500.00")) {
			t.Errorf("expected 4500.00, got %s", total)
		}
	})

	t.Run("rejects a malformed competency", func(t *testing.T) {
		_, err := service.TotalIncomeFor("2024-03", owner)
		testutil.AssertAppError(t, err, apperrors.ErrInvalidInput)
	})
}
