package services

import (
	"testing"

	apperrors "finledger/internal/errors"
	"finledger/internal/models"
	"finledger/internal/money"
	"finledger/internal/testutil"
)

func TestPersonServiceCreate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	service := NewPersonService(db)

	t.Run("duplicate name is rejected", func(t *testing.T) {
		_, err := service.Create(PersonRequest{Name: "Maria"})
		testutil.AssertNoError(t, err)
		_, err = service.Create(PersonRequest{Name: "Maria"})
		testutil.AssertAppError(t, err, apperrors.ErrDuplicatePersonName)
	})

	t.Run("split partners are persisted both ways", func(t *testing.T) {
		partner, err := service.Create(PersonRequest{Name: "João"})
		testutil.AssertNoError(t, err)

		allow := true
		created, err := service.Create(PersonRequest{
			Name:               "Ana",
			AllowSplit:         &allow,
			SplitWithPersonIDs: []string{partner.ID},
		})
		testutil.AssertNoError(t, err)

		fetched, err := service.GetByID(created.ID)
		testutil.AssertNoError(t, err)
		if len(fetched.SplitWith) != 1 || fetched.SplitWith[0].ID != partner.ID {
			t.Fatalf("expected split partner %s, got %+v", partner.ID, fetched.SplitWith)
		}
	})

	t.Run("self split is rejected", func(t *testing.T) {
		created, err := service.Create(PersonRequest{Name: "Pedro"})
		testutil.AssertNoError(t, err)
		_, err = service.Update(created.ID, PersonRequest{
			Name:               "Pedro",
			SplitWithPersonIDs: []string{created.ID},
		})
		testutil.AssertAppError(t, err, apperrors.ErrSelfSplit)
	})

	t.Run("unknown split partner is rejected", func(t *testing.T) {
		_, err := service.Create(PersonRequest{
			Name:               "Carla",
			SplitWithPersonIDs: []string{"missing-person"},
		})
		testutil.AssertAppError(t, err, apperrors.ErrPersonNotFound)
	})
}

func TestPersonServiceDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	service := NewPersonService(db)

	t.Run("requires exactly one fate for owned records", func(t *testing.T) {
		person := testutil.CreateTestPerson(t, db)

		err := service.Delete(person.ID, DeletePersonRequest{})
		testutil.AssertAppError(t, err, apperrors.ErrDeletionChoiceNeeded)

		target := testutil.CreateTestPerson(t, db)
		err = service.Delete(person.ID, DeletePersonRequest{
			MigrateToPersonID: &target.ID,
			DeleteOwned:       true,
		})
		testutil.AssertAppError(t, err, apperrors.ErrDeletionChoiceNeeded)
	})

	t.Run("migrate moves every owned record to the target", func(t *testing.T) {
		person := testutil.CreateTestPerson(t, db)
		target := testutil.CreateTestPerson(t, db)
		owner := models.IndividualRef(person.ID)

		testutil.CreateTestTransaction(t, db, owner, mustDate(t, "2024-02-10"), "80.00")
		card := testutil.CreateTestCreditCard(t, db, person.ID)
		goal := testutil.CreateTestGoal(t, db, person.ID)
		deposit := models.SavingsDeposit{
			GoalID:   goal.ID,
			Amount:   money.MustFromString("10.00"),
			Date:     mustDate(t, "2024-02-11"),
			PersonID: &person.ID,
		}
		testutil.AssertNoError(t, db.Create(&deposit).Error)

		err := service.Delete(person.ID, DeletePersonRequest{MigrateToPersonID: &target.ID})
		testutil.AssertNoError(t, err)

		_, err = service.GetByID(person.ID)
		testutil.AssertAppError(t, err, apperrors.ErrPersonNotFound)

		var migratedTx models.Transaction
		testutil.AssertNoError(t, db.First(&migratedTx, "person_id = ?", target.ID).Error)
		var migratedCard models.CreditCard
		testutil.AssertNoError(t, db.First(&migratedCard, "id = ?", card.ID).Error)
		if migratedCard.OwnerID != target.ID {
			t.Errorf("expected card owner %s, got %s", target.ID, migratedCard.OwnerID)
		}
		var migratedGoal models.SavingsGoal
		testutil.AssertNoError(t, db.First(&migratedGoal, "id = ?", goal.ID).Error)
		if migratedGoal.OwnerID != target.ID {
			t.Errorf("expected goal owner %s, got %s", target.ID, migratedGoal.OwnerID)
		}
	})

	t.Run("delete-owned removes the whole estate", func(t *testing.T) {
		person := testutil.CreateTestPerson(t, db)
		owner := models.IndividualRef(person.ID)

		transaction := testutil.CreateTestTransaction(t, db, owner, mustDate(t, "2024-02-10"), "80.00")
		card := testutil.CreateTestCreditCard(t, db, person.ID)
		goal := testutil.CreateTestGoal(t, db, person.ID)
		deposit := models.SavingsDeposit{
			GoalID: goal.ID,
			Amount: money.MustFromString("10.00"),
			Date:   mustDate(t, "2024-02-11"),
		}
		testutil.AssertNoError(t, db.Create(&deposit).Error)

		err := service.Delete(person.ID, DeletePersonRequest{DeleteOwned: true})
		testutil.AssertNoError(t, err)

		for name, query := range map[string]int64{
			"transactions": count(t, db, &models.Transaction{}, "id = ?", transaction.ID),
			"cards":        count(t, db, &models.CreditCard{}, "id = ?", card.ID),
			"goals":        count(t, db, &models.SavingsGoal{}, "id = ?", goal.ID),
			"deposits":     count(t, db, &models.SavingsDeposit{}, "id = ?", deposit.ID),
		} {
			if query != 0 {
				t.Errorf("expected no surviving %s, found %d", name, query)
			}
		}
	})

	t.Run("migration target must exist and differ", func(t *testing.T) {
		person := testutil.CreateTestPerson(t, db)

		missing := "missing-person"
		err := service.Delete(person.ID, DeletePersonRequest{MigrateToPersonID: &missing})
		testutil.AssertAppError(t, err, apperrors.ErrPersonNotFound)

		err = service.Delete(person.ID, DeletePersonRequest{MigrateToPersonID: &person.ID})
		testutil.AssertAppError(t, err, apperrors.ErrInvalidInput)
	})
}
