package services

import (
	"testing"
	"time"

	apperrors "finledger/internal/errors"
	"finledger/internal/models"
	"finledger/internal/money"
	"finledger/internal/testutil"
)

func seedRecurring(t *testing.T, service RecurringServicer, owner models.PersonRef, description string, start time.Time, end *time.Time, day int) *models.RecurringTransaction {
	t.Helper()
	def, err := service.Create(RecurringRequest{
		Description:   description,
		Type:          models.TransactionTypeExpense,
		PaymentMethod: models.PaymentMethodDebit,
		Owner:         owner,
		Category:      "Casa",
		Value:         money.MustFromString("150.00"),
		StartDate:     start,
		EndDate:       end,
		DayOfMonth:    day,
	})
	testutil.AssertNoError(t, err)
	return def
}

func TestRecurringServiceCRUD(t *testing.T) {
	db := testutil.SetupTestDB(t)
	service := NewRecurringService(db)
	person := testutil.CreateTestPerson(t, db)
	owner := models.IndividualRef(person.ID)

	def := seedRecurring(t, service, owner, "Aluguel", mustDate(t, "2024-01-01"), nil, 5)
	if def.DayOfMonth != 5 {
		t.Errorf("expected day 5, got %d", def.DayOfMonth)
	}
	if !def.Active {
		t.Error("expected new definition to be active")
	}

	t.Run("day of month defaults to 1", func(t *testing.T) {
		d := seedRecurring(t, service, owner, "Internet", mustDate(t, "2024-01-01"), nil, 0)
		if d.DayOfMonth != 1 {
			t.Errorf("expected default day 1, got %d", d.DayOfMonth)
		}
	})

	t.Run("unknown card is rejected", func(t *testing.T) {
		missing := "missing-card"
		_, err := service.Create(RecurringRequest{
			Description:   "Streaming",
			Type:          models.TransactionTypeExpense,
			PaymentMethod: models.PaymentMethodCredit,
			Owner:         owner,
			Category:      "Lazer",
			Value:         money.MustFromString("40.00"),
			StartDate:     mustDate(t, "2024-01-01"),
			CreditCardID:  &missing,
		})
		testutil.AssertAppError(t, err, apperrors.ErrCreditCardNotFound)
	})

	t.Run("delete then operate on missing definition", func(t *testing.T) {
		testutil.AssertNoError(t, service.Delete(def.ID))
		testutil.AssertAppError(t, service.Delete(def.ID), apperrors.ErrRecurringNotFound)
		_, err := service.Update(def.ID, RecurringRequest{
			Description:   "x",
			Type:          models.TransactionTypeExpense,
			PaymentMethod: models.PaymentMethodPix,
			Owner:         owner,
			Category:      "Casa",
			StartDate:     mustDate(t, "2024-01-01"),
		})
		testutil.AssertAppError(t, err, apperrors.ErrRecurringNotFound)
	})
}

func TestGenerateForMonth(t *testing.T) {
	db := testutil.SetupTestDB(t)
	service := NewRecurringService(db)
	person := testutil.CreateTestPerson(t, db)
	owner := models.IndividualRef(person.ID)

	t.Run("day 31 clamps to the last day of february", func(t *testing.T) {
		seedRecurring(t, service, owner, "Fatura dia 31", mustDate(t, "2024-01-01"), nil, 31)

		generated, issues, err := service.GenerateForMonth("02/2024")
		testutil.AssertNoError(t, err)
		if len(issues) != 0 {
			t.Fatalf("expected no issues, got %v", issues)
		}
		if len(generated) != 1 {
			t.Fatalf("expected 1 generated transaction, got %d", len(generated))
		}
		got := generated[0]
		if want := mustDate(t, "2024-02-29"); !got.Date.Equal(want) {
			t.Errorf("expected date %s, got %s", want, got.Date)
		}
		if got.Competency != "02/2024" {
			t.Errorf("expected competency 02/2024, got %s", got.Competency)
		}
		if got.InstallmentNumber != 1 || got.TotalInstallments != 1 {
			t.Errorf("expected a plain 1/1 transaction, got %d/%d", got.InstallmentNumber, got.TotalInstallments)
		}
	})

	t.Run("generation day before the start date produces nothing", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		service := NewRecurringService(db)
		seedRecurring(t, service, owner, "Começa no meio do mês", mustDate(t, "2024-03-15"), nil, 10)

		generated, issues, err := service.GenerateForMonth("03/2024")
		testutil.AssertNoError(t, err)
		if len(generated) != 0 || len(issues) != 0 {
			t.Fatalf("expected nothing for 03/2024, got %d transactions, %d issues", len(generated), len(issues))
		}

		// The next month the definition applies normally.
		generated, _, err = service.GenerateForMonth("04/2024")
		testutil.AssertNoError(t, err)
		if len(generated) != 1 {
			t.Fatalf("expected 1 transaction for 04/2024, got %d", len(generated))
		}
		if want := mustDate(t, "2024-04-10"); !generated[0].Date.Equal(want) {
			t.Errorf("expected date %s, got %s", want, generated[0].Date)
		}
	})

	t.Run("ended and inactive definitions are skipped", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		service := NewRecurringService(db)

		end := mustDate(t, "2024-04-30")
		seedRecurring(t, service, owner, "Encerrada", mustDate(t, "2024-01-01"), &end, 5)

		inactive := false
		_, err := service.Create(RecurringRequest{
			Description:   "Pausada",
			Type:          models.TransactionTypeExpense,
			PaymentMethod: models.PaymentMethodPix,
			Owner:         owner,
			Category:      "Casa",
			Value:         money.MustFromString("99.00"),
			StartDate:     mustDate(t, "2024-01-01"),
			Active:        &inactive,
		})
		testutil.AssertNoError(t, err)

		generated, issues, err := service.GenerateForMonth("05/2024")
		testutil.AssertNoError(t, err)
		if len(generated) != 0 || len(issues) != 0 {
			t.Fatalf("expected nothing for 05/2024, got %d transactions, %d issues", len(generated), len(issues))
		}
	})

	t.Run("dangling card reference becomes an issue, the rest generate", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		service := NewRecurringService(db)
		person := testutil.CreateTestPerson(t, db)
		owner := models.IndividualRef(person.ID)
		card := testutil.CreateTestCreditCard(t, db, person.ID)

		broken := seedRecurring(t, service, owner, "Assinatura sem cartão", mustDate(t, "2024-01-01"), nil, 1)
		testutil.AssertNoError(t, db.Model(broken).Update("credit_card_id", card.ID).Error)
		seedRecurring(t, service, owner, "Aluguel", mustDate(t, "2024-01-01"), nil, 5)
		// The referenced card disappears before generation.
		testutil.AssertNoError(t, db.Unscoped().Delete(card).Error)

		generated, issues, err := service.GenerateForMonth("06/2024")
		testutil.AssertNoError(t, err)
		if len(generated) != 1 {
			t.Fatalf("expected 1 generated transaction, got %d", len(generated))
		}
		if len(issues) != 1 {
			t.Fatalf("expected 1 issue, got %d", len(issues))
		}
		if issues[0].RecurringID != broken.ID {
			t.Errorf("expected issue for %s, got %s", broken.ID, issues[0].RecurringID)
		}
	})

	t.Run("malformed competency is rejected", func(t *testing.T) {
		_, _, err := service.GenerateForMonth("2024-02")
		testutil.AssertAppError(t, err, apperrors.ErrInvalidInput)
	})
}
