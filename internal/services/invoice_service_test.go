package services

import (
	"testing"

	apperrors "finledger/internal/errors"
	"finledger/internal/testutil"
)

func TestInvoiceService(t *testing.T) {
	db := testutil.SetupTestDB(t)
	service := NewInvoiceService(db)
	person := testutil.CreateTestPerson(t, db)
	cardA := testutil.CreateTestCreditCard(t, db, person.ID)
	cardB := testutil.CreateTestCreditCard(t, db, person.ID)

	t.Run("cards without a stored row show up unpaid", func(t *testing.T) {
		statuses, err := service.ListByMonth("03/2024")
		testutil.AssertNoError(t, err)
		if len(statuses) != 2 {
			t.Fatalf("expected 2 statuses, got %d", len(statuses))
		}
		for _, status := range statuses {
			if status.Paid {
				t.Errorf("expected card %s to be unpaid", status.CardName)
			}
		}
	})

	t.Run("marking one card paid stamps the time", func(t *testing.T) {
		paid := true
		status, err := service.SetStatus(cardA.ID, InvoiceStatusRequest{ReferenceMonth: "03/2024", Paid: &paid})
		testutil.AssertNoError(t, err)
		if !status.Paid || status.PaidAt == nil {
			t.Errorf("expected a paid status with a timestamp, got %+v", status)
		}

		// The other card is untouched.
		statuses, err := service.ListByMonth("03/2024")
		testutil.AssertNoError(t, err)
		for _, s := range statuses {
			if s.CardID == cardB.ID && s.Paid {
				t.Error("expected the other card to stay unpaid")
			}
		}
	})

	t.Run("unmarking clears the timestamp", func(t *testing.T) {
		unpaid := false
		status, err := service.SetStatus(cardA.ID, InvoiceStatusRequest{ReferenceMonth: "03/2024", Paid: &unpaid})
		testutil.AssertNoError(t, err)
		if status.Paid || status.PaidAt != nil {
			t.Errorf("expected an unpaid status without timestamp, got %+v", status)
		}
	})

	t.Run("set all covers every card", func(t *testing.T) {
		paid := true
		statuses, err := service.SetAllStatus(InvoiceStatusRequest{ReferenceMonth: "04/2024", Paid: &paid})
		testutil.AssertNoError(t, err)
		if len(statuses) != 2 {
			t.Fatalf("expected 2 statuses, got %d", len(statuses))
		}
		for _, status := range statuses {
			if !status.Paid {
				t.Errorf("expected card %s to be paid", status.CardName)
			}
		}
	})

	t.Run("months are independent", func(t *testing.T) {
		statuses, err := service.ListByMonth("05/2024")
		testutil.AssertNoError(t, err)
		for _, status := range statuses {
			if status.Paid {
				t.Errorf("expected card %s to be unpaid in 05/2024", status.CardName)
			}
		}
	})

	t.Run("request validation", func(t *testing.T) {
		paid := true
		_, err := service.SetStatus(cardA.ID, InvoiceStatusRequest{ReferenceMonth: "", Paid: &paid})
		testutil.AssertAppError(t, err, apperrors.ErrReferenceMonthRequired)

		_, err = service.SetStatus(cardA.ID, InvoiceStatusRequest{ReferenceMonth: "03/2024"})
		testutil.AssertAppError(t, err, apperrors.ErrPaidFlagRequired)

		_, err = service.SetStatus("missing-card", InvoiceStatusRequest{ReferenceMonth: "03/2024", Paid: &paid})
		testutil.AssertAppError(t, err, apperrors.ErrCreditCardNotFound)
	})
}
