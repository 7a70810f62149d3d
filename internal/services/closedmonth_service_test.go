package services

import (
	"reflect"
	"testing"

	apperrors "finledger/internal/errors"
	"finledger/internal/testutil"
)

func TestClosedMonthService(t *testing.T) {
	db := testutil.SetupTestDB(t)
	service := NewClosedMonthService(db)

	t.Run("close returns the chronological list", func(t *testing.T) {
		_, err := service.Close("12/2023")
		testutil.AssertNoError(t, err)
		months, err := service.Close("02/2024")
		testutil.AssertNoError(t, err)
		months, err = service.Close("01/2024")
		testutil.AssertNoError(t, err)
		if want := []string{"12/2023", "01/2024", "02/2024"}; !reflect.DeepEqual(months, want) {
			t.Errorf("expected %v, got %v", want, months)
		}
	})

	t.Run("closing twice is rejected", func(t *testing.T) {
		_, err := service.Close("01/2024")
		testutil.AssertAppError(t, err, apperrors.ErrMonthAlreadyClosed)
	})

	t.Run("malformed competency is rejected", func(t *testing.T) {
		_, err := service.Close("2024-01")
		testutil.AssertAppError(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("reopen removes the marker", func(t *testing.T) {
		months, err := service.Reopen("01/2024")
		testutil.AssertNoError(t, err)
		if want := []string{"12/2023", "02/2024"}; !reflect.DeepEqual(months, want) {
			t.Errorf("expected %v, got %v", want, months)
		}

		_, err = service.Reopen("01/2024")
		testutil.AssertAppError(t, err, apperrors.ErrNotFound)
	})
}
