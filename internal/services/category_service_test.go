package services

import (
	"reflect"
	"testing"

	"finledger/internal/models"
	"finledger/internal/testutil"
)

func TestCategoryService(t *testing.T) {
	db := testutil.SetupTestDB(t)
	service := NewCategoryService(db)

	t.Run("replace all seeds the vocabulary", func(t *testing.T) {
		names, err := service.ReplaceAll([]string{"Mercado", "Lazer", "Transporte"})
		testutil.AssertNoError(t, err)
		if want := []string{"Lazer", "Mercado", "Transporte"}; !reflect.DeepEqual(names, want) {
			t.Errorf("expected %v, got %v", want, names)
		}
	})

	t.Run("reconciliation removes absent names and keeps case-only changes", func(t *testing.T) {
		names, err := service.ReplaceAll([]string{"mercado", "Saúde"})
		testutil.AssertNoError(t, err)
		// "Mercado" only changed case, so its row (and original spelling) survive.
		if want := []string{"Mercado", "Saúde"}; !reflect.DeepEqual(names, want) {
			t.Errorf("expected %v, got %v", want, names)
		}
	})

	t.Run("blank and duplicate input names are ignored", func(t *testing.T) {
		names, err := service.ReplaceAll([]string{"Casa", " ", "casa", "Casa"})
		testutil.AssertNoError(t, err)
		if want := []string{"Casa"}; !reflect.DeepEqual(names, want) {
			t.Errorf("expected %v, got %v", want, names)
		}
	})

	t.Run("transactions keep their free-text category", func(t *testing.T) {
		person := testutil.CreateTestPerson(t, db)
		transaction := testutil.CreateTestTransaction(t, db, models.IndividualRef(person.ID), mustDate(t, "2024-03-01"), "10.00")

		_, err := service.ReplaceAll([]string{"Outra"})
		testutil.AssertNoError(t, err)

		var stored models.Transaction
		testutil.AssertNoError(t, db.First(&stored, "id = ?", transaction.ID).Error)
		if stored.Category != "Mercado" {
			t.Errorf("expected the transaction to keep its category, got %s", stored.Category)
		}
	})
}
