package testutil

import (
	"errors"
	"testing"

	apperrors "finledger/internal/errors"
)

// AssertNoError fails the test immediately if err is non-nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertAppError fails the test unless err matches the expected domain
// error, directly or through wrapping.
func AssertAppError(t *testing.T, err error, want *apperrors.AppError) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error %q, got nil", want.Code)
	}
	if !errors.Is(err, want) {
		t.Fatalf("expected error %q, got: %v", want.Code, err)
	}
}
