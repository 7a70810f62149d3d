// Package errors provides custom error types for the finledger services.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Is lets errors.Is match a wrapped AppError against its sentinel by code.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Person errors.
var (
	ErrPersonNotFound       = &AppError{Code: "PERSON_NOT_FOUND", Message: "Person not found", StatusCode: http.StatusNotFound}
	ErrDuplicatePersonName  = &AppError{Code: "DUPLICATE_PERSON_NAME", Message: "A person with this name already exists", StatusCode: http.StatusBadRequest}
	ErrSelfSplit            = &AppError{Code: "SELF_SPLIT", Message: "A person cannot split expenses with themselves", StatusCode: http.StatusBadRequest}
	ErrDeletionChoiceNeeded = &AppError{Code: "DELETION_CHOICE_NEEDED", Message: "Choose either a migration target or delete-all, and not both", StatusCode: http.StatusBadRequest}
)

// Transaction and installment errors.
var (
	ErrTransactionNotFound      = &AppError{Code: "TRANSACTION_NOT_FOUND", Message: "Transaction not found", StatusCode: http.StatusNotFound}
	ErrInstallmentGroupNotFound = &AppError{Code: "INSTALLMENT_GROUP_NOT_FOUND", Message: "No installments found for this purchase", StatusCode: http.StatusNotFound}
	ErrInstallmentGroupMember   = &AppError{Code: "INSTALLMENT_GROUP_MEMBER", Message: "A grouped installment cannot be deleted on its own; delete the whole group", StatusCode: http.StatusBadRequest}
)

// Budget errors.
var (
	ErrBudgetNotFound = &AppError{Code: "BUDGET_NOT_FOUND", Message: "Budget not found", StatusCode: http.StatusNotFound}
)

// Recurring-definition errors.
var (
	ErrRecurringNotFound = &AppError{Code: "RECURRING_NOT_FOUND", Message: "Recurring definition not found", StatusCode: http.StatusNotFound}
)

// Savings errors.
var (
	ErrGoalNotFound    = &AppError{Code: "GOAL_NOT_FOUND", Message: "Savings goal not found", StatusCode: http.StatusNotFound}
	ErrDepositNotFound = &AppError{Code: "DEPOSIT_NOT_FOUND", Message: "Savings deposit not found", StatusCode: http.StatusNotFound}
)

// Credit-card errors.
var (
	ErrCreditCardNotFound     = &AppError{Code: "CREDIT_CARD_NOT_FOUND", Message: "Credit card not found", StatusCode: http.StatusNotFound}
	ErrReferenceMonthRequired = &AppError{Code: "REFERENCE_MONTH_REQUIRED", Message: "The invoice reference month is required", StatusCode: http.StatusBadRequest}
	ErrPaidFlagRequired       = &AppError{Code: "PAID_FLAG_REQUIRED", Message: "The invoice paid flag is required", StatusCode: http.StatusBadRequest}
)

// Investment errors.
var (
	ErrInvestmentNotFound = &AppError{Code: "INVESTMENT_NOT_FOUND", Message: "Investment not found", StatusCode: http.StatusNotFound}
)

// Month-closure errors.
var (
	ErrMonthAlreadyClosed = &AppError{Code: "MONTH_ALREADY_CLOSED", Message: "This month is already closed", StatusCode: http.StatusBadRequest}
)
