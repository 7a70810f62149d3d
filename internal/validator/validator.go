// Package validator provides request-struct validation for the services.
// It wraps go-playground/validator with the domain's custom rules.
package validator

import (
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"

	apperrors "finledger/internal/errors"
)

var (
	validate *validator.Validate
	once     sync.Once
)

var competencyRegex = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{4}$`)

// Engine returns the shared validator with all custom rules registered.
func Engine() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("competency", validateCompetency)
		_ = validate.RegisterValidation("transaction_type", validateTransactionType)
		_ = validate.RegisterValidation("payment_method", validatePaymentMethod)
		_ = validate.RegisterValidation("budget_type", validateBudgetType)
		_ = validate.RegisterValidation("investment_type", validateInvestmentType)
		_ = validate.RegisterValidation("day_of_month", validateDayOfMonth)
	})
	return validate
}

// Struct validates a request struct and converts failures into the
// service-level invalid-input error.
func Struct(s interface{}) error {
	if err := Engine().Struct(s); err != nil {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}
	return nil
}

func validateCompetency(fl validator.FieldLevel) bool {
	return competencyRegex.MatchString(fl.Field().String())
}

func validateTransactionType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "income", "expense":
		return true
	}
	return false
}

func validatePaymentMethod(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "credit", "debit", "cash", "pix":
		return true
	}
	return false
}

func validateBudgetType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "fixed", "percentage":
		return true
	}
	return false
}

func validateInvestmentType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "treasury", "cdb", "savings", "lci", "lca", "fund", "stock", "reit", "other":
		return true
	}
	return false
}

func validateDayOfMonth(fl validator.FieldLevel) bool {
	day := fl.Field().Int()
	return day >= 1 && day <= 31
}
