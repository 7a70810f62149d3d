package models

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeExpense TransactionType = "expense"
	TransactionTypeIncome  TransactionType = "income"
)

// Label returns the display label used in exports and the UI.
func (t TransactionType) Label() string {
	switch t {
	case TransactionTypeExpense:
		return "Despesa"
	case TransactionTypeIncome:
		return "Receita"
	}
	return string(t)
}

// ParseTransactionType resolves a display label ("Despesa", "Receita") or a
// canonical symbolic name ("EXPENSE", "INCOME"), ignoring case and accents.
func ParseTransactionType(s string) (TransactionType, error) {
	for _, t := range []TransactionType{TransactionTypeExpense, TransactionTypeIncome} {
		if labelMatches(s, t.Label()) || labelMatches(s, string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("invalid transaction type %q: use 'Despesa' or 'Receita'", s)
}

// PaymentMethod represents how a transaction was paid
type PaymentMethod string

const (
	PaymentMethodCredit PaymentMethod = "credit"
	PaymentMethodDebit  PaymentMethod = "debit"
	PaymentMethodCash   PaymentMethod = "cash"
	PaymentMethodPix    PaymentMethod = "pix"
)

// Label returns the display label used in exports and the UI.
func (p PaymentMethod) Label() string {
	switch p {
	case PaymentMethodCredit:
		return "Crédito"
	case PaymentMethodDebit:
		return "Débito"
	case PaymentMethodCash:
		return "Dinheiro"
	case PaymentMethodPix:
		return "PIX"
	}
	return string(p)
}

// ParsePaymentMethod resolves a display label or canonical symbolic name,
// ignoring case and accents.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	for _, p := range []PaymentMethod{PaymentMethodCredit, PaymentMethodDebit, PaymentMethodCash, PaymentMethodPix} {
		if labelMatches(s, p.Label()) || labelMatches(s, string(p)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("invalid payment method %q: use 'Crédito', 'Débito', 'PIX' or 'Dinheiro'", s)
}

// BudgetType distinguishes fixed-amount budgets from income-percentage ones
type BudgetType string

const (
	BudgetTypeFixed      BudgetType = "fixed"
	BudgetTypePercentage BudgetType = "percentage"
)

// InvestmentType classifies an investment position
type InvestmentType string

const (
	InvestmentTypeTreasury   InvestmentType = "treasury"
	InvestmentTypeCDB        InvestmentType = "cdb"
	InvestmentTypeSavings    InvestmentType = "savings"
	InvestmentTypeLCI        InvestmentType = "lci"
	InvestmentTypeLCA        InvestmentType = "lca"
	InvestmentTypeFund       InvestmentType = "fund"
	InvestmentTypeStock      InvestmentType = "stock"
	InvestmentTypeRealEstate InvestmentType = "reit"
	InvestmentTypeOther      InvestmentType = "other"
)

// NormalizeLabel lowers the case of a label and strips combining accent
// marks, so "Crédito", "credito" and "CREDITO" all compare equal.
func NormalizeLabel(s string) string {
	stripped, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		s,
	)
	if err != nil {
		stripped = s
	}
	return strings.ToUpper(strings.TrimSpace(stripped))
}

func labelMatches(input, label string) bool {
	return NormalizeLabel(input) == NormalizeLabel(label)
}
