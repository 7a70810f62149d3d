package services

import (
	"time"

	"github.com/shopspring/decimal"

	"finledger/internal/models"
	"finledger/internal/money"
	"finledger/internal/pagination"
)

// PersonRequest carries the fields for creating or updating a person.
type PersonRequest struct {
	Name               string   `validate:"required"`
	AllowSplit         *bool
	SplitWithPersonIDs []string
}

// DeletePersonRequest chooses what happens to a deleted person's records:
// migrate them all to another person XOR delete them all. Exactly one choice
// must be made.
type DeletePersonRequest struct {
	MigrateToPersonID *string
	DeleteOwned       bool
}

// PersonServicer defines the contract for person-registry business logic.
type PersonServicer interface {
	ListActive() ([]models.Person, error)
	GetByID(personID string) (*models.Person, error)
	Create(req PersonRequest) (*models.Person, error)
	Update(personID string, req PersonRequest) (*models.Person, error)
	Delete(personID string, req DeletePersonRequest) error
}

// IncomeServicer resolves the effective income of an owner for a competency.
type IncomeServicer interface {
	TotalIncomeFor(comp string, owner models.PersonRef) (money.Money, error)
}

// BudgetRequest carries the fields for creating a budget.
type BudgetRequest struct {
	Competency string            `validate:"required,competency"`
	Category   string            `validate:"required"`
	Owner      models.PersonRef
	BudgetType models.BudgetType `validate:"omitempty,budget_type"`
	Amount     money.Money
	Percentage *decimal.Decimal
}

// BudgetServicer defines the contract for budget allocation.
type BudgetServicer interface {
	Create(req BudgetRequest) (*models.Budget, error)
	List() ([]models.Budget, error)
	Delete(budgetID string) error
}

// RecurringRequest carries the fields for a recurring definition.
type RecurringRequest struct {
	Description    string                 `validate:"required"`
	Type           models.TransactionType `validate:"required,transaction_type"`
	PaymentMethod  models.PaymentMethod   `validate:"required,payment_method"`
	Owner          models.PersonRef
	Category       string                 `validate:"required"`
	Value          money.Money
	StartDate      time.Time              `validate:"required"`
	EndDate        *time.Time
	DayOfMonth     int                    `validate:"omitempty,day_of_month"`
	CreditCardID   *string
	Active         *bool
	BaseCompetency string                 `validate:"omitempty,competency"`
}

// GenerationIssue reports one recurring definition that could not be
// projected. The remaining definitions still generate.
type GenerationIssue struct {
	RecurringID string `json:"recurring_id"`
	Description string `json:"description"`
	Reason      string `json:"reason"`
}

// RecurringServicer defines the contract for recurring definitions and
// month projection.
type RecurringServicer interface {
	List() ([]models.RecurringTransaction, error)
	Create(req RecurringRequest) (*models.RecurringTransaction, error)
	Update(recurringID string, req RecurringRequest) (*models.RecurringTransaction, error)
	Delete(recurringID string) error
	GenerateForMonth(comp string) ([]models.Transaction, []GenerationIssue, error)
}

// TransactionRequest carries the fields for creating or updating a
// transaction.
type TransactionRequest struct {
	Date          time.Time              `validate:"required"`
	Type          models.TransactionType `validate:"required,transaction_type"`
	PaymentMethod models.PaymentMethod   `validate:"required,payment_method"`
	Owner         models.PersonRef
	Category      string                 `validate:"required"`
	Description   string
	Value         money.Money
	Competency    string                 `validate:"required,competency"`
	CreditCardID  *string
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	FromDate   *time.Time
	ToDate     *time.Time
	Competency *string
	Type       *models.TransactionType
}

// TransactionServicer defines the contract for ledger entries and the
// installment lifecycle.
type TransactionServicer interface {
	Create(req TransactionRequest) (*models.Transaction, error)
	GetByID(transactionID string) (*models.Transaction, error)
	Update(transactionID string, req TransactionRequest) (*models.Transaction, error)
	Delete(transactionID string) error
	List(page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)

	CreateInstallments(req TransactionRequest, totalInstallments int) ([]models.Transaction, error)
	Installments(parentPurchaseID string) ([]models.Transaction, error)
	ReflowInstallments(parentPurchaseID string, newTotalValue *money.Money, newPurchaseDate *time.Time) ([]models.Transaction, error)
	DeleteInstallmentGroup(parentPurchaseID string) error
}

// SavingsGoalRequest carries the fields for creating or updating a goal.
type SavingsGoalRequest struct {
	Name         string      `validate:"required"`
	TargetAmount money.Money
	Deadline     *time.Time
	OwnerID      string      `validate:"required"`
	Description  string
}

// DepositRequest carries the fields for a savings deposit.
type DepositRequest struct {
	Amount   money.Money
	Date     time.Time   `validate:"required"`
	PersonID *string
	Note     string
}

// SavingsServicer defines the contract for savings goals and deposits.
type SavingsServicer interface {
	ListGoals() ([]models.SavingsGoal, error)
	CreateGoal(req SavingsGoalRequest) (*models.SavingsGoal, error)
	UpdateGoal(goalID string, req SavingsGoalRequest) (*models.SavingsGoal, error)
	DeleteGoal(goalID string) error
	AddDeposit(goalID string, req DepositRequest) (*models.SavingsGoal, error)
	UpdateDeposit(depositID string, req DepositRequest) (*models.SavingsGoal, error)
	DeleteDeposit(depositID string) (*models.SavingsGoal, error)
	ListDeposits(goalID string) ([]models.SavingsDeposit, error)
}

// CreditCardRequest carries the fields for creating a card.
type CreditCardRequest struct {
	Name       string      `validate:"required"`
	OwnerID    string      `validate:"required"`
	ClosingDay int         `validate:"omitempty,day_of_month"`
	DueDay     int         `validate:"omitempty,day_of_month"`
	Limit      money.Money
}

// CreditCardServicer defines the contract for card records.
type CreditCardServicer interface {
	List() ([]models.CreditCard, error)
	Create(req CreditCardRequest) (*models.CreditCard, error)
	Delete(cardID string) error
	FindByName(name string) (*models.CreditCard, error)
}

// InvoiceStatusRequest sets the paid status of an invoice.
type InvoiceStatusRequest struct {
	ReferenceMonth string
	Paid           *bool
}

// InvoiceStatus is one card's invoice state for a reference month. Cards
// without a stored invoice row appear unpaid.
type InvoiceStatus struct {
	CardID         string     `json:"card_id"`
	CardName       string     `json:"card_name"`
	ReferenceMonth string     `json:"reference_month"`
	Paid           bool       `json:"paid"`
	PaidAt         *time.Time `json:"paid_at,omitempty"`
}

// InvoiceServicer defines the contract for invoice paid-status tracking.
type InvoiceServicer interface {
	ListByMonth(referenceMonth string) ([]InvoiceStatus, error)
	SetStatus(cardID string, req InvoiceStatusRequest) (*InvoiceStatus, error)
	SetAllStatus(req InvoiceStatusRequest) ([]InvoiceStatus, error)
}

// InvestmentRequest carries the fields for creating or updating an
// investment.
type InvestmentRequest struct {
	Name           string                `validate:"required"`
	Type           models.InvestmentType `validate:"required,investment_type"`
	OwnerID        string                `validate:"required"`
	InvestedAmount money.Money
	InvestmentDate time.Time             `validate:"required"`
	AnnualRate     *decimal.Decimal
	CurrentValue   *money.Money
	Description    string
	Institution    string
}

// InvestmentServicer defines the contract for investment records.
type InvestmentServicer interface {
	List() ([]models.Investment, error)
	Create(req InvestmentRequest) (*models.Investment, error)
	Update(investmentID string, req InvestmentRequest) (*models.Investment, error)
	Delete(investmentID string) error
}

// CategoryServicer defines the contract for category names.
type CategoryServicer interface {
	List() ([]string, error)
	ReplaceAll(names []string) ([]string, error)
}

// ClosedMonthServicer defines the contract for month closure.
type ClosedMonthServicer interface {
	List() ([]string, error)
	Close(comp string) ([]string, error)
	Reopen(comp string) ([]string, error)
}

// ImportResult summarizes one CSV import batch. Rows that could not even be
// parsed count toward TotalRows and Failed.
type ImportResult struct {
	TotalRows int      `json:"total_rows"`
	Imported  int      `json:"imported"`
	Failed    int      `json:"failed"`
	Errors    []string `json:"errors"`
}

// ImportServicer defines the contract for CSV import/export orchestration.
type ImportServicer interface {
	ImportCSV(content string) (*ImportResult, error)
	ExportCSV(filter TransactionFilter) (string, error)
}
