package services

import (
	"errors"

	"gorm.io/gorm"

	"finledger/internal/competency"
	apperrors "finledger/internal/errors"
	"finledger/internal/logger"
	"finledger/internal/models"
	"finledger/internal/validator"
)

// recurringService handles recurring definitions and month projection.
type recurringService struct {
	db *gorm.DB
}

// NewRecurringService creates a new RecurringServicer.
func NewRecurringService(db *gorm.DB) RecurringServicer {
	return &recurringService{db: db}
}

// List returns all definitions ordered by start date.
func (s *recurringService) List() ([]models.RecurringTransaction, error) {
	var defs []models.RecurringTransaction
	if err := s.db.Order("start_date, id").Find(&defs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return defs, nil
}

// Create stores a new recurring definition. DayOfMonth defaults to 1 and
// active to true.
func (s *recurringService) Create(req RecurringRequest) (*models.RecurringTransaction, error) {
	if err := validator.Struct(req); err != nil {
		return nil, err
	}
	if err := s.ensureCardExists(req.CreditCardID); err != nil {
		return nil, err
	}

	def := &models.RecurringTransaction{
		Description:    req.Description,
		Type:           req.Type,
		PaymentMethod:  req.PaymentMethod,
		Owner:          req.Owner,
		Category:       req.Category,
		Value:          req.Value,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		DayOfMonth:     req.DayOfMonth,
		CreditCardID:   req.CreditCardID,
		Active:         true,
		BaseCompetency: req.BaseCompetency,
	}
	if def.DayOfMonth == 0 {
		def.DayOfMonth = 1
	}
	if req.Active != nil {
		def.Active = *req.Active
	}

	if err := s.db.Create(def).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return def, nil
}

// Update rewrites a definition's fields.
func (s *recurringService) Update(recurringID string, req RecurringRequest) (*models.RecurringTransaction, error) {
	if err := validator.Struct(req); err != nil {
		return nil, err
	}

	def, err := s.getByID(recurringID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureCardExists(req.CreditCardID); err != nil {
		return nil, err
	}

	def.Description = req.Description
	def.Type = req.Type
	def.PaymentMethod = req.PaymentMethod
	def.Owner = req.Owner
	def.Category = req.Category
	def.Value = req.Value
	def.StartDate = req.StartDate
	def.EndDate = req.EndDate
	def.DayOfMonth = req.DayOfMonth
	if def.DayOfMonth == 0 {
		def.DayOfMonth = 1
	}
	def.CreditCardID = req.CreditCardID
	def.Active = true
	if req.Active != nil {
		def.Active = *req.Active
	}
	def.BaseCompetency = req.BaseCompetency

	if err := s.db.Save(def).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return def, nil
}

// Delete removes a definition. Prefer deactivating instead when past
// generations must stay attributable.
func (s *recurringService) Delete(recurringID string) error {
	def, err := s.getByID(recurringID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(def).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func (s *recurringService) getByID(recurringID string) (*models.RecurringTransaction, error) {
	var def models.RecurringTransaction
	if err := s.db.First(&def, "id = ?", recurringID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRecurringNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &def, nil
}

func (s *recurringService) ensureCardExists(cardID *string) error {
	if cardID == nil {
		return nil
	}
	var count int64
	if err := s.db.Model(&models.CreditCard{}).Where("id = ?", *cardID).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return apperrors.WithMessage(apperrors.ErrCreditCardNotFound, "Credit card not found: "+*cardID)
	}
	return nil
}

// GenerateForMonth projects every active definition onto the target
// competency, persisting one transaction per definition whose validity window
// overlaps the month. Definitions that fail individually (for example a
// dangling card reference) are reported as issues; the rest still generate.
//
// There is no idempotency guard: calling this twice for the same competency
// duplicates entries. De-duplication policy belongs to the caller.
func (s *recurringService) GenerateForMonth(comp string) ([]models.Transaction, []GenerationIssue, error) {
	target, err := competency.Parse(comp)
	if err != nil {
		return nil, nil, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}

	var defs []models.RecurringTransaction
	if err := s.db.Where("active = ?", true).Order("start_date, id").Find(&defs).Error; err != nil {
		return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var generated []models.Transaction
	var issues []GenerationIssue

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, def := range defs {
			draft, ok := projectDefinition(&def, target)
			if !ok {
				continue
			}
			if def.CreditCardID != nil {
				var count int64
				if err := tx.Model(&models.CreditCard{}).Where("id = ?", *def.CreditCardID).Count(&count).Error; err != nil {
					return apperrors.Wrap(apperrors.ErrInternalServer, err)
				}
				if count == 0 {
					issues = append(issues, GenerationIssue{
						RecurringID: def.ID,
						Description: def.Description,
						Reason:      "credit card not found: " + *def.CreditCardID,
					})
					continue
				}
			}
			if err := tx.Create(draft).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			generated = append(generated, *draft)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	if len(issues) > 0 {
		logger.Get().Warnw("month generation finished with issues",
			"competency", comp, "generated", len(generated), "issues", len(issues))
	}
	return generated, issues, nil
}

// projectDefinition maps one definition onto the target month, or reports
// that the definition does not apply there.
func projectDefinition(def *models.RecurringTransaction, target competency.Competency) (*models.Transaction, bool) {
	monthStart := target.MonthStart()
	monthEnd := target.MonthEnd()

	// No validity overlap with the target month.
	if def.StartDate.After(monthEnd) {
		return nil, false
	}
	if def.EndDate != nil && def.EndDate.Before(monthStart) {
		return nil, false
	}

	// Clamp the anchor day into the month: a day-31 definition generates on
	// the 28th/29th/30th of shorter months rather than skipping or rolling.
	day := def.DayOfMonth
	if day > target.Days() {
		day = target.Days()
	}
	date := target.AtDay(day)

	// The clamped date may still fall outside the definition's own window,
	// e.g. a definition starting mid-month after its generation day.
	if date.Before(def.StartDate) {
		return nil, false
	}
	if def.EndDate != nil && date.After(*def.EndDate) {
		return nil, false
	}

	return &models.Transaction{
		Date:              date,
		Type:              def.Type,
		PaymentMethod:     def.PaymentMethod,
		Owner:             def.Owner,
		Category:          def.Category,
		Description:       def.Description,
		Value:             def.Value,
		Competency:        target.String(),
		CreditCardID:      def.CreditCardID,
		InstallmentNumber: 1,
		TotalInstallments: 1,
	}, true
}
