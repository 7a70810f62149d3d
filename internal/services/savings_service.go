package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "finledger/internal/errors"
	"finledger/internal/models"
	"finledger/internal/money"
	"finledger/internal/validator"
)

// savingsService handles savings goals and their deposits. The goal's
// CurrentAmount is a running balance; every deposit mutation flows through
// applyGoalDelta so the balance and the deposit rows never drift apart.
type savingsService struct {
	db *gorm.DB
}

// NewSavingsService creates a new SavingsServicer.
func NewSavingsService(db *gorm.DB) SavingsServicer {
	return &savingsService{db: db}
}

// ListGoals returns all savings goals with their deposits, ordered by name.
func (s *savingsService) ListGoals() ([]models.SavingsGoal, error) {
	var goals []models.SavingsGoal
	if err := s.db.Preload("Deposits").Order("name").Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return goals, nil
}

// CreateGoal stores a new savings goal with a zero balance.
func (s *savingsService) CreateGoal(req SavingsGoalRequest) (*models.SavingsGoal, error) {
	if err := validator.Struct(req); err != nil {
		return nil, err
	}
	if err := s.ensureOwner(req.OwnerID); err != nil {
		return nil, err
	}

	goal := &models.SavingsGoal{
		Name:          req.Name,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: money.Zero(),
		Deadline:      req.Deadline,
		OwnerID:       req.OwnerID,
		Description:   req.Description,
	}
	if err := s.db.Create(goal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return goal, nil
}

// UpdateGoal rewrites a goal's descriptive fields. The balance is owned by
// the deposit operations and is never set directly.
func (s *savingsService) UpdateGoal(goalID string, req SavingsGoalRequest) (*models.SavingsGoal, error) {
	if err := validator.Struct(req); err != nil {
		return nil, err
	}

	goal, err := s.getGoal(s.db, goalID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureOwner(req.OwnerID); err != nil {
		return nil, err
	}

	goal.Name = req.Name
	goal.TargetAmount = req.TargetAmount
	goal.Deadline = req.Deadline
	goal.OwnerID = req.OwnerID
	goal.Description = req.Description

	if err := s.db.Save(goal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return goal, nil
}

// DeleteGoal removes a goal and all of its deposits.
func (s *savingsService) DeleteGoal(goalID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		goal, err := s.getGoal(tx, goalID)
		if err != nil {
			return err
		}
		if err := tx.Where("goal_id = ?", goal.ID).Delete(&models.SavingsDeposit{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(goal).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// AddDeposit records a deposit (or withdrawal, when the amount is negative),
// moves the goal balance by the same amount and returns the updated goal.
func (s *savingsService) AddDeposit(goalID string, req DepositRequest) (*models.SavingsGoal, error) {
	if err := validator.Struct(req); err != nil {
		return nil, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.applyGoalDelta(tx, goalID, req.Amount); err != nil {
			return err
		}
		deposit := &models.SavingsDeposit{
			GoalID:   goalID,
			Amount:   req.Amount,
			Date:     req.Date,
			PersonID: req.PersonID,
			Note:     req.Note,
		}
		if err := tx.Create(deposit).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.reloadGoal(goalID)
}

// UpdateDeposit rewrites a deposit and moves the goal balance by the
// difference between the new and old amounts.
func (s *savingsService) UpdateDeposit(depositID string, req DepositRequest) (*models.SavingsGoal, error) {
	if err := validator.Struct(req); err != nil {
		return nil, err
	}

	var goalID string
	err := s.db.Transaction(func(tx *gorm.DB) error {
		deposit, err := s.getDeposit(tx, depositID)
		if err != nil {
			return err
		}
		goalID = deposit.GoalID

		delta := req.Amount.Sub(deposit.Amount)
		if err := s.applyGoalDelta(tx, deposit.GoalID, delta); err != nil {
			return err
		}

		deposit.Amount = req.Amount
		deposit.Date = req.Date
		deposit.PersonID = req.PersonID
		deposit.Note = req.Note
		if err := tx.Save(deposit).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.reloadGoal(goalID)
}

// DeleteDeposit removes a deposit and backs its amount out of the goal
// balance.
func (s *savingsService) DeleteDeposit(depositID string) (*models.SavingsGoal, error) {
	var goalID string
	err := s.db.Transaction(func(tx *gorm.DB) error {
		deposit, err := s.getDeposit(tx, depositID)
		if err != nil {
			return err
		}
		goalID = deposit.GoalID
		if err := s.applyGoalDelta(tx, deposit.GoalID, deposit.Amount.Neg()); err != nil {
			return err
		}
		if err := tx.Delete(deposit).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.reloadGoal(goalID)
}

// ListDeposits returns a goal's deposits ordered by date descending.
func (s *savingsService) ListDeposits(goalID string) ([]models.SavingsDeposit, error) {
	if _, err := s.getGoal(s.db, goalID); err != nil {
		return nil, err
	}
	var deposits []models.SavingsDeposit
	err := s.db.
		Where("goal_id = ?", goalID).
		Order("date DESC, id DESC").
		Find(&deposits).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return deposits, nil
}

// applyGoalDelta is the single place the goal balance changes. It reads the
// current balance and writes it back inside the caller's unit of work, so
// two concurrent deposits of 100 always leave the balance 200 ahead.
func (s *savingsService) applyGoalDelta(tx *gorm.DB, goalID string, delta money.Money) error {
	goal, err := s.getGoal(tx, goalID)
	if err != nil {
		return err
	}
	goal.CurrentAmount = goal.CurrentAmount.Add(delta)
	if err := tx.Model(goal).Update("current_amount", goal.CurrentAmount).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func (s *savingsService) reloadGoal(goalID string) (*models.SavingsGoal, error) {
	var goal models.SavingsGoal
	if err := s.db.Preload("Deposits").First(&goal, "id = ?", goalID).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &goal, nil
}

func (s *savingsService) getGoal(tx *gorm.DB, goalID string) (*models.SavingsGoal, error) {
	var goal models.SavingsGoal
	if err := tx.First(&goal, "id = ?", goalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGoalNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &goal, nil
}

func (s *savingsService) getDeposit(tx *gorm.DB, depositID string) (*models.SavingsDeposit, error) {
	var deposit models.SavingsDeposit
	if err := tx.First(&deposit, "id = ?", depositID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDepositNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &deposit, nil
}

func (s *savingsService) ensureOwner(personID string) error {
	var count int64
	if err := s.db.Model(&models.Person{}).Where("id = ?", personID).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return apperrors.WithMessage(apperrors.ErrPersonNotFound, "Person not found: "+personID)
	}
	return nil
}
