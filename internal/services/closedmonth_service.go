package services

import (
	"errors"
	"sort"

	"gorm.io/gorm"

	"finledger/internal/competency"
	apperrors "finledger/internal/errors"
	"finledger/internal/models"
)

// closedMonthService records which competencies have been reviewed and
// closed. Closure is a bookkeeping marker only; closed months still accept
// transactions.
type closedMonthService struct {
	db *gorm.DB
}

// NewClosedMonthService creates a new ClosedMonthServicer.
func NewClosedMonthService(db *gorm.DB) ClosedMonthServicer {
	return &closedMonthService{db: db}
}

// List returns all closed competencies in chronological order.
func (s *closedMonthService) List() ([]string, error) {
	var months []models.ClosedMonth
	if err := s.db.Find(&months).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	comps := make([]string, 0, len(months))
	for _, month := range months {
		comps = append(comps, month.Competency)
	}
	sortCompetencies(comps)
	return comps, nil
}

// Close marks a competency as closed and returns the updated list.
func (s *closedMonthService) Close(comp string) ([]string, error) {
	if _, err := competency.Parse(comp); err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid competency: "+comp)
	}

	var count int64
	if err := s.db.Model(&models.ClosedMonth{}).Where("competency = ?", comp).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrMonthAlreadyClosed
	}

	if err := s.db.Create(&models.ClosedMonth{Competency: comp}).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return s.List()
}

// Reopen removes a competency's closed marker and returns the updated list.
func (s *closedMonthService) Reopen(comp string) ([]string, error) {
	var month models.ClosedMonth
	if err := s.db.First(&month, "competency = ?", comp).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.WithMessage(apperrors.ErrNotFound, "month is not closed: "+comp)
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.db.Delete(&month).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return s.List()
}

// sortCompetencies orders MM/YYYY strings chronologically. Unparseable
// entries sort last.
func sortCompetencies(comps []string) {
	sort.Slice(comps, func(i, j int) bool {
		a, errA := competency.Parse(comps[i])
		b, errB := competency.Parse(comps[j])
		if errA != nil || errB != nil {
			return errB != nil && errA == nil
		}
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		return a.Month < b.Month
	})
}
