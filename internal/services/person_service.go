package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "finledger/internal/errors"
	"finledger/internal/models"
	"finledger/internal/validator"
)

// personService handles the person registry.
type personService struct {
	db *gorm.DB
}

// NewPersonService creates a new PersonServicer.
func NewPersonService(db *gorm.DB) PersonServicer {
	return &personService{db: db}
}

// ListActive returns active persons ordered by name.
func (s *personService) ListActive() ([]models.Person, error) {
	var persons []models.Person
	if err := s.db.Where("active = ?", true).Order("name").Find(&persons).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return persons, nil
}

// GetByID returns a person by ID.
func (s *personService) GetByID(personID string) (*models.Person, error) {
	var person models.Person
	if err := s.db.Preload("SplitWith").First(&person, "id = ?", personID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPersonNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &person, nil
}

// Create registers a new person, optionally with split partners.
func (s *personService) Create(req PersonRequest) (*models.Person, error) {
	if err := validator.Struct(req); err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.Model(&models.Person{}).Where("name = ?", req.Name).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicatePersonName
	}

	person := &models.Person{
		Name:   req.Name,
		Active: true,
	}
	if req.AllowSplit != nil {
		person.AllowSplit = *req.AllowSplit
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(person).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return s.replaceSplitPartners(tx, person, req.SplitWithPersonIDs)
	})
	if err != nil {
		return nil, err
	}
	return person, nil
}

// Update changes a person's name, split flag and split partners.
func (s *personService) Update(personID string, req PersonRequest) (*models.Person, error) {
	if err := validator.Struct(req); err != nil {
		return nil, err
	}

	person, err := s.GetByID(personID)
	if err != nil {
		return nil, err
	}

	if person.Name != req.Name {
		var count int64
		if err := s.db.Model(&models.Person{}).Where("name = ?", req.Name).Count(&count).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count > 0 {
			return nil, apperrors.ErrDuplicatePersonName
		}
	}

	person.Name = req.Name
	if req.AllowSplit != nil {
		person.AllowSplit = *req.AllowSplit
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(person).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if req.SplitWithPersonIDs != nil {
			return s.replaceSplitPartners(tx, person, req.SplitWithPersonIDs)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return person, nil
}

func (s *personService) replaceSplitPartners(tx *gorm.DB, person *models.Person, partnerIDs []string) error {
	if len(partnerIDs) == 0 {
		return nil
	}

	partners := make([]*models.Person, 0, len(partnerIDs))
	for _, partnerID := range partnerIDs {
		if partnerID == person.ID {
			return apperrors.ErrSelfSplit
		}
		var partner models.Person
		if err := tx.First(&partner, "id = ?", partnerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.WithMessage(apperrors.ErrPersonNotFound, "Split partner not found: "+partnerID)
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		partners = append(partners, &partner)
	}

	if err := tx.Model(person).Association("SplitWith").Replace(partners); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// Delete removes a person. The caller must choose exactly one fate for the
// person's owned records: migrate everything to a target person, or delete
// everything. The whole rewrite runs in one unit of work.
func (s *personService) Delete(personID string, req DeletePersonRequest) error {
	person, err := s.GetByID(personID)
	if err != nil {
		return err
	}

	migrating := req.MigrateToPersonID != nil
	if migrating == req.DeleteOwned {
		return apperrors.ErrDeletionChoiceNeeded
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if migrating {
			target, err := s.GetByID(*req.MigrateToPersonID)
			if err != nil {
				return apperrors.WithMessage(apperrors.ErrPersonNotFound, "Migration target not found: "+*req.MigrateToPersonID)
			}
			if target.ID == person.ID {
				return apperrors.WithMessage(apperrors.ErrInvalidInput, "Cannot migrate a person's records to themselves")
			}
			if err := migrateOwnedRecords(tx, person.ID, target.ID); err != nil {
				return err
			}
		} else {
			if err := deleteOwnedRecords(tx, person.ID); err != nil {
				return err
			}
		}

		// Drop split links in both directions before the person row goes.
		if err := tx.Exec("DELETE FROM person_splits WHERE person_id = ? OR split_with_id = ?", person.ID, person.ID).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if err := tx.Delete(person).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

func migrateOwnedRecords(tx *gorm.DB, fromID, toID string) error {
	steps := []struct {
		model  interface{}
		column string
	}{
		{&models.Transaction{}, "person_id"},
		{&models.Budget{}, "person_id"},
		{&models.RecurringTransaction{}, "person_id"},
		{&models.SavingsDeposit{}, "person_id"},
		{&models.CreditCard{}, "owner_id"},
		{&models.SavingsGoal{}, "owner_id"},
		{&models.Investment{}, "owner_id"},
	}
	for _, step := range steps {
		if err := tx.Model(step.model).Where(step.column+" = ?", fromID).Update(step.column, toID).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return nil
}

func deleteOwnedRecords(tx *gorm.DB, personID string) error {
	// Deposits nested under the person's goals go before the goals themselves.
	goalIDs := tx.Model(&models.SavingsGoal{}).Select("id").Where("owner_id = ?", personID)
	if err := tx.Where("goal_id IN (?)", goalIDs).Delete(&models.SavingsDeposit{}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	steps := []struct {
		model  interface{}
		column string
	}{
		{&models.Transaction{}, "person_id"},
		{&models.Budget{}, "person_id"},
		{&models.RecurringTransaction{}, "person_id"},
		{&models.SavingsDeposit{}, "person_id"},
		{&models.CreditCard{}, "owner_id"},
		{&models.SavingsGoal{}, "owner_id"},
		{&models.Investment{}, "owner_id"},
	}
	for _, step := range steps {
		if err := tx.Where(step.column+" = ?", personID).Delete(step.model).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return nil
}
