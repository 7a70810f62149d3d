package services

import (
	"fmt"

	"gorm.io/gorm"

	"finledger/internal/csvcodec"
	apperrors "finledger/internal/errors"
	"finledger/internal/logger"
	"finledger/internal/models"
)

// importService orchestrates CSV import and export. The codec handles the
// text format; this layer resolves display labels (person names, card names)
// against stored entities and writes the rows.
type importService struct {
	db           *gorm.DB
	transactions TransactionServicer
}

// NewImportService creates a new ImportServicer.
func NewImportService(db *gorm.DB, transactions TransactionServicer) ImportServicer {
	return &importService{db: db, transactions: transactions}
}

// ImportCSV parses and stores a whole file, row by row. A bad row never
// aborts the batch: it is counted as failed, reported with its original line
// number, and the importer moves on. Rows declaring more than one
// installment expand into a full installment group.
func (s *importService) ImportCSV(content string) (*ImportResult, error) {
	rows, rowErrs := csvcodec.Decode(content)

	result := &ImportResult{
		TotalRows: len(rows) + len(rowErrs),
	}
	for _, rowErr := range rowErrs {
		result.Failed++
		result.Errors = append(result.Errors, rowErr.Error())
	}

	people, err := s.loadPeople()
	if err != nil {
		return nil, err
	}
	cardsByName, err := s.loadCardsByName()
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		if err := s.importRow(row, people, cardsByName); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: %v", row.Line, err))
			continue
		}
		result.Imported++
	}

	logger.Get().Infow("csv import finished",
		"total", result.TotalRows,
		"imported", result.Imported,
		"failed", result.Failed,
	)
	return result, nil
}

func (s *importService) importRow(row csvcodec.Row, people map[string]string, cardsByName map[string]string) error {
	owner, err := resolvePersonLabel(row.PersonLabel, people)
	if err != nil {
		return err
	}

	var cardID *string
	if row.CreditCardName != "" {
		id, ok := cardsByName[models.NormalizeLabel(row.CreditCardName)]
		if !ok {
			return fmt.Errorf("credit card not found: %s", row.CreditCardName)
		}
		cardID = &id
	}

	req := TransactionRequest{
		Date:          row.Date,
		Type:          row.Type,
		PaymentMethod: row.PaymentMethod,
		Owner:         owner,
		Category:      row.Category,
		Description:   row.Description,
		Value:         row.Value,
		Competency:    row.Competency,
		CreditCardID:  cardID,
	}
	if row.Installments > 1 {
		_, err = s.transactions.CreateInstallments(req, row.Installments)
		return err
	}
	_, err = s.transactions.Create(req)
	return err
}

// resolvePersonLabel turns the CSV person column into an owner reference.
// The joint label maps to joint ownership; anything else must match a stored
// person's name, ignoring case and accents.
func resolvePersonLabel(label string, people map[string]string) (models.PersonRef, error) {
	if models.NormalizeLabel(label) == models.NormalizeLabel(models.JointLabel) {
		return models.JointRef(), nil
	}
	id, ok := people[models.NormalizeLabel(label)]
	if !ok {
		return models.PersonRef{}, fmt.Errorf("person not found: %s", label)
	}
	return models.IndividualRef(id), nil
}

// ExportCSV renders stored transactions into the flat format, resolving
// owner and card IDs back to display labels.
func (s *importService) ExportCSV(filter TransactionFilter) (string, error) {
	query := s.db.Model(&models.Transaction{})
	if filter.FromDate != nil {
		query = query.Where("date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("date <= ?", *filter.ToDate)
	}
	if filter.Competency != nil {
		query = query.Where("competency = ?", *filter.Competency)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}

	var transactions []models.Transaction
	if err := query.Order("date, id").Find(&transactions).Error; err != nil {
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	namesByID, err := s.loadPersonNames()
	if err != nil {
		return "", err
	}
	cardNames, err := s.loadCardNames()
	if err != nil {
		return "", err
	}

	rows := make([]csvcodec.Row, 0, len(transactions))
	for _, t := range transactions {
		label := models.JointLabel
		if !t.Owner.Joint && t.Owner.PersonID != nil {
			label = namesByID[*t.Owner.PersonID]
		}
		cardName := ""
		if t.CreditCardID != nil {
			cardName = cardNames[*t.CreditCardID]
		}
		rows = append(rows, csvcodec.Row{
			Date:           t.Date,
			Type:           t.Type,
			PaymentMethod:  t.PaymentMethod,
			PersonLabel:    label,
			Category:       t.Category,
			Description:    t.Description,
			Value:          t.Value,
			Competency:     t.Competency,
			CreditCardName: cardName,
			Installments:   t.TotalInstallments,
		})
	}
	return csvcodec.Encode(rows), nil
}

// loadPeople maps normalized person names to IDs.
func (s *importService) loadPeople() (map[string]string, error) {
	var people []models.Person
	if err := s.db.Find(&people).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	byName := make(map[string]string, len(people))
	for _, person := range people {
		byName[models.NormalizeLabel(person.Name)] = person.ID
	}
	return byName, nil
}

func (s *importService) loadPersonNames() (map[string]string, error) {
	var people []models.Person
	if err := s.db.Find(&people).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	byID := make(map[string]string, len(people))
	for _, person := range people {
		byID[person.ID] = person.Name
	}
	return byID, nil
}

// loadCardsByName maps normalized card names to IDs.
func (s *importService) loadCardsByName() (map[string]string, error) {
	var cards []models.CreditCard
	if err := s.db.Find(&cards).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	byName := make(map[string]string, len(cards))
	for _, card := range cards {
		byName[models.NormalizeLabel(card.Name)] = card.ID
	}
	return byName, nil
}

func (s *importService) loadCardNames() (map[string]string, error) {
	var cards []models.CreditCard
	if err := s.db.Find(&cards).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	byID := make(map[string]string, len(cards))
	for _, card := range cards {
		byID[card.ID] = card.Name
	}
	return byID, nil
}
