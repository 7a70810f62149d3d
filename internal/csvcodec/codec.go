// Package csvcodec implements the flat text format used for bulk transaction
// import and export. The column order and header token are a compatibility
// contract with previously exported files and must not change.
//
// The decoder is deliberately tolerant rather than RFC-4180 compliant: it
// splits on ';' when present and ',' otherwise, and strips one pair of
// surrounding quotes per field without reconstructing embedded escaped quotes
// or separators inside quoted fields.
package csvcodec

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"finledger/internal/competency"
	"finledger/internal/models"
	"finledger/internal/money"
)

// Header is the fixed first line of an export.
const Header = "data,tipo,metodoPagamento,pessoa,categoria,descricao,valor,competencia,cartaoCredito,parcelas"

const dateLayout = "02/01/2006"
const dateLayoutISO = "2006-01-02"

// Row is one parsed (or to-be-encoded) transaction line. The person and
// credit-card columns stay display labels at this layer; resolving them
// against stored entities is the importer's job.
type Row struct {
	Line           int
	Date           time.Time
	Type           models.TransactionType
	PaymentMethod  models.PaymentMethod
	PersonLabel    string
	Category       string
	Description    string
	Value          money.Money
	Competency     string
	CreditCardName string
	Installments   int
}

// RowError reports one input line that could not be parsed. It is data, not
// a failure: the batch continues past it.
type RowError struct {
	Line int
	Err  error
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

// Decode parses raw import text. Rows that fail to parse are reported in the
// second return value with their 1-based line number; decoding never aborts
// on a bad row.
func Decode(content string) ([]Row, []RowError) {
	lines := strings.Split(content, "\n")

	start := 0
	if len(lines) > 0 && strings.Contains(strings.ToLower(lines[0]), "data") {
		start = 1
	}

	var rows []Row
	var rowErrs []RowError
	for i := start; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		row, err := parseLine(line)
		if err != nil {
			rowErrs = append(rowErrs, RowError{Line: i + 1, Err: err})
			continue
		}
		row.Line = i + 1
		rows = append(rows, row)
	}
	return rows, rowErrs
}

func parseLine(line string) (Row, error) {
	var fields []string
	if strings.Contains(line, ";") {
		fields = strings.Split(line, ";")
	} else {
		fields = strings.Split(line, ",")
	}
	for i := range fields {
		fields[i] = unquote(strings.TrimSpace(fields[i]))
	}

	if len(fields) < 7 {
		return Row{}, fmt.Errorf("incomplete line: expected at least 7 fields, got %d", len(fields))
	}

	date, err := parseDate(fields[0])
	if err != nil {
		return Row{}, err
	}
	txType, err := models.ParseTransactionType(fields[1])
	if err != nil {
		return Row{}, err
	}
	method, err := models.ParsePaymentMethod(fields[2])
	if err != nil {
		return Row{}, err
	}
	value, err := money.FromString(fields[6])
	if err != nil {
		return Row{}, fmt.Errorf("invalid value %q: use '.' or ',' as decimal separator", fields[6])
	}

	row := Row{
		Date:          date,
		Type:          txType,
		PaymentMethod: method,
		PersonLabel:   fields[3],
		Category:      fields[4],
		Description:   fields[5],
		Value:         value,
		Competency:    competency.FromDate(date).String(),
		Installments:  1,
	}
	if len(fields) > 7 && fields[7] != "" {
		row.Competency = fields[7]
	}
	if len(fields) > 8 {
		row.CreditCardName = fields[8]
	}
	if len(fields) > 9 && fields[9] != "" {
		if n, err := strconv.Atoi(fields[9]); err == nil {
			row.Installments = n
		}
	}
	return row, nil
}

func parseDate(s string) (time.Time, error) {
	if d, err := time.Parse(dateLayout, s); err == nil {
		return d, nil
	}
	if d, err := time.Parse(dateLayoutISO, s); err == nil {
		return d, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q: use DD/MM/YYYY or YYYY-MM-DD", s)
}

// unquote strips a single pair of surrounding double quotes. Embedded escaped
// quotes are left as-is: the naive format does not round-trip them.
func unquote(s string) string {
	s = strings.TrimPrefix(s, `"`)
	return strings.TrimSuffix(s, `"`)
}

// Encode renders rows into the flat format, header line first.
func Encode(rows []Row) string {
	var b strings.Builder
	b.WriteString(Header)
	b.WriteString("\n")
	for i := range rows {
		b.WriteString(encodeRow(&rows[i]))
		b.WriteString("\n")
	}
	return b.String()
}

func encodeRow(r *Row) string {
	installments := r.Installments
	if installments < 1 {
		installments = 1
	}
	fields := []string{
		r.Date.Format(dateLayout),
		r.Type.Label(),
		r.PaymentMethod.Label(),
		escape(r.PersonLabel),
		escape(r.Category),
		escape(r.Description),
		r.Value.String(),
		r.Competency,
		escape(r.CreditCardName),
		strconv.Itoa(installments),
	}
	return strings.Join(fields, ",")
}

// escape wraps a field in double quotes, doubling internal quotes, when it
// contains a comma, a quote, or a newline.
func escape(field string) string {
	if strings.ContainsAny(field, ",\"\n") {
		return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
	}
	return field
}
