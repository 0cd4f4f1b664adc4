package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"carddash.org/internal/models"
)

// Warning describes a data row that was dropped or had a field defaulted
type Warning struct {
	Line    int    `json:"line"`
	Column  string `json:"column,omitempty"`
	Message string `json:"message"`
	Dropped bool   `json:"dropped"`
}

func (w Warning) String() string {
	if w.Column == "" {
		return fmt.Sprintf("line %d: %s", w.Line, w.Message)
	}
	return fmt.Sprintf("line %d, %s: %s", w.Line, w.Column, w.Message)
}

// Column names of the transaction CSV, matched case-insensitively
const (
	ColTransactionDate = "transaction_date"
	ColDistrict        = "district_name"
	ColOperation       = "operation"
	ColTransactionType = "transaction_type"
	ColCardType        = "credit_card_type"
	ColFrequency       = "frequency"
	ColBirthDate       = "date_of_birth"
	ColAvgSalary       = "avg_salary"
)

var requiredColumns = []string{
	ColTransactionDate,
	ColDistrict,
	ColOperation,
	ColTransactionType,
	ColCardType,
	ColFrequency,
	ColBirthDate,
	ColAvgSalary,
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
	"1/2/2006",
	"2006/01/02",
}

type parseResult struct {
	Rows     []models.Transaction
	Warnings []Warning
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

// columnIndex maps every required column to its position in header.
func columnIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return index, nil
}

// parseTransactions reads a header row followed by transaction rows. Rows with an
// unusable date or salary are skipped and reported as warnings.
func parseTransactions(r io.Reader) (parseResult, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return parseResult{}, errors.New("empty file: header row required")
	}
	if err != nil {
		return parseResult{}, fmt.Errorf("error reading header: %w", err)
	}

	index, err := columnIndex(header)
	if err != nil {
		return parseResult{}, err
	}

	result := parseResult{Rows: make([]models.Transaction, 0, 1024)}
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			result.Warnings = append(result.Warnings, Warning{Line: parseErr.Line, Message: parseErr.Err.Error(), Dropped: true})
			continue
		}
		if err != nil {
			return parseResult{}, fmt.Errorf("error reading transactions: %w", err)
		}
		line, _ := cr.FieldPos(0)

		row, warnings := parseRecord(record, index, line)
		result.Warnings = append(result.Warnings, warnings...)
		if row != nil {
			result.Rows = append(result.Rows, *row)
		}
	}

	return result, nil
}

func parseRecord(record []string, index map[string]int, line int) (*models.Transaction, []Warning) {
	field := func(col string) string {
		i := index[col]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}
	drop := func(col, msg string) (*models.Transaction, []Warning) {
		return nil, []Warning{{Line: line, Column: col, Message: msg, Dropped: true}}
	}

	txDate, err := parseDate(field(ColTransactionDate))
	if err != nil {
		return drop(ColTransactionDate, err.Error())
	}
	birthDate, err := parseDate(field(ColBirthDate))
	if err != nil {
		return drop(ColBirthDate, err.Error())
	}

	var warnings []Warning
	var salary float64
	if raw := field(ColAvgSalary); raw == "" {
		warnings = append(warnings, Warning{Line: line, Column: ColAvgSalary, Message: "empty salary, using 0"})
	} else {
		salary, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			return drop(ColAvgSalary, fmt.Sprintf("invalid salary %q", raw))
		}
	}

	return &models.Transaction{
		TransactionDate: txDate,
		District:        field(ColDistrict),
		Operation:       field(ColOperation),
		TransactionType: field(ColTransactionType),
		CardType:        field(ColCardType),
		Frequency:       field(ColFrequency),
		BirthDate:       birthDate,
		AvgSalary:       salary,
	}, warnings
}
