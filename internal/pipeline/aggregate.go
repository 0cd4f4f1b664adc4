package pipeline

import (
	"sort"

	"carddash.org/internal/models"
)

// Field extracts a categorical value from a row
type Field func(models.Transaction) string

var (
	ByDistrict        Field = func(t models.Transaction) string { return t.District }
	ByOperation       Field = func(t models.Transaction) string { return t.Operation }
	ByTransactionType Field = func(t models.Transaction) string { return t.TransactionType }
	ByCardType        Field = func(t models.Transaction) string { return t.CardType }
	ByFrequency       Field = func(t models.Transaction) string { return t.Frequency }
)

// countBy counts rows per field value, keeping categories in first-seen order.
func countBy(rows []models.Transaction, field Field) []models.Pair {
	index := make(map[string]int)
	pairs := make([]models.Pair, 0)

	for _, row := range rows {
		key := field(row)
		i, ok := index[key]
		if !ok {
			i = len(pairs)
			index[key] = i
			pairs = append(pairs, models.Pair{Category: key})
		}
		pairs[i].Value++
	}

	return pairs
}

// sortByValueDesc orders pairs by value, largest first. Ties keep their current order.
func sortByValueDesc(pairs []models.Pair) {
	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].Value > pairs[j].Value
	})
}

// DistrictFrequency counts rows per district in first-seen order. It is meant to be
// fed the year-scoped rows.
func DistrictFrequency(rows []models.Transaction) []models.Pair {
	return countBy(rows, ByDistrict)
}

// OperationShare returns each operation's percentage of all rows, largest first.
// An empty row set has no shares and returns ErrEmptyAggregate.
func OperationShare(rows []models.Transaction) ([]models.Pair, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyAggregate
	}

	pairs := countBy(rows, ByOperation)
	sortByValueDesc(pairs)

	total := float64(len(rows))
	for i := range pairs {
		pairs[i].Value = 100 * pairs[i].Value / total
	}
	return pairs, nil
}

// CategoryCounts counts rows per value of field, largest first.
func CategoryCounts(rows []models.Transaction, field Field) []models.Pair {
	pairs := countBy(rows, field)
	sortByValueDesc(pairs)
	return pairs
}

// TopDistrictsBySalary keeps the first row seen for each district and returns the n
// districts with the highest average salary. Equal salaries keep first-seen order.
func TopDistrictsBySalary(rows []models.Transaction, n int) []models.Pair {
	if n <= 0 {
		n = DefaultTopN
	}

	seen := make(map[string]bool)
	pairs := make([]models.Pair, 0)
	for _, row := range rows {
		if seen[row.District] {
			continue
		}
		seen[row.District] = true
		pairs = append(pairs, models.Pair{Category: row.District, Value: row.AvgSalary})
	}

	sortByValueDesc(pairs)
	if len(pairs) > n {
		pairs = pairs[:n]
	}
	return pairs
}
