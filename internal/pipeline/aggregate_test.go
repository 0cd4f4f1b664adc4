package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carddash.org/internal/models"
)

func TestOperationShareScenario(t *testing.T) {
	rows := []models.Transaction{
		tx("A", 2020, "withdrawal"),
		tx("A", 2021, "deposit"),
		tx("B", 2020, "withdrawal"),
	}
	filtered, _, err := Filter(rows, "A", AllYears)
	require.NoError(t, err)

	shares, err := OperationShare(filtered)
	require.NoError(t, err)
	assert.Equal(t, []models.Pair{
		{Category: "withdrawal", Value: 50},
		{Category: "deposit", Value: 50},
	}, shares)
}

func TestOperationShareSumsToHundred(t *testing.T) {
	for _, seed := range []int64{1, 2, 3, 4, 5} {
		shares, err := OperationShare(randomRows(seed, 333))
		require.NoError(t, err)

		var sum float64
		for i, p := range shares {
			sum += p.Value
			if i > 0 {
				assert.GreaterOrEqual(t, shares[i-1].Value, p.Value)
			}
		}
		assert.InDelta(t, 100, sum, 1e-6)
	}
}

func TestOperationShareEmpty(t *testing.T) {
	shares, err := OperationShare(nil)
	assert.ErrorIs(t, err, ErrEmptyAggregate)
	assert.Nil(t, shares)
}

func TestDistrictFrequencyKeepsFirstSeenOrder(t *testing.T) {
	rows := []models.Transaction{
		tx("B", 2020, "x"),
		tx("A", 2020, "x"),
		tx("A", 2020, "x"),
		tx("C", 2020, "x"),
		tx("A", 2020, "x"),
	}

	assert.Equal(t, []models.Pair{
		{Category: "B", Value: 1},
		{Category: "A", Value: 3},
		{Category: "C", Value: 1},
	}, DistrictFrequency(rows))
}

func TestCategoryCountsSortedDescending(t *testing.T) {
	rows := []models.Transaction{
		{CardType: "junior"},
		{CardType: "classic"},
		{CardType: "gold"},
		{CardType: "classic"},
		{CardType: "gold"},
		{CardType: "classic"},
	}

	assert.Equal(t, []models.Pair{
		{Category: "classic", Value: 3},
		{Category: "gold", Value: 2},
		{Category: "junior", Value: 1},
	}, CategoryCounts(rows, ByCardType))
}

func TestCategoryCountsTieKeepsFirstSeen(t *testing.T) {
	rows := []models.Transaction{
		{TransactionType: "VYDAJ"},
		{TransactionType: "PRIJEM"},
	}

	got := CategoryCounts(rows, ByTransactionType)
	require.Len(t, got, 2)
	assert.Equal(t, "VYDAJ", got[0].Category)
	assert.Equal(t, "PRIJEM", got[1].Category)
}

func TestTopDistrictsBySalary(t *testing.T) {
	rows := []models.Transaction{
		{District: "A", AvgSalary: 9000},
		{District: "B", AvgSalary: 12000},
		{District: "A", AvgSalary: 99999}, // later duplicate is ignored
		{District: "C", AvgSalary: 10000},
		{District: "D", AvgSalary: 10000},
	}

	assert.Equal(t, []models.Pair{
		{Category: "B", Value: 12000},
		{Category: "C", Value: 10000},
		{Category: "D", Value: 10000},
	}, TopDistrictsBySalary(rows, 3))
}

func TestTopDistrictsBySalaryProperties(t *testing.T) {
	rows := randomRows(11, 400)
	distinct := map[string]bool{}
	for _, row := range rows {
		distinct[row.District] = true
	}

	for _, n := range []int{1, 5, 10, 50} {
		top := TopDistrictsBySalary(rows, n)
		assert.Len(t, top, min(n, len(distinct)))
		for i := 1; i < len(top); i++ {
			assert.GreaterOrEqual(t, top[i-1].Value, top[i].Value)
		}
	}

	assert.Len(t, TopDistrictsBySalary(rows, 0), DefaultTopN)
}

func TestAggregatesOverEmptyRows(t *testing.T) {
	var rows []models.Transaction

	assert.Empty(t, DistrictFrequency(rows))
	assert.Empty(t, CategoryCounts(rows, ByTransactionType))
	assert.Empty(t, CategoryCounts(rows, ByCardType))
	assert.Empty(t, TopDistrictsBySalary(rows, 10))

	ages := AgeHistogram(rows, 20)
	assert.Empty(t, ages.Bins)
	assert.Empty(t, ages.Density)

	_, err := OperationShare(rows)
	assert.ErrorIs(t, err, ErrEmptyAggregate)
}
