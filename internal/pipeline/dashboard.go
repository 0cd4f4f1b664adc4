package pipeline

import (
	"errors"

	"carddash.org/internal/models"
)

// Chart ids, also used as the :chart path segment of the API
const (
	ChartDistricts        = "districts"
	ChartOperations       = "operations"
	ChartFrequency        = "frequency"
	ChartTransactionTypes = "transaction-types"
	ChartCardTypes        = "card-types"
	ChartTopSalaries      = "top-salaries"
	ChartAges             = "ages"
)

// ChartIDs lists every chart in page order
func ChartIDs() []string {
	return []string{
		ChartDistricts,
		ChartOperations,
		ChartFrequency,
		ChartTopSalaries,
		ChartTransactionTypes,
		ChartCardTypes,
		ChartAges,
	}
}

// Build filters rows for params and computes every chart of the dashboard.
//
// A share chart over no rows is not fatal: its Error field carries ErrEmptyAggregate
// and the remaining charts are still built. Any other failure aborts the build.
func Build(rows []models.Transaction, params Params, opts Options) (models.Dashboard, error) {
	params = params.WithDefaults()

	filtered, yearScoped, err := Filter(rows, params.District, params.Year)
	if err != nil {
		return models.Dashboard{}, err
	}

	colors := ResolvePalette(params.Palette)
	newChart := func(id string, kind models.ChartKind, title, x, y string, data []models.Pair) models.Chart {
		return models.Chart{
			ID:       id,
			Kind:     kind,
			Title:    title,
			XLabel:   x,
			YLabel:   y,
			Colors:   colors,
			TopColor: colors[0],
			Data:     data,
		}
	}

	operations := newChart(ChartOperations, models.ChartKindDonut,
		"Share of Operations", "Operation", "Percentage", []models.Pair{})
	shares, err := OperationShare(filtered)
	switch {
	case errors.Is(err, ErrEmptyAggregate):
		operations.Error = err.Error()
	case err != nil:
		return models.Dashboard{}, err
	default:
		operations.Data = shares
	}

	ages := AgeHistogram(filtered, opts.bins())
	ageData := make([]models.Pair, len(ages.Bins))
	for i, b := range ages.Bins {
		ageData[i] = models.Pair{Category: binLabel(b), Value: float64(b.Count)}
	}
	ageChart := newChart(ChartAges, models.ChartKindHistogram,
		"Age Distribution of Customers", "Age", "Count", ageData)
	ageChart.Bins = ages.Bins
	ageChart.Density = ages.Density

	charts := []models.Chart{
		newChart(ChartDistricts, models.ChartKindBar,
			"Customers by District", "District", "Customer count", DistrictFrequency(yearScoped)),
		operations,
		newChart(ChartFrequency, models.ChartKindBar,
			"Number of Accounts by Frequency of Issuance", "Count", "Frequency", CategoryCounts(filtered, ByFrequency)),
		newChart(ChartTopSalaries, models.ChartKindBar,
			"Top Districts with Highest Average Salary", "District", "Average Salary", TopDistrictsBySalary(yearScoped, opts.topN())),
		newChart(ChartTransactionTypes, models.ChartKindColumn,
			"Count of Different transaction type", "transaction type", "Count", CategoryCounts(filtered, ByTransactionType)),
		newChart(ChartCardTypes, models.ChartKindColumn,
			"Count of Different Credit card type", "Credit card type", "Count", CategoryCounts(filtered, ByCardType)),
		ageChart,
	}

	return models.Dashboard{
		Filters: models.Filters{
			District: params.District,
			Year:     params.Year,
			Palette:  params.Palette,
		},
		Palette: colors,
		Summary: models.Summary{
			TotalRows:      len(rows),
			FilteredRows:   len(filtered),
			YearScopedRows: len(yearScoped),
		},
		Charts: charts,
	}, nil
}
