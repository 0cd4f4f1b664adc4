package pipeline

import "carddash.org/internal/models"

// Filter applies the district and year selection to rows.
//
// filtered honours both predicates. yearScoped honours only the year: the district
// chart and the salary ranking always show the whole district landscape of the
// selected year, even when a single district is selected. Keep the two views apart.
//
// Neither result aliases rows, and an unknown district or year yields empty slices.
func Filter(rows []models.Transaction, district, year string) (filtered, yearScoped []models.Transaction, err error) {
	y, byYear, err := ParseYear(year)
	if err != nil {
		return nil, nil, err
	}
	byDistrict := district != AllDistricts

	filtered = make([]models.Transaction, 0, len(rows))
	yearScoped = make([]models.Transaction, 0, len(rows))

	for _, row := range rows {
		if byYear && row.Year() != y {
			continue
		}
		yearScoped = append(yearScoped, row)
		if byDistrict && row.District != district {
			continue
		}
		filtered = append(filtered, row)
	}

	return filtered, yearScoped, nil
}
