package pipeline

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"carddash.org/internal/models"
)

// Ages returns ReferenceYear minus the birth year for every row that has a date of
// birth, sorted ascending.
func Ages(rows []models.Transaction) []float64 {
	ages := make([]float64, 0, len(rows))
	for _, row := range rows {
		if !row.HasBirthDate() {
			continue
		}
		ages = append(ages, float64(ReferenceYear-row.BirthDate.Year()))
	}
	sort.Float64s(ages)
	return ages
}

// AgeHistogram buckets the ages of rows into bins equal-width bins spanning the
// observed minimum to maximum age, and samples a Gaussian kernel density over the
// same range. The last bin is closed on the right so every age is counted once.
func AgeHistogram(rows []models.Transaction, bins int) models.AgeDistribution {
	if bins <= 0 {
		bins = DefaultBins
	}

	ages := Ages(rows)
	if len(ages) == 0 {
		return models.AgeDistribution{
			Bins:    []models.HistogramBin{},
			Density: []models.DensityPoint{},
		}
	}

	return models.AgeDistribution{
		Bins:    histogram(ages, bins),
		Density: density(ages, DensitySteps),
	}
}

// histogram expects ages sorted and non-empty.
func histogram(ages []float64, bins int) []models.HistogramBin {
	lo, hi := ages[0], ages[len(ages)-1]
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	width := (hi - lo) / float64(bins)

	dividers := make([]float64, bins+1)
	for i := range dividers {
		dividers[i] = lo + float64(i)*width
	}
	// stat.Histogram treats the last divider as exclusive.
	dividers[bins] = math.Nextafter(hi, math.Inf(1))

	counts := stat.Histogram(nil, dividers, ages, nil)

	out := make([]models.HistogramBin, bins)
	for i := range out {
		upper := dividers[i+1]
		if i == bins-1 {
			upper = hi
		}
		out[i] = models.HistogramBin{
			Lower: dividers[i],
			Upper: upper,
			Count: int(counts[i]),
		}
	}
	return out
}

// bandwidth follows the normal reference rule used by common density transforms.
func bandwidth(ages []float64) float64 {
	n := float64(len(ages))

	var sd float64
	if len(ages) > 1 {
		sd = stat.StdDev(ages, nil)
	}
	iqr := stat.Quantile(0.75, stat.LinInterp, ages, nil) - stat.Quantile(0.25, stat.LinInterp, ages, nil)

	spread := sd
	if iqr > 0 && iqr/1.34 < spread {
		spread = iqr / 1.34
	}

	bw := 1.06 * spread * math.Pow(n, -0.2)
	if bw <= 0 || math.IsNaN(bw) {
		return 1
	}
	return bw
}

// density expects ages sorted and non-empty.
func density(ages []float64, steps int) []models.DensityPoint {
	lo, hi := ages[0], ages[len(ages)-1]

	var xs []float64
	if lo == hi || steps < 2 {
		xs = []float64{lo}
	} else {
		xs = floats.Span(make([]float64, steps), lo, hi)
	}

	kernel := distuv.Normal{Mu: 0, Sigma: bandwidth(ages)}
	n := float64(len(ages))

	out := make([]models.DensityPoint, len(xs))
	for i, x := range xs {
		var sum float64
		for _, a := range ages {
			sum += kernel.Prob(x - a)
		}
		out[i] = models.DensityPoint{Age: x, Density: sum / n}
	}
	return out
}

// binLabel renders a bin as "lower-upper" with whole-number ages where possible.
func binLabel(b models.HistogramBin) string {
	return fmt.Sprintf("%s-%s", formatAge(b.Lower), formatAge(b.Upper))
}

func formatAge(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}
