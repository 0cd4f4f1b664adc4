package pipeline

import (
	"fmt"
	"math/rand"
	"time"

	"carddash.org/internal/models"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func tx(district string, year int, operation string) models.Transaction {
	return models.Transaction{
		TransactionDate: date(year, time.June, 1),
		District:        district,
		Operation:       operation,
		TransactionType: "PRIJEM",
		CardType:        "classic",
		Frequency:       "POPLATEK MESICNE",
		BirthDate:       date(1970, time.January, 1),
		AvgSalary:       9000,
	}
}

// randomRows builds a reproducible mixed row set.
func randomRows(seed int64, n int) []models.Transaction {
	r := rand.New(rand.NewSource(seed))
	operations := []string{"VYBER", "VKLAD", "PREVOD Z UCTU", "VYBER KARTOU"}
	types := []string{"PRIJEM", "VYDAJ", "VYBER"}
	cards := []string{"classic", "junior", "gold"}
	freqs := []string{"POPLATEK MESICNE", "POPLATEK TYDNE", "POPLATEK PO OBRATU"}

	rows := make([]models.Transaction, n)
	for i := range rows {
		d := r.Intn(15)
		rows[i] = models.Transaction{
			TransactionDate: date(1993+r.Intn(6), time.Month(1+r.Intn(12)), 1+r.Intn(28)),
			District:        fmt.Sprintf("District %02d", d),
			Operation:       operations[r.Intn(len(operations))],
			TransactionType: types[r.Intn(len(types))],
			CardType:        cards[r.Intn(len(cards))],
			Frequency:       freqs[r.Intn(len(freqs))],
			BirthDate:       date(1930+r.Intn(60), time.Month(1+r.Intn(12)), 1+r.Intn(28)),
			AvgSalary:       float64(8000 + 150*d),
		}
	}
	return rows
}
