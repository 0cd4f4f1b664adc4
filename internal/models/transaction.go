package models

import "time"

// Transaction is one parsed row of the credit-card dataset
type Transaction struct {
	TransactionDate time.Time `json:"transactionDate"`
	District        string    `json:"district"`
	Operation       string    `json:"operation"`
	TransactionType string    `json:"transactionType"`
	CardType        string    `json:"cardType"`
	Frequency       string    `json:"frequency"`
	BirthDate       time.Time `json:"birthDate"`
	AvgSalary       float64   `json:"avgSalary"`
}

// Year returns the calendar year of the transaction date
func (t Transaction) Year() int {
	return t.TransactionDate.Year()
}

// HasBirthDate reports whether the row carries a usable date of birth
func (t Transaction) HasBirthDate() bool {
	return !t.BirthDate.IsZero()
}
