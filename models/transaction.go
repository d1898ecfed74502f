package models

import "time"

// Transaction is a single income or expense record. Positive amounts are
// income, negative amounts are expenses.
type Transaction struct {
	ID          int       `json:"id"`
	UserID      int       `json:"user_id"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
}

// Categories a transaction can belong to.
var Categories = []string{
	"Income",
	"Housing",
	"Food",
	"Transportation",
	"Utilities",
	"Entertainment",
	"Shopping",
	"Healthcare",
	"Other",
}

func IsValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}
