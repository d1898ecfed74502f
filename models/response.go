package models

type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

type UserResponse struct {
	User User `json:"user"`
}

type TransactionResponse struct {
	Transaction Transaction `json:"transaction"`
}

type TransactionsResponse struct {
	Transactions []Transaction `json:"transactions"`
	Count        int           `json:"count" example:"12"`
}

type SavingsGoalResponse struct {
	SavingsGoal SavingsGoal `json:"savingsGoal"`
}

type SavingsGoalsResponse struct {
	SavingsGoals []SavingsGoal `json:"savingsGoals"`
	Count        int           `json:"count" example:"3"`
}

// CategorySummary is one spending category's share of total expenses.
type CategorySummary struct {
	Category   string  `json:"category" example:"Food"`
	Total      float64 `json:"total" example:"412.80"`
	Count      int     `json:"count" example:"9"`
	Percentage float64 `json:"percentage" example:"23.5"`
}

// SummaryFormatted carries the headline numbers rendered in the user's
// preferred currency.
type SummaryFormatted struct {
	Income   string `json:"income" example:"$5,000.00"`
	Expenses string `json:"expenses" example:"$3,200.50"`
	Balance  string `json:"balance" example:"$1,799.50"`
}

type SummaryResponse struct {
	Income      float64           `json:"income" example:"5000"`
	Expenses    float64           `json:"expenses" example:"3200.50"`
	Balance     float64           `json:"balance" example:"1799.50"`
	SavingsRate float64           `json:"savingsRate" example:"35.99"`
	Categories  []CategorySummary `json:"categories"`
	Formatted   SummaryFormatted  `json:"formatted"`
}

type MessageResponse struct {
	Message string `json:"message" example:"Password updated successfully"`
}

type ErrorResponse struct {
	Message string `json:"message" example:"Something went wrong"`
}
