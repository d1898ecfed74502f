package api

import (
	"net/http"

	"github.com/finassist/backend/currency"
	"github.com/finassist/backend/db"
	"github.com/finassist/backend/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// GetSummary godoc
// @Summary Dashboard summary
// @Description Recomputes income, expenses, balance, savings rate and the
// @Description per-category spending breakdown from the caller's
// @Description transactions. Nothing is cached.
// @Tags dashboard
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} models.SummaryResponse
// @Router /api/dashboard/summary [get]
func (h *Handler) GetSummary(c *gin.Context) {
	user, err := h.storage.GetUserByID(currentUserID(c))
	if err != nil {
		internalError(c, err)
		return
	}

	transactions, err := h.storage.GetTransactions(user.ID, db.TransactionFilter{})
	if err != nil {
		internalError(c, err)
		return
	}

	summary := Summarize(transactions)
	summary.Formatted = models.SummaryFormatted{
		Income:   currency.Format(summary.Income, user.Currency),
		Expenses: currency.Format(summary.Expenses, user.Currency),
		Balance:  currency.Format(summary.Balance, user.Currency),
	}

	c.JSON(http.StatusOK, summary)
}

// Summarize derives the dashboard aggregates from a transaction list.
// Positive amounts count as income, negative as expenses. Sums run on
// decimals so cents survive long transaction histories.
func Summarize(transactions []models.Transaction) models.SummaryResponse {
	income := decimal.Zero
	expenses := decimal.Zero
	byCategory := map[string]*models.CategorySummary{}
	categoryTotals := map[string]decimal.Decimal{}

	for _, t := range transactions {
		amount := decimal.NewFromFloat(t.Amount)
		if amount.IsPositive() {
			income = income.Add(amount)
			continue
		}
		spent := amount.Abs()
		expenses = expenses.Add(spent)

		if _, ok := byCategory[t.Category]; !ok {
			byCategory[t.Category] = &models.CategorySummary{Category: t.Category}
		}
		byCategory[t.Category].Count++
		categoryTotals[t.Category] = categoryTotals[t.Category].Add(spent)
	}

	balance := income.Sub(expenses)
	savingsRate := decimal.Zero
	if income.IsPositive() {
		savingsRate = balance.Div(income).Mul(decimal.NewFromInt(100)).Round(2)
	}

	categories := make([]models.CategorySummary, 0, len(byCategory))
	for _, name := range models.Categories {
		cs, ok := byCategory[name]
		if !ok {
			continue
		}
		total := categoryTotals[name]
		cs.Total = total.InexactFloat64()
		if expenses.IsPositive() {
			cs.Percentage = total.Div(expenses).Mul(decimal.NewFromInt(100)).Round(2).InexactFloat64()
		}
		categories = append(categories, *cs)
	}

	return models.SummaryResponse{
		Income:      income.InexactFloat64(),
		Expenses:    expenses.InexactFloat64(),
		Balance:     balance.InexactFloat64(),
		SavingsRate: savingsRate.InexactFloat64(),
		Categories:  categories,
	}
}
