package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/finassist/backend/db"
	"github.com/finassist/backend/models"
	"github.com/gin-gonic/gin"
)

// CreateTransaction godoc
// @Summary Record a transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.TransactionRequest true "Transaction data"
// @Success 201 {object} models.TransactionResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /api/transactions [post]
func (h *Handler) CreateTransaction(c *gin.Context) {
	var req models.TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		errorJSON(c, http.StatusBadRequest, err.Error())
		return
	}

	t := models.Transaction{
		UserID:      currentUserID(c),
		Date:        req.Date,
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
	}
	if err := h.storage.CreateTransaction(&t); err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.TransactionResponse{Transaction: t})
}

// GetTransactions godoc
// @Summary List transactions
// @Description Lists the caller's transactions newest first, optionally
// @Description filtered by an inclusive date range and a category.
// @Tags transactions
// @Produce json
// @Security ApiKeyAuth
// @Param startDate query string false "Start date (RFC 3339 or YYYY-MM-DD)"
// @Param endDate query string false "End date (RFC 3339 or YYYY-MM-DD)"
// @Param category query string false "Category"
// @Success 200 {object} models.TransactionsResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /api/transactions [get]
func (h *Handler) GetTransactions(c *gin.Context) {
	var filter db.TransactionFilter

	if v := c.Query("startDate"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			errorJSON(c, http.StatusBadRequest, "invalid startDate")
			return
		}
		filter.StartDate = &t
	}
	if v := c.Query("endDate"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			errorJSON(c, http.StatusBadRequest, "invalid endDate")
			return
		}
		// a bare date means the whole day is included
		if len(v) == len("2006-01-02") {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		filter.EndDate = &t
	}
	if v := c.Query("category"); v != "" {
		if !models.IsValidCategory(v) {
			errorJSON(c, http.StatusBadRequest, "category is not one of the allowed values")
			return
		}
		filter.Category = v
	}

	transactions, err := h.storage.GetTransactions(currentUserID(c), filter)
	if err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.TransactionsResponse{
		Transactions: transactions,
		Count:        len(transactions),
	})
}

// GetTransaction godoc
// @Summary Get a transaction by id
// @Tags transactions
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Transaction ID"
// @Success 200 {object} models.TransactionResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/transactions/{id} [get]
func (h *Handler) GetTransaction(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errorJSON(c, http.StatusNotFound, "Transaction not found")
		return
	}

	t, err := h.storage.GetTransaction(currentUserID(c), id)
	if errors.Is(err, db.ErrNotFound) {
		errorJSON(c, http.StatusNotFound, "Transaction not found")
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.TransactionResponse{Transaction: *t})
}

// UpdateTransaction godoc
// @Summary Update a transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Transaction ID"
// @Param request body models.TransactionRequest true "New field values"
// @Success 200 {object} models.TransactionResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/transactions/{id} [patch]
func (h *Handler) UpdateTransaction(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errorJSON(c, http.StatusNotFound, "Transaction not found")
		return
	}

	var req models.TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		errorJSON(c, http.StatusBadRequest, err.Error())
		return
	}

	t := models.Transaction{
		ID:          id,
		UserID:      currentUserID(c),
		Date:        req.Date,
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
	}
	err = h.storage.UpdateTransaction(&t)
	if errors.Is(err, db.ErrNotFound) {
		errorJSON(c, http.StatusNotFound, "Transaction not found")
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.TransactionResponse{Transaction: t})
}

// DeleteTransaction godoc
// @Summary Delete a transaction
// @Tags transactions
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Transaction ID"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/transactions/{id} [delete]
func (h *Handler) DeleteTransaction(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errorJSON(c, http.StatusNotFound, "Transaction not found")
		return
	}

	err = h.storage.DeleteTransaction(currentUserID(c), id)
	if errors.Is(err, db.ErrNotFound) {
		errorJSON(c, http.StatusNotFound, "Transaction not found")
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "Transaction deleted successfully"})
}

// parseDate accepts RFC 3339 timestamps and bare YYYY-MM-DD dates.
func parseDate(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", v)
}
