package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/finassist/backend/db"
	"github.com/finassist/backend/models"
	"github.com/gin-gonic/gin"
)

// CreateSavingsGoal godoc
// @Summary Create a savings goal
// @Tags savings-goals
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.SavingsGoalRequest true "Goal data"
// @Success 201 {object} models.SavingsGoalResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /api/savings-goals [post]
func (h *Handler) CreateSavingsGoal(c *gin.Context) {
	var req models.SavingsGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		errorJSON(c, http.StatusBadRequest, err.Error())
		return
	}

	g := models.SavingsGoal{
		UserID:   currentUserID(c),
		Name:     req.Name,
		Target:   req.Target,
		Current:  req.Current,
		Deadline: req.Deadline,
	}
	if err := h.storage.CreateSavingsGoal(&g); err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.SavingsGoalResponse{SavingsGoal: g})
}

// GetSavingsGoals godoc
// @Summary List savings goals
// @Tags savings-goals
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} models.SavingsGoalsResponse
// @Router /api/savings-goals [get]
func (h *Handler) GetSavingsGoals(c *gin.Context) {
	goals, err := h.storage.GetSavingsGoals(currentUserID(c))
	if err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SavingsGoalsResponse{
		SavingsGoals: goals,
		Count:        len(goals),
	})
}

// GetSavingsGoal godoc
// @Summary Get a savings goal by id
// @Tags savings-goals
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Goal ID"
// @Success 200 {object} models.SavingsGoalResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/savings-goals/{id} [get]
func (h *Handler) GetSavingsGoal(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errorJSON(c, http.StatusNotFound, "Savings goal not found")
		return
	}

	g, err := h.storage.GetSavingsGoal(currentUserID(c), id)
	if errors.Is(err, db.ErrNotFound) {
		errorJSON(c, http.StatusNotFound, "Savings goal not found")
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SavingsGoalResponse{SavingsGoal: *g})
}

// UpdateSavingsGoal godoc
// @Summary Update a savings goal
// @Description Updates name, target and deadline. The current amount can
// @Description only be changed through the contribute endpoint.
// @Tags savings-goals
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Goal ID"
// @Param request body models.SavingsGoalRequest true "New field values"
// @Success 200 {object} models.SavingsGoalResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/savings-goals/{id} [patch]
func (h *Handler) UpdateSavingsGoal(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errorJSON(c, http.StatusNotFound, "Savings goal not found")
		return
	}

	var req models.SavingsGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		errorJSON(c, http.StatusBadRequest, err.Error())
		return
	}

	g := models.SavingsGoal{
		ID:       id,
		UserID:   currentUserID(c),
		Name:     req.Name,
		Target:   req.Target,
		Deadline: req.Deadline,
	}
	err = h.storage.UpdateSavingsGoal(&g)
	if errors.Is(err, db.ErrNotFound) {
		errorJSON(c, http.StatusNotFound, "Savings goal not found")
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SavingsGoalResponse{SavingsGoal: g})
}

// DeleteSavingsGoal godoc
// @Summary Delete a savings goal
// @Tags savings-goals
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Goal ID"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/savings-goals/{id} [delete]
func (h *Handler) DeleteSavingsGoal(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errorJSON(c, http.StatusNotFound, "Savings goal not found")
		return
	}

	err = h.storage.DeleteSavingsGoal(currentUserID(c), id)
	if errors.Is(err, db.ErrNotFound) {
		errorJSON(c, http.StatusNotFound, "Savings goal not found")
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "Savings goal deleted successfully"})
}

// ContributeToSavingsGoal godoc
// @Summary Contribute to a savings goal
// @Description Adds the amount to the goal's current amount, clamped at the
// @Description target.
// @Tags savings-goals
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Goal ID"
// @Param request body models.ContributeRequest true "Contribution amount"
// @Success 200 {object} models.SavingsGoalResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/savings-goals/{id}/contribute [patch]
func (h *Handler) ContributeToSavingsGoal(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errorJSON(c, http.StatusNotFound, "Savings goal not found")
		return
	}

	var req models.ContributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		errorJSON(c, http.StatusBadRequest, err.Error())
		return
	}

	g, err := h.storage.ContributeToSavingsGoal(currentUserID(c), id, req.Amount)
	if errors.Is(err, db.ErrNotFound) {
		errorJSON(c, http.StatusNotFound, "Savings goal not found")
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SavingsGoalResponse{SavingsGoal: *g})
}
