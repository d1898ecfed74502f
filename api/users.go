package api

import (
	"errors"
	"net/http"

	"github.com/finassist/backend/db"
	"github.com/finassist/backend/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// UpdateProfile godoc
// @Summary Update the authenticated user's profile
// @Description Applies only the fields present in the request body.
// @Tags users
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.UpdateProfileRequest true "Fields to change"
// @Success 200 {object} models.UserResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/users/update [patch]
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		errorJSON(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.storage.GetUserByID(currentUserID(c))
	if errors.Is(err, db.ErrNotFound) {
		errorJSON(c, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Currency != "" {
		user.Currency = req.Currency
	}

	err = h.storage.UpdateUser(user)
	if errors.Is(err, db.ErrDuplicateEmail) {
		errorJSON(c, http.StatusBadRequest, "Email already in use")
		return
	}
	if errors.Is(err, db.ErrNotFound) {
		errorJSON(c, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.UserResponse{User: *user})
}

// UpdatePassword godoc
// @Summary Change the authenticated user's password
// @Tags users
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.UpdatePasswordRequest true "Current and new password"
// @Success 200 {object} models.MessageResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /api/users/update-password [patch]
func (h *Handler) UpdatePassword(c *gin.Context) {
	var req models.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.storage.GetUserByID(currentUserID(c))
	if errors.Is(err, db.ErrNotFound) {
		errorJSON(c, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)) != nil {
		errorJSON(c, http.StatusUnauthorized, "Current password is incorrect")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		internalError(c, err)
		return
	}

	if err := h.storage.UpdateUserPassword(user.ID, string(hash)); err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "Password updated successfully"})
}
