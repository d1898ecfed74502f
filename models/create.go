package models

import (
	"errors"
	"time"
)

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Currency string `json:"currency"`
}

func (r *RegisterRequest) Validate() error {
	if r.Currency == "" {
		r.Currency = "USD"
	}
	if !IsValidCurrency(r.Currency) {
		return errors.New("currency must be one of USD, EUR, GBP, JPY, CAD")
	}
	return nil
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Currency string `json:"currency"`
}

func (r *UpdateProfileRequest) Validate() error {
	if r.Currency != "" && !IsValidCurrency(r.Currency) {
		return errors.New("currency must be one of USD, EUR, GBP, JPY, CAD")
	}
	return nil
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

// TransactionRequest is the body for both creating and updating a
// transaction; updates replace all updatable fields.
type TransactionRequest struct {
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
}

func (r *TransactionRequest) Validate() error {
	if r.Date.IsZero() {
		r.Date = time.Now()
	}
	if r.Description == "" {
		return errors.New("description is required")
	}
	if len(r.Description) > 100 {
		return errors.New("description cannot be more than 100 characters")
	}
	if !IsValidCategory(r.Category) {
		return errors.New("category is not one of the allowed values")
	}
	return nil
}

// SavingsGoalRequest is the body for creating or updating a savings goal.
// Current is only honored on create; the contribute endpoint is the only way
// to move it afterwards.
type SavingsGoalRequest struct {
	Name     string    `json:"name"`
	Target   float64   `json:"target"`
	Current  float64   `json:"current"`
	Deadline time.Time `json:"deadline"`
}

func (r *SavingsGoalRequest) Validate() error {
	if r.Name == "" {
		return errors.New("name is required")
	}
	if len(r.Name) > 50 {
		return errors.New("name cannot be more than 50 characters")
	}
	if r.Target < 0 {
		return errors.New("target amount cannot be negative")
	}
	if r.Current < 0 {
		return errors.New("current amount cannot be negative")
	}
	if r.Current > r.Target {
		return errors.New("current amount cannot exceed target")
	}
	if r.Deadline.IsZero() {
		return errors.New("deadline is required")
	}
	return nil
}

type ContributeRequest struct {
	Amount float64 `json:"amount"`
}

func (r *ContributeRequest) Validate() error {
	if r.Amount <= 0 {
		return errors.New("amount must be positive")
	}
	return nil
}
