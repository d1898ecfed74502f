package models

import "time"

// SavingsGoal tracks progress towards a target amount. Current never exceeds
// Target; contributions are clamped at the storage layer.
type SavingsGoal struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	Name      string    `json:"name"`
	Target    float64   `json:"target"`
	Current   float64   `json:"current"`
	Deadline  time.Time `json:"deadline"`
	CreatedAt time.Time `json:"created_at"`
}
