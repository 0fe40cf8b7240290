package models

import (
	"time"

	"github.com/google/uuid"
)

// UsageLog records one billable action for the freemium limit
type UsageLog struct {
	ID         uuid.UUID `json:"id"`
	Email      string    `json:"email"`
	Date       string    `json:"date"` // YYYY-MM-DD, the limit window
	ActionType string    `json:"action_type"`
	CreatedAt  time.Time `json:"created_at"`
}

// FieldStatistic counts generations per field per day
type FieldStatistic struct {
	Field Field  `json:"field"`
	Date  string `json:"date"`
	Count int    `json:"count"`
}
