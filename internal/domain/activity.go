package domain

import (
	"time"

	"github.com/google/uuid"
)

// ActionType тип действия пользователя для журнала активности
type ActionType string

const (
	ActionRegistrationStarted   ActionType = "registration_started"
	ActionRegistrationStep      ActionType = "registration_step"
	ActionRegistrationCompleted ActionType = "registration_completed"
	ActionRegistrationRestarted ActionType = "registration_restarted"
	ActionProfileViewed         ActionType = "profile_viewed"
)

// UserAction запись журнала активности (append-only, только для наблюдаемости)
type UserAction struct {
	ID          uuid.UUID        `json:"id" db:"id"`
	UserID      uuid.UUID        `json:"user_id" db:"user_id"`
	ActionType  ActionType       `json:"action_type" db:"action_type"`
	Step        RegistrationStep `json:"step" db:"step"`
	MessageText *string          `json:"message_text,omitempty" db:"message_text"`
	HasLocation bool             `json:"has_location" db:"has_location"`
	CreatedAt   time.Time        `json:"created_at" db:"created_at"`
}
