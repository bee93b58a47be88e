package activityRepo

import (
	"context"
	"fmt"

	ports "github.com/vosstorgg/dailybot/internal/ports/repository"

	"log/slog"

	"github.com/vosstorgg/dailybot/internal/domain"
	"github.com/vosstorgg/dailybot/internal/ports/persistence"
)

type activityColumns struct {
	TableName   string
	ID          string
	UserID      string
	ActionType  string
	Step        string
	MessageText string
	HasLocation string
	CreatedAt   string
}

type Repository struct {
	db      persistence.Persistence
	Log     *slog.Logger
	columns activityColumns
}

// New создаёт новый репозиторий журнала активности
func New(db persistence.Persistence, log *slog.Logger) ports.IActivityRepo {
	cols := activityColumns{
		TableName:   "user_actions",
		ID:          "id",
		UserID:      "user_id",
		ActionType:  "action_type",
		Step:        "step",
		MessageText: "message_text",
		HasLocation: "has_location",
		CreatedAt:   "created_at",
	}
	return &Repository{
		db:      db,
		Log:     log,
		columns: cols,
	}
}

// allColumns возвращает строку со всеми колонками
func (r *Repository) allColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s",
		r.columns.ID,
		r.columns.UserID,
		r.columns.ActionType,
		r.columns.Step,
		r.columns.MessageText,
		r.columns.HasLocation,
		r.columns.CreatedAt)
}

// Create записывает действие пользователя в журнал
func (r *Repository) Create(ctx context.Context, action *domain.UserAction) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		r.columns.TableName,
		r.allColumns())
	err := r.db.Exec(ctx, query,
		action.ID,
		action.UserID,
		action.ActionType,
		action.Step,
		action.MessageText,
		action.HasLocation,
		action.CreatedAt)
	if err != nil {
		r.Log.Error("failed to create user action",
			"error", err,
			"user_id", action.UserID,
			"action_type", action.ActionType)
		return fmt.Errorf("failed to create user action: %w", err)
	}
	r.Log.Debug("user action created",
		"id", action.ID,
		"user_id", action.UserID,
		"action_type", action.ActionType)
	return nil
}
