package userRepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	ports "github.com/vosstorgg/dailybot/internal/ports/repository"

	"log/slog"

	"github.com/vosstorgg/dailybot/internal/domain"
	"github.com/vosstorgg/dailybot/internal/ports/persistence"

	"github.com/google/uuid"
)

type userColumns struct {
	TableName            string
	ID                   string
	TelegramUserID       string
	Name                 string
	BirthDate            string
	BirthTime            string
	BirthTimeUnknown     string
	BirthPlace           string
	LocationKind         string
	LocationCity         string
	LocationLat          string
	LocationLon          string
	ForecastTime         string
	RegistrationStep     string
	RegistrationComplete string
	FirstSeen            string
	RegisteredAt         string
	LastActivity         string
}

type Repository struct {
	db      persistence.Persistence
	Log     *slog.Logger
	columns userColumns
}

// New создаёт новый репозиторий для работы с профилями пользователей
func New(db persistence.Persistence, log *slog.Logger) ports.IUserRepo {
	cols := userColumns{
		TableName:            "users",
		ID:                   "id",
		TelegramUserID:       "tg_id",
		Name:                 "name",
		BirthDate:            "birth_date",
		BirthTime:            "birth_time",
		BirthTimeUnknown:     "birth_time_unknown",
		BirthPlace:           "birth_place",
		LocationKind:         "location_kind",
		LocationCity:         "location_city",
		LocationLat:          "location_lat",
		LocationLon:          "location_lon",
		ForecastTime:         "forecast_time",
		RegistrationStep:     "registration_step",
		RegistrationComplete: "registration_complete",
		FirstSeen:            "first_seen",
		RegisteredAt:         "registered_at",
		LastActivity:         "last_activity",
	}
	return &Repository{
		db:      db,
		Log:     log,
		columns: cols,
	}
}

// allColumns возвращает строку со всеми колонками (17 колонок)
func (r *Repository) allColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		r.columns.ID,
		r.columns.TelegramUserID,
		r.columns.Name,
		r.columns.BirthDate,
		r.columns.BirthTime,
		r.columns.BirthTimeUnknown,
		r.columns.BirthPlace,
		r.columns.LocationKind,
		r.columns.LocationCity,
		r.columns.LocationLat,
		r.columns.LocationLon,
		r.columns.ForecastTime,
		r.columns.RegistrationStep,
		r.columns.RegistrationComplete,
		r.columns.FirstSeen,
		r.columns.RegisteredAt,
		r.columns.LastActivity)
}

func (r *Repository) insertQuery() string {
	return fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		r.columns.TableName,
		r.allColumns())
}

func (r *Repository) updateQuery() string {
	return fmt.Sprintf(`UPDATE %s SET
		%s = $2, %s = $3, %s = $4, %s = $5, %s = $6,
		%s = $7, %s = $8, %s = $9, %s = $10, %s = $11,
		%s = $12, %s = $13, %s = $14, %s = $15
		WHERE %s = $1`,
		r.columns.TableName,
		r.columns.Name,
		r.columns.BirthDate,
		r.columns.BirthTime,
		r.columns.BirthTimeUnknown,
		r.columns.BirthPlace,
		r.columns.LocationKind,
		r.columns.LocationCity,
		r.columns.LocationLat,
		r.columns.LocationLon,
		r.columns.ForecastTime,
		r.columns.RegistrationStep,
		r.columns.RegistrationComplete,
		r.columns.RegisteredAt,
		r.columns.LastActivity,
		r.columns.ID)
}

func (r *Repository) insertArgs(user *domain.User) []interface{} {
	return []interface{}{
		user.ID,
		user.TelegramUserID,
		user.Name,
		user.BirthDate,
		user.BirthTime,
		user.BirthTimeUnknown,
		user.BirthPlace,
		user.LocationKind,
		user.LocationCity,
		user.LocationLat,
		user.LocationLon,
		user.ForecastTime,
		user.RegistrationStep,
		user.RegistrationComplete,
		user.FirstSeen,
		user.RegisteredAt,
		user.LastActivity,
	}
}

func (r *Repository) updateArgs(user *domain.User) []interface{} {
	return []interface{}{
		user.ID,
		user.Name,
		user.BirthDate,
		user.BirthTime,
		user.BirthTimeUnknown,
		user.BirthPlace,
		user.LocationKind,
		user.LocationCity,
		user.LocationLat,
		user.LocationLon,
		user.ForecastTime,
		user.RegistrationStep,
		user.RegistrationComplete,
		user.RegisteredAt,
		user.LastActivity,
	}
}

// Create создаёт новый профиль
func (r *Repository) Create(ctx context.Context, user *domain.User) error {
	err := r.db.Exec(ctx, r.insertQuery(), r.insertArgs(user)...)
	if err != nil {
		r.Log.Error("failed to create user",
			"error", err,
			"telegram_user_id", user.TelegramUserID,
			"user_id", user.ID)
		return fmt.Errorf("failed to create user: %w", err)
	}
	r.Log.Debug("user created successfully",
		"id", user.ID,
		"telegram_user_id", user.TelegramUserID)
	return nil
}

// GetByTelegramID получает профиль по Telegram ID
func (r *Repository) GetByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error) {
	var user domain.User
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		r.allColumns(),
		r.columns.TableName,
		r.columns.TelegramUserID)
	err := r.db.Get(ctx, &user, query, telegramID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %d: %w", telegramID, domain.ErrNotFound)
		}
		r.Log.Error("failed to get user by telegram id",
			"error", err,
			"telegram_user_id", telegramID)
		return nil, fmt.Errorf("failed to get user by telegram id: %w", err)
	}
	return &user, nil
}

// Upsert создаёт профиль или обновляет существующий по Telegram ID.
// Выполняется в транзакции: select -> insert или update, поэтому повторный
// вызов с теми же полями не создаёт дублей.
func (r *Repository) Upsert(ctx context.Context, user *domain.User) (*domain.User, error) {
	var result *domain.User

	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx persistence.Transaction) error {
		existing, err := r.GetByTelegramIDTx(ctx, tx, user.TelegramUserID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}

		if existing == nil {
			if err := r.CreateTx(ctx, tx, user); err != nil {
				return err
			}
			result = user
			return nil
		}

		user.ID = existing.ID
		user.FirstSeen = existing.FirstSeen
		if err := r.UpdateTx(ctx, tx, user); err != nil {
			return err
		}
		result = user
		return nil
	})
	if err != nil {
		r.Log.Error("failed to upsert user",
			"error", err,
			"telegram_user_id", user.TelegramUserID)
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	return result, nil
}

// Update обновляет профиль одним запросом: поля этапа и указатель этапа
// меняются атомарно, частичная запись невозможна
func (r *Repository) Update(ctx context.Context, user *domain.User) error {
	rowsAffected, err := r.db.ExecWithResult(ctx, r.updateQuery(), r.updateArgs(user)...)
	if err != nil {
		r.Log.Error("failed to update user",
			"error", err,
			"user_id", user.ID)
		return fmt.Errorf("failed to update user: %w", err)
	}
	if rowsAffected == 0 {
		r.Log.Warn("user not found for update", "user_id", user.ID)
		return fmt.Errorf("user %s: %w", user.ID, domain.ErrNotFound)
	}
	r.Log.Debug("user updated successfully", "user_id", user.ID, "step", user.RegistrationStep)
	return nil
}

// UpdateLastActivity обновляет время последней активности пользователя
func (r *Repository) UpdateLastActivity(ctx context.Context, id uuid.UUID) error {
	now := time.Now()
	query := fmt.Sprintf(`UPDATE %s SET %s = $1 WHERE %s = $2`,
		r.columns.TableName,
		r.columns.LastActivity,
		r.columns.ID)
	rowsAffected, err := r.db.ExecWithResult(ctx, query, now, id)
	if err != nil {
		r.Log.Error("failed to update last activity",
			"error", err,
			"user_id", id)
		return fmt.Errorf("failed to update last activity: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// WithTransaction выполняет функцию в транзакции с автоматическим commit/rollback
func (r *Repository) WithTransaction(ctx context.Context, fn func(context.Context, persistence.Transaction) error) error {
	return r.db.WithTransaction(ctx, fn)
}

// CreateTx создаёт профиль в транзакции
func (r *Repository) CreateTx(ctx context.Context, tx persistence.Transaction, user *domain.User) error {
	err := tx.Exec(ctx, r.insertQuery(), r.insertArgs(user)...)
	if err != nil {
		r.Log.Error("failed to create user in transaction",
			"error", err,
			"telegram_user_id", user.TelegramUserID)
		return fmt.Errorf("failed to create user in transaction: %w", err)
	}
	return nil
}

// UpdateTx обновляет профиль в транзакции
func (r *Repository) UpdateTx(ctx context.Context, tx persistence.Transaction, user *domain.User) error {
	rowsAffected, err := tx.ExecWithResult(ctx, r.updateQuery(), r.updateArgs(user)...)
	if err != nil {
		r.Log.Error("failed to update user in transaction",
			"error", err,
			"user_id", user.ID)
		return fmt.Errorf("failed to update user in transaction: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("user %s: %w", user.ID, domain.ErrNotFound)
	}
	return nil
}

// GetByTelegramIDTx получает профиль по Telegram ID в транзакции
func (r *Repository) GetByTelegramIDTx(ctx context.Context, tx persistence.Transaction, telegramID int64) (*domain.User, error) {
	var user domain.User
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		r.allColumns(),
		r.columns.TableName,
		r.columns.TelegramUserID)
	err := tx.Get(ctx, &user, query, telegramID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %d: %w", telegramID, domain.ErrNotFound)
		}
		r.Log.Error("failed to get user by telegram id in transaction",
			"error", err,
			"telegram_user_id", telegramID)
		return nil, fmt.Errorf("failed to get user by telegram id in transaction: %w", err)
	}
	return &user, nil
}
