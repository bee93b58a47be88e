package repository

import (
	"context"

	"github.com/vosstorgg/dailybot/internal/domain"
	"github.com/vosstorgg/dailybot/internal/ports/persistence"

	"github.com/google/uuid"
)

// IUserRepo интерфейс для работы с профилями пользователей
type IUserRepo interface {
	Create(ctx context.Context, user *domain.User) error
	GetByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error)
	// Upsert создаёт профиль или обновляет существующий по Telegram ID.
	// Идемпотентен: повторный вызов с теми же полями не создаёт дублей
	// и меняет только last_activity.
	Upsert(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	UpdateLastActivity(ctx context.Context, id uuid.UUID) error

	WithTransaction(ctx context.Context, fn func(context.Context, persistence.Transaction) error) error

	// Транзакционные методы
	CreateTx(ctx context.Context, tx persistence.Transaction, user *domain.User) error
	UpdateTx(ctx context.Context, tx persistence.Transaction, user *domain.User) error
	GetByTelegramIDTx(ctx context.Context, tx persistence.Transaction, telegramID int64) (*domain.User, error)
}
