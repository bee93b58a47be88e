package repository

import (
	"context"

	"github.com/vosstorgg/dailybot/internal/domain"
)

// IActivityRepo интерфейс журнала активности (append-only)
type IActivityRepo interface {
	Create(ctx context.Context, action *domain.UserAction) error
}
