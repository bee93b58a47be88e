package service

import (
	"context"
	"time"

	"github.com/vosstorgg/dailybot/internal/domain"
)

// IAstroProvider интерфейс внешнего поставщика астрономических данных
type IAstroProvider interface {
	GetAstronomy(ctx context.Context, date time.Time) (*domain.MoonData, error)
}

// IAstroService интерфейс для получения дневной астро-сводки
type IAstroService interface {
	DailySummary(ctx context.Context) (*domain.DailySummary, error)
	ClearCache(ctx context.Context) error
}
