package astro

import (
	"log/slog"
	"time"

	"github.com/vosstorgg/dailybot/internal/ports/cache"
	"github.com/vosstorgg/dailybot/internal/ports/service"

	"golang.org/x/sync/singleflight"
)

// moonDataTTL астро-данные глобальны на сутки, дольше хранить нет смысла
const moonDataTTL = 24 * time.Hour

// Service отдаёт дневную астро-сводку, кэшируя данные поставщика
type Service struct {
	Provider service.IAstroProvider
	Cache    cache.Cache
	Log      *slog.Logger

	group singleflight.Group
	ttl   time.Duration
	now   func() time.Time
}

func New(provider service.IAstroProvider, c cache.Cache, log *slog.Logger) *Service {
	return &Service{
		Provider: provider,
		Cache:    c,
		Log:      log,
		ttl:      moonDataTTL,
		now:      time.Now,
	}
}
