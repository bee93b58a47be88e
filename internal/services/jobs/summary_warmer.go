package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/vosstorgg/dailybot/internal/ports/service"
)

const summaryWarmerName = "summary-warmer"

// SummaryWarmer джоба для прогрева кэша астро-данных, каждый день в 05:00 по Мск
type SummaryWarmer struct {
	astroService service.IAstroService
	log          *slog.Logger
	location     *time.Location
}

// NewSummaryWarmer создаёт новую джобу прогрева дневной сводки
func NewSummaryWarmer(astroService service.IAstroService, log *slog.Logger) *SummaryWarmer {
	location, _ := time.LoadLocation("Europe/Moscow")
	if location == nil {
		location = time.UTC
	}

	return &SummaryWarmer{
		astroService: astroService,
		log:          log,
		location:     location,
	}
}

func (j *SummaryWarmer) Name() string {
	return summaryWarmerName
}

// NextRun вычисляет следующее время запуска
func (j *SummaryWarmer) NextRun(now time.Time) time.Time {
	nowMoscow := now.In(j.location)

	next := time.Date(nowMoscow.Year(), nowMoscow.Month(), nowMoscow.Day(), 5, 0, 0, 0, j.location)
	if next.Before(nowMoscow) || next.Equal(nowMoscow) {
		next = next.Add(24 * time.Hour)
	}
	return next
}

// Run прогревает кэш данных о Луне на текущие сутки
func (j *SummaryWarmer) Run(ctx context.Context) error {
	summary, err := j.astroService.DailySummary(ctx)
	if err != nil {
		return err
	}

	j.log.Info("daily summary warmed",
		"date", summary.Date,
		"phase", summary.Moon.Phase,
		"cached", summary.Cached,
	)

	return nil
}
