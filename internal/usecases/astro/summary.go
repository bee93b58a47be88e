package astro

import (
	"context"
	"fmt"
	"strings"

	"github.com/vosstorgg/dailybot/internal/domain"
)

// DailySummary собирает общую астрономическую сводку дня
func (s *Service) DailySummary(ctx context.Context) (*domain.DailySummary, error) {
	moon, cached, err := s.moonData(ctx)
	if err != nil {
		return nil, err
	}

	summary := &domain.DailySummary{
		Date: moon.Date,
		Moon: domain.MoonInfo{
			Phase:        moon.Phase,
			Illumination: moon.Illumination,
			Description:  moonDescription(moon),
		},
		GeneralEnergy:   generalEnergy(moon),
		Recommendations: recommendations(moon),
		Cached:          cached,
	}

	s.Log.Info("generated astro summary",
		"date", summary.Date,
		"phase", moon.Phase,
		"cached", cached,
	)

	return summary, nil
}

func moonDescription(moon *domain.MoonData) string {
	descriptions := map[string]string{
		"New Moon":        "🌑 Новолуние (%d%%) - время новых начинаний и планирования",
		"Waxing Crescent": "🌒 Растущая Луна (%d%%) - период активного роста и развития",
		"First Quarter":   "🌓 Первая четверть (%d%%) - время принятия решений и действий",
		"Waxing Gibbous":  "🌔 Растущая Луна (%d%%) - период накопления энергии",
		"Full Moon":       "🌕 Полнолуние (%d%%) - пик энергии и эмоций",
		"Waning Gibbous":  "🌖 Убывающая Луна (%d%%) - время благодарности и отдачи",
		"Last Quarter":    "🌗 Последняя четверть (%d%%) - период очищения и освобождения",
		"Waning Crescent": "🌘 Убывающая Луна (%d%%) - время отдыха и подготовки",
	}

	format, ok := descriptions[moon.Phase]
	if !ok {
		return fmt.Sprintf("🌙 %s (%d%%)", moon.Phase, moon.Illumination)
	}
	return fmt.Sprintf(format, moon.Illumination)
}

func generalEnergy(moon *domain.MoonData) string {
	switch {
	case strings.Contains(moon.Phase, "New Moon"):
		return "Энергия обновления и свежих возможностей. Хорошее время для медитации и планирования."
	case strings.Contains(moon.Phase, "Waxing") && moon.Illumination < 50:
		return "Растущая энергия способствует новым проектам и активным действиям."
	case strings.Contains(moon.Phase, "Full Moon") || moon.Illumination > 90:
		return "Пиковая энергия! Время завершения дел и ярких эмоций. Будьте внимательны к чувствам."
	case strings.Contains(moon.Phase, "Waning"):
		return "Убывающая энергия помогает отпустить лишнее и сосредоточиться на важном."
	default:
		return "Стабильная энергия. Хорошее время для повседневных дел и размышлений."
	}
}

func recommendations(moon *domain.MoonData) []string {
	switch {
	case strings.Contains(moon.Phase, "New Moon"):
		return []string{
			"🎯 Поставьте новые цели",
			"🧘 Практикуйте медитацию",
			"📝 Ведите дневник желаний",
		}
	case strings.Contains(moon.Phase, "Waxing"):
		return []string{
			"🚀 Начинайте новые проекты",
			"💪 Активно действуйте",
			"🌱 Развивайте навыки",
		}
	case strings.Contains(moon.Phase, "Full Moon"):
		return []string{
			"✨ Завершайте начатые дела",
			"❤️ Проявляйте благодарность",
			"🌊 Следите за эмоциями",
		}
	default:
		return []string{
			"🧹 Избавьтесь от лишнего",
			"🤝 Помогайте другим",
			"😴 Больше отдыхайте",
		}
	}
}
