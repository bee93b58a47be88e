package astro

import (
	"context"
	"testing"

	"github.com/vosstorgg/dailybot/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailySummary_FullMoon(t *testing.T) {
	provider := &fakeProvider{data: fullMoon()}
	svc := newTestService(provider)

	summary, err := svc.DailySummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "2025-06-15", summary.Date)
	assert.Equal(t, "Full Moon", summary.Moon.Phase)
	assert.Equal(t, 98, summary.Moon.Illumination)
	assert.Contains(t, summary.Moon.Description, "Полнолуние")
	assert.Contains(t, summary.Moon.Description, "98%")
	assert.Contains(t, summary.GeneralEnergy, "Пиковая энергия")
	require.Len(t, summary.Recommendations, 3)
	assert.False(t, summary.Cached)

	// Повторный вызов отдаёт данные из кэша
	summary, err = svc.DailySummary(context.Background())
	require.NoError(t, err)
	assert.True(t, summary.Cached)
}

func TestDailySummary_ProviderUnavailable(t *testing.T) {
	provider := &fakeProvider{data: fullMoon(), fail: true}
	svc := newTestService(provider)

	_, err := svc.DailySummary(context.Background())
	assert.ErrorIs(t, err, domain.ErrProviderUnavailable)
}

func TestMoonDescription_KnownPhases(t *testing.T) {
	cases := map[string]string{
		"New Moon":        "🌑 Новолуние",
		"Waxing Crescent": "🌒 Растущая Луна",
		"First Quarter":   "🌓 Первая четверть",
		"Waxing Gibbous":  "🌔 Растущая Луна",
		"Full Moon":       "🌕 Полнолуние",
		"Waning Gibbous":  "🌖 Убывающая Луна",
		"Last Quarter":    "🌗 Последняя четверть",
		"Waning Crescent": "🌘 Убывающая Луна",
	}

	for phase, wantPrefix := range cases {
		got := moonDescription(&domain.MoonData{Phase: phase, Illumination: 50})
		assert.Contains(t, got, wantPrefix, "phase %q", phase)
	}
}

func TestMoonDescription_UnknownPhaseFallsBack(t *testing.T) {
	got := moonDescription(&domain.MoonData{Phase: "Supermoon", Illumination: 77})
	assert.Equal(t, "🌙 Supermoon (77%)", got)
}

func TestGeneralEnergy(t *testing.T) {
	assert.Contains(t, generalEnergy(&domain.MoonData{Phase: "New Moon", Illumination: 0}), "обновления")
	assert.Contains(t, generalEnergy(&domain.MoonData{Phase: "Waxing Crescent", Illumination: 20}), "Растущая энергия")
	assert.Contains(t, generalEnergy(&domain.MoonData{Phase: "Full Moon", Illumination: 100}), "Пиковая энергия")
	// Высокая освещённость даёт пиковую энергию даже вне полнолуния
	assert.Contains(t, generalEnergy(&domain.MoonData{Phase: "Waxing Gibbous", Illumination: 95}), "Пиковая энергия")
	assert.Contains(t, generalEnergy(&domain.MoonData{Phase: "Waning Gibbous", Illumination: 60}), "Убывающая энергия")
	assert.Contains(t, generalEnergy(&domain.MoonData{Phase: "First Quarter", Illumination: 50}), "Стабильная энергия")
}

func TestRecommendations(t *testing.T) {
	newMoon := recommendations(&domain.MoonData{Phase: "New Moon"})
	require.Len(t, newMoon, 3)
	assert.Contains(t, newMoon[0], "цели")

	waxing := recommendations(&domain.MoonData{Phase: "Waxing Crescent"})
	require.Len(t, waxing, 3)
	assert.Contains(t, waxing[0], "проекты")

	full := recommendations(&domain.MoonData{Phase: "Full Moon"})
	require.Len(t, full, 3)
	assert.Contains(t, full[0], "Завершайте")

	waning := recommendations(&domain.MoonData{Phase: "Waning Gibbous"})
	require.Len(t, waning, 3)
	assert.Contains(t, waning[0], "лишнего")
}
