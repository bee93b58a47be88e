package astro

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vosstorgg/dailybot/internal/domain"
	"github.com/vosstorgg/dailybot/internal/ports/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	mu    sync.Mutex
	calls int32
	delay time.Duration
	fail  bool
	data  *domain.MoonData
}

func (p *fakeProvider) GetAstronomy(ctx context.Context, date time.Time) (*domain.MoonData, error) {
	atomic.AddInt32(&p.calls, 1)
	if p.delay > 0 {
		time.Sleep(p.delay)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return nil, domain.ErrProviderUnavailable
	}
	data := *p.data
	return &data, nil
}

func (p *fakeProvider) setFail(fail bool) {
	p.mu.Lock()
	p.fail = fail
	p.mu.Unlock()
}

func newTestService(provider *fakeProvider) *Service {
	svc := New(provider, cache.NewInMemory(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	svc.now = func() time.Time {
		return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

func fullMoon() *domain.MoonData {
	return &domain.MoonData{
		Phase:        "Full Moon",
		Illumination: 98,
		Date:         "2025-06-15",
		Source:       "weatherapi.com",
	}
}

func TestMoonData_ConcurrentMissesCollapseToSingleFetch(t *testing.T) {
	provider := &fakeProvider{data: fullMoon(), delay: 50 * time.Millisecond}
	svc := newTestService(provider)

	const callers = 10

	results := make([]*domain.MoonData, callers)
	errs := make([]error, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			data, _, err := svc.moonData(context.Background())
			results[i] = data
			errs[i] = err
		}(i)
	}
	wg.Wait()

	// Один запрос к поставщику, все вызовы получили одинаковый результат
	assert.Equal(t, int32(1), atomic.LoadInt32(&provider.calls))
	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		require.NotNil(t, results[i])
		assert.Equal(t, "Full Moon", results[i].Phase)
		assert.Equal(t, 98, results[i].Illumination)
	}
}

func TestMoonData_SecondCallServedFromCache(t *testing.T) {
	provider := &fakeProvider{data: fullMoon()}
	svc := newTestService(provider)
	ctx := context.Background()

	_, cached, err := svc.moonData(ctx)
	require.NoError(t, err)
	assert.False(t, cached)

	data, cached, err := svc.moonData(ctx)
	require.NoError(t, err)
	assert.True(t, cached)
	assert.Equal(t, "Full Moon", data.Phase)

	assert.Equal(t, int32(1), atomic.LoadInt32(&provider.calls))
}

func TestMoonData_FailedFetchIsNotCached(t *testing.T) {
	provider := &fakeProvider{data: fullMoon(), fail: true}
	svc := newTestService(provider)
	ctx := context.Background()

	_, _, err := svc.moonData(ctx)
	require.ErrorIs(t, err, domain.ErrProviderUnavailable)

	// Поставщик восстановился: следующий вызов идёт к нему снова
	provider.setFail(false)
	data, cached, err := svc.moonData(ctx)
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, "Full Moon", data.Phase)

	assert.Equal(t, int32(2), atomic.LoadInt32(&provider.calls))
}

func TestClearCache_ForcesRefetch(t *testing.T) {
	provider := &fakeProvider{data: fullMoon()}
	svc := newTestService(provider)
	ctx := context.Background()

	_, _, err := svc.moonData(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.ClearCache(ctx))

	_, cached, err := svc.moonData(ctx)
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, int32(2), atomic.LoadInt32(&provider.calls))
}

func TestMoonDataKey_IsDateScoped(t *testing.T) {
	day1 := time.Date(2025, 6, 15, 23, 59, 0, 0, time.UTC)
	day2 := time.Date(2025, 6, 16, 0, 1, 0, 0, time.UTC)

	assert.Equal(t, "moon_phase:2025-06-15", moonDataKey(day1))
	assert.Equal(t, "moon_phase:2025-06-16", moonDataKey(day2))
	assert.NotEqual(t, moonDataKey(day1), moonDataKey(day2))
}
