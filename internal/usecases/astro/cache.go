package astro

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/vosstorgg/dailybot/internal/domain"
	"github.com/vosstorgg/dailybot/internal/ports/cache"
)

func moonDataKey(date time.Time) string {
	return fmt.Sprintf("moon_phase:%s", date.Format("2006-01-02"))
}

// moonData возвращает данные о Луне на сегодня из кэша или от поставщика.
// Конкурентные промахи по одному ключу схлопываются в один запрос к поставщику.
// Неудачный запрос никогда не кэшируется, следующий вызов попробует снова.
func (s *Service) moonData(ctx context.Context) (*domain.MoonData, bool, error) {
	date := s.now()
	key := moonDataKey(date)

	if data, ok := s.fromCache(ctx, key); ok {
		return data, true, nil
	}

	v, err, shared := s.group.Do(key, func() (interface{}, error) {
		// Повторная проверка: другой вызов мог успеть записать ключ
		if data, ok := s.fromCache(ctx, key); ok {
			return data, nil
		}

		data, err := s.Provider.GetAstronomy(ctx, date)
		if err != nil {
			return nil, err
		}

		raw, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal moon data: %w", err)
		}
		if err := s.Cache.Set(ctx, key, string(raw), s.ttl); err != nil {
			// Кэш недоступен - данные всё равно отдаём
			s.Log.Warn("failed to cache moon data",
				"error", err,
				"key", key,
			)
		}

		s.Log.Info("fetched moon phase data",
			"phase", data.Phase,
			"illumination", data.Illumination,
			"date", data.Date,
		)

		return data, nil
	})
	if err != nil {
		s.Log.Error("failed to fetch moon data",
			"error", err,
			"key", key,
			"shared", shared,
		)
		return nil, false, domain.WrapBusinessError(err)
	}

	return v.(*domain.MoonData), false, nil
}

func (s *Service) fromCache(ctx context.Context, key string) (*domain.MoonData, bool) {
	raw, err := s.Cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrKeyNotFound) {
			s.Log.Warn("failed to read moon data from cache",
				"error", err,
				"key", key,
			)
		}
		return nil, false
	}

	var data domain.MoonData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		// Повреждённая запись не должна блокировать обновление
		s.Log.Warn("corrupted moon data in cache",
			"error", err,
			"key", key,
		)
		return nil, false
	}

	return &data, true
}

// ClearCache удаляет все записи астро-кэша
func (s *Service) ClearCache(ctx context.Context) error {
	if err := s.Cache.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear astro cache: %w", err)
	}
	s.Log.Info("astro cache cleared")
	return nil
}
