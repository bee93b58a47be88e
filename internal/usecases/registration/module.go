package registration

import (
	"log/slog"
	"time"

	"github.com/vosstorgg/dailybot/internal/pkg/userlock"
	"github.com/vosstorgg/dailybot/internal/ports/repository"
	"github.com/vosstorgg/dailybot/internal/ports/service"
)

const defaultMinBirthYear = 1900

// Config настройки конечного автомата регистрации
type Config struct {
	MinBirthYear int `envconfig:"MIN_BIRTH_YEAR" default:"1900"`
}

// Service конечный автомат регистрации пользователя.
// Все операции для одного пользователя сериализуются через Locks,
// поэтому два события одного пользователя применяются строго по порядку.
type Service struct {
	UserRepo     repository.IUserRepo
	ActivityRepo repository.IActivityRepo
	Events       service.IEventPublisher // может быть nil, публикация не обязательна
	Locks        *userlock.Keyed
	Log          *slog.Logger
	MinBirthYear int

	now func() time.Time
}

// New создаёт новый сервис регистрации
func New(
	userRepo repository.IUserRepo,
	activityRepo repository.IActivityRepo,
	events service.IEventPublisher,
	log *slog.Logger,
	cfg *Config,
) *Service {
	minBirthYear := defaultMinBirthYear
	if cfg != nil && cfg.MinBirthYear > 0 {
		minBirthYear = cfg.MinBirthYear
	}

	return &Service{
		UserRepo:     userRepo,
		ActivityRepo: activityRepo,
		Events:       events,
		Locks:        userlock.New(),
		Log:          log,
		MinBirthYear: minBirthYear,
		now:          time.Now,
	}
}
