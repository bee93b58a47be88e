package service

import (
	"context"

	"github.com/vosstorgg/dailybot/internal/domain"
)

// IEventPublisher интерфейс публикации доменных событий для внешних пайплайнов
type IEventPublisher interface {
	PublishRegistrationCompleted(ctx context.Context, user *domain.User) error
	Close() error
}
