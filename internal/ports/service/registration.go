package service

import (
	"context"

	"github.com/vosstorgg/dailybot/internal/domain"
)

// IRegistrationService интерфейс конечного автомата регистрации
type IRegistrationService interface {
	HandleEvent(ctx context.Context, event *domain.InboundEvent) (*domain.Reply, error)
}
