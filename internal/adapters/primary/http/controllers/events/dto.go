package eventsController

import "github.com/vosstorgg/dailybot/internal/domain"

// ProcessEventRequest входящее событие диалога от транспортного слоя
type ProcessEventRequest struct {
	TelegramUserID int64            `json:"userId" binding:"required"`
	Text           string           `json:"text"`
	Location       *domain.GeoPoint `json:"geolocation,omitempty"`
}

func (r *ProcessEventRequest) toDomain() *domain.InboundEvent {
	return &domain.InboundEvent{
		TelegramUserID: r.TelegramUserID,
		Text:           r.Text,
		Location:       r.Location,
	}
}
