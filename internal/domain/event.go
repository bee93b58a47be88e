package domain

// GeoPoint координаты геолокации
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// InboundEvent входящее событие от транспортного слоя.
// Активная нагрузка - либо Text, либо Location; если присланы оба,
// геолокация имеет приоритет на этапах, которые её принимают.
type InboundEvent struct {
	TelegramUserID int64     `json:"userId"`
	Text           string    `json:"text,omitempty"`
	Location       *GeoPoint `json:"geolocation,omitempty"`
}

// HasLocation проверяет наличие геолокации в событии
func (e *InboundEvent) HasLocation() bool {
	return e.Location != nil
}

// Reply ответ ядра транспортному слою
type Reply struct {
	Text            string `json:"promptText"`
	RequestLocation bool   `json:"requestLocation,omitempty"`
	Completed       bool   `json:"completed,omitempty"`
	Err             string `json:"error,omitempty"`
}
