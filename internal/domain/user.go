package domain

import (
	"time"

	"github.com/google/uuid"
)

// RegistrationStep этап регистрации пользователя.
// Закрытый набор значений, порядок happy-path фиксирован:
// not_started -> name -> birth_date -> birth_time -> birth_place -> current_location -> forecast_time -> completed
type RegistrationStep string

const (
	StepNotStarted      RegistrationStep = "not_started"
	StepName            RegistrationStep = "name"
	StepBirthDate       RegistrationStep = "birth_date"
	StepBirthTime       RegistrationStep = "birth_time"
	StepBirthPlace      RegistrationStep = "birth_place"
	StepCurrentLocation RegistrationStep = "current_location"
	StepForecastTime    RegistrationStep = "forecast_time"
	StepCompleted       RegistrationStep = "completed"
)

// IsValid проверяет, что значение входит в закрытый набор этапов
func (s RegistrationStep) IsValid() bool {
	switch s {
	case StepNotStarted, StepName, StepBirthDate, StepBirthTime,
		StepBirthPlace, StepCurrentLocation, StepForecastTime, StepCompleted:
		return true
	}
	return false
}

// Next возвращает следующий этап happy-path
func (s RegistrationStep) Next() RegistrationStep {
	switch s {
	case StepNotStarted:
		return StepName
	case StepName:
		return StepBirthDate
	case StepBirthDate:
		return StepBirthTime
	case StepBirthTime:
		return StepBirthPlace
	case StepBirthPlace:
		return StepCurrentLocation
	case StepCurrentLocation:
		return StepForecastTime
	case StepForecastTime:
		return StepCompleted
	}
	return StepCompleted
}

// LocationKind тип текущего местоположения пользователя
type LocationKind string

const (
	LocationCity        LocationKind = "city"
	LocationCoordinates LocationKind = "coordinates"
)

// User профиль пользователя бота.
// Поля регистрации заполняются по одному на каждый этап,
// registration_complete == true только при registration_step == completed.
type User struct {
	ID                   uuid.UUID        `json:"id" db:"id"`
	TelegramUserID       int64            `json:"telegram_user_id" db:"tg_id"`
	Name                 *string          `json:"name,omitempty" db:"name"`
	BirthDate            *time.Time       `json:"birth_date,omitempty" db:"birth_date"`
	BirthTime            *string          `json:"birth_time,omitempty" db:"birth_time"` // HH:MM
	BirthTimeUnknown     bool             `json:"birth_time_unknown" db:"birth_time_unknown"`
	BirthPlace           *string          `json:"birth_place,omitempty" db:"birth_place"`
	LocationKind         *LocationKind    `json:"location_kind,omitempty" db:"location_kind"`
	LocationCity         *string          `json:"location_city,omitempty" db:"location_city"`
	LocationLat          *float64         `json:"location_lat,omitempty" db:"location_lat"`
	LocationLon          *float64         `json:"location_lon,omitempty" db:"location_lon"`
	ForecastTime         *string          `json:"forecast_time,omitempty" db:"forecast_time"` // HH:MM
	RegistrationStep     RegistrationStep `json:"registration_step" db:"registration_step"`
	RegistrationComplete bool             `json:"registration_complete" db:"registration_complete"`
	FirstSeen            time.Time        `json:"first_seen" db:"first_seen"`
	RegisteredAt         *time.Time       `json:"registered_at,omitempty" db:"registered_at"`
	LastActivity         *time.Time       `json:"last_activity,omitempty" db:"last_activity"`
}

// SetCity устанавливает текущее местоположение по названию города
func (u *User) SetCity(city string) {
	kind := LocationCity
	u.LocationKind = &kind
	u.LocationCity = &city
	u.LocationLat = nil
	u.LocationLon = nil
}

// SetCoordinates устанавливает текущее местоположение по геолокации
func (u *User) SetCoordinates(lat, lon float64) {
	kind := LocationCoordinates
	u.LocationKind = &kind
	u.LocationCity = nil
	u.LocationLat = &lat
	u.LocationLon = &lon
}
