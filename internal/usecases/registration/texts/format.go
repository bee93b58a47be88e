package texts

import (
	"fmt"
	"strings"

	"github.com/vosstorgg/dailybot/internal/domain"
)

// FormatNameAccepted форматирует ответ на принятое имя
func FormatNameAccepted(name string) string {
	return fmt.Sprintf(NameAccepted, name)
}

// FormatBirthDateAccepted форматирует ответ на принятую дату рождения
func FormatBirthDateAccepted(date string) string {
	return fmt.Sprintf(BirthDateAccepted, date)
}

// FormatBirthTimeAccepted форматирует ответ на принятое время рождения
func FormatBirthTimeAccepted(timeDisplay string) string {
	return fmt.Sprintf(BirthTimeAccepted, timeDisplay)
}

// FormatBirthPlaceAccepted форматирует ответ на принятое место рождения
func FormatBirthPlaceAccepted(place string) string {
	return fmt.Sprintf(BirthPlaceAccepted, place)
}

// FormatLocationAccepted форматирует ответ на принятое местоположение
func FormatLocationAccepted(locationDisplay string) string {
	return fmt.Sprintf(LocationAccepted, locationDisplay)
}

// FormatCompleted форматирует финальное сообщение со сводкой профиля
func FormatCompleted(user *domain.User) string {
	return fmt.Sprintf(Completed, FormatProfileSummary(user))
}

// FormatLocationDisplay форматирует местоположение для вывода пользователю
func FormatLocationDisplay(user *domain.User) string {
	if user.LocationKind == nil {
		return "не указано"
	}
	switch *user.LocationKind {
	case domain.LocationCoordinates:
		if user.LocationLat != nil && user.LocationLon != nil {
			return fmt.Sprintf("📍 Координаты: %.4f, %.4f", *user.LocationLat, *user.LocationLon)
		}
		return "📍 По геолокации"
	case domain.LocationCity:
		if user.LocationCity != nil {
			return fmt.Sprintf("🏙️ Город: %s", *user.LocationCity)
		}
	}
	return "не указано"
}

// FormatProfileSummary форматирует сводку профиля пользователя
func FormatProfileSummary(user *domain.User) string {
	var b strings.Builder
	b.WriteString("📋 Ваши данные:\n")

	name := "Пользователь"
	if user.Name != nil {
		name = *user.Name
	}
	b.WriteString(fmt.Sprintf("👤 Имя: %s\n", name))

	birthDate := "не указана"
	if user.BirthDate != nil {
		birthDate = user.BirthDate.Format("02.01.2006")
	}
	b.WriteString(fmt.Sprintf("📅 Дата рождения: %s\n", birthDate))

	birthTime := "не указано"
	if user.BirthTime != nil {
		birthTime = *user.BirthTime
		if user.BirthTimeUnknown {
			birthTime += " (приблизительно)"
		}
	}
	b.WriteString(fmt.Sprintf("⏰ Время рождения: %s\n", birthTime))

	birthPlace := "не указано"
	if user.BirthPlace != nil {
		birthPlace = *user.BirthPlace
	}
	b.WriteString(fmt.Sprintf("🏙️ Место рождения: %s\n", birthPlace))

	locationInfo := "не указано"
	if user.LocationKind != nil {
		switch *user.LocationKind {
		case domain.LocationCoordinates:
			locationInfo = "📍 По геолокации"
		case domain.LocationCity:
			if user.LocationCity != nil {
				locationInfo = fmt.Sprintf("🏙️ %s", *user.LocationCity)
			}
		}
	}
	b.WriteString(fmt.Sprintf("📍 Текущее местоположение: %s\n", locationInfo))

	forecastTime := "не указано"
	if user.ForecastTime != nil {
		forecastTime = *user.ForecastTime
	}
	b.WriteString(fmt.Sprintf("🔔 Время прогнозов: %s", forecastTime))

	return b.String()
}
