package registration

import (
	"strings"
	"time"

	"github.com/vosstorgg/dailybot/internal/usecases/registration/texts"
)

// Валидаторы этапов. Чистые функции: некорректный ввод - это всегда
// типизированный результат с текстом для пользователя, не ошибка.

// birthDateLayouts форматы даты рождения, пробуются по порядку.
// Ненулевые поля дня и месяца принимают и "05.03", и "5.3".
var birthDateLayouts = []string{
	"2.1.2006",
	"2/1/2006",
	"2-1-2006",
	"2006-1-2",
}

// timeOfDayLayouts форматы времени, пробуются по порядку.
// Минуты без ведущего нуля тоже принимаются: "9:5" -> "09:05".
var timeOfDayLayouts = []string{
	"15:4",
	"15.4",
	"15-4",
}

// unknownTimeTokens ответы, означающие "время рождения неизвестно"
var unknownTimeTokens = []string{
	"не знаю",
	"незнаю",
	"нет",
	"неизвестно",
}

// unknownBirthTime подставное время при неизвестном времени рождения
const unknownBirthTime = "12:00"

// validationResult результат валидации одного этапа
type validationResult struct {
	Valid  bool
	Reason string // текст для пользователя при Valid == false
}

func valid() validationResult {
	return validationResult{Valid: true}
}

func invalid(reason string) validationResult {
	return validationResult{Reason: reason}
}

// parseBirthDate парсит дату рождения, пробуя форматы по порядку,
// и проверяет диапазон: не раньше minYear и не в будущем
func parseBirthDate(text string, minYear int, now time.Time) (time.Time, validationResult) {
	text = strings.TrimSpace(text)

	var birthDate time.Time
	parsed := false
	for _, layout := range birthDateLayouts {
		if d, err := time.Parse(layout, text); err == nil {
			birthDate = d
			parsed = true
			break
		}
	}

	if !parsed {
		return time.Time{}, invalid(texts.InvalidBirthDateFormat)
	}

	if birthDate.Year() < minYear || birthDate.After(now) {
		return time.Time{}, invalid(texts.InvalidBirthDateRange)
	}

	return birthDate, valid()
}

// parseTimeOfDay парсит время суток, пробуя форматы по порядку.
// Возвращает нормализованное значение HH:MM.
func parseTimeOfDay(text string, reason string) (string, validationResult) {
	text = strings.TrimSpace(text)

	for _, layout := range timeOfDayLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t.Format("15:04"), valid()
		}
	}

	return "", invalid(reason)
}

// isUnknownTimeToken проверяет, означает ли ответ "не знаю" (без учёта регистра)
func isUnknownTimeToken(text string) bool {
	text = strings.ToLower(strings.TrimSpace(text))
	for _, token := range unknownTimeTokens {
		if text == token {
			return true
		}
	}
	return false
}

// validateName проверяет имя: не пустое и не из одних пробелов
func validateName(text string) (string, validationResult) {
	name := strings.TrimSpace(text)
	if name == "" {
		return "", invalid(texts.InvalidName)
	}
	return name, valid()
}

// validatePlace проверяет название места: минимум 2 символа после обрезки
func validatePlace(text string, reason string) (string, validationResult) {
	place := strings.TrimSpace(text)
	if len([]rune(place)) < 2 {
		return "", invalid(reason)
	}
	return place, valid()
}
