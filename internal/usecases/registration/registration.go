package registration

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vosstorgg/dailybot/internal/domain"
	"github.com/vosstorgg/dailybot/internal/usecases/registration/texts"

	"github.com/google/uuid"
)

const (
	restartCommand = "/start"
	profileCommand = "/profile"
)

// maxLoggedTextLen сколько символов исходного сообщения попадает в журнал
const maxLoggedTextLen = 100

// stepResult результат применения одного этапа к профилю
type stepResult struct {
	reply    domain.Reply
	advanced bool // валидация прошла, поля изменены и этап сдвинут
}

func retryStep(reason string) stepResult {
	return stepResult{reply: domain.Reply{Text: reason}}
}

// HandleEvent обрабатывает входящее событие: читает текущий этап из профиля,
// валидирует ввод и атомарно продвигает этап. Неудачная валидация не меняет
// состояние и возвращает повторный запрос того же этапа.
func (s *Service) HandleEvent(ctx context.Context, event *domain.InboundEvent) (*domain.Reply, error) {
	if event == nil {
		return nil, fmt.Errorf("event is nil")
	}

	s.Locks.Lock(event.TelegramUserID)
	defer s.Locks.Unlock(event.TelegramUserID)

	user, err := s.UserRepo.GetByTelegramID(ctx, event.TelegramUserID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		s.Log.Error("failed to load user",
			"error", err,
			"telegram_user_id", event.TelegramUserID,
		)
		return &domain.Reply{Text: texts.PersistenceRetry, Err: "persistence"}, nil
	}

	// Первое событие от нового идентификатора - создаём профиль
	if user == nil {
		user, err = s.createUser(ctx, event.TelegramUserID)
		if err != nil {
			return &domain.Reply{Text: texts.PersistenceRetry, Err: "persistence"}, nil
		}
	}

	if isRestart(event.Text) {
		return s.restart(ctx, user)
	}

	if isProfileRequest(event.Text) {
		return s.profile(ctx, user)
	}

	// Завершённая регистрация терминальна до явного рестарта
	if user.RegistrationStep == domain.StepCompleted {
		if err := s.UserRepo.UpdateLastActivity(ctx, user.ID); err != nil {
			s.Log.Warn("failed to refresh last activity",
				"error", err,
				"user_id", user.ID,
			)
		}
		return &domain.Reply{Text: texts.AlreadyRegistered}, nil
	}

	// Защитный случай: в хранилище оказалось неизвестное значение этапа
	if !user.RegistrationStep.IsValid() {
		return s.recoverUnknownStep(ctx, user)
	}

	prevStep := user.RegistrationStep
	result := s.applyStep(user, event)

	if !result.advanced {
		if err := s.UserRepo.UpdateLastActivity(ctx, user.ID); err != nil {
			s.Log.Warn("failed to refresh last activity",
				"error", err,
				"user_id", user.ID,
			)
		}
		return &result.reply, nil
	}

	now := s.now()
	user.LastActivity = &now
	completed := user.RegistrationStep == domain.StepCompleted
	if completed {
		user.RegistrationComplete = true
		user.RegisteredAt = &now
	}

	// Единственная точка записи: поля и указатель этапа уходят одним запросом,
	// при ошибке профиль в хранилище остаётся на прежнем этапе
	if err := s.UserRepo.Update(ctx, user); err != nil {
		s.Log.Error("failed to persist step advance",
			"error", err,
			"user_id", user.ID,
			"step", prevStep,
		)
		return &domain.Reply{Text: texts.PersistenceRetry, Err: "persistence"}, nil
	}

	s.logActivity(ctx, user, prevStep, event, completed)

	if completed {
		s.publishCompleted(ctx, user)
		result.reply.Text = texts.FormatCompleted(user)
		result.reply.Completed = true
	}

	return &result.reply, nil
}

// applyStep диспетчеризует событие в валидатор текущего этапа.
// Мутирует профиль только при успешной валидации.
func (s *Service) applyStep(user *domain.User, event *domain.InboundEvent) stepResult {
	switch user.RegistrationStep {
	case domain.StepNotStarted:
		// Ввод не расходуется: приветствуем и спрашиваем имя
		user.RegistrationStep = user.RegistrationStep.Next()
		return stepResult{
			reply:    domain.Reply{Text: texts.Welcome},
			advanced: true,
		}

	case domain.StepName:
		name, res := validateName(event.Text)
		if !res.Valid {
			return retryStep(res.Reason)
		}
		user.Name = &name
		user.RegistrationStep = user.RegistrationStep.Next()
		return stepResult{
			reply:    domain.Reply{Text: texts.FormatNameAccepted(name)},
			advanced: true,
		}

	case domain.StepBirthDate:
		birthDate, res := parseBirthDate(event.Text, s.MinBirthYear, s.now())
		if !res.Valid {
			return retryStep(res.Reason)
		}
		user.BirthDate = &birthDate
		user.RegistrationStep = user.RegistrationStep.Next()
		return stepResult{
			reply:    domain.Reply{Text: texts.FormatBirthDateAccepted(birthDate.Format("02.01.2006"))},
			advanced: true,
		}

	case domain.StepBirthTime:
		var display string
		if isUnknownTimeToken(event.Text) {
			birthTime := unknownBirthTime
			user.BirthTime = &birthTime
			user.BirthTimeUnknown = true
			display = texts.BirthTimeUnknownDisplay
		} else {
			birthTime, res := parseTimeOfDay(event.Text, texts.InvalidBirthTime)
			if !res.Valid {
				return retryStep(res.Reason)
			}
			user.BirthTime = &birthTime
			user.BirthTimeUnknown = false
			display = birthTime
		}
		user.RegistrationStep = user.RegistrationStep.Next()
		return stepResult{
			reply:    domain.Reply{Text: texts.FormatBirthTimeAccepted(display)},
			advanced: true,
		}

	case domain.StepBirthPlace:
		place, res := validatePlace(event.Text, texts.InvalidBirthPlace)
		if !res.Valid {
			return retryStep(res.Reason)
		}
		user.BirthPlace = &place
		user.RegistrationStep = user.RegistrationStep.Next()
		return stepResult{
			reply: domain.Reply{
				Text:            texts.FormatBirthPlaceAccepted(place),
				RequestLocation: true,
			},
			advanced: true,
		}

	case domain.StepCurrentLocation:
		// Геолокация имеет приоритет над текстом и принимается всегда
		if event.HasLocation() {
			user.SetCoordinates(event.Location.Lat, event.Location.Lon)
		} else {
			city, res := validatePlace(event.Text, texts.InvalidLocation)
			if !res.Valid {
				return retryStep(res.Reason)
			}
			user.SetCity(city)
		}
		user.RegistrationStep = user.RegistrationStep.Next()
		return stepResult{
			reply:    domain.Reply{Text: texts.FormatLocationAccepted(texts.FormatLocationDisplay(user))},
			advanced: true,
		}

	case domain.StepForecastTime:
		forecastTime, res := parseTimeOfDay(event.Text, texts.InvalidForecastTime)
		if !res.Valid {
			return retryStep(res.Reason)
		}
		user.ForecastTime = &forecastTime
		user.RegistrationStep = user.RegistrationStep.Next()
		// Финальный текст со сводкой собирается после успешной записи
		return stepResult{
			reply:    domain.Reply{},
			advanced: true,
		}
	}

	// Недостижимо: completed и неизвестные значения отфильтрованы в HandleEvent
	return retryStep(texts.UnknownStepRestart)
}

// restart переводит пользователя на этап NAME, сбрасывая флаг завершения.
// Ранее сохранённые поля не стираются - они перезаписываются по одному
// на новом проходе регистрации.
func (s *Service) restart(ctx context.Context, user *domain.User) (*domain.Reply, error) {
	wasComplete := user.RegistrationComplete

	now := s.now()
	user.RegistrationStep = domain.StepName
	user.RegistrationComplete = false
	user.RegisteredAt = nil
	user.LastActivity = &now

	if err := s.UserRepo.Update(ctx, user); err != nil {
		s.Log.Error("failed to restart registration",
			"error", err,
			"user_id", user.ID,
		)
		return &domain.Reply{Text: texts.PersistenceRetry, Err: "persistence"}, nil
	}

	actionType := domain.ActionRegistrationStarted
	if wasComplete {
		actionType = domain.ActionRegistrationRestarted
	}
	s.recordAction(ctx, user, actionType, domain.StepName, nil, false)

	s.Log.Info("registration started",
		"user_id", user.ID,
		"telegram_user_id", user.TelegramUserID,
		"restarted", wasComplete,
	)

	return &domain.Reply{Text: texts.Welcome}, nil
}

// profile показывает сохранённые данные пользователя без смены этапа.
// Команда работает на любом этапе: до завершения видны уже собранные поля.
func (s *Service) profile(ctx context.Context, user *domain.User) (*domain.Reply, error) {
	if err := s.UserRepo.UpdateLastActivity(ctx, user.ID); err != nil {
		s.Log.Warn("failed to refresh last activity",
			"error", err,
			"user_id", user.ID,
		)
	}

	s.recordAction(ctx, user, domain.ActionProfileViewed, user.RegistrationStep, nil, false)

	return &domain.Reply{Text: texts.FormatProfileSummary(user)}, nil
}

// recoverUnknownStep единственная ситуация, требующая принудительного
// перезапуска процесса: в профиле оказалось значение этапа вне закрытого набора
func (s *Service) recoverUnknownStep(ctx context.Context, user *domain.User) (*domain.Reply, error) {
	s.Log.Error("unknown registration step in store",
		"user_id", user.ID,
		"step", user.RegistrationStep,
	)

	now := s.now()
	user.RegistrationStep = domain.StepName
	user.RegistrationComplete = false
	user.LastActivity = &now

	if err := s.UserRepo.Update(ctx, user); err != nil {
		s.Log.Error("failed to reset unknown step",
			"error", err,
			"user_id", user.ID,
		)
		return &domain.Reply{Text: texts.PersistenceRetry, Err: "persistence"}, nil
	}

	s.recordAction(ctx, user, domain.ActionRegistrationRestarted, domain.StepName, nil, false)

	return &domain.Reply{
		Text: texts.UnknownStepRestart,
		Err:  domain.ErrUnknownStep.Error(),
	}, nil
}

// createUser создаёт профиль при первом событии от нового идентификатора
func (s *Service) createUser(ctx context.Context, telegramUserID int64) (*domain.User, error) {
	now := s.now()
	user := &domain.User{
		ID:               uuid.New(),
		TelegramUserID:   telegramUserID,
		RegistrationStep: domain.StepNotStarted,
		FirstSeen:        now,
		LastActivity:     &now,
	}

	created, err := s.UserRepo.Upsert(ctx, user)
	if err != nil {
		s.Log.Error("failed to create user",
			"error", err,
			"telegram_user_id", telegramUserID,
		)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.Log.Info("user created",
		"user_id", created.ID,
		"telegram_user_id", telegramUserID,
	)

	return created, nil
}

// logActivity пишет запись журнала об успешном переходе.
// Сбой журнала не должен провалить сам переход, поэтому ошибка только логируется.
func (s *Service) logActivity(ctx context.Context, user *domain.User, step domain.RegistrationStep, event *domain.InboundEvent, completed bool) {
	actionType := domain.ActionRegistrationStep
	if completed {
		actionType = domain.ActionRegistrationCompleted
	}
	if step == domain.StepNotStarted {
		actionType = domain.ActionRegistrationStarted
	}

	var messageText *string
	if event.Text != "" {
		truncated := truncate(event.Text, maxLoggedTextLen)
		messageText = &truncated
	}

	s.recordAction(ctx, user, actionType, step, messageText, event.HasLocation())
}

func (s *Service) recordAction(ctx context.Context, user *domain.User, actionType domain.ActionType, step domain.RegistrationStep, messageText *string, hasLocation bool) {
	action := &domain.UserAction{
		ID:          uuid.New(),
		UserID:      user.ID,
		ActionType:  actionType,
		Step:        step,
		MessageText: messageText,
		HasLocation: hasLocation,
		CreatedAt:   s.now(),
	}
	if err := s.ActivityRepo.Create(ctx, action); err != nil {
		s.Log.Warn("failed to record user action",
			"error", err,
			"user_id", user.ID,
			"action_type", actionType,
		)
	}
}

// publishCompleted отправляет событие завершения регистрации в пайплайн
// прогнозов; сбой публикации не влияет на ответ пользователю
func (s *Service) publishCompleted(ctx context.Context, user *domain.User) {
	if s.Events == nil {
		return
	}
	if err := s.Events.PublishRegistrationCompleted(ctx, user); err != nil {
		s.Log.Warn("failed to publish registration completed event",
			"error", err,
			"user_id", user.ID,
		)
	}
}

func isRestart(text string) bool {
	return strings.TrimSpace(text) == restartCommand
}

func isProfileRequest(text string) bool {
	return strings.TrimSpace(text) == profileCommand
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen])
}
