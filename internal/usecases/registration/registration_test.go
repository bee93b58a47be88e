package registration

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/vosstorgg/dailybot/internal/domain"
	"github.com/vosstorgg/dailybot/internal/pkg/userlock"
	"github.com/vosstorgg/dailybot/internal/ports/persistence"
	"github.com/vosstorgg/dailybot/internal/usecases/registration/texts"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUserRepo хранит профили в памяти, копируя их на границе,
// чтобы мутации в сервисе не просачивались мимо Update
type fakeUserRepo struct {
	mu         sync.Mutex
	byID       map[uuid.UUID]*domain.User
	byTgID     map[int64]uuid.UUID
	failUpdate bool
	updates    int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:   make(map[uuid.UUID]*domain.User),
		byTgID: make(map[int64]uuid.UUID),
	}
}

func copyUser(u *domain.User) *domain.User {
	c := *u
	return &c
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[user.ID] = copyUser(user)
	r.byTgID[user.TelegramUserID] = user.ID
	return nil
}

func (r *fakeUserRepo) GetByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byTgID[telegramID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return copyUser(r.byID[id]), nil
}

func (r *fakeUserRepo) Upsert(ctx context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id, ok := r.byTgID[user.TelegramUserID]; ok {
		existing := r.byID[id]
		incoming := copyUser(user)
		incoming.ID = existing.ID
		incoming.FirstSeen = existing.FirstSeen
		r.byID[id] = incoming
		return copyUser(incoming), nil
	}
	r.byID[user.ID] = copyUser(user)
	r.byTgID[user.TelegramUserID] = user.ID
	return copyUser(user), nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failUpdate {
		return errors.New("storage unavailable")
	}
	if _, ok := r.byID[user.ID]; !ok {
		return domain.ErrNotFound
	}
	r.byID[user.ID] = copyUser(user)
	r.updates++
	return nil
}

func (r *fakeUserRepo) UpdateLastActivity(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	now := time.Now()
	u.LastActivity = &now
	return nil
}

func (r *fakeUserRepo) WithTransaction(ctx context.Context, fn func(context.Context, persistence.Transaction) error) error {
	return fn(ctx, nil)
}

func (r *fakeUserRepo) CreateTx(ctx context.Context, tx persistence.Transaction, user *domain.User) error {
	return r.Create(ctx, user)
}

func (r *fakeUserRepo) UpdateTx(ctx context.Context, tx persistence.Transaction, user *domain.User) error {
	return r.Update(ctx, user)
}

func (r *fakeUserRepo) GetByTelegramIDTx(ctx context.Context, tx persistence.Transaction, telegramID int64) (*domain.User, error) {
	return r.GetByTelegramID(ctx, telegramID)
}

// stored возвращает текущее состояние профиля для проверок
func (r *fakeUserRepo) stored(t *testing.T, telegramID int64) *domain.User {
	t.Helper()
	u, err := r.GetByTelegramID(context.Background(), telegramID)
	require.NoError(t, err)
	return u
}

type fakeActivityRepo struct {
	mu      sync.Mutex
	actions []*domain.UserAction
	failing bool
}

func (r *fakeActivityRepo) Create(ctx context.Context, action *domain.UserAction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failing {
		return errors.New("activity log unavailable")
	}
	r.actions = append(r.actions, action)
	return nil
}

func (r *fakeActivityRepo) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, a := range r.actions {
		if a.UserID == userID {
			n++
		}
	}
	return n, nil
}

type fakePublisher struct {
	mu        sync.Mutex
	published []*domain.User
}

func (p *fakePublisher) PublishRegistrationCompleted(ctx context.Context, user *domain.User) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, user)
	return nil
}

func (p *fakePublisher) Close() error { return nil }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(users *fakeUserRepo, activity *fakeActivityRepo, publisher *fakePublisher) *Service {
	svc := &Service{
		UserRepo:     users,
		ActivityRepo: activity,
		Locks:        userlock.New(),
		Log:          discardLogger(),
		MinBirthYear: 1900,
		now: func() time.Time {
			return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
		},
	}
	if publisher != nil {
		svc.Events = publisher
	}
	return svc
}

func send(t *testing.T, svc *Service, tgID int64, text string) *domain.Reply {
	t.Helper()
	reply, err := svc.HandleEvent(context.Background(), &domain.InboundEvent{
		TelegramUserID: tgID,
		Text:           text,
	})
	require.NoError(t, err)
	require.NotNil(t, reply)
	return reply
}

func TestHandleEvent_HappyPath(t *testing.T) {
	users := newFakeUserRepo()
	activity := &fakeActivityRepo{}
	publisher := &fakePublisher{}
	svc := newTestService(users, activity, publisher)

	const tgID int64 = 100500

	// Первое событие создаёт профиль и приветствует, не расходуя ввод
	reply := send(t, svc, tgID, "привет")
	assert.Equal(t, texts.Welcome, reply.Text)
	assert.Equal(t, domain.StepName, users.stored(t, tgID).RegistrationStep)

	reply = send(t, svc, tgID, "Анна")
	assert.Contains(t, reply.Text, "Анна")
	assert.Equal(t, domain.StepBirthDate, users.stored(t, tgID).RegistrationStep)

	reply = send(t, svc, tgID, "15.03.1990")
	assert.Contains(t, reply.Text, "15.03.1990")
	assert.Equal(t, domain.StepBirthTime, users.stored(t, tgID).RegistrationStep)

	reply = send(t, svc, tgID, "14:30")
	assert.Contains(t, reply.Text, "14:30")
	assert.Equal(t, domain.StepBirthPlace, users.stored(t, tgID).RegistrationStep)

	reply = send(t, svc, tgID, "Москва")
	assert.Contains(t, reply.Text, "Москва")
	assert.True(t, reply.RequestLocation)
	assert.Equal(t, domain.StepCurrentLocation, users.stored(t, tgID).RegistrationStep)

	reply = send(t, svc, tgID, "Санкт-Петербург")
	assert.Contains(t, reply.Text, "Санкт-Петербург")
	assert.Equal(t, domain.StepForecastTime, users.stored(t, tgID).RegistrationStep)

	reply = send(t, svc, tgID, "09:00")
	assert.True(t, reply.Completed)
	assert.Contains(t, reply.Text, "Анна")
	assert.Contains(t, reply.Text, "09:00")

	stored := users.stored(t, tgID)
	assert.Equal(t, domain.StepCompleted, stored.RegistrationStep)
	assert.True(t, stored.RegistrationComplete)
	require.NotNil(t, stored.RegisteredAt)
	require.NotNil(t, stored.Name)
	assert.Equal(t, "Анна", *stored.Name)
	require.NotNil(t, stored.ForecastTime)
	assert.Equal(t, "09:00", *stored.ForecastTime)

	// Событие завершения опубликовано ровно один раз
	require.Len(t, publisher.published, 1)
	assert.Equal(t, tgID, publisher.published[0].TelegramUserID)

	// Каждый успешный переход оставил запись в журнале
	count, err := activity.CountByUser(context.Background(), stored.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), count)
}

func TestHandleEvent_InvalidInputDoesNotAdvance(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestService(users, &fakeActivityRepo{}, nil)

	const tgID int64 = 7

	send(t, svc, tgID, "старт")
	send(t, svc, tgID, "Борис")

	// Мусор на этапе даты: повторный запрос, этап не меняется
	reply := send(t, svc, tgID, "вчера")
	assert.Equal(t, texts.InvalidBirthDateFormat, reply.Text)
	assert.Empty(t, reply.Err)
	assert.Equal(t, domain.StepBirthDate, users.stored(t, tgID).RegistrationStep)

	// Корректная дата после ошибки принимается
	send(t, svc, tgID, "01.01.2000")
	assert.Equal(t, domain.StepBirthTime, users.stored(t, tgID).RegistrationStep)
}

func TestHandleEvent_UnknownBirthTime(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestService(users, &fakeActivityRepo{}, nil)

	const tgID int64 = 8

	send(t, svc, tgID, "hi")
	send(t, svc, tgID, "Ольга")
	send(t, svc, tgID, "02.02.1985")

	reply := send(t, svc, tgID, "Не знаю")
	assert.Contains(t, reply.Text, texts.BirthTimeUnknownDisplay)

	stored := users.stored(t, tgID)
	require.NotNil(t, stored.BirthTime)
	assert.Equal(t, "12:00", *stored.BirthTime)
	assert.True(t, stored.BirthTimeUnknown)
	assert.Equal(t, domain.StepBirthPlace, stored.RegistrationStep)
}

func TestHandleEvent_GeolocationTakesPrecedence(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestService(users, &fakeActivityRepo{}, nil)

	const tgID int64 = 9

	send(t, svc, tgID, "hi")
	send(t, svc, tgID, "Пётр")
	send(t, svc, tgID, "10.10.1980")
	send(t, svc, tgID, "07:15")
	send(t, svc, tgID, "Казань")

	// Присланы и текст, и геолокация: выигрывает геолокация
	reply, err := svc.HandleEvent(context.Background(), &domain.InboundEvent{
		TelegramUserID: tgID,
		Text:           "Казань",
		Location:       &domain.GeoPoint{Lat: 55.7887, Lon: 49.1221},
	})
	require.NoError(t, err)
	assert.Contains(t, reply.Text, "55.7887")

	stored := users.stored(t, tgID)
	require.NotNil(t, stored.LocationKind)
	assert.Equal(t, domain.LocationCoordinates, *stored.LocationKind)
	assert.Nil(t, stored.LocationCity)
	require.NotNil(t, stored.LocationLat)
	assert.InDelta(t, 55.7887, *stored.LocationLat, 0.0001)
	assert.Equal(t, domain.StepForecastTime, stored.RegistrationStep)
}

func TestHandleEvent_CompletedIsTerminal(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestService(users, &fakeActivityRepo{}, nil)

	const tgID int64 = 10
	completeRegistration(t, svc, tgID)

	before := users.stored(t, tgID)
	reply := send(t, svc, tgID, "ещё раз имя: Вадим")
	assert.Equal(t, texts.AlreadyRegistered, reply.Text)

	after := users.stored(t, tgID)
	assert.Equal(t, domain.StepCompleted, after.RegistrationStep)
	assert.Equal(t, *before.Name, *after.Name)
}

func TestHandleEvent_ProfileCommand(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestService(users, &fakeActivityRepo{}, nil)

	const tgID int64 = 21
	completeRegistration(t, svc, tgID)

	reply := send(t, svc, tgID, "/profile")
	assert.Contains(t, reply.Text, "Анна")
	assert.Contains(t, reply.Text, "15.03.1990")
	assert.Contains(t, reply.Text, "09:00")
	assert.False(t, reply.Completed)

	// Просмотр данных не меняет состояние регистрации
	stored := users.stored(t, tgID)
	assert.Equal(t, domain.StepCompleted, stored.RegistrationStep)
	assert.True(t, stored.RegistrationComplete)
}

func TestHandleEvent_ProfileCommandMidRegistration(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestService(users, &fakeActivityRepo{}, nil)

	const tgID int64 = 22

	send(t, svc, tgID, "hi")
	send(t, svc, tgID, "Борис")

	// Команда не расходует этап: собранные поля видны, этап прежний
	reply := send(t, svc, tgID, "/profile")
	assert.Contains(t, reply.Text, "Борис")
	assert.Equal(t, domain.StepBirthDate, users.stored(t, tgID).RegistrationStep)

	send(t, svc, tgID, "01.01.2000")
	assert.Equal(t, domain.StepBirthTime, users.stored(t, tgID).RegistrationStep)
}

func TestHandleEvent_RestartPreservesFields(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestService(users, &fakeActivityRepo{}, nil)

	const tgID int64 = 11
	completeRegistration(t, svc, tgID)

	reply := send(t, svc, tgID, "/start")
	assert.Equal(t, texts.Welcome, reply.Text)

	stored := users.stored(t, tgID)
	assert.Equal(t, domain.StepName, stored.RegistrationStep)
	assert.False(t, stored.RegistrationComplete)
	assert.Nil(t, stored.RegisteredAt)
	// Старые поля не стираются, они перезапишутся на новом проходе
	require.NotNil(t, stored.Name)
	assert.Equal(t, "Анна", *stored.Name)

	// Новый проход перезаписывает имя
	send(t, svc, tgID, "Мария")
	assert.Equal(t, "Мария", *users.stored(t, tgID).Name)
}

func TestHandleEvent_PersistenceFailureKeepsStep(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestService(users, &fakeActivityRepo{}, nil)

	const tgID int64 = 12

	send(t, svc, tgID, "hi")
	send(t, svc, tgID, "Игорь")

	users.failUpdate = true
	reply := send(t, svc, tgID, "05.05.1995")
	assert.Equal(t, texts.PersistenceRetry, reply.Text)
	assert.Equal(t, "persistence", reply.Err)

	users.failUpdate = false
	stored := users.stored(t, tgID)
	assert.Equal(t, domain.StepBirthDate, stored.RegistrationStep)
	assert.Nil(t, stored.BirthDate)

	// Повтор того же сообщения после восстановления проходит
	send(t, svc, tgID, "05.05.1995")
	assert.Equal(t, domain.StepBirthTime, users.stored(t, tgID).RegistrationStep)
}

func TestHandleEvent_ActivityFailureDoesNotFailAdvance(t *testing.T) {
	users := newFakeUserRepo()
	activity := &fakeActivityRepo{failing: true}
	svc := newTestService(users, activity, nil)

	const tgID int64 = 13

	send(t, svc, tgID, "hi")
	reply := send(t, svc, tgID, "Фёдор")
	assert.Contains(t, reply.Text, "Фёдор")
	assert.Equal(t, domain.StepBirthDate, users.stored(t, tgID).RegistrationStep)
}

func TestHandleEvent_SameUserEventsApplyInOrder(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestService(users, &fakeActivityRepo{}, nil)

	const tgID int64 = 14

	send(t, svc, tgID, "hi")

	// Конкурентная пачка одинаковых сообщений: продвинуться должен
	// ровно один этап, остальные получают повторный запрос даты
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.HandleEvent(context.Background(), &domain.InboundEvent{
				TelegramUserID: tgID,
				Text:           "Анна",
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	stored := users.stored(t, tgID)
	assert.Equal(t, domain.StepBirthDate, stored.RegistrationStep)
	require.NotNil(t, stored.Name)
	assert.Equal(t, "Анна", *stored.Name)
}

// completeRegistration прогоняет пользователя по happy-path до завершения
func completeRegistration(t *testing.T, svc *Service, tgID int64) {
	t.Helper()
	send(t, svc, tgID, "hi")
	send(t, svc, tgID, "Анна")
	send(t, svc, tgID, "15.03.1990")
	send(t, svc, tgID, "14:30")
	send(t, svc, tgID, "Москва")
	send(t, svc, tgID, "Санкт-Петербург")
	reply := send(t, svc, tgID, "09:00")
	require.True(t, reply.Completed)
}
