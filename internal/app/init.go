package app

import (
	"fmt"
	"net/http"

	server "github.com/vosstorgg/dailybot/internal/adapters/primary/http"
	astroController "github.com/vosstorgg/dailybot/internal/adapters/primary/http/controllers/astro"
	eventsController "github.com/vosstorgg/dailybot/internal/adapters/primary/http/controllers/events"
	healthcheckController "github.com/vosstorgg/dailybot/internal/adapters/primary/http/controllers/healthcheck"
	"github.com/vosstorgg/dailybot/internal/adapters/primary/http/middlewares"
	kafkaAdapter "github.com/vosstorgg/dailybot/internal/adapters/secondary/kafka"
	"github.com/vosstorgg/dailybot/internal/adapters/secondary/storage/pg"
	redisAdapter "github.com/vosstorgg/dailybot/internal/adapters/secondary/storage/redis"
	"github.com/vosstorgg/dailybot/internal/adapters/secondary/weatherapi"
	"github.com/vosstorgg/dailybot/internal/ports/cache"
	"github.com/vosstorgg/dailybot/internal/ports/repository"
	"github.com/vosstorgg/dailybot/internal/ports/service"
	activityRepo "github.com/vosstorgg/dailybot/internal/repository/activity"
	userRepo "github.com/vosstorgg/dailybot/internal/repository/user"
	jobScheduler "github.com/vosstorgg/dailybot/internal/services/jobs"
	astroUsecase "github.com/vosstorgg/dailybot/internal/usecases/astro"
	registrationUsecase "github.com/vosstorgg/dailybot/internal/usecases/registration"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Dependencies struct {
	DB            *sqlx.DB
	HTTPServer    *http.Server
	Cache         cache.Cache
	KafkaProducer *kafkaAdapter.Producer
	JobScheduler  *jobScheduler.Scheduler
}

// initDependencies инициализирует все зависимости приложения
func (a *App) initDependencies() (*Dependencies, error) {
	db, err := a.initPostgres()
	if err != nil {
		return nil, fmt.Errorf("failed to init postgres: %w", err)
	}

	repos := a.initRepositories(db)
	cacheClient := a.initCache()
	producer := a.initKafka()

	var publisher service.IEventPublisher
	if producer != nil {
		publisher = producer
	}

	registrationService := registrationUsecase.New(
		repos.User,
		repos.Activity,
		publisher, // может быть nil
		a.Log,
		a.Cfg.Registration,
	)

	provider := weatherapi.NewClient(a.Cfg.WeatherAPI, a.Log)
	astroService := astroUsecase.New(provider, cacheClient, a.Log)

	httpServer := a.initHTTP(db, registrationService, astroService)
	scheduler := a.initJobScheduler(astroService)

	return &Dependencies{
		DB:            db,
		HTTPServer:    httpServer,
		Cache:         cacheClient,
		KafkaProducer: producer,
		JobScheduler:  scheduler,
	}, nil
}

// repositories содержит инициализированные репозитории
type repositories struct {
	User     repository.IUserRepo
	Activity repository.IActivityRepo
}

// initRepositories инициализирует репозитории для работы с БД
func (a *App) initRepositories(db *sqlx.DB) *repositories {
	persistenceLayer := pg.NewDB(db)
	return &repositories{
		User:     userRepo.New(persistenceLayer, a.Log),
		Activity: activityRepo.New(persistenceLayer, a.Log),
	}
}

// initCache инициализирует кэш: Redis если включён, иначе in-memory
func (a *App) initCache() cache.Cache {
	if a.Cfg.Redis != nil && a.Cfg.Redis.Enabled {
		redisClient, err := a.Cfg.Redis.NewConnection()
		if err != nil {
			a.Log.Warn("failed to init redis cache, falling back to in-memory", "error", err)
		} else {
			a.Log.Info("redis cache connected successfully")
			return redisAdapter.NewClient(redisClient)
		}
	}

	a.Log.Info("using in-memory cache")
	return cache.NewInMemory()
}

// initKafka инициализирует Kafka producer (опционально)
func (a *App) initKafka() *kafkaAdapter.Producer {
	if a.Cfg.Kafka == nil || !a.Cfg.Kafka.Enabled {
		a.Log.Info("kafka disabled, registration events will not be published")
		return nil
	}

	producer, err := kafkaAdapter.NewProducer(a.Cfg.Kafka, a.Log)
	if err != nil {
		a.Log.Warn("failed to create kafka producer, continuing without events", "error", err)
		return nil
	}

	return producer
}

// initHTTP инициализирует HTTP сервер и контроллеры
func (a *App) initHTTP(
	db *sqlx.DB,
	registrationService service.IRegistrationService,
	astroService service.IAstroService,
) *http.Server {
	controllers := []server.Controller{
		healthcheckController.New(db, a.Log),
		eventsController.New(registrationService, a.Log),
		astroController.New(astroService, a.Log),
	}

	serverMiddlewares := []gin.HandlerFunc{
		middlewares.RecoveryLogger(a.Log),
	}
	if a.Cfg.Server.EnableLoggingMiddleware {
		serverMiddlewares = append(serverMiddlewares, middlewares.RequestLogger(a.Log))
	}

	return server.NewHTTPServer(a.Cfg.Server, a.Log, serverMiddlewares, controllers...)
}

// initJobScheduler инициализирует планировщик джоб
func (a *App) initJobScheduler(astroService service.IAstroService) *jobScheduler.Scheduler {
	scheduler := jobScheduler.NewScheduler(a.Log)

	summaryWarmer := jobScheduler.NewSummaryWarmer(astroService, a.Log)
	scheduler.Register(summaryWarmer)
	a.Log.Info("summary warmer job registered")

	return scheduler
}
