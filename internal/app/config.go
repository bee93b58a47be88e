package app

import (
	server "github.com/vosstorgg/dailybot/internal/adapters/primary/http"
	kafkaAdapter "github.com/vosstorgg/dailybot/internal/adapters/secondary/kafka"
	"github.com/vosstorgg/dailybot/internal/adapters/secondary/storage/pg"
	redisAdapter "github.com/vosstorgg/dailybot/internal/adapters/secondary/storage/redis"
	"github.com/vosstorgg/dailybot/internal/adapters/secondary/weatherapi"
	"github.com/vosstorgg/dailybot/internal/pkg/logger"
	registrationUsecase "github.com/vosstorgg/dailybot/internal/usecases/registration"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Postgres     *pg.Config                  `envconfig:"POSTGRES"`
	Redis        *redisAdapter.Config        `envconfig:"REDIS"`
	Log          *logger.Config              `envconfig:"LOG"`
	Server       *server.Config              `envconfig:"APISERVER"`
	WeatherAPI   *weatherapi.Config          `envconfig:"WEATHER_API"`
	Kafka        *kafkaAdapter.Config        `envconfig:"KAFKA"`
	Registration *registrationUsecase.Config `envconfig:"REGISTRATION"`
}

func NewEnvConfig(envPrefix string) (*Config, error) {
	cfg := &Config{}

	_ = godotenv.Load("deployments/local/.env")

	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
