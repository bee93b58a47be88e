package weatherapi

type Config struct {
	BaseURL string `envconfig:"BASE_URL" default:"http://api.weatherapi.com/v1"`
	APIKey  string `envconfig:"KEY" required:"true"`
	// ReferencePoint референсная точка для глобальных данных (фаза Луны не зависит от города)
	ReferencePoint string `envconfig:"REFERENCE_POINT" default:"London"`
	TimeoutSeconds int    `envconfig:"TIMEOUT" default:"30"`
	SkipSSLVerify  bool   `envconfig:"SKIP_SSL_VERIFY" default:"false"`
}

func (c *Config) ShouldSkipSSL() bool {
	return c.SkipSSLVerify
}
