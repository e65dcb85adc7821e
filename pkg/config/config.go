package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App      AppConfig
	Redis    RedisConfig
	Paystack PaystackConfig
	Checkout CheckoutConfig
	CORS     CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"ODG_APP_ENV" required:"true"`
	Port         string `envconfig:"ODG_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"ODG_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"ODG_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type RedisConfig struct {
	URL          string        `envconfig:"ODG_REDIS_URL" required:"true"`
	Address      string        `envconfig:"ODG_REDIS_ADDR"`
	Password     string        `envconfig:"ODG_REDIS_PASSWORD"`
	DB           int           `envconfig:"ODG_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ODG_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ODG_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ODG_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ODG_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ODG_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type PaystackConfig struct {
	SecretKey   string        `envconfig:"ODG_PAYSTACK_SECRET_KEY" required:"true"`
	PublicKey   string        `envconfig:"ODG_PAYSTACK_PUBLIC_KEY"`
	BaseURL     string        `envconfig:"ODG_PAYSTACK_BASE_URL" default:"https://api.paystack.co"`
	CallbackURL string        `envconfig:"ODG_PAYSTACK_CALLBACK_URL"`
	HTTPTimeout time.Duration `envconfig:"ODG_PAYSTACK_HTTP_TIMEOUT" default:"15s"`
}

type CheckoutConfig struct {
	// BuyNowTTL bounds how long a staged buy-now item survives without
	// being consumed, mirroring a browser session's lifetime.
	BuyNowTTL time.Duration `envconfig:"ODG_CHECKOUT_BUYNOW_TTL" default:"24h"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"ODG_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}
