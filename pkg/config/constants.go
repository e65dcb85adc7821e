package config

const (
	EnvPrefix = "ODG"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv            = "ODG_APP_ENV"
	EnvPort              = "ODG_APP_PORT"
	EnvRedisURL          = "ODG_REDIS_URL"
	EnvPaystackSecretKey = "ODG_PAYSTACK_SECRET_KEY"
)
