package config

// Canonical environment variable names, shared with tests and ops tooling.
const (
	EnvAppEnv   = "OHMASENSE_APP_ENV"
	EnvAppPort  = "OHMASENSE_APP_PORT"
	EnvLogLevel = "OHMASENSE_LOG_LEVEL"

	EnvDBDSN = "OHMASENSE_DB_DSN"

	EnvRedisURL = "OHMASENSE_REDIS_URL"

	EnvJWTSecret  = "OHMASENSE_JWT_SECRET"
	EnvJWTIssuer  = "OHMASENSE_JWT_ISSUER"
	EnvJWTExpMins = "OHMASENSE_JWT_EXPIRATION_MINUTES"

	EnvStripeSecretKey     = "OHMASENSE_STRIPE_SECRET_KEY"
	EnvStripeWebhookSecret = "OHMASENSE_STRIPE_WEBHOOK_SECRET"
	EnvStripeEnv           = "OHMASENSE_STRIPE_ENV"

	EnvClientURL = "OHMASENSE_CLIENT_URL"
)
