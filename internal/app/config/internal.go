package config

import "medibook-service/internal/pkg/utils"

type (
	InternalConfig struct {
		App      App
		Paystack Paystack
		JWT      JWT
		Mailer   Mailer
		Minio    AppMinio
		RabbitMQ AppRabbitMQ
	}

	App struct {
		Env                        string
		Port                       string
		Version                    string
		Address                    string
		Timezone                   string
		BaseUrl                    string
		FrontendDomain             string
		EndpointPrefix             string
		MaxRequests                int
		ShutdownTimeout            int
		MaxTimeRequestsPerSeconds  int
		RequestBodyLimitInMegabyte int
		WebhookRateLimitPerMinute  int
	}

	// Paystack keys never leave the server. The secret key authenticates
	// outbound API calls, the webhook secret verifies inbound signatures.
	Paystack struct {
		BaseUrl                 string
		SecretKey               string
		WebhookSecret           string
		RequestTimeoutInSeconds int
	}

	JWT struct {
		Secret                          string
		VerificationTokenExpTimeInHours int
	}

	Mailer struct {
		EmailSender string
	}

	AppMinio struct {
		ProfilePictureMaxUploadSizeInMB int64
		PreSignedUrlExpiryTimeInHours   int
	}

	AppRabbitMQ struct {
		MailerQueue         string
		ReconciliationQueue string
	}
)

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                        utils.GetEnvString("APP_ENV", "development"),
			Port:                       utils.GetEnvString("APP_PORT", "8080"),
			Version:                    utils.GetEnvString("APP_VERSION", "v1"),
			Address:                    utils.GetEnvString("APP_ADDRESS", "localhost"),
			Timezone:                   utils.GetEnvString("APP_TIMEZONE", "Africa/Lagos"),
			BaseUrl:                    utils.GetEnvString("APP_BASE_URL", "http://localhost:8080"),
			FrontendDomain:             utils.GetEnvString("APP_FRONTEND_DOMAIN", "http://localhost:3000"),
			EndpointPrefix:             utils.GetEnvString("APP_ENDPOINT_PREFIX", "/api"),
			MaxRequests:                utils.GetEnvInt("APP_MAX_REQUEST", 100),
			ShutdownTimeout:            utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
			MaxTimeRequestsPerSeconds:  utils.GetEnvInt("APP_MAX_TIME_REQUESTS_PER_SECONDS", 60),
			RequestBodyLimitInMegabyte: utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 6),
			WebhookRateLimitPerMinute:  utils.GetEnvInt("APP_WEBHOOK_RATE_LIMIT_PER_MINUTE", 120),
		},
		Paystack: Paystack{
			BaseUrl:                 utils.GetEnvString("PAYSTACK_BASE_URL", "https://api.paystack.co"),
			SecretKey:               utils.GetEnvString("PAYSTACK_SECRET_KEY", ""),
			WebhookSecret:           utils.GetEnvString("PAYSTACK_WEBHOOK_SECRET", ""),
			RequestTimeoutInSeconds: utils.GetEnvInt("PAYSTACK_REQUEST_TIMEOUT_IN_SECONDS", 15),
		},
		JWT: JWT{
			Secret:                          utils.GetEnvString("JWT_SECRET", "anyjwt"),
			VerificationTokenExpTimeInHours: utils.GetEnvInt("JWT_VERIFICATION_TOKEN_EXP_TIME_IN_HOURS", 24),
		},
		Mailer: Mailer{
			EmailSender: utils.GetEnvString("APP_MAILER_EMAIL_SENDER", "no-reply@medibook.app"),
		},
		Minio: AppMinio{
			ProfilePictureMaxUploadSizeInMB: utils.GetEnvInt64("APP_MINIO_PROFILE_PICTURE_UPLOAD_MAX_SIZE_IN_MB", 2),
			PreSignedUrlExpiryTimeInHours:   utils.GetEnvInt("APP_MINIO_PRE_SIGNED_URL_EXPIRY_TIME_IN_HOURS", 24),
		},
		RabbitMQ: AppRabbitMQ{
			MailerQueue:         utils.GetEnvString("APP_RABBITMQ_MAILER_QUEUE", "medibook.mailer"),
			ReconciliationQueue: utils.GetEnvString("APP_RABBITMQ_RECONCILIATION_QUEUE", "medibook.payment.reconciliation"),
		},
	}
}
