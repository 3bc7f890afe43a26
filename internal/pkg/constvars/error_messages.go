package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required": "is required",
	"email":    "must be a valid email",
	"alphanum": "must contain only alphanumeric characters",
	"min":      "must be at least %s characters long",
	"max":      "maximum at %s characters long",
	"numeric":  "must be a number",
	"oneof":    "must be one of [%s]",
	"gt":       "must be greater than %s",
	"gte":      "must be greater than or equal to %s",
	"datetime": "must match the format %s",
	"url":      "must be a valid URL",
	"uuid":     "must be a valid UUID",
}

var TagsWithParams = map[string]bool{
	"min":      true,
	"max":      true,
	"oneof":    true,
	"gt":       true,
	"gte":      true,
	"datetime": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientEmailAlreadyExists            = "email already used"
	ErrClientInvalidImageFormat            = "invalid image format"
	ErrClientPaymentNotFound               = "payment not found"
	ErrClientPaymentNotConfirmed           = "payment has not been confirmed yet"
	ErrClientPaymentReferenceUnknown       = "payment reference is not known by the payment provider"
	ErrClientPaymentProviderUnavailable    = "payment provider is temporarily unavailable, please retry"
	ErrClientPaymentProviderRejected       = "payment provider rejected the request"
	ErrClientWebhookSignatureInvalid       = "webhook signature verification failed"
	ErrClientAppointmentNotFound           = "appointment not found"
	ErrClientAppointmentNotCancellable     = "appointment can no longer be cancelled"
	ErrClientAppointmentNotActivatable     = "appointment can no longer be activated"
	ErrClientSubaccountNotFound            = "subaccount not found"
	ErrClientSubaccountAlreadyExists       = "subaccount already exists for this user"
	ErrClientUserNotFound                  = "user not found"
	ErrClientProfessionalNotFound          = "professional not found"
	ErrClientVerificationTokenInvalid      = "verification link is invalid or expired"
	ErrClientTooManyRequests               = "too many requests"
)

// Error messages for developers
const (
	ErrDevInvalidInput           = "invalid input"
	ErrDevTooManyRequests           = "rate limit exceeded"
	ErrDevValidationFailed       = "validation failed"
	ErrDevCannotParseJSON        = "cannot parse JSON"
	ErrDevCannotMarshalJSON      = "cannot marshal JSON"
	ErrDevReadBody               = "failed to read request body"
	ErrDevMissingRequestID       = "request ID missing from context"
	ErrDevServerDeadlineExceeded = "server deadline exceeded"
	ErrDevServerProcess          = "internal server process failed"

	ErrDevCreateHTTPRequest = "failed to create HTTP request"
	ErrDevSendHTTPRequest   = "failed to send HTTP request"
	ErrDevDecodeResponse    = "failed to decode response from %s"

	ErrDevFailedToHashPassword  = "failed to hash password"
	ErrDevEmailAlreadyExists    = "email already exists"
	ErrDevUserNotExists         = "user does not exist"
	ErrDevProfessionalNotExists = "professional does not exist"

	ErrDevAuthGenerateToken        = "failed to generate token"
	ErrDevAuthSigningMethod        = "unexpected signing method"
	ErrDevVerificationTokenInvalid = "verification token invalid or expired"

	ErrDevPaymentNotFound           = "payment record not found"
	ErrDevPaymentNotConfirmed       = "gateway reports the transaction is not successful"
	ErrDevPaymentReferenceNotFound  = "gateway has no transaction for this reference"
	ErrDevPaymentGatewayUnavailable = "payment gateway transport failure or 5xx"
	ErrDevPaymentGatewayRejected    = "payment gateway rejected the request with 4xx"
	ErrDevWebhookSignatureInvalid   = "webhook HMAC signature mismatch"
	ErrDevAppointmentNotExists      = "appointment does not exist"
	ErrDevAppointmentNotCancellable = "appointment is not in a cancellable state"
	ErrDevAppointmentNotActivatable = "appointment is not in a pending state"
	ErrDevSubaccountNotExists       = "subaccount does not exist"
	ErrDevSubaccountAlreadyExists   = "subaccount already recorded for user"
	ErrDevInconsistentState         = "payment recorded but appointment activation failed"

	// Mongo DB
	ErrDevDBFailedToFindDocument     = "failed to find document"
	ErrDevDBFailedToInsertDocument   = "failed to insert document"
	ErrDevDBFailedToUpdateDocument   = "failed to update document"
	ErrDevDBFailedToDeleteDocument   = "failed to delete document"
	ErrDevDBFailedToIterateDocuments = "failed to iterate documents"
	ErrDevDBStringNotObjectID        = "string is not a valid ObjectID"
	ErrDevDBFailedToEnsureIndexes    = "failed to ensure indexes"

	// Redis
	ErrDevRedisGetData        = "failed to get data from redis"
	ErrDevRedisSetData        = "failed to set data to redis"
	ErrDevRedisDeleteData     = "failed to delete data from redis"
	ErrDevRedisIncrementValue = "failed to increment value in redis"
	ErrDevRedisSetNX          = "failed to setnx in redis"
	ErrDevRedisUnlock         = "failed to release redis lock"

	// RabbitMQ
	ErrDevRabbitMQPublishMessage = "failed to publish message to queue %s"
	ErrDevRabbitMQConsumeMessage = "failed to consume message from queue %s"

	// Minio
	ErrDevMinioFailedToCreateObject = "failed to create object in bucket %s"
	ErrDevMinioFailedToPresignURL   = "failed to presign object URL in bucket %s"

	// SMTP
	ErrDevSMTPSendEmail = "failed to send email via %s"
)
