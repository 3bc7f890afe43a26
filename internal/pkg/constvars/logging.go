package constvars

const (
	LoggingRequestIDKey    = "request_id"
	LoggingDataKey         = "data"
	LoggingRequestKey      = "request"
	LoggingResponseKey     = "response"
	LoggingMethodKey       = "method"
	LoggingEndpointKey     = "endpoint"
	LoggingRemoteAddrKey   = "remote_addr"
	LoggingUserAgentKey    = "user_agent"
	LoggingQueryKey        = "query"
	LoggingStatusCodeKey   = "status_code"
	LoggingDurationKey     = "duration"
	LoggingSuccessKey      = "success"
	LoggingOperationKey    = "operation"
	LoggingErrorTypeKey    = "error_type"
	LoggingErrorCodeKey    = "error_code"
	LoggingErrorMessageKey = "error_message"

	LoggingReferenceKey      = "reference"
	LoggingAppointmentIDKey  = "appointment_id"
	LoggingPaymentStatusKey  = "payment_status"
	LoggingEventTypeKey      = "event_type"
	LoggingUserIDKey         = "user_id"
	LoggingProfessionalIDKey = "professional_id"
	LoggingQueueKey          = "queue"
	LoggingRedisKey          = "redis_key"
	LoggingLockValueKey      = "lock_value"
)
