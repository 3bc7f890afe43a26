package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
)

const (
	MongoCollectionUsers         = "users"
	MongoCollectionProfessionals = "professionals"
	MongoCollectionPayments      = "payments"
	MongoCollectionAppointments  = "appointments"
	MongoCollectionSubaccounts   = "subaccounts"
)

const (
	AppPaginationUrlFormat = "%s?page=%d&page_size=%d"
)

const (
	// RedisKeyPaymentReceiptFormat caches ledger reads keyed by gateway reference.
	RedisKeyPaymentReceiptFormat = "payment:receipt:%s"
	// RedisKeyWebhookRateFormat is the fixed-window counter for the hook endpoint.
	RedisKeyWebhookRateFormat = "hook:rate:%s"
	// RedisKeySubaccountLockFormat guards subaccount creation per owner.
	RedisKeySubaccountLockFormat = "lock:subaccount:%s"
)

const (
	// AppointmentDateLayout is the calendar date carried in booking metadata.
	// No timezone guarantee is assumed for date or time values.
	AppointmentDateLayout = "2006-01-02"
)
