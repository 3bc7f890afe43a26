package constvars

const (
	// Generic messages
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"
	ResponseError   = "error"

	// User-related messages
	CreateUserSuccessMessage        = "user created successfully"
	VerifyUserSuccessMessage        = "email verified successfully"
	UpdateUserSuccessMessage        = "user updated successfully"
	GetProfileSuccessMessage        = "get profile successfully"
	UploadProfilePictureSuccessMessage = "profile picture uploaded successfully"

	// Professional-related messages
	CreateProfessionalSuccessMessage     = "professional created successfully"
	GetProfessionalsSuccessMessage       = "get professionals successfully"
	GetProfessionalSuccessMessage        = "get professional successfully"
	UpdateAvailabilitySuccessMessage     = "availability updated successfully"
	GetDashboardSummarySuccessMessage    = "get dashboard summary successfully"

	// Appointment-related messages
	CreateAppointmentSuccessMessage  = "appointment created successfully"
	GetAppointmentSuccessMessage     = "get appointment successfully"
	GetAppointmentsSuccessMessage    = "get appointments successfully"
	CancelAppointmentSuccessMessage  = "appointment cancelled successfully"
	ConfirmAppointmentSuccessMessage = "appointment confirmed successfully"

	// Payment-related messages
	StartPaymentSuccessMessage  = "payment initialized successfully"
	CreatePaymentSuccessMessage = "payment recorded successfully"
	GetPaymentSuccessMessage    = "get payment successfully"
	WebhookReceivedMessage      = "Webhook received"

	// Subaccount-related messages
	CreateSubaccountSuccessMessage = "subaccount created successfully"
	GetSubaccountSuccessMessage    = "get subaccount successfully"
)
